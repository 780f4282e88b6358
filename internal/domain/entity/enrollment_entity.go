package entity

import (
	"time"
)

// Enrollment joins a user to a course. The (UserID, CourseID) pair is
// unique; rows are created once and never updated.
type Enrollment struct {
	UserID    string
	CourseID  string
	CreatedAt time.Time
}
