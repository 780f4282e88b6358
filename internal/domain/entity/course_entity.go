package entity

import (
	"time"
)

// Course is a catalog entry. ImageURL is the locator of the cover image
// in the asset store; when non-empty it must resolve to a stored object.
type Course struct {
	ID          string
	Title       string
	Description string
	Price       float64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CourseModule is an ordered section inside a course.
type CourseModule struct {
	ID       string
	CourseID string
	Name     string
	Position int
}
