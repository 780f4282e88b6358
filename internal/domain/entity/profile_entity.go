package entity

import (
	"time"
)

// Profile is the public profile of a user, created on demand (not at
// registration). At most one per user. ImageURL follows the same asset
// locator rules as Course.ImageURL.
type Profile struct {
	ID          string
	UserID      string
	ImageURL    string
	Bio         string
	GithubURL   string
	LinkedinURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
