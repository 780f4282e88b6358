package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrProfileNotFound    = errors.New("profile not found")

	// ErrAlreadyEnrolled is an expected signal, not a failure: the user
	// already owns the course and no row was written.
	ErrAlreadyEnrolled = errors.New("user already owns the course")

	// ErrProvisioning covers user or wallet persistence failures during
	// registration; the transaction was rolled back, nothing survives.
	ErrProvisioning = errors.New("user provisioning failed")

	// Asset-store failures are kept distinct from database failures so
	// callers can retry the image step alone.
	ErrAssetWrite  = errors.New("asset write failed")
	ErrAssetDelete = errors.New("asset delete failed")
)
