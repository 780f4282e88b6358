package repository

import "errors"

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyEnrolled is returned by EnrollmentRepository.Create when the
	// (user, course) pair already exists. It comes from the unique constraint,
	// not from an application-level check, so it is race-safe.
	ErrAlreadyEnrolled = errors.New("already enrolled")
)
