package repository

import (
	"context"

	"github.com/educore/campus-backend/internal/domain/entity"
)

// EnrollmentRepository persists (user, course) enrollments. Create returns
// ErrAlreadyEnrolled when the pair exists. Delete removes the pair and is
// idempotent (deleting an absent pair is not an error).
type EnrollmentRepository interface {
	Create(ctx context.Context, userID, courseID string) (*entity.Enrollment, error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	Delete(ctx context.Context, userID, courseID string) error
}
