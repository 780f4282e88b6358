package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/domain/entity"
	repo "github.com/educore/campus-backend/internal/domain/repository"
)

// EnrollmentRegistry grants courses to users. The storage layer's unique
// constraint is the only duplicate guard, so two concurrent Enroll calls
// for the same pair resolve to one row and one ErrAlreadyEnrolled.
type EnrollmentRegistry struct {
	Enrollments repo.EnrollmentRepository
	Courses     repo.CourseRepository
	Users       repo.UserRepository
	Logger      *logrus.Logger
}

func NewEnrollmentRegistry(enrollments repo.EnrollmentRepository, courses repo.CourseRepository, users repo.UserRepository, logger *logrus.Logger) *EnrollmentRegistry {
	return &EnrollmentRegistry{Enrollments: enrollments, Courses: courses, Users: users, Logger: logger}
}

// Enroll creates the (user, course) enrollment. Returns ErrAlreadyEnrolled
// without writing anything when the pair already exists, ErrUserNotFound /
// ErrCourseNotFound when either side is missing.
func (s *EnrollmentRegistry) Enroll(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	e, err := s.Enrollments.Create(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyEnrolled) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return e, nil
}

// Has reports whether the user currently owns the course.
func (s *EnrollmentRegistry) Has(ctx context.Context, userID, courseID string) (bool, error) {
	return s.Enrollments.Exists(ctx, userID, courseID)
}

// MyCourses lists the courses the user is enrolled in.
func (s *EnrollmentRegistry) MyCourses(ctx context.Context, userID string) ([]entity.Course, error) {
	return s.Courses.ListByUser(ctx, userID)
}
