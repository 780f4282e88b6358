package repository

import (
	"context"

	"github.com/educore/campus-backend/internal/domain/entity"
)

// CourseRepository defines the interface for course catalog persistence.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context) ([]entity.Course, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error

	AddModule(ctx context.Context, m *entity.CourseModule) error
	ListModules(ctx context.Context, courseID string) ([]entity.CourseModule, error)
}
