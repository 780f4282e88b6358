package repository

import (
	"context"

	"github.com/educore/campus-backend/internal/domain/entity"
)

// ProfileRepository persists public profiles, at most one per user.
// CreateForUser is idempotent: if a profile already exists for the user it
// returns the existing row unchanged.
type ProfileRepository interface {
	CreateForUser(ctx context.Context, userID string) (*entity.Profile, error)
	GetByUser(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
