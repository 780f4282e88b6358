package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educore/campus-backend/internal/domain/entity"
	"github.com/educore/campus-backend/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// CreateForUser inserts a profile for the user if none exists yet. The
// unique index on user_id makes the call idempotent under concurrency:
// ON CONFLICT DO NOTHING plus a reselect always yields the one live row.
func (r *ProfileRepository) CreateForUser(ctx context.Context, userID string) (*entity.Profile, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, image_url, bio, github_url, linkedin_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.Bio, &p.GithubURL,
		&p.LinkedinURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET image_url = $1, bio = $2, github_url = $3, linkedin_url = $4, updated_at = $5
		WHERE id = $6
	`, p.ImageURL, p.Bio, p.GithubURL, p.LinkedinURL, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
