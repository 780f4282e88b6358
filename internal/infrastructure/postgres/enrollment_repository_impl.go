package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educore/campus-backend/internal/domain/entity"
	"github.com/educore/campus-backend/internal/domain/repository"
)

// SQLSTATE for unique_violation
const uniqueViolation = "23505"

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create inserts the pair and lets the primary key decide races: when two
// concurrent calls hit the same pair, exactly one insert succeeds and the
// other maps the unique violation to ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	e := &entity.Enrollment{UserID: userID, CourseID: courseID}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, course_id)
		VALUES ($1, $2)
		RETURNING created_at
	`, userID, courseID)

	if err := row.Scan(&e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrAlreadyEnrolled
		}
		return nil, err
	}

	return e, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var exists bool
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`, userID, courseID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM enrollments WHERE user_id = $1 AND course_id = $2
	`, userID, courseID)
	return err
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
