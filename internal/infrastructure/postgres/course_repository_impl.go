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

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, description, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Description, c.Price, c.ImageURL)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c := &entity.Course{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, price, image_url, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, id)

	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, price, image_url, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListByUser returns the courses the user is enrolled in.
func (r *CourseRepository) ListByUser(ctx context.Context, userID string) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.title, c.description, c.price, c.image_url, c.created_at, c.updated_at
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]entity.Course, error) {
	out := make([]entity.Course, 0)
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, price = $3, image_url = $4, updated_at = $5
		WHERE id = $6
	`, c.Title, c.Description, c.Price, c.ImageURL, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) AddModule(ctx context.Context, m *entity.CourseModule) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO course_modules (course_id, name, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`, m.CourseID, m.Name, m.Position)
	return row.Scan(&m.ID)
}

func (r *CourseRepository) ListModules(ctx context.Context, courseID string) ([]entity.CourseModule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, course_id, name, position
		FROM course_modules
		WHERE course_id = $1
		ORDER BY position, name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.CourseModule, 0)
	for rows.Next() {
		var m entity.CourseModule
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Name, &m.Position); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
