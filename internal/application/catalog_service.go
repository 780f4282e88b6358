package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/domain/entity"
	repo "github.com/educore/campus-backend/internal/domain/repository"
)

// CourseCatalog owns courses and their cover images. Image replacement is
// put-new-then-delete-old: the new object is fully stored before the row
// commits its locator, so a failed put leaves the previous image live and
// a committed row never points at a missing object.
type CourseCatalog struct {
	Courses repo.CourseRepository
	Store   AssetStore
	Logger  *logrus.Logger

	ES      *elasticsearch.Client
	ESIndex string
}

func NewCourseCatalog(courses repo.CourseRepository, store AssetStore, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *CourseCatalog {
	return &CourseCatalog{Courses: courses, Store: store, Logger: logger, ES: es, ESIndex: esIndex}
}

type CourseInput struct {
	Title       string
	Description string
	Price       float64
}

type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

func (c *CourseCatalog) objectPath(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return filepath.ToSlash(filepath.Join("courses", uuid.NewString()+ext))
}

// Create stores the cover image first; if the row insert then fails the
// stored object is deleted best-effort so no orphan survives. An image
// store failure aborts the creation entirely.
func (c *CourseCatalog) Create(ctx context.Context, in CourseInput, img *ImageUpload) (*entity.Course, error) {
	course := &entity.Course{Title: in.Title, Description: in.Description, Price: in.Price}

	if img != nil {
		locator, err := c.Store.Put(ctx, img.Reader, c.objectPath(img.Filename), img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
		}
		course.ImageURL = locator
	}

	if err := c.Courses.Create(ctx, course); err != nil {
		discardAsset(ctx, c.Store, c.Logger, course.ImageURL, "orphan course image not cleaned up")
		return nil, err
	}

	c.index(ctx, course)
	return course, nil
}

func (c *CourseCatalog) Get(ctx context.Context, id string) (*entity.Course, error) {
	course, err := c.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (c *CourseCatalog) List(ctx context.Context) ([]entity.Course, error) {
	return c.Courses.List(ctx)
}

// Update changes title/description/price, replacing the cover image first
// when a new one is supplied. The old object is deleted only after the row
// holds the new locator; a delete failure is logged, never surfaced.
func (c *CourseCatalog) Update(ctx context.Context, id string, in CourseInput, img *ImageUpload) (*entity.Course, error) {
	course, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldLocator := ""
	if img != nil {
		locator, err := c.Store.Put(ctx, img.Reader, c.objectPath(img.Filename), img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
		}
		oldLocator = course.ImageURL
		course.ImageURL = locator
	}

	course.Title = in.Title
	course.Description = in.Description
	course.Price = in.Price

	if err := c.Courses.Update(ctx, course); err != nil {
		if img != nil {
			discardAsset(ctx, c.Store, c.Logger, course.ImageURL, "orphan course image not cleaned up")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	discardAsset(ctx, c.Store, c.Logger, oldLocator, "replaced course image not deleted")

	c.index(ctx, course)
	return course, nil
}

// Delete removes the stored image best-effort, then the course row.
// Enrollments referencing the course are left untouched.
func (c *CourseCatalog) Delete(ctx context.Context, id string) error {
	course, err := c.Get(ctx, id)
	if err != nil {
		return err
	}

	discardAsset(ctx, c.Store, c.Logger, course.ImageURL, "course image not deleted")

	if err := c.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	c.deindex(ctx, id)
	return nil
}

// AddModule appends a section to an existing course.
func (c *CourseCatalog) AddModule(ctx context.Context, courseID, name string, position int) (*entity.CourseModule, error) {
	if _, err := c.Get(ctx, courseID); err != nil {
		return nil, err
	}
	m := &entity.CourseModule{CourseID: courseID, Name: name, Position: position}
	if err := c.Courses.AddModule(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *CourseCatalog) Modules(ctx context.Context, courseID string) ([]entity.CourseModule, error) {
	return c.Courses.ListModules(ctx, courseID)
}

func (c *CourseCatalog) index(ctx context.Context, course *entity.Course) {
	if c.ES == nil || c.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"price":       course.Price,
		"image_url":   course.ImageURL,
		"created_at":  course.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  course.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: c.ESIndex, DocumentID: course.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(ictx, c.ES)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).WithField("course_id", course.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && c.Logger != nil {
		c.Logger.WithField("status", res.Status()).WithField("course_id", course.ID).Warn("es index response error")
	}
}

func (c *CourseCatalog) deindex(ctx context.Context, courseID string) {
	if c.ES == nil || c.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: c.ESIndex, DocumentID: courseID}
	dctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(dctx, c.ES)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).WithField("course_id", courseID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over title and description.
func (c *CourseCatalog) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if c.ES == nil || c.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	sctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := c.ES.Search(c.ES.Search.WithContext(sctx), c.ES.Search.WithIndex(c.ESIndex), c.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
