package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/application"
	"github.com/educore/campus-backend/internal/domain/entity"
	"github.com/educore/campus-backend/pkg/response"
	"github.com/educore/campus-backend/pkg/validation"
)

// CourseHandler serves the public catalog, admin catalog mutations and
// enrollment granting.
type CourseHandler struct {
	Catalog     *application.CourseCatalog
	Enrollments *application.EnrollmentRegistry
	Logger      *logrus.Logger
}

func NewCourseHandler(catalog *application.CourseCatalog, enrollments *application.EnrollmentRegistry, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Catalog: catalog, Enrollments: enrollments, Logger: logger}
}

type courseForm struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required,gte=0"`
}

type addModuleRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position" binding:"gte=0"`
}

type enrollRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	CourseID string `json:"course_id" binding:"required,uuid"`
}

func courseBody(c *entity.Course) gin.H {
	return gin.H{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
		"price":       c.Price,
		"image_url":   c.ImageURL,
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}
}

// imageFromForm returns the optional uploaded image; callers own closing.
func imageFromForm(c *gin.Context) (*application.ImageUpload, multipart.File, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil // no image supplied
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}

// List GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list courses failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list courses", nil)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", map[string]any{"count": len(courses)})
}

// Get GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "course not found", nil)
		return
	}
	modules, err := h.Catalog.Modules(c.Request.Context(), course.ID)
	if err != nil {
		h.Logger.WithError(err).WithField("course_id", course.ID).Warn("list modules failed")
	}
	body := courseBody(course)
	body["modules"] = modules
	response.Success(c, http.StatusOK, body, "course", nil)
}

// Search GET /api/courses/search?q=...&size=...
func (h *CourseHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Catalog.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("course search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// Create POST /api/courses (admin, multipart: title, description, price, image)
func (h *CourseHandler) Create(c *gin.Context) {
	var form courseForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	img, f, err := imageFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image", nil)
		return
	}
	if f != nil {
		defer func() { _ = f.Close() }()
	}

	course, err := h.Catalog.Create(c.Request.Context(), application.CourseInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
	}, img)
	if err != nil {
		if errors.Is(err, application.ErrAssetWrite) {
			response.Error[any](c, http.StatusBadGateway, "image upload failed", nil)
			return
		}
		h.Logger.WithError(err).Error("create course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create course", nil)
		return
	}
	response.Success(c, http.StatusCreated, courseBody(course), "course created", nil)
}

// Update PUT /api/courses/:id (admin, multipart; image optional)
func (h *CourseHandler) Update(c *gin.Context) {
	var form courseForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	img, f, err := imageFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image", nil)
		return
	}
	if f != nil {
		defer func() { _ = f.Close() }()
	}

	course, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), application.CourseInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
	}, img)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCourseNotFound):
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
		case errors.Is(err, application.ErrAssetWrite):
			response.Error[any](c, http.StatusBadGateway, "image upload failed", nil)
		default:
			h.Logger.WithError(err).Error("update course failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update course", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, courseBody(course), "course updated", nil)
}

// Delete DELETE /api/courses/:id (admin)
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete course", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "course deleted", nil)
}

// AddModule POST /api/courses/:id/modules (admin)
func (h *CourseHandler) AddModule(c *gin.Context) {
	var req addModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Catalog.AddModule(c.Request.Context(), c.Param("id"), req.Name, req.Position)
	if err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("add module failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to add module", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":        m.ID,
		"course_id": m.CourseID,
		"name":      m.Name,
		"position":  m.Position,
	}, "module added", nil)
}

// Enroll POST /api/enrollments (admin grants a course to a user)
func (h *CourseHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	e, err := h.Enrollments.Enroll(c.Request.Context(), req.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyEnrolled):
			response.Error[any](c, http.StatusConflict, "User already owns the course", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrCourseNotFound):
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
		default:
			h.Logger.WithError(err).Error("enroll failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to enroll", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":     e.UserID,
		"course_id":   e.CourseID,
		"enrolled_at": e.CreatedAt,
	}, "enrolled", nil)
}

// MyCourses GET /api/my-courses
func (h *CourseHandler) MyCourses(c *gin.Context) {
	courses, err := h.Enrollments.MyCourses(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.WithError(err).Error("list my courses failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list courses", nil)
		return
	}
	response.Success(c, http.StatusOK, courses, "my courses", map[string]any{"count": len(courses)})
}
