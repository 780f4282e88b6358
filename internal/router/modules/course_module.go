package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educore/campus-backend/internal/container"
	handlers "github.com/educore/campus-backend/internal/interface/http"
	"github.com/educore/campus-backend/internal/interface/middleware"
	"github.com/educore/campus-backend/pkg/helpers"
)

// CourseModule wires the catalog and enrollment routes.
// Public: GET /api/courses, GET /api/courses/search, GET /api/courses/:id
// Protected: GET /api/my-courses
// Admin: POST/PUT/DELETE /api/courses..., POST /api/enrollments
type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/search", m.Handler.Search)
	rg.GET("/courses/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/my-courses", m.Handler.MyCourses)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT), middleware.AdminOnly())
	admin.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP()))
	{
		admin.POST("/courses", m.Handler.Create)
		admin.PUT("/courses/:id", m.Handler.Update)
		admin.DELETE("/courses/:id", m.Handler.Delete)
		admin.POST("/courses/:id/modules", m.Handler.AddModule)
		admin.POST("/enrollments", m.Handler.Enroll)
	}
}
