package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/educore/campus-backend/internal/container"
	handlers "github.com/educore/campus-backend/internal/interface/http"
	"github.com/educore/campus-backend/internal/interface/middleware"
	"github.com/educore/campus-backend/pkg/helpers"
)

// ProfileModule wires account and public-profile routes, all authenticated.
type ProfileModule struct {
	Users    *handlers.UserHandler
	Profiles *handlers.ProfileHandler
	JWT      *helpers.JWTManager
}

func NewProfileModule(users *handlers.UserHandler, profiles *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Users: users, Profiles: profiles, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("/me", m.Users.GetAccount)
		auth.PUT("/me", m.Users.UpdateAccount)
		auth.POST("/me/avatar", m.Users.UploadAvatar)

		auth.POST("/profile", m.Profiles.Create)
		auth.GET("/profile", m.Profiles.Get)
		auth.PUT("/profile", m.Profiles.Update)
	}
}
