package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/application"
	"github.com/educore/campus-backend/internal/domain/entity"
	"github.com/educore/campus-backend/pkg/response"
	"github.com/educore/campus-backend/pkg/validation"
)

// ProfileHandler serves the user's public profile.
type ProfileHandler struct {
	Svc    *application.ProfileManager
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileManager, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type profileForm struct {
	Bio         string `form:"bio"`
	GithubURL   string `form:"github_url" binding:"omitempty,url"`
	LinkedinURL string `form:"linkedin_url" binding:"omitempty,url"`
}

func profileBody(p *entity.Profile) gin.H {
	return gin.H{
		"id":           p.ID,
		"user_id":      p.UserID,
		"image_url":    p.ImageURL,
		"bio":          p.Bio,
		"github_url":   p.GithubURL,
		"linkedin_url": p.LinkedinURL,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
}

// Create POST /api/profile — idempotent: repeated calls return the same profile.
func (h *ProfileHandler) Create(c *gin.Context) {
	p, err := h.Svc.CreateForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profileBody(p), "profile", nil)
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetForUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "profile not found", nil)
		return
	}
	response.Success(c, http.StatusOK, profileBody(p), "profile", nil)
}

// Update PUT /api/profile (multipart; image optional)
func (h *ProfileHandler) Update(c *gin.Context) {
	var form profileForm
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

	p, err := h.Svc.UpdatePublicProfile(c.Request.Context(), c.GetString("userID"), application.ProfileInput{
		Bio:         form.Bio,
		GithubURL:   form.GithubURL,
		LinkedinURL: form.LinkedinURL,
	}, img)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProfileNotFound):
			response.Error[any](c, http.StatusNotFound, "profile not found", nil)
		case errors.Is(err, application.ErrAssetWrite):
			response.Error[any](c, http.StatusBadGateway, "image upload failed", nil)
		default:
			h.Logger.WithError(err).Error("update profile failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update profile", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, profileBody(p), "profile updated", nil)
}
