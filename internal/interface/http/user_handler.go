package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/application"
	"github.com/educore/campus-backend/pkg/response"
	"github.com/educore/campus-backend/pkg/validation"
)

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateAccountRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"omitempty,uname"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// GetAccount GET /api/me
func (h *UserHandler) GetAccount(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetAccount(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"username":   u.Username,
		"email":      u.Email,
		"admin":      u.Admin,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}, "account", nil)
}

// UpdateAccount PUT /api/me
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateAccount(c.Request.Context(), uid, application.UpdateAccountInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusBadRequest, "failed to update account", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"username":   u.Username,
		"email":      u.Email,
		"avatar_url": u.AvatarURL,
		"updated_at": u.UpdatedAt,
	}, "account updated", nil)
}

// UploadAvatar POST /api/me/avatar (multipart: file)
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("userID")
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		if errors.Is(err, application.ErrAssetWrite) {
			response.Error[any](c, http.StatusBadGateway, "avatar upload failed", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update avatar", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}
