package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/domain/entity"
	repo "github.com/educore/campus-backend/internal/domain/repository"
)

// ProfileManager owns public profiles and their avatar images, with the
// same put-new-then-delete-old replace protocol as the course catalog.
type ProfileManager struct {
	Profiles repo.ProfileRepository
	Users    repo.UserRepository
	Store    AssetStore
	Logger   *logrus.Logger
}

func NewProfileManager(profiles repo.ProfileRepository, users repo.UserRepository, store AssetStore, logger *logrus.Logger) *ProfileManager {
	return &ProfileManager{Profiles: profiles, Users: users, Store: store, Logger: logger}
}

type ProfileInput struct {
	Bio         string
	GithubURL   string
	LinkedinURL string
}

// CreateForUser creates the user's public profile on demand. Calling it
// again returns the existing profile unchanged; it is never an error.
func (s *ProfileManager) CreateForUser(ctx context.Context, userID string) (*entity.Profile, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Profiles.CreateForUser(ctx, userID)
}

func (s *ProfileManager) GetForUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdatePublicProfile updates the public fields and, when img is supplied,
// replaces the profile image. The row commits the new locator before the
// old object is deleted best-effort.
func (s *ProfileManager) UpdatePublicProfile(ctx context.Context, userID string, in ProfileInput, img *ImageUpload) (*entity.Profile, error) {
	p, err := s.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldLocator := ""
	if img != nil {
		ext := strings.ToLower(filepath.Ext(img.Filename))
		objectPath := filepath.ToSlash(filepath.Join("profiles", userID, uuid.NewString()+ext))
		locator, err := s.Store.Put(ctx, img.Reader, objectPath, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
		}
		oldLocator = p.ImageURL
		p.ImageURL = locator
	}

	p.Bio = in.Bio
	p.GithubURL = in.GithubURL
	p.LinkedinURL = in.LinkedinURL

	if err := s.Profiles.Update(ctx, p); err != nil {
		if img != nil {
			discardAsset(ctx, s.Store, s.Logger, p.ImageURL, "orphan profile image not cleaned up")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	discardAsset(ctx, s.Store, s.Logger, oldLocator, "replaced profile image not deleted")

	return p, nil
}
