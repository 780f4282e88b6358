package application

import (
	"context"
	"errors"
	"testing"
)

func newProfileFixture() (*ProfileManager, *memProfiles, *memAssets, string) {
	users := newMemUsers()
	profiles := newMemProfiles()
	store := newMemAssets()
	u := users.addUser("TestUser", "test@gmail.com")
	return NewProfileManager(profiles, users, store, nil), profiles, store, u.ID
}

func TestCreateProfileIdempotent(t *testing.T) {
	svc, profiles, _, userID := newProfileFixture()

	first, err := svc.CreateForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("first CreateForUser: %v", err)
	}
	second, err := svc.CreateForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("second CreateForUser: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("profile IDs differ: %q vs %q", first.ID, second.ID)
	}
	if len(profiles.byUser) != 1 {
		t.Fatalf("profile rows = %d, want 1", len(profiles.byUser))
	}
}

func TestCreateProfileUnknownUser(t *testing.T) {
	svc, _, _, _ := newProfileFixture()

	_, err := svc.CreateForUser(context.Background(), "user-missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestGetProfileMissing(t *testing.T) {
	svc, _, _, userID := newProfileFixture()

	_, err := svc.GetForUser(context.Background(), userID)
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateProfileFields(t *testing.T) {
	svc, _, _, userID := newProfileFixture()

	if _, err := svc.CreateForUser(context.Background(), userID); err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}

	p, err := svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{
		Bio:         "Go developer",
		GithubURL:   "https://github.com/testuser",
		LinkedinURL: "https://linkedin.com/in/testuser",
	}, nil)
	if err != nil {
		t.Fatalf("UpdatePublicProfile: %v", err)
	}
	if p.Bio != "Go developer" || p.GithubURL != "https://github.com/testuser" {
		t.Fatalf("fields not updated: %+v", p)
	}
	if p.ImageURL != "" {
		t.Fatalf("locator set without an upload: %q", p.ImageURL)
	}
}

func TestUpdateProfileReplacesImage(t *testing.T) {
	svc, _, store, userID := newProfileFixture()

	if _, err := svc.CreateForUser(context.Background(), userID); err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}

	first, err := svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{}, upload("v1"))
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{}, upload("v2"))
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if second.ImageURL == first.ImageURL {
		t.Fatalf("locator unchanged after replace")
	}
	if !store.live(second.ImageURL) {
		t.Fatalf("new object not stored")
	}
	if store.live(first.ImageURL) {
		t.Fatalf("old object still live after replace")
	}
}

func TestUpdateProfileImageFailureKeepsOld(t *testing.T) {
	svc, _, store, userID := newProfileFixture()

	if _, err := svc.CreateForUser(context.Background(), userID); err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}
	first, err := svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{}, upload("v1"))
	if err != nil {
		t.Fatalf("first update: %v", err)
	}

	store.failPut = true
	_, err = svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{}, upload("v2"))
	if !errors.Is(err, ErrAssetWrite) {
		t.Fatalf("err = %v, want ErrAssetWrite", err)
	}

	got, err := svc.GetForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if got.ImageURL != first.ImageURL {
		t.Fatalf("locator = %q after failed put, want %q", got.ImageURL, first.ImageURL)
	}
	if !store.live(first.ImageURL) {
		t.Fatalf("previous image no longer live")
	}
}

func TestUpdateProfileRowFailureCleansUpNewImage(t *testing.T) {
	svc, profiles, store, userID := newProfileFixture()

	if _, err := svc.CreateForUser(context.Background(), userID); err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}

	profiles.failUpd = true
	_, err := svc.UpdatePublicProfile(context.Background(), userID, ProfileInput{}, upload("v1"))
	if err == nil {
		t.Fatalf("update succeeded with failing storage")
	}
	if store.liveCount() != 0 {
		t.Fatalf("orphan object left after failed update: %d live", store.liveCount())
	}
}
