package application

import (
	"context"
	"errors"
	"testing"

	"github.com/educore/campus-backend/pkg/helpers"
)

func TestAuthenticate(t *testing.T) {
	users := newMemUsers()
	u := users.addUser("TestUser", "test@gmail.com")
	hash, err := helpers.HashPassword("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u.Password = hash
	if err := users.Update(context.Background(), u); err != nil {
		t.Fatalf("seed password: %v", err)
	}

	svc := NewUserService(users, nil, nil, nil, nil)

	got, err := svc.Authenticate(context.Background(), "test@gmail.com", "password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated user = %q, want %q", got.ID, u.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "test@gmail.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@gmail.com", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUploadAvatarReplacesOld(t *testing.T) {
	users := newMemUsers()
	store := newMemAssets()
	u := users.addUser("TestUser", "test@gmail.com")
	svc := NewUserService(users, nil, store, nil, nil)

	first, err := svc.UploadAvatar(context.Background(), u.ID, *upload("v1"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := svc.UploadAvatar(context.Background(), u.ID, *upload("v2"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second == first {
		t.Fatalf("locator unchanged after replace")
	}
	if !store.live(second) {
		t.Fatalf("new avatar not stored")
	}
	if store.live(first) {
		t.Fatalf("old avatar still live after replace")
	}

	got, err := svc.GetAccount(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.AvatarURL != second {
		t.Fatalf("row locator = %q, want %q", got.AvatarURL, second)
	}
}

func TestUploadAvatarRowFailureCleansUp(t *testing.T) {
	users := newMemUsers()
	store := newMemAssets()
	u := users.addUser("TestUser", "test@gmail.com")
	svc := NewUserService(users, nil, store, nil, nil)

	users.failUpdate = true
	_, err := svc.UploadAvatar(context.Background(), u.ID, *upload("v1"))
	if err == nil {
		t.Fatalf("upload succeeded with failing storage")
	}
	if store.liveCount() != 0 {
		t.Fatalf("orphan avatar left after failed update: %d live", store.liveCount())
	}
}

func TestUpdateAccountChangesFields(t *testing.T) {
	users := newMemUsers()
	u := users.addUser("TestUser", "test@gmail.com")
	svc := NewUserService(users, nil, nil, nil, nil)

	got, err := svc.UpdateAccount(context.Background(), u.ID, UpdateAccountInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("name = %q, want Renamed", got.Name)
	}
	if got.Email != "test@gmail.com" {
		t.Fatalf("email changed unexpectedly: %q", got.Email)
	}
}
