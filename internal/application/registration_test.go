package application

import (
	"context"
	"errors"
	"testing"

	"github.com/educore/campus-backend/pkg/helpers"
)

func TestRegisterCreatesUserAndWallet(t *testing.T) {
	users := newMemUsers()
	notifier := &memNotifier{}
	svc := NewRegistrationService(users, notifier, nil)

	res, err := svc.Register(context.Background(), RegisterInput{
		Name:     "TestUser",
		Username: "username",
		Email:    "test@gmail.com",
		Password: "password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.ID == "" {
		t.Fatalf("user ID not assigned")
	}
	if res.Wallet == nil {
		t.Fatalf("wallet not created")
	}
	if res.Wallet.UserID != res.User.ID {
		t.Fatalf("wallet belongs to %q, want %q", res.Wallet.UserID, res.User.ID)
	}
	if res.Wallet.Balance != 0 {
		t.Fatalf("wallet balance = %v, want 0", res.Wallet.Balance)
	}
	if got := notifier.sentCount(); got != 1 {
		t.Fatalf("greetings sent = %d, want 1", got)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newMemUsers()
	svc := NewRegistrationService(users, nil, nil)

	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "TestUser", Username: "username", Email: "test@gmail.com", Password: "password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Password == "password" {
		t.Fatalf("password stored in plain text")
	}
	if !helpers.CompareHashAndPassword(res.User.Password, "password") {
		t.Fatalf("stored hash does not match the password")
	}
}

func TestRegisterStoreFailureCreatesNothing(t *testing.T) {
	users := newMemUsers()
	users.failCreate = true
	notifier := &memNotifier{}
	svc := NewRegistrationService(users, notifier, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "TestUser", Username: "username", Email: "test@gmail.com", Password: "password",
	})
	if !errors.Is(err, ErrProvisioning) {
		t.Fatalf("err = %v, want ErrProvisioning", err)
	}
	if u, w := users.count(); u != 0 || w != 0 {
		t.Fatalf("users=%d wallets=%d after failed registration, want 0/0", u, w)
	}
	if got := notifier.sentCount(); got != 0 {
		t.Fatalf("greeting sent after failed registration")
	}
}

func TestRegisterNotifierFailureStillSucceeds(t *testing.T) {
	users := newMemUsers()
	notifier := &memNotifier{fail: true}
	svc := NewRegistrationService(users, notifier, nil)

	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "TestUser", Username: "username", Email: "test@gmail.com", Password: "password",
	})
	if err != nil {
		t.Fatalf("Register failed on notifier error: %v", err)
	}
	if u, w := users.count(); u != 1 || w != 1 {
		t.Fatalf("users=%d wallets=%d, want 1/1", u, w)
	}
	if res.Wallet.UserID != res.User.ID {
		t.Fatalf("wallet belongs to %q, want %q", res.Wallet.UserID, res.User.ID)
	}
}
