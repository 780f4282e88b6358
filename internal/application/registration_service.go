package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/educore/campus-backend/internal/domain/entity"
	repo "github.com/educore/campus-backend/internal/domain/repository"
	"github.com/educore/campus-backend/pkg/helpers"
)

// RegistrationService creates accounts. Uniqueness of username/email and
// field presence are guaranteed upstream by the binding layer; this service
// owns the user+wallet atomic unit and the greeting side effect.
type RegistrationService struct {
	Users    repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewRegistrationService(users repo.UserRepository, notifier Notifier, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{Users: users, Notifier: notifier, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type RegisterResult struct {
	User   *entity.User
	Wallet *entity.Wallet
}

// Register persists the user and its wallet as one transaction, then
// enqueues the greeting. A notifier failure never rolls back or fails the
// registration; it is logged and the result returned as success.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	u := &entity.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	w, err := s.Users.CreateWithWallet(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvisioning, err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendRegistrationGreeting(ctx, u.Email, u.Name); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("registration greeting not sent")
		}
	}

	return &RegisterResult{User: u, Wallet: w}, nil
}
