package repository

import (
	"context"

	"github.com/educore/campus-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// CreateWithWallet persists the user and its wallet as one atomic unit:
// after it returns nil both rows exist, after an error neither does.
type UserRepository interface {
	CreateWithWallet(ctx context.Context, u *entity.User) (*entity.Wallet, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
