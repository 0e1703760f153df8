package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/annrbk/Auth-app-backend/internal/account/domain AccountRepository

import (
	"context"
	"time"

	"github.com/annrbk/Auth-app-backend/internal/account/dto"
)

// AccountRepository is the store gateway the service layer depends on.
// Lookup methods return (nil, nil) when no row matches.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	// Insert persists the account and returns the store-assigned id.
	// A violated email uniqueness constraint yields errors.ErrDuplicateEmail.
	Insert(ctx context.Context, account *Account) (string, error)
	// GetByCredentials matches email and digest on non-blocked accounts only.
	GetByCredentials(ctx context.Context, email, digest string) (*Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetBlocked(ctx context.Context, id string, blocked bool) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]dto.AccountOutput, error)
}
