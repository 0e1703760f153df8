package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/annrbk/Auth-app-backend/internal/account/domain"
	"github.com/annrbk/Auth-app-backend/internal/account/dto"
	autherror "github.com/annrbk/Auth-app-backend/internal/errors"
)

// AccountService orchestrates the account lifecycle: registration, login,
// listing, blocking and deletion.
type AccountService struct {
	repo   domain.AccountRepository
	tokens TokenIssuer
	hasher PasswordHasher
	log    *slog.Logger
}

func NewAccountService(repo domain.AccountRepository, tokens TokenIssuer, hasher PasswordHasher, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		log:    log,
	}
}

// Register creates an account with the given credentials. The GetByEmail
// pre-check is a fast path for the common duplicate case; the authoritative
// uniqueness enforcement is the store's constraint, surfaced by Insert as
// ErrDuplicateEmail when two registrations race past the pre-check.
func (s *AccountService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	account := &domain.Account{
		Username:       input.Username,
		Email:          input.Email,
		PasswordDigest: s.hasher.Hash(input.Password),
		Blocked:        false,
		RegisteredAt:   time.Now(),
	}

	id, err := s.repo.Insert(ctx, account)
	if err != nil {
		if errors.Is(err, autherror.ErrDuplicateEmail) {
			return nil, autherror.ErrEmailAlreadyInUse
		}
		return nil, err
	}
	account.ID = id

	return account, nil
}

// Login authenticates by matching email and password digest against
// non-blocked accounts. Unknown email, wrong password and blocked account all
// collapse into ErrInvalidCredentials so callers cannot tell them apart.
func (s *AccountService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, error) {
	digest := s.hasher.Hash(input.Password)

	account, err := s.repo.GetByCredentials(ctx, input.Email, digest)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	// Best effort: a failed last-login update never fails the login itself.
	if err := s.repo.UpdateLastLogin(ctx, account.ID, time.Now()); err != nil {
		s.log.Warn("failed to update last login", "account_id", account.ID, "error", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginOutput{
		Token:     token,
		AccountID: account.ID,
	}, nil
}

// List returns all accounts, blocked ones included, without digests.
func (s *AccountService) List(ctx context.Context) ([]dto.AccountOutput, error) {
	return s.repo.GetAll(ctx)
}

// SetBlocked is idempotent: setting the current value again succeeds.
func (s *AccountService) SetBlocked(ctx context.Context, id string, blocked bool) error {
	return s.repo.SetBlocked(ctx, id, blocked)
}

// Delete removes the account row permanently. Deleting an id that no longer
// exists still succeeds.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
