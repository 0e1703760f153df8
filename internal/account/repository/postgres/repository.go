package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annrbk/Auth-app-backend/internal/account/domain"
	"github.com/annrbk/Auth-app-backend/internal/account/dto"
	autherror "github.com/annrbk/Auth-app-backend/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// queryTimeout bounds every store call; a slow store surfaces as an error
// instead of stalling the request.
const queryTimeout = 5 * time.Second

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies it
// too, which keeps the SQL tests off a live database.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, username, email, password_digest, is_blocked, registration_date, last_login
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordDigest,
		&account.Blocked, &account.RegisteredAt, &account.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, account *domain.Account) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (username, email, password_digest, is_blocked, registration_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`

	var id string
	err := r.db.QueryRow(ctx, query,
		account.Username, account.Email, account.PasswordDigest,
		account.Blocked, account.RegisteredAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return "", autherror.ErrDuplicateEmail
		}
		return "", fmt.Errorf("failed to insert account: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByCredentials(ctx context.Context, email, digest string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, username, email, password_digest, is_blocked, registration_date, last_login
		FROM users
		WHERE email = $1 AND password_digest = $2 AND is_blocked = FALSE
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email, digest)

	var account domain.Account
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordDigest,
		&account.Blocked, &account.RegisteredAt, &account.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by credentials: %w", err)
	}

	return &account, nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// SetBlocked updates the blocked flag. Zero rows affected is not an error:
// the operation is idempotent and tolerant of already-deleted ids.
func (r *PostgresRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET is_blocked = $1 WHERE id = $2`, blocked, id)
	if err != nil {
		return fmt.Errorf("failed to set blocked: %w", err)
	}

	return nil
}

// Delete removes the row. The store does not distinguish deleting an absent
// id from a present one.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]dto.AccountOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, username, email, is_blocked, registration_date, last_login
		FROM users
		ORDER BY registration_date;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	// Never nil: an empty table must serialize as [] at the HTTP layer.
	accounts := []dto.AccountOutput{}
	for rows.Next() {
		var a dto.AccountOutput
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.Blocked, &a.RegistrationDate, &a.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}

	return accounts, nil
}
