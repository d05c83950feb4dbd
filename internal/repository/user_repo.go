package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailtrack/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, password_hash, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, u.Email, u.PasswordHash).Scan(&u.ID)
}

// FindByEmail returns user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, email, password_hash, auth_provider, last_login,
               sent_email_list, ignored_email_list, created_at
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.AuthProvider,
		&u.LastLogin,
		&u.SentEmailList,
		&u.IgnoredEmailList,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TouchLogin refreshes the sign-in bookkeeping on the user row.
func (r *UserRepository) TouchLogin(ctx context.Context, email, provider string) error {
	query := `
        UPDATE users
        SET auth_provider = $2, last_login = NOW()
        WHERE email = $1
    `
	_, err := r.db.Exec(ctx, query, email, provider)
	return err
}

// AppendIgnored adds a shortid to the user's suppressed list. The
// membership check keeps the list duplicate-free; re-suppressing is a
// silent no-op, never an error.
func (r *UserRepository) AppendIgnored(ctx context.Context, email, shortID string) error {
	query := `
        UPDATE users
        SET ignored_email_list = array_append(ignored_email_list, $2)
        WHERE email = $1 AND NOT ($2 = ANY(ignored_email_list))
    `
	_, err := r.db.Exec(ctx, query, email, shortID)
	if err != nil {
		return fmt.Errorf("failed to append ignored email: %w", err)
	}
	return nil
}
