package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mailtrack/internal/model"
	"mailtrack/internal/track"
)

type EmailRepository struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{db: db}
}

// Create inserts a new trackable email record.
func (r *EmailRepository) Create(ctx context.Context, e *model.Email) error {
	query := `
        INSERT INTO emails (id, shortid, subject, send_count, created_at)
        VALUES ($1, $2, $3, 0, NOW())
        RETURNING created_at
    `
	return r.db.QueryRow(ctx, query, e.ID, e.ShortID, e.Subject).Scan(&e.CreatedAt)
}

// FindBySelector returns the email matched by the selector, or nil
// when no record exists. Absence is not an error on the read path.
func (r *EmailRepository) FindBySelector(ctx context.Context, sel track.Selector) (*model.Email, error) {
	query := `
        SELECT id, shortid, subject, send_count, created_at
        FROM emails
        WHERE shortid = $1
    `
	if sel.ByID {
		query = `
        SELECT id, shortid, subject, send_count, created_at
        FROM emails
        WHERE id = $1
    `
	}

	var e model.Email
	err := r.db.QueryRow(ctx, query, sel.Value).Scan(
		&e.ID,
		&e.ShortID,
		&e.Subject,
		&e.SendCount,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
