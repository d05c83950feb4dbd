package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailtrack/internal/track"
)

type IssueRepository struct {
	db *pgxpool.Pool
}

func NewIssueRepository(db *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{db: db}
}

// Upsert creates or updates the issue keyed by (email shortid,
// reporter email). Only the field the parsed payload carries is
// written; a payload with no recognized field still ensures the issue
// row exists but overwrites nothing.
func (r *IssueRepository) Upsert(ctx context.Context, shortID, addedBy string, p track.ReportPayload) error {
	var query string
	args := []any{shortID, addedBy}

	switch p.Kind {
	case track.ReportTyped:
		query = `
            INSERT INTO issues (email_id, added_by, type)
            VALUES ($1, $2, $3)
            ON CONFLICT (email_id, added_by)
            DO UPDATE SET type = EXCLUDED.type, updated_at = NOW()
        `
		args = append(args, p.Type)
	case track.ReportCustom:
		query = `
            INSERT INTO issues (email_id, added_by, description)
            VALUES ($1, $2, $3)
            ON CONFLICT (email_id, added_by)
            DO UPDATE SET description = EXCLUDED.description, updated_at = NOW()
        `
		args = append(args, p.Description)
	default:
		query = `
            INSERT INTO issues (email_id, added_by)
            VALUES ($1, $2)
            ON CONFLICT (email_id, added_by) DO NOTHING
        `
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert issue: %w", err)
	}
	return nil
}
