package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackingRepository applies the multi-record tracking mutations that
// have to land atomically.
type TrackingRepository struct {
	db *pgxpool.Pool
}

func NewTrackingRepository(db *pgxpool.Pool) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// IncrementSend counts a send exactly once per (sender, shortid) pair.
// The membership guard and both writes run in one transaction: the
// conditional append to sent_email_list doubles as the idempotence
// check, so two concurrent first sends cannot both increment. Returns
// false when the pair was already counted (or the sender row does not
// exist); nothing is written in that case.
func (r *TrackingRepository) IncrementSend(ctx context.Context, shortID, senderEmail string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	appendQuery := `
        UPDATE users
        SET sent_email_list = array_append(sent_email_list, $2)
        WHERE email = $1 AND NOT ($2 = ANY(sent_email_list))
    `
	res, err := tx.Exec(ctx, appendQuery, senderEmail, shortID)
	if err != nil {
		return false, fmt.Errorf("failed to append sent email: %w", err)
	}
	if res.RowsAffected() == 0 {
		return false, nil
	}

	incrementQuery := `
        UPDATE emails
        SET send_count = send_count + 1
        WHERE shortid = $1
    `
	res, err = tx.Exec(ctx, incrementQuery, shortID)
	if err != nil {
		return false, fmt.Errorf("failed to increment send count: %w", err)
	}
	if res.RowsAffected() == 0 {
		return false, fmt.Errorf("no email with shortid %q", shortID)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit tx: %w", err)
	}
	return true, nil
}
