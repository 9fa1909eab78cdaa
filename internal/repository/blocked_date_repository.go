package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/littlemangalore/venue-booking/internal/model"
)

type BlockedDateRepository struct {
	pool *pgxpool.Pool
}

func NewBlockedDateRepository(pool *pgxpool.Pool) *BlockedDateRepository {
	return &BlockedDateRepository{pool: pool}
}

// Create inserts a blocked date. Duplicate blocks for the same date/scope
// are allowed; they are functionally harmless.
func (r *BlockedDateRepository) Create(ctx context.Context, blocked *model.BlockedDate) error {
	query := `
		INSERT INTO blocked_dates (date, scope, reason)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, blocked.Date, blocked.Scope, blocked.Reason).
		Scan(&blocked.ID, &blocked.CreatedAt)
	if err != nil {
		return fmt.Errorf("create blocked date: %w", err)
	}

	return nil
}

// Delete removes a blocked date, reporting whether a row existed.
func (r *BlockedDateRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM blocked_dates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete blocked date: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ExistsFor reports whether the date is blocked for the category, either
// directly or by an all-scope block.
func (r *BlockedDateRepository) ExistsFor(ctx context.Context, date string, bookingType model.BookingType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocked_dates
			WHERE date = $1 AND (scope = 'all' OR scope = $2)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, date, string(bookingType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blocked date: %w", err)
	}

	return exists, nil
}

// ListRange returns blocked dates within [from, to] inclusive, soonest first.
func (r *BlockedDateRepository) ListRange(ctx context.Context, from, to string) ([]*model.BlockedDate, error) {
	query := `
		SELECT id, date, scope, reason, created_at
		FROM blocked_dates
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	defer rows.Close()

	var blocked []*model.BlockedDate
	for rows.Next() {
		var bd model.BlockedDate
		var date time.Time
		if err := rows.Scan(&bd.ID, &date, &bd.Scope, &bd.Reason, &bd.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blocked date: %w", err)
		}
		bd.Date = date.Format(model.DateLayout)
		blocked = append(blocked, &bd)
	}

	return blocked, rows.Err()
}
