package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlotConflict is returned when a write would leave two actively-held
// bookings on the same turf date+slot. The partial unique index
// bookings_turf_slot_active_idx is the single source of this guarantee;
// both inserts and status promotions can trip it.
var ErrSlotConflict = errors.New("active booking already holds this slot")

// ErrNotFound is returned by updates that matched no row.
var ErrNotFound = errors.New("booking not found")

// ErrTerminal is returned by updates refused because the row is cancelled.
// The guard lives in the UPDATE's WHERE clause, so it holds across
// concurrent writers the same way the slot index does.
var ErrTerminal = errors.New("booking is cancelled")

const uniqueViolation = "23505"

func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && pgErr.ConstraintName == "bookings_turf_slot_active_idx"
	}
	return false
}
