package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/littlemangalore/venue-booking/internal/model"
)

// BookingFilter narrows List results. Zero values mean "any".
type BookingFilter struct {
	Type   model.BookingType
	Status model.BookingStatus
	Query  string // matches name (case-insensitive) or phone substring
}

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, type, name, phone, date, time_slot, room_type, event_type,
		guests, payment_method, payment_state, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	var date time.Time
	err := row.Scan(
		&b.ID,
		&b.Type,
		&b.Name,
		&b.Phone,
		&date,
		&b.TimeSlot,
		&b.RoomType,
		&b.EventType,
		&b.Guests,
		&b.PaymentMethod,
		&b.PaymentState,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Date = date.Format(model.DateLayout)
	return &b, nil
}

// Create inserts a new booking. The database assigns id and timestamps.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (type, name, phone, date, time_slot, room_type, event_type,
			guests, payment_method, payment_state, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.Type,
		booking.Name,
		booking.Phone,
		booking.Date,
		booking.TimeSlot,
		booking.RoomType,
		booking.EventType,
		booking.Guests,
		booking.PaymentMethod,
		booking.PaymentState,
		booking.Status,
		booking.Notes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID returns the booking or nil when it does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// List returns bookings matching the filter, newest first.
func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR phone LIKE '%' || $3 || '%')
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, string(filter.Type), string(filter.Status), filter.Query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// TakenSlots returns the turf slots actively held on a date. Pending
// bookings do not appear here.
func (r *BookingRepository) TakenSlots(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT time_slot
		FROM bookings
		WHERE type = 'turf' AND date = $1 AND status IN ('confirmed', 'paid')
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get taken slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// UpdateStatus sets a booking's status. Promoting a turf booking into an
// already-held slot trips the partial unique index and returns
// ErrSlotConflict. Cancelled rows never match the WHERE clause, so a
// concurrent cancel cannot be overwritten by a slower writer.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status <> 'cancelled'
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return r.noRowsReason(ctx, id)
	}

	return nil
}

// noRowsReason distinguishes a missing row from one the terminal-status
// guard filtered out.
func (r *BookingRepository) noRowsReason(ctx context.Context, id uuid.UUID) error {
	var status model.BookingStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
	switch {
	case err == pgx.ErrNoRows:
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("inspect booking status: %w", err)
	default:
		return ErrTerminal
	}
}

// UpdatePayment records the verification outcome and the status derived
// from it in one write.
func (r *BookingRepository) UpdatePayment(ctx context.Context, id uuid.UUID, state model.PaymentState, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET payment_state = $1, status = $2, updated_at = now()
		WHERE id = $3 AND status <> 'cancelled'
	`

	result, err := r.pool.Exec(ctx, query, state, status, id)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("update booking payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return r.noRowsReason(ctx, id)
	}

	return nil
}
