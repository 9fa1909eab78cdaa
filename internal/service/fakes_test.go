package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/repository"
)

var errConnRefused = errors.New("connection refused")

// memBookingStore is an in-memory BookingStore that mirrors the database
// contract, including the partial-unique-index behaviour on active turf
// slots.
type memBookingStore struct {
	mu       sync.Mutex
	bookings []*model.Booking
	failing  bool
	// staleReads simulates the read/write race: TakenSlots reports nothing
	// while the uniqueness check on write still holds.
	staleReads bool
	// staleStatus, when set, is the status GetByID reports for every row.
	// Simulates a guard read that predates another writer's update.
	staleStatus model.BookingStatus
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{}
}

func (m *memBookingStore) hasActiveSlot(date, slot string, exclude uuid.UUID) bool {
	for _, b := range m.bookings {
		if b.ID != exclude && b.Type == model.BookingTypeTurf &&
			b.Date == date && b.TimeSlot == slot && b.Status.Active() {
			return true
		}
	}
	return false
}

func (m *memBookingStore) Create(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errConnRefused
	}

	if booking.Type == model.BookingTypeTurf && booking.Status.Active() &&
		m.hasActiveSlot(booking.Date, booking.TimeSlot, uuid.Nil) {
		return repository.ErrSlotConflict
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	stored := *booking
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *memBookingStore) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errConnRefused
	}

	for _, b := range m.bookings {
		if b.ID == id {
			copied := *b
			if m.staleStatus != "" {
				copied.Status = m.staleStatus
			}
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memBookingStore) List(_ context.Context, filter repository.BookingFilter) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errConnRefused
	}

	var out []*model.Booking
	for i := len(m.bookings) - 1; i >= 0; i-- {
		b := m.bookings[i]
		if filter.Type != "" && b.Type != filter.Type {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(b.Name), q) && !strings.Contains(b.Phone, filter.Query) {
				continue
			}
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memBookingStore) TakenSlots(_ context.Context, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errConnRefused
	}
	if m.staleReads {
		return nil, nil
	}

	var slots []string
	for _, b := range m.bookings {
		if b.Type == model.BookingTypeTurf && b.Date == date && b.Status.Active() {
			slots = append(slots, b.TimeSlot)
		}
	}
	return slots, nil
}

func (m *memBookingStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errConnRefused
	}

	for _, b := range m.bookings {
		if b.ID != id {
			continue
		}
		if b.Status == model.BookingStatusCancelled {
			return repository.ErrTerminal
		}
		if b.Type == model.BookingTypeTurf && status.Active() &&
			m.hasActiveSlot(b.Date, b.TimeSlot, id) {
			return repository.ErrSlotConflict
		}
		b.Status = status
		b.UpdatedAt = time.Now()
		return nil
	}
	return repository.ErrNotFound
}

func (m *memBookingStore) UpdatePayment(_ context.Context, id uuid.UUID, state model.PaymentState, status model.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errConnRefused
	}

	for _, b := range m.bookings {
		if b.ID != id {
			continue
		}
		if b.Status == model.BookingStatusCancelled {
			return repository.ErrTerminal
		}
		if b.Type == model.BookingTypeTurf && status.Active() && !b.Status.Active() &&
			m.hasActiveSlot(b.Date, b.TimeSlot, id) {
			return repository.ErrSlotConflict
		}
		b.PaymentState = state
		b.Status = status
		b.UpdatedAt = time.Now()
		return nil
	}
	return repository.ErrNotFound
}

// memBlockedStore is an in-memory BlockedDateStore.
type memBlockedStore struct {
	mu      sync.Mutex
	blocked []*model.BlockedDate
	failing bool
}

func newMemBlockedStore() *memBlockedStore {
	return &memBlockedStore{}
}

func (m *memBlockedStore) Create(_ context.Context, bd *model.BlockedDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errConnRefused
	}

	bd.ID = uuid.New()
	bd.CreatedAt = time.Now()
	stored := *bd
	m.blocked = append(m.blocked, &stored)
	return nil
}

func (m *memBlockedStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return false, errConnRefused
	}

	for i, bd := range m.blocked {
		if bd.ID == id {
			m.blocked = append(m.blocked[:i], m.blocked[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memBlockedStore) ExistsFor(_ context.Context, date string, bookingType model.BookingType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return false, errConnRefused
	}

	for _, bd := range m.blocked {
		if bd.Date == date && bd.Scope.Covers(bookingType) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBlockedStore) ListRange(_ context.Context, from, to string) ([]*model.BlockedDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errConnRefused
	}

	var out []*model.BlockedDate
	for _, bd := range m.blocked {
		if bd.Date >= from && bd.Date <= to {
			copied := *bd
			out = append(out, &copied)
		}
	}
	return out, nil
}
