package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/repository"
)

// BookingStore is the persistence contract the services need from the
// booking set. *repository.BookingRepository satisfies it; tests use an
// in-memory fake.
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]*model.Booking, error)
	TakenSlots(ctx context.Context, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	UpdatePayment(ctx context.Context, id uuid.UUID, state model.PaymentState, status model.BookingStatus) error
}

// BlockedDateStore is the persistence contract for the blocked-date
// registry.
type BlockedDateStore interface {
	Create(ctx context.Context, blocked *model.BlockedDate) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsFor(ctx context.Context, date string, bookingType model.BookingType) (bool, error)
	ListRange(ctx context.Context, from, to string) ([]*model.BlockedDate, error)
}
