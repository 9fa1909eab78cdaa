package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/events"
	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/repository"
)

// StatusService applies operator-driven status transitions. Any non-terminal
// status may move directly to any other value; cancelled is terminal.
type StatusService struct {
	store  BookingStore
	hub    *events.Hub
	logger *zap.Logger
}

func NewStatusService(store BookingStore, hub *events.Hub, logger *zap.Logger) *StatusService {
	return &StatusService{store: store, hub: hub, logger: logger}
}

// mapWriteErr translates store-level write refusals. The store enforces
// slot exclusivity and terminal immutability in the write itself, so a
// concurrent cancel or promotion surfaces here even when the guard read
// above saw an older state.
func mapWriteErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrSlotConflict):
		return ErrSlotTaken
	case errors.Is(err, repository.ErrTerminal):
		return ErrAlreadyTerminal
	case errors.Is(err, repository.ErrNotFound):
		return ErrBookingNotFound
	default:
		return storeErr(err)
	}
}

// SetStatus transitions a booking and returns the updated record.
func (s *StatusService) SetStatus(ctx context.Context, id uuid.UUID, newStatus model.BookingStatus) (*model.Booking, error) {
	if !newStatus.Valid() {
		return nil, invalidField("status", "must be pending, confirmed, paid or cancelled")
	}

	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status == model.BookingStatusCancelled {
		return nil, ErrAlreadyTerminal
	}
	if booking.Status == newStatus {
		return nil, ErrNoStatusChange
	}

	if err := s.store.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, mapWriteErr(err)
	}

	previous := booking.Status
	booking.Status = newStatus

	s.hub.Publish(events.Event{Type: events.StatusChanged, Booking: booking})

	s.logger.Info("Booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(newStatus)),
	)

	return booking, nil
}

// VerifyPayment records the payment collaborator's callback. Verified
// settles the booking as paid; failed demotes an implicitly-trusted UPI
// booking back to pending. Cancelled bookings ignore callbacks.
func (s *StatusService) VerifyPayment(ctx context.Context, id uuid.UUID, state model.PaymentState) (*model.Booking, error) {
	if state != model.PaymentStateVerified && state != model.PaymentStateFailed {
		return nil, invalidField("state", "must be verified or failed")
	}

	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, ErrAlreadyTerminal
	}

	status := booking.Status
	if state == model.PaymentStateVerified {
		status = model.BookingStatusPaid
	} else if booking.Status == model.BookingStatusPaid {
		status = model.BookingStatusPending
	}

	if err := s.store.UpdatePayment(ctx, id, state, status); err != nil {
		return nil, mapWriteErr(err)
	}

	booking.PaymentState = state
	booking.Status = status

	s.hub.Publish(events.Event{Type: events.PaymentUpdated, Booking: booking})

	s.logger.Info("Payment state updated",
		zap.String("booking_id", id.String()),
		zap.String("payment_state", string(state)),
		zap.String("status", string(status)),
	)

	return booking, nil
}
