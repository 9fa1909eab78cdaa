package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/events"
	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/notify"
	"github.com/littlemangalore/venue-booking/internal/payment"
	"github.com/littlemangalore/venue-booking/internal/repository"
)

// SubmitRequest is a customer's booking request as posted by the forms.
type SubmitRequest struct {
	Type          model.BookingType   `json:"type"`
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Date          string              `json:"date"` // YYYY-MM-DD
	TimeSlot      string              `json:"time_slot"`
	RoomType      string              `json:"room_type"`
	EventType     string              `json:"event_type"` // event kind, or sport for turf
	Guests        int                 `json:"guests"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Notes         string              `json:"notes"`
}

// Confirmation is returned to the caller on success: the persisted record,
// its reference code and the collaborator deep links.
type Confirmation struct {
	Booking       *model.Booking `json:"booking"`
	Ref           string         `json:"ref"`
	AdvanceAmount int            `json:"advance_amount"`
	WhatsAppURL   string         `json:"wa_url"`
	UPIURL        string         `json:"upi_url,omitempty"`
}

type BookingService struct {
	store        BookingStore
	availability *AvailabilityService
	whatsapp     *notify.WhatsApp
	upi          *payment.UPI
	hub          *events.Hub
	logger       *zap.Logger
}

func NewBookingService(
	store BookingStore,
	availability *AvailabilityService,
	whatsapp *notify.WhatsApp,
	upi *payment.UPI,
	hub *events.Hub,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:        store,
		availability: availability,
		whatsapp:     whatsapp,
		upi:          upi,
		hub:          hub,
		logger:       logger,
	}
}

// Submit validates and creates a booking. Rejections are deterministic
// (validation, blocked date, taken slot); only store failures are worth a
// caller retry.
func (s *BookingService) Submit(ctx context.Context, req SubmitRequest) (*Confirmation, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	blocked, err := s.availability.IsBlocked(ctx, req.Date, req.Type)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrDateBlocked
	}

	if req.Type == model.BookingTypeTurf {
		taken, err := s.availability.TakenSlots(ctx, req.Date)
		if err != nil {
			return nil, err
		}
		for _, slot := range taken {
			if slot == req.TimeSlot {
				return nil, ErrSlotTaken
			}
		}
	}

	// Selecting UPI counts as paid at creation; the payment collaborator's
	// callback later settles payment_state (and can demote on failure).
	status := model.BookingStatusPending
	if req.PaymentMethod == model.PaymentMethodUPI {
		status = model.BookingStatusPaid
	}

	booking := &model.Booking{
		Type:          req.Type,
		Name:          req.Name,
		Phone:         req.Phone,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		RoomType:      req.RoomType,
		EventType:     req.EventType,
		Guests:        req.Guests,
		PaymentMethod: req.PaymentMethod,
		PaymentState:  model.PaymentStateUnverified,
		Status:        status,
		Notes:         req.Notes,
	}

	if err := s.store.Create(ctx, booking); err != nil {
		// A concurrent submission won the slot between our read and this
		// write; the store's unique index is the authority.
		if errors.Is(err, repository.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		return nil, storeErr(err)
	}

	ref := booking.Ref()
	amount := model.AdvanceAmount(booking.Type)

	conf := &Confirmation{
		Booking:       booking,
		Ref:           ref,
		AdvanceAmount: amount,
		WhatsAppURL:   s.whatsapp.Link(booking, ref),
	}
	if booking.PaymentMethod == model.PaymentMethodUPI {
		conf.UPIURL = s.upi.IntentLink(amount, ref)
	}

	s.hub.Publish(events.Event{Type: events.BookingCreated, Booking: booking})

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ref", ref),
		zap.String("type", string(booking.Type)),
		zap.String("date", booking.Date),
		zap.String("status", string(booking.Status)),
	)

	return conf, nil
}

// GetByID returns the booking or ErrBookingNotFound.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// List returns bookings matching the filter, newest first.
func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]*model.Booking, error) {
	bookings, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return bookings, nil
}

// PaymentQR renders the UPI QR code for an existing UPI booking.
func (s *BookingService) PaymentQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.PaymentMethod != model.PaymentMethodUPI {
		return nil, invalidField("payment_method", "booking is not payable by UPI")
	}
	return s.upi.QRCode(model.AdvanceAmount(booking.Type), booking.Ref())
}

func validateSubmit(req SubmitRequest) error {
	if !req.Type.Valid() {
		return invalidField("type", "must be resort, turf or event")
	}
	if req.Name == "" {
		return invalidField("name", "required")
	}
	if req.Phone == "" {
		return invalidField("phone", "required")
	}
	if req.Date == "" {
		return invalidField("date", "required")
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return invalidField("date", "must be YYYY-MM-DD")
	}
	if !req.PaymentMethod.Valid() {
		return invalidField("payment_method", "must be upi or venue")
	}
	if req.Guests < 0 {
		return invalidField("guests", "must not be negative")
	}

	switch req.Type {
	case model.BookingTypeTurf:
		if req.TimeSlot == "" {
			return invalidField("time_slot", "required for turf bookings")
		}
		if !model.ValidTimeSlot(req.TimeSlot) {
			return invalidField("time_slot", "not a recognised slot")
		}
	case model.BookingTypeResort:
		if req.RoomType == "" {
			return invalidField("room_type", "required for resort bookings")
		}
		if req.Guests < 1 {
			return invalidField("guests", "at least 1 guest required")
		}
	case model.BookingTypeEvent:
		if req.EventType == "" {
			return invalidField("event_type", "required for event bookings")
		}
	}

	return nil
}
