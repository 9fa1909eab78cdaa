package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for booking dates. Dates carry no time
// component; ISO strings compare correctly with plain <=/>=.
const DateLayout = "2006-01-02"

type BookingType string

const (
	BookingTypeResort BookingType = "resort"
	BookingTypeTurf   BookingType = "turf"
	BookingTypeEvent  BookingType = "event"
)

func (t BookingType) Valid() bool {
	switch t {
	case BookingTypeResort, BookingTypeTurf, BookingTypeEvent:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled" // terminal
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid, BookingStatusCancelled:
		return true
	}
	return false
}

// Active reports whether a booking in this status holds its turf slot.
// Pending bookings do not reserve a slot.
func (s BookingStatus) Active() bool {
	return s == BookingStatusConfirmed || s == BookingStatusPaid
}

type PaymentMethod string

const (
	PaymentMethodUPI   PaymentMethod = "upi"
	PaymentMethodVenue PaymentMethod = "venue"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodUPI || m == PaymentMethodVenue
}

// PaymentState tracks server-side payment verification, updated only by the
// payment collaborator's callback.
type PaymentState string

const (
	PaymentStateUnverified PaymentState = "unverified"
	PaymentStateVerified   PaymentState = "verified"
	PaymentStateFailed     PaymentState = "failed"
)

func (p PaymentState) Valid() bool {
	switch p {
	case PaymentStateUnverified, PaymentStateVerified, PaymentStateFailed:
		return true
	}
	return false
}

// TimeSlots are the bookable turf windows.
var TimeSlots = []string{"6AM-9AM", "9AM-5PM", "5PM-9PM", "9PM-12AM"}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// AdvanceAmounts is the fixed advance charged per category (₹). Booking
// quotes and analytics revenue both read this table; keep it single-sourced.
var AdvanceAmounts = map[BookingType]int{
	BookingTypeResort: 500,
	BookingTypeTurf:   200,
	BookingTypeEvent:  1000,
}

func AdvanceAmount(t BookingType) int {
	return AdvanceAmounts[t]
}

type Booking struct {
	ID            uuid.UUID     `json:"id"`
	Type          BookingType   `json:"type"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Date          string        `json:"date"` // YYYY-MM-DD
	TimeSlot      string        `json:"time_slot,omitempty"`
	RoomType      string        `json:"room_type,omitempty"`
	EventType     string        `json:"event_type,omitempty"` // event kind; also the sport for turf
	Guests        int           `json:"guests,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentState  PaymentState  `json:"payment_state"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Ref is the short human-readable reference code communicated to the
// customer: the first UUID segment, uppercased.
func (b *Booking) Ref() string {
	return strings.ToUpper(strings.SplitN(b.ID.String(), "-", 2)[0])
}

// ShortID is the reference in its original case, used in exports.
func (b *Booking) ShortID() string {
	return strings.SplitN(b.ID.String(), "-", 2)[0]
}

// Descriptor returns the category-specific line: turf slot, room tier or
// event kind, whichever is set.
func (b *Booking) Descriptor() string {
	switch {
	case b.TimeSlot != "":
		return b.TimeSlot
	case b.RoomType != "":
		return b.RoomType
	default:
		return b.EventType
	}
}
