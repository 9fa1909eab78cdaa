package service

import (
	"context"
	"time"

	"github.com/littlemangalore/venue-booking/internal/model"
)

// AvailabilityService answers "is this date bookable for this category" and
// "which turf slots are already held". Pure reads; no side effects.
type AvailabilityService struct {
	bookings BookingStore
	blocked  BlockedDateStore
}

func NewAvailabilityService(bookings BookingStore, blocked BlockedDateStore) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, blocked: blocked}
}

// IsBlocked reports whether a blocked date covers the category, via either
// a category-scoped or an all-scope block.
func (s *AvailabilityService) IsBlocked(ctx context.Context, date string, bookingType model.BookingType) (bool, error) {
	blocked, err := s.blocked.ExistsFor(ctx, date, bookingType)
	if err != nil {
		return false, storeErr(err)
	}
	return blocked, nil
}

// TakenSlots returns the turf slots held by confirmed or paid bookings on
// the date. Pending bookings do not occupy a slot.
func (s *AvailabilityService) TakenSlots(ctx context.Context, date string) ([]string, error) {
	slots, err := s.bookings.TakenSlots(ctx, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return slots, nil
}

// DayAvailability combines both checks for the public availability endpoint.
type DayAvailability struct {
	Date       string   `json:"date"`
	Blocked    bool     `json:"blocked"`
	TakenSlots []string `json:"taken_slots"`
}

func (s *AvailabilityService) Check(ctx context.Context, date string, bookingType model.BookingType) (*DayAvailability, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, invalidField("date", "must be YYYY-MM-DD")
	}
	if !bookingType.Valid() {
		return nil, invalidField("category", "must be resort, turf or event")
	}

	blocked, err := s.IsBlocked(ctx, date, bookingType)
	if err != nil {
		return nil, err
	}

	day := &DayAvailability{Date: date, Blocked: blocked, TakenSlots: []string{}}

	if bookingType == model.BookingTypeTurf && !blocked {
		taken, err := s.TakenSlots(ctx, date)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			day.TakenSlots = taken
		}
	}

	return day, nil
}
