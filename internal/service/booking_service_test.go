package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/notify"
	"github.com/littlemangalore/venue-booking/internal/payment"
	"github.com/littlemangalore/venue-booking/internal/repository"
)

type testEnv struct {
	store    *memBookingStore
	blocked  *memBlockedStore
	bookings *BookingService
	statuses *StatusService
	calendar *CalendarService
}

func newTestEnv() *testEnv {
	store := newMemBookingStore()
	blocked := newMemBlockedStore()
	logger := zap.NewNop()

	availability := NewAvailabilityService(store, blocked)
	whatsapp := notify.NewWhatsApp("918050006565")
	upi := payment.NewUPI("littlemangalore@upi", "Little Mangalore")

	return &testEnv{
		store:    store,
		blocked:  blocked,
		bookings: NewBookingService(store, availability, whatsapp, upi, nil, logger),
		statuses: NewStatusService(store, nil, logger),
		calendar: NewCalendarService(blocked, nil, logger),
	}
}

func turfRequest(slot string, method model.PaymentMethod) SubmitRequest {
	return SubmitRequest{
		Type:          model.BookingTypeTurf,
		Name:          "Ravi Kumar",
		Phone:         "9876543210",
		Date:          "2025-06-01",
		TimeSlot:      slot,
		EventType:     "Football",
		PaymentMethod: method,
	}
}

func resortRequest() SubmitRequest {
	return SubmitRequest{
		Type:          model.BookingTypeResort,
		Name:          "Anita Shetty",
		Phone:         "9123456780",
		Date:          "2025-07-04",
		RoomType:      "Deluxe",
		Guests:        2,
		PaymentMethod: model.PaymentMethodVenue,
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SubmitRequest)
		field  string
	}{
		{"unknown type", func(r *SubmitRequest) { r.Type = "spa" }, "type"},
		{"missing name", func(r *SubmitRequest) { r.Name = "" }, "name"},
		{"missing phone", func(r *SubmitRequest) { r.Phone = "" }, "phone"},
		{"missing date", func(r *SubmitRequest) { r.Date = "" }, "date"},
		{"bad date", func(r *SubmitRequest) { r.Date = "01/06/2025" }, "date"},
		{"bad payment method", func(r *SubmitRequest) { r.PaymentMethod = "card" }, "payment_method"},
		{"missing room", func(r *SubmitRequest) { r.RoomType = "" }, "room_type"},
		{"zero guests", func(r *SubmitRequest) { r.Guests = 0 }, "guests"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := resortRequest()
			tc.mutate(&req)

			_, err := env.bookings.Submit(ctx, req)
			ve := AsValidation(err)
			require.NotNil(t, ve, "expected validation error, got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	// no record reaches the store on validation failure
	all, err := env.store.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitTurfValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := turfRequest("", model.PaymentMethodVenue)
	_, err := env.bookings.Submit(ctx, req)
	ve := AsValidation(err)
	require.NotNil(t, ve)
	assert.Equal(t, "time_slot", ve.Field)

	req = turfRequest("10AM-11AM", model.PaymentMethodVenue)
	_, err = env.bookings.Submit(ctx, req)
	ve = AsValidation(err)
	require.NotNil(t, ve)
	assert.Equal(t, "time_slot", ve.Field)
}

func TestSubmitBlockedDate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.calendar.Block(ctx, "2025-07-04", model.BlockScopeAll, "maintenance")
	require.NoError(t, err)

	_, err = env.bookings.Submit(ctx, resortRequest())
	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestSubmitCategoryScopedBlock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.calendar.Block(ctx, "2025-06-01", model.BlockScopeTurf, "re-turfing")
	require.NoError(t, err)

	_, err = env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodVenue))
	assert.ErrorIs(t, err, ErrDateBlocked)

	// the block does not cover other categories
	resort := resortRequest()
	resort.Date = "2025-06-01"
	conf, err := env.bookings.Submit(ctx, resort)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, conf.Booking.Status)
}

// Pending turf bookings do not hold their slot; only confirmed/paid do.
func TestSubmitTurfSlotLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodVenue))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, first.Booking.Status)

	// the pending booking never reached confirmed/paid, so the slot is open
	second, err := env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodUPI))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPaid, second.Booking.Status)

	_, err = env.statuses.SetStatus(ctx, second.Booking.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	// now the slot is actively held
	_, err = env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodVenue))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// a different slot on the same date is still bookable
	_, err = env.bookings.Submit(ctx, turfRequest("5PM-9PM", model.PaymentMethodVenue))
	assert.NoError(t, err)
}

func TestSubmitUPIPaidImmediately(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := resortRequest()
	req.PaymentMethod = model.PaymentMethodUPI

	conf, err := env.bookings.Submit(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPaid, conf.Booking.Status)
	assert.Equal(t, model.PaymentStateUnverified, conf.Booking.PaymentState)
	assert.Equal(t, 500, conf.AdvanceAmount)

	assert.Len(t, conf.Ref, 8)
	assert.Equal(t, strings.ToUpper(conf.Ref), conf.Ref)
	assert.True(t, strings.HasPrefix(strings.ToLower(conf.Booking.ID.String()), strings.ToLower(conf.Ref)))

	assert.Contains(t, conf.UPIURL, "upi://pay?pa=littlemangalore@upi")
	assert.Contains(t, conf.UPIURL, "am=500")
	assert.Contains(t, conf.UPIURL, "tn=BookingRef"+conf.Ref)
	assert.True(t, strings.HasPrefix(conf.WhatsAppURL, "https://wa.me/918050006565?text="))
}

func TestSubmitVenueHasNoUPILink(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	conf, err := env.bookings.Submit(ctx, resortRequest())
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, conf.Booking.Status)
	assert.Empty(t, conf.UPIURL)
	assert.NotEmpty(t, conf.WhatsAppURL)
}

// Two submissions race past the availability read; the store's uniqueness
// guarantee turns the second write into a slot rejection.
func TestSubmitRaceFallsBackToStoreGuarantee(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodUPI))
	require.NoError(t, err)

	env.store.staleReads = true

	_, err = env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodUPI))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestListQueryFilter(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.bookings.Submit(ctx, resortRequest())
	require.NoError(t, err)
	_, err = env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodVenue))
	require.NoError(t, err)

	// name match is case-insensitive
	byName, err := env.bookings.List(ctx, repository.BookingFilter{Query: "anita"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Anita Shetty", byName[0].Name)

	// phone matches on substring
	byPhone, err := env.bookings.List(ctx, repository.BookingFilter{Query: "98765"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Ravi Kumar", byPhone[0].Name)

	none, err := env.bookings.List(ctx, repository.BookingFilter{Query: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubmitStoreUnavailable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.store.failing = true

	_, err := env.bookings.Submit(ctx, turfRequest("9AM-5PM", model.PaymentMethodVenue))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestPaymentQR(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := resortRequest()
	req.PaymentMethod = model.PaymentMethodUPI
	conf, err := env.bookings.Submit(ctx, req)
	require.NoError(t, err)

	png, err := env.bookings.PaymentQR(ctx, conf.Booking.ID)
	require.NoError(t, err)
	assert.True(t, len(png) > 8)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	// venue bookings have nothing to pay by UPI
	venue, err := env.bookings.Submit(ctx, resortRequest())
	require.NoError(t, err)

	_, err = env.bookings.PaymentQR(ctx, venue.Booking.ID)
	assert.NotNil(t, AsValidation(err))
}
