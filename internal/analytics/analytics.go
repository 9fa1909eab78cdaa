// Package analytics derives summary counters and time series from a
// booking collection. All functions are pure: same bookings and as-of date
// in, same numbers out.
package analytics

import (
	"time"

	"github.com/littlemangalore/venue-booking/internal/model"
)

// Summary is the dashboard headline block.
type Summary struct {
	Total   int `json:"total"`
	Today   int `json:"today"`
	Pending int `json:"pending"`
	Revenue int `json:"revenue"`
}

// Summarize counts the set and totals advance revenue over paid and
// confirmed bookings. Revenue uses the same fixed advance table customers
// were quoted from.
func Summarize(bookings []*model.Booking, today time.Time) Summary {
	var s Summary
	todayStr := today.Format(model.DateLayout)

	for _, b := range bookings {
		s.Total++
		if b.Date == todayStr {
			s.Today++
		}
		if b.Status == model.BookingStatusPending {
			s.Pending++
		}
		if b.Status.Active() {
			s.Revenue += model.AdvanceAmount(b.Type)
		}
	}

	return s
}

// MonthBucket is one calendar month of the series.
type MonthBucket struct {
	Label   string                    `json:"label"` // e.g. "Jun 2025"
	Counts  map[model.BookingType]int `json:"counts"`
	Revenue int                       `json:"revenue"`
}

// MonthlySeries buckets bookings into the monthsBack calendar months ending
// at today's month, oldest first. Month membership is inclusive on the
// booking date: [first of month, last of month].
func MonthlySeries(bookings []*model.Booking, today time.Time, monthsBack int) []MonthBucket {
	series := make([]MonthBucket, 0, monthsBack)

	for i := monthsBack - 1; i >= 0; i-- {
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		start := first.Format(model.DateLayout)
		end := first.AddDate(0, 1, -1).Format(model.DateLayout)

		bucket := MonthBucket{
			Label:  first.Format("Jan 2006"),
			Counts: make(map[model.BookingType]int),
		}

		for _, b := range bookings {
			if b.Date >= start && b.Date <= end {
				bucket.Counts[b.Type]++
				bucket.Revenue += model.AdvanceAmount(b.Type)
			}
		}

		series = append(series, bucket)
	}

	return series
}

// ByCategory counts bookings per category, omitting empty buckets.
func ByCategory(bookings []*model.Booking) map[model.BookingType]int {
	counts := make(map[model.BookingType]int)
	for _, b := range bookings {
		counts[b.Type]++
	}
	return counts
}

// ByStatus counts bookings per status, omitting empty buckets.
func ByStatus(bookings []*model.Booking) map[model.BookingStatus]int {
	counts := make(map[model.BookingStatus]int)
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}
