// Package export renders derived views of the booking set. The CSV shape
// is a stable contract with the operator's spreadsheet workflow: text
// columns are always quoted, the ID column is the short reference form.
package export

import (
	"strconv"
	"strings"

	"github.com/littlemangalore/venue-booking/internal/model"
)

// CSVHeader is the exact header row of the export.
const CSVHeader = "ID,Name,Phone,Type,Date,Time/Room,Guests,Payment,Status"

// BookingsCSV renders one row per booking under the fixed header.
func BookingsCSV(bookings []*model.Booking) string {
	lines := make([]string, 0, len(bookings)+1)
	lines = append(lines, CSVHeader)

	for _, b := range bookings {
		guests := ""
		if b.Guests > 0 {
			guests = strconv.Itoa(b.Guests)
		}

		lines = append(lines, strings.Join([]string{
			b.ShortID(),
			quote(b.Name),
			quote(b.Phone),
			string(b.Type),
			b.Date,
			quote(b.Descriptor()),
			guests,
			string(b.PaymentMethod),
			string(b.Status),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
