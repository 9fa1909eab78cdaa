// Package notify builds the payload and deep link for the venue's
// messaging collaborator. Delivery itself is owned by that collaborator;
// the core only hands the operator-facing link back to the caller.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/littlemangalore/venue-booking/internal/model"
)

type WhatsApp struct {
	ownerPhone string
}

func NewWhatsApp(ownerPhone string) *WhatsApp {
	return &WhatsApp{ownerPhone: ownerPhone}
}

// Message renders the plain-text booking alert sent to the venue operator.
func (w *WhatsApp) Message(b *model.Booking, ref string) string {
	var sb strings.Builder

	sb.WriteString("New Booking Alert! 🔔\n")
	fmt.Fprintf(&sb, "Ref: %s\n", ref)
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Type: %s\n", strings.ToUpper(string(b.Type)))
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	if b.TimeSlot != "" {
		fmt.Fprintf(&sb, "Slot: %s\n", b.TimeSlot)
	}
	if b.RoomType != "" {
		fmt.Fprintf(&sb, "Room: %s\n", b.RoomType)
	}
	if b.EventType != "" {
		fmt.Fprintf(&sb, "Event: %s\n", b.EventType)
	}
	if b.Guests > 0 {
		fmt.Fprintf(&sb, "Guests: %d\n", b.Guests)
	} else {
		sb.WriteString("Guests: N/A\n")
	}
	if b.PaymentMethod == model.PaymentMethodUPI {
		sb.WriteString("Payment: UPI (Paid)\n")
	} else {
		sb.WriteString("Payment: Pay at Venue\n")
	}
	// The phone line always ends with a newline; the notes line, when
	// present, does not.
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	if b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s", b.Notes)
	}

	return sb.String()
}

// Link returns the wa.me deep link carrying the booking alert.
func (w *WhatsApp) Link(b *model.Booking, ref string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.ownerPhone, url.QueryEscape(w.Message(b, ref)))
}
