// Package payment builds UPI intent links for the payment collaborator.
// The advance amount is fixed per category; execution and verification
// happen outside the core (verification lands via the callback endpoint).
package payment

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type UPI struct {
	vpa   string // payee virtual payment address
	payee string // payee display name
}

func NewUPI(vpa, payee string) *UPI {
	return &UPI{vpa: vpa, payee: payee}
}

// IntentLink returns the upi://pay deep link for the advance amount, with
// the booking reference in the transaction note.
func (u *UPI) IntentLink(amount int, ref string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&tn=BookingRef%s",
		u.vpa, url.QueryEscape(u.payee), amount, ref)
}

// QRCode renders the intent link as a PNG for customers paying from
// another device.
func (u *UPI) QRCode(amount int, ref string) ([]byte, error) {
	png, err := qrcode.Encode(u.IntentLink(amount, ref), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode upi qr: %w", err)
	}
	return png, nil
}
