package controller

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/service"
)

type submitResponse struct {
	ID            string              `json:"id"`
	Ref           string              `json:"ref"`
	Status        model.BookingStatus `json:"status"`
	AdvanceAmount int                 `json:"advance_amount"`
	WhatsAppURL   string              `json:"wa_url"`
	UPIURL        string              `json:"upi_url,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
			Code:    "validation_failed",
			Message: "malformed request body",
		}})
		return
	}

	conf, err := s.bookings.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		ID:            conf.Booking.ID.String(),
		Ref:           conf.Ref,
		Status:        conf.Booking.Status,
		AdvanceAmount: conf.AdvanceAmount,
		WhatsAppURL:   conf.WhatsAppURL,
		UPIURL:        conf.UPIURL,
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	day, err := s.availability.Check(r.Context(), q.Get("date"), model.BookingType(q.Get("category")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handlePaymentQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, service.ErrBookingNotFound)
		return
	}

	png, err := s.bookings.PaymentQR(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type paymentCallback struct {
	BookingID string             `json:"booking_id"`
	State     model.PaymentState `json:"state"`
	TxnID     string             `json:"txn_id"`
}

// handlePaymentCallback receives the payment collaborator's server-side
// verification result, authenticated by a shared secret.
func (s *Server) handlePaymentCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	secret := s.cfg.PaymentCallbackSecret
	got := r.Header.Get("X-Callback-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
		http.Error(w, "Invalid callback secret", http.StatusUnauthorized)
		return
	}

	var cb paymentCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
			Code:    "validation_failed",
			Message: "malformed request body",
		}})
		return
	}

	id, err := uuid.Parse(cb.BookingID)
	if err != nil {
		writeError(w, service.ErrBookingNotFound)
		return
	}

	booking, err := s.statuses.VerifyPayment(r.Context(), id, cb.State)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}
