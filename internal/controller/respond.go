package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/littlemangalore/venue-booking/internal/service"
)

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorBody struct {
	Error errorInfo `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP. The code field
// tells the UI which of "fix your input", "pick another date/slot" or "try
// again later" applies.
func writeError(w http.ResponseWriter, err error) {
	if ve := service.AsValidation(err); ve != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
			Code:    "validation_failed",
			Message: ve.Reason,
			Field:   ve.Field,
		}})
		return
	}

	switch {
	case errors.Is(err, service.ErrDateBlocked):
		writeJSON(w, http.StatusConflict, errorBody{errorInfo{
			Code:    "date_blocked",
			Message: "this date is unavailable, please pick another date",
		}})
	case errors.Is(err, service.ErrSlotTaken):
		writeJSON(w, http.StatusConflict, errorBody{errorInfo{
			Code:    "slot_taken",
			Message: "this slot is already booked, please pick another slot",
		}})
	case errors.Is(err, service.ErrAlreadyTerminal):
		writeJSON(w, http.StatusConflict, errorBody{errorInfo{
			Code:    "already_cancelled",
			Message: "cancelled bookings cannot change",
		}})
	case errors.Is(err, service.ErrNoStatusChange):
		writeJSON(w, http.StatusConflict, errorBody{errorInfo{
			Code:    "no_change",
			Message: "booking already has this status",
		}})
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrBlockedDateNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{errorInfo{
			Code:    "not_found",
			Message: err.Error(),
		}})
	case errors.Is(err, service.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{errorInfo{
			Code:    "store_unavailable",
			Message: "temporary storage failure, please try again",
		}})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{errorInfo{
			Code:    "internal",
			Message: "internal error",
		}})
	}
}
