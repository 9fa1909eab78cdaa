package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/littlemangalore/venue-booking/internal/analytics"
	"github.com/littlemangalore/venue-booking/internal/export"
	"github.com/littlemangalore/venue-booking/internal/model"
	"github.com/littlemangalore/venue-booking/internal/repository"
	"github.com/littlemangalore/venue-booking/internal/service"
)

func filterFromQuery(r *http.Request) repository.BookingFilter {
	q := r.URL.Query()
	return repository.BookingFilter{
		Type:   model.BookingType(q.Get("category")),
		Status: model.BookingStatus(q.Get("status")),
		Query:  q.Get("q"),
	}
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := s.bookings.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, service.ErrBookingNotFound)
		return
	}

	var body struct {
		Status model.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
			Code:    "validation_failed",
			Message: "malformed request body",
		}})
		return
	}

	booking, err := s.statuses.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := s.bookings.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("bookings_%s.csv", time.Now().Format(model.DateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, export.BookingsCSV(bookings))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := s.bookings.List(r.Context(), repository.BookingFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.Summarize(bookings, time.Now()))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	months := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
				Code:    "validation_failed",
				Message: "months must be between 1 and 24",
				Field:   "months",
			}})
			return
		}
		months = n
	}

	bookings, err := s.bookings.List(r.Context(), repository.BookingFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.MonthlySeries(bookings, time.Now(), months))
}

func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := s.bookings.List(r.Context(), repository.BookingFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.ByCategory(bookings))
}

func (s *Server) handleByStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := s.bookings.List(r.Context(), repository.BookingFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.ByStatus(bookings))
}

func (s *Server) handleListBlocked(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	// default to a year around today, matching the calendar view
	if from == "" {
		from = time.Now().AddDate(0, -6, 0).Format(model.DateLayout)
	}
	if to == "" {
		to = time.Now().AddDate(0, 6, 0).Format(model.DateLayout)
	}

	blocked, err := s.calendar.List(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if blocked == nil {
		blocked = []*model.BlockedDate{}
	}

	writeJSON(w, http.StatusOK, blocked)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Date   string           `json:"date"`
		Scope  model.BlockScope `json:"scope"`
		Reason string           `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{errorInfo{
			Code:    "validation_failed",
			Message: "malformed request body",
		}})
		return
	}

	blocked, err := s.calendar.Block(r.Context(), body.Date, body.Scope, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blocked)
}

func (s *Server) handleUnblock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := uuid.Parse(ps.ByName("id"))
	if err != nil {
		writeError(w, service.ErrBlockedDateNotFound)
		return
	}

	if err := s.calendar.Unblock(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
