package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/events"
	"github.com/littlemangalore/venue-booking/internal/model"
)

// CalendarService is the operator-facing blocked-date registry. Duplicate
// blocks for the same date/scope are harmless; the UI deduplicates.
type CalendarService struct {
	store  BlockedDateStore
	hub    *events.Hub
	logger *zap.Logger
}

func NewCalendarService(store BlockedDateStore, hub *events.Hub, logger *zap.Logger) *CalendarService {
	return &CalendarService{store: store, hub: hub, logger: logger}
}

// Block closes a date for one category or for all of them.
func (s *CalendarService) Block(ctx context.Context, date string, scope model.BlockScope, reason string) (*model.BlockedDate, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, invalidField("date", "must be YYYY-MM-DD")
	}
	if scope == "" {
		scope = model.BlockScopeAll
	}
	if !scope.Valid() {
		return nil, invalidField("scope", "must be all, resort, turf or event")
	}

	blocked := &model.BlockedDate{Date: date, Scope: scope, Reason: reason}
	if err := s.store.Create(ctx, blocked); err != nil {
		return nil, storeErr(err)
	}

	s.hub.Publish(events.Event{Type: events.DateBlocked, BlockedDate: blocked})

	s.logger.Info("Date blocked",
		zap.String("date", date),
		zap.String("scope", string(scope)),
		zap.String("reason", reason),
	)

	return blocked, nil
}

// Unblock reopens a date.
func (s *CalendarService) Unblock(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return ErrBlockedDateNotFound
	}

	s.hub.Publish(events.Event{Type: events.DateUnblocked, ID: id.String()})

	s.logger.Info("Date unblocked", zap.String("blocked_id", id.String()))
	return nil
}

// List returns the blocked dates within [from, to] inclusive.
func (s *CalendarService) List(ctx context.Context, from, to string) ([]*model.BlockedDate, error) {
	for _, d := range []struct{ field, value string }{{"from", from}, {"to", to}} {
		if _, err := time.Parse(model.DateLayout, d.value); err != nil {
			return nil, invalidField(d.field, "must be YYYY-MM-DD")
		}
	}

	blocked, err := s.store.ListRange(ctx, from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	return blocked, nil
}
