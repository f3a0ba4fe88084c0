package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/ports"
	"github.com/homeboard/core/internal/store"
)

// googleIDPrefix namespaces imported event ids so repeated syncs
// de-duplicate on the upstream event id.
const googleIDPrefix = "google:"

// CalendarService handles the external calendar connect/sync lifecycle.
// Local calendar event CRUD goes straight to the store.
type CalendarService struct {
	provider ports.CalendarProvider
	store    *store.Store
	pageSize int
	logger   *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(provider ports.CalendarProvider, st *store.Store, pageSize int, log *logger.Logger) *CalendarService {
	return &CalendarService{
		provider: provider,
		store:    st,
		pageSize: pageSize,
		logger:   log.WithComponent("calendar"),
	}
}

// Connect signs in to the upstream account, records the connection, and
// runs an initial sync.
func (s *CalendarService) Connect(ctx context.Context) (int, error) {
	if err := s.provider.SignIn(ctx); err != nil {
		return 0, fmt.Errorf("calendar sign-in failed: %w", err)
	}

	s.store.SetGoogleConnected(true)
	s.logger.Info("Calendar connected")

	added, err := s.Sync(ctx)
	if err != nil {
		return 0, err
	}
	return added, nil
}

// Disconnect signs out and records the disconnection. Previously
// imported events stay on the dashboard.
func (s *CalendarService) Disconnect(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("calendar sign-out failed: %w", err)
	}

	s.store.SetGoogleConnected(false)
	s.logger.Info("Calendar disconnected")
	return nil
}

// Sync imports upcoming events from the primary calendar: future events
// only, ordered by start time, capped at the configured page size, and
// de-duplicated against earlier imports by upstream id. Returns the
// number of newly imported events.
func (s *CalendarService) Sync(ctx context.Context) (int, error) {
	if !s.store.GoogleConnected() {
		return 0, entities.ErrCalendarNotConnected
	}

	upstream, err := s.provider.ListEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list calendar events: %w", err)
	}

	now := time.Now()
	events := make([]entities.CalendarEvent, 0, len(upstream))
	for _, u := range upstream {
		ev := entities.CalendarEvent{
			ID:          googleIDPrefix + u.ID,
			Title:       u.Summary,
			Start:       u.Start,
			End:         u.End,
			Description: u.Description,
			Source:      entities.CalendarSourceGoogle,
		}
		if !ev.IsUpcoming(now) {
			continue
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })
	if len(events) > s.pageSize {
		events = events[:s.pageSize]
	}

	added := s.store.ImportCalendarEvents(events)
	s.logger.Infow("Calendar sync completed", "fetched", len(upstream), "imported", added)
	return added, nil
}
