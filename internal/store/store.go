// Package store holds the dashboard's canonical state: the entity
// collections, scalar settings, and the widget layout. All reads and
// mutations go through the Store; every mutation persists a snapshot
// and notifies subscribers before returning.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

// Store is the single authoritative state container for the dashboard.
// Nothing else holds canonical copies; the persistence adapter owns only
// a serialized mirror.
type Store struct {
	mu      sync.RWMutex
	state   Snapshot
	weather string // user-entered weather API key, persisted separately

	adapter *Adapter
	logger  *logger.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New constructs a store, rehydrating state from the adapter before any
// caller can observe it. A missing or corrupt snapshot falls back to the
// compiled-in defaults, field by field.
func New(adapter *Adapter, log *logger.Logger) *Store {
	s := &Store{
		adapter: adapter,
		logger:  log.WithComponent("store"),
		subs:    make(map[int]func()),
	}
	s.state = adapter.LoadSnapshot()
	s.weather = adapter.WeatherAPIKey()
	return s
}

// Subscribe registers a change listener and returns an unsubscribe func.
// Listeners run after the mutation (including its persistence write) has
// completed and the state lock has been released.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// mutate applies fn under the write lock, persists the snapshot before
// releasing it, then notifies subscribers.
func (s *Store) mutate(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	s.adapter.SaveSnapshot(s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Dashboard returns a copy of the whole persisted state, the payload a
// display fetches on startup.
func (s *Store) Dashboard() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Task operations

// TaskPatch holds the mutable task fields; nil fields are left untouched
type TaskPatch struct {
	Title     *string             `json:"title"`
	Assignee  *string             `json:"assignee"`
	Priority  *entities.Priority  `json:"priority"`
	Recurring *entities.Recurring `json:"recurring"`
	Completed *bool               `json:"completed"`
}

// Tasks returns a copy of the task collection
func (s *Store) Tasks() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Task(nil), s.state.Tasks...)
}

// AddTask appends a new task with a fresh id and returns the id
func (s *Store) AddTask(t entities.Task) string {
	t.ID = uuid.NewString()
	t.Completed = false
	if t.Priority == "" {
		t.Priority = entities.PriorityMedium
	}
	if t.Recurring == "" {
		t.Recurring = entities.RecurringNone
	}
	s.mutate(func(st *Snapshot) {
		st.Tasks = append(st.Tasks, t)
	})
	return t.ID
}

// UpdateTask merges patch fields into the matching task. A stale id is a
// silent no-op; the UI is the only mutator and a stale reference just
// means a modal outlived a delete.
func (s *Store) UpdateTask(id string, patch TaskPatch) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Tasks {
			if st.Tasks[i].ID != id {
				continue
			}
			t := &st.Tasks[i]
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Assignee != nil {
				t.Assignee = *patch.Assignee
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.Recurring != nil {
				t.Recurring = *patch.Recurring
			}
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			return
		}
	})
}

// ToggleTask flips the completed flag; no-op when id is absent
func (s *Store) ToggleTask(id string) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks[i].Completed = !st.Tasks[i].Completed
				return
			}
		}
	})
}

// DeleteTask removes the matching task; no-op when id is absent
func (s *Store) DeleteTask(id string) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
				return
			}
		}
	})
}

// Countdown event operations

// EventPatch holds the mutable countdown-event fields
type EventPatch struct {
	Name    *string `json:"name"`
	DateISO *string `json:"date"`
	Emoji   *string `json:"emoji"`
	Color   *string `json:"color"`
}

// Events returns a copy of the countdown events
func (s *Store) Events() []entities.EventItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.EventItem(nil), s.state.Events...)
}

// AddEvent appends a new countdown event and returns its id
func (s *Store) AddEvent(e entities.EventItem) string {
	e.ID = uuid.NewString()
	s.mutate(func(st *Snapshot) {
		st.Events = append(st.Events, e)
	})
	return e.ID
}

// UpdateEvent merges patch fields into the matching event; no-op when absent
func (s *Store) UpdateEvent(id string, patch EventPatch) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Events {
			if st.Events[i].ID != id {
				continue
			}
			e := &st.Events[i]
			if patch.Name != nil {
				e.Name = *patch.Name
			}
			if patch.DateISO != nil {
				e.DateISO = *patch.DateISO
			}
			if patch.Emoji != nil {
				e.Emoji = *patch.Emoji
			}
			if patch.Color != nil {
				e.Color = *patch.Color
			}
			return
		}
	})
}

// DeleteEvent removes the matching event; no-op when absent
func (s *Store) DeleteEvent(id string) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Events {
			if st.Events[i].ID == id {
				st.Events = append(st.Events[:i], st.Events[i+1:]...)
				return
			}
		}
	})
}

// Family member operations

// FamilyMemberPatch holds the mutable family member fields
type FamilyMemberPatch struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Family returns a copy of the family members
func (s *Store) Family() []entities.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.FamilyMember(nil), s.state.Family...)
}

// AddFamilyMember appends a new member and returns its id
func (s *Store) AddFamilyMember(m entities.FamilyMember) string {
	m.ID = uuid.NewString()
	s.mutate(func(st *Snapshot) {
		st.Family = append(st.Family, m)
	})
	return m.ID
}

// UpdateFamilyMember merges patch fields into the matching member
func (s *Store) UpdateFamilyMember(id string, patch FamilyMemberPatch) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Family {
			if st.Family[i].ID != id {
				continue
			}
			m := &st.Family[i]
			if patch.Name != nil {
				m.Name = *patch.Name
			}
			if patch.AvatarURL != nil {
				m.AvatarURL = *patch.AvatarURL
			}
			return
		}
	})
}

// DeleteFamilyMember removes the matching member; no-op when absent
func (s *Store) DeleteFamilyMember(id string) {
	s.mutate(func(st *Snapshot) {
		for i := range st.Family {
			if st.Family[i].ID == id {
				st.Family = append(st.Family[:i], st.Family[i+1:]...)
				return
			}
		}
	})
}

// Calendar event operations

// CalendarEventPatch holds the mutable calendar event fields
type CalendarEventPatch struct {
	Title       *string `json:"title"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Description *string `json:"description"`
}

// CalendarEvents returns a copy of the calendar events
func (s *Store) CalendarEvents() []entities.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.CalendarEvent(nil), s.state.CalendarEvents...)
}

// AddCalendarEvent appends a locally created calendar event
func (s *Store) AddCalendarEvent(ev entities.CalendarEvent) string {
	ev.ID = uuid.NewString()
	ev.Source = entities.CalendarSourceLocal
	s.mutate(func(st *Snapshot) {
		st.CalendarEvents = append(st.CalendarEvents, ev)
	})
	return ev.ID
}

// UpdateCalendarEvent merges patch fields into the matching event
func (s *Store) UpdateCalendarEvent(id string, patch CalendarEventPatch) {
	s.mutate(func(st *Snapshot) {
		for i := range st.CalendarEvents {
			if st.CalendarEvents[i].ID != id {
				continue
			}
			ev := &st.CalendarEvents[i]
			if patch.Title != nil {
				ev.Title = *patch.Title
			}
			if patch.Start != nil {
				ev.Start = *patch.Start
			}
			if patch.End != nil {
				ev.End = *patch.End
			}
			if patch.Description != nil {
				ev.Description = *patch.Description
			}
			return
		}
	})
}

// DeleteCalendarEvent removes the matching event; no-op when absent
func (s *Store) DeleteCalendarEvent(id string) {
	s.mutate(func(st *Snapshot) {
		for i := range st.CalendarEvents {
			if st.CalendarEvents[i].ID == id {
				st.CalendarEvents = append(st.CalendarEvents[:i], st.CalendarEvents[i+1:]...)
				return
			}
		}
	})
}

// ImportCalendarEvents appends imported events, skipping ids already
// present so repeated syncs never duplicate entries. Returns the number
// of events actually added.
func (s *Store) ImportCalendarEvents(events []entities.CalendarEvent) int {
	added := 0
	s.mutate(func(st *Snapshot) {
		seen := make(map[string]struct{}, len(st.CalendarEvents))
		for _, ev := range st.CalendarEvents {
			seen[ev.ID] = struct{}{}
		}
		for _, ev := range events {
			if _, ok := seen[ev.ID]; ok {
				continue
			}
			seen[ev.ID] = struct{}{}
			st.CalendarEvents = append(st.CalendarEvents, ev)
			added++
		}
	})
	return added
}

// GoogleConnected reports whether a calendar account is connected
func (s *Store) GoogleConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GoogleCalendarConnected
}

// SetGoogleConnected records the calendar connection state
func (s *Store) SetGoogleConnected(connected bool) {
	s.mutate(func(st *Snapshot) {
		st.GoogleCalendarConnected = connected
	})
}

// Settings operations

// City returns the configured weather city
func (s *Store) City() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.City
}

// SetCity overwrites the weather city
func (s *Store) SetCity(city string) {
	s.mutate(func(st *Snapshot) {
		st.City = city
	})
}

// Units returns the configured measurement units
func (s *Store) Units() entities.Units {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Units
}

// SetUnits overwrites the measurement units
func (s *Store) SetUnits(units entities.Units) {
	s.mutate(func(st *Snapshot) {
		st.Units = units
	})
}

// Theme returns the theme mode as stored; `auto` is resolved by the
// consumer at render time via ThemeMode.Resolve.
func (s *Store) Theme() entities.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

// SetTheme overwrites the theme mode
func (s *Store) SetTheme(theme entities.ThemeMode) {
	s.mutate(func(st *Snapshot) {
		st.Theme = theme
	})
}

// WeatherAPIKey returns the user-entered weather credential, if any
func (s *Store) WeatherAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

// SetWeatherAPIKey stores the user-entered weather credential
func (s *Store) SetWeatherAPIKey(key string) {
	s.mu.Lock()
	s.weather = key
	s.adapter.SetWeatherAPIKey(key)
	s.mu.Unlock()
	s.notify()
}
