package store

import (
	"encoding/json"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/ports"
)

// Storage keys. The snapshot key carries the whole whitelisted state as
// one JSON blob; the credential key mirrors the separate entry the web
// client kept for the user-entered weather key.
const (
	snapshotKey   = "dashboard-store"
	weatherKeyKey = "weatherApiKey"
)

// Snapshot is the whitelisted subset of store state that survives
// restarts. The JSON field names are the persisted wire format.
type Snapshot struct {
	Tasks                   []entities.Task              `json:"tasks"`
	City                    string                       `json:"city"`
	Units                   entities.Units               `json:"units"`
	Theme                   entities.ThemeMode           `json:"theme"`
	Toggles                 entities.FeatureToggles      `json:"toggles"`
	Family                  []entities.FamilyMember      `json:"family"`
	Events                  []entities.EventItem         `json:"events"`
	CalendarEvents          []entities.CalendarEvent     `json:"calendarEvents"`
	GoogleCalendarConnected bool                         `json:"googleCalendarConnected"`
	WidgetLayout            []entities.WidgetLayoutEntry `json:"widgetLayout"`
}

// clone deep-copies the snapshot and refreshes the toggle projection
func (s Snapshot) clone() Snapshot {
	out := s
	out.Tasks = append([]entities.Task(nil), s.Tasks...)
	out.Family = append([]entities.FamilyMember(nil), s.Family...)
	out.Events = append([]entities.EventItem(nil), s.Events...)
	out.CalendarEvents = append([]entities.CalendarEvent(nil), s.CalendarEvents...)
	out.WidgetLayout = append([]entities.WidgetLayoutEntry(nil), s.WidgetLayout...)
	out.Toggles = derivedToggles(s.WidgetLayout)
	return out
}

// Adapter round-trips the snapshot through a key-value backend. It owns
// the serialized mirror, never the canonical data, and it fails soft in
// both directions: unreadable state falls back to defaults, failed
// writes are logged and dropped.
type Adapter struct {
	backend ports.StorageBackend
	logger  *logger.Logger
}

// NewAdapter creates a persistence adapter over the given backend
func NewAdapter(backend ports.StorageBackend, log *logger.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		logger:  log.WithComponent("persistence"),
	}
}

// partialSnapshot mirrors Snapshot with pointer fields so a blob written
// by an older schema decodes with per-field fallbacks instead of failing
// as a whole.
type partialSnapshot struct {
	Tasks                   *[]entities.Task              `json:"tasks"`
	City                    *string                       `json:"city"`
	Units                   *entities.Units               `json:"units"`
	Theme                   *entities.ThemeMode           `json:"theme"`
	Toggles                 *entities.FeatureToggles      `json:"toggles"`
	Family                  *[]entities.FamilyMember      `json:"family"`
	Events                  *[]entities.EventItem         `json:"events"`
	CalendarEvents          *[]entities.CalendarEvent     `json:"calendarEvents"`
	GoogleCalendarConnected *bool                         `json:"googleCalendarConnected"`
	WidgetLayout            *[]entities.WidgetLayoutEntry `json:"widgetLayout"`
}

// LoadSnapshot reads and decodes the persisted snapshot. Anything that
// cannot be read or parsed falls back to the defaults, field by field.
func (a *Adapter) LoadSnapshot() Snapshot {
	defaults := defaultSnapshot()

	blob, ok, err := a.backend.Get(snapshotKey)
	if err != nil {
		a.logger.Warnw("Failed to read persisted state, using defaults", "error", err)
		return defaults
	}
	if !ok {
		a.logger.Info("No persisted state found, seeding defaults")
		return defaults
	}

	var partial partialSnapshot
	if err := json.Unmarshal(blob, &partial); err != nil {
		a.logger.Warnw("Persisted state is corrupt, using defaults", "error", err)
		return defaults
	}

	snap := defaults
	if partial.Tasks != nil {
		snap.Tasks = *partial.Tasks
	}
	if partial.City != nil {
		snap.City = *partial.City
	}
	if partial.Units != nil && partial.Units.IsValid() {
		snap.Units = *partial.Units
	}
	if partial.Theme != nil && partial.Theme.IsValid() {
		snap.Theme = *partial.Theme
	}
	if partial.Family != nil {
		snap.Family = *partial.Family
	}
	if partial.Events != nil {
		snap.Events = *partial.Events
	}
	if partial.CalendarEvents != nil {
		snap.CalendarEvents = *partial.CalendarEvents
	}
	if partial.GoogleCalendarConnected != nil {
		snap.GoogleCalendarConnected = *partial.GoogleCalendarConnected
	}

	switch {
	case partial.WidgetLayout != nil:
		snap.WidgetLayout = normalizeLayout(*partial.WidgetLayout)
	case partial.Toggles != nil:
		// Old blobs without a layout still carry toggles; map them onto
		// the default layout so nothing the user switched off comes back.
		for i := range snap.WidgetLayout {
			snap.WidgetLayout[i].Enabled = partial.Toggles.Enabled(snap.WidgetLayout[i].Type)
		}
	}
	snap.Toggles = derivedToggles(snap.WidgetLayout)

	return snap
}

// SaveSnapshot serializes the snapshot and overwrites the stored blob.
// Failures are logged and swallowed; durability is best effort on a
// constrained device and never worth crashing the dashboard for.
func (a *Adapter) SaveSnapshot(snap Snapshot) {
	out := snap
	out.Toggles = derivedToggles(snap.WidgetLayout)

	blob, err := json.Marshal(out)
	if err != nil {
		a.logger.Warnw("Failed to serialize state", "error", err)
		return
	}
	if err := a.backend.Put(snapshotKey, blob); err != nil {
		a.logger.Warnw("Failed to persist state", "error", err)
	}
}

// WeatherAPIKey reads the stored weather credential, empty when unset
func (a *Adapter) WeatherAPIKey() string {
	blob, ok, err := a.backend.Get(weatherKeyKey)
	if err != nil {
		a.logger.Warnw("Failed to read weather key", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return string(blob)
}

// SetWeatherAPIKey stores (or with an empty key clears) the credential
func (a *Adapter) SetWeatherAPIKey(key string) {
	var err error
	if key == "" {
		err = a.backend.Delete(weatherKeyKey)
	} else {
		err = a.backend.Put(weatherKeyKey, []byte(key))
	}
	if err != nil {
		a.logger.Warnw("Failed to persist weather key", "error", err)
	}
}

// Reset drops the persisted snapshot so the next start reseeds defaults
func (a *Adapter) Reset() error {
	return a.backend.Delete(snapshotKey)
}
