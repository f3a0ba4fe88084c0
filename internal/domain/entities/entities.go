package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrFamilyMemberNotFound  = errors.New("family member not found")
	ErrCalendarEventNotFound = errors.New("calendar event not found")
	ErrWidgetNotFound        = errors.New("widget not found")
	ErrMissingAPIKey         = errors.New("missing weather API key")
	ErrWeatherUnavailable    = errors.New("weather service unavailable")
	ErrCalendarNotConnected  = errors.New("calendar is not connected")
	ErrCalendarUnavailable   = errors.New("calendar service unavailable")
	ErrInvalidDate           = errors.New("invalid date")
)

// Enums and types
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recurring string

const (
	RecurringDaily   Recurring = "daily"
	RecurringWeekly  Recurring = "weekly"
	RecurringMonthly Recurring = "monthly"
	RecurringNone    Recurring = "none"
)

type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

type WidgetType string

const (
	WidgetTime     WidgetType = "time"
	WidgetWeather  WidgetType = "weather"
	WidgetTasks    WidgetType = "tasks"
	WidgetEvents   WidgetType = "events"
	WidgetCalendar WidgetType = "calendar"
	WidgetFunFacts WidgetType = "funfacts"
	WidgetSystem   WidgetType = "system"
)

type WidgetSize string

const (
	WidgetSizeSmall  WidgetSize = "small"
	WidgetSizeMedium WidgetSize = "medium"
	WidgetSizeLarge  WidgetSize = "large"
)

type CalendarSource string

const (
	CalendarSourceLocal  CalendarSource = "local"
	CalendarSourceGoogle CalendarSource = "google"
)

// Task represents a household task shown on the tasks widget
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Assignee  string    `json:"assignee,omitempty"`
	Priority  Priority  `json:"priority"`
	Recurring Recurring `json:"recurring,omitempty"`
	Completed bool      `json:"completed"`
}

// EventItem represents a countdown event (e.g. a birthday or vacation)
type EventItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	DateISO string `json:"date"`
	Emoji   string `json:"emoji,omitempty"`
	Color   string `json:"color,omitempty"`
}

// FamilyMember represents a member shown in the family widget and
// selectable as a task assignee
type FamilyMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CalendarEvent represents a calendar entry, either created locally or
// imported from an upstream calendar account
type CalendarEvent struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Start       string         `json:"start"`
	End         string         `json:"end"`
	Description string         `json:"description,omitempty"`
	Source      CalendarSource `json:"source"`
}

// WidgetLayoutEntry represents one widget slot on the dashboard. Entries
// are seeded once and only mutated (position, enabled, size) afterwards.
type WidgetLayoutEntry struct {
	ID       string     `json:"id"`
	Type     WidgetType `json:"type"`
	Enabled  bool       `json:"enabled"`
	Position int        `json:"position"`
	Size     WidgetSize `json:"size"`
}

// FeatureToggles gates which widget types render anywhere on the dashboard.
// The widget layout's enabled flags are authoritative; toggles are the
// projection served to clients.
type FeatureToggles struct {
	ShowWeather  bool `json:"showWeather"`
	ShowTasks    bool `json:"showTasks"`
	ShowEvents   bool `json:"showEvents"`
	ShowCalendar bool `json:"showCalendar"`
	ShowFunFacts bool `json:"showFunFacts"`
	ShowSystem   bool `json:"showSystem"`
}

// WeatherDetails is the current-conditions payload for the weather widget
type WeatherDetails struct {
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	Humidity  int    `json:"humidity"`
	Wind      int    `json:"wind"`
	Pressure  int    `json:"pressure"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// ForecastDay is one daily aggregate in the 5-day forecast
type ForecastDay struct {
	DateISO string `json:"date"`
	Icon    string `json:"icon"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Pop     int    `json:"pop"` // precipitation probability, percent
}

// Business logic methods for EventItem
func (e *EventItem) Date() (time.Time, error) {
	t, err := time.Parse("2006-01-02", e.DateISO)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DaysRemaining returns whole days until the event date, negative once past.
func (e *EventItem) DaysRemaining(now time.Time) (int, error) {
	date, err := e.Date()
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(date.Sub(today).Hours() / 24), nil
}

// Business logic methods for CalendarEvent
func (ce *CalendarEvent) StartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, ce.Start)
}

func (ce *CalendarEvent) IsUpcoming(now time.Time) bool {
	start, err := ce.StartTime()
	if err != nil {
		return false
	}
	return start.After(now)
}

// Resolve maps the theme mode to a concrete light/dark choice. Resolution
// happens at read time so an `auto` theme tracks the display's dark-mode
// preference between reads.
func (tm ThemeMode) Resolve(systemPrefersDark bool) ThemeMode {
	if tm != ThemeAuto {
		return tm
	}
	if systemPrefersDark {
		return ThemeDark
	}
	return ThemeLight
}

// Enabled reports whether the toggle for the given widget type is on.
// The time widget has no toggle and always renders.
func (ft FeatureToggles) Enabled(wt WidgetType) bool {
	switch wt {
	case WidgetWeather:
		return ft.ShowWeather
	case WidgetTasks:
		return ft.ShowTasks
	case WidgetEvents:
		return ft.ShowEvents
	case WidgetCalendar:
		return ft.ShowCalendar
	case WidgetFunFacts:
		return ft.ShowFunFacts
	case WidgetSystem:
		return ft.ShowSystem
	case WidgetTime:
		return true
	default:
		return false
	}
}

// Utility methods
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (r Recurring) IsValid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringNone:
		return true
	default:
		return false
	}
}

func (u Units) IsValid() bool {
	switch u {
	case UnitsMetric, UnitsImperial:
		return true
	default:
		return false
	}
}

func (tm ThemeMode) IsValid() bool {
	switch tm {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	default:
		return false
	}
}

func (wt WidgetType) IsValid() bool {
	switch wt {
	case WidgetTime, WidgetWeather, WidgetTasks, WidgetEvents, WidgetCalendar, WidgetFunFacts, WidgetSystem:
		return true
	default:
		return false
	}
}

func (ws WidgetSize) IsValid() bool {
	switch ws {
	case WidgetSizeSmall, WidgetSizeMedium, WidgetSizeLarge:
		return true
	default:
		return false
	}
}

func (cs CalendarSource) IsValid() bool {
	switch cs {
	case CalendarSourceLocal, CalendarSourceGoogle:
		return true
	default:
		return false
	}
}
