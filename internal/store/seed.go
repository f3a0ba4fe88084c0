package store

import (
	"time"

	"github.com/homeboard/core/internal/domain/entities"
)

// defaultSnapshot is the compiled-in first-run state: three seed tasks,
// three countdown events, three family members, and the seven-slot
// widget layout with everything enabled.
func defaultSnapshot() Snapshot {
	snap := Snapshot{
		Tasks:                   defaultTasks(),
		City:                    "London",
		Units:                   entities.UnitsMetric,
		Theme:                   entities.ThemeAuto,
		Family:                  defaultFamily(),
		Events:                  defaultEvents(),
		CalendarEvents:          []entities.CalendarEvent{},
		GoogleCalendarConnected: false,
		WidgetLayout:            defaultLayout(),
	}
	snap.Toggles = derivedToggles(snap.WidgetLayout)
	return snap
}

func defaultTasks() []entities.Task {
	return []entities.Task{
		{ID: "1", Title: "Feed the fish", Assignee: "Emma", Priority: entities.PriorityMedium, Recurring: entities.RecurringDaily},
		{ID: "2", Title: "Take out trash", Assignee: "Dad", Priority: entities.PriorityHigh, Recurring: entities.RecurringWeekly},
		{ID: "3", Title: "Water plants", Assignee: "Mom", Priority: entities.PriorityLow, Recurring: entities.RecurringWeekly},
	}
}

func defaultEvents() []entities.EventItem {
	now := time.Now()
	return []entities.EventItem{
		{ID: "1", Name: "Emma's Birthday", DateISO: now.AddDate(0, 1, 0).Format("2006-01-02"), Emoji: "🎂", Color: "#f472b6"},
		{ID: "2", Name: "Summer Vacation", DateISO: now.AddDate(0, 2, 0).Format("2006-01-02"), Emoji: "🏖️", Color: "#38bdf8"},
		{ID: "3", Name: "Movie Night", DateISO: now.AddDate(0, 0, 5).Format("2006-01-02"), Emoji: "🎬", Color: "#a78bfa"},
	}
}

func defaultFamily() []entities.FamilyMember {
	return []entities.FamilyMember{
		{ID: "1", Name: "Mom"},
		{ID: "2", Name: "Dad"},
		{ID: "3", Name: "Emma"},
	}
}

// defaultLayout seeds one slot per widget type. Slot ids are stable and
// named after the type; end users reorder and toggle slots but never
// create or destroy them.
func defaultLayout() []entities.WidgetLayoutEntry {
	return []entities.WidgetLayoutEntry{
		{ID: "time", Type: entities.WidgetTime, Enabled: true, Position: 0, Size: entities.WidgetSizeLarge},
		{ID: "weather", Type: entities.WidgetWeather, Enabled: true, Position: 1, Size: entities.WidgetSizeMedium},
		{ID: "tasks", Type: entities.WidgetTasks, Enabled: true, Position: 2, Size: entities.WidgetSizeMedium},
		{ID: "events", Type: entities.WidgetEvents, Enabled: true, Position: 3, Size: entities.WidgetSizeMedium},
		{ID: "calendar", Type: entities.WidgetCalendar, Enabled: true, Position: 4, Size: entities.WidgetSizeLarge},
		{ID: "funfacts", Type: entities.WidgetFunFacts, Enabled: true, Position: 5, Size: entities.WidgetSizeSmall},
		{ID: "system", Type: entities.WidgetSystem, Enabled: true, Position: 6, Size: entities.WidgetSizeSmall},
	}
}
