package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want int
	}{
		{"today", "2026-08-30", 0},
		{"tomorrow", "2026-08-31", 1},
		{"next month", "2026-09-30", 31},
		{"yesterday", "2026-08-29", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := EventItem{Name: "Birthday", DateISO: tt.date}
			days, err := ev.DaysRemaining(now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestDaysRemaining_InvalidDate(t *testing.T) {
	ev := EventItem{DateISO: "not-a-date"}
	_, err := ev.DaysRemaining(time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCalendarEventIsUpcoming(t *testing.T) {
	now := time.Now()

	future := CalendarEvent{Start: now.Add(time.Hour).Format(time.RFC3339)}
	assert.True(t, future.IsUpcoming(now))

	past := CalendarEvent{Start: now.Add(-time.Hour).Format(time.RFC3339)}
	assert.False(t, past.IsUpcoming(now))

	malformed := CalendarEvent{Start: "tuesday-ish"}
	assert.False(t, malformed.IsUpcoming(now))
}

func TestThemeModeResolve(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeDark.Resolve(false))
	assert.Equal(t, ThemeLight, ThemeLight.Resolve(true))
	assert.Equal(t, ThemeDark, ThemeAuto.Resolve(true))
	assert.Equal(t, ThemeLight, ThemeAuto.Resolve(false))
}

func TestFeatureTogglesEnabled(t *testing.T) {
	ft := FeatureToggles{ShowWeather: true, ShowSystem: false}

	assert.True(t, ft.Enabled(WidgetWeather))
	assert.False(t, ft.Enabled(WidgetSystem))
	assert.True(t, ft.Enabled(WidgetTime), "the clock has no toggle")
	assert.False(t, ft.Enabled(WidgetType("bogus")))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("urgent").IsValid())

	assert.True(t, RecurringNone.IsValid())
	assert.False(t, Recurring("fortnightly").IsValid())

	assert.True(t, UnitsImperial.IsValid())
	assert.False(t, Units("kelvin").IsValid())

	assert.True(t, ThemeAuto.IsValid())
	assert.False(t, ThemeMode("sepia").IsValid())

	assert.True(t, WidgetFunFacts.IsValid())
	assert.False(t, WidgetType("stocks").IsValid())

	assert.True(t, WidgetSizeLarge.IsValid())
	assert.False(t, WidgetSize("huge").IsValid())

	assert.True(t, CalendarSourceGoogle.IsValid())
	assert.False(t, CalendarSource("outlook").IsValid())
}
