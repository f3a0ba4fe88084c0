package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

func TestPersistence_RoundTrip(t *testing.T) {
	s, backend := newTestStore(t)

	s.SetCity("Lisbon")
	s.SetUnits(entities.UnitsImperial)
	s.SetTheme(entities.ThemeDark)
	s.AddTask(entities.Task{Title: "Walk dog", Priority: entities.PriorityLow})
	s.AddEvent(entities.EventItem{Name: "New Year", DateISO: "2027-01-01", Emoji: "🎉"})
	s.AddFamilyMember(entities.FamilyMember{Name: "Grandpa"})
	off := false
	s.SetToggles(TogglesPatch{ShowFunFacts: &off})
	s.MoveWidget("system", "time")
	s.SetGoogleConnected(true)

	// a fresh store over the same backend must reproduce the state
	reloaded := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())

	assert.Equal(t, s.Dashboard(), reloaded.Dashboard())
}

func TestLoadSnapshot_MissingKeyFallsBackToDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.Events(), 3)
	assert.Len(t, s.Family(), 3)
	assert.Len(t, s.WidgetLayout(), 7)
	assert.Equal(t, entities.FeatureToggles{
		ShowWeather: true, ShowTasks: true, ShowEvents: true,
		ShowCalendar: true, ShowFunFacts: true, ShowSystem: true,
	}, s.Toggles())
}

func TestLoadSnapshot_CorruptBlobFallsBackToDefaults(t *testing.T) {
	backend := newMemBackend()
	require.NoError(t, backend.Put(snapshotKey, []byte("{not json")))

	s := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())

	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.WidgetLayout(), 7)
	assert.Equal(t, "London", s.City())
}

func TestLoadSnapshot_PartialBlobFallsBackFieldByField(t *testing.T) {
	backend := newMemBackend()
	require.NoError(t, backend.Put(snapshotKey, []byte(`{"city":"Paris","tasks":[]}`)))

	s := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())

	assert.Equal(t, "Paris", s.City())
	assert.Empty(t, s.Tasks(), "present fields win even when empty")
	assert.Len(t, s.Events(), 3, "absent fields fall back to defaults")
	assert.Len(t, s.WidgetLayout(), 7)
}

func TestLoadSnapshot_InvalidEnumsFallBack(t *testing.T) {
	backend := newMemBackend()
	require.NoError(t, backend.Put(snapshotKey, []byte(`{"units":"kelvin","theme":"sepia"}`)))

	s := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())

	assert.Equal(t, entities.UnitsMetric, s.Units())
	assert.Equal(t, entities.ThemeAuto, s.Theme())
}

func TestLoadSnapshot_LegacyTogglesWithoutLayout(t *testing.T) {
	backend := newMemBackend()
	blob, err := json.Marshal(map[string]interface{}{
		"toggles": map[string]bool{
			"showWeather": false, "showTasks": true, "showEvents": true,
			"showCalendar": true, "showFunFacts": false, "showSystem": true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, backend.Put(snapshotKey, blob))

	s := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())

	toggles := s.Toggles()
	assert.False(t, toggles.ShowWeather)
	assert.False(t, toggles.ShowFunFacts)
	assert.True(t, toggles.ShowTasks)
}

func TestSaveSnapshot_WriteFailureIsSwallowed(t *testing.T) {
	s, backend := newTestStore(t)
	backend.failPut = true

	// mutation must still apply in memory and must not panic
	s.SetCity("Rome")
	s.AddTask(entities.Task{Title: "chore"})

	assert.Equal(t, "Rome", s.City())
	assert.Len(t, s.Tasks(), 4)
}

func TestWeatherAPIKey_RoundTrip(t *testing.T) {
	s, backend := newTestStore(t)

	s.SetWeatherAPIKey("owm-secret")
	assert.Equal(t, "owm-secret", s.WeatherAPIKey())

	reloaded := New(NewAdapter(backend, logger.NewNop()), logger.NewNop())
	assert.Equal(t, "owm-secret", reloaded.WeatherAPIKey())

	s.SetWeatherAPIKey("")
	assert.Equal(t, "", s.WeatherAPIKey())
	_, ok, err := backend.Get(weatherKeyKey)
	require.NoError(t, err)
	assert.False(t, ok, "clearing the key must delete the stored entry")
}
