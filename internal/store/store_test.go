package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

// memBackend is an in-memory StorageBackend for tests
type memBackend struct {
	data    map[string][]byte
	failPut bool
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string][]byte)}
}

func (m *memBackend) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memBackend) Put(key string, value []byte) error {
	if m.failPut {
		return errors.New("disk full")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memBackend) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memBackend) {
	t.Helper()
	backend := newMemBackend()
	adapter := NewAdapter(backend, logger.NewNop())
	return New(adapter, logger.NewNop()), backend
}

func TestNew_SeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Len(t, s.Tasks(), 3)
	assert.Len(t, s.Events(), 3)
	assert.Len(t, s.Family(), 3)
	assert.Len(t, s.WidgetLayout(), 7)
	assert.Equal(t, "London", s.City())
	assert.Equal(t, entities.UnitsMetric, s.Units())
	assert.Equal(t, entities.ThemeAuto, s.Theme())

	toggles := s.Toggles()
	assert.True(t, toggles.ShowWeather)
	assert.True(t, toggles.ShowTasks)
	assert.True(t, toggles.ShowEvents)
	assert.True(t, toggles.ShowCalendar)
	assert.True(t, toggles.ShowFunFacts)
	assert.True(t, toggles.ShowSystem)
}

func TestAddTask_AssignsUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 50; i++ {
		s.AddTask(entities.Task{Title: "chore"})
	}

	seen := make(map[string]struct{})
	for _, task := range s.Tasks() {
		_, dup := seen[task.ID]
		require.False(t, dup, "duplicate task id %q", task.ID)
		seen[task.ID] = struct{}{}
	}
}

func TestAddTask_DefaultsPriorityAndRecurrence(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddTask(entities.Task{Title: "Sweep floor"})

	task := findTask(t, s, id)
	assert.False(t, task.Completed)
	assert.Equal(t, entities.PriorityMedium, task.Priority)
	assert.Equal(t, entities.RecurringNone, task.Recurring)
}

func TestToggleTask_IsItsOwnInverse(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddTask(entities.Task{Title: "Walk dog", Priority: entities.PriorityLow})

	s.ToggleTask(id)
	assert.True(t, findTask(t, s, id).Completed)

	s.ToggleTask(id)
	assert.False(t, findTask(t, s, id).Completed)
}

func TestToggleTask_UnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Tasks()

	s.ToggleTask("no-such-id")

	assert.Equal(t, before, s.Tasks())
}

func TestUpdateTask_MergesPatchFields(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddTask(entities.Task{Title: "Vacuum", Assignee: "Emma", Priority: entities.PriorityLow})

	title := "Vacuum living room"
	prio := entities.PriorityHigh
	s.UpdateTask(id, TaskPatch{Title: &title, Priority: &prio})

	task := findTask(t, s, id)
	assert.Equal(t, "Vacuum living room", task.Title)
	assert.Equal(t, entities.PriorityHigh, task.Priority)
	assert.Equal(t, "Emma", task.Assignee, "unpatched field must be untouched")
}

func TestUpdateTask_StaleIDIsSilentNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.Tasks()

	title := "ghost"
	s.UpdateTask("deleted-long-ago", TaskPatch{Title: &title})

	assert.Equal(t, before, s.Tasks())
}

func TestDeleteTask(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.AddTask(entities.Task{Title: "temp"})
	count := len(s.Tasks())

	s.DeleteTask(id)
	assert.Len(t, s.Tasks(), count-1)

	// deleting again is a no-op
	s.DeleteTask(id)
	assert.Len(t, s.Tasks(), count-1)
}

func TestEventCRUD(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddEvent(entities.EventItem{Name: "Camping Trip", DateISO: "2027-07-01", Emoji: "🏕️"})
	require.NotEmpty(t, id)

	name := "Camping Weekend"
	s.UpdateEvent(id, EventPatch{Name: &name})

	var found *entities.EventItem
	for _, e := range s.Events() {
		if e.ID == id {
			ev := e
			found = &ev
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Camping Weekend", found.Name)
	assert.Equal(t, "🏕️", found.Emoji)

	s.DeleteEvent(id)
	assert.Len(t, s.Events(), 3)
}

func TestFamilyCRUD(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddFamilyMember(entities.FamilyMember{Name: "Grandma"})
	assert.Len(t, s.Family(), 4)

	avatar := "https://example.com/grandma.png"
	s.UpdateFamilyMember(id, FamilyMemberPatch{AvatarURL: &avatar})

	s.DeleteFamilyMember(id)
	assert.Len(t, s.Family(), 3)
}

func TestCalendarEventCRUD(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddCalendarEvent(entities.CalendarEvent{
		Title: "Dentist",
		Start: "2027-03-01T10:00:00Z",
		End:   "2027-03-01T11:00:00Z",
	})

	events := s.CalendarEvents()
	require.Len(t, events, 1)
	assert.Equal(t, entities.CalendarSourceLocal, events[0].Source)

	title := "Dentist - Emma"
	s.UpdateCalendarEvent(id, CalendarEventPatch{Title: &title})
	assert.Equal(t, "Dentist - Emma", s.CalendarEvents()[0].Title)

	s.DeleteCalendarEvent(id)
	assert.Empty(t, s.CalendarEvents())
}

func TestImportCalendarEvents_SkipsDuplicates(t *testing.T) {
	s, _ := newTestStore(t)

	batch := []entities.CalendarEvent{
		{ID: "google:1", Title: "Team Meeting", Start: "2027-01-01T09:00:00Z", End: "2027-01-01T10:00:00Z", Source: entities.CalendarSourceGoogle},
		{ID: "google:2", Title: "Doctor", Start: "2027-01-02T09:00:00Z", End: "2027-01-02T10:00:00Z", Source: entities.CalendarSourceGoogle},
	}

	assert.Equal(t, 2, s.ImportCalendarEvents(batch))
	assert.Equal(t, 0, s.ImportCalendarEvents(batch), "re-import must not duplicate")
	assert.Len(t, s.CalendarEvents(), 2)
}

func TestSetToggles_PartialMergeLeavesOthersUnchanged(t *testing.T) {
	s, _ := newTestStore(t)

	off := false
	s.SetToggles(TogglesPatch{ShowTasks: &off})

	toggles := s.Toggles()
	assert.False(t, toggles.ShowTasks)
	assert.True(t, toggles.ShowWeather)
	assert.True(t, toggles.ShowEvents)
	assert.True(t, toggles.ShowCalendar)
	assert.True(t, toggles.ShowFunFacts)
	assert.True(t, toggles.ShowSystem)
}

func TestToggles_ProjectWidgetEnabledFlags(t *testing.T) {
	s, _ := newTestStore(t)

	// flipping the widget slot must be visible through the toggles and
	// vice versa, since the layout is the single source of truth
	s.SetWidgetEnabled("weather", false)
	assert.False(t, s.Toggles().ShowWeather)

	on := true
	s.SetToggles(TogglesPatch{ShowWeather: &on})
	for _, w := range s.WidgetLayout() {
		if w.Type == entities.WidgetWeather {
			assert.True(t, w.Enabled)
		}
	}
}

func TestSettings(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetCity("Oslo")
	s.SetUnits(entities.UnitsImperial)
	s.SetTheme(entities.ThemeDark)

	assert.Equal(t, "Oslo", s.City())
	assert.Equal(t, entities.UnitsImperial, s.Units())
	assert.Equal(t, entities.ThemeDark, s.Theme())
}

func TestSubscribe_NotifiedAfterMutation(t *testing.T) {
	s, _ := newTestStore(t)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.SetCity("Berlin")
	assert.Equal(t, 1, calls)

	s.AddTask(entities.Task{Title: "chore"})
	assert.Equal(t, 2, calls)

	unsubscribe()
	s.SetCity("Madrid")
	assert.Equal(t, 2, calls, "unsubscribed listener must not fire")
}

func findTask(t *testing.T, s *Store, id string) entities.Task {
	t.Helper()
	for _, task := range s.Tasks() {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %q not found", id)
	return entities.Task{}
}
