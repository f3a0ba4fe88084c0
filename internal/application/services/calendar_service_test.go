package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/ports"
	"github.com/homeboard/core/internal/store"
)

type memBackend struct {
	data map[string][]byte
}

func (m *memBackend) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memBackend) Put(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memBackend) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func newServiceStore(t *testing.T) *store.Store {
	t.Helper()
	backend := &memBackend{data: make(map[string][]byte)}
	return store.New(store.NewAdapter(backend, logger.NewNop()), logger.NewNop())
}

type fakeCalendar struct {
	events   []ports.UpstreamEvent
	listErr  error
	signedIn bool
}

func (f *fakeCalendar) SignIn(ctx context.Context) error {
	f.signedIn = true
	return nil
}

func (f *fakeCalendar) SignOut(ctx context.Context) error {
	f.signedIn = false
	return nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context) ([]ports.UpstreamEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func upstreamEvent(id, summary string, startIn time.Duration) ports.UpstreamEvent {
	start := time.Now().Add(startIn)
	return ports.UpstreamEvent{
		ID:      id,
		Summary: summary,
		Start:   start.Format(time.RFC3339),
		End:     start.Add(time.Hour).Format(time.RFC3339),
	}
}

func TestConnect_SignsInAndImports(t *testing.T) {
	st := newServiceStore(t)
	provider := &fakeCalendar{events: []ports.UpstreamEvent{
		upstreamEvent("ev-1", "Dentist", 24*time.Hour),
		upstreamEvent("ev-2", "Recital", 48*time.Hour),
	}}
	svc := NewCalendarService(provider, st, 20, logger.NewNop())

	added, err := svc.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.True(t, st.GoogleConnected())
	assert.True(t, provider.signedIn)

	events := st.CalendarEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "google:ev-1", events[0].ID)
	assert.Equal(t, entities.CalendarSourceGoogle, events[0].Source)
}

func TestSync_RepeatedSyncsDoNotDuplicate(t *testing.T) {
	st := newServiceStore(t)
	provider := &fakeCalendar{events: []ports.UpstreamEvent{
		upstreamEvent("ev-1", "Dentist", 24*time.Hour),
	}}
	svc := NewCalendarService(provider, st, 20, logger.NewNop())

	_, err := svc.Connect(context.Background())
	require.NoError(t, err)

	added, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, st.CalendarEvents(), 1)
}

func TestSync_SkipsPastEventsAndCapsPageSize(t *testing.T) {
	st := newServiceStore(t)
	provider := &fakeCalendar{events: []ports.UpstreamEvent{
		upstreamEvent("past", "Last week", -7*24*time.Hour),
		upstreamEvent("c", "Third", 72*time.Hour),
		upstreamEvent("a", "First", 24*time.Hour),
		upstreamEvent("b", "Second", 48*time.Hour),
	}}
	svc := NewCalendarService(provider, st, 2, logger.NewNop())

	added, err := svc.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	events := st.CalendarEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "google:a", events[0].ID, "imports are ordered by start time")
	assert.Equal(t, "google:b", events[1].ID)
}

func TestSync_RequiresConnection(t *testing.T) {
	st := newServiceStore(t)
	svc := NewCalendarService(&fakeCalendar{}, st, 20, logger.NewNop())

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, entities.ErrCalendarNotConnected)
}

func TestSync_PropagatesProviderFailure(t *testing.T) {
	st := newServiceStore(t)
	st.SetGoogleConnected(true)
	boom := errors.New("upstream exploded")
	svc := NewCalendarService(&fakeCalendar{listErr: boom}, st, 20, logger.NewNop())

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDisconnect_KeepsImportedEvents(t *testing.T) {
	st := newServiceStore(t)
	provider := &fakeCalendar{events: []ports.UpstreamEvent{
		upstreamEvent("ev-1", "Dentist", 24*time.Hour),
	}}
	svc := NewCalendarService(provider, st, 20, logger.NewNop())

	_, err := svc.Connect(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Disconnect(context.Background()))
	assert.False(t, st.GoogleConnected())
	assert.False(t, provider.signedIn)
	assert.Len(t, st.CalendarEvents(), 1, "disconnect does not remove imported events")
}
