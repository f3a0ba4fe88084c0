package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

func TestMockLifecycle(t *testing.T) {
	c := NewClient(config.GoogleConfig{MockMode: true}, logger.NewNop())
	ctx := context.Background()

	_, err := c.ListEvents(ctx)
	assert.ErrorIs(t, err, entities.ErrCalendarNotConnected, "fetching before sign-in must fail")

	require.NoError(t, c.SignIn(ctx))

	events, err := c.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "mock-1", events[0].ID)
	assert.Equal(t, "Team Meeting", events[0].Summary)
	assert.Equal(t, "mock-2", events[1].ID)

	require.NoError(t, c.SignOut(ctx))
	_, err = c.ListEvents(ctx)
	assert.ErrorIs(t, err, entities.ErrCalendarNotConnected)
}

func TestSignIn_LiveModeWithoutCredentials(t *testing.T) {
	c := NewClient(config.GoogleConfig{MockMode: false}, logger.NewNop())
	err := c.SignIn(context.Background())
	assert.ErrorIs(t, err, entities.ErrCalendarUnavailable)
}

func TestSignIn_CancelledContext(t *testing.T) {
	c := NewClient(config.GoogleConfig{MockMode: true}, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.SignIn(ctx), context.Canceled)
}
