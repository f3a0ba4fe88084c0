// Package calendar implements the calendar provider for Google Calendar.
// Real OAuth is out of scope; the client runs in mock mode by default and
// serves a fixed upcoming schedule, matching the reference deployment.
package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/ports"
)

// Client models the Google Calendar sign-in/fetch/sign-out lifecycle
type Client struct {
	config config.GoogleConfig
	logger *logger.Logger

	mu       sync.Mutex
	signedIn bool
}

// NewClient creates a Google Calendar client
func NewClient(cfg config.GoogleConfig, log *logger.Logger) *Client {
	return &Client{
		config: cfg,
		logger: log.WithComponent("google-calendar"),
	}
}

// SignIn authenticates against the calendar account
func (c *Client) SignIn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !c.config.MockMode {
		if c.config.APIKey == "" || c.config.ClientID == "" {
			return fmt.Errorf("%w: GOOGLE_API_KEY and GOOGLE_CLIENT_ID are not set", entities.ErrCalendarUnavailable)
		}
		return fmt.Errorf("%w: live Google API mode is not supported yet", entities.ErrCalendarUnavailable)
	}

	c.logger.Info("Google sign in (mock mode)")
	c.mu.Lock()
	c.signedIn = true
	c.mu.Unlock()
	return nil
}

// SignOut ends the calendar session
func (c *Client) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Info("Google sign out (mock mode)")
	c.mu.Lock()
	c.signedIn = false
	c.mu.Unlock()
	return nil
}

// ListEvents returns upcoming events from the primary calendar
func (c *Client) ListEvents(ctx context.Context) ([]ports.UpstreamEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	signedIn := c.signedIn
	c.mu.Unlock()
	if !signedIn {
		return nil, entities.ErrCalendarNotConnected
	}

	c.logger.Info("Fetching Google Calendar events (mock mode)")
	now := time.Now()
	return []ports.UpstreamEvent{
		{
			ID:          "mock-1",
			Summary:     "Team Meeting",
			Start:       now.Add(24 * time.Hour).Format(time.RFC3339),
			End:         now.Add(25 * time.Hour).Format(time.RFC3339),
			Description: "Weekly team sync meeting",
		},
		{
			ID:          "mock-2",
			Summary:     "Doctor Appointment",
			Start:       now.Add(48 * time.Hour).Format(time.RFC3339),
			End:         now.Add(49 * time.Hour).Format(time.RFC3339),
			Description: "Annual check-up",
		},
	}, nil
}
