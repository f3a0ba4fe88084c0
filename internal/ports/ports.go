package ports

import (
	"context"

	"github.com/homeboard/core/internal/domain/entities"
)

// WeatherProvider fetches conditions from an upstream weather service.
// Implementations must honor ctx cancellation so an abandoned widget
// refresh never writes stale data back.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string, units entities.Units, apiKey string) (*entities.WeatherDetails, error)
	Forecast(ctx context.Context, city string, units entities.Units, apiKey string) ([]entities.ForecastDay, error)
}

// UpstreamEvent is a raw calendar event as returned by the upstream
// account, before mapping into a CalendarEvent.
type UpstreamEvent struct {
	ID          string
	Summary     string
	Start       string
	End         string
	Description string
}

// CalendarProvider models the sign-in/fetch/sign-out lifecycle of an
// external calendar account.
type CalendarProvider interface {
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	// ListEvents returns future events from the primary calendar,
	// ordered by start time, capped at the provider's page size.
	ListEvents(ctx context.Context) ([]UpstreamEvent, error)
}

// StorageBackend is the key-value medium the persistence adapter writes
// its snapshots to.
type StorageBackend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
