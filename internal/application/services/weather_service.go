package services

import (
	"context"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/ports"
	"github.com/homeboard/core/internal/store"
)

// WeatherRequest carries per-request overrides; empty fields fall back
// to stored settings and configuration.
type WeatherRequest struct {
	City   string
	Units  entities.Units
	APIKey string
}

// WeatherService resolves request parameters against stored settings and
// delegates to the weather provider.
type WeatherService struct {
	provider ports.WeatherProvider
	store    *store.Store
	config   config.WeatherConfig
	logger   *logger.Logger
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider ports.WeatherProvider, st *store.Store, cfg config.WeatherConfig, log *logger.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		store:    st,
		config:   cfg,
		logger:   log.WithComponent("weather"),
	}
}

// CurrentWeather fetches current conditions for the resolved city
func (s *WeatherService) CurrentWeather(ctx context.Context, req WeatherRequest) (*entities.WeatherDetails, error) {
	city, units, key := s.resolve(req)
	return s.provider.CurrentWeather(ctx, city, units, key)
}

// Forecast fetches the 5-day forecast for the resolved city
func (s *WeatherService) Forecast(ctx context.Context, req WeatherRequest) ([]entities.ForecastDay, error) {
	city, units, key := s.resolve(req)
	return s.provider.Forecast(ctx, city, units, key)
}

// resolve applies the precedence rules: explicit request value, then the
// stored user setting, then the build-time configuration default.
func (s *WeatherService) resolve(req WeatherRequest) (string, entities.Units, string) {
	city := req.City
	if city == "" {
		city = s.store.City()
	}
	if city == "" {
		city = s.config.DefaultCity
	}

	units := req.Units
	if !units.IsValid() {
		units = s.store.Units()
	}
	if !units.IsValid() {
		units = entities.UnitsMetric
	}

	key := req.APIKey
	if key == "" {
		key = s.store.WeatherAPIKey()
	}
	if key == "" {
		key = s.config.APIKey
	}

	return city, units, key
}
