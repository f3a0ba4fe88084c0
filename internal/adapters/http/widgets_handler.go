package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homeboard/core/internal/application/services"
	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
)

// WeatherHandler handles weather widget requests
type WeatherHandler struct {
	weatherService *services.WeatherService
	logger         *logger.Logger
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService *services.WeatherService, log *logger.Logger) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService, logger: log}
}

func weatherRequestFromQuery(c echo.Context) services.WeatherRequest {
	return services.WeatherRequest{
		City:   c.QueryParam("city"),
		Units:  entities.Units(c.QueryParam("units")),
		APIKey: c.QueryParam("api_key"),
	}
}

func weatherError(err error) *echo.HTTPError {
	if errors.Is(err, entities.ErrMissingAPIKey) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing OpenWeatherMap API key")
	}
	return echo.NewHTTPError(http.StatusBadGateway, "Weather unavailable")
}

// GetCurrentWeather returns current conditions for the configured city
func (h *WeatherHandler) GetCurrentWeather(c echo.Context) error {
	details, err := h.weatherService.CurrentWeather(c.Request().Context(), weatherRequestFromQuery(c))
	if err != nil {
		h.logger.Warnw("Weather fetch failed", "error", err)
		return weatherError(err)
	}
	return c.JSON(http.StatusOK, details)
}

// GetForecast returns the 5-day forecast for the configured city
func (h *WeatherHandler) GetForecast(c echo.Context) error {
	days, err := h.weatherService.Forecast(c.Request().Context(), weatherRequestFromQuery(c))
	if err != nil {
		h.logger.Warnw("Forecast fetch failed", "error", err)
		return weatherError(err)
	}
	return c.JSON(http.StatusOK, days)
}

// FunFactHandler handles fun-fact widget requests
type FunFactHandler struct {
	factService *services.FunFactService
}

// NewFunFactHandler creates a new fun fact handler
func NewFunFactHandler(factService *services.FunFactService) *FunFactHandler {
	return &FunFactHandler{factService: factService}
}

type funFactResponse struct {
	Fact  string `json:"fact"`
	Index int    `json:"index"`
	Total int    `json:"total"`
}

// GetFunFact returns the fact currently in rotation
func (h *FunFactHandler) GetFunFact(c echo.Context) error {
	fact, idx := h.factService.Current(time.Now())
	return c.JSON(http.StatusOK, funFactResponse{
		Fact:  fact,
		Index: idx,
		Total: len(h.factService.All()),
	})
}

// SystemHandler handles system widget requests
type SystemHandler struct {
	systemService *services.SystemService
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(systemService *services.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// GetSystemStatus returns process and host health
func (h *SystemHandler) GetSystemStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.systemService.Status())
}
