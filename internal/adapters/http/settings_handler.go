package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/store"
)

// SettingsHandler handles settings and feature-toggle requests
type SettingsHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(st *store.Store, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{store: st, logger: log}
}

type settingsResponse struct {
	City          string                  `json:"city"`
	Units         entities.Units          `json:"units"`
	Theme         entities.ThemeMode      `json:"theme"`
	ResolvedTheme entities.ThemeMode      `json:"resolved_theme"`
	Toggles       entities.FeatureToggles `json:"toggles"`
	HasWeatherKey bool                    `json:"has_weather_key"`
}

type updateSettingsRequest struct {
	City  *string `json:"city"`
	Units *string `json:"units" validate:"omitempty,oneof=metric imperial"`
	Theme *string `json:"theme" validate:"omitempty,oneof=light dark auto"`
}

type weatherKeyRequest struct {
	APIKey string `json:"api_key"`
}

// GetSettings returns the scalar settings and the derived toggles.
// An `auto` theme is resolved against the display's own dark-mode
// preference, passed as the prefers_dark query parameter.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	prefersDark, _ := strconv.ParseBool(c.QueryParam("prefers_dark"))
	theme := h.store.Theme()

	return c.JSON(http.StatusOK, settingsResponse{
		City:          h.store.City(),
		Units:         h.store.Units(),
		Theme:         theme,
		ResolvedTheme: theme.Resolve(prefersDark),
		Toggles:       h.store.Toggles(),
		HasWeatherKey: h.store.WeatherAPIKey() != "",
	})
}

// UpdateSettings overwrites any of city, units, and theme
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.City != nil {
		h.store.SetCity(*req.City)
	}
	if req.Units != nil {
		h.store.SetUnits(entities.Units(*req.Units))
	}
	if req.Theme != nil {
		h.store.SetTheme(entities.ThemeMode(*req.Theme))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Settings updated"})
}

// UpdateToggles shallow-merges partial feature-toggle changes
func (h *SettingsHandler) UpdateToggles(c echo.Context) error {
	var patch store.TogglesPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	h.store.SetToggles(patch)
	return c.JSON(http.StatusOK, h.store.Toggles())
}

// SetWeatherKey stores the user-entered weather API key
func (h *SettingsHandler) SetWeatherKey(c echo.Context) error {
	var req weatherKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	h.store.SetWeatherAPIKey(req.APIKey)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Weather API key updated"})
}

// LayoutHandler handles widget layout requests
type LayoutHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(st *store.Store, log *logger.Logger) *LayoutHandler {
	return &LayoutHandler{store: st, logger: log}
}

type moveWidgetRequest struct {
	SourceID string `json:"source_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

type patchWidgetRequest struct {
	Enabled *bool   `json:"enabled"`
	Size    *string `json:"size" validate:"omitempty,oneof=small medium large"`
}

// GetLayout returns the widget layout ordered by position
func (h *LayoutHandler) GetLayout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.WidgetLayout())
}

// MoveWidget applies a drag-and-drop move. Unknown ids and
// source == target are accepted as no-ops so a stale drag never errors.
func (h *LayoutHandler) MoveWidget(c echo.Context) error {
	var req moveWidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.store.MoveWidget(req.SourceID, req.TargetID)
	return c.JSON(http.StatusOK, h.store.WidgetLayout())
}

// PatchWidget changes a widget slot's enabled flag or size
func (h *LayoutHandler) PatchWidget(c echo.Context) error {
	var req patchWidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if req.Enabled != nil {
		h.store.SetWidgetEnabled(id, *req.Enabled)
	}
	if req.Size != nil {
		h.store.SetWidgetSize(id, entities.WidgetSize(*req.Size))
	}

	return c.JSON(http.StatusOK, h.store.WidgetLayout())
}
