package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homeboard/core/internal/application/services"
	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/store"
)

// CalendarHandler handles local calendar CRUD and the external
// calendar connect/sync lifecycle
type CalendarHandler struct {
	store           *store.Store
	calendarService *services.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(st *store.Store, calendarService *services.CalendarService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		store:           st,
		calendarService: calendarService,
		logger:          log,
	}
}

type createCalendarEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Start       string `json:"start" validate:"required"`
	End         string `json:"end" validate:"required"`
	Description string `json:"description"`
}

type syncResponse struct {
	Added     int  `json:"added"`
	Connected bool `json:"google_calendar_connected"`
}

// ListCalendarEvents returns all calendar events
func (h *CalendarHandler) ListCalendarEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.CalendarEvents())
}

// CreateCalendarEvent adds a local calendar event
func (h *CalendarHandler) CreateCalendarEvent(c echo.Context) error {
	var req createCalendarEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := time.Parse(time.RFC3339, req.Start); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Start must be RFC3339")
	}
	if _, err := time.Parse(time.RFC3339, req.End); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "End must be RFC3339")
	}

	id := h.store.AddCalendarEvent(entities.CalendarEvent{
		Title:       req.Title,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
	})

	h.logger.Infow("Calendar event created", "event_id", id, "title", req.Title)
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateCalendarEvent patches a calendar event; stale ids are ignored
func (h *CalendarHandler) UpdateCalendarEvent(c echo.Context) error {
	var patch store.CalendarEventPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if patch.Start != nil {
		if _, err := time.Parse(time.RFC3339, *patch.Start); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Start must be RFC3339")
		}
	}
	if patch.End != nil {
		if _, err := time.Parse(time.RFC3339, *patch.End); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "End must be RFC3339")
		}
	}

	h.store.UpdateCalendarEvent(c.Param("id"), patch)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Calendar event updated"})
}

// DeleteCalendarEvent removes a calendar event
func (h *CalendarHandler) DeleteCalendarEvent(c echo.Context) error {
	h.store.DeleteCalendarEvent(c.Param("id"))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Calendar event deleted"})
}

// Connect signs in to the external calendar and runs an initial sync
func (h *CalendarHandler) Connect(c echo.Context) error {
	added, err := h.calendarService.Connect(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Calendar connect failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to connect to Google Calendar")
	}

	return c.JSON(http.StatusOK, syncResponse{Added: added, Connected: true})
}

// Disconnect signs out of the external calendar
func (h *CalendarHandler) Disconnect(c echo.Context) error {
	if err := h.calendarService.Disconnect(c.Request().Context()); err != nil {
		h.logger.Errorw("Calendar disconnect failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to disconnect Google Calendar")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Google Calendar disconnected"})
}

// Sync re-imports upcoming events from the connected calendar
func (h *CalendarHandler) Sync(c echo.Context) error {
	added, err := h.calendarService.Sync(c.Request().Context())
	if err != nil {
		if errors.Is(err, entities.ErrCalendarNotConnected) {
			return echo.NewHTTPError(http.StatusConflict, "Google Calendar is not connected")
		}
		h.logger.Errorw("Calendar sync failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Calendar sync failed")
	}

	return c.JSON(http.StatusOK, syncResponse{Added: added, Connected: true})
}
