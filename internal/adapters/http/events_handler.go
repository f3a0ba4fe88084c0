package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/store"
)

// EventHandler handles countdown-event requests
type EventHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(st *store.Store, log *logger.Logger) *EventHandler {
	return &EventHandler{store: st, logger: log}
}

type createEventRequest struct {
	Name    string `json:"name" validate:"required"`
	DateISO string `json:"date" validate:"required"`
	Emoji   string `json:"emoji" validate:"omitempty,max=4"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

type countdownResponse struct {
	entities.EventItem
	DaysRemaining int `json:"days_remaining"`
}

// ListEvents returns all countdown events with their remaining days
func (h *EventHandler) ListEvents(c echo.Context) error {
	now := time.Now()
	events := h.store.Events()
	out := make([]countdownResponse, 0, len(events))
	for _, e := range events {
		days, err := e.DaysRemaining(now)
		if err != nil {
			days = 0
		}
		out = append(out, countdownResponse{EventItem: e, DaysRemaining: days})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateEvent adds a countdown event and returns its id
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := time.Parse("2006-01-02", req.DateISO); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Date must be YYYY-MM-DD")
	}

	id := h.store.AddEvent(entities.EventItem{
		Name:    req.Name,
		DateISO: req.DateISO,
		Emoji:   req.Emoji,
		Color:   req.Color,
	})

	h.logger.Infow("Event created", "event_id", id, "name", req.Name)
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateEvent patches a countdown event; stale ids are ignored
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var patch store.EventPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if patch.DateISO != nil {
		if _, err := time.Parse("2006-01-02", *patch.DateISO); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Date must be YYYY-MM-DD")
		}
	}

	h.store.UpdateEvent(c.Param("id"), patch)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event updated"})
}

// DeleteEvent removes a countdown event
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	h.store.DeleteEvent(c.Param("id"))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// FamilyHandler handles family member requests
type FamilyHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(st *store.Store, log *logger.Logger) *FamilyHandler {
	return &FamilyHandler{store: st, logger: log}
}

type createFamilyMemberRequest struct {
	Name      string `json:"name" validate:"required"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// ListFamily returns all family members
func (h *FamilyHandler) ListFamily(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Family())
}

// CreateFamilyMember adds a member and returns its id
func (h *FamilyHandler) CreateFamilyMember(c echo.Context) error {
	var req createFamilyMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := h.store.AddFamilyMember(entities.FamilyMember{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})

	h.logger.Infow("Family member created", "member_id", id, "name", req.Name)
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateFamilyMember patches a member; stale ids are ignored
func (h *FamilyHandler) UpdateFamilyMember(c echo.Context) error {
	var patch store.FamilyMemberPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	h.store.UpdateFamilyMember(c.Param("id"), patch)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Family member updated"})
}

// DeleteFamilyMember removes a member
func (h *FamilyHandler) DeleteFamilyMember(c echo.Context) error {
	h.store.DeleteFamilyMember(c.Param("id"))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Family member deleted"})
}
