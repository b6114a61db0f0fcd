package handlers

import (
	"net/http"
	"strings"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// EventHandlers serves calendar events, the merged calendar feed and the event generators
type EventHandlers struct {
	eventService services.EventService
}

func NewEventHandlers(eventService services.EventService) *EventHandlers {
	return &EventHandlers{eventService: eventService}
}

// eventRequest takes start_at/end_at as dates for all-day events and as
// local datetimes otherwise
type eventRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	ContractID  *int64  `json:"contract_id"`
	AssetID     *int64  `json:"asset_id"`
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	AllDay      bool    `json:"all_day"`
	Status      string  `json:"status"`
	Assignee    *string `json:"assignee"`
	Description *string `json:"description"`
}

func (r *eventRequest) toModel() (*models.CalendarEvent, error) {
	parse := func(value, field string) (time.Time, error) {
		if r.AllDay {
			return common.ParseDate(value, field)
		}
		return common.ParseDateTime(value, field, time.Local)
	}

	start, err := parse(r.StartAt, "start_at")
	if err != nil {
		return nil, badRequest(err)
	}
	end := start
	if strings.TrimSpace(r.EndAt) != "" {
		if end, err = parse(r.EndAt, "end_at"); err != nil {
			return nil, badRequest(err)
		}
	}
	return &models.CalendarEvent{
		Title:       r.Title,
		Type:        r.Type,
		ContractID:  r.ContractID,
		AssetID:     r.AssetID,
		StartAt:     start,
		EndAt:       end,
		AllDay:      r.AllDay,
		Status:      r.Status,
		Assignee:    common.StringPtr(common.SafeString(r.Assignee)),
		Description: r.Description,
	}, nil
}

// ListEvents supports ?from=, ?to=, ?type=, ?status= and ?contract_id=
func (h *EventHandlers) ListEvents(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	if to != nil {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	contractID, err := queryID(c, "contract_id")
	if err != nil {
		return err
	}

	events, err := h.eventService.List(c.Request().Context(), &models.EventFilter{
		From:       from,
		To:         to,
		Type:       c.QueryParam("type"),
		Status:     c.QueryParam("status"),
		ContractID: contractID,
	})
	if err != nil {
		return serviceError(err, "list events")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandlers) CreateEvent(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	event, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.eventService.Create(c.Request().Context(), actor, event); err != nil {
		return serviceError(err, "create event")
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandlers) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.eventService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get event")
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandlers) UpdateEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	event, err := req.toModel()
	if err != nil {
		return err
	}
	event.ID = id
	if err := h.eventService.Update(c.Request().Context(), event); err != nil {
		return serviceError(err, "update event")
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEventStatus handles PATCH /events/:id/status
func (h *EventHandlers) UpdateEventStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.eventService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(err, "update event status")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}

func (h *EventHandlers) DeleteEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.eventService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete event")
	}
	return c.NoContent(http.StatusNoContent)
}

// Calendar returns events and holidays for ?from=..&to=; both default to the current month
func (h *EventHandlers) Calendar(c echo.Context) error {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	if from == nil {
		from = &monthStart
	}
	if to == nil {
		monthEnd := time.Date(from.Year(), from.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		to = &monthEnd
	}

	feed, err := h.eventService.Calendar(c.Request().Context(), *from, *to)
	if err != nil {
		return serviceError(err, "load calendar")
	}
	return c.JSON(http.StatusOK, feed)
}

// GenerateInspections handles POST /contracts/:id/inspections with an optional
// ?until=YYYY-MM-DD horizon
func (h *EventHandlers) GenerateInspections(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	horizon, err := queryDate(c, "until")
	if err != nil {
		return err
	}
	result, err := h.eventService.GenerateInspections(c.Request().Context(), actor, id, horizon)
	if err != nil {
		return serviceError(err, "generate inspections")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *EventHandlers) GenerateContractEndEvents(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	result, err := h.eventService.GenerateContractEndEvents(c.Request().Context(), actor)
	if err != nil {
		return serviceError(err, "generate contract end events")
	}
	return c.JSON(http.StatusOK, result)
}
