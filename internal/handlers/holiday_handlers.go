package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type HolidayHandlers struct {
	holidayService services.HolidayService
}

func NewHolidayHandlers(holidayService services.HolidayService) *HolidayHandlers {
	return &HolidayHandlers{holidayService: holidayService}
}

type holidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r *holidayRequest) toModel() (*models.Holiday, error) {
	date, err := common.ParseDate(r.Date, "date")
	if err != nil {
		return nil, badRequest(err)
	}
	return &models.Holiday{Date: date, Name: r.Name, Type: r.Type}, nil
}

// ListHolidays defaults to the current calendar year when ?from/?to are absent
func (h *HolidayHandlers) ListHolidays(c echo.Context) error {
	year := time.Now().Year()
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	if from == nil {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		from = &start
	}
	if to == nil {
		end := time.Date(from.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		to = &end
	}

	holidays, err := h.holidayService.List(c.Request().Context(), *from, *to)
	if err != nil {
		return serviceError(err, "list holidays")
	}
	return c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandlers) CreateHoliday(c echo.Context) error {
	var req holidayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	holiday, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.holidayService.Create(c.Request().Context(), holiday); err != nil {
		return serviceError(err, "create holiday")
	}
	return c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandlers) UpdateHoliday(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req holidayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	holiday, err := req.toModel()
	if err != nil {
		return err
	}
	holiday.ID = id
	if err := h.holidayService.Update(c.Request().Context(), holiday); err != nil {
		return serviceError(err, "update holiday")
	}
	return c.JSON(http.StatusOK, holiday)
}

func (h *HolidayHandlers) DeleteHoliday(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.holidayService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete holiday")
	}
	return c.NoContent(http.StatusNoContent)
}

// SyncHolidays pulls national holidays for ?years=2024,2025 (default: this year and next)
func (h *HolidayHandlers) SyncHolidays(c echo.Context) error {
	var years []int
	if raw := c.QueryParam("years"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			y, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || y < 1900 || y > 2999 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid year: "+part)
			}
			years = append(years, y)
		}
	} else {
		now := time.Now().Year()
		years = []int{now, now + 1}
	}

	result, err := h.holidayService.Sync(c.Request().Context(), years)
	if err != nil {
		return serviceError(err, "sync holidays")
	}
	return c.JSON(http.StatusOK, result)
}
