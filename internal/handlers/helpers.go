package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"maintdesk/internal/common"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// serviceError maps service sentinels onto HTTP errors; anything unknown is
// logged and reported as "Failed to <action>".
func serviceError(err error, action string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, services.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, capitalize(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}
	log.Printf("Failed to %s: %v", action, err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Failed to "+action)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, capitalize(err.Error()))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := common.ParseID(c.Param(name), name)
	if err != nil {
		return 0, badRequest(err)
	}
	return id, nil
}

// currentUser returns the username stored by the JWT middleware
func currentUser(c echo.Context) (string, error) {
	username, ok := common.GetUsernameFromContext(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return username, nil
}

func pagination(c echo.Context) (int, int) {
	limit, offset := 0, 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return common.ValidatePaginationParams(limit, offset)
}

func queryDate(c echo.Context, name string) (*time.Time, error) {
	value := c.QueryParam(name)
	t, err := common.ParseOptionalDate(&value, name)
	if err != nil {
		return nil, badRequest(err)
	}
	return t, nil
}

func queryID(c echo.Context, name string) (*int64, error) {
	id, err := common.ParseOptionalID(c.QueryParam(name), name)
	if err != nil {
		return nil, badRequest(err)
	}
	return id, nil
}

// parseMonth accepts YYYY-MM and defaults to the current month
func parseMonth(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "Month must be in YYYY-MM format")
	}
	return t, nil
}
