package handlers

import (
	"net/http"
	"strconv"

	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers serves the current user's inbox
type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{
		notificationSvc: notificationSvc,
	}
}

// ListNotifications supports ?unread=true and pagination
func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))
	limit, offset := pagination(c)

	notifications, err := h.notificationSvc.List(c.Request().Context(), username, unreadOnly, limit, offset)
	if err != nil {
		return serviceError(err, "list notifications")
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandlers) UnreadCount(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	count, err := h.notificationSvc.UnreadCount(c.Request().Context(), username)
	if err != nil {
		return serviceError(err, "count notifications")
	}
	return c.JSON(http.StatusOK, map[string]int{"unread": count})
}

func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationSvc.MarkRead(c.Request().Context(), username, id); err != nil {
		return serviceError(err, "mark notification read")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandlers) MarkAllRead(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	updated, err := h.notificationSvc.MarkAllRead(c.Request().Context(), username)
	if err != nil {
		return serviceError(err, "mark notifications read")
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
}

func (h *NotificationHandlers) DeleteNotification(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notificationSvc.Delete(c.Request().Context(), username, id); err != nil {
		return serviceError(err, "delete notification")
	}
	return c.NoContent(http.StatusNoContent)
}
