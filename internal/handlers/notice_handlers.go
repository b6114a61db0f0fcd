package handlers

import (
	"net/http"

	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type NoticeHandlers struct {
	noticeService services.NoticeService
}

func NewNoticeHandlers(noticeService services.NoticeService) *NoticeHandlers {
	return &NoticeHandlers{noticeService: noticeService}
}

type noticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

// ListNotices returns pinned notices first, newest first within each group
func (h *NoticeHandlers) ListNotices(c echo.Context) error {
	limit, offset := pagination(c)
	notices, err := h.noticeService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err, "list notices")
	}
	return c.JSON(http.StatusOK, notices)
}

func (h *NoticeHandlers) CreateNotice(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	notice := &models.Notice{Title: req.Title, Content: req.Content, Pinned: req.Pinned}
	if err := h.noticeService.Create(c.Request().Context(), actor, notice); err != nil {
		return serviceError(err, "create notice")
	}
	return c.JSON(http.StatusCreated, notice)
}

func (h *NoticeHandlers) GetNotice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	notice, err := h.noticeService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get notice")
	}
	return c.JSON(http.StatusOK, notice)
}

func (h *NoticeHandlers) UpdateNotice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	notice := &models.Notice{ID: id, Title: req.Title, Content: req.Content, Pinned: req.Pinned}
	if err := h.noticeService.Update(c.Request().Context(), notice); err != nil {
		return serviceError(err, "update notice")
	}
	return c.JSON(http.StatusOK, notice)
}

func (h *NoticeHandlers) DeleteNotice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.noticeService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete notice")
	}
	return c.NoContent(http.StatusNoContent)
}
