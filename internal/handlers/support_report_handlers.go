package handlers

import (
	"net/http"
	"strconv"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type SupportReportHandlers struct {
	reportService services.SupportReportService
}

func NewSupportReportHandlers(reportService services.SupportReportService) *SupportReportHandlers {
	return &SupportReportHandlers{reportService: reportService}
}

type supportReportRequest struct {
	ContractID   *int64  `json:"contract_id"`
	CustomerName string  `json:"customer_name"`
	Requester    *string `json:"requester"`
	Engineer     string  `json:"engineer"`
	SupportType  string  `json:"support_type"`
	StartAt      string  `json:"start_at"`
	EndAt        string  `json:"end_at"`
	Issue        string  `json:"issue"`
	ActionTaken  *string `json:"action_taken"`
	Status       string  `json:"status"`
}

func (r *supportReportRequest) toModel() (*models.ClientSupportReport, error) {
	start, err := common.ParseDateTime(r.StartAt, "start_at", time.Local)
	if err != nil {
		return nil, badRequest(err)
	}
	end, err := common.ParseDateTime(r.EndAt, "end_at", time.Local)
	if err != nil {
		return nil, badRequest(err)
	}
	return &models.ClientSupportReport{
		ContractID:   r.ContractID,
		CustomerName: r.CustomerName,
		Requester:    r.Requester,
		Engineer:     r.Engineer,
		SupportType:  r.SupportType,
		StartAt:      start,
		EndAt:        end,
		Issue:        r.Issue,
		ActionTaken:  r.ActionTaken,
		Status:       r.Status,
	}, nil
}

// ListReports supports ?contract_id=, ?from=, ?to= and pagination
func (h *SupportReportHandlers) ListReports(c echo.Context) error {
	contractID, err := queryID(c, "contract_id")
	if err != nil {
		return err
	}
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
	limit, offset := pagination(c)

	reports, err := h.reportService.List(c.Request().Context(), &models.SupportReportFilter{
		ContractID: contractID,
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return serviceError(err, "list support reports")
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *SupportReportHandlers) CreateReport(c echo.Context) error {
	var req supportReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	report, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.reportService.Create(c.Request().Context(), report); err != nil {
		return serviceError(err, "create support report")
	}
	return c.JSON(http.StatusCreated, report)
}

func (h *SupportReportHandlers) GetReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	report, err := h.reportService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get support report")
	}
	return c.JSON(http.StatusOK, report)
}

func (h *SupportReportHandlers) UpdateReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req supportReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	report, err := req.toModel()
	if err != nil {
		return err
	}
	report.ID = id
	if err := h.reportService.Update(c.Request().Context(), report); err != nil {
		return serviceError(err, "update support report")
	}
	return c.JSON(http.StatusOK, report)
}

func (h *SupportReportHandlers) DeleteReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reportService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete support report")
	}
	return c.NoContent(http.StatusNoContent)
}

// MonthlyStats returns twelve rows for ?year= (default: current year)
func (h *SupportReportHandlers) MonthlyStats(c echo.Context) error {
	year := time.Now().Year()
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
		}
		year = y
	}
	stats, err := h.reportService.MonthlyStats(c.Request().Context(), year)
	if err != nil {
		return serviceError(err, "load support statistics")
	}
	return c.JSON(http.StatusOK, stats)
}
