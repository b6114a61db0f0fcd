package handlers

import (
	"net/http"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type MemberHandlers struct {
	memberService services.MemberService
}

func NewMemberHandlers(memberService services.MemberService) *MemberHandlers {
	return &MemberHandlers{memberService: memberService}
}

type memberRequest struct {
	ContractID     *int64  `json:"contract_id"`
	Name           string  `json:"name"`
	Role           *string `json:"role"`
	Company        *string `json:"company"`
	AllocationType string  `json:"allocation_type"`
	AllocationDays int     `json:"allocation_days"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	Notes          *string `json:"notes"`
}

func (r *memberRequest) toModel() (*models.ProjectMember, error) {
	start, err := common.ParseDate(r.StartDate, "start_date")
	if err != nil {
		return nil, badRequest(err)
	}
	end, err := common.ParseOptionalDate(r.EndDate, "end_date")
	if err != nil {
		return nil, badRequest(err)
	}
	return &models.ProjectMember{
		ContractID:     r.ContractID,
		Name:           r.Name,
		Role:           r.Role,
		Company:        r.Company,
		AllocationType: r.AllocationType,
		AllocationDays: r.AllocationDays,
		StartDate:      start,
		EndDate:        end,
		Notes:          r.Notes,
	}, nil
}

// ListMembers supports ?contract_id= to restrict to one contract
func (h *MemberHandlers) ListMembers(c echo.Context) error {
	contractID, err := queryID(c, "contract_id")
	if err != nil {
		return err
	}
	members, err := h.memberService.List(c.Request().Context(), contractID)
	if err != nil {
		return serviceError(err, "list members")
	}
	return c.JSON(http.StatusOK, members)
}

func (h *MemberHandlers) CreateMember(c echo.Context) error {
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	member, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.memberService.Create(c.Request().Context(), member); err != nil {
		return serviceError(err, "create member")
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *MemberHandlers) GetMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	member, err := h.memberService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get member")
	}
	return c.JSON(http.StatusOK, member)
}

func (h *MemberHandlers) UpdateMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	member, err := req.toModel()
	if err != nil {
		return err
	}
	member.ID = id
	if err := h.memberService.Update(c.Request().Context(), member); err != nil {
		return serviceError(err, "update member")
	}
	return c.JSON(http.StatusOK, member)
}

func (h *MemberHandlers) DeleteMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.memberService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete member")
	}
	return c.NoContent(http.StatusNoContent)
}

// MemberSummary returns per-contract effort totals for ?month=YYYY-MM
func (h *MemberHandlers) MemberSummary(c echo.Context) error {
	month, err := parseMonth(c.QueryParam("month"), time.Now())
	if err != nil {
		return err
	}
	summary, err := h.memberService.Summary(c.Request().Context(), month)
	if err != nil {
		return serviceError(err, "summarize members")
	}
	return c.JSON(http.StatusOK, summary)
}
