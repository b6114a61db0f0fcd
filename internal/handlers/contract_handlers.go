package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContractHandlers serves contracts with their nested assets, plus Excel import/export
type ContractHandlers struct {
	contractService services.ContractService
	assetService    services.AssetService
	excelService    services.ExcelService
}

func NewContractHandlers(contractService services.ContractService, assetService services.AssetService, excelService services.ExcelService) *ContractHandlers {
	return &ContractHandlers{
		contractService: contractService,
		assetService:    assetService,
		excelService:    excelService,
	}
}

// contractRequest carries dates as YYYY-MM-DD strings
type contractRequest struct {
	CustomerName   string          `json:"customer_name"`
	ProjectTitle   string          `json:"project_title"`
	StartDate      string          `json:"start_date"`
	EndDate        *string         `json:"end_date"`
	ContractAmount *int64          `json:"contract_amount"`
	Notes          *string         `json:"notes"`
	Assets         []*models.Asset `json:"assets"`
}

func (r *contractRequest) toModel() (*models.Contract, error) {
	start, err := common.ParseDate(r.StartDate, "start_date")
	if err != nil {
		return nil, badRequest(err)
	}
	end, err := common.ParseOptionalDate(r.EndDate, "end_date")
	if err != nil {
		return nil, badRequest(err)
	}
	assets := r.Assets
	if assets == nil {
		assets = []*models.Asset{}
	}
	return &models.Contract{
		CustomerName:   r.CustomerName,
		ProjectTitle:   r.ProjectTitle,
		StartDate:      start,
		EndDate:        end,
		ContractAmount: r.ContractAmount,
		Notes:          r.Notes,
		Assets:         assets,
	}, nil
}

// ListContracts supports ?search=, ?active_on=, ?ending_before=, ?limit= and ?offset=
func (h *ContractHandlers) ListContracts(c echo.Context) error {
	activeOn, err := queryDate(c, "active_on")
	if err != nil {
		return err
	}
	endingBefore, err := queryDate(c, "ending_before")
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	contracts, err := h.contractService.List(c.Request().Context(), &models.ContractFilter{
		Search:       c.QueryParam("search"),
		ActiveOn:     activeOn,
		EndingBefore: endingBefore,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return serviceError(err, "list contracts")
	}
	return c.JSON(http.StatusOK, contracts)
}

// CreateContract stores the contract and all of its assets in one transaction
func (h *ContractHandlers) CreateContract(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req contractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	contract, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.contractService.Create(c.Request().Context(), actor, contract); err != nil {
		return serviceError(err, "create contract")
	}
	return c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandlers) GetContract(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	contract, err := h.contractService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get contract")
	}
	return c.JSON(http.StatusOK, contract)
}

// UpdateContract replaces the contract row and its whole asset list
func (h *ContractHandlers) UpdateContract(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req contractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	contract, err := req.toModel()
	if err != nil {
		return err
	}
	contract.ID = id
	if err := h.contractService.Update(c.Request().Context(), actor, contract); err != nil {
		return serviceError(err, "update contract")
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandlers) DeleteContract(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.contractService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete contract")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContractHandlers) ListContractAssets(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	assets, err := h.assetService.ListByContract(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "list assets")
	}
	return c.JSON(http.StatusOK, assets)
}

// ExportContracts streams every contract with its assets as an .xlsx workbook
func (h *ContractHandlers) ExportContracts(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.excelService.Export(c.Request().Context(), &buf); err != nil {
		return serviceError(err, "export contracts")
	}
	filename := fmt.Sprintf("contracts-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportContracts reads the uploaded workbook (multipart field "file")
func (h *ContractHandlers) ImportContracts(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	if file.Size > services.MaxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size exceeds maximum limit of 20MB")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer src.Close()

	result, err := h.excelService.Import(c.Request().Context(), actor, src)
	if err != nil {
		return serviceError(err, "import contracts")
	}
	return c.JSON(http.StatusOK, result)
}
