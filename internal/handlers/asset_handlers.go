package handlers

import (
	"net/http"

	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type AssetHandlers struct {
	assetService services.AssetService
}

func NewAssetHandlers(assetService services.AssetService) *AssetHandlers {
	return &AssetHandlers{assetService: assetService}
}

// ListAssets lists assets across contracts; ?category=HW|SW and ?search= narrow it
func (h *AssetHandlers) ListAssets(c echo.Context) error {
	limit, offset := pagination(c)
	assets, err := h.assetService.List(c.Request().Context(), c.QueryParam("category"), c.QueryParam("search"), limit, offset)
	if err != nil {
		return serviceError(err, "list assets")
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHandlers) GetAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	asset, err := h.assetService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get asset")
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHandlers) UpdateAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var asset models.Asset
	if err := c.Bind(&asset); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	asset.ID = id
	if err := h.assetService.Update(c.Request().Context(), &asset); err != nil {
		return serviceError(err, "update asset")
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHandlers) DeleteAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.assetService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete asset")
	}
	return c.NoContent(http.StatusNoContent)
}
