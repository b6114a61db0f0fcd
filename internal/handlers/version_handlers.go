package handlers

import (
	"net/http"

	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type VersionHandlers struct {
	versionService services.VersionService
}

func NewVersionHandlers(versionService services.VersionService) *VersionHandlers {
	return &VersionHandlers{versionService: versionService}
}

type versionRequest struct {
	Version    string `json:"version"`
	ReleasedAt string `json:"released_at"`
	Changes    string `json:"changes"`
}

func (r *versionRequest) toModel() (*models.VersionHistory, error) {
	released, err := common.ParseDate(r.ReleasedAt, "released_at")
	if err != nil {
		return nil, badRequest(err)
	}
	return &models.VersionHistory{Version: r.Version, ReleasedAt: released, Changes: r.Changes}, nil
}

func (h *VersionHandlers) ListVersions(c echo.Context) error {
	versions, err := h.versionService.List(c.Request().Context())
	if err != nil {
		return serviceError(err, "list versions")
	}
	return c.JSON(http.StatusOK, versions)
}

func (h *VersionHandlers) GetVersion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.versionService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err, "get version")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VersionHandlers) CreateVersion(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req versionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	v, err := req.toModel()
	if err != nil {
		return err
	}
	if err := h.versionService.Create(c.Request().Context(), actor, v); err != nil {
		return serviceError(err, "create version")
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *VersionHandlers) UpdateVersion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req versionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	v, err := req.toModel()
	if err != nil {
		return err
	}
	v.ID = id
	if err := h.versionService.Update(c.Request().Context(), v); err != nil {
		return serviceError(err, "update version")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VersionHandlers) DeleteVersion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.versionService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err, "delete version")
	}
	return c.NoContent(http.StatusNoContent)
}
