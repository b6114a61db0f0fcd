package handlers

import (
	"net/http"

	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers serves the admin user management endpoints
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers lists accounts, optionally filtered by ?status=pending|approved|rejected
func (h *UserHandlers) ListUsers(c echo.Context) error {
	limit, offset := pagination(c)
	users, err := h.userService.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return serviceError(err, "list users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	user, err := h.userService.CreateByAdmin(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err, "create user")
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return serviceError(err, "get user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), c.Param("username"), &req)
	if err != nil {
		return serviceError(err, "update user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) ApproveUser(c echo.Context) error {
	if err := h.userService.Approve(c.Request().Context(), c.Param("username")); err != nil {
		return serviceError(err, "approve user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User approved"})
}

func (h *UserHandlers) RejectUser(c echo.Context) error {
	if err := h.userService.Reject(c.Request().Context(), c.Param("username")); err != nil {
		return serviceError(err, "reject user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User rejected"})
}

func (h *UserHandlers) UpdateRole(c echo.Context) error {
	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.userService.UpdateRole(c.Request().Context(), c.Param("username"), req.Role); err != nil {
		return serviceError(err, "update role")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Role updated"})
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.Request().Context(), actor, c.Param("username")); err != nil {
		return serviceError(err, "delete user")
	}
	return c.NoContent(http.StatusNoContent)
}
