package handlers

import (
	"errors"
	"net/http"

	"maintdesk/internal/models"
	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, userService services.UserService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userService: userService,
	}
}

// Login handles user login with username and password
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, resp)
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, services.ErrAccountPending):
		return echo.NewHTTPError(http.StatusForbidden, "Account is pending approval")
	case errors.Is(err, services.ErrAccountRejected):
		return echo.NewHTTPError(http.StatusForbidden, "Account registration was rejected")
	case errors.Is(err, services.ErrTooManyAttempts):
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}
	return serviceError(err, "log in")
}

// Register creates a pending account that an admin has to approve
func (h *AuthHandlers) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.Role = ""

	user, err := h.userService.Register(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err, "register")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration received, waiting for approval",
		"user":    user,
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), username)
	if err != nil {
		return serviceError(err, "load profile")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandlers) UpdateMe(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), username, &req)
	if err != nil {
		return serviceError(err, "update profile")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.userService.ChangePassword(c.Request().Context(), username, &req); err != nil {
		return serviceError(err, "change password")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed"})
}
