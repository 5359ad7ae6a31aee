package handlers

import (
	"errors"
	"net/http"

	"gstbill/internal/common"
	"gstbill/internal/repositories"
	"gstbill/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login, token refresh and the current-user endpoint.
type AuthHandlers struct {
	authService services.AuthService
	rbacService services.RBACService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, rbacService services.RBACService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		rbacService: rbacService,
		userRepo:    userRepo,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to log in")
	}
	return c.JSON(http.StatusOK, tokens)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefresh) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Refresh token is invalid or expired")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to refresh token")
	}
	return c.JSON(http.StatusOK, tokens)
}

// Me returns the authenticated user and their resolved capability set.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	user.PasswordHash = ""

	permissions, err := h.rbacService.PermissionsForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve permissions")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":        user,
		"permissions": permissions,
	})
}
