package handlers

import (
	"net/http"
	"strings"

	"gstbill/internal/common"
	"gstbill/internal/models"
	"gstbill/internal/repositories"
	"gstbill/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles user administration HTTP requests.
type UserHandlers struct {
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
	authService services.AuthService
	rbacService services.RBACService
}

func NewUserHandlers(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, authService services.AuthService, rbacService services.RBACService) *UserHandlers {
	return &UserHandlers{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		authService: authService,
		rbacService: rbacService,
	}
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}
	if !strings.Contains(req.Email, "@") {
		return common.SendValidationError(c, "email", "email has invalid format")
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}

	ctx := c.Request().Context()
	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Active:       true,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	if req.Role != "" {
		role, err := h.roleRepo.GetByName(ctx, req.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Role not found")
		}
		if err := h.roleRepo.AssignToUser(ctx, user.ID, role.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assign role")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "User")
	}

	roles, err := h.roleRepo.RolesForUser(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user roles")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  user,
		"roles": roles,
	})
}

type UpdateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Active    *bool  `json:"active"`
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx := c.Request().Context()
	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "User")
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Active != nil {
		user.Active = *req.Active
		if !user.Active {
			// Deactivation invalidates open sessions.
			_ = h.authService.RevokeUserTokens(ctx, id)
		}
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}
	_ = h.rbacService.InvalidateUser(ctx, id)

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.authService.RevokeUserTokens(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	if err := h.userRepo.Delete(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	_ = h.rbacService.InvalidateUser(ctx, id)

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	var req ListQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	users, err := h.userRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list users")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}
