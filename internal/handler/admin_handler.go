package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bbshop/internal/errors"
	"bbshop/internal/service"
)

// AdminHandler handles admin account management endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateAdminRequest represents an admin creation request.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// UpdateAdminRequest represents a partial admin update. A password change
// requires both currentPassword and newPassword.
type UpdateAdminRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
	Role            *string `json:"role" validate:"omitempty,oneof=admin superadmin"`
}

// StatusResponse reports a toggled active flag.
type StatusResponse struct {
	ID       uuid.UUID `json:"id"`
	IsActive bool      `json:"isActive"`
}

// List godoc
// @Summary List admin accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Admin
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.adminService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, admins)
}

// Get godoc
// @Summary Get an admin account by ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} model.Admin
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	admin, err := h.adminService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, admin)
}

// Create godoc
// @Summary Create an admin account
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAdminRequest true "Admin data"
// @Success 201 {object} model.Admin
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.adminService.Create(c.Request().Context(), service.AdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, admin)
}

// Update godoc
// @Summary Update an admin account (self or superadmin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body UpdateAdminRequest true "Fields to change"
// @Success 200 {object} model.Admin
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	caller, ok := CallerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.adminService.Update(c.Request().Context(), caller, id, service.AdminUpdate{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Role:            req.Role,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, admin)
}

// Delete godoc
// @Summary Delete an admin account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	caller, ok := CallerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	if err := h.adminService.Delete(c.Request().Context(), caller, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "admin removed"})
}

// ToggleStatus godoc
// @Summary Toggle an admin account's active flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{id}/status [put]
func (h *AdminHandler) ToggleStatus(c echo.Context) error {
	id, err := adminID(c)
	if err != nil {
		return err
	}

	caller, ok := CallerFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	admin, err := h.adminService.ToggleStatus(c.Request().Context(), caller, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, StatusResponse{
		ID:       admin.ID,
		IsActive: admin.IsActive,
	})
}

func adminID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "admin not found",
			Code:  "ADMIN_NOT_FOUND",
		})
	}
	return id, nil
}
