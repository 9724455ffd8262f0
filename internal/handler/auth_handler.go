package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"bbshop/internal/auth"
	"bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminProfile is the public projection of an admin account.
type AdminProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

func profileOf(admin *model.Admin) AdminProfile {
	return AdminProfile{
		ID:    admin.ID.String(),
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
	}
}

// Login godoc
// @Summary Authenticate an admin and issue a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, admin, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		Admin: profileOf(admin),
	})
}

// CurrentAdmin godoc
// @Summary Get the authenticated admin's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Admin
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/admin [get]
func (h *AuthHandler) CurrentAdmin(c echo.Context) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	admin, err := h.authService.CurrentAdmin(c.Request().Context(), claims.AdminID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, admin)
}

// ClaimsFrom extracts the verified admin claims stashed by the JWT middleware.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}

// CallerFrom builds the service-level caller identity from the request.
func CallerFrom(c echo.Context) (service.Caller, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{ID: claims.AdminID, Role: claims.Role}, true
}
