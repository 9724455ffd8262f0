package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"bbshop/internal/auth"
	"bbshop/internal/config"
	apperrors "bbshop/internal/errors"
	"bbshop/internal/handler"
	"bbshop/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	adminHandler *handler.AdminHandler,
	priceHandler *handler.PriceHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "x-auth-token"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// The original API read tokens from two different headers depending on
	// the route. One middleware accepts both: Authorization bearer first,
	// x-auth-token as fallback.
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,header:x-auth-token",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	// Public routes
	loginLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(10)))
	api.POST("/auth/login", authHandler.Login, loginLimiter)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/prices", priceHandler.Get)

	// Authenticated routes
	api.GET("/auth/admin", authHandler.CurrentAdmin, jwtMiddleware)

	// Admin-role routes
	products := api.Group("/products", jwtMiddleware, requireRole(model.RoleAdmin, model.RoleSuperadmin))
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)
	products.PUT("/:id/availability", productHandler.ToggleAvailability)
	products.PUT("/:id/special-offer", productHandler.SetSpecialOffer)
	products.DELETE("/:id/special-offer", productHandler.RemoveSpecialOffer)

	prices := api.Group("/prices", jwtMiddleware, requireRole(model.RoleAdmin, model.RoleSuperadmin))
	prices.PUT("", priceHandler.Update)
	prices.POST("", priceHandler.AddItem)

	// Admin account management. PUT /:id stays at admin level because
	// self-service profile edits are allowed; the service enforces
	// self-or-superadmin.
	admins := api.Group("/admin", jwtMiddleware, requireRole(model.RoleAdmin, model.RoleSuperadmin))
	admins.PUT("/:id", adminHandler.Update)

	superadmins := api.Group("/admin", jwtMiddleware, requireRole(model.RoleSuperadmin))
	superadmins.GET("", adminHandler.List)
	superadmins.POST("", adminHandler.Create)
	superadmins.GET("/:id", adminHandler.Get)
	superadmins.DELETE("/:id", adminHandler.Delete)
	superadmins.PUT("/:id/status", adminHandler.ToggleStatus)
}

// requireRole gates a route group on the verified token's role claim.
func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := handler.ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
