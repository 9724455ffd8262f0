package main

import (
	"net/http"

	_ "bbshop/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"bbshop/internal/auth"
	"bbshop/internal/cache"
	"bbshop/internal/config"
	"bbshop/internal/db"
	"bbshop/internal/handler"
	"bbshop/internal/logger"
	"bbshop/internal/model"
	"bbshop/internal/repository"
	"bbshop/internal/router"
	"bbshop/internal/service"
)

// @title BBShop API
// @version 1.0
// @description Meat shop backend: product catalog, headline price board, and admin management with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New()

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.Admin{},
		&model.Product{},
		&model.PriceBoard{},
		&model.PriceItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	priceRepo := repository.NewPriceRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(adminRepo, jwtService)
	productService := service.NewProductService(productRepo, cacheClient)
	adminService := service.NewAdminService(adminRepo)
	priceService := service.NewPriceService(priceRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	adminHandler := handler.NewAdminHandler(adminService)
	priceHandler := handler.NewPriceHandler(priceService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		productHandler,
		adminHandler,
		priceHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
