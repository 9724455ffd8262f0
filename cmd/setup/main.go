package main

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bbshop/internal/config"
	"bbshop/internal/db"
	"bbshop/internal/logger"
	"bbshop/internal/model"
	"bbshop/internal/repository"
	"bbshop/internal/service"
)

// Seed catalog created when the product table is empty.
var defaultProducts = []model.Product{
	{
		Name:        "Chicken",
		Category:    model.CategoryChicken,
		Price:       decimal.NewFromInt(300),
		Description: "Fresh chicken cuts including whole chicken, breast pieces, drumsticks, and more. All cuts are cleaned and prepared fresh daily.",
		IsAvailable: true,
	},
	{
		Name:        "Mutton",
		Category:    model.CategoryMutton,
		Price:       decimal.NewFromInt(680),
		Description: "Premium quality mutton cuts from healthy goats. All cuts are expertly prepared and delivered fresh to maintain the best taste and quality.",
		IsAvailable: true,
	},
	{
		Name:        "Natukodi",
		Category:    model.CategoryNatukodi,
		Price:       decimal.NewFromInt(380),
		Description: "Premium country chicken (Natukodi) raised naturally. Known for its rich flavor and nutritional value. Perfect for traditional recipes and healthy meals.",
		IsAvailable: true,
	},
}

func main() {
	log := logger.New()
	log.Info().Msg("starting setup")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.Admin{},
		&model.Product{},
		&model.PriceBoard{},
		&model.PriceItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	adminRepo := repository.NewAdminRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	priceRepo := repository.NewPriceRepository(gormDB)

	// Default superadmin
	existing, err := adminRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatal().Err(err).Msg("check admin")
	}
	if existing != nil {
		log.Info().Str("email", existing.Email).Msg("admin already exists")
	} else {
		hash, err := service.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		admin := &model.Admin{
			Name:         "Admin",
			Email:        cfg.AdminEmail,
			PasswordHash: hash,
			Role:         model.RoleSuperadmin,
			IsActive:     true,
		}
		if err := adminRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("create admin")
		}
		log.Info().Str("email", admin.Email).Msg("default superadmin created")
	}

	// Default catalog
	products, err := productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("list products")
	}
	if len(products) > 0 {
		log.Info().Int("count", len(products)).Msg("products already exist")
	} else {
		for i := range defaultProducts {
			p := defaultProducts[i]
			if err := productRepo.Create(ctx, &p); err != nil {
				log.Fatal().Err(err).Str("name", p.Name).Msg("create product")
			}
		}
		log.Info().Int("count", len(defaultProducts)).Msg("default products created")
	}

	// Default price board
	if _, err := priceRepo.GetOrCreate(ctx); err != nil {
		log.Fatal().Err(err).Msg("materialize price board")
	}

	log.Info().Msg("setup completed")
}
