package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bbshop/internal/model"
)

// PriceRepository defines price board persistence operations.
type PriceRepository interface {
	// GetOrCreate returns the singleton board, materializing defaults when
	// no row exists yet.
	GetOrCreate(ctx context.Context) (*model.PriceBoard, error)
	Update(ctx context.Context, board *model.PriceBoard) error
	UpsertItem(ctx context.Context, item *model.PriceItem) error
}

type priceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

// GetOrCreate returns the board with its items, lazily creating the default
// row on first read.
func (r *priceRepository) GetOrCreate(ctx context.Context) (*model.PriceBoard, error) {
	var board model.PriceBoard
	err := r.db.WithContext(ctx).Preload("Items").First(&board).Error
	if err == nil {
		return &board, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := model.DefaultPriceBoard()
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// Update saves the board fields and stamps nothing itself; callers own
// LastUpdated.
func (r *priceRepository) Update(ctx context.Context, board *model.PriceBoard) error {
	return r.db.WithContext(ctx).Omit("Items").Save(board).Error
}

// UpsertItem inserts an ad-hoc item or replaces the one sharing its key.
func (r *priceRepository) UpsertItem(ctx context.Context, item *model.PriceItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "emoji", "unit", "current", "previous"}),
	}).Create(item).Error
}
