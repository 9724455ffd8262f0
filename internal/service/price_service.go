package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bbshop/internal/cache"
	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/repository"
)

const (
	priceCacheKey = "prices"
	priceCacheTTL = time.Minute
)

// CategoryPrice is a current/previous pair for one headline category.
type CategoryPrice struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

// PriceUpdate carries per-category merges. A nil category is untouched; a
// nil Previous falls back to the existing current value, then to the
// hardcoded default.
type PriceUpdate struct {
	Chicken  *CategoryPriceUpdate
	Mutton   *CategoryPriceUpdate
	Natukodi *CategoryPriceUpdate
}

// CategoryPriceUpdate is the write-side pair for one category.
type CategoryPriceUpdate struct {
	Current  decimal.Decimal
	Previous *decimal.Decimal
}

// PriceItemInput carries the fields for an ad-hoc price board entry.
type PriceItemInput struct {
	Name  string
	Emoji string
	Price decimal.Decimal
	Unit  string
}

// PriceSnapshot is the read model served to clients.
type PriceSnapshot struct {
	Chicken     CategoryPrice            `json:"chicken"`
	Mutton      CategoryPrice            `json:"mutton"`
	Natukodi    CategoryPrice            `json:"natukodi"`
	Products    map[string]PriceItemView `json:"products,omitempty"`
	LastUpdated time.Time                `json:"lastUpdated"`
}

// PriceItemView is the serialized form of an ad-hoc board entry.
type PriceItemView struct {
	Name     string          `json:"name"`
	Emoji    string          `json:"emoji"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Unit     string          `json:"unit"`
}

// PriceService handles the headline price board.
type PriceService interface {
	Get(ctx context.Context) (*PriceSnapshot, error)
	Update(ctx context.Context, update PriceUpdate) (*PriceSnapshot, error)
	AddItem(ctx context.Context, input PriceItemInput) (*PriceSnapshot, error)
}

type priceService struct {
	repo  repository.PriceRepository
	cache *cache.Client
}

// NewPriceService creates a new price service.
func NewPriceService(repo repository.PriceRepository, cache *cache.Client) PriceService {
	return &priceService{
		repo:  repo,
		cache: cache,
	}
}

// Get returns the price snapshot, lazily creating the default board on first
// read. The snapshot is cached briefly since clients poll it.
func (s *priceService) Get(ctx context.Context) (*PriceSnapshot, error) {
	if data, _ := s.cache.Get(ctx, priceCacheKey); data != nil {
		var cached PriceSnapshot
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	board, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price board: %w", err)
	}

	snapshot := snapshotOf(board)
	if payload, err := json.Marshal(snapshot); err == nil {
		_ = s.cache.Set(ctx, priceCacheKey, payload, priceCacheTTL)
	}
	return snapshot, nil
}

// Update merges per-category values and stamps LastUpdated.
func (s *priceService) Update(ctx context.Context, update PriceUpdate) (*PriceSnapshot, error) {
	board, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price board: %w", err)
	}

	if update.Chicken != nil {
		board.ChickenCurrent, board.ChickenPrevious = merged(*update.Chicken, board.ChickenCurrent, model.DefaultChickenPrevious)
	}
	if update.Mutton != nil {
		board.MuttonCurrent, board.MuttonPrevious = merged(*update.Mutton, board.MuttonCurrent, model.DefaultMuttonPrevious)
	}
	if update.Natukodi != nil {
		board.NatukodiCurrent, board.NatukodiPrevious = merged(*update.Natukodi, board.NatukodiCurrent, model.DefaultNatukodiPrevious)
	}
	board.LastUpdated = time.Now()

	if err := s.repo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update price board: %w", err)
	}

	_ = s.cache.Delete(ctx, priceCacheKey)
	return snapshotOf(board), nil
}

// AddItem upserts an ad-hoc named entry keyed by the lower-cased name.
func (s *priceService) AddItem(ctx context.Context, input PriceItemInput) (*PriceSnapshot, error) {
	if input.Name == "" || input.Emoji == "" || input.Price.IsZero() {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "name, emoji, and price are required", "PRICE_ITEM_FIELDS_REQUIRED")
	}

	board, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price board: %w", err)
	}

	unit := input.Unit
	if unit == "" {
		unit = "per kg"
	}
	item := &model.PriceItem{
		BoardID:  board.ID,
		Key:      strings.ToLower(input.Name),
		Name:     input.Name,
		Emoji:    input.Emoji,
		Unit:     unit,
		Current:  input.Price,
		Previous: input.Price,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("upsert price item: %w", err)
	}

	board.LastUpdated = time.Now()
	if err := s.repo.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("stamp price board: %w", err)
	}

	_ = s.cache.Delete(ctx, priceCacheKey)

	board, err = s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload price board: %w", err)
	}
	return snapshotOf(board), nil
}

// merged resolves a category write: the provided previous wins, otherwise
// the pre-update current, otherwise the hardcoded default.
func merged(u CategoryPriceUpdate, existingCurrent, defaultPrevious decimal.Decimal) (current, previous decimal.Decimal) {
	current = u.Current
	switch {
	case u.Previous != nil:
		previous = *u.Previous
	case !existingCurrent.IsZero():
		previous = existingCurrent
	default:
		previous = defaultPrevious
	}
	return current, previous
}

func snapshotOf(board *model.PriceBoard) *PriceSnapshot {
	snapshot := &PriceSnapshot{
		Chicken:     CategoryPrice{Current: board.ChickenCurrent, Previous: board.ChickenPrevious},
		Mutton:      CategoryPrice{Current: board.MuttonCurrent, Previous: board.MuttonPrevious},
		Natukodi:    CategoryPrice{Current: board.NatukodiCurrent, Previous: board.NatukodiPrevious},
		LastUpdated: board.LastUpdated,
	}
	if len(board.Items) > 0 {
		snapshot.Products = make(map[string]PriceItemView, len(board.Items))
		for _, item := range board.Items {
			snapshot.Products[item.Key] = PriceItemView{
				Name:     item.Name,
				Emoji:    item.Emoji,
				Current:  item.Current,
				Previous: item.Previous,
				Unit:     item.Unit,
			}
		}
	}
	return snapshot
}
