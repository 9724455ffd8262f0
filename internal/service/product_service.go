package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bbshop/internal/cache"
	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductInput carries the fields for creating a product. Offer fields are
// persisted only when IsSpecialOffer is true.
type ProductInput struct {
	Name            string
	Category        string
	Price           decimal.Decimal
	Description     string
	Image           string
	IsAvailable     *bool
	IsSpecialOffer  bool
	OfferPrice      *decimal.Decimal
	OfferValidUntil *time.Time
}

// ProductUpdate carries partial update fields. Nil means "no change";
// non-nil zero values (false, 0, "") are applied as given.
type ProductUpdate struct {
	Name            *string
	Category        *string
	Price           *decimal.Decimal
	Description     *string
	Image           *string
	IsAvailable     *bool
	IsSpecialOffer  *bool
	OfferPrice      *decimal.Decimal
	OfferValidUntil *time.Time
}

// ProductService handles catalog operations.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, category string, specialOnly bool) ([]model.Product, error)
	ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.Product, error)
	SetSpecialOffer(ctx context.Context, id uuid.UUID, offerPrice *decimal.Decimal, validUntil *time.Time) (*model.Product, error)
	RemoveSpecialOffer(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{
		repo:  repo,
		cache: cache,
	}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// Create adds a catalog item. A name collision fails with ErrProductExists
// and writes nothing; the unique index backstops the pre-check.
func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	existing, err := s.repo.FindByName(ctx, input.Name)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check product existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrProductExists
	}

	product := &model.Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		IsAvailable: true,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsSpecialOffer {
		product.IsSpecialOffer = true
		product.OfferPrice = input.OfferPrice
		product.OfferValidUntil = input.OfferValidUntil
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrProductExists
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update applies a partial update. The effective special-offer flag decides
// the offer fields: false always clears them, true applies supplied values
// over the existing ones.
func (s *productService) Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.IsAvailable != nil {
		product.IsAvailable = *update.IsAvailable
	}
	if update.IsSpecialOffer != nil {
		product.IsSpecialOffer = *update.IsSpecialOffer
	}

	if product.IsSpecialOffer {
		if update.OfferPrice != nil {
			product.OfferPrice = update.OfferPrice
		}
		if update.OfferValidUntil != nil {
			product.OfferValidUntil = update.OfferValidUntil
		}
	} else {
		product.ClearOffer()
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrProductExists
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// Get retrieves a product by ID with caching.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// List returns products, optionally filtered by category. With specialOnly
// set, only available products whose offer has not expired are returned.
func (s *productService) List(ctx context.Context, category string, specialOnly bool) ([]model.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{
		Category:    category,
		SpecialOnly: specialOnly,
		Now:         time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ToggleAvailability flips the availability flag and returns the product.
func (s *productService) ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsAvailable = !product.IsAvailable
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("toggle availability: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// SetSpecialOffer marks a product as a special offer. Both the offer price
// and the valid-until date are required.
func (s *productService) SetSpecialOffer(ctx context.Context, id uuid.UUID, offerPrice *decimal.Decimal, validUntil *time.Time) (*model.Product, error) {
	if offerPrice == nil || validUntil == nil {
		return nil, apperrors.ErrOfferFieldsRequired
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsSpecialOffer = true
	product.OfferPrice = offerPrice
	product.OfferValidUntil = validUntil
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("set special offer: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// RemoveSpecialOffer clears all offer-related fields.
func (s *productService) RemoveSpecialOffer(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ClearOffer()
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("remove special offer: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// Delete hard-deletes a product. There are no dependent entities to cascade.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *productService) find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}
