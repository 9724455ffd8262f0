package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bbshop/internal/errors"
	"bbshop/internal/model"
	"bbshop/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestProductService_Create(t *testing.T) {
	t.Run("duplicate name rejected without write", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByName", mock.Anything, "Fish").Return(&model.Product{Name: "Fish"}, nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.Create(context.Background(), ProductInput{
			Name:     "Fish",
			Category: model.CategoryOther,
			Price:    decimal.NewFromInt(400),
		})

		assert.ErrorIs(t, err, apperrors.ErrProductExists)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("defaults applied", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByName", mock.Anything, "Fish").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.Create(context.Background(), ProductInput{
			Name:     "Fish",
			Category: model.CategoryOther,
			Price:    decimal.NewFromInt(400),
		})

		assert.NoError(t, err)
		assert.True(t, product.IsAvailable)
		assert.False(t, product.IsSpecialOffer)
		assert.Nil(t, product.OfferPrice)
		assert.Nil(t, product.OfferValidUntil)
	})

	t.Run("offer fields ignored without special flag", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByName", mock.Anything, "Fish").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		validUntil := time.Now().Add(24 * time.Hour)
		service := NewProductService(mockRepo, nil)
		product, err := service.Create(context.Background(), ProductInput{
			Name:            "Fish",
			Category:        model.CategoryOther,
			Price:           decimal.NewFromInt(400),
			IsSpecialOffer:  false,
			OfferPrice:      decimalPtr(250),
			OfferValidUntil: &validUntil,
		})

		assert.NoError(t, err)
		assert.False(t, product.IsSpecialOffer)
		assert.Nil(t, product.OfferPrice)
		assert.Nil(t, product.OfferValidUntil)
	})

	t.Run("unique index violation maps to duplicate", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByName", mock.Anything, "Fish").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(gorm.ErrDuplicatedKey)

		service := NewProductService(mockRepo, nil)
		_, err := service.Create(context.Background(), ProductInput{
			Name:     "Fish",
			Category: model.CategoryOther,
			Price:    decimal.NewFromInt(400),
		})

		assert.ErrorIs(t, err, apperrors.ErrProductExists)
	})
}

func TestProductService_Update(t *testing.T) {
	id := uuid.New()

	existing := func() *model.Product {
		offerPrice := decimal.NewFromInt(250)
		validUntil := time.Now().Add(24 * time.Hour)
		return &model.Product{
			ID:              id,
			Name:            "Chicken",
			Category:        model.CategoryChicken,
			Price:           decimal.NewFromInt(300),
			Description:     "fresh",
			IsAvailable:     true,
			IsSpecialOffer:  true,
			OfferPrice:      &offerPrice,
			OfferValidUntil: &validUntil,
		}
	}

	t.Run("absent fields retain prior values", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.Update(context.Background(), id, ProductUpdate{
			Price: decimalPtr(320),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Chicken", product.Name)
		assert.Equal(t, "fresh", product.Description)
		assert.True(t, decimal.NewFromInt(320).Equal(product.Price))
		assert.True(t, product.IsSpecialOffer)
		assert.NotNil(t, product.OfferPrice)
	})

	t.Run("explicit zero values applied", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.Update(context.Background(), id, ProductUpdate{
			Description: strPtr(""),
			IsAvailable: boolPtr(false),
		})

		assert.NoError(t, err)
		assert.Equal(t, "", product.Description)
		assert.False(t, product.IsAvailable)
	})

	t.Run("turning off special offer clears offer fields", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		product, err := service.Update(context.Background(), id, ProductUpdate{
			IsSpecialOffer: boolPtr(false),
		})

		assert.NoError(t, err)
		assert.False(t, product.IsSpecialOffer)
		assert.Nil(t, product.OfferPrice)
		assert.Nil(t, product.OfferValidUntil)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		_, err := service.Update(context.Background(), id, ProductUpdate{})

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductService_SpecialOffer(t *testing.T) {
	id := uuid.New()

	t.Run("requires price and expiry", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), nil)

		_, err := service.SetSpecialOffer(context.Background(), id, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrOfferFieldsRequired)

		validUntil := time.Now().Add(24 * time.Hour)
		_, err = service.SetSpecialOffer(context.Background(), id, nil, &validUntil)
		assert.ErrorIs(t, err, apperrors.ErrOfferFieldsRequired)

		_, err = service.SetSpecialOffer(context.Background(), id, decimalPtr(250), nil)
		assert.ErrorIs(t, err, apperrors.ErrOfferFieldsRequired)
	})

	t.Run("set then remove", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Product{
			ID:          id,
			Name:        "Chicken",
			Price:       decimal.NewFromInt(300),
			IsAvailable: true,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		service := NewProductService(mockRepo, nil)
		validUntil := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

		product, err := service.SetSpecialOffer(context.Background(), id, decimalPtr(250), &validUntil)
		assert.NoError(t, err)
		assert.True(t, product.IsSpecialOffer)
		assert.True(t, decimalPtr(250).Equal(*product.OfferPrice))
		assert.Equal(t, validUntil, *product.OfferValidUntil)

		product, err = service.RemoveSpecialOffer(context.Background(), id)
		assert.NoError(t, err)
		assert.False(t, product.IsSpecialOffer)
		assert.Nil(t, product.OfferPrice)
		assert.Nil(t, product.OfferValidUntil)
	})
}

func TestProductService_ToggleAvailability(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id, IsAvailable: true}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	service := NewProductService(mockRepo, nil)
	product, err := service.ToggleAvailability(context.Background(), id)

	assert.NoError(t, err)
	assert.False(t, product.IsAvailable)
}

func TestProductService_List_SpecialFilter(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.SpecialOnly && !f.Now.IsZero() && f.Category == ""
	})).Return([]model.Product{}, nil)

	service := NewProductService(mockRepo, nil)
	_, err := service.List(context.Background(), "", true)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewProductService(mockRepo, nil)
		err := service.Delete(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("hard delete", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Product{ID: id}, nil)
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		service := NewProductService(mockRepo, nil)
		err := service.Delete(context.Background(), id)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
