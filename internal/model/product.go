package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product categories.
const (
	CategoryChicken  = "chicken"
	CategoryMutton   = "mutton"
	CategoryNatukodi = "natukodi"
	CategoryOther    = "other"
)

// ValidCategory reports whether category is one of the known product categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryChicken, CategoryMutton, CategoryNatukodi, CategoryOther:
		return true
	}
	return false
}

// Product represents a catalog item. Offer fields are nil whenever
// IsSpecialOffer is false.
type Product struct {
	ID              uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string           `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Category        string           `json:"category" gorm:"size:50;not null;index"`
	Price           decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	Description     string           `json:"description" gorm:"type:text"`
	Image           string           `json:"image" gorm:"size:512;default:''"`
	IsAvailable     bool             `json:"isAvailable" gorm:"default:true;index"`
	IsSpecialOffer  bool             `json:"isSpecialOffer" gorm:"default:false;index"`
	OfferPrice      *decimal.Decimal `json:"offerPrice,omitempty" gorm:"type:decimal(10,2)"`
	OfferValidUntil *time.Time       `json:"offerValidUntil,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ClearOffer removes the special offer state.
func (p *Product) ClearOffer() {
	p.IsSpecialOffer = false
	p.OfferPrice = nil
	p.OfferValidUntil = nil
}
