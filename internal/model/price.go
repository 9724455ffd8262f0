package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default headline prices used when the board is first materialized and as
// fallback previous values on partial updates.
var (
	DefaultChickenCurrent   = decimal.NewFromInt(300)
	DefaultChickenPrevious  = decimal.NewFromInt(280)
	DefaultMuttonCurrent    = decimal.NewFromInt(680)
	DefaultMuttonPrevious   = decimal.NewFromInt(650)
	DefaultNatukodiCurrent  = decimal.NewFromInt(380)
	DefaultNatukodiPrevious = decimal.NewFromInt(370)
)

// PriceBoard is the singleton headline-price snapshot clients poll, kept
// separate from per-product records. At most one row exists; it is lazily
// created with defaults on first read.
type PriceBoard struct {
	ID               uint            `json:"-" gorm:"primaryKey"`
	ChickenCurrent   decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	ChickenPrevious  decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	MuttonCurrent    decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	MuttonPrevious   decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	NatukodiCurrent  decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	NatukodiPrevious decimal.Decimal `json:"-" gorm:"type:decimal(10,2);not null"`
	LastUpdated      time.Time       `json:"lastUpdated"`
	Items            []PriceItem     `json:"-" gorm:"foreignKey:BoardID"`
}

// PriceItem is an ad-hoc named entry on the price board, the relational
// rendition of the board's open-ended products map. Key is the lower-cased
// name.
type PriceItem struct {
	ID       uint            `json:"-" gorm:"primaryKey"`
	BoardID  uint            `json:"-" gorm:"not null;index"`
	Key      string          `json:"-" gorm:"column:item_key;uniqueIndex;size:255;not null"`
	Name     string          `json:"name" gorm:"size:255;not null"`
	Emoji    string          `json:"emoji" gorm:"size:16;not null"`
	Unit     string          `json:"unit" gorm:"size:50;default:'per kg'"`
	Current  decimal.Decimal `json:"current" gorm:"type:decimal(10,2);not null"`
	Previous decimal.Decimal `json:"previous" gorm:"type:decimal(10,2);not null"`
}

// DefaultPriceBoard returns a board populated with the hardcoded defaults.
func DefaultPriceBoard() *PriceBoard {
	return &PriceBoard{
		ChickenCurrent:   DefaultChickenCurrent,
		ChickenPrevious:  DefaultChickenPrevious,
		MuttonCurrent:    DefaultMuttonCurrent,
		MuttonPrevious:   DefaultMuttonPrevious,
		NatukodiCurrent:  DefaultNatukodiCurrent,
		NatukodiPrevious: DefaultNatukodiPrevious,
		LastUpdated:      time.Now(),
	}
}
