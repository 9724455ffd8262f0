package bbclient

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trend describes a headline price movement.
type Trend string

// Trend values.
const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Category emoji used by the storefront price display.
var categoryEmoji = map[string]string{
	"chicken":  "🍗",
	"mutton":   "🐐",
	"natukodi": "🐓",
}

// CategoryEmoji returns the display emoji for a category, or the generic
// meat emoji for unknown ones.
func CategoryEmoji(category string) string {
	if emoji, ok := categoryEmoji[category]; ok {
		return emoji
	}
	return "🥩"
}

// TrendOf compares the current price against the previous one.
func TrendOf(current, previous decimal.Decimal) Trend {
	switch current.Cmp(previous) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendFlat
	}
}

// TrendIcon maps a trend to its display icon.
func TrendIcon(t Trend) string {
	switch t {
	case TrendUp:
		return "📈"
	case TrendDown:
		return "📉"
	default:
		return "➖"
	}
}

// PriceCard is a display-ready row for one headline category.
type PriceCard struct {
	Category string
	Emoji    string
	Current  decimal.Decimal
	Previous decimal.Decimal
	Trend    Trend
}

// PriceCards derives display rows from the board's real previous values.
func PriceCards(board *PriceBoard) []PriceCard {
	pairs := []struct {
		category string
		price    CategoryPrice
	}{
		{"chicken", board.Chicken},
		{"mutton", board.Mutton},
		{"natukodi", board.Natukodi},
	}

	cards := make([]PriceCard, 0, len(pairs))
	for _, p := range pairs {
		cards = append(cards, PriceCard{
			Category: p.category,
			Emoji:    CategoryEmoji(p.category),
			Current:  p.price.Current,
			Previous: p.price.Previous,
			Trend:    TrendOf(p.price.Current, p.price.Previous),
		})
	}
	return cards
}

// EffectivePrice returns the price a buyer pays right now: the offer price
// while a special offer is set, priced, and unexpired, otherwise the list
// price.
func EffectivePrice(p *Product, now time.Time) decimal.Decimal {
	if p.IsSpecialOffer && p.OfferPrice != nil {
		if p.OfferValidUntil == nil || p.OfferValidUntil.After(now) {
			return *p.OfferPrice
		}
	}
	return p.Price
}
