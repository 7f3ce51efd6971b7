package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyType groups currencies (fiat, metal, crypto...).
type CurrencyType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Currency is a unit a sadaqah can be given in.
type Currency struct {
	ID             string              `json:"id"`
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	Symbol         string              `json:"symbol,omitempty"`
	CurrencyTypeID string              `json:"currencyTypeId,omitempty"`
	CurrencyType   *CurrencyType       `json:"currencyType,omitempty"`
	USDValue       decimal.NullDecimal `json:"usdValue"`
	LastRateUpdate *time.Time          `json:"lastRateUpdate,omitempty"`
}

// ValueExtra is a per-currency total attached to boxes, stats and collections.
type ValueExtra struct {
	Total decimal.Decimal `json:"total"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
}

// Box accumulates sadaqahs until it is emptied into a Collection.
type Box struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description,omitempty"`
	Metadata        map[string]string     `json:"metadata,omitempty"`
	Count           int                   `json:"count"`
	TotalValue      decimal.Decimal       `json:"totalValue"`
	TotalValueExtra map[string]ValueExtra `json:"totalValueExtra,omitempty"`
	CurrencyID      string                `json:"currencyId,omitempty"`
	Currency        *Currency             `json:"currency,omitempty"`
	BaseCurrencyID  string                `json:"baseCurrencyId"`
	BaseCurrency    *Currency             `json:"baseCurrency,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// BoxStats summarises the sadaqahs of a single box.
type BoxStats struct {
	FirstSadaqahAt *time.Time `json:"firstSadaqahAt,omitempty"`
	LastSadaqahAt  *time.Time `json:"lastSadaqahAt,omitempty"`
	TotalSadaqahs  int        `json:"totalSadaqahs"`
}

// Sadaqah is a single donation entry.
type Sadaqah struct {
	ID         string          `json:"id"`
	BoxID      string          `json:"boxId"`
	Value      decimal.Decimal `json:"value"`
	CurrencyID string          `json:"currencyId"`
	Currency   *Currency       `json:"currency,omitempty"`
	UserID     string          `json:"userId,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Conversion is the rate snapshot of one currency at collection time.
type Conversion struct {
	CurrencyID string          `json:"currencyId"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Symbol     string          `json:"symbol,omitempty"`
	Value      decimal.Decimal `json:"value"`
	Rate       decimal.Decimal `json:"rate"`
}

// CollectionMetadata holds the conversions captured when a box was emptied.
type CollectionMetadata struct {
	Conversions           []Conversion `json:"conversions,omitempty"`
	PreferredCurrencyID   string       `json:"preferredCurrencyId,omitempty"`
	PreferredCurrencyCode string       `json:"preferredCurrencyCode,omitempty"`
}

// Collection is the immutable record produced by emptying a box.
type Collection struct {
	ID              string                `json:"id"`
	BoxID           string                `json:"boxId"`
	EmptiedAt       time.Time             `json:"emptiedAt"`
	TotalValue      decimal.Decimal       `json:"totalValue"`
	TotalValueExtra map[string]ValueExtra `json:"totalValueExtra,omitempty"`
	Metadata        *CollectionMetadata   `json:"metadata,omitempty"`
	CurrencyID      string                `json:"currencyId"`
	Currency        *Currency             `json:"currency,omitempty"`
}

// Pagination is the envelope returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
