package domain

import (
	"github.com/shopspring/decimal"
)

// Sort keys accepted by the box list endpoint.
const (
	SortByName       = "name"
	SortByCreatedAt  = "createdAt"
	SortByCount      = "count"
	SortByTotalValue = "totalValue"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pagination defaults.
const (
	DefaultPage          = 1
	DefaultLimit         = 20
	SadaqahsPerPage      = 10
	CollectionsPerPage   = 5
	QuickActionPresetMax = 9
)

type CreateBoxRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	BaseCurrencyID string            `json:"baseCurrencyId,omitempty"`
}

// UpdateBoxRequest is a partial update; nil fields are left untouched.
type UpdateBoxRequest struct {
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	BaseCurrencyID *string           `json:"baseCurrencyId,omitempty"`
}

// AddSadaqahRequest adds Amount sadaqahs of Value each.
type AddSadaqahRequest struct {
	Amount     *int              `json:"amount,omitempty"`
	Value      *decimal.Decimal  `json:"value,omitempty"`
	CurrencyID string            `json:"currencyId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type CreateCurrencyRequest struct {
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Symbol         string           `json:"symbol,omitempty"`
	CurrencyTypeID string           `json:"currencyTypeId,omitempty"`
	USDValue       *decimal.Decimal `json:"usdValue,omitempty"`
}

type CreateCurrencyTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListBoxesParams selects the ordering of the box list.
type ListBoxesParams struct {
	SortBy    string
	SortOrder string
}

// PageParams selects a page of a paginated list.
type PageParams struct {
	Page  int
	Limit int
}

// OrDefault fills zero fields with the defaults.
func (p PageParams) OrDefault() PageParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// OrDefault fills empty fields with createdAt/desc.
func (p ListBoxesParams) OrDefault() ListBoxesParams {
	if p.SortBy == "" {
		p.SortBy = SortByCreatedAt
	}
	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}
	return p
}
