package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Preset is a reusable donation template kept on this device only.
// Order and Amount are optional; records written by older versions may lack them.
type Preset struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	CurrencyID string          `json:"currencyId"`
	Amount     *int            `json:"amount,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	IsDefault  bool            `json:"isDefault,omitempty"`
	Order      *int            `json:"order,omitempty"`
}

// PresetPatch holds the fields that can be changed on a preset. ID and
// CreatedAt are fixed; order only changes through moves and deletes.
type PresetPatch struct {
	Name        *string
	Value       *decimal.Decimal
	CurrencyID  *string
	Amount      *int
	ClearAmount bool
	IsDefault   *bool
}

// Count is the number of sadaqahs a quick-add produces (Amount, or 1).
func (p Preset) Count() int {
	if p.Amount == nil || *p.Amount <= 0 {
		return 1
	}
	return *p.Amount
}

// Total is Value multiplied by Count.
func (p Preset) Total() decimal.Decimal {
	return p.Value.Mul(decimal.NewFromInt(int64(p.Count())))
}
