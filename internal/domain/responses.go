package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMalformed marks a response that decoded but does not have the documented shape.
var ErrMalformed = errors.New("malformed response")

// Validator is implemented by every response type; the transport calls it after decoding.
type Validator interface {
	Validate() error
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

func checkSuccess(ok bool) error {
	if !ok {
		return malformed("success flag not set")
	}
	return nil
}

func (b *Box) validate() error {
	if b == nil {
		return malformed("box missing")
	}
	if b.ID == "" || b.Name == "" || b.BaseCurrencyID == "" {
		return malformed("box %q missing id, name or baseCurrencyId", b.ID)
	}
	return nil
}

func (c *Currency) validate() error {
	if c == nil {
		return malformed("currency missing")
	}
	if c.ID == "" || c.Code == "" || c.Name == "" {
		return malformed("currency %q missing id, code or name", c.ID)
	}
	return nil
}

func (t *CurrencyType) validate() error {
	if t == nil {
		return malformed("currency type missing")
	}
	if t.ID == "" || t.Name == "" {
		return malformed("currency type %q missing id or name", t.ID)
	}
	return nil
}

func (s *Sadaqah) validate() error {
	if s.ID == "" || s.BoxID == "" || s.CurrencyID == "" {
		return malformed("sadaqah %q missing id, boxId or currencyId", s.ID)
	}
	return nil
}

func (c *Collection) validate() error {
	if c == nil {
		return malformed("collection missing")
	}
	if c.ID == "" || c.BoxID == "" || c.CurrencyID == "" {
		return malformed("collection %q missing id, boxId or currencyId", c.ID)
	}
	return nil
}

func (p Pagination) validate() error {
	if p.Page < 1 || p.Limit < 0 || p.Total < 0 || p.TotalPages < 0 {
		return malformed("pagination %+v out of range", p)
	}
	return nil
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func (r *HealthResponse) Validate() error {
	switch r.Status {
	case "healthy", "degraded", "unhealthy":
		return nil
	}
	return malformed("unexpected health status %q", r.Status)
}

type StatsResponse struct {
	Success          bool                  `json:"success"`
	TotalBoxes       int                   `json:"totalBoxes"`
	TotalSadaqahs    int                   `json:"totalSadaqahs"`
	TotalValue       decimal.Decimal       `json:"totalValue"`
	TotalValueExtra  map[string]ValueExtra `json:"totalValueExtra"`
	UniqueCurrencies int                   `json:"uniqueCurrencies"`
	PrimaryCurrency  *Currency             `json:"primaryCurrency"`
}

func (r *StatsResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.PrimaryCurrency != nil {
		return r.PrimaryCurrency.validate()
	}
	return nil
}

// BoxSummary is the aggregate returned alongside the box list.
type BoxSummary struct {
	TotalBoxes int             `json:"totalBoxes"`
	TotalCoins int             `json:"totalCoins"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

type ListBoxesResponse struct {
	Success bool       `json:"success"`
	Boxes   []Box      `json:"boxes"`
	Summary BoxSummary `json:"summary"`
}

func (r *ListBoxesResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.Boxes == nil {
		return malformed("boxes missing")
	}
	for i := range r.Boxes {
		if err := r.Boxes[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

type BoxResponse struct {
	Success bool `json:"success"`
	Box     *Box `json:"box"`
}

func (r *BoxResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	return r.Box.validate()
}

type BoxWithStatsResponse struct {
	Success bool     `json:"success"`
	Box     *Box     `json:"box"`
	Stats   BoxStats `json:"stats"`
}

func (r *BoxWithStatsResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	return r.Box.validate()
}

type EmptyBoxResponse struct {
	Success    bool        `json:"success"`
	Box        *Box        `json:"box"`
	Collection *Collection `json:"collection"`
}

func (r *EmptyBoxResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if err := r.Box.validate(); err != nil {
		return err
	}
	return r.Collection.validate()
}

type ListCollectionsResponse struct {
	Success     bool         `json:"success"`
	Collections []Collection `json:"collections"`
	Pagination  Pagination   `json:"pagination"`
}

func (r *ListCollectionsResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.Collections == nil {
		return malformed("collections missing")
	}
	for i := range r.Collections {
		if err := r.Collections[i].validate(); err != nil {
			return err
		}
	}
	return r.Pagination.validate()
}

type ListSadaqahsResponse struct {
	Success    bool       `json:"success"`
	Sadaqahs   []Sadaqah  `json:"sadaqahs"`
	Pagination Pagination `json:"pagination"`
}

func (r *ListSadaqahsResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.Sadaqahs == nil {
		return malformed("sadaqahs missing")
	}
	for i := range r.Sadaqahs {
		if err := r.Sadaqahs[i].validate(); err != nil {
			return err
		}
	}
	return r.Pagination.validate()
}

type AddSadaqahResponse struct {
	Success  bool      `json:"success"`
	Sadaqahs []Sadaqah `json:"sadaqahs"`
	Box      *Box      `json:"box"`
	Message  string    `json:"message"`
}

func (r *AddSadaqahResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	for i := range r.Sadaqahs {
		if err := r.Sadaqahs[i].validate(); err != nil {
			return err
		}
	}
	return r.Box.validate()
}

// UpdatedBox is the trimmed box returned after a sadaqah is deleted.
type UpdatedBox struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue"`
	CurrencyID string          `json:"currencyId,omitempty"`
}

type DeleteSadaqahResponse struct {
	Success    bool        `json:"success"`
	Deleted    bool        `json:"deleted"`
	UpdatedBox *UpdatedBox `json:"updatedBox,omitempty"`
}

func (r *DeleteSadaqahResponse) Validate() error {
	return checkSuccess(r.Success)
}

type ListCurrenciesResponse struct {
	Success    bool       `json:"success"`
	Currencies []Currency `json:"currencies"`
}

func (r *ListCurrenciesResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.Currencies == nil {
		return malformed("currencies missing")
	}
	for i := range r.Currencies {
		if err := r.Currencies[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

type CurrencyResponse struct {
	Success  bool      `json:"success"`
	Currency *Currency `json:"currency"`
}

func (r *CurrencyResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	return r.Currency.validate()
}

type UpdateGoldRatesResponse struct {
	Success bool     `json:"success"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

func (r *UpdateGoldRatesResponse) Validate() error {
	return checkSuccess(r.Success)
}

type ListCurrencyTypesResponse struct {
	Success       bool           `json:"success"`
	CurrencyTypes []CurrencyType `json:"currencyTypes"`
}

func (r *ListCurrencyTypesResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	if r.CurrencyTypes == nil {
		return malformed("currencyTypes missing")
	}
	for i := range r.CurrencyTypes {
		if err := r.CurrencyTypes[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

type CurrencyTypeResponse struct {
	Success      bool          `json:"success"`
	CurrencyType *CurrencyType `json:"currencyType"`
}

func (r *CurrencyTypeResponse) Validate() error {
	if err := checkSuccess(r.Success); err != nil {
		return err
	}
	return r.CurrencyType.validate()
}

// DeleteResponse is returned by box, currency and currency type deletion.
type DeleteResponse struct {
	Success            bool `json:"success"`
	Deleted            bool `json:"deleted"`
	SadaqahsDeleted    int  `json:"sadaqahsDeleted,omitempty"`
	CollectionsDeleted int  `json:"collectionsDeleted,omitempty"`
}

func (r *DeleteResponse) Validate() error {
	return checkSuccess(r.Success)
}
