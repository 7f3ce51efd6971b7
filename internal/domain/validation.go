package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"sadaqah_go/internal/fault"
)

// Field limits.
const (
	BoxNameMax        = 100
	BoxDescriptionMax = 500
	PresetNameMax     = 50
	CurrencyCodeMax   = 10
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+=`)
)

func invalid(field, format string, args ...any) *fault.Error {
	return fault.Validation(field + ": " + fmt.Sprintf(format, args...))
}

// SanitizeInput strips markup that could be interpreted by an HTML-rendering client.
func SanitizeInput(s string) string {
	s = angleBrackets.ReplaceAllString(s, "")
	s = jsProtocol.ReplaceAllString(s, "")
	return eventHandler.ReplaceAllString(s, "")
}

// SanitizeURL accepts only http and https URLs and strips a trailing slash.
func SanitizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid URL format: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid protocol %q", u.Scheme)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

func checkName(field, name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, "Name is required")
	}
	if utf8.RuneCountInString(name) > max {
		return "", invalid(field, "Name must be %d characters or less", max)
	}
	return name, nil
}

func checkDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > BoxDescriptionMax {
		return "", invalid("description", "Description must be %d characters or less", BoxDescriptionMax)
	}
	return desc, nil
}

// Normalize trims, sanitizes and validates the request in place.
func (r *CreateBoxRequest) Normalize() error {
	name, err := checkName("name", SanitizeInput(r.Name), BoxNameMax)
	if err != nil {
		return err
	}
	desc, err := checkDescription(SanitizeInput(r.Description))
	if err != nil {
		return err
	}
	r.Name, r.Description = name, desc
	return nil
}

// Normalize trims, sanitizes and validates the fields that are set.
func (r *UpdateBoxRequest) Normalize() error {
	if r.Name != nil {
		name, err := checkName("name", SanitizeInput(*r.Name), BoxNameMax)
		if err != nil {
			return err
		}
		r.Name = &name
	}
	if r.Description != nil {
		desc, err := checkDescription(SanitizeInput(*r.Description))
		if err != nil {
			return err
		}
		if desc == "" {
			r.Description = nil
		} else {
			r.Description = &desc
		}
	}
	return nil
}

func (r *AddSadaqahRequest) Validate() error {
	if r.Amount != nil && *r.Amount <= 0 {
		return invalid("amount", "Amount must be a positive number")
	}
	if r.Value != nil && !r.Value.IsPositive() {
		return invalid("value", "Value must be a positive number")
	}
	return nil
}

func (r *CreateCurrencyRequest) Normalize() error {
	r.Code = strings.ToUpper(strings.TrimSpace(SanitizeInput(r.Code)))
	if r.Code == "" {
		return invalid("code", "Code is required")
	}
	if utf8.RuneCountInString(r.Code) > CurrencyCodeMax {
		return invalid("code", "Code must be %d characters or less", CurrencyCodeMax)
	}
	name, err := checkName("name", SanitizeInput(r.Name), BoxNameMax)
	if err != nil {
		return err
	}
	r.Name = name
	if r.USDValue != nil && r.USDValue.IsNegative() {
		return invalid("usdValue", "USD value must not be negative")
	}
	return nil
}

func (r *CreateCurrencyTypeRequest) Normalize() error {
	name, err := checkName("name", SanitizeInput(r.Name), BoxNameMax)
	if err != nil {
		return err
	}
	desc, err := checkDescription(SanitizeInput(r.Description))
	if err != nil {
		return err
	}
	r.Name, r.Description = name, desc
	return nil
}

// ValidatePreset checks preset fields and returns the trimmed name.
func ValidatePreset(name string, value decimal.Decimal, currencyID string, amount *int) (string, error) {
	name, err := checkName("name", name, PresetNameMax)
	if err != nil {
		return "", err
	}
	if !value.IsPositive() {
		return "", invalid("value", "Value must be greater than 0")
	}
	if strings.TrimSpace(currencyID) == "" {
		return "", invalid("currencyId", "Currency is required")
	}
	if amount != nil && *amount <= 0 {
		return "", invalid("amount", "Amount must be greater than 0")
	}
	return name, nil
}

// ParseAmount parses an optional positive integer typed by the user. Empty input yields nil.
func ParseAmount(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil, invalid("amount", "Amount must be a positive number")
	}
	return &n, nil
}

// ParseValue parses an optional positive decimal typed by the user. Empty input yields nil.
func ParseValue(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return nil, invalid("value", "Value must be a positive number")
	}
	return &d, nil
}

// Validate rejects sort keys the box list endpoint does not accept. Empty fields are allowed.
func (p ListBoxesParams) Validate() error {
	switch p.SortBy {
	case "", SortByName, SortByCreatedAt, SortByCount, SortByTotalValue:
	default:
		return invalid("sortBy", "Unknown sort field %q", p.SortBy)
	}
	switch p.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return invalid("sortOrder", "Sort order must be %s or %s", SortAsc, SortDesc)
	}
	return nil
}
