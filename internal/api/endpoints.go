package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sadaqah_go/internal/domain"
)

func boxPath(id string) string {
	return "/api/boxes/" + url.PathEscape(id)
}

func pageQuery(p domain.PageParams) url.Values {
	p = p.OrDefault()
	return url.Values{
		"page":  {strconv.Itoa(p.Page)},
		"limit": {strconv.Itoa(p.Limit)},
	}
}

// Health needs no API key.
func (c *Client) Health(ctx context.Context) (*domain.HealthResponse, error) {
	var out domain.HealthResponse
	if err := c.do(ctx, http.MethodGet, healthPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.StatsResponse, error) {
	var out domain.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Boxes ----

func (c *Client) ListBoxes(ctx context.Context, params domain.ListBoxesParams) (*domain.ListBoxesResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params = params.OrDefault()
	q := url.Values{
		"sortBy":    {params.SortBy},
		"sortOrder": {params.SortOrder},
	}
	var out domain.ListBoxesResponse
	if err := c.do(ctx, http.MethodGet, "/api/boxes", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBox(ctx context.Context, req domain.CreateBoxRequest) (*domain.BoxResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	var out domain.BoxResponse
	if err := c.do(ctx, http.MethodPost, "/api/boxes", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBox(ctx context.Context, id string) (*domain.BoxWithStatsResponse, error) {
	var out domain.BoxWithStatsResponse
	if err := c.do(ctx, http.MethodGet, boxPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBox(ctx context.Context, id string, req domain.UpdateBoxRequest) (*domain.BoxResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	var out domain.BoxResponse
	if err := c.do(ctx, http.MethodPatch, boxPath(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBox(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	var out domain.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, boxPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmptyBox moves the box contents into a new collection.
func (c *Client) EmptyBox(ctx context.Context, id string) (*domain.EmptyBoxResponse, error) {
	var out domain.EmptyBoxResponse
	if err := c.do(ctx, http.MethodPost, boxPath(id)+"/empty", nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCollections(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListCollectionsResponse, error) {
	var out domain.ListCollectionsResponse
	if err := c.do(ctx, http.MethodGet, boxPath(boxID)+"/collections", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Sadaqahs ----

func (c *Client) ListSadaqahs(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListSadaqahsResponse, error) {
	var out domain.ListSadaqahsResponse
	if err := c.do(ctx, http.MethodGet, boxPath(boxID)+"/sadaqahs", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddSadaqah(ctx context.Context, boxID string, req domain.AddSadaqahRequest) (*domain.AddSadaqahResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out domain.AddSadaqahResponse
	if err := c.do(ctx, http.MethodPost, boxPath(boxID)+"/sadaqahs", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSadaqah(ctx context.Context, boxID, sadaqahID string) (*domain.DeleteSadaqahResponse, error) {
	var out domain.DeleteSadaqahResponse
	path := boxPath(boxID) + "/sadaqahs/" + url.PathEscape(sadaqahID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Currencies ----

func (c *Client) ListCurrencies(ctx context.Context) (*domain.ListCurrenciesResponse, error) {
	var out domain.ListCurrenciesResponse
	if err := c.do(ctx, http.MethodGet, "/api/currencies", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCurrency(ctx context.Context, id string) (*domain.CurrencyResponse, error) {
	var out domain.CurrencyResponse
	if err := c.do(ctx, http.MethodGet, "/api/currencies/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.CurrencyResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	var out domain.CurrencyResponse
	if err := c.do(ctx, http.MethodPost, "/api/currencies", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCurrency(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	var out domain.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/api/currencies/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGoldRates asks the server to refresh its gold prices.
func (c *Client) UpdateGoldRates(ctx context.Context) (*domain.UpdateGoldRatesResponse, error) {
	var out domain.UpdateGoldRatesResponse
	if err := c.do(ctx, http.MethodPost, "/api/currencies/update-gold-rates", nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Currency types ----

func (c *Client) ListCurrencyTypes(ctx context.Context) (*domain.ListCurrencyTypesResponse, error) {
	var out domain.ListCurrencyTypesResponse
	if err := c.do(ctx, http.MethodGet, "/api/currency-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCurrencyType(ctx context.Context, id string) (*domain.CurrencyTypeResponse, error) {
	var out domain.CurrencyTypeResponse
	if err := c.do(ctx, http.MethodGet, "/api/currency-types/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCurrencyType(ctx context.Context, req domain.CreateCurrencyTypeRequest) (*domain.CurrencyTypeResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	var out domain.CurrencyTypeResponse
	if err := c.do(ctx, http.MethodPost, "/api/currency-types", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCurrencyType(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	var out domain.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/api/currency-types/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
