// Package service is the cached facade over the remote API. Reads of stable
// resources go through the TTL cache; every mutation removes exactly the
// cache keys it makes stale.
package service

import (
	"context"
	"log/slog"

	"sadaqah_go/internal/cache"
	"sadaqah_go/internal/domain"
)

// API is the remote surface the facade needs. *api.Client satisfies it.
type API interface {
	Health(ctx context.Context) (*domain.HealthResponse, error)
	Stats(ctx context.Context) (*domain.StatsResponse, error)

	ListBoxes(ctx context.Context, params domain.ListBoxesParams) (*domain.ListBoxesResponse, error)
	CreateBox(ctx context.Context, req domain.CreateBoxRequest) (*domain.BoxResponse, error)
	GetBox(ctx context.Context, id string) (*domain.BoxWithStatsResponse, error)
	UpdateBox(ctx context.Context, id string, req domain.UpdateBoxRequest) (*domain.BoxResponse, error)
	DeleteBox(ctx context.Context, id string) (*domain.DeleteResponse, error)
	EmptyBox(ctx context.Context, id string) (*domain.EmptyBoxResponse, error)
	ListCollections(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListCollectionsResponse, error)

	ListSadaqahs(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListSadaqahsResponse, error)
	AddSadaqah(ctx context.Context, boxID string, req domain.AddSadaqahRequest) (*domain.AddSadaqahResponse, error)
	DeleteSadaqah(ctx context.Context, boxID, sadaqahID string) (*domain.DeleteSadaqahResponse, error)

	ListCurrencies(ctx context.Context) (*domain.ListCurrenciesResponse, error)
	GetCurrency(ctx context.Context, id string) (*domain.CurrencyResponse, error)
	CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.CurrencyResponse, error)
	DeleteCurrency(ctx context.Context, id string) (*domain.DeleteResponse, error)
	UpdateGoldRates(ctx context.Context) (*domain.UpdateGoldRatesResponse, error)

	ListCurrencyTypes(ctx context.Context) (*domain.ListCurrencyTypesResponse, error)
	GetCurrencyType(ctx context.Context, id string) (*domain.CurrencyTypeResponse, error)
	CreateCurrencyType(ctx context.Context, req domain.CreateCurrencyTypeRequest) (*domain.CurrencyTypeResponse, error)
	DeleteCurrencyType(ctx context.Context, id string) (*domain.DeleteResponse, error)
}

// Presets is the read side of the preset store used by the dashboard.
type Presets interface {
	List(ctx context.Context) []domain.Preset
	Default(ctx context.Context) (domain.Preset, bool)
}

type Facade struct {
	api     API
	cache   *cache.Cache
	presets Presets
}

func New(api API, c *cache.Cache, presets Presets) *Facade {
	return &Facade{api: api, cache: c, presets: presets}
}

// invalidate removes keys after a successful mutation. A failure here is
// logged; the mutation itself already happened and is still reported.
func (f *Facade) invalidate(ctx context.Context, keys ...string) {
	if err := f.cache.Remove(ctx, keys...); err != nil {
		slog.Warn("Cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}

// ClearCache drops every cached response.
func (f *Facade) ClearCache(ctx context.Context) error {
	return f.cache.Clear(ctx)
}

// ---- Never cached ----

func (f *Facade) Health(ctx context.Context) (*domain.HealthResponse, error) {
	return f.api.Health(ctx)
}

func (f *Facade) ListSadaqahs(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListSadaqahsResponse, error) {
	return f.api.ListSadaqahs(ctx, boxID, page)
}

func (f *Facade) ListCollections(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListCollectionsResponse, error) {
	return f.api.ListCollections(ctx, boxID, page)
}

func (f *Facade) GetCurrency(ctx context.Context, id string) (*domain.CurrencyResponse, error) {
	return f.api.GetCurrency(ctx, id)
}

func (f *Facade) GetCurrencyType(ctx context.Context, id string) (*domain.CurrencyTypeResponse, error) {
	return f.api.GetCurrencyType(ctx, id)
}

// UpdateGoldRates changes server-side rates only; nothing cached here holds them.
func (f *Facade) UpdateGoldRates(ctx context.Context) (*domain.UpdateGoldRatesResponse, error) {
	return f.api.UpdateGoldRates(ctx)
}

// ---- Cached reads ----

func (f *Facade) Stats(ctx context.Context) (*domain.StatsResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.KeyStats, cache.TTLStats, f.api.Stats)
}

// ListBoxes is cached under one key regardless of the sort parameters.
func (f *Facade) ListBoxes(ctx context.Context, params domain.ListBoxesParams) (*domain.ListBoxesResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.KeyBoxes, cache.TTLBoxes,
		func(ctx context.Context) (*domain.ListBoxesResponse, error) {
			return f.api.ListBoxes(ctx, params)
		})
}

func (f *Facade) GetBox(ctx context.Context, id string) (*domain.BoxWithStatsResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.BoxKey(id), cache.TTLBoxes,
		func(ctx context.Context) (*domain.BoxWithStatsResponse, error) {
			return f.api.GetBox(ctx, id)
		})
}

// GetBoxCollections is cached per box regardless of page.
func (f *Facade) GetBoxCollections(ctx context.Context, boxID string, page domain.PageParams) (*domain.ListCollectionsResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.CollectionsKey(boxID), cache.TTLBoxes,
		func(ctx context.Context) (*domain.ListCollectionsResponse, error) {
			return f.api.ListCollections(ctx, boxID, page)
		})
}

func (f *Facade) ListCurrencies(ctx context.Context) (*domain.ListCurrenciesResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.KeyCurrencies, cache.TTLCurrencies, f.api.ListCurrencies)
}

func (f *Facade) ListCurrencyTypes(ctx context.Context) (*domain.ListCurrencyTypesResponse, error) {
	return cache.ReadThrough(ctx, f.cache, cache.KeyCurrencyTypes, cache.TTLCurrencies, f.api.ListCurrencyTypes)
}

// ---- Mutations ----

func (f *Facade) CreateBox(ctx context.Context, req domain.CreateBoxRequest) (*domain.BoxResponse, error) {
	resp, err := f.api.CreateBox(ctx, req)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.KeyBoxes, cache.KeyStats)
	return resp, nil
}

func (f *Facade) UpdateBox(ctx context.Context, id string, req domain.UpdateBoxRequest) (*domain.BoxResponse, error) {
	resp, err := f.api.UpdateBox(ctx, id, req)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.BoxKey(id), cache.KeyBoxes)
	return resp, nil
}

func (f *Facade) DeleteBox(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	resp, err := f.api.DeleteBox(ctx, id)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.BoxKey(id), cache.KeyBoxes, cache.KeyStats)
	return resp, nil
}

func (f *Facade) EmptyBox(ctx context.Context, id string) (*domain.EmptyBoxResponse, error) {
	resp, err := f.api.EmptyBox(ctx, id)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.BoxKey(id), cache.KeyBoxes, cache.KeyStats)
	return resp, nil
}

func (f *Facade) AddSadaqah(ctx context.Context, boxID string, req domain.AddSadaqahRequest) (*domain.AddSadaqahResponse, error) {
	resp, err := f.api.AddSadaqah(ctx, boxID, req)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.BoxKey(boxID), cache.KeyBoxes, cache.KeyStats)
	return resp, nil
}

func (f *Facade) DeleteSadaqah(ctx context.Context, boxID, sadaqahID string) (*domain.DeleteSadaqahResponse, error) {
	resp, err := f.api.DeleteSadaqah(ctx, boxID, sadaqahID)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.BoxKey(boxID), cache.KeyBoxes, cache.KeyStats)
	return resp, nil
}

func (f *Facade) CreateCurrency(ctx context.Context, req domain.CreateCurrencyRequest) (*domain.CurrencyResponse, error) {
	resp, err := f.api.CreateCurrency(ctx, req)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.KeyCurrencies)
	return resp, nil
}

func (f *Facade) DeleteCurrency(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	resp, err := f.api.DeleteCurrency(ctx, id)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.KeyCurrencies)
	return resp, nil
}

func (f *Facade) CreateCurrencyType(ctx context.Context, req domain.CreateCurrencyTypeRequest) (*domain.CurrencyTypeResponse, error) {
	resp, err := f.api.CreateCurrencyType(ctx, req)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.KeyCurrencyTypes)
	return resp, nil
}

func (f *Facade) DeleteCurrencyType(ctx context.Context, id string) (*domain.DeleteResponse, error) {
	resp, err := f.api.DeleteCurrencyType(ctx, id)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, cache.KeyCurrencyTypes)
	return resp, nil
}
