package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sadaqah_go/internal/domain"
	"sadaqah_go/internal/preset"
)

// BoxDetail is everything shown on a box page.
type BoxDetail struct {
	Box         *domain.Box                     `json:"box"`
	Stats       domain.BoxStats                 `json:"stats"`
	Sadaqahs    *domain.ListSadaqahsResponse    `json:"sadaqahs"`
	Collections *domain.ListCollectionsResponse `json:"collections"`
}

// BoxDetail fetches the box, one page of sadaqahs and one page of collections
// concurrently. Any failure fails the whole view.
func (f *Facade) BoxDetail(ctx context.Context, boxID string, sadaqahPage, collectionsPage int) (*BoxDetail, error) {
	var (
		box         *domain.BoxWithStatsResponse
		sadaqahs    *domain.ListSadaqahsResponse
		collections *domain.ListCollectionsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		box, err = f.GetBox(gctx, boxID)
		return err
	})
	g.Go(func() (err error) {
		sadaqahs, err = f.ListSadaqahs(gctx, boxID, domain.PageParams{Page: sadaqahPage, Limit: domain.SadaqahsPerPage})
		return err
	})
	g.Go(func() (err error) {
		collections, err = f.ListCollections(gctx, boxID, domain.PageParams{Page: collectionsPage, Limit: domain.CollectionsPerPage})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BoxDetail{
		Box:         box.Box,
		Stats:       box.Stats,
		Sadaqahs:    sadaqahs,
		Collections: collections,
	}, nil
}

// Dashboard is the landing view.
type Dashboard struct {
	Boxes         []domain.Box          `json:"boxes"`
	Stats         *domain.StatsResponse `json:"stats"`
	Currencies    []domain.Currency     `json:"currencies"`
	Presets       []domain.Preset       `json:"presets"`
	DefaultPreset *domain.Preset        `json:"defaultPreset,omitempty"`
	QuickActions  []domain.Preset       `json:"quickActions"`
	TotalBoxes    int                   `json:"totalBoxes"`
	TotalSadaqahs int                   `json:"totalSadaqahs"`
	TotalValue    decimal.Decimal       `json:"totalValue"`
	// TotalDisplay is TotalValue in the first box's base currency, else the primary one.
	TotalDisplay string `json:"totalDisplay"`
}

// Dashboard loads boxes, stats, currencies and presets concurrently.
// Totals are computed from the box list.
func (f *Facade) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		boxes      *domain.ListBoxesResponse
		stats      *domain.StatsResponse
		currencies *domain.ListCurrenciesResponse
		d          Dashboard
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		boxes, err = f.ListBoxes(gctx, domain.ListBoxesParams{})
		return err
	})
	g.Go(func() (err error) {
		stats, err = f.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		currencies, err = f.ListCurrencies(gctx)
		return err
	})
	g.Go(func() error {
		d.Presets = f.presets.List(gctx)
		if p, ok := f.presets.Default(gctx); ok {
			d.DefaultPreset = &p
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.Boxes = boxes.Boxes
	d.Stats = stats
	d.Currencies = currencies.Currencies
	d.TotalBoxes = len(boxes.Boxes)
	for _, b := range boxes.Boxes {
		d.TotalSadaqahs += b.Count
		d.TotalValue = d.TotalValue.Add(b.TotalValue)
	}
	d.TotalDisplay = domain.FormatMoney(d.TotalValue, totalCurrency(boxes.Boxes, stats))
	d.QuickActions = preset.QuickActions(d.Presets)
	return &d, nil
}

// totalCurrency is the first box's base currency, else the server's primary one.
func totalCurrency(boxes []domain.Box, stats *domain.StatsResponse) *domain.Currency {
	if len(boxes) > 0 && boxes[0].BaseCurrency != nil {
		return boxes[0].BaseCurrency
	}
	if stats != nil {
		return stats.PrimaryCurrency
	}
	return nil
}

// AddPresetSadaqah quick-adds a preset: amount is p.Count() and value is p.Total().
// It goes through AddSadaqah, so the same keys are invalidated.
func (f *Facade) AddPresetSadaqah(ctx context.Context, boxID string, p domain.Preset) (*domain.AddSadaqahResponse, error) {
	amount := p.Count()
	value := p.Total()
	return f.AddSadaqah(ctx, boxID, domain.AddSadaqahRequest{
		Amount:     &amount,
		Value:      &value,
		CurrencyID: p.CurrencyID,
	})
}
