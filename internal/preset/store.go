// Package preset keeps the user's ordered list of donation presets on this
// device. The whole list is stored under one key and rewritten on every change.
//
// A Store is not safe for concurrent use: each mutation is a read-modify-write
// of the full list and relies on a single caller at a time.
package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sadaqah_go/internal/domain"
)

// StorageKey is the key of the serialized list.
const StorageKey = "sadaqah-presets"

// Display limits.
const (
	ShortcutSlots   = 5
	QuickActionsMax = domain.QuickActionPresetMax
)

// KV is the local medium holding the list.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Store struct {
	kv    KV
	now   func() time.Time
	newID func() (string, error)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now, newID: randomID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// load reads and sorts the list. A list that cannot be decoded is treated as
// empty; an I/O error is returned so that mutations never overwrite data they
// could not read.
func (s *Store) load(ctx context.Context) ([]domain.Preset, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var presets []domain.Preset
	if err := json.Unmarshal(raw, &presets); err != nil {
		slog.Warn("Stored presets unreadable, starting empty", slog.Any("error", err))
		return nil, nil
	}

	sortByOrder(presets)
	return presets, nil
}

func (s *Store) save(ctx context.Context, presets []domain.Preset) error {
	if presets == nil {
		presets = []domain.Preset{}
	}
	raw, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}

// sortByOrder sorts ascending by Order. Presets without an order go last and
// ties keep their stored sequence.
func sortByOrder(presets []domain.Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		a, b := presets[i].Order, presets[j].Order
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})
}

func indexOf(presets []domain.Preset, id string) int {
	for i := range presets {
		if presets[i].ID == id {
			return i
		}
	}
	return -1
}

func intPtr(n int) *int { return &n }

// List returns the presets in display order. Read failures yield an empty list.
func (s *Store) List(ctx context.Context) []domain.Preset {
	presets, err := s.load(ctx)
	if err != nil {
		slog.Warn("Presets unavailable", slog.Any("error", err))
		return []domain.Preset{}
	}
	if presets == nil {
		return []domain.Preset{}
	}
	return presets
}

// Default returns the default preset, if any.
func (s *Store) Default(ctx context.Context) (domain.Preset, bool) {
	for _, p := range s.List(ctx) {
		if p.IsDefault {
			return p, true
		}
	}
	return domain.Preset{}, false
}

// Get returns the preset with id.
func (s *Store) Get(ctx context.Context, id string) (domain.Preset, bool) {
	presets := s.List(ctx)
	if i := indexOf(presets, id); i >= 0 {
		return presets[i], true
	}
	return domain.Preset{}, false
}

// Add appends a preset after the current last one.
func (s *Store) Add(ctx context.Context, name string, value decimal.Decimal, currencyID string, amount *int) (domain.Preset, error) {
	name, err := domain.ValidatePreset(name, value, currencyID, amount)
	if err != nil {
		return domain.Preset{}, err
	}

	presets, err := s.load(ctx)
	if err != nil {
		return domain.Preset{}, err
	}

	id, err := s.newID()
	if err != nil {
		return domain.Preset{}, fmt.Errorf("failed to generate preset id: %w", err)
	}

	maxOrder := 0
	for _, p := range presets {
		if p.Order != nil && *p.Order > maxOrder {
			maxOrder = *p.Order
		}
	}

	p := domain.Preset{
		ID:         id,
		Name:       name,
		Value:      value,
		CurrencyID: currencyID,
		Amount:     amount,
		CreatedAt:  s.now().UTC(),
		Order:      intPtr(maxOrder + 1),
	}

	if err := s.save(ctx, append(presets, p)); err != nil {
		return domain.Preset{}, err
	}
	return p, nil
}

// Update applies patch to the preset with id. It reports false when no such preset exists.
// Setting IsDefault clears it on every other preset.
func (s *Store) Update(ctx context.Context, id string, patch domain.PresetPatch) (domain.Preset, bool, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return domain.Preset{}, false, err
	}
	i := indexOf(presets, id)
	if i < 0 {
		return domain.Preset{}, false, nil
	}

	p := presets[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Value != nil {
		p.Value = *patch.Value
	}
	if patch.CurrencyID != nil {
		p.CurrencyID = *patch.CurrencyID
	}
	if patch.ClearAmount {
		p.Amount = nil
	} else if patch.Amount != nil {
		p.Amount = intPtr(*patch.Amount)
	}

	name, err := domain.ValidatePreset(p.Name, p.Value, p.CurrencyID, p.Amount)
	if err != nil {
		return domain.Preset{}, true, err
	}
	p.Name = name

	if patch.IsDefault != nil {
		p.IsDefault = *patch.IsDefault
		if p.IsDefault {
			for j := range presets {
				presets[j].IsDefault = false
			}
		}
	}
	presets[i] = p

	if err := s.save(ctx, presets); err != nil {
		return domain.Preset{}, true, err
	}
	return p, true, nil
}

// Delete removes the preset and renumbers the rest to 1..N.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(presets, id)
	if i < 0 {
		return false, nil
	}

	rest := append(presets[:i:i], presets[i+1:]...)
	for j := range rest {
		rest[j].Order = intPtr(j + 1)
	}

	if err := s.save(ctx, rest); err != nil {
		return false, err
	}
	return true, nil
}

// SetDefault makes id the only default preset. Unknown ids change nothing.
func (s *Store) SetDefault(ctx context.Context, id string) (bool, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if indexOf(presets, id) < 0 {
		return false, nil
	}

	for i := range presets {
		presets[i].IsDefault = presets[i].ID == id
	}
	if err := s.save(ctx, presets); err != nil {
		return false, err
	}
	return true, nil
}

// UnsetDefault clears the default flag everywhere.
func (s *Store) UnsetDefault(ctx context.Context) error {
	presets, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range presets {
		presets[i].IsDefault = false
	}
	return s.save(ctx, presets)
}

// MoveUp swaps the order of id with the preset before it.
// It reports false when id is first or unknown.
func (s *Store) MoveUp(ctx context.Context, id string) (bool, error) {
	return s.swap(ctx, id, -1)
}

// MoveDown swaps the order of id with the preset after it.
// It reports false when id is last or unknown.
func (s *Store) MoveDown(ctx context.Context, id string) (bool, error) {
	return s.swap(ctx, id, +1)
}

func (s *Store) swap(ctx context.Context, id string, dir int) (bool, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(presets, id)
	j := i + dir
	if i < 0 || j < 0 || j >= len(presets) {
		return false, nil
	}

	presets[i].Order, presets[j].Order = presets[j].Order, presets[i].Order
	if err := s.save(ctx, presets); err != nil {
		return false, err
	}
	return true, nil
}

// Slot returns the keyboard shortcut number (1..5) for the preset at display
// position index, or false when the position has no shortcut.
func Slot(index int) (int, bool) {
	if index < 0 || index >= ShortcutSlots {
		return 0, false
	}
	return index + 1, true
}

// QuickActions returns the presets offered as quick actions.
func QuickActions(presets []domain.Preset) []domain.Preset {
	if len(presets) > QuickActionsMax {
		return presets[:QuickActionsMax]
	}
	return presets
}
