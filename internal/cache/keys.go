package cache

import "time"

// Lifetimes per kind of data.
const (
	TTLBoxes      = 5 * time.Minute // box list, single box, box collections
	TTLCurrencies = time.Hour       // currencies and currency types
	TTLStats      = 2 * time.Minute
)

// Fixed keys.
const (
	KeyBoxes          = "boxes"
	KeyCurrencies     = "currencies"
	KeyCurrencyTypes  = "currency-types"
	KeyStats          = "stats"
	boxKeyPrefix      = "box-"
	collectionsPrefix = "collections-"
)

// BoxKey is the key of a single box.
func BoxKey(id string) string { return boxKeyPrefix + id }

// CollectionsKey is the key of a box's collection list.
func CollectionsKey(boxID string) string { return collectionsPrefix + boxID }
