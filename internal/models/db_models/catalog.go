package db_models

type PriceCategory string

const (
	CategoryDecoration PriceCategory = "decoration"
	CategoryTribute    PriceCategory = "tribute"
	CategoryWreath     PriceCategory = "wreath"
)

// Sentinel keys that are free by definition. Price lookups short-circuit to
// zero for these and the catalog refuses to store a price for them.
const (
	SentinelNoDecoration = "no-decoration"
	SentinelDefault      = "default"
)

func IsSentinelKey(key string) bool {
	return key == "" || key == SentinelNoDecoration || key == SentinelDefault
}

// CatalogPrice is one priced decoration/tribute/wreath choice. A nil
// PriceInCents means the entry exists but has no configured price.
type CatalogPrice struct {
	Category     PriceCategory `gorm:"primaryKey;size:16"`
	Key          string        `gorm:"primaryKey;size:64"`
	PriceInCents *int64
	UpdatedAt    int64 `gorm:"autoUpdateTime"`
}
