package core

import (
	"errors"
	"strings"
)

// DefaultIcon is the glyph shown when a product has no icon of its own.
// It is also the sentinel stored on a product whose real icon is an image
// payload kept in the icon store.
const DefaultIcon = "✨"

type (
	// Product is a sellable catalog entry. Name is the unique key within
	// the catalog; Price is an integer amount in the smallest display unit.
	// Large image icons are not stored here, only a short glyph or the
	// DefaultIcon sentinel.
	Product struct {
		Name  string `json:"name" csv:"name"`
		Price int    `json:"price" csv:"price"`
		Icon  string `json:"icon" csv:"icon"`
	}

	// Catalog is the ordered list of products.
	Catalog []Product

	// Tally maps product name to the pending sale count for the open day.
	// Counts are always positive; a count that drops to zero is removed.
	Tally map[string]int

	// DayItem is one product line inside a finalized day record.
	DayItem struct {
		Count int `json:"count"`
		Total int `json:"total"`
	}

	// HistoryEntry is a finalized business day. Once appended to history it
	// is immutable; totals are captured at close time and later catalog
	// price changes do not affect it.
	HistoryEntry struct {
		Date  Date               `json:"date"`
		Total int                `json:"total"`
		Items map[string]DayItem `json:"items"`
	}

	// Icons maps product name to a string-encoded image payload. Kept
	// separate from the catalog so large payloads do not bloat it.
	Icons map[string]string
)

var (
	ErrEmptyName      = errors.New("empty product name")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrDuplicateName  = errors.New("duplicate product name")
	ErrUnknownProduct = errors.New("unknown product")
	ErrBadIndex       = errors.New("product index out of range")
)

// ValidateProduct checks the fields a caller may set on a product.
func ValidateProduct(name string, price int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Price returns the current price for name, or 0 when the product is not in
// the catalog. Missing products never fail a total computation.
func (c Catalog) Price(name string) int {
	for _, p := range c {
		if p.Name == name {
			return p.Price
		}
	}
	return 0
}

// Find returns the product with the given name and whether it exists.
func (c Catalog) Find(name string) (Product, bool) {
	for _, p := range c {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// Contains reports whether name is a catalog product.
func (c Catalog) Contains(name string) bool {
	_, ok := c.Find(name)
	return ok
}

// Clone returns a copy the caller may mutate freely.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}

// Total computes the running total of the open day against the catalog.
// It is always derived fresh, never stored.
func (t Tally) Total(c Catalog) int {
	total := 0
	for name, count := range t {
		total += count * c.Price(name)
	}
	return total
}

// Units returns the number of pending sale units across all products.
func (t Tally) Units() int {
	units := 0
	for _, count := range t {
		units += count
	}
	return units
}

// Clone returns a copy the caller may mutate freely.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for name, count := range t {
		out[name] = count
	}
	return out
}

// Clone returns a copy the caller may mutate freely.
func (i Icons) Clone() Icons {
	out := make(Icons, len(i))
	for name, payload := range i {
		out[name] = payload
	}
	return out
}
