// Package storage persists the four application records behind a small
// key-value contract and exposes them through a Repository that keeps the
// in-memory state and the persisted state in lockstep.
package storage

// Record keys. Each record is an independent JSON text payload.
const (
	KeyProducts = "products"
	KeyIcons    = "product_icons"
	KeySales    = "sales"
	KeyHistory  = "history"
)

// KV is the persistence backend contract. Get reports absence instead of
// returning an error; SetAll writes every pair in a single transaction so a
// multi-record mutation is either fully visible or not at all.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	SetAll(pairs map[string]string) error
	Delete(keys ...string) error
	Close() error
}
