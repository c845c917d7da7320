package storage

import (
	"fmt"
	"sync"

	"cassa/internal/core"
	"cassa/internal/log"
)

// Repository owns the authoritative state of the application: catalog, icon
// store, open-day tally and history. Every mutation is written to the KV
// backend before the in-memory snapshot is replaced, so memory and storage
// never observably diverge, even across an abrupt restart.
//
// A single mutex serializes mutations. The original host serialized all
// input on one thread; HTTP handlers do not, so the repository provides the
// equivalent guarantee itself.
type Repository struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger

	catalog core.Catalog
	icons   core.Icons
	tally   core.Tally
	history []core.HistoryEntry
}

// Open loads all records from the backend. A missing record is an empty
// default; a corrupt or legacy-shaped record degrades to its empty default
// with a warning instead of failing the whole startup.
func Open(kv KV, logger *log.Logger) (*Repository, error) {
	r := &Repository{
		kv:      kv,
		logger:  logger.WithComponent(log.ComponentStorage),
		catalog: core.Catalog{},
		icons:   core.Icons{},
		tally:   core.Tally{},
		history: []core.HistoryEntry{},
	}

	if raw, ok, err := kv.Get(KeyProducts); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyProducts, err)
	} else if ok {
		if catalog, err := decodeCatalog(raw); err != nil {
			r.warnCorrupt(KeyProducts, err)
		} else {
			r.catalog = catalog
		}
	}

	if raw, ok, err := kv.Get(KeyIcons); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyIcons, err)
	} else if ok {
		if icons, err := decodeIcons(raw); err != nil {
			r.warnCorrupt(KeyIcons, err)
		} else {
			r.icons = icons
		}
	}

	if raw, ok, err := kv.Get(KeySales); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeySales, err)
	} else if ok {
		if tally, err := decodeTally(raw); err != nil {
			r.warnCorrupt(KeySales, err)
		} else {
			r.tally = tally
		}
	}

	if raw, ok, err := kv.Get(KeyHistory); err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyHistory, err)
	} else if ok {
		if history, err := decodeHistory(raw); err != nil {
			r.warnCorrupt(KeyHistory, err)
		} else {
			r.history = history
		}
	}

	return r, nil
}

func (r *Repository) warnCorrupt(key string, err error) {
	r.logger.Warn("Corrupt record replaced with empty default",
		log.FieldRecord, key, log.FieldError, err.Error())
}

// Catalog returns a snapshot of the product list.
func (r *Repository) Catalog() core.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog.Clone()
}

// Icons returns a snapshot of the icon store.
func (r *Repository) Icons() core.Icons {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.icons.Clone()
}

// Icon returns the stored image payload for a product name.
func (r *Repository) Icon(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payload, ok := r.icons[name]
	return payload, ok
}

// Tally returns a snapshot of the open-day tally.
func (r *Repository) Tally() core.Tally {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tally.Clone()
}

// Snapshot returns the catalog and tally read under the same lock, for
// callers that derive totals from the pair.
func (r *Repository) Snapshot() (core.Catalog, core.Tally) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog.Clone(), r.tally.Clone()
}

// History returns a snapshot of the finalized day records, oldest first.
func (r *Repository) History() []core.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneHistory(r.history)
}

// UpdateTally applies fn to a copy of the tally while holding the lock,
// persists the result, then commits it to memory. fn receives the catalog
// read-only for precondition checks. An error from fn aborts with no state
// change.
func (r *Repository) UpdateTally(fn func(tally core.Tally, catalog core.Catalog) error) (core.Tally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.tally.Clone()
	if err := fn(next, r.catalog); err != nil {
		return nil, err
	}

	raw, err := encodeRecord(next)
	if err != nil {
		return nil, err
	}
	if err := r.kv.Set(KeySales, raw); err != nil {
		return nil, fmt.Errorf("persist %s: %w", KeySales, err)
	}

	r.tally = next
	return next.Clone(), nil
}

// UpdateCatalog applies fn to copies of the catalog and icon store, then
// persists both records in a single transaction. A catalog entry and its
// icon-store counterpart are a unit: no reader can observe one without the
// other.
func (r *Repository) UpdateCatalog(fn func(catalog *core.Catalog, icons core.Icons) error) (core.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nextCatalog := r.catalog.Clone()
	nextIcons := r.icons.Clone()
	if err := fn(&nextCatalog, nextIcons); err != nil {
		return nil, err
	}

	rawCatalog, err := encodeRecord(nextCatalog)
	if err != nil {
		return nil, err
	}
	rawIcons, err := encodeRecord(nextIcons)
	if err != nil {
		return nil, err
	}
	err = r.kv.SetAll(map[string]string{
		KeyProducts: rawCatalog,
		KeyIcons:    rawIcons,
	})
	if err != nil {
		return nil, fmt.Errorf("persist catalog: %w", err)
	}

	r.catalog = nextCatalog
	r.icons = nextIcons
	return nextCatalog.Clone(), nil
}

// CloseDay finalizes the open day: build turns the current tally and catalog
// into a history entry, which is appended while the tally resets to empty.
// Both writes land in one transaction; on failure the pre-close state stays
// intact in memory and storage.
func (r *Repository) CloseDay(build func(tally core.Tally, catalog core.Catalog) core.HistoryEntry) (core.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := build(r.tally.Clone(), r.catalog.Clone())

	nextHistory := append(cloneHistory(r.history), entry)
	rawHistory, err := encodeRecord(nextHistory)
	if err != nil {
		return core.HistoryEntry{}, err
	}
	rawTally, err := encodeRecord(core.Tally{})
	if err != nil {
		return core.HistoryEntry{}, err
	}
	err = r.kv.SetAll(map[string]string{
		KeyHistory: rawHistory,
		KeySales:   rawTally,
	})
	if err != nil {
		return core.HistoryEntry{}, fmt.Errorf("persist day close: %w", err)
	}

	r.history = nextHistory
	r.tally = core.Tally{}
	return entry, nil
}

// ClearHistory erases all finalized day records. The catalog, icon store and
// open-day tally are untouched.
func (r *Repository) ClearHistory() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := encodeRecord([]core.HistoryEntry{})
	if err != nil {
		return err
	}
	if err := r.kv.Set(KeyHistory, raw); err != nil {
		return fmt.Errorf("persist %s: %w", KeyHistory, err)
	}

	r.history = []core.HistoryEntry{}
	return nil
}

// ResetAll erases every record, icon store included, so no dangling icon
// entry can survive the wipe.
func (r *Repository) ResetAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(KeyProducts, KeyIcons, KeySales, KeyHistory); err != nil {
		return fmt.Errorf("reset records: %w", err)
	}

	r.catalog = core.Catalog{}
	r.icons = core.Icons{}
	r.tally = core.Tally{}
	r.history = []core.HistoryEntry{}
	return nil
}

func cloneHistory(history []core.HistoryEntry) []core.HistoryEntry {
	out := make([]core.HistoryEntry, len(history))
	for i, entry := range history {
		items := make(map[string]core.DayItem, len(entry.Items))
		for name, item := range entry.Items {
			items[name] = item
		}
		entry.Items = items
		out[i] = entry
	}
	return out
}
