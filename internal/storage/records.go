package storage

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"cassa/internal/core"
)

// The record codec is deliberately forgiving on the read side: persisted
// payloads may come from older releases (string prices, float counts, a
// list-shaped sales record). Anything that cannot be salvaged decodes to the
// record's empty default; the write side always emits the canonical shape.

func decodeCatalog(raw string) (core.Catalog, error) {
	var entries []map[string]any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	catalog := make(core.Catalog, 0, len(entries))
	for _, entry := range entries {
		name := cast.ToString(entry["name"])
		if name == "" {
			continue
		}
		icon := cast.ToString(entry["icon"])
		if icon == "" {
			icon = core.DefaultIcon
		}
		catalog = append(catalog, core.Product{
			Name:  name,
			Price: cast.ToInt(entry["price"]),
			Icon:  icon,
		})
	}
	return catalog, nil
}

func decodeTally(raw string) (core.Tally, error) {
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}

	switch shaped := payload.(type) {
	case map[string]any:
		tally := make(core.Tally, len(shaped))
		for name, rawCount := range shaped {
			if count := cast.ToInt(rawCount); count > 0 {
				tally[name] = count
			}
		}
		return tally, nil
	case []any:
		// Legacy releases stored sales as a list of individual sale events.
		// That shape carries no per-product counts we can trust, so it
		// resets to an empty open day.
		return core.Tally{}, nil
	default:
		return nil, fmt.Errorf("decode sales: unexpected shape %T", payload)
	}
}

func decodeIcons(raw string) (core.Icons, error) {
	var entries map[string]any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode product icons: %w", err)
	}

	icons := make(core.Icons, len(entries))
	for name, payload := range entries {
		if s := cast.ToString(payload); s != "" {
			icons[name] = s
		}
	}
	return icons, nil
}

func decodeHistory(raw string) ([]core.HistoryEntry, error) {
	var history []core.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	for i := range history {
		if history[i].Items == nil {
			history[i].Items = map[string]core.DayItem{}
		}
	}
	return history, nil
}

func encodeRecord(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(raw), nil
}
