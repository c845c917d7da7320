// Package export serializes sales history into downloadable blobs.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cassa/internal/core"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var (
	// ErrNoHistory means there is nothing to export. Callers decide whether
	// that is user-visible; it is not a crash.
	ErrNoHistory = errors.New("no history to export")

	ErrBadFormat = errors.New("unsupported export format")
)

// ParseFormat validates a caller-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
}

// Export serializes history in the given format. An empty history exports
// nothing and reports ErrNoHistory.
func Export(history []core.HistoryEntry, format Format) ([]byte, error) {
	if len(history) == 0 {
		return nil, ErrNoHistory
	}
	switch format {
	case FormatJSON:
		return exportJSON(history)
	case FormatCSV:
		return exportCSV(history)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}

// Filename returns the download name for an export produced on date.
func Filename(format Format, date core.Date) string {
	return fmt.Sprintf("sales-history-%s.%s", date, format)
}

// ContentType returns the MIME type for a format.
func ContentType(format Format) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

func exportJSON(history []core.HistoryEntry) ([]byte, error) {
	out, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode history json: %w", err)
	}
	return out, nil
}

// exportCSV lays each day out as a date row carrying the daily total, then
// one row per item, then a blank separator line. Items sort by name: the
// stored mapping has no order of its own.
func exportCSV(history []core.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Item", "Quantity", "Subtotal", "Daily Total"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, day := range history {
		row := []string{day.Date.String(), "", "", "", strconv.Itoa(day.Total)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv day row: %w", err)
		}

		names := make([]string, 0, len(day.Items))
		for name := range day.Items {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			item := day.Items[name]
			row := []string{"", name, strconv.Itoa(item.Count), strconv.Itoa(item.Total), ""}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv item row: %w", err)
			}
		}

		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flush csv: %w", err)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
