package services

import (
	"sort"

	"cassa/internal/core"
	"cassa/internal/log"
	"cassa/internal/storage"
)

// ProductStat is one ranked line of the stats rollup.
type ProductStat struct {
	Name    string `json:"name"`
	Units   int    `json:"units"`
	Revenue int    `json:"revenue"`
}

// WindowStats is the read-only rollup over a trailing window of history.
type WindowStats struct {
	Days       int           `json:"days"`
	From       core.Date     `json:"from"`
	To         core.Date     `json:"to"`
	TotalUnits int           `json:"total_units"`
	ActiveDays int           `json:"active_days"`
	Products   []ProductStat `json:"products"`
}

// DayTotal is one bar of the recent-revenue chart.
type DayTotal struct {
	Date  core.Date `json:"date"`
	Total int       `json:"total"`
}

// Stats computes read-side rollups over history. It never mutates anything.
type Stats struct {
	repo        *storage.Repository
	logger      *log.Logger
	defaultDays int

	// now anchors the trailing window; injectable for tests.
	now func() core.Date
}

func NewStats(repo *storage.Repository, logger *log.Logger, defaultDays int) *Stats {
	if defaultDays < 1 {
		defaultDays = 30
	}
	return &Stats{
		repo:        repo,
		logger:      logger.WithComponent(log.ComponentStats),
		defaultDays: defaultDays,
		now:         core.Today,
	}
}

// Window aggregates per-product unit counts over the trailing days window,
// boundaries inclusive. Products rank descending by units; ties keep the
// order in which a product first appears in the windowed history (item
// names within a single day sort alphabetically, since the stored mapping
// has no order of its own).
func (s *Stats) Window(days int) WindowStats {
	if days < 1 {
		days = s.defaultDays
	}
	to := s.now()
	from := to.AddDays(-days)

	stats := WindowStats{Days: days, From: from, To: to}

	totals := map[string]*ProductStat{}
	var order []string

	for _, entry := range s.repo.History() {
		if !entry.Date.Within(from, to) {
			continue
		}
		stats.ActiveDays++

		for _, name := range sortedItemNames(entry.Items) {
			item := entry.Items[name]
			stat, ok := totals[name]
			if !ok {
				stat = &ProductStat{Name: name}
				totals[name] = stat
				order = append(order, name)
			}
			stat.Units += item.Count
			stat.Revenue += item.Total
			stats.TotalUnits += item.Count
		}
	}

	stats.Products = make([]ProductStat, 0, len(order))
	for _, name := range order {
		stats.Products = append(stats.Products, *totals[name])
	}
	sort.SliceStable(stats.Products, func(i, j int) bool {
		return stats.Products[i].Units > stats.Products[j].Units
	})

	return stats
}

// Recent returns the newest n finalized days, newest first.
func (s *Stats) Recent(n int) []core.HistoryEntry {
	history := s.repo.History()
	if n > len(history) {
		n = len(history)
	}
	out := make([]core.HistoryEntry, 0, n)
	for i := len(history) - 1; i >= len(history)-n; i-- {
		out = append(out, history[i])
	}
	return out
}

// Chart returns the daily totals of the last n stored days in chronological
// order, ready to plot.
func (s *Stats) Chart(n int) []DayTotal {
	history := s.repo.History()
	if n < len(history) {
		history = history[len(history)-n:]
	}
	out := make([]DayTotal, len(history))
	for i, entry := range history {
		out[i] = DayTotal{Date: entry.Date, Total: entry.Total}
	}
	return out
}

func sortedItemNames(items map[string]core.DayItem) []string {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
