package services

import (
	"cassa/internal/core"
	"cassa/internal/log"
	"cassa/internal/storage"
)

// DayClose finalizes the open day into history and owns the history record
// thereafter: reads, clearing, and the full data wipe.
type DayClose struct {
	repo   *storage.Repository
	logger *log.Logger

	// now stamps the closing date; injectable for tests.
	now func() core.Date
}

func NewDayClose(repo *storage.Repository, logger *log.Logger) *DayClose {
	return &DayClose{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentDayClose),
		now:    core.Today,
	}
}

// BuildEntry deterministically aggregates a tally against catalog prices
// into a finalized day record. Prices are captured here, at close time;
// products missing from the catalog price at zero. Pure function, no I/O.
func BuildEntry(tally core.Tally, catalog core.Catalog, date core.Date) core.HistoryEntry {
	items := make(map[string]core.DayItem, len(tally))
	grandTotal := 0
	for name, count := range tally {
		itemTotal := catalog.Price(name) * count
		items[name] = core.DayItem{Count: count, Total: itemTotal}
		grandTotal += itemTotal
	}
	return core.HistoryEntry{Date: date, Total: grandTotal, Items: items}
}

// Close stamps today's local calendar date, appends the finalized entry to
// history and resets the tally, as one transaction. Closing an empty day is
// legitimate: it appends an entry with zero total and no items.
func (d *DayClose) Close() (core.HistoryEntry, error) {
	date := d.now()
	entry, err := d.repo.CloseDay(func(tally core.Tally, catalog core.Catalog) core.HistoryEntry {
		return BuildEntry(tally, catalog, date)
	})
	if err != nil {
		return core.HistoryEntry{}, err
	}

	d.logger.Info("Day closed",
		log.FieldOperation, log.OpClose,
		log.FieldDate, entry.Date.String(),
		log.FieldTotal, entry.Total,
		log.FieldCount, len(entry.Items))
	return entry, nil
}

// History returns the finalized day records, oldest first.
func (d *DayClose) History() []core.HistoryEntry {
	return d.repo.History()
}

// ClearHistory erases all finalized day records.
func (d *DayClose) ClearHistory() error {
	if err := d.repo.ClearHistory(); err != nil {
		return err
	}
	d.logger.Info("History cleared", log.FieldOperation, log.OpClear)
	return nil
}

// ResetAll wipes every record: catalog, icons, tally and history.
func (d *DayClose) ResetAll() error {
	if err := d.repo.ResetAll(); err != nil {
		return err
	}
	d.logger.Info("All data reset", log.FieldOperation, log.OpReset)
	return nil
}
