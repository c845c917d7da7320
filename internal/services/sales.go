package services

import (
	"fmt"

	"cassa/internal/core"
	"cassa/internal/log"
	"cassa/internal/storage"
)

// Sales is the open-day tally: one tap per unit sold, one undo per mistap.
// Every mutation is durable before it is acknowledged.
type Sales struct {
	repo   *storage.Repository
	logger *log.Logger
}

func NewSales(repo *storage.Repository, logger *log.Logger) *Sales {
	return &Sales{repo: repo, logger: logger.WithComponent(log.ComponentSales)}
}

// Record increments the tally for a catalog product and returns the new
// count. Recording a name the catalog does not know is a precondition
// violation surfaced as core.ErrUnknownProduct.
func (s *Sales) Record(name string) (int, error) {
	var count int
	_, err := s.repo.UpdateTally(func(tally core.Tally, catalog core.Catalog) error {
		if !catalog.Contains(name) {
			return fmt.Errorf("record sale %q: %w", name, core.ErrUnknownProduct)
		}
		tally[name]++
		count = tally[name]
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Sale recorded",
		log.FieldOperation, log.OpRecord,
		log.FieldProduct, name,
		log.FieldCount, count)
	return count, nil
}

// Undo decrements the tally for a product. A count that reaches zero is
// removed outright, never stored as zero. Undoing a name with no entry is a
// no-op, not an error.
func (s *Sales) Undo(name string) (int, error) {
	var count int
	_, err := s.repo.UpdateTally(func(tally core.Tally, _ core.Catalog) error {
		current, ok := tally[name]
		if !ok {
			return nil
		}
		current--
		if current <= 0 {
			delete(tally, name)
			count = 0
			return nil
		}
		tally[name] = current
		count = current
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Sale undone",
		log.FieldOperation, log.OpUndo,
		log.FieldProduct, name,
		log.FieldCount, count)
	return count, nil
}

// CurrentTotal recomputes the running total of the open day from the tally
// and the current catalog prices. Products missing from the catalog price at
// zero.
func (s *Sales) CurrentTotal() int {
	catalog, tally := s.repo.Snapshot()
	return tally.Total(catalog)
}

// Snapshot returns the tally and its running total, read consistently.
func (s *Sales) Snapshot() (core.Tally, int) {
	catalog, tally := s.repo.Snapshot()
	return tally, tally.Total(catalog)
}
