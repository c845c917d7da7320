package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"cassa/internal/core"
	"cassa/internal/log"
	"cassa/internal/storage"
)

// IconSpec is the icon a caller attaches to a product: either a short glyph
// or a large image payload, never both in the catalog. Image payloads land
// in the icon store and the product carries the sentinel glyph.
type IconSpec struct {
	Glyph string
	Image string
}

// ProductUpdate carries the new fields for an existing product. An empty
// Glyph or Image means "keep the current one".
type ProductUpdate struct {
	Name  string
	Price int
	Icon  IconSpec
}

// Catalog manages the product list and its icon store. The two records move
// together: renames carry the icon entry to the new key, deletes cascade, so
// the icon store never holds an entry for a name the catalog does not know.
type Catalog struct {
	repo   *storage.Repository
	logger *log.Logger
}

func NewCatalog(repo *storage.Repository, logger *log.Logger) *Catalog {
	return &Catalog{repo: repo, logger: logger.WithComponent(log.ComponentCatalog)}
}

// List returns the catalog snapshot in display order.
func (c *Catalog) List() core.Catalog {
	return c.repo.Catalog()
}

// Add registers a new product. The name must be non-empty and unique, the
// price a non-negative integer; violations are returned to the caller with
// no state change.
func (c *Catalog) Add(name string, price int, icon IconSpec) (core.Product, error) {
	name = strings.TrimSpace(name)
	if err := core.ValidateProduct(name, price); err != nil {
		return core.Product{}, err
	}

	var added core.Product
	_, err := c.repo.UpdateCatalog(func(catalog *core.Catalog, icons core.Icons) error {
		if catalog.Contains(name) {
			return fmt.Errorf("add %q: %w", name, core.ErrDuplicateName)
		}
		added = core.Product{Name: name, Price: price, Icon: glyphOrDefault(icon.Glyph)}
		if icon.Image != "" {
			icons[name] = icon.Image
			added.Icon = core.DefaultIcon
		}
		*catalog = append(*catalog, added)
		return nil
	})
	if err != nil {
		return core.Product{}, err
	}

	c.logger.Info("Product added",
		log.FieldOperation, log.OpAdd,
		log.FieldProduct, added.Name,
		log.FieldPrice, added.Price)
	return added, nil
}

// Update replaces the product at index. A rename moves any icon-store entry
// from the old name to the new one; the old key never survives.
func (c *Catalog) Update(index int, fields ProductUpdate) (core.Product, error) {
	name := strings.TrimSpace(fields.Name)
	if err := core.ValidateProduct(name, fields.Price); err != nil {
		return core.Product{}, err
	}

	var updated core.Product
	_, err := c.repo.UpdateCatalog(func(catalog *core.Catalog, icons core.Icons) error {
		if index < 0 || index >= len(*catalog) {
			return fmt.Errorf("update index %d: %w", index, core.ErrBadIndex)
		}
		old := (*catalog)[index]

		for i, p := range *catalog {
			if i != index && p.Name == name {
				return fmt.Errorf("update %q: %w", name, core.ErrDuplicateName)
			}
		}

		if name != old.Name {
			if payload, ok := icons[old.Name]; ok {
				icons[name] = payload
				delete(icons, old.Name)
			}
		}

		updated = core.Product{Name: name, Price: fields.Price, Icon: old.Icon}
		if fields.Icon.Glyph != "" {
			updated.Icon = fields.Icon.Glyph
		}
		if fields.Icon.Image != "" {
			icons[name] = fields.Icon.Image
			updated.Icon = core.DefaultIcon
		}
		(*catalog)[index] = updated
		return nil
	})
	if err != nil {
		return core.Product{}, err
	}

	c.logger.Info("Product updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldProduct, updated.Name,
		log.FieldPrice, updated.Price)
	return updated, nil
}

// Delete removes the product at index and cascades to its icon-store entry.
func (c *Catalog) Delete(index int) error {
	var removed string
	_, err := c.repo.UpdateCatalog(func(catalog *core.Catalog, icons core.Icons) error {
		if index < 0 || index >= len(*catalog) {
			return fmt.Errorf("delete index %d: %w", index, core.ErrBadIndex)
		}
		removed = (*catalog)[index].Name
		delete(icons, removed)
		*catalog = append((*catalog)[:index], (*catalog)[index+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("Product deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldProduct, removed)
	return nil
}

// ResolveIcon returns the display icon for a product name: the icon store
// wins, then the product's glyph, then the default. isImage reports whether
// the returned value is an image payload rather than a glyph.
func (c *Catalog) ResolveIcon(name string) (value string, isImage bool) {
	if payload, ok := c.repo.Icon(name); ok {
		return payload, true
	}
	if p, ok := c.repo.Catalog().Find(name); ok && p.Icon != "" {
		return p.Icon, false
	}
	return core.DefaultIcon, false
}

// ExportCSV serializes the catalog (glyphs only, image payloads stay in the
// icon store) for backup or editing in a spreadsheet.
func (c *Catalog) ExportCSV() ([]byte, error) {
	catalog := c.repo.Catalog()
	out, err := gocsv.MarshalBytes(&catalog)
	if err != nil {
		return nil, fmt.Errorf("export catalog csv: %w", err)
	}
	return out, nil
}

// ImportCSV reads products from CSV and adds each valid new row. Rows that
// fail validation or duplicate an existing name are skipped, not fatal.
// Returns the number of products added.
func (c *Catalog) ImportCSV(r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read catalog csv: %w", err)
	}

	var rows []core.Product
	if err := gocsv.Unmarshal(bytes.NewReader(raw), &rows); err != nil {
		return 0, fmt.Errorf("parse catalog csv: %w", err)
	}

	added := 0
	for _, row := range rows {
		_, err := c.Add(row.Name, row.Price, IconSpec{Glyph: row.Icon})
		if err != nil {
			c.logger.Warn("Skipped catalog import row",
				log.FieldOperation, log.OpImport,
				log.FieldProduct, row.Name,
				log.FieldError, err.Error())
			continue
		}
		added++
	}

	c.logger.Info("Catalog imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, added)
	return added, nil
}

func glyphOrDefault(glyph string) string {
	if glyph = strings.TrimSpace(glyph); glyph != "" {
		return glyph
	}
	return core.DefaultIcon
}
