package services

import (
	"errors"
	"strings"
	"testing"

	"cassa/internal/core"
)

func TestAddProductValidation(t *testing.T) {
	repo := newTestRepo(t, nil)
	catalog := NewCatalog(repo, testLogger())

	cases := []struct {
		name    string
		product string
		price   int
		want    error
	}{
		{"empty name", "", 50, core.ErrEmptyName},
		{"blank name", "   ", 50, core.ErrEmptyName},
		{"negative price", "Coffee", -1, core.ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Add(tc.product, tc.price, IconSpec{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if got := len(catalog.List()); got != 0 {
				t.Fatalf("rejected add changed the catalog: %d products", got)
			}
		})
	}
}

func TestAddProductDefaultsAndDuplicates(t *testing.T) {
	repo := newTestRepo(t, nil)
	catalog := NewCatalog(repo, testLogger())

	p, err := catalog.Add("  Coffee  ", 50, IconSpec{})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.Name != "Coffee" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
	if p.Icon != core.DefaultIcon {
		t.Fatalf("icon = %q, want default glyph", p.Icon)
	}

	if _, err := catalog.Add("Coffee", 60, IconSpec{}); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("duplicate add: got %v, want ErrDuplicateName", err)
	}
}

func TestAddProductWithImagePayload(t *testing.T) {
	repo := newTestRepo(t, nil)
	catalog := NewCatalog(repo, testLogger())

	payload := "data:image/svg+xml;base64," + strings.Repeat("A", 512)
	p, err := catalog.Add("Coffee", 50, IconSpec{Image: payload})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// The payload lives in the icon store; the catalog carries the sentinel.
	if p.Icon != core.DefaultIcon {
		t.Fatalf("catalog icon = %q, want sentinel %q", p.Icon, core.DefaultIcon)
	}
	stored, ok := repo.Icon("Coffee")
	if !ok || stored != payload {
		t.Fatalf("icon store entry missing or wrong")
	}

	value, isImage := catalog.ResolveIcon("Coffee")
	if !isImage || value != payload {
		t.Fatalf("ResolveIcon should prefer the icon store")
	}
}

func TestResolveIconFallbacks(t *testing.T) {
	repo := newTestRepo(t, seedCatalog())
	catalog := NewCatalog(repo, testLogger())

	if value, isImage := catalog.ResolveIcon("Coffee"); isImage || value != "☕" {
		t.Fatalf("ResolveIcon(Coffee) = %q (image=%v), want product glyph", value, isImage)
	}
	if value, isImage := catalog.ResolveIcon("Ghost"); isImage || value != core.DefaultIcon {
		t.Fatalf("ResolveIcon of unknown product = %q, want default glyph", value)
	}
}

func TestRenameMovesIconStoreEntry(t *testing.T) {
	repo := newTestRepo(t, nil)
	catalog := NewCatalog(repo, testLogger())

	if _, err := catalog.Add("Coffee", 50, IconSpec{Image: "payload"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := catalog.Update(0, ProductUpdate{Name: "Espresso", Price: 60}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, ok := repo.Icon("Coffee"); ok {
		t.Fatalf("icon store still holds the old name after rename")
	}
	moved, ok := repo.Icon("Espresso")
	if !ok || moved != "payload" {
		t.Fatalf("icon payload did not move to the new name")
	}
}

func TestUpdateKeepsIconWhenUnspecified(t *testing.T) {
	repo := newTestRepo(t, seedCatalog())
	catalog := NewCatalog(repo, testLogger())

	// Empty glyph and image in the update mean "keep what's there".
	p, err := catalog.Update(0, ProductUpdate{Name: "Coffee", Price: 55})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Icon != "☕" {
		t.Fatalf("icon = %q, want the existing glyph kept", p.Icon)
	}
	if p.Price != 55 {
		t.Fatalf("price = %d, want 55", p.Price)
	}
}

func TestUpdateRejectsBadIndexAndDuplicates(t *testing.T) {
	repo := newTestRepo(t, seedCatalog())
	catalog := NewCatalog(repo, testLogger())

	if _, err := catalog.Update(5, ProductUpdate{Name: "X", Price: 1}); !errors.Is(err, core.ErrBadIndex) {
		t.Fatalf("out-of-range update: got %v, want ErrBadIndex", err)
	}
	if _, err := catalog.Update(0, ProductUpdate{Name: "Tea", Price: 1}); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("rename onto an existing product: got %v, want ErrDuplicateName", err)
	}
}

func TestDeleteCascadesToIconStore(t *testing.T) {
	repo := newTestRepo(t, nil)
	catalog := NewCatalog(repo, testLogger())

	if _, err := catalog.Add("Coffee", 50, IconSpec{Image: "payload"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := catalog.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := len(catalog.List()); got != 0 {
		t.Fatalf("catalog size after delete = %d, want 0", got)
	}
	if _, ok := repo.Icon("Coffee"); ok {
		t.Fatalf("orphan icon store entry survived the delete")
	}

	if err := catalog.Delete(0); !errors.Is(err, core.ErrBadIndex) {
		t.Fatalf("delete on empty catalog: got %v, want ErrBadIndex", err)
	}
}

func TestCatalogCSVRoundTrip(t *testing.T) {
	repo := newTestRepo(t, seedCatalog())
	catalog := NewCatalog(repo, testLogger())

	out, err := catalog.ExportCSV()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	fresh := NewCatalog(newTestRepo(t, nil), testLogger())
	added, err := fresh.ImportCSV(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 2 {
		t.Fatalf("imported %d products, want 2", added)
	}
	if got := fresh.List(); got.Price("Coffee") != 50 || got.Price("Tea") != 30 {
		t.Fatalf("imported catalog wrong: %+v", got)
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	repo := newTestRepo(t, seedCatalog())
	catalog := NewCatalog(repo, testLogger())

	csv := "name,price,icon\nCoffee,60,☕\nBun,12,🥐\n,5,\n"
	added, err := catalog.ImportCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	// Coffee duplicates, the unnamed row fails validation; only Bun lands.
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if !catalog.List().Contains("Bun") {
		t.Fatalf("Bun missing after import")
	}
}
