package services

import (
	"io"
	"log/slog"
	"testing"

	"cassa/internal/log"
	"cassa/internal/storage"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func newTestRepo(t *testing.T, seed map[string]string) *storage.Repository {
	t.Helper()
	repo, err := storage.Open(storage.Seed(seed), testLogger())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	return repo
}

func seedCatalog() map[string]string {
	return map[string]string{
		storage.KeyProducts: `[{"name":"Coffee","price":50,"icon":"☕"},{"name":"Tea","price":30,"icon":"✨"}]`,
	}
}
