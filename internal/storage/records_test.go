package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassa/internal/core"
)

func TestDecodeCatalog(t *testing.T) {
	t.Run("canonical shape", func(t *testing.T) {
		catalog, err := decodeCatalog(`[{"name":"Coffee","price":50,"icon":"☕"}]`)
		require.NoError(t, err)
		require.Len(t, catalog, 1)
		assert.Equal(t, core.Product{Name: "Coffee", Price: 50, Icon: "☕"}, catalog[0])
	})

	t.Run("legacy scalar shapes are coerced", func(t *testing.T) {
		catalog, err := decodeCatalog(`[{"name":"Tea","price":"30"},{"name":"Bun","price":12.0}]`)
		require.NoError(t, err)
		require.Len(t, catalog, 2)
		assert.Equal(t, 30, catalog[0].Price)
		assert.Equal(t, 12, catalog[1].Price)
		assert.Equal(t, core.DefaultIcon, catalog[0].Icon)
	})

	t.Run("unnamed entries are dropped", func(t *testing.T) {
		catalog, err := decodeCatalog(`[{"price":50},{"name":"Tea","price":30}]`)
		require.NoError(t, err)
		require.Len(t, catalog, 1)
		assert.Equal(t, "Tea", catalog[0].Name)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := decodeCatalog(`{"name":"Coffee"}`)
		assert.Error(t, err)
	})
}

func TestDecodeTally(t *testing.T) {
	t.Run("canonical shape", func(t *testing.T) {
		tally, err := decodeTally(`{"Coffee":2,"Tea":1}`)
		require.NoError(t, err)
		assert.Equal(t, core.Tally{"Coffee": 2, "Tea": 1}, tally)
	})

	t.Run("legacy list of sale events resets to empty", func(t *testing.T) {
		tally, err := decodeTally(`[{"name":"Coffee","price":50,"timestamp":"2024-01-01T10:00:00Z"}]`)
		require.NoError(t, err)
		assert.Empty(t, tally)
	})

	t.Run("non-positive and junk counts are dropped", func(t *testing.T) {
		tally, err := decodeTally(`{"Coffee":0,"Tea":-3,"Bun":"2","Cake":2.0}`)
		require.NoError(t, err)
		assert.Equal(t, core.Tally{"Bun": 2, "Cake": 2}, tally)
	})

	t.Run("unparsable payload", func(t *testing.T) {
		_, err := decodeTally(`not json`)
		assert.Error(t, err)
	})

	t.Run("scalar payload", func(t *testing.T) {
		_, err := decodeTally(`42`)
		assert.Error(t, err)
	})
}

func TestDecodeIcons(t *testing.T) {
	icons, err := decodeIcons(`{"Coffee":"data:image/svg+xml;base64,AAAA","Tea":""}`)
	require.NoError(t, err)
	assert.Equal(t, core.Icons{"Coffee": "data:image/svg+xml;base64,AAAA"}, icons)

	_, err = decodeIcons(`["Coffee"]`)
	assert.Error(t, err)
}

func TestDecodeHistory(t *testing.T) {
	t.Run("date-only and legacy timestamp entries", func(t *testing.T) {
		history, err := decodeHistory(`[
			{"date":"2025-01-02","total":100,"items":{"Coffee":{"count":2,"total":100}}},
			{"date":"2024-12-30T18:00:00Z","total":0,"items":{}}
		]`)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "2025-01-02", history[0].Date.String())
		assert.Equal(t, "2024-12-30", history[1].Date.String())
		assert.Equal(t, core.DayItem{Count: 2, Total: 100}, history[0].Items["Coffee"])
	})

	t.Run("missing items map becomes empty", func(t *testing.T) {
		history, err := decodeHistory(`[{"date":"2025-01-02","total":0}]`)
		require.NoError(t, err)
		assert.NotNil(t, history[0].Items)
	})
}
