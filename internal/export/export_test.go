package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cassa/internal/core"
)

func sampleHistory() []core.HistoryEntry {
	return []core.HistoryEntry{
		{
			Date:  core.NewDate(2025, time.January, 2),
			Total: 130,
			Items: map[string]core.DayItem{
				"Coffee": {Count: 2, Total: 100},
				"Tea":    {Count: 1, Total: 30},
			},
		},
		{
			Date:  core.NewDate(2025, time.January, 3),
			Total: 0,
			Items: map[string]core.DayItem{},
		},
	}
}

func TestExportEmptyHistory(t *testing.T) {
	_, err := Export(nil, FormatJSON)
	assert.ErrorIs(t, err, ErrNoHistory)

	_, err = Export([]core.HistoryEntry{}, FormatCSV)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestJSONRoundTrip(t *testing.T) {
	history := sampleHistory()

	out, err := Export(history, FormatJSON)
	require.NoError(t, err)

	var back []core.HistoryEntry
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, history, back, "export then parse must yield an equal history")
}

func TestJSONIsPrettyPrinted(t *testing.T) {
	out, err := Export(sampleHistory(), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  ")
}

func TestCSVLayout(t *testing.T) {
	out, err := Export(sampleHistory(), FormatCSV)
	require.NoError(t, err)

	want := "Date,Item,Quantity,Subtotal,Daily Total\n" +
		"2025-01-02,,,,130\n" +
		",Coffee,2,100,\n" +
		",Tea,1,30,\n" +
		"\n" +
		"2025-01-03,,,,0\n" +
		"\n"
	assert.Equal(t, want, string(out))
}

func TestCSVQuotesAwkwardNames(t *testing.T) {
	history := []core.HistoryEntry{{
		Date:  core.NewDate(2025, time.January, 2),
		Total: 10,
		Items: map[string]core.DayItem{`Tea, "Earl Grey"`: {Count: 1, Total: 10}},
	}}

	out, err := Export(history, FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Tea, ""Earl Grey"""`)
}

func TestFilenameAndContentType(t *testing.T) {
	date := core.NewDate(2025, time.January, 2)
	assert.Equal(t, "sales-history-2025-01-02.json", Filename(FormatJSON, date))
	assert.Equal(t, "sales-history-2025-01-02.csv", Filename(FormatCSV, date))
	assert.Equal(t, "application/json", ContentType(FormatJSON))
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
}
