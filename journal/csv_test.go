package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestCSVJournalRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, j.Record(Entry{
		ID:           "E1",
		Time:         at,
		UserID:       "42",
		Command:      "calc",
		Args:         []string{"capital=1000", "sl=35.42", "risk=1"},
		OK:           true,
		Capital:      fp(1000),
		PositionSize: fp(0.2823264),
	}))
	require.NoError(t, j.Record(Entry{
		ID:      "E2",
		Time:    at.Add(time.Second),
		UserID:  "42",
		Command: "rr",
		Error:   "tp: missing field",
	}))
	require.NoError(t, j.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"E1", "2024-01-02T03:04:05Z", "42", "calc", "capital=1000 sl=35.42 risk=1", "true", "",
		"1000.000000", "0.282326", "", "",
	}, rows[1])
	assert.Equal(t, "false", rows[2][5])
	assert.Equal(t, "tp: missing field", rows[2][6])
}

func TestCSVJournalAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	for i := 0; i < 2; i++ {
		j, err := NewCSV(path)
		require.NoError(t, err)
		require.NoError(t, j.Record(Entry{ID: "E", Time: time.Now(), Command: "profile", OK: true}))
		require.NoError(t, j.Close())
	}

	rows := readCSV(t, path)
	// one header, two records
	assert.Len(t, rows, 3)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	j, err := Open("", "")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, j)
	assert.NoError(t, j.Record(Entry{}))

	dir := t.TempDir()
	j, err = Open("csv", filepath.Join(dir, "j.csv"))
	require.NoError(t, err)
	assert.IsType(t, &CSVJournal{}, j)
	require.NoError(t, j.Close())

	j, err = Open("SQLite", filepath.Join(dir, "j.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	require.NoError(t, j.Close())

	_, err = Open("postgres", "")
	assert.Error(t, err)
}
