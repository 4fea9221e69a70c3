package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapsPath)
	require.NoError(t, err)

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(testTrade(t0, ActionSellPut)))
	require.NoError(t, j.RecordSnapshot(Snapshot{
		Time:       t0,
		BTCPrice:   42000.5,
		BTCBalance: decimal.Zero,
		USDBalance: decimal.RequireFromString("100798.0095"),
		Value:      decimal.RequireFromString("100798.0095"),
	}))
	require.NoError(t, j.Close())

	trades := readAll(t, tradesPath)
	require.Len(t, trades, 2) // header + 1 row
	assert.Equal(t, []string{"time", "action", "btc_price", "strike", "premium", "btc_balance", "usd_balance"}, trades[0])
	assert.Equal(t, "SELL_PUT", trades[1][1])
	assert.Equal(t, "39900.475", trades[1][3])

	snaps := readAll(t, snapsPath)
	require.Len(t, snaps, 2)
	assert.Equal(t, "100798.0095", snaps[1][4])
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
