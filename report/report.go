// Package report renders backtest results for humans (console tables) and
// machines (JSON/CSV exports).
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/putsim/backtest"
	"github.com/rustyeddy/putsim/journal"
)

const dateFmt = "2006-01-02"

// PrintSummary writes the run headline: date range, balances, counts, and
// growth metrics.
func PrintSummary(w io.Writer, res backtest.Result, m backtest.Metrics) {
	fmt.Fprintf(w, "\nBacktest %s .. %s (%d trades, %d assignments)\n",
		res.Start.Format(dateFmt), res.End.Format(dateFmt),
		res.TotalTrades, res.AssignedPuts)

	table := tablewriter.NewWriter(w)
	table.Header("", "BTC", "USD", "Value @ ref")

	table.Append("start", res.StartBTC.StringFixed(8), res.StartUSD.StringFixed(2),
		fmt.Sprintf("%.2f", m.StartValue))
	table.Append("end", res.EndBTC.StringFixed(8), res.EndUSD.StringFixed(2),
		fmt.Sprintf("%.2f", m.EndValue))

	table.Render()

	fmt.Fprintf(w, "  Premium collected: %s\n", res.TotalPremiumCollected.StringFixed(2))
	if m.BTCGrowthValid {
		fmt.Fprintf(w, "  BTC growth:        %.2f%%\n", m.BTCGrowthPercent)
	} else {
		fmt.Fprintln(w, "  BTC growth:        n/a (started with no BTC)")
	}
	if m.ValueGrowthValid {
		fmt.Fprintf(w, "  Value growth:      %.2f%% (ref spot %.2f)\n", m.ValueGrowthPercent, res.FinalPrice)
	}
}

// PrintLedger writes the full trade ledger as a table.
func PrintLedger(w io.Writer, trades []journal.TradeRecord) {
	if len(trades) == 0 {
		fmt.Fprintln(w, "no trades")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("Time", "Action", "Price", "Strike", "Premium", "BTC", "USD")

	for _, t := range trades {
		table.Append(
			t.Time.Format(time.RFC3339),
			string(t.Action),
			fmt.Sprintf("%.2f", t.BTCPrice),
			t.Strike.StringFixed(2),
			t.Premium.StringFixed(4),
			t.BTCBalance.StringFixed(8),
			t.USDBalance.StringFixed(2),
		)
	}

	table.Render()
}

// WriteJSON dumps the whole result (ledger included) as indented JSON.
func WriteJSON(path string, res backtest.Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// WriteTradesCSV exports the ledger in the same column layout the CSV
// journal uses.
func WriteTradesCSV(path string, trades []journal.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "action", "btc_price", "strike", "premium", "btc_balance", "usd_balance"}); err != nil {
		return err
	}
	for _, t := range trades {
		row := []string{
			t.Time.Format(time.RFC3339),
			string(t.Action),
			fmt.Sprintf("%v", t.BTCPrice),
			t.Strike.String(),
			t.Premium.String(),
			t.BTCBalance.String(),
			t.USDBalance.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
