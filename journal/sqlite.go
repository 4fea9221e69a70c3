package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/putsim/internal/id"
)

// SQLiteJournal stores trades and snapshots for one backtest run.
// Decimal columns are stored as TEXT so the persisted ledger stays exact.
type SQLiteJournal struct {
	db    *sql.DB
	runID string
}

// NewSQLite opens (or creates) the database at path and tags all rows with
// runID. An empty runID gets a fresh ULID.
func NewSQLite(path, runID string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	if runID == "" {
		runID = id.New()
	}
	return &SQLiteJournal{db: db, runID: runID}, nil
}

func (j *SQLiteJournal) RunID() string { return j.runID }

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, time, action, btc_price, strike, premium, btc_balance, usd_balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), j.runID, t.Time, string(t.Action), t.BTCPrice,
		t.Strike.String(), t.Premium.String(),
		t.BTCBalance.String(), t.USDBalance.String(),
	)
	return err
}

func (j *SQLiteJournal) RecordSnapshot(s Snapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(run_id, time, btc_price, btc_balance, usd_balance, portfolio_value)
		VALUES (?, ?, ?, ?, ?, ?)`,
		j.runID, s.Time, s.BTCPrice,
		s.BTCBalance.String(), s.USDBalance.String(), s.Value.String(),
	)
	return err
}

// ListTrades returns the run's ledger ordered by time then insertion.
func (j *SQLiteJournal) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, action, btc_price, strike, premium, btc_balance, usd_balance
		FROM trades WHERE run_id = ? ORDER BY time, trade_id`, j.runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListTradesBetween returns the run's trades with from <= time < to.
func (j *SQLiteJournal) ListTradesBetween(from, to time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, action, btc_price, strike, premium, btc_balance, usd_balance
		FROM trades WHERE run_id = ? AND time >= ? AND time < ?
		ORDER BY time, trade_id`, j.runID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		var action, strike, premium, btc, usd string
		if err := rows.Scan(&t.Time, &action, &t.BTCPrice, &strike, &premium, &btc, &usd); err != nil {
			return nil, err
		}
		t.Action = Action(action)

		var err error
		if t.Strike, err = decimal.NewFromString(strike); err != nil {
			return nil, err
		}
		if t.Premium, err = decimal.NewFromString(premium); err != nil {
			return nil, err
		}
		if t.BTCBalance, err = decimal.NewFromString(btc); err != nil {
			return nil, err
		}
		if t.USDBalance, err = decimal.NewFromString(usd); err != nil {
			return nil, err
		}

		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
