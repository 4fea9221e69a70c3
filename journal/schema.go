package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	btc_price REAL NOT NULL,
	strike TEXT NOT NULL,
	premium TEXT NOT NULL,
	btc_balance TEXT NOT NULL,
	usd_balance TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	btc_price REAL NOT NULL,
	btc_balance TEXT NOT NULL,
	usd_balance TEXT NOT NULL,
	portfolio_value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(time);
`
