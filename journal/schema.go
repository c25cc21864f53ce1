// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	position_id TEXT PRIMARY KEY,
	pair TEXT NOT NULL,
	exchange TEXT NOT NULL,
	market TEXT NOT NULL,
	is_futures INTEGER NOT NULL,
	direction TEXT NOT NULL,
	notes TEXT NOT NULL,
	position_size REAL NOT NULL,
	position_value REAL NOT NULL,
	avg_open_price REAL NOT NULL,
	total_borrowed REAL NOT NULL,
	remaining_borrowed REAL NOT NULL,
	net_pnl REAL NOT NULL,
	net_roi REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	position_id TEXT NOT NULL REFERENCES positions(position_id),
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	order_type TEXT NOT NULL,
	price REAL NOT NULL,
	margin REAL NOT NULL,
	borrowed REAL NOT NULL,
	leverage REAL NOT NULL,
	amount REAL NOT NULL,
	total REAL NOT NULL,
	fee REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_position ON trades(position_id);
CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
`
