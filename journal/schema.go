// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	account_id TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	day_of_week TEXT NOT NULL,
	week_of_month INTEGER NOT NULL,
	entry_time TEXT NOT NULL,
	exit_time TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL,
	entry_model TEXT NOT NULL DEFAULT '',
	result_type TEXT NOT NULL,
	result_amount TEXT NOT NULL,
	had_news INTEGER NOT NULL,
	news_description TEXT NOT NULL DEFAULT '',
	max_rr REAL,
	drawdown REAL,
	image_link TEXT NOT NULL DEFAULT '',
	no_trade_day INTEGER NOT NULL,
	risk_percentage REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_user_date ON trades(user_id, date);
`
