package journal

const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	user_id TEXT NOT NULL,
	command TEXT NOT NULL,
	args TEXT NOT NULL,
	ok INTEGER NOT NULL,
	error TEXT NOT NULL,
	capital REAL,
	position_size REAL,
	notional REAL,
	reward_risk REAL
);

CREATE INDEX IF NOT EXISTS idx_entries_user_time ON entries(user_id, time);
`
