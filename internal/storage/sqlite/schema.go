package sqlite

// schema defines the SQLite layout. Timestamps are stored as text in the
// same layout the CSV backend uses so a log is portable between backends.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time TEXT NOT NULL,
	end_time TEXT,
	duration_min REAL NOT NULL DEFAULT 0,
	ticket TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	system_info TEXT NOT NULL DEFAULT '',
	ai_summary TEXT NOT NULL DEFAULT '',
	resolved INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tasks_start_time ON tasks(start_time);

CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task TEXT NOT NULL,
	priority TEXT NOT NULL DEFAULT 'Medium',
	status TEXT NOT NULL DEFAULT 'Pending',
	created TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status);
`
