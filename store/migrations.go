package store

import "fmt"

type migration struct {
	version int
	up      []string
}

// Schema history. v1 is the original schema where messages only knew user and
// assistant roles; v2 rebuilds the table so tool_call transcript rows pass the
// role CHECK. Migrations are append-only.
var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE IF NOT EXISTS conversations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`,
			`CREATE TABLE IF NOT EXISTS messages (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				conversation_id INTEGER NOT NULL,
				role TEXT NOT NULL CHECK(role IN ('user', 'assistant')),
				content TEXT NOT NULL,
				timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS food_entries (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				calories INTEGER NOT NULL,
				quantity REAL DEFAULT 1.0,
				timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
				conversation_id INTEGER,
				FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE SET NULL
			);`,
			`CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT
			);`,
			`CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				content TEXT NOT NULL,
				type TEXT DEFAULT 'insight',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`,
			`CREATE TABLE IF NOT EXISTS search_cache (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				query TEXT NOT NULL UNIQUE,
				results TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				expires_at DATETIME NOT NULL
			);`,
			`INSERT OR IGNORE INTO settings (key, value) VALUES ('calorie_target', '2000');`,
			`INSERT OR IGNORE INTO settings (key, value) VALUES ('active_model', '');`,
		},
	},
	{
		version: 2,
		up: []string{
			`CREATE TABLE IF NOT EXISTS messages_v2 (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				conversation_id INTEGER NOT NULL,
				role TEXT NOT NULL CHECK(role IN ('user', 'assistant', 'tool_call')),
				content TEXT NOT NULL,
				timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
			);`,
			`INSERT INTO messages_v2 (id, conversation_id, role, content, timestamp)
				SELECT id, conversation_id, role, content, timestamp FROM messages;`,
			`DROP TABLE messages;`,
			`ALTER TABLE messages_v2 RENAME TO messages;`,
		},
	},
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);`,
	); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`,
	).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.up {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
		}
		if _, err := s.db.Exec(
			`INSERT INTO schema_version (version) VALUES (?)`, m.version,
		); err != nil {
			return err
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&v)
	return v, err
}
