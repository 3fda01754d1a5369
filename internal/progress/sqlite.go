package progress

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore keeps progress in a local sqlite file so flags and answered
// marks survive across runs.
type SQLiteStore struct {
	versioned
	db *sql.DB
}

// NewSQLite opens (creating if needed) the progress database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	s.versioned = versioned{kv: s}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO progress (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLiteStore) del(key string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE key = ?", key)
	return err
}
