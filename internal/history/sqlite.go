package history

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

// SQLiteStore keeps history in a SQLite database. It shares Store's
// newest-first ordering, cap and consecutive-duplicate rule.
type SQLiteStore struct {
	mu         sync.Mutex
	db         *sql.DB
	maxEntries int
	now        func() time.Time
}

// OpenSQLite opens (or creates) a history database.
// Use ":memory:" for an in-memory database.
func OpenSQLite(path string, maxEntries int) (*SQLiteStore, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "open sqlite %q", path)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT NOT NULL UNIQUE,
		pushed_at TEXT NOT NULL,
		url       TEXT NOT NULL,
		path      TEXT NOT NULL,
		query     TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS history_path ON history(path);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errdef.Wrap(errdef.CodeHistory, err, "create history schema")
	}
	return &SQLiteStore{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

func (s *SQLiteStore) Push(rawURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	var last string
	err := s.db.QueryRowContext(ctx, "SELECT url FROM history ORDER BY seq DESC LIMIT 1").Scan(&last)
	switch {
	case err == nil && last == rawURL:
		return nil
	case err != nil && err != sql.ErrNoRows:
		return errdef.Wrap(errdef.CodeHistory, err, "read latest history entry")
	}

	e := NewEntry(rawURL, s.now())
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO history (id, pushed_at, url, path, query) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.PushedAt.UTC().Format(time.RFC3339Nano), e.URL, e.Path, e.Query,
	); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "insert history entry")
	}

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)",
		s.maxEntries,
	); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "trim history")
	}
	return nil
}

func (s *SQLiteStore) List(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = s.maxEntries
	}
	return s.query(
		"SELECT id, pushed_at, url, path, query FROM history ORDER BY seq DESC LIMIT ?",
		limit,
	)
}

// ByPath returns the entries for one list view, newest first.
func (s *SQLiteStore) ByPath(path string, limit int) ([]Entry, error) {
	if path == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = s.maxEntries
	}
	return s.query(
		"SELECT id, pushed_at, url, path, query FROM history WHERE path = ? ORDER BY seq DESC LIMIT ?",
		path, limit,
	)
}

func (s *SQLiteStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(context.Background(), "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return false, errdef.Wrap(errdef.CodeHistory, err, "delete history entry")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errdef.Wrap(errdef.CodeHistory, err, "delete history entry")
	}
	return n > 0, nil
}

func (s *SQLiteStore) query(stmt string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(context.Background(), stmt, args...)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "query history")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var pushedAt string
		if err := rows.Scan(&e.ID, &pushedAt, &e.URL, &e.Path, &e.Query); err != nil {
			return nil, errdef.Wrap(errdef.CodeHistory, err, "scan history row")
		}
		if t, err := time.Parse(time.RFC3339Nano, pushedAt); err == nil {
			e.PushedAt = t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "iterate history")
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
