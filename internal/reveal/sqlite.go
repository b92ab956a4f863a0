package reveal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps latches in a private in-memory SQLite database. Nothing is written to
// disk; the data lives as long as the process.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens a fresh in-memory database and creates the reveals table.
func NewSQLiteStore(ctx context.Context) (*SQLiteStore, error) {
	// Each store gets its own named memory database so independent stores never share rows.
	dsn := fmt.Sprintf("file:reveals-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A memory database disappears with its last connection; keep exactly one open.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	schema := []string{`
	CREATE TABLE IF NOT EXISTS mounts (
		mount TEXT PRIMARY KEY,
		last_seen INTEGER NOT NULL -- unix millis
	)`, `
	CREATE TABLE IF NOT EXISTS reveals (
		mount TEXT NOT NULL,
		section TEXT NOT NULL,
		revealed_at INTEGER NOT NULL, -- unix millis
		PRIMARY KEY (mount, section)
	)`}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create reveal tables: %w", err)
		}
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Revealed implements Store.
func (s *SQLiteStore) Revealed(ctx context.Context, mount string) (map[Section]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT section FROM reveals WHERE mount = ?`, mount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[Section]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		section, err := ParseSection(name)
		if err != nil {
			continue
		}
		out[section] = true
	}
	return out, rows.Err()
}

const touchMount = `
	INSERT INTO mounts (mount, last_seen) VALUES (?, ?)
	ON CONFLICT (mount) DO UPDATE SET last_seen = excluded.last_seen`

// MarkRevealed implements Store. Existing latch rows are never updated, so a latch keeps
// the time it first fired; the mount's last_seen moves forward either way.
func (s *SQLiteStore) MarkRevealed(ctx context.Context, mount string, section Section) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	now := s.now().UnixMilli()
	if _, err := tx.ExecContext(ctx, touchMount, mount, now); err != nil {
		return false, err
	}
	result, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO reveals (mount, section, revealed_at)
		VALUES (?, ?, ?)
	`, mount, section.String(), now)
	if err != nil {
		return false, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, tx.Commit()
}

// Touch implements Store.
func (s *SQLiteStore) Touch(ctx context.Context, mount string) error {
	_, err := s.db.ExecContext(ctx, touchMount, mount, s.now().UnixMilli())
	return err
}

// Prune implements Store. A mount is dropped with all its latches once it was last seen
// before cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	ms := cutoff.UnixMilli()
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reveals
		WHERE mount IN (SELECT mount FROM mounts WHERE last_seen < ?)
	`, ms); err != nil {
		return 0, err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM mounts WHERE last_seen < ?`, ms)
	if err != nil {
		return 0, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return removed, tx.Commit()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
