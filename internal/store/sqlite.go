package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS witnesses (
	id          TEXT PRIMARY KEY,
	data        TEXT NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS imports (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	count       INTEGER NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS prefs (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_imports_imported_at ON imports(imported_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceWitnesses swaps the whole catalog for the given collection in one
// transaction and records the import run.
func (s *SQLiteStore) ReplaceWitnesses(ctx context.Context, witnesses []model.Witness, source string) (*ImportRun, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM witnesses`); err != nil {
		return nil, eris.Wrap(err, "sqlite: clear witnesses")
	}

	now := time.Now().UTC()
	for i := range witnesses {
		w := &witnesses[i]
		id := w.ID()
		if id == "" {
			continue
		}
		data, err := json.Marshal(w)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: marshal witness %s", id)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO witnesses (id, data, imported_at) VALUES (?, ?, ?)`,
			id, string(data), now,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: insert witness %s", id)
		}
	}

	run := &ImportRun{
		ID:         uuid.New().String(),
		Source:     source,
		Count:      len(witnesses),
		ImportedAt: now,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, count, imported_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, run.Count, run.ImportedAt,
	); err != nil {
		return nil, eris.Wrap(err, "sqlite: record import")
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit import")
	}
	return run, nil
}

func (s *SQLiteStore) ListWitnesses(ctx context.Context) ([]model.Witness, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM witnesses ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list witnesses")
	}
	defer rows.Close()

	var witnesses []model.Witness
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan witness")
		}
		w, err := model.DecodeWitness([]byte(data))
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: decode witness")
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, eris.Wrap(rows.Err(), "sqlite: iterate witnesses")
}

func (s *SQLiteStore) GetWitness(ctx context.Context, id string) (*model.Witness, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM witnesses WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get witness %s", id)
	}
	w, err := model.DecodeWitness([]byte(data))
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: decode witness %s", id)
	}
	return &w, nil
}

func (s *SQLiteStore) ListImports(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, count, imported_at FROM imports ORDER BY imported_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list imports")
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ID, &run.Source, &run.Count, &run.ImportedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan import")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate imports")
}

// GetPref returns the stored preference value, or "" when unset.
func (s *SQLiteStore) GetPref(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: get pref %s", name)
	}
	return value, nil
}

func (s *SQLiteStore) SetPref(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	return eris.Wrapf(err, "sqlite: set pref %s", name)
}
