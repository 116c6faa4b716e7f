package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS headers (
			path TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS docstrings (
			symbol TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			kind TEXT,
			name TEXT,
			scope JSON,
			start_line INTEGER,
			end_line INTEGER,
			comment TEXT,
			docstring TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_docstrings_path ON docstrings(path);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot. Headers and docstrings that are
// no longer part of the project are dropped so the database always mirrors
// the last completed run.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, headers []HeaderRecord, docstrings []DocstringRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Clear the previous snapshot
	if _, err := tx.ExecContext(ctx, "DELETE FROM docstrings"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM headers"); err != nil {
		return err
	}

	// 2. Save headers
	headerStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO headers (path, content_hash) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer headerStmt.Close()

	for _, h := range headers {
		if _, err := headerStmt.Exec(h.Path, h.ContentHash); err != nil {
			return err
		}
	}

	// 3. Save docstrings
	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO docstrings (symbol, path, kind, name, scope, start_line, end_line, comment, docstring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer docStmt.Close()

	for _, d := range docstrings {
		scope, _ := json.Marshal(d.Scope)
		if _, err := docStmt.Exec(d.Symbol, d.Path, d.Kind, d.Name, scope, d.StartLine, d.EndLine, d.Comment, d.Docstring); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadHeaders(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT path, content_hash FROM headers")
	if err != nil {
		return nil, fmt.Errorf("failed to query headers: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan header: %w", err)
		}
		hashes[path] = hash
	}
	return hashes, rows.Err()
}

func (s *SQLiteStore) LoadDocstrings(ctx context.Context) ([]DocstringRecord, error) {
	return s.queryDocstrings(ctx, `
		SELECT symbol, path, kind, name, scope, start_line, end_line, comment, docstring
		FROM docstrings ORDER BY path, start_line, symbol
	`)
}

func (s *SQLiteStore) FindDocstringsByFile(ctx context.Context, path string) ([]DocstringRecord, error) {
	return s.queryDocstrings(ctx, `
		SELECT symbol, path, kind, name, scope, start_line, end_line, comment, docstring
		FROM docstrings WHERE path = ? ORDER BY start_line, symbol
	`, path)
}

func (s *SQLiteStore) queryDocstrings(ctx context.Context, query string, args ...any) ([]DocstringRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query docstrings: %w", err)
	}
	defer rows.Close()

	var records []DocstringRecord
	for rows.Next() {
		var d DocstringRecord
		var scope []byte
		if err := rows.Scan(&d.Symbol, &d.Path, &d.Kind, &d.Name, &scope, &d.StartLine, &d.EndLine, &d.Comment, &d.Docstring); err != nil {
			return nil, fmt.Errorf("failed to scan docstring: %w", err)
		}
		if len(scope) > 0 {
			_ = json.Unmarshal(scope, &d.Scope)
		}
		records = append(records, d)
	}
	return records, rows.Err()
}
