package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// HeaderRecord is one scanned header file in a snapshot.
type HeaderRecord struct {
	Path        string
	ContentHash string
}

// DocstringRecord is one translated docstring in a snapshot. Comment keeps
// the raw extracted text so a later run can rebuild the output for unchanged
// headers without parsing them again.
type DocstringRecord struct {
	Symbol    string
	Path      string
	Kind      string
	Name      string
	Scope     []string
	StartLine int
	EndLine   int
	Comment   string
	Docstring string
}

// Store persists the scan snapshot between runs.
type Store interface {
	// SaveSnapshot replaces the whole stored snapshot with the given one.
	SaveSnapshot(ctx context.Context, headers []HeaderRecord, docstrings []DocstringRecord) error

	// LoadHeaders returns the stored content hash of every header, keyed by path.
	LoadHeaders(ctx context.Context) (map[string]string, error)

	// LoadDocstrings returns every stored docstring, ordered by path and line.
	LoadDocstrings(ctx context.Context) ([]DocstringRecord, error)

	// FindDocstringsByFile returns the stored docstrings of a single header.
	FindDocstringsByFile(ctx context.Context, path string) ([]DocstringRecord, error)

	Close() error
}

// HashContent fingerprints header content for change detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
