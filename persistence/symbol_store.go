package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.lsp.dev/protocol"
)

// SymbolStore persists aggregated document symbols in a SQLite database so
// they stay queryable workspace-wide after the outline that produced them is
// gone.
type SymbolStore struct {
	db *sql.DB
}

// NewSymbolStore opens/creates the database at dbPath.
func NewSymbolStore(dbPath string) (*SymbolStore, error) {
	if dbPath == "" {
		return nil, errors.New("symbol store path required")
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	store := &SymbolStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SymbolStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS symbols (
		resource TEXT NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		container_name TEXT,
		start_line INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		end_col INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_symbols_resource ON symbols(resource);
	CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *SymbolStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ReplaceForResource swaps the stored symbols of one resource for a fresh
// aggregation result, atomically.
func (s *SymbolStore) ReplaceForResource(ctx context.Context, resource string, entries []protocol.SymbolInformation) error {
	if resource == "" {
		return errors.New("resource required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE resource = ?`, resource); err != nil {
		return fmt.Errorf("clear symbols for %s: %w", resource, err)
	}
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO symbols (
		resource, name, kind, container_name,
		start_line, start_col, end_line, end_col
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, entry := range entries {
		rng := entry.Location.Range
		if _, err := stmt.ExecContext(ctx,
			resource, entry.Name, int64(entry.Kind), entry.ContainerName,
			int64(rng.Start.Line), int64(rng.Start.Character),
			int64(rng.End.Line), int64(rng.End.Character),
		); err != nil {
			return fmt.Errorf("insert symbol %s: %w", entry.Name, err)
		}
	}
	return tx.Commit()
}

// Search returns symbols whose name contains query, ordered by name. An
// empty query matches everything up to limit.
func (s *SymbolStore) Search(ctx context.Context, query string, limit int) ([]protocol.SymbolInformation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT resource, name, kind, container_name,
	       start_line, start_col, end_line, end_col
	FROM symbols
	WHERE name LIKE '%' || ? || '%'
	ORDER BY name, resource
	LIMIT ?`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []protocol.SymbolInformation
	for rows.Next() {
		var resource, name, container string
		var kind, startLine, startCol, endLine, endCol int64
		if err := rows.Scan(&resource, &name, &kind, &container, &startLine, &startCol, &endLine, &endCol); err != nil {
			return nil, err
		}
		entries = append(entries, protocol.SymbolInformation{
			Name:          name,
			Kind:          protocol.SymbolKind(kind),
			ContainerName: container,
			Location: protocol.Location{
				URI: protocol.DocumentURI(resource),
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(startLine), Character: uint32(startCol)},
					End:   protocol.Position{Line: uint32(endLine), Character: uint32(endCol)},
				},
			},
		})
	}
	return entries, rows.Err()
}

// CountForResource reports how many symbols are stored for one resource.
func (s *SymbolStore) CountForResource(ctx context.Context, resource string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM symbols WHERE resource = ?`, resource).Scan(&count)
	return count, err
}
