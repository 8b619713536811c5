// Package asset persists the authorized engagement targets in sqlite.
package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// Asset is a target the operator has put in scope.
type Asset struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// KnownTypes are the accepted asset type values.
var KnownTypes = []string{"domain", "ip", "network", "url"}

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	type TEXT NOT NULL,
	value TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store wraps the sqlite connection holding the asset table.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the asset database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, types.WrapError(types.ASSET_DB_OPEN_FAILED, "opening asset database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, types.WrapError(types.ASSET_DB_OPEN_FAILED, "pinging asset database", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, types.WrapError(types.ASSET_DB_OPEN_FAILED, "creating asset schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts an asset. The name must be unique and the type known.
func (s *Store) Add(ctx context.Context, name, assetType, value string) (*Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(value) == "" {
		return nil, types.NewError(types.ASSET_INVALID, "asset name and value are required")
	}
	if !validType(assetType) {
		return nil, types.NewError(types.ASSET_INVALID,
			fmt.Sprintf("unknown asset type %q, expected one of %s", assetType, strings.Join(KnownTypes, ", ")))
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (name, type, value, created_at) VALUES (?, ?, ?, ?)`,
		name, assetType, value, now)
	if err != nil {
		return nil, types.WrapError(types.ASSET_QUERY_FAILED, "inserting asset", err)
	}
	id, _ := res.LastInsertId()
	return &Asset{ID: id, Name: name, Type: assetType, Value: value, CreatedAt: now}, nil
}

// List returns all assets, oldest first.
func (s *Store) List(ctx context.Context) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, value, created_at FROM assets ORDER BY id`)
	if err != nil {
		return nil, types.WrapError(types.ASSET_QUERY_FAILED, "listing assets", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Value, &a.CreatedAt); err != nil {
			return nil, types.WrapError(types.ASSET_QUERY_FAILED, "scanning asset row", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Find returns the asset with the given name.
func (s *Store) Find(ctx context.Context, name string) (*Asset, error) {
	var a Asset
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, value, created_at FROM assets WHERE name = ?`, name).
		Scan(&a.ID, &a.Name, &a.Type, &a.Value, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NewError(types.ASSET_NOT_FOUND, fmt.Sprintf("asset %q not found", name))
	}
	if err != nil {
		return nil, types.WrapError(types.ASSET_QUERY_FAILED, "finding asset", err)
	}
	return &a, nil
}

// Remove deletes the asset with the given name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE name = ?`, name)
	if err != nil {
		return types.WrapError(types.ASSET_QUERY_FAILED, "removing asset", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.NewError(types.ASSET_NOT_FOUND, fmt.Sprintf("asset %q not found", name))
	}
	return nil
}

// Values returns the raw target values of every asset, for seeding the
// policy scope shown to the planner.
func (s *Store) Values(ctx context.Context) ([]string, error) {
	assets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(assets))
	for _, a := range assets {
		values = append(values, a.Value)
	}
	return values, nil
}

func validType(t string) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}
