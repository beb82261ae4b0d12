// Package taxonomy resolves raw category strings to canonical category ids.
package taxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=resolver.go -destination=../mocks/taxonomy/mock_resolver.go -package=mock_taxonomy

// ErrUnresolved is returned when a raw category has no canonical entry.
// Callers are expected to drop the offending record, not fail the request.
var ErrUnresolved = errors.New("category could not be resolved")

// Resolver maps a raw category string to a canonical category id.
type Resolver interface {
	Resolve(ctx context.Context, rawCategory string) (string, error)
}

// Category is a canonical taxonomy entry.
type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	ParentID  string `db:"parent_id"`
	IsEnabled bool   `db:"is_enabled"`
}

// DBResolver resolves categories against the category_aliases table.
type DBResolver struct {
	db *sqlx.DB
}

// NewDBResolver creates a new DBResolver.
func NewDBResolver(db *sqlx.DB) *DBResolver {
	return &DBResolver{db: db}
}

// Resolve returns the canonical category id for a raw category string.
// Returns ErrUnresolved when no alias matches.
func (r *DBResolver) Resolve(ctx context.Context, rawCategory string) (string, error) {
	if rawCategory == "" {
		return "", ErrUnresolved
	}

	var categoryID string
	err := r.db.GetContext(ctx, &categoryID,
		"SELECT category_id FROM category_aliases WHERE alias = ?", rawCategory)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnresolved
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext(category_aliases) > %w", err)
	}
	return categoryID, nil
}

// StaticResolver resolves categories from a fixed in-memory table.
// Used for tests and for degraded mode when the database is unavailable.
type StaticResolver struct {
	aliases map[string]string
}

// NewStaticResolver creates a resolver over a fixed alias table.
func NewStaticResolver(aliases map[string]string) *StaticResolver {
	copied := make(map[string]string, len(aliases))
	for alias, id := range aliases {
		copied[alias] = id
	}
	return &StaticResolver{aliases: copied}
}

// Resolve returns the canonical id for a raw category, or ErrUnresolved.
func (r *StaticResolver) Resolve(_ context.Context, rawCategory string) (string, error) {
	if id, ok := r.aliases[rawCategory]; ok {
		return id, nil
	}
	return "", ErrUnresolved
}
