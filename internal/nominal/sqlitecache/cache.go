// Package sqlitecache is an optional NominalResolver decorator that
// persists the *textual* form of each nominal expansion in a SQLite table,
// so that repeated compilations of the same module set (e.g. a long-lived
// build daemon recompiling one changed declaration at a time) can look up
// what a name last expanded to. Every Expand still calls the wrapped
// expander; the stored text is never used in place of that call.
//
// This is not load-bearing for the core algorithm — internal/nominal.MemoryResolver
// is sufficient on its own and is what every other package in this module
// depends on directly. This package exists for very large nominal graphs
// shared across many short-lived compiler invocations, matching the
// database-backed caching idiom the rest of the retrieval corpus (funxy,
// morfx) uses for its own persistent state.
package sqlitecache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/coldfront-lang/corefront/internal/types"
)

// Cache wraps a types.NominalExpander, recording each expansion's rendered
// String() form in a SQLite-backed table keyed by (name, sourceVersion).
// The cached text is informational/debug-only (it is never parsed back into
// a Type); the Type itself always comes from the wrapped expander, so a
// cache hit or miss never changes subtype-engine behavior, only whether a
// diagnostic "what did we last expand this to" lookup is fast.
type Cache struct {
	db     *sql.DB
	inner  types.NominalExpander
	source string
}

// Open opens (creating if necessary) a SQLite database at path and wraps
// inner. sourceVersion should change whenever the nominal declarations
// backing inner change (e.g. a content hash of the module set), so stale
// rows are naturally ignored rather than requiring an explicit migration.
func Open(path string, inner types.NominalExpander, sourceVersion string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitecache: open %s: %w", path, err)
	}
	const ddl = `CREATE TABLE IF NOT EXISTS nominal_expansions (
		name TEXT NOT NULL,
		source_version TEXT NOT NULL,
		rendered TEXT NOT NULL,
		PRIMARY KEY (name, source_version)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitecache: create table: %w", err)
	}
	return &Cache{db: db, inner: inner, source: sourceVersion}, nil
}

// Close releases the underlying SQLite connection.
func (c *Cache) Close() error { return c.db.Close() }

// Expand delegates to the wrapped expander and opportunistically records the
// rendered form; cache misses/errors never fail the expansion itself.
func (c *Cache) Expand(name string) *types.Type {
	t := c.inner.Expand(name)
	_, _ = c.db.Exec(
		`INSERT OR REPLACE INTO nominal_expansions(name, source_version, rendered) VALUES (?, ?, ?)`,
		name, c.source, t.String(),
	)
	return t
}

// IsOpen delegates directly; openness is cheap enough it is never cached.
func (c *Cache) IsOpen(name string) bool { return c.inner.IsOpen(name) }

// LastRendered returns the most recently cached textual expansion of name
// for the current source version, if any — used by diagnostics/tracing, not
// by the core algorithm.
func (c *Cache) LastRendered(name string) (string, bool) {
	row := c.db.QueryRow(
		`SELECT rendered FROM nominal_expansions WHERE name = ? AND source_version = ?`,
		name, c.source,
	)
	var rendered string
	if err := row.Scan(&rendered); err != nil {
		return "", false
	}
	return rendered, true
}

var _ types.NominalExpander = (*Cache)(nil)
