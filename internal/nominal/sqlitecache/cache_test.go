package sqlitecache

import (
	"path/filepath"
	"testing"

	"github.com/coldfront-lang/corefront/internal/nominal"
	"github.com/coldfront-lang/corefront/internal/types"
)

// TestCacheMemoizesExpansion exercises Cache the way a long-lived build
// daemon would: open it in front of a MemoryResolver, expand the same name
// twice, and confirm the rendered form was actually persisted to SQLite
// rather than just passed through.
func TestCacheMemoizesExpansion(t *testing.T) {
	inner := nominal.NewMemoryResolver()
	inner.Define("Pair", false, func() *types.Type {
		tb := types.NewTable()
		return tb.NewRecord([]types.RecordField{
			{Name: "x", Type: types.Int},
			{Name: "y", Type: types.Int},
		}, false)
	})

	dbPath := filepath.Join(t.TempDir(), "nominal.db")
	c, err := Open(dbPath, inner, "v1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if _, ok := c.LastRendered("Pair"); ok {
		t.Fatal("LastRendered should report nothing before the first Expand")
	}

	want := inner.Expand("Pair").String()
	got := c.Expand("Pair").String()
	if got != want {
		t.Fatalf("Expand returned %q, want %q", got, want)
	}

	rendered, ok := c.LastRendered("Pair")
	if !ok {
		t.Fatal("LastRendered should report the expansion persisted by Expand")
	}
	if rendered != want {
		t.Fatalf("LastRendered = %q, want %q", rendered, want)
	}

	if c.IsOpen("Pair") != inner.IsOpen("Pair") {
		t.Fatal("IsOpen should pass through to the wrapped resolver")
	}

	// A second Cache instance opened against the same file picks up the
	// row the first instance wrote, without ever calling Expand again —
	// this is the whole point of persisting across compiler invocations.
	reopened, err := Open(dbPath, inner, "v1")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if rendered, ok := reopened.LastRendered("Pair"); !ok || rendered != want {
		t.Fatalf("reopened LastRendered = (%q, %v), want (%q, true)", rendered, ok, want)
	}

	// A different source version must not see the stale row.
	other, err := Open(dbPath, inner, "v2")
	if err != nil {
		t.Fatalf("open v2: %v", err)
	}
	defer other.Close()
	if _, ok := other.LastRendered("Pair"); ok {
		t.Fatal("LastRendered must be scoped by source version")
	}
}
