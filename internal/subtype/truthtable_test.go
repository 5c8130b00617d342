package subtype

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coldfront-lang/corefront/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestPrimitiveSubtypeTruthTable golden-tests IsSubtype over every ordered
// pair of nine of the ten primitive kinds (Void and Any included, Meta
// left out), the same
// render-a-matrix-then-snapshot approach the teacher applies to interpreter
// output in internal/interp/fixture_test.go, adapted here to a subtyping
// truth table instead of a program trace.
func TestPrimitiveSubtypeTruthTable(t *testing.T) {
	e := New()
	kinds := []*types.Type{
		types.Void, types.Any, types.Null, types.Bool, types.Byte,
		types.Int, types.Real, types.Char, types.String,
	}

	var sb strings.Builder
	for _, a := range kinds {
		for _, b := range kinds {
			fmt.Fprintf(&sb, "%-6s <: %-6s = %v\n", a, b, e.IsSubtype(a, b))
		}
	}
	snaps.MatchSnapshot(t, "primitive_subtype_truth_table", sb.String())
}
