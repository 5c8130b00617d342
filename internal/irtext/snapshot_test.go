package irtext

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRenderSnapshot golden-tests the full textual disassembly of a small
// declaration, the same go-snaps-per-rendered-dump pattern the teacher's
// internal/interp/fixture_test.go uses for interpreter output.
func TestRenderSnapshot(t *testing.T) {
	snaps.MatchSnapshot(t, "abs_disassembly", Render(sampleDecl()))
}
