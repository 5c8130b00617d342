package flowenv

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/types"
)

func TestPutDoesNotMutateOriginal(t *testing.T) {
	tb := types.NewTable()
	e := New(tb)
	e2 := e.Put("x", types.Int)

	if _, ok := e.Lookup("x"); ok {
		t.Fatal("Put must not mutate the receiver")
	}
	got, ok := e2.Lookup("x")
	if !ok || got != types.Int {
		t.Fatalf("Lookup(x) = %v, %v; want Int, true", got, ok)
	}
}

func TestCloneIndependence(t *testing.T) {
	tb := types.NewTable()
	e := New(tb).Put("x", types.Int)
	c := e.Clone()
	c2 := c.Put("y", types.String)

	if _, ok := e.Lookup("y"); ok {
		t.Fatal("mutating a clone's descendant must not affect the original")
	}
	if _, ok := c.Lookup("y"); ok {
		t.Fatal("Put on a clone must not mutate the clone itself")
	}
	if got, _ := c2.Lookup("x"); got != types.Int {
		t.Fatal("clone must carry over bindings present at clone time")
	}
}

func TestJoinUnionsCommonKeys(t *testing.T) {
	tb := types.NewTable()
	a := New(tb).Put("x", types.Int)
	b := New(tb).Put("x", types.String)

	j := Join(a, b)
	got, ok := j.Lookup("x")
	if !ok {
		t.Fatal("x must survive the join, bound in both branches")
	}
	want := tb.NewUnion(types.Int, types.String)
	if got != want {
		t.Fatalf("Lookup(x) = %v, want %v", got, want)
	}
}

func TestJoinDropsKeysNotInBothBranches(t *testing.T) {
	tb := types.NewTable()
	a := New(tb).Put("x", types.Int).Put("onlyA", types.Bool)
	b := New(tb).Put("x", types.Int)

	j := Join(a, b)
	if _, ok := j.Lookup("onlyA"); ok {
		t.Fatal("a name bound in only one branch must not survive the join")
	}
	if got, _ := j.Lookup("x"); got != types.Int {
		t.Fatal("a name bound identically in both branches joins to that same type")
	}
}

func TestBottomAbsorbedByCounterpart(t *testing.T) {
	tb := types.NewTable()
	reachable := New(tb).Put("x", types.Int)
	unreachable := Bottom(tb)

	if Join(unreachable, reachable) != reachable {
		t.Fatal("joining bottom with a reachable env must yield the reachable env unchanged")
	}
	if Join(reachable, unreachable) != reachable {
		t.Fatal("Join must be symmetric with respect to bottom absorption")
	}
}

func TestJoinOfTwoBottomsIsBottom(t *testing.T) {
	tb := types.NewTable()
	j := Join(Bottom(tb), Bottom(tb))
	if !j.IsBottom() {
		t.Fatal("joining two unreachable branches must stay unreachable")
	}
}
