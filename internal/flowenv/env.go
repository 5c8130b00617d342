package flowenv

import "github.com/coldfront-lang/corefront/internal/types"

// Env is an immutable-semantics name -> type mapping. No method mutates its
// receiver; Put returns a new value and Join returns either a new value or
// one of its unchanged operands (when the other is bottom), so a caller can
// hold onto an Env across a branch point and keep using the original.
type Env struct {
	table  *types.Table
	vars   map[string]*types.Type
	bottom bool
}

// New returns an empty environment. table supplies the union constructor
// Join needs when merging two branches' types for the same name.
func New(table *types.Table) *Env {
	return &Env{table: table, vars: map[string]*types.Type{}}
}

// Bottom returns the distinguished unreachable-branch environment: the
// sentinel absorbed by whatever it is Joined against (e.g. the "then" side
// of an `if` whose condition the Resolver proved always false).
func Bottom(table *types.Table) *Env {
	return &Env{table: table, bottom: true}
}

// IsBottom reports whether e represents an unreachable branch.
func (e *Env) IsBottom() bool { return e.bottom }

// Clone returns an independent copy of e; mutating the copy's Put chain
// never affects e.
func (e *Env) Clone() *Env {
	if e.bottom {
		return Bottom(e.table)
	}
	cp := make(map[string]*types.Type, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}
	return &Env{table: e.table, vars: cp}
}

// Lookup returns the current type bound to name, if any.
func (e *Env) Lookup(name string) (*types.Type, bool) {
	if e.bottom {
		return nil, false
	}
	t, ok := e.vars[name]
	return t, ok
}

// Put returns a new environment identical to e except name is (re)bound to
// t. e itself is left untouched.
func (e *Env) Put(name string, t *types.Type) *Env {
	next := e.Clone()
	if next.bottom {
		// Binding a name in an unreachable branch still needs somewhere to
		// put it so later lookups along that (dead) path don't panic; give
		// it a live, empty map rather than pretending it's still bottom.
		next.bottom = false
		next.vars = map[string]*types.Type{}
	}
	next.vars[name] = t
	return next
}

// Join computes the merge-point environment for two branches: for each name
// bound in both a and b, the joined type is the union of the two branch
// types; a name bound in only one branch is dropped (it did not survive
// both paths to the merge point). A bottom operand is absorbed by its
// (reachable) counterpart; joining two bottoms yields bottom.
func Join(a, b *Env) *Env {
	if a.bottom {
		return b
	}
	if b.bottom {
		return a
	}
	table := a.table
	joined := New(table)
	for name, ta := range a.vars {
		tb, ok := b.vars[name]
		if !ok {
			continue
		}
		joined.vars[name] = table.NewUnion(ta, tb)
	}
	return joined
}
