package nominal

import (
	"fmt"
	"sync"

	"github.com/coldfront-lang/corefront/internal/types"
)

// Definition is how a caller registers a nominal name: Structural is a lazy
// thunk (called at most once, then memoized) so that mutually recursive
// nominal types can be declared before either's body is fully built — the
// thunk for A is free to mention B's nominal Type value without forcing B's
// expansion.
type Definition struct {
	Structural func() *types.Type
	Open       bool
}

type entry struct {
	def      Definition
	resolved *types.Type
}

// MemoryResolver is the default, in-process NominalResolver implementation,
// grounded on the teacher's symbol-table convention of a case-sensitive
// qualified-name map guarded by a single mutex.
type MemoryResolver struct {
	mu   sync.Mutex
	defs map[string]*entry
}

// NewMemoryResolver returns an empty resolver ready for Define calls.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{defs: make(map[string]*entry)}
}

// Define registers (or replaces) the definition for a qualified name.
func (r *MemoryResolver) Define(name string, open bool, structural func() *types.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[name] = &entry{def: Definition{Structural: structural, Open: open}}
}

// Expand returns the memoized structural expansion of name, computing it on
// first use via the registered thunk.
func (r *MemoryResolver) Expand(name string) *types.Type {
	r.mu.Lock()
	e, ok := r.defs[name]
	r.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("nominal: expand of undeclared type %q — resolver should have rejected this name before the subtype engine ever saw it", name))
	}
	if e.resolved == nil {
		e.resolved = e.def.Structural()
	}
	return e.resolved
}

// IsOpen reports the declared openness of name without forcing expansion.
func (r *MemoryResolver) IsOpen(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.defs[name]
	if !ok {
		panic(fmt.Sprintf("nominal: IsOpen of undeclared type %q", name))
	}
	return e.def.Open
}

// Has reports whether name has been declared, for the resolver's name-
// lookup path (an UnknownName SyntaxError is raised before ever touching
// the subtype engine when this is false).
func (r *MemoryResolver) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.defs[name]
	return ok
}

var _ types.NominalExpander = (*MemoryResolver)(nil)
