package ast

import (
	"fmt"

	"github.com/coldfront-lang/corefront/internal/types"
)

// Position locates a node in the original source text. The module does not
// own a lexer (lexical analysis is an external collaborator's job) but every
// node still needs enough location information for SyntaxError/InternalFailure
// to point somewhere.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() Position
	String() string
}

// Expression is any node that produces a value. ResolvedType is nil until
// the resolver visits the node; after resolve() it is always non-nil.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
}

// Statement performs an action but does not itself produce a value.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a top-level unit: a function/method, a constant, or a type
// invariant. The code generator compiles function and method declarations
// independently (GenerateFunction/GenerateMethod); it has no lowering for
// constant or type-invariant declarations.
type Declaration interface {
	Node
	declarationNode()
}

// Pattern is a destructuring tree used by variable declarations and for-all
// loops over map sources.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr is the pre-resolution syntactic spelling of a type, as an external
// parser would have produced it. The resolver turns these into types.Type
// values via the NominalResolver and TypeAlgebra constructors.
type TypeExpr interface {
	Node
	typeExprNode()
}

// ExprBase is embedded by every concrete Expression to provide Pos(),
// ResolvedType()/SetResolvedType(), and the expressionNode marker without
// repeating the same four methods on every node (the teacher repo writes
// them out longhand per node; with the much larger node set this spec
// requires, embedding is the idiomatic Go way to keep that concern in one
// place).
type ExprBase struct {
	Position Position
	Type     *types.Type
}

func (b *ExprBase) Pos() Position                 { return b.Position }
func (b *ExprBase) ResolvedType() *types.Type      { return b.Type }
func (b *ExprBase) SetResolvedType(t *types.Type)  { b.Type = t }
func (b *ExprBase) expressionNode()               {}

// StmtBase is embedded by every concrete Statement.
type StmtBase struct {
	Position Position
}

func (b *StmtBase) Pos() Position { return b.Position }
func (b *StmtBase) statementNode() {}

// DeclBase is embedded by every concrete Declaration.
type DeclBase struct {
	Position Position
}

func (b *DeclBase) Pos() Position    { return b.Position }
func (b *DeclBase) declarationNode() {}

// PatBase is embedded by every concrete Pattern.
type PatBase struct {
	Position Position
}

func (b *PatBase) Pos() Position   { return b.Position }
func (b *PatBase) patternNode()    {}

// TypeExprBase is embedded by every concrete TypeExpr.
type TypeExprBase struct {
	Position Position
}

func (b *TypeExprBase) Pos() Position  { return b.Position }
func (b *TypeExprBase) typeExprNode()  {}
