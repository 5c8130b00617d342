// Package ast defines the abstract syntax tree node types consumed by the
// resolver and code generator.
//
// Parsing itself is out of scope for this module (an external collaborator
// hands us a tree already built); the node shapes here exist to carry a
// mutable resolved-type attribute and to let the resolver rewrite an
// abstract node (IndexOf, LengthOf, an unqualified call) into the concrete
// variant the operational semantics actually dictate, in place, without
// disturbing source position information.
package ast
