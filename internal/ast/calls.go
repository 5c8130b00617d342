package ast

// FunctionRef names a top-level function by qualified name, used both as a
// callee in a DirectCall and as a first-class value in an IndirectCall
// target position.
type FunctionRef struct {
	ExprBase
	Name string
}

func (f *FunctionRef) String() string { return f.Name }

// MethodRef names a method on a record/interface type, qualified by the
// declaring type's name.
type MethodRef struct {
	ExprBase
	TypeName string
	Name     string
}

func (m *MethodRef) String() string { return m.TypeName + "." + m.Name }

// AbstractInvoke is the parser's unresolved `name(args)` call form. The
// Resolver rewrites it in place into DirectCall, IndirectCall, MethodCall,
// FieldIndirectCall, or (as the dynamic fallback for a field-shaped callee)
// MessageSend depending on what `name` turns out to refer to (§4.4
// "abstract invoke").
type AbstractInvoke struct {
	ExprBase
	Callee Expression
	Args   []Expression
}

func (a *AbstractInvoke) String() string { return a.Callee.String() + "(" + joinExprs(a.Args, ", ") + ")" }

// DirectCall invokes a statically-known top-level function.
type DirectCall struct {
	ExprBase
	Callee *FunctionRef
	Args   []Expression
}

func (d *DirectCall) String() string { return d.Callee.String() + "(" + joinExprs(d.Args, ", ") + ")" }

// IndirectCall invokes a function-typed value held in a variable or
// produced by an expression (the `fnReg` operand of IR's IndirectInvoke).
type IndirectCall struct {
	ExprBase
	Callee Expression
	Args   []Expression
}

func (i *IndirectCall) String() string {
	return i.Callee.String() + "(" + joinExprs(i.Args, ", ") + ")"
}

// MethodCall invokes a method directly resolved against a record-typed
// receiver (`recv.Method(args)` where Method is statically known).
type MethodCall struct {
	ExprBase
	Receiver Expression
	Method   *MethodRef
	Args     []Expression
}

func (m *MethodCall) String() string {
	return m.Receiver.String() + "." + m.Method.Name + "(" + joinExprs(m.Args, ", ") + ")"
}

// FieldIndirectCall invokes a function-typed field read off a record
// receiver (`recv.field(args)` where field holds a function value).
type FieldIndirectCall struct {
	ExprBase
	Receiver Expression
	Field    string
	Args     []Expression
}

func (f *FieldIndirectCall) String() string {
	return f.Receiver.String() + "." + f.Field + "(" + joinExprs(f.Args, ", ") + ")"
}

// MessageSend invokes a method whose exact override is chosen dynamically
// by the receiver's runtime type (the last fallback in the abstract-invoke
// disambiguation chain once static resolution fails to pin down a target).
type MessageSend struct {
	ExprBase
	Receiver Expression
	Selector string
	Args     []Expression
}

func (m *MessageSend) String() string {
	return m.Receiver.String() + "." + m.Selector + "(" + joinExprs(m.Args, ", ") + ")"
}
