package ir

// Op enumerates the instruction kinds listed in §3's IR CodeBlock entry.
type Op uint8

const (
	OpConst Op = iota
	OpAssign
	OpBinArithOp
	OpBinSetOp
	OpBinListOp
	OpBinStringOp
	OpUnArithOp
	OpInvert
	OpLengthOf
	OpIndexOf
	OpSubList
	OpSubString
	OpFieldLoad
	OpTupleLoad
	OpNewRecord
	OpNewTuple
	OpNewList
	OpNewSet
	OpNewMap
	OpNewObject
	OpDereference
	OpConvert
	OpIf
	OpIfIs
	OpSwitch
	OpGoto
	OpLabel
	OpLoop
	OpLoopEnd
	OpForAll
	OpTryCatch
	OpTryEnd
	OpInvoke
	OpIndirectInvoke
	OpLambda
	OpAssert
	OpThrow
	OpDebug
	OpReturn
	OpUpdate
	OpNop
)

var opNames = [...]string{
	"Const", "Assign", "BinArithOp", "BinSetOp", "BinListOp", "BinStringOp",
	"UnArithOp", "Invert", "LengthOf", "IndexOf", "SubList", "SubString",
	"FieldLoad", "TupleLoad", "NewRecord", "NewTuple", "NewList", "NewSet",
	"NewMap", "NewObject", "Dereference", "Convert", "If", "IfIs", "Switch",
	"Goto", "Label", "Loop", "LoopEnd", "ForAll", "TryCatch", "TryEnd",
	"Invoke", "IndirectInvoke", "Lambda", "Assert", "Throw", "Debug",
	"Return", "Update", "Nop",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "?"
}

// ArithOp is the sub-opcode for OpBinArithOp/OpUnArithOp.
type ArithOp uint8

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
	ArithNeg
	ArithNumerator
	ArithDenominator
)

var arithOpNames = [...]string{
	"ADD", "SUB", "MUL", "DIV", "MOD", "NEG", "NUMERATOR", "DENOMINATOR",
}

func (a ArithOp) String() string {
	if int(a) < len(arithOpNames) {
		return arithOpNames[a]
	}
	return "?"
}

// SetOp is the sub-opcode for OpBinSetOp.
type SetOp uint8

const (
	SetUnion SetOp = iota
	SetIntersect
	SetDifference
	SetSubset
	SetSubsetEq
	SetElementOf
)

var setOpNames = [...]string{"UNION", "INTERSECT", "DIFF", "SUBSET", "SUBSETEQ", "ELEMENTOF"}

func (s SetOp) String() string {
	if int(s) < len(setOpNames) {
		return setOpNames[s]
	}
	return "?"
}

// StringOp is the sub-opcode for OpBinStringOp.
type StringOp uint8

const (
	StringAppend StringOp = iota // string + string
	StringLeftAppend              // char + string
	StringRightAppend             // string + char
)

var stringOpNames = [...]string{"APPEND", "LEFT_APPEND", "RIGHT_APPEND"}

func (s StringOp) String() string {
	if int(s) < len(stringOpNames) {
		return stringOpNames[s]
	}
	return "?"
}

// Cmp is the comparison predicate for OpIf and the materialized comparison
// BinOps (§4.5.3).
type Cmp uint8

const (
	CmpEq Cmp = iota
	CmpNeq
	CmpLt
	CmpLte
	CmpGt
	CmpGte
)

var cmpNames = [...]string{"EQ", "NEQ", "LT", "LTEQ", "GT", "GTEQ"}

func (c Cmp) String() string {
	if int(c) < len(cmpNames) {
		return cmpNames[c]
	}
	return "?"
}
