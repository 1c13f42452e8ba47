package ast

import (
	"pyparse/internal/source"
)

type ExprKind uint8

const (
	ExprName ExprKind = iota
	ExprConst
	ExprBoolOp
	ExprBinary
	ExprUnary
	ExprCompare
	ExprCall
	ExprAttribute
	ExprSubscript
	ExprSlice
	ExprStarred
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprListComp
	ExprSetComp
	ExprDictComp
	ExprGenerator
	ExprLambda
	ExprIfExp
	ExprYield
	ExprYieldFrom
	ExprAwait
	ExprNamed
	exprKindCount
)

var exprKindNames = [...]string{
	ExprName:      "Name",
	ExprConst:     "Constant",
	ExprBoolOp:    "BoolOp",
	ExprBinary:    "BinOp",
	ExprUnary:     "UnaryOp",
	ExprCompare:   "Compare",
	ExprCall:      "Call",
	ExprAttribute: "Attribute",
	ExprSubscript: "Subscript",
	ExprSlice:     "Slice",
	ExprStarred:   "Starred",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprListComp:  "ListComp",
	ExprSetComp:   "SetComp",
	ExprDictComp:  "DictComp",
	ExprGenerator: "GeneratorExp",
	ExprLambda:    "Lambda",
	ExprIfExp:     "IfExp",
	ExprYield:     "Yield",
	ExprYieldFrom: "YieldFrom",
	ExprAwait:     "Await",
	ExprNamed:     "NamedExpr",
}

func (k ExprKind) String() string {
	if k < exprKindCount {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprNameData struct {
	Name source.StringID
}

type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstTrue
	ConstFalse
	ConstEllipsis
	ConstInt
	ConstFloat
	ConstImag
	ConstStr
	ConstBytes
)

func (k ConstKind) String() string {
	switch k {
	case ConstNone:
		return "None"
	case ConstTrue:
		return "True"
	case ConstFalse:
		return "False"
	case ConstEllipsis:
		return "Ellipsis"
	case ConstInt:
		return "int"
	case ConstFloat:
		return "float"
	case ConstImag:
		return "complex"
	case ConstStr:
		return "str"
	case ConstBytes:
		return "bytes"
	}
	return "?"
}

// ExprConstData keeps literals in source form. Implicitly concatenated
// strings keep every piece in Parts; Raw joins them with a space.
type ExprConstData struct {
	Kind  ConstKind
	Raw   source.StringID
	Parts []source.StringID
}

type ExprBoolOpData struct {
	Op     BoolOp
	Values []ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprCompareData is a chain `Left Ops[0] Comparators[0] Ops[1] ...`.
type ExprCompareData struct {
	Left        ExprID
	Ops         []CmpOp
	Comparators []ExprID
}

// Keyword is `name=value` in a call or class header; Name == NoStringID means `**value`.
type Keyword struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

type ExprCallData struct {
	Func     ExprID
	Args     []ExprID // positional, *args appear as ExprStarred
	Keywords []Keyword
}

type ExprAttributeData struct {
	Value ExprID
	Attr  source.StringID
}

type ExprSubscriptData struct {
	Value ExprID
	Index ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

// ExprValueData is shared by Starred, Yield, YieldFrom and Await.
type ExprValueData struct {
	Value ExprID
}

// ExprSeqData is shared by Tuple, List and Set.
type ExprSeqData struct {
	Elts []ExprID
}

// ExprDictData pairs Keys[i] with Values[i]; a NoExprID key means `**Values[i]`.
type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

type Comprehension struct {
	Target  ExprID
	Iter    ExprID
	Ifs     []ExprID
	IsAsync bool
}

// ExprCompData is shared by ListComp, SetComp, DictComp and GeneratorExp.
// Value is set only for DictComp.
type ExprCompData struct {
	Elt        ExprID
	Value      ExprID
	Generators []Comprehension
}

type Arg struct {
	Name       source.StringID
	Annotation ExprID
	Default    ExprID
	Span       source.Span
}

// Arguments is a def or lambda parameter list.
type Arguments struct {
	PosOnly []Arg
	Args    []Arg
	Vararg  *Arg
	KwOnly  []Arg
	Kwarg   *Arg
}

type ExprLambdaData struct {
	Args Arguments
	Body ExprID
}

type ExprIfExpData struct {
	Test   ExprID
	Body   ExprID
	Orelse ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}
