package ast

import (
	"pyparse/internal/source"
)

type StmtKind uint8

const (
	// simple statements
	StmtPass StmtKind = iota
	StmtDelete
	StmtExpr
	StmtAssign
	StmtAugAssign
	StmtAnnAssign
	StmtBreak
	StmtContinue
	StmtReturn
	StmtRaise
	StmtImport
	StmtImportFrom
	StmtGlobal
	StmtNonlocal
	StmtAssert

	// compound statements
	StmtIf
	StmtWhile
	StmtFor
	StmtFunctionDef
	StmtClassDef
	StmtWith
	StmtTry

	stmtKindCount
)

type stmtKindInfo struct {
	name string
	// carries marks kinds with a directive slot
	carries bool
}

var stmtKinds = [stmtKindCount]stmtKindInfo{
	StmtPass:       {"Pass", true},
	StmtDelete:     {"Delete", true},
	StmtExpr:       {"Expr", true},
	StmtAssign:     {"Assign", true},
	StmtAugAssign:  {"AugAssign", true},
	StmtAnnAssign:  {"AnnAssign", true},
	StmtBreak:      {"Break", true},
	StmtContinue:   {"Continue", true},
	StmtReturn:     {"Return", true},
	StmtRaise:      {"Raise", true},
	StmtImport:     {"Import", true},
	StmtImportFrom: {"ImportFrom", true},
	StmtGlobal:     {"Global", true},
	StmtNonlocal:   {"Nonlocal", true},
	StmtAssert:     {"Assert", true},

	StmtIf:          {"If", false},
	StmtWhile:       {"While", false},
	StmtFor:         {"For", false},
	StmtFunctionDef: {"FunctionDef", false},
	StmtClassDef:    {"ClassDef", false},
	StmtWith:        {"With", false},
	StmtTry:         {"Try", false},
}

// StmtKinds returns every statement kind in declaration order.
func StmtKinds() []StmtKind {
	out := make([]StmtKind, stmtKindCount)
	for i := range out {
		out[i] = StmtKind(i)
	}
	return out
}

func (k StmtKind) String() string {
	if k < stmtKindCount {
		return stmtKinds[k].name
	}
	return "Stmt(?)"
}

// CarriesDirectives reports whether statements of this kind own a directive slot.
// Exactly the simple statements do.
func (k StmtKind) CarriesDirectives() bool {
	return k < stmtKindCount && stmtKinds[k].carries
}

// IsCompound reports whether the kind introduces nested suites.
func (k StmtKind) IsCompound() bool {
	return k < stmtKindCount && !stmtKinds[k].carries
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	Config  ConfigID // NoConfigID for compound kinds
}

// StmtExprData is shared by Expr and Return; Value may be NoExprID for a bare return.
type StmtExprData struct {
	Value ExprID
}

type StmtDeleteData struct {
	Targets []ExprID
}

// StmtAssignData: `t1 = t2 = value`.
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID // optional
	Simple     bool   // target is a plain name, not parenthesized
}

type StmtRaiseData struct {
	Exc   ExprID
	Cause ExprID
}

type ImportAlias struct {
	Name   source.StringID // dotted name or "*"
	AsName source.StringID
	Span   source.Span
}

// StmtImportData is shared by Import and ImportFrom. Module and Level are
// meaningful only for ImportFrom; Module is NoStringID for `from . import x`.
type StmtImportData struct {
	Module source.StringID
	Level  uint32
	Names  []ImportAlias
}

// StmtNamesData is shared by Global and Nonlocal.
type StmtNamesData struct {
	Names []source.StringID
}

type StmtAssertData struct {
	Test ExprID
	Msg  ExprID
}

// StmtCondData is shared by If and While. `elif` chains nest an If in Orelse.
type StmtCondData struct {
	Test   ExprID
	Body   []StmtID
	Orelse []StmtID
}

type StmtForData struct {
	Target  ExprID
	Iter    ExprID
	Body    []StmtID
	Orelse  []StmtID
	IsAsync bool
}

type StmtFunctionDefData struct {
	Name       source.StringID
	Args       Arguments
	Body       []StmtID
	Decorators []ExprID
	Returns    ExprID
	IsAsync    bool
}

type StmtClassDefData struct {
	Name       source.StringID
	Bases      []ExprID
	Keywords   []Keyword
	Body       []StmtID
	Decorators []ExprID
}

type WithItem struct {
	Context ExprID
	Vars    ExprID // optional
}

type StmtWithData struct {
	Items   []WithItem
	Body    []StmtID
	IsAsync bool
}

type ExceptHandler struct {
	Type ExprID          // optional
	Name source.StringID // optional
	Body []StmtID
	Span source.Span
}

type StmtTryData struct {
	Body      []StmtID
	Handlers  []ExceptHandler
	Orelse    []StmtID
	Finalbody []StmtID
}
