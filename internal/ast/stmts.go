package ast

import (
	"fmt"
	"slices"

	"pyparse/internal/source"
)

// Stmts manages allocation of statements and their directive slots.
type Stmts struct {
	Arena      *Arena[Stmt]
	Configs    *Arena[StmtConfig]
	Values     *Arena[StmtExprData]
	Deletes    *Arena[StmtDeleteData]
	Assigns    *Arena[StmtAssignData]
	AugAssigns *Arena[StmtAugAssignData]
	AnnAssigns *Arena[StmtAnnAssignData]
	Raises     *Arena[StmtRaiseData]
	Imports    *Arena[StmtImportData]
	NameLists  *Arena[StmtNamesData]
	Asserts    *Arena[StmtAssertData]
	Conds      *Arena[StmtCondData]
	Fors       *Arena[StmtForData]
	Funcs      *Arena[StmtFunctionDefData]
	Classes    *Arena[StmtClassDefData]
	Withs      *Arena[StmtWithData]
	Trys       *Arena[StmtTryData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Configs:    NewArena[StmtConfig](capHint),
		Values:     NewArena[StmtExprData](capHint),
		Deletes:    NewArena[StmtDeleteData](small),
		Assigns:    NewArena[StmtAssignData](capHint),
		AugAssigns: NewArena[StmtAugAssignData](small),
		AnnAssigns: NewArena[StmtAnnAssignData](small),
		Raises:     NewArena[StmtRaiseData](small),
		Imports:    NewArena[StmtImportData](small),
		NameLists:  NewArena[StmtNamesData](small),
		Asserts:    NewArena[StmtAssertData](small),
		Conds:      NewArena[StmtCondData](small),
		Fors:       NewArena[StmtForData](small),
		Funcs:      NewArena[StmtFunctionDefData](small),
		Classes:    NewArena[StmtClassDefData](small),
		Withs:      NewArena[StmtWithData](small),
		Trys:       NewArena[StmtTryData](small),
	}
}

// New allocates a statement; simple kinds get an empty directive slot.
// Payload-bearing kinds should use the typed constructors below.
func (s *Stmts) New(kind StmtKind, span source.Span, payload uint32) StmtID {
	stmt := Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}
	if kind.CarriesDirectives() {
		stmt.Config = ConfigID(s.Configs.Allocate(StmtConfig{}))
	}
	return StmtID(s.Arena.Allocate(stmt))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, arena *Arena[T], id StmtID, kinds ...StmtKind) (*T, bool) {
	stmt := s.Get(id)
	if stmt == nil || !slices.Contains(kinds, stmt.Kind) {
		return nil, false
	}
	return arena.Get(uint32(stmt.Payload)), true
}

// ===== directive slot =====

// Config returns the directive slot of a simple statement.
func (s *Stmts) Config(id StmtID) (*StmtConfig, bool) {
	stmt := s.Get(id)
	if stmt == nil || !stmt.Config.IsValid() {
		return nil, false
	}
	return s.Configs.Get(uint32(stmt.Config)), true
}

// Directives returns the attached list; nil for compound statements.
func (s *Stmts) Directives(id StmtID) []Directive {
	cfg, ok := s.Config(id)
	if !ok {
		return nil
	}
	return cfg.Directives
}

// SetDirectives writes the slot exactly once.
func (s *Stmts) SetDirectives(id StmtID, ds []Directive) error {
	stmt := s.Get(id)
	if stmt == nil {
		return fmt.Errorf("statement %d: %w", id, ErrNoDirectiveSlot)
	}
	cfg, ok := s.Config(id)
	if !ok {
		return fmt.Errorf("%s statement %d: %w", stmt.Kind, id, ErrNoDirectiveSlot)
	}
	if cfg.Attached {
		return fmt.Errorf("%s statement %d: %w", stmt.Kind, id, ErrAlreadyAttached)
	}
	cfg.Directives = slices.Clone(ds)
	if cfg.Directives == nil {
		cfg.Directives = []Directive{}
	}
	cfg.Attached = true
	return nil
}

// ===== simple statements =====

// NewBare builds Pass, Break and Continue.
func (s *Stmts) NewBare(kind StmtKind, span source.Span) StmtID {
	return s.New(kind, span, 0)
}

// NewValue builds Expr and Return statements.
func (s *Stmts) NewValue(kind StmtKind, span source.Span, value ExprID) StmtID {
	return s.New(kind, span, s.Values.Allocate(StmtExprData{Value: value}))
}

func (s *Stmts) Value(id StmtID) (*StmtExprData, bool) {
	return stmtPayload(s, s.Values, id, StmtExpr, StmtReturn)
}

func (s *Stmts) NewDelete(span source.Span, targets []ExprID) StmtID {
	return s.New(StmtDelete, span, s.Deletes.Allocate(StmtDeleteData{Targets: slices.Clone(targets)}))
}

func (s *Stmts) Delete(id StmtID) (*StmtDeleteData, bool) {
	return stmtPayload(s, s.Deletes, id, StmtDelete)
}

func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	return s.New(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Targets: slices.Clone(targets), Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	return stmtPayload(s, s.Assigns, id, StmtAssign)
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	return s.New(StmtAugAssign, span, s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value}))
}

func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	return stmtPayload(s, s.AugAssigns, id, StmtAugAssign)
}

func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID, simple bool) StmtID {
	payload := s.AnnAssigns.Allocate(StmtAnnAssignData{
		Target:     target,
		Annotation: annotation,
		Value:      value,
		Simple:     simple,
	})
	return s.New(StmtAnnAssign, span, payload)
}

func (s *Stmts) AnnAssign(id StmtID) (*StmtAnnAssignData, bool) {
	return stmtPayload(s, s.AnnAssigns, id, StmtAnnAssign)
}

func (s *Stmts) NewRaise(span source.Span, exc, cause ExprID) StmtID {
	return s.New(StmtRaise, span, s.Raises.Allocate(StmtRaiseData{Exc: exc, Cause: cause}))
}

func (s *Stmts) Raise(id StmtID) (*StmtRaiseData, bool) {
	return stmtPayload(s, s.Raises, id, StmtRaise)
}

func (s *Stmts) NewImport(span source.Span, names []ImportAlias) StmtID {
	return s.New(StmtImport, span, s.Imports.Allocate(StmtImportData{Names: slices.Clone(names)}))
}

func (s *Stmts) NewImportFrom(span source.Span, module source.StringID, level uint32, names []ImportAlias) StmtID {
	payload := s.Imports.Allocate(StmtImportData{Module: module, Level: level, Names: slices.Clone(names)})
	return s.New(StmtImportFrom, span, payload)
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	return stmtPayload(s, s.Imports, id, StmtImport, StmtImportFrom)
}

// NewNames builds Global and Nonlocal.
func (s *Stmts) NewNames(kind StmtKind, span source.Span, names []source.StringID) StmtID {
	return s.New(kind, span, s.NameLists.Allocate(StmtNamesData{Names: slices.Clone(names)}))
}

func (s *Stmts) Names(id StmtID) (*StmtNamesData, bool) {
	return stmtPayload(s, s.NameLists, id, StmtGlobal, StmtNonlocal)
}

func (s *Stmts) NewAssert(span source.Span, test, msg ExprID) StmtID {
	return s.New(StmtAssert, span, s.Asserts.Allocate(StmtAssertData{Test: test, Msg: msg}))
}

func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	return stmtPayload(s, s.Asserts, id, StmtAssert)
}

// ===== compound statements =====

// NewCond builds If and While.
func (s *Stmts) NewCond(kind StmtKind, span source.Span, test ExprID, body, orelse []StmtID) StmtID {
	payload := s.Conds.Allocate(StmtCondData{Test: test, Body: body, Orelse: orelse})
	return s.New(kind, span, payload)
}

func (s *Stmts) Cond(id StmtID) (*StmtCondData, bool) {
	return stmtPayload(s, s.Conds, id, StmtIf, StmtWhile)
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.New(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	return stmtPayload(s, s.Fors, id, StmtFor)
}

func (s *Stmts) NewFunctionDef(span source.Span, data StmtFunctionDefData) StmtID {
	return s.New(StmtFunctionDef, span, s.Funcs.Allocate(data))
}

func (s *Stmts) FunctionDef(id StmtID) (*StmtFunctionDefData, bool) {
	return stmtPayload(s, s.Funcs, id, StmtFunctionDef)
}

func (s *Stmts) NewClassDef(span source.Span, data StmtClassDefData) StmtID {
	return s.New(StmtClassDef, span, s.Classes.Allocate(data))
}

func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	return stmtPayload(s, s.Classes, id, StmtClassDef)
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.New(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	return stmtPayload(s, s.Withs, id, StmtWith)
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.New(StmtTry, span, s.Trys.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	return stmtPayload(s, s.Trys, id, StmtTry)
}

// Suites returns the nested statement lists of id in source order.
// Simple statements have none.
func (s *Stmts) Suites(id StmtID) [][]StmtID {
	stmt := s.Get(id)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case StmtIf, StmtWhile:
		d, _ := s.Cond(id)
		return nonEmpty(d.Body, d.Orelse)
	case StmtFor:
		d, _ := s.For(id)
		return nonEmpty(d.Body, d.Orelse)
	case StmtFunctionDef:
		d, _ := s.FunctionDef(id)
		return nonEmpty(d.Body)
	case StmtClassDef:
		d, _ := s.ClassDef(id)
		return nonEmpty(d.Body)
	case StmtWith:
		d, _ := s.With(id)
		return nonEmpty(d.Body)
	case StmtTry:
		d, _ := s.Try(id)
		suites := [][]StmtID{d.Body}
		for _, h := range d.Handlers {
			suites = append(suites, h.Body)
		}
		suites = append(suites, d.Orelse, d.Finalbody)
		return nonEmpty(suites...)
	default:
		return nil
	}
}

func nonEmpty(suites ...[]StmtID) [][]StmtID {
	out := make([][]StmtID, 0, len(suites))
	for _, s := range suites {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}
