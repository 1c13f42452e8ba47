package ast

import (
	"slices"

	"pyparse/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Consts     *Arena[ExprConstData]
	BoolOps    *Arena[ExprBoolOpData]
	Binaries   *Arena[ExprBinaryData]
	Unaries    *Arena[ExprUnaryData]
	Compares   *Arena[ExprCompareData]
	Calls      *Arena[ExprCallData]
	Attributes *Arena[ExprAttributeData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Values     *Arena[ExprValueData]
	Seqs       *Arena[ExprSeqData]
	Dicts      *Arena[ExprDictData]
	Comps      *Arena[ExprCompData]
	Lambdas    *Arena[ExprLambdaData]
	IfExps     *Arena[ExprIfExpData]
	Named      *Arena[ExprNamedData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Consts:     NewArena[ExprConstData](capHint),
		BoolOps:    NewArena[ExprBoolOpData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		Unaries:    NewArena[ExprUnaryData](small),
		Compares:   NewArena[ExprCompareData](small),
		Calls:      NewArena[ExprCallData](small),
		Attributes: NewArena[ExprAttributeData](small),
		Subscripts: NewArena[ExprSubscriptData](small),
		Slices:     NewArena[ExprSliceData](small),
		Values:     NewArena[ExprValueData](small),
		Seqs:       NewArena[ExprSeqData](small),
		Dicts:      NewArena[ExprDictData](small),
		Comps:      NewArena[ExprCompData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		IfExps:     NewArena[ExprIfExpData](small),
		Named:      NewArena[ExprNamedData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// exprPayload fetches the payload of id when its kind is one of kinds.
func exprPayload[T any](e *Exprs, arena *Arena[T], id ExprID, kinds ...ExprKind) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || !slices.Contains(kinds, expr.Kind) {
		return nil, false
	}
	return arena.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	return exprPayload(e, e.Names, id, ExprName)
}

func (e *Exprs) NewConst(span source.Span, kind ConstKind, raw source.StringID, parts []source.StringID) ExprID {
	payload := e.Consts.Allocate(ExprConstData{Kind: kind, Raw: raw, Parts: slices.Clone(parts)})
	return e.new(ExprConst, span, payload)
}

func (e *Exprs) Const(id ExprID) (*ExprConstData, bool) {
	return exprPayload(e, e.Consts, id, ExprConst)
}

func (e *Exprs) NewBoolOp(span source.Span, op BoolOp, values []ExprID) ExprID {
	return e.new(ExprBoolOp, span, e.BoolOps.Allocate(ExprBoolOpData{Op: op, Values: slices.Clone(values)}))
}

func (e *Exprs) BoolOp(id ExprID) (*ExprBoolOpData, bool) {
	return exprPayload(e, e.BoolOps, id, ExprBoolOp)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return exprPayload(e, e.Binaries, id, ExprBinary)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return exprPayload(e, e.Unaries, id, ExprUnary)
}

func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []CmpOp, comparators []ExprID) ExprID {
	payload := e.Compares.Allocate(ExprCompareData{
		Left:        left,
		Ops:         slices.Clone(ops),
		Comparators: slices.Clone(comparators),
	})
	return e.new(ExprCompare, span, payload)
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	return exprPayload(e, e.Compares, id, ExprCompare)
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, keywords []Keyword) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Func:     fn,
		Args:     slices.Clone(args),
		Keywords: slices.Clone(keywords),
	})
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return exprPayload(e, e.Calls, id, ExprCall)
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	return e.new(ExprAttribute, span, e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr}))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	return exprPayload(e, e.Attributes, id, ExprAttribute)
}

func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	return exprPayload(e, e.Subscripts, id, ExprSubscript)
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	return exprPayload(e, e.Slices, id, ExprSlice)
}

// NewValue builds Starred, Yield, YieldFrom and Await nodes.
func (e *Exprs) NewValue(kind ExprKind, span source.Span, value ExprID) ExprID {
	return e.new(kind, span, e.Values.Allocate(ExprValueData{Value: value}))
}

func (e *Exprs) Value(id ExprID) (*ExprValueData, bool) {
	return exprPayload(e, e.Values, id, ExprStarred, ExprYield, ExprYieldFrom, ExprAwait)
}

// NewSeq builds Tuple, List and Set nodes.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, elts []ExprID) ExprID {
	return e.new(kind, span, e.Seqs.Allocate(ExprSeqData{Elts: slices.Clone(elts)}))
}

func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	return exprPayload(e, e.Seqs, id, ExprTuple, ExprList, ExprSet)
}

func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{Keys: slices.Clone(keys), Values: slices.Clone(values)})
	return e.new(ExprDict, span, payload)
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	return exprPayload(e, e.Dicts, id, ExprDict)
}

// NewComp builds ListComp, SetComp, DictComp and GeneratorExp nodes.
func (e *Exprs) NewComp(kind ExprKind, span source.Span, elt, value ExprID, gens []Comprehension) ExprID {
	payload := e.Comps.Allocate(ExprCompData{Elt: elt, Value: value, Generators: slices.Clone(gens)})
	return e.new(kind, span, payload)
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	return exprPayload(e, e.Comps, id, ExprListComp, ExprSetComp, ExprDictComp, ExprGenerator)
}

func (e *Exprs) NewLambda(span source.Span, args Arguments, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Args: args, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	return exprPayload(e, e.Lambdas, id, ExprLambda)
}

func (e *Exprs) NewIfExp(span source.Span, test, body, orelse ExprID) ExprID {
	return e.new(ExprIfExp, span, e.IfExps.Allocate(ExprIfExpData{Test: test, Body: body, Orelse: orelse}))
}

func (e *Exprs) IfExp(id ExprID) (*ExprIfExpData, bool) {
	return exprPayload(e, e.IfExps, id, ExprIfExp)
}

func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprNamed, span, e.Named.Allocate(ExprNamedData{Target: target, Value: value}))
}

func (e *Exprs) NamedExpr(id ExprID) (*ExprNamedData, bool) {
	return exprPayload(e, e.Named, id, ExprNamed)
}
