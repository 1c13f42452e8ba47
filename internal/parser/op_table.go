package parser

import (
	"pyparse/internal/ast"
	"pyparse/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативны,
// '**' разбирается отдельно в parsePower.
const (
	precBitOr  = 1 // |
	precBitXor = 2 // ^
	precBitAnd = 3 // &
	precShift  = 4 // << >>
	precArith  = 5 // + -
	precTerm   = 6 // * @ / // %
)

type binaryOpInfo struct {
	prec int
	op   ast.BinaryOp
}

var binaryOps = map[token.Kind]binaryOpInfo{
	token.Pipe:       {precBitOr, ast.BinaryBitOr},
	token.Caret:      {precBitXor, ast.BinaryBitXor},
	token.Amp:        {precBitAnd, ast.BinaryBitAnd},
	token.Shl:        {precShift, ast.BinaryShl},
	token.Shr:        {precShift, ast.BinaryShr},
	token.Plus:       {precArith, ast.BinaryAdd},
	token.Minus:      {precArith, ast.BinarySub},
	token.Star:       {precTerm, ast.BinaryMul},
	token.At:         {precTerm, ast.BinaryMatMul},
	token.Slash:      {precTerm, ast.BinaryDiv},
	token.SlashSlash: {precTerm, ast.BinaryFloorDiv},
	token.Percent:    {precTerm, ast.BinaryMod},
}

// binaryOpFor возвращает оператор для токена; '**' тоже понимается,
// это нужно для '**='.
func binaryOpFor(kind token.Kind) (ast.BinaryOp, bool) {
	if kind == token.StarStar {
		return ast.BinaryPow, true
	}
	info, ok := binaryOps[kind]
	return info.op, ok
}

var compareOps = map[token.Kind]ast.CmpOp{
	token.EqEq:   ast.CmpEq,
	token.BangEq: ast.CmpNotEq,
	token.Lt:     ast.CmpLt,
	token.LtEq:   ast.CmpLtEq,
	token.Gt:     ast.CmpGt,
	token.GtEq:   ast.CmpGtEq,
	token.KwIn:   ast.CmpIn,
	token.KwIs:   ast.CmpIs,
	token.KwNot:  ast.CmpNotIn,
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Plus:  ast.UnaryPlus,
	token.Minus: ast.UnaryMinus,
	token.Tilde: ast.UnaryInvert,
}

// startsExpr — может ли токен начинать test/star_expr.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.Int, token.Float, token.Imag, token.String,
		token.KwNone, token.KwTrue, token.KwFalse, token.Ellipsis,
		token.LParen, token.LBracket, token.LBrace,
		token.Plus, token.Minus, token.Tilde, token.Star,
		token.KwNot, token.KwLambda, token.KwAwait:
		return true
	}
	return false
}
