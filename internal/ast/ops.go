package ast

type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryMatMul
	BinaryDiv
	BinaryFloorDiv
	BinaryMod
	BinaryPow
	BinaryShl
	BinaryShr
	BinaryBitOr
	BinaryBitXor
	BinaryBitAnd
)

var binaryOpText = [...]string{
	BinaryAdd:      "+",
	BinarySub:      "-",
	BinaryMul:      "*",
	BinaryMatMul:   "@",
	BinaryDiv:      "/",
	BinaryFloorDiv: "//",
	BinaryMod:      "%",
	BinaryPow:      "**",
	BinaryShl:      "<<",
	BinaryShr:      ">>",
	BinaryBitOr:    "|",
	BinaryBitXor:   "^",
	BinaryBitAnd:   "&",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

type BoolOp uint8

const (
	BoolAnd BoolOp = iota
	BoolOr
)

func (op BoolOp) String() string {
	if op == BoolAnd {
		return "and"
	}
	return "or"
}

type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryInvert
	UnaryPlus
	UnaryMinus
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "not"
	case UnaryInvert:
		return "~"
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	}
	return "?"
}

type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtEq
	CmpGt
	CmpGtEq
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

var cmpOpText = [...]string{
	CmpEq:    "==",
	CmpNotEq: "!=",
	CmpLt:    "<",
	CmpLtEq:  "<=",
	CmpGt:    ">",
	CmpGtEq:  ">=",
	CmpIs:    "is",
	CmpIsNot: "is not",
	CmpIn:    "in",
	CmpNotIn: "not in",
}

func (op CmpOp) String() string {
	if int(op) < len(cmpOpText) {
		return cmpOpText[op]
	}
	return "?"
}
