package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens a block; emitted at the first token of a deeper line.
	Indent
	// Dedent closes a block; one per popped indentation level.
	Dedent

	Ident
	Int
	Float
	Imag
	String

	KwFalse
	KwNone
	KwTrue
	KwAnd
	KwAs
	KwAssert
	KwAsync
	KwAwait
	KwBreak
	KwClass
	KwContinue
	KwDef
	KwDel
	KwElif
	KwElse
	KwExcept
	KwFinally
	KwFor
	KwFrom
	KwGlobal
	KwIf
	KwImport
	KwIn
	KwIs
	KwLambda
	KwNonlocal
	KwNot
	KwOr
	KwPass
	KwRaise
	KwReturn
	KwTry
	KwWhile
	KwWith
	KwYield

	Plus        // +
	Minus       // -
	Star        // *
	StarStar    // **
	Slash       // /
	SlashSlash  // //
	Percent     // %
	At          // @
	Shl         // <<
	Shr         // >>
	Amp         // &
	Pipe        // |
	Caret       // ^
	Tilde       // ~
	ColonAssign // :=
	Lt          // <
	Gt          // >
	LtEq        // <=
	GtEq        // >=
	EqEq        // ==
	BangEq      // !=

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Dot       // .
	Ellipsis  // ...
	Semicolon // ;
	Assign    // =
	Arrow     // ->

	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	SlashSlashAssign // //=
	PercentAssign    // %=
	AtAssign         // @=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	ShrAssign        // >>=
	ShlAssign        // <<=
	StarStarAssign   // **=

	kindCount
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Newline: "Newline",
	Indent:  "Indent",
	Dedent:  "Dedent",
	Ident:   "Ident",
	Int:     "Int",
	Float:   "Float",
	Imag:    "Imag",
	String:  "String",

	KwFalse:    "False",
	KwNone:     "None",
	KwTrue:     "True",
	KwAnd:      "and",
	KwAs:       "as",
	KwAssert:   "assert",
	KwAsync:    "async",
	KwAwait:    "await",
	KwBreak:    "break",
	KwClass:    "class",
	KwContinue: "continue",
	KwDef:      "def",
	KwDel:      "del",
	KwElif:     "elif",
	KwElse:     "else",
	KwExcept:   "except",
	KwFinally:  "finally",
	KwFor:      "for",
	KwFrom:     "from",
	KwGlobal:   "global",
	KwIf:       "if",
	KwImport:   "import",
	KwIn:       "in",
	KwIs:       "is",
	KwLambda:   "lambda",
	KwNonlocal: "nonlocal",
	KwNot:      "not",
	KwOr:       "or",
	KwPass:     "pass",
	KwRaise:    "raise",
	KwReturn:   "return",
	KwTry:      "try",
	KwWhile:    "while",
	KwWith:     "with",
	KwYield:    "yield",

	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	StarStar:    "**",
	Slash:       "/",
	SlashSlash:  "//",
	Percent:     "%",
	At:          "@",
	Shl:         "<<",
	Shr:         ">>",
	Amp:         "&",
	Pipe:        "|",
	Caret:       "^",
	Tilde:       "~",
	ColonAssign: ":=",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	EqEq:        "==",
	BangEq:      "!=",

	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Colon:     ":",
	Dot:       ".",
	Ellipsis:  "...",
	Semicolon: ";",
	Assign:    "=",
	Arrow:     "->",

	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	SlashSlashAssign: "//=",
	PercentAssign:    "%=",
	AtAssign:         "@=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShrAssign:        ">>=",
	ShlAssign:        "<<=",
	StarStarAssign:   "**=",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a hard keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwFalse && k <= KwYield
}

// IsAugAssign reports whether k is one of the augmented assignment operators.
func (k Kind) IsAugAssign() bool {
	return k >= PlusAssign && k <= StarStarAssign
}

// AugBase returns the binary operator behind an augmented assignment, e.g. Plus for '+='.
func (k Kind) AugBase() (Kind, bool) {
	switch k {
	case PlusAssign:
		return Plus, true
	case MinusAssign:
		return Minus, true
	case StarAssign:
		return Star, true
	case SlashAssign:
		return Slash, true
	case SlashSlashAssign:
		return SlashSlash, true
	case PercentAssign:
		return Percent, true
	case AtAssign:
		return At, true
	case AmpAssign:
		return Amp, true
	case PipeAssign:
		return Pipe, true
	case CaretAssign:
		return Caret, true
	case ShrAssign:
		return Shr, true
	case ShlAssign:
		return Shl, true
	case StarStarAssign:
		return StarStar, true
	default:
		return Invalid, false
	}
}
