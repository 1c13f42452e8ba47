package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadDedent          Code = 1004
	LexTabSpaceMix        Code = 1005
	LexUnbalancedBracket  Code = 1006
	LexBadContinuation    Code = 1007
	LexTokenTooLong       Code = 1008

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpression   Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectColon        Code = 2004
	SynExpectNewline      Code = 2005
	SynExpectIndent       Code = 2006
	SynUnclosedDelimiter  Code = 2007
	SynInvalidTarget      Code = 2008
	SynForMissingIn       Code = 2009
	SynTryWithoutHandler  Code = 2010
	SynBadParameters      Code = 2011
	SynBadArguments       Code = 2012
	SynUnexpectedIndent   Code = 2013
	SynTrailingInput      Code = 2014
	SynDecoratorNotDefine Code = 2015
	SynMultipleStatements Code = 2016

	// Ввод-вывод
	IOInfo          Code = 3000
	IOLoadFileError Code = 3001

	// Директивы
	DirInfo      Code = 4000
	DirAlignment Code = 4001
	DirPlacement Code = 4002

	// Внутренние дефекты, не ошибки пользователя
	InternalInfo         Code = 9000
	InternalDistribution Code = 9001
	InternalDoubleAttach Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed numeric literal",
	LexBadDedent:          "Unindent does not match any outer indentation level",
	LexTabSpaceMix:        "Inconsistent use of tabs and spaces in indentation",
	LexUnbalancedBracket:  "Unbalanced bracket",
	LexBadContinuation:    "Unexpected character after line continuation",
	LexTokenTooLong:       "Token too long",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectExpression:   "Expected expression",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectColon:        "Expected ':'",
	SynExpectNewline:      "Expected end of line",
	SynExpectIndent:       "Expected an indented block",
	SynUnclosedDelimiter:  "Unclosed delimiter",
	SynInvalidTarget:      "Invalid assignment target",
	SynForMissingIn:       "Expected 'in' in for statement",
	SynTryWithoutHandler:  "try statement without except or finally",
	SynBadParameters:      "Invalid parameter list",
	SynBadArguments:       "Invalid argument list",
	SynUnexpectedIndent:   "Unexpected indent",
	SynTrailingInput:      "Unexpected input after expression",
	SynDecoratorNotDefine: "Decorator must precede def or class",
	SynMultipleStatements: "Multiple statements in single-statement input",

	IOInfo:          "I/O information",
	IOLoadFileError: "Failed to load file",

	DirInfo:      "Directive information",
	DirAlignment: "Directive comment is not aligned with its statement",
	DirPlacement: "Directive comment has no statement to apply to",

	InternalInfo:         "Internal information",
	InternalDistribution: "Directive distribution reached a statement without a directive slot",
	InternalDoubleAttach: "Directive list attached twice",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsInternal reports whether the code describes a defect in the toolchain.
func (c Code) IsInternal() bool {
	return c >= InternalInfo && c < 10000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
