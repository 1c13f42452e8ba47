package ast

import (
	"errors"

	"pyparse/internal/source"
)

// Directive is one recognized directive comment attached to a statement.
type Directive struct {
	Name source.StringID // comment text after the prefix, trimmed
	Span source.Span     // the whole comment
	Loc  source.LineCol  // position of '#'
}

// StmtConfig is the directive slot shared by every simple statement kind.
type StmtConfig struct {
	Directives []Directive
	Attached   bool
}

var (
	// ErrNoDirectiveSlot is returned when writing directives to a compound statement.
	ErrNoDirectiveSlot = errors.New("statement kind has no directive slot")
	// ErrAlreadyAttached is returned on a second write to the same slot.
	ErrAlreadyAttached = errors.New("directives already attached")
)
