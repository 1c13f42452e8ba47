package token

import "pyparse/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaContinuation // backslash-newline
	// TriviaLineComment is a comment with nothing significant before it on its physical line.
	TriviaLineComment
	// TriviaSuffixComment trails code on the same physical line.
	TriviaSuffixComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaContinuation:
		return "Continuation"
	case TriviaLineComment:
		return "LineComment"
	case TriviaSuffixComment:
		return "SuffixComment"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
	// InBrackets is set for trivia inside an unclosed (, [ or {.
	InBrackets bool
}

// IsComment reports whether the trivia is a comment of either placement.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaSuffixComment
}
