package directive

import (
	"pyparse/internal/source"
	"pyparse/internal/token"
)

// Comment is a recognized directive comment before attachment.
type Comment struct {
	Name    string         // identifier after the prefix
	Text    string         // raw comment text including '#'
	Span    source.Span    // the comment
	Loc     source.LineCol // position of '#'
	OwnLine bool           // nothing significant precedes it on its line
	Nested  bool           // inside the brackets of a statement
}

// Collect keeps the directive comments of file in source order.
// comments must be the lexer's flat comment list for the same file.
func Collect(f Filter, file *source.File, comments []token.Trivia) []Comment {
	if !f.Enabled() || file == nil {
		return nil
	}
	var out []Comment
	for _, tr := range comments {
		if !tr.IsComment() {
			continue
		}
		name, ok := f.Match(tr.Text)
		if !ok {
			continue
		}
		out = append(out, Comment{
			Name:    name,
			Text:    tr.Text,
			Span:    tr.Span,
			Loc:     file.Position(tr.Span.Start),
			OwnLine: tr.Kind == token.TriviaLineComment,
			Nested:  tr.InBrackets,
		})
	}
	return out
}
