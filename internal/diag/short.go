package diag

import (
	"fmt"
	"sort"
	"strings"

	"pyparse/internal/source"
)

type shortLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "severity CODE path:line:col message", sorted by location.
// Notes become "note" lines carrying the parent code.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	for i := range diags {
		lines = appendShort(lines, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		di, dj := lines[i], lines[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range lines {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortLine, d *Diagnostic, fs *source.FileSet, includeNotes bool) []shortLine {
	if path, lc, ok := resolveSpan(fs, d.Primary); ok {
		out = append(out, shortLine{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Path:     path,
			Line:     lc.Line,
			Column:   lc.Col,
			Message:  sanitizeMessage(d.Message),
		})
	}
	if !includeNotes {
		return out
	}
	for _, note := range d.Notes {
		path, lc, ok := resolveSpan(fs, note.Span)
		if !ok {
			continue
		}
		out = append(out, shortLine{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     path,
			Line:     lc.Line,
			Column:   lc.Col,
			Message:  sanitizeMessage(note.Msg),
		})
	}
	return out
}

func resolveSpan(fs *source.FileSet, span source.Span) (string, source.LineCol, bool) {
	if int(span.File) >= fs.Len() {
		return "", source.LineCol{}, false
	}
	start, _ := fs.Resolve(span)
	return fs.Get(span.File).Path, start, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
