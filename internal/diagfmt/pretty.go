package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyparse/internal/diag"
	"pyparse/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	gutter, caret, bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Без fs (файл не загрузился) печатается только заголовок.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	header := sev.Sprintf("%s %s", d.Severity.String(), d.Code.ID())
	if loc := location(fs, d.Primary, opts.PathMode); loc != "" {
		fmt.Fprintf(w, "%s: %s: %s\n", pal.bold.Sprint(loc), header, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s\n", header, d.Message)
	}
	if f := lookupFile(fs, d.Primary); f != nil {
		snippet(w, f, d.Primary, opts.Context, pal)
	}
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := pal.note.Sprint("note")
		if loc := location(fs, n.Span, opts.PathMode); loc != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", label, loc, n.Msg)
		} else {
			fmt.Fprintf(w, "%s: %s\n", label, n.Msg)
		}
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := lookupFile(fs, span)
	if f == nil {
		return ""
	}
	lc := f.Position(span.Start)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.format()), lc.Line, lc.Col)
}

// snippet prints the primary line with surrounding context and a caret underline.
func snippet(w io.Writer, f *source.File, span source.Span, context int, pal palette) {
	start := f.Position(span.Start)
	total := f.LineCount()
	if start.Line == 0 || total == 0 {
		return
	}
	if start.Line > total {
		// EOF после последнего перевода строки
		start.Line = total
		start.Col = uint32(len(f.GetLine(total))) + 1
	}
	if context < 0 {
		context = 0
	}
	first := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	last := start.Line
	for i := 0; i < context && last < total; i++ {
		last++
	}

	blank := pal.gutter.Sprint("     | ")
	for n := first; n <= last; n++ {
		line := f.GetLine(n)
		fmt.Fprintf(w, "%s%s\n", pal.gutter.Sprintf("%4d | ", n), line)
		if n != start.Line {
			continue
		}
		col := int(start.Col) - 1
		if col > len(line) {
			col = len(line)
		}
		width := caretWidth(line[col:], span.Len())
		fmt.Fprintf(w, "%s%s%s\n", blank, padding(line[:col]), pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// padding повторяет отступ строки: табы сохраняются, остальное заменяется пробелами по ширине.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

// caretWidth measures the display width of the span part that lies on this line.
func caretWidth(rest string, spanLen uint32) int {
	n := len(rest)
	if int(spanLen) < n {
		n = int(spanLen)
	}
	width := runewidth.StringWidth(rest[:n])
	if width < 1 {
		width = 1
	}
	return width
}
