package diagfmt

import (
	"strings"
	"testing"
)

func TestFormatExprRoundTrip(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"(a + b) * c",
		"a - (b - c)",
		"a - b - c",
		"2 ** 3 ** 4",
		"(2 ** 3) ** 4",
		"2 ** -x",
		"(-2) ** 2",
		"-x ** 2",
		"not a == b",
		"(not a) == b",
		"a or b and c",
		"(a or b) and c",
		"~a & b",
		"a < b <= c",
		"a not in b",
		"a is not None",
		"a if b else c",
		"(a if b else c) + 1",
		"lambda: 0",
		"lambda x, *args, y=1, **kw: x",
		"f(a, *b, c=1, **d)",
		"print(i, end='', sep=' ')",
		"a.b(c)[d]",
		"x[1:2]",
		"x[::2]",
		"x[a, b]",
		"[y for y in z if y]",
		"{k: v for k, v in items}",
		"(x for x in xs)",
		"{**a, 'b': 1}",
		"{1, 2}",
		"(1,)",
		"()",
		"[]",
		"'a' 'b'",
		"...",
		"None",
		"f(x)(y)",
		"(a + b).c",
	}
	for _, in := range inputs {
		b, id := parseExpr(t, in)
		if got := FormatExpr(b, id); got != in {
			t.Errorf("FormatExpr(%q) = %q", in, got)
		}
	}
}

func TestFormatExprNormalizesParens(t *testing.T) {
	tests := []struct{ in, want string }{
		{"((a))", "a"},
		{"(a * b) + c", "a * b + c"},
		{"a  +  b", "a + b"},
		{"x [ 1 ]", "x[1]"},
	}
	for _, tt := range tests {
		b, id := parseExpr(t, tt.in)
		if got := FormatExpr(b, id); got != tt.want {
			t.Errorf("FormatExpr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatStmtHeader(t *testing.T) {
	tests := []struct{ in, want string }{
		{"import os.path as p, sys\n", "import os.path as p, sys"},
		{"from .. import x\n", "from .. import x"},
		{"from .mod import a as b\n", "from .mod import a as b"},
		{"def f(a, /, b: int = 2, *, c) -> None:\n    pass\n", "def f(a, /, b: int = 2, *, c) -> None:"},
		{"async def g(*args, **kw):\n    pass\n", "async def g(*args, **kw):"},
		{"class C(B, metaclass=M):\n    pass\n", "class C(B, metaclass=M):"},
		{"class D:\n    pass\n", "class D:"},
		{"for i, j in pairs:\n    pass\n", "for i, j in pairs:"},
		{"with open(p) as f, g:\n    pass\n", "with open(p) as f, g:"},
		{"while x:\n    pass\n", "while x:"},
		{"try:\n    pass\nfinally:\n    pass\n", "try:"},
		{"global a, b\n", "global a, b"},
		{"x += 1\n", "x += 1"},
		{"y: int = 3\n", "y: int = 3"},
		{"a = b = 1\n", "a = b = 1"},
		{"raise E from e\n", "raise E from e"},
		{"raise\n", "raise"},
		{"assert x, 'm'\n", "assert x, 'm'"},
		{"del a, b\n", "del a, b"},
		{"return\n", "return"},
		{"pass\n", "pass"},
		{"f(x)\n", "f(x)"},
	}
	for _, tt := range tests {
		p := parseAttached(t, tt.in)
		body := p.b.Files.Get(p.fileID).Body
		if len(body) == 0 {
			t.Fatalf("%q: empty body", tt.in)
		}
		if got := FormatStmtHeader(p.b, body[0]); got != tt.want {
			t.Errorf("FormatStmtHeader(%q) = %q, want %q", strings.TrimSpace(tt.in), got, tt.want)
		}
	}
}
