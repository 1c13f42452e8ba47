package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatASTPrettyTree(t *testing.T) {
	input := strings.Join([]string{
		"@dec",
		"def f(x):",
		"    # nac3: gen",
		"    return x",
		"if a:",
		"    pass",
		"else:",
		"    x = 1  # nac3: hot",
		"",
	}, "\n")
	p := parseAttached(t, input)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, p.b, p.fileID, p.fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	want := strings.Join([]string{
		"├─ FunctionDef 2:1 def f(x):",
		"│  ├─ decorators",
		"│  │  └─ @dec",
		"│  └─ body",
		"│     └─ Return 4:5 return x  # directives: gen",
		"└─ If 5:1 if a:",
		"   ├─ body",
		"   │  └─ Pass 6:5 pass",
		"   └─ else",
		"      └─ Assign 8:5 x = 1  # directives: hot",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASTPrettyTryLabels(t *testing.T) {
	input := "try:\n    a\nexcept E as e:\n    b\nexcept:\n    c\nfinally:\n    d\n"
	p := parseAttached(t, input)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, p.b, p.fileID, p.fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	var labels []string
	for _, line := range strings.Split(buf.String(), "\n") {
		trimmed := strings.TrimLeft(line, "│ ├└─")
		if trimmed != "" && !strings.ContainsAny(trimmed, ":") {
			labels = append(labels, trimmed)
		}
	}
	want := []string{"body", "except E as e", "except", "finally"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("suite labels mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASTJSON(t *testing.T) {
	input := "while x:\n    # nac3: loop\n    y()\n"
	p := parseAttached(t, input)

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, p.b, p.fileID, p.fs); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var got FileJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Path != "test.py" || len(got.Body) != 1 {
		t.Fatalf("unexpected root: %+v", got)
	}
	loop := got.Body[0]
	if loop.Kind != "While" || loop.Text != "while x:" || loop.Line != 1 || loop.Col != 1 {
		t.Errorf("loop header = %+v", loop)
	}
	if len(loop.Suites) != 1 || loop.Suites[0].Label != "body" {
		t.Fatalf("loop suites = %+v", loop.Suites)
	}
	call := loop.Suites[0].Body[0]
	if diff := cmp.Diff([]string{"loop"}, call.Directives); diff != "" {
		t.Errorf("directives mismatch (-want +got):\n%s", diff)
	}
	if call.Line != 3 || call.Col != 5 || call.Text != "y()" {
		t.Errorf("call = %+v", call)
	}
}
