package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "KEY", "PATH")
	tbl.AddRow("SPEC", "/w/specs/001-login/spec.md")
	tbl.AddRow("PLAN", "/w/specs/001-login/plan.md")
	if err := tbl.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + separator + 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "KEY") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "spec.md") || !strings.Contains(lines[3], "plan.md") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestWriteJSON_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, map[string]string{"desc": "a <b> & c"})
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), `<`) {
		t.Errorf("output escaped HTML: %s", buf.String())
	}

	var back map[string]string
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
}

func TestWriteShellVars(t *testing.T) {
	var buf bytes.Buffer
	err := WriteShellVars(&buf, []Var{
		{Key: "REPO_ROOT", Value: "/w"},
		{Key: "BRANCH", Value: "003-bob's-fix"},
	})
	if err != nil {
		t.Fatalf("WriteShellVars: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "REPO_ROOT='/w'" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != `BRANCH='003-bob'\''s-fix'` {
		t.Errorf("line 1 = %q, single quote not escaped", lines[1])
	}
}
