package main

import (
	"bytes"
	"encoding/json"
	"golox/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCLI() (*cli, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &cli{cfg: config.Default(), stdout: &stdout, stderr: &stderr}, &stdout, &stderr
}

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.lox")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFile(t *testing.T) {
	path := writeSource(t, "var a = 1;\n{ var a = a + 1; print a; }\nprint a;\n")
	for _, args := range [][]string{{"run", path}, {path}} {
		c, stdout, stderr := newTestCLI()
		if code := c.run(args); code != 0 {
			t.Fatalf("%v: exit %d, stderr: %s", args, code, stderr)
		}
		if stdout.String() != "2\n1\n" {
			t.Errorf("%v: unexpected output %q", args, stdout.String())
		}
	}
}

func TestRunRuntimeError(t *testing.T) {
	path := writeSource(t, "print 1;\nprint -\"x\";\nprint 2;\n")
	c, stdout, stderr := newTestCLI()
	if code := c.run([]string{"run", path}); code != 70 {
		t.Errorf("expected exit 70, got %d", code)
	}
	if stdout.String() != "1\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "runtime error at 2:7: operand must be a number") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRunSyntaxErrorSkipsExecution(t *testing.T) {
	path := writeSource(t, "print \"ok\";\nvar = 1;\n")
	c, stdout, stderr := newTestCLI()
	if code := c.run([]string{"run", path}); code != 65 {
		t.Errorf("expected exit 65, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should run after a syntax error, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[E2001]") {
		t.Errorf("expected E2001 diagnostic, got %q", stderr.String())
	}
}

func TestRunLexErrorStopsBeforeParse(t *testing.T) {
	path := writeSource(t, "print \"open;\n")
	c, _, stderr := newTestCLI()
	if code := c.run([]string{path}); code != 65 {
		t.Errorf("expected exit 65, got %d", code)
	}
	if got := strings.Count(stderr.String(), "\n"); got != 1 || !strings.Contains(stderr.String(), "[E1001]") {
		t.Errorf("expected a single E1001 diagnostic, got %q", stderr.String())
	}
}

func TestConfiguredExitCodes(t *testing.T) {
	path := writeSource(t, "print nope;")
	c, _, _ := newTestCLI()
	c.cfg.ExitCodes.RuntimeError = 9
	if code := c.run([]string{path}); code != 9 {
		t.Errorf("expected configured exit 9, got %d", code)
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, `var x = "s";`)
	c, stdout, _ := newTestCLI()
	if code := c.run([]string{"tokens", path}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 token lines, got %d:\n%s", len(lines), stdout.String())
	}
	if !strings.HasPrefix(lines[0], "var") || !strings.HasPrefix(lines[5], "EOF") {
		t.Errorf("unexpected token listing:\n%s", stdout.String())
	}
}

func TestTokensJSON(t *testing.T) {
	path := writeSource(t, "1.5 @")
	c, stdout, _ := newTestCLI()
	if code := c.run([]string{"tokens", path, "--json"}); code != 65 {
		t.Errorf("expected exit 65 for lexical error, got %d", code)
	}

	var out struct {
		Tokens []struct {
			Kind    string      `json:"kind"`
			Literal interface{} `json:"literal"`
		} `json:"tokens"`
		Diagnostics []map[string]interface{} `json:"diagnostics"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if len(out.Tokens) != 2 || out.Tokens[0].Kind != "NUMBER" || out.Tokens[0].Literal != 1.5 {
		t.Errorf("unexpected tokens: %+v", out.Tokens)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0]["code"] != "E1003" {
		t.Errorf("unexpected diagnostics: %v", out.Diagnostics)
	}
}

func TestParseCommand(t *testing.T) {
	path := writeSource(t, "print 1 + 2;")
	c, stdout, _ := newTestCLI()
	if code := c.run([]string{"parse", path}); code != 0 {
		t.Fatalf("exit %d", code)
	}

	var out struct {
		AST         []map[string]interface{} `json:"ast"`
		Diagnostics []interface{}            `json:"diagnostics"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.AST) != 1 || out.AST[0]["kind"] != "PrintStmt" {
		t.Errorf("unexpected ast: %v", out.AST)
	}
	if len(out.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", out.Diagnostics)
	}
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		expr   string
		output string
		code   int
	}{
		{"1 + 2 * 3", "7\n", 0},
		{`"a" + "b"`, "ab\n", 0},
		{"1 < 2 ? nil : 0", "nil\n", 0},
		{"1 / 0", "", 70},
		{"1 +", "", 65},
		{"1 2", "", 65},
	}
	for _, tt := range tests {
		c, stdout, _ := newTestCLI()
		if code := c.run([]string{"eval", tt.expr}); code != tt.code {
			t.Errorf("eval %q: expected exit %d, got %d", tt.expr, tt.code, code)
		}
		if stdout.String() != tt.output {
			t.Errorf("eval %q: expected %q, got %q", tt.expr, tt.output, stdout.String())
		}
	}
}

func TestConfigCommand(t *testing.T) {
	c, stdout, _ := newTestCLI()
	if code := c.run([]string{"config"}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	back, err := config.Decode(stdout)
	if err != nil {
		t.Fatalf("config output does not decode: %v", err)
	}
	if *back != *config.Default() {
		t.Errorf("expected defaults, got %+v", back)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		{"run"},
		{"tokens"},
		{"eval"},
		{"frobnicate", "x"},
		{filepath.Join(t.TempDir(), "missing.lox")},
	}
	for _, args := range tests {
		c, _, stderr := newTestCLI()
		if code := c.run(args); code != 64 {
			t.Errorf("%v: expected exit 64, got %d", args, code)
		}
		if !strings.Contains(stderr.String(), "error:") {
			t.Errorf("%v: expected an error message, got %q", args, stderr.String())
		}
	}
}
