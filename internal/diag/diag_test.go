package diag

import (
	"golox/internal/span"
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	s := span.At(span.Position{Offset: 7, Line: 2, Column: 3})
	d := Errorf(CodeExpectedToken, s, "expected %s", "';'")
	if got, want := d.String(), "[E2001] error at 2:3: expected ';'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if d.Line() != 2 {
		t.Errorf("expected line 2, got %d", d.Line())
	}

	d.Hint = "add a semicolon"
	if got, want := d.String(), "[E2001] error at 2:3: expected ';' (hint: add a semicolon)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("no diagnostics means no errors")
	}
	warn := Diagnostic{Code: "W0001", Severity: Warning, Message: "unused"}
	if HasErrors([]Diagnostic{warn}) {
		t.Error("warnings alone are not errors")
	}
	if !HasErrors([]Diagnostic{warn, Errorf(CodeUnexpectedChar, span.Span{}, "unexpected character")}) {
		t.Error("expected an error to be reported")
	}
}
