package main

import (
	"bytes"
	"strings"
	"testing"
)

func feedLines(s *session, lines ...string) {
	for _, line := range lines {
		s.feed(line)
	}
}

func TestSessionAutoPrint(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, false)

	feedLines(s, "var x = 6;", "x;", "x / 4;", `print "done";`)
	if out.String() != "6\n1.5\ndone\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors %q", errOut.String())
	}
}

func TestSessionMultiLine(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, false)

	s.feed("{")
	s.feed("  var inner = 1;")
	if !s.pending() {
		t.Fatal("expected pending input inside an open block")
	}
	s.feed("  print inner;")
	s.feed("}")
	if s.pending() {
		t.Fatal("expected block to be complete")
	}
	if out.String() != "1\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestSessionCancel(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, false)

	feedLines(s, "{", "print 1;")
	s.cancel()
	if s.pending() {
		t.Fatal("cancel must clear pending input")
	}
	s.feed("print 2;")
	if out.String() != "2\n" {
		t.Errorf("cancelled input must not run, got %q", out.String())
	}
}

func TestSessionErrorsKeepGlobals(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, false)

	feedLines(s, "var a = 1;", "a = a +;", "print -nil;", "b;", "print a;")
	if out.String() != "1\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	errs := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(errs) != 3 {
		t.Fatalf("expected 3 error lines, got %q", errOut.String())
	}
	if !strings.Contains(errs[0], "[E2002]") || !strings.Contains(errs[1], "operand must be a number") ||
		!strings.Contains(errs[2], "undefined variable 'b'") {
		t.Errorf("unexpected errors: %q", errs)
	}
}

func TestSessionColor(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut, true)

	s.feed("print nope;")
	if !strings.HasPrefix(errOut.String(), colorRed) || !strings.Contains(errOut.String(), colorReset) {
		t.Errorf("expected colored error, got %q", errOut.String())
	}
}

func TestSessionCompletions(t *testing.T) {
	var out bytes.Buffer
	s := newSession(&out, &out, false)
	s.feed("var zeta = 1;")

	got := s.completions("")
	var hasKeyword, hasGlobal bool
	for _, name := range got {
		hasKeyword = hasKeyword || name == "print"
		hasGlobal = hasGlobal || name == "zeta"
	}
	if !hasKeyword || !hasGlobal {
		t.Errorf("expected keywords and globals, got %v", got)
	}
}
