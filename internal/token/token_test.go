package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := map[string]Kind{
		"var":    KW_VAR,
		"print":  KW_PRINT,
		"nil":    KW_NIL,
		"class":  KW_CLASS,
		"varx":   IDENT,
		"Print":  IDENT,
		"_while": IDENT,
	}
	for ident, want := range tests {
		if got := LookupIdent(ident); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", ident, got, want)
		}
	}
}

func TestKeywordsSorted(t *testing.T) {
	words := Keywords()
	if len(words) != 16 {
		t.Fatalf("expected 16 reserved words, got %d: %v", len(words), words)
	}
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Errorf("keywords not sorted at %d: %v", i, words)
		}
	}
	for _, w := range words {
		if !LookupIdent(w).IsKeyword() {
			t.Errorf("%q is not classified as a keyword", w)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !NUMBER.IsLiteral() || !IDENT.IsLiteral() || KW_TRUE.IsLiteral() {
		t.Error("unexpected IsLiteral classification")
	}
	if PLUS.IsKeyword() || !KW_AND.IsKeyword() || !KW_WHILE.IsKeyword() {
		t.Error("unexpected IsKeyword classification")
	}
	if SEMICOLON.String() == "" || Kind(999).String() != "Kind(999)" {
		t.Errorf("unexpected kind names: %q %q", SEMICOLON.String(), Kind(999).String())
	}
}
