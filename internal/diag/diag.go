// Package diag provides the diagnostic type reported by the lexer and parser.
package diag

import (
	"fmt"
	"golox/internal/span"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes.
const (
	CodeUnterminatedString  = "E1001"
	CodeUnterminatedComment = "E1002"
	CodeUnexpectedChar      = "E1003"

	CodeExpectedToken     = "E2001"
	CodeExpectedExpr      = "E2002"
	CodeInvalidAssignment = "E2003"
)

// Diagnostic represents a lexical or syntax problem tied to a source location.
type Diagnostic struct {
	Code     string    `json:"code"`           // stable error code, e.g. "E1001"
	Severity Severity  `json:"severity"`       // error or warning
	Message  string    `json:"message"`        // human-readable description
	Span     span.Span `json:"span"`           // source location
	Hint     string    `json:"hint,omitempty"` // optional hint
}

// Line returns the line the diagnostic points at.
func (d Diagnostic) Line() int {
	return d.Span.Start.Line
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	prefix := d.Severity.String()
	loc := fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Column)
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, prefix, loc, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Errorf creates an error diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// HasErrors reports whether any diagnostic has Error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
