// Package runtime implements the tree-walking interpreter and runtime value
// system for golox.
package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Value is the interface for all runtime values. The set of implementations
// is closed: NilVal, BoolVal, NumberVal and StringVal.
type Value interface {
	TypeName() string
	String() string
	value()
}

// NilVal represents the absence of a value.
type NilVal struct{}

func (v NilVal) TypeName() string { return "nil" }
func (v NilVal) String() string   { return "nil" }
func (NilVal) value()             {}

// BoolVal represents a boolean value.
type BoolVal bool

func (v BoolVal) TypeName() string { return "boolean" }
func (v BoolVal) String() string   { return strconv.FormatBool(bool(v)) }
func (BoolVal) value()             {}

// NumberVal represents a double-precision number.
type NumberVal float64

func (v NumberVal) TypeName() string { return "number" }
func (v NumberVal) String() string   { return formatNumber(float64(v)) }
func (NumberVal) value()             {}

// StringVal represents a string value.
type StringVal string

func (v StringVal) TypeName() string { return "string" }
func (v StringVal) String() string   { return string(v) }
func (StringVal) value()             {}

// ---- Conversions ----

// FromLiteral converts a literal stored in the AST to a runtime value.
func FromLiteral(lit any) (Value, error) {
	switch v := lit.(type) {
	case nil:
		return NilVal{}, nil
	case bool:
		return BoolVal(v), nil
	case float64:
		return NumberVal(v), nil
	case string:
		return StringVal(v), nil
	default:
		return nil, fmt.Errorf("unsupported literal of type %T", lit)
	}
}

// Stringify returns the display text of a value as used by print and by
// interactive auto-printing.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}

// formatNumber renders numbers in shortest round-trip form. Integral values
// print without a decimal point ("6", not "6.0"); very large and very small
// magnitudes switch to exponent notation.
func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	if abs := math.Abs(n); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ---- Truthiness and equality ----

// IsTruthy reports the truthiness of a value: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilVal:
		return false
	case BoolVal:
		return bool(val)
	default:
		return true
	}
}

// Equal reports structural equality. Values of different types are never
// equal and no coercion takes place.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NilVal:
		_, ok := b.(NilVal)
		return ok
	case BoolVal:
		bv, ok := b.(BoolVal)
		return ok && av == bv
	case NumberVal:
		bv, ok := b.(NumberVal)
		return ok && av == bv
	case StringVal:
		bv, ok := b.(StringVal)
		return ok && av == bv
	default:
		return false
	}
}
