package runtime

import (
	"math"
	"testing"
)

func TestStringify(t *testing.T) {
	cases := []struct {
		val  Value
		want string
	}{
		{NilVal{}, "nil"},
		{nil, "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumberVal(6), "6"},
		{NumberVal(6.5), "6.5"},
		{NumberVal(-3), "-3"},
		{NumberVal(0), "0"},
		{NumberVal(1234567), "1234567"},
		{NumberVal(0.001), "0.001"},
		{NumberVal(1e21), "1e+21"},
		{NumberVal(math.Inf(1)), "Infinity"},
		{NumberVal(math.Inf(-1)), "-Infinity"},
		{NumberVal(math.NaN()), "NaN"},
		{StringVal("text"), "text"},
		{StringVal(""), ""},
	}
	for _, tc := range cases {
		if got := Stringify(tc.val); got != tc.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tc.val, got, tc.want)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	falsy := []Value{NilVal{}, BoolVal(false), nil}
	truthy := []Value{BoolVal(true), NumberVal(0), NumberVal(-1), StringVal(""), StringVal("x")}

	for _, v := range falsy {
		if IsTruthy(v) {
			t.Errorf("expected %#v to be falsy", v)
		}
	}
	for _, v := range truthy {
		if !IsTruthy(v) {
			t.Errorf("expected %#v to be truthy", v)
		}
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{NilVal{}, NilVal{}, true},
		{NilVal{}, BoolVal(false), false},
		{NumberVal(0), BoolVal(false), false},
		{NumberVal(1), NumberVal(1), true},
		{NumberVal(1), StringVal("1"), false},
		{StringVal("a"), StringVal("a"), true},
		{StringVal("a"), StringVal("b"), false},
		{BoolVal(true), BoolVal(true), true},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%#v, %#v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := Equal(tc.b, tc.a); got != tc.want {
			t.Errorf("Equal(%#v, %#v) = %v, want %v (reversed)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestFromLiteral(t *testing.T) {
	for lit, want := range map[any]Value{
		1.5:  NumberVal(1.5),
		"s":  StringVal("s"),
		true: BoolVal(true),
	} {
		got, err := FromLiteral(lit)
		if err != nil || got != want {
			t.Errorf("FromLiteral(%#v) = %#v, %v", lit, got, err)
		}
	}
	if got, err := FromLiteral(nil); err != nil || got != (NilVal{}) {
		t.Errorf("FromLiteral(nil) = %#v, %v", got, err)
	}
	if _, err := FromLiteral(42); err == nil {
		t.Error("expected error for int literal")
	}
}
