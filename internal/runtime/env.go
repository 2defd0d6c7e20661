package runtime

import "errors"

var (
	// ErrUndefined is returned when no scope in the chain declares a name.
	ErrUndefined = errors.New("undefined variable")
	// ErrUninitialized is returned when a name is declared but holds no value.
	ErrUninitialized = errors.New("variable accessed before initialization")
)

// slot holds one variable. A declared-but-unset variable has set == false,
// which is distinct from a variable set to NilVal.
type slot struct {
	value Value
	set   bool
}

// Environment represents a variable scope with a link to its enclosing scope.
type Environment struct {
	values    map[string]*slot
	enclosing *Environment
}

// NewEnvironment creates a new environment with an optional enclosing scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]*slot),
		enclosing: enclosing,
	}
}

// Enclosing returns the enclosing scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this scope, replacing any existing binding here.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = &slot{value: value, set: true}
}

// Declare binds name in this scope without a value.
func (e *Environment) Declare(name string) {
	e.values[name] = &slot{}
}

// Get looks up a variable by walking the scope chain. The innermost scope
// that declares the name decides the result.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if s, exists := env.values[name]; exists {
			if !s.set {
				return nil, ErrUninitialized
			}
			return s.value, nil
		}
	}
	return nil, ErrUndefined
}

// Assign overwrites the nearest existing binding of name. It never declares.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if s, exists := env.values[name]; exists {
			s.value, s.set = value, true
			return nil
		}
	}
	return ErrUndefined
}

// Names returns the names declared in this scope only.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
