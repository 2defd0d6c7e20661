package runtime

import (
	"errors"
	"fmt"
	"golox/internal/ast"
	"golox/internal/token"
	"io"
)

// ============================================================
// Runtime error
// ============================================================

// RuntimeError represents an error during interpretation. Token is the
// operator or name the error is attributed to.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Token.Span.Start.Line, e.Token.Span.Start.Column, e.Message)
}

// Line returns the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line()
}

func runtimeErr(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// ============================================================
// Interpreter
// ============================================================

// Interpreter walks the AST and executes it. The global environment lives as
// long as the interpreter, so consecutive runs share variables.
type Interpreter struct {
	global *Environment
	env    *Environment
	output io.Writer
}

// NewInterpreter creates a new interpreter that prints to output.
func NewInterpreter(output io.Writer) *Interpreter {
	global := NewEnvironment(nil)
	return &Interpreter{
		global: global,
		env:    global,
		output: output,
	}
}

// Run executes the statements in order. The first runtime error aborts the
// remaining statements and is returned.
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	return i.run(stmts, false)
}

// RunInteractive is like Run, except that the value of each top-level
// expression statement is printed.
func (i *Interpreter) RunInteractive(stmts []ast.Stmt) error {
	return i.run(stmts, true)
}

func (i *Interpreter) run(stmts []ast.Stmt, interactive bool) error {
	for _, stmt := range stmts {
		if es, ok := stmt.(*ast.ExprStmt); ok && interactive {
			val, err := i.evalExpr(es.Expr)
			if err != nil {
				return err
			}
			if err := i.println(val); err != nil {
				return err
			}
			continue
		}
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the global scope.
func (i *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return i.evalExpr(expr)
}

// Globals returns the global environment (useful for REPL).
func (i *Interpreter) Globals() *Environment {
	return i.global
}

func (i *Interpreter) println(v Value) error {
	_, err := fmt.Fprintln(i.output, Stringify(v))
	return err
}

// ============================================================
// Statement execution
// ============================================================

func (i *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(s.Expr)
		return err

	case *ast.PrintStmt:
		val, err := i.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		return i.println(val)

	case *ast.VarStmt:
		return i.execVarDecl(s)

	case *ast.BlockStmt:
		return i.execBlock(s.Stmts, NewEnvironment(i.env))

	default:
		return fmt.Errorf("unhandled statement type: %T", stmt)
	}
}

func (i *Interpreter) execVarDecl(s *ast.VarStmt) error {
	if s.Init == nil {
		i.env.Declare(s.Name.Lexeme)
		return nil
	}
	val, err := i.evalExpr(s.Init)
	if err != nil {
		return err
	}
	i.env.Define(s.Name.Lexeme, val)
	return nil
}

// execBlock runs stmts with blockEnv as the current environment. The
// previous environment is restored on every exit path.
func (i *Interpreter) execBlock(stmts []ast.Stmt, blockEnv *Environment) error {
	prevEnv := i.env
	i.env = blockEnv
	defer func() { i.env = prevEnv }()

	for _, stmt := range stmts {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================
// Expression evaluation
// ============================================================

func (i *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return FromLiteral(e.Value)
	case *ast.GroupingExpr:
		return i.evalExpr(e.Inner)
	case *ast.VariableExpr:
		return i.lookup(e.Name)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.TernaryExpr:
		return i.evalTernary(e)
	case *ast.CommaExpr:
		if _, err := i.evalExpr(e.Left); err != nil {
			return nil, err
		}
		return i.evalExpr(e.Right)
	default:
		return nil, fmt.Errorf("unhandled expression type: %T", expr)
	}
}

func (i *Interpreter) lookup(name token.Token) (Value, error) {
	val, err := i.env.Get(name.Lexeme)
	switch {
	case errors.Is(err, ErrUninitialized):
		return nil, runtimeErr(name, "variable '%s' accessed before initialization", name.Lexeme)
	case errors.Is(err, ErrUndefined):
		return nil, runtimeErr(name, "undefined variable '%s'", name.Lexeme)
	case err != nil:
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) (Value, error) {
	val, err := i.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}
	if err := i.env.Assign(e.Name.Lexeme, val); err != nil {
		return nil, runtimeErr(e.Name, "undefined variable '%s'", e.Name.Lexeme)
	}
	return val, nil
}

func (i *Interpreter) evalTernary(e *ast.TernaryExpr) (Value, error) {
	cond, err := i.evalExpr(e.Condition)
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return i.evalExpr(e.Then)
	}
	return i.evalExpr(e.Else)
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.BANG:
		return BoolVal(!IsTruthy(right)), nil
	case token.MINUS:
		n, ok := right.(NumberVal)
		if !ok {
			return nil, runtimeErr(e.Operator, "operand must be a number, got %s", right.TypeName())
		}
		return -n, nil
	default:
		return nil, runtimeErr(e.Operator, "unknown unary operator: %s", e.Operator.Kind)
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	switch op.Kind {
	case token.EQ:
		return BoolVal(Equal(left, right)), nil
	case token.NEQ:
		return BoolVal(!Equal(left, right)), nil
	case token.PLUS:
		switch l := left.(type) {
		case NumberVal:
			if r, ok := right.(NumberVal); ok {
				return l + r, nil
			}
		case StringVal:
			if r, ok := right.(StringVal); ok {
				return l + r, nil
			}
		}
		return nil, runtimeErr(op, "operands must be two numbers or two strings, got %s and %s",
			left.TypeName(), right.TypeName())
	}

	l, lok := left.(NumberVal)
	r, rok := right.(NumberVal)
	if !lok || !rok {
		return nil, runtimeErr(op, "operands of '%s' must be numbers, got %s and %s",
			op.Lexeme, left.TypeName(), right.TypeName())
	}

	switch op.Kind {
	case token.MINUS:
		return l - r, nil
	case token.STAR:
		return l * r, nil
	case token.SLASH:
		if r == 0 {
			return nil, runtimeErr(op, "division by zero")
		}
		return l / r, nil
	case token.GT:
		return BoolVal(l > r), nil
	case token.GTE:
		return BoolVal(l >= r), nil
	case token.LT:
		return BoolVal(l < r), nil
	case token.LTE:
		return BoolVal(l <= r), nil
	default:
		return nil, runtimeErr(op, "unknown binary operator: %s", op.Kind)
	}
}
