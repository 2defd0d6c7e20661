// Package ast defines the abstract syntax tree for golox.
//
// Both node categories are closed sets: the marker methods are unexported, so
// only the types declared here satisfy Expr and Stmt, and consumers dispatch
// with exhaustive type switches.
package ast

import (
	"golox/internal/span"
	"golox/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// Expressions
// ============================================================

// AssignExpr represents name = value.
type AssignExpr struct {
	ExprBase
	Name  token.Token
	Value Expr
}

// BinaryExpr represents a binary operation: a + b, x == y.
type BinaryExpr struct {
	ExprBase
	Left     Expr
	Operator token.Token
	Right    Expr
}

// TernaryExpr represents cond ? then : else.
type TernaryExpr struct {
	ExprBase
	Condition Expr
	Question  token.Token
	Then      Expr
	Colon     token.Token
	Else      Expr
}

// CommaExpr represents left , right. Left is evaluated for its effect and
// the value of Right is the value of the whole expression.
type CommaExpr struct {
	ExprBase
	Left     Expr
	Operator token.Token
	Right    Expr
}

// GroupingExpr represents a parenthesized expression.
type GroupingExpr struct {
	ExprBase
	Inner Expr
}

// LiteralExpr represents a literal value: nil, a bool, a float64 or a string.
type LiteralExpr struct {
	ExprBase
	Value any
}

// UnaryExpr represents a unary operation: !x, -x.
type UnaryExpr struct {
	ExprBase
	Operator token.Token
	Right    Expr
}

// VariableExpr represents a variable reference.
type VariableExpr struct {
	ExprBase
	Name token.Token
}

// ============================================================
// Statements
// ============================================================

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// PrintStmt represents: print expr;
type PrintStmt struct {
	StmtBase
	Keyword token.Token
	Expr    Expr
}

// VarStmt represents: var name [= init];
// Init is nil when the declaration has no initializer.
type VarStmt struct {
	StmtBase
	Name token.Token
	Init Expr
}

// BlockStmt represents: { stmts }
type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}
