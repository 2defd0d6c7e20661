package ast

import (
	"golox/internal/span"
	"golox/internal/token"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	// ---- Expressions ----
	case *AssignExpr:
		return m("AssignExpr", n.Span, "name", n.Name.Lexeme, "value", NodeToMap(n.Value))
	case *BinaryExpr:
		return m("BinaryExpr", n.Span,
			"op", opStr(n.Operator),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *TernaryExpr:
		return m("TernaryExpr", n.Span,
			"condition", NodeToMap(n.Condition),
			"then", NodeToMap(n.Then),
			"else", NodeToMap(n.Else))
	case *CommaExpr:
		return m("CommaExpr", n.Span,
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *GroupingExpr:
		return m("GroupingExpr", n.Span, "inner", NodeToMap(n.Inner))
	case *LiteralExpr:
		return m("LiteralExpr", n.Span, "value", n.Value)
	case *UnaryExpr:
		return m("UnaryExpr", n.Span, "op", opStr(n.Operator), "operand", NodeToMap(n.Right))
	case *VariableExpr:
		return m("VariableExpr", n.Span, "name", n.Name.Lexeme)

	// ---- Statements ----
	case *ExprStmt:
		return m("ExprStmt", n.Span, "expr", NodeToMap(n.Expr))
	case *PrintStmt:
		return m("PrintStmt", n.Span, "expr", NodeToMap(n.Expr))
	case *VarStmt:
		result := m("VarStmt", n.Span, "name", n.Name.Lexeme)
		if n.Init != nil {
			result["init"] = NodeToMap(n.Init)
		}
		return result
	case *BlockStmt:
		return m("BlockStmt", n.Span, "stmts", StmtsToSlice(n.Stmts))

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// StmtsToSlice converts a statement list with NodeToMap.
func StmtsToSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}

func opStr(tok token.Token) string {
	return tok.Kind.String()
}
