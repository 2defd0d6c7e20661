// Package parser implements the syntax analysis for golox.
// It is a recursive descent parser with one function per precedence tier.
//
// Grammar, lowest to highest binding:
//
//	program     → declaration* EOF
//	declaration → "var" IDENT ( "=" expression )? ";" | statement
//	statement   → "print" expression ";" | "{" declaration* "}" | expression ";"
//	expression  → assignment ( "," assignment )*
//	assignment  → IDENT "=" assignment | ternary
//	ternary     → equality ( "?" ternary ":" ternary )?
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | primary
//	primary     → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")" | IDENT
package parser

import (
	"golox/internal/ast"
	"golox/internal/diag"
	"golox/internal/span"
	"golox/internal/token"
)

// errSyntax marks a syntax error that has already been recorded as a
// diagnostic. It unwinds the parse back to the enclosing declaration.
type errSyntax struct{ d diag.Diagnostic }

func (e *errSyntax) Error() string { return e.d.String() }

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a new parser from a token slice. The slice is expected to end
// with an EOF token, as produced by the lexer.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		var end span.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF, Span: span.At(end)})
	}
	return &Parser{tokens: tokens}
}

// Parse parses the whole program and returns the top-level statements and
// diagnostics. A declaration that fails to parse contributes no statement;
// parsing resumes at the next statement boundary.
func (p *Parser) Parse() ([]ast.Stmt, []diag.Diagnostic) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.diags
}

// ParseExpression parses a single expression that must span all tokens.
func (p *Parser) ParseExpression() (ast.Expr, []diag.Diagnostic) {
	expr, err := p.expression()
	if err != nil {
		return nil, p.diags
	}
	if !p.isAtEnd() {
		p.errorAt(p.peek(), diag.CodeExpectedToken, "expected end of expression")
		return nil, p.diags
	}
	return expr, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

// match consumes the current token if it has one of the given kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// consume consumes a token of the given kind or fails with an E2001 diagnostic.
func (p *Parser) consume(kind token.Kind, what string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), diag.CodeExpectedToken, "expected %s", what)
}

// errorAt records a diagnostic at tok and returns it as an error.
func (p *Parser) errorAt(tok token.Token, code, format string, args ...interface{}) error {
	d := diag.Errorf(code, tok.Span, format, args...)
	if tok.Kind == token.EOF {
		d.Message += " at end"
	} else {
		d.Message += ", got '" + tok.Lexeme + "'"
	}
	p.diags = append(p.diags, d)
	return &errSyntax{d: d}
}

// ============================================================
// Error recovery
// ============================================================

// synchronize discards the offending token and keeps discarding until a
// statement boundary: just past a ';' or before a statement keyword.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.KW_CLASS, token.KW_FUN, token.KW_VAR, token.KW_FOR,
			token.KW_IF, token.KW_WHILE, token.KW_PRINT, token.KW_RETURN:
			return
		}
		p.advance()
	}
}

// ============================================================
// Declarations and statements
// ============================================================

// declaration parses one declaration, recovering from syntax errors.
func (p *Parser) declaration() ast.Stmt {
	var (
		stmt ast.Stmt
		err  error
	)
	if p.match(token.KW_VAR) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// varDeclaration parses the rest of: var IDENT [ = expression ] ;
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	start := p.previous()
	name, err := p.consume(token.IDENT, "variable name")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(token.ASSIGN) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarStmt{
		StmtBase: makeStmtBase(start.Span.Start, p.prevEnd()),
		Name:     name,
		Init:     init,
	}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.KW_PRINT):
		return p.printStatement()
	case p.match(token.LBRACE):
		return p.block()
	default:
		return p.expressionStatement()
	}
}

// printStatement parses the rest of: print expression ;
func (p *Parser) printStatement() (ast.Stmt, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "';' after value"); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{
		StmtBase: makeStmtBase(keyword.Span.Start, p.prevEnd()),
		Keyword:  keyword,
		Expr:     value,
	}, nil
}

// expressionStatement parses: expression ;
func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{
		StmtBase: makeStmtBase(expr.GetSpan().Start, p.prevEnd()),
		Expr:     expr,
	}, nil
}

// block parses the rest of: { declaration* }
// Declarations inside the block recover on their own, so a bad statement
// does not discard its siblings.
func (p *Parser) block() (ast.Stmt, error) {
	start := p.previous()
	var stmts []ast.Stmt

	for !p.check(token.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if _, err := p.consume(token.RBRACE, "'}' after block"); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{
		StmtBase: makeStmtBase(start.Span.Start, p.prevEnd()),
		Stmts:    stmts,
	}, nil
}

// ============================================================
// Expressions
// ============================================================

// expression parses: assignment ( "," assignment )*
func (p *Parser) expression() (ast.Expr, error) {
	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}

	for p.match(token.COMMA) {
		op := p.previous()
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		expr = &ast.CommaExpr{
			ExprBase: makeExprBase(expr.GetSpan().Start, right.GetSpan().End),
			Left:     expr,
			Operator: op,
			Right:    right,
		}
	}
	return expr, nil
}

// assignment parses: IDENT "=" assignment | ternary
// The target is parsed as an ordinary expression first and then checked.
// An invalid target is reported but does not unwind the statement.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}

	if p.match(token.ASSIGN) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{
				ExprBase: makeExprBase(v.Span.Start, value.GetSpan().End),
				Name:     v.Name,
				Value:    value,
			}, nil
		}
		p.diags = append(p.diags, diag.Errorf(diag.CodeInvalidAssignment, equals.Span, "invalid assignment target"))
	}
	return expr, nil
}

// ternary parses: equality ( "?" ternary ":" ternary )?
func (p *Parser) ternary() (ast.Expr, error) {
	cond, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.match(token.QUESTION) {
		return cond, nil
	}

	question := p.previous()
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	colon, err := p.consume(token.COLON, "':' in conditional expression")
	if err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{
		ExprBase:  makeExprBase(cond.GetSpan().Start, els.GetSpan().End),
		Condition: cond,
		Question:  question,
		Then:      then,
		Colon:     colon,
		Else:      els,
	}, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.NEQ, token.EQ)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.GT, token.GTE, token.LT, token.LTE)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary parses one left-associative tier: operand ( op operand )*
func (p *Parser) binary(operand func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{
			ExprBase: makeExprBase(expr.GetSpan().Start, right.GetSpan().End),
			Left:     expr,
			Operator: op,
			Right:    right,
		}
	}
	return expr, nil
}

// unary parses: ( "!" | "-" ) unary | primary
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			ExprBase: makeExprBase(op.Span.Start, right.GetSpan().End),
			Operator: op,
			Right:    right,
		}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.KW_FALSE:
		p.advance()
		return literal(tok, false), nil
	case token.KW_TRUE:
		p.advance()
		return literal(tok, true), nil
	case token.KW_NIL:
		p.advance()
		return literal(tok, nil), nil
	case token.NUMBER, token.STRING:
		p.advance()
		return literal(tok, tok.Literal), nil
	case token.IDENT:
		p.advance()
		return &ast.VariableExpr{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Name:     tok,
		}, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{
			ExprBase: makeExprBase(tok.Span.Start, p.prevEnd()),
			Inner:    inner,
		}, nil
	default:
		return nil, p.errorAt(tok, diag.CodeExpectedExpr, "expected expression")
	}
}

func literal(tok token.Token, value any) *ast.LiteralExpr {
	return &ast.LiteralExpr{
		ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
		Value:    value,
	}
}

// ============================================================
// Span helpers
// ============================================================

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func makeExprBase(start, end span.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}

func makeStmtBase(start, end span.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}
