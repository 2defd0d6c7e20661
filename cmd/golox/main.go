// Command golox is the CLI entry point for the golox interpreter.
//
// Usage:
//
//	golox                          Start interactive REPL
//	golox <file>                   Run a source file
//	golox tokens <file> [--json]   Print tokens
//	golox parse  <file>            Print AST as JSON
//	golox run    <file>            Run a source file
//	golox eval   <expr>            Evaluate one expression and print it
//	golox repl                     Start interactive REPL
//	golox config                   Print the effective configuration
package main

import (
	"fmt"
	"golox/internal/ast"
	"golox/internal/config"
	"golox/internal/diag"
	"golox/internal/lexer"
	"golox/internal/parser"
	"golox/internal/runtime"
	"io"
	"os"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cfg = config.Default()
	}
	c := &cli{cfg: cfg, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

// cli holds the output streams and configuration shared by all commands.
// Each command returns the process exit status.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		return c.cmdRepl()
	}

	command := args[0]
	switch command {
	case "tokens", "parse", "run":
		if len(args) < 2 {
			fmt.Fprintln(c.stderr, "error: missing file argument")
			return c.cfg.ExitCodes.Usage
		}
		source, ok := c.readFile(args[1])
		if !ok {
			return c.cfg.ExitCodes.Usage
		}
		switch command {
		case "tokens":
			return c.cmdTokens(source, args[1], hasFlag(args[2:], "--json"))
		case "parse":
			return c.cmdParse(source, args[1])
		default:
			return c.cmdRun(source, args[1])
		}
	case "eval":
		if len(args) < 2 {
			fmt.Fprintln(c.stderr, "error: missing expression argument")
			return c.cfg.ExitCodes.Usage
		}
		return c.cmdEval(args[1])
	case "repl":
		return c.cmdRepl()
	case "config":
		return c.cmdConfig()
	case "help", "-h", "--help":
		c.usage()
		return 0
	}

	if len(args) == 1 {
		source, ok := c.readFile(command)
		if !ok {
			return c.cfg.ExitCodes.Usage
		}
		return c.cmdRun(source, command)
	}
	fmt.Fprintf(c.stderr, "error: unknown command '%s'\n", command)
	c.usage()
	return c.cfg.ExitCodes.Usage
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  golox                          Start interactive REPL")
	fmt.Fprintln(c.stderr, "  golox <file>                   Run a source file")
	fmt.Fprintln(c.stderr, "  golox tokens <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(c.stderr, "  golox parse  <file>            Parse and print AST (JSON)")
	fmt.Fprintln(c.stderr, "  golox run    <file>            Run a source file")
	fmt.Fprintln(c.stderr, "  golox eval   <expr>            Evaluate an expression")
	fmt.Fprintln(c.stderr, "  golox repl                     Start interactive REPL")
	fmt.Fprintln(c.stderr, "  golox config                   Print the effective configuration")
}

func (c *cli) readFile(filename string) (string, bool) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(c.stderr, "error: cannot read file %s: %v\n", filename, err)
		return "", false
	}
	return string(source), true
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// ---- tokens command ----

func (c *cli) cmdTokens(source, filename string, jsonMode bool) int {
	l := lexer.New(source, filename)
	tokens, diags := l.Tokenize()

	if jsonMode {
		if err := printTokensJSON(c.stdout, tokens, diags); err != nil {
			fmt.Fprintf(c.stderr, "error: JSON encoding failed: %v\n", err)
			return c.cfg.ExitCodes.DataError
		}
	} else {
		printTokensText(c.stdout, tokens)
		printDiagsText(c.stderr, diags)
	}

	if len(diags) > 0 {
		return c.cfg.ExitCodes.DataError
	}
	return 0
}

// ---- parse command ----

func (c *cli) cmdParse(source, filename string) int {
	l := lexer.New(source, filename)
	tokens, lexDiags := l.Tokenize()

	p := parser.New(tokens)
	stmts, parseDiags := p.Parse()

	allDiags := append(lexDiags, parseDiags...)

	output := map[string]interface{}{
		"ast":         ast.StmtsToSlice(stmts),
		"diagnostics": diagsToSlice(allDiags),
	}
	if err := printJSON(c.stdout, output); err != nil {
		fmt.Fprintf(c.stderr, "error: JSON encoding failed: %v\n", err)
		return c.cfg.ExitCodes.DataError
	}

	if len(allDiags) > 0 {
		return c.cfg.ExitCodes.DataError
	}
	return 0
}

// ---- run command ----

func (c *cli) cmdRun(source, filename string) int {
	stmts, diags := compile(source, filename)
	if diag.HasErrors(diags) {
		printDiagsText(c.stderr, diags)
		return c.cfg.ExitCodes.DataError
	}

	interp := runtime.NewInterpreter(c.stdout)
	if err := interp.Run(stmts); err != nil {
		fmt.Fprintln(c.stderr, err)
		return c.cfg.ExitCodes.RuntimeError
	}
	return 0
}

// compile lexes and parses source. Lexical errors stop the pipeline before
// parsing.
func compile(source, filename string) ([]ast.Stmt, []diag.Diagnostic) {
	l := lexer.New(source, filename)
	tokens, lexDiags := l.Tokenize()
	if diag.HasErrors(lexDiags) {
		return nil, lexDiags
	}
	return parser.New(tokens).Parse()
}

// ---- eval command ----

func (c *cli) cmdEval(source string) int {
	l := lexer.New(source, "<eval>")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		printDiagsText(c.stderr, lexDiags)
		return c.cfg.ExitCodes.DataError
	}

	expr, parseDiags := parser.New(tokens).ParseExpression()
	if len(parseDiags) > 0 {
		printDiagsText(c.stderr, parseDiags)
		return c.cfg.ExitCodes.DataError
	}

	val, err := runtime.NewInterpreter(c.stdout).Evaluate(expr)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return c.cfg.ExitCodes.RuntimeError
	}
	fmt.Fprintln(c.stdout, runtime.Stringify(val))
	return 0
}

// ---- config command ----

func (c *cli) cmdConfig() int {
	if c.cfg.Path != "" {
		fmt.Fprintf(c.stdout, "# loaded from %s\n", c.cfg.Path)
	}
	if err := config.Encode(c.stdout, c.cfg); err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return c.cfg.ExitCodes.DataError
	}
	return 0
}
