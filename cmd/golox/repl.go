package main

import (
	"errors"
	"fmt"
	"golox/internal/diag"
	"golox/internal/lexer"
	"golox/internal/parser"
	"golox/internal/runtime"
	"golox/internal/token"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// ---- ANSI colors ----

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// session is the REPL state that outlives a single input line: the
// interpreter with its globals and any unfinished multi-line input.
type session struct {
	interp      *runtime.Interpreter
	out         io.Writer
	errOut      io.Writer
	color       bool
	accumulated strings.Builder
	braceDepth  int
}

func newSession(out, errOut io.Writer, color bool) *session {
	return &session{
		interp: runtime.NewInterpreter(out),
		out:    out,
		errOut: errOut,
		color:  color,
	}
}

func (s *session) paint(color, text string) string {
	return paint(s.color, color, text)
}

func paint(enabled bool, color, text string) string {
	if !enabled {
		return text
	}
	return color + text + colorReset
}

// pending reports whether the session is waiting for more lines.
func (s *session) pending() bool {
	return s.braceDepth > 0
}

// cancel drops unfinished multi-line input.
func (s *session) cancel() {
	s.accumulated.Reset()
	s.braceDepth = 0
}

// feed adds one input line. Once braces balance, the accumulated input is
// executed.
func (s *session) feed(line string) {
	s.braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
	s.accumulated.WriteString(line)
	s.accumulated.WriteString("\n")
	if s.braceDepth > 0 {
		return
	}
	s.braceDepth = 0

	source := s.accumulated.String()
	s.accumulated.Reset()
	if strings.TrimSpace(source) == "" {
		return
	}
	s.execute(source)
}

// execute runs one complete chunk of input. Errors are reported and the
// session keeps its globals.
func (s *session) execute(source string) {
	l := lexer.New(source, "<repl>")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		s.printDiags(lexDiags)
		return
	}

	stmts, parseDiags := parser.New(tokens).Parse()
	if len(parseDiags) > 0 {
		s.printDiags(parseDiags)
		return
	}

	if err := s.interp.RunInteractive(stmts); err != nil {
		fmt.Fprintln(s.errOut, s.paint(colorRed, err.Error()))
	}
}

func (s *session) printDiags(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(s.errOut, s.paint(colorRed, d.String()))
	}
}

// completions lists the reserved words and the current global names.
func (s *session) completions(string) []string {
	var names []string
	names = append(names, token.Keywords()...)
	names = append(names, s.interp.Globals().Names()...)
	sort.Strings(names)
	return names
}

// ---- repl command ----

func (c *cli) cmdRepl() int {
	color := c.cfg.REPL.Color
	prompt := c.cfg.REPL.Prompt
	continuePrompt := c.cfg.REPL.ContinuePrompt

	var s *session
	completer := readline.NewPrefixCompleter(readline.PcItemDynamic(func(line string) []string {
		return s.completions(line)
	}))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            paint(color, colorGreen, prompt),
		HistoryFile:       c.cfg.HistoryPath(),
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(c.stderr, "readline init failed: %v\n", err)
		return c.cfg.ExitCodes.Usage
	}
	defer rl.Close()

	s = newSession(rl.Stdout(), rl.Stderr(), color)

	fmt.Fprintf(s.out, "%s %s\n\n",
		s.paint(colorBold+colorCyan, "golox REPL"), s.paint(colorGray, "(type 'exit' or Ctrl+D to quit)"))

	for {
		if s.pending() {
			rl.SetPrompt(s.paint(colorGray, continuePrompt))
		} else {
			rl.SetPrompt(s.paint(colorGreen, prompt))
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if s.pending() {
					s.cancel()
					continue
				}
				fmt.Fprintf(s.out, "\n%s\n", s.paint(colorGray, "(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			// Ctrl+D
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
			}
			return 0
		}

		if !s.pending() && strings.TrimSpace(line) == "exit" {
			return 0
		}
		s.feed(line)
	}
}
