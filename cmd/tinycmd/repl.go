// =============================================================================
// repl.go - REPL Loop
// =============================================================================
//
// The interactive front end: read a line, hand it to the interpreter, print
// the handler's output and any error, repeat. Lines starting with '.' are
// handled locally and never reach the interpreter:
//
//	.help    list dot-commands and the registered commands
//	.quit    leave the REPL (Ctrl-D works too)
//
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// repl runs one REPL session.
type repl struct {
	in     *tinycmd.Interpreter
	demo   *demo
	input  lineSource
	out    io.Writer
	errOut io.Writer
	prompt string
}

// run loops until .quit or end of input. It returns an error only when
// reading input fails.
func (r *repl) run() error {
	for {
		line, err := r.input.GetLine(r.prompt)
		if errors.Is(err, ErrInputLineTooLong) {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ".") {
			if quit := r.dotCommand(trimmed); quit {
				return nil
			}
			continue
		}

		if err := runLine(r.in, line); err != nil {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
		}
	}
}

// dotCommand handles a local command and reports whether the REPL should
// exit.
func (r *repl) dotCommand(line string) (quit bool) {
	switch line {
	case ".quit", ".exit":
		return true
	case ".help":
		r.printHelp()
	default:
		fmt.Fprintf(r.errOut, "Error: unknown dot-command %s (try .help)\n", line)
	}
	return false
}

func (r *repl) printHelp() {
	cfg := r.in.Config()
	fmt.Fprintln(r.out, "Dot-commands:")
	fmt.Fprintln(r.out, "  .help    show this help")
	fmt.Fprintln(r.out, "  .quit    exit")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Commands:")
	for _, line := range r.demo.usageLines() {
		fmt.Fprintf(r.out, "  %s\n", line)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Lines hold at most %d bytes and %d arguments.\n",
		cfg.BufferCapacity(), cfg.MaxArgs())
}
