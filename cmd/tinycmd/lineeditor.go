// =============================================================================
// lineeditor.go - Line Editor with Dual-Mode Operation
// =============================================================================
//
// The REPL reads lines through a dual-mode editor. It checks whether input
// comes from an interactive terminal and picks the input method:
//
//   - Interactive mode: ergochat/readline for line editing with Emacs
//     keybindings, persistent history and history search (Ctrl-R).
//   - Non-interactive mode: a bufio.Reader reading one line at a time, with
//     the prompt printed manually. Used for pipes, files and dumb terminals.
//     A line longer than MaxLineLength is skipped and reported with
//     ErrInputLineTooLong; reading carries on with the next line.
//
// History is stored at ~/.tinycmd_history with a 500-entry limit.
//
// =============================================================================

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the name of the history file in the user's home
	// directory.
	historyFileName = ".tinycmd_history"

	// historySize is the maximum number of history entries to retain.
	historySize = 500
)

// ErrInputLineTooLong reports a non-interactive input line longer than
// MaxLineLength. The line has been skipped.
var ErrInputLineTooLong = errors.New("input line too long")

// GO CONCEPT: Small Interfaces at the Point of Use
// -------------------------------------------------
// The REPL only needs "give me the next line". Declaring that one-method
// interface next to its consumer, instead of depending on *LineEditor
// directly, lets tests drive the REPL from a strings.Reader while the real
// binary uses readline. Any type with a matching GetLine method satisfies
// it; no "implements" declaration is needed.
//
// Compare with Python: Python gets the same effect through duck typing, or
// typing.Protocol when a type checker is involved.

// lineSource supplies REPL input one line at a time.
type lineSource interface {
	GetLine(prompt string) (string, error)
}

// LineEditor provides line input with optional readline support.
type LineEditor struct {
	// interactive is true when input is a terminal and readline is active.
	interactive bool

	// rl is the readline instance, nil in non-interactive mode.
	rl *readline.Instance

	// reader reads lines in non-interactive mode, nil otherwise.
	reader *bufio.Reader

	// eof is set once reader has returned its last partial line.
	eof bool

	// out receives the prompt in non-interactive mode.
	out io.Writer
}

// NewLineEditor creates a line editor over in and out. Readline is used
// only when in is a terminal and TERM is not "dumb"; if readline cannot be
// initialized the editor falls back to basic input.
func NewLineEditor(in io.Reader, out io.Writer) *LineEditor {
	f, isFile := in.(*os.File)
	isInteractive := isFile && term.IsTerminal(int(f.Fd())) &&
		os.Getenv("TERM") != "dumb"
	if !isInteractive {
		return newBasicEditor(in, out)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            filepath.Join(homeDir(), historyFileName),
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
		Prompt:                 "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newBasicEditor(in, out)
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
		out:         out,
	}
}

// newBasicEditor creates a non-interactive editor that holds at most
// MaxLineLength bytes of a line.
func newBasicEditor(in io.Reader, out io.Writer) *LineEditor {
	return &LineEditor{
		interactive: false,
		reader:      bufio.NewReaderSize(in, MaxLineLength),
		out:         out,
	}
}

// GetLine displays prompt and reads one line. It returns io.EOF when input
// ends (Ctrl-D in a terminal). Ctrl-C abandons the current line and returns
// an empty one.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", nil
		}
		return "", err
	}

	// Blank lines are not worth recalling.
	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}
	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Fprint(le.out, prompt)
	if le.eof {
		return "", io.EOF
	}

	line, err := le.reader.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = le.reader.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		le.eof = err != nil
		return "", ErrInputLineTooLong
	}
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if len(line) == 0 {
			return "", io.EOF
		}
		// A final line without a newline still counts.
		le.eof = true
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

// Close releases readline's terminal state. Safe to call more than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether readline is in use.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}

// homeDir returns the user's home directory, or "" if it cannot be found,
// in which case history lands in the working directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
