package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedInput is a lineSource that replays fixed lines, then returns err
// (io.EOF when nil).
type scriptedInput struct {
	lines   []string
	prompts []string
	err     error
}

func (s *scriptedInput) GetLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newTestREPL(t *testing.T, input lineSource) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	in, d, err := testApp(t).newInterpreter(&out)
	require.NoError(t, err)
	return &repl{
		in:     in,
		demo:   d,
		input:  input,
		out:    &out,
		errOut: &errOut,
		prompt: "> ",
	}, &out, &errOut
}

func TestREPLRunsLinesUntilEOF(t *testing.T) {
	input := &scriptedInput{lines: []string{"LED ON", "", "   ", "add 2 40"}}
	r, out, errOut := newTestREPL(t, input)

	require.NoError(t, r.run())
	assert.Equal(t, "LED on\n42\n\n", out.String(), "EOF prints a final newline")
	assert.Empty(t, errOut.String())
	assert.Len(t, input.prompts, 5)
	assert.Equal(t, "> ", input.prompts[0])
}

func TestREPLReportsErrorsAndContinues(t *testing.T) {
	input := &scriptedInput{lines: []string{"FAN ON", "LED Dim", "add 1 1"}}
	r, out, errOut := newTestREPL(t, input)

	require.NoError(t, r.run())
	assert.Equal(t, "Error: no matching command\nError: usage: LED ON|OFF|Blink <n>\n", errOut.String())
	assert.Equal(t, "2\n\n", out.String())
}

func TestREPLQuit(t *testing.T) {
	input := &scriptedInput{lines: []string{"LED ON", ".quit", "LED OFF"}}
	r, out, _ := newTestREPL(t, input)

	require.NoError(t, r.run())
	assert.Equal(t, "LED on\n", out.String())
	assert.Equal(t, []string{"LED OFF"}, input.lines, "nothing read after .quit")
}

func TestREPLDotCommands(t *testing.T) {
	input := &scriptedInput{lines: []string{".help", ".bogus", ".exit"}}
	r, out, errOut := newTestREPL(t, input)

	require.NoError(t, r.run())
	assert.Contains(t, out.String(), "Dot-commands:")
	assert.Contains(t, out.String(), "  cmd1 check|check2 <int> <float>\n")
	assert.Contains(t, out.String(), "Lines hold at most 35 bytes and 3 arguments.")
	assert.Equal(t, "Error: unknown dot-command .bogus (try .help)\n", errOut.String())
}

func TestREPLInputError(t *testing.T) {
	readErr := errors.New("terminal gone")
	r, _, _ := newTestREPL(t, &scriptedInput{err: readErr})
	assert.ErrorIs(t, r.run(), readErr)
}

func TestBasicLineEditor(t *testing.T) {
	var out bytes.Buffer
	le := NewLineEditor(strings.NewReader("LED ON\nadd 1 2\n"), &out)
	defer le.Close()
	assert.False(t, le.IsInteractive())

	line, err := le.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "LED ON", line)

	line, err = le.GetLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "add 1 2", line)

	_, err = le.GetLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String(), "prompt printed manually")
}

func TestBasicLineEditorSkipsLongLine(t *testing.T) {
	long := strings.Repeat("x", MaxLineLength*2+1)
	le := newBasicEditor(strings.NewReader(long+"\nLED ON\r\n"+long), io.Discard)

	_, err := le.GetLine("")
	assert.ErrorIs(t, err, ErrInputLineTooLong)

	line, err := le.GetLine("")
	require.NoError(t, err)
	assert.Equal(t, "LED ON", line)

	_, err = le.GetLine("")
	assert.ErrorIs(t, err, ErrInputLineTooLong, "unterminated tail is still rejected")

	_, err = le.GetLine("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestBasicLineEditorFinalLineWithoutNewline(t *testing.T) {
	le := newBasicEditor(strings.NewReader("echo a\necho b"), io.Discard)
	for _, want := range []string{"echo a", "echo b"} {
		line, err := le.GetLine("")
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}
	_, err := le.GetLine("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestREPLContinuesAfterLongLine(t *testing.T) {
	var errOut bytes.Buffer
	r, out, _ := newTestREPL(t, nil)
	r.errOut = &errOut
	long := strings.Repeat("y", MaxLineLength+10)
	r.input = newBasicEditor(strings.NewReader(long+"\necho still here\n"), io.Discard)

	require.NoError(t, r.run())
	assert.Equal(t, "still here\n\n", out.String())
	assert.Equal(t, "Error: input line too long\n", errOut.String())
}

func TestREPLWithBasicEditor(t *testing.T) {
	var errOut bytes.Buffer
	r, out, _ := newTestREPL(t, nil)
	r.errOut = &errOut
	r.input = newBasicEditor(strings.NewReader("echo hi\nLED Blink 2\n.quit\n"), r.out)

	require.NoError(t, r.run())
	assert.Equal(t, "> hi\n> LED blinked 2 times\n> ", out.String())
	assert.Empty(t, errOut.String())
}
