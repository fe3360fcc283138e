package tinycmd

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder registers handlers that log every dispatched line.
type recorder struct {
	lines []string
}

func (r *recorder) handle(cmd *Command) error {
	r.lines = append(r.lines, strings.Join(append([]string{cmd.Name()}, cmd.Args()...), " "))
	return nil
}

func newRecordingInterpreter(t *testing.T, opts ...Option) (*Interpreter, *recorder) {
	t.Helper()
	in := newTestInterpreter(t, opts...)
	rec := &recorder{}
	require.NoError(t, in.RegisterFunc("LED", rec.handle))
	require.NoError(t, in.RegisterFunc("add", rec.handle))
	return in, rec
}

func TestFeedDispatchesOnTerminator(t *testing.T) {
	in, rec := newRecordingInterpreter(t)

	for _, c := range []byte("LED ON") {
		processed, err := in.Feed(c)
		require.NoError(t, err)
		require.False(t, processed)
	}
	assert.Empty(t, rec.lines)

	processed, err := in.Feed('\r')
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = in.Feed('\n')
	require.NoError(t, err)
	assert.False(t, processed, "CRLF dispatches once")

	assert.Equal(t, []string{"LED ON"}, rec.lines)
}

func TestFeedReturnsProcessError(t *testing.T) {
	in, _ := newRecordingInterpreter(t)
	for _, c := range []byte("FAN") {
		_, err := in.Feed(c)
		require.NoError(t, err)
	}
	processed, err := in.Feed('\n')
	assert.True(t, processed)
	assert.ErrorIs(t, err, ErrNoMatchingCommand)
}

func TestFeedOverflowDiscardsUntilTerminator(t *testing.T) {
	in, rec := newRecordingInterpreter(t)

	long := strings.Repeat("x", in.Buffer().Cap())
	for _, c := range []byte(long) {
		_, err := in.Feed(c)
		require.NoError(t, err)
	}
	_, err := in.Feed('y')
	assert.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, 0, in.Buffer().Len())

	// Rest of the overlong line is dropped silently.
	for _, c := range []byte("LED ON") {
		_, err := in.Feed(c)
		require.NoError(t, err)
	}
	processed, err := in.Feed('\n')
	require.NoError(t, err)
	assert.False(t, processed)
	assert.Empty(t, rec.lines)

	for _, c := range []byte("LED OFF\n") {
		_, err = in.Feed(c)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"LED OFF"}, rec.lines)
}

func TestProcessEndsOverflowDiscard(t *testing.T) {
	in, rec := newRecordingInterpreter(t)

	for _, c := range []byte(strings.Repeat("x", in.Buffer().Cap()+1)) {
		in.Feed(c)
	}

	require.NoError(t, in.PutLine("LED ON"))
	require.NoError(t, in.Process())

	for _, c := range []byte("add 1 2\n") {
		_, err := in.Feed(c)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"LED ON", "add 1 2"}, rec.lines)
}

func TestWriteRoutesLineErrors(t *testing.T) {
	var lineErrs []error
	in, rec := newRecordingInterpreter(t, WithLineErrorHandler(func(err error) {
		lineErrs = append(lineErrs, err)
	}))

	input := []byte("LED ON\nnope\nadd 1 2\nLED a b c d\n")
	n, err := in.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)

	assert.Equal(t, []string{"LED ON", "add 1 2"}, rec.lines)
	require.Len(t, lineErrs, 2)
	assert.ErrorIs(t, lineErrs[0], ErrNoMatchingCommand)
	assert.ErrorIs(t, lineErrs[1], ErrTooManyArguments)
}

func TestWriteRoutesHandlerErrors(t *testing.T) {
	var lineErrs []error
	in := newTestInterpreter(t, WithLineErrorHandler(func(err error) {
		lineErrs = append(lineErrs, err)
	}))
	overheated := errors.New("overheated")
	require.NoError(t, in.RegisterFunc("FAN", func(cmd *Command) error {
		if cmd.ArgCheck("ON", 0) {
			return overheated
		}
		return nil
	}))

	_, err := in.Write([]byte("FAN OFF\nFAN ON\nFAN OFF\n"))
	require.NoError(t, err)
	require.Len(t, lineErrs, 1)
	assert.ErrorIs(t, lineErrs[0], overheated)
}

func TestRunProcessesStream(t *testing.T) {
	in, rec := newRecordingInterpreter(t)

	input := "LED ON\r\n\r\nadd 2 3\nLED Blink 3"
	require.NoError(t, in.Run(context.Background(), strings.NewReader(input)))

	assert.Equal(t, []string{"LED ON", "add 2 3", "LED Blink 3"}, rec.lines, "partial line at EOF is dispatched")
	assert.Equal(t, 0, in.Buffer().Len())
}

func TestRunLargeInputInChunks(t *testing.T) {
	in, rec := newRecordingInterpreter(t)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("add 40 2\n")
	}
	require.NoError(t, in.Run(context.Background(), strings.NewReader(sb.String())))
	assert.Len(t, rec.lines, 50)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("device removed")
}

func TestRunReturnsReadError(t *testing.T) {
	in, _ := newRecordingInterpreter(t)
	err := in.Run(context.Background(), failingReader{})
	assert.EqualError(t, err, "device removed")
}

func TestRunCancellation(t *testing.T) {
	in := newTestInterpreter(t)
	ran := make(chan string, 1)
	require.NoError(t, in.RegisterFunc("LED", func(cmd *Command) error {
		ran <- cmd.Args()[0]
		return nil
	}))
	pr, pw := io.Pipe()
	defer pr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- in.Run(ctx, pr)
	}()

	_, err := pw.Write([]byte("LED ON\n"))
	require.NoError(t, err)

	select {
	case arg := <-ran:
		assert.Equal(t, "ON", arg)
	case <-time.After(2 * time.Second):
		t.Fatal("line was not dispatched")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	pw.Close()
}
