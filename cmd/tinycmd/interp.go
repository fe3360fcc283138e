// =============================================================================
// interp.go - Interpreter Wiring
// =============================================================================
//
// Every front end (repl, feed, serve) builds its interpreter the same way:
// the configured capacities, the CLI logger, an output sink and the demo
// command set. This file holds that shared setup plus the one-line
// "put and process" step used by the line-oriented front ends.
//
// =============================================================================

package main

import (
	"io"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// GO CONCEPT: Adapter Types
// -------------------------
// The reporter writes through io.ByteWriter, the interface a serial port
// driver naturally offers. Terminals, pipes and sockets offer io.Writer
// instead. A tiny struct that wraps one interface and implements another is
// the usual Go way to bridge the two; it costs nothing at runtime beyond
// the method call.
//
// Compare with Python: Python would rely on duck typing and simply call
// write() on whatever it was handed. Go checks the method set at compile
// time, so the adapter states the bridge explicitly.

// writerSink adapts an io.Writer to the reporter's sink interface. It also
// implements io.StringWriter so each report is written in one call.
type writerSink struct {
	w io.Writer
}

func (s writerSink) WriteByte(c byte) error {
	_, err := s.w.Write([]byte{c})
	return err
}

func (s writerSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}

// newInterpreter builds an interpreter from the app's config that reports
// to out, with the demo commands registered.
func (a *app) newInterpreter(out io.Writer, opts ...tinycmd.Option) (*tinycmd.Interpreter, *demo, error) {
	base := []tinycmd.Option{tinycmd.WithLogger(a.log)}
	if out != nil {
		base = append(base, tinycmd.WithSink(writerSink{w: out}))
	}
	in, err := tinycmd.New(a.file.core(), append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	d, err := registerDemo(in)
	if err != nil {
		return nil, nil, err
	}
	return in, d, nil
}

// runLine loads one line and dispatches it. The error is the dispatch error
// when no command ran, otherwise the handler's own error.
func runLine(in *tinycmd.Interpreter, line string) error {
	if err := in.PutLine(line); err != nil {
		return err
	}
	if err := in.Process(); err != nil {
		return err
	}
	return in.LastHandlerErr()
}
