package tinycmd

import (
	"context"
	"errors"
	"io"
)

// readChunkSize is the read size used by Run.
const readChunkSize = 64

func isTerminator(c byte) bool {
	return c == '\n' || c == '\r'
}

// Feed ingests one byte from a byte-wise transport such as a UART receive
// interrupt. A '\n' or '\r' completes the line and runs Process; processed
// reports whether that happened and err is Process's result. A terminator on
// an empty buffer is ignored, so "\r\n" dispatches once.
//
// When a byte does not fit, Feed returns ErrBufferFull, clears the partial
// line and drops input up to the next terminator.
func (in *Interpreter) Feed(c byte) (processed bool, err error) {
	if isTerminator(c) {
		if in.discarding {
			in.discarding = false
			return false, nil
		}
		if in.buf.Len() == 0 {
			return false, nil
		}
		return true, in.Process()
	}
	if in.discarding {
		return false, nil
	}
	if err := in.buf.PutChar(c); err != nil {
		in.discarding = true
		in.buf.Clear()
		in.log.Info("line dropped", "err", err, "capacity", in.buf.Cap())
		return false, err
	}
	return false, nil
}

// Write implements io.Writer by feeding every byte of p. Lines completed
// inside p are dispatched immediately. Per-line errors, including handler
// failures, go to the handler set with WithLineErrorHandler; Write itself
// always consumes all of p.
func (in *Interpreter) Write(p []byte) (int, error) {
	for _, c := range p {
		processed, err := in.Feed(c)
		if processed || err != nil {
			in.lineDone(err)
		}
	}
	return len(p), nil
}

// lineDone passes the outcome of a completed or dropped line to the line
// error handler. A nil err means a handler ran and its own error applies.
func (in *Interpreter) lineDone(err error) {
	if err == nil {
		err = in.lastErr
	}
	if err != nil && in.onLineErr != nil {
		in.onLineErr(err)
	}
}

// Run reads r until EOF or cancellation, dispatching each completed line.
//
// A helper goroutine performs the blocking reads and hands chunks over a
// channel; all ingestion and dispatch happens on the caller's goroutine, which
// is the interpreter's only owner for the duration of the call. A partial line
// left at EOF is dispatched as if terminated. Run returns nil on EOF,
// ctx.Err() on cancellation, and any other read error as is.
//
// After cancellation the helper goroutine exits once its pending Read
// returns; closing r unblocks it.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	chunks := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		buf := make([]byte, readChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk := <-chunks:
			in.Write(chunk)
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				return err
			}
			if in.buf.Len() > 0 && !in.discarding {
				in.lineDone(in.Process())
			}
			in.discarding = false
			return nil
		}
	}
}
