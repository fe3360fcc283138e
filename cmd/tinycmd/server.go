// =============================================================================
// server.go - Unix Socket Front End
// =============================================================================
//
// "tinycmd serve" exposes one interpreter on a Unix domain socket. The
// interpreter is not safe for concurrent use and it keeps the demo state
// (the LED), so connections are served one at a time by the goroutine that
// owns it. A second client's connection is accepted by the kernel and waits
// in the listen backlog until the current client disconnects.
//
// Each received line is answered with a single OK: or ERR: reply line
// carrying the handler's output (see protocol.go).
//
// =============================================================================

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// server answers protocol lines on behalf of one interpreter.
type server struct {
	in  *tinycmd.Interpreter
	log *slog.Logger

	// output collects what the handler prints for the current line.
	output bytes.Buffer
}

// newServer installs the server's output buffer as in's sink.
func newServer(in *tinycmd.Interpreter, log *slog.Logger) *server {
	s := &server{in: in, log: log}
	in.SetSink(&s.output)
	return s
}

// listenUnix listens on socketPath, replacing a stale socket file left by a
// previous run.
func listenUnix(socketPath string) (net.Listener, error) {
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", socketPath, err)
	}
	return ln, nil
}

// GO CONCEPT: Unblocking Accept with Context Cancellation
// -------------------------------------------------------
// net.Listener.Accept blocks and takes no context. The usual pattern is a
// helper goroutine that waits for ctx.Done() and closes the listener, which
// makes the blocked Accept return an error. After that error the loop looks
// at ctx.Err() to tell a requested shutdown from a real failure.
//
// context.AfterFunc (Go 1.21) does the same for each connection: it closes
// the connection when the context ends, without a goroutine per client
// waiting on a select.

// serve accepts connections until ctx is cancelled. It returns nil on
// cancellation and the accept error otherwise. ln is closed on return.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	s.log.Info("listening", "socket", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.handleConn(ctx, conn)
	}
}

// handleConn serves one client until it disconnects or ctx ends.
func (s *server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	s.log.Debug("client connected")
	defer s.log.Debug("client disconnected")

	reader := bufio.NewReaderSize(conn, MaxLineLength)
	for {
		line, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			// Drop the rest of an oversized line and reject it.
			if discardErr := s.discardLine(reader); discardErr != nil {
				return
			}
			if s.reply(conn, ErrProtocolLineTooLong) != nil {
				return
			}
			continue
		}
		if len(line) > 0 {
			s.output.Reset()
			if s.reply(conn, runLine(s.in, string(line))) != nil {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.log.Warn("read failed", "err", err)
			}
			return
		}
	}
}

// discardLine consumes input up to and including the next '\n'.
func (s *server) discardLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

// reply writes the reply line for the current command.
func (s *server) reply(w io.Writer, err error) error {
	_, werr := io.WriteString(w, formatReply(s.output.String(), err))
	return werr
}
