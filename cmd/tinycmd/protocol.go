// =============================================================================
// protocol.go - Socket Line Protocol
// =============================================================================
//
// The "serve" and "send" subcommands talk over a Unix domain socket using a
// plain text protocol. The client writes one command line terminated by '\n'
// and the server answers with exactly one line:
//
//	OK:<output>       the command ran and its handler succeeded
//	ERR:<message>     the line was rejected or the handler failed
//
// <output> is whatever the handler printed, with its lines joined by the
// ASCII record separator (0x1E) so a multi-line result still fits in one
// reply line. Example exchange:
//
//	-> add 2 40
//	<- OK:42
//	-> help
//	<- OK:  LED ON|OFF|Blink <n>\x1E  cmd1 check|check2 <int> <float>\x1E...
//	-> LED Dim
//	<- ERR:usage: LED ON|OFF|Blink <n>
//
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// OKPrefix starts the reply to a successful command.
	OKPrefix = "OK:"

	// ErrorPrefix starts the reply to a failed command.
	ErrorPrefix = "ERR:"

	// MultiLineSeparator joins the lines of a multi-line reply.
	MultiLineSeparator = "\x1E"

	// DefaultSocketPath is used when neither the flag nor the config file
	// names a socket.
	DefaultSocketPath = "/tmp/tinycmd.sock"

	// MaxLineLength bounds a single protocol line in either direction.
	MaxLineLength = 4096

	// CommandTimeout is how long the client waits for a reply.
	CommandTimeout = 10 * time.Second

	// ConnectionTimeout is how long the client waits to connect.
	ConnectionTimeout = 5 * time.Second
)

// Errors returned by the socket client.
var (
	// ErrTimeout means no reply arrived within CommandTimeout.
	ErrTimeout = errors.New("command timed out")

	// ErrProtocolLineTooLong means a protocol line exceeded MaxLineLength.
	ErrProtocolLineTooLong = errors.New("protocol line too long")

	// ErrUnexpectedReply means the server sent a line with no status prefix.
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// ConnectionError represents a failure to reach or talk to the server.
type ConnectionError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

func newConnectionError(message string, cause error) error {
	return &ConnectionError{Message: message, Cause: cause}
}

// RemoteError carries the message of an ERR: reply.
type RemoteError struct {
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// formatReply builds the reply line for one command from the handler output
// and the outcome. Output is dropped on failure.
func formatReply(output string, err error) string {
	if err != nil {
		// A message must stay on one line.
		msg := strings.ReplaceAll(err.Error(), "\n", " ")
		return ErrorPrefix + msg + "\n"
	}
	output = strings.TrimRight(output, "\r\n")
	if output == "" {
		return OKPrefix + "\n"
	}
	lines := strings.Split(output, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return OKPrefix + strings.Join(lines, MultiLineSeparator) + "\n"
}

// parseReply splits a reply line into the handler's output lines and the
// error it carries, a *RemoteError for ERR:.
func parseReply(line string) (output []string, err error) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case strings.HasPrefix(line, OKPrefix):
		data := strings.TrimPrefix(line, OKPrefix)
		if data == "" {
			return nil, nil
		}
		return strings.Split(data, MultiLineSeparator), nil
	case strings.HasPrefix(line, ErrorPrefix):
		return nil, &RemoteError{Message: strings.TrimPrefix(line, ErrorPrefix)}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnexpectedReply, line)
}
