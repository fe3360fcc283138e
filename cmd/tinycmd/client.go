// =============================================================================
// client.go - Unix Socket Client
// =============================================================================
//
// The client side of the socket protocol, used by "tinycmd send". A request
// is one line and so is the reply.
//
// =============================================================================

package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"
)

var errEmbeddedNewline = errors.New("command line contains a line break")

// client is a connection to a running "tinycmd serve".
type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// dial connects to the server at socketPath within ConnectionTimeout.
func dial(ctx context.Context, socketPath string) (*client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(connectCtx, "unix", socketPath)
	if err != nil {
		return nil, newConnectionError("failed to connect", err)
	}
	return &client{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, MaxLineLength),
	}, nil
}

// send transmits line and waits for the reply. output holds the handler's
// lines without terminators. A server-side failure is a *RemoteError.
func (c *client) send(ctx context.Context, line string) (output []string, err error) {
	deadline := time.Now().Add(CommandTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, newConnectionError("failed to set deadline", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return nil, errEmbeddedNewline
	}
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return nil, newConnectionError("failed to send command", err)
	}

	reply, err := c.reader.ReadSlice('\n')
	if err != nil {
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			return nil, ErrProtocolLineTooLong
		case errors.Is(err, os.ErrDeadlineExceeded):
			return nil, ErrTimeout
		}
		return nil, newConnectionError("failed to read reply", err)
	}
	return parseReply(string(reply))
}

// close closes the connection.
func (c *client) close() error {
	return c.conn.Close()
}
