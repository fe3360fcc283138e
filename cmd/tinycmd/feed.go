// =============================================================================
// feed.go - Byte Stream Front End
// =============================================================================
//
// "tinycmd feed" treats stdin as a serial line: bytes are pushed into the
// interpreter one at a time and a '\n' or '\r' completes a command, exactly
// as a UART receive interrupt would drive it. There is no prompt and no
// line editing. Errors for individual lines are printed to stderr and the
// stream carries on.
//
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tinycmd/tinycmd/tinycmd"
)

// runFeed streams r through a fresh interpreter until EOF or cancellation.
func (a *app) runFeed(ctx context.Context, r io.Reader, out, errOut io.Writer) error {
	lineErr := func(err error) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	in, _, err := a.newInterpreter(out, tinycmd.WithLineErrorHandler(lineErr))
	if err != nil {
		return err
	}

	if err := in.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
