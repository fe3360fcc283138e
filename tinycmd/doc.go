// Package tinycmd provides a line-oriented command interpreter for
// resource-constrained devices and the hosts that talk to them.
//
// An Interpreter accumulates a raw byte stream (typically from a serial port)
// into a fixed-capacity buffer, splits a completed line into a command name
// and a bounded set of arguments, and dispatches to a handler registered under
// that name. It also provides saturating string-to-number conversion for
// argument extraction and a minimal formatted-output routine for responses.
//
// # Wire Format
//
// Input is ASCII text, one command per line, tokens separated by spaces:
//
//	LED ON\n
//	LED Blink 3\r
//	cmd1 check 42 3.5\n
//
// The first token is the command name, compared case-sensitively and exactly.
// Up to Config.MaxTokens-1 further tokens are arguments.
//
// # Capacities
//
// Every buffer is sized once from a Config when the Interpreter is created:
//
//	buffer capacity = NameLen*MaxTokens + (MaxTokens-1)
//	argument slots  = MaxTokens-1
//	registry slots  = ListSize
//
// Appending past any of these fails with a sentinel error (ErrBufferFull,
// ErrLineTooLong, ErrTooManyArguments, ErrRegistryFull) instead of silently
// discarding or overrunning.
//
// # Basic Usage
//
//	in, err := tinycmd.New(tinycmd.DefaultConfig(), tinycmd.WithSink(out))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in.RegisterFunc("LED", func(cmd *tinycmd.Command) error {
//	    switch {
//	    case cmd.ArgCheck("ON", 0):
//	        led.Set(true)
//	    case cmd.ArgCheck("OFF", 0):
//	        led.Set(false)
//	    case cmd.ArgCheck("Blink", 0):
//	        n, err := cmd.ArgInt8(1)
//	        if err != nil {
//	            return err
//	        }
//	        led.Blink(int(n))
//	    }
//	    return nil
//	})
//
//	// Whole-line ingestion
//	in.PutLine("LED ON\n")
//	if err := in.Process(); err != nil {
//	    in.Report("unknown command\n")
//	}
//
//	// Byte-wise ingestion (e.g. from a receive interrupt)
//	for _, b := range []byte("LED OFF\n") {
//	    in.Feed(b)
//	}
//
// # Dispatch Result
//
// Process reports whether a command was found and run, not whether the
// handler succeeded. The handler's own error is available from
// LastHandlerErr and is logged at info level.
//
// # Argument Lifetime
//
// A Command passed to a handler borrows the interpreter's line buffer. It is
// valid only for the duration of that handler call; once Process returns the
// buffer has been cleared and the Command reports every argument as missing.
//
// # Thread Safety
//
// An Interpreter is not safe for concurrent use. Confine it to a single
// goroutine, or use Run, which reads a byte stream on a helper goroutine and
// performs all ingestion and dispatch on the caller's goroutine.
package tinycmd
