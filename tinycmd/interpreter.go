package tinycmd

import (
	"io"
	"log/slog"
)

// Interpreter owns one line buffer, one command registry and one reporter.
// It is the single context threaded through ingestion and dispatch; it is not
// safe for concurrent use.
type Interpreter struct {
	cfg Config
	buf *Buffer
	reg *Registry
	rep *Reporter
	log *slog.Logger

	// gen numbers dispatches; dispatching is set while a handler runs.
	gen         uint64
	dispatching bool
	lastErr     error

	// discarding is set after a byte overflowed the buffer; input is dropped
	// until the next line terminator.
	discarding bool
	onLineErr  func(err error)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.log = logger.With("component", "tinycmd")
		}
	}
}

// WithSink installs the output sink used by Report and Command.Printf.
func WithSink(sink io.ByteWriter) Option {
	return func(in *Interpreter) {
		in.rep.SetSink(sink)
	}
}

// WithLineErrorHandler sets a callback for lines completed by Write or Run
// that fail, which have no caller to return them to. It receives dispatch
// errors and the errors returned by handlers.
func WithLineErrorHandler(fn func(err error)) Option {
	return func(in *Interpreter) {
		in.onLineErr = fn
	}
}

// New creates an Interpreter with every buffer sized from cfg.
func New(cfg Config, opts ...Option) (*Interpreter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	in := &Interpreter{
		cfg: cfg,
		buf: newBuffer(cfg),
		reg: newRegistry(cfg),
		rep: NewReporter(nil, cfg.ReportBufferSize),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// Config returns the configuration the interpreter was built with.
func (in *Interpreter) Config() Config {
	return in.cfg
}

// Buffer returns the line buffer.
func (in *Interpreter) Buffer() *Buffer {
	return in.buf
}

// Registry returns the command table.
func (in *Interpreter) Registry() *Registry {
	return in.reg
}

// PutChar appends one byte to the line buffer.
func (in *Interpreter) PutChar(c byte) error {
	return in.buf.PutChar(c)
}

// PutLine replaces the line buffer content with a complete line.
func (in *Interpreter) PutLine(line string) error {
	return in.buf.PutLine(line)
}

// Register adds a command handler. See Registry.Register for failures.
func (in *Interpreter) Register(name string, h Handler) error {
	return in.reg.Register(name, h)
}

// RegisterFunc adds a function as a command handler.
func (in *Interpreter) RegisterFunc(name string, fn func(cmd *Command) error) error {
	if fn == nil {
		return ErrNullCommand
	}
	return in.reg.Register(name, HandlerFunc(fn))
}

// Lookup returns the first command registered under name.
func (in *Interpreter) Lookup(name string) (Entry, bool) {
	return in.reg.Lookup(name)
}

// Process tokenizes the current line, runs the matching handler and clears
// the buffer whatever the outcome.
//
// It returns nil when a handler was found and invoked, even if that handler
// returned an error; the handler's error is kept in LastHandlerErr. It returns
// ErrNoMatchingCommand when no command matches (including an empty line) and
// ErrTooManyArguments when the line has more tokens than argument slots.
//
// Process also ends any overflow discard started by Feed, so a line loaded
// with PutLine after a dropped byte-stream line leaves Feed in a clean state.
func (in *Interpreter) Process() error {
	defer in.buf.Clear()
	in.lastErr = nil
	in.discarding = false

	if err := in.buf.tokenize(); err != nil {
		in.log.Info("line rejected", "err", err, "max_args", in.cfg.MaxArgs())
		return err
	}

	name := in.buf.commandName()
	entry, ok := in.reg.lookupBytes(name)
	if !ok {
		in.log.Debug("no matching command", "command", string(name))
		return ErrNoMatchingCommand
	}

	in.gen++
	in.dispatching = true
	in.lastErr = entry.Handler.Handle(&Command{in: in, gen: in.gen})
	in.dispatching = false

	if in.lastErr != nil {
		in.log.Info("command failed", "command", entry.Name, "err", in.lastErr)
	} else {
		in.log.Debug("command ran", "command", entry.Name, "args", in.buf.argCount())
	}
	return nil
}

// LastHandlerErr returns the error the most recent handler returned, or nil.
func (in *Interpreter) LastHandlerErr() error {
	return in.lastErr
}

// ArgCheck reports whether argument i of the current line equals expected.
func (in *Interpreter) ArgCheck(expected string, i int) bool {
	b, ok := in.buf.arg(i)
	return ok && equalBytes(b, expected)
}

// ArgLen returns the length of argument i of the current line, or 0 when no
// argument occupies that index.
func (in *Interpreter) ArgLen(i int) int {
	b, _ := in.buf.arg(i)
	return len(b)
}

// ArgToNumber converts argument i of the current line to type t.
func (in *Interpreter) ArgToNumber(i int, t NumType) (Number, error) {
	b, ok := in.buf.arg(i)
	if !ok {
		return Number{}, newArgError(i, "", ErrArgumentMissing)
	}
	s := string(b)
	if !in.cfg.Enable64Bit && (t == Int64 || t == Uint64) {
		return Number{}, newArgError(i, s, ErrUnsupportedType)
	}
	n, err := Convert(s, t)
	if err != nil {
		return Number{}, newArgError(i, s, err)
	}
	return n, nil
}

// SetSink installs the output sink for Report.
func (in *Interpreter) SetSink(sink io.ByteWriter) {
	in.rep.SetSink(sink)
}

// Report writes formatted output through the installed sink. It fails with
// ErrNoSink before a sink is set.
func (in *Interpreter) Report(format string, args ...any) (int, error) {
	return in.rep.Report(format, args...)
}
