package tinycmd

// Command is the parsed view of the line being dispatched: the command name
// and its argument tokens, read straight from the interpreter's line buffer.
//
// A Command is handed to a Handler and is valid only until that handler
// returns. Each dispatch gets its own Command stamped with the dispatch
// number; a retained Command reports every argument as missing, even while a
// later handler is running, so it can never observe a later line.
type Command struct {
	in  *Interpreter
	gen uint64
}

// valid reports whether c belongs to the handler call in progress.
func (c *Command) valid() bool {
	return c.in != nil && c.in.dispatching && c.gen == c.in.gen
}

func (c *Command) arg(i int) ([]byte, bool) {
	if !c.valid() {
		return nil, false
	}
	return c.in.buf.arg(i)
}

// Name returns the command name, or "" outside the handler call.
func (c *Command) Name() string {
	if !c.valid() {
		return ""
	}
	return string(c.in.buf.commandName())
}

// NArgs returns the number of arguments on the line.
func (c *Command) NArgs() int {
	if !c.valid() {
		return 0
	}
	return c.in.buf.argCount()
}

// Arg returns a copy of argument i.
func (c *Command) Arg(i int) (string, bool) {
	b, ok := c.arg(i)
	if !ok {
		return "", false
	}
	return string(b), true
}

// Args returns copies of every argument in order.
func (c *Command) Args() []string {
	out := make([]string, c.NArgs())
	for i := range out {
		out[i], _ = c.Arg(i)
	}
	return out
}

// ArgCheck reports whether argument i equals expected exactly.
func (c *Command) ArgCheck(expected string, i int) bool {
	b, ok := c.arg(i)
	return ok && equalBytes(b, expected)
}

// ArgLen returns the length of argument i, or 0 when it is missing.
func (c *Command) ArgLen(i int) int {
	b, _ := c.arg(i)
	return len(b)
}

// ArgToNumber converts argument i to type t. Failures are *ArgError values
// wrapping ErrArgumentMissing, ErrConversionFailed or ErrUnsupportedType.
func (c *Command) ArgToNumber(i int, t NumType) (Number, error) {
	if !c.valid() {
		return Number{}, newArgError(i, "", ErrArgumentMissing)
	}
	return c.in.ArgToNumber(i, t)
}

// ArgInt8 converts argument i to an int8, saturating out-of-range values.
func (c *Command) ArgInt8(i int) (int8, error) {
	n, err := c.ArgToNumber(i, Int8)
	return int8(n.Int()), err
}

// ArgInt16 converts argument i to an int16, saturating out-of-range values.
func (c *Command) ArgInt16(i int) (int16, error) {
	n, err := c.ArgToNumber(i, Int16)
	return int16(n.Int()), err
}

// ArgInt32 converts argument i to an int32, saturating out-of-range values.
func (c *Command) ArgInt32(i int) (int32, error) {
	n, err := c.ArgToNumber(i, Int32)
	return int32(n.Int()), err
}

// ArgInt64 converts argument i to an int64, saturating out-of-range values.
func (c *Command) ArgInt64(i int) (int64, error) {
	n, err := c.ArgToNumber(i, Int64)
	return n.Int(), err
}

// ArgUint8 converts argument i to a uint8, saturating out-of-range values.
func (c *Command) ArgUint8(i int) (uint8, error) {
	n, err := c.ArgToNumber(i, Uint8)
	return uint8(n.Uint()), err
}

// ArgUint16 converts argument i to a uint16, saturating out-of-range values.
func (c *Command) ArgUint16(i int) (uint16, error) {
	n, err := c.ArgToNumber(i, Uint16)
	return uint16(n.Uint()), err
}

// ArgUint32 converts argument i to a uint32, saturating out-of-range values.
func (c *Command) ArgUint32(i int) (uint32, error) {
	n, err := c.ArgToNumber(i, Uint32)
	return uint32(n.Uint()), err
}

// ArgUint64 converts argument i to a uint64, saturating out-of-range values.
func (c *Command) ArgUint64(i int) (uint64, error) {
	n, err := c.ArgToNumber(i, Uint64)
	return n.Uint(), err
}

// ArgFloat32 converts argument i to a float32.
func (c *Command) ArgFloat32(i int) (float32, error) {
	n, err := c.ArgToNumber(i, Float32)
	return float32(n.Float()), err
}

// ArgFloat64 converts argument i to a float64.
func (c *Command) ArgFloat64(i int) (float64, error) {
	n, err := c.ArgToNumber(i, Float64)
	return n.Float(), err
}

// Printf writes formatted output through the interpreter's reporter.
func (c *Command) Printf(format string, args ...any) (int, error) {
	return c.in.Report(format, args...)
}
