package tinycmd

import (
	"errors"
	"fmt"
)

// Sentinel errors for the interpreter. Every one is a local, recoverable
// condition; none leaves the interpreter in an unusable state.
var (
	// ErrBufferFull indicates PutChar was called with the line buffer at capacity.
	ErrBufferFull = errors.New("input buffer full")

	// ErrLineTooLong indicates PutLine was given a line longer than the buffer.
	ErrLineTooLong = errors.New("line too long")

	// ErrRegistryFull indicates the command table has no free slot.
	ErrRegistryFull = errors.New("command registry full")

	// ErrNullCommand indicates a registration without a handler or name.
	ErrNullCommand = errors.New("null command")

	// ErrNameTooLong indicates a command name longer than Config.NameLen.
	ErrNameTooLong = errors.New("command name too long")

	// ErrArgumentMissing indicates no token occupies the requested argument index.
	ErrArgumentMissing = errors.New("argument missing")

	// ErrConversionFailed indicates an argument is not a valid number.
	ErrConversionFailed = errors.New("numeric conversion failed")

	// ErrUnsupportedType indicates a conversion target disabled by the config.
	ErrUnsupportedType = errors.New("unsupported numeric type")

	// ErrNoMatchingCommand indicates the line's command name is not registered.
	ErrNoMatchingCommand = errors.New("no matching command")

	// ErrTooManyArguments indicates a line with more tokens than argument slots.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrNoSink indicates formatted output was requested before a sink was set.
	ErrNoSink = errors.New("no output sink installed")
)

// ArgError describes a failed argument access on a Command or Interpreter.
type ArgError struct {
	Index int    // Argument index, 0 is the first token after the command name
	Value string // The raw token, empty when the argument is missing
	Err   error  // One of the sentinel errors
}

// Error implements the error interface.
func (e *ArgError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("argument %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("argument %d '%s': %v", e.Index, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *ArgError) Unwrap() error {
	return e.Err
}

func newArgError(index int, value string, err error) error {
	return &ArgError{Index: index, Value: value, Err: err}
}

// ConfigError reports a Config field with an unusable value.
type ConfigError struct {
	Field string
	Value int
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s = %d", e.Field, e.Value)
}
