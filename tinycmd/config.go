package tinycmd

// Default capacities, matching the values the firmware builds ship with.
const (
	// DefaultNameLen is the maximum length of a command or argument name.
	DefaultNameLen = 8

	// DefaultMaxTokens is the maximum number of tokens in a line,
	// the command name included.
	DefaultMaxTokens = 4

	// DefaultListSize is the number of command slots in the registry.
	DefaultListSize = 8

	// DefaultReportBufferSize is the truncation watermark for Report output.
	DefaultReportBufferSize = 128

	// FloatPrecision is the number of fractional digits AppendFloat emits.
	FloatPrecision = 6
)

// Config sizes every fixed-capacity structure of an Interpreter.
type Config struct {
	NameLen          int
	MaxTokens        int
	ListSize         int
	ReportBufferSize int

	// Enable64Bit allows Int64 and Uint64 conversion targets.
	Enable64Bit bool

	// DiscardExcessTokens restores the legacy behavior of silently dropping
	// tokens beyond the last argument slot instead of failing the line.
	DiscardExcessTokens bool
}

// DefaultConfig returns the default capacities with 64-bit conversion enabled.
func DefaultConfig() Config {
	return Config{
		NameLen:          DefaultNameLen,
		MaxTokens:        DefaultMaxTokens,
		ListSize:         DefaultListSize,
		ReportBufferSize: DefaultReportBufferSize,
		Enable64Bit:      true,
	}
}

// BufferCapacity returns the line buffer capacity in bytes: room for
// MaxTokens names of NameLen bytes and the single spaces between them.
func (c Config) BufferCapacity() int {
	return c.NameLen*c.MaxTokens + (c.MaxTokens - 1)
}

// MaxArgs returns the number of argument slots.
func (c Config) MaxArgs() int {
	return c.MaxTokens - 1
}

// Validate reports the first field that cannot size a buffer.
func (c Config) Validate() error {
	switch {
	case c.NameLen < 1:
		return &ConfigError{Field: "NameLen", Value: c.NameLen}
	case c.MaxTokens < 1:
		return &ConfigError{Field: "MaxTokens", Value: c.MaxTokens}
	case c.ListSize < 1:
		return &ConfigError{Field: "ListSize", Value: c.ListSize}
	case c.ReportBufferSize < 1:
		return &ConfigError{Field: "ReportBufferSize", Value: c.ReportBufferSize}
	}
	return nil
}
