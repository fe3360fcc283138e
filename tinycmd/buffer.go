package tinycmd

// Buffer is the fixed-capacity line accumulator. It holds the bytes of the
// current line and, after a tokenize pass, the positions of the command name
// and up to MaxArgs arguments inside those bytes.
//
// The backing array is allocated once by newBuffer and never grows.
type Buffer struct {
	input  []byte // capacity bytes plus one for the terminator
	length int

	name span
	args []span // len == MaxArgs, zero span means unset
	argc int

	discardExcess bool
}

func newBuffer(cfg Config) *Buffer {
	return &Buffer{
		input:         make([]byte, cfg.BufferCapacity()+1),
		args:          make([]span, cfg.MaxArgs()),
		discardExcess: cfg.DiscardExcessTokens,
	}
}

// Cap returns the number of bytes the buffer accepts.
func (b *Buffer) Cap() int {
	return len(b.input) - 1
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return b.length
}

// Bytes returns a copy of the current content.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.length)
	copy(out, b.input[:b.length])
	return out
}

// PutChar appends one byte. It never completes a line by itself; a trailing
// CR or LF is dropped when the line is tokenized.
func (b *Buffer) PutChar(c byte) error {
	if b.length >= b.Cap() {
		return ErrBufferFull
	}
	b.input[b.length] = c
	b.length++
	return nil
}

// PutLine replaces the buffer content with line, minus trailing spaces, CR
// and LF. The buffer is left untouched when the trimmed line does not fit.
func (b *Buffer) PutLine(line string) error {
	line = trimRightString(line)
	if len(line) > b.Cap() {
		return ErrLineTooLong
	}
	n := copy(b.input, line)
	for i := n; i < len(b.input); i++ {
		b.input[i] = 0
	}
	b.length = n
	b.resetTokens()
	return nil
}

// Clear empties the buffer, unsets every argument and zero-fills the bytes.
func (b *Buffer) Clear() {
	for i := range b.input {
		b.input[i] = 0
	}
	b.length = 0
	b.resetTokens()
}

func (b *Buffer) resetTokens() {
	b.name = span{}
	for i := range b.args {
		b.args[i] = span{}
	}
	b.argc = 0
}

// tokenize splits the current line in place. Each delimiter that ends a token
// is overwritten with NUL. The first token becomes the command name and the
// following tokens fill the argument slots left to right. When more tokens
// remain than slots it returns ErrTooManyArguments, unless the buffer was
// configured to discard them.
//
// Re-running tokenize on an untouched buffer yields the same spans.
func (b *Buffer) tokenize() error {
	b.resetTokens()
	line := b.input[:trimRight(b.input[:b.length])]

	tok, pos, ok := nextToken(line, 0)
	if !ok {
		return nil
	}
	b.name = tok
	terminate(line, pos)

	for {
		tok, pos, ok = nextToken(line, pos)
		if !ok {
			return nil
		}
		if b.argc == len(b.args) {
			if b.discardExcess {
				return nil
			}
			return ErrTooManyArguments
		}
		b.args[b.argc] = tok
		b.argc++
		terminate(line, pos)
	}
}

func terminate(line []byte, pos int) {
	if pos < len(line) {
		line[pos] = 0
	}
}

// commandName returns the bytes of the command name from the last tokenize.
func (b *Buffer) commandName() []byte {
	return b.input[b.name.start:b.name.end]
}

// arg returns the bytes of argument i, or nil and false when unset.
func (b *Buffer) arg(i int) ([]byte, bool) {
	if i < 0 || i >= b.argc {
		return nil, false
	}
	s := b.args[i]
	return b.input[s.start:s.end], true
}

// argCount returns the number of arguments set by the last tokenize.
func (b *Buffer) argCount() int {
	return b.argc
}
