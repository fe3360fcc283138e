package tinycmd

// Byte helpers used by the buffer and tokenizer. They work on ASCII only;
// there is no locale handling.

// span marks a token inside the line buffer as the half-open range [start, end).
type span struct {
	start, end int
}

func (s span) len() int {
	return s.end - s.start
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSpace matches the characters skipped before a number.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isDelim matches token separators. NUL counts as a separator so that a
// buffer which has already been split once splits the same way again.
func isDelim(c byte) bool {
	return c == ' ' || c == 0
}

// isTrailing matches the characters trimmed from the end of a line.
func isTrailing(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == 0
}

// trimRight returns the length of b once trailing spaces, CR, LF and NUL
// terminators are dropped.
func trimRight(b []byte) int {
	n := len(b)
	for n > 0 && isTrailing(b[n-1]) {
		n--
	}
	return n
}

// trimRightString drops trailing spaces, CR and LF from an incoming line.
func trimRightString(s string) string {
	n := len(s)
	for n > 0 && (s[n-1] == ' ' || s[n-1] == '\r' || s[n-1] == '\n') {
		n--
	}
	return s[:n]
}

// equalBytes reports whether b holds exactly s.
func equalBytes(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}

// nextToken scans b from pos, skipping any run of delimiters, and returns the
// next token. ok is false when only delimiters remain.
func nextToken(b []byte, pos int) (tok span, next int, ok bool) {
	for pos < len(b) && isDelim(b[pos]) {
		pos++
	}
	if pos >= len(b) {
		return span{}, pos, false
	}
	start := pos
	for pos < len(b) && !isDelim(b[pos]) {
		pos++
	}
	return span{start: start, end: pos}, pos, true
}
