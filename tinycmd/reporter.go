package tinycmd

import (
	"fmt"
	"io"
	"math"
)

// Reporter is a minimal formatted-output emitter. It understands %d, %u, %f
// and %s; any other conversion is copied to the output unchanged. Output is
// formatted into a fixed scratch buffer and truncated at its size.
type Reporter struct {
	sink    io.ByteWriter
	bulk    io.StringWriter // sink as a StringWriter, when it is one
	scratch []byte
	n       int
}

// NewReporter creates a reporter writing to sink with a truncation limit of
// limit bytes per Report call. sink may be nil and installed later.
func NewReporter(sink io.ByteWriter, limit int) *Reporter {
	if limit < 1 {
		limit = DefaultReportBufferSize
	}
	r := &Reporter{scratch: make([]byte, limit)}
	r.SetSink(sink)
	return r
}

// SetSink installs the output sink. When it also implements io.StringWriter
// each Report is written with a single WriteString call.
func (r *Reporter) SetSink(sink io.ByteWriter) {
	r.sink = sink
	r.bulk = nil
	if sw, ok := sink.(io.StringWriter); ok {
		r.bulk = sw
	}
}

// Limit returns the truncation limit in bytes.
func (r *Reporter) Limit() int {
	return len(r.scratch)
}

// Report formats args according to format and emits the result through the
// sink. It returns the number of bytes emitted.
//
//	%d  signed integer
//	%u  unsigned integer (signed values are converted)
//	%f  float with FloatPrecision fractional digits
//	%s  string, []byte, error or fmt.Stringer
//
// A conversion with no argument left, an argument of the wrong kind, or an
// unknown conversion character is emitted literally. A %d, %u, %f or %s with
// a wrong-kind argument still consumes it.
func (r *Reporter) Report(format string, args ...any) (int, error) {
	if r.sink == nil {
		return 0, ErrNoSink
	}
	r.n = 0
	next := 0

	for i := 0; i < len(format) && !r.full(); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			r.putByte(c)
			continue
		}
		i++
		verb := format[i]
		switch verb {
		case 'd', 'u', 'f', 's':
			if next >= len(args) {
				r.putLiteral(verb)
				continue
			}
			if !r.putArg(verb, args[next]) {
				r.putLiteral(verb)
			}
			next++
		default:
			r.putLiteral(verb)
		}
	}
	return r.flush()
}

func (r *Reporter) putArg(verb byte, arg any) bool {
	var num [48]byte
	switch verb {
	case 'd':
		v, ok := toInt64(arg)
		if !ok {
			return false
		}
		r.putBytes(AppendInt(num[:0], v))
	case 'u':
		v, ok := toUint64(arg)
		if !ok {
			return false
		}
		r.putBytes(AppendUint(num[:0], v))
	case 'f':
		v, ok := toFloat64(arg)
		if !ok {
			return false
		}
		r.putBytes(AppendFloat(num[:0], v))
	case 's':
		switch s := arg.(type) {
		case string:
			r.putString(s)
		case []byte:
			r.putBytes(s)
		case error:
			r.putString(s.Error())
		case fmt.Stringer:
			r.putString(s.String())
		default:
			return false
		}
	}
	return true
}

func (r *Reporter) full() bool {
	return r.n == len(r.scratch)
}

func (r *Reporter) putByte(c byte) {
	if r.n < len(r.scratch) {
		r.scratch[r.n] = c
		r.n++
	}
}

func (r *Reporter) putLiteral(verb byte) {
	r.putByte('%')
	r.putByte(verb)
}

func (r *Reporter) putBytes(b []byte) {
	r.n += copy(r.scratch[r.n:], b)
}

func (r *Reporter) putString(s string) {
	r.n += copy(r.scratch[r.n:], s)
}

func (r *Reporter) flush() (int, error) {
	out := r.scratch[:r.n]
	if r.bulk != nil {
		return r.bulk.WriteString(string(out))
	}
	for i, c := range out {
		if err := r.sink.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(out), nil
}

func toInt64(arg any) (int64, bool) {
	switch v := arg.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u, _ := toUint64(v)
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(u), true
	}
	return 0, false
}

func toUint64(arg any) (uint64, bool) {
	switch v := arg.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	case int, int8, int16, int32, int64:
		i, _ := toInt64(v)
		return uint64(i), true
	}
	return 0, false
}

func toFloat64(arg any) (float64, bool) {
	switch v := arg.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}
