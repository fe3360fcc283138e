package tinycmd

import "math"

// NumType names the width, signedness and float-ness requested when an
// argument is converted. It drives clamping, not parsing: every integer type
// is parsed the same way and then saturated to its own range.
type NumType int

const (
	Uint8 NumType = iota
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float32
	Float64
)

var numTypeNames = [...]string{
	Uint8:   "uint8",
	Int8:    "int8",
	Uint16:  "uint16",
	Int16:   "int16",
	Uint32:  "uint32",
	Int32:   "int32",
	Uint64:  "uint64",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
}

// String returns the Go name of the type.
func (t NumType) String() string {
	if t < 0 || int(t) >= len(numTypeNames) {
		return "unknown"
	}
	return numTypeNames[t]
}

// Bits returns the width of the type in bits, or 0 for an unknown type.
func (t NumType) Bits() int {
	switch t {
	case Uint8, Int8:
		return 8
	case Uint16, Int16:
		return 16
	case Uint32, Int32, Float32:
		return 32
	case Uint64, Int64, Float64:
		return 64
	}
	return 0
}

// IsSigned reports whether the type is a signed integer or a float.
func (t NumType) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

// IsFloat reports whether the type is a floating point type.
func (t NumType) IsFloat() bool {
	return t == Float32 || t == Float64
}

func (t NumType) valid() bool {
	return t >= Uint8 && t <= Float64
}

// Number is the result of a typed argument conversion.
type Number struct {
	Type NumType

	i int64
	u uint64
	f float64
}

// Int returns the value as an int64. Unsigned values above MaxInt64 saturate
// and floats are truncated toward zero.
func (n Number) Int() int64 {
	switch {
	case n.Type.IsFloat():
		if n.f >= math.MaxInt64 {
			return math.MaxInt64
		}
		if n.f <= math.MinInt64 {
			return math.MinInt64
		}
		return int64(n.f)
	case n.Type.IsSigned():
		return n.i
	default:
		if n.u > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(n.u)
	}
}

// Uint returns the value as a uint64. Negative values saturate to 0.
func (n Number) Uint() uint64 {
	switch {
	case n.Type.IsFloat():
		if n.f <= 0 {
			return 0
		}
		if n.f >= math.MaxUint64 {
			return math.MaxUint64
		}
		return uint64(n.f)
	case n.Type.IsSigned():
		if n.i < 0 {
			return 0
		}
		return uint64(n.i)
	default:
		return n.u
	}
}

// Float returns the value as a float64.
func (n Number) Float() float64 {
	switch {
	case n.Type.IsFloat():
		return n.f
	case n.Type.IsSigned():
		return float64(n.i)
	default:
		return float64(n.u)
	}
}

// signedLimits returns the range of a bits-wide two's complement integer.
func signedLimits(bits int) (min, max int64) {
	if bits <= 0 || bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	max = int64(1)<<(bits-1) - 1
	return -max - 1, max
}

// unsignedLimit returns the largest bits-wide unsigned integer.
func unsignedLimit(bits int) uint64 {
	if bits <= 0 || bits >= 64 {
		return math.MaxUint64
	}
	return uint64(1)<<bits - 1
}

// intScan is the outcome of scanning a decimal integer prefix.
type intScan struct {
	neg      bool
	mag      uint64
	overflow bool // mag exceeded uint64 and stopped accumulating
	digits   int
	end      int // index of the first unconsumed byte
}

// scanInt skips leading whitespace, takes an optional sign and accumulates
// decimal digits. It stops at the first non-digit.
func scanInt(s string) intScan {
	var r intScan
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		r.neg = s[i] == '-'
		i++
	}
	for ; i < len(s) && isDigit(s[i]); i++ {
		d := uint64(s[i] - '0')
		r.digits++
		if r.overflow {
			continue
		}
		if r.mag > (math.MaxUint64-d)/10 {
			r.overflow = true
			continue
		}
		r.mag = r.mag*10 + d
	}
	r.end = i
	return r
}

// ParseInt parses a leading decimal integer and saturates it to the range of
// a bits-wide signed integer. Leading whitespace is skipped, parsing stops at
// the first non-digit without error, and a string without digits yields 0.
func ParseInt(s string, bits int) int64 {
	return scanInt(s).signed(bits)
}

func (r intScan) signed(bits int) int64 {
	min, max := signedLimits(bits)
	if !r.neg {
		if r.overflow || r.mag > uint64(max) {
			return max
		}
		return int64(r.mag)
	}
	limit := uint64(max) + 1
	if r.overflow || r.mag >= limit {
		return min
	}
	return -int64(r.mag)
}

// ParseUint is ParseInt for a bits-wide unsigned integer. Negative input
// saturates to 0.
func ParseUint(s string, bits int) uint64 {
	return scanInt(s).unsigned(bits)
}

func (r intScan) unsigned(bits int) uint64 {
	if r.neg {
		return 0
	}
	max := unsignedLimit(bits)
	if r.overflow || r.mag > max {
		return max
	}
	return r.mag
}

// maxExponent bounds exponent accumulation; anything larger already
// overflows or underflows a float64.
const maxExponent = 1 << 12

// scanFloat parses [ws][sign]digits[.digits][(e|E)[sign]digits] and returns
// the value, the number of mantissa digits and the index of the first
// unconsumed byte. An exponent marker without digits is not consumed.
func scanFloat(s string) (v float64, digits, end int) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	sign := 1.0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}

	// Integer digits beyond float64 precision only scale the value, so a
	// long mantissa stays finite and shifts the exponent instead.
	intPart, shift := 0.0, 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		if intPart < 1e300 {
			intPart = intPart*10 + float64(s[i]-'0')
		} else {
			shift++
		}
		digits++
	}

	fracPart := 0.0
	if i < len(s) && s[i] == '.' {
		i++
		scale := 0.1
		for ; i < len(s) && isDigit(s[i]); i++ {
			fracPart += float64(s[i]-'0') * scale
			scale /= 10
			digits++
		}
	}

	exp, expSign := 0, 1
	if digits > 0 && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			if s[j] == '-' {
				expSign = -1
			}
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for ; j < len(s) && isDigit(s[j]); j++ {
				if exp < maxExponent {
					exp = exp*10 + int(s[j]-'0')
				}
			}
			i = j
		} else {
			expSign = 1
		}
	}

	m := intPart
	if shift == 0 {
		m += fracPart
	}
	if m == 0 {
		return 0, digits, i
	}
	return sign * scalePow10(m, exp*expSign+shift), digits, i
}

// scalePow10 returns m * 10^e for a finite m > 0, in steps that keep every
// factor finite, so the product saturates to Inf or 0 but is never NaN.
func scalePow10(m float64, e int) float64 {
	const step = 300
	for e > step {
		m *= math.Pow10(step)
		e -= step
	}
	for e < -step {
		m *= math.Pow10(-step)
		e += step
	}
	return m * math.Pow10(e)
}

// ParseFloat parses a leading decimal float, optionally with an exponent, and
// stops silently at the first unexpected byte. A string without digits
// yields 0.
func ParseFloat(s string) float64 {
	v, _, _ := scanFloat(s)
	return v
}

// ParseFloatStrict is ParseFloat that fails with ErrConversionFailed unless
// the whole string was consumed and at least one digit was seen.
func ParseFloatStrict(s string) (float64, error) {
	v, digits, end := scanFloat(s)
	if digits == 0 || end != len(s) {
		return 0, ErrConversionFailed
	}
	return v, nil
}

// Convert parses s as the given type. Integers saturate to the type's range
// and trailing non-digits are ignored. Floats must consume the whole string
// and saturate to the largest finite value of their width. Empty input, a
// lone sign or input without digits fails with ErrConversionFailed.
func Convert(s string, t NumType) (Number, error) {
	if !t.valid() {
		return Number{}, ErrUnsupportedType
	}
	if s == "" || s == "-" {
		return Number{}, ErrConversionFailed
	}

	if t.IsFloat() {
		v, err := ParseFloatStrict(s)
		if err != nil {
			return Number{}, err
		}
		return Number{Type: t, f: saturateFloat(v, t)}, nil
	}

	r := scanInt(s)
	if r.digits == 0 {
		return Number{}, ErrConversionFailed
	}
	if t.IsSigned() {
		return Number{Type: t, i: r.signed(t.Bits())}, nil
	}
	return Number{Type: t, u: r.unsigned(t.Bits())}, nil
}

func saturateFloat(v float64, t NumType) float64 {
	max := math.MaxFloat64
	if t == Float32 {
		max = math.MaxFloat32
	}
	switch {
	case v > max:
		return max
	case v < -max:
		return -max
	}
	return v
}

// AppendUint appends the decimal form of v to dst.
func AppendUint(dst []byte, v uint64) []byte {
	var buf [20]byte
	n := 0
	for {
		buf[n] = byte('0' + v%10)
		n++
		v /= 10
		if v == 0 {
			break
		}
	}
	reverse(buf[:n])
	return append(dst, buf[:n]...)
}

// AppendInt appends the decimal form of v to dst.
func AppendInt(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		// -(v+1)+1 stays in range for MinInt64.
		return AppendUint(dst, uint64(-(v+1))+1)
	}
	return AppendUint(dst, uint64(v))
}

// AppendFloat appends v with FloatPrecision fractional digits, rounded half
// up. There is no exponent form: large values print every integer digit.
func AppendFloat(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}

	const scale = 1e6
	ip := math.Floor(v)
	frac := uint64(math.Floor((v-ip)*scale + 0.5))
	if frac >= scale {
		ip++
		frac -= scale
	}

	dst = appendIntPart(dst, ip)
	dst = append(dst, '.')
	var buf [FloatPrecision]byte
	for i := FloatPrecision - 1; i >= 0; i-- {
		buf[i] = byte('0' + frac%10)
		frac /= 10
	}
	return append(dst, buf[:]...)
}

// appendIntPart emits the digits of a non-negative integral float.
func appendIntPart(dst []byte, ip float64) []byte {
	if ip < 1e19 {
		return AppendUint(dst, uint64(ip))
	}
	var buf [320]byte
	n := 0
	for ip >= 1 && n < len(buf) {
		buf[n] = byte('0' + int(math.Mod(ip, 10)))
		n++
		ip = math.Floor(ip / 10)
	}
	reverse(buf[:n])
	return append(dst, buf[:n]...)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// FormatInt returns the decimal form of v.
func FormatInt(v int64) string {
	return string(AppendInt(nil, v))
}

// FormatUint returns the decimal form of v.
func FormatUint(v uint64) string {
	return string(AppendUint(nil, v))
}

// FormatFloat returns v with FloatPrecision fractional digits.
func FormatFloat(v float64) string {
	return string(AppendFloat(nil, v))
}
