package tinycmd

import (
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func numericParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200
	return parameters
}

// TestIntegerRoundTripProperties checks that formatting then converting an
// in-range value returns it unchanged for every width.
func TestIntegerRoundTripProperties(t *testing.T) {
	properties := gopter.NewProperties(numericParameters())

	properties.Property("int8 round-trips", prop.ForAll(
		func(v int8) bool {
			n, err := Convert(FormatInt(int64(v)), Int8)
			return err == nil && int8(n.Int()) == v
		},
		gen.Int8(),
	))

	properties.Property("int16 round-trips", prop.ForAll(
		func(v int16) bool {
			n, err := Convert(FormatInt(int64(v)), Int16)
			return err == nil && int16(n.Int()) == v
		},
		gen.Int16(),
	))

	properties.Property("int32 round-trips", prop.ForAll(
		func(v int32) bool {
			n, err := Convert(FormatInt(int64(v)), Int32)
			return err == nil && int32(n.Int()) == v
		},
		gen.Int32(),
	))

	properties.Property("int64 round-trips", prop.ForAll(
		func(v int64) bool {
			return ParseInt(FormatInt(v), 64) == v
		},
		gen.Int64(),
	))

	properties.Property("uint8 round-trips", prop.ForAll(
		func(v uint8) bool {
			n, err := Convert(FormatUint(uint64(v)), Uint8)
			return err == nil && uint8(n.Uint()) == v
		},
		gen.UInt8(),
	))

	properties.Property("uint64 round-trips", prop.ForAll(
		func(v uint64) bool {
			return ParseUint(FormatUint(v), 64) == v
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestSaturationProperties checks that out-of-range decimal strings clamp to
// the type's bounds instead of wrapping.
func TestSaturationProperties(t *testing.T) {
	properties := gopter.NewProperties(numericParameters())

	properties.Property("above int32 clamps to max", prop.ForAll(
		func(v int64) bool {
			return ParseInt(FormatInt(v), 32) == math.MaxInt32
		},
		gen.Int64Range(math.MaxInt32+1, math.MaxInt64),
	))

	properties.Property("below int16 clamps to min", prop.ForAll(
		func(v int64) bool {
			n, err := Convert(FormatInt(v), Int16)
			return err == nil && n.Int() == math.MinInt16
		},
		gen.Int64Range(math.MinInt64, math.MinInt16-1),
	))

	properties.Property("above uint8 clamps to max", prop.ForAll(
		func(v uint64) bool {
			n, err := Convert(FormatUint(v), Uint8)
			return err == nil && n.Uint() == math.MaxUint8
		},
		gen.UInt64Range(math.MaxUint8+1, math.MaxUint64),
	))

	properties.Property("overlong digit strings clamp to int64 max", prop.ForAll(
		func(extra int) bool {
			s := "9" + strings.Repeat("9", 19+extra)
			return ParseInt(s, 64) == math.MaxInt64 && ParseInt("-"+s, 64) == math.MinInt64
		},
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

// TestFloatRoundTripProperty checks that the fixed six-digit format parses
// back to within half a unit of the last printed digit.
func TestFloatRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(numericParameters())

	properties.Property("float format parses back", prop.ForAll(
		func(v float64) bool {
			got, err := ParseFloatStrict(FormatFloat(v))
			return err == nil && math.Abs(got-v) <= 5e-7+1e-9+1e-12*math.Abs(v)
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}
