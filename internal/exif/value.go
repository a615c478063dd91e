package exif

import (
	"math"
	"strconv"
	"strings"
)

// Value is a decoded tag value. The concrete type is one of Int, Float,
// Rational, String, Bytes, Tuple or Directory.
type Value interface {
	String() string
	// repr is the quoted form used when the value is nested in a container.
	repr() string
}

// Int holds SHORT, LONG and the signed integer types.
type Int int64

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Int) repr() string   { return v.String() }

// Float holds FLOAT and DOUBLE values.
type Float float64

func (v Float) String() string { return formatFloat(float64(v)) }
func (v Float) repr() string   { return v.String() }

// Rational holds RATIONAL and SRATIONAL values. It prints as its quotient.
type Rational struct {
	Num, Den int64
}

// Float returns the quotient, NaN when the denominator is zero.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return math.NaN()
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string { return formatFloat(r.Float()) }
func (r Rational) repr() string   { return r.String() }

// String holds ASCII values with the trailing NUL removed.
type String string

func (v String) String() string { return string(v) }
func (v String) repr() string   { return quote(string(v), false) }

// Bytes holds BYTE and UNDEFINED values.
type Bytes []byte

func (v Bytes) String() string { return quote(string(v), true) }
func (v Bytes) repr() string   { return v.String() }

// Tuple holds multi-count numeric values.
type Tuple []Value

func (t Tuple) String() string {
	if len(t) == 1 {
		return "(" + t[0].repr() + ",)"
	}
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.repr()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) repr() string { return t.String() }

// formatFloat renders f the way a generic float-to-string conversion does:
// shortest round-trip digits, always with a fractional part or exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote renders s as a quoted literal, prefixed with b for byte strings.
// Single quotes are used unless s contains one and no double quote.
func quote(s string, bytes bool) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}

	var sb strings.Builder
	if bytes {
		sb.WriteByte('b')
	}
	sb.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == q || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c == 0x7f || (bytes && c > 0x7f):
			sb.WriteString(`\x`)
			sb.WriteString(hex2(c))
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func hex2(c byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[c>>4], digits[c&0x0f]})
}
