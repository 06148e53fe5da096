package pgliteral

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// PostgresEncoder encodes values to PostgreSQL text-format literals.
//
// The encoder is stateless; a single instance is safe for concurrent use.
type PostgresEncoder struct {
	opts *EncoderOptions
}

// NewPostgresEncoder creates a new PostgreSQL literal encoder.
// If opts is nil, default options are used.
func NewPostgresEncoder(opts *EncoderOptions) *PostgresEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &PostgresEncoder{opts: opts}
}

func (e *PostgresEncoder) escapeStrings() bool {
	return !e.opts.DisableStringEscaping
}

// Encode converts a value to a PostgreSQL text-format literal.
//
// The result is a single scalar expression: a quoted literal, a bare
// numeric token, TRUE/FALSE, null, or an array constructor {...}. Values
// outside the supported kind set, or values whose payload does not match
// their kind tag, fail with *EncodingError.
func (e *PostgresEncoder) Encode(v Value) (string, error) {
	switch v.Kind {
	case KindNull:
		return "null", nil
	case KindInteger:
		if i, ok := v.Data.(int64); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case KindFloat:
		if f, ok := v.Data.(float64); ok {
			return e.formatFloat(f), nil
		}
	case KindText:
		if s, ok := v.Data.(string); ok {
			return quoteText(s, e.escapeStrings()), nil
		}
	case KindTimestamp:
		if t, ok := v.Data.(time.Time); ok {
			return e.formatTimestamp(t), nil
		}
	case KindInterval:
		if d, ok := v.Data.(time.Duration); ok {
			return e.formatInterval(d), nil
		}
	case KindBoolean:
		if b, ok := v.Data.(bool); ok {
			if b {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
	case KindJSON:
		return e.formatJSON(v.Data)
	case KindPoint:
		if p, ok := v.Data.(orb.Point); ok {
			return e.formatPoint(p), nil
		}
	case KindList:
		if elems, ok := v.Data.([]Value); ok {
			return e.formatList(elems)
		}
	}
	return "", errValue(v)
}

// formatFloat formats a floating-point value.
//
// NaN and infinities map to the quoted literals 'nan', 'infinity' and
// '-infinity'. Finite values use the shortest decimal form that round-trips
// to the same float64; integral values keep a trailing .0 so float-typed
// output stays visibly distinct from integer output.
func (e *PostgresEncoder) formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "'nan'"
	case math.IsInf(f, 1):
		return "'infinity'"
	case math.IsInf(f, -1):
		return "'-infinity'"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// formatTimestamp formats a timestamp value as a quoted ISO-8601 literal.
//
// A timestamp at exactly midnight is truncated to its date portion. Other
// timestamps carry either the UTC marker Z or an explicit signed HH:MM
// offset. BCE years are rendered with a trailing " BC" suffix; extended
// positive years drop their leading +.
func (e *PostgresEncoder) formatTimestamp(t time.Time) string {
	s := isoTimestamp(t)
	if dateOnly(t) {
		s, _, _ = strings.Cut(s, "T")
	} else if t.Location() != time.UTC {
		_, offset := t.Zone()
		sign := "+"
		if offset < 0 {
			sign = "-"
			offset = -offset
		}
		s += fmt.Sprintf("%s%02d:%02d", sign, offset/3600, offset%3600/60)
	}
	switch {
	case strings.HasPrefix(s, "-"):
		s = s[1:] + " BC"
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	return "'" + s + "'"
}

// isoTimestamp renders t in extended ISO-8601 form. Years 0-9999 use four
// digits; years outside that range use six digits with an explicit sign.
// Fractional seconds use three digits, or six when sub-millisecond
// precision is present. UTC timestamps carry a trailing Z.
func isoTimestamp(t time.Time) string {
	var b strings.Builder
	year := t.Year()
	switch {
	case year < 0:
		fmt.Fprintf(&b, "-%06d", -year)
	case year > 9999:
		fmt.Fprintf(&b, "+%06d", year)
	default:
		fmt.Fprintf(&b, "%04d", year)
	}
	micros := t.Nanosecond() / 1000
	if micros%1000 == 0 {
		fmt.Fprintf(&b, "-%02d-%02dT%02d:%02d:%02d.%03d",
			t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), micros/1000)
	} else {
		fmt.Fprintf(&b, "-%02d-%02dT%02d:%02d:%02d.%06d",
			t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), micros)
	}
	if t.Location() == time.UTC {
		b.WriteByte('Z')
	}
	return b.String()
}

// dateOnly returns true if t has no time-of-day significance.
func dateOnly(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// formatJSON formats a JSON mapping value.
//
// A nil payload encodes as null. A textual payload is JSON-serialized and
// wrapped directly in single quotes without the quote/backslash doubling
// pass: JSON's own escaping never introduces a bare single quote, so the
// wrapping is safe exactly when the source text contains no single quote.
// That is a hard invariant on the caller; text with embedded single quotes
// must go through the Text kind instead. Any other payload is JSON-
// serialized and then quoted through the standard escaping routine.
func (e *PostgresEncoder) formatJSON(v any) (string, error) {
	if v == nil {
		return "null", nil
	}
	if s, ok := v.(string); ok {
		data, err := marshalJSON(s)
		if err != nil {
			return "", fmt.Errorf("pgliteral: marshal json text: %w", err)
		}
		return "'" + string(data) + "'", nil
	}
	data, err := marshalJSON(v)
	if err != nil {
		return "", fmt.Errorf("pgliteral: marshal json value: %w", err)
	}
	return quoteText(string(data), e.escapeStrings()), nil
}

// formatPoint formats a geometric point value. Coordinates go through the
// float routine and the result is not quoted.
func (e *PostgresEncoder) formatPoint(p orb.Point) string {
	return "(" + e.formatFloat(p.X()) + ", " + e.formatFloat(p.Y()) + ")"
}
