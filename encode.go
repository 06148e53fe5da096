package pgliteral

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encoder converts values to SQL literal text.
// Implementations handle dialect-specific syntax; PostgresEncoder is the
// dialect shipped with this package.
type Encoder interface {
	// Encode converts a single value to a SQL literal.
	// The returned string is a single scalar expression safe to splice
	// into statement text.
	Encode(v Value) (string, error)
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// DisableStringEscaping emits text values unmodified, without quoting
	// or escaping. The caller asserts every text value is already a safe
	// SQL fragment. Used for pre-escaped fragments only.
	DisableStringEscaping bool
}

// EncodingError indicates a value that cannot be represented as a SQL
// literal: its kind is outside the supported set, or its payload does not
// match its kind tag. Encoding is deterministic, so the error is a
// programming or schema mismatch rather than a transient fault.
type EncodingError struct {
	// Kind is the kind tag of the offending value.
	Kind Kind

	// Repr is a diagnostic rendering of the offending value.
	Repr string

	// Element is true when the failure occurred on a list element.
	Element bool
}

func (e *EncodingError) Error() string {
	what := "value"
	if e.Element {
		what = "array element"
	}
	if e.Kind == KindInvalid {
		return "pgliteral: unrecognized " + what + " kind: " + e.Repr
	}
	return "pgliteral: unrecognized " + what + " kind " + string(e.Kind) + ": " + e.Repr
}

func errValue(v Value) *EncodingError {
	return &EncodingError{Kind: v.Kind, Repr: v.String()}
}

func errElement(v Value) *EncodingError {
	return &EncodingError{Kind: v.Kind, Repr: v.String(), Element: true}
}

// quoteText returns s as a quoted SQL string literal.
//
// Embedded single quotes and backslashes are doubled; if any backslash is
// present the literal is prefixed with " E" (space then E) to select
// PostgreSQL's escape-string syntax, under which a doubled backslash reads
// back as a single literal backslash. Counting and iteration are over
// Unicode code points.
//
// If escape is false, s is returned unmodified; the caller asserts it is
// already a safe fragment.
func quoteText(s string, escape bool) string {
	if !escape {
		return s
	}

	var quotes, backslashes int
	for _, r := range s {
		switch r {
		case '\'':
			quotes++
		case '\\':
			backslashes++
		}
	}

	var b strings.Builder
	b.Grow(len(s) + quotes + backslashes + 4)
	if backslashes > 0 {
		b.WriteString(" E")
	}
	b.WriteByte('\'')
	if quotes == 0 && backslashes == 0 {
		b.WriteString(s)
	} else {
		for _, r := range s {
			if r == '\'' || r == '\\' {
				b.WriteRune(r)
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// quoteArrayElement escapes backslashes and double quotes in an array
// element and wraps it in double quotes. Single quotes are not doubled
// inside array constructor syntax.
func quoteArrayElement(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// marshalJSON serializes v without HTML escaping, so literal output keeps
// <, > and & readable.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var defaultEncoder = NewPostgresEncoder(nil)

// Encode converts a value to a PostgreSQL text-format literal using default
// options (string escaping enabled).
func Encode(v Value) (string, error) {
	return defaultEncoder.Encode(v)
}
