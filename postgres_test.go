package pgliteral

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func TestEncodeNull(t *testing.T) {
	got, err := Encode(Null())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "null" {
		t.Errorf("expected 'null', got '%s'", got)
	}
}

func TestEncodeBoolean(t *testing.T) {
	tests := []struct {
		in       bool
		expected string
	}{
		{true, "TRUE"},
		{false, "FALSE"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := Encode(Boolean(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := Encode(Integer(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestEncodeFloat(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected string
	}{
		{"nan", math.NaN(), "'nan'"},
		{"infinity", math.Inf(1), "'infinity'"},
		{"negative infinity", math.Inf(-1), "'-infinity'"},
		{"integral", 1, "1.0"},
		{"negative integral", -3, "-3.0"},
		{"fractional", 2.5, "2.5"},
		{"zero", 0, "0.0"},
		{"exponent", 1e21, "1e+21"},
		{"small", 0.000001, "1e-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(Float(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

// Finite float output must round-trip to the identical float64.
func TestEncodeFloatRoundTrip(t *testing.T) {
	enc := NewPostgresEncoder(nil)
	for _, f := range []float64{0.1, 1.0 / 3.0, 6371.0088, math.MaxFloat64, math.SmallestNonzeroFloat64} {
		got, err := enc.Encode(Float(f))
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		parsed, err := strconv.ParseFloat(got, 64)
		if err != nil {
			t.Fatalf("output %q does not parse: %v", got, err)
		}
		if parsed != f {
			t.Errorf("round-trip mismatch: %v -> %q -> %v", f, got, parsed)
		}
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "hello", "'hello'"},
		{"empty", "", "''"},
		{"single quote", "It's", "'It''s'"},
		{"backslash", `a\b`, ` E'a\\b'`},
		{"quote and backslash", `It's a \test\`, ` E'It''s a \\test\\'`},
		{"only backslashes", `\\`, ` E'\\\\'`},
		{"unicode", "héllo wörld", "'héllo wörld'"},
		{"unicode with quote", "د'ä", "'د''ä'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(Text(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEncodeTextNoEscaping(t *testing.T) {
	enc := NewPostgresEncoder(&EncoderOptions{DisableStringEscaping: true})

	got, err := enc.Encode(Text("already 'safe' fragment"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "already 'safe' fragment" {
		t.Errorf("expected unmodified text, got %q", got)
	}
}

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected string
	}{
		{
			name:     "utc",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC),
			expected: "'2024-03-15T10:30:45.000Z'",
		},
		{
			name:     "utc milliseconds",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 123000000, time.UTC),
			expected: "'2024-03-15T10:30:45.123Z'",
		},
		{
			name:     "utc microseconds",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 123456000, time.UTC),
			expected: "'2024-03-15T10:30:45.123456Z'",
		},
		{
			name:     "date only",
			in:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			expected: "'2024-03-15'",
		},
		{
			name:     "positive offset",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 0, time.FixedZone("CET", 3600)),
			expected: "'2024-03-15T10:30:45.000+01:00'",
		},
		{
			name:     "half-hour offset",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 0, time.FixedZone("IST", 5*3600+1800)),
			expected: "'2024-03-15T10:30:45.000+05:30'",
		},
		{
			name:     "negative offset",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 0, time.FixedZone("EST", -5*3600)),
			expected: "'2024-03-15T10:30:45.000-05:00'",
		},
		{
			name:     "negative sub-hour offset",
			in:       time.Date(2024, 3, 15, 10, 30, 45, 0, time.FixedZone("", -1800)),
			expected: "'2024-03-15T10:30:45.000-00:30'",
		},
		{
			name:     "bce date",
			in:       time.Date(-44, 3, 15, 0, 0, 0, 0, time.UTC),
			expected: "'000044-03-15 BC'",
		},
		{
			name:     "bce timestamp",
			in:       time.Date(-44, 3, 15, 12, 0, 0, 0, time.UTC),
			expected: "'000044-03-15T12:00:00.000Z BC'",
		},
		{
			name:     "extended year",
			in:       time.Date(123456, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: "'123456-01-02T03:04:05.000Z'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(Timestamp(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEncodeDate(t *testing.T) {
	got, err := Encode(Date(1997, time.August, 29))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "'1997-08-29'" {
		t.Errorf("expected '1997-08-29' literal, got %q", got)
	}
}

func TestEncodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected string
	}{
		{"null", nil, "null"},
		{"text", "hello", `'"hello"'`},
		{"text with double quote", `a"b`, `'"a\"b"'`},
		{"mapping", map[string]any{"a": 1}, `'{"a":1}'`},
		{"nested", map[string]any{"a": map[string]any{"b": []any{1, 2}}}, `'{"a":{"b":[1,2]}}'`},
		{"mapping with single quote", map[string]any{"k": "it's"}, `'{"k":"it''s"}'`},
		{"array", []any{1, "two"}, `'[1,"two"]'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(JSON(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEncodePoint(t *testing.T) {
	tests := []struct {
		name     string
		in       orb.Point
		expected string
	}{
		{"integral", orb.Point{1, 2}, "(1.0, 2.0)"},
		{"fractional", orb.Point{30.5234, 50.4501}, "(30.5234, 50.4501)"},
		{"negative", orb.Point{-0.1276, 51.5072}, "(-0.1276, 51.5072)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(Point(tt.in))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEncodeUnrecognizedKind(t *testing.T) {
	tests := []struct {
		name string
		in   Value
	}{
		{"zero value", Value{}},
		{"unknown kind", Value{Kind: "DECIMAL", Data: "1.5"}},
		{"payload mismatch", Value{Kind: KindInteger, Data: "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var encErr *EncodingError
			if !errors.As(err, &encErr) {
				t.Fatalf("expected *EncodingError, got %T", err)
			}
			if encErr.Element {
				t.Error("top-level failure reported as array element")
			}
		})
	}
}

// Encoding is pure: identical input yields byte-identical output.
func TestEncodeIdempotent(t *testing.T) {
	enc := NewPostgresEncoder(nil)
	values := []Value{
		Text(`It's a \test\`),
		Float(2.5),
		Interval(-90 * time.Second),
		List(Integer(1), Float(2.5), Integer(3)),
		JSON(map[string]any{"a": []any{1, "b"}}),
	}

	for _, v := range values {
		first, err := enc.Encode(v)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		second, err := enc.Encode(v)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if first != second {
			t.Errorf("non-deterministic output for %s: %q vs %q", v, first, second)
		}
	}
}

func BenchmarkEncodeText(b *testing.B) {
	enc := NewPostgresEncoder(nil)
	v := Text(`It's a \long\ string with 'quotes' and \backslashes\ sprinkled around`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeTextFastPath(b *testing.B) {
	enc := NewPostgresEncoder(nil)
	v := Text("a plain string without any characters that need escaping at all")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeList(b *testing.B) {
	enc := NewPostgresEncoder(nil)
	elems := make([]Value, 100)
	for i := range elems {
		elems[i] = Integer(int64(i))
	}
	v := List(elems...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(v); err != nil {
			b.Fatal(err)
		}
	}
}
