// Package pgliteral encodes in-memory values as PostgreSQL text-format SQL
// literals.
//
// The package is the literal-substitution core of a text-protocol database
// client: for every parameter value the client produces one literal string
// that is safe to splice verbatim into statement text. Connection handling,
// query execution and result parsing are out of scope and live in the
// surrounding client.
//
// # Quick Start
//
// Encode values with the default PostgreSQL encoder:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "time"
//
//	    "github.com/hugr-lab/pgliteral"
//	)
//
//	func main() {
//	    values := []pgliteral.Value{
//	        pgliteral.Integer(42),
//	        pgliteral.Text("O'Brien"),
//	        pgliteral.Timestamp(time.Now().UTC()),
//	        pgliteral.List(pgliteral.Integer(1), pgliteral.Integer(2)),
//	    }
//
//	    for _, v := range values {
//	        literal, err := pgliteral.Encode(v)
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        fmt.Println(literal)
//	    }
//	}
//
// # Value Model
//
// Values form a closed set of semantic kinds: null, integer, floating point,
// text, timestamp, interval, boolean, JSON mapping, geometric point and list.
// Construct them with Null, Integer, Float, Text, Timestamp, Date, Interval,
// Boolean, JSON, Point and List, or map natural Go values onto the kind set
// with Bind:
//
//	v, err := pgliteral.Bind(map[string]any{"tags": []any{"a", "b"}})
//
// # Escaping
//
// String literals double embedded single quotes and backslashes; literals
// containing backslashes select PostgreSQL's escape-string syntax (E'...').
// Escaping can be disabled per encoder for pre-escaped fragments:
//
//	enc := pgliteral.NewPostgresEncoder(&pgliteral.EncoderOptions{
//	    DisableStringEscaping: true,
//	})
//
// # Custom Dialects
//
// Implement the Encoder interface for other text-protocol dialects:
//
//	type MySQLEncoder struct { ... }
//	func (e *MySQLEncoder) Encode(v pgliteral.Value) (string, error) { ... }
//
// # Errors
//
// Encoding fails only for values outside the supported kind set (or values
// whose payload does not match their kind tag). Such failures surface as
// *EncodingError and indicate a programming or schema mismatch, not a
// transient fault; retrying with the same input never helps.
package pgliteral
