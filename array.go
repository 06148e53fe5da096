package pgliteral

import (
	"fmt"
	"strconv"
	"strings"
)

// formatList formats a list value as an array constructor literal {...}.
//
// The element kinds are first unified in a single left-to-right pass, then
// one encoding branch handles the whole list: bare booleans, bare numeric
// tokens, double-quoted text, or JSON-serialized elements for everything
// else. Nested lists always take the JSON branch.
func (e *PostgresEncoder) formatList(elems []Value) (string, error) {
	if len(elems) == 0 {
		return "{}", nil
	}

	kind, structured := unifyKinds(elems)
	parts := make([]string, 0, len(elems))

	if !structured {
		switch kind {
		case KindBoolean:
			for _, el := range elems {
				b, ok := el.Data.(bool)
				if !ok {
					return "", errElement(el)
				}
				if b {
					parts = append(parts, "true")
				} else {
					parts = append(parts, "false")
				}
			}
		case KindInteger:
			for _, el := range elems {
				i, ok := el.Data.(int64)
				if !ok {
					return "", errElement(el)
				}
				parts = append(parts, strconv.FormatInt(i, 10))
			}
		case KindFloat:
			// Integers promoted into a float-unified list lose exact
			// integer formatting and render through the float routine.
			for _, el := range elems {
				f, ok := elementFloat(el)
				if !ok {
					return "", errElement(el)
				}
				parts = append(parts, e.formatFloat(f))
			}
		case KindText:
			for _, el := range elems {
				s, ok := el.Data.(string)
				if !ok {
					return "", errElement(el)
				}
				parts = append(parts, quoteArrayElement(s))
			}
		default:
			structured = true
		}
	}

	if structured {
		for _, el := range elems {
			plain, err := el.plain()
			if err != nil {
				return "", err
			}
			data, err := marshalJSON(plain)
			if err != nil {
				return "", fmt.Errorf("pgliteral: marshal array element: %w", err)
			}
			parts = append(parts, quoteArrayElement(string(data)))
		}
	}

	return "{" + strings.Join(parts, ",") + "}", nil
}

// unifyKinds folds element kinds into a single encoding kind.
//
// The fold starts from the first element's kind and applies, per element:
// an equal kind keeps the running kind; two numeric kinds promote the
// running kind to float; anything else demotes to the structured marker.
// Once structured, the fold never promotes back.
func unifyKinds(elems []Value) (kind Kind, structured bool) {
	kind = elems[0].Kind
	for _, el := range elems[1:] {
		switch {
		case el.Kind == kind:
		case el.Kind.IsNumeric() && kind.IsNumeric():
			kind = KindFloat
		default:
			return kind, true
		}
	}
	return kind, false
}

// elementFloat reads a numeric element as float64, converting promoted
// integers.
func elementFloat(v Value) (float64, bool) {
	switch n := v.Data.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// plain converts the value to its natural Go representation for JSON
// serialization of structured array elements. Timestamps serialize in
// RFC 3339 form and intervals as nanosecond counts, per encoding/json.
func (v Value) plain() (any, error) {
	switch v.Kind {
	case KindNull:
		return nil, nil
	case KindInteger, KindFloat, KindText, KindBoolean,
		KindTimestamp, KindInterval, KindJSON, KindPoint:
		return v.Data, nil
	case KindList:
		elems, ok := v.Data.([]Value)
		if !ok {
			return nil, errElement(v)
		}
		out := make([]any, 0, len(elems))
		for _, el := range elems {
			plain, err := el.plain()
			if err != nil {
				return nil, err
			}
			out = append(out, plain)
		}
		return out, nil
	default:
		return nil, errElement(v)
	}
}
