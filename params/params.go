// Package params provides a wire codec for parameter value batches.
// Batches are MessagePack-encoded and optionally ZStandard-compressed,
// so a value-binding front end can ship parameters to the process that
// performs literal encoding and statement assembly.
package params

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/pgliteral"
)

// wireValue is the MessagePack representation of a single value.
// Kind selects which payload field is meaningful.
type wireValue struct {
	Kind  string      `msgpack:"kind"`
	Int   int64       `msgpack:"int,omitempty"`
	Float float64     `msgpack:"float,omitempty"`
	Text  string      `msgpack:"text,omitempty"`
	Bool  bool        `msgpack:"bool,omitempty"`
	Time  int64       `msgpack:"time,omitempty"` // timestamp, microseconds since Unix epoch
	Zone  int32       `msgpack:"zone,omitempty"` // timestamp offset, seconds east of UTC
	UTC   bool        `msgpack:"utc,omitempty"`  // timestamp carries the UTC marker
	Span  int64       `msgpack:"span,omitempty"` // interval, microseconds
	JSON  []byte      `msgpack:"json,omitempty"` // mapping, JSON-serialized
	X     float64     `msgpack:"x,omitempty"`
	Y     float64     `msgpack:"y,omitempty"`
	List  []wireValue `msgpack:"list,omitempty"`
}

// wireBatch is the top-level MessagePack envelope.
type wireBatch struct {
	Values []wireValue `msgpack:"values"`
}

// Marshal serializes a batch of values into MessagePack format.
func Marshal(values []pgliteral.Value) ([]byte, error) {
	batch := wireBatch{Values: make([]wireValue, 0, len(values))}
	for i, v := range values {
		w, err := toWire(v)
		if err != nil {
			return nil, fmt.Errorf("params: value %d: %w", i, err)
		}
		batch.Values = append(batch.Values, w)
	}

	data, err := msgpack.Marshal(&batch)
	if err != nil {
		return nil, fmt.Errorf("params: failed to encode MessagePack: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes a MessagePack batch back into values.
func Unmarshal(data []byte) ([]pgliteral.Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("params: empty MessagePack data")
	}

	var batch wireBatch
	if err := msgpack.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("params: failed to decode MessagePack: %w", err)
	}

	values := make([]pgliteral.Value, 0, len(batch.Values))
	for i, w := range batch.Values {
		v, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("params: value %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func toWire(v pgliteral.Value) (wireValue, error) {
	w := wireValue{Kind: string(v.Kind)}
	switch v.Kind {
	case pgliteral.KindNull:
	case pgliteral.KindInteger:
		i, ok := v.Data.(int64)
		if !ok {
			return w, badPayload(v)
		}
		w.Int = i
	case pgliteral.KindFloat:
		f, ok := v.Data.(float64)
		if !ok {
			return w, badPayload(v)
		}
		w.Float = f
	case pgliteral.KindText:
		s, ok := v.Data.(string)
		if !ok {
			return w, badPayload(v)
		}
		w.Text = s
	case pgliteral.KindBoolean:
		b, ok := v.Data.(bool)
		if !ok {
			return w, badPayload(v)
		}
		w.Bool = b
	case pgliteral.KindTimestamp:
		t, ok := v.Data.(time.Time)
		if !ok {
			return w, badPayload(v)
		}
		w.Time = t.UnixMicro()
		_, offset := t.Zone()
		w.Zone = int32(offset)
		w.UTC = t.Location() == time.UTC
	case pgliteral.KindInterval:
		d, ok := v.Data.(time.Duration)
		if !ok {
			return w, badPayload(v)
		}
		w.Span = d.Microseconds()
	case pgliteral.KindJSON:
		data, err := json.Marshal(v.Data)
		if err != nil {
			return w, fmt.Errorf("marshal json payload: %w", err)
		}
		w.JSON = data
	case pgliteral.KindPoint:
		p, ok := v.Data.(orb.Point)
		if !ok {
			return w, badPayload(v)
		}
		w.X, w.Y = p.X(), p.Y()
	case pgliteral.KindList:
		elems, ok := v.Data.([]pgliteral.Value)
		if !ok {
			return w, badPayload(v)
		}
		w.List = make([]wireValue, 0, len(elems))
		for i, el := range elems {
			we, err := toWire(el)
			if err != nil {
				return w, fmt.Errorf("list element %d: %w", i, err)
			}
			w.List = append(w.List, we)
		}
	default:
		return w, fmt.Errorf("unsupported kind %q", v.Kind)
	}
	return w, nil
}

func fromWire(w wireValue) (pgliteral.Value, error) {
	switch pgliteral.Kind(w.Kind) {
	case pgliteral.KindNull:
		return pgliteral.Null(), nil
	case pgliteral.KindInteger:
		return pgliteral.Integer(w.Int), nil
	case pgliteral.KindFloat:
		return pgliteral.Float(w.Float), nil
	case pgliteral.KindText:
		return pgliteral.Text(w.Text), nil
	case pgliteral.KindBoolean:
		return pgliteral.Boolean(w.Bool), nil
	case pgliteral.KindTimestamp:
		t := time.UnixMicro(w.Time)
		if w.UTC {
			t = t.UTC()
		} else {
			t = t.In(time.FixedZone("", int(w.Zone)))
		}
		return pgliteral.Timestamp(t), nil
	case pgliteral.KindInterval:
		return pgliteral.Interval(time.Duration(w.Span) * time.Microsecond), nil
	case pgliteral.KindJSON:
		var payload any
		if err := json.Unmarshal(w.JSON, &payload); err != nil {
			return pgliteral.Value{}, fmt.Errorf("unmarshal json payload: %w", err)
		}
		return pgliteral.JSON(payload), nil
	case pgliteral.KindPoint:
		return pgliteral.Point(orb.Point{w.X, w.Y}), nil
	case pgliteral.KindList:
		elems := make([]pgliteral.Value, 0, len(w.List))
		for i, we := range w.List {
			el, err := fromWire(we)
			if err != nil {
				return pgliteral.Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			elems = append(elems, el)
		}
		return pgliteral.List(elems...), nil
	default:
		return pgliteral.Value{}, fmt.Errorf("unknown kind %q", w.Kind)
	}
}

func badPayload(v pgliteral.Value) error {
	return fmt.Errorf("kind %s carries %T payload", v.Kind, v.Data)
}
