// Package arrowconv maps Apache Arrow column values onto the pgliteral
// value model, so rows of an arrow.Record can be encoded as SQL literals.
//
// Arrow types outside the literal kind set (binary, time-of-day,
// dictionaries, non-point geometries) are rejected with an error rather
// than silently coerced.
package arrowconv

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"github.com/hugr-lab/pgliteral"
)

// geometryExtensionName is the Arrow extension identifier for WKB geometry
// columns, as used by GeoArrow and the DuckDB spatial extension.
const geometryExtensionName = "geoarrow.wkb"

// Row converts one row of a record into a value per column.
func Row(rec arrow.Record, row int) ([]pgliteral.Value, error) {
	if row < 0 || row >= int(rec.NumRows()) {
		return nil, fmt.Errorf("arrowconv: row %d out of range (rows %d)", row, rec.NumRows())
	}

	values := make([]pgliteral.Value, 0, rec.NumCols())
	for i := 0; i < int(rec.NumCols()); i++ {
		v, err := Cell(rec.Column(i), row)
		if err != nil {
			return nil, fmt.Errorf("arrowconv: column %q: %w", rec.ColumnName(i), err)
		}
		values = append(values, v)
	}
	return values, nil
}

// Cell converts a single column value into a Value.
//
// Nulls map to the null value. Struct and map columns become JSON mappings;
// list columns become lists; WKB geometry extension columns become points.
func Cell(col arrow.Array, row int) (pgliteral.Value, error) {
	if row < 0 || row >= col.Len() {
		return pgliteral.Value{}, fmt.Errorf("arrowconv: row %d out of range (len %d)", row, col.Len())
	}
	if col.IsNull(row) {
		return pgliteral.Null(), nil
	}

	if ext, ok := col.(array.ExtensionArray); ok {
		return extensionCell(ext, row)
	}

	switch a := col.(type) {
	case *array.Boolean:
		return pgliteral.Boolean(a.Value(row)), nil
	case *array.Int8:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Int16:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Int32:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Int64:
		return pgliteral.Integer(a.Value(row)), nil
	case *array.Uint8:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Uint16:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Uint32:
		return pgliteral.Integer(int64(a.Value(row))), nil
	case *array.Uint64:
		v := a.Value(row)
		if v > math.MaxInt64 {
			return pgliteral.Value{}, fmt.Errorf("arrowconv: uint64 value %d overflows int64", v)
		}
		return pgliteral.Integer(int64(v)), nil
	case *array.Float32:
		return pgliteral.Float(float64(a.Value(row))), nil
	case *array.Float64:
		return pgliteral.Float(a.Value(row)), nil
	case *array.String:
		return pgliteral.Text(a.Value(row)), nil
	case *array.LargeString:
		return pgliteral.Text(a.Value(row)), nil
	case *array.Date32:
		return pgliteral.Timestamp(a.Value(row).ToTime()), nil
	case *array.Date64:
		return pgliteral.Timestamp(a.Value(row).ToTime()), nil
	case *array.Timestamp:
		dt := a.DataType().(*arrow.TimestampType)
		return pgliteral.Timestamp(a.Value(row).ToTime(dt.Unit)), nil
	case *array.Duration:
		dt := a.DataType().(*arrow.DurationType)
		return pgliteral.Interval(time.Duration(a.Value(row)) * dt.Unit.Multiplier()), nil
	case *array.List:
		start, end := a.ValueOffsets(row)
		return listCell(a.ListValues(), int(start), int(end))
	case *array.LargeList:
		start, end := a.ValueOffsets(row)
		return listCell(a.ListValues(), int(start), int(end))
	case *array.FixedSizeList:
		n := int(a.DataType().(*arrow.FixedSizeListType).Len())
		return listCell(a.ListValues(), row*n, (row+1)*n)
	case *array.Struct:
		return structCell(a, row)
	case *array.Map:
		return mapCell(a, row)
	default:
		return pgliteral.Value{}, fmt.Errorf("arrowconv: unsupported arrow type %s", col.DataType())
	}
}

func extensionCell(ext array.ExtensionArray, row int) (pgliteral.Value, error) {
	extType, ok := ext.DataType().(arrow.ExtensionType)
	if !ok || extType.ExtensionName() != geometryExtensionName {
		return pgliteral.Value{}, fmt.Errorf("arrowconv: unsupported extension type %s", ext.DataType())
	}

	var raw []byte
	switch storage := ext.Storage().(type) {
	case *array.Binary:
		raw = storage.Value(row)
	case *array.LargeBinary:
		raw = storage.Value(row)
	default:
		return pgliteral.Value{}, fmt.Errorf("arrowconv: invalid geometry storage type %s", ext.Storage().DataType())
	}

	geom, err := wkb.Unmarshal(raw)
	if err != nil {
		return pgliteral.Value{}, fmt.Errorf("arrowconv: decode WKB geometry: %w", err)
	}
	point, ok := geom.(orb.Point)
	if !ok {
		return pgliteral.Value{}, fmt.Errorf("arrowconv: unsupported geometry type %T (only points encode as literals)", geom)
	}
	return pgliteral.Point(point), nil
}

func listCell(values arrow.Array, start, end int) (pgliteral.Value, error) {
	elems := make([]pgliteral.Value, 0, end-start)
	for i := start; i < end; i++ {
		el, err := Cell(values, i)
		if err != nil {
			return pgliteral.Value{}, fmt.Errorf("list element %d: %w", i-start, err)
		}
		elems = append(elems, el)
	}
	return pgliteral.List(elems...), nil
}

func structCell(a *array.Struct, row int) (pgliteral.Value, error) {
	st := a.DataType().(*arrow.StructType)

	fields := make(map[string]any, a.NumField())
	for i := 0; i < a.NumField(); i++ {
		v, err := Cell(a.Field(i), row)
		if err != nil {
			return pgliteral.Value{}, fmt.Errorf("field %q: %w", st.Field(i).Name, err)
		}
		fields[st.Field(i).Name] = native(v)
	}
	return pgliteral.JSON(fields), nil
}

func mapCell(a *array.Map, row int) (pgliteral.Value, error) {
	keys, ok := a.Keys().(*array.String)
	if !ok {
		return pgliteral.Value{}, fmt.Errorf("arrowconv: map keys must be strings, got %s", a.Keys().DataType())
	}

	start, end := a.ValueOffsets(row)
	entries := make(map[string]any, end-start)
	for i := int(start); i < int(end); i++ {
		v, err := Cell(a.Items(), i)
		if err != nil {
			return pgliteral.Value{}, fmt.Errorf("map entry %q: %w", keys.Value(i), err)
		}
		entries[keys.Value(i)] = native(v)
	}
	return pgliteral.JSON(entries), nil
}

// native converts a Value back to its natural Go representation for use
// inside a JSON mapping payload.
func native(v pgliteral.Value) any {
	switch v.Kind {
	case pgliteral.KindNull:
		return nil
	case pgliteral.KindPoint:
		p := v.Data.(orb.Point)
		return []float64{p.X(), p.Y()}
	case pgliteral.KindList:
		elems := v.Data.([]pgliteral.Value)
		out := make([]any, 0, len(elems))
		for _, el := range elems {
			out = append(out, native(el))
		}
		return out
	default:
		return v.Data
	}
}
