package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Normalize converts a raw record value into the canonical tree.
//
// Textual input ([]byte, json.RawMessage or string) is parsed as JSON with
// FromJSON. Everything else is treated as an in-memory object graph and walked
// with FromNative.
func Normalize(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case []byte:
		return FromJSON(r)
	case json.RawMessage:
		return FromJSON(r)
	case string:
		return FromJSON([]byte(r))
	default:
		return FromNative(raw)
	}
}

// FromJSON parses a single JSON value. Numbers without a fraction or exponent
// become Integer and all other numbers become Double. Integers outside the
// int64 range, empty input and trailing data are reported as ErrMalformedInput.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: unexpected data after top-level value", ErrMalformedInput)
	}

	return fromDecoded(decoded)
}

// fromDecoded maps the output of a UseNumber decoder onto the tree.
func fromDecoded(decoded interface{}) (Value, error) {
	switch d := decoded.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case json.Number:
		v, err := fromNumber(d)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return v, nil
	case []interface{}:
		items := make([]Value, len(d))
		for i, item := range d {
			v, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindList, list: items}, nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(d))
		for k, item := range d {
			v, err := fromDecoded(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return Value{kind: KindStruct, fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected decoded type %T", ErrMalformedInput, decoded)
	}
}

// fromNumber classifies a JSON number literal by its textual form.
func fromNumber(n json.Number) (Value, error) {
	text := n.String()
	if strings.ContainsAny(text, ".eE") {
		d, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, err
		}
		return Double(d), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("integer %s out of range", text)
	}
	return Integer(i), nil
}

// FromNative walks an in-memory structure and builds the equivalent tree.
//
// Recognised shapes are nil, booleans, every Go integer and float width,
// json.Number, strings, maps keyed by strings, slices and arrays, pointers to
// any of these, protobuf struct values and Values themselves. Anything else is
// re-encoded through JSON and parsed with FromJSON; if that fails too the
// result is ErrUnsupportedType.
func FromNative(raw interface{}) (Value, error) {
	switch r := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return r, nil
	case *Value:
		if r == nil {
			return Null(), nil
		}
		return *r, nil
	case bool:
		return Bool(r), nil
	case int:
		return Integer(int64(r)), nil
	case int8:
		return Integer(int64(r)), nil
	case int16:
		return Integer(int64(r)), nil
	case int32:
		return Integer(int64(r)), nil
	case int64:
		return Integer(r), nil
	case uint:
		return fromUnsigned(uint64(r))
	case uint8:
		return Integer(int64(r)), nil
	case uint16:
		return Integer(int64(r)), nil
	case uint32:
		return Integer(int64(r)), nil
	case uint64:
		return fromUnsigned(r)
	case float32:
		return Double(float64(r)), nil
	case float64:
		return Double(r), nil
	case json.Number:
		v, err := fromNumber(r)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		return v, nil
	case json.RawMessage:
		return FromJSON(r)
	case string:
		return String(r), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(r))
		for k, item := range r {
			v, err := FromNative(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return Value{kind: KindStruct, fields: fields}, nil
	case []interface{}:
		items := make([]Value, len(r))
		for i, item := range r {
			v, err := FromNative(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindList, list: items}, nil
	case *structpb.Struct:
		return fromProtoStruct(r), nil
	case *structpb.Value:
		return fromProtoValue(r), nil
	case *structpb.ListValue:
		return fromProtoList(r), nil
	case map[string]*structpb.Value:
		return fromProtoStruct(&structpb.Struct{Fields: r}), nil
	default:
		return fromReflected(reflect.ValueOf(raw))
	}
}

func fromUnsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: unsigned integer %d exceeds int64", ErrUnsupportedType, u)
	}
	return Integer(int64(u)), nil
}

// fromReflected handles typed maps, slices and pointers that the type switch
// in FromNative cannot enumerate, then falls back to a JSON round trip.
func fromReflected(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromNative(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := FromNative(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			fields[iter.Key().String()] = v
		}
		return Value{kind: KindStruct, fields: fields}, nil
	case reflect.Slice, reflect.Array:
		// []byte is left to the JSON fallback, which renders it as base64 text.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null(), nil
		}
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindList, list: items}, nil
	}

	encoded, err := json.Marshal(rv.Interface())
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedType, rv.Type(), err)
	}
	v, err := FromJSON(encoded)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedType, rv.Type(), err)
	}
	return v, nil
}

func fromProtoStruct(s *structpb.Struct) Value {
	fields := make(map[string]Value, len(s.GetFields()))
	for k, f := range s.GetFields() {
		fields[k] = fromProtoValue(f)
	}
	return Value{kind: KindStruct, fields: fields}
}

func fromProtoList(l *structpb.ListValue) Value {
	items := make([]Value, len(l.GetValues()))
	for i, item := range l.GetValues() {
		items[i] = fromProtoValue(item)
	}
	return Value{kind: KindList, list: items}
}

// fromProtoValue maps a protobuf value. Protobuf carries every number as a
// double, so integral values within the int64 range are restored to Integer.
// A value with no kind set is Null.
func fromProtoValue(pv *structpb.Value) Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return Integer(int64(n))
		}
		return Double(n)
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_StructValue:
		return fromProtoStruct(k.StructValue)
	case *structpb.Value_ListValue:
		return fromProtoList(k.ListValue)
	default:
		return Null()
	}
}
