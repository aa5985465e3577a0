package value

import (
	"math"
	"sort"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindDouble
	KindString
	KindList
	KindStruct
)

// String returns the lower-case name of the kind, as used in log fields and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is a node of the canonical value tree. It holds exactly one of the
// variants named by Kind. The zero Value is Null.
//
// Values are immutable once built: constructors copy their inputs and
// accessors return copies of composite contents.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	d      float64
	s      string
	list   []Value
	fields map[string]Value
}

// Null returns the Null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Integer wraps a signed 64-bit integer.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Double wraps a 64-bit float.
func Double(d float64) Value { return Value{kind: KindDouble, d: d} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List builds an ordered list from the given items.
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Struct builds a struct from the given fields. A nil map yields an empty struct.
func Struct(fields map[string]Value) Value {
	copied := make(map[string]Value, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Value{kind: KindStruct, fields: copied}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether v is an Integer or a Double.
func (v Value) IsNumeric() bool { return v.kind == KindInteger || v.kind == KindDouble }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInteger returns the integer held by v.
func (v Value) AsInteger() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// AsDouble returns the float held by v. Only Double values qualify; use AsFloat
// to accept both numeric variants.
func (v Value) AsDouble() (float64, bool) {
	return v.d, v.kind == KindDouble
}

// AsFloat returns the numeric content of an Integer or Double as a float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindDouble:
		return v.d, true
	default:
		return 0, false
	}
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsList returns a copy of the items held by v.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	items := make([]Value, len(v.list))
	copy(items, v.list)
	return items, true
}

// Len returns the number of items of a List or fields of a Struct, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindStruct:
		return len(v.fields)
	default:
		return 0
	}
}

// Index returns the i-th item of a List.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// AsStruct returns a copy of the fields held by v.
func (v Value) AsStruct() (map[string]Value, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	fields := make(map[string]Value, len(v.fields))
	for k, f := range v.fields {
		fields[k] = f
	}
	return fields, true
}

// Field looks up a field of a Struct. The second result is false when v is not
// a Struct or has no such field.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindStruct {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Keys returns the field names of a Struct in sorted order.
func (v Value) Keys() []string {
	if v.kind != KindStruct {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and other are structurally identical. Integer and
// Double are distinct variants, so Integer(1) does not equal Double(1).
// Doubles compare by bit pattern, which makes NaN equal to itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindDouble:
		return math.Float64bits(v.d) == math.Float64bits(other.d)
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindStruct:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for k, f := range v.fields {
			o, ok := other.fields[k]
			if !ok || !f.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts v back into plain Go values: nil, bool, int64, float64,
// string, []interface{} and map[string]interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInteger:
		return v.i
	case KindDouble:
		return v.d
	case KindString:
		return v.s
	case KindList:
		items := make([]interface{}, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindStruct:
		fields := make(map[string]interface{}, len(v.fields))
		for k, f := range v.fields {
			fields[k] = f.Interface()
		}
		return fields
	default:
		return nil
	}
}
