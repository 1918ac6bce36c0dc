package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Data is an opaque, forward-compatible key/value payload attached to inputs and outputs.
// A nil Data encodes as an empty object.
type Data map[string]Value

// Value is a tagged JSON variant. Numbers keep their literal text so payloads survive
// a decode/encode cycle unchanged.
type Value struct {
	kind Kind
	b    bool
	n    json.Number
	s    string
	a    []Value
	o    Data
}

func Null() Value           { return Value{} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Object(d Data) Value   { return Value{kind: KindObject, o: d.Clone()} }

// Array returns an array Value. A call without items yields an empty array.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, a: items}
}

// Uint returns a number Value holding v.
func Uint(v uint64) Value {
	return Value{kind: KindNumber, n: json.Number(strconv.FormatUint(v, 10))}
}

// Int returns a number Value holding v.
func Int(v int64) Value {
	return Value{kind: KindNumber, n: json.Number(strconv.FormatInt(v, 10))}
}

// Number returns a number Value from its literal text.
func Number(n json.Number) (Value, error) {
	if _, err := strconv.ParseFloat(string(n), 64); err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", n, err)
	}
	return Value{kind: KindNumber, n: n}, nil
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsNumber() (json.Number, bool) { return v.n, v.kind == KindNumber }

func (v Value) AsArray() ([]Value, bool) { return v.a, v.kind == KindArray }

func (v Value) AsObject() (Data, bool) { return v.o, v.kind == KindObject }

// AsUint64 reports the value as an unsigned integer when it is an integral number.
func (v Value) AsUint64() (uint64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	u, err := strconv.ParseUint(string(v.n), 10, 64)
	if err != nil {
		return 0, false
	}
	return u, true
}

// Interface converts the value to plain Go types (json.Number for numbers).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.a))
		for i, item := range v.a {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		return v.o.Interface()
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(v.n), nil
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		if len(v.a) == 0 {
			return []byte("[]"), nil
		}
		return json.Marshal(v.a)
	case KindObject:
		return v.o.MarshalJSON()
	default:
		return nil, fmt.Errorf("marshal value: unknown %s", v.kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := valueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Interface converts the mapping to map[string]any.
func (d Data) Interface() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v.Interface()
	}
	return out
}

// Get returns the value stored under key.
func (d Data) Get(key string) (Value, bool) {
	v, ok := d[key]
	return v, ok
}

// Clone returns a deep copy. The copy of a nil Data is empty, not nil.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v.clone()
	}
	return out
}

// Decode maps the payload onto out, a pointer to a struct tagged with json names.
func (d Data) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return fmt.Errorf("init data decoder: %w", err)
	}
	if err := dec.Decode(d.Interface()); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Keys are emitted in sorted order.
func (d Data) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]Value(d))
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to an empty mapping.
func (d *Data) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*d = Data{}
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return errors.New("data must be a JSON object")
	}
	parsed, err := dataOf(obj)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.a))
		for i, item := range v.a {
			items[i] = item.clone()
		}
		return Value{kind: KindArray, a: items}
	case KindObject:
		return Value{kind: KindObject, o: v.o.Clone()}
	default:
		return v
	}
}

func valueOf(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return Value{kind: KindNumber, n: x}, nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			parsed, err := valueOf(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = parsed
		}
		return Value{kind: KindArray, a: items}, nil
	case map[string]any:
		obj, err := dataOf(x)
		if err != nil {
			return Value{}, err
		}
		return Object(obj), nil
	default:
		return Value{}, fmt.Errorf("unsupported json value %T", raw)
	}
}

func dataOf(obj map[string]any) (Data, error) {
	out := make(Data, len(obj))
	for k, item := range obj {
		parsed, err := valueOf(item)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = parsed
	}
	return out, nil
}
