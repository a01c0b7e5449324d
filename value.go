// Package jsondiffpatch computes a structural delta between two JSON
// values and applies that delta to a base value to reconstruct the
// target, using the wire format popularized by the jsondiffpatch
// JavaScript project.
package jsondiffpatch

import "fmt"

// Kind identifies the variant held by a Value.
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
		return "unknown"
	}
}

// Value is a tagged union over the JSON data model: null, bool, number
// (float64), string, array, or object. The zero Value is KindNull.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64. NaN is accepted and preserved; see Equal for
// NaN comparison semantics.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a UTF-8 string. Embedded NULs are preserved.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered slice of values. The slice is retained, not
// copied; callers that need isolation should pass a fresh slice.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// ObjectValue wraps an ordered object. The Object is retained, not copied.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Len reports the number of elements (array) or members (object); it is
// 0 for scalar kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		if v.obj == nil {
			return 0
		}
		return v.obj.Len()
	default:
		return 0
	}
}

// Clone returns a value that shares no mutable state with v: arrays and
// objects are deep-copied, scalars are copied by value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		cp := make([]Value, len(v.arr))
		for i, e := range v.arr {
			cp[i] = e.Clone()
		}
		return Value{kind: KindArray, arr: cp}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return fmt.Sprintf("%g", v.n)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object[%d]", v.Len())
	default:
		return "<invalid>"
	}
}

// Object is an order-preserving string-keyed map: iteration follows
// insertion order, matching the semantics required of a JSON object
// decoded by a conforming parser (§3: two implementations that agree on
// insertion order produce byte-identical delta JSON).
//
// Lookup is backed by a hash index (a plain Go map from key to slot),
// which satisfies the §4.A requirement for an index structure faster
// than linear scan once an object grows past a handful of members; Go's
// map gives expected O(1) lookup, so no separate sorted index is kept.
type Object struct {
	keys []string
	pos  map[string]int
	vals []Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{}
}

// NewObjectCapacity returns an empty ordered object pre-sized for n
// members.
func NewObjectCapacity(n int) *Object {
	return &Object{
		keys: make([]string, 0, n),
		pos:  make(map[string]int, n),
		vals: make([]Value, 0, n),
	}
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get looks up a member by key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.pos[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.pos[key]
	return ok
}

// Set inserts or updates a member. Updating an existing key preserves
// its original position; inserting a new key appends it, matching
// parser insertion-order semantics.
func (o *Object) Set(key string, v Value) {
	if o.pos == nil {
		o.pos = make(map[string]int)
	}
	if i, ok := o.pos[key]; ok {
		o.vals[i] = v
		return
	}
	o.pos[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Delete removes a member by key, shifting later members down by one
// slot to keep keys/vals dense and pos consistent.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	i, ok := o.pos[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.pos, key)
	for k, idx := range o.pos {
		if idx > i {
			o.pos[k] = idx - 1
		}
	}
}

// Keys returns the member keys in insertion order. The returned slice
// must not be mutated.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Range calls fn for every member in insertion order. Range stops early
// if fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// Clone deep-copies the object and every member value.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	cp := NewObjectCapacity(len(o.keys))
	for i, k := range o.keys {
		cp.Set(k, o.vals[i].Clone())
	}
	return cp
}
