// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package value

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String implements the [fmt.Stringer] interface.
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
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single node of a document tree. The zero value is null.
type Value struct {
	kind Kind

	boolean bool
	num     float64
	str     string
	items   []*Value
	fields  map[string]*Value
}

// Null returns a null node.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a bool node.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolean: b}
}

// Number returns a number node.
func Number(f float64) *Value {
	return &Value{kind: KindNumber, num: f}
}

// String returns a string node.
func String(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// Array returns an array node holding the given items, in order.
// nil items are stored as null nodes.
func Array(items ...*Value) *Value {
	vs := make([]*Value, len(items))
	for i, item := range items {
		if item == nil {
			item = Null()
		}
		vs[i] = item
	}
	return &Value{kind: KindArray, items: vs}
}

// Object returns an empty object node.
func Object() *Value {
	return &Value{kind: KindObject, fields: make(map[string]*Value)}
}

// UnsupportedTypeError occurs when [FromAny] encounters a Go value
// which has no document tree representation.
type UnsupportedTypeError struct {
	Value any
}

// Error implements the error interface.
func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("value: unsupported type: %T", e.Value)
}

// FromAny converts a dynamically typed Go value, like those produced
// by encoding/json or yaml decoders, into a document tree.
func FromAny(v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, UnsupportedTypeError{Value: v}
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case []any:
		arr := &Value{kind: KindArray, items: make([]*Value, len(x))}
		for i, item := range x {
			node, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			arr.items[i] = node
		}
		return arr, nil
	case map[string]any:
		obj := Object()
		for k, item := range x {
			node, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			obj.fields[k] = node
		}
		return obj, nil
	default:
		return nil, UnsupportedTypeError{Value: v}
	}
}

// Kind reports the variant held by v. A nil receiver is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v holds the null variant.
func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// IsObject reports whether v holds the object variant.
func (v *Value) IsObject() bool {
	return v.Kind() == KindObject
}

// AsBool returns the underlying bool. ok is false when v is not a bool node.
func (v *Value) AsBool() (b bool, ok bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

// AsNumber returns the underlying number. ok is false when v is not a number node.
func (v *Value) AsNumber() (f float64, ok bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the underlying string. ok is false when v is not a string node.
func (v *Value) AsString() (s string, ok bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsArray returns the underlying items. ok is false when v is not an
// array node. The returned slice aliases the node, mutating the items
// mutates the tree.
func (v *Value) AsArray() ([]*Value, bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.items, true
}

// AsObject returns the underlying fields. ok is false when v is not an
// object node. The returned map aliases the node.
func (v *Value) AsObject() (map[string]*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	return v.fields, true
}

// Len returns the number of keys of an object node or items of an
// array node. It is zero for every other variant.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// ToAny converts the tree back into plain Go values: nil, bool,
// float64, string, []any and map[string]any.
func (v *Value) ToAny() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.ToAny()
		}
		return items
	case KindObject:
		fields := make(map[string]any, len(v.fields))
		for k, item := range v.fields {
			fields[k] = item.ToAny()
		}
		return fields
	default:
		return nil
	}
}

// Clone returns a deep copy of v. Mutating the copy never affects v.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	switch v.kind {
	case KindArray:
		items := make([]*Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return &Value{kind: KindArray, items: items}
	case KindObject:
		fields := make(map[string]*Value, len(v.fields))
		for k, item := range v.fields {
			fields[k] = item.Clone()
		}
		return &Value{kind: KindObject, fields: fields}
	default:
		c := *v
		return &c
	}
}

// Equal reports deep key/value equality between two trees.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	if v == nil || other == nil {
		// both are null kinded at this point
		return true
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for k, item := range v.fields {
			otherItem, ok := other.fields[k]
			if !ok || !item.Equal(otherItem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
