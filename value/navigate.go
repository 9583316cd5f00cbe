// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package value

import "sort"

// AnyKeys reports whether v is an object node holding at least one key.
// It is false for every other variant, never an error.
func (v *Value) AnyKeys() bool {
	return v != nil && v.kind == KindObject && len(v.fields) > 0
}

// Keys returns a sorted snapshot of all keys of an object node.
// It returns nil when AnyKeys is false.
func (v *Value) Keys() []string {
	if !v.AnyKeys() {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a snapshot of all child values of an object node, in
// the same order as Keys. It returns nil when AnyKeys is false.
func (v *Value) Values() []*Value {
	keys := v.Keys()
	if keys == nil {
		return nil
	}
	values := make([]*Value, len(keys))
	for i, k := range keys {
		values[i] = v.fields[k]
	}
	return values
}

// Get returns the child stored under key. ok is false when v is not
// an object node or the key is absent. Get never creates the key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Set stores val under key, overwriting any previous value. The tree
// takes ownership of val, callers must not keep mutating it through
// other references. Set is a silent no-op when v is not an object
// node. A nil val stores null.
func (v *Value) Set(key string, val *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	if val == nil {
		val = Null()
	}
	v.fields[key] = val
}

// Has reports whether key is present. It is false when v is not an
// object node.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Remove deletes key and returns the prior value. ok is false, and
// nothing changes, when v is not an object node or the key is absent.
func (v *Value) Remove(key string) (*Value, bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	prior, ok := v.fields[key]
	if !ok {
		return nil, false
	}
	delete(v.fields, key)
	return prior, true
}

// ChildObject stores a fresh empty object node under key, overwriting
// any previous value, and returns it. It returns nil when v is not an
// object node.
func (v *Value) ChildObject(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	child := Object()
	v.fields[key] = child
	return child
}

// Merge combines incoming into the value stored under key.
//
// Merge is a no-op when incoming is not an object node or holds zero
// keys. When key is already present and v currently holds at least one
// key, the existing object under key is extended one level deep with
// incoming's entries, incoming wins on colliding keys. Nested objects
// are replaced, not merged recursively. In every other case, including
// when the existing value under key is not an object, incoming is set
// under key wholesale.
func (v *Value) Merge(key string, incoming *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	if incoming == nil || incoming.kind != KindObject || len(incoming.fields) == 0 {
		return
	}

	// The merge-vs-replace gate intentionally checks both conditions.
	existing, ok := v.fields[key]
	if ok && len(v.fields) > 0 && existing.IsObject() {
		for k, item := range incoming.fields {
			existing.fields[k] = item
		}
		return
	}
	v.Set(key, incoming)
}
