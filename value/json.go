// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package value

import "encoding/json"

// MarshalJSON implements the [json.Marshaler] interface. Object keys
// are encoded in sorted order so the output is deterministic.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.kind {
	case KindBool:
		return json.Marshal(v.boolean)
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		return json.Marshal(v.items)
	case KindObject:
		return json.Marshal(v.fields)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (v *Value) UnmarshalJSON(b []byte) error {
	var doc any
	err := json.Unmarshal(b, &doc)
	if err != nil {
		return err
	}
	node, err := FromAny(doc)
	if err != nil {
		return err
	}
	*v = *node
	return nil
}

// String renders v as compact JSON. Handy for debugging and log attrs.
func (v *Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}
