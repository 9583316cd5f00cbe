// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_AnyKeys(t *testing.T) {
	testCases := []struct {
		name     string
		value    *Value
		expected bool
	}{
		{name: "empty object", value: Object(), expected: false},
		{name: "scalar", value: Number(1), expected: false},
		{name: "array", value: Array(Number(1)), expected: false},
		{name: "null", value: Null(), expected: false},
		{name: "nil receiver", value: nil, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.value.AnyKeys())
		})
	}

	t.Run("object with a key", func(t *testing.T) {
		obj := Object()
		obj.Set("a", Number(1))
		require.True(t, obj.AnyKeys())
	})
}

func TestValue_Keys(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		require.Nil(t, Object().Keys())
		require.Nil(t, Object().Values())
	})

	t.Run("nil for non-objects", func(t *testing.T) {
		require.Nil(t, Array(Number(1)).Keys())
		require.Nil(t, String("x").Values())
	})

	t.Run("sorted snapshot", func(t *testing.T) {
		obj := Object()
		obj.Set("c", Number(3))
		obj.Set("a", Number(1))
		obj.Set("b", Number(2))

		require.Equal(t, []string{"a", "b", "c"}, obj.Keys())

		values := obj.Values()
		require.Len(t, values, 3)
		for i, expected := range []float64{1, 2, 3} {
			f, ok := values[i].AsNumber()
			require.True(t, ok)
			require.Equal(t, expected, f)
		}
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		obj := Object()
		obj.Set("a", Number(1))

		keys := obj.Keys()
		keys[0] = "mutated"
		require.True(t, obj.Has("a"))
		require.False(t, obj.Has("mutated"))
	})
}

func TestValue_GetSetHas(t *testing.T) {
	t.Run("set then get returns the value", func(t *testing.T) {
		obj := Object()
		obj.Set("a", Number(1))

		v, ok := obj.Get("a")
		require.True(t, ok)
		f, ok := v.AsNumber()
		require.True(t, ok)
		require.Equal(t, float64(1), f)
		require.True(t, obj.Has("a"))
	})

	t.Run("get never creates the key", func(t *testing.T) {
		obj := Object()
		_, ok := obj.Get("missing")
		require.False(t, ok)
		require.False(t, obj.Has("missing"))
		require.False(t, obj.AnyKeys())
	})

	t.Run("set overwrites without duplicating", func(t *testing.T) {
		obj := Object()
		obj.Set("a", Number(1))
		obj.Set("a", String("replaced"))

		require.Equal(t, 1, obj.Len())
		v, ok := obj.Get("a")
		require.True(t, ok)
		s, ok := v.AsString()
		require.True(t, ok)
		require.Equal(t, "replaced", s)
	})

	t.Run("set twice with same value is idempotent", func(t *testing.T) {
		once := Object()
		once.Set("a", Number(1))

		twice := Object()
		twice.Set("a", Number(1))
		twice.Set("a", Number(1))

		require.True(t, once.Equal(twice))
	})

	t.Run("set stores null for nil", func(t *testing.T) {
		obj := Object()
		obj.Set("a", nil)

		v, ok := obj.Get("a")
		require.True(t, ok)
		require.True(t, v.IsNull())
	})

	t.Run("silent no-op on non-objects", func(t *testing.T) {
		arr := Array(Number(1))
		arr.Set("a", Number(2))
		_, ok := arr.Get("a")
		require.False(t, ok)
		require.False(t, arr.Has("a"))

		var v *Value
		v.Set("a", Number(1))
		_, ok = v.Get("a")
		require.False(t, ok)
	})
}

func TestValue_Remove(t *testing.T) {
	t.Run("returns the prior value", func(t *testing.T) {
		obj := Object()
		obj.Set("a", String("gone"))

		prior, ok := obj.Remove("a")
		require.True(t, ok)
		s, _ := prior.AsString()
		require.Equal(t, "gone", s)
		require.False(t, obj.Has("a"))
	})

	t.Run("absent key", func(t *testing.T) {
		obj := Object()
		prior, ok := obj.Remove("missing")
		require.False(t, ok)
		require.Nil(t, prior)
	})

	t.Run("non-object is a no-op", func(t *testing.T) {
		prior, ok := String("x").Remove("a")
		require.False(t, ok)
		require.Nil(t, prior)
	})
}

func TestValue_ChildObject(t *testing.T) {
	t.Run("creates an empty object", func(t *testing.T) {
		obj := Object()
		sub := obj.ChildObject("sub")
		require.NotNil(t, sub)
		require.True(t, sub.IsObject())
		require.False(t, sub.AnyKeys())

		sub.Set("x", String("y"))
		got, ok := obj.Get("sub")
		require.True(t, ok)
		x, ok := got.Get("x")
		require.True(t, ok)
		s, _ := x.AsString()
		require.Equal(t, "y", s)
	})

	t.Run("overwrites any prior value", func(t *testing.T) {
		obj := Object()
		obj.Set("sub", Number(1))

		sub := obj.ChildObject("sub")
		require.NotNil(t, sub)

		got, ok := obj.Get("sub")
		require.True(t, ok)
		require.True(t, got.IsObject())
	})

	t.Run("nil for non-objects", func(t *testing.T) {
		require.Nil(t, Number(1).ChildObject("sub"))

		var v *Value
		require.Nil(t, v.ChildObject("sub"))
	})
}

func objectOf(t *testing.T, entries map[string]any) *Value {
	t.Helper()
	v, err := FromAny(entries)
	require.NoError(t, err)
	return v
}

func TestValue_Merge(t *testing.T) {
	t.Run("no-op when incoming has zero keys", func(t *testing.T) {
		obj := objectOf(t, map[string]any{"a": float64(1)})

		obj.Merge("a", Object())

		require.True(t, obj.Equal(objectOf(t, map[string]any{"a": float64(1)})))
	})

	t.Run("no-op when incoming is not an object", func(t *testing.T) {
		obj := objectOf(t, map[string]any{"a": float64(1)})

		obj.Merge("a", Number(2))
		obj.Merge("a", nil)

		require.True(t, obj.Equal(objectOf(t, map[string]any{"a": float64(1)})))
	})

	t.Run("sets wholesale when key is absent", func(t *testing.T) {
		obj := objectOf(t, map[string]any{"other": true})
		incoming := objectOf(t, map[string]any{"x": "y"})

		obj.Merge("sub", incoming)

		got, ok := obj.Get("sub")
		require.True(t, ok)
		require.True(t, got.Equal(incoming))
	})

	t.Run("sets wholesale when receiver is empty", func(t *testing.T) {
		obj := Object()
		incoming := objectOf(t, map[string]any{"x": "y"})

		obj.Merge("sub", incoming)

		require.Equal(t, []string{"sub"}, obj.Keys())
		got, ok := obj.Get("sub")
		require.True(t, ok)
		require.True(t, got.Equal(incoming))
	})

	t.Run("extends existing object, incoming wins", func(t *testing.T) {
		obj := objectOf(t, map[string]any{
			"sub": map[string]any{
				"keep":     "old",
				"conflict": "old",
			},
		})
		incoming := objectOf(t, map[string]any{
			"conflict": "new",
			"added":    float64(1),
		})

		obj.Merge("sub", incoming)

		require.True(t, obj.Equal(objectOf(t, map[string]any{
			"sub": map[string]any{
				"keep":     "old",
				"conflict": "new",
				"added":    float64(1),
			},
		})))
	})

	t.Run("merge is shallow", func(t *testing.T) {
		obj := objectOf(t, map[string]any{
			"sub": map[string]any{
				"nested": map[string]any{"keep": "old"},
			},
		})
		incoming := objectOf(t, map[string]any{
			"nested": map[string]any{"added": "new"},
		})

		obj.Merge("sub", incoming)

		// one level deep: the nested object is replaced, not merged
		require.True(t, obj.Equal(objectOf(t, map[string]any{
			"sub": map[string]any{
				"nested": map[string]any{"added": "new"},
			},
		})))
	})

	t.Run("replaces wholesale when existing value is not an object", func(t *testing.T) {
		obj := objectOf(t, map[string]any{"sub": float64(1)})
		incoming := objectOf(t, map[string]any{"x": "y"})

		obj.Merge("sub", incoming)

		got, ok := obj.Get("sub")
		require.True(t, ok)
		require.True(t, got.Equal(incoming))
	})

	t.Run("no-op on non-object receivers", func(t *testing.T) {
		arr := Array(Number(1))
		arr.Merge("sub", objectOf(t, map[string]any{"x": "y"}))
		require.False(t, arr.AnyKeys())

		var v *Value
		v.Merge("sub", objectOf(t, map[string]any{"x": "y"}))
	})
}
