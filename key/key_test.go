// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package key

import (
	"testing"

	"github.com/z5labs/figcon/value"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectedKey string
		expectedLen int
	}{
		{name: "single name", input: "port", expectedKey: "port", expectedLen: 1},
		{name: "nested", input: "server.http.port", expectedKey: "server.http.port", expectedLen: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chain := Parse(tc.input)
			require.Len(t, chain, tc.expectedLen)
			require.Equal(t, tc.expectedKey, chain.Key())
		})
	}
}

func TestGet(t *testing.T) {
	root, err := value.FromAny(map[string]any{
		"server": map[string]any{
			"http": map[string]any{
				"port": float64(8080),
			},
		},
		"name": "svc",
	})
	require.NoError(t, err)

	t.Run("single name", func(t *testing.T) {
		v, ok := Get(root, Name("name"))
		require.True(t, ok)
		s, _ := v.AsString()
		require.Equal(t, "svc", s)
	})

	t.Run("nested chain", func(t *testing.T) {
		v, ok := Get(root, Parse("server.http.port"))
		require.True(t, ok)
		f, _ := v.AsNumber()
		require.Equal(t, float64(8080), f)
	})

	t.Run("absent link", func(t *testing.T) {
		_, ok := Get(root, Parse("server.grpc.port"))
		require.False(t, ok)
	})

	t.Run("descends into a non-object", func(t *testing.T) {
		_, ok := Get(root, Parse("name.sub"))
		require.False(t, ok)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, ok := Get(root, Chain{})
		require.False(t, ok)
	})
}

func TestSet(t *testing.T) {
	t.Run("single name", func(t *testing.T) {
		root := value.Object()
		err := Set(root, Name("name"), value.String("svc"))
		require.NoError(t, err)
		require.True(t, root.Has("name"))
	})

	t.Run("creates intermediate objects", func(t *testing.T) {
		root := value.Object()
		err := Set(root, Parse("server.http.port"), value.Number(8080))
		require.NoError(t, err)

		v, ok := Get(root, Parse("server.http.port"))
		require.True(t, ok)
		f, _ := v.AsNumber()
		require.Equal(t, float64(8080), f)
	})

	t.Run("reuses existing intermediate objects", func(t *testing.T) {
		root := value.Object()
		require.NoError(t, Set(root, Parse("server.http.port"), value.Number(8080)))
		require.NoError(t, Set(root, Parse("server.http.host"), value.String("localhost")))

		server, ok := root.Get("server")
		require.True(t, ok)
		http, ok := server.Get("http")
		require.True(t, ok)
		require.Equal(t, []string{"host", "port"}, http.Keys())
	})

	t.Run("fails on a non-object intermediate", func(t *testing.T) {
		root := value.Object()
		root.Set("name", value.String("svc"))

		err := Set(root, Parse("name.sub"), value.Number(1))
		require.Error(t, err)

		var kerr UnexpectedKindError
		require.ErrorAs(t, err, &kerr)
		require.Equal(t, "name", kerr.Key)
		require.Equal(t, value.KindString, kerr.Kind)
	})

	t.Run("fails on a non-object root", func(t *testing.T) {
		err := Set(value.Number(1), Name("a"), value.Number(2))
		require.Error(t, err)

		var kerr UnexpectedKindError
		require.ErrorAs(t, err, &kerr)
	})

	t.Run("empty chain", func(t *testing.T) {
		err := Set(value.Object(), Chain{}, value.Number(1))
		require.Error(t, err)

		var cerr EmptyChainError
		require.ErrorAs(t, err, &cerr)
	})
}
