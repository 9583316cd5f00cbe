// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides strongly typed keys for addressing nodes in a
// document tree, including dotted chains which reach into nested
// object nodes.
package key

import (
	"fmt"
	"strings"

	"github.com/z5labs/figcon/value"
)

// Keyer is a common interface all key types must implement.
type Keyer interface {
	Key() string
}

// Name represents a single key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Chain represents nested keys.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range k {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, ".")
}

// Parse splits a dotted key, like "server.http.port", into a [Chain].
func Parse(s string) Chain {
	parts := strings.Split(s, ".")
	chain := make(Chain, len(parts))
	for i, part := range parts {
		chain[i] = Name(part)
	}
	return chain
}

// UnknownKeyerError occurs when a [Keyer] implementation other than
// [Name] or [Chain] is used.
type UnknownKeyerError struct {
	Key Keyer
}

// Error implements the error interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("key: unknown keyer type %T: %s", e.Key, e.Key.Key())
}

// EmptyChainError occurs when an empty [Chain] is used to address a node.
type EmptyChainError struct{}

// Error implements the error interface.
func (e EmptyChainError) Error() string {
	return "key: empty key chain"
}

// UnexpectedKindError occurs when a chain tries to descend through a
// node which is not an object.
type UnexpectedKindError struct {
	Key  string
	Kind value.Kind
}

// Error implements the error interface.
func (e UnexpectedKindError) Error() string {
	return fmt.Sprintf("key: expected %q to be an object, found %s", e.Key, e.Kind)
}

// Get returns the node addressed by k, starting from root. ok is
// false when any link of the chain is absent or not an object.
func Get(root *value.Value, k Keyer) (*value.Value, bool) {
	switch x := k.(type) {
	case Name:
		return root.Get(string(x))
	case Chain:
		node := root
		for _, link := range x {
			child, ok := node.Get(link.Key())
			if !ok {
				return nil, false
			}
			node = child
		}
		if len(x) == 0 {
			return nil, false
		}
		return node, true
	default:
		return nil, false
	}
}

// Set stores v at the node addressed by k, starting from root.
// Intermediate objects are created as needed. Set fails when an
// intermediate node exists but is not an object.
func Set(root *value.Value, k Keyer, v *value.Value) error {
	switch x := k.(type) {
	case Name:
		if !root.IsObject() {
			return UnexpectedKindError{Key: string(x), Kind: root.Kind()}
		}
		root.Set(string(x), v)
		return nil
	case Chain:
		return setChain(root, x, v)
	default:
		return UnknownKeyerError{Key: k}
	}
}

func setChain(node *value.Value, chain Chain, v *value.Value) error {
	if len(chain) == 0 {
		return EmptyChainError{}
	}

	head := chain[0]
	if len(chain) == 1 {
		return Set(node, Name(head.Key()), v)
	}

	child, ok := node.Get(head.Key())
	if !ok {
		child = node.ChildObject(head.Key())
		if child == nil {
			return UnexpectedKindError{Key: head.Key(), Kind: node.Kind()}
		}
	}
	if !child.IsObject() {
		return UnexpectedKindError{Key: head.Key(), Kind: child.Kind()}
	}
	return setChain(child, chain[1:], v)
}
