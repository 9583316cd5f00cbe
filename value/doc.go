// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package value implements a generic, dynamically typed document tree.
//
// A [Value] is a tagged union over the usual JSON-ish variants: null,
// bool, number, string, array and object. Every node exclusively owns
// its children, so a tree is always a strict hierarchy rooted at one
// node.
//
// Navigation into object nodes never panics on type mismatches.
// Operations which require an object node simply report absence
// (or silently do nothing, for mutations) when called on any other
// variant. This makes it safe to chain lookups into untrusted,
// dynamically shaped documents:
//
//	v, ok := root.Get("server")
//	if !ok {
//	    // "server" is absent or root is not an object
//	}
package value
