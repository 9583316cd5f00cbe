// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package codec provides document codecs for (de)serializing value trees.
//
// Two formats are supported out of the box, JSON and YAML. Both encode
// object keys in a deterministic order so that repeated saves of the
// same tree produce identical bytes.
package codec
