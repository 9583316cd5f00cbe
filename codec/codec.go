// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/z5labs/figcon/value"
)

// Codec (de)serializes a document tree to and from a textual format.
type Codec interface {
	// Decode parses the full contents of r into a tree.
	Decode(r io.Reader) (*value.Value, error)

	// Encode renders v to w in a human readable form.
	Encode(w io.Writer, v *value.Value) error

	// Ext returns the canonical file extension for the format,
	// including the leading dot.
	Ext() string
}

// ForPath selects a [Codec] based on the file extension of path.
// JSON is the default for unrecognized extensions.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML{}
	default:
		return JSON{}
	}
}
