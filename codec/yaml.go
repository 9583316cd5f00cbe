// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"fmt"
	"io"

	"github.com/z5labs/figcon/value"

	"gopkg.in/yaml.v3"
)

// YAML is a [Codec] whose underlying format is YAML.
type YAML struct{}

// InvalidYAMLError occurs if the decoded bytes contain invalid YAML.
type InvalidYAMLError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidYAMLError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidYAMLError) Unwrap() error {
	return e.Cause
}

// Decode implements the [Codec] interface.
func (YAML) Decode(r io.Reader) (*value.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc any
	err = yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, InvalidYAMLError{Cause: err}
	}
	return value.FromAny(doc)
}

// Encode implements the [Codec] interface.
func (YAML) Encode(w io.Writer, v *value.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(v.ToAny())
	if err != nil {
		return err
	}
	return enc.Close()
}

// Ext implements the [Codec] interface.
func (YAML) Ext() string {
	return ".yaml"
}
