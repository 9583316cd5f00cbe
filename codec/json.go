// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/z5labs/figcon/value"
)

// JSON is a [Codec] whose underlying format is JSON. Encoded output is
// indented with two spaces.
type JSON struct{}

// InvalidJSONError occurs if the decoded bytes contain invalid JSON.
type InvalidJSONError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidJSONError) Unwrap() error {
	return e.Cause
}

// Decode implements the [Codec] interface.
func (JSON) Decode(r io.Reader) (*value.Value, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc any
	err = json.Unmarshal(b, &doc)
	if err != nil {
		return nil, InvalidJSONError{Cause: err}
	}
	return value.FromAny(doc)
}

// Encode implements the [Codec] interface.
func (JSON) Encode(w io.Writer, v *value.Value) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Ext implements the [Codec] interface.
func (JSON) Ext() string {
	return ".json"
}
