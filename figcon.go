// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package figcon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/z5labs/figcon/codec"
	"github.com/z5labs/figcon/internal/try"
	"github.com/z5labs/figcon/key"
	"github.com/z5labs/figcon/value"

	"github.com/go-viper/mapstructure/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type options struct {
	codec      codec.Codec
	logHandler slog.Handler
	readFS     fs.FS
}

// Option configures a [Store].
type Option func(*options)

// WithCodec overrides the codec used to decode and encode the config
// file. By default the codec is picked from the path's file extension,
// JSON when the extension is unrecognized.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// LogHandler sets the slog.Handler the store logs with. Logs are
// discarded by default.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// ReadFS makes the store open its config file through the given
// [fs.FS] instead of the OS filesystem. Writes performed by
// [Store.Save] always go through the OS filesystem.
func ReadFS(fsys fs.FS) Option {
	return func(o *options) {
		o.readFS = fsys
	}
}

// LoadError occurs when an existing config file cannot be read or parsed.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load config from %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoadError) Unwrap() error {
	return e.Cause
}

// SaveError occurs when the config tree cannot be serialized or
// written to its path.
type SaveError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e SaveError) Error() string {
	return fmt.Sprintf("failed to save config to %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SaveError) Unwrap() error {
	return e.Cause
}

// UnexpectedRootKindError occurs when a config file parses successfully
// but its document root is not an object.
type UnexpectedRootKindError struct {
	Kind value.Kind
}

// Error implements the error interface.
func (e UnexpectedRootKindError) Error() string {
	return fmt.Sprintf("config document root must be an object, found %s", e.Kind)
}

// Store is a synchronous, file backed configuration store. Its root
// tree is always an object node.
//
// A Store performs no internal locking. Sharing one across goroutines
// requires external mutual exclusion.
type Store struct {
	root *value.Value
	path string

	codec codec.Codec
	opts  []Option
	log   *slog.Logger
}

// LoadOrDefault opens path and parses its full contents into the
// store's tree.
//
// If the path does not exist the returned store starts from an empty
// object, this is the only silently defaulted case. Any other open or
// read failure, a parse failure, or a document whose root is not an
// object is returned as a [LoadError].
func LoadOrDefault(ctx context.Context, path string, opts ...Option) (*Store, error) {
	_, span := otel.Tracer("figcon").Start(ctx, "LoadOrDefault", trace.WithAttributes(
		attribute.String("path", path),
	))
	defer span.End()

	o := &options{
		logHandler: slog.NewTextHandler(io.Discard, nil),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.codec == nil {
		o.codec = codec.ForPath(path)
	}

	s := &Store{
		root:  value.Object(),
		path:  path,
		codec: o.codec,
		opts:  opts,
		log:   slog.New(o.logHandler),
	}

	root, err := readTree(o, path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.DebugContext(ctx, "config file absent, starting from an empty tree", slog.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}
	if !root.IsObject() {
		return nil, LoadError{Path: path, Cause: UnexpectedRootKindError{Kind: root.Kind()}}
	}

	s.root = root
	s.log.DebugContext(ctx, "config loaded", slog.String("path", path), slog.Int("keys", root.Len()))
	return s, nil
}

func readTree(o *options, path string) (_ *value.Value, err error) {
	var f fs.File
	if o.readFS != nil {
		f, err = o.readFS.Open(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}
	defer try.Close(&err, f)

	return o.codec.Decode(f)
}

// Path returns the store's current filesystem path.
func (s *Store) Path() string {
	return s.path
}

// SetPath changes the store's filesystem path. It never touches the
// in-memory tree or the disk. Call [Store.Save] afterwards to write
// the tree to the new location.
func (s *Store) SetPath(path string) {
	s.path = path
}

// Reload reads the config file at the current path again and returns a
// fresh store built from it. The receiver is left untouched, callers
// must rebind:
//
//	store, err = store.Reload(ctx)
func (s *Store) Reload(ctx context.Context) (*Store, error) {
	spanCtx, span := otel.Tracer("figcon").Start(ctx, "Store.Reload", trace.WithAttributes(
		attribute.String("path", s.path),
	))
	defer span.End()

	return LoadOrDefault(spanCtx, s.path, s.opts...)
}

// Save serializes the tree in a human readable form and writes it to
// the current path, creating the file if absent and truncating it
// otherwise.
func (s *Store) Save(ctx context.Context) (err error) {
	_, span := otel.Tracer("figcon").Start(ctx, "Store.Save", trace.WithAttributes(
		attribute.String("path", s.path),
	))
	defer span.End()

	f, err := os.Create(s.path)
	if err != nil {
		return SaveError{Path: s.path, Cause: err}
	}
	defer try.Close(&err, f)

	w := bufio.NewWriter(f)
	err = s.codec.Encode(w, s.root)
	if err != nil {
		return SaveError{Path: s.path, Cause: err}
	}
	err = w.Flush()
	if err != nil {
		return SaveError{Path: s.path, Cause: err}
	}

	s.log.DebugContext(ctx, "config saved", slog.String("path", s.path), slog.Int("keys", s.root.Len()))
	return nil
}

// Root returns the root object node of the tree.
func (s *Store) Root() *value.Value {
	return s.root
}

// AnyKeys reports whether the tree holds at least one top level key.
func (s *Store) AnyKeys() bool {
	return s.root.AnyKeys()
}

// Keys returns a sorted snapshot of all top level keys, nil when the
// tree is empty.
func (s *Store) Keys() []string {
	return s.root.Keys()
}

// Get returns the value stored under key. ok is false when the key is
// absent.
func (s *Store) Get(k string) (*value.Value, bool) {
	return s.root.Get(k)
}

// Set stores v under key, overwriting any previous value.
func (s *Store) Set(k string, v *value.Value) {
	s.root.Set(k, v)
}

// Has reports whether key is present.
func (s *Store) Has(k string) bool {
	return s.root.Has(k)
}

// Remove deletes key and returns the prior value, ok is false when the
// key was absent.
func (s *Store) Remove(k string) (*value.Value, bool) {
	return s.root.Remove(k)
}

// ChildObject stores a fresh empty object under key, overwriting any
// previous value, and returns it.
func (s *Store) ChildObject(k string) *value.Value {
	return s.root.ChildObject(k)
}

// Merge combines incoming into the value stored under key, per
// [value.Value.Merge] semantics.
func (s *Store) Merge(k string, incoming *value.Value) {
	s.root.Merge(k, incoming)
}

// At returns the node addressed by a dotted key chain, for example
// key.Parse("server.http.port").
func (s *Store) At(k key.Keyer) (*value.Value, bool) {
	return key.Get(s.root, k)
}

// SetAt stores v at the node addressed by a dotted key chain, creating
// intermediate objects as needed.
func (s *Store) SetAt(k key.Keyer, v *value.Value) error {
	return key.Set(s.root, k, v)
}

// Unmarshal decodes the tree into v. Struct fields are matched via the
// "config" tag. String values unmarshal into [encoding.TextUnmarshaler]
// implementations and [time.Duration] fields transparently.
func (s *Store) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(s.root.ToAny())
}

// String renders the entire tree in the store's codec format. It can
// be slow on large trees, avoid calling it on a hot path.
func (s *Store) String() string {
	var sb strings.Builder
	err := s.codec.Encode(&sb, s.root)
	if err != nil {
		return "<invalid>"
	}
	return sb.String()
}
