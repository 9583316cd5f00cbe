// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// figcon-cli demonstrates the load, mutate, save lifecycle of a store.
//
//	figcon-cli --file config.json set greeting '"hello"'
//	figcon-cli --file config.json get greeting
//	figcon-cli --file config.json merge server '{"port": 8080}'
//	figcon-cli --file config.json del greeting
//	figcon-cli --file config.json show
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/z5labs/figcon"
	"github.com/z5labs/figcon/key"
	"github.com/z5labs/figcon/value"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	err := buildCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var file string
	var verbose bool
	var traceSpans bool

	var tp *sdktrace.TracerProvider

	cmd := &cobra.Command{
		Use:          "figcon-cli",
		Short:        "Inspect and edit a figcon config file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !traceSpans {
				return nil
			}
			exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
			if err != nil {
				return err
			}
			tp = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
			otel.SetTracerProvider(tp)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if tp == nil {
				return nil
			}
			return tp.Shutdown(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVar(&file, "file", "config.json", "path of the config file")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log store operations to stderr")
	cmd.PersistentFlags().BoolVar(&traceSpans, "trace", false, "print trace spans to stderr")

	load := func(ctx context.Context) (*figcon.Store, error) {
		var opts []figcon.Option
		if verbose {
			opts = append(opts, figcon.LogHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
		return figcon.LoadOrDefault(ctx, file, opts...)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under a dotted key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			v, ok := store.At(key.Parse(args[0]))
			if !ok {
				return errors.New("key not found: " + args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a JSON value under a dotted key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			err = store.SetAt(key.Parse(args[0]), v)
			if err != nil {
				return err
			}
			return store.Save(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "del KEY",
		Short: "Remove a top level key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			prior, ok := store.Remove(args[0])
			if !ok {
				return errors.New("key not found: " + args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), prior)
			return store.Save(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "merge KEY OBJECT",
		Short: "Shallow merge a JSON object into a top level key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			incoming, err := parseValue(args[1])
			if err != nil {
				return err
			}
			if !incoming.IsObject() {
				return errors.New("merge value must be a JSON object")
			}
			store.Merge(args[0], incoming)
			return store.Save(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the whole config tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), store)
			return nil
		},
	})

	return cmd
}

// parseValue reads a JSON document from s, falling back to a plain
// string when s is not valid JSON. That way `set name hello` works
// without forcing the caller to quote twice.
func parseValue(s string) (*value.Value, error) {
	var doc any
	err := json.Unmarshal([]byte(s), &doc)
	if err != nil {
		return value.String(s), nil
	}
	return value.FromAny(doc)
}
