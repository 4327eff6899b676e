// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/dumbo"
	"github.com/z5labs/dumbo/internal/try"
	"github.com/z5labs/dumbo/pkg/config"
	"github.com/z5labs/dumbo/pkg/otelconfig"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"
)

// UnsupportedOutputError occurs when the requested output format is unknown.
type UnsupportedOutputError struct {
	Output string
}

// Error implements the [builtin.error] interface.
func (e UnsupportedOutputError) Error() string {
	return fmt.Sprintf("unsupported output format: %s", e.Output)
}

var errNoConfigFound = errors.New("no config file found")

type resolveFlags struct {
	file         string
	envPrefix    string
	separator    string
	preserveCase bool
	dir          string
	output       string
	template     bool
	trace        bool
	logLevel     string
}

func newResolveCmd(fs afero.Fs, environ func() []string) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve configuration and print the merged settings",
		Long: `Resolve configuration and print the merged settings.

With neither --file nor --env-prefix the config file is discovered
in the search directory, honoring the ENV variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			ctx := cmd.Context()
			if flags.trace {
				tp, initErr := otelconfig.Local(
					otelconfig.Out(cmd.ErrOrStderr()),
					otelconfig.ServiceName("dumbo"),
				).Init(ctx)
				if initErr != nil {
					return initErr
				}
				defer func() {
					err = errors.Join(err, tp.Shutdown(context.WithoutCancel(ctx)))
				}()
				otel.SetTracerProvider(tp)
			}

			var lvl slog.Level
			err = lvl.UnmarshalText([]byte(flags.logLevel))
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

			opts := []dumbo.Option{
				dumbo.Logger(logger),
				dumbo.Fs(fs),
				dumbo.Environ(environ),
				dumbo.SearchDir(flags.dir),
			}
			if flags.template {
				opts = append(opts, dumbo.RenderTemplate())
			}

			settings, err := resolve(ctx, flags, opts)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), flags.output, settings)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&flags.file, "file", "f", "", "path of the config file")
	fl.StringVar(&flags.envPrefix, "env-prefix", "", "prefix of the environment variables to harvest")
	fl.StringVar(&flags.separator, "separator", config.DefaultSeparator, "separator between the prefix and key segments")
	fl.BoolVar(&flags.preserveCase, "preserve-case", false, "keep the casing of environment variable key segments")
	fl.StringVar(&flags.dir, "dir", "", "directory config files are discovered in")
	fl.StringVarP(&flags.output, "output", "o", "yaml", "output format, yaml or json")
	fl.BoolVar(&flags.template, "template", false, "render the config file as a text/template")
	fl.BoolVar(&flags.trace, "trace", false, "write trace spans to stderr")
	fl.StringVar(&flags.logLevel, "log-level", "warn", "minimum level of diagnostics written to stderr")
	return cmd
}

func resolve(ctx context.Context, flags resolveFlags, opts []dumbo.Option) (map[string]any, error) {
	if flags.file == "" && flags.envPrefix == "" {
		settings, ok, err := dumbo.Load[map[string]any](ctx, opts...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errNoConfigFound
		}
		return settings, nil
	}

	p := dumbo.LoadingParam{
		File: flags.file,
	}
	if flags.envPrefix != "" {
		p.Env = &config.EnvConfig{
			Name:         flags.envPrefix,
			Separator:    flags.separator,
			PreserveCase: flags.preserveCase,
		}
	}
	return dumbo.LoadWithParam[map[string]any](ctx, p, opts...)
}

func write(w io.Writer, output string, settings map[string]any) error {
	if settings == nil {
		settings = make(map[string]any)
	}

	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(settings)
		if err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	default:
		return UnsupportedOutputError{Output: output}
	}
}
