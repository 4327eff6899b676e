// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dumbo

import (
	"log/slog"
	"os"

	"github.com/z5labs/dumbo/pkg/otelslog"

	"github.com/spf13/afero"
)

type options struct {
	log     *slog.Logger
	fs      afero.Fs
	environ func() []string
	dir     string

	render bool
	funcs  map[string]any
}

// Option configures a single resolution.
type Option func(*options)

// Logger sets the logger diagnostics are written to. Records are
// correlated with the active trace.
func Logger(logger *slog.Logger) Option {
	return func(o *options) {
		o.log = otelslog.New(logger.Handler())
	}
}

// Fs sets the filesystem config files are read from.
func Fs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// Environ sets the function returning the environment as KEY=VALUE
// pairs. It is called exactly once per resolution.
func Environ(f func() []string) Option {
	return func(o *options) {
		o.environ = f
	}
}

// SearchDir sets the directory config files are discovered in.
// The default is the working directory.
func SearchDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// RenderTemplate renders the config file as a text/template before
// parsing it. The functions env and default are always available.
func RenderTemplate() Option {
	return func(o *options) {
		o.render = true
	}
}

// TemplateFunc registers f for use in the config template under name.
// It implies [RenderTemplate].
func TemplateFunc(name string, f any) Option {
	return func(o *options) {
		o.render = true
		if o.funcs == nil {
			o.funcs = make(map[string]any)
		}
		o.funcs[name] = f
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		fs:      afero.NewOsFs(),
		environ: os.Environ,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.log == nil {
		o.log = otelslog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{}))
	}
	return o
}
