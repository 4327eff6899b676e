// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dumbo

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"slices"

	"github.com/z5labs/dumbo/internal/slogfield"
	"github.com/z5labs/dumbo/internal/try"
	"github.com/z5labs/dumbo/pkg/config"
	"github.com/z5labs/dumbo/pkg/config/configtmpl"
	"github.com/z5labs/dumbo/pkg/discovery"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/z5labs/dumbo"

// LoadingParam names the sources a resolution reads from.
// At least one of File or Env must be set.
type LoadingParam struct {
	// File is the path of a config file. Empty means no file.
	File string

	// Env configures harvesting environment variables. Nil means
	// the environment is not read.
	Env *config.EnvConfig
}

// Validate reports an error if p can not be resolved.
func (p LoadingParam) Validate() error {
	if p.File == "" && p.Env == nil {
		return InvalidLoadingParamError{}
	}
	if p.Env != nil {
		return p.Env.Validate()
	}
	return nil
}

// Load discovers a config file and decodes it into T. The bool is false,
// with a nil error, when no config file could be found.
func Load[T any](ctx context.Context, opts ...Option) (cfg T, ok bool, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dumbo.Load")
	defer endSpan(span, &err)

	o := newOptions(opts)
	environ := o.environ()

	variant, _ := config.LookupEnv(environ, discovery.EnvVar)
	path, found, err := discovery.Find(o.fs, o.dir, variant)
	if err != nil {
		return cfg, false, err
	}
	if !found {
		o.log.InfoContext(
			ctx,
			"no config file found",
			slogfield.String("search_dir", o.dir),
			slogfield.String("variant", variant),
		)
		return cfg, false, nil
	}

	cfg, err = resolve[T](ctx, o, environ, LoadingParam{File: path})
	if err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

// LoadFile decodes the config file at path into T. A missing file,
// including an empty path, is reported as a [FileNotFoundError].
func LoadFile[T any](ctx context.Context, path string, opts ...Option) (cfg T, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dumbo.LoadFile")
	defer endSpan(span, &err)

	if path == "" {
		return cfg, FileNotFoundError{Path: path}
	}

	o := newOptions(opts)
	return resolve[T](ctx, o, o.environ(), LoadingParam{File: path})
}

// LoadWithParam merges the sources named by p and decodes them into T.
// Environment variables override values from the file.
func LoadWithParam[T any](ctx context.Context, p LoadingParam, opts ...Option) (cfg T, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dumbo.LoadWithParam")
	defer endSpan(span, &err)

	err = p.Validate()
	if err != nil {
		return cfg, err
	}

	o := newOptions(opts)
	return resolve[T](ctx, o, o.environ(), p)
}

func resolve[T any](ctx context.Context, o *options, environ []string, p LoadingParam) (cfg T, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(sourceAttributes(p)...)

	logSources(ctx, o.log, p)

	var show bool
	if p.Env != nil {
		show, err = showSettings(environ, *p.Env)
		if err != nil {
			return cfg, err
		}
	}

	var srcs []config.Source
	if p.File != "" {
		src, err := fileSource(o, environ, p.File)
		if err != nil {
			return cfg, err
		}
		srcs = append(srcs, src)
	}
	if p.Env != nil {
		mapping, err := config.MapEnv(*p.Env, environ)
		if err != nil {
			return cfg, err
		}
		logMapping(ctx, o.log, *p.Env, mapping)
		srcs = append(srcs, mapping)
	}

	m, err := config.Read(srcs...)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, FileNotFoundError{Path: p.File}
	}
	if err != nil {
		return cfg, err
	}

	cfg, err = decode[T](m)
	if err != nil {
		return cfg, err
	}

	if show {
		logSettings(ctx, o.log, m.Tree())
	}
	return cfg, nil
}

func fileSource(o *options, environ []string, path string) (config.Source, error) {
	info, err := o.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, FileNotFoundError{Path: path}
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, FileNotFoundError{Path: path}
	}

	if !o.render {
		return config.FromFile(o.fs, path), nil
	}

	renderOpts := []config.RenderTextTemplateOption{
		config.TemplateFunc("env", configtmpl.EnvFunc(environ)),
		config.TemplateFunc("default", configtmpl.Default),
	}
	for _, name := range slices.Sorted(maps.Keys(o.funcs)) {
		renderOpts = append(renderOpts, config.TemplateFunc(name, o.funcs[name]))
	}
	return config.FromFile(o.fs, path, config.RenderTemplate(renderOpts...)), nil
}

func decode[T any](m *config.Manager) (cfg T, err error) {
	defer try.Recover(&err)

	err = m.Unmarshal(&cfg)
	return cfg, err
}

func sourceAttributes(p LoadingParam) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if p.File != "" {
		attrs = append(attrs, attribute.String("dumbo.file", p.File))
	}
	if p.Env != nil {
		attrs = append(
			attrs,
			attribute.String("dumbo.env_prefix", p.Env.Name),
			attribute.String("dumbo.env_separator", p.Env.Sep()),
		)
	}
	return attrs
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
