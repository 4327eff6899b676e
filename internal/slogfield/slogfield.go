// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield names the slog attributes logged while resolving configuration.
package slogfield

import (
	"log/slog"

	"github.com/z5labs/dumbo/pkg/config/key"
)

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an slog.Attr for a int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// File returns an slog.Attr for the path of a config file.
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// EnvPrefix returns an slog.Attr for the prefix environment variables are harvested with.
func EnvPrefix(prefix string) slog.Attr {
	return slog.String("env_prefix", prefix)
}

// Separator returns an slog.Attr for the environment variable segment separator.
func Separator(sep string) slog.Attr {
	return slog.String("env_separator", sep)
}

// EnvVar returns an slog.Attr for the name of an environment variable.
func EnvVar(name string) slog.Attr {
	return slog.String("env_var", name)
}

// Setting returns an slog.Attr for a single resolved setting, keyed by its dotted path.
func Setting(chain key.Chain, value any) slog.Attr {
	return slog.Any(chain.Key(), value)
}

// TraceID returns an slog.Attr for an OpenTelemetry trace id.
func TraceID(id string) slog.Attr {
	return slog.String("trace_id", id)
}

// SpanID returns an slog.Attr for an OpenTelemetry span id.
func SpanID(id string) slog.Attr {
	return slog.String("span_id", id)
}
