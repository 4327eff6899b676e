// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configtmpl provides template functions for use in config file templates.
package configtmpl

import (
	"reflect"
	"strings"
)

// EnvFunc returns a template function which looks up a variable in the
// given snapshot of KEY=VALUE pairs. Missing variables render as an
// empty string.
func EnvFunc(environ []string) func(string) string {
	env := mapEnv(environ)
	return func(key string) string {
		return env[key]
	}
}

func mapEnv(keyValues []string) map[string]string {
	m := make(map[string]string, len(keyValues))
	for _, s := range keyValues {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		m[key] = value
	}
	return m
}

// Default returns the provided def value if v is either nil or the zero value for its type.
func Default(def, v any) any {
	if v == nil {
		return def
	}
	val := reflect.ValueOf(v)
	if val.IsZero() {
		return def
	}
	return v
}
