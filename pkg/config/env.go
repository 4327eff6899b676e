// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/z5labs/dumbo/pkg/config/key"
)

// DefaultSeparator is used when EnvConfig.Separator is empty.
const DefaultSeparator = "__"

// ShowSettingsName is the reserved segment of the debug flag
// which enables echoing the resolved settings.
const ShowSettingsName = "SHOW_SETTINGS"

// EnvConfig describes how environment variables are harvested into a tree.
type EnvConfig struct {
	// Name is the prefix every harvested variable must start with.
	Name string

	// Separator splits the prefix and nested key segments.
	// Empty means [DefaultSeparator].
	Separator string

	// PreserveCase keeps segment casing instead of lower-casing.
	PreserveCase bool
}

// Sep returns the effective separator.
func (c EnvConfig) Sep() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}

// VarName joins the prefix and the given segments into a variable name.
func (c EnvConfig) VarName(segments ...string) string {
	return strings.Join(append([]string{c.Name}, segments...), c.Sep())
}

// ShowSettingsVar returns the name of the debug flag scoped to this prefix.
func (c EnvConfig) ShowSettingsVar() string {
	return c.VarName(ShowSettingsName)
}

// InvalidEnvConfigError occurs if the prefix is empty or
// contains the separator.
type InvalidEnvConfigError struct {
	Prefix    string
	Separator string
}

// Error implements the error interface.
func (e InvalidEnvConfigError) Error() string {
	if e.Prefix == "" {
		return "invalid environment configuration: env prefix must not be empty"
	}
	return fmt.Sprintf(
		"invalid environment configuration: env prefix '%s' contains separator '%s', choose a prefix without the separator or a different separator",
		e.Prefix,
		e.Separator,
	)
}

// Validate reports an InvalidEnvConfigError if the prefix could
// never be told apart from the nested key segments.
func (c EnvConfig) Validate() error {
	sep := c.Sep()
	if c.Name == "" || strings.Contains(c.Name, sep) {
		return InvalidEnvConfigError{
			Prefix:    c.Name,
			Separator: sep,
		}
	}
	return nil
}

// EnvVar is a single harvested environment variable.
type EnvVar struct {
	Name  string
	Path  key.Chain
	Value string
}

// EnvMapping is the result of mapping an environment snapshot
// onto tree paths. It implements the Source interface.
type EnvMapping struct {
	// Vars are the mapped variables sorted by name.
	Vars []EnvVar

	// Rejected holds the names of variables that matched the prefix
	// but produced an empty key segment.
	Rejected []string
}

// Apply implements the Source interface. Every variable value is set
// as an opaque string.
func (m EnvMapping) Apply(store Store) error {
	for _, v := range m.Vars {
		err := store.Set(v.Path, v.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// MapEnv maps every variable in environ, a list of KEY=VALUE pairs,
// starting with the prefix token onto a tree path. The reserved
// show settings flag is never mapped.
func MapEnv(cfg EnvConfig, environ []string) (EnvMapping, error) {
	err := cfg.Validate()
	if err != nil {
		return EnvMapping{}, err
	}

	sep := cfg.Sep()
	prefix := cfg.Name + sep
	flag := cfg.ShowSettingsVar()

	var m EnvMapping
	for _, pair := range environ {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == flag {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}

		segments := strings.Split(rest, sep)
		if slices.Contains(segments, "") {
			m.Rejected = append(m.Rejected, name)
			continue
		}
		if !cfg.PreserveCase {
			for i := range segments {
				segments[i] = strings.ToLower(segments[i])
			}
		}

		m.Vars = append(m.Vars, EnvVar{
			Name:  name,
			Path:  key.Names(segments...),
			Value: value,
		})
	}

	slices.SortFunc(m.Vars, func(a, b EnvVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	slices.Sort(m.Rejected)
	return m, nil
}

// LookupEnv returns the value of name from environ.
// The last occurrence wins, matching os.Getenv.
func LookupEnv(environ []string, name string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, pair := range environ {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k != name {
			continue
		}
		value, found = v, true
	}
	return value, found
}
