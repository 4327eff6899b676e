// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"github.com/z5labs/dumbo/internal/try"

	"gopkg.in/yaml.v3"
)

// Yaml represents a Source where its underlying format is YAML.
type Yaml struct {
	r io.Reader
}

// FromYaml returns a source which will apply its config
// from YAML values parsed from the given io.Reader.
func FromYaml(r io.Reader) Yaml {
	return Yaml{r: r}
}

// InvalidYamlError occurs if the underlying io.Reader contains invalid YAML.
type InvalidYamlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

// Apply implements the Source interface.
func (src Yaml) Apply(store Store) error {
	b, err := readAllAndClose(src.r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = yaml.Unmarshal(b, &m)
	if err != nil {
		return InvalidYamlError{cause: err}
	}
	return Map(normalizeYaml(m)).Apply(store)
}

// normalizeYaml rewrites mappings with non-string keys, which yaml.v3
// decodes as map[any]any, so every mapping in the tree is a map[string]any.
func normalizeYaml(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeYamlValue(v)
	}
	return m
}

func normalizeYamlValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalizeYaml(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, sub := range x {
			m[fmt.Sprint(k)] = normalizeYamlValue(sub)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYamlValue(x[i])
		}
		return x
	default:
		return v
	}
}

func readAllAndClose(r io.Reader) (_ []byte, err error) {
	defer try.Close(&err, r)

	return io.ReadAll(r)
}
