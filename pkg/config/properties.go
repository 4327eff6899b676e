// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/z5labs/dumbo/pkg/config/key"

	"github.com/magiconair/properties"
)

// Properties represents a Source where its underlying format is
// Java properties. Dotted keys are nested, e.g. database.pool.size.
type Properties struct {
	r io.Reader
}

// FromProperties returns a source which will apply its config
// from properties parsed from the given io.Reader.
func FromProperties(r io.Reader) Properties {
	return Properties{r: r}
}

// InvalidPropertiesError occurs if the underlying io.Reader contains
// invalid properties.
type InvalidPropertiesError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidPropertiesError) Error() string {
	return fmt.Sprintf("invalid properties: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidPropertiesError) Unwrap() error {
	return e.cause
}

// Apply implements the Source interface.
func (src Properties) Apply(store Store) error {
	b, err := readAllAndClose(src.r)
	if err != nil {
		return err
	}

	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return InvalidPropertiesError{cause: err}
	}

	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		err := store.Set(key.Names(strings.Split(k, ".")...), v)
		if err != nil {
			return err
		}
	}
	return nil
}
