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

	"gopkg.in/ini.v1"
)

// Ini represents a Source where its underlying format is INI.
//
// Keys of the default section are set at the top level. Every other
// section becomes a mapping, with dotted section names nesting further:
//
//	[database.pool]
//	size = 10
//
// sets database.pool.size.
type Ini struct {
	r io.Reader
}

// FromIni returns a source which will apply its config
// from INI values parsed from the given io.Reader.
func FromIni(r io.Reader) Ini {
	return Ini{r: r}
}

// InvalidIniError occurs if the underlying io.Reader contains invalid INI.
type InvalidIniError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidIniError) Error() string {
	return fmt.Sprintf("invalid ini: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidIniError) Unwrap() error {
	return e.cause
}

// Apply implements the Source interface.
func (src Ini) Apply(store Store) error {
	b, err := readAllAndClose(src.r)
	if err != nil {
		return err
	}

	f, err := ini.Load(b)
	if err != nil {
		return InvalidIniError{cause: err}
	}

	for _, section := range f.Sections() {
		var chain key.Chain
		if section.Name() != ini.DefaultSection {
			chain = key.Names(strings.Split(section.Name(), ".")...)
		}
		for _, k := range section.Keys() {
			err := store.Set(chain.Append(key.Name(k.Name())), k.Value())
			if err != nil {
				return err
			}
		}
	}
	return nil
}
