// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dumbo

import (
	"fmt"
	"io/fs"
)

// InvalidLoadingParamError occurs when a LoadingParam names neither
// a file nor an environment configuration.
type InvalidLoadingParamError struct{}

// Error implements the [builtin.error] interface.
func (e InvalidLoadingParamError) Error() string {
	return "invalid loading parameter: at least one of file or env must be set"
}

// FileNotFoundError occurs when an explicitly named config file does not exist.
type FileNotFoundError struct {
	Path string
}

// Error implements the [builtin.error] interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e FileNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ShowSettingsParseError occurs when the show settings flag is set
// to something other than a recognized boolean token.
type ShowSettingsParseError struct {
	Name  string
	Value string
}

// Error implements the [builtin.error] interface.
func (e ShowSettingsParseError) Error() string {
	return fmt.Sprintf(
		"failed to parse %s: '%s' is not one of true, false, 1, 0, yes, no, on, off",
		e.Name,
		e.Value,
	)
}
