// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package discovery locates a default configuration file by naming convention.
//
// Candidates are probed in the following order, where ENV is the value of
// the ENV environment variable:
//
//  1. config.{ENV}.yml
//  2. config.{ENV}.yaml
//  3. config.yml
//  4. config.yaml
//
// The first two candidates are only probed when ENV is non-empty.
package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnvVar is the environment variable holding the variant token.
const EnvVar = "ENV"

var extensions = []string{"yml", "yaml"}

// Candidates returns the file names to probe, in order, for the given variant.
func Candidates(env string) []string {
	names := make([]string, 0, 4)
	if env != "" {
		for _, ext := range extensions {
			names = append(names, "config."+env+"."+ext)
		}
	}
	for _, ext := range extensions {
		names = append(names, "config."+ext)
	}
	return names
}

// Find returns the path of the first candidate, relative to dir, which
// exists as a regular file. The bool is false, with a nil error, when no
// candidate exists.
func Find(fsys afero.Fs, dir, env string) (string, bool, error) {
	for _, name := range Candidates(env) {
		path := name
		if dir != "" {
			path = filepath.Join(dir, name)
		}

		info, err := fsys.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		return path, true, nil
	}
	return "", false, nil
}
