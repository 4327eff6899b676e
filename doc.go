// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package dumbo resolves application configuration from a file and a
// prefixed set of environment variables into a typed value.
//
// There are three entry points:
//
//   - [Load] discovers a config file by naming convention
//   - [LoadFile] reads an explicitly named file
//   - [LoadWithParam] reads a file, the environment, or both
//
// # Discovery
//
// [Load] probes, in order, config.{ENV}.yml, config.{ENV}.yaml, config.yml
// and config.yaml, where ENV is the value of the ENV environment variable.
// Not finding any of them is not an error.
//
// # Environment variables
//
// With an [config.EnvConfig] named APP and the default separator, the
// variable APP__DATABASE__PORT=5432 sets database.port to "5432". Path
// segments are lower-cased unless [config.EnvConfig.PreserveCase] is set.
// Environment variables always override values from the file.
//
// # Showing settings
//
// When APP__SHOW_SETTINGS is one of true, 1, yes or on the merged
// settings are logged once they are decoded. Values whose key looks
// sensitive, for example a password, are masked.
//
// # Formats
//
// The file format is picked from its extension: .json, .toml, .ini and
// .properties are supported, anything else is read as YAML.
package dumbo
