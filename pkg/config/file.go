// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	fs       afero.Fs
	file     io.ReadCloser
	openErr  error
}

// NewFileReader configures a FileReader.
func NewFileReader(fs afero.Fs, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the Read interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	if r.file == nil {
		return 0, io.EOF
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// Format identifies the markup a config file is written in.
type Format string

// Supported formats.
const (
	FormatYaml       Format = "yaml"
	FormatJson       Format = "json"
	FormatToml       Format = "toml"
	FormatIni        Format = "ini"
	FormatProperties Format = "properties"
)

// FormatOf picks the Format from the file extension.
// Unknown extensions are treated as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJson
	case ".toml":
		return FormatToml
	case ".ini":
		return FormatIni
	case ".properties":
		return FormatProperties
	default:
		return FormatYaml
	}
}

// FromFormat returns the Source for parsing r as the given Format.
func FromFormat(format Format, r io.Reader) Source {
	switch format {
	case FormatJson:
		return FromJson(r)
	case FormatToml:
		return FromToml(r)
	case FormatIni:
		return FromIni(r)
	case FormatProperties:
		return FromProperties(r)
	default:
		return FromYaml(r)
	}
}

// FileOption configures a File source.
type FileOption func(*File)

// RenderTemplate renders the file as a text/template before parsing it.
func RenderTemplate(opts ...RenderTextTemplateOption) FileOption {
	return func(f *File) {
		f.render = true
		f.renderOpts = append(f.renderOpts, opts...)
	}
}

// File represents a Source read from a file whose format is picked
// from its extension. The file is opened when the source is applied
// and is always closed before Apply returns.
type File struct {
	fs   afero.Fs
	path string

	render     bool
	renderOpts []RenderTextTemplateOption
}

// FromFile returns a source which will apply its config
// from the file at path.
func FromFile(fs afero.Fs, path string, opts ...FileOption) File {
	f := File{
		fs:   fs,
		path: path,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Path returns the path of the underlying file.
func (src File) Path() string {
	return src.path
}

// Apply implements the Source interface.
func (src File) Apply(store Store) error {
	fr := NewFileReader(src.fs, src.path)
	defer fr.Close()

	var r io.Reader = fr
	if src.render {
		r = RenderTextTemplate(fr, src.renderOpts...)
	}
	return FromFormat(FormatOf(src.path), r).Apply(store)
}
