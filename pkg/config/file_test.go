// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

type openFailFs struct {
	afero.Fs
	err error
}

func (f openFailFs) Open(name string) (afero.File, error) {
	return nil, f.err
}

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the afero.Fs fails to open the file", func(t *testing.T) {
			openErr := errors.New("failed to open")
			fs := openFailFs{Fs: afero.NewMemMapFs(), err: openErr}

			r := NewFileReader(fs, "config.yaml")
			_, err := io.ReadAll(r)
			if !assert.ErrorIs(t, err, openErr) {
				return
			}

			_, err = r.Read(make([]byte, 1))
			if !assert.ErrorIs(t, err, openErr) {
				return
			}
		})

		t.Run("if the file does not exist", func(t *testing.T) {
			r := NewFileReader(afero.NewMemMapFs(), "config.yaml")
			_, err := io.ReadAll(r)
			if !assert.ErrorIs(t, err, fs.ErrNotExist) {
				return
			}
		})
	})

	t.Run("will read the file contents", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		err := afero.WriteFile(fsys, "config.yaml", []byte("hello: world"), 0o644)
		if !assert.Nil(t, err) {
			return
		}

		r := NewFileReader(fsys, "config.yaml")
		b, err := io.ReadAll(r)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "hello: world", string(b)) {
			return
		}
		if !assert.Nil(t, r.Close()) {
			return
		}
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not return an error", func(t *testing.T) {
		t.Run("if Close is called before the underlying file has been opened", func(t *testing.T) {
			r := NewFileReader(afero.NewMemMapFs(), "config.yaml")
			err := r.Close()
			if !assert.Nil(t, err) {
				return
			}
		})

		t.Run("if Close is called twice", func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, "config.yaml", []byte("a: 1"), 0o644)
			if !assert.Nil(t, err) {
				return
			}

			r := NewFileReader(fsys, "config.yaml")
			_, err = io.ReadAll(r)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Nil(t, r.Close()) {
				return
			}
			if !assert.Nil(t, r.Close()) {
				return
			}
		})
	})
}

func TestFormatOf(t *testing.T) {
	testCases := []struct {
		Path   string
		Format Format
	}{
		{Path: "config.yml", Format: FormatYaml},
		{Path: "config.yaml", Format: FormatYaml},
		{Path: "CONFIG.JSON", Format: FormatJson},
		{Path: "dir/config.toml", Format: FormatToml},
		{Path: "config.ini", Format: FormatIni},
		{Path: "app.properties", Format: FormatProperties},
		{Path: "config", Format: FormatYaml},
		{Path: "config.conf", Format: FormatYaml},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Path, func(t *testing.T) {
			if !assert.Equal(t, testCase.Format, FormatOf(testCase.Path)) {
				return
			}
		})
	}
}

type countingFs struct {
	afero.Fs
	opened map[string]int
	closed map[string]int
}

type countingFile struct {
	afero.File
	name string
	fs   *countingFs
}

func (f countingFile) Close() error {
	f.fs.closed[f.name]++
	return f.File.Close()
}

func (f *countingFs) Open(name string) (afero.File, error) {
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	f.opened[name]++
	return countingFile{File: file, name: name, fs: f}, nil
}

func newCountingFs() *countingFs {
	return &countingFs{
		Fs:     afero.NewMemMapFs(),
		opened: make(map[string]int),
		closed: make(map[string]int),
	}
}

func TestFile_Apply(t *testing.T) {
	t.Run("will parse the file by its extension", func(t *testing.T) {
		testCases := []struct {
			Path    string
			Content string
		}{
			{Path: "config.yaml", Content: "db:\n  host: localhost\n"},
			{Path: "config.json", Content: `{"db": {"host": "localhost"}}`},
			{Path: "config.toml", Content: "[db]\nhost = \"localhost\"\n"},
			{Path: "config.ini", Content: "[db]\nhost = localhost\n"},
			{Path: "config.properties", Content: "db.host = localhost\n"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Path, func(t *testing.T) {
				fsys := afero.NewMemMapFs()
				err := afero.WriteFile(fsys, testCase.Path, []byte(testCase.Content), 0o644)
				if !assert.Nil(t, err) {
					return
				}

				store := make(inMemoryStore)
				err = FromFile(fsys, testCase.Path).Apply(store)
				if !assert.Nil(t, err) {
					return
				}

				expected := inMemoryStore{"db": map[string]any{"host": "localhost"}}
				if !assert.Equal(t, expected, store) {
					return
				}
			})
		}
	})

	t.Run("will close the file", func(t *testing.T) {
		t.Run("if the file parses", func(t *testing.T) {
			fsys := newCountingFs()
			err := afero.WriteFile(fsys.Fs, "config.yaml", []byte("a: 1"), 0o644)
			if !assert.Nil(t, err) {
				return
			}

			err = FromFile(fsys, "config.yaml").Apply(make(inMemoryStore))
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 1, fsys.opened["config.yaml"]) {
				return
			}
			if !assert.Equal(t, 1, fsys.closed["config.yaml"]) {
				return
			}
		})

		t.Run("if the file fails to parse", func(t *testing.T) {
			fsys := newCountingFs()
			err := afero.WriteFile(fsys.Fs, "config.yaml", []byte("hello"), 0o644)
			if !assert.Nil(t, err) {
				return
			}

			err = FromFile(fsys, "config.yaml").Apply(make(inMemoryStore))

			var ierr InvalidYamlError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.Equal(t, 1, fsys.closed["config.yaml"]) {
				return
			}
		})

		t.Run("if the template fails to render", func(t *testing.T) {
			fsys := newCountingFs()
			err := afero.WriteFile(fsys.Fs, "config.yaml", []byte("a: {{ nope }}"), 0o644)
			if !assert.Nil(t, err) {
				return
			}

			err = FromFile(fsys, "config.yaml", RenderTemplate()).Apply(make(inMemoryStore))

			var ierr TextTemplateParseError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.Equal(t, 1, fsys.closed["config.yaml"]) {
				return
			}
		})
	})

	t.Run("will render the file as a template", func(t *testing.T) {
		t.Run("if RenderTemplate is given", func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := afero.WriteFile(fsys, "config.yaml", []byte(`greeting: {{ hello }}`), 0o644)
			if !assert.Nil(t, err) {
				return
			}

			store := make(inMemoryStore)
			src := FromFile(
				fsys,
				"config.yaml",
				RenderTemplate(TemplateFunc("hello", func() string { return "world" })),
			)
			err = src.Apply(store)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, inMemoryStore{"greeting": "world"}, store) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			err := FromFile(afero.NewMemMapFs(), "config.yaml").Apply(make(inMemoryStore))
			if !assert.ErrorIs(t, err, os.ErrNotExist) {
				return
			}
		})
	})
}
