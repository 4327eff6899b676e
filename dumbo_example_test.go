// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dumbo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/dumbo/pkg/config"

	"github.com/spf13/afero"
)

type exampleConfig struct {
	Server struct {
		Host string `config:"host"`
		Port int    `config:"port"`
	} `config:"server"`
}

func ExampleLoadWithParam() {
	fsys := afero.NewMemMapFs()
	err := afero.WriteFile(fsys, "config.yaml", []byte("server:\n  host: localhost\n  port: 8080\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	cfg, err := LoadWithParam[exampleConfig](
		context.Background(),
		LoadingParam{
			File: "config.yaml",
			Env:  &config.EnvConfig{Name: "APP"},
		},
		Fs(fsys),
		Environ(func() []string {
			return []string{"APP__SERVER__PORT=9090"}
		}),
		Logger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.Server.Host, cfg.Server.Port)
	// Output: localhost 9090
}

func ExampleLoad() {
	fsys := afero.NewMemMapFs()
	err := afero.WriteFile(fsys, "config.dev.yaml", []byte("server:\n  host: dev.local\n"), 0o644)
	if err != nil {
		fmt.Println(err)
		return
	}

	cfg, ok, err := Load[exampleConfig](
		context.Background(),
		Fs(fsys),
		Environ(func() []string {
			return []string{"ENV=dev"}
		}),
		Logger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok, cfg.Server.Host)
	// Output: true dev.local
}

func ExampleLoadFile() {
	_, err := LoadFile[exampleConfig](
		context.Background(),
		"missing.yaml",
		Fs(afero.NewMemMapFs()),
		Logger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)

	var fnferr FileNotFoundError
	fmt.Println(errors.As(err, &fnferr), fnferr.Path)
	// Output: true missing.yaml
}
