// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command dumbo resolves configuration the same way an application using
// the dumbo package would and prints the result.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd(afero.NewOsFs(), os.Environ, os.Stdout, os.Stderr)
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs, environ func() []string, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dumbo",
		Short: "Inspect layered file and environment configuration",
		Long: `dumbo resolves configuration from a file and prefixed environment
variables, merging them with environment variables taking precedence.`,
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.AddCommand(newResolveCmd(fs, environ))
	return cmd
}
