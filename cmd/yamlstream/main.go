// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The yamlstream command shows how the go.yaml.in/yamlstream engine sees
// YAML text. It dumps tokens and events, emits YAML from event text,
// reformats YAML and reports stream statistics.
//
// Usage:
//
//	yamlstream tokens [files...]
//	yamlstream events [--marks] [files...]
//	yamlstream emit [emitter flags] [files...]
//	yamlstream reformat [emitter flags] [files...]
//	yamlstream stats [files...]
//
// With no file arguments, or the argument "-", input is read from stdin.
package main

import (
	"context"
	"os"

	"github.com/spf13/afero"
)

// version is the current version of the yamlstream CLI tool.
const version = "0.1.0"

func main() {
	a := newApp(afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
	if err := a.execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
