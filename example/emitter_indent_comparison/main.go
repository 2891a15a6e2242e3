// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.yaml.in/yamlstream"
)

const input = `name: myapp
version: 1.0.0
server:
  host: localhost
  port: 8080
  debug: true
tags: [web, api, production]
metadata:
  owner: platform-team
  env: prod
`

// reformat parses input and writes it back with opts.
func reformat(opts ...yamlstream.Option) (string, error) {
	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf, opts...)
	if err != nil {
		return "", err
	}
	p := yamlstream.NewParserBytes([]byte(input))
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if err := e.Emit(event); err != nil {
			return "", err
		}
	}
	if err := e.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func main() {
	// Check if indent level was provided as command-line argument
	if len(os.Args) > 1 {
		indent, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid indent value %q (must be a number)\n", os.Args[1])
			os.Exit(1)
		}

		fmt.Printf("Example: Emitter with %d-space indent\n\n", indent)
		out, err := reformat(yamlstream.WithIndent(indent))
		if err != nil {
			// Out of range values are rejected by NewEmitter.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	// No argument provided - show comparison of different indent levels
	fmt.Println("Example: Emitter with Different Indent Levels")
	fmt.Println("(Run with argument to test specific indent: go run ./example/emitter_indent_comparison 3)")
	fmt.Println()

	for _, indent := range []int{2, 4, 8} {
		fmt.Printf("--- Indent: %d spaces ---\n", indent)
		out, err := reformat(yamlstream.WithIndent(indent))
		if err != nil {
			panic(err)
		}
		fmt.Print(out)
		fmt.Println()
	}

	fmt.Println("--- Canonical ---")
	out, err := reformat(yamlstream.WithCanonical())
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
}
