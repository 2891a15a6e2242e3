// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Token Stream shows the lexical tokens the scanner produces for
// a small document, including the implicit block structure tokens.

package main

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example: Token Stream")

	yamlData := `name: myapp
version: 1.0.0
tags:
  - web
  - "api"
`

	s := yamlstream.NewScannerBytes([]byte(yamlData))
	for {
		token, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}
		fmt.Printf("%-8s %s", token.StartMark, token.Type)
		if token.Type == yamlstream.TokenScalar {
			fmt.Printf(" %q (%s)", token.Value, token.Style)
		}
		fmt.Println()
	}

	fmt.Println("\nExample: Scanner Error")
	s = yamlstream.NewScannerBytes([]byte("key: \"unterminated\n"))
	for {
		_, err := s.Next()
		if err == nil {
			continue
		}
		var serr yamlstream.ScannerError
		if errors.As(err, &serr) {
			fmt.Println("scanner error:", err)
		}
		break
	}
}
