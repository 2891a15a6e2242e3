// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Multi-Document Events walks the event stream of a YAML stream
// holding several documents and prints each event with its position.

package main

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yamlstream"
)

func main() {
	fmt.Println("Example: Multi-Document Event Stream")

	yamlData := `%YAML 1.2
---
name: first
tags: [a, b]
---
name: &n second
alias: *n
...
--- !!str third
`

	p := yamlstream.NewParser(strings.NewReader(yamlData))
	docs := 0
	depth := 0
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(err)
		}

		switch event.Type {
		case yamlstream.EventDocumentStart:
			docs++
			fmt.Printf("\nDocument %d", docs)
			if event.VersionDirective != nil {
				fmt.Printf(" (YAML %d.%d)", event.VersionDirective.Major, event.VersionDirective.Minor)
			}
			fmt.Println()
		case yamlstream.EventSequenceEnd, yamlstream.EventMappingEnd:
			depth--
		}

		fmt.Printf("  %-6s %s%s\n", event.StartMark, strings.Repeat("  ", depth), yamlstream.FormatEvent(&event))

		switch event.Type {
		case yamlstream.EventSequenceStart, yamlstream.EventMappingStart:
			depth++
		}
	}
	fmt.Printf("\nTotal documents: %d\n", docs)
}
