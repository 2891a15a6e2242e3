// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"
	"os"

	"go.yaml.in/yamlstream"
)

// scalar is an untagged string the emitter may style freely.
func scalar(value string) yamlstream.Event {
	return yamlstream.NewScalarEvent(nil, nil, []byte(value), true, true, yamlstream.ScalarStyleAny)
}

func main() {
	fmt.Println("=== Building a YAML Stream from Events ===")

	e, err := yamlstream.NewEmitter(os.Stdout,
		yamlstream.WithIndent(2),
		yamlstream.WithExplicitStart(),
	)
	if err != nil {
		log.Fatal(err)
	}

	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(yamlstream.EncodingUTF8),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewMappingStartEvent(nil, nil, true, yamlstream.MappingStyleBlock),

		scalar("development"),
		yamlstream.NewMappingStartEvent([]byte("defaults"), nil, true, yamlstream.MappingStyleBlock),
		scalar("database"), scalar("dev.db"),
		// Strings that would read back as other types are quoted.
		scalar("debug"), scalar("true"),
		scalar("notes"), yamlstream.NewScalarEvent(nil, nil, []byte("line one\nline two\n"), true, true, yamlstream.ScalarStyleLiteral),
		yamlstream.NewMappingEndEvent(),

		scalar("production"),
		yamlstream.NewMappingStartEvent(nil, nil, true, yamlstream.MappingStyleFlow),
		scalar("database"), scalar("prod.db"),
		scalar("inherits"), yamlstream.NewAliasEvent([]byte("defaults")),
		yamlstream.NewMappingEndEvent(),

		scalar("regions"),
		yamlstream.NewSequenceStartEvent(nil, nil, true, yamlstream.SequenceStyleBlock),
		scalar("eu-west"), scalar("us-east"),
		yamlstream.NewSequenceEndEvent(),

		yamlstream.NewMappingEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	}
	for _, event := range events {
		if err := e.Emit(event); err != nil {
			log.Fatal(err)
		}
	}
	if err := e.Flush(); err != nil {
		log.Fatal(err)
	}
}
