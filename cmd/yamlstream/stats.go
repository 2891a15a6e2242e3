// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"go.yaml.in/yamlstream"
)

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [files...]",
		Short: "Report document, event and depth counts for each input",
		Long: `Parse each input and report its size, number of documents, maximum
collection depth and event counts by type. Each input becomes one YAML
document on stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.forEachInput(cmd.Context(), args, writeStats)
		},
	}
}

// streamStats summarizes one parsed stream.
type streamStats struct {
	size      int64
	documents int
	maxDepth  int
	events    int
	byType    [yamlstream.EventMappingEnd + 1]int
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func collectStats(r io.Reader) (*streamStats, error) {
	cr := &countingReader{r: r}
	p := yamlstream.NewParser(cr)
	stats := &streamStats{}
	depth := 0
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		stats.events++
		stats.byType[event.Type]++
		switch event.Type {
		case yamlstream.EventDocumentStart:
			stats.documents++
		case yamlstream.EventSequenceStart, yamlstream.EventMappingStart:
			depth++
			stats.maxDepth = max(stats.maxDepth, depth)
		case yamlstream.EventSequenceEnd, yamlstream.EventMappingEnd:
			depth--
		}
	}
	stats.size = cr.n
	return stats, nil
}

func writeStats(name string, r io.Reader, w io.Writer) error {
	stats, err := collectStats(r)
	if err != nil {
		return err
	}

	// The report is itself written through the emitter.
	e, err := yamlstream.NewEmitter(w, yamlstream.WithExplicitStart())
	if err != nil {
		return err
	}
	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(yamlstream.EncodingUTF8),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewMappingStartEvent(nil, nil, true, yamlstream.MappingStyleBlock),
	}
	events = appendPair(events, "input", name)
	events = appendPair(events, "size", humanize.Bytes(uint64(stats.size)))
	events = appendPair(events, "documents", humanize.Comma(int64(stats.documents)))
	events = appendPair(events, "max-depth", humanize.Comma(int64(stats.maxDepth)))
	events = appendPair(events, "events", humanize.Comma(int64(stats.events)))
	events = append(events,
		plainScalar("by-type"),
		yamlstream.NewMappingStartEvent(nil, nil, true, yamlstream.MappingStyleBlock),
	)
	for typ, n := range stats.byType {
		if n > 0 {
			events = appendPair(events, yamlstream.EventType(typ).String(), humanize.Comma(int64(n)))
		}
	}
	events = append(events,
		yamlstream.NewMappingEndEvent(),
		yamlstream.NewMappingEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	)
	for _, event := range events {
		if err := e.Emit(event); err != nil {
			return err
		}
	}
	return e.Flush()
}

func appendPair(events []yamlstream.Event, key, value string) []yamlstream.Event {
	return append(events, plainScalar(key), plainScalar(value))
}

// plainScalar asks for a plain scalar; the emitter quotes it when the
// text cannot be written plain.
func plainScalar(value string) yamlstream.Event {
	return yamlstream.NewScalarEvent(nil, nil, []byte(value), true, true, yamlstream.ScalarStylePlain)
}
