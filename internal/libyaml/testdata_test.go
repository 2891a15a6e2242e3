// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Data-driven test harness.
// Test cases live in testdata/*.yaml; each case names a type, and the test
// file that loads it supplies one handler per type.

package libyaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestCase represents a single test case loaded from YAML.
type TestCase struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	Yaml    string        `yaml:"yaml"`    // Input text
	Events  string        `yaml:"events"`  // Event notation, one event per line
	Want    string        `yaml:"want"`    // Expected output text
	Options EmitterConfig `yaml:"options"` // Emitter configuration
	Error   *ErrorSpec    `yaml:"error"`   // Expected failure
}

// ErrorSpec describes an expected error.
type ErrorSpec struct {
	Kind    string `yaml:"kind"` // reader, scanner, parser or emitter
	Context string `yaml:"context"`
	Message string `yaml:"message"`
	Line    *int   `yaml:"line"`   // 0-indexed, unchecked when absent
	Column  *int   `yaml:"column"` // 0-indexed, unchecked when absent
}

// EmitterConfig is the YAML form of the emitter options.
type EmitterConfig struct {
	Indent        int    `yaml:"indent"`
	Width         int    `yaml:"width"`
	Canonical     bool   `yaml:"canonical"`
	ASCII         bool   `yaml:"ascii"`
	LineBreak     string `yaml:"line_break"`
	ExplicitStart bool   `yaml:"explicit_start"`
}

// Options converts the configuration to emitter options.
func (c EmitterConfig) Options() []Option {
	var opts []Option
	if c.Indent != 0 {
		opts = append(opts, WithIndent(c.Indent))
	}
	if c.Width != 0 {
		opts = append(opts, WithLineWidth(c.Width))
	}
	if c.Canonical {
		opts = append(opts, WithCanonical())
	}
	if c.ASCII {
		opts = append(opts, WithUnicode(false))
	}
	switch c.LineBreak {
	case "CR":
		opts = append(opts, WithLineBreak(CR_BREAK))
	case "CRLF":
		opts = append(opts, WithLineBreak(CRLN_BREAK))
	}
	if c.ExplicitStart {
		opts = append(opts, WithExplicitStart())
	}
	return opts
}

// TestHandler is a function that runs a specific test type.
type TestHandler func(*testing.T, TestCase)

// LoadTestCases reads testdata/filename.
func LoadTestCases(filename string) ([]TestCase, error) {
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cases []TestCase
	if err := dec.Decode(&cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// RunTestCases loads test cases from a YAML file and runs them using the
// provided handlers.
func RunTestCases(t *testing.T, filename string, handlers map[string]TestHandler) {
	t.Helper()
	cases, err := LoadTestCases(filename)
	require.NoError(t, err, "loading %s", filename)
	require.NotEmpty(t, cases, "no test cases in %s", filename)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			handler, ok := handlers[tc.Type]
			if !ok {
				t.Fatalf("unknown test type: %s", tc.Type)
			}
			handler(t, tc)
		})
	}
}

// AssertError checks err against the expected error description.
func AssertError(t *testing.T, spec *ErrorSpec, err error) {
	t.Helper()
	require.Error(t, err)

	var marked MarkedYAMLError
	switch spec.Kind {
	case "scanner":
		var e ScannerError
		require.ErrorAs(t, err, &e)
		marked = MarkedYAMLError(e)
	case "parser":
		var e ParserError
		require.ErrorAs(t, err, &e)
		marked = MarkedYAMLError(e)
	case "reader":
		var e ReaderError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, spec.Message, e.Err.Error())
		return
	case "emitter":
		var e EmitterError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, spec.Message, e.Message)
		return
	default:
		t.Fatalf("unknown error kind: %s", spec.Kind)
	}
	assert.Equal(t, spec.Context, marked.ContextMessage, "context")
	assert.Equal(t, spec.Message, marked.Message, "message")
	if spec.Line != nil {
		assert.Equal(t, *spec.Line, marked.Mark.Line, "line")
	}
	if spec.Column != nil {
		assert.Equal(t, *spec.Column, marked.Mark.Column, "column")
	}
}

// assertEventText compares event notation line by line.
func assertEventText(t *testing.T, want, got string) {
	t.Helper()
	wantLines := strings.Split(strings.TrimSpace(want), "\n")
	gotLines := strings.Split(strings.TrimSpace(got), "\n")
	if diff := cmp.Diff(wantLines, gotLines); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

// parseAll parses input to the end and returns every event produced.
func parseAll(input []byte) ([]Event, error) {
	p := NewParser()
	p.SetInputString(input)
	var events []Event
	for {
		var event Event
		if err := p.Parse(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, err
		}
		events = append(events, event)
	}
}

// emitAll emits events with opts and returns the output text.
func emitAll(events []Event, opts ...Option) (string, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return "", err
	}
	emitter := NewEmitter(o)
	var out []byte
	emitter.SetOutputString(&out)
	for i := range events {
		if err := emitter.Emit(&events[i]); err != nil {
			return string(out), err
		}
	}
	if err := emitter.Flush(); err != nil {
		return string(out), err
	}
	return string(out), nil
}

// eventsFromText reads events from test-suite notation.
func eventsFromText(t *testing.T, text string) []Event {
	t.Helper()
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		event, err := ParseEventLine(line)
		require.NoError(t, err, "event line %q", line)
		events = append(events, event)
	}
	return events
}

// eventSkeleton drops presentation details from events: styles, marks and
// document markers.
type eventSkeleton struct {
	Type   EventType
	Anchor string
	Tag    string
	Value  string
}

func skeletons(events []Event) []eventSkeleton {
	out := make([]eventSkeleton, len(events))
	for i, e := range events {
		out[i] = eventSkeleton{
			Type:   e.Type,
			Anchor: string(e.Anchor),
			Tag:    string(e.Tag),
			Value:  string(e.Value),
		}
	}
	return out
}
