// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yamlstream implements streaming YAML processing for the Go
// language.
//
// The package works at the level of the YAML event stream. A [Scanner]
// turns bytes into lexical tokens, a [Parser] turns bytes into structural
// events and an [Emitter] turns events back into YAML text. There is no
// document tree and no conversion to Go values: tags are opaque strings
// and aliases are reported as events.
//
// This file contains:
// - Options API (WithIndent, WithCanonical, etc.)
// - Type and constant re-exports from internal/libyaml
// - Event constructors and the test-suite event notation

package yamlstream

import (
	"bytes"
	"errors"
	"io"

	"go.yaml.in/yamlstream/internal/libyaml"
	"gopkg.in/yaml.v3"
)

//-----------------------------------------------------------------------------
// Options
//-----------------------------------------------------------------------------

// Option configures an [Emitter].
type Option = libyaml.Option

// Option configuration functions
var (
	// WithIndent sets the number of spaces per indentation level.
	//
	// Valid values are 1-9. The default is 2.
	WithIndent = libyaml.WithIndent

	// WithLineWidth sets the preferred line width for YAML output.
	//
	// Plain and quoted scalars are folded at spaces once a line grows past
	// this width. Set to -1 or 0 for unlimited width.
	//
	// The default is 80 characters.
	WithLineWidth = libyaml.WithLineWidth

	// WithUnicode controls whether non-ASCII characters are allowed in YAML
	// output.
	//
	// When true, non-ASCII characters appear as-is (e.g., "café").
	// When false, scalars holding them are double-quoted and the characters
	// escaped (e.g., "caf\xE9").
	// When called without arguments, defaults to true.
	//
	// The default is true.
	WithUnicode = libyaml.WithUnicode

	// WithCanonical forces canonical YAML output format.
	//
	// When enabled, every document carries a %YAML directive and explicit
	// markers, collections use flow style with explicit keys, and scalars
	// are double-quoted with their tags.
	// When called without arguments, defaults to true.
	//
	// The default is false.
	WithCanonical = libyaml.WithCanonical

	// WithLineBreak sets the line ending style for YAML output.
	//
	// Available options:
	//   - LineBreakLN: Unix-style \n (default)
	//   - LineBreakCR: Old Mac-style \r
	//   - LineBreakCRLN: Windows-style \r\n
	//
	// The default is LineBreakLN.
	WithLineBreak = libyaml.WithLineBreak

	// WithExplicitStart controls whether document start markers (---) are
	// always emitted.
	//
	// When true, every document begins with an explicit "---" marker.
	// When false (default), the marker is omitted for the first document
	// unless the document start event asks for it.
	// When called without arguments, defaults to true.
	WithExplicitStart = libyaml.WithExplicitStart

	// WithEncoding sets the output encoding.
	//
	// EncodingUTF16LE and EncodingUTF16BE output starts with a byte order
	// mark. EncodingAny (the default) takes the encoding of the
	// STREAM-START event, falling back to UTF-8.
	WithEncoding = libyaml.WithEncoding
)

// Options combines multiple options into a single Option.
// This is useful for creating option presets.
//
// Example:
//
//	compact := yamlstream.Options(yamlstream.WithIndent(2), yamlstream.WithLineWidth(-1))
//	e, err := yamlstream.NewEmitter(w, compact, yamlstream.WithExplicitStart())
func Options(opts ...Option) Option {
	return libyaml.CombineOptions(opts...)
}

// OptsYAML parses a YAML string containing option settings and returns
// an Option that can be combined with other options using Options().
//
// The YAML string can specify any of these fields:
// - indent (int)
// - line-width (int)
// - unicode (bool)
// - canonical (bool)
// - line-break (string: ln, cr, crln)
// - explicit-start (bool)
// - encoding (string: utf-8, utf-16le, utf-16be)
//
// Only fields specified in the YAML will override other options when
// combined. Unknown fields are an error.
//
// Example:
//
//	opts, err := yamlstream.OptsYAML(`
//	  indent: 4
//	  line-break: crln
//	`)
func OptsYAML(yamlStr string) (Option, error) {
	var cfg struct {
		Indent        *int    `yaml:"indent"`
		LineWidth     *int    `yaml:"line-width"`
		Unicode       *bool   `yaml:"unicode"`
		Canonical     *bool   `yaml:"canonical"`
		LineBreak     *string `yaml:"line-break"`
		ExplicitStart *bool   `yaml:"explicit-start"`
		Encoding      *string `yaml:"encoding"`
	}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(yamlStr)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	// Build options only for fields that were set
	var optList []Option
	if cfg.Indent != nil {
		optList = append(optList, WithIndent(*cfg.Indent))
	}
	if cfg.LineWidth != nil {
		optList = append(optList, WithLineWidth(*cfg.LineWidth))
	}
	if cfg.Unicode != nil {
		optList = append(optList, WithUnicode(*cfg.Unicode))
	}
	if cfg.Canonical != nil {
		optList = append(optList, WithCanonical(*cfg.Canonical))
	}
	if cfg.ExplicitStart != nil {
		optList = append(optList, WithExplicitStart(*cfg.ExplicitStart))
	}
	if cfg.LineBreak != nil {
		switch *cfg.LineBreak {
		case "ln":
			optList = append(optList, WithLineBreak(LineBreakLN))
		case "cr":
			optList = append(optList, WithLineBreak(LineBreakCR))
		case "crln":
			optList = append(optList, WithLineBreak(LineBreakCRLN))
		default:
			return nil, errors.New("yaml: invalid line-break value (use ln, cr, or crln)")
		}
	}
	if cfg.Encoding != nil {
		switch *cfg.Encoding {
		case "utf-8":
			optList = append(optList, WithEncoding(EncodingUTF8))
		case "utf-16le":
			optList = append(optList, WithEncoding(EncodingUTF16LE))
		case "utf-16be":
			optList = append(optList, WithEncoding(EncodingUTF16BE))
		default:
			return nil, errors.New("yaml: invalid encoding value (use utf-8, utf-16le, or utf-16be)")
		}
	}

	return Options(optList...), nil
}

//-----------------------------------------------------------------------------
// Type and constant re-exports
//-----------------------------------------------------------------------------

type (
	// Mark is a position in the input: byte index, 0-based line and
	// 0-based column.
	Mark = libyaml.Mark

	// Token is a lexical token produced by the [Scanner].
	Token = libyaml.Token

	// TokenType identifies the kind of a [Token].
	TokenType = libyaml.TokenType

	// Event is a structural event produced by the [Parser] and consumed by
	// the [Emitter].
	Event = libyaml.Event

	// EventType identifies the kind of an [Event].
	EventType = libyaml.EventType

	// VersionDirective holds the YAML version from a %YAML directive.
	VersionDirective = libyaml.VersionDirective

	// TagDirective maps a tag handle to a prefix, as in a %TAG directive.
	TagDirective = libyaml.TagDirective

	// Encoding is the character encoding of a stream.
	Encoding = libyaml.Encoding

	// ScalarStyle is the presentation style of a scalar.
	ScalarStyle = libyaml.ScalarStyle

	// SequenceStyle is the presentation style of a sequence.
	SequenceStyle = libyaml.SequenceStyle

	// MappingStyle is the presentation style of a mapping.
	MappingStyle = libyaml.MappingStyle
)

// Encoding constants for YAML streams.
const (
	// EncodingAny lets the parser detect the encoding from a byte order mark.
	EncodingAny = libyaml.ANY_ENCODING

	// EncodingUTF8 is the default encoding.
	EncodingUTF8 = libyaml.UTF8_ENCODING

	EncodingUTF16LE = libyaml.UTF16LE_ENCODING
	EncodingUTF16BE = libyaml.UTF16BE_ENCODING

	// UTF-32 is accepted on input only.
	EncodingUTF32LE = libyaml.UTF32LE_ENCODING
	EncodingUTF32BE = libyaml.UTF32BE_ENCODING
)

type LineBreak = libyaml.LineBreak

const (
	LineBreakLN   = libyaml.LN_BREAK   // Unix-style \n (default)
	LineBreakCR   = libyaml.CR_BREAK   // Old Mac-style \r
	LineBreakCRLN = libyaml.CRLN_BREAK // Windows-style \r\n
)

// Token types.
const (
	TokenStreamStart        = libyaml.STREAM_START_TOKEN
	TokenStreamEnd          = libyaml.STREAM_END_TOKEN
	TokenVersionDirective   = libyaml.VERSION_DIRECTIVE_TOKEN
	TokenTagDirective       = libyaml.TAG_DIRECTIVE_TOKEN
	TokenDocumentStart      = libyaml.DOCUMENT_START_TOKEN
	TokenDocumentEnd        = libyaml.DOCUMENT_END_TOKEN
	TokenBlockSequenceStart = libyaml.BLOCK_SEQUENCE_START_TOKEN
	TokenBlockMappingStart  = libyaml.BLOCK_MAPPING_START_TOKEN
	TokenBlockEnd           = libyaml.BLOCK_END_TOKEN
	TokenFlowSequenceStart  = libyaml.FLOW_SEQUENCE_START_TOKEN
	TokenFlowSequenceEnd    = libyaml.FLOW_SEQUENCE_END_TOKEN
	TokenFlowMappingStart   = libyaml.FLOW_MAPPING_START_TOKEN
	TokenFlowMappingEnd     = libyaml.FLOW_MAPPING_END_TOKEN
	TokenBlockEntry         = libyaml.BLOCK_ENTRY_TOKEN
	TokenFlowEntry          = libyaml.FLOW_ENTRY_TOKEN
	TokenKey                = libyaml.KEY_TOKEN
	TokenValue              = libyaml.VALUE_TOKEN
	TokenAlias              = libyaml.ALIAS_TOKEN
	TokenAnchor             = libyaml.ANCHOR_TOKEN
	TokenTag                = libyaml.TAG_TOKEN
	TokenScalar             = libyaml.SCALAR_TOKEN
)

// Event types.
const (
	EventStreamStart   = libyaml.STREAM_START_EVENT
	EventStreamEnd     = libyaml.STREAM_END_EVENT
	EventDocumentStart = libyaml.DOCUMENT_START_EVENT
	EventDocumentEnd   = libyaml.DOCUMENT_END_EVENT
	EventAlias         = libyaml.ALIAS_EVENT
	EventScalar        = libyaml.SCALAR_EVENT
	EventSequenceStart = libyaml.SEQUENCE_START_EVENT
	EventSequenceEnd   = libyaml.SEQUENCE_END_EVENT
	EventMappingStart  = libyaml.MAPPING_START_EVENT
	EventMappingEnd    = libyaml.MAPPING_END_EVENT
)

// Presentation styles. The Any styles leave the choice to the emitter.
const (
	ScalarStyleAny          = libyaml.ANY_SCALAR_STYLE
	ScalarStylePlain        = libyaml.PLAIN_SCALAR_STYLE
	ScalarStyleSingleQuoted = libyaml.SINGLE_QUOTED_SCALAR_STYLE
	ScalarStyleDoubleQuoted = libyaml.DOUBLE_QUOTED_SCALAR_STYLE
	ScalarStyleLiteral      = libyaml.LITERAL_SCALAR_STYLE
	ScalarStyleFolded       = libyaml.FOLDED_SCALAR_STYLE

	SequenceStyleAny   = libyaml.ANY_SEQUENCE_STYLE
	SequenceStyleBlock = libyaml.BLOCK_SEQUENCE_STYLE
	SequenceStyleFlow  = libyaml.FLOW_SEQUENCE_STYLE

	MappingStyleAny   = libyaml.ANY_MAPPING_STYLE
	MappingStyleBlock = libyaml.BLOCK_MAPPING_STYLE
	MappingStyleFlow  = libyaml.FLOW_MAPPING_STYLE
)

// Error types. Every error ends the Scanner, Parser or Emitter that
// returned it; later calls return the same error. Use [errors.As] to tell
// them apart.
type (
	// MarkedYAMLError is the common shape of scanner and parser errors.
	MarkedYAMLError = libyaml.MarkedYAMLError

	// ScannerError is a lexical error.
	ScannerError = libyaml.ScannerError

	// ParserError is a grammar error.
	ParserError = libyaml.ParserError

	// ReaderError is an encoding error in the input or a failure of the
	// input source, which it wraps.
	ReaderError = libyaml.ReaderError

	// EmitterError is an invalid event or event sequence.
	EmitterError = libyaml.EmitterError

	// WriterError is a failure of the output sink, which it wraps.
	WriterError = libyaml.WriterError
)

//-----------------------------------------------------------------------------
// Event constructors
//-----------------------------------------------------------------------------

var (
	NewStreamStartEvent   = libyaml.NewStreamStartEvent
	NewStreamEndEvent     = libyaml.NewStreamEndEvent
	NewDocumentStartEvent = libyaml.NewDocumentStartEvent
	NewDocumentEndEvent   = libyaml.NewDocumentEndEvent
	NewAliasEvent         = libyaml.NewAliasEvent
	NewSequenceStartEvent = libyaml.NewSequenceStartEvent
	NewSequenceEndEvent   = libyaml.NewSequenceEndEvent
	NewMappingStartEvent  = libyaml.NewMappingStartEvent
	NewMappingEndEvent    = libyaml.NewMappingEndEvent
)

// NewScalarEvent creates a SCALAR event.
//
// plainImplicit means the tag may be omitted when the scalar is written
// plain, quotedImplicit means it may be omitted in any other style. An
// untagged string that the emitter may style freely has both set and
// [ScalarStyleAny].
func NewScalarEvent(anchor, tag, value []byte, plainImplicit, quotedImplicit bool, style ScalarStyle) Event {
	return libyaml.NewScalarEvent(anchor, tag, value, plainImplicit, quotedImplicit, style)
}

//-----------------------------------------------------------------------------
// Test-suite event notation
//-----------------------------------------------------------------------------

// ParserGetEvents parses in and returns its events in the yaml-test-suite
// notation, one event per line.
func ParserGetEvents(in []byte) (string, error) {
	return libyaml.ParserGetEvents(in)
}

// FormatEvent formats an event as one line of yaml-test-suite notation.
func FormatEvent(e *Event) string {
	return libyaml.FormatEvent(e)
}

// ParseEventLine reads one line of yaml-test-suite notation back into an
// event.
func ParseEventLine(line string) (Event, error) {
	return libyaml.ParseEventLine(line)
}
