// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for YAML scanning, parsing and emitting.
// Provides structured error reporting with line/column information.
// Every error is fatal to the Parser or Emitter that produced it.

package libyaml

import (
	"errors"
	"fmt"
	"strings"
)

// MarkedYAMLError is a problem found at a position of the input, with an
// optional context describing the construct being processed.
type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// ParserError is a grammar violation found while turning tokens into events.
type ParserError MarkedYAMLError

func (e ParserError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ScannerError is a lexical violation found while turning characters into
// tokens.
type ScannerError MarkedYAMLError

func (e ScannerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ReaderError is an encoding problem of the raw input or a failure of the
// input source. Value is the offending code point or octet, or -1.
type ReaderError struct {
	Offset int
	Value  int
	Err    error
}

func (e ReaderError) Error() string {
	if e.Value >= 0 {
		return fmt.Sprintf("yaml: offset %d: %s (%#x)", e.Offset, e.Err, e.Value)
	}
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

func (e ReaderError) Unwrap() error {
	return e.Err
}

// EmitterError is an invalid event or event sequence given to the Emitter.
type EmitterError struct {
	Message string
}

func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

// WriterError is a failure of the output sink.
type WriterError struct {
	Err error
}

func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

func (e WriterError) Unwrap() error {
	return e.Err
}

// Set a reader error and remember it.
func (parser *Parser) setReaderError(problem string, offset, value int) error {
	parser.lastError = ReaderError{
		Offset: offset,
		Value:  value,
		Err:    errors.New(problem),
	}
	return parser.lastError
}

// Set a reader error caused by the input source.
func (parser *Parser) setInputError(offset int, err error) error {
	parser.lastError = ReaderError{
		Offset: offset,
		Value:  -1,
		Err:    fmt.Errorf("input error: %w", err),
	}
	return parser.lastError
}

func (parser *Parser) setScannerError(context string, context_mark Mark, problem string, problem_mark Mark) error {
	parser.lastError = ScannerError{
		ContextMark:    context_mark,
		ContextMessage: context,
		Mark:           problem_mark,
		Message:        problem,
	}
	return parser.lastError
}

func (parser *Parser) setParserError(problem string, problem_mark Mark) error {
	parser.lastError = ParserError{
		Mark:    problem_mark,
		Message: problem,
	}
	return parser.lastError
}

func (parser *Parser) setParserErrorContext(context string, context_mark Mark, problem string, problem_mark Mark) error {
	parser.lastError = ParserError{
		ContextMark:    context_mark,
		ContextMessage: context,
		Mark:           problem_mark,
		Message:        problem,
	}
	return parser.lastError
}

func (emitter *Emitter) setEmitterError(problem string) error {
	emitter.lastError = EmitterError{
		Message: problem,
	}
	return emitter.lastError
}

func (emitter *Emitter) setWriterError(err error) error {
	emitter.lastError = WriterError{
		Err: err,
	}
	return emitter.lastError
}
