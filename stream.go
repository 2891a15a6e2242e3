// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlstream

import (
	"io"

	"go.yaml.in/yamlstream/internal/libyaml"
)

// A Scanner reads lexical tokens from a YAML stream.
//
// A Scanner is bound to one input for its whole life and must not be used
// from several goroutines at once.
type Scanner struct {
	parser libyaml.Parser
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{parser: libyaml.NewParser()}
	s.parser.SetInputReader(r)
	return s
}

// NewScannerBytes returns a Scanner reading from in.
func NewScannerBytes(in []byte) *Scanner {
	s := &Scanner{parser: libyaml.NewParser()}
	s.parser.SetInputString(in)
	return s
}

// SetEncoding forces the input encoding instead of detecting it from a
// byte order mark. It must be called before the first call to Next.
func (s *Scanner) SetEncoding(encoding Encoding) {
	s.parser.SetEncoding(encoding)
}

// Next returns the next token. After the STREAM-END token it returns
// io.EOF. Any other error is final and is returned again by later calls.
func (s *Scanner) Next() (Token, error) {
	var token Token
	err := s.parser.Scan(&token)
	return token, err
}

// A Parser reads structural events from a YAML stream.
//
// A Parser is bound to one input for its whole life and must not be used
// from several goroutines at once.
type Parser struct {
	parser libyaml.Parser
}

// NewParser returns a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	p := &Parser{parser: libyaml.NewParser()}
	p.parser.SetInputReader(r)
	return p
}

// NewParserBytes returns a Parser reading from in.
func NewParserBytes(in []byte) *Parser {
	p := &Parser{parser: libyaml.NewParser()}
	p.parser.SetInputString(in)
	return p
}

// SetEncoding forces the input encoding instead of detecting it from a
// byte order mark. It must be called before the first call to Next.
func (p *Parser) SetEncoding(encoding Encoding) {
	p.parser.SetEncoding(encoding)
}

// Next returns the next event. After the STREAM-END event it returns
// io.EOF. Any other error is final and is returned again by later calls.
//
// Example:
//
//	p := yamlstream.NewParser(r)
//	for {
//		event, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(yamlstream.FormatEvent(&event))
//	}
func (p *Parser) Next() (Event, error) {
	var event Event
	err := p.parser.Parse(&event)
	return event, err
}

// An Emitter writes YAML text for a sequence of events.
//
// Output is buffered. It is written to the underlying writer at the end of
// every document, at the end of the stream, when the buffer fills up, and
// on Flush.
type Emitter struct {
	emitter libyaml.Emitter
}

// NewEmitter returns an Emitter writing to w with the given options.
// An invalid option value is reported here, before any output.
func NewEmitter(w io.Writer, opts ...Option) (*Emitter, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	e := &Emitter{emitter: libyaml.NewEmitter(o)}
	e.emitter.SetOutputWriter(w)
	return e, nil
}

// Emit takes the next event of the stream.
//
// The emitter looks a few events ahead to choose a layout, so an invalid
// event may be reported by a later call. Any error is final and is
// returned again by later calls.
func (e *Emitter) Emit(event Event) error {
	return e.emitter.Emit(&event)
}

// Flush writes any buffered output to the underlying writer.
func (e *Emitter) Flush() error {
	return e.emitter.Flush()
}
