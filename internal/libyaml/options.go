// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Emitter configuration.
// Options are collected from functional Option values and validated when
// they are applied, so a bad value fails before any output is written.

package libyaml

import (
	"errors"
	"fmt"
)

// Options holds the emitter configuration.
type Options struct {
	Indent        int       // Spaces per indentation level (1-9).
	LineWidth     int       // Preferred line width; -1 means unbounded.
	Unicode       bool      // Write non-ASCII characters unescaped.
	Canonical     bool      // Write the canonical form of the stream.
	LineBreak     LineBreak // Line break style.
	ExplicitStart bool      // Write '---' before every document.
	Encoding      Encoding  // Output encoding; ANY follows the STREAM-START event.
}

// Option allows configuring an [Emitter].
type Option func(*Options) error

// DefaultOptions returns the configuration used when no option is given.
func DefaultOptions() Options {
	return Options{
		Indent:    2,
		LineWidth: 80,
		Unicode:   true,
		LineBreak: LN_BREAK,
	}
}

// ApplyOptions applies opts on top of [DefaultOptions].
func ApplyOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

// CombineOptions returns an Option that applies opts in order.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// boolArg returns the value of an optional boolean argument, which
// defaults to true.
func boolArg(name string, args []bool) (bool, error) {
	switch len(args) {
	case 0:
		return true, nil
	case 1:
		return args[0], nil
	}
	return false, fmt.Errorf("yaml: %s accepts at most one argument, got %d", name, len(args))
}

// WithIndent sets the number of spaces per indentation level.
// Valid values are 1-9.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 1 || indent > 9 {
			return fmt.Errorf("yaml: indent must be between 1 and 9, got %d", indent)
		}
		o.Indent = indent
		return nil
	}
}

// WithLineWidth sets the preferred line width. 0 or a negative value
// means lines are never folded.
func WithLineWidth(width int) Option {
	return func(o *Options) error {
		if width <= 0 {
			width = -1
		}
		o.LineWidth = width
		return nil
	}
}

// WithUnicode allows non-ASCII characters to be written unescaped.
// When called without arguments, defaults to true.
func WithUnicode(unicode ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithUnicode", unicode)
		if err != nil {
			return err
		}
		o.Unicode = v
		return nil
	}
}

// WithCanonical selects the canonical output form: explicit documents
// with a %YAML directive, flow collections, explicit keys and tagged
// double-quoted scalars.
// When called without arguments, defaults to true.
func WithCanonical(canonical ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithCanonical", canonical)
		if err != nil {
			return err
		}
		o.Canonical = v
		return nil
	}
}

// WithLineBreak sets the line break style.
func WithLineBreak(lineBreak LineBreak) Option {
	return func(o *Options) error {
		switch lineBreak {
		case ANY_BREAK:
			lineBreak = LN_BREAK
		case LN_BREAK, CR_BREAK, CRLN_BREAK:
		default:
			return fmt.Errorf("yaml: unknown line break %d", int(lineBreak))
		}
		o.LineBreak = lineBreak
		return nil
	}
}

// WithExplicitStart writes the '---' marker before every document,
// including the first one.
// When called without arguments, defaults to true.
func WithExplicitStart(explicit ...bool) Option {
	return func(o *Options) error {
		v, err := boolArg("WithExplicitStart", explicit)
		if err != nil {
			return err
		}
		o.ExplicitStart = v
		return nil
	}
}

// WithEncoding sets the output encoding. UTF-16 output starts with a
// byte order mark.
func WithEncoding(encoding Encoding) Option {
	return func(o *Options) error {
		switch encoding {
		case ANY_ENCODING, UTF8_ENCODING, UTF16LE_ENCODING, UTF16BE_ENCODING:
			o.Encoding = encoding
			return nil
		case UTF32LE_ENCODING, UTF32BE_ENCODING:
			return errors.New("yaml: UTF-32 output is not supported")
		}
		return fmt.Errorf("yaml: unknown encoding %d", int(encoding))
	}
}
