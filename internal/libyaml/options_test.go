// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptionsDefaults(t *testing.T) {
	o, err := ApplyOptions()
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), *o)
	assert.Equal(t, 2, o.Indent)
	assert.Equal(t, 80, o.LineWidth)
	assert.True(t, o.Unicode)
	assert.Equal(t, LN_BREAK, o.LineBreak)
}

func TestApplyOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		check func(t *testing.T, o *Options)
	}{
		{"indent", []Option{WithIndent(4)}, func(t *testing.T, o *Options) {
			assert.Equal(t, 4, o.Indent)
		}},
		{"zero width is unbounded", []Option{WithLineWidth(0)}, func(t *testing.T, o *Options) {
			assert.Equal(t, -1, o.LineWidth)
		}},
		{"width", []Option{WithLineWidth(120)}, func(t *testing.T, o *Options) {
			assert.Equal(t, 120, o.LineWidth)
		}},
		{"unicode off", []Option{WithUnicode(false)}, func(t *testing.T, o *Options) {
			assert.False(t, o.Unicode)
		}},
		{"canonical", []Option{WithCanonical()}, func(t *testing.T, o *Options) {
			assert.True(t, o.Canonical)
		}},
		{"any line break", []Option{WithLineBreak(ANY_BREAK)}, func(t *testing.T, o *Options) {
			assert.Equal(t, LN_BREAK, o.LineBreak)
		}},
		{"CRLF", []Option{WithLineBreak(CRLN_BREAK)}, func(t *testing.T, o *Options) {
			assert.Equal(t, CRLN_BREAK, o.LineBreak)
		}},
		{"explicit start", []Option{WithExplicitStart()}, func(t *testing.T, o *Options) {
			assert.True(t, o.ExplicitStart)
		}},
		{"later options win", []Option{WithCanonical(), WithCanonical(false)}, func(t *testing.T, o *Options) {
			assert.False(t, o.Canonical)
		}},
		{"nil option is skipped", []Option{nil, WithIndent(3)}, func(t *testing.T, o *Options) {
			assert.Equal(t, 3, o.Indent)
		}},
		{"UTF-16 output", []Option{WithEncoding(UTF16BE_ENCODING)}, func(t *testing.T, o *Options) {
			assert.Equal(t, UTF16BE_ENCODING, o.Encoding)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ApplyOptions(tt.opts...)
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestApplyOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want string
	}{
		{"indent too small", WithIndent(0), "yaml: indent must be between 1 and 9, got 0"},
		{"indent too large", WithIndent(10), "yaml: indent must be between 1 and 9, got 10"},
		{"two arguments", WithUnicode(true, false), "yaml: WithUnicode accepts at most one argument, got 2"},
		{"unknown line break", WithLineBreak(LineBreak(42)), "yaml: unknown line break 42"},
		{"UTF-32 output", WithEncoding(UTF32LE_ENCODING), "yaml: UTF-32 output is not supported"},
		{"unknown encoding", WithEncoding(Encoding(42)), "yaml: unknown encoding 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ApplyOptions(tt.opt)
			assert.Nil(t, o)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestCombineOptions(t *testing.T) {
	preset := CombineOptions(WithIndent(4), WithLineWidth(60))
	o, err := ApplyOptions(preset, WithIndent(3), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, o.Indent)
	assert.Equal(t, 60, o.LineWidth)

	_, err = ApplyOptions(CombineOptions(WithUnicode(false), WithIndent(12)))
	assert.EqualError(t, err, "yaml: indent must be between 1 and 9, got 12")
}

func TestNewEmitterUsesOptions(t *testing.T) {
	o, err := ApplyOptions(WithIndent(4), WithLineWidth(40), WithCanonical(), WithUnicode(false))
	require.NoError(t, err)
	emitter := NewEmitter(o)
	assert.Equal(t, 4, emitter.best_indent)
	assert.Equal(t, 40, emitter.best_width)
	assert.True(t, emitter.canonical)
	assert.False(t, emitter.unicode)

	emitter = NewEmitter(nil)
	assert.Equal(t, 2, emitter.best_indent)
	assert.True(t, emitter.unicode)
}
