// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "marked",
			err:  MarkedYAMLError{Mark: Mark{Line: 2, Column: 4}, Message: "found character that cannot start any token"},
			want: "yaml: line 3, column 5: found character that cannot start any token",
		},
		{
			name: "scanner with context",
			err: ScannerError{
				ContextMark:    Mark{Line: 0, Column: 0},
				ContextMessage: "while scanning a quoted scalar",
				Mark:           Mark{Line: 1, Column: 0},
				Message:        "found unexpected end of stream",
			},
			want: "yaml: while scanning a quoted scalar at line 1: line 2: found unexpected end of stream",
		},
		{
			name: "parser with context at the same mark",
			err: ParserError{
				ContextMark:    Mark{Line: 3},
				ContextMessage: "while parsing a block mapping",
				Mark:           Mark{Line: 3},
				Message:        "did not find expected key",
			},
			want: "yaml: while parsing a block mapping at line 4: did not find expected key",
		},
		{
			name: "reader with value",
			err:  ReaderError{Offset: 3, Value: 0xff, Err: errors.New("invalid leading UTF-8 octet")},
			want: "yaml: offset 3: invalid leading UTF-8 octet (0xff)",
		},
		{
			name: "reader without value",
			err:  ReaderError{Offset: 1, Value: -1, Err: errors.New("incomplete UTF-8 octet sequence")},
			want: "yaml: offset 1: incomplete UTF-8 octet sequence",
		},
		{
			name: "emitter",
			err:  EmitterError{Message: "expected STREAM-START"},
			want: "yaml: expected STREAM-START",
		},
		{
			name: "writer",
			err:  WriterError{Err: io.ErrShortWrite},
			want: "yaml: short write",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("reading config: %w", ReaderError{Offset: 0, Value: -1, Err: io.ErrUnexpectedEOF})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	var rerr ReaderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, -1, rerr.Value)

	err = fmt.Errorf("writing: %w", WriterError{Err: io.ErrClosedPipe})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var err error = ScannerError{Message: "x"}
	var perr ParserError
	assert.False(t, errors.As(err, &perr))
	var serr ScannerError
	assert.True(t, errors.As(err, &serr))
}
