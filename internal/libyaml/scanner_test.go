// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll scans input to the end and returns every token produced.
func scanAll(input string) ([]Token, error) {
	p := NewParser()
	p.SetInputString([]byte(input))
	var tokens []Token
	for {
		var token Token
		if err := p.Scan(&token); err != nil {
			if errors.Is(err, io.EOF) {
				return tokens, nil
			}
			return tokens, err
		}
		tokens = append(tokens, token)
	}
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i := range tokens {
		types[i] = tokens[i].Type
	}
	return types
}

func TestScanTokenTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{
			name:  "empty stream",
			input: "",
			want:  []TokenType{STREAM_START_TOKEN, STREAM_END_TOKEN},
		},
		{
			name:  "comment only",
			input: "# nothing here\n",
			want:  []TokenType{STREAM_START_TOKEN, STREAM_END_TOKEN},
		},
		{
			name:  "block mapping",
			input: "a: b\nc: d\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "block sequence",
			input: "- 1\n- 2\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_SEQUENCE_START_TOKEN,
				BLOCK_ENTRY_TOKEN, SCALAR_TOKEN, BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "indentless sequence",
			input: "a:\n- 1\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN,
				BLOCK_ENTRY_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "explicit key",
			input: "? a\n: b\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "flow collections",
			input: "[a, {b: c}]",
			want: []TokenType{
				STREAM_START_TOKEN, FLOW_SEQUENCE_START_TOKEN,
				SCALAR_TOKEN, FLOW_ENTRY_TOKEN,
				FLOW_MAPPING_START_TOKEN, KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				FLOW_MAPPING_END_TOKEN, FLOW_SEQUENCE_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "directives and properties",
			input: "%YAML 1.2\n%TAG !e! tag:e.com,2000:\n--- !e!x &a 'v'\n...\n",
			want: []TokenType{
				STREAM_START_TOKEN, VERSION_DIRECTIVE_TOKEN, TAG_DIRECTIVE_TOKEN,
				DOCUMENT_START_TOKEN, TAG_TOKEN, ANCHOR_TOKEN, SCALAR_TOKEN,
				DOCUMENT_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "unknown directive is skipped",
			input: "%FOO bar baz\n--- a\n",
			want: []TokenType{
				STREAM_START_TOKEN, DOCUMENT_START_TOKEN, SCALAR_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "alias",
			input: "- &x a\n- *x\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_SEQUENCE_START_TOKEN,
				BLOCK_ENTRY_TOKEN, ANCHOR_TOKEN, SCALAR_TOKEN,
				BLOCK_ENTRY_TOKEN, ALIAS_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
		{
			name:  "dedent closes several blocks",
			input: "a:\n  b:\n    c: d\ne: f\n",
			want: []TokenType{
				STREAM_START_TOKEN, BLOCK_MAPPING_START_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN,
				BLOCK_MAPPING_START_TOKEN, KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN,
				BLOCK_MAPPING_START_TOKEN, KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, BLOCK_END_TOKEN,
				KEY_TOKEN, SCALAR_TOKEN, VALUE_TOKEN, SCALAR_TOKEN,
				BLOCK_END_TOKEN, STREAM_END_TOKEN,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanAll(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, tokenTypes(tokens)); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanScalarValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
		style ScalarStyle
	}{
		{"plain", "hello world", "hello world", PLAIN_SCALAR_STYLE},
		{"plain multi-line", "a\n  b\n\n  c", "a b\nc", PLAIN_SCALAR_STYLE},
		{"plain with inner colon", "http://x.org/a", "http://x.org/a", PLAIN_SCALAR_STYLE},
		{"single quoted", "'it''s'", "it's", SINGLE_QUOTED_SCALAR_STYLE},
		{"single quoted folding", "'a\n  b'", "a b", SINGLE_QUOTED_SCALAR_STYLE},
		{"double quoted escapes", `"\x41\u00e9\U0001F600\t\/\\\""`, "Aé😀\t/\\\"", DOUBLE_QUOTED_SCALAR_STYLE},
		{"double quoted named escapes", `"\0\a\b\e\f\n\r\v\N\_\L\P"`, "\x00\a\b\x1b\f\n\r\v\u0085\u00a0\u2028\u2029", DOUBLE_QUOTED_SCALAR_STYLE},
		{"double quoted escaped break", "\"a\\\n  b\"", "ab", DOUBLE_QUOTED_SCALAR_STYLE},
		{"literal", "|\n  x\n   y\n", "x\n y\n", LITERAL_SCALAR_STYLE},
		{"literal strip", "|-\n  x\n\n", "x", LITERAL_SCALAR_STYLE},
		{"literal keep", "|+\n  x\n\n", "x\n\n", LITERAL_SCALAR_STYLE},
		{"literal indentation indicator", "|2\n   x\n", " x\n", LITERAL_SCALAR_STYLE},
		{"folded", ">\n  a\n  b\n\n  c\n", "a b\nc\n", FOLDED_SCALAR_STYLE},
		{"folded more indented", ">\n  a\n    b\n  c\n", "a\n  b\nc\n", FOLDED_SCALAR_STYLE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanAll(tt.input)
			require.NoError(t, err)
			var scalar *Token
			for i := range tokens {
				if tokens[i].Type == SCALAR_TOKEN {
					scalar = &tokens[i]
					break
				}
			}
			require.NotNil(t, scalar, "no scalar token in %v", tokenTypes(tokens))
			assert.Equal(t, tt.value, string(scalar.Value))
			assert.Equal(t, tt.style, scalar.Style)
		})
	}
}

func TestScanFlowColon(t *testing.T) {
	// Inside flow collections ':' only ends a plain scalar before a blank
	// or a flow indicator.
	tokens, err := scanAll("{a:1, b:}")
	require.NoError(t, err)

	var values []string
	for _, token := range tokens {
		if token.Type == SCALAR_TOKEN {
			values = append(values, string(token.Value))
		}
	}
	assert.Equal(t, []string{"a:1", "b"}, values)
	assert.Contains(t, tokenTypes(tokens), VALUE_TOKEN)
}

func TestScanDirectiveValues(t *testing.T) {
	tokens, err := scanAll("%YAML 1.2\n%TAG !e! tag:e.com,2000:\n--- !e!x &a 'v'\n")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tokens), 6)

	version := tokens[1]
	assert.Equal(t, VERSION_DIRECTIVE_TOKEN, version.Type)
	assert.Equal(t, int8(1), version.Major)
	assert.Equal(t, int8(2), version.Minor)

	tag := tokens[2]
	assert.Equal(t, "!e!", string(tag.Value))
	assert.Equal(t, "tag:e.com,2000:", string(tag.Prefix))

	node := tokens[4]
	assert.Equal(t, TAG_TOKEN, node.Type)
	assert.Equal(t, "!e!", string(node.Value))
	assert.Equal(t, "x", string(node.Suffix))

	anchor := tokens[5]
	assert.Equal(t, ANCHOR_TOKEN, anchor.Type)
	assert.Equal(t, "a", string(anchor.Value))
}

func TestScanVerbatimTag(t *testing.T) {
	tokens, err := scanAll("!<tag:e.com,2000:[x]> v\n")
	require.NoError(t, err)
	require.Equal(t, TAG_TOKEN, tokens[1].Type)
	assert.Empty(t, tokens[1].Value)
	assert.Equal(t, "tag:e.com,2000:[x]", string(tokens[1].Suffix))
}

func TestScanMarks(t *testing.T) {
	tokens, err := scanAll("a: b\nc: d\n")
	require.NoError(t, err)

	var scalars []Token
	for _, token := range tokens {
		if token.Type == SCALAR_TOKEN {
			scalars = append(scalars, token)
		}
	}
	require.Len(t, scalars, 4)
	want := []struct{ start, end Mark }{
		{Mark{0, 0, 0}, Mark{1, 0, 1}},
		{Mark{3, 0, 3}, Mark{4, 0, 4}},
		{Mark{5, 1, 0}, Mark{6, 1, 1}},
		{Mark{8, 1, 3}, Mark{9, 1, 4}},
	}
	for i, w := range want {
		assert.Equalf(t, w.start, scalars[i].StartMark, "scalar %d start", i)
		assert.Equalf(t, w.end, scalars[i].EndMark, "scalar %d end", i)
	}
}

func TestScanMarksCountBytes(t *testing.T) {
	// é and ü take two bytes, CR LF and NEL are two-byte line breaks.
	tokens, err := scanAll("é: x\r\nü: \"a\u0085b\"\n")
	require.NoError(t, err)

	var scalars []Token
	for _, token := range tokens {
		if token.Type == SCALAR_TOKEN {
			scalars = append(scalars, token)
		}
	}
	require.Len(t, scalars, 4)
	want := []struct{ start, end Mark }{
		{Mark{0, 0, 0}, Mark{2, 0, 1}},
		{Mark{4, 0, 3}, Mark{5, 0, 4}},
		{Mark{7, 1, 0}, Mark{9, 1, 1}},
		{Mark{11, 1, 3}, Mark{17, 2, 2}},
	}
	for i, w := range want {
		assert.Equalf(t, w.start, scalars[i].StartMark, "scalar %d start", i)
		assert.Equalf(t, w.end, scalars[i].EndMark, "scalar %d end", i)
	}
	assert.Equal(t, "a b", string(scalars[3].Value))
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		context string
		message string
		line    int
		column  int
	}{
		{
			name:    "tab in indentation",
			input:   "a:\n\tb: c\n",
			context: "while scanning for the next token",
			message: "found a tab character where an indentation space is expected",
			line:    1,
			column:  0,
		},
		{
			name:    "unterminated quoted scalar",
			input:   `"abc`,
			context: "while scanning a quoted scalar",
			message: "found unexpected end of stream",
			line:    0,
			column:  4,
		},
		{
			name:    "reserved indicator",
			input:   "@foo",
			context: "while scanning for the next token",
			message: "found character that cannot start any token",
			line:    0,
			column:  0,
		},
		{
			name:    "nested mapping value",
			input:   "a: b: c",
			message: "mapping values are not allowed in this context",
			line:    0,
			column:  4,
		},
		{
			name:    "empty anchor",
			input:   "& a",
			context: "while scanning an anchor",
			message: "did not find expected alphabetic or numeric character",
			line:    0,
			column:  1,
		},
		{
			name:    "unknown escape",
			input:   `"\q"`,
			context: "while scanning a quoted scalar",
			message: "found unknown escape character",
			line:    0,
			column:  1,
		},
		{
			name:    "surrogate escape",
			input:   `"\ud800"`,
			context: "while scanning a quoted scalar",
			message: "found invalid Unicode character escape code",
			line:    0,
			column:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanAll(tt.input)
			var serr ScannerError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.context, serr.ContextMessage)
			assert.Equal(t, tt.message, serr.Message)
			assert.Equal(t, tt.line, serr.Mark.Line)
			assert.Equal(t, tt.column, serr.Mark.Column)
		})
	}
}

func TestScanMaxFlowDepth(t *testing.T) {
	_, err := scanAll(strings.Repeat("[", max_flow_level+1))
	var serr ScannerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "exceeded max depth of 10000", serr.Message)

	_, err = scanAll(strings.Repeat("[", max_flow_level) + strings.Repeat("]", max_flow_level))
	assert.NoError(t, err)
}

func TestScanAfterStreamEnd(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a"))
	var token Token
	for token.Type != STREAM_END_TOKEN {
		require.NoError(t, p.Scan(&token))
	}
	assert.ErrorIs(t, p.Scan(&token), io.EOF)
	assert.Equal(t, NO_TOKEN, token.Type)
}
