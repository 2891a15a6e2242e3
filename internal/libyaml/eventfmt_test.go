// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEventLineRoundTrip(t *testing.T) {
	lines := []string{
		"+STR",
		"-STR",
		"+DOC",
		"+DOC ---",
		"-DOC",
		"-DOC ...",
		"+MAP",
		"+MAP {} &m <tag:yaml.org,2002:map>",
		"-MAP",
		"+SEQ",
		"+SEQ [] &s",
		"+SEQ <!local>",
		"-SEQ",
		"=ALI *anchor",
		"=VAL :plain text",
		"=VAL &a <tag:yaml.org,2002:str> 'single",
		`=VAL "two\nlines\tand\\backslash`,
		`=VAL |literal\n`,
		"=VAL >folded",
		"=VAL :",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			event, err := ParseEventLine(line)
			require.NoError(t, err)
			assert.Equal(t, line, FormatEvent(&event))
		})
	}
}

func TestParseEventLineFields(t *testing.T) {
	event, err := ParseEventLine("=VAL &a <!t> 'x y")
	require.NoError(t, err)
	assert.Equal(t, SCALAR_EVENT, event.Type)
	assert.Equal(t, "a", string(event.Anchor))
	assert.Equal(t, "!t", string(event.Tag))
	assert.Equal(t, "x y", string(event.Value))
	assert.Equal(t, SINGLE_QUOTED_SCALAR_STYLE, event.ScalarStyle())
	assert.False(t, event.Implicit)
	assert.False(t, event.QuotedImplicit)

	event, err = ParseEventLine(`=VAL :a\0b`)
	require.NoError(t, err)
	assert.Equal(t, "a\x00b", string(event.Value))
	assert.True(t, event.Implicit)
	assert.True(t, event.QuotedImplicit)

	event, err = ParseEventLine("+DOC ---\r\n")
	require.NoError(t, err)
	assert.False(t, event.Implicit)
}

func TestParseEventLineErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"", `yaml: unknown event ""`},
		{"+FOO", `yaml: unknown event "+FOO"`},
		{"=ALI", `yaml: alias without a name in "=ALI"`},
		{"=ALI *", `yaml: alias without a name in "=ALI *"`},
		{"+SEQ ()", `yaml: unexpected "()" in "+SEQ ()"`},
		{"=VAL", `yaml: scalar without a value in "=VAL"`},
		{"=VAL <!t", `yaml: unterminated tag in "=VAL <!t"`},
		{"=VAL &a", `yaml: scalar without a style in "=VAL &a"`},
		{"=VAL ?x", `yaml: unknown scalar style '?' in "=VAL ?x"`},
		{`=VAL :a\`, `yaml: unterminated escape sequence in "=VAL :a\\"`},
		{`=VAL :a\q`, `yaml: invalid escape character 'q' in "=VAL :a\\q"`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseEventLine(tt.line)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestParserGetEvents(t *testing.T) {
	got, err := ParserGetEvents([]byte("--- &a [x, *a]\n"))
	require.NoError(t, err)
	want := strings.Join([]string{
		"+STR",
		"+DOC ---",
		"+SEQ [] &a",
		"=VAL :x",
		"=ALI *a",
		"-SEQ",
		"-DOC",
		"-STR",
	}, "\n")
	assert.Equal(t, want, got)

	_, err = ParserGetEvents([]byte("[x"))
	var perr ParserError
	assert.ErrorAs(t, err, &perr)
}
