// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharClasses(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b []byte, i int) bool
		in   string
		i    int
		want bool
	}{
		{"isAlpha lower", isAlpha, "abc", 0, true},
		{"isAlpha upper", isAlpha, "ABC", 0, true},
		{"isAlpha digit", isAlpha, "123", 0, true},
		{"isAlpha underscore", isAlpha, "_-", 0, true},
		{"isAlpha dash", isAlpha, "_-", 1, true},
		{"isAlpha space", isAlpha, " ", 0, false},
		{"isAlpha bang", isAlpha, "!", 0, false},

		{"isFlowIndicator comma", isFlowIndicator, ",", 0, true},
		{"isFlowIndicator brace", isFlowIndicator, "}", 0, true},
		{"isFlowIndicator colon", isFlowIndicator, ":", 0, false},

		{"isAnchorChar letter", isAnchorChar, "a", 0, true},
		{"isAnchorChar star", isAnchorChar, "*", 0, true},
		{"isAnchorChar colon", isAnchorChar, ":", 0, false},
		{"isAnchorChar bracket", isAnchorChar, "[", 0, false},
		{"isAnchorChar space", isAnchorChar, " ", 0, false},
		{"isAnchorChar non-ASCII", isAnchorChar, "é", 0, false},

		{"isDigit", isDigit, "7", 0, true},
		{"isDigit letter", isDigit, "a", 0, false},
		{"isHex lower", isHex, "f", 0, true},
		{"isHex upper", isHex, "F", 0, true},
		{"isHex g", isHex, "g", 0, false},
		{"isASCII", isASCII, "~", 0, true},
		{"isASCII high", isASCII, "é", 0, false},

		{"isPrintable letter", isPrintable, "a", 0, true},
		{"isPrintable LF", isPrintable, "\n", 0, true},
		{"isPrintable tab", isPrintable, "\t", 0, false},
		{"isPrintable DEL", isPrintable, "\x7f", 0, false},
		{"isPrintable NEL", isPrintable, "\u0085", 0, false},
		{"isPrintable NBSP", isPrintable, "\u00a0", 0, true},
		{"isPrintable surrogate range", isPrintable, "\xed\xa0\x80", 0, false},
		{"isPrintable BOM", isPrintable, "\ufeff", 0, false},
		{"isPrintable FFFE", isPrintable, "\xef\xbf\xbe", 0, false},
		{"isPrintable emoji", isPrintable, "😀", 0, true},

		{"isZeroChar", isZeroChar, "\x00", 0, true},
		{"isBOM", isBOM, "\ufeffa", 0, true},
		{"isBOM letter", isBOM, "abc", 0, false},
		{"isSpace", isSpace, " ", 0, true},
		{"isSpace tab", isSpace, "\t", 0, false},
		{"isTab", isTab, "\t", 0, true},
		{"isBlank space", isBlank, " ", 0, true},
		{"isBlank tab", isBlank, "\t", 0, true},
		{"isBlank LF", isBlank, "\n", 0, false},

		{"isLineBreak LF", isLineBreak, "\n", 0, true},
		{"isLineBreak CR", isLineBreak, "\r", 0, true},
		{"isLineBreak NEL", isLineBreak, "\u0085", 0, true},
		{"isLineBreak LS", isLineBreak, "\u2028", 0, true},
		{"isLineBreak PS", isLineBreak, "\u2029", 0, true},
		{"isLineBreak NBSP", isLineBreak, "\u00a0", 0, false},
		{"isCRLF", isCRLF, "\r\n", 0, true},
		{"isCRLF LF", isCRLF, "\n\r", 0, false},

		{"isBreakOrZero NUL", isBreakOrZero, "\x00", 0, true},
		{"isSpaceOrZero space", isSpaceOrZero, " ", 0, true},
		{"isSpaceOrZero tab", isSpaceOrZero, "\t", 0, false},
		{"isBlankOrZero tab", isBlankOrZero, "\t", 0, true},
		{"isBlankOrZero letter", isBlankOrZero, "a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pad like the reader does so lookahead stays in bounds.
			b := append([]byte(tt.in), 0, 0, 0, 0)
			assert.Equal(t, tt.want, tt.fn(b, tt.i))
		})
	}
}

func TestIsTagURIChar(t *testing.T) {
	for _, c := range ";/?:@&=+$.!~*'()%" {
		assert.Truef(t, isTagURIChar([]byte{byte(c)}, 0, false), "%q", c)
	}
	for _, c := range ",[]{}" {
		assert.Falsef(t, isTagURIChar([]byte{byte(c)}, 0, false), "%q outside a verbatim tag", c)
		assert.Truef(t, isTagURIChar([]byte{byte(c)}, 0, true), "%q inside a verbatim tag", c)
	}
	assert.False(t, isTagURIChar([]byte("<"), 0, true))
	assert.False(t, isTagURIChar([]byte(" "), 0, true))
}

func TestDigitValues(t *testing.T) {
	for i, c := range []byte("0123456789") {
		assert.Equal(t, i, asDigit([]byte{c}, 0))
	}
	hex := map[byte]int{'0': 0, '9': 9, 'a': 10, 'A': 10, 'f': 15, 'F': 15, 'c': 12}
	for c, want := range hex {
		assert.Equalf(t, want, asHex([]byte{c}, 0), "asHex(%q)", c)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a", 1},
		{"é", 2},
		{"€", 3},
		{"😀", 4},
		{"\x80", 0},
		{"\xff", 0},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, width(tt.in[0]), "width(%q)", tt.in)
	}
}
