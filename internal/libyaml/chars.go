// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Buffer sizes and byte-level character classes.
// All predicates look at the UTF-8 encoded character starting at b[i].
// Callers guarantee that the whole character is present in b.

package libyaml

const (
	// The size of the input raw buffer.
	input_raw_buffer_size = 512

	// The size of the input buffer.
	// It should be possible to decode the whole raw buffer.
	input_buffer_size = input_raw_buffer_size * 3

	// The size of the output buffer.
	output_buffer_size = 128

	// The size of other stacks and queues.
	initial_stack_size  = 16
	initial_queue_size  = 16
	initial_string_size = 16
)

// isAlpha reports an alphanumeric character, '_' or '-'.
func isAlpha(b []byte, i int) bool {
	c := b[i]
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' || c == '_' || c == '-'
}

// isFlowIndicator reports one of ",[]{}".
func isFlowIndicator(b []byte, i int) bool {
	switch b[i] {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// isAnchorChar reports a character allowed in anchor and alias names.
// Names are restricted to printable ASCII without blanks, flow indicators
// and ':'.
func isAnchorChar(b []byte, i int) bool {
	if isColon(b, i) {
		return false
	}
	return isPrintable(b, i) &&
		!isLineBreak(b, i) &&
		!isBlank(b, i) &&
		!isBOM(b, i) &&
		!isFlowIndicator(b, i) &&
		isASCII(b, i)
}

func isColon(b []byte, i int) bool {
	return b[i] == ':'
}

// isTagURIChar reports a character allowed in a tag URI. Flow indicators
// are only allowed inside verbatim tags.
func isTagURIChar(b []byte, i int, verbatim bool) bool {
	if isAlpha(b, i) {
		return true
	}
	switch b[i] {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', '.', '!', '~', '*', '\'', '(', ')', '%':
		return true
	case ',', '[', ']', '{', '}':
		return verbatim
	}
	return false
}

func isDigit(b []byte, i int) bool {
	return b[i] >= '0' && b[i] <= '9'
}

func asDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

func isHex(b []byte, i int) bool {
	c := b[i]
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}

func asHex(b []byte, i int) int {
	switch c := b[i]; {
	case c >= 'A' && c <= 'F':
		return int(c) - 'A' + 10
	case c >= 'a' && c <= 'f':
		return int(c) - 'a' + 10
	default:
		return int(c) - '0'
	}
}

func isASCII(b []byte, i int) bool {
	return b[i] <= 0x7F
}

// isPrintable reports a character that may appear unescaped in output:
// LF, #x20-#x7E, #xA0-#xD7FF and #xE000-#xFFFD without the BOM, and the
// supplementary planes.
func isPrintable(b []byte, i int) bool {
	c := b[i]
	switch {
	case c == 0x0A:
		return true
	case c >= 0x20 && c <= 0x7E:
		return true
	case c == 0xC2:
		return b[i+1] >= 0xA0
	case c > 0xC2 && c < 0xED:
		return true
	case c == 0xED:
		return b[i+1] < 0xA0
	case c == 0xEE:
		return true
	case c == 0xEF:
		if b[i+1] == 0xBB && b[i+2] == 0xBF {
			return false
		}
		return !(b[i+1] == 0xBF && (b[i+2] == 0xBE || b[i+2] == 0xBF))
	case c >= 0xF0 && c <= 0xF4:
		return true
	}
	return false
}

func isZeroChar(b []byte, i int) bool {
	return b[i] == 0x00
}

// isBOM reports a UTF-8 encoded U+FEFF.
func isBOM(b []byte, i int) bool {
	return b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

func isSpace(b []byte, i int) bool {
	return b[i] == ' '
}

func isTab(b []byte, i int) bool {
	return b[i] == '\t'
}

func isBlank(b []byte, i int) bool {
	return b[i] == ' ' || b[i] == '\t'
}

// isLineBreak reports CR, LF, NEL (#x85), LS (#x2028) or PS (#x2029).
func isLineBreak(b []byte, i int) bool {
	switch b[i] {
	case '\r', '\n':
		return true
	case 0xC2:
		return b[i+1] == 0x85
	case 0xE2:
		return b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9)
	}
	return false
}

func isCRLF(b []byte, i int) bool {
	return b[i] == '\r' && b[i+1] == '\n'
}

func isBreakOrZero(b []byte, i int) bool {
	return b[i] == 0 || isLineBreak(b, i)
}

func isSpaceOrZero(b []byte, i int) bool {
	return b[i] == ' ' || isBreakOrZero(b, i)
}

func isBlankOrZero(b []byte, i int) bool {
	return isBlank(b, i) || isBreakOrZero(b, i)
}

// width returns the length of the UTF-8 sequence introduced by b, or 0 for
// a continuation or invalid byte.
func width(b byte) int {
	// Keep this as an if chain, it is inlined in the hot loops.
	if b&0x80 == 0x00 {
		return 1
	}
	if b&0xE0 == 0xC0 {
		return 2
	}
	if b&0xF0 == 0xE0 {
		return 3
	}
	if b&0xF8 == 0xF0 {
		return 4
	}
	return 0
}
