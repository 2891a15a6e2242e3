// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Input reader.
// Detects the stream encoding, decodes raw input into the UTF-8 working
// buffer and rejects characters that YAML does not allow.

package libyaml

import "io"

// Byte order marks.
const (
	bom_UTF8    = "\xef\xbb\xbf"
	bom_UTF16LE = "\xff\xfe"
	bom_UTF16BE = "\xfe\xff"
	bom_UTF32LE = "\xff\xfe\x00\x00"
	bom_UTF32BE = "\x00\x00\xfe\xff"
)

func hasPrefix(buf []byte, prefix string) bool {
	if len(buf) < len(prefix) {
		return false
	}
	return string(buf[:len(prefix)]) == prefix
}

// Determine the input stream encoding by checking the BOM symbol. If no BOM
// is found, the UTF-8 encoding is assumed.
func (parser *Parser) determineEncoding() error {
	// Ensure that we had enough bytes in the raw buffer.
	for !parser.eof && len(parser.raw_buffer)-parser.raw_buffer_pos < 4 {
		if err := parser.updateRawBuffer(); err != nil {
			return err
		}
	}

	buf := parser.raw_buffer[parser.raw_buffer_pos:]
	var skip int
	switch {
	case hasPrefix(buf, bom_UTF32LE):
		parser.encoding = UTF32LE_ENCODING
		skip = len(bom_UTF32LE)
	case hasPrefix(buf, bom_UTF32BE):
		parser.encoding = UTF32BE_ENCODING
		skip = len(bom_UTF32BE)
	case hasPrefix(buf, bom_UTF16LE):
		parser.encoding = UTF16LE_ENCODING
		skip = len(bom_UTF16LE)
	case hasPrefix(buf, bom_UTF16BE):
		parser.encoding = UTF16BE_ENCODING
		skip = len(bom_UTF16BE)
	case hasPrefix(buf, bom_UTF8):
		parser.encoding = UTF8_ENCODING
		skip = len(bom_UTF8)
	default:
		parser.encoding = UTF8_ENCODING
	}
	parser.raw_buffer_pos += skip
	parser.offset += skip
	return nil
}

// Update the raw buffer.
func (parser *Parser) updateRawBuffer() error {
	// Return if the raw buffer is full.
	if parser.raw_buffer_pos == 0 && len(parser.raw_buffer) == cap(parser.raw_buffer) {
		return nil
	}

	// Return on EOF.
	if parser.eof {
		return nil
	}

	// Move the remaining bytes in the raw buffer to the beginning.
	if parser.raw_buffer_pos > 0 && parser.raw_buffer_pos < len(parser.raw_buffer) {
		copy(parser.raw_buffer, parser.raw_buffer[parser.raw_buffer_pos:])
	}
	parser.raw_buffer = parser.raw_buffer[:len(parser.raw_buffer)-parser.raw_buffer_pos]
	parser.raw_buffer_pos = 0

	// Call the read handler to fill the buffer.
	size_read, err := parser.read_handler(parser, parser.raw_buffer[len(parser.raw_buffer):cap(parser.raw_buffer)])
	parser.raw_buffer = parser.raw_buffer[:len(parser.raw_buffer)+size_read]
	if err == io.EOF {
		parser.eof = true
	} else if err != nil {
		return parser.setInputError(parser.offset, err)
	}
	return nil
}

// isAllowedChar reports whether a decoded code point may appear in a YAML
// stream: TAB, LF, CR, the printable ASCII range, NEL and the non-control,
// non-surrogate ranges of the BMP and the supplementary planes.
func isAllowedChar(value rune) bool {
	switch {
	case value == 0x09, value == 0x0A, value == 0x0D:
		return true
	case value >= 0x20 && value <= 0x7E:
		return true
	case value == 0x85:
		return true
	case value >= 0xA0 && value <= 0xD7FF:
		return true
	case value >= 0xE000 && value <= 0xFFFD:
		return true
	case value >= 0x10000 && value <= 0x10FFFF:
		return true
	}
	return false
}

// Ensure that the buffer contains at least `length` characters.
//
// Characters are decoded from the raw buffer into UTF-8. At the end of the
// input a NUL character is appended, and the buffer is padded with NULs up
// to the requested length so that lookahead never runs past the slice.
func (parser *Parser) updateBuffer(length int) error {
	if parser.read_handler == nil {
		panic("read handler must be set")
	}

	// If the EOF flag is set and the raw buffer is empty, do nothing.
	if parser.eof && parser.raw_buffer_pos == len(parser.raw_buffer) {
		for len(parser.buffer)-parser.buffer_pos < length {
			parser.buffer = append(parser.buffer, 0)
		}
		return nil
	}

	// Return if the buffer contains enough characters.
	if parser.unread >= length {
		return nil
	}

	// Determine the input encoding if it is not known yet.
	if parser.encoding == ANY_ENCODING {
		if err := parser.determineEncoding(); err != nil {
			return err
		}
	}

	// Move the unread characters to the beginning of the buffer.
	buffer_len := len(parser.buffer)
	if parser.buffer_pos > 0 && parser.buffer_pos < buffer_len {
		copy(parser.buffer, parser.buffer[parser.buffer_pos:])
		buffer_len -= parser.buffer_pos
		parser.buffer_pos = 0
	} else if parser.buffer_pos == buffer_len {
		buffer_len = 0
		parser.buffer_pos = 0
	}

	// Open the whole buffer for writing, and cut it before returning.
	parser.buffer = parser.buffer[:cap(parser.buffer)]

	// Fill the buffer until it has enough characters.
	first := true
	for parser.unread < length {
		// Fill the raw buffer if necessary.
		if !first || parser.raw_buffer_pos == len(parser.raw_buffer) {
			if err := parser.updateRawBuffer(); err != nil {
				parser.buffer = parser.buffer[:buffer_len]
				return err
			}
		}
		first = false

		// Decode the raw buffer.
	inner:
		for parser.raw_buffer_pos != len(parser.raw_buffer) {
			var value rune
			var width int

			raw := parser.raw_buffer[parser.raw_buffer_pos:]

			switch parser.encoding {
			case UTF8_ENCODING:
				octet := raw[0]
				switch {
				case octet&0x80 == 0x00:
					width = 1
					value = rune(octet & 0x7F)
				case octet&0xE0 == 0xC0:
					width = 2
					value = rune(octet & 0x1F)
				case octet&0xF0 == 0xE0:
					width = 3
					value = rune(octet & 0x0F)
				case octet&0xF8 == 0xF0:
					width = 4
					value = rune(octet & 0x07)
				default:
					parser.buffer = parser.buffer[:buffer_len]
					return parser.setReaderError("invalid leading UTF-8 octet", parser.offset, int(octet))
				}

				// Check if the raw buffer contains an incomplete character.
				if width > len(raw) {
					if parser.eof {
						parser.buffer = parser.buffer[:buffer_len]
						return parser.setReaderError("incomplete UTF-8 octet sequence", parser.offset, -1)
					}
					break inner
				}

				// Check and decode the trailing octets.
				for k := 1; k < width; k++ {
					octet = raw[k]
					if octet&0xC0 != 0x80 {
						parser.buffer = parser.buffer[:buffer_len]
						return parser.setReaderError("invalid trailing UTF-8 octet", parser.offset+k, int(octet))
					}
					value = (value << 6) + rune(octet&0x3F)
				}

				// Check the length of the sequence against the value.
				switch {
				case width == 1:
				case width == 2 && value >= 0x80:
				case width == 3 && value >= 0x800:
				case width == 4 && value >= 0x10000:
				default:
					parser.buffer = parser.buffer[:buffer_len]
					return parser.setReaderError("invalid length of a UTF-8 sequence", parser.offset, -1)
				}

				// Check the range of the value.
				if value >= 0xD800 && value <= 0xDFFF || value > 0x10FFFF {
					parser.buffer = parser.buffer[:buffer_len]
					return parser.setReaderError("invalid Unicode character", parser.offset, int(value))
				}

			case UTF16LE_ENCODING, UTF16BE_ENCODING:
				var low, high int
				if parser.encoding == UTF16LE_ENCODING {
					low, high = 0, 1
				} else {
					low, high = 1, 0
				}

				// Check for incomplete UTF-16 character.
				if len(raw) < 2 {
					if parser.eof {
						parser.buffer = parser.buffer[:buffer_len]
						return parser.setReaderError("incomplete UTF-16 character", parser.offset, -1)
					}
					break inner
				}

				value = rune(raw[low]) + (rune(raw[high]) << 8)

				// Check for unexpected low surrogate area.
				if value&0xFC00 == 0xDC00 {
					parser.buffer = parser.buffer[:buffer_len]
					return parser.setReaderError("unexpected low surrogate area", parser.offset, int(value))
				}

				// Check for a high surrogate area.
				if value&0xFC00 == 0xD800 {
					width = 4

					// Check for incomplete surrogate pair.
					if len(raw) < 4 {
						if parser.eof {
							parser.buffer = parser.buffer[:buffer_len]
							return parser.setReaderError("incomplete UTF-16 surrogate pair", parser.offset, -1)
						}
						break inner
					}

					value2 := rune(raw[low+2]) + (rune(raw[high+2]) << 8)
					if value2&0xFC00 != 0xDC00 {
						parser.buffer = parser.buffer[:buffer_len]
						return parser.setReaderError("expected low surrogate area", parser.offset+2, int(value2))
					}

					value = 0x10000 + ((value & 0x3FF) << 10) + (value2 & 0x3FF)
				} else {
					width = 2
				}

			case UTF32LE_ENCODING, UTF32BE_ENCODING:
				width = 4
				if len(raw) < 4 {
					if parser.eof {
						parser.buffer = parser.buffer[:buffer_len]
						return parser.setReaderError("incomplete UTF-32 character", parser.offset, -1)
					}
					break inner
				}
				if parser.encoding == UTF32LE_ENCODING {
					value = rune(raw[0]) | rune(raw[1])<<8 | rune(raw[2])<<16 | rune(raw[3])<<24
				} else {
					value = rune(raw[3]) | rune(raw[2])<<8 | rune(raw[1])<<16 | rune(raw[0])<<24
				}
				if value >= 0xD800 && value <= 0xDFFF || value > 0x10FFFF || value < 0 {
					parser.buffer = parser.buffer[:buffer_len]
					return parser.setReaderError("invalid Unicode character", parser.offset, int(value))
				}

			default:
				panic("impossible")
			}

			// Check if the character is in the allowed range.
			if !isAllowedChar(value) {
				parser.buffer = parser.buffer[:buffer_len]
				return parser.setReaderError("control characters are not allowed", parser.offset, int(value))
			}

			// Move the raw pointers.
			parser.raw_buffer_pos += width
			parser.offset += width

			// Finally put the character into the buffer.
			switch {
			case value <= 0x7F:
				parser.buffer[buffer_len+0] = byte(value)
				buffer_len += 1
			case value <= 0x7FF:
				parser.buffer[buffer_len+0] = byte(0xC0 + (value >> 6))
				parser.buffer[buffer_len+1] = byte(0x80 + (value & 0x3F))
				buffer_len += 2
			case value <= 0xFFFF:
				parser.buffer[buffer_len+0] = byte(0xE0 + (value >> 12))
				parser.buffer[buffer_len+1] = byte(0x80 + ((value >> 6) & 0x3F))
				parser.buffer[buffer_len+2] = byte(0x80 + (value & 0x3F))
				buffer_len += 3
			default:
				parser.buffer[buffer_len+0] = byte(0xF0 + (value >> 18))
				parser.buffer[buffer_len+1] = byte(0x80 + ((value >> 12) & 0x3F))
				parser.buffer[buffer_len+2] = byte(0x80 + ((value >> 6) & 0x3F))
				parser.buffer[buffer_len+3] = byte(0x80 + (value & 0x3F))
				buffer_len += 4
			}

			parser.unread++
		}

		// On EOF, put NUL into the buffer and return.
		if parser.eof {
			parser.buffer[buffer_len] = 0
			buffer_len++
			parser.unread++
			break
		}
	}

	// Lookahead past the end of the input must see NULs rather than run off
	// the end of the slice.
	for buffer_len < length {
		parser.buffer[buffer_len] = 0
		buffer_len++
	}
	parser.buffer = parser.buffer[:buffer_len]
	return nil
}
