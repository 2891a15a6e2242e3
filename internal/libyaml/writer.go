// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Output writer.
// Hands the UTF-8 working buffer to the write handler, transcoding it to
// UTF-16 when the stream encoding asks for it.

package libyaml

import (
	"golang.org/x/text/encoding/unicode"
)

// Flush the output buffer.
func (emitter *Emitter) flush() error {
	if emitter.write_handler == nil {
		panic("write handler not set")
	}

	// Check if the buffer is empty.
	if emitter.buffer_pos == 0 {
		return nil
	}

	out := emitter.buffer[:emitter.buffer_pos]
	if emitter.encoding == UTF16LE_ENCODING || emitter.encoding == UTF16BE_ENCODING {
		endianness := unicode.LittleEndian
		if emitter.encoding == UTF16BE_ENCODING {
			endianness = unicode.BigEndian
		}
		// The buffer only ever holds whole characters, so each flush
		// transcodes independently. The BOM is already in the buffer.
		encoded, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewEncoder().Bytes(out)
		if err != nil {
			return emitter.setWriterError(err)
		}
		out = encoded
	}

	if err := emitter.write_handler(emitter, out); err != nil {
		return emitter.setWriterError(err)
	}
	emitter.buffer_pos = 0
	return nil
}
