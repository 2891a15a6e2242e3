// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

const readerSample = "a: é\nb: [€, 😀]\n"

const readerSampleEvents = `+STR
+DOC
+MAP
=VAL :a
=VAL :é
=VAL :b
+SEQ []
=VAL :€
=VAL :😀
-SEQ
-MAP
-DOC
-STR`

func encodeSample(t *testing.T, enc Encoding, s string) []byte {
	t.Helper()
	var (
		out []byte
		err error
	)
	switch enc {
	case UTF8_ENCODING:
		return append([]byte(bom_UTF8), s...)
	case UTF16LE_ENCODING:
		out, err = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	case UTF16BE_ENCODING:
		out, err = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	case UTF32LE_ENCODING:
		out, err = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder().Bytes([]byte(s))
	case UTF32BE_ENCODING:
		out, err = utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder().Bytes([]byte(s))
	default:
		return []byte(s)
	}
	require.NoError(t, err)
	return out
}

func TestReaderEncodings(t *testing.T) {
	encodings := []Encoding{
		ANY_ENCODING,
		UTF8_ENCODING,
		UTF16LE_ENCODING,
		UTF16BE_ENCODING,
		UTF32LE_ENCODING,
		UTF32BE_ENCODING,
	}
	for _, enc := range encodings {
		t.Run(enc.String(), func(t *testing.T) {
			in := encodeSample(t, enc, readerSample)

			got, err := ParserGetEvents(in)
			require.NoError(t, err)
			assert.Equal(t, readerSampleEvents, got)

			// One byte at a time splits every multi-byte character.
			p := NewParser()
			p.SetInputReader(iotest.OneByteReader(bytes.NewReader(in)))
			var token Token
			require.NoError(t, p.Scan(&token))
			require.Equal(t, STREAM_START_TOKEN, token.Type)
			want := enc
			if want == ANY_ENCODING {
				want = UTF8_ENCODING
			}
			assert.Equal(t, want, token.Encoding)
			for token.Type != STREAM_END_TOKEN {
				require.NoError(t, p.Scan(&token))
			}
		})
	}
}

func TestReaderLongInput(t *testing.T) {
	// Longer than the raw buffer, with characters straddling refills.
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("- ж€😀\n")
	}
	in := encodeSample(t, UTF16LE_ENCODING, b.String())

	p := NewParser()
	p.SetInputReader(bytes.NewReader(in))
	var (
		event   Event
		scalars int
	)
	for {
		require.NoError(t, p.Parse(&event))
		if event.Type == SCALAR_EVENT {
			assert.Equal(t, "ж€😀", string(event.Value))
			scalars++
		}
		if event.Type == STREAM_END_EVENT {
			break
		}
	}
	assert.Equal(t, 200, scalars)
}

func TestReaderBOMInsideStream(t *testing.T) {
	got, err := ParserGetEvents([]byte("a\n---\n\ufeffb\n"))
	require.NoError(t, err)
	assert.Contains(t, got, "=VAL :b")
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		message string
		offset  int
		value   int
	}{
		{"invalid leading octet", []byte("a: \xff"), "invalid leading UTF-8 octet", 3, 0xff},
		{"invalid trailing octet", []byte("\xc3a"), "invalid trailing UTF-8 octet", 1, 'a'},
		{"incomplete sequence", []byte("a\xe2\x82"), "incomplete UTF-8 octet sequence", 1, -1},
		{"overlong sequence", []byte("\xc0\x80"), "invalid length of a UTF-8 sequence", 0, -1},
		{"encoded surrogate", []byte("\xed\xa0\x80"), "invalid Unicode character", 0, 0xd800},
		{"control character", []byte("a\x01"), "control characters are not allowed", 1, 1},
		{"odd UTF-16 length", []byte("\xff\xfea\x00b"), "incomplete UTF-16 character", 4, -1},
		{"lone low surrogate", []byte("\xff\xfe\x00\xdc"), "unexpected low surrogate area", 2, 0xdc00},
		{"unpaired high surrogate", []byte("\xff\xfe\x00\xd8a\x00"), "expected low surrogate area", 4, 'a'},
		{"truncated surrogate pair", []byte("\xff\xfe\x00\xd8"), "incomplete UTF-16 surrogate pair", 2, -1},
		{"truncated UTF-32", []byte("\xff\xfe\x00\x00a\x00"), "incomplete UTF-32 character", 4, -1},
		{"UTF-32 out of range", []byte("\x00\x00\xfe\xff\x00\x11\x00\x00"), "invalid Unicode character", 4, 0x110000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParserGetEvents(tt.in)
			var rerr ReaderError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.message, rerr.Err.Error())
			assert.Equal(t, tt.offset, rerr.Offset)
			assert.Equal(t, tt.value, rerr.Value)
		})
	}
}

func TestReaderInputError(t *testing.T) {
	boom := errors.New("boom")
	p := NewParser()
	p.SetInputReader(iotest.ErrReader(boom))

	var event Event
	err := p.Parse(&event)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var rerr ReaderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, -1, rerr.Value)

	// The failure is sticky.
	assert.Equal(t, err, p.Parse(&event))
}

func TestReaderSetInputTwice(t *testing.T) {
	p := NewParser()
	p.SetInputString([]byte("a"))
	assert.PanicsWithValue(t, "must set the input source only once", func() {
		p.SetInputReader(strings.NewReader("b"))
	})
}

func TestReaderForcedEncoding(t *testing.T) {
	in, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte("key: value\n"))
	require.NoError(t, err)

	p := NewParser()
	p.SetInputString(in)
	p.SetEncoding(UTF16BE_ENCODING)
	var token Token
	for token.Type != SCALAR_TOKEN {
		require.NoError(t, p.Scan(&token))
	}
	assert.Equal(t, "key", string(token.Value))
}
