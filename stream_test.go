package yamlstream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.yaml.in/yamlstream"
)

// copyEvents feeds every event of p into e and flushes.
func copyEvents(t *testing.T, p *yamlstream.Parser, e *yamlstream.Emitter) {
	t.Helper()
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.NoError(t, e.Emit(event))
	}
	require.NoError(t, e.Flush())
}

func TestScannerNext(t *testing.T) {
	s := yamlstream.NewScanner(strings.NewReader("a: [b]\n"))
	var types []yamlstream.TokenType
	for {
		token, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		types = append(types, token.Type)
	}
	want := []yamlstream.TokenType{
		yamlstream.TokenStreamStart,
		yamlstream.TokenBlockMappingStart,
		yamlstream.TokenKey,
		yamlstream.TokenScalar,
		yamlstream.TokenValue,
		yamlstream.TokenFlowSequenceStart,
		yamlstream.TokenScalar,
		yamlstream.TokenFlowSequenceEnd,
		yamlstream.TokenBlockEnd,
		yamlstream.TokenStreamEnd,
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("token types (-want +got):\n%s", diff)
	}

	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestScannerError(t *testing.T) {
	s := yamlstream.NewScannerBytes([]byte("a: 'b"))
	var err error
	for err == nil {
		_, err = s.Next()
	}
	var serr yamlstream.ScannerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "found unexpected end of stream", serr.Message)
	assert.Equal(t, "while scanning a quoted scalar", serr.ContextMessage)

	_, again := s.Next()
	assert.Equal(t, err, again)
}

func TestParserNext(t *testing.T) {
	p := yamlstream.NewParser(strings.NewReader("- &x a\n- *x\n"))
	var got []string
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, yamlstream.FormatEvent(&event))
	}
	assert.Equal(t, []string{"+STR", "+DOC", "+SEQ", "=VAL &x :a", "=ALI *x", "-SEQ", "-DOC", "-STR"}, got)
}

func TestParserError(t *testing.T) {
	p := yamlstream.NewParserBytes([]byte("a: b\n c: d\n"))
	var err error
	for err == nil {
		_, err = p.Next()
	}
	var serr yamlstream.ScannerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "mapping values are not allowed in this context", serr.Message)
	assert.Equal(t, 1, serr.Mark.Line)
}

func TestParserInputFailure(t *testing.T) {
	boom := errors.New("connection reset")
	p := yamlstream.NewParser(io.MultiReader(strings.NewReader("a: b\n"), iotest.ErrReader(boom)))
	var err error
	for err == nil {
		_, err = p.Next()
	}
	assert.ErrorIs(t, err, boom)
	var rerr yamlstream.ReaderError
	assert.ErrorAs(t, err, &rerr)
}

func TestParserForcedEncoding(t *testing.T) {
	p := yamlstream.NewParserBytes([]byte("\x00a\x00:\x00 \x00b"))
	p.SetEncoding(yamlstream.EncodingUTF16BE)
	events, err := yamlstream.ParserGetEvents([]byte("a: b"))
	require.NoError(t, err)

	var got []string
	for {
		event, err := p.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, yamlstream.FormatEvent(&event))
	}
	assert.Equal(t, events, strings.Join(got, "\n"))
}

func TestEmitterProgrammatic(t *testing.T) {
	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf)
	require.NoError(t, err)

	str := func(v string) yamlstream.Event {
		return yamlstream.NewScalarEvent(nil, nil, []byte(v), true, true, yamlstream.ScalarStyleAny)
	}
	events := []yamlstream.Event{
		yamlstream.NewStreamStartEvent(yamlstream.EncodingUTF8),
		yamlstream.NewDocumentStartEvent(nil, nil, true),
		yamlstream.NewMappingStartEvent(nil, nil, true, yamlstream.MappingStyleBlock),
		str("name"),
		str("yamlstream"),
		str("enabled"),
		str("true"),
		str("tags"),
		yamlstream.NewSequenceStartEvent(nil, nil, true, yamlstream.SequenceStyleFlow),
		str("a"),
		str("b c"),
		yamlstream.NewSequenceEndEvent(),
		yamlstream.NewMappingEndEvent(),
		yamlstream.NewDocumentEndEvent(true),
		yamlstream.NewStreamEndEvent(),
	}
	for _, event := range events {
		require.NoError(t, e.Emit(event))
	}
	assert.Equal(t, "name: yamlstream\nenabled: 'true'\ntags: [a, b c]\n", buf.String())

	// An independent decoder reads back strings.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, map[string]any{
		"name":    "yamlstream",
		"enabled": "true",
		"tags":    []any{"a", "b c"},
	}, doc)
}

func TestEmitterError(t *testing.T) {
	e, err := yamlstream.NewEmitter(io.Discard)
	require.NoError(t, err)
	err = e.Emit(yamlstream.NewDocumentStartEvent(nil, nil, true))
	var eerr yamlstream.EmitterError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "expected STREAM-START", eerr.Message)
	assert.Equal(t, err, e.Flush())
}

func TestEmitterOptionError(t *testing.T) {
	e, err := yamlstream.NewEmitter(io.Discard, yamlstream.WithIndent(0))
	assert.Nil(t, e)
	assert.EqualError(t, err, "yaml: indent must be between 1 and 9, got 0")
}

func TestReformat(t *testing.T) {
	in := `%YAML 1.1
---
anchors:
  base: &base {x: 1, y: 2}
  copy: *base
text: |
  line one
  line two
quoted: "tab\there"
empty:
list:
- one
- two: 2
...
`
	want := `%YAML 1.1
---
anchors:
  base: &base {x: 1, y: 2}
  copy: *base
text: |
  line one
  line two
quoted: "tab\there"
empty:
list:
- one
- two: 2
...
`
	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf)
	require.NoError(t, err)
	copyEvents(t, yamlstream.NewParserBytes([]byte(in)), e)
	assert.Equal(t, want, buf.String())

	// Both texts decode to the same data.
	var a, b any
	require.NoError(t, yaml.Unmarshal([]byte(in), &a))
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &b))
	assert.Equal(t, a, b)
}

func TestReformatRedefinedAnchor(t *testing.T) {
	// A later anchor with the same name replaces the earlier one.
	in := "- &a 1\n- &a 2\n- *a\n"
	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf)
	require.NoError(t, err)
	copyEvents(t, yamlstream.NewParserBytes([]byte(in)), e)
	assert.Equal(t, in, buf.String())
}
