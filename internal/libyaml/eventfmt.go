// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event text notation of the yaml-test-suite.
// One event per line: +STR, -STR, +DOC [---], -DOC [...], +MAP [{}] [&a]
// [<tag>], -MAP, +SEQ [[]] [&a] [<tag>], -SEQ, =VAL [&a] [<tag>] <style><value>
// and =ALI *a. Scalar values escape \\, \0, \b, \n, \r and \t.

package libyaml

import (
	"errors"
	"fmt"
	"strings"
)

var eventValueEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\x00", `\0`,
	"\b", `\b`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// ParserGetEvents parses in and returns its events in test-suite
// notation, one per line.
func ParserGetEvents(in []byte) (string, error) {
	p := NewParser()
	p.SetInputString(in)
	var events strings.Builder
	var event Event
	for {
		if err := p.Parse(&event); err != nil {
			return "", err
		}
		events.WriteString(FormatEvent(&event))
		if event.Type == STREAM_END_EVENT {
			break
		}
		events.WriteByte('\n')
	}
	return events.String(), nil
}

// FormatEvent formats an event as one line of test-suite notation.
func FormatEvent(e *Event) string {
	var b strings.Builder
	properties := func() {
		if len(e.Anchor) > 0 {
			b.WriteString(" &")
			b.Write(e.Anchor)
		}
		if len(e.Tag) > 0 {
			b.WriteString(" <")
			b.Write(e.Tag)
			b.WriteString(">")
		}
	}
	switch e.Type {
	case STREAM_START_EVENT:
		b.WriteString("+STR")
	case STREAM_END_EVENT:
		b.WriteString("-STR")
	case DOCUMENT_START_EVENT:
		b.WriteString("+DOC")
		if !e.Implicit {
			b.WriteString(" ---")
		}
	case DOCUMENT_END_EVENT:
		b.WriteString("-DOC")
		if !e.Implicit {
			b.WriteString(" ...")
		}
	case ALIAS_EVENT:
		b.WriteString("=ALI *")
		b.Write(e.Anchor)
	case SCALAR_EVENT:
		b.WriteString("=VAL")
		properties()
		switch e.ScalarStyle() {
		case LITERAL_SCALAR_STYLE:
			b.WriteString(" |")
		case FOLDED_SCALAR_STYLE:
			b.WriteString(" >")
		case SINGLE_QUOTED_SCALAR_STYLE:
			b.WriteString(" '")
		case DOUBLE_QUOTED_SCALAR_STYLE:
			b.WriteString(` "`)
		default:
			b.WriteString(" :")
		}
		b.WriteString(eventValueEscaper.Replace(string(e.Value)))
	case SEQUENCE_START_EVENT:
		b.WriteString("+SEQ")
		if e.SequenceStyle() == FLOW_SEQUENCE_STYLE {
			b.WriteString(" []")
		}
		properties()
	case SEQUENCE_END_EVENT:
		b.WriteString("-SEQ")
	case MAPPING_START_EVENT:
		b.WriteString("+MAP")
		if e.MappingStyle() == FLOW_MAPPING_STYLE {
			b.WriteString(" {}")
		}
		properties()
	case MAPPING_END_EVENT:
		b.WriteString("-MAP")
	}
	return b.String()
}

// ParseEventLine reads one line of test-suite notation back into an
// event. Events without a tag are implicit; scalars keep their style.
func ParseEventLine(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 4 {
		return Event{}, fmt.Errorf("yaml: unknown event %q", line)
	}
	kind, rest := line[:4], line[4:]
	switch kind {
	case "+STR":
		return NewStreamStartEvent(UTF8_ENCODING), nil
	case "-STR":
		return NewStreamEndEvent(), nil
	case "+DOC":
		return NewDocumentStartEvent(nil, nil, !strings.HasPrefix(rest, " ---")), nil
	case "-DOC":
		return NewDocumentEndEvent(!strings.HasPrefix(rest, " ...")), nil
	case "-SEQ":
		return NewSequenceEndEvent(), nil
	case "-MAP":
		return NewMappingEndEvent(), nil
	case "=ALI":
		name, ok := strings.CutPrefix(rest, " *")
		if !ok || name == "" {
			return Event{}, fmt.Errorf("yaml: alias without a name in %q", line)
		}
		return NewAliasEvent([]byte(name)), nil
	case "+SEQ", "+MAP":
		flow := false
		var anchor, tag []byte
		for _, field := range strings.Fields(rest) {
			switch {
			case field == "[]" || field == "{}":
				flow = true
			case strings.HasPrefix(field, "&"):
				anchor = []byte(field[1:])
			case strings.HasPrefix(field, "<") && strings.HasSuffix(field, ">"):
				tag = []byte(field[1 : len(field)-1])
			default:
				return Event{}, fmt.Errorf("yaml: unexpected %q in %q", field, line)
			}
		}
		implicit := len(tag) == 0
		if kind == "+SEQ" {
			style := BLOCK_SEQUENCE_STYLE
			if flow {
				style = FLOW_SEQUENCE_STYLE
			}
			return NewSequenceStartEvent(anchor, tag, implicit, style), nil
		}
		style := BLOCK_MAPPING_STYLE
		if flow {
			style = FLOW_MAPPING_STYLE
		}
		return NewMappingStartEvent(anchor, tag, implicit, style), nil
	case "=VAL":
		return parseScalarLine(line, rest)
	}
	return Event{}, fmt.Errorf("yaml: unknown event %q", line)
}

func parseScalarLine(line, rest string) (Event, error) {
	var anchor, tag []byte
	for {
		if !strings.HasPrefix(rest, " ") {
			return Event{}, fmt.Errorf("yaml: scalar without a value in %q", line)
		}
		rest = rest[1:]
		switch {
		case strings.HasPrefix(rest, "&"):
			name, tail, _ := strings.Cut(rest[1:], " ")
			anchor = []byte(name)
			rest = " " + tail
			continue
		case strings.HasPrefix(rest, "<"):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return Event{}, fmt.Errorf("yaml: unterminated tag in %q", line)
			}
			tag = []byte(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		break
	}
	if rest == "" {
		return Event{}, fmt.Errorf("yaml: scalar without a style in %q", line)
	}
	var style ScalarStyle
	switch rest[0] {
	case ':':
		style = PLAIN_SCALAR_STYLE
	case '\'':
		style = SINGLE_QUOTED_SCALAR_STYLE
	case '"':
		style = DOUBLE_QUOTED_SCALAR_STYLE
	case '|':
		style = LITERAL_SCALAR_STYLE
	case '>':
		style = FOLDED_SCALAR_STYLE
	default:
		return Event{}, fmt.Errorf("yaml: unknown scalar style %q in %q", rest[0], line)
	}
	value, err := unescapeEventValue(rest[1:])
	if err != nil {
		return Event{}, fmt.Errorf("yaml: %w in %q", err, line)
	}
	implicit := len(tag) == 0
	return NewScalarEvent(anchor, tag, value, implicit, implicit, style), nil
}

func unescapeEventValue(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			out = append(out, s[i])
			continue
		}
		i++
		if i == len(s) {
			return nil, errors.New("unterminated escape sequence")
		}
		switch s[i] {
		case '\\':
			out = append(out, '\\')
		case '0':
			out = append(out, 0)
		case 'b':
			out = append(out, '\b')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		default:
			return nil, fmt.Errorf("invalid escape character %q", s[i])
		}
	}
	return out, nil
}
