// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Scanner stage: turns the decoded character buffer into tokens.
//
// The scanner is the most involved part of the engine. It tracks the
// indentation stack to produce BLOCK-SEQUENCE-START, BLOCK-MAPPING-START and
// BLOCK-END tokens, and it keeps a stack of simple key candidates (one per
// flow level) so that a KEY token can be inserted into the queue once the
// ':' indicator that proves a key is found.
//
// For example, the input
//
//	key:
//	  - item 1
//	  - item 2
//
// is scanned into
//
//	STREAM-START(utf-8)
//	BLOCK-MAPPING-START
//	KEY
//	SCALAR("key",plain)
//	VALUE
//	BLOCK-SEQUENCE-START
//	BLOCK-ENTRY
//	SCALAR("item 1",plain)
//	BLOCK-ENTRY
//	SCALAR("item 2",plain)
//	BLOCK-END
//	BLOCK-END
//	STREAM-END
//
// Comments are skipped; no comment tokens are produced.

package libyaml

import (
	"bytes"
	"fmt"
	"io"
)

// Scan gets the next token.
// It returns io.EOF once the STREAM-END token has been returned, and the
// first error again on every call after a failure.
func (parser *Parser) Scan(token *Token) error {
	*token = Token{}

	if parser.lastError != nil {
		return parser.lastError
	}

	// No tokens after STREAM-END.
	if parser.stream_end_produced {
		return io.EOF
	}

	// Ensure that the tokens queue contains enough tokens.
	if !parser.token_available {
		if err := parser.fetchMoreTokens(); err != nil {
			return err
		}
	}

	// Fetch the next token from the queue.
	*token = parser.tokens[parser.tokens_head]
	parser.tokens_head++
	parser.tokens_parsed++
	parser.token_available = false

	if token.Type == STREAM_END_TOKEN {
		parser.stream_end_produced = true
	}
	return nil
}

// cache ensures that the buffer holds at least n characters.
func (parser *Parser) cache(n int) error {
	if parser.unread >= n {
		return nil
	}
	return parser.updateBuffer(n)
}

// Advance the buffer pointer.
func (parser *Parser) skip() {
	w := width(parser.buffer[parser.buffer_pos])
	parser.mark.Index += w
	parser.mark.Column++
	parser.unread--
	parser.buffer_pos += w
}

// Advance the buffer pointer past a line break.
func (parser *Parser) skipLine() {
	if isCRLF(parser.buffer, parser.buffer_pos) {
		parser.mark.Index += 2
		parser.mark.Column = 0
		parser.mark.Line++
		parser.unread -= 2
		parser.buffer_pos += 2
	} else if isLineBreak(parser.buffer, parser.buffer_pos) {
		w := width(parser.buffer[parser.buffer_pos])
		parser.mark.Index += w
		parser.mark.Column = 0
		parser.mark.Line++
		parser.unread--
		parser.buffer_pos += w
	}
}

// Copy a character to a string buffer and advance pointers.
func (parser *Parser) read(s []byte) []byte {
	w := width(parser.buffer[parser.buffer_pos])
	if w == 0 {
		panic("invalid character sequence")
	}
	if len(s) == 0 {
		s = make([]byte, 0, 32)
	}
	s = append(s, parser.buffer[parser.buffer_pos:parser.buffer_pos+w]...)
	parser.buffer_pos += w
	parser.mark.Index += w
	parser.mark.Column++
	parser.unread--
	return s
}

// Copy a line break character to a string buffer and advance pointers.
// CR LF, CR and NEL are normalized to LF; LS and PS are kept as they are.
func (parser *Parser) readLine(s []byte) []byte {
	buf := parser.buffer
	pos := parser.buffer_pos
	var n int
	switch {
	case buf[pos] == '\r' && buf[pos+1] == '\n':
		s = append(s, '\n')
		n = 2
		// CR LF counts as one character.
		parser.unread--
	case buf[pos] == '\r' || buf[pos] == '\n':
		s = append(s, '\n')
		n = 1
	case buf[pos] == '\xC2' && buf[pos+1] == '\x85':
		s = append(s, '\n')
		n = 2
	case buf[pos] == '\xE2' && buf[pos+1] == '\x80' && (buf[pos+2] == '\xA8' || buf[pos+2] == '\xA9'):
		s = append(s, buf[pos:pos+3]...)
		n = 3
	default:
		return s
	}
	parser.buffer_pos += n
	parser.mark.Index += n
	parser.mark.Column = 0
	parser.mark.Line++
	parser.unread--
	return s
}

// atDocumentIndicator reports a '---' or '...' marker at the start of a line.
// The buffer must hold at least 4 characters.
func (parser *Parser) atDocumentIndicator() bool {
	if parser.mark.Column != 0 {
		return false
	}
	buf, pos := parser.buffer, parser.buffer_pos
	dashes := buf[pos] == '-' && buf[pos+1] == '-' && buf[pos+2] == '-'
	dots := buf[pos] == '.' && buf[pos+1] == '.' && buf[pos+2] == '.'
	return (dashes || dots) && isBlankOrZero(buf, pos+3)
}

// skipBlanks eats spaces and tabs.
func (parser *Parser) skipBlanks() error {
	if err := parser.cache(1); err != nil {
		return err
	}
	for isBlank(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.cache(1); err != nil {
			return err
		}
	}
	return nil
}

// skipToBreak eats everything up to, but not including, the next line
// break or the end of the stream.
func (parser *Parser) skipToBreak() error {
	if err := parser.cache(1); err != nil {
		return err
	}
	for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.cache(1); err != nil {
			return err
		}
	}
	return nil
}

func (parser *Parser) scannerError(problem string, problem_mark Mark) error {
	return parser.setScannerError("", problem_mark, problem, problem_mark)
}

func (parser *Parser) scannerErrorContext(context string, context_mark Mark, problem string) error {
	return parser.setScannerError(context, context_mark, problem, parser.mark)
}

func (parser *Parser) setScannerTagError(directive bool, context_mark Mark, problem string) error {
	context := "while parsing a tag"
	if directive {
		context = "while parsing a %TAG directive"
	}
	return parser.scannerErrorContext(context, context_mark, problem)
}

// Ensure that the tokens queue contains at least one token which can be
// returned to the Parser.
func (parser *Parser) fetchMoreTokens() error {
	for {
		need_more := false
		if parser.tokens_head == len(parser.tokens) {
			// The queue is empty.
			need_more = true
		} else if i, ok := parser.simple_keys_by_tok[parser.tokens_parsed]; ok {
			// The head token may still turn out to be a simple key, so
			// the KEY token could have to be inserted before it.
			valid, err := parser.simpleKeyIsValid(&parser.simple_keys[i])
			if err != nil {
				return err
			}
			need_more = valid
		}
		if !need_more {
			break
		}
		if err := parser.fetchNextToken(); err != nil {
			return err
		}
	}
	parser.token_available = true
	return nil
}

// The dispatcher for token fetchers.
func (parser *Parser) fetchNextToken() error {
	// Ensure that the buffer is initialized.
	if err := parser.cache(1); err != nil {
		return err
	}

	// Check if we just started scanning. Fetch STREAM-START then.
	if !parser.stream_start_produced {
		return parser.fetchStreamStart()
	}

	scan_mark := parser.mark

	// Eat whitespaces and comments until we reach the next token.
	if err := parser.scanToNextToken(); err != nil {
		return err
	}

	// Check the indentation level against the current column.
	parser.unrollIndent(parser.mark.Column, scan_mark)

	// Ensure that the buffer contains at least 4 characters. 4 is the length
	// of the longest indicators ('--- ' and '... ').
	if err := parser.cache(4); err != nil {
		return err
	}

	buf, pos := parser.buffer, parser.buffer_pos

	// Is it the end of the stream?
	if isZeroChar(buf, pos) {
		return parser.fetchStreamEnd()
	}

	// Is it a directive?
	if parser.mark.Column == 0 && buf[pos] == '%' {
		return parser.fetchDirective()
	}

	// Is it a document start or end indicator?
	if parser.atDocumentIndicator() {
		if buf[pos] == '-' {
			return parser.fetchDocumentIndicator(DOCUMENT_START_TOKEN)
		}
		return parser.fetchDocumentIndicator(DOCUMENT_END_TOKEN)
	}

	switch buf[pos] {
	case '[':
		return parser.fetchFlowCollectionStart(FLOW_SEQUENCE_START_TOKEN)
	case '{':
		return parser.fetchFlowCollectionStart(FLOW_MAPPING_START_TOKEN)
	case ']':
		return parser.fetchFlowCollectionEnd(FLOW_SEQUENCE_END_TOKEN)
	case '}':
		return parser.fetchFlowCollectionEnd(FLOW_MAPPING_END_TOKEN)
	case ',':
		return parser.fetchFlowEntry()
	case '-':
		if isBlankOrZero(buf, pos+1) {
			return parser.fetchBlockEntry()
		}
	case '?':
		if isBlankOrZero(buf, pos+1) {
			return parser.fetchKey()
		}
	case ':':
		// In the flow context a ':' right after a key is a value indicator
		// even without a following blank ({"a":b}), but not right after
		// '[' or ',' where it starts a plain scalar.
		if parser.flow_level > 0 && !parser.afterFlowEntryStart() || isBlankOrZero(buf, pos+1) {
			return parser.fetchValue()
		}
	case '*':
		return parser.fetchAnchor(ALIAS_TOKEN)
	case '&':
		return parser.fetchAnchor(ANCHOR_TOKEN)
	case '!':
		return parser.fetchTag()
	case '|':
		if parser.flow_level == 0 {
			return parser.fetchBlockScalar(true)
		}
	case '>':
		if parser.flow_level == 0 {
			return parser.fetchBlockScalar(false)
		}
	case '\'':
		return parser.fetchFlowScalar(true)
	case '"':
		return parser.fetchFlowScalar(false)
	}

	// Is it a plain scalar?
	//
	// A plain scalar may start with any non-blank character except the
	// indicators
	//
	//	'-', '?', ':', ',', '[', ']', '{', '}',
	//	'#', '&', '*', '!', '|', '>', '\'', '"',
	//	'%', '@', '`'.
	//
	// It may also start with '-', '?' or ':' if it is followed by a
	// non-blank character.
	if parser.canStartPlainScalar() {
		return parser.fetchPlainScalar()
	}

	// If we don't determine the token type so far, it is an error.
	return parser.scannerErrorContext("while scanning for the next token", parser.mark,
		"found character that cannot start any token")
}

func (parser *Parser) canStartPlainScalar() bool {
	buf, pos := parser.buffer, parser.buffer_pos
	if isBlankOrZero(buf, pos) {
		return false
	}
	switch buf[pos] {
	case '-', '?', ':':
		return !isBlankOrZero(buf, pos+1)
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	}
	return true
}

// afterFlowEntryStart reports whether the last queued token opened a flow
// sequence or separated two of its entries.
func (parser *Parser) afterFlowEntryStart() bool {
	if len(parser.tokens) == 0 {
		return false
	}
	switch parser.tokens[len(parser.tokens)-1].Type {
	case FLOW_ENTRY_TOKEN, FLOW_SEQUENCE_START_TOKEN:
		return true
	}
	return false
}

// simpleKeyIsValid checks whether a simple key candidate is still possible.
//
// A simple key is restricted to a single line, and the ':' indicator must
// appear at most 1024 characters after its start. A required candidate
// that goes stale is an error.
func (parser *Parser) simpleKeyIsValid(simple_key *SimpleKey) (bool, error) {
	if !simple_key.possible {
		return false, nil
	}

	if simple_key.mark.Line < parser.mark.Line || simple_key.mark.Index+1024 < parser.mark.Index {
		if simple_key.required {
			return false, parser.setScannerError(
				"while scanning a simple key", simple_key.mark,
				"could not find expected ':'", parser.mark)
		}
		simple_key.possible = false
		delete(parser.simple_keys_by_tok, simple_key.token_number)
		return false, nil
	}
	return true, nil
}

// Check if a simple key may start at the current position and add it if
// needed.
func (parser *Parser) saveSimpleKey() error {
	// A simple key is required at the current position if the scanner is in
	// the block context and the current column coincides with the indentation
	// level.
	required := parser.flow_level == 0 && parser.indent == parser.mark.Column

	if !parser.simple_key_allowed {
		return nil
	}

	simple_key := SimpleKey{
		possible:     true,
		required:     required,
		token_number: parser.tokens_parsed + (len(parser.tokens) - parser.tokens_head),
		mark:         parser.mark,
	}

	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_keys[len(parser.simple_keys)-1] = simple_key
	parser.simple_keys_by_tok[simple_key.token_number] = len(parser.simple_keys) - 1
	return nil
}

// Remove a potential simple key at the current flow level.
func (parser *Parser) removeSimpleKey() error {
	i := len(parser.simple_keys) - 1
	if parser.simple_keys[i].possible {
		// If the key is required, it is an error.
		if parser.simple_keys[i].required {
			return parser.setScannerError(
				"while scanning a simple key", parser.simple_keys[i].mark,
				"could not find expected ':'", parser.mark)
		}
		parser.simple_keys[i].possible = false
		delete(parser.simple_keys_by_tok, parser.simple_keys[i].token_number)
	}
	return nil
}

// max_flow_level limits the flow_level
const max_flow_level = 10000

// Increase the flow level and push an empty simple key for it.
func (parser *Parser) increaseFlowLevel() error {
	parser.simple_keys = append(parser.simple_keys, SimpleKey{
		token_number: parser.tokens_parsed + (len(parser.tokens) - parser.tokens_head),
		mark:         parser.mark,
	})

	parser.flow_level++
	if parser.flow_level > max_flow_level {
		return parser.setScannerError(
			"while increasing flow level", parser.simple_keys[len(parser.simple_keys)-1].mark,
			fmt.Sprintf("exceeded max depth of %d", max_flow_level), parser.mark)
	}
	return nil
}

// Decrease the flow level.
func (parser *Parser) decreaseFlowLevel() {
	if parser.flow_level > 0 {
		parser.flow_level--
		last := len(parser.simple_keys) - 1
		delete(parser.simple_keys_by_tok, parser.simple_keys[last].token_number)
		parser.simple_keys = parser.simple_keys[:last]
	}
}

// max_indents limits the indents stack size
const max_indents = 10000

// Push the current indentation level to the stack and set the new level
// if the current column is greater than the indentation level. In this
// case, append or insert the specified token into the token queue.
func (parser *Parser) rollIndent(column, number int, typ TokenType, mark Mark) error {
	// In the flow context, do nothing.
	if parser.flow_level > 0 {
		return nil
	}

	if parser.indent < column {
		parser.indents = append(parser.indents, parser.indent)
		parser.indent = column
		if len(parser.indents) > max_indents {
			return parser.setScannerError(
				"while increasing indent level", mark,
				fmt.Sprintf("exceeded max depth of %d", max_indents), parser.mark)
		}

		token := Token{
			Type:      typ,
			StartMark: mark,
			EndMark:   mark,
		}
		if number > -1 {
			number -= parser.tokens_parsed
		}
		parser.insertToken(number, &token)
	}
	return nil
}

// Pop indentation levels from the indents stack until the current level
// becomes less or equal to the column. For each indentation level, append
// the BLOCK-END token.
func (parser *Parser) unrollIndent(column int, scan_mark Mark) {
	// In the flow context, do nothing.
	if parser.flow_level > 0 {
		return
	}

	for parser.indent > column {
		token := Token{
			Type:      BLOCK_END_TOKEN,
			StartMark: scan_mark,
			EndMark:   scan_mark,
		}
		parser.insertToken(-1, &token)

		parser.indent = parser.indents[len(parser.indents)-1]
		parser.indents = parser.indents[:len(parser.indents)-1]
	}
}

// Initialize the scanner and produce the STREAM-START token.
func (parser *Parser) fetchStreamStart() error {
	// Set the initial indentation.
	parser.indent = -1

	// Initialize the simple key stack.
	parser.simple_keys = append(parser.simple_keys, SimpleKey{})
	parser.simple_keys_by_tok = make(map[int]int)

	// A simple key is allowed at the beginning of the stream.
	parser.simple_key_allowed = true

	parser.stream_start_produced = true

	token := Token{
		Type:      STREAM_START_TOKEN,
		StartMark: parser.mark,
		EndMark:   parser.mark,
		Encoding:  parser.encoding,
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce the STREAM-END token and shut down the scanner.
func (parser *Parser) fetchStreamEnd() error {
	// Force new line.
	if parser.mark.Column != 0 {
		parser.mark.Column = 0
		parser.mark.Line++
	}

	// Reset the indentation level.
	parser.unrollIndent(-1, parser.mark)

	// Reset simple keys.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	token := Token{
		Type:      STREAM_END_TOKEN,
		StartMark: parser.mark,
		EndMark:   parser.mark,
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce a VERSION-DIRECTIVE or TAG-DIRECTIVE token.
func (parser *Parser) fetchDirective() error {
	// Reset the indentation level.
	parser.unrollIndent(-1, parser.mark)

	// Reset simple keys.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	var token Token
	known, err := parser.scanDirective(&token)
	if err != nil {
		return err
	}
	if known {
		parser.insertToken(-1, &token)
	}
	return nil
}

// Produce the DOCUMENT-START or DOCUMENT-END token.
func (parser *Parser) fetchDocumentIndicator(typ TokenType) error {
	// Reset the indentation level.
	parser.unrollIndent(-1, parser.mark)

	// Reset simple keys.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	start_mark := parser.mark
	parser.skip()
	parser.skip()
	parser.skip()
	end_mark := parser.mark

	token := Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	parser.insertToken(-1, &token)
	return nil
}

// fetchIndicator consumes a one-character indicator and queues its token.
func (parser *Parser) fetchIndicator(typ TokenType) {
	start_mark := parser.mark
	parser.skip()
	end_mark := parser.mark

	token := Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
	}
	parser.insertToken(-1, &token)
}

// Produce the FLOW-SEQUENCE-START or FLOW-MAPPING-START token.
func (parser *Parser) fetchFlowCollectionStart(typ TokenType) error {
	// The indicators '[' and '{' may start a simple key.
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}

	if err := parser.increaseFlowLevel(); err != nil {
		return err
	}

	// A simple key may follow the indicators '[' and '{'.
	parser.simple_key_allowed = true

	parser.fetchIndicator(typ)
	return nil
}

// Produce the FLOW-SEQUENCE-END or FLOW-MAPPING-END token.
func (parser *Parser) fetchFlowCollectionEnd(typ TokenType) error {
	// Reset any potential simple key on the current flow level.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}

	parser.decreaseFlowLevel()

	// No simple keys after the indicators ']' and '}'.
	parser.simple_key_allowed = false

	parser.fetchIndicator(typ)
	return nil
}

// Produce the FLOW-ENTRY token.
func (parser *Parser) fetchFlowEntry() error {
	// Reset any potential simple keys on the current flow level.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after ','.
	parser.simple_key_allowed = true

	parser.fetchIndicator(FLOW_ENTRY_TOKEN)
	return nil
}

// Produce the BLOCK-ENTRY token.
func (parser *Parser) fetchBlockEntry() error {
	// In the flow context a '-' indicator is left to the parser, which can
	// point to the enclosing collection in its error.
	if parser.flow_level == 0 {
		// Check if we are allowed to start a new entry.
		if !parser.simple_key_allowed {
			return parser.scannerError("block sequence entries are not allowed in this context", parser.mark)
		}
		// Add the BLOCK-SEQUENCE-START token if needed.
		if err := parser.rollIndent(parser.mark.Column, -1, BLOCK_SEQUENCE_START_TOKEN, parser.mark); err != nil {
			return err
		}
	}

	// Reset any potential simple keys on the current flow level.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after '-'.
	parser.simple_key_allowed = true

	parser.fetchIndicator(BLOCK_ENTRY_TOKEN)
	return nil
}

// Produce the KEY token.
func (parser *Parser) fetchKey() error {
	// In the block context, additional checks are required.
	if parser.flow_level == 0 {
		// Check if we are allowed to start a new key (not necessary simple).
		if !parser.simple_key_allowed {
			return parser.scannerError("mapping keys are not allowed in this context", parser.mark)
		}
		// Add the BLOCK-MAPPING-START token if needed.
		if err := parser.rollIndent(parser.mark.Column, -1, BLOCK_MAPPING_START_TOKEN, parser.mark); err != nil {
			return err
		}
	}

	// Reset any potential simple keys on the current flow level.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}

	// Simple keys are allowed after '?' in the block context.
	parser.simple_key_allowed = parser.flow_level == 0

	parser.fetchIndicator(KEY_TOKEN)
	return nil
}

// Produce the VALUE token.
func (parser *Parser) fetchValue() error {
	simple_key := &parser.simple_keys[len(parser.simple_keys)-1]

	// Have we found a simple key?
	valid, err := parser.simpleKeyIsValid(simple_key)
	if err != nil {
		return err
	}
	if valid {
		// Create the KEY token and insert it into the queue.
		token := Token{
			Type:      KEY_TOKEN,
			StartMark: simple_key.mark,
			EndMark:   simple_key.mark,
		}
		parser.insertToken(simple_key.token_number-parser.tokens_parsed, &token)

		// In the block context, we may need to add the BLOCK-MAPPING-START token.
		if err := parser.rollIndent(simple_key.mark.Column,
			simple_key.token_number,
			BLOCK_MAPPING_START_TOKEN, simple_key.mark); err != nil {
			return err
		}

		// Remove the simple key.
		simple_key.possible = false
		delete(parser.simple_keys_by_tok, simple_key.token_number)

		// A simple key cannot follow another simple key.
		parser.simple_key_allowed = false
	} else {
		// The ':' indicator follows a complex key.
		if parser.flow_level == 0 {
			// Check if we are allowed to start a complex value.
			if !parser.simple_key_allowed {
				return parser.scannerError("mapping values are not allowed in this context", parser.mark)
			}

			// Add the BLOCK-MAPPING-START token if needed.
			if err := parser.rollIndent(parser.mark.Column, -1, BLOCK_MAPPING_START_TOKEN, parser.mark); err != nil {
				return err
			}
		}

		// Simple keys after ':' are allowed in the block context.
		parser.simple_key_allowed = parser.flow_level == 0
	}

	parser.fetchIndicator(VALUE_TOKEN)
	return nil
}

// Produce the ALIAS or ANCHOR token.
func (parser *Parser) fetchAnchor(typ TokenType) error {
	// An anchor or an alias could be a simple key.
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow an anchor or an alias.
	parser.simple_key_allowed = false

	var token Token
	if err := parser.scanAnchor(&token, typ); err != nil {
		return err
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce the TAG token.
func (parser *Parser) fetchTag() error {
	// A tag could be a simple key.
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a tag.
	parser.simple_key_allowed = false

	var token Token
	if err := parser.scanTag(&token); err != nil {
		return err
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,literal) or SCALAR(...,folded) tokens.
func (parser *Parser) fetchBlockScalar(literal bool) error {
	// Remove any potential simple keys.
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}

	// A simple key may follow a block scalar.
	parser.simple_key_allowed = true

	var token Token
	if err := parser.scanBlockScalar(&token, literal); err != nil {
		return err
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,single-quoted) or SCALAR(...,double-quoted) tokens.
func (parser *Parser) fetchFlowScalar(single bool) error {
	// A quoted scalar could be a simple key.
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a flow scalar.
	parser.simple_key_allowed = false

	var token Token
	if err := parser.scanFlowScalar(&token, single); err != nil {
		return err
	}
	parser.insertToken(-1, &token)
	return nil
}

// Produce the SCALAR(...,plain) token.
func (parser *Parser) fetchPlainScalar() error {
	// A plain scalar could be a simple key.
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}

	// A simple key cannot follow a plain scalar.
	parser.simple_key_allowed = false

	var token Token
	if err := parser.scanPlainScalar(&token); err != nil {
		return err
	}
	parser.insertToken(-1, &token)
	return nil
}

// Eat whitespaces and comments until the next token is found.
//
// Tabs are separation space everywhere except in the indentation of a block
// context line: a tab there is an error unless the line turns out to be
// empty or a comment.
func (parser *Parser) scanToNextToken() error {
	for {
		// Allow the BOM mark to start a line.
		if err := parser.cache(1); err != nil {
			return err
		}
		if parser.mark.Column == 0 && isBOM(parser.buffer, parser.buffer_pos) {
			parser.skip()
		}

		if err := parser.cache(1); err != nil {
			return err
		}

		// Eat whitespaces, remembering a tab found in the indentation.
		indentation := parser.mark.Column == 0 && parser.flow_level == 0 && parser.simple_key_allowed
		var tab_mark Mark
		found_tab := false
		for isBlank(parser.buffer, parser.buffer_pos) {
			if indentation && !found_tab && isTab(parser.buffer, parser.buffer_pos) {
				found_tab = true
				tab_mark = parser.mark
			}
			parser.skip()
			if err := parser.cache(1); err != nil {
				return err
			}
		}

		// Eat a comment until a line break.
		if parser.buffer[parser.buffer_pos] == '#' {
			if err := parser.skipToBreak(); err != nil {
				return err
			}
		}

		if found_tab && !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			return parser.setScannerError("while scanning for the next token", tab_mark,
				"found a tab character where an indentation space is expected", tab_mark)
		}

		// If it is a line break, eat it.
		if !isLineBreak(parser.buffer, parser.buffer_pos) {
			break
		}
		if err := parser.cache(2); err != nil {
			return err
		}
		parser.skipLine()

		// In the block context, a new line may start a simple key.
		if parser.flow_level == 0 {
			parser.simple_key_allowed = true
		}
	}
	return nil
}

// Scan a YAML-DIRECTIVE or TAG-DIRECTIVE token. Reserved directives with
// other names are skipped to the end of the line and known is false.
//
// Scope:
//
//	%YAML    1.1    # a comment \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (parser *Parser) scanDirective(token *Token) (known bool, err error) {
	// Eat '%'.
	start_mark := parser.mark
	parser.skip()

	// Scan the directive name.
	var name []byte
	if err := parser.scanDirectiveName(start_mark, &name); err != nil {
		return false, err
	}

	switch {
	case bytes.Equal(name, []byte("YAML")):
		var major, minor int8
		if err := parser.scanVersionDirectiveValue(start_mark, &major, &minor); err != nil {
			return false, err
		}
		*token = Token{
			Type:      VERSION_DIRECTIVE_TOKEN,
			StartMark: start_mark,
			EndMark:   parser.mark,
			Major:     major,
			Minor:     minor,
		}
		known = true

	case bytes.Equal(name, []byte("TAG")):
		var handle, prefix []byte
		if err := parser.scanTagDirectiveValue(start_mark, &handle, &prefix); err != nil {
			return false, err
		}
		*token = Token{
			Type:      TAG_DIRECTIVE_TOKEN,
			StartMark: start_mark,
			EndMark:   parser.mark,
			Value:     handle,
			Prefix:    prefix,
		}
		known = true

	default:
		// A reserved directive: ignore its parameters.
		if err := parser.skipToBreak(); err != nil {
			return false, err
		}
	}

	// Eat the rest of the line including any comments.
	if err := parser.skipBlanks(); err != nil {
		return false, err
	}
	if parser.buffer[parser.buffer_pos] == '#' {
		if err := parser.skipToBreak(); err != nil {
			return false, err
		}
	}

	// Check if we are at the end of the line.
	if !isBreakOrZero(parser.buffer, parser.buffer_pos) {
		return false, parser.scannerErrorContext("while scanning a directive", start_mark,
			"did not find expected comment or line break")
	}

	// Eat a line break.
	if isLineBreak(parser.buffer, parser.buffer_pos) {
		if err := parser.cache(2); err != nil {
			return false, err
		}
		parser.skipLine()
	}
	return known, nil
}

// Scan the directive name.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	 ^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	 ^^^
func (parser *Parser) scanDirectiveName(start_mark Mark, name *[]byte) error {
	if err := parser.cache(1); err != nil {
		return err
	}

	var s []byte
	for isAlpha(parser.buffer, parser.buffer_pos) {
		s = parser.read(s)
		if err := parser.cache(1); err != nil {
			return err
		}
	}

	// Check if the name is empty.
	if len(s) == 0 {
		return parser.scannerErrorContext("while scanning a directive", start_mark,
			"could not find expected directive name")
	}

	// Check for a blank character after the name.
	if !isBlankOrZero(parser.buffer, parser.buffer_pos) {
		return parser.scannerErrorContext("while scanning a directive", start_mark,
			"found unexpected non-alphabetical character")
	}
	*name = s
	return nil
}

// Scan the value of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	     ^^^^^^
func (parser *Parser) scanVersionDirectiveValue(start_mark Mark, major, minor *int8) error {
	if err := parser.skipBlanks(); err != nil {
		return err
	}

	// Consume the major version number.
	if err := parser.scanVersionDirectiveNumber(start_mark, major); err != nil {
		return err
	}

	// Eat '.'.
	if parser.buffer[parser.buffer_pos] != '.' {
		return parser.scannerErrorContext("while scanning a %YAML directive", start_mark,
			"did not find expected digit or '.' character")
	}
	parser.skip()

	// Consume the minor version number.
	return parser.scanVersionDirectiveNumber(start_mark, minor)
}

const max_number_length = 2

// Scan the version number of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	        ^
//	%YAML   1.1     # a comment \n
//	          ^
func (parser *Parser) scanVersionDirectiveNumber(start_mark Mark, number *int8) error {
	if err := parser.cache(1); err != nil {
		return err
	}

	var value, length int8
	for isDigit(parser.buffer, parser.buffer_pos) {
		// Check if the number is too long.
		length++
		if length > max_number_length {
			return parser.scannerErrorContext("while scanning a %YAML directive", start_mark,
				"found extremely long version number")
		}
		value = value*10 + int8(asDigit(parser.buffer, parser.buffer_pos))
		parser.skip()
		if err := parser.cache(1); err != nil {
			return err
		}
	}

	// Check if the number was present.
	if length == 0 {
		return parser.scannerErrorContext("while scanning a %YAML directive", start_mark,
			"did not find expected version number")
	}
	*number = value
	return nil
}

// Scan the value of a TAG-DIRECTIVE token.
//
// Scope:
//
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	    ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (parser *Parser) scanTagDirectiveValue(start_mark Mark, handle, prefix *[]byte) error {
	var handle_value, prefix_value []byte

	if err := parser.skipBlanks(); err != nil {
		return err
	}

	// Scan a handle.
	if err := parser.scanTagHandle(true, start_mark, &handle_value); err != nil {
		return err
	}

	// Expect a whitespace.
	if err := parser.cache(1); err != nil {
		return err
	}
	if !isBlank(parser.buffer, parser.buffer_pos) {
		return parser.scannerErrorContext("while scanning a %TAG directive", start_mark,
			"did not find expected whitespace")
	}

	if err := parser.skipBlanks(); err != nil {
		return err
	}

	// Scan a prefix. Flow indicators are allowed in a prefix.
	if err := parser.scanTagURI(true, true, nil, start_mark, &prefix_value); err != nil {
		return err
	}

	// Expect a whitespace or line break.
	if err := parser.cache(1); err != nil {
		return err
	}
	if !isBlankOrZero(parser.buffer, parser.buffer_pos) {
		return parser.scannerErrorContext("while scanning a %TAG directive", start_mark,
			"did not find expected whitespace or line break")
	}

	*handle = handle_value
	*prefix = prefix_value
	return nil
}

// anchorTerminator reports a character that may follow an anchor or alias
// name: a blank, a line break, the end of the stream or one of
// '?', ':', ',', ']', '}', '%', '@', '`'.
func anchorTerminator(b []byte, i int) bool {
	if isBlankOrZero(b, i) {
		return true
	}
	switch b[i] {
	case '?', ':', ',', ']', '}', '%', '@', '`':
		return true
	}
	return false
}

func (parser *Parser) scanAnchor(token *Token, typ TokenType) error {
	var s []byte

	// Eat the indicator character.
	start_mark := parser.mark
	parser.skip()

	// Consume the value.
	if err := parser.cache(1); err != nil {
		return err
	}
	for isAnchorChar(parser.buffer, parser.buffer_pos) {
		s = parser.read(s)
		if err := parser.cache(1); err != nil {
			return err
		}
	}

	end_mark := parser.mark

	if len(s) == 0 || !anchorTerminator(parser.buffer, parser.buffer_pos) {
		context := "while scanning an alias"
		if typ == ANCHOR_TOKEN {
			context = "while scanning an anchor"
		}
		return parser.scannerErrorContext(context, start_mark,
			"did not find expected alphabetic or numeric character")
	}

	*token = Token{
		Type:      typ,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     s,
	}
	return nil
}

// Scan a TAG token.
func (parser *Parser) scanTag(token *Token) error {
	var handle, suffix []byte

	start_mark := parser.mark

	// Check if the tag is in the canonical form.
	if err := parser.cache(2); err != nil {
		return err
	}

	if parser.buffer[parser.buffer_pos+1] == '<' {
		// Keep the handle as ''

		// Eat '!<'
		parser.skip()
		parser.skip()

		// Consume the tag value. Flow indicators are allowed in a verbatim tag.
		if err := parser.scanTagURI(false, true, nil, start_mark, &suffix); err != nil {
			return err
		}

		// Check for '>' and eat it.
		if parser.buffer[parser.buffer_pos] != '>' {
			return parser.scannerErrorContext("while scanning a tag", start_mark,
				"did not find the expected '>'")
		}
		parser.skip()
	} else {
		// The tag has either the '!suffix' or the '!handle!suffix' form.

		// First, try to scan a handle.
		if err := parser.scanTagHandle(false, start_mark, &handle); err != nil {
			return err
		}

		// Check if it is, indeed, handle.
		if handle[0] == '!' && len(handle) > 1 && handle[len(handle)-1] == '!' {
			// Scan the suffix now.
			if err := parser.scanTagURI(false, false, nil, start_mark, &suffix); err != nil {
				return err
			}
		} else {
			// It wasn't a handle after all. Scan the rest of the tag.
			if err := parser.scanTagURI(false, false, handle, start_mark, &suffix); err != nil {
				return err
			}

			// Set the handle to '!'.
			handle = []byte{'!'}

			// A special case: the '!' tag. Set the handle to '' and the
			// suffix to '!'.
			if len(suffix) == 0 {
				handle, suffix = suffix, handle
			}
		}
	}

	// Check the character which ends the tag.
	if err := parser.cache(1); err != nil {
		return err
	}
	if !isBlankOrZero(parser.buffer, parser.buffer_pos) {
		return parser.scannerErrorContext("while scanning a tag", start_mark,
			"did not find expected whitespace or line break")
	}

	*token = Token{
		Type:      TAG_TOKEN,
		StartMark: start_mark,
		EndMark:   parser.mark,
		Value:     handle,
		Suffix:    suffix,
	}
	return nil
}

// Scan a tag handle.
func (parser *Parser) scanTagHandle(directive bool, start_mark Mark, handle *[]byte) error {
	// Check the initial '!' character.
	if err := parser.cache(1); err != nil {
		return err
	}
	if parser.buffer[parser.buffer_pos] != '!' {
		return parser.setScannerTagError(directive, start_mark, "did not find expected '!'")
	}

	// Copy the '!' character.
	s := parser.read(nil)

	// Copy all subsequent alphabetical and numerical characters.
	if err := parser.cache(1); err != nil {
		return err
	}
	for isAlpha(parser.buffer, parser.buffer_pos) {
		s = parser.read(s)
		if err := parser.cache(1); err != nil {
			return err
		}
	}

	// Check if the trailing character is '!' and copy it.
	if parser.buffer[parser.buffer_pos] == '!' {
		s = parser.read(s)
	} else if directive && string(s) != "!" {
		// It's either the '!' tag or not really a tag handle. If it's a %TAG
		// directive, it's an error. If it's a tag token, it must be a part
		// of the URI.
		return parser.setScannerTagError(directive, start_mark, "did not find expected '!'")
	}

	*handle = s
	return nil
}

// Scan a tag URI. Flow indicators are only part of the URI when verbatim
// is set, which is the case for '!<...>' tags and %TAG prefixes.
func (parser *Parser) scanTagURI(directive, verbatim bool, head []byte, start_mark Mark, uri *[]byte) error {
	var s []byte
	hasTag := len(head) > 0

	// Copy the head if needed.
	//
	// Note that we don't copy the leading '!' character.
	if len(head) > 1 {
		s = append(s, head[1:]...)
	}

	if err := parser.cache(1); err != nil {
		return err
	}
	for isTagURIChar(parser.buffer, parser.buffer_pos, verbatim) {
		// Check if it is a URI-escape sequence.
		if parser.buffer[parser.buffer_pos] == '%' {
			if err := parser.scanURIEscapes(directive, start_mark, &s); err != nil {
				return err
			}
		} else {
			s = parser.read(s)
		}
		if err := parser.cache(1); err != nil {
			return err
		}
		hasTag = true
	}

	// A printable character that stopped a short tag cannot be part of it.
	// Verbatim tags are checked for the closing '>' by the caller.
	if !verbatim {
		c := parser.buffer[parser.buffer_pos]
		if !isBlankOrZero(parser.buffer, parser.buffer_pos) && c >= 0x20 && c <= 0x7E {
			return parser.setScannerTagError(directive, start_mark,
				fmt.Sprintf("found character '%c' that is not allowed in a YAML tag", c))
		}
	}

	if !hasTag {
		return parser.setScannerTagError(directive, start_mark, "did not find expected tag URI")
	}
	*uri = s
	return nil
}

// Decode an URI-escape sequence corresponding to a single UTF-8 character.
func (parser *Parser) scanURIEscapes(directive bool, start_mark Mark, s *[]byte) error {
	// Decode the required number of characters.
	w := 1024
	for w > 0 {
		// Check for a URI-escaped octet.
		if err := parser.cache(3); err != nil {
			return err
		}

		if !(parser.buffer[parser.buffer_pos] == '%' &&
			isHex(parser.buffer, parser.buffer_pos+1) &&
			isHex(parser.buffer, parser.buffer_pos+2)) {
			return parser.setScannerTagError(directive, start_mark, "did not find URI escaped octet")
		}

		// Get the octet.
		octet := byte((asHex(parser.buffer, parser.buffer_pos+1) << 4) + asHex(parser.buffer, parser.buffer_pos+2))

		// If it is the leading octet, determine the length of the UTF-8 sequence.
		if w == 1024 {
			w = width(octet)
			if w == 0 {
				return parser.setScannerTagError(directive, start_mark, "found an incorrect leading UTF-8 octet")
			}
		} else if octet&0xC0 != 0x80 {
			return parser.setScannerTagError(directive, start_mark, "found an incorrect trailing UTF-8 octet")
		}

		// Copy the octet and move the pointers.
		*s = append(*s, octet)
		parser.skip()
		parser.skip()
		parser.skip()
		w--
	}
	return nil
}

// scanChompingIndicator consumes an optional '+' or '-' indicator.
func (parser *Parser) scanChompingIndicator(chomping *int) bool {
	switch parser.buffer[parser.buffer_pos] {
	case '+':
		*chomping = +1
	case '-':
		*chomping = -1
	default:
		return false
	}
	parser.skip()
	return true
}

// scanIndentationIndicator consumes an optional indentation indicator 1-9.
func (parser *Parser) scanIndentationIndicator(start_mark Mark, increment *int) (bool, error) {
	if !isDigit(parser.buffer, parser.buffer_pos) {
		return false, nil
	}
	// Check that the indentation is greater than 0.
	if parser.buffer[parser.buffer_pos] == '0' {
		return false, parser.scannerErrorContext("while scanning a block scalar", start_mark,
			"found an indentation indicator equal to 0")
	}
	*increment = asDigit(parser.buffer, parser.buffer_pos)
	parser.skip()
	return true, nil
}

// Scan a block scalar.
func (parser *Parser) scanBlockScalar(token *Token, literal bool) error {
	// Eat the indicator '|' or '>'.
	start_mark := parser.mark
	parser.skip()

	// Scan the additional block scalar indicators, in either order.
	var chomping, increment int
	if err := parser.cache(1); err != nil {
		return err
	}
	if parser.scanChompingIndicator(&chomping) {
		if err := parser.cache(1); err != nil {
			return err
		}
		if _, err := parser.scanIndentationIndicator(start_mark, &increment); err != nil {
			return err
		}
	} else {
		found, err := parser.scanIndentationIndicator(start_mark, &increment)
		if err != nil {
			return err
		}
		if found {
			if err := parser.cache(1); err != nil {
				return err
			}
			parser.scanChompingIndicator(&chomping)
		}
	}

	// Eat whitespaces and comments to the end of the line.
	if err := parser.skipBlanks(); err != nil {
		return err
	}
	if parser.buffer[parser.buffer_pos] == '#' {
		if err := parser.skipToBreak(); err != nil {
			return err
		}
	}

	// Check if we are at the end of the line.
	if !isBreakOrZero(parser.buffer, parser.buffer_pos) {
		return parser.scannerErrorContext("while scanning a block scalar", start_mark,
			"did not find expected comment or line break")
	}

	// Eat a line break.
	if isLineBreak(parser.buffer, parser.buffer_pos) {
		if err := parser.cache(2); err != nil {
			return err
		}
		parser.skipLine()
	}

	end_mark := parser.mark

	// Set the indentation level if it was specified.
	var indent int
	if increment > 0 {
		if parser.indent >= 0 {
			indent = parser.indent + increment
		} else {
			indent = increment
		}
	}

	// Scan the leading line breaks and determine the indentation level if needed.
	var s, leading_break, trailing_breaks []byte
	if err := parser.scanBlockScalarBreaks(&indent, &trailing_breaks, start_mark, &end_mark); err != nil {
		return err
	}

	// Scan the block scalar content.
	if err := parser.cache(1); err != nil {
		return err
	}
	var leading_blank, trailing_blank bool
	for parser.mark.Column == indent && !isZeroChar(parser.buffer, parser.buffer_pos) {
		// We are at the beginning of a non-empty line.

		// Is it a trailing whitespace?
		trailing_blank = isBlank(parser.buffer, parser.buffer_pos)

		// Check if we need to fold the leading line break.
		if !literal && !leading_blank && !trailing_blank && len(leading_break) > 0 && leading_break[0] == '\n' {
			// Do we need to join the lines by space?
			if len(trailing_breaks) == 0 {
				s = append(s, ' ')
			}
		} else {
			s = append(s, leading_break...)
		}
		leading_break = leading_break[:0]

		// Append the remaining line breaks.
		s = append(s, trailing_breaks...)
		trailing_breaks = trailing_breaks[:0]

		// Is it a leading whitespace?
		leading_blank = isBlank(parser.buffer, parser.buffer_pos)

		// Consume the current line.
		for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			s = parser.read(s)
			if err := parser.cache(1); err != nil {
				return err
			}
		}

		// Consume the line break.
		if err := parser.cache(2); err != nil {
			return err
		}
		leading_break = parser.readLine(leading_break)

		// Eat the following indentation spaces and line breaks.
		if err := parser.scanBlockScalarBreaks(&indent, &trailing_breaks, start_mark, &end_mark); err != nil {
			return err
		}
	}

	// Chomp the tail.
	if chomping != -1 {
		s = append(s, leading_break...)
	}
	if chomping == 1 {
		s = append(s, trailing_breaks...)
	}

	*token = Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     s,
		Style:     LITERAL_SCALAR_STYLE,
	}
	if !literal {
		token.Style = FOLDED_SCALAR_STYLE
	}
	return nil
}

// Scan indentation spaces and line breaks for a block scalar. Determine the
// indentation level if needed.
func (parser *Parser) scanBlockScalarBreaks(indent *int, breaks *[]byte, start_mark Mark, end_mark *Mark) error {
	*end_mark = parser.mark

	// Eat the indentation spaces and line breaks.
	max_indent := 0
	for {
		// Eat the indentation spaces.
		if err := parser.cache(1); err != nil {
			return err
		}
		for (*indent == 0 || parser.mark.Column < *indent) && isSpace(parser.buffer, parser.buffer_pos) {
			parser.skip()
			if err := parser.cache(1); err != nil {
				return err
			}
		}
		if parser.mark.Column > max_indent {
			max_indent = parser.mark.Column
		}

		// Check for a tab character messing the indentation.
		if (*indent == 0 || parser.mark.Column < *indent) && isTab(parser.buffer, parser.buffer_pos) {
			return parser.scannerErrorContext("while scanning a block scalar", start_mark,
				"found a tab character where an indentation space is expected")
		}

		// Have we found a non-empty line?
		if !isLineBreak(parser.buffer, parser.buffer_pos) {
			break
		}

		// Consume the line break.
		if err := parser.cache(2); err != nil {
			return err
		}
		*breaks = parser.readLine(*breaks)
		*end_mark = parser.mark
	}

	// Determine the indentation level if needed.
	if *indent == 0 {
		*indent = max_indent
		if *indent < parser.indent+1 {
			*indent = parser.indent + 1
		}
		if *indent < 1 {
			*indent = 1
		}
	}
	return nil
}

// appendRune appends the UTF-8 encoding of a code point checked to be a
// valid scalar value.
func appendRune(s []byte, value int) []byte {
	switch {
	case value <= 0x7F:
		return append(s, byte(value))
	case value <= 0x7FF:
		return append(s, byte(0xC0+(value>>6)), byte(0x80+(value&0x3F)))
	case value <= 0xFFFF:
		return append(s, byte(0xE0+(value>>12)), byte(0x80+((value>>6)&0x3F)), byte(0x80+(value&0x3F)))
	default:
		return append(s, byte(0xF0+(value>>18)), byte(0x80+((value>>12)&0x3F)),
			byte(0x80+((value>>6)&0x3F)), byte(0x80+(value&0x3F)))
	}
}

// Simple escapes of double-quoted scalars.
var escapeReplacements = map[byte]string{
	'0':  "\x00",
	'a':  "\x07",
	'b':  "\x08",
	't':  "\x09",
	'\t': "\x09",
	'n':  "\x0A",
	'v':  "\x0B",
	'f':  "\x0C",
	'r':  "\x0D",
	'e':  "\x1B",
	' ':  "\x20",
	'"':  "\"",
	'\'': "'",
	'/':  "/",
	'\\': "\\",
	'N':  "\u0085",
	'_':  "\u00a0",
	'L':  "\u2028",
	'P':  "\u2029",
}

// Lengths of the numeric escapes of double-quoted scalars.
var escapeCodeLengths = map[byte]int{
	'x': 2,
	'u': 4,
	'U': 8,
}

// scanEscape decodes the escape sequence at the buffer position and appends
// its value to s. The buffer must hold at least 2 characters.
func (parser *Parser) scanEscape(start_mark Mark, s []byte) ([]byte, error) {
	c := parser.buffer[parser.buffer_pos+1]
	if replacement, ok := escapeReplacements[c]; ok {
		parser.skip()
		parser.skip()
		return append(s, replacement...), nil
	}

	code_length, ok := escapeCodeLengths[c]
	if !ok {
		return s, parser.scannerErrorContext("while scanning a quoted scalar", start_mark,
			"found unknown escape character")
	}
	parser.skip()
	parser.skip()

	// Scan the character value.
	if err := parser.cache(code_length); err != nil {
		return s, err
	}
	var value int
	for k := 0; k < code_length; k++ {
		if !isHex(parser.buffer, parser.buffer_pos+k) {
			return s, parser.scannerErrorContext("while scanning a quoted scalar", start_mark,
				"did not find expected hexdecimal number")
		}
		value = (value << 4) + asHex(parser.buffer, parser.buffer_pos+k)
	}

	// Check the value and write the character.
	if (value >= 0xD800 && value <= 0xDFFF) || value > 0x10FFFF {
		return s, parser.scannerErrorContext("while scanning a quoted scalar", start_mark,
			"found invalid Unicode character escape code")
	}
	s = appendRune(s, value)

	for k := 0; k < code_length; k++ {
		parser.skip()
	}
	return s, nil
}

// Scan a quoted scalar.
func (parser *Parser) scanFlowScalar(token *Token, single bool) error {
	// Eat the left quote.
	start_mark := parser.mark
	parser.skip()

	quote := byte('"')
	if single {
		quote = '\''
	}

	// Consume the content of the quoted scalar.
	var s, leading_break, trailing_breaks, whitespaces []byte
	for {
		// Check that there are no document indicators at the beginning of the line.
		if err := parser.cache(4); err != nil {
			return err
		}
		if parser.atDocumentIndicator() {
			return parser.scannerErrorContext("while scanning a quoted scalar", start_mark,
				"found unexpected document indicator")
		}

		// Check for EOF.
		if isZeroChar(parser.buffer, parser.buffer_pos) {
			return parser.scannerErrorContext("while scanning a quoted scalar", start_mark,
				"found unexpected end of stream")
		}

		// Consume non-blank characters.
		leading_blanks := false
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) {
			c := parser.buffer[parser.buffer_pos]
			if single && c == '\'' && parser.buffer[parser.buffer_pos+1] == '\'' {
				// It is an escaped single quote.
				s = append(s, '\'')
				parser.skip()
				parser.skip()
			} else if c == quote {
				// It is the right quote.
				break
			} else if !single && c == '\\' && isLineBreak(parser.buffer, parser.buffer_pos+1) {
				// It is an escaped line break.
				if err := parser.cache(3); err != nil {
					return err
				}
				parser.skip()
				parser.skipLine()
				leading_blanks = true
				break
			} else if !single && c == '\\' {
				var err error
				if s, err = parser.scanEscape(start_mark, s); err != nil {
					return err
				}
			} else {
				// It is a non-escaped non-blank character.
				s = parser.read(s)
			}
			if err := parser.cache(2); err != nil {
				return err
			}
		}

		if err := parser.cache(1); err != nil {
			return err
		}

		// Check if we are at the end of the scalar.
		if parser.buffer[parser.buffer_pos] == quote {
			break
		}

		// Consume blank characters.
		for isBlank(parser.buffer, parser.buffer_pos) || isLineBreak(parser.buffer, parser.buffer_pos) {
			if isBlank(parser.buffer, parser.buffer_pos) {
				// Consume a space or a tab character.
				if !leading_blanks {
					whitespaces = parser.read(whitespaces)
				} else {
					parser.skip()
				}
			} else {
				if err := parser.cache(2); err != nil {
					return err
				}

				// Check if it is a first line break.
				if !leading_blanks {
					whitespaces = whitespaces[:0]
					leading_break = parser.readLine(leading_break)
					leading_blanks = true
				} else {
					trailing_breaks = parser.readLine(trailing_breaks)
				}
			}
			if err := parser.cache(1); err != nil {
				return err
			}
		}

		// Join the whitespaces or fold line breaks.
		if leading_blanks {
			// Do we need to fold line breaks?
			if len(leading_break) > 0 && leading_break[0] == '\n' {
				if len(trailing_breaks) == 0 {
					s = append(s, ' ')
				} else {
					s = append(s, trailing_breaks...)
				}
			} else {
				s = append(s, leading_break...)
				s = append(s, trailing_breaks...)
			}
			trailing_breaks = trailing_breaks[:0]
			leading_break = leading_break[:0]
		} else {
			s = append(s, whitespaces...)
			whitespaces = whitespaces[:0]
		}
	}

	// Eat the right quote.
	parser.skip()
	end_mark := parser.mark

	*token = Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     s,
		Style:     SINGLE_QUOTED_SCALAR_STYLE,
	}
	if !single {
		token.Style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	return nil
}

// plainScalarEnds reports an indicator that terminates a plain scalar at
// the buffer position: ': ' anywhere, and in the flow context also ':'
// before a flow indicator, '? ', ',', '[', ']', '{' and '}'.
func (parser *Parser) plainScalarEnds() bool {
	buf, pos := parser.buffer, parser.buffer_pos
	if buf[pos] == ':' && isBlankOrZero(buf, pos+1) {
		return true
	}
	if parser.flow_level == 0 {
		return false
	}
	switch buf[pos] {
	case ':':
		return isFlowIndicator(buf, pos+1)
	case '?':
		return isBlankOrZero(buf, pos+1)
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// Scan a plain scalar.
func (parser *Parser) scanPlainScalar(token *Token) error {
	var s, leading_break, trailing_breaks, whitespaces []byte
	var leading_blanks bool
	indent := parser.indent + 1

	start_mark := parser.mark
	end_mark := parser.mark

	// Consume the content of the plain scalar.
	for {
		// Check for a document indicator.
		if err := parser.cache(4); err != nil {
			return err
		}
		if parser.atDocumentIndicator() {
			break
		}

		// Check for a comment.
		if parser.buffer[parser.buffer_pos] == '#' {
			break
		}

		// Consume non-blank characters.
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) {
			if parser.plainScalarEnds() {
				break
			}

			// Check if we need to join whitespaces and breaks.
			if leading_blanks || len(whitespaces) > 0 {
				if leading_blanks {
					// Do we need to fold line breaks?
					if leading_break[0] == '\n' {
						if len(trailing_breaks) == 0 {
							s = append(s, ' ')
						} else {
							s = append(s, trailing_breaks...)
						}
					} else {
						s = append(s, leading_break...)
						s = append(s, trailing_breaks...)
					}
					trailing_breaks = trailing_breaks[:0]
					leading_break = leading_break[:0]
					leading_blanks = false
				} else {
					s = append(s, whitespaces...)
					whitespaces = whitespaces[:0]
				}
			}

			// Copy the character.
			s = parser.read(s)

			end_mark = parser.mark
			if err := parser.cache(2); err != nil {
				return err
			}
		}

		// Is it the end?
		if !(isBlank(parser.buffer, parser.buffer_pos) || isLineBreak(parser.buffer, parser.buffer_pos)) {
			break
		}

		// Consume blank characters.
		if err := parser.cache(1); err != nil {
			return err
		}
		for isBlank(parser.buffer, parser.buffer_pos) || isLineBreak(parser.buffer, parser.buffer_pos) {
			if isBlank(parser.buffer, parser.buffer_pos) {
				// Check for tab characters that abuse indentation.
				if leading_blanks && parser.mark.Column < indent && isTab(parser.buffer, parser.buffer_pos) {
					return parser.scannerErrorContext("while scanning a plain scalar", start_mark,
						"found a tab character that violates indentation")
				}

				// Consume a space or a tab character.
				if !leading_blanks {
					whitespaces = parser.read(whitespaces)
				} else {
					parser.skip()
				}
			} else {
				if err := parser.cache(2); err != nil {
					return err
				}

				// Check if it is a first line break.
				if !leading_blanks {
					whitespaces = whitespaces[:0]
					leading_break = parser.readLine(leading_break)
					leading_blanks = true
				} else {
					trailing_breaks = parser.readLine(trailing_breaks)
				}
			}
			if err := parser.cache(1); err != nil {
				return err
			}
		}

		// Check indentation level.
		if parser.flow_level == 0 && parser.mark.Column < indent {
			break
		}
	}

	*token = Token{
		Type:      SCALAR_TOKEN,
		StartMark: start_mark,
		EndMark:   end_mark,
		Value:     s,
		Style:     PLAIN_SCALAR_STYLE,
	}

	// Note that we change the 'simple_key_allowed' flag.
	if leading_blanks {
		parser.simple_key_allowed = true
	}
	return nil
}
