// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Classifier / Skip Layer (§4.1). The skip loop below is modeled on the
// teacher's standardizerBuffer.standardize state machine in
// tailscale/hujson's standardizer.go: a switch over small, explicit states
// that each consume a run of bytes before falling back to the top of the
// loop. We don't keep it as hujson's incremental io.Reader FSM — the
// streaming model this spec wants (§4.7) is "retry over the whole buffer,
// drop the safe prefix on success", not a single-pass elision machine — but
// the same state-per-construct shape is what makes skipInsignificant easy
// to extend per dialect flag.
package jsonrepair

import "unicode"

// wrapperKind identifies a leading wrapper stripped from the very start of
// the document, which may require a matching closing token later.
type wrapperKind int

const (
	wrapperNone wrapperKind = iota
	wrapperFenced
	wrapperJSONP
)

// smartQuote maps the smart-quote runes §4.1 requires accepting wherever a
// quote is expected to their canonical ASCII quote byte.
func smartQuote(r rune) (canonical byte, ok bool) {
	switch r {
	case '‘', '’': // ‘ ’
		return '\'', true
	case '“', '”': // “ ”
		return '"', true
	case '«', '»': // « »
		return '"', true
	}
	return 0, false
}

// quoteByteAt reports the canonical quote byte the cursor is sitting on,
// treating ASCII and smart quotes uniformly, plus the rune width to skip.
func quoteByteAt(c *cursor) (canonical byte, width int, ok bool) {
	b, has := c.peek()
	if !has {
		return 0, 0, false
	}
	if b == '"' || b == '\'' {
		return b, 1, true
	}
	if b < 0x80 {
		return 0, 0, false
	}
	r, n := c.peekRune()
	if q, ok := smartQuote(r); ok {
		return q, n, true
	}
	return 0, 0, false
}

func isJSONSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// isDelimiter reports whether b ends an unquoted token (§4.2/§4.3).
func isDelimiter(b byte) bool {
	switch b {
	case ',', ':', ']', '}', '\n':
		return true
	}
	return isJSONSpace(b)
}

// skipInsignificant repeatedly consumes whitespace and comments until none
// applies, per §4.1. It also watches for the closing half of a wrapper
// stripped at document start (fenced code fence, JSONP ")" and ";").
func (p *parser) skipInsignificant() error {
	for {
		progressed := false

		if p.skipWhitespace() {
			progressed = true
		}
		ok, err := p.skipLineComment("//")
		if err != nil {
			return err
		}
		progressed = progressed || ok

		if p.opts.TolerateHashComments {
			ok, err = p.skipLineComment("#")
			if err != nil {
				return err
			}
			progressed = progressed || ok
		}

		ok, err = p.skipBlockComment()
		if err != nil {
			return err
		}
		progressed = progressed || ok

		if p.skipWordCommentMarker() {
			progressed = true
		}

		if p.skipPendingFence() {
			progressed = true
		}
		if p.skipPendingJSONPClose() {
			progressed = true
		}

		if !progressed {
			return nil
		}
	}
}

// skipWhitespace consumes a run of ASCII or Unicode whitespace.
func (p *parser) skipWhitespace() bool {
	any := false
	for {
		b, has := p.cur.peek()
		if !has {
			return any
		}
		if b < 0x80 {
			if !isJSONSpace(b) {
				return any
			}
			p.cur.advance(1)
			any = true
			continue
		}
		r, n := p.cur.peekRune()
		if !unicode.IsSpace(r) {
			return any
		}
		p.cur.advance(n)
		any = true
	}
}

// skipLineComment consumes a "// ... \n" or "# ... \n" comment, stopping
// at (but not consuming) the terminating newline's following content; the
// newline itself is consumed so the comment does not re-trigger.
func (p *parser) skipLineComment(marker string) (bool, error) {
	if !p.cur.hasPrefix(marker) {
		return false, nil
	}
	start := p.cur.position()
	p.cur.advance(len(marker))
	for {
		b, has := p.cur.peek()
		if !has {
			if !p.final {
				p.cur.pos = start
				return false, errNeedMoreData
			}
			p.logEntry(start, CategoryCommentStripped, "line comment truncated at end of input")
			return true, nil
		}
		if b == '\n' {
			p.cur.advance(1)
			p.logEntry(start, CategoryCommentStripped, "line comment")
			return true, nil
		}
		p.cur.advance(1)
	}
}

// skipBlockComment consumes a non-nesting "/* ... */" comment.
func (p *parser) skipBlockComment() (bool, error) {
	if !p.cur.hasPrefix("/*") {
		return false, nil
	}
	start := p.cur.position()
	p.cur.advance(2)
	for {
		if p.cur.hasPrefix("*/") {
			p.cur.advance(2)
			p.logEntry(start, CategoryCommentStripped, "block comment")
			return true, nil
		}
		if p.cur.atEOF() {
			if !p.final {
				p.cur.pos = start
				return false, errNeedMoreData
			}
			p.logEntry(start, CategoryCommentStripped, "block comment unterminated at end of input")
			return true, nil
		}
		p.cur.advance(1)
	}
}

// skipWordCommentMarker consumes a bare identifier listed in
// Options.WordCommentMarkers as if it started a line comment.
func (p *parser) skipWordCommentMarker() bool {
	if len(p.opts.WordCommentMarkers) == 0 {
		return false
	}
	b, has := p.cur.peek()
	if !has || !isIdentStart(b) {
		return false
	}
	start := p.cur.position()
	end := start
	for {
		b, has := p.cur.peekAt(end - start)
		if !has || !isIdentByte(b) {
			break
		}
		end++
	}
	word := p.cur.slice(start, end)
	if !p.opts.WordCommentMarkers[word] {
		return false
	}
	p.cur.pos = end
	for {
		b, has := p.cur.peek()
		if !has || b == '\n' {
			break
		}
		p.cur.advance(1)
	}
	if b, has := p.cur.peek(); has && b == '\n' {
		p.cur.advance(1)
	}
	p.logEntry(start, CategoryCommentStripped, "word comment marker %q", word)
	return true
}

// detectLeadingFence recognizes ```lang\n at the very start of input and
// returns the number of bytes to skip, or 0 if absent.
func detectLeadingFence(s string) int {
	if len(s) < 3 || s[:3] != "```" {
		return 0
	}
	i := 3
	for i < len(s) && s[i] != '\n' {
		i++
	}
	if i >= len(s) {
		return 0 // no newline yet; caller decides whether that's "need more data"
	}
	return i + 1
}

// skipPendingFence consumes a trailing ``` closing fence once the document's
// value(s) have been parsed, if one is pending.
func (p *parser) skipPendingFence() bool {
	if p.pendingWrapper != wrapperFenced {
		return false
	}
	if p.cur.hasPrefix("```") {
		p.cur.advance(3)
		p.pendingWrapper = wrapperNone
		return true
	}
	return false
}

// skipPendingJSONPClose consumes a trailing ")" and optional ";" once the
// document's single wrapped value has been parsed.
func (p *parser) skipPendingJSONPClose() bool {
	if p.pendingWrapper != wrapperJSONP {
		return false
	}
	if b, has := p.cur.peek(); has && b == ')' {
		p.cur.advance(1)
		if b, has := p.cur.peek(); has && b == ';' {
			p.cur.advance(1)
		}
		p.pendingWrapper = wrapperNone
		return true
	}
	return false
}

// detectLeadingJSONP recognizes "identifier(" at the start of input and
// returns the byte length of "identifier(" (with any interior whitespace),
// or 0 if absent.
func detectLeadingJSONP(s string) int {
	i := 0
	if i >= len(s) || !isIdentStart(s[i]) {
		return 0
	}
	i++
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isJSONSpace(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '(' {
		return 0
	}
	return j + 1
}

// stripLeadingWrappers recognizes a fenced code block or JSONP call at the
// very start of the document and consumes its opening half, recording
// which closing half (if any) is still owed.
func (p *parser) stripLeadingWrappers() {
	if p.cur.position() != 0 {
		return
	}
	rem := p.cur.remaining()
	if p.opts.FencedCodeBlocks {
		if n := detectLeadingFence(rem); n > 0 {
			p.cur.advance(n)
			p.pendingWrapper = wrapperFenced
			return
		}
	}
	if n := detectLeadingJSONP(rem); n > 0 {
		p.cur.advance(n)
		p.pendingWrapper = wrapperJSONP
	}
}
