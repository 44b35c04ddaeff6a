// Structural Parser (§4.5): a recursive-descent driver over arrays and
// objects with local recovery rules, modeled on the object/array scan loop
// shape in go-json-experiment-json/decode.go, but replacing its strict
// "hard error on malformed token" behavior with this spec's recovery rules
// (missing comma/colon inference, dangling keys, synthetic closers) — the
// recovery-rule shape itself is grounded on deepankarm-godantic's
// partialjson/parser.go and the pattern evidenced by
// whshang-claude-code-companion's python_json_fixer.go: local, greedy,
// no backtracking.
package jsonrepair

import "fmt"

// parser holds the implicit recursive-descent call stack's shared state:
// the cursor into the input, the emitter writing the repaired output, the
// optional log, and the depth counter bounding recursion (§3 Parser State).
type parser struct {
	cur   cursor
	src   string
	opts  Options
	final bool // true for RepairToString/Flush; false mid-Streamer.Push
	depth int
	emit  *emitter
	log   *Log
	path  []PathElem

	pendingWrapper wrapperKind
}

func newParser(input string, opts Options, emit *emitter, log *Log, final bool) *parser {
	return &parser{
		cur:   newCursor(input),
		src:   input,
		opts:  opts,
		final: final,
		emit:  emit,
		log:   log,
	}
}

func (p *parser) logEntry(pos int, cat Category, format string, args ...any) {
	if !p.opts.Logging || p.log == nil {
		return
	}
	var path []PathElem
	if p.opts.LogJSONPath && len(p.path) > 0 {
		path = append([]PathElem(nil), p.path...)
	}
	ctx := contextWindow(p.src, pos, p.opts.LogContextWindow)
	p.log.Entries = append(p.log.Entries, LogEntry{
		Position: pos,
		Path:     path,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		Context:  ctx,
	})
}

// parseOneTopLevelValue parses (and emits) a single top-level value
// starting at the cursor's current position, after skipping any leading
// insignificant text. found reports whether a value was actually found:
// an input that is empty or pure whitespace/comments yields found==false
// with no error.
func (p *parser) parseOneTopLevelValue() (found bool, err error) {
	p.stripLeadingWrappers()
	for {
		if err := p.skipInsignificant(); err != nil {
			return false, err
		}
		b, has := p.cur.peek()
		if !has {
			return false, nil
		}
		// A stray closer or separator with nothing open to match it: drop
		// it and keep looking for an actual value, rather than letting the
		// scalar readers misread it as an empty unquoted string.
		switch b {
		case ']', '}', ',', ';', ':':
			p.logEntry(p.cur.position(), CategoryDroppedCloser, "unexpected byte %q at top level, skipped", b)
			p.cur.advance(1)
			continue
		}
		break
	}
	if err := p.parseValue(); err != nil {
		return false, err
	}
	return true, nil
}

// parseValue parses exactly one JSON value at the cursor (§4.5 entry
// point), dispatching to the scalar readers or recursing into containers.
func (p *parser) parseValue() error {
	if err := p.skipInsignificant(); err != nil {
		return err
	}
	b, has := p.cur.peek()
	if !has {
		if !p.final {
			return errNeedMoreData
		}
		// Nothing left where a value was expected: emit null rather than
		// fail outright, matching the spec's "recoverable, never an error"
		// philosophy for anything short of the named error kinds.
		p.emit.writeLiteral("null")
		return nil
	}

	switch {
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	}

	if _, _, ok := quoteByteAt(&p.cur); ok {
		return p.parseStringValue()
	}

	if ok, needMore, err := p.tryNumber(); err != nil {
		return err
	} else if needMore {
		return errNeedMoreData
	} else if ok {
		return nil
	}

	if ok, needMore, err := p.tryKeywordOrRegex(); err != nil {
		return err
	} else if needMore {
		return errNeedMoreData
	} else if ok {
		return nil
	}

	return p.readUnquotedValue()
}

// startsValue reports whether b could begin a new value, used for comma
// inference (§4.5: "two adjacent complete values ... imply a comma").
func startsValue(b byte) bool {
	switch b {
	case '{', '[', '"', '\'', '-', '+', '.':
		return true
	}
	if b >= '0' && b <= '9' {
		return true
	}
	return isIdentStart(b)
}

// parseArray parses "[ ... ]" per §4.5.
func (p *parser) parseArray() error {
	if p.depth >= p.opts.maxDepth() {
		return newError(KindDepthExceeded, p.cur.position(), "maximum nesting depth exceeded")
	}
	p.depth++
	defer func() { p.depth-- }()

	p.cur.advance(1) // '['
	p.emit.beginArray()
	idx := 0

	for {
		if err := p.skipInsignificant(); err != nil {
			return err
		}
		b, has := p.cur.peek()
		if !has {
			if !p.final {
				return errNeedMoreData
			}
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized ']' at end of input")
			p.emit.endArray()
			return nil
		}
		if b == ']' {
			p.cur.advance(1)
			p.emit.endArray()
			return nil
		}
		if b == '}' {
			// Foreign closer: finish this array without consuming it so
			// the enclosing container can treat it as its own.
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized ']' before unmatched '}'")
			p.emit.endArray()
			return nil
		}
		if b == ',' || b == ';' {
			p.cur.advance(1)
			p.logEntry(p.cur.position()-1, CategoryTrailingComma, "unexpected separator before value, skipped")
			continue
		}
		if p.cur.hasPrefix("...") {
			p.logEntry(p.cur.position(), CategoryEllipsisSkipped, "ellipsis skipped")
			p.cur.advance(3)
			continue
		}

		p.path = append(p.path, idx)
		if err := p.parseValue(); err != nil {
			p.path = p.path[:len(p.path)-1]
			return err
		}
		p.path = p.path[:len(p.path)-1]
		idx++

		closed, err := p.afterElement(']')
		if err != nil {
			return err
		}
		if closed {
			p.emit.endArray()
			return nil
		}
	}
}

// parseObject parses "{ ... }" per §4.5.
func (p *parser) parseObject() error {
	if p.depth >= p.opts.maxDepth() {
		return newError(KindDepthExceeded, p.cur.position(), "maximum nesting depth exceeded")
	}
	p.depth++
	defer func() { p.depth-- }()

	p.cur.advance(1) // '{'
	p.emit.beginObject()

	for {
		if err := p.skipInsignificant(); err != nil {
			return err
		}
		b, has := p.cur.peek()
		if !has {
			if !p.final {
				return errNeedMoreData
			}
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized '}' at end of input")
			p.emit.endObject()
			return nil
		}
		if b == '}' {
			p.cur.advance(1)
			p.emit.endObject()
			return nil
		}
		if b == ']' {
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized '}' before unmatched ']'")
			p.emit.endObject()
			return nil
		}
		if b == ',' || b == ';' {
			p.cur.advance(1)
			p.logEntry(p.cur.position()-1, CategoryTrailingComma, "unexpected separator before member, skipped")
			continue
		}

		keyStart := p.cur.position()
		key, needMore, err := p.readKey()
		if err != nil {
			return err
		}
		if needMore {
			return errNeedMoreData
		}

		p.path = append(p.path, key)

		if err := p.skipInsignificant(); err != nil {
			p.path = p.path[:len(p.path)-1]
			return err
		}
		b, has = p.cur.peek()
		if has && b == ':' {
			p.cur.advance(1)
		} else {
			p.logEntry(keyStart, CategoryMissingColon, "missing ':' after key %q, inferred", key)
		}
		if err := p.skipInsignificant(); err != nil {
			p.path = p.path[:len(p.path)-1]
			return err
		}

		b, has = p.cur.peek()
		if !has {
			if !p.final {
				p.path = p.path[:len(p.path)-1]
				return errNeedMoreData
			}
			p.logEntry(keyStart, CategoryDanglingKey, "key %q has no value, emitted null", key)
			p.emit.writeKey(key)
			p.emit.writeLiteral("null")
			p.path = p.path[:len(p.path)-1]
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized '}' at end of input")
			p.emit.endObject()
			return nil
		}
		if b == '}' || b == ',' || b == ';' {
			p.logEntry(keyStart, CategoryDanglingKey, "key %q has no value, emitted null", key)
			p.emit.writeKey(key)
			p.emit.writeLiteral("null")
		} else {
			p.emit.writeKey(key)
			if err := p.parseValue(); err != nil {
				p.path = p.path[:len(p.path)-1]
				return err
			}
		}
		p.path = p.path[:len(p.path)-1]

		closed, err := p.afterElement('}')
		if err != nil {
			return err
		}
		if closed {
			p.emit.endObject()
			return nil
		}
	}
}

// afterElement consumes whatever follows a completed array element or
// object member: a separator, the matching closer, an inferred missing
// comma, or a best-effort recovery from anything else. closed reports
// whether the enclosing container's closer was consumed (by the caller,
// who still must tell the emitter).
func (p *parser) afterElement(closer byte) (closed bool, err error) {
	if err := p.skipInsignificant(); err != nil {
		return false, err
	}
	b, has := p.cur.peek()
	if !has {
		if !p.final {
			return false, errNeedMoreData
		}
		p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized '%c' at end of input", closer)
		return true, nil
	}
	switch {
	case b == ',' || b == ';':
		p.cur.advance(1)
		if err := p.skipInsignificant(); err != nil {
			return false, err
		}
		if b2, has2 := p.cur.peek(); has2 && b2 == closer {
			p.logEntry(p.cur.position(), CategoryTrailingComma, "trailing comma before '%c'", closer)
			p.cur.advance(1)
			return true, nil
		}
		return false, nil
	case b == closer:
		p.cur.advance(1)
		return true, nil
	case b == '{' || b == '[':
		p.logEntry(p.cur.position(), CategoryMissingComma, "missing comma inferred before nested container")
		return false, nil
	case startsValue(b):
		p.logEntry(p.cur.position(), CategoryMissingComma, "missing comma inferred")
		return false, nil
	default:
		// One other closer kind, or stray punctuation: treat as this
		// container's closer so the caller (or its caller) can deal with
		// whatever is left, rather than looping forever.
		other := byte('}')
		if closer == '}' {
			other = ']'
		}
		if b == other {
			p.logEntry(p.cur.position(), CategorySyntheticCloser, "synthesized '%c' before unmatched '%c'", closer, other)
			return true, nil
		}
		p.logEntry(p.cur.position(), CategoryDroppedCloser, "unexpected byte %q skipped", b)
		p.cur.advance(1)
		return false, nil
	}
}
