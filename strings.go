// String Reader (§4.2): three quoting dialects, string concatenation, and
// escape handling. The \uXXXX surrogate-pair handling is grounded on
// go-json-experiment-json/decode.go's unescape logic; the multi-dialect
// (double/single/unquoted) acceptance is grounded on
// wandb-wandb/simplejsonext/parse.go, which tolerates exactly this family
// of quoting styles from Python-ish JSON-like sources.
package jsonrepair

import (
	"strconv"
	"strings"
)

// readStringGeneral reads one string-like token — quoted (with
// concatenation) or, failing that, an unquoted run, logged under cat since
// an unquoted token being wrapped in quotes is a local repair — used for
// both object keys and string values per §4.5 ("read a key (string reader,
// including unquoted form)").
func (p *parser) readStringGeneral(cat Category) (string, bool, error) {
	if _, _, ok := quoteByteAt(&p.cur); ok {
		return p.readQuotedStringWithConcat()
	}
	start := p.cur.position()
	s, needMore, err := p.readUnquotedRun()
	if err == nil && !needMore {
		p.logEntry(start, cat, "unquoted token %q quoted", s)
	}
	return s, needMore, err
}

func (p *parser) readKey() (string, bool, error) {
	return p.readStringGeneral(CategoryUnquotedKey)
}

// parseStringValue parses one string value (quoted or unquoted) and emits
// it.
func (p *parser) parseStringValue() error {
	s, needMore, err := p.readStringGeneral(CategoryUnquotedString)
	if err != nil {
		return err
	}
	if needMore {
		return errNeedMoreData
	}
	p.emit.writeString(s)
	return nil
}

// readUnquotedValue is the Structural Parser's last-resort value reader,
// used once the number and keyword readers have both declined.
func (p *parser) readUnquotedValue() error {
	start := p.cur.position()
	s, needMore, err := p.readUnquotedRun()
	if err != nil {
		return err
	}
	if needMore {
		return errNeedMoreData
	}
	p.logEntry(start, CategoryUnquotedString, "unquoted token %q quoted", s)
	p.emit.writeString(s)
	return nil
}

// readQuotedStringWithConcat reads one quoted string, then, per §4.2,
// absorbs any number of "+ "quoted string"" continuations.
func (p *parser) readQuotedStringWithConcat() (string, bool, error) {
	s, needMore, err := p.readQuotedString()
	if err != nil || needMore {
		return s, needMore, err
	}
	for {
		save := p.cur
		if err := p.skipInsignificant(); err != nil {
			p.cur = save
			return s, false, err
		}
		b, has := p.cur.peek()
		if !has || b != '+' {
			p.cur = save
			return s, false, nil
		}
		p.cur.advance(1)
		if err := p.skipInsignificant(); err != nil {
			p.cur = save
			return s, false, err
		}
		if _, _, ok := quoteByteAt(&p.cur); !ok {
			p.cur = save
			return s, false, nil
		}
		more, needMore2, err2 := p.readQuotedString()
		if err2 != nil {
			return s, false, err2
		}
		if needMore2 {
			p.cur = save
			return s, true, nil
		}
		s += more
		p.logEntry(save.position(), CategoryConcatenatedString, "adjacent quoted strings concatenated")
	}
}

// readQuotedString reads exactly one quoted string, handling all three
// accepted opening delimiters via quoteByteAt and every escape in §4.2.
func (p *parser) readQuotedString() (string, bool, error) {
	canonical, width, ok := quoteByteAt(&p.cur)
	if !ok {
		return "", false, nil
	}
	startPos := p.cur.position()
	p.cur.advance(width)

	var sb strings.Builder
	for {
		b, has := p.cur.peek()
		if !has {
			if !p.final {
				p.cur.pos = startPos
				return "", true, nil
			}
			p.logEntry(startPos, CategoryUnterminatedString, "string unterminated at end of input")
			return sb.String(), false, nil
		}
		if b == '\n' {
			p.cur.advance(1)
			p.logEntry(startPos, CategoryUnterminatedString, "string closed at unescaped newline")
			return sb.String(), false, nil
		}
		// A smart quote closes only a string that a smart quote opened.
		if matched, mw := matchesQuote(&p.cur, canonical); matched && (mw == 1 || width > 1) {
			p.cur.advance(mw)
			return sb.String(), false, nil
		}
		if b == '\\' {
			nb, has2 := p.cur.peekAt(1)
			if !has2 {
				if !p.final {
					p.cur.pos = startPos
					return "", true, nil
				}
				sb.WriteByte('\\')
				p.cur.advance(1)
				continue
			}
			switch nb {
			case '"', '\'', '\\', '/':
				sb.WriteByte(nb)
				p.cur.advance(2)
			case 'b':
				sb.WriteByte('\b')
				p.cur.advance(2)
			case 'f':
				sb.WriteByte('\f')
				p.cur.advance(2)
			case 'n':
				sb.WriteByte('\n')
				p.cur.advance(2)
			case 'r':
				sb.WriteByte('\r')
				p.cur.advance(2)
			case 't':
				sb.WriteByte('\t')
				p.cur.advance(2)
			case 'u':
				r, width, needMore, err := p.readUnicodeEscape()
				if err != nil {
					return "", false, err
				}
				if needMore {
					p.cur.pos = startPos
					return "", true, nil
				}
				sb.WriteRune(r)
				p.cur.advance(width)
			case 'x':
				r, width, needMore, ok := p.readHexByteEscape()
				if needMore {
					p.cur.pos = startPos
					return "", true, nil
				}
				if ok {
					sb.WriteRune(r)
					p.cur.advance(width)
				} else {
					p.logEntry(p.cur.position(), CategoryUnknownEscape, `unknown escape \x preserved`)
					sb.WriteByte('\\')
					sb.WriteByte('x')
					p.cur.advance(2)
				}
			default:
				p.logEntry(p.cur.position(), CategoryUnknownEscape, "unknown escape \\%c preserved", nb)
				sb.WriteByte('\\')
				sb.WriteByte(nb)
				p.cur.advance(2)
			}
			continue
		}
		sb.WriteByte(b)
		p.cur.advance(1)
	}
}

// matchesQuote reports whether the cursor sits on a quote byte (ASCII or
// smart) equivalent to canonical, and how many bytes it occupies.
func matchesQuote(c *cursor, canonical byte) (bool, int) {
	b, has := c.peek()
	if !has {
		return false, 0
	}
	if b == canonical {
		return true, 1
	}
	if b < 0x80 {
		return false, 0
	}
	r, n := c.peekRune()
	if q, ok := smartQuote(r); ok && q == canonical {
		return true, n
	}
	return false, 0
}

// readUnicodeEscape decodes a \uXXXX escape starting at the cursor's '\',
// including high/low surrogate pairing. width is the total byte length of
// the escape sequence(s) consumed, measured from the initial '\'.
func (p *parser) readUnicodeEscape() (r rune, width int, needMore bool, err error) {
	hi, hiOK, hiNeedMore := p.readHex4(2)
	if hiNeedMore {
		return 0, 0, true, nil
	}
	if !hiOK {
		p.logEntry(p.cur.position(), CategoryUnknownEscape, `invalid \u escape preserved`)
		return '\\', 1, false, nil // treat literally: consume only the '\', the rest is read as ordinary text
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		lo, loOK, loNeedMore := p.readSurrogateLowAt(6)
		if loNeedMore {
			return 0, 0, true, nil
		}
		if !loOK {
			return 0, 0, false, newError(KindInvalidEscape, p.cur.position(), "isolated high surrogate in \\u escape")
		}
		combined := 0x10000 + (hi-0xD800)*0x400 + (lo - 0xDC00)
		return rune(combined), 12, false, nil
	}
	if hi >= 0xDC00 && hi <= 0xDFFF {
		return 0, 0, false, newError(KindInvalidEscape, p.cur.position(), "isolated low surrogate in \\u escape")
	}
	return rune(hi), 6, false, nil
}

// readHex4 reads exactly 4 hex digits starting offset bytes past the
// cursor (offset 2 skips past "\u").
func (p *parser) readHex4(offset int) (value int, ok bool, needMore bool) {
	digits := make([]byte, 0, 4)
	for k := 0; k < 4; k++ {
		b, has := p.cur.peekAt(offset + k)
		if !has {
			if !p.final {
				return 0, false, true
			}
			return 0, false, false
		}
		if !isHexDigit(b) {
			return 0, false, false
		}
		digits = append(digits, b)
	}
	v, err := strconv.ParseInt(string(digits), 16, 32)
	if err != nil {
		return 0, false, false
	}
	return int(v), true, false
}

// readSurrogateLowAt expects a literal "\u" at offset bytes past the
// cursor followed by 4 hex digits forming a low surrogate.
func (p *parser) readSurrogateLowAt(offset int) (value int, ok bool, needMore bool) {
	b1, has1 := p.cur.peekAt(offset)
	b2, has2 := p.cur.peekAt(offset + 1)
	if !has1 || !has2 {
		if !p.final {
			return 0, false, true
		}
		return 0, false, false
	}
	if b1 != '\\' || b2 != 'u' {
		return 0, false, false
	}
	v, ok, needMore := p.readHex4(offset + 2)
	if needMore || !ok {
		return 0, false, needMore
	}
	if v < 0xDC00 || v > 0xDFFF {
		return 0, false, false
	}
	return v, true, false
}

// readHexByteEscape decodes a \xXX escape (two hex digits, reinterpreted
// as a codepoint <= 0xFF), offset 2 past the '\'.
func (p *parser) readHexByteEscape() (r rune, width int, needMore bool, ok bool) {
	b1, has1 := p.cur.peekAt(2)
	b2, has2 := p.cur.peekAt(3)
	if !has1 || !has2 {
		if !p.final {
			return 0, 0, true, false
		}
		return 0, 0, false, false
	}
	if !isHexDigit(b1) || !isHexDigit(b2) {
		return 0, 0, false, false
	}
	v, err := strconv.ParseInt(string([]byte{b1, b2}), 16, 16)
	if err != nil {
		return 0, 0, false, false
	}
	return rune(v), 4, false, true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// readUnquotedRun reads an unquoted token until one of the hard delimiters
// (',', ':', ']', '}', newline) or a run of whitespace immediately
// followed by one of them; internal whitespace (e.g. "foo bar") is kept.
func (p *parser) readUnquotedRun() (string, bool, error) {
	start := p.cur.position()
scan:
	for {
		b, has := p.cur.peek()
		if !has {
			if !p.final {
				p.cur.pos = start
				return "", true, nil
			}
			break
		}
		switch b {
		case ',', ':', ']', '}', '\n':
			break scan
		}
		if isJSONSpace(b) {
			j := 0
			for {
				nb, has2 := p.cur.peekAt(j)
				if !has2 || !isJSONSpace(nb) || nb == '\n' {
					break
				}
				j++
			}
			nb, has2 := p.cur.peekAt(j)
			if !has2 {
				if !p.final {
					p.cur.pos = start
					return "", true, nil
				}
				break scan
			}
			if isHardDelim(nb) {
				break scan
			}
			p.cur.advance(j)
			continue
		}
		p.cur.advance(1)
	}
	raw := p.cur.slice(start, p.cur.position())
	return strings.TrimSpace(raw), false, nil
}

func isHardDelim(b byte) bool {
	switch b {
	case ',', ':', ']', '}', '\n':
		return true
	}
	return false
}
