// Emitter (§4.6): writes canonical JSON straight to a sink, with no
// intermediate tree. Container-state tracking (a small frame stack
// deciding when a comma is needed) follows the shape of
// go-json-experiment-json/jsontext/encode.go's encoderState; the string
// escaping (hex table, ASCII fast path, \uXXXX fallback) is grounded on
// uber-go-zap/json_encoder.go's safeAddString.
package jsonrepair

import (
	"unicode/utf8"
)

type frame struct {
	isObject bool
	count    int
}

// emitter is the Structural Parser's only means of producing output; it
// never buffers more than one container-stack's worth of state, since the
// input is consumed once, left to right, with no backtracking.
type emitter struct {
	w    sink
	opts Options
	err  error

	stack []frame
}

func newEmitter(w sink, opts Options) *emitter {
	return &emitter{w: w, opts: opts}
}

// Err returns the first write error the emitter's sink produced, if any.
func (e *emitter) Err() error { return e.err }

func (e *emitter) writeByte(b byte) {
	if e.err != nil {
		return
	}
	if err := e.w.WriteByte(b); err != nil {
		e.err = err
	}
}

func (e *emitter) writeString_(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = err
	}
}

func (e *emitter) comma() {
	if e.opts.PythonStyleSeparators {
		e.writeString_(", ")
	} else {
		e.writeByte(',')
	}
}

func (e *emitter) colon() {
	if e.opts.PythonStyleSeparators {
		e.writeString_(": ")
	} else {
		e.writeByte(':')
	}
}

// beforeValue accounts for the comma that precedes every array element
// after the first. Object members place their own comma in writeKey, so
// this is a no-op when the enclosing container is an object.
func (e *emitter) beforeValue() {
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.isObject {
		return
	}
	if top.count > 0 {
		e.comma()
	}
	top.count++
}

func (e *emitter) beginObject() {
	e.beforeValue()
	e.writeByte('{')
	e.stack = append(e.stack, frame{isObject: true})
}

func (e *emitter) endObject() {
	if len(e.stack) > 0 {
		e.stack = e.stack[:len(e.stack)-1]
	}
	e.writeByte('}')
}

func (e *emitter) beginArray() {
	e.beforeValue()
	e.writeByte('[')
	e.stack = append(e.stack, frame{isObject: false})
}

func (e *emitter) endArray() {
	if len(e.stack) > 0 {
		e.stack = e.stack[:len(e.stack)-1]
	}
	e.writeByte(']')
}

// writeKey writes an object member's key, handling its own comma (the
// value that follows goes through writeString/writeRaw/beginObject/
// beginArray as normal, which see an object frame and add nothing).
func (e *emitter) writeKey(key string) {
	if len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		if top.count > 0 {
			e.comma()
		}
		top.count++
	}
	e.writeQuoted(key)
	e.colon()
}

// writeString writes s as a JSON string value.
func (e *emitter) writeString(s string) {
	e.beforeValue()
	e.writeQuoted(s)
}

// writeRaw writes already-canonical JSON text verbatim (numbers, and the
// "true"/"false"/"null" literals) as a value.
func (e *emitter) writeRaw(text string) {
	e.beforeValue()
	e.writeString_(text)
}

// writeLiteral is writeRaw under a name that reads better at call sites
// emitting a fixed keyword rather than a computed number.
func (e *emitter) writeLiteral(text string) { e.writeRaw(text) }

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as an escaped, quoted JSON string per RFC 8259,
// expanding non-ASCII runes to \uXXXX (with surrogate pairs) when
// EnsureASCII is set.
func (e *emitter) writeQuoted(s string) {
	e.writeByte('"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			if start < i {
				e.writeString_(s[start:i])
			}
			switch b {
			case '"':
				e.writeString_(`\"`)
			case '\\':
				e.writeString_(`\\`)
			case '\n':
				e.writeString_(`\n`)
			case '\r':
				e.writeString_(`\r`)
			case '\t':
				e.writeString_(`\t`)
			default:
				e.writeString_(`\u00`)
				e.writeByte(hexDigits[b>>4])
				e.writeByte(hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if !e.opts.EnsureASCII {
			i += size
			continue
		}
		if start < i {
			e.writeString_(s[start:i])
		}
		e.writeEscapedRune(r)
		i += size
		start = i
	}
	if start < len(s) {
		e.writeString_(s[start:])
	}
	e.writeByte('"')
}

func (e *emitter) writeEscapedRune(r rune) {
	if r == utf8.RuneError {
		r = 0xFFFD
	}
	if r <= 0xFFFF {
		e.writeUEscape(uint16(r))
		return
	}
	r -= 0x10000
	hi := uint16(0xD800 + (r >> 10))
	lo := uint16(0xDC00 + (r & 0x3FF))
	e.writeUEscape(hi)
	e.writeUEscape(lo)
}

func (e *emitter) writeUEscape(v uint16) {
	e.writeString_(`\u`)
	e.writeByte(hexDigits[(v>>12)&0xF])
	e.writeByte(hexDigits[(v>>8)&0xF])
	e.writeByte(hexDigits[(v>>4)&0xF])
	e.writeByte(hexDigits[v&0xF])
}
