// Package jsonrepair turns loose, hand-edited, or model-generated
// JSON-like text into strictly valid JSON: fixing quoting, closing
// unterminated containers and strings, inferring missing commas and
// colons, and tolerating the handful of JS/Python-isms (True/False/None,
// NaN/Infinity, trailing commas, `#`/`//` comments) that show up in the
// wild. See Options for the full list of tolerances.
package jsonrepair

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// maxInputBytes bounds how much text a single repair call (or a
// Streamer's retained buffer) will hold before giving up with
// KindInputTooLarge, guarding the "retry the whole buffer" streaming
// model against unbounded memory growth on a caller that never closes a
// value.
const maxInputBytes = 64 << 20

// RepairToString repairs input and returns the canonical JSON text.
func RepairToString(input string, opts Options) (string, error) {
	s, _, err := RepairToStringWithLog(input, opts)
	return s, err
}

// RepairToWriter repairs input and writes the canonical JSON text to w.
func RepairToWriter(w io.Writer, input string, opts Options) error {
	_, err := repair(input, opts, w, nil)
	return err
}

// RepairToStringWithLog repairs input and additionally returns the repair
// log describing every tolerated malformation (empty unless
// Options.Logging is set).
func RepairToStringWithLog(input string, opts Options) (string, Log, error) {
	var buf bytes.Buffer
	var log Log
	_, err := repair(input, opts, &buf, &log)
	return buf.String(), log, err
}

// repair drives the non-streaming entry point: optional strict-JSON
// fastpath, one or more top-level values parsed via the Structural Parser,
// NDJSON aggregation when more than one value is found, and an optional
// post-repair strict-JSON validation.
//
// Each top-level value is parsed into its own scratch buffer first (rather
// than straight to w) because NDJSON aggregation needs to know whether a
// second value exists — and hence whether the first needs a "[" it
// couldn't have known to emit — before anything reaches the real sink.
func repair(input string, opts Options, w io.Writer, logOut *Log) (int, error) {
	if len(input) > maxInputBytes {
		return 0, newError(KindInputTooLarge, maxInputBytes, "input exceeds maximum size")
	}

	if opts.AssumeValidJSONFastpath && !opts.EnsureASCII && jsoniter.Valid([]byte(input)) {
		n, err := io.WriteString(w, input)
		if err != nil {
			return n, wrapWriterError(0, err)
		}
		return n, nil
	}

	var log Log
	values, pos, err := parseAllTopLevelValues(input, opts, &log)
	if logOut != nil {
		*logOut = log
	}
	if err != nil {
		return 0, err
	}

	output := aggregate(values, opts)

	if opts.ValidateOutput && !jsoniter.Valid(output) {
		return 0, newError(KindUnrecoverableSyntax, pos, "emitted output failed post-repair validation")
	}

	n, werr := w.Write(output)
	if werr != nil {
		return n, wrapWriterError(pos, werr)
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return n, wrapWriterError(pos, err)
		}
	}
	return n, nil
}

// parseAllTopLevelValues parses every top-level value in the input (§6.1's
// "continues parsing additional top-level values"), each into its own
// emitted buffer, along with the final cursor position. A single parser is
// reused across attempts (only its emitter is swapped) so that state
// spanning top-level values — notably a pending wrapper's closing half —
// carries forward correctly.
func parseAllTopLevelValues(input string, opts Options, log *Log) (values [][]byte, pos int, err error) {
	p := newParser(input, opts, nil, log, true)
	for {
		var scratch bytes.Buffer
		emit := newEmitter(&scratch, opts)
		p.emit = emit

		found, perr := p.parseOneTopLevelValue()
		if perr != nil {
			return values, p.cur.position(), perr
		}
		if emit.Err() != nil {
			return values, p.cur.position(), wrapWriterError(p.cur.position(), emit.Err())
		}
		if !found {
			return values, p.cur.position(), nil
		}
		values = append(values, scratch.Bytes())
	}
}

// aggregate wraps more than one top-level value into a JSON array (NDJSON
// aggregation); a single value, or none, passes through unwrapped.
func aggregate(values [][]byte, opts Options) []byte {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return values[0]
	}
	var out bytes.Buffer
	emit := newEmitter(&out, opts)
	out.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			emit.comma()
		}
		out.Write(v)
	}
	out.WriteByte(']')
	return out.Bytes()
}
