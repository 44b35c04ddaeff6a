// Streaming Driver (§4.7): accepts successive chunks and emits complete
// top-level values as soon as they're confirmed. Rather than encoding
// every scalar/structural reader's mid-construct state as a resumable
// machine, it retries the structural parser over the whole retained
// buffer on every call — grounded on the incremental-decoder shape of
// xenking-jstream/decoder.go, but trading its single-pass token stream for
// this spec's "redo the whole buffer, drop the safe prefix on success"
// rule, which is only correct because the parser is deterministic over its
// input.
package jsonrepair

import (
	"bufio"
	"bytes"
	"io"
)

// Streamer is the Streaming Driver (§3 Streaming Driver State). It is not
// safe for concurrent use.
type Streamer struct {
	w    *bufio.Writer
	opts Options
	log  Log

	buf []byte

	pendingWrapper wrapperKind
	aggregating    bool
	aggregateOpen  bool
	valuesEmitted  int

	sep *emitter // separator-only emitter, for Options.PythonStyleSeparators

	done bool
	err  error
}

// NewStreamer constructs a Streamer writing repaired JSON to w as complete
// top-level values become available.
func NewStreamer(w io.Writer, opts Options) *Streamer {
	bw := bufio.NewWriter(w)
	return &Streamer{
		w:           bw,
		opts:        opts,
		aggregating: opts.StreamNDJSONAggregate,
		sep:         newEmitter(bw, opts),
	}
}

// Push appends chunk to the driver's retained buffer and emits every
// top-level value that can now be confirmed complete. It returns a
// non-nil error only for InputTooLarge/DepthExceeded/UnrecoverableSyntax/
// InvalidEscape/WriterFailure (§7); the driver is unusable after that.
func (s *Streamer) Push(chunk []byte) error {
	if s.err != nil {
		return s.err
	}
	if s.done {
		return newError(KindUnrecoverableSyntax, 0, "Push called after Flush")
	}
	if s.opts.Logger != nil {
		s.opts.Logger.Debugf("jsonrepair: push %d bytes, %d buffered", len(chunk), len(s.buf))
	}
	if len(s.buf)+len(chunk) > maxInputBytes {
		s.err = newError(KindInputTooLarge, maxInputBytes, "streaming buffer exceeds maximum size")
		return s.err
	}
	s.buf = append(s.buf, chunk...)
	if err := s.drain(false); err != nil {
		s.err = err
		return err
	}
	if s.err == nil {
		if err := s.w.Flush(); err != nil {
			s.err = wrapWriterError(len(s.buf), err)
		}
	}
	return s.err
}

// Flush signals end of input: any remaining buffered content is parsed in
// final mode (synthetic closers, dangling-key nulls, and the rest of the
// recovery rules all apply, same as the non-streaming entry point), the
// NDJSON aggregation array (if any) is closed, and the underlying writer
// is flushed.
func (s *Streamer) Flush() error {
	if s.err != nil {
		return s.err
	}
	if s.done {
		return nil
	}
	if err := s.drain(true); err != nil {
		s.err = err
		return err
	}
	if s.aggregating && s.aggregateOpen {
		s.writeRawToSink([]byte("]"))
	}
	s.done = true
	if err := s.w.Flush(); err != nil {
		werr := wrapWriterError(len(s.buf), err)
		s.err = werr
		return werr
	}
	return s.err
}

// Log returns the repair log accumulated across every Push/Flush call so
// far.
func (s *Streamer) Log() Log { return s.log }

// drain repeatedly attempts to parse one top-level value from the
// retained buffer, committing and dropping its consumed prefix on success,
// until no further progress can be made without more input (or, in final
// mode, until the buffer is exhausted).
func (s *Streamer) drain(final bool) error {
	for {
		consumed, output, ok, err := s.attemptOne(final)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if s.opts.Logger != nil {
			s.opts.Logger.Debugf("jsonrepair: committed value #%d, %d bytes consumed, %d remain buffered", s.valuesEmitted+1, consumed, len(s.buf)-consumed)
		}
		s.commit(output)
		s.buf = s.buf[consumed:]
		if len(s.buf) == 0 && !final {
			return nil
		}
	}
}

// attemptOne re-parses the entire retained buffer from scratch with a
// fresh, disposable emitter writing into an in-memory buffer rather than
// the real sink. Only once a value is fully confirmed — and, for a
// document that opened with a fenced/JSONP wrapper, only once that
// wrapper's closing half has also been observed, or final is true — is its
// output and consumed byte count reported back to drain.
func (s *Streamer) attemptOne(final bool) (consumed int, output []byte, ok bool, err error) {
	src := string(s.buf)
	var tmp bytes.Buffer
	tmpEmit := newEmitter(&tmp, s.opts)
	log := s.log // copy; entries appended during a failed/incomplete attempt are discarded
	p := newParser(src, s.opts, tmpEmit, &log, final)
	p.pendingWrapper = s.pendingWrapper

	found, perr := p.parseOneTopLevelValue()
	if perr != nil {
		if perr == errNeedMoreData {
			return 0, nil, false, nil
		}
		return 0, nil, false, perr
	}
	if !found {
		return 0, nil, false, nil
	}
	if tmpEmit.Err() != nil {
		return 0, nil, false, wrapWriterError(p.cur.position(), tmpEmit.Err())
	}
	if p.pendingWrapper != wrapperNone {
		// Consume the wrapper's closing half if it follows this value, so it
		// becomes part of the committed prefix.
		if err := p.skipInsignificant(); err != nil {
			if err == errNeedMoreData {
				return 0, nil, false, nil
			}
			return 0, nil, false, err
		}
	}
	if !final && p.pendingWrapper != wrapperNone {
		// The value parsed cleanly, but its enclosing wrapper hasn't closed
		// yet; wait for more input rather than committing prematurely.
		return 0, nil, false, nil
	}

	s.log = log
	s.pendingWrapper = p.pendingWrapper
	return p.cur.position(), tmp.Bytes(), true, nil
}

// commit writes one confirmed value's bytes to the real sink, applying
// NDJSON aggregation framing when enabled. The separator between values
// goes through the emitter's comma(), not a literal byte, so it respects
// Options.PythonStyleSeparators the same way the non-streaming aggregator
// in jsonrepair.go does.
func (s *Streamer) commit(output []byte) {
	if s.aggregating {
		if !s.aggregateOpen {
			s.writeRawToSink([]byte("["))
			s.aggregateOpen = true
		} else {
			s.sep.comma()
			if s.sep.Err() != nil {
				s.err = wrapWriterError(len(s.buf), s.sep.Err())
				return
			}
		}
	}
	s.writeRawToSink(output)
	s.valuesEmitted++
}

func (s *Streamer) writeRawToSink(b []byte) {
	if s.err != nil {
		return
	}
	if _, err := s.w.Write(b); err != nil {
		s.err = wrapWriterError(len(s.buf), err)
	}
}
