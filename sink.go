package jsonrepair

import "io"

// sink is what the Emitter writes canonical JSON bytes to directly,
// without ever materializing a tree (§4.6). Both *bytes.Buffer and
// *bufio.Writer satisfy it.
type sink interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}
