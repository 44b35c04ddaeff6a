package jsonrepair

// LeadingZeroPolicy controls how a redundant leading zero in the integer
// part of a number (e.g. "007") is handled.
type LeadingZeroPolicy int

const (
	// KeepAsNumber strips the redundant zeros and emits a number: "007" -> 7.
	KeepAsNumber LeadingZeroPolicy = iota
	// QuoteAsString emits the original digits as a JSON string: "007" -> "007".
	QuoteAsString
)

// defaultMaxDepth bounds recursive-descent nesting so adversarial input
// cannot exhaust the Go call stack.
const defaultMaxDepth = 1024

// Options configures a single repair call. It is a plain configuration
// record, not a builder: construct one with DefaultOptions and flip the
// fields that matter, the way callers configure a Decoder in the teacher
// package. An Options value is never mutated by a repair call and may be
// shared across concurrent calls and goroutines.
type Options struct {
	// TolerateHashComments allows "# ... \n" line comments. Default true.
	TolerateHashComments bool
	// RepairUndefined converts a bare "undefined" token to null. Default true.
	RepairUndefined bool
	// AllowPythonKeywords accepts True/False/None as true/false/null. Default true.
	AllowPythonKeywords bool
	// NormalizeJSNonfinite converts bare NaN/Infinity/-Infinity to null.
	// Default true. When false, these are only accepted inside quoted strings.
	NormalizeJSNonfinite bool
	// FencedCodeBlocks strips a leading ```lang ... ``` wrapper. Default true.
	FencedCodeBlocks bool
	// StreamNDJSONAggregate, in streaming mode, accumulates every top-level
	// value and emits them as a single array on Flush instead of emitting
	// each value as it completes. Default false.
	StreamNDJSONAggregate bool
	// LeadingZeroPolicy governs redundant leading zeros in integers.
	// Default KeepAsNumber.
	LeadingZeroPolicy LeadingZeroPolicy
	// EnsureASCII escapes every codepoint >= 0x80 as \uXXXX (with surrogate
	// pairs above 0x10000). Default false.
	EnsureASCII bool
	// NumberToleranceLeadingDot accepts ".5" as "0.5". Default true.
	NumberToleranceLeadingDot bool
	// NumberToleranceTrailingDot accepts "5." as "5". Default true.
	NumberToleranceTrailingDot bool
	// NumberToleranceIncompleteExponent accepts "1e"/"1e+" as "1". Default true.
	NumberToleranceIncompleteExponent bool
	// NumberQuoteSuspicious quotes a number token followed immediately by
	// non-delimiter garbage as a string instead of truncating it. Default true.
	NumberQuoteSuspicious bool
	// PythonStyleSeparators emits ": " and ", " instead of ":" and ",".
	// Default false.
	PythonStyleSeparators bool
	// AggressiveTruncationFix is not read by the repair engine: a string
	// truncated at end of input is always closed at the truncation point,
	// and every container still open there is closed synthetically,
	// whatever this field says. Default false.
	AggressiveTruncationFix bool
	// AssumeValidJSONFastpath passes the input through unchanged, without
	// running the repair engine, when it already strictly validates as JSON
	// and EnsureASCII is false. Default false.
	AssumeValidJSONFastpath bool
	// ValidateOutput re-parses the emitted bytes with an external strict
	// JSON parser (github.com/json-iterator/go) before returning, surfacing
	// KindUnrecoverableSyntax if that parse fails. This is the optional
	// post-check the spec's Non-goals describe as an external collaborator.
	// Default false.
	ValidateOutput bool

	// Logging enables the Repair Log. Default false.
	Logging bool
	// LogContextWindow is the number of bytes of original-text context
	// captured on either side of a logged position. Default 10.
	LogContextWindow int
	// LogJSONPath records the structural path (object keys / array indices)
	// alongside each log entry. Default false.
	LogJSONPath bool

	// WordCommentMarkers is an additional set of bare identifiers that,
	// when encountered where a token is expected, start a line comment
	// (consumed to end of line). Default empty.
	WordCommentMarkers map[string]bool

	// MaxDepth bounds recursive-descent nesting. Zero means defaultMaxDepth (1024).
	MaxDepth int

	// Logger receives low-volume debug traces from the Streaming Driver.
	// The core engine never requires one; it is an escape hatch for
	// callers that want visibility into push/flush behavior. Default nil
	// (no tracing). See cmd/jsonrepair for a concrete implementation
	// backed by go.uber.org/zap.
	Logger Logger
}

// Logger is the minimal tracing hook the Streaming Driver calls through.
// Selecting a concrete implementation (or none) is the caller's concern,
// not the engine's — the spec explicitly treats "logging framework
// selection" as an external collaborator.
type Logger interface {
	Debugf(format string, args ...any)
}

// DefaultOptions returns the spec's documented defaults (§6.2).
func DefaultOptions() Options {
	return Options{
		TolerateHashComments:              true,
		RepairUndefined:                   true,
		AllowPythonKeywords:               true,
		NormalizeJSNonfinite:              true,
		FencedCodeBlocks:                  true,
		StreamNDJSONAggregate:             false,
		LeadingZeroPolicy:                 KeepAsNumber,
		EnsureASCII:                       false,
		NumberToleranceLeadingDot:         true,
		NumberToleranceTrailingDot:        true,
		NumberToleranceIncompleteExponent: true,
		NumberQuoteSuspicious:             true,
		PythonStyleSeparators:             false,
		AggressiveTruncationFix:           false,
		AssumeValidJSONFastpath:           false,
		ValidateOutput:                    false,
		Logging:                           false,
		LogContextWindow:                  10,
		LogJSONPath:                       false,
		WordCommentMarkers:                nil,
		MaxDepth:                          defaultMaxDepth,
	}
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}
