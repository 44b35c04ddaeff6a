package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The non-streaming end-to-end scenarios; the two streaming ones are in
// stream_test.go.
func TestRepairToString_EndToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts func(Options) Options
		want string
	}{
		{
			name: "unquoted keys, single-quoted strings, trailing comma",
			in:   `{name: 'John', age: 30,}`,
			want: `{"name":"John","age":30}`,
		},
		{
			name: "python and JS keyword tolerance",
			in:   `{a: True, b: False, c: None, d: undefined}`,
			want: `{"a":true,"b":false,"c":null,"d":null}`,
		},
		{
			name: "fenced code block wrapper",
			in:   "```json\n{\"x\":1}\n```",
			want: `{"x":1}`,
		},
		{
			name: "JSONP wrapper",
			in:   `callback({a:1});`,
			want: `{"a":1}`,
		},
		{
			name: "leading/trailing dot and NaN",
			in:   `{a: .5, b: 1., c: NaN}`,
			want: `{"a":0.5,"b":1,"c":null}`,
		},
		{
			name: "ensure_ascii escapes non-ASCII",
			in:   `{"s":"中文"}`,
			opts: func(o Options) Options { o.EnsureASCII = true; return o },
			want: "{\"s\":\"\\u4e2d\\u6587\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				opts = tt.opts(opts)
			}
			got, err := RepairToString(tt.in, opts)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRepairToString_Boundaries(t *testing.T) {
	opts := DefaultOptions()

	got, err := RepairToString("", opts)
	require.NoError(t, err)
	require.Equal(t, "", got)

	got, err = RepairToString("  \n// just a comment\n  ", opts)
	require.NoError(t, err)
	require.Equal(t, "", got)

	got, err = RepairToString(`]`, opts)
	require.NoError(t, err)
	require.Equal(t, "", got) // stray closer with nothing open: dropped, no value
}

func TestRepairToString_DepthExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2

	_, err := RepairToString(`[[[1]]]`, opts)
	require.Error(t, err)
	var rerr *RepairError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, KindDepthExceeded, rerr.ErrKind())
}

func TestRepairToString_NDJSONAggregation(t *testing.T) {
	opts := DefaultOptions()
	got, err := RepairToString("{\"a\":1}\n{\"b\":2}\n{\"c\":3}", opts)
	require.NoError(t, err)
	require.Equal(t, `[{"a":1},{"b":2},{"c":3}]`, got)
}

func TestRepairToString_AssumeValidJSONFastpath(t *testing.T) {
	opts := DefaultOptions()
	opts.AssumeValidJSONFastpath = true
	const strict = `{"a":1,"b":[true,false,null]}`
	got, err := RepairToString(strict, opts)
	require.NoError(t, err)
	require.Equal(t, strict, got)
}

func TestRepairToString_ValidateOutputPassesOnValidRepair(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidateOutput = true
	got, err := RepairToString(`{a: 1,}`, opts)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestRepairToStringWithLog_RecordsCategories(t *testing.T) {
	opts := DefaultOptions()
	opts.Logging = true
	_, log, err := RepairToStringWithLog(`{a: 1, b: 2,}`, opts)
	require.NoError(t, err)
	require.NotEmpty(t, log.Entries)

	var sawTrailingComma bool
	for _, e := range log.Entries {
		if e.Category == CategoryTrailingComma {
			sawTrailingComma = true
		}
	}
	require.True(t, sawTrailingComma)
}
