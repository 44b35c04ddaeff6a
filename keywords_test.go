package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepairToString_Keywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts func(Options) Options
		want string
	}{
		{"true", `[true]`, nil, `[true]`},
		{"false", `[false]`, nil, `[false]`},
		{"null", `[null]`, nil, `[null]`},
		{"python True", `[True]`, nil, `[true]`},
		{"python False", `[False]`, nil, `[false]`},
		{"python None", `[None]`, nil, `[null]`},
		{"undefined", `[undefined]`, nil, `[null]`},
		{"NaN", `[NaN]`, nil, `[null]`},
		{"Infinity", `[Infinity]`, nil, `[null]`},
		{"-Infinity", `[-Infinity]`, nil, `[null]`},
		{"identifier prefixed with keyword not matched", `[nullable]`, nil, `["nullable"]`},
		{"python keywords disabled falls back to unquoted string", `[True]`, func(o Options) Options {
			o.AllowPythonKeywords = false
			return o
		}, `["True"]`},
		{"regex literal", `[/abc/gi]`, nil, `["/abc/gi"]`},
		{"regex literal with escaped slash", `[/a\/b/]`, nil, `["/a/b/"]`},
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
