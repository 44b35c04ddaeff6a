package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepairToString_StringDialects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double quoted", `["hi"]`, `["hi"]`},
		{"single quoted", `['hi']`, `["hi"]`},
		{"unquoted value", `[hi]`, `["hi"]`},
		{"unquoted value with internal space", `[hello world]`, `["hello world"]`},
		{"unquoted key", `{key: 1}`, `{"key":1}`},
		{"concatenated strings", `["foo" + "bar"]`, `["foobar"]`},
		{"concatenated strings with whitespace", "[\"foo\"\n+\n\"bar\"]", `["foobar"]`},
		{"escapes", `["a\nb\tc"]`, `["a\nb\tc"]`},
		{"unicode escape", "[\"\\u00e9\"]", `["é"]`},
		{"surrogate pair escape", "[\"\\ud83d\\ude00\"]", "[\"\U0001F600\"]"},
		{"unknown escape preserved", `["a\qb"]`, `["a\\qb"]`},
		{"unterminated string at eof", `["abc`, `["abc"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepairToString(tt.in, DefaultOptions())
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRepairToString_StringClosesAtUnescapedNewline(t *testing.T) {
	got, err := RepairToString("\"abc\ndef", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `["abc","def"]`, got)
}

func TestRepairToString_IsolatedSurrogateIsInvalidEscape(t *testing.T) {
	_, err := RepairToString(`["\ud83d"]`, DefaultOptions())
	require.Error(t, err)
	var rerr *RepairError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, KindInvalidEscape, rerr.ErrKind())
}
