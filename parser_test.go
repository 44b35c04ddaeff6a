package jsonrepair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser_MissingCommaInferred(t *testing.T) {
	got, err := RepairToString(`[1 2 3]`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, got)
}

func TestParser_MissingCommaBeforeNestedContainer(t *testing.T) {
	got, err := RepairToString(`[1 [2] {"a":3}]`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,[2],{"a":3}]`, got)
}

func TestParser_MissingColonInferred(t *testing.T) {
	got, err := RepairToString(`{"a" 1}`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestParser_DanglingKeyEmitsNull(t *testing.T) {
	got, err := RepairToString(`{"a":1,"b"}`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":null}`, got)
}

func TestParser_DanglingKeyAtEndOfInputSynthesizesCloser(t *testing.T) {
	got, err := RepairToString(`{"a":1,"b"`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":null}`, got)
}

func TestParser_TrailingCommaTolerated(t *testing.T) {
	got, err := RepairToString(`[1,2,3,]`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, got)

	got, err = RepairToString(`{"a":1,}`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestParser_SyntheticCloserAtEndOfInput(t *testing.T) {
	got, err := RepairToString(`[1,2,3`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, got)

	got, err = RepairToString(`{"a":1`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestParser_ForeignCloserEndsEnclosingContainer(t *testing.T) {
	// The array never got its own ']' - a '}' appears instead, belonging to
	// an enclosing object that isn't there. The array closes early and the
	// stray '}' is then dropped as a top-level closer.
	got, err := RepairToString(`[1,2}`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, got)

	got, err = RepairToString(`{"a":1]`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got)
}

func TestParser_EllipsisSkippedInArray(t *testing.T) {
	got, err := RepairToString(`[1,2,...,3]`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, got)
}

func TestParser_DepthExactlyAtLimitSucceeds(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	got, err := RepairToString(`[[1]]`, opts)
	require.NoError(t, err)
	require.Equal(t, `[[1]]`, got)
}

func TestParser_DepthOneOverLimitFails(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	_, err := RepairToString(`[[[1]]]`, opts)
	require.Error(t, err)
	var rerr *RepairError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, KindDepthExceeded, rerr.ErrKind())
}

func TestParser_NestedObjectsAndArraysMixedRecovery(t *testing.T) {
	got, err := RepairToString(`{a: [1, 2, {b: 3,}], c: 4,}`, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, `{"a":[1,2,{"b":3}],"c":4}`, got)
}

func TestParser_LogRecordsStructuralRecoveryCategories(t *testing.T) {
	opts := DefaultOptions()
	opts.Logging = true
	_, log, err := RepairToStringWithLog(`[1 2,]`, opts)
	require.NoError(t, err)
	var sawMissingComma, sawTrailingComma bool
	for _, e := range log.Entries {
		switch e.Category {
		case CategoryMissingComma:
			sawMissingComma = true
		case CategoryTrailingComma:
			sawTrailingComma = true
		}
	}
	require.True(t, sawMissingComma, "expected a missing-comma log entry")
	require.True(t, sawTrailingComma, "expected a trailing-comma log entry")
}
