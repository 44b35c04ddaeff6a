package jsonrepair

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLog_RecordsJSONPathWhenEnabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Logging = true
	opts.LogJSONPath = true

	got, log, err := RepairToStringWithLog(`{"a":{"b" 1},"c"}`, opts)
	if err != nil {
		t.Fatalf("RepairToStringWithLog: %v", err)
	}
	if want := `{"a":{"b":1},"c":null}`; got != want {
		t.Fatalf("RepairToStringWithLog output = %q, want %q", got, want)
	}

	var gotPaths [][]PathElem
	for _, e := range log.Entries {
		gotPaths = append(gotPaths, e.Path)
	}
	wantPaths := [][]PathElem{
		{"a", "b"},
		{"c"},
		{"c"},
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("log paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLog_RecordsUnquotedKeyAndStringCategories(t *testing.T) {
	opts := DefaultOptions()
	opts.Logging = true
	_, log, err := RepairToStringWithLog(`{key: value}`, opts)
	if err != nil {
		t.Fatalf("RepairToStringWithLog: %v", err)
	}
	var sawKey, sawString bool
	for _, e := range log.Entries {
		switch e.Category {
		case CategoryUnquotedKey:
			sawKey = true
		case CategoryUnquotedString:
			sawString = true
		}
	}
	if !sawKey {
		t.Error("expected a CategoryUnquotedKey log entry for the unquoted key")
	}
	if !sawString {
		t.Error("expected a CategoryUnquotedString log entry for the unquoted value")
	}
}

func TestLog_PathOmittedWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Logging = true
	_, log, err := RepairToStringWithLog(`{"a":[1,2,]}`, opts)
	if err != nil {
		t.Fatalf("RepairToStringWithLog: %v", err)
	}
	for _, e := range log.Entries {
		if diff := cmp.Diff([]PathElem(nil), e.Path); diff != "" {
			t.Errorf("expected nil path when LogJSONPath is off (-want +got):\n%s", diff)
		}
	}
}
