package koi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parsedLineCmpOpts lets cmp.Diff walk parsedLine/Value's unexported fields,
// the same cmp.AllowUnexported usage the teacher's own table-driven tests
// use to diff parsed structures (rhogenson-ccl/ccl_test.go).
var parsedLineCmpOpts = cmp.AllowUnexported(parsedLine{}, Value{})

func TestParseCommandBodySingleLiteral(t *testing.T) {
	body := `character Alice "Hello, world!"`
	got, err := parseCommandBody(body, body, 0)
	if err != nil {
		t.Fatalf("parseCommandBody: %v", err)
	}
	want := &parsedLine{
		name:   "character",
		params: []*Value{NewLiteral("Alice"), NewString("Hello, world!")},
	}
	if diff := cmp.Diff(want, got, parsedLineCmpOpts); diff != "" {
		t.Fatalf("parseCommandBody(%q) mismatch (-want +got):\n%s", body, diff)
	}
}

func TestParseCommandBodyDictSingleAndList(t *testing.T) {
	body := `draw Line 2 pos0(x: 0, y: 0) thickness(2) color(255, 255, 255)`
	got, err := parseCommandBody(body, body, 0)
	if err != nil {
		t.Fatalf("parseCommandBody: %v", err)
	}
	want := &parsedLine{
		name: "draw",
		params: []*Value{
			NewLiteral("Line"),
			NewInt(2, RadixDecimal),
			NewDict("pos0", []DictEntry{
				{Key: "x", Value: NewInt(0, RadixDecimal)},
				{Key: "y", Value: NewInt(0, RadixDecimal)},
			}),
			NewSingle("thickness", NewInt(2, RadixDecimal)),
			NewList("color", []*Value{
				NewInt(255, RadixDecimal),
				NewInt(255, RadixDecimal),
				NewInt(255, RadixDecimal),
			}),
		},
	}
	if diff := cmp.Diff(want, got, parsedLineCmpOpts); diff != "" {
		t.Fatalf("parseCommandBody(%q) mismatch (-want +got):\n%s", body, diff)
	}
}

func TestParseCommandBodyEmptyComposite(t *testing.T) {
	body := `meta info()`
	pl, err := parseCommandBody(body, body, 0)
	if err != nil {
		t.Fatalf("parseCommandBody: %v", err)
	}
	info := pl.params[0]
	if info.Kind() != KindDict {
		t.Fatalf("empty composite kind = %v, want Dict", info.Kind())
	}
	entries, _ := info.DictEntries()
	if len(entries) != 0 {
		t.Fatalf("empty composite entries = %+v, want none", entries)
	}
}

func TestParseCommandBodyMixedCompositeIsError(t *testing.T) {
	body := `bad thing(x: 1, 2)`
	_, err := parseCommandBody(body, body, 0)
	if err == nil {
		t.Fatalf("expected MixedComposite error")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrMixedComposite {
		t.Fatalf("got %v, want MixedComposite", err)
	}
}

func TestParseCommandBodyDuplicateKeyReplacesInPlace(t *testing.T) {
	// spec.md §4.7 tags DuplicateKey "warn-level if dict": a repeated key
	// must not abort the parse. It instead replaces the earlier value while
	// keeping its original position, the same semantics value.go's DictSet
	// gives direct callers (value_test.go's
	// TestValueDictOrderPreservedOnDuplicateKey).
	body := `good thing(x: 1, y: 2, x: 3)`
	pl, err := parseCommandBody(body, body, 0)
	if err != nil {
		t.Fatalf("parseCommandBody: %v", err)
	}
	entries, derr := pl.params[0].DictEntries()
	if derr != nil {
		t.Fatalf("DictEntries: %v", derr)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (duplicate key replaces, not appends): %+v", len(entries), entries)
	}
	if entries[0].Key != "x" || entries[1].Key != "y" {
		t.Fatalf("order not preserved: %+v", entries)
	}
	x, _ := entries[0].Value.Int()
	if x != 3 {
		t.Fatalf("x = %d, want 3 (last value wins)", x)
	}
}

func TestParseCommandBodyUnclosedParenIsError(t *testing.T) {
	body := `thing foo(1, 2`
	_, err := parseCommandBody(body, body, 0)
	if err == nil {
		t.Fatalf("expected UnclosedParen error")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrUnclosedParen {
		t.Fatalf("got %v, want UnclosedParen", err)
	}
}

func TestParseCommandBodyNestedParens(t *testing.T) {
	body := `thing outer(inner(1, 2), 3)`
	got, err := parseCommandBody(body, body, 0)
	if err != nil {
		t.Fatalf("parseCommandBody: %v", err)
	}
	want := &parsedLine{
		name: "thing",
		params: []*Value{
			NewList("outer", []*Value{
				NewList("inner", []*Value{NewInt(1, RadixDecimal), NewInt(2, RadixDecimal)}),
				NewInt(3, RadixDecimal),
			}),
		},
	}
	if diff := cmp.Diff(want, got, parsedLineCmpOpts); diff != "" {
		t.Fatalf("parseCommandBody(%q) mismatch (-want +got):\n%s", body, diff)
	}
}

func TestParseCommandBodyEmptyNameIsError(t *testing.T) {
	_, err := parseCommandBody("", "", 0)
	if err == nil {
		t.Fatalf("expected EmptyCommandName error")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrEmptyCommandName {
		t.Fatalf("got %v, want EmptyCommandName", err)
	}
}

func TestParseCommandBodyAdjacentParenRequired(t *testing.T) {
	// A space between a name and its "(" breaks composite association: "foo"
	// parses as a standalone literal, leaving a bare "(" token dangling.
	body := `cmd foo (1)`
	_, err := parseCommandBody(body, body, 0)
	if err == nil {
		t.Fatalf("expected an error for a detached '(' after a bare word")
	}
	e, ok := err.(*Error)
	if !ok || e.Kind != ErrUnexpectedChar {
		t.Fatalf("got %v, want UnexpectedChar", err)
	}
}
