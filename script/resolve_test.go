package script

import (
	"testing"

	"github.com/benoitkugler/raqm/unicodedata"
)

func TestResolveAllLatin(t *testing.T) {
	got := Resolve([]rune("hello"))
	for i, s := range got {
		if s != "Latn" {
			t.Fatalf("index %d: got %q, want Latn", i, s)
		}
	}
}

func TestResolveAllNeutral(t *testing.T) {
	got := Resolve([]rune("123 456"))
	for i, s := range got {
		if s != unicodedata.ScriptInvalid {
			t.Fatalf("index %d: got %q, want Invalid", i, s)
		}
	}
}

// TestResolveBracketsAdoptSurroundingScript mirrors spec scenario 3:
// "aa (bb) aa" should have both parentheses resolve to Latin, since they
// sit inside a Latin run on both sides.
func TestResolveBracketsAdoptSurroundingScript(t *testing.T) {
	text := []rune("aa (bb) aa")
	got := Resolve(text)
	for i, r := range text {
		if r == '(' || r == ')' {
			if got[i] != "Latn" {
				t.Fatalf("bracket at %d: got %q, want Latn", i, got[i])
			}
		}
	}
}

// TestResolveUnmatchedCloserFallsBackToLastScript covers the "otherwise
// set script[i] <- last_script" branch of spec §4.2 step 1's closer case.
func TestResolveUnmatchedCloserFallsBackToLastScript(t *testing.T) {
	text := []rune("aa)")
	got := Resolve(text)
	if got[2] != "Latn" {
		t.Fatalf("unmatched closer: got %q, want Latn", got[2])
	}
}

// TestResolveClosingBracketAdoptsOpenerScript covers a script change
// inside the bracketed span: the closer should adopt the *opener's*
// script (the one pushed on the stack), not whatever script happens to
// precede the closer.
func TestResolveClosingBracketAdoptsOpenerScript(t *testing.T) {
	// "ا(a)" : Arabic run, then a Latin letter inside parens.
	text := []rune("ا(a)")
	got := Resolve(text)
	if got[1] != "Arab" {
		t.Fatalf("opener: got %q, want Arab", got[1])
	}
	if got[3] != "Arab" {
		t.Fatalf("closer: got %q, want Arab (opener's script)", got[3])
	}
}

// TestResolveExtraUnmatchedCloserReadoptsOpenerScript covers
// original_source/src/raqm.c's closer-handling loop: a matched opener is
// left on the stack (stack_top is read without a further stack_pop), so a
// later, unmatched closer of the same bracket type still resolves against
// it instead of falling back to whatever script most recently changed.
func TestResolveExtraUnmatchedCloserReadoptsOpenerScript(t *testing.T) {
	text := []rune("ا(a)b)")
	got := Resolve(text)
	if got[3] != "Arab" {
		t.Fatalf("first closer: got %q, want Arab (opener's script)", got[3])
	}
	if got[5] != "Arab" {
		t.Fatalf("extra unmatched closer: got %q, want Arab (opener still on stack), not the intervening Latn", got[5])
	}
}

func TestResolveLeadingNeutralPrefixBackfilled(t *testing.T) {
	text := []rune("  hello")
	got := Resolve(text)
	for i := 0; i < 2; i++ {
		if got[i] != "Latn" {
			t.Fatalf("index %d: got %q, want Latn (back-filled)", i, got[i])
		}
	}
}
