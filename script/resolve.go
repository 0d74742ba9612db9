package script

import "github.com/benoitkugler/raqm/unicodedata"

// Resolve assigns a script to every code point of text (C2). The returned
// slice is never unicodedata.ScriptCommon or unicodedata.ScriptInherited
// for a non-empty result, unless the whole input is Common/Inherited, in
// which case every entry is unicodedata.ScriptInvalid (spec §4.2's
// explicit escape hatch; see DESIGN.md's Open Question decision).
func Resolve(text []rune) []unicodedata.Script {
	n := len(text)
	out := make([]unicodedata.Script, n)
	if n == 0 {
		return out
	}

	for i, r := range text {
		out[i] = unicodedata.ScriptOf(r)
	}

	stack := newBracketStack(n)

	var (
		lastScript unicodedata.Script
		haveLast   bool
	)

	for i := 0; i < n; i++ {
		switch s := out[i]; {
		case s == unicodedata.ScriptCommon && haveLast:
			resolved := resolveBracketOrCommon(text[i], lastScript, stack)
			out[i] = resolved.script
			if resolved.adopted {
				lastScript = resolved.script
			}
		case s == unicodedata.ScriptInherited && haveLast:
			out[i] = lastScript
		case s == unicodedata.ScriptCommon || s == unicodedata.ScriptInherited:
			// no concrete script seen yet: left unresolved for now,
			// back-filled below once the first one appears (or stays
			// Invalid for all-neutral text).
		default:
			if !haveLast {
				// the first concrete script seen: back-fill every
				// leading Common/Inherited code point with it.
				for j := 0; j < i; j++ {
					out[j] = s
				}
			}
			lastScript = s
			haveLast = true
		}
	}

	if !haveLast {
		// entire text is Common/Inherited: spec §4.2 permits the
		// Invalid sentinel.
		for i := range out {
			out[i] = unicodedata.ScriptInvalid
		}
	}

	return out
}

type bracketResolution struct {
	script  unicodedata.Script
	adopted bool
}

// resolveBracketOrCommon implements spec §4.2 step 1: bracket lookup,
// opener/closer handling, and the non-bracket Common fallback.
func resolveBracketOrCommon(r rune, lastScript unicodedata.Script, stack *bracketStack) bracketResolution {
	entry, ok := unicodedata.LookupBracket(r)
	if !ok {
		return bracketResolution{script: lastScript}
	}
	if unicodedata.IsOpener(entry.PairIndex) {
		stack.push(lastScript, entry.PairIndex)
		return bracketResolution{script: lastScript}
	}
	want := entry.PairIndex &^ 1
	if matched, found := stack.popUntil(want); found {
		return bracketResolution{script: matched.script, adopted: true}
	}
	return bracketResolution{script: lastScript}
}
