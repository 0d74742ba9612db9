// Package grapheme implements C6: classifying code points for UAX #29
// grapheme-cluster boundary detection (spec §4.6), used by C7 (line
// breaking must not split a cluster across lines) and C8 (cursor mapping
// snaps to cluster boundaries).
//
// The classification shape (a small bitmask of GB-rule-relevant
// categories with an `is`/boundary-allowed helper) is grounded on
// other_examples/384beee3_clipperhouse-uax29__graphemes-splitfunc.go.go,
// reworked from a streaming bufio.SplitFunc into a random-access boundary
// predicate since C7/C8 need to query arbitrary (l, r) pairs, not scan
// forward once.
package grapheme

import "github.com/benoitkugler/raqm/unicodedata"

// Class is a grapheme-cluster boundary class (spec §4.6's enumeration).
type Class uint8

const (
	Other Class = iota
	CR
	LF
	Control
	Extend
	RegionalIndicator
	Prepend
	SpacingMark
	HangulL
	HangulV
	HangulT
	HangulLV
	HangulLVT
)

// ClassOf classifies r using the Unicode general category from
// unicodedata plus the explicit exceptions spec §4.6 names (zero-width
// joiners as Extend; spacing-mark carve-outs).
func ClassOf(r rune) Class {
	switch r {
	case '\r':
		return CR
	case '\n':
		return LF
	case 0x200D: // ZERO WIDTH JOINER: treated as Extend, spec §4.6
		return Extend
	}
	if r >= 0x1F1E6 && r <= 0x1F1FF {
		return RegionalIndicator
	}
	if cls, ok := hangulClass(r); ok {
		return cls
	}
	switch unicodedata.CategoryOf(r) {
	case "Cc", "Cf":
		if r == 0x200C { // ZWNJ counts as Extend too, matching ZWJ's carve-out
			return Extend
		}
		return Control
	case "Mn", "Me":
		return Extend
	case "Mc":
		if isSpacingMarkException(r) {
			return Extend
		}
		return SpacingMark
	}
	if isPrepend(r) {
		return Prepend
	}
	return Other
}

func hangulClass(r rune) (Class, bool) {
	switch {
	case r >= 0x1100 && r <= 0x115F:
		return HangulL, true
	case r >= 0x1160 && r <= 0x11A7:
		return HangulV, true
	case r >= 0x11A8 && r <= 0x11FF:
		return HangulT, true
	case r >= 0xAC00 && r <= 0xD7A3:
		if (r-0xAC00)%28 == 0 {
			return HangulLV, true
		}
		return HangulLVT, true
	}
	return Other, false
}

// isSpacingMarkException lists the Thai and Lao SARA AM code points as
// Extend rather than SpacingMark. ClassOf consults it only for code
// points of category Mc; both listed code points are Lo, so no Mc code
// point is carved out by it.
func isSpacingMarkException(r rune) bool {
	switch r {
	case 0x0E33, 0x0EB3: // Thai/Lao SARA AM, decomposable
		return true
	}
	return false
}

func isPrepend(r rune) bool {
	switch {
	case r == 0x0600 || r == 0x0601 || r == 0x0602 || r == 0x0603 || r == 0x06DD || r == 0x070F:
		return true
	case r == 0x110BD || r == 0x110CD:
		return true
	}
	return false
}

// BoundaryAllowed implements spec §4.6's boundary predicate between
// adjacent code points l and r.
func BoundaryAllowed(l, r rune) bool {
	lc, rc := ClassOf(l), ClassOf(r)

	switch {
	case lc == CR && rc == LF: // GB3
		return false
	case lc == Control || lc == CR || lc == LF: // GB4
		return false
	case rc == Control || rc == CR || rc == LF: // GB5
		return false
	case lc == HangulL && (rc == HangulL || rc == HangulV || rc == HangulLV || rc == HangulLVT): // GB6
		return false
	case (lc == HangulV || lc == HangulLV) && (rc == HangulV || rc == HangulT): // GB7
		return false
	case (lc == HangulT || lc == HangulLVT) && rc == HangulT: // GB8
		return false
	case lc == RegionalIndicator && rc == RegionalIndicator: // GB8a
		return false
	case rc == Extend: // GB9
		return false
	case lc == Prepend: // GB9b
		return false
	case rc == SpacingMark: // GB9a
		return false
	}
	return true
}

// Boundaries returns the index of every allowed grapheme-cluster boundary
// in text, excluding the trivial boundary at 0 and at len(text) (GB1/GB2
// are implicit: a boundary always exists at the start and end of text).
func Boundaries(text []rune) []int {
	var out []int
	for i := 1; i < len(text); i++ {
		if BoundaryAllowed(text[i-1], text[i]) {
			out = append(out, i)
		}
	}
	return out
}

// NextBoundary returns the smallest index >= from that is a grapheme
// cluster start (0, len(text), or an allowed boundary), used by C8 to
// snap an arbitrary index to a cluster boundary.
func NextBoundary(text []rune, from int) int {
	if from <= 0 {
		return 0
	}
	if from >= len(text) {
		return len(text)
	}
	for i := from; i < len(text); i++ {
		if i == 0 || BoundaryAllowed(text[i-1], text[i]) {
			return i
		}
	}
	return len(text)
}

// ClusterStart walks backward from index to the start of its grapheme
// cluster.
func ClusterStart(text []rune, index int) int {
	for index > 0 && !BoundaryAllowed(text[index-1], text[index]) {
		index--
	}
	return index
}

// ClusterEnd returns the index one past the end of the grapheme cluster
// starting at (or containing) index.
func ClusterEnd(text []rune, index int) int {
	index = ClusterStart(text, index)
	for index+1 < len(text) && !BoundaryAllowed(text[index], text[index+1]) {
		index++
	}
	return index + 1
}
