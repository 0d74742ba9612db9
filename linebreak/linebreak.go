// Package linebreak implements C7: it resolves Unicode line-break classes
// over a text buffer into a per-code-point break_allowed sweep, then lays
// out a flat shaped-glyph array into lines honoring that sweep and the
// six paragraph alignment modes (spec §4.7).
//
// Grounded on original_source/raqm.c's raqm_layout line-breaking and
// alignment code for the overall shape of the algorithm; the pair-table
// lookup itself is a hand-authored approximation of the UAX #14 action
// table (documented per entry in unicodedata.LineBreakAction) since the
// full ~40x40 table was not present in the retrieved sample set.
package linebreak

import (
	"sort"

	"github.com/benoitkugler/raqm/fonts"
	"github.com/benoitkugler/raqm/grapheme"
	"github.com/benoitkugler/raqm/shape"
	"github.com/benoitkugler/raqm/unicodedata"
)

// Alignment is one of the six paragraph alignment modes spec §4.7 names.
type Alignment uint8

const (
	Left Alignment = iota
	Right
	Center
	Full
	Start
	End
)

// BreakAllowed computes, for a text buffer, whether a line break is
// permitted immediately after each code point (spec §4.7's
// break_allowed[i-1] sweep). BreakAllowed(text)[i] answers "may a line
// break after text[i]?" and has the same length as text; the final entry
// is always true (a line may always end at the end of the paragraph).
func BreakAllowed(text []rune) []bool {
	n := len(text)
	out := make([]bool, n)
	if n == 0 {
		return out
	}

	classes := make([]unicodedata.Class, n)
	for i, r := range text {
		classes[i] = unicodedata.LineClassOf(r)
	}
	// Special preprocessing (spec §4.7): "a leading LF or NL is treated as
	// BK; a leading SP is treated as WJ".
	switch classes[0] {
	case unicodedata.LF, unicodedata.NL:
		classes[0] = unicodedata.BK
	case unicodedata.SP:
		classes[0] = unicodedata.WJ
	}

	current := classes[0]
	for i := 0; i < n-1; i++ {
		next := classes[i+1]

		switch current {
		case unicodedata.BK:
			out[i] = true
			current = next
			continue
		case unicodedata.CR:
			out[i] = next != unicodedata.LF
			if next != unicodedata.LF {
				current = next
			} else {
				current = unicodedata.CR
			}
			continue
		case unicodedata.LF, unicodedata.NL:
			out[i] = true
			current = next
			continue
		case unicodedata.SP:
			if next == unicodedata.SP {
				out[i] = false
				current = unicodedata.SP
				continue
			}
		}

		action := unicodedata.LineBreakAction(current, next)
		switch action {
		case unicodedata.DirectBreak:
			out[i] = true
		case unicodedata.IndirectBreak:
			out[i] = current == unicodedata.SP
		case unicodedata.CombiningIndirectBreak:
			out[i] = current == unicodedata.SP
		case unicodedata.CombiningProhibitedBreak:
			out[i] = false
		default:
			out[i] = false
		}

		if next != unicodedata.SP {
			current = next
		} else {
			current = unicodedata.SP
		}
	}
	out[n-1] = true
	return out
}

// Line is a resolved line of glyph indices into the flat array passed to
// Assign, plus its computed vertical position.
type Line struct {
	GlyphStart, GlyphEnd int // [start, end) into the reordered glyph slice
	Y                     int32
}

// Assign lays a flat shaped-glyph array (spec §4.5's glyphs[]) into lines
// of at most lineWidth, mutating glyph.Line on each glyph and returning the
// resolved line boundaries in visual order (spec §4.7's "line assignment"
// algorithm).
//
// faceMetrics maps a glyph's Face field to the font metrics used for the
// vertical step; breakAllowed is the sweep BreakAllowed produced, indexed
// by cluster (code point index).
func Assign(glyphs []shape.Glyph, lineWidth int32, breakAllowed []bool, text []rune, faceMetrics map[int]fonts.Metrics) []Line {
	if len(glyphs) == 0 {
		return nil
	}
	if lineWidth <= 0 {
		// a non-positive width disables line breaking (a single line).
		lineWidth = 1<<31 - 1
	}

	// Step 1: sort to logical order by cluster, stable on visual_index so
	// glyphs sharing a cluster retain their shaped sequence.
	logical := make([]int, len(glyphs))
	for i := range logical {
		logical[i] = i
	}
	sort.SliceStable(logical, func(a, b int) bool {
		return glyphs[logical[a]].Cluster < glyphs[logical[b]].Cluster
	})

	lineOf := make([]int, len(glyphs))
	line := 0
	var x int32
	lastBreak := 0 // index into `logical` of the last confirmed break point

	// breakable reports whether a line may end right after the cluster at
	// logical position idx: the UAX #14 sweep must allow it, and it must
	// also be a grapheme cluster boundary so I5 ("glyphs sharing a cluster
	// with the break position must stay together") never splits a
	// grapheme across lines even when the line-break sweep alone would
	// allow it (e.g. a combining mark sequence at a script boundary).
	breakable := func(idx int) bool {
		c := glyphs[logical[idx]].Cluster
		if c < 0 || c >= len(breakAllowed) {
			return false
		}
		if !breakAllowed[c] {
			return false
		}
		if c+1 < len(text) && !grapheme.BoundaryAllowed(text[c], text[c+1]) {
			return false
		}
		return true
	}

	i := 0
	for i < len(logical) {
		x += glyphs[logical[i]].XOffset + glyphs[logical[i]].XAdvance
		if x > lineWidth && i > lastBreak {
			// rewind to the nearest earlier position with an allowed
			// break; glyphs sharing a cluster with the break point stay
			// together (I5).
			rewind := i
			for rewind > lastBreak && !breakable(rewind-1) {
				rewind--
			}
			if rewind == lastBreak {
				// no break opportunity in this span: force a break here
				// rather than overflow the line indefinitely.
				rewind = i
			}
			for j := lastBreak; j < rewind; j++ {
				lineOf[logical[j]] = line
			}
			// absorb leading whitespace of the next line into the
			// current one, per spec §4.7's "skip leading whitespace of
			// the next line by absorbing trailing spaces".
			for rewind < len(logical) && isWhitespaceCluster(glyphs[logical[rewind]], text) {
				lineOf[logical[rewind]] = line
				rewind++
			}
			line++
			lastBreak = rewind
			x = 0
			i = rewind
			continue
		}
		i++
	}
	for j := lastBreak; j < len(logical); j++ {
		lineOf[logical[j]] = line
	}

	for i, g := range glyphs {
		g.Line = lineOf[i]
		glyphs[i] = g
	}

	// Step 3: re-sort to visual order by (line, visual_index).
	visual := make([]int, len(glyphs))
	for i := range visual {
		visual[i] = i
	}
	sort.SliceStable(visual, func(a, b int) bool {
		ga, gb := glyphs[visual[a]], glyphs[visual[b]]
		if ga.Line != gb.Line {
			return ga.Line < gb.Line
		}
		return ga.VisualIndex < gb.VisualIndex
	})
	reordered := make([]shape.Glyph, len(glyphs))
	for i, idx := range visual {
		reordered[i] = glyphs[idx]
	}
	copy(glyphs, reordered)

	// Step 4: compute y per line using the first glyph's face metrics, and
	// stamp it onto every glyph's YPosition (spec §3's output glyph
	// record: "y_position").
	var lines []Line
	var y int32
	start := 0
	for start < len(glyphs) {
		end := start
		ln := glyphs[start].Line
		for end < len(glyphs) && glyphs[end].Line == ln {
			end++
		}
		m := faceMetrics[glyphs[start].Face]
		lines = append(lines, Line{GlyphStart: start, GlyphEnd: end, Y: y})
		for i := start; i < end; i++ {
			glyphs[i].YPosition = y
		}
		y -= m.Ascender + abs32(m.Descender)
		start = end
	}
	return lines
}

func isWhitespaceCluster(g shape.Glyph, text []rune) bool {
	if g.Cluster < 0 || g.Cluster >= len(text) {
		return false
	}
	return unicodedata.IsWhiteSpace(text[g.Cluster])
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Position assigns XPosition to every glyph in a line, honoring the
// requested alignment (spec §4.7's "Alignment" section). It never touches
// XOffset, which remains the shaper's own per-glyph placement (spec §3).
// paragraphRTL resolves START/END to RIGHT/LEFT; text supplies the
// whitespace test FULL justification needs to find word-space glyphs.
func Position(glyphs []shape.Glyph, lines []Line, lineWidth int32, align Alignment, paragraphRTL bool, text []rune) {
	resolved := align
	switch align {
	case Start:
		if paragraphRTL {
			resolved = Right
		} else {
			resolved = Left
		}
	case End:
		if paragraphRTL {
			resolved = Left
		} else {
			resolved = Right
		}
	}

	for _, ln := range lines {
		x := int32(0)
		xs := make([]int32, ln.GlyphEnd-ln.GlyphStart)
		for i := ln.GlyphStart; i < ln.GlyphEnd; i++ {
			xs[i-ln.GlyphStart] = x
			x += glyphs[i].XOffset + glyphs[i].XAdvance
		}
		trailingX := x

		shift := int32(0)
		switch resolved {
		case Right:
			shift = lineWidth - trailingX
		case Center:
			shift = (lineWidth - trailingX) / 2
		case Full:
			applyJustify(glyphs, ln, lineWidth-trailingX, text)
			// the widened space advances move every glyph after them.
			x = 0
			for i := ln.GlyphStart; i < ln.GlyphEnd; i++ {
				xs[i-ln.GlyphStart] = x
				x += glyphs[i].XOffset + glyphs[i].XAdvance
			}
		}

		for i := ln.GlyphStart; i < ln.GlyphEnd; i++ {
			glyphs[i].XPosition = xs[i-ln.GlyphStart] + shift
		}
	}
}

// applyJustify distributes slack across the word-space glyphs of one line
// by widening each space glyph's advance by an equal share, so that once
// Position lays the line out again the x_position of the glyphs following
// each space grows cumulatively (spec §4.7's FULL description). Implemented with an explicit
// [start,end) index range rather than the original's negative-index walk,
// so there is no underflow when a line has no space to rewind past.
func applyJustify(glyphs []shape.Glyph, ln Line, slack int32, text []rune) {
	if slack <= 0 {
		return
	}
	spaceCount := 0
	for i := ln.GlyphStart; i < ln.GlyphEnd; i++ {
		if isWhitespaceCluster(glyphs[i], text) {
			spaceCount++
		}
	}
	if spaceCount == 0 {
		return
	}
	per := slack / int32(spaceCount)
	for i := ln.GlyphStart; i < ln.GlyphEnd; i++ {
		if isWhitespaceCluster(glyphs[i], text) {
			glyphs[i].XAdvance += per
		}
	}
}
