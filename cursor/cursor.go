// Package cursor implements C8: mapping a logical character index to a
// visual x/y position and back, snapping to grapheme-cluster boundaries so
// a caret never lands inside a cluster (spec §4.8).
//
// Operates on a line's glyphs after linebreak.Position has run, at which
// point each glyph's XPosition holds its absolute x position on the line
// (spec §3's output glyph record) and XAdvance its advance width.
package cursor

import (
	"github.com/benoitkugler/raqm/grapheme"
	"github.com/benoitkugler/raqm/shape"
)

// Position is a resolved caret location.
type Position struct {
	X, Y int32
}

// IndexToPosition implements spec §4.8's index_to_position: it snaps index
// forward to the next allowed grapheme boundary, finds the first glyph in
// visual order whose cluster equals the snapped index, and reports that
// glyph's XPosition, the start of the cluster.
func IndexToPosition(glyphs []shape.Glyph, text []rune, y int32, index int) (Position, int) {
	index = grapheme.NextBoundary(text, index)

	for _, g := range glyphs {
		if g.Cluster == index {
			return Position{X: g.XPosition, Y: y}, index
		}
	}
	// index falls past the last glyph's cluster (end of line/text): report
	// the position just after the final glyph.
	if len(glyphs) > 0 {
		last := glyphs[len(glyphs)-1]
		return Position{X: last.XPosition + last.XAdvance, Y: y}, index
	}
	return Position{X: 0, Y: y}, index
}

// PositionToIndex implements spec §4.8's position_to_index: it finds the
// glyph whose span [XPosition, XPosition+XAdvance) contains x and
// decides before/after by comparing against the glyph's midpoint,
// returning either that glyph's cluster or the following glyph's cluster.
// The result is then advanced to the next allowed grapheme boundary.
// x < 0 returns the paragraph start index.
func PositionToIndex(glyphs []shape.Glyph, text []rune, x int32) int {
	if x < 0 || len(glyphs) == 0 {
		return 0
	}

	for i, g := range glyphs {
		start := g.XPosition
		end := g.XPosition + g.XAdvance
		if x < start || x >= end {
			continue
		}
		mid := start + g.XAdvance/2
		var idx int
		if x < mid {
			idx = g.Cluster
		} else if i+1 < len(glyphs) {
			idx = glyphs[i+1].Cluster
		} else {
			idx = g.Cluster + 1
		}
		return grapheme.NextBoundary(text, idx)
	}

	last := glyphs[len(glyphs)-1]
	if x >= last.XPosition+last.XAdvance {
		return grapheme.NextBoundary(text, last.Cluster+1)
	}
	return grapheme.NextBoundary(text, glyphs[0].Cluster)
}
