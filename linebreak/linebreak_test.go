package linebreak

import (
	"testing"

	"github.com/benoitkugler/raqm/fonts"
	"github.com/benoitkugler/raqm/shape"
)

func TestBreakAllowedSpaceSeparatedWords(t *testing.T) {
	text := []rune("go run")
	allowed := BreakAllowed(text)
	if len(allowed) != len(text) {
		t.Fatalf("length mismatch: %d vs %d", len(allowed), len(text))
	}
	// a break is allowed right after the space (index 2, "go|_run").
	if !allowed[2] {
		t.Fatalf("expected break allowed after the space, got %v", allowed)
	}
	if allowed[0] {
		t.Fatalf("should not allow a break between 'g' and 'o'")
	}
	if !allowed[len(text)-1] {
		t.Fatalf("final position must always allow a break")
	}
}

func TestBreakAllowedEmptyText(t *testing.T) {
	if got := BreakAllowed(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func flatGlyphs(clusters []int, advance int32) []shape.Glyph {
	out := make([]shape.Glyph, len(clusters))
	for i, c := range clusters {
		out[i] = shape.Glyph{Cluster: c, XAdvance: advance, VisualIndex: i}
	}
	return out
}

func TestAssignBreaksLongLineAtAllowedBoundary(t *testing.T) {
	text := []rune("go run fast")
	allowed := BreakAllowed(text)
	glyphs := flatGlyphs([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 10)
	metrics := map[int]fonts.Metrics{0: {Ascender: 10, Descender: -2}}

	lines := Assign(glyphs, 35, allowed, text, metrics)
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines for a width-constrained run, got %d", len(lines))
	}
	for _, ln := range lines {
		if ln.GlyphEnd <= ln.GlyphStart {
			t.Fatalf("empty line range: %+v", ln)
		}
	}
}

func TestAssignSingleLineWhenItFits(t *testing.T) {
	text := []rune("hi")
	allowed := BreakAllowed(text)
	glyphs := flatGlyphs([]int{0, 1}, 5)
	metrics := map[int]fonts.Metrics{0: {Ascender: 10, Descender: -2}}

	lines := Assign(glyphs, 1000, allowed, text, metrics)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %+v", len(lines), lines)
	}
	if lines[0].GlyphStart != 0 || lines[0].GlyphEnd != 2 {
		t.Fatalf("expected full-range single line, got %+v", lines[0])
	}
}

func TestPositionRightAlignmentShiftsLine(t *testing.T) {
	glyphs := flatGlyphs([]int{0, 1}, 10)
	lines := []Line{{GlyphStart: 0, GlyphEnd: 2}}
	Position(glyphs, lines, 100, Right, false, []rune("ab"))
	if glyphs[0].XPosition != 80 {
		t.Fatalf("expected right-aligned shift of 80, got %d", glyphs[0].XPosition)
	}
	if glyphs[0].XOffset != 0 {
		t.Fatalf("Position must not touch the shaper's own XOffset, got %d", glyphs[0].XOffset)
	}
}

func TestPositionFullJustifyDistributesAcrossSpaces(t *testing.T) {
	text := []rune("a b")
	glyphs := flatGlyphs([]int{0, 1, 2}, 10)
	lines := []Line{{GlyphStart: 0, GlyphEnd: 3}}
	Position(glyphs, lines, 100, Full, false, text)
	// trailingX = 30, slack = 70, one space glyph: all 70 should land on
	// the space glyph's advance, pushing the glyph after it to the right.
	if glyphs[1].XAdvance != 80 {
		t.Fatalf("expected the space glyph's advance to absorb the slack, got %d", glyphs[1].XAdvance)
	}
}

func TestPositionStartEndResolveByParagraphDirection(t *testing.T) {
	glyphsLTR := flatGlyphs([]int{0}, 10)
	Position(glyphsLTR, []Line{{GlyphStart: 0, GlyphEnd: 1}}, 100, Start, false, []rune("a"))
	if glyphsLTR[0].XPosition != 0 {
		t.Fatalf("START under LTR paragraph should behave like LEFT (no shift), got %d", glyphsLTR[0].XPosition)
	}

	glyphsRTL := flatGlyphs([]int{0}, 10)
	Position(glyphsRTL, []Line{{GlyphStart: 0, GlyphEnd: 1}}, 100, Start, true, []rune("a"))
	if glyphsRTL[0].XPosition != 90 {
		t.Fatalf("START under RTL paragraph should behave like RIGHT, got %d", glyphsRTL[0].XPosition)
	}
}
