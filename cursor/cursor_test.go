package cursor

import (
	"testing"

	"github.com/benoitkugler/raqm/shape"
)

func lineGlyphs() []shape.Glyph {
	// "hi" laid out left to right, each glyph 10 units wide.
	return []shape.Glyph{
		{Cluster: 0, XPosition: 0, XAdvance: 10},
		{Cluster: 1, XPosition: 10, XAdvance: 10},
	}
}

func TestIndexToPositionFindsClusterStart(t *testing.T) {
	text := []rune("hi")
	pos, snapped := IndexToPosition(lineGlyphs(), text, 0, 1)
	if snapped != 1 {
		t.Fatalf("expected snapped index 1, got %d", snapped)
	}
	if pos.X != 10 {
		t.Fatalf("expected x=10 at cluster 1, got %d", pos.X)
	}
}

func TestIndexToPositionAtEndOfLine(t *testing.T) {
	text := []rune("hi")
	pos, _ := IndexToPosition(lineGlyphs(), text, 0, 2)
	if pos.X != 20 {
		t.Fatalf("expected x=20 past the last glyph, got %d", pos.X)
	}
}

func TestPositionToIndexBeforeMidpointReturnsCurrentCluster(t *testing.T) {
	text := []rune("hi")
	idx := PositionToIndex(lineGlyphs(), text, 12) // inside glyph 1's span [10,20), before its midpoint 15
	if idx != 1 {
		t.Fatalf("expected cluster 1, got %d", idx)
	}
}

func TestPositionToIndexAfterMidpointReturnsNextCluster(t *testing.T) {
	text := []rune("hi")
	idx := PositionToIndex(lineGlyphs(), text, 17) // inside glyph 1's span [10,20), after its midpoint 15
	if idx != 2 {
		t.Fatalf("expected cluster 2 (end of text), got %d", idx)
	}
}

func TestPositionToIndexNegativeXReturnsStart(t *testing.T) {
	if idx := PositionToIndex(lineGlyphs(), []rune("hi"), -5); idx != 0 {
		t.Fatalf("expected 0 for negative x, got %d", idx)
	}
}
