package raqm

import (
	"errors"
	"testing"

	"github.com/benoitkugler/raqm/fonts"
	"github.com/benoitkugler/raqm/itemize"
	"github.com/benoitkugler/raqm/shape"
	"github.com/benoitkugler/raqm/unicodedata"
)

// stubFace is a minimal fonts.Face for tests that never touches real font
// data, standing in for a real SfntFace (spec §8's testing approach).
type stubFace struct {
	*fonts.RefCounted
	metrics fonts.Metrics
}

func newStubFace() *stubFace {
	return &stubFace{RefCounted: fonts.NewRefCounted(func() {}), metrics: fonts.Metrics{Ascender: 10, Descender: -2}}
}

func (f *stubFace) Metrics() fonts.Metrics { return f.metrics }
func (f *stubFace) GlyphIndex(r rune) (fonts.GlyphIndex, bool) { return uint16(r), true }

// stubBackend shapes every run into one glyph per code point with a fixed
// advance, matching spec §6's "expose both as interfaces so callers can
// supply mocks in tests".
type stubBackend struct{}

type stubBuffer struct {
	pos, len int
}

func (stubBackend) CreateBuffer(face int) shape.Buffer { return &stubBuffer{} }

func (stubBackend) AddUTF32(buf shape.Buffer, text []rune, pos, length int) {
	b := buf.(*stubBuffer)
	b.pos, b.len = pos, length
}

func (stubBackend) SetScript(buf shape.Buffer, script unicodedata.Script)  {}
func (stubBackend) SetLanguage(buf shape.Buffer, language string)          {}
func (stubBackend) SetDirection(buf shape.Buffer, dir itemize.Direction)   {}
func (stubBackend) Shape(buf shape.Buffer, face int, features []shape.Feature) error {
	return nil
}

func (stubBackend) GlyphInfos(buf shape.Buffer) []shape.GlyphInfo {
	b := buf.(*stubBuffer)
	out := make([]shape.GlyphInfo, b.len)
	for i := range out {
		out[i] = shape.GlyphInfo{GlyphID: uint16(i + 1), Cluster: b.pos + i}
	}
	return out
}

func (stubBackend) GlyphPositions(buf shape.Buffer) []shape.GlyphPosition {
	b := buf.(*stubBuffer)
	out := make([]shape.GlyphPosition, b.len)
	for i := range out {
		out[i] = shape.GlyphPosition{XAdvance: 10}
	}
	return out
}

func (stubBackend) DestroyBuffer(buf shape.Buffer) {}

func TestLayoutRequiresText(t *testing.T) {
	e := New(stubBackend{})
	if err := e.Layout(); !errors.Is(err, ErrConfigurationIncomplete) {
		t.Fatalf("expected ErrConfigurationIncomplete, got %v", err)
	}
}

func TestLayoutRequiresFaceAssignment(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetText([]rune("hi")); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := e.Layout(); !errors.Is(err, ErrConfigurationIncomplete) {
		t.Fatalf("expected ErrConfigurationIncomplete, got %v", err)
	}
}

func TestLayoutProducesOneGlyphPerCodePoint(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetText([]rune("hello")); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	face := newStubFace()
	if err := e.SetFontRange(face, 0, 5); err != nil {
		t.Fatalf("SetFontRange: %v", err)
	}
	if err := e.Layout(); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	glyphs := e.GetGlyphs()
	if len(glyphs) != 5 {
		t.Fatalf("expected 5 glyphs, got %d: %+v", len(glyphs), glyphs)
	}
}

func TestSetFontRangeRejectsOutOfBoundsRange(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetText([]rune("hi")); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	face := newStubFace()
	if err := e.SetFontRange(face, 1, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSetLanguageRejectsMalformedTag(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetText([]rune("hi")); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := e.SetLanguage("???", 0, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAddFontFeatureRejectsMalformedString(t *testing.T) {
	e := New(stubBackend{})
	if err := e.AddFontFeature("not-a-feature-string"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIndexToPositionAfterLayout(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetText([]rune("hi")); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	face := newStubFace()
	if err := e.SetFontRange(face, 0, 2); err != nil {
		t.Fatalf("SetFontRange: %v", err)
	}
	if err := e.Layout(); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	pos, idx, err := e.IndexToPosition(1)
	if err != nil {
		t.Fatalf("IndexToPosition: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if pos.X != 10 {
		t.Fatalf("expected x=10 at cluster 1, got %d", pos.X)
	}
}

func TestSetTextUTF8RoundTripsThroughIndexToPosition(t *testing.T) {
	e := New(stubBackend{})
	if err := e.SetTextUTF8([]byte("ab")); err != nil {
		t.Fatalf("SetTextUTF8: %v", err)
	}
	face := newStubFace()
	if err := e.SetFontRange(face, 0, 2); err != nil {
		t.Fatalf("SetFontRange: %v", err)
	}
	if err := e.Layout(); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	_, idx, err := e.IndexToPosition(1)
	if err != nil {
		t.Fatalf("IndexToPosition: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected byte offset 1, got %d", idx)
	}
}
