package fonts

import (
	"golang.org/x/image/font/sfnt"
)

// SfntFace is the default Face implementation, backed by
// golang.org/x/image/font/sfnt (a complete TrueType/OpenType parser),
// replacing the teacher's partial truetype/type1C fragments which only
// ever covered glyph outline/bitmap rendering, a concern the font
// rasterizer (explicitly out of scope, spec §1) would own, not this
// engine.
type SfntFace struct {
	*RefCounted
	font    *sfnt.Font
	buf     sfnt.Buffer
	metrics Metrics
	data    []byte
}

// NewSfntFace parses data as an SFNT font and wraps it as a Face. The
// returned face starts with one reference, matching the ownership
// contract of fonts.Face.
func NewSfntFace(data []byte) (*SfntFace, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	face := &SfntFace{font: f, data: data}
	face.RefCounted = NewRefCounted(func() {})

	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, 0, sfnt.HintingNone)
	if err != nil {
		return nil, err
	}
	upm, err := f.UnitsPerEm()
	if err != nil {
		return nil, err
	}
	face.metrics = Metrics{
		UnitsPerEm: int(upm),
		Ascender:   int32(m.Ascent.Round()),
		Descender:  -int32(m.Descent.Round()),
		LineGap:    int32(m.Height.Round()) - int32(m.Ascent.Round()) - int32(m.Descent.Round()),
	}
	return face, nil
}

// Metrics implements Face.
func (f *SfntFace) Metrics() Metrics { return f.metrics }

// RawData returns the original font bytes, letting consumers outside this
// package (the shaping backend, which needs its own OpenType table parser)
// reparse the same font without a second copy on disk.
func (f *SfntFace) RawData() []byte { return f.data }

// GlyphIndex implements Face.
func (f *SfntFace) GlyphIndex(r rune) (GlyphIndex, bool) {
	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return GlyphIndex(gid), true
}
