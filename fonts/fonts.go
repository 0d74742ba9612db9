// Package fonts provides the face abstraction the layout engine shapes
// against: glyph identity, vertical metrics, and the reference-counted
// ownership contract spec §5 requires of every face handed to the engine.
// Adapted from the teacher's font-format-agnostic Font/Fonts/Ressource
// split; the postscript-info and multi-font-file concerns that split
// served are replaced here by the metrics a shape driver actually needs.
package fonts

import "sync/atomic"

// GlyphIndex is used to identify glyphs in a font. It is internal to the
// font and must not be confused with Unicode code points.
type GlyphIndex = uint16

// Ressource is a combination of io.Reader, io.Seeker and io.ReaderAt. This
// interface is satisfied by most things that you'd want to parse, for
// example *os.File, io.SectionReader or *bytes.Buffer.
type Ressource interface {
	Read([]byte) (int, error)
	ReadAt([]byte, int64) (int, error)
	Seek(int64, int) (int64, error)
}

// Metrics holds the vertical metrics the line breaker (package linebreak)
// needs to step from one line to the next, and the horizontal scale a
// shape driver needs to convert font units into layout units.
type Metrics struct {
	UnitsPerEm int
	Ascender   int32
	Descender  int32 // negative, following the sfnt/OpenType convention
	LineGap    int32
}

// Face is a single font face the engine can shape text against. It is the
// generalization of the teacher's Font interface: instead of exposing
// postscript metadata, it exposes what C5 (shape driver) and C7 (line
// breaker) need, plus the reference-count contract spec §5 demands of any
// face the caller hands to the engine.
type Face interface {
	// Metrics returns the face's vertical metrics.
	Metrics() Metrics

	// GlyphIndex returns the glyph id for a Unicode code point, and false
	// when the face has no glyph for it. The engine does not call it:
	// invisible-glyph substitution uses the id given to
	// Engine.SetInvisibleGlyph.
	GlyphIndex(r rune) (GlyphIndex, bool)

	// Reference increments the face's reference count. The engine calls
	// this whenever the face is attached to a font range.
	Reference()

	// Release decrements the reference count, freeing backing resources
	// once it reaches zero. The engine calls this once per matching
	// Reference call, symmetric with the C ABI's reference/destroy pair.
	Release()
}

// RefCounted is an embeddable reference-count implementation for Face
// backends, mirroring the ownership discipline the teacher's FontLoader/
// Font split otherwise leaves to the caller.
type RefCounted struct {
	count int32
	close func()
}

// NewRefCounted returns a RefCounted starting at one reference, invoking
// onZero when the count drops back to zero.
func NewRefCounted(onZero func()) *RefCounted {
	return &RefCounted{count: 1, close: onZero}
}

func (r *RefCounted) Reference() { atomic.AddInt32(&r.count, 1) }

func (r *RefCounted) Release() {
	if atomic.AddInt32(&r.count, -1) == 0 && r.close != nil {
		r.close()
	}
}
