package shape

import (
	"fmt"
	"sync"

	"github.com/boxesandglue/textshape/ot"

	"github.com/benoitkugler/raqm/itemize"
	"github.com/benoitkugler/raqm/unicodedata"
)

// TextshapeBackend is the default Backend (spec §6), wiring the external
// shaping engine github.com/boxesandglue/textshape's ot package. One
// instance can drive any number of faces; parsed fonts are cached by
// face index so repeated runs against the same face reparse nothing.
//
// Grounded on _examples/grisha-textshape/ot/font.go (ParseFont) and
// ot/shaper.go (Buffer, Shape); the buffer/ package's higher-level Buffer
// is not used here since ot.Shape operates on ot.Buffer directly.
type TextshapeBackend struct {
	mu    sync.Mutex
	fonts map[int]*ot.Font
	data  map[int][]byte
}

// NewTextshapeBackend creates a backend with no fonts registered yet; call
// RegisterFace for every face index used by the runs it will shape.
func NewTextshapeBackend() *TextshapeBackend {
	return &TextshapeBackend{
		fonts: map[int]*ot.Font{},
		data:  map[int][]byte{},
	}
}

// RegisterFace associates a face index (as used in itemize.Run.Face) with
// raw OpenType font bytes.
func (b *TextshapeBackend) RegisterFace(face int, fontData []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[face] = fontData
}

func (b *TextshapeBackend) font(face int) (*ot.Font, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.fonts[face]; ok {
		return f, nil
	}
	data, ok := b.data[face]
	if !ok {
		return nil, fmt.Errorf("shape: no font registered for face %d", face)
	}
	f, err := ot.ParseFont(data, 0)
	if err != nil {
		return nil, err
	}
	b.fonts[face] = f
	return f, nil
}

type textshapeBuffer struct {
	buf *ot.Buffer
}

// CreateBuffer implements Backend.
func (b *TextshapeBackend) CreateBuffer(face int) Buffer {
	return &textshapeBuffer{buf: ot.NewBuffer()}
}

// AddUTF32 implements Backend, feeding text[pos:pos+length] with cluster
// values equal to the logical code point index (spec §4.5 step 2: "feed
// the full UTF-32 text along with (R.pos, R.len) so the shaper preserves
// cluster indices relative to the original text").
func (b *TextshapeBackend) AddUTF32(buf Buffer, text []rune, pos, length int) {
	tb := buf.(*textshapeBuffer)
	slice := text[pos : pos+length]
	codepoints := make([]ot.Codepoint, length)
	for i, r := range slice {
		codepoints[i] = ot.Codepoint(r)
	}
	tb.buf.AddCodepoints(codepoints)
	for i := range tb.buf.Info {
		tb.buf.Info[i].Cluster = pos + i
	}
}

// SetScript implements Backend, translating the ISO 15924 tag into an
// OpenType script tag the shaper understands.
func (b *TextshapeBackend) SetScript(buf Buffer, script unicodedata.Script) {
	tb := buf.(*textshapeBuffer)
	s := string(script)
	if len(s) != 4 {
		return
	}
	tb.buf.Script = ot.MakeTag(s[0], s[1], s[2], s[3])
}

// SetLanguage implements Backend. textshape's ot package keys languages by
// OpenType tag rather than BCP 47; an empty language leaves the shaper's
// default (dflt) untouched.
func (b *TextshapeBackend) SetLanguage(buf Buffer, language string) {
	tb := buf.(*textshapeBuffer)
	if language == "" {
		return
	}
	tag := language
	for len(tag) < 4 {
		tag += " "
	}
	tb.buf.Language = ot.MakeTag(tag[0], tag[1], tag[2], tag[3])
}

// SetDirection implements Backend.
func (b *TextshapeBackend) SetDirection(buf Buffer, dir itemize.Direction) {
	tb := buf.(*textshapeBuffer)
	switch dir {
	case itemize.RTL:
		tb.buf.Direction = ot.DirectionRTL
	case itemize.TTB:
		tb.buf.Direction = ot.DirectionTTB
	default:
		tb.buf.Direction = ot.DirectionLTR
	}
}

// Shape implements Backend, invoking the external shaper with the
// requested feature list (spec §4.5 step 4, spec §6's feature grammar).
func (b *TextshapeBackend) Shape(buf Buffer, face int, features []Feature) error {
	tb := buf.(*textshapeBuffer)
	font, err := b.font(face)
	if err != nil {
		return err
	}
	otFeatures := make([]ot.Feature, len(features))
	for i, f := range features {
		tag := ot.MakeTag(f.Tag[0], f.Tag[1], f.Tag[2], f.Tag[3])
		otFeatures[i] = ot.NewFeature(tag, f.Value)
	}
	return ot.Shape(font, tb.buf, otFeatures)
}

// GlyphInfos implements Backend.
func (b *TextshapeBackend) GlyphInfos(buf Buffer) []GlyphInfo {
	tb := buf.(*textshapeBuffer)
	out := make([]GlyphInfo, len(tb.buf.Info))
	for i, info := range tb.buf.Info {
		out[i] = GlyphInfo{GlyphID: info.GlyphID, Cluster: info.Cluster}
	}
	return out
}

// GlyphPositions implements Backend.
func (b *TextshapeBackend) GlyphPositions(buf Buffer) []GlyphPosition {
	tb := buf.(*textshapeBuffer)
	out := make([]GlyphPosition, len(tb.buf.Pos))
	for i, p := range tb.buf.Pos {
		out[i] = GlyphPosition{
			XAdvance: int32(p.XAdvance),
			YAdvance: int32(p.YAdvance),
			XOffset:  int32(p.XOffset),
			YOffset:  int32(p.YOffset),
		}
	}
	return out
}

// DestroyBuffer implements Backend; ot.Buffer carries no external
// resources, so this is a no-op retained for interface symmetry with the
// create/destroy lifecycle spec §6 names.
func (b *TextshapeBackend) DestroyBuffer(buf Buffer) {}
