// Package raqm is the public façade (spec §2/§6): it wires C1–C8 together
// behind the setter/Layout lifecycle
// `New → SetText[UTF8] → SetFontRange* → SetParDirection →
// (SetLanguage* | AddFontFeature* | SetLetterSpacingRange* |
// SetWordSpacingRange* | SetLineWidth | SetAlignment)* → Layout →
// GetGlyphs | IndexToPosition | PositionToIndex`.
//
// Grounded on original_source/src/raqm.c's raqm_t lifecycle (raqm_create,
// raqm_set_text, raqm_set_par_direction, raqm_set_freetype_face,
// raqm_layout) for the overall shape of the control flow, realized with
// Go idioms (explicit error returns, no manual destroy since the garbage
// collector reclaims the Engine once Close has released font references).
package raqm

import (
	"fmt"
	"unicode/utf8"

	xlanguage "golang.org/x/text/language"

	"github.com/benoitkugler/raqm/bidi"
	"github.com/benoitkugler/raqm/cursor"
	"github.com/benoitkugler/raqm/fonts"
	"github.com/benoitkugler/raqm/itemize"
	"github.com/benoitkugler/raqm/linebreak"
	"github.com/benoitkugler/raqm/script"
	"github.com/benoitkugler/raqm/shape"
	"github.com/benoitkugler/raqm/trace"
	"github.com/benoitkugler/raqm/unicodedata"
)

type faceRange struct {
	start, end int
	face       int
}

type stringRange struct {
	start, end int
	value      string
}

type int32Range struct {
	start, end int
	value      int32
}

// Engine is one layout handle (spec §5: "one engine handle is owned by one
// thread at a time"; Engine is not safe for concurrent use).
type Engine struct {
	text       []rune
	utf8Input  bool
	runeToByte []int // runeToByte[i] = byte offset of rune i in the original UTF-8 input
	byteToRune []int // byteToRune[b] = rune index owning byte offset b

	parDir bidi.ParagraphDirection

	faces      []fonts.Face
	faceRanges []faceRange

	languageRanges      []stringRange
	letterSpacingRanges []int32Range
	wordSpacingRanges   []int32Range
	features            []shape.Feature

	lineWidth      int32
	alignment      linebreak.Alignment
	invisibleGlyph uint16
	backend        shape.Backend

	glyphs []shape.Glyph
	lines  []linebreak.Line
	laidOut bool
}

// New creates an empty Engine. backend is the shaping capability C5
// dispatches to (spec §6's "Dynamic dispatch"); pass
// shape.NewTextshapeBackend() for the default real shaper, or a mock in
// tests.
func New(backend shape.Backend) *Engine {
	return &Engine{backend: backend, alignment: linebreak.Left}
}

// SetText sets the text to lay out from a rune slice (spec §6's set_text).
func (e *Engine) SetText(text []rune) error {
	if len(text) == 0 {
		return fmt.Errorf("%w: empty text", ErrInvalidArgument)
	}
	e.text = text
	e.utf8Input = false
	e.runeToByte, e.byteToRune = nil, nil
	e.resetRanges()
	return nil
}

// SetTextUTF8 sets the text to lay out from UTF-8 bytes, retaining the
// byte↔rune maps IndexToPosition/PositionToIndex need to translate back
// to byte offsets (spec §4.8: "If input was UTF-8, convert index through
// the UTF-32↔UTF-8 map on both sides").
func (e *Engine) SetTextUTF8(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("%w: empty text", ErrInvalidArgument)
	}
	runes := make([]rune, 0, len(text))
	runeToByte := make([]int, 0, len(text))
	byteToRune := make([]int, len(text)+1)
	off := 0
	for _, r := range string(text) {
		runeToByte = append(runeToByte, off)
		for b := off; b < off+utf8.RuneLen(r); b++ {
			byteToRune[b] = len(runes)
		}
		runes = append(runes, r)
		off += utf8.RuneLen(r)
	}
	byteToRune[len(text)] = len(runes)
	// a terminal entry lets index_to_position report a byte offset for
	// the one-past-the-end rune index (end of text).
	runeToByte = append(runeToByte, len(text))

	e.text = runes
	e.utf8Input = true
	e.runeToByte = runeToByte
	e.byteToRune = byteToRune
	e.resetRanges()
	return nil
}

func (e *Engine) resetRanges() {
	for _, f := range e.faces {
		f.Release()
	}
	e.faces = nil
	e.faceRanges = nil
	e.languageRanges = nil
	e.letterSpacingRanges = nil
	e.wordSpacingRanges = nil
	e.features = nil
	e.glyphs = nil
	e.lines = nil
	e.laidOut = false
}

func (e *Engine) validateRange(start, length int) error {
	if start < 0 || length < 0 || start+length > len(e.text) {
		return fmt.Errorf("%w: range [%d,%d) out of bounds for text of length %d", ErrInvalidArgument, start, start+length, len(e.text))
	}
	return nil
}

// SetFontRange assigns face to text[start:start+length] (spec §6's
// set_font_range). The engine takes a reference on face (spec §5) and
// releases it when the text is replaced or the Engine is closed.
func (e *Engine) SetFontRange(face fonts.Face, start, length int) error {
	if e.text == nil {
		return fmt.Errorf("%w: SetFontRange called before SetText", ErrInvalidArgument)
	}
	if err := e.validateRange(start, length); err != nil {
		return err
	}
	face.Reference()
	idx := len(e.faces)
	e.faces = append(e.faces, face)
	e.faceRanges = append(e.faceRanges, faceRange{start: start, end: start + length, face: idx})
	return nil
}

// SetParDirection sets the paragraph direction (spec §6's
// set_par_direction).
func (e *Engine) SetParDirection(dir bidi.ParagraphDirection) {
	e.parDir = dir
}

// SetLanguage assigns a BCP 47 language tag to text[start:start+length]
// (spec §6's set_language), validated with golang.org/x/text/language so
// malformed tags are rejected at the boundary rather than silently
// passed through to the shaper.
func (e *Engine) SetLanguage(lang string, start, length int) error {
	if e.text == nil {
		return fmt.Errorf("%w: SetLanguage called before SetText", ErrInvalidArgument)
	}
	if err := e.validateRange(start, length); err != nil {
		return err
	}
	if _, err := xlanguage.Parse(lang); err != nil {
		return fmt.Errorf("%w: invalid language tag %q: %v", ErrInvalidArgument, lang, err)
	}
	e.languageRanges = append(e.languageRanges, stringRange{start: start, end: start + length, value: lang})
	return nil
}

// AddFontFeature appends one OpenType feature setting (spec §6's
// add_font_feature), parsed per spec §6's "+tag"/"-tag"/"tag=N[start:end]"
// grammar.
func (e *Engine) AddFontFeature(featureString string) error {
	f, err := shape.ParseFeature(featureString)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	e.features = append(e.features, f)
	return nil
}

// SetLetterSpacingRange adds amount to the x_advance of every glyph whose
// cluster falls in text[start:start+length] (spec §6/§4.5).
func (e *Engine) SetLetterSpacingRange(amount int32, start, length int) error {
	if e.text == nil {
		return fmt.Errorf("%w: SetLetterSpacingRange called before SetText", ErrInvalidArgument)
	}
	if err := e.validateRange(start, length); err != nil {
		return err
	}
	e.letterSpacingRanges = append(e.letterSpacingRanges, int32Range{start: start, end: start + length, value: amount})
	return nil
}

// SetWordSpacingRange adds amount to the x_advance of every whitespace
// glyph whose cluster falls in text[start:start+length] (spec §6/§4.5).
func (e *Engine) SetWordSpacingRange(amount int32, start, length int) error {
	if e.text == nil {
		return fmt.Errorf("%w: SetWordSpacingRange called before SetText", ErrInvalidArgument)
	}
	if err := e.validateRange(start, length); err != nil {
		return err
	}
	e.wordSpacingRanges = append(e.wordSpacingRanges, int32Range{start: start, end: start + length, value: amount})
	return nil
}

// SetLineWidth sets the maximum line width used by C7's line assignment
// (spec §4.7). A width <= 0 disables line breaking (a single line).
func (e *Engine) SetLineWidth(width int32) {
	e.lineWidth = width
}

// SetAlignment sets the paragraph alignment mode (spec §4.7).
func (e *Engine) SetAlignment(a linebreak.Alignment) {
	e.alignment = a
}

// SetInvisibleGlyph sets the glyph id substituted for default-ignorable
// code points after shaping (supplemented from
// original_source/src/raqm.c's raqm_set_invisible_glyph, named in spec.md
// §6's operation table).
func (e *Engine) SetInvisibleGlyph(gid uint16) {
	e.invisibleGlyph = gid
}

// Close releases the Engine's references on every face registered via
// SetFontRange (spec §5's refcount contract).
func (e *Engine) Close() {
	for _, f := range e.faces {
		f.Release()
	}
	e.faces = nil
}

func rangeLookupFace(ranges []faceRange, i int) int {
	for _, r := range ranges {
		if i >= r.start && i < r.end {
			return r.face
		}
	}
	return -1
}

func rangeLookupString(ranges []stringRange, i int) string {
	for _, r := range ranges {
		if i >= r.start && i < r.end {
			return r.value
		}
	}
	return ""
}

func rangeLookupInt32(ranges []int32Range, i int) int32 {
	for _, r := range ranges {
		if i >= r.start && i < r.end {
			return r.value
		}
	}
	return 0
}

// Layout runs the full pipeline C3→C2→C4→C5→C7 (spec §2/§6) and stores the
// resulting glyphs and lines for GetGlyphs/IndexToPosition/
// PositionToIndex. Re-calling Layout rebuilds everything from the current
// configuration snapshot (spec §5: "prior glyph arrays returned to
// callers are invalidated on the next layout or destroy").
func (e *Engine) Layout() error {
	if len(e.text) == 0 {
		return fmt.Errorf("%w: Layout called without text", ErrConfigurationIncomplete)
	}
	if len(e.faceRanges) == 0 {
		return fmt.Errorf("%w: Layout called without any face assignment", ErrConfigurationIncomplete)
	}

	n := len(e.text)
	trace.Printf("raqm: laying out %d code points\n", n)

	resolvedScript := script.Resolve(e.text)

	bidiResult := bidi.Resolve(e.text, e.parDir)

	attrs := itemize.Attrs{
		Script:        resolvedScript,
		Face:          make([]int, n),
		Language:      make([]string, n),
		LetterSpacing: make([]int, n),
		WordSpacing:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		attrs.Face[i] = rangeLookupFace(e.faceRanges, i)
		attrs.Language[i] = rangeLookupString(e.languageRanges, i)
		attrs.LetterSpacing[i] = int(rangeLookupInt32(e.letterSpacingRanges, i))
		attrs.WordSpacing[i] = int(rangeLookupInt32(e.wordSpacingRanges, i))
	}

	ttb := e.parDir == bidi.TTB
	list := itemize.Itemize(bidiResult.Runs, ttb, attrs)

	if backend, ok := e.backend.(*shape.TextshapeBackend); ok {
		for i, f := range e.faces {
			if sf, ok := f.(interface{ RawData() []byte }); ok {
				backend.RegisterFace(i, sf.RawData())
			}
		}
	}

	letterSpacing := buildSpacingRanges(e.letterSpacingRanges)
	wordSpacing := buildSpacingRanges(e.wordSpacingRanges)

	glyphs := shape.Drive(list, e.backend, shape.Options{
		Text:              e.text,
		Features:          e.features,
		LetterSpacing:     letterSpacing,
		WordSpacing:       wordSpacing,
		ClusterByteOffset: e.runeToByteOrNil(),
	})

	e.applyInvisibleGlyph(glyphs)

	allowed := linebreak.BreakAllowed(e.text)
	faceMetrics := make(map[int]fonts.Metrics, len(e.faces))
	for i, f := range e.faces {
		faceMetrics[i] = f.Metrics()
	}
	lines := linebreak.Assign(glyphs, e.lineWidth, allowed, e.text, faceMetrics)
	linebreak.Position(glyphs, lines, e.lineWidth, e.alignment, bidiResult.Direction == bidi.RTL, e.text)

	e.glyphs = glyphs
	e.lines = lines
	e.laidOut = true
	return nil
}

func (e *Engine) runeToByteOrNil() []int {
	if !e.utf8Input {
		return nil
	}
	return e.runeToByte
}

func buildSpacingRanges(ranges []int32Range) []shape.SpacingRange {
	out := make([]shape.SpacingRange, len(ranges))
	for i, r := range ranges {
		out[i] = shape.SpacingRange{Start: r.start, End: r.end, Amount: r.value}
	}
	return out
}

// applyInvisibleGlyph substitutes e.invisibleGlyph for every glyph whose
// originating code point is default-ignorable, excluding ZWJ/ZWNJ (spec §9
// decision, supplemented from raqm_set_invisible_glyph).
func (e *Engine) applyInvisibleGlyph(glyphs []shape.Glyph) {
	for i := range glyphs {
		c := glyphs[i].Cluster
		if e.utf8Input {
			// Drive has already rewritten clusters to UTF-8 byte offsets.
			if c < 0 || c >= len(e.byteToRune) {
				continue
			}
			c = e.byteToRune[c]
		}
		if c < 0 || c >= len(e.text) {
			continue
		}
		r := e.text[c]
		if r == 0x200D || r == 0x200C {
			continue
		}
		if unicodedata.IsDefaultIgnorable(r) {
			glyphs[i].GlyphID = e.invisibleGlyph
		}
	}
}

// GetGlyphs returns the flattened, positioned glyph array from the most
// recent Layout call (spec §6's get_glyphs).
func (e *Engine) GetGlyphs() []shape.Glyph {
	return e.glyphs
}

func (e *Engine) lineFor(index int) *linebreak.Line {
	for i := range e.lines {
		ln := &e.lines[i]
		for g := ln.GlyphStart; g < ln.GlyphEnd; g++ {
			if e.glyphs[g].Cluster == index {
				return ln
			}
		}
	}
	if len(e.lines) > 0 {
		return &e.lines[len(e.lines)-1]
	}
	return nil
}

// IndexToPosition implements spec §4.8's index_to_position, translating
// through the UTF-32↔UTF-8 byte map on both sides when the engine's text
// was supplied via SetTextUTF8.
func (e *Engine) IndexToPosition(index int) (cursor.Position, int, error) {
	if !e.laidOut {
		return cursor.Position{}, 0, fmt.Errorf("%w: IndexToPosition called before Layout", ErrInvalidArgument)
	}
	runeIndex := index
	if e.utf8Input {
		if index < 0 || index >= len(e.byteToRune) {
			return cursor.Position{}, 0, fmt.Errorf("%w: byte index %d out of range", ErrInvalidArgument, index)
		}
		runeIndex = e.byteToRune[index]
	}

	ln := e.lineFor(runeIndex)
	if ln == nil {
		return cursor.Position{}, index, nil
	}
	pos, snapped := cursor.IndexToPosition(e.glyphs[ln.GlyphStart:ln.GlyphEnd], e.text, ln.Y, runeIndex)

	result := snapped
	if e.utf8Input {
		result = e.runeToByte[snapped]
	}
	return pos, result, nil
}

// PositionToIndex implements spec §4.8's position_to_index.
func (e *Engine) PositionToIndex(x, y int32) (int, error) {
	if !e.laidOut {
		return 0, fmt.Errorf("%w: PositionToIndex called before Layout", ErrInvalidArgument)
	}
	ln := e.lines[0]
	for i := range e.lines {
		if e.lines[i].Y <= y {
			ln = e.lines[i]
		}
	}
	idx := cursor.PositionToIndex(e.glyphs[ln.GlyphStart:ln.GlyphEnd], e.text, x)
	if e.utf8Input && idx >= 0 && idx < len(e.runeToByte) {
		return e.runeToByte[idx], nil
	}
	return idx, nil
}
