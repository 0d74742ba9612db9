// Package shape implements C5, the shape driver: for each itemized run it
// feeds the run's logical slice of text to a shaping backend, retrieves
// glyphs, and assembles the flat glyph array the engine returns to callers
// (spec §4.5).
//
// The backend itself is treated as an external collaborator (spec §6:
// "Dynamic dispatch ... expose both as interfaces so callers can supply
// mocks in tests"); this package only owns the driving logic and the
// default backend wired to github.com/boxesandglue/textshape is in
// textshape_backend.go.
package shape

import (
	"github.com/benoitkugler/raqm/itemize"
	"github.com/benoitkugler/raqm/unicodedata"
)

// Glyph is one shaped glyph in the flattened output (spec §3's output
// glyph record): XOffset/YOffset are the shaper's own per-glyph placement
// adjustment (e.g. GPOS mark attachment), while XPosition/YPosition are
// the cumulative line position C7 computes on top of them (spec §4.7 step
// 4). The two pairs are deliberately kept distinct so line breaking never
// destroys the shaper's offsets.
type Glyph struct {
	GlyphID     uint16
	XAdvance    int32
	YAdvance    int32
	XOffset     int32
	YOffset     int32
	XPosition   int32
	YPosition   int32
	Cluster     int
	Face        int
	VisualIndex int
	Line        int
}

// Buffer is an opaque per-run shaping buffer handle owned by a Backend.
type Buffer interface{}

// Backend is the abstract shaping capability (spec §6): "create_buffer,
// add_utf32, set_script, set_language, set_direction, shape,
// get_glyph_infos, get_glyph_positions, destroy_buffer".
type Backend interface {
	CreateBuffer(face int) Buffer
	AddUTF32(buf Buffer, text []rune, pos, length int)
	SetScript(buf Buffer, script unicodedata.Script)
	SetLanguage(buf Buffer, language string)
	SetDirection(buf Buffer, dir itemize.Direction)
	Shape(buf Buffer, face int, features []Feature) error
	GlyphInfos(buf Buffer) []GlyphInfo
	GlyphPositions(buf Buffer) []GlyphPosition
	DestroyBuffer(buf Buffer)
}

// GlyphInfo is the backend-reported per-glyph identity (spec §4.5: "index
// (font glyph id) ... cluster").
type GlyphInfo struct {
	GlyphID uint16
	Cluster int
}

// GlyphPosition is the backend-reported per-glyph placement.
type GlyphPosition struct {
	XAdvance, YAdvance, XOffset, YOffset int32
}

// SpacingRange is a half-open [Start,End) logical index range carrying an
// extra advance (spec §4.5: "for each glyph whose cluster falls in a
// spacing range, add letter-spacing to its x_advance").
type SpacingRange struct {
	Start, End int
	Amount     int32
}

// Options configures a Drive call beyond the run list and backend.
type Options struct {
	Features       []Feature
	LetterSpacing  []SpacingRange
	WordSpacing    []SpacingRange
	Text           []rune
	// ClusterByteOffset, if non-nil, rewrites each glyph's cluster from a
	// UTF-32 code point index to the UTF-8 byte offset at that index
	// (spec §4.5: "If a UTF-8 input was provided, rewrite each glyph's
	// cluster from UTF-32 index to the byte offset").
	ClusterByteOffset []int
}

// Drive shapes every run in list order and returns the flattened glyph
// array (spec §4.5's algorithm and flattening step).
func Drive(list *itemize.List, backend Backend, opts Options) []Glyph {
	var out []Glyph

	list.Walk(func(_ int32, r *itemize.Run) {
		buf := backend.CreateBuffer(r.Face)
		defer backend.DestroyBuffer(buf)

		backend.AddUTF32(buf, opts.Text, r.Pos, r.Len)
		backend.SetScript(buf, r.Script)
		backend.SetLanguage(buf, r.Language)
		backend.SetDirection(buf, r.Direction)

		feats := selectFeatures(opts.Features, r.Pos, r.Pos+r.Len)
		if err := backend.Shape(buf, r.Face, feats); err != nil {
			// ShapingFailed: treated as zero glyphs for this run, layout
			// still succeeds (spec §7).
			return
		}

		infos := backend.GlyphInfos(buf)
		positions := backend.GlyphPositions(buf)
		n := len(infos)
		if len(positions) < n {
			n = len(positions)
		}

		for i := 0; i < n; i++ {
			g := Glyph{
				GlyphID:     infos[i].GlyphID,
				Cluster:     infos[i].Cluster,
				XAdvance:    positions[i].XAdvance,
				YAdvance:    positions[i].YAdvance,
				XOffset:     positions[i].XOffset,
				YOffset:     positions[i].YOffset,
				Face:        r.Face,
				VisualIndex: len(out),
			}
			applySpacing(&g, opts)
			out = append(out, g)
		}
	})

	return out
}

// maxFeatureEnd stands in for "to the end of the text" when a feature
// string carries no explicit range end (FeatureGlobalEnd).
const maxFeatureEnd = int(^uint(0) >> 1)

// selectFeatures returns the subset of features whose [Start,End) range
// overlaps the run's [runStart,runEnd) (spec §6: a feature string may
// carry a "[start:end]" range suffix scoping it to part of the text).
// A feature with no suffix (FeatureGlobalStart/FeatureGlobalEnd) always
// overlaps every run.
func selectFeatures(features []Feature, runStart, runEnd int) []Feature {
	if len(features) == 0 {
		return features
	}
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		end := f.End
		if end == FeatureGlobalEnd {
			end = maxFeatureEnd
		}
		if f.Start < runEnd && end > runStart {
			out = append(out, f)
		}
	}
	return out
}

func applySpacing(g *Glyph, opts Options) {
	for _, s := range opts.LetterSpacing {
		if g.Cluster >= s.Start && g.Cluster < s.End {
			g.XAdvance += s.Amount
		}
	}
	if opts.Text != nil && g.Cluster >= 0 && g.Cluster < len(opts.Text) {
		if unicodedata.IsWhiteSpace(opts.Text[g.Cluster]) {
			for _, s := range opts.WordSpacing {
				if g.Cluster >= s.Start && g.Cluster < s.End {
					g.XAdvance += s.Amount
				}
			}
		}
	}
	if opts.ClusterByteOffset != nil && g.Cluster >= 0 && g.Cluster < len(opts.ClusterByteOffset) {
		g.Cluster = opts.ClusterByteOffset[g.Cluster]
	}
}
