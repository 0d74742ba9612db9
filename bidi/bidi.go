// Package bidi implements C3, the BiDi adapter: it calls the Unicode
// Bidirectional Algorithm on a text buffer and re-derives the embedding
// levels and visual run list the rest of the pipeline needs (spec §4.3).
//
// The algorithm itself is explicitly out of scope for this engine (spec
// §1: "the BiDi algorithm itself" is an external collaborator); this
// package is a thin translation layer over golang.org/x/text/unicode/bidi,
// which already implements UAX #9 including rules P2/L1/L2.
package bidi

import (
	"unicode/utf8"

	xbidi "golang.org/x/text/unicode/bidi"
)

// ParagraphDirection mirrors spec §6's set_par_direction input.
type ParagraphDirection uint8

const (
	Default ParagraphDirection = iota
	LTR
	RTL
	TTB
)

// Run is one maximal same-level character range, already placed in visual
// order (spec §3: "a sequence of bidi runs {pos, len, level} in visual
// order").
type Run struct {
	Pos   int
	Len   int
	Level int
}

// Result is C3's full output: levels per code point, paragraph direction
// resolved (for DEFAULT), and the visual run list.
type Result struct {
	Levels    []int
	Direction ParagraphDirection // always LTR, RTL, or TTB after resolution
	Runs      []Run
}

// Resolve runs the BiDi algorithm over text under the requested paragraph
// direction (spec §4.3).
func Resolve(text []rune, parDir ParagraphDirection) Result {
	n := len(text)
	if parDir == TTB || n == 0 {
		levels := make([]int, n)
		runs := []Run{}
		if n > 0 {
			runs = append(runs, Run{Pos: 0, Len: n, Level: 0})
		}
		dir := parDir
		if dir != TTB {
			dir = LTR
		}
		return Result{Levels: levels, Direction: dir, Runs: runs}
	}

	s := string(text)
	// byteToRune[b] is the rune index that UTF-8 byte offset b belongs
	// to; runeStart[r] is the UTF-8 byte offset where rune r begins.
	runeStart := make([]int, n+1)
	off := 0
	for i, r := range text {
		runeStart[i] = off
		off += utf8.RuneLen(r)
	}
	runeStart[n] = off
	byteToRune := make([]int, off+1)
	ri := 0
	for b := 0; b <= off; b++ {
		for ri < n && runeStart[ri+1] <= b {
			ri++
		}
		byteToRune[b] = ri
	}

	var p xbidi.Paragraph
	opts := []xbidi.Option{}
	switch parDir {
	case LTR:
		opts = append(opts, xbidi.DefaultDirection(xbidi.LeftToRight))
	case RTL:
		opts = append(opts, xbidi.DefaultDirection(xbidi.RightToLeft))
	}
	if err := p.SetString(s, opts...); err != nil {
		// malformed input: fall back to a single LTR run over the
		// whole text rather than failing layout outright (spec §7:
		// degenerate input is not an error).
		levels := make([]int, n)
		return Result{Levels: levels, Direction: LTR, Runs: []Run{{Pos: 0, Len: n, Level: 0}}}
	}

	resolvedDir := LTR
	if p.IsLeftToRight() {
		resolvedDir = LTR
	} else if p.Direction() == xbidi.RightToLeft {
		resolvedDir = RTL
	}

	ordering, err := p.Order()
	if err != nil {
		levels := make([]int, n)
		return Result{Levels: levels, Direction: resolvedDir, Runs: []Run{{Pos: 0, Len: n, Level: 0}}}
	}

	levels := make([]int, n)
	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startByte, endByte := run.Position()
		startRune, endRune := byteToRune[startByte], byteToRune[endByte]
		level := levelFor(resolvedDir, run.Direction())
		if endRune > startRune {
			runs = append(runs, Run{Pos: startRune, Len: endRune - startRune, Level: level})
			for j := startRune; j < endRune; j++ {
				levels[j] = level
			}
		}
	}

	return Result{Levels: levels, Direction: resolvedDir, Runs: runs}
}

// levelFor synthesizes an embedding level consistent with invariant I3
// ("a run's direction is RTL iff its level is odd"): golang.org/x/text's
// public API reports each run's resolved direction but not its raw
// numeric level, so the lowest level matching the observed direction and
// the paragraph's base parity is used. This is sufficient for every
// downstream consumer (itemizer traversal order, RTL/LTR glyph output),
// since none of them need embedding depth beyond its parity.
func levelFor(paragraphDir ParagraphDirection, runDir xbidi.Direction) int {
	base := 0
	if paragraphDir == RTL {
		base = 1
	}
	switch runDir {
	case xbidi.LeftToRight:
		if base%2 == 0 {
			return base
		}
		return base + 1
	case xbidi.RightToLeft:
		if base%2 == 1 {
			return base
		}
		return base + 1
	default:
		return base
	}
}
