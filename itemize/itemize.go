// Package itemize implements C4: it splits the BiDi runs produced by
// package bidi into shaping runs that additionally respect script, font
// face, language, and letter/word spacing boundaries (spec §4.4), and
// returns them as an arena-indexed list in visual order.
//
// Grounded on original_source/src/raqm.c's itemization loop
// (raqm_itemize/BREAK_LIST); the arena/index representation follows
// spec §9's own recommendation ("prefer an index-based vector ... over
// pointer chasing") rather than the original's singly linked list.
package itemize

import (
	"github.com/benoitkugler/raqm/bidi"
	"github.com/benoitkugler/raqm/unicodedata"
)

// Direction is a shaping run's writing direction (spec §3's Run.direction
// field).
type Direction uint8

const (
	LTR Direction = iota
	RTL
	TTB
)

// NoNext is the terminal sentinel for Run.Next, standing in for
// Option<NonMaxU32> (spec §9).
const NoNext = -1

// Run is one maximal character range sharing level, script, face,
// language, and spacing attributes (spec §3's shaping run "R").
type Run struct {
	Pos, Len int
	Direction Direction
	Script    unicodedata.Script
	Face      int
	Language  string
	Next      int32
}

// Attrs holds the per-code-point attributes C4 partitions on, besides the
// BiDi level which is already baked into the bidi.Run boundaries.
type Attrs struct {
	Script        []unicodedata.Script
	Face          []int
	Language      []string
	LetterSpacing []int
	WordSpacing   []int
}

type attrKey struct {
	script        unicodedata.Script
	face          int
	language      string
	letterSpacing int
	wordSpacing   int
}

func (a Attrs) at(i int) attrKey {
	return attrKey{
		script:        a.Script[i],
		face:          a.Face[i],
		language:      a.Language[i],
		letterSpacing: a.LetterSpacing[i],
		wordSpacing:   a.WordSpacing[i],
	}
}

// List is the arena of shaping runs, in visual order, starting at Head (or
// NoNext if text was empty).
type List struct {
	Runs []Run
	Head int32
}

// Itemize builds the shaping-run list (spec §4.4). bidiRuns must already
// be in visual order (as produced by bidi.Resolve); attrs must be indexed
// by logical code-point position and have length equal to the BiDi
// result's level slice.
func Itemize(bidiRuns []bidi.Run, ttb bool, attrs Attrs) *List {
	list := &List{Head: NoNext}
	var lastIdx int32 = -1

	appendRun := func(r Run) {
		r.Next = NoNext
		idx := int32(len(list.Runs))
		list.Runs = append(list.Runs, r)
		if lastIdx == -1 {
			list.Head = idx
		} else {
			list.Runs[lastIdx].Next = idx
		}
		lastIdx = idx
	}

	for _, b := range bidiRuns {
		if b.Len == 0 {
			continue
		}
		dir := directionFor(b.Level, ttb)
		ascending := b.Level%2 == 0

		var indices []int
		if ascending {
			indices = make([]int, b.Len)
			for k := 0; k < b.Len; k++ {
				indices[k] = b.Pos + k
			}
		} else {
			indices = make([]int, b.Len)
			for k := 0; k < b.Len; k++ {
				indices[k] = b.Pos + b.Len - 1 - k
			}
		}

		curPos := indices[0]
		curLen := 1
		curAttrs := attrs.at(indices[0])
		curFace := attrs.Face[indices[0]]
		curScript := attrs.Script[indices[0]]
		curLang := attrs.Language[indices[0]]

		for k := 1; k < len(indices); k++ {
			i := indices[k]
			a := attrs.at(i)
			if a == curAttrs {
				curLen++
				if !ascending {
					curPos = i
				}
				continue
			}
			appendRun(Run{Pos: curPos, Len: curLen, Direction: dir, Script: curScript, Face: curFace, Language: curLang})
			curPos, curLen = i, 1
			curAttrs = a
			curFace = attrs.Face[i]
			curScript = attrs.Script[i]
			curLang = attrs.Language[i]
		}
		appendRun(Run{Pos: curPos, Len: curLen, Direction: dir, Script: curScript, Face: curFace, Language: curLang})
	}

	return list
}

func directionFor(level int, ttb bool) Direction {
	if ttb {
		return TTB
	}
	if level%2 == 1 {
		return RTL
	}
	return LTR
}

// Walk calls fn for each run in visual order, starting at list.Head.
func (l *List) Walk(fn func(idx int32, r *Run)) {
	for idx := l.Head; idx != NoNext; idx = l.Runs[idx].Next {
		fn(idx, &l.Runs[idx])
	}
}

// Count returns the number of shaping runs.
func (l *List) Count() int { return len(l.Runs) }
