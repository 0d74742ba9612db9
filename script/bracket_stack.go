// Package script implements C1 (the paired-bracket stack) and C2 (the
// script resolver) of the layout pipeline: it assigns a concrete ISO 15924
// script to every code point of a text buffer, propagating script across
// Common/Inherited code points and paired brackets per spec §4.1/§4.2.
//
// Grounded on original_source/src/raqm.c's bracket-stack and
// script-itemization sweep; no pack repo implements this exact algorithm,
// so it is original code written in the teacher's documented-port style.
package script

import "github.com/benoitkugler/raqm/unicodedata"

// bracketEntry is one element of the paired-bracket stack (C1).
type bracketEntry struct {
	script    unicodedata.Script
	pairIndex int
}

// bracketStack is a bounded LIFO. Capacity is fixed at creation (spec §4.1:
// "Capacity is fixed at creation"); push on a full stack and pop from an
// empty stack are silent no-ops that report failure, never assertions,
// per spec §4.1.
//
// Discipline: push appends then increments size; top/pop read
// stack[size-1] then decrement. This is the single discipline spec §9
// asks implementers to settle on, resolving the post- vs pre-increment
// mismatch the original sources exhibit across versions.
type bracketStack struct {
	data []bracketEntry
	size int
}

func newBracketStack(capacity int) *bracketStack {
	if capacity < 0 {
		capacity = 0
	}
	return &bracketStack{data: make([]bracketEntry, capacity)}
}

func (s *bracketStack) push(sc unicodedata.Script, pairIndex int) bool {
	if s.size >= len(s.data) {
		return false
	}
	s.data[s.size] = bracketEntry{script: sc, pairIndex: pairIndex}
	s.size++
	return true
}

func (s *bracketStack) pop() (bracketEntry, bool) {
	if s.size == 0 {
		return bracketEntry{}, false
	}
	s.size--
	return s.data[s.size], true
}

func (s *bracketStack) top() (bracketEntry, bool) {
	if s.size == 0 {
		return bracketEntry{}, false
	}
	return s.data[s.size-1], true
}

func (s *bracketStack) empty() bool { return s.size == 0 }

// popUntil discards entries whose PairIndex, with its low bit cleared,
// does not equal want, stopping as soon as the top of the stack matches
// (or the stack empties). The matching entry itself is left on the
// stack rather than popped: original_source/src/raqm.c's closer-handling
// loop (stack_pop while mismatched, then stack_top without a further pop)
// deliberately leaves a matched opener in place so a later, unmatched
// closer of the same bracket type can still resolve against it.
func (s *bracketStack) popUntil(want int) (bracketEntry, bool) {
	for !s.empty() {
		e, _ := s.top()
		if e.pairIndex&^1 == want {
			return e, true
		}
		s.pop()
	}
	return bracketEntry{}, false
}
