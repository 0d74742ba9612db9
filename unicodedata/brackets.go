package unicodedata

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// BracketEntry is one half of a paired bracket. PairIndex is even for an
// opener and PairIndex|1 for its matching closer, as required by the
// script resolver sweep (spec §4.2): "even indices are openers, odd are
// closers".
type BracketEntry struct {
	CodePoint rune
	PairIndex int
}

// bracketPairs lists the 17 ASCII/guillemet/general-punctuation/CJK bracket
// pairs the script resolver propagates script across (spec §4.2: "fixed
// table of 34 bracket code points"). Grounded literally on
// original_source/src/raqm.c's paired_chars array (the ground-truth table;
// this port does not invent or substitute pairs raqm does not have).
var bracketPairs = [...][2]rune{
	{0x0028, 0x0029}, // ( ) ascii paired punctuation
	{0x003C, 0x003E}, // < >
	{0x005B, 0x005D}, // [ ]
	{0x007B, 0x007D}, // { }
	{0x00AB, 0x00BB}, // « » guillemets
	{0x2018, 0x2019}, // ‘ ’ general punctuation
	{0x201C, 0x201D}, // “ ”
	{0x2039, 0x203A}, // ‹ ›
	{0x3008, 0x3009}, // 〈 〉 chinese paired punctuation
	{0x300A, 0x300B}, // 《 》
	{0x300C, 0x300D}, // 「 」
	{0x300E, 0x300F}, // 『 』
	{0x3010, 0x3011}, // 【 】
	{0x3014, 0x3015}, // 〔 〕
	{0x3016, 0x3017}, // 〖 〗
	{0x3018, 0x3019}, // 〘 〙
	{0x301A, 0x301B}, // 〚 〛
}

// BracketTable is the flattened, code-point-sorted view of bracketPairs.
// Its length is asserted to be 34 at init time, resolving the "upper = 33
// vs paired_len - 1" discrepancy spec.md §9 flags between historical
// variants: this port picks len(BracketTable) as the single source of
// truth and everything else derives from it.
var BracketTable []BracketEntry

// bracketsAssigned is used as a cheap pre-filter before the binary search
// below, built with rangetable.New the same way the teacher's
// unicodedata/generate/writer.go constructs unicode.RangeTable literals
// with golang.org/x/text/unicode/rangetable.
var bracketsAssigned *unicode.RangeTable

func init() {
	BracketTable = make([]BracketEntry, 0, len(bracketPairs)*2)
	runes := make([]rune, 0, len(bracketPairs)*2)
	for i, pair := range bracketPairs {
		BracketTable = append(BracketTable,
			BracketEntry{CodePoint: pair[0], PairIndex: 2 * i},
			BracketEntry{CodePoint: pair[1], PairIndex: 2*i + 1},
		)
		runes = append(runes, pair[0], pair[1])
	}
	sort.Slice(BracketTable, func(i, j int) bool { return BracketTable[i].CodePoint < BracketTable[j].CodePoint })
	if len(BracketTable) != 34 {
		panic("unicodedata: bracket table must hold exactly 34 entries")
	}
	bracketsAssigned = rangetable.New(runes...)
}

// LookupBracket performs the binary search spec §4.2 describes: a hit
// yields the PairIndex of r. ok is false if r is not a registered bracket
// code point.
func LookupBracket(r rune) (entry BracketEntry, ok bool) {
	if !unicode.Is(bracketsAssigned, r) {
		return BracketEntry{}, false
	}
	lo, hi := 0, len(BracketTable)
	for lo < hi {
		mid := (lo + hi) / 2
		if BracketTable[mid].CodePoint < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(BracketTable) && BracketTable[lo].CodePoint == r {
		return BracketTable[lo], true
	}
	return BracketEntry{}, false
}

// IsOpener reports whether a PairIndex (as returned by LookupBracket)
// identifies an opening bracket.
func IsOpener(pairIndex int) bool { return pairIndex%2 == 0 }
