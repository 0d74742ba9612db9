package unicodedata

import "unicode"

// GeneralCategory is a two-letter Unicode general category abbreviation,
// e.g. "Lu", "Mn", "Zs", "Cf".
type GeneralCategory string

// twoLetterCategories lists the categories we probe, most specific first.
// unicode.Categories also holds one-letter unions (L, M, N, ...); those are
// deliberately skipped here since a code point should resolve to its most
// specific category.
var twoLetterCategories = []GeneralCategory{
	"Lu", "Ll", "Lt", "Lm", "Lo",
	"Mn", "Mc", "Me",
	"Nd", "Nl", "No",
	"Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po",
	"Sm", "Sc", "Sk", "So",
	"Zs", "Zl", "Zp",
	"Cc", "Cf", "Cs", "Co", "Cn",
}

// CategoryOf returns the general category of r. It returns "Cn"
// (unassigned) if no category table claims the code point, which should
// not happen for any code point reported as assigned by ScriptOf.
func CategoryOf(r rune) GeneralCategory {
	for _, cat := range twoLetterCategories {
		if rt, ok := unicode.Categories[string(cat)]; ok && unicode.Is(rt, r) {
			return cat
		}
	}
	return "Cn"
}

// IsDefaultIgnorable reports whether r belongs to the Unicode
// "default ignorable code point" family this engine substitutes with the
// caller's invisible glyph (spec operation set_invisible_glyph), namely
// format controls (Cf) and the variation-selector/control block, excluding
// the zero-width joiner and non-joiner which must still reach the shaper
// so GSUB rules that key off them keep firing.
func IsDefaultIgnorable(r rune) bool {
	switch r {
	case 0x200C, 0x200D: // ZWNJ, ZWJ
		return false
	}
	if CategoryOf(r) == "Cf" {
		return true
	}
	switch {
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0xE0100 && r <= 0xE01EF: // variation selectors supplement
		return true
	case r == 0x00AD: // soft hyphen
		return true
	}
	return false
}

// IsWhiteSpace reports whether r is Unicode whitespace, used by the shape
// driver to decide whether word spacing applies to a glyph's cluster.
func IsWhiteSpace(r rune) bool {
	return unicode.IsSpace(r)
}
