// Package unicodedata exposes the small slice of the Unicode Character
// Database this layout engine needs: script identity, general category,
// line-break class, and the paired-bracket table, none of which are
// covered in enough detail by the standard library or by golang.org/x/text
// for this engine's purposes.
package unicodedata

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Script is an ISO 15924 four-letter script tag, e.g. "Latn", "Arab".
type Script string

// Sentinel scripts. ScriptCommon and ScriptInherited are resolved away by
// the script resolver (package script) and should never appear in a final
// script[] array except when ScriptInvalid is reported for all-neutral text.
const (
	ScriptInvalid   Script = ""
	ScriptCommon    Script = "Zyyy"
	ScriptInherited Script = "Zinh"
	ScriptUnknown   Script = "Zzzz"
)

// isoTagByUnicodeName maps the script names used by the standard library's
// unicode.Scripts table to their ISO 15924 tag. Only scripts plausibly
// present in the fixture corpus and common world scripts are listed; a
// code point in an unlisted script resolves to ScriptUnknown.
var isoTagByUnicodeName = map[string]Script{
	"Common":     ScriptCommon,
	"Inherited":  ScriptInherited,
	"Latin":      "Latn",
	"Arabic":     "Arab",
	"Hebrew":     "Hebr",
	"Greek":      "Grek",
	"Cyrillic":   "Cyrl",
	"Han":        "Hani",
	"Hiragana":   "Hira",
	"Katakana":   "Kana",
	"Hangul":     "Hang",
	"Thai":       "Thai",
	"Devanagari": "Deva",
	"Armenian":   "Armn",
	"Georgian":   "Geor",
	"Bengali":    "Beng",
	"Tamil":      "Taml",
	"Telugu":     "Telu",
	"Kannada":    "Knda",
	"Malayalam":  "Mlym",
	"Gujarati":   "Gujr",
	"Gurmukhi":   "Guru",
	"Oriya":      "Orya",
	"Sinhala":    "Sinh",
	"Khmer":      "Khmr",
	"Lao":        "Laoo",
	"Myanmar":    "Mymr",
	"Tibetan":    "Tibt",
	"Thaana":     "Thaa",
	"Ethiopic":   "Ethi",
	"Cherokee":   "Cher",
	"Mongolian":  "Mong",
	"Ogham":      "Ogam",
	"Runic":      "Runr",
	"Yi":         "Yiii",
	"Syriac":     "Syrc",
	"Nko":        "Nkoo",
	"Samaritan":  "Samr",
	"Mandaic":    "Mand",
	"Glagolitic": "Glag",
	"Coptic":     "Copt",
	"Braille":    "Brai",
}

type scriptEntry struct {
	script Script
	table  *unicode.RangeTable
}

var scriptEntries []scriptEntry

// commonOrInheritedSet is the union of the Common and Inherited ranges,
// built with rangetable.Merge so membership can be tested with a single
// unicode.Is call before falling through to the per-script scan below.
var commonOrInheritedSet *unicode.RangeTable

func init() {
	scriptEntries = make([]scriptEntry, 0, len(isoTagByUnicodeName))
	var neutral []*unicode.RangeTable
	for name, tag := range isoTagByUnicodeName {
		rt, ok := unicode.Scripts[name]
		if !ok {
			continue
		}
		if tag == ScriptCommon || tag == ScriptInherited {
			neutral = append(neutral, rt)
		}
		scriptEntries = append(scriptEntries, scriptEntry{script: tag, table: rt})
	}
	// deterministic iteration order, concrete scripts first so a code
	// point belonging to more than one registered table (shouldn't
	// happen for disjoint UCD scripts, but keeps ScriptOf reproducible)
	// always resolves the same way.
	sort.Slice(scriptEntries, func(i, j int) bool { return scriptEntries[i].script < scriptEntries[j].script })
	commonOrInheritedSet = rangetable.Merge(neutral...)
}

// ScriptOf returns the script of r as assigned by the Unicode Character
// Database. It returns ScriptCommon or ScriptInherited for code points
// that are not script-specific (the caller, package script, is
// responsible for propagating a concrete script across those); it never
// itself resolves Common/Inherited to a neighboring script.
func ScriptOf(r rune) Script {
	if unicode.Is(commonOrInheritedSet, r) {
		if unicode.Is(unicode.Scripts["Inherited"], r) {
			return ScriptInherited
		}
		return ScriptCommon
	}
	for _, e := range scriptEntries {
		if e.script == ScriptCommon || e.script == ScriptInherited {
			continue
		}
		if unicode.Is(e.table, r) {
			return e.script
		}
	}
	return ScriptUnknown
}

// IsCommonOrInherited reports whether s is one of the two neutral script
// sentinels that the script resolver must propagate away.
func IsCommonOrInherited(s Script) bool {
	return s == ScriptCommon || s == ScriptInherited
}
