package fonts

import "encoding/binary"

// Tag represents an OpenType feature or table tag. These are technically
// uint32's, but are usually displayed in ASCII as they are all acronyms.
// Adapted from the teacher's truetype.Tag.
// See https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6.html#Overview
type Tag uint32

// MustNewTag gives you the Tag corresponding to the acronym. This function
// will panic if the string passed in is not 4 bytes long.
func MustNewTag(str string) Tag {
	b := []byte(str)
	if len(b) != 4 {
		panic("fonts: invalid tag: must be exactly 4 bytes")
	}
	return newTag(b)
}

// NewTag is the non-panicking counterpart of MustNewTag, used when parsing
// feature strings supplied by a caller (spec §6's `+tag`/`-tag`/`tag=N`
// grammar).
func NewTag(str string) (Tag, bool) {
	b := []byte(str)
	if len(b) != 4 {
		return 0, false
	}
	return newTag(b), true
}

func newTag(b []byte) Tag {
	return Tag(binary.BigEndian.Uint32(b))
}

// String returns the ASCII representation of the tag.
func (t Tag) String() string {
	return string([]byte{
		byte(t >> 24 & 0xFF),
		byte(t >> 16 & 0xFF),
		byte(t >> 8 & 0xFF),
		byte(t & 0xFF),
	})
}
