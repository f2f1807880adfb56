// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// This file implements component B: SFNT container detection and the
// table directory. Grounded on freetype/truetype/truetype.go's Parse,
// generalized from "TrueType 1.0 only" to also recognize TTC, OTTO and
// Apple's "true" tag, per spec.md section 4.B.

const (
	tagTrueType1 = 0x00010000 // '\x00\x01\x00\x00'
	tagOTTO      = 0x4f54544f // "OTTO"
	tagApple     = 0x74727565 // "true"
	tagTyp1      = 0x74797031 // "typ1"
	tagTTC       = 0x74746366 // "ttcf"
)

// NumberOfFonts returns 1 for a plain SFNT font, the number of fonts in
// a TrueType Collection, or -1 if buf's header is not recognized.
func NumberOfFonts(buf []byte) int {
	switch u32(buf, 0) {
	case tagTrueType1, tagOTTO, tagApple:
		return 1
	case tagTTC:
		return int(u32(buf, 8))
	default:
		return -1
	}
}

// FontOffsetForIndex returns the byte offset of the i'th font in buf, or
// -1 if i is out of range or buf's header is not recognized.
func FontOffsetForIndex(buf []byte, index int) int {
	switch u32(buf, 0) {
	case tagTrueType1, tagOTTO, tagApple:
		if index == 0 {
			return 0
		}
		return -1
	case tagTTC:
		n := int(u32(buf, 8))
		if index < 0 || index >= n {
			return -1
		}
		off := int(u32(buf, 12+4*index))
		if off <= 0 {
			return -1
		}
		return off
	default:
		return -1
	}
}

// table records a table's location within the font buffer.
type table struct {
	offset, length uint32
}

func (t table) empty() bool { return t.length == 0 }

func (t table) bytes(buf []byte) []byte {
	return sub(buf, int(t.offset), int(t.length))
}

// findTable walks the 16-byte directory records starting at fontStart
// and returns the first record matching tag, or the zero table if not
// found. Table lengths always come from the directory, never assumed.
func findTable(buf []byte, fontStart int, tag uint32) table {
	if u32(buf, fontStart) == tagTTC {
		// Should not normally be called with a TTC start; defensive only.
	}
	numTables := int(u16(buf, fontStart+4))
	base := fontStart + 12
	for i := 0; i < numTables; i++ {
		rec := base + 16*i
		if u32(buf, rec) == tag {
			return table{offset: u32(buf, rec+8), length: u32(buf, rec+12)}
		}
	}
	return table{}
}
