// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// This file implements component C: the cmap resolver. Grounded on
// freetype/truetype/truetype.go's parseCmap/Index (format-4 segment
// binary search), generalized to the full {0,4,6,12,13} format set and
// the Microsoft/Unicode encoding-record priority order spec.md section
// 4.C requires.

const (
	platformUnicode   = 0
	platformMicrosoft = 3

	msEncodingSymbol      = 0
	msEncodingUnicodeBMP  = 1
	msEncodingUnicodeFull = 10
)

// resolveCmap walks cmap's encoding records and caches the offset of
// the best usable subtable in f.indexMap, in priority order: Microsoft
// Unicode-BMP, Microsoft Unicode-full, then any Unicode-platform
// record.
func (f *Font) resolveCmap() error {
	c := f.cmapTab.bytes(f.data)
	if len(c) < 4 {
		return FormatError("cmap table too short")
	}
	numTables := int(u16(c, 2))
	if len(c) < 4+8*numTables {
		return FormatError("cmap table too short for its subtable count")
	}

	var msBMP, msFull, anyUnicode int
	for i := 0; i < numTables; i++ {
		rec := 4 + 8*i
		platformID := u16(c, rec)
		encodingID := u16(c, rec+2)
		offset := int(u32(c, rec+4))
		if offset <= 0 || offset >= len(c) {
			continue
		}
		switch {
		case platformID == platformMicrosoft && encodingID == msEncodingUnicodeBMP:
			if msBMP == 0 {
				msBMP = offset
			}
		case platformID == platformMicrosoft && encodingID == msEncodingUnicodeFull:
			if msFull == 0 {
				msFull = offset
			}
		case platformID == platformUnicode:
			if anyUnicode == 0 {
				anyUnicode = offset
			}
		}
	}

	switch {
	case msBMP != 0:
		f.indexMap = msBMP
	case msFull != 0:
		f.indexMap = msFull
	case anyUnicode != 0:
		f.indexMap = anyUnicode
	default:
		return nil // leave indexMap == 0; Init reports this as failure.
	}

	format := u16(c, f.indexMap)
	switch format {
	case 0, 4, 6, 12, 13:
		return nil
	default:
		return UnsupportedError("cmap subtable format")
	}
}

// FindGlyph maps a Unicode codepoint to a glyph index, returning 0 (the
// .notdef glyph) if there is no mapping.
func (f *Font) FindGlyph(codepoint rune) int {
	if f == nil || f.indexMap == 0 {
		return 0
	}
	c := f.cmapTab.bytes(f.data)
	st := sub(c, f.indexMap, len(c)-f.indexMap)
	format := u16(st, 0)
	switch format {
	case 0:
		return findGlyphFormat0(st, codepoint)
	case 4:
		return findGlyphFormat4(st, codepoint)
	case 6:
		return findGlyphFormat6(st, codepoint)
	case 12:
		return findGlyphFormat12(st, codepoint)
	case 13:
		return findGlyphFormat13(st, codepoint)
	default:
		return 0
	}
}

func findGlyphFormat0(st []byte, codepoint rune) int {
	if codepoint < 0 || codepoint >= 256-6 {
		return 0
	}
	return int(u8(st, 6+int(codepoint)))
}

func findGlyphFormat4(st []byte, codepoint rune) int {
	if codepoint > 0xFFFF {
		return 0
	}
	c := uint16(codepoint)
	segCountX2 := int(u16(st, 6))
	segCount := segCountX2 / 2
	endCodesOff := 14
	startCodesOff := endCodesOff + segCountX2 + 2
	idDeltaOff := startCodesOff + segCountX2
	idRangeOff := idDeltaOff + segCountX2

	// Standard two-part binary search: find the segment whose endCount
	// is >= c, then verify startCount <= c.
	lo, hi := 0, segCount
	for lo < hi {
		mid := (lo + hi) / 2
		end := u16(st, endCodesOff+2*mid)
		if end < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= segCount {
		return 0
	}
	start := u16(st, startCodesOff+2*lo)
	if c < start {
		return 0
	}
	delta := u16(st, idDeltaOff+2*lo)
	rangeOffset := u16(st, idRangeOff+2*lo)
	if rangeOffset == 0 {
		return int(uint16(c + delta))
	}
	glyphOff := idRangeOff + 2*lo + int(rangeOffset) + 2*int(c-start)
	g := u16(st, glyphOff)
	if g == 0 {
		return 0
	}
	return int(uint16(g + delta))
}

func findGlyphFormat6(st []byte, codepoint rune) int {
	first := rune(u16(st, 6))
	count := int(u16(st, 8))
	if codepoint < first || int(codepoint-first) >= count {
		return 0
	}
	return int(u16(st, 10+2*int(codepoint-first)))
}

func findGlyphFormat12(st []byte, codepoint rune) int {
	nGroups := int(u32(st, 12))
	c := uint32(codepoint)
	lo, hi := 0, nGroups
	for lo < hi {
		mid := (lo + hi) / 2
		rec := 16 + 12*mid
		start := u32(st, rec)
		end := u32(st, rec+4)
		if c < start {
			hi = mid
		} else if c > end {
			lo = mid + 1
		} else {
			startGlyph := u32(st, rec+8)
			return int(startGlyph + (c - start))
		}
	}
	return 0
}

func findGlyphFormat13(st []byte, codepoint rune) int {
	nGroups := int(u32(st, 12))
	c := uint32(codepoint)
	lo, hi := 0, nGroups
	for lo < hi {
		mid := (lo + hi) / 2
		rec := 16 + 12*mid
		start := u32(st, rec)
		end := u32(st, rec+4)
		if c < start {
			hi = mid
		} else if c > end {
			lo = mid + 1
		} else {
			return int(u32(st, rec+8))
		}
	}
	return 0
}
