// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// This file implements component F: hmtx/hhea/OS2 metrics and kern/
// GPOS kerning. The hmtx indexed-read and kern sorted binary search are
// grounded on freetype/truetype/truetype.go's HMetric/Kerning; GPOS
// pair-adjustment support is new (the teacher has none).

// GlyphHMetrics returns glyph g's horizontal advance width and left
// side bearing, in font units.
func (f *Font) GlyphHMetrics(g int) HMetric {
	hmtx := f.hmtx.bytes(f.data)
	hhea := f.hhea.bytes(f.data)
	if len(hhea) < 36 {
		return HMetric{}
	}
	numLongHMetrics := int(u16(hhea, 34))
	if numLongHMetrics == 0 {
		return HMetric{}
	}
	if g < numLongHMetrics {
		return HMetric{
			AdvanceWidth:    int(u16(hmtx, 4*g)),
			LeftSideBearing: int(i16(hmtx, 4*g+2)),
		}
	}
	lastAdvance := int(u16(hmtx, 4*(numLongHMetrics-1)))
	lsbOffset := 4*numLongHMetrics + 2*(g-numLongHMetrics)
	return HMetric{
		AdvanceWidth:    lastAdvance,
		LeftSideBearing: int(i16(hmtx, lsbOffset)),
	}
}

// FontVMetrics returns the font's ascent, descent (negative, per
// spec.md section 4.F) and line gap, from hhea.
func (f *Font) FontVMetrics() (ascent, descent, lineGap int) {
	hhea := f.hhea.bytes(f.data)
	if len(hhea) < 10 {
		return 0, 0, 0
	}
	return int(i16(hhea, 4)), int(i16(hhea, 6)), int(i16(hhea, 8))
}

// FontVMetricsOS2 returns the OS/2 table's typographic ascent, descent
// and line gap, and reports whether an OS/2 table was present.
func (f *Font) FontVMetricsOS2() (ascent, descent, lineGap int, ok bool) {
	os2 := f.os2.bytes(f.data)
	if len(os2) < 74 {
		return 0, 0, 0, false
	}
	return int(i16(os2, 68)), int(i16(os2, 70)), int(i16(os2, 72)), true
}

// GlyphKernAdvance returns the kerning adjustment, in font units,
// between glyphs g1 and g2, summing the GPOS pair-adjustment
// contribution (if any) and the legacy kern-table contribution (if
// any), per spec.md section 4.F.
func (f *Font) GlyphKernAdvance(g1, g2 int) int {
	total := 0
	if !f.gpos.empty() {
		total += f.gposPairAdvance(g1, g2)
	}
	if !f.kern.empty() {
		total += f.kernTableAdvance(g1, g2)
	}
	return total
}

func (f *Font) kernTableAdvance(g1, g2 int) int {
	k := f.kern.bytes(f.data)
	if len(k) < 18 {
		return 0
	}
	if u16(k, 0) != 0 || u16(k, 2) != 1 {
		return 0 // unsupported version or subtable count
	}
	coverage := u16(k, 8)
	format := coverage >> 8
	horizontal := coverage&0x0001 != 0
	if format != 0 || !horizontal {
		return 0
	}
	nPairs := int(u16(k, 10))
	const headerLen = 14 + 4
	key := uint32(g1)<<16 | uint32(g2)
	lo, hi := 0, nPairs
	for lo < hi {
		mid := (lo + hi) / 2
		rec := headerLen + 6*mid
		g := u32(k, rec)
		if g < key {
			lo = mid + 1
		} else if g > key {
			hi = mid
		} else {
			return int(i16(k, rec+4))
		}
	}
	return 0
}

// classDef reads a ClassDef table (formats 1 and 2) at offset within
// buf, returning the class of glyphID, or 0 if out of any range.
func classDef(buf []byte, offset int, glyphID int) int {
	format := u16(buf, offset)
	switch format {
	case 1:
		startGlyph := int(u16(buf, offset+2))
		count := int(u16(buf, offset+4))
		idx := glyphID - startGlyph
		if idx < 0 || idx >= count {
			return 0
		}
		return int(u16(buf, offset+6+2*idx))
	case 2:
		nRanges := int(u16(buf, offset+2))
		lo, hi := 0, nRanges
		for lo < hi {
			mid := (lo + hi) / 2
			rec := offset + 4 + 6*mid
			start := int(u16(buf, rec))
			end := int(u16(buf, rec+2))
			if glyphID < start {
				hi = mid
			} else if glyphID > end {
				lo = mid + 1
			} else {
				return int(u16(buf, rec+4))
			}
		}
		return 0
	default:
		return 0
	}
}

// coverageIndex returns the coverage-table index of glyphID within the
// Coverage table at offset, or -1 if glyphID is not covered. Supports
// formats 1 (glyph list) and 2 (range list).
func coverageIndex(buf []byte, offset int, glyphID int) int {
	format := u16(buf, offset)
	switch format {
	case 1:
		count := int(u16(buf, offset+2))
		lo, hi := 0, count
		for lo < hi {
			mid := (lo + hi) / 2
			g := int(u16(buf, offset+4+2*mid))
			if glyphID < g {
				hi = mid
			} else if glyphID > g {
				lo = mid + 1
			} else {
				return mid
			}
		}
		return -1
	case 2:
		nRanges := int(u16(buf, offset+2))
		for i := 0; i < nRanges; i++ {
			rec := offset + 4 + 6*i
			start := int(u16(buf, rec))
			end := int(u16(buf, rec+2))
			startCoverageIndex := int(u16(buf, rec+4))
			if glyphID >= start && glyphID <= end {
				return startCoverageIndex + (glyphID - start)
			}
		}
		return -1
	default:
		return -1
	}
}

// gposPairAdvance walks GPOS's Lookup List for lookup type 2 (Pair
// Adjustment) subtables and returns the first nonzero X-advance
// adjustment found for the (g1, g2) pair, per spec.md section 4.F. Only
// the (valueFormat1, valueFormat2) == (0x04, 0x00) combination is
// honored for format-1 pair sets; other combinations, and anything but
// formats 1/2, contribute zero (spec.md section 9's open question).
func (f *Font) gposPairAdvance(g1, g2 int) int {
	gp := f.gpos.bytes(f.data)
	if len(gp) < 10 {
		return 0
	}
	lookupListOffset := int(u16(gp, 8))
	if lookupListOffset == 0 {
		return 0
	}
	lookupCount := int(u16(gp, lookupListOffset))
	for li := 0; li < lookupCount; li++ {
		lookupOffset := lookupListOffset + int(u16(gp, lookupListOffset+2+2*li))
		lookupType := u16(gp, lookupOffset)
		if lookupType != 2 {
			continue
		}
		subtableCount := int(u16(gp, lookupOffset+4))
		for si := 0; si < subtableCount; si++ {
			subOffset := lookupOffset + int(u16(gp, lookupOffset+6+2*si))
			if v := pairAdjustSubtable(gp, subOffset, g1, g2); v != 0 {
				return v
			}
		}
	}
	return 0
}

func pairAdjustSubtable(gp []byte, subOffset, g1, g2 int) int {
	format := u16(gp, subOffset)
	coverageOffset := subOffset + int(u16(gp, subOffset+2))
	covIdx := coverageIndex(gp, coverageOffset, g1)
	if covIdx < 0 {
		return 0
	}
	switch format {
	case 1:
		valueFormat1 := u16(gp, subOffset+4)
		valueFormat2 := u16(gp, subOffset+6)
		if valueFormat1 != 0x0004 || valueFormat2 != 0x0000 {
			return 0
		}
		pairSetCount := int(u16(gp, subOffset+8))
		if covIdx >= pairSetCount {
			return 0
		}
		pairSetOffset := subOffset + int(u16(gp, subOffset+10+2*covIdx))
		pairValueCount := int(u16(gp, pairSetOffset))
		const recordSize = 2 + 2 // secondGlyph u16 + one Value (X advance only)
		lo, hi := 0, pairValueCount
		for lo < hi {
			mid := (lo + hi) / 2
			rec := pairSetOffset + 2 + recordSize*mid
			g := int(u16(gp, rec))
			if g2 < g {
				hi = mid
			} else if g2 > g {
				lo = mid + 1
			} else {
				return int(i16(gp, rec+2))
			}
		}
		return 0
	case 2:
		classDef1Offset := subOffset + int(u16(gp, subOffset+8))
		classDef2Offset := subOffset + int(u16(gp, subOffset+10))
		class1Count := int(u16(gp, subOffset+12))
		class2Count := int(u16(gp, subOffset+14))
		class1 := classDef(gp, classDef1Offset, g1)
		class2 := classDef(gp, classDef2Offset, g2)
		if class1 >= class1Count || class2 >= class2Count {
			return 0
		}
		valueFormat1 := u16(gp, subOffset+4)
		valueFormat2 := u16(gp, subOffset+6)
		if valueFormat1 != 0x0004 || valueFormat2 != 0x0000 {
			return 0
		}
		recordIndex := class1*class2Count + class2
		rec := subOffset + 16 + 2*recordIndex
		return int(i16(gp, rec))
	default:
		return 0
	}
}

// KerningTableLength returns the number of entries KerningTable would
// write: the count of glyph pairs present in the legacy kern table
// (GPOS is not enumerable this way; it is only queried pairwise).
func (f *Font) KerningTableLength() int {
	k := f.kern.bytes(f.data)
	if len(k) < 18 || u16(k, 0) != 0 || u16(k, 2) != 1 {
		return 0
	}
	return int(u16(k, 10))
}

// KernEntry is one row of the legacy kern table.
type KernEntry struct {
	Glyph1, Glyph2 int
	Advance        int
}

// KerningTable appends every entry of the legacy kern table (if any) to
// out and returns the result.
func (f *Font) KerningTable(out []KernEntry) []KernEntry {
	k := f.kern.bytes(f.data)
	if len(k) < 18 || u16(k, 0) != 0 || u16(k, 2) != 1 {
		return out
	}
	n := int(u16(k, 10))
	const headerLen = 18
	for i := 0; i < n; i++ {
		rec := headerLen + 6*i
		out = append(out, KernEntry{
			Glyph1:  int(u16(k, rec)),
			Glyph2:  int(u16(k, rec+2)),
			Advance: int(i16(k, rec+4)),
		})
	}
	return out
}
