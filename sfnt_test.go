// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"encoding/binary"
	"sort"
)

// buildSFNT assembles a minimal, well-formed SFNT buffer (no checksum
// validation is performed anywhere in this package, so checksums are
// left zero) out of a set of already-encoded table bodies. This is the
// shared fixture builder every _test.go file in this package uses
// instead of embedding real font files, following
// freetype/truetype/truetype_test.go's style of constructing tables by
// hand.
func buildSFNT(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	headerLen := 12
	dirLen := 16 * len(tags)
	buf := make([]byte, headerLen+dirLen)
	binary.BigEndian.PutUint32(buf[0:], tagTrueType1)
	binary.BigEndian.PutUint16(buf[4:], uint16(len(tags)))

	offset := len(buf)
	for i, tag := range tags {
		data := tables[tag]
		rec := headerLen + 16*i
		copy(buf[rec:rec+4], tag)
		binary.BigEndian.PutUint32(buf[rec+8:], uint32(offset))
		binary.BigEndian.PutUint32(buf[rec+12:], uint32(len(data)))
		buf = append(buf, data...)
		offset += len(data)
	}
	return buf
}

func buildHead(unitsPerEm uint16, xmin, ymin, xmax, ymax int16, indexToLocFormat uint16) []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint32(b[0:], 0x00010000)
	binary.BigEndian.PutUint32(b[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(b[18:], unitsPerEm)
	binary.BigEndian.PutUint16(b[36:], uint16(xmin))
	binary.BigEndian.PutUint16(b[38:], uint16(ymin))
	binary.BigEndian.PutUint16(b[40:], uint16(xmax))
	binary.BigEndian.PutUint16(b[42:], uint16(ymax))
	binary.BigEndian.PutUint16(b[50:], indexToLocFormat)
	return b
}

func buildMaxp(numGlyphs uint16) []byte {
	b := make([]byte, 6)
	binary.BigEndian.PutUint32(b[0:], 0x00005000)
	binary.BigEndian.PutUint16(b[4:], numGlyphs)
	return b
}

func buildHhea(ascent, descent, lineGap int16, numberOfHMetrics uint16) []byte {
	b := make([]byte, 36)
	binary.BigEndian.PutUint32(b[0:], 0x00010000)
	binary.BigEndian.PutUint16(b[4:], uint16(ascent))
	binary.BigEndian.PutUint16(b[6:], uint16(descent))
	binary.BigEndian.PutUint16(b[8:], uint16(lineGap))
	binary.BigEndian.PutUint16(b[34:], numberOfHMetrics)
	return b
}

func buildHmtx(metrics []HMetric) []byte {
	b := make([]byte, 4*len(metrics))
	for i, m := range metrics {
		binary.BigEndian.PutUint16(b[4*i:], uint16(m.AdvanceWidth))
		binary.BigEndian.PutUint16(b[4*i+2:], uint16(m.LeftSideBearing))
	}
	return b
}

// buildCmapSingleChar builds a cmap table (format 4, Microsoft
// Unicode-BMP) mapping exactly one codepoint to one glyph, plus the
// mandatory 0xFFFF terminator segment.
func buildCmapSingleChar(codepoint rune, glyph uint16) []byte {
	code := uint16(codepoint)
	delta := glyph - code

	sub := make([]byte, 0, 32)
	put16 := func(v uint16) { sub = binary.BigEndian.AppendUint16(sub, v) }
	put16(4)       // format
	put16(0)       // length, patched below
	put16(0)       // language
	put16(4)       // segCountX2 (segCount = 2)
	put16(4)       // searchRange
	put16(1)       // entrySelector
	put16(0)       // rangeShift
	put16(code)    // endCode[0]
	put16(0xFFFF)  // endCode[1]
	put16(0)       // reservedPad
	put16(code)    // startCode[0]
	put16(0xFFFF)  // startCode[1]
	put16(delta)   // idDelta[0]
	put16(1)       // idDelta[1]
	put16(0)       // idRangeOffset[0]
	put16(0)       // idRangeOffset[1]
	binary.BigEndian.PutUint16(sub[2:], uint16(len(sub)))

	cmap := make([]byte, 0, 12+len(sub))
	cmap = binary.BigEndian.AppendUint16(cmap, 0) // version
	cmap = binary.BigEndian.AppendUint16(cmap, 1) // numTables
	cmap = binary.BigEndian.AppendUint16(cmap, platformMicrosoft)
	cmap = binary.BigEndian.AppendUint16(cmap, msEncodingUnicodeBMP)
	cmap = binary.BigEndian.AppendUint32(cmap, 12)
	cmap = append(cmap, sub...)
	return cmap
}

// buildTriangleGlyph encodes a single-contour, three-point simple glyph
// (a triangle), with every coordinate written as a full 16-bit delta
// (no repeat/short-form flags), per spec.md section 4.D's flag layout.
func buildTriangleGlyph(x0, y0, x1, y1, x2, y2 int16) []byte {
	b := make([]byte, 0, 32)
	put16 := func(v int16) { b = binary.BigEndian.AppendUint16(b, uint16(v)) }
	put16(1) // numberOfContours
	minX, minY := x0, y0
	maxX, maxY := x0, y0
	for _, p := range [][2]int16{{x1, y1}, {x2, y2}} {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	put16(minX)
	put16(minY)
	put16(maxX)
	put16(maxY)
	put16(2) // endPtsOfContours[0]
	put16(0) // instructionLength
	b = append(b, 0x01, 0x01, 0x01)
	dx0, dy0 := x0, y0
	dx1, dy1 := x1-x0, y1-y0
	dx2, dy2 := x2-x1, y2-y1
	put16(dx0)
	put16(dx1)
	put16(dx2)
	put16(dy0)
	put16(dy1)
	put16(dy2)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// buildLocaShort builds a short-format (indexToLocFormat 0) loca table
// from each glyph's byte length.
func buildLocaShort(glyphLens []int) []byte {
	b := make([]byte, 2*(len(glyphLens)+1))
	offset := 0
	binary.BigEndian.PutUint16(b[0:], uint16(offset/2))
	for i, l := range glyphLens {
		offset += l
		binary.BigEndian.PutUint16(b[2*(i+1):], uint16(offset/2))
	}
	return b
}

// buildMinimalTrueTypeFont returns a complete, valid SFNT buffer with
// two glyphs: an empty .notdef (glyph 0) and a triangle (glyph 1)
// mapped from codepoint 'A', at 1000 units per em.
func buildMinimalTrueTypeFont() []byte {
	notdef := []byte{}
	triangle := buildTriangleGlyph(0, 0, 500, 0, 250, 700)
	glyf := append(append([]byte{}, notdef...), triangle...)
	loca := buildLocaShort([]int{len(notdef), len(triangle)})

	tables := map[string][]byte{
		"head": buildHead(1000, 0, 0, 500, 700, 0),
		"maxp": buildMaxp(2),
		"hhea": buildHhea(800, -200, 0, 2),
		"hmtx": buildHmtx([]HMetric{{AdvanceWidth: 0}, {AdvanceWidth: 600, LeftSideBearing: 10}}),
		"cmap": buildCmapSingleChar('A', 1),
		"loca": loca,
		"glyf": glyf,
	}
	return buildSFNT(tables)
}
