// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import "fmt"

// outlineSource tags which of the two outline backends a Font uses.
// Modeled as an internal tagged variant (spec.md section 9) rather than
// an interface, since the two backends share almost all of the rest of
// the Font's state (cmap, metrics, kerning) and only the shape decoder
// differs.
type outlineSource uint8

const (
	sourceTrueType outlineSource = iota
	sourceCFF
)

const svgOffsetUnresolved = -1

// A Font is an immutable, parsed handle onto one font within a
// caller-supplied byte buffer. It is safe to use concurrently from
// multiple goroutines for all read queries (spec.md section 5); the
// lazily-checked svgOffset is resolved eagerly by Init, so no field is
// written after Init returns.
type Font struct {
	data       []byte
	fontStart  int
	numGlyphs  int
	source     outlineSource

	loca, head, glyf, hhea, hmtx, kern, gpos, maxp, os2, name, cmapTab table
	svgOffset                                                          int

	indexMap           int // offset of the chosen cmap subtable
	indexToLocFormat   int // 0 = short, 1 = long

	unitsPerEm int
	bounds     Bounds

	// CFF-only state (zero value/empty if the font is TrueType).
	cff         cursor
	charStrings cffIndex
	globalSubrs cffIndex
	subrs       cffIndex
	fontDicts   []cffPrivate
	fdSelect    []byte // raw FDSelect table bytes, format-dispatched on read
	fdSelectFmt int
	isCID       bool
}

// Init parses the font starting at byte offset within buf (as returned
// by FontOffsetForIndex), and returns an immutable Font handle.
func Init(buf []byte, offset int) (*Font, error) {
	if offset < 0 || offset > len(buf) {
		return nil, FormatError("font offset out of range")
	}
	tag := u32(buf, offset)
	switch tag {
	case tagTrueType1, tagOTTO, tagApple:
	case tagTyp1:
		return nil, UnsupportedError("Type 1 font (typ1) container")
	case tagTTC:
		return nil, FormatError("offset points at a TTC header, not a font")
	default:
		return nil, FormatError(fmt.Sprintf("unrecognized sfnt tag: 0x%08x", tag))
	}

	f := &Font{data: buf, fontStart: offset, svgOffset: svgOffsetUnresolved}

	f.head = findTable(buf, offset, tagFor("head"))
	f.maxp = findTable(buf, offset, tagFor("maxp"))
	f.hhea = findTable(buf, offset, tagFor("hhea"))
	f.hmtx = findTable(buf, offset, tagFor("hmtx"))
	f.cmapTab = findTable(buf, offset, tagFor("cmap"))
	f.loca = findTable(buf, offset, tagFor("loca"))
	f.glyf = findTable(buf, offset, tagFor("glyf"))
	f.kern = findTable(buf, offset, tagFor("kern"))
	f.gpos = findTable(buf, offset, tagFor("GPOS"))
	f.os2 = findTable(buf, offset, tagFor("OS/2"))
	f.name = findTable(buf, offset, tagFor("name"))
	cffTab := findTable(buf, offset, tagFor("CFF "))

	if f.head.empty() {
		return nil, FormatError("missing head table")
	}
	if f.hhea.empty() {
		return nil, FormatError("missing hhea table")
	}
	if f.hmtx.empty() {
		return nil, FormatError("missing hmtx table")
	}
	if f.cmapTab.empty() {
		return nil, FormatError("missing cmap table")
	}
	if f.maxp.empty() {
		return nil, FormatError("missing maxp table")
	}

	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}

	if !f.glyf.empty() {
		if f.loca.empty() {
			return nil, FormatError("glyf present but loca missing")
		}
		f.source = sourceTrueType
	} else {
		if cffTab.empty() {
			return nil, FormatError("neither glyf nor CFF table present")
		}
		f.source = sourceCFF
		if err := f.parseCFF(cffTab.bytes(buf)); err != nil {
			return nil, err
		}
	}

	if err := f.resolveCmap(); err != nil {
		return nil, err
	}
	if f.indexMap == 0 {
		return nil, FormatError("no usable cmap subtable")
	}

	f.resolveSVG()

	if f.numGlyphs < 1 {
		return nil, FormatError("font has no glyphs")
	}
	return f, nil
}

func tagFor(s string) uint32 {
	var b [4]byte
	copy(b[:], s)
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (f *Font) parseHead() error {
	h := f.head.bytes(f.data)
	if len(h) < 54 {
		return FormatError("head table too short")
	}
	f.unitsPerEm = int(u16(h, 18))
	if f.unitsPerEm == 0 {
		return FormatError("unitsPerEm is zero")
	}
	f.bounds = Bounds{
		XMin: i16(h, 36),
		YMin: i16(h, 38),
		XMax: i16(h, 40),
		YMax: i16(h, 42),
	}
	switch u16(h, 50) {
	case 0:
		f.indexToLocFormat = 0
	case 1:
		f.indexToLocFormat = 1
	default:
		return FormatError("bad indexToLocFormat")
	}
	return nil
}

func (f *Font) parseMaxp() error {
	m := f.maxp.bytes(f.data)
	if len(m) < 6 {
		return FormatError("maxp table too short")
	}
	f.numGlyphs = int(u16(m, 4))
	return nil
}

// resolveSVG resolves the lazily-checked SVG table offset once, at
// Init, so that the Font is fully immutable afterwards (spec.md section
// 5's concurrency model — "resolve it at init to make the handle
// fully immutable and trivially shareable across threads").
func (f *Font) resolveSVG() {
	t := findTable(f.data, f.fontStart, tagFor("SVG "))
	if t.empty() {
		f.svgOffset = 0
		return
	}
	f.svgOffset = int(t.offset)
}

// NumGlyphs returns the number of glyphs in the font, from maxp.
func (f *Font) NumGlyphs() int { return f.numGlyphs }

// UnitsPerEm returns the number of font units per em square, from head.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// FontBoundingBox returns the union bounding box of the font's glyphs,
// from head. This is a cheap O(1) query distinct from per-glyph boxes
// (SPEC_FULL.md section 12).
func (f *Font) FontBoundingBox() Bounds { return f.bounds }

// validGlyph reports whether g is a valid glyph index for this font.
func (f *Font) validGlyph(g int) bool { return g >= 0 && g < f.numGlyphs }
