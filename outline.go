// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// GlyphOutline returns glyph g's outline as a sequence of Vertex path
// commands in font units, dispatching to the TrueType glyf decoder or
// the CFF charstring interpreter depending on which outline format the
// font carries. An invalid or empty glyph yields a nil slice and a nil
// error (spec.md section 4.D/E's "never fault" guarantee).
func (f *Font) GlyphOutline(g int) ([]Vertex, error) {
	if !f.validGlyph(g) {
		return nil, nil
	}
	switch f.source {
	case sourceCFF:
		return f.cffOutline(g)
	default:
		return f.ttfOutline(g, 0)
	}
}

// IsGlyphEmpty reports whether glyph g has no outline (e.g. space or
// an unmapped codepoint's .notdef). It implies GlyphOutline(g) yields
// no vertices.
func (f *Font) IsGlyphEmpty(g int) bool {
	verts, err := f.GlyphOutline(g)
	return err != nil || len(verts) == 0
}

// GlyphBoundingBox returns the bounding box of all of glyph g's outline
// points, curve control points included, in font units. A glyph with
// no outline (whitespace) returns a zero Bounds and ok == false.
func (f *Font) GlyphBoundingBox(g int) (b Bounds, ok bool) {
	verts, err := f.GlyphOutline(g)
	if err != nil || len(verts) == 0 {
		return Bounds{}, false
	}
	minX, minY := int16(32767), int16(32767)
	maxX, maxY := int16(-32768), int16(-32768)
	grow := func(x, y int16) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, v := range verts {
		grow(v.X, v.Y)
		if v.Type == VQuad || v.Type == VCubic {
			grow(v.CX, v.CY)
		}
		if v.Type == VCubic {
			grow(v.CX1, v.CY1)
		}
	}
	return Bounds{XMin: minX, YMin: minY, XMax: maxX, YMax: maxY}, true
}
