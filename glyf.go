// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import "math"

// This file implements component D: the TrueType glyf/loca outline
// decoder, grounded on freetype/truetype/truetype.go's GlyphBuf.load /
// decodeFlags / decodeCoords / loadCompound, generalized to emit the
// shared Vertex sequence (component D/E's common consumer) and to
// support the full composite-glyph transform set spec.md section 4.D
// requires (the teacher only supported translation, rejecting any
// scale/2x2 transform as unsupported).

const maxCompositeRecursion = 8

const (
	glyfOnCurve = 1 << iota
	glyfXShort
	glyfYShort
	glyfRepeat
	glyfPositiveXShort // also "this x is same" when glyfXShort is clear
	glyfPositiveYShort // also "this y is same" when glyfYShort is clear
)

const (
	compArg1And2AreWords = 1 << iota
	compArgsAreXYValues
	compRoundXYToGrid
	compWeHaveAScale
	_compReserved
	compMoreComponents
	compWeHaveAnXAndYScale
	compWeHaveATwoByTwo
	compWeHaveInstructions
	compUseMyMetrics
	compOverlapCompound
)

// glyphOffset returns the [start, end) byte range of glyph g within
// glyf, using loca. Equal start/end signals an empty glyph.
func (f *Font) glyphOffset(g int) (start, end uint32, ok bool) {
	loca := f.loca.bytes(f.data)
	if f.indexToLocFormat == 0 {
		if 2*g+4 > len(loca) {
			return 0, 0, false
		}
		return 2 * uint32(u16(loca, 2*g)), 2 * uint32(u16(loca, 2*g+2)), true
	}
	if 4*g+8 > len(loca) {
		return 0, 0, false
	}
	return u32(loca, 4*g), u32(loca, 4*g+4), true
}

// ttfOutline decodes glyph g's outline from glyf/loca into a flat
// Vertex sequence, recursing into composite glyphs.
func (f *Font) ttfOutline(g int, depth int) ([]Vertex, error) {
	if depth >= maxCompositeRecursion {
		return nil, nil
	}
	if !f.validGlyph(g) {
		return nil, nil
	}
	start, end, ok := f.glyphOffset(g)
	if !ok || start >= end {
		return nil, nil
	}
	glyf := f.glyf.bytes(f.data)
	gd := sub(glyf, int(start), int(end-start))
	if len(gd) < 10 {
		return nil, nil
	}
	numContours := i16(gd, 0)
	if numContours >= 0 {
		return decodeSimpleGlyph(gd, int(numContours))
	}
	return f.decodeCompositeGlyph(gd, depth)
}

func decodeSimpleGlyph(gd []byte, numContours int) ([]Vertex, error) {
	if numContours == 0 {
		return nil, nil
	}
	endPts := make([]int, numContours)
	pos := 10
	for i := 0; i < numContours; i++ {
		endPts[i] = int(u16(gd, pos))
		pos += 2
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = endPts[numContours-1] + 1
	}
	instrLen := int(u16(gd, pos))
	pos += 2 + instrLen

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		fl := u8(gd, pos)
		pos++
		flags[i] = fl
		i++
		if fl&glyfRepeat != 0 {
			repeat := int(u8(gd, pos))
			pos++
			for ; repeat > 0 && i < numPoints; repeat-- {
				flags[i] = fl
				i++
			}
		}
	}

	xs := make([]int16, numPoints)
	var x int16
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&glyfXShort != 0:
			d := int16(u8(gd, pos))
			pos++
			if fl&glyfPositiveXShort == 0 {
				x -= d
			} else {
				x += d
			}
		case fl&glyfPositiveXShort == 0:
			x += i16(gd, pos)
			pos += 2
		}
		xs[i] = x
	}

	ys := make([]int16, numPoints)
	var y int16
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&glyfYShort != 0:
			d := int16(u8(gd, pos))
			pos++
			if fl&glyfPositiveYShort == 0 {
				y -= d
			} else {
				y += d
			}
		case fl&glyfPositiveYShort == 0:
			y += i16(gd, pos)
			pos += 2
		}
		ys[i] = y
	}

	var verts []Vertex
	start := 0
	for _, end := range endPts {
		verts = append(verts, contourVertices(flags[start:end+1], xs[start:end+1], ys[start:end+1])...)
		start = end + 1
	}
	return verts, nil
}

// contourVertices emits one contour's worth of vertices, handling the
// on/off-curve alternation and implicit on-curve midpoints between two
// consecutive off-curve points. A contour that begins off-curve is
// rotated so its emitted start is on-curve; if every point is
// off-curve, a midpoint start is synthesized, per spec.md section 4.D.
func contourVertices(flags []byte, xs, ys []int16) []Vertex {
	n := len(flags)
	if n == 0 {
		return nil
	}
	onCurve := func(i int) bool { return flags[i%n]&glyfOnCurve != 0 }
	px := func(i int) int16 { return xs[i%n] }
	py := func(i int) int16 { return ys[i%n] }

	start := -1
	for i := 0; i < n; i++ {
		if onCurve(i) {
			start = i
			break
		}
	}

	var sx, sy int16
	iterStart := 0
	if start == -1 {
		sx = (px(0) + px(n-1)) / 2
		sy = (py(0) + py(n-1)) / 2
	} else {
		sx, sy = px(start), py(start)
		iterStart = start + 1
	}

	verts := []Vertex{moveVertex(sx, sy)}
	var pcx, pcy int16
	havePending := false

	for k := 0; k < n; k++ {
		i := (iterStart + k) % n
		if start != -1 && i == start {
			break
		}
		if onCurve(i) {
			if havePending {
				verts = append(verts, quadVertex(pcx, pcy, px(i), py(i)))
				havePending = false
			} else {
				verts = append(verts, lineVertex(px(i), py(i)))
			}
		} else {
			if havePending {
				mx, my := (pcx+px(i))/2, (pcy+py(i))/2
				verts = append(verts, quadVertex(pcx, pcy, mx, my))
			}
			pcx, pcy = px(i), py(i)
			havePending = true
		}
	}
	if havePending {
		verts = append(verts, quadVertex(pcx, pcy, sx, sy))
	} else {
		verts = append(verts, lineVertex(sx, sy))
	}
	return verts
}

// decodeCompositeGlyph decodes a composite glyph's component records
// and recurses to assemble each component's vertices under an affine
// transform.
func (f *Font) decodeCompositeGlyph(gd []byte, depth int) ([]Vertex, error) {
	var out []Vertex
	pos := 10
	for {
		if pos+4 > len(gd) {
			break
		}
		flags := u16(gd, pos)
		component := int(u16(gd, pos+2))
		pos += 4

		var dx, dy float64
		if flags&compArg1And2AreWords != 0 {
			dx = float64(i16(gd, pos))
			dy = float64(i16(gd, pos+2))
			pos += 4
		} else {
			dx = float64(int8(u8(gd, pos)))
			dy = float64(int8(u8(gd, pos+1)))
			pos += 2
		}
		if flags&compArgsAreXYValues == 0 {
			return nil, UnsupportedError("composite glyph MATCH_POINTS mode")
		}

		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&compWeHaveATwoByTwo != 0:
			a = f2dot14(gd, pos)
			b = f2dot14(gd, pos+2)
			c = f2dot14(gd, pos+4)
			d = f2dot14(gd, pos+6)
			pos += 8
		case flags&compWeHaveAnXAndYScale != 0:
			a = f2dot14(gd, pos)
			d = f2dot14(gd, pos+2)
			pos += 4
		case flags&compWeHaveAScale != 0:
			a = f2dot14(gd, pos)
			d = a
			pos += 2
		}

		sub, err := f.ttfOutline(component, depth+1)
		if err != nil {
			return nil, err
		}
		// The component's (x, y) and control points are all transformed
		// by the same 2x2 matrix plus translation, with each axis then
		// renormalized by its own column's length (m for x, n for y) per
		// spec.md section 4.D.
		for _, v := range sub {
			tv := v
			tv.X, tv.Y = transformPoint(a, b, c, d, dx, dy, v.X, v.Y)
			if v.Type == VQuad || v.Type == VCubic {
				tv.CX, tv.CY = transformPoint(a, b, c, d, dx, dy, v.CX, v.CY)
			}
			if v.Type == VCubic {
				tv.CX1, tv.CY1 = transformPoint(a, b, c, d, dx, dy, v.CX1, v.CY1)
			}
			out = append(out, tv)
		}

		if flags&compMoreComponents == 0 {
			break
		}
	}
	return out, nil
}

// f2dot14 reads a 2.14 fixed point value (used for composite transform
// matrix entries), per spec.md section 4.D: value/16384.
func f2dot14(b []byte, offset int) float64 {
	return float64(i16(b, offset)) / 16384.0
}

// transformPoint applies the composite 2x2 matrix (a b; c d) plus
// translation, then renormalizes each axis by its own column's norm
// (m = |col0|, n = |col1|), per spec.md section 4.D:
// v' = m . diag(mScale) . v + translation.
func transformPoint(a, b, c, d, dx, dy float64, x, y int16) (int16, int16) {
	m := math.Sqrt(a*a + b*b)
	n := math.Sqrt(c*c + d*d)
	fx := m * (a*float64(x) + c*float64(y) + dx)
	fy := n * (b*float64(x) + d*float64(y) + dy)
	return roundInt16(fx), roundInt16(fy)
}

func roundInt16(f float64) int16 {
	if f >= 0 {
		return int16(f + 0.5)
	}
	return int16(f - 0.5)
}
