// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

// VertexType tags the kind of segment a Vertex starts or describes.
type VertexType uint8

const (
	// VMove starts a new contour at (X, Y).
	VMove VertexType = iota
	// VLine draws a straight line to (X, Y).
	VLine
	// VQuad draws a quadratic Bezier to (X, Y) via control point (CX, CY).
	VQuad
	// VCubic draws a cubic Bezier to (X, Y) via control points (CX, CY)
	// and (CX1, CY1).
	VCubic
)

// A Vertex is one element of a glyph's flat contour-encoded outline, in
// the font's EM coordinate system. Contours are a sequence beginning
// with a VMove; VLine has no control points, VQuad uses (CX, CY), and
// VCubic uses (CX, CY) and (CX1, CY1).
type Vertex struct {
	Type               VertexType
	X, Y               int16
	CX, CY             int16
	CX1, CY1           int16
}

func moveVertex(x, y int16) Vertex { return Vertex{Type: VMove, X: x, Y: y} }
func lineVertex(x, y int16) Vertex { return Vertex{Type: VLine, X: x, Y: y} }
func quadVertex(cx, cy, x, y int16) Vertex {
	return Vertex{Type: VQuad, X: x, Y: y, CX: cx, CY: cy}
}
func cubicVertex(cx, cy, cx1, cy1, x, y int16) Vertex {
	return Vertex{Type: VCubic, X: x, Y: y, CX: cx, CY: cy, CX1: cx1, CY1: cy1}
}

// A Bitmap is an 8-bit opacity coverage buffer; 0 is transparent.
type Bitmap struct {
	W, H, Stride int
	Pixels       []byte
}

// Bounds is the inclusive co-ordinate range of one or more glyphs, in
// font units.
type Bounds struct {
	XMin, YMin, XMax, YMax int16
}

// HMetric holds a glyph's horizontal advance width and left side
// bearing, in font units.
type HMetric struct {
	AdvanceWidth    int
	LeftSideBearing int
}

// Empty reports whether b has no transparent or visible pixels at all,
// i.e. it was never allocated.
func (b *Bitmap) Empty() bool { return b == nil || b.W == 0 || b.H == 0 }
