// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import "golang.org/x/image/math/f32"

// This file implements component G: adaptive curve flattening. The
// f32.Vec2 vocabulary and the squared-flatness heuristic are grounded on
// golang.org/x/image/vector's Rasterizer.QuadTo/CubeTo devSquared
// helper, generalized here to operate in scaled device space on
// already-transformed points rather than on the rasterizer's own
// internal accumulation.

const maxFlattenDepth = 16

// FlattenPath converts a Vertex outline (in font units) into a sequence
// of polylines in device pixel space, applying the given scale and
// shift and adaptively subdividing curves to a flatness tolerance of
// about a quarter of a pixel, per spec.md section 4.G.
func FlattenPath(verts []Vertex, scaleX, scaleY, shiftX, shiftY float32) [][]f32.Vec2 {
	var contours [][]f32.Vec2
	var cur []f32.Vec2
	toDev := func(x, y int16) f32.Vec2 {
		return f32.Vec2{float32(x)*scaleX + shiftX, float32(y)*scaleY + shiftY}
	}
	flush := func() {
		if len(cur) > 1 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	var last f32.Vec2
	for _, v := range verts {
		switch v.Type {
		case VMove:
			flush()
			last = toDev(v.X, v.Y)
			cur = append(cur, last)
		case VLine:
			last = toDev(v.X, v.Y)
			cur = append(cur, last)
		case VQuad:
			c := toDev(v.CX, v.CY)
			end := toDev(v.X, v.Y)
			cur = flattenQuad(cur, last, c, end, 0)
			last = end
		case VCubic:
			c0 := toDev(v.CX, v.CY)
			c1 := toDev(v.CX1, v.CY1)
			end := toDev(v.X, v.Y)
			cur = flattenCubic(cur, last, c0, c1, end, 0)
			last = end
		}
	}
	flush()
	return contours
}

const flatnessSquared = 0.0625 // (0.25 px)^2, per spec.md section 4.G

func flattenQuad(out []f32.Vec2, p0, p1, p2 f32.Vec2, depth int) []f32.Vec2 {
	if depth >= maxFlattenDepth || quadFlatEnough(p0, p1, p2) {
		return append(out, p2)
	}
	p01 := lerp(p0, p1, 0.5)
	p12 := lerp(p1, p2, 0.5)
	mid := lerp(p01, p12, 0.5)
	out = flattenQuad(out, p0, p01, mid, depth+1)
	return flattenQuad(out, mid, p12, p2, depth+1)
}

func flattenCubic(out []f32.Vec2, p0, p1, p2, p3 f32.Vec2, depth int) []f32.Vec2 {
	if depth >= maxFlattenDepth || cubicFlatEnough(p0, p1, p2, p3) {
		return append(out, p3)
	}
	p01 := lerp(p0, p1, 0.5)
	p12 := lerp(p1, p2, 0.5)
	p23 := lerp(p2, p3, 0.5)
	p012 := lerp(p01, p12, 0.5)
	p123 := lerp(p12, p23, 0.5)
	mid := lerp(p012, p123, 0.5)
	out = flattenCubic(out, p0, p01, p012, mid, depth+1)
	return flattenCubic(out, mid, p123, p23, p3, depth+1)
}

func lerp(a, b f32.Vec2, t float32) f32.Vec2 {
	return f32.Vec2{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

// quadFlatEnough reports whether the curve is flat enough by comparing
// the squared length of 2*p1-p0-p2 (four times the offset of the
// curve's midpoint from the chord's midpoint) against
// 4*flatnessSquared, so the midpoint offset stays within half the
// flatness tolerance (the same shape of test as x/image/vector's
// devSquared).
func quadFlatEnough(p0, p1, p2 f32.Vec2) bool {
	ux := 2*p1[0] - p0[0] - p2[0]
	uy := 2*p1[1] - p0[1] - p2[1]
	return ux*ux+uy*uy <= 4*flatnessSquared
}

func cubicFlatEnough(p0, p1, p2, p3 f32.Vec2) bool {
	ux := 3*p1[0] - 2*p0[0] - p3[0]
	uy := 3*p1[1] - 2*p0[1] - p3[1]
	vx := 3*p2[0] - p0[0] - 2*p3[0]
	vy := 3*p2[1] - p0[1] - 2*p3[1]
	if ux*ux < vx*vx {
		ux = vx
	}
	if uy*uy < vy*vy {
		uy = vy
	}
	return ux*ux+uy*uy <= 16*flatnessSquared
}
