// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// This file implements component L: the codepoint-indexed convenience
// surface and the golang.org/x/image/font.Face adapter, grounded on
// truetype/face.go's Options pattern and Glyph/Kern/GlyphBounds shape,
// re-targeted from the teacher's hinting bytecode VM and cached
// rasterizer onto this package's component D/E/G/H pipeline (no
// caching: spec.md section 5 calls for a stateless, concurrency-safe
// query surface, so every call rasterizes fresh).

// ScaleForPixelHeight returns the font-units-to-pixels scale factor
// such that the font's ascent-to-descent span renders at pixelHeight
// pixels tall, per spec.md section 4.L.
func (f *Font) ScaleForPixelHeight(pixelHeight float32) float32 {
	ascent, descent, _ := f.FontVMetrics()
	span := ascent - descent
	if span == 0 {
		return 0
	}
	return pixelHeight / float32(span)
}

// ScaleForEmToPixels returns the font-units-to-pixels scale factor such
// that one em (UnitsPerEm font units) renders at pixelsPerEm pixels.
func (f *Font) ScaleForEmToPixels(pixelsPerEm float32) float32 {
	if f.unitsPerEm == 0 {
		return 0
	}
	return pixelsPerEm / float32(f.unitsPerEm)
}

// CodepointGlyphOutline is GlyphOutline, indexed by Unicode codepoint
// via the font's cmap instead of by raw glyph index.
func (f *Font) CodepointGlyphOutline(codepoint rune) ([]Vertex, error) {
	return f.GlyphOutline(f.FindGlyph(codepoint))
}

// CodepointHMetrics is GlyphHMetrics, indexed by Unicode codepoint.
func (f *Font) CodepointHMetrics(codepoint rune) HMetric {
	return f.GlyphHMetrics(f.FindGlyph(codepoint))
}

// CodepointKernAdvance is GlyphKernAdvance, indexed by Unicode
// codepoint.
func (f *Font) CodepointKernAdvance(cp1, cp2 rune) int {
	return f.GlyphKernAdvance(f.FindGlyph(cp1), f.FindGlyph(cp2))
}

// PixelBounds converts a font-unit Bounds to an integer pixel-space
// bounding box at the given scale and subpixel shift, with Y flipped
// so that it increases downward (image/raster convention), per
// spec.md section 4.L.
func PixelBounds(b Bounds, scaleX, scaleY, shiftX, shiftY float32) (x0, y0, x1, y1 int) {
	x0 = int(floor32(float32(b.XMin)*scaleX + shiftX))
	y0 = int(floor32(-float32(b.YMax)*scaleY + shiftY))
	x1 = int(ceil32(float32(b.XMax)*scaleX + shiftX))
	y1 = int(ceil32(-float32(b.YMin)*scaleY + shiftY))
	return
}

// CodepointBitmap rasterizes the glyph for codepoint at the given
// independent X/Y scale (as returned by ScaleForPixelHeight or
// ScaleForEmToPixels) and subpixel shift, returning its coverage
// Bitmap along with the integer pixel offset (relative to the glyph's
// origin) at which it should be drawn. A codepoint with an empty
// outline (e.g. space) returns a nil Bitmap and ok == false.
// (SPEC_FULL.md section 12, restoring genpng.c's convenience pair that
// spec.md's distillation otherwise leaves to manual Gather/Rasterize
// composition.)
func (f *Font) CodepointBitmap(codepoint rune, scaleX, scaleY, shiftX, shiftY float32) (bmp *Bitmap, xOff, yOff int, ok bool) {
	return f.GlyphBitmap(f.FindGlyph(codepoint), scaleX, scaleY, shiftX, shiftY)
}

// CodepointBitmapBox is the box-only counterpart of CodepointBitmap: it
// reports the pixel rectangle a full bake would occupy without
// rasterizing.
func (f *Font) CodepointBitmapBox(codepoint rune, scaleX, scaleY, shiftX, shiftY float32) (x0, y0, x1, y1 int, ok bool) {
	return f.GlyphBitmapBox(f.FindGlyph(codepoint), scaleX, scaleY, shiftX, shiftY)
}

// GlyphBitmap rasterizes glyph g at the given independent X/Y scale and
// subpixel shift.
func (f *Font) GlyphBitmap(g int, scaleX, scaleY, shiftX, shiftY float32) (bmp *Bitmap, xOff, yOff int, ok bool) {
	verts, err := f.GlyphOutline(g)
	if err != nil || len(verts) == 0 {
		return nil, 0, 0, false
	}
	box, hasBox := f.GlyphBoundingBox(g)
	if !hasBox {
		return nil, 0, 0, false
	}
	x0, y0, x1, y1 := PixelBounds(box, scaleX, scaleY, shiftX, shiftY)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil, 0, 0, false
	}
	contours := FlattenPath(verts, scaleX, -scaleY, shiftX-float32(x0), shiftY-float32(y0))
	return Rasterize(contours, w, h), x0, y0, true
}

// GlyphBitmapBox is the box-only counterpart of GlyphBitmap.
func (f *Font) GlyphBitmapBox(g int, scaleX, scaleY, shiftX, shiftY float32) (x0, y0, x1, y1 int, ok bool) {
	box, hasBox := f.GlyphBoundingBox(g)
	if !hasBox {
		return 0, 0, 0, 0, false
	}
	x0, y0, x1, y1 = PixelBounds(box, scaleX, scaleY, shiftX, shiftY)
	return x0, y0, x1, y1, true
}

// GlyphBitmapInto is the caller-allocated counterpart of GlyphBitmap
// (spec.md section 6.7's make_glyph_bitmap/make_glyph_bitmap_subpixel):
// dst must already be sized to hold the glyph's footprint, typically
// via a prior GlyphBitmapBox call. It reports false without writing to
// dst if the glyph is empty or dst is too small.
func (f *Font) GlyphBitmapInto(dst *Bitmap, g int, scaleX, scaleY, shiftX, shiftY float32) bool {
	verts, err := f.GlyphOutline(g)
	if err != nil || len(verts) == 0 {
		return false
	}
	box, hasBox := f.GlyphBoundingBox(g)
	if !hasBox {
		return false
	}
	x0, y0, x1, y1 := PixelBounds(box, scaleX, scaleY, shiftX, shiftY)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 || dst.W < w || dst.H < h {
		return false
	}
	contours := FlattenPath(verts, scaleX, -scaleY, shiftX-float32(x0), shiftY-float32(y0))
	src := Rasterize(contours, w, h)
	for row := 0; row < h; row++ {
		copy(dst.Pixels[row*dst.Stride:row*dst.Stride+w], src.Pixels[row*src.Stride:row*src.Stride+w])
	}
	return true
}

// GlyphBitmapSubpixelPrefilter is the standalone single-glyph form of
// the oversample-then-box-filter prefilter RenderAtlasGlyphs applies
// per atlas slot (spec.md section 6.7's
// make_glyph_bitmap_subpixel_prefilter): it rasterizes g at
// oversampleX x oversampleY supersampling and averages the result down
// to its tight pixel footprint, returning the recommended subpixel
// shift ((oversample-1)/(2*oversample) of an output pixel per axis;
// half an oversampled texel when oversample is 2) a caller should apply on
// its next draw to center the prefiltered result, matching
// stb_truetype's sub_x/sub_y outputs.
func (f *Font) GlyphBitmapSubpixelPrefilter(g int, scaleX, scaleY, shiftX, shiftY float32, oversampleX, oversampleY int) (bmp *Bitmap, xOff, yOff int, subX, subY float32, ok bool) {
	if oversampleX < 1 {
		oversampleX = 1
	}
	if oversampleY < 1 {
		oversampleY = 1
	}
	verts, err := f.GlyphOutline(g)
	if err != nil || len(verts) == 0 {
		return nil, 0, 0, 0, 0, false
	}
	box, hasBox := f.GlyphBoundingBox(g)
	if !hasBox {
		return nil, 0, 0, 0, 0, false
	}

	oScaleX := scaleX * float32(oversampleX)
	oScaleY := scaleY * float32(oversampleY)
	oShiftX := shiftX * float32(oversampleX)
	oShiftY := shiftY * float32(oversampleY)

	ox0, oy0, ox1, oy1 := PixelBounds(box, oScaleX, oScaleY, oShiftX, oShiftY)
	ow, oh := ox1-ox0, oy1-oy0
	if ow <= 0 || oh <= 0 {
		return nil, 0, 0, 0, 0, false
	}
	contours := FlattenPath(verts, oScaleX, -oScaleY, oShiftX-float32(ox0), oShiftY-float32(oy0))
	over := Rasterize(contours, ow, oh)

	tightW := (ow + oversampleX - 1) / oversampleX
	tightH := (oh + oversampleY - 1) / oversampleY
	if tightW <= 0 || tightH <= 0 {
		return nil, 0, 0, 0, 0, false
	}
	dst := &Bitmap{W: tightW, H: tightH, Stride: tightW, Pixels: make([]byte, tightW*tightH)}
	boxFilterDown(over, dst, 0, 0, tightW, tightH, oversampleX, oversampleY)

	xOff = ox0 / oversampleX
	yOff = oy0 / oversampleY
	subX = float32(oversampleX-1) / (2 * float32(oversampleX))
	subY = float32(oversampleY-1) / (2 * float32(oversampleY))
	return dst, xOff, yOff, subX, subY, true
}

// Face adapts a Font to golang.org/x/image/font.Face, so that this
// package's fonts can be used anywhere that interface is accepted
// (e.g. golang.org/x/image/font/basicfont-style drawers). It holds no
// glyph cache: every call rasterizes from the underlying Font, which
// is itself safe for concurrent use.
type Face struct {
	f     *Font
	scale float32 // font units -> pixels; callers multiply by 64 for 26.6
}

var _ font.Face = (*Face)(nil)

// NewFace returns a Face rendering f at the given point size and DPI.
// A zero size or dpi falls back to 12pt at 72dpi, matching
// truetype/face.go's Options defaults.
func NewFace(f *Font, sizePoints, dpi float64) *Face {
	if sizePoints <= 0 {
		sizePoints = 12
	}
	if dpi <= 0 {
		dpi = 72
	}
	pixels := sizePoints * dpi / 72
	return &Face{f: f, scale: f.ScaleForEmToPixels(float32(pixels))}
}

func (face *Face) Close() error { return nil }

// Metrics satisfies the font.Face interface.
func (face *Face) Metrics() font.Metrics {
	ascent, descent, lineGap := face.f.FontVMetrics()
	scale64 := func(v int) fixed.Int26_6 { return fixed.Int26_6(float32(v) * face.scale * 64) }
	return font.Metrics{
		Height:  scale64(ascent - descent + lineGap),
		Ascent:  scale64(ascent),
		Descent: scale64(-descent),
	}
}

func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	units := face.f.CodepointKernAdvance(r0, r1)
	return fixed.Int26_6(float32(units) * face.scale * 64)
}

func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	hm := face.f.CodepointHMetrics(r)
	return fixed.Int26_6(float32(hm.AdvanceWidth) * face.scale * 64), true
}

func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g := face.f.FindGlyph(r)
	x0, y0, x1, y1, hasBox := face.f.GlyphBitmapBox(g, face.scale, face.scale, 0, 0)
	if !hasBox {
		return fixed.Rectangle26_6{}, 0, false
	}
	adv, _ := face.GlyphAdvance(r)
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fixed.Int26_6(x0 << 6), Y: fixed.Int26_6(y0 << 6)},
		Max: fixed.Point26_6{X: fixed.Int26_6(x1 << 6), Y: fixed.Int26_6(y1 << 6)},
	}, adv, true
}

// Glyph satisfies font.Face: it rasterizes the glyph for r at the
// given dot (26.6 fixed point baseline origin) and returns the mask
// and the rectangle within dr that it occupies.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	g := face.f.FindGlyph(r)
	ix, fx := int(dot.X>>6), float32(dot.X&0x3f)/64
	iy, fy := int(dot.Y>>6), float32(dot.Y&0x3f)/64
	bmp, xOff, yOff, hasBitmap := face.f.GlyphBitmap(g, face.scale, face.scale, fx, fy)
	adv, _ := face.GlyphAdvance(r)
	if !hasBitmap {
		return image.Rectangle{}, nil, image.Point{}, adv, false
	}
	dr = image.Rect(ix+xOff, iy+yOff, ix+xOff+bmp.W, iy+yOff+bmp.H)
	alpha := &image.Alpha{Pix: bmp.Pixels, Stride: bmp.Stride, Rect: image.Rect(0, 0, bmp.W, bmp.H)}
	return dr, alpha, image.Point{}, adv, true
}

