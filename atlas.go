// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"math"
	"sort"
)

// This file implements component J: font atlas baking, as a three-step
// gather/pack/render pipeline plus a one-shot convenience wrapper, per
// spec.md section 4.J. The pipeline shape (oversampled rects -> packed
// rectangles -> box-prefiltered render) restates the algorithm
// original_source/struetype.h documents for its pack API; no Go
// reference implementation of it exists in the retrieved pack, so the
// packer and box filter below are authored directly against that
// description, reusing only the Bitmap/Vertex vocabulary already
// established by components D/G/H.

// AtlasOptions configures a baking pass. OversampleX/Y >1 renders each
// glyph at a higher resolution and box-filters it down, trading atlas
// space for smoother small-size output (spec.md section 4.J).
type AtlasOptions struct {
	PixelHeight              float32
	OversampleX, OversampleY int
	PadPixels                int
	ShiftX, ShiftY           float32 // subpixel origin shift, in output pixels
}

func (o AtlasOptions) normalized() AtlasOptions {
	if o.OversampleX < 1 {
		o.OversampleX = 1
	}
	if o.OversampleY < 1 {
		o.OversampleY = 1
	}
	if o.PadPixels < 1 {
		o.PadPixels = 1
	}
	return o
}

// AtlasRect is one glyph's placement request (post-gather, pre-pack)
// and, once PackAtlasRects has run, its assigned position.
type AtlasRect struct {
	Glyph     int
	W, H      int // oversampled device pixel size, including padding
	X, Y      int // assigned origin after packing; -1 if unplaced
	xOffFU    int16
	yOffFU    int16
	boxXMin   int16
	boxYMax   int16
	advanceFU int
}

// GatherAtlasRects measures each glyph's oversampled bitmap footprint
// at the requested pixel height, without yet assigning atlas
// coordinates.
func (f *Font) GatherAtlasRects(glyphs []int, opts AtlasOptions) []AtlasRect {
	opts = opts.normalized()
	scale := f.ScaleForPixelHeight(opts.PixelHeight)
	out := make([]AtlasRect, 0, len(glyphs))
	for _, g := range glyphs {
		r := AtlasRect{Glyph: g, X: -1, Y: -1}
		box, ok := f.GlyphBoundingBox(g)
		if ok {
			devXMin := int(floor32(float32(box.XMin) * scale))
			devYMin := int(floor32(float32(box.YMin) * scale))
			devXMax := int(ceil32(float32(box.XMax) * scale))
			devYMax := int(ceil32(float32(box.YMax) * scale))
			w := (devXMax - devXMin) * opts.OversampleX
			h := (devYMax - devYMin) * opts.OversampleY
			r.W = w + 2*opts.PadPixels
			r.H = h + 2*opts.PadPixels
			r.boxXMin = box.XMin
			r.boxYMax = box.YMax
		}
		hm := f.GlyphHMetrics(g)
		r.advanceFU = hm.AdvanceWidth
		out = append(out, r)
	}
	return out
}

// PackAtlasRects assigns each rect an (X, Y) within a width x height
// atlas using a row-fitter: rects are sorted tallest-first, then placed
// left to right, starting a new row (sized to the tallest rect not yet
// placed in it) whenever one would overflow the atlas width. It reports
// whether every rect was placed.
func PackAtlasRects(rects []AtlasRect, width, height int) bool {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return rects[order[a]].H > rects[order[b]].H })

	x, y, rowHeight := 0, 0, 0
	ok := true
	for _, i := range order {
		r := &rects[i]
		if r.W <= 0 || r.H <= 0 {
			r.X, r.Y = 0, 0
			continue
		}
		if r.W > width || r.H > height {
			ok = false
			continue
		}
		if x+r.W > width {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		if y+r.H > height {
			ok = false
			continue
		}
		r.X, r.Y = x, y
		x += r.W
		if r.H > rowHeight {
			rowHeight = r.H
		}
	}
	return ok
}

// PackedGlyph is one glyph's final atlas placement, in tight (non-
// oversampled) atlas-bitmap coordinates, plus the metrics needed to
// lay it out as text at the baked pixel height.
type PackedGlyph struct {
	Glyph          int
	X0, Y0, X1, Y1 int
	XOff, YOff     float32
	XAdvance       float32
}

// RenderAtlasGlyphs rasterizes every placed rect into a fresh atlas
// Bitmap sized width x height, each glyph oversampled per opts and then
// box-filtered down to its tight footprint, per spec.md section 4.J.
func (f *Font) RenderAtlasGlyphs(rects []AtlasRect, width, height int, opts AtlasOptions) (*Bitmap, []PackedGlyph, error) {
	opts = opts.normalized()
	scale := f.ScaleForPixelHeight(opts.PixelHeight)
	atlas := &Bitmap{W: width, H: height, Stride: width, Pixels: make([]byte, width*height)}
	packed := make([]PackedGlyph, 0, len(rects))

	for _, r := range rects {
		if r.X < 0 || r.W <= 0 || r.H <= 0 {
			continue
		}
		verts, err := f.GlyphOutline(r.Glyph)
		if err != nil {
			return nil, nil, err
		}
		ow := r.W - 2*opts.PadPixels
		oh := r.H - 2*opts.PadPixels
		if ow <= 0 || oh <= 0 || len(verts) == 0 {
			continue
		}

		oScaleX := scale * float32(opts.OversampleX)
		oScaleY := scale * float32(opts.OversampleY)
		shiftX := -float32(r.boxXMin)*oScaleX + opts.ShiftX*float32(opts.OversampleX)
		shiftY := float32(r.boxYMax)*oScaleY + opts.ShiftY*float32(opts.OversampleY)
		contours := FlattenPath(verts, oScaleX, -oScaleY, shiftX, shiftY)
		over := Rasterize(contours, ow, oh)

		tightW := ow / opts.OversampleX
		tightH := oh / opts.OversampleY
		boxFilterDown(over, atlas, r.X+opts.PadPixels, r.Y+opts.PadPixels, tightW, tightH, opts.OversampleX, opts.OversampleY)

		hm := f.GlyphHMetrics(r.Glyph)
		packed = append(packed, PackedGlyph{
			Glyph:    r.Glyph,
			X0:       r.X + opts.PadPixels,
			Y0:       r.Y + opts.PadPixels,
			X1:       r.X + opts.PadPixels + tightW,
			Y1:       r.Y + opts.PadPixels + tightH,
			XOff:     float32(r.boxXMin) * scale,
			YOff:     -float32(r.boxYMax) * scale,
			XAdvance: float32(hm.AdvanceWidth) * scale,
		})
	}
	return atlas, packed, nil
}

// boxFilterDown averages each oversampleX x oversampleY block of src
// into one pixel of dst, writing the dstW x dstH result at (dstX,
// dstY) within dst.
func boxFilterDown(src, dst *Bitmap, dstX, dstY, dstW, dstH, ovX, ovY int) {
	for ty := 0; ty < dstH; ty++ {
		for tx := 0; tx < dstW; tx++ {
			sum := 0
			for sy := 0; sy < ovY; sy++ {
				srcY := ty*ovY + sy
				if srcY >= src.H {
					continue
				}
				for sx := 0; sx < ovX; sx++ {
					srcX := tx*ovX + sx
					if srcX >= src.W {
						continue
					}
					sum += int(src.Pixels[srcY*src.Stride+srcX])
				}
			}
			avg := float32(sum) / float32(ovX*ovY)
			dx, dy := dstX+tx, dstY+ty
			if dx < dst.W && dy < dst.H {
				dst.Pixels[dy*dst.Stride+dx] = clampByte(avg)
			}
		}
	}
}

func clampByte(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }

func ceil32(v float32) float32 { return float32(math.Ceil(float64(v))) }

// BakeFontAtlas runs the gather/pack/render pipeline in one call: the
// one-shot convenience API spec.md section 4.J asks for alongside the
// explicit three-step entry points above.
func (f *Font) BakeFontAtlas(glyphs []int, width, height int, opts AtlasOptions) (*Bitmap, []PackedGlyph, error) {
	rects := f.GatherAtlasRects(glyphs, opts)
	if !PackAtlasRects(rects, width, height) {
		return nil, nil, UnsupportedError("atlas too small to fit all requested glyphs")
	}
	return f.RenderAtlasGlyphs(rects, width, height, opts)
}
