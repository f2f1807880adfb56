// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func TestScaleForPixelHeight(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)
	// ascent 800, descent -200, span 1000 units/em.
	assert.InDelta(t, 0.02, f.ScaleForPixelHeight(20), 1e-6)
}

func TestScaleForEmToPixels(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.016, f.ScaleForEmToPixels(16), 1e-6)
}

func TestPixelBoundsFlipsYAndScales(t *testing.T) {
	b := Bounds{XMin: 0, YMin: 0, XMax: 100, YMax: 100}
	x0, y0, x1, y1 := PixelBounds(b, 1, 1, 0, 0)
	assert.Equal(t, 0, x0)
	assert.Equal(t, -100, y0)
	assert.Equal(t, 100, x1)
	assert.Equal(t, 0, y1)
}

func TestCodepointBitmapRastersTriangle(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	bmp, _, _, ok := f.CodepointBitmap('A', scale, scale, 0, 0)
	require.True(t, ok)
	var anyLit bool
	for _, v := range bmp.Pixels {
		if v != 0 {
			anyLit = true
		}
	}
	assert.True(t, anyLit)
}

func TestCodepointBitmapMissingGlyphIsNotOK(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	_, _, _, ok := f.CodepointBitmap('Z', scale, scale, 0, 0) // maps to .notdef, empty outline
	assert.False(t, ok)
}

func TestGlyphBitmapIntoMatchesGlyphBitmap(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	want, xOff, yOff, ok := f.GlyphBitmap(1, scale, scale, 0, 0)
	require.True(t, ok)

	dst := &Bitmap{W: want.W, H: want.H, Stride: want.W, Pixels: make([]byte, want.W*want.H)}
	ok = f.GlyphBitmapInto(dst, 1, scale, scale, 0, 0)
	require.True(t, ok)

	gx0, gy0, _, _, boxOK := f.GlyphBitmapBox(1, scale, scale, 0, 0)
	require.True(t, boxOK)
	assert.Equal(t, xOff, gx0)
	assert.Equal(t, yOff, gy0)
	assert.Equal(t, want.Pixels, dst.Pixels)
}

func TestGlyphBitmapIntoTooSmallDstFails(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	dst := &Bitmap{W: 1, H: 1, Stride: 1, Pixels: make([]byte, 1)}
	ok := f.GlyphBitmapInto(dst, 1, scale, scale, 0, 0)
	assert.False(t, ok)
}

func TestGlyphBitmapSubpixelPrefilterProducesTightBitmap(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	bmp, _, _, subX, subY, ok := f.GlyphBitmapSubpixelPrefilter(1, scale, scale, 0, 0, 2, 2)
	require.True(t, ok)
	require.Greater(t, bmp.W, 0)
	require.Greater(t, bmp.H, 0)
	assert.InDelta(t, 0.25, subX, 1e-6) // (2-1)/(2*2)
	assert.InDelta(t, 0.25, subY, 1e-6)

	var anyLit bool
	for _, v := range bmp.Pixels {
		if v != 0 {
			anyLit = true
		}
	}
	assert.True(t, anyLit)
}

func TestGlyphBitmapSubpixelPrefilterDefaultsOversample(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	scale := f.ScaleForPixelHeight(20)
	_, _, _, _, _, ok := f.GlyphBitmapSubpixelPrefilter(1, scale, scale, 0, 0, 0, 0)
	assert.True(t, ok) // oversample < 1 clamps to 1, same as unfiltered rasterization
}

func TestFaceSatisfiesFontFaceAndRendersGlyph(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	face := NewFace(f, 20, 72)
	var _ font.Face = face

	adv, ok := face.GlyphAdvance('A')
	require.True(t, ok)
	assert.Greater(t, int(adv), 0)

	bounds, _, ok := face.GlyphBounds('A')
	require.True(t, ok)
	assert.True(t, bounds.Max.X > bounds.Min.X)

	m := face.Metrics()
	assert.Greater(t, int(m.Ascent), 0)

	dr, mask, _, advance, ok := face.Glyph(fixed.Point26_6{}, 'A')
	require.True(t, ok)
	assert.NotNil(t, mask)
	assert.False(t, dr.Empty())
	assert.Greater(t, int(advance), 0)
}

func TestNewFaceDefaultsSizeAndDPI(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	face := NewFace(f, 0, 0) // should fall back to 12pt @ 72dpi
	assert.NotZero(t, face.scale)
}
