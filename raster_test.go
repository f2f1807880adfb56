// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"
)

func TestRasterizeAxisAlignedSquareFullyCovered(t *testing.T) {
	square := [][]f32.Vec2{{
		{2, 2}, {6, 2}, {6, 6}, {2, 6}, {2, 2},
	}}
	bmp := Rasterize(square, 8, 8)
	require.Equal(t, 8, bmp.W)
	require.Equal(t, 8, bmp.H)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := bmp.Pixels[y*bmp.Stride+x]
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			if inside {
				assert.EqualValuesf(t, 255, v, "expected full coverage at (%d,%d)", x, y)
			} else {
				assert.EqualValuesf(t, 0, v, "expected no coverage at (%d,%d)", x, y)
			}
		}
	}
}

func TestRasterizeEmptyContoursIsBlank(t *testing.T) {
	bmp := Rasterize(nil, 4, 4)
	for _, v := range bmp.Pixels {
		assert.EqualValues(t, 0, v)
	}
}

func TestRasterizeZeroSizeReturnsEmptyBitmap(t *testing.T) {
	bmp := Rasterize(nil, 0, 0)
	assert.Empty(t, bmp.Pixels)
	assert.True(t, bmp.Empty())
}

func TestBuildEdgesSkipsHorizontalSegments(t *testing.T) {
	contours := [][]f32.Vec2{{{0, 0}, {10, 0}}} // purely horizontal
	edges := buildEdges(contours)
	assert.Empty(t, edges)
}

func TestBuildEdgesNormalizesTopToBottom(t *testing.T) {
	contours := [][]f32.Vec2{{{5, 10}, {5, 0}}} // drawn upward
	edges := buildEdges(contours)
	require.Len(t, edges, 1)
	assert.Equal(t, float32(0), edges[0].yTop)
	assert.Equal(t, float32(10), edges[0].yBot)
	assert.Equal(t, float32(-1), edges[0].wind)
}
