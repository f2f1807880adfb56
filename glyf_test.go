// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTFOutlineTriangle(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	verts, err := f.GlyphOutline(1)
	require.NoError(t, err)
	require.Len(t, verts, 4) // move + 2 lines + closing line
	assert.Equal(t, VMove, verts[0].Type)
	assert.EqualValues(t, 0, verts[0].X)
	assert.EqualValues(t, 0, verts[0].Y)
	assert.Equal(t, VLine, verts[len(verts)-1].Type)
	assert.EqualValues(t, 0, verts[len(verts)-1].X)
	assert.EqualValues(t, 0, verts[len(verts)-1].Y)
}

func TestGlyphOutlineEmptyGlyphIsNil(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	verts, err := f.GlyphOutline(0) // .notdef, empty
	require.NoError(t, err)
	assert.Nil(t, verts)
}

func TestGlyphOutlineInvalidGlyphIndexIsNil(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	verts, err := f.GlyphOutline(1000)
	require.NoError(t, err)
	assert.Nil(t, verts)
}

func TestContourVerticesAllOffCurveSynthesizesMidpointStart(t *testing.T) {
	// A contour with no on-curve points (all off-curve flags clear the
	// on-curve bit) should synthesize its start as the midpoint of the
	// first and last points, per spec.md section 4.D.
	flags := []byte{0, 0, 0, 0}
	xs := []int16{0, 100, 100, 0}
	ys := []int16{0, 0, 100, 100}
	verts := contourVertices(flags, xs, ys)
	require.NotEmpty(t, verts)
	assert.Equal(t, VMove, verts[0].Type)
	assert.EqualValues(t, 0, verts[0].X) // (xs[0]+xs[3])/2 == (0+0)/2
	assert.EqualValues(t, 50, verts[0].Y)
	for _, v := range verts[1:] {
		assert.Equal(t, VQuad, v.Type)
	}
}

func TestContourVerticesAllOnCurveIsPolygon(t *testing.T) {
	flags := []byte{glyfOnCurve, glyfOnCurve, glyfOnCurve}
	xs := []int16{0, 500, 250}
	ys := []int16{0, 0, 700}
	verts := contourVertices(flags, xs, ys)
	require.Len(t, verts, 4)
	for _, v := range verts[1:] {
		assert.Equal(t, VLine, v.Type)
	}
}

func TestCompositeGlyphMatchPointsIsUnsupported(t *testing.T) {
	// flags without compArgsAreXYValues set signals point-matching mode,
	// which spec.md section 9 leaves unsupported.
	gd := make([]byte, 14)
	gd[1] = 0xFF // numberOfContours = -1 (composite), low byte
	gd[0] = 0xFF // high byte
	flags := uint16(compMoreComponents) // compArgsAreXYValues bit (0x2) clear
	gd[10] = byte(flags >> 8)
	gd[11] = byte(flags)
	gd[12] = 0
	gd[13] = 1 // component glyph index

	f := &Font{numGlyphs: 2}
	_, err := f.decodeCompositeGlyph(gd, 0)
	assert.Error(t, err)
}

func TestTransformPointAppliesColumnNormScale(t *testing.T) {
	// A uniform 2x WE_HAVE_A_SCALE matrix (a=d=2, b=c=0) renormalizes
	// each axis by its own column norm (m=n=2), so a component using it
	// ends up scaled 4x overall, matching stb_truetype's m/n factors.
	x, y := transformPoint(2, 0, 0, 2, 0, 0, 10, 10)
	assert.EqualValues(t, 40, x)
	assert.EqualValues(t, 40, y)
}

func TestTransformPointIdentityIsUnchanged(t *testing.T) {
	x, y := transformPoint(1, 0, 0, 1, 5, -5, 10, 20)
	assert.EqualValues(t, 15, x)
	assert.EqualValues(t, 15, y)
}

func TestMaxCompositeRecursionStopsRecursion(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)
	verts, err := f.ttfOutline(1, maxCompositeRecursion)
	require.NoError(t, err)
	assert.Nil(t, verts)
}
