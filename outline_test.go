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

func TestGlyphOutlineDispatchesToTrueType(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, sourceTrueType, f.source)

	verts, err := f.GlyphOutline(1)
	require.NoError(t, err)
	assert.NotEmpty(t, verts)
}

func TestGlyphOutlineDispatchesToCFF(t *testing.T) {
	buf := buildMinimalCFFFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, sourceCFF, f.source)

	verts, err := f.GlyphOutline(1)
	require.NoError(t, err)
	assert.NotEmpty(t, verts)
}

func TestGlyphBoundingBoxTrueType(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	box, ok := f.GlyphBoundingBox(1)
	require.True(t, ok)
	assert.EqualValues(t, 0, box.XMin)
	assert.EqualValues(t, 500, box.XMax)
	assert.EqualValues(t, 700, box.YMax)
}

func TestGlyphBoundingBoxCFF(t *testing.T) {
	buf := buildMinimalCFFFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	box, ok := f.GlyphBoundingBox(1)
	require.True(t, ok)
	assert.EqualValues(t, 0, box.XMin)
	assert.EqualValues(t, 100, box.XMax)
	assert.EqualValues(t, 100, box.YMax)
}

func TestGlyphBoundingBoxEmptyGlyphIsNotOK(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	_, ok := f.GlyphBoundingBox(0)
	assert.False(t, ok)
}

func TestIsGlyphEmpty(t *testing.T) {
	buf := buildMinimalTrueTypeFont()
	f, err := Init(buf, 0)
	require.NoError(t, err)

	assert.True(t, f.IsGlyphEmpty(0))  // .notdef, no outline
	assert.False(t, f.IsGlyphEmpty(1)) // triangle
}
