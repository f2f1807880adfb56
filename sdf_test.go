// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package struetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func squareSegments() []sdfSegment {
	pts := [][2]float32{{2, 2}, {6, 2}, {6, 6}, {2, 6}, {2, 2}}
	var segs []sdfSegment
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, sdfSegment{
			x0: pts[i][0], y0: pts[i][1],
			x1: pts[i+1][0], y1: pts[i+1][1],
		})
	}
	return segs
}

func TestWindingInsideSquare(t *testing.T) {
	segs := squareSegments()
	assert.True(t, windingInside(segs, 4, 4))
	assert.False(t, windingInside(segs, 0, 0))
	assert.False(t, windingInside(segs, 8, 8))
	assert.False(t, windingInside(segs, 4, 0))
}

func TestLineCrossingsHorizontalIsAlwaysZero(t *testing.T) {
	s := sdfSegment{x0: 0, y0: 5, x1: 10, y1: 5}
	assert.Equal(t, 0, lineCrossings(s, 3, 5))
}

func TestNearestLineDistanceHorizontalAndVertical(t *testing.T) {
	horiz := sdfSegment{x0: 0, y0: 0, x1: 10, y1: 0}
	assert.InDelta(t, 3, nearestLineDistance(horiz, 5, 3), 1e-5)

	vert := sdfSegment{x0: 0, y0: 0, x1: 0, y1: 10}
	assert.InDelta(t, 4, nearestLineDistance(vert, 4, 5), 1e-5)
}

func TestNearestLineDistanceClampsToEndpoints(t *testing.T) {
	s := sdfSegment{x0: 0, y0: 0, x1: 10, y1: 0}
	// Point beyond the segment's far endpoint; nearest point is the
	// endpoint itself, not an extrapolated point on the infinite line.
	assert.InDelta(t, 5, nearestLineDistance(s, 15, 0), 1e-5)
}

func TestSolveQuadraticTwoRoots(t *testing.T) {
	roots := solveQuadratic(1, 0, -4)
	assert.ElementsMatch(t, []float64{2, -2}, roots)
}

func TestSolveQuadraticLinearFallback(t *testing.T) {
	roots := solveQuadratic(0, 2, -4)
	assert.Equal(t, []float64{2}, roots)
}

func TestCbrtSignPreserving(t *testing.T) {
	assert.InDelta(t, 2, cbrt(8), 1e-9)
	assert.InDelta(t, -2, cbrt(-8), 1e-9)
}

func TestHypotf(t *testing.T) {
	assert.InDelta(t, 5, hypotf(3, 4), 1e-6)
}

func TestBezier2Endpoints(t *testing.T) {
	assert.InDelta(t, 0, bezier2(0, 50, 100, 0), 1e-9)
	assert.InDelta(t, 100, bezier2(0, 50, 100, 1), 1e-9)
}
