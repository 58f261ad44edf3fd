// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/l0ngvh/Dome/geom"
)

func TestRectClampShrinksToBounds(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	r := geom.Rect{X: 80, Y: 80, W: 50, H: 50}
	got := r.Clamp(bounds)
	assert.Equal(t, geom.Rect{X: 50, Y: 50, W: 50, H: 50}, got)
}

func TestRectClampPreservesSizeWhenFits(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 10, Y: 10, W: 50, H: 50}
	assert.Equal(t, r, r.Clamp(bounds))
}

func TestCenteredIn(t *testing.T) {
	r := geom.Rect{X: 0, Y: 0, W: 200, H: 100}
	got := geom.CenteredIn(r, 100, 50)
	assert.Equal(t, geom.Rect{X: 50, Y: 25, W: 100, H: 50}, got)
}

func TestDirectionAxis(t *testing.T) {
	assert.Equal(t, geom.AxisHorizontal, geom.DirLeft.Axis())
	assert.Equal(t, geom.AxisHorizontal, geom.DirRight.Axis())
	assert.Equal(t, geom.AxisVertical, geom.DirUp.Axis())
	assert.Equal(t, geom.AxisVertical, geom.DirDown.Axis())
}

func TestDirectionForwardOpposite(t *testing.T) {
	assert.True(t, geom.DirRight.Forward())
	assert.False(t, geom.DirLeft.Forward())
	assert.Equal(t, geom.DirLeft, geom.DirRight.Opposite())
	assert.Equal(t, geom.DirUp, geom.DirDown.Opposite())
}

func TestParseDirection(t *testing.T) {
	d, ok := geom.ParseDirection("left")
	assert.True(t, ok)
	assert.Equal(t, geom.DirLeft, d)

	_, ok = geom.ParseDirection("sideways")
	assert.False(t, ok)
}

func TestSizeResolve(t *testing.T) {
	pct := geom.Size{Percent: true, Value: 50}
	assert.InDelta(t, 400.0, pct.Resolve(800), 0.0001)

	abs := geom.Size{Value: 120}
	assert.InDelta(t, 120.0, abs.Resolve(800), 0.0001)
}
