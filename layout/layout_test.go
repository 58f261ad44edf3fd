// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.BorderSize = 0
	cfg.TabBarHeight = 20
	return cfg
}

func TestComputeSingleLeafFillsArea(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	leaf, err := a.Insert(root, tree.PosInto, tree.HintAuto, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)

	area := geom.Rect{W: 1000, H: 800}
	plan := Compute(a, root, nil, leaf, area, testConfig())
	got := plan.Windows[1]
	assert.Equal(t, area, got.Rect)
	assert.True(t, got.Visible)
	assert.Equal(t, 0, got.ZOrder)
}

func TestComputeSplitHDividesByRatio(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	l1, _ := a.Insert(root, tree.PosInto, tree.HintAuto, tree.SpawnAuto, tree.Leaf{Window: 1})
	_, err := a.Insert(l1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})
	require.NoError(t, err)

	area := geom.Rect{W: 1000, H: 800}
	plan := Compute(a, root, nil, l1, area, testConfig())
	w1 := plan.Windows[1]
	w2 := plan.Windows[2]
	assert.InDelta(t, 500, w1.Rect.W, 0.001)
	assert.InDelta(t, 500, w2.Rect.W, 0.001)
	assert.InDelta(t, 0, w1.Rect.X, 0.001)
	assert.InDelta(t, 500, w2.Rect.X, 0.001)
}

func TestComputeTabbedHidesInactiveChildren(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindTabbed)
	l1, _ := a.Insert(root, tree.PosInto, tree.HintAuto, tree.SpawnAuto, tree.Leaf{Window: 1})
	l2, err := a.Insert(root, tree.PosInto, tree.HintAuto, tree.SpawnAuto, tree.Leaf{Window: 2})
	require.NoError(t, err)
	a.MustGet(root).ActiveChild = 0

	area := geom.Rect{W: 1000, H: 800}
	plan := Compute(a, root, nil, l1, area, testConfig())
	w1 := plan.Windows[1]
	w2 := plan.Windows[2]
	assert.True(t, w1.Visible)
	assert.False(t, w2.Visible)
	assert.InDelta(t, 20, w1.Rect.Y, 0.001)
	_ = l2
}

func TestComputeMinWidthExpandsCell(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	leaf, err := a.Insert(root, tree.PosInto, tree.HintAuto, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.MinWidth = geom.Size{Value: 2000}
	plan := Compute(a, root, nil, leaf, geom.Rect{W: 1000, H: 800}, cfg)
	got := plan.Windows[1]
	assert.InDelta(t, 2000, got.Rect.W, 0.001)
}

func TestComputeFloatsClampAndZOrder(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	f1 := a.NewLeaf(10)
	a.MustGet(f1).Leaf.Floating = true
	a.MustGet(f1).Leaf.FloatRect = geom.Rect{X: -50, Y: -50, W: 100, H: 100}
	f2 := a.NewLeaf(11)
	a.MustGet(f2).Leaf.Floating = true
	a.MustGet(f2).Leaf.FloatRect = geom.Rect{X: 10, Y: 10, W: 100, H: 100}

	floats := map[tree.NodeId]bool{f1: true, f2: true}
	area := geom.Rect{W: 1000, H: 800}
	plan := Compute(a, root, floats, f2, area, testConfig())

	w10 := plan.Windows[10]
	w11 := plan.Windows[11]
	assert.GreaterOrEqual(t, w10.Rect.X, 0.0)
	assert.GreaterOrEqual(t, w10.Rect.Y, 0.0)
	assert.Equal(t, 1, w10.ZOrder)
	assert.Equal(t, 2, w11.ZOrder) // focused float promoted to top
}
