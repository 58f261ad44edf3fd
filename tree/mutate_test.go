// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

func buildRow(t *testing.T, n int) (*tree.Arena, tree.NodeId, []tree.NodeId) {
	t.Helper()
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	var ids []tree.NodeId
	prev, err := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: tree.WindowId(1)})
	require.NoError(t, err)
	ids = append(ids, prev)
	for i := 2; i <= n; i++ {
		next, err := a.Insert(prev, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: tree.WindowId(i)})
		require.NoError(t, err)
		ids = append(ids, next)
		prev = next
	}
	return a, root, ids
}

func TestMoveNodeSwapsWithinSplit(t *testing.T) {
	a, root, ids := buildRow(t, 3)
	require.NoError(t, a.MoveNode(ids[0], geom.DirRight))
	rn := a.MustGet(root)
	assert.Equal(t, []tree.NodeId{ids[1], ids[0], ids[2]}, rn.Children)
}

func TestMoveNodeAtBoundaryEscapes(t *testing.T) {
	a, _, ids := buildRow(t, 2)
	err := a.MoveNode(ids[1], geom.DirRight)
	assert.ErrorIs(t, err, tree.ErrEscaped)
}

func TestFocusMoveDescendsActiveChildPath(t *testing.T) {
	a, root, ids := buildRow(t, 2)
	// Wrap ids[1] in a tabbed container with a third window, whose
	// active child is the third window.
	w3, err := a.Insert(ids[1], tree.PosAfter, tree.HintTabbed, tree.SpawnAuto, tree.Leaf{Window: 3})
	require.NoError(t, err)
	rn := a.MustGet(root)
	require.Len(t, rn.Children, 2)
	wrapper := rn.Children[1]
	assert.Equal(t, tree.KindTabbed, a.MustGet(wrapper).Kind)

	got, err := a.FocusMove(ids[0], geom.DirRight)
	require.NoError(t, err)
	assert.Equal(t, w3, got) // active child of the tabbed wrapper
}

func TestNearestTabbedAncestorSkipsMismatchedSplits(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindTabbed)
	w1, _ := a.Insert(root, tree.PosInto, tree.HintTabbed, tree.SpawnAuto, tree.Leaf{Window: 1})
	w2, _ := a.Insert(w1, tree.PosAfter, tree.HintSplitV, tree.SpawnAuto, tree.Leaf{Window: 2})

	got, ok := a.NearestTabbedAncestor(w2)
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestCycleTabWraps(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindTabbed)
	a.Insert(root, tree.PosInto, tree.HintTabbed, tree.SpawnAuto, tree.Leaf{Window: 1})
	a.Insert(root, tree.PosInto, tree.HintTabbed, tree.SpawnAuto, tree.Leaf{Window: 2})
	// Insert Into leaves the newest tab active; start from the first.
	a.MustGet(root).ActiveChild = 0
	require.NoError(t, a.CycleTab(root, 1))
	assert.Equal(t, 1, a.MustGet(root).ActiveChild)
	require.NoError(t, a.CycleTab(root, 1))
	assert.Equal(t, 0, a.MustGet(root).ActiveChild)
	require.NoError(t, a.CycleTab(root, -1))
	assert.Equal(t, 1, a.MustGet(root).ActiveChild)
}

func TestPromoteHoistsOneLevel(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, _ := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	w2, _ := a.Insert(w1, tree.PosAfter, tree.HintSplitV, tree.SpawnAuto, tree.Leaf{Window: 2})
	// root: SplitH[ SplitV[w1,w2] ]
	wrapper := a.MustGet(root).Children[0]
	require.NoError(t, a.Promote(w2, noRoot))

	rn := a.MustGet(root)
	assert.Contains(t, rn.Children, w2)
	assert.Contains(t, rn.Children, wrapper)
	require.NoError(t, a.CheckInvariants(root))
}

func TestResolveHintAutoPicksAxisFromLastRect(t *testing.T) {
	wide := &tree.Node{Kind: tree.KindLeaf, Leaf: tree.Leaf{LastTiledRect: &geom.Rect{W: 800, H: 400}}}
	tall := &tree.Node{Kind: tree.KindLeaf, Leaf: tree.Leaf{LastTiledRect: &geom.Rect{W: 400, H: 800}}}
	assert.Equal(t, tree.KindSplitH, tree.ResolveHint(tree.HintAuto, tree.SpawnAuto, wide))
	assert.Equal(t, tree.KindSplitV, tree.ResolveHint(tree.HintAuto, tree.SpawnAuto, tall))
}

func TestResolveHintSpawnOverrideWins(t *testing.T) {
	wide := &tree.Node{Kind: tree.KindLeaf, Leaf: tree.Leaf{LastTiledRect: &geom.Rect{W: 800, H: 400}}}
	assert.Equal(t, tree.KindSplitV, tree.ResolveHint(tree.HintAuto, tree.SpawnVertical, wide))
	assert.Equal(t, tree.KindTabbed, tree.ResolveHint(tree.HintAuto, tree.SpawnTabbed, wide))
}
