// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/tree"
)

func noRoot(tree.NodeId) bool { return false }

func TestInsertIntoEmptyRoot(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)

	leafID, err := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)

	n := a.MustGet(leafID)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, tree.WindowId(1), n.Leaf.Window)
	assert.Equal(t, root, n.Parent)

	rn := a.MustGet(root)
	assert.Equal(t, []tree.NodeId{leafID}, rn.Children)
}

func TestInsertAfterExtendsMatchingSplit(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, err := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)

	w2, err := a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})
	require.NoError(t, err)

	rn := a.MustGet(root)
	require.Len(t, rn.Children, 2)
	assert.Equal(t, w1, rn.Children[0])
	assert.Equal(t, w2, rn.Children[1])
	require.Len(t, rn.Ratios, 2)
	assert.InDelta(t, 0.5, rn.Ratios[0], 1e-9)
	assert.InDelta(t, 0.5, rn.Ratios[1], 1e-9)

	require.NoError(t, a.CheckInvariants(root))
}

func TestInsertAfterWrapsLeafIntoNewSplit(t *testing.T) {
	// Root already has one leaf sibling; inserting Before/After a leaf
	// whose parent kind differs from the hint wraps it in a fresh
	// container (spec.md §4.1 wrap-or-extend).
	a := tree.NewArena()
	root := a.NewContainer(tree.KindTabbed)
	w1, err := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)

	w2, err := a.Insert(w1, tree.PosAfter, tree.HintSplitV, tree.SpawnAuto, tree.Leaf{Window: 2})
	require.NoError(t, err)

	rn := a.MustGet(root)
	require.Len(t, rn.Children, 1)
	wrapperID := rn.Children[0]
	wrapper := a.MustGet(wrapperID)
	assert.Equal(t, tree.KindSplitV, wrapper.Kind)
	assert.Equal(t, []tree.NodeId{w1, w2}, wrapper.Children)
	require.NoError(t, a.CheckInvariants(root))
}

func TestRemoveDropsLeafFromSplit(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, err := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	require.NoError(t, err)
	w2, err := a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})
	require.NoError(t, err)

	require.NoError(t, a.Remove(w2, noRoot))

	rn := a.MustGet(root)
	assert.Equal(t, []tree.NodeId{w1}, rn.Children)
	require.NoError(t, a.CheckInvariants(root))
}

func TestRemoveDownToLoneLeafNeedsNoCollapse(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, _ := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	w2, _ := a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})
	w3, _ := a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 3})

	// root: SplitH[w1, w3, w2]. Removing w3 and w2 down to one child
	// of root would leave a lone SplitH leaf child, which is fine
	// (invariant 4 only forbids a single child that is ITSELF a
	// split of the same kind, not a lone leaf).
	require.NoError(t, a.Remove(w2, noRoot))
	require.NoError(t, a.Remove(w3, noRoot))
	rn := a.MustGet(root)
	assert.Equal(t, []tree.NodeId{w1}, rn.Children)
	require.NoError(t, a.CheckInvariants(root))
}

func TestToggleLayoutRoundTrip(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, _ := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})
	a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})

	require.NoError(t, a.ToggleLayout(root))
	assert.Equal(t, tree.KindTabbed, a.MustGet(root).Kind)
	assert.Nil(t, a.MustGet(root).Ratios)

	require.NoError(t, a.ToggleLayout(root))
	assert.Equal(t, tree.KindSplitH, a.MustGet(root).Kind)
	require.Len(t, a.MustGet(root).Ratios, 2)
}

func TestToggleDirectionIsInvolution(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	require.NoError(t, a.ToggleDirection(root))
	assert.Equal(t, tree.KindSplitV, a.MustGet(root).Kind)
	require.NoError(t, a.ToggleDirection(root))
	assert.Equal(t, tree.KindSplitH, a.MustGet(root).Kind)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	a := tree.NewArena()
	root := a.NewContainer(tree.KindSplitH)
	w1, _ := a.Insert(root, tree.PosInto, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 1})

	snap := a.Snapshot()
	a.Insert(w1, tree.PosAfter, tree.HintSplitH, tree.SpawnAuto, tree.Leaf{Window: 2})
	assert.Len(t, a.MustGet(root).Children, 2) // extended in place: matches root's own kind

	a.Restore(snap)
	assert.Equal(t, []tree.NodeId{w1}, a.MustGet(root).Children)
}
