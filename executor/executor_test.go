// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/command"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
	"github.com/l0ngvh/Dome/world"
)

func newTestWorld() *world.World {
	return world.New("built-in", geom.Rect{W: 1920, H: 1080})
}

func addWindow(t *testing.T, w *world.World, window tree.WindowId) tree.NodeId {
	t.Helper()
	ws := w.FocusedMon().Active()
	leafID, err := w.Arena.Insert(ws.Root, tree.PosInto, tree.HintAuto, w.SpawnDirection, tree.Leaf{Window: window})
	require.NoError(t, err)
	ws.FocusedLeaf = leafID
	w.FocusedLeaf = leafID
	return leafID
}

func TestHandleWindowCreatedInsertsAndFocuses(t *testing.T) {
	w := newTestWorld()
	e := New(w)

	res, err := e.HandleWindowCreated(1, rules.Decision{Manage: true})
	require.NoError(t, err)
	assert.True(t, res.HasFocus)
	assert.Equal(t, tree.WindowId(1), res.FocusIntent)
	require.Len(t, res.Touched, 1)
	assert.Equal(t, world.MonitorId("built-in"), res.Touched[0].Monitor)

	leaves := w.Arena.Leaves(w.FocusedMon().Active().Root)
	require.Len(t, leaves, 1)
}

func TestHandleWindowCreatedIgnoredIsRecorded(t *testing.T) {
	w := newTestWorld()
	e := New(w)

	res, err := e.HandleWindowCreated(99, rules.Decision{Manage: false})
	require.NoError(t, err)
	assert.Empty(t, res.Touched)
	assert.True(t, w.Ignored[99])
	assert.Empty(t, w.Arena.Leaves(w.FocusedMon().Active().Root))
}

func TestHandleWindowCreatedRunsOnOpenSideEffects(t *testing.T) {
	w := newTestWorld()
	e := New(w)

	res, err := e.HandleWindowCreated(1, rules.Decision{Manage: true, Run: [][]string{{"notify-send", "hi"}}})
	require.NoError(t, err)
	require.Len(t, res.SideEffects, 1)
	assert.Equal(t, SideEffectExec, res.SideEffects[0].Kind)
	assert.Equal(t, []string{"notify-send", "hi"}, res.SideEffects[0].Argv)
}

func TestHandleWindowDestroyedIgnoredIsDropped(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	w.Ignored[7] = true

	res, err := e.HandleWindowDestroyed(7)
	require.NoError(t, err)
	assert.Empty(t, res.Touched)
	assert.False(t, w.Ignored[7])
}

func TestHandleWindowDestroyedFallsBackFocus(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)
	addWindow(t, w, 2) // splits next to 1, becomes focused

	res, err := e.HandleWindowDestroyed(2)
	require.NoError(t, err)
	assert.True(t, res.HasFocus)
	assert.Equal(t, tree.WindowId(1), res.FocusIntent)
}

func TestFocusDirectionMovesAcrossSplit(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)
	addWindow(t, w, 2)

	res, err := e.Execute(command.Command{Kind: command.KindFocusDirection, Direction: geom.DirLeft})
	require.NoError(t, err)
	assert.Equal(t, tree.WindowId(1), res.FocusIntent)
}

func TestFocusParentThenDirectionOperatesOnContainer(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)
	addWindow(t, w, 2)
	root := w.FocusedMon().Active().Root

	_, err := e.Execute(command.Command{Kind: command.KindFocusParent})
	require.NoError(t, err)
	assert.NotEqual(t, tree.NoNode, w.FocusLevel)

	res, err := e.Execute(command.Command{Kind: command.KindFocusDirection, Direction: geom.DirLeft})
	// FocusLevel is the workspace root itself, so moving it left escapes
	// the workspace and escalates to `focus monitor left`, which fails on
	// "built-in"'s single monitor; the rollback keeps FocusLevel set. From
	// the focused leaf (window 2) the same command would have succeeded.
	require.Error(t, err)
	assert.False(t, res.HasFocus)
	assert.Equal(t, root, w.FocusLevel)
}

func TestToggleFloatRoundTrips(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	leaf := addWindow(t, w, 1)
	w.Arena.MustGet(leaf).Leaf.LastTiledRect = &geom.Rect{X: 100, Y: 100, W: 400, H: 300}

	res, err := e.Execute(command.Command{Kind: command.KindToggleFloat})
	require.NoError(t, err)
	assert.True(t, res.HasFocus)
	n := w.Arena.MustGet(leaf)
	assert.True(t, n.Leaf.Floating)
	assert.Equal(t, geom.Rect{X: 100, Y: 100, W: 400, H: 300}, n.Leaf.FloatRect)
	ws := w.FocusedMon().Active()
	assert.True(t, ws.Floats[leaf])

	_, err = e.Execute(command.Command{Kind: command.KindToggleFloat})
	require.NoError(t, err)
	n = w.Arena.MustGet(leaf)
	assert.False(t, n.Leaf.Floating)
	assert.False(t, ws.Floats[leaf])
	leaves := w.Arena.Leaves(ws.Root)
	assert.Contains(t, leaves, leaf)
}

func TestToggleFloatDefaultsToCenteredRectWithoutLastTiledRect(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)

	_, err := e.Execute(command.Command{Kind: command.KindToggleFloat})
	require.NoError(t, err)
	n := w.Arena.MustGet(w.FocusedLeaf)
	assert.InDelta(t, 1920*0.6, n.Leaf.FloatRect.W, 0.001)
	assert.InDelta(t, 1080*0.6, n.Leaf.FloatRect.H, 0.001)
}

func TestToggleFloatNoFocusedWindowErrors(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	_, err := e.Execute(command.Command{Kind: command.KindToggleFloat})
	assert.Error(t, err)
}

func TestToggleDirectionFlipsAxis(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)
	addWindow(t, w, 2)
	root := w.FocusedMon().Active().Root

	require.Equal(t, tree.KindSplitH, w.Arena.MustGet(root).Kind)
	_, err := e.Execute(command.Command{Kind: command.KindToggleDirection})
	require.NoError(t, err)
	assert.Equal(t, tree.KindSplitV, w.Arena.MustGet(root).Kind)
}

func TestToggleSpawnDirectionCycles(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	require.Equal(t, tree.SpawnAuto, w.SpawnDirection)
	_, err := e.Execute(command.Command{Kind: command.KindToggleSpawnDirection})
	require.NoError(t, err)
	assert.Equal(t, tree.SpawnHorizontal, w.SpawnDirection)
}

func TestMoveMonitorRelocatesFocusedWindow(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	addWindow(t, w, 1)
	w.HandleMonitorsChanged([]struct {
		ID       world.MonitorId
		WorkArea geom.Rect
	}{
		{ID: "built-in", WorkArea: geom.Rect{W: 1920, H: 1080}},
		{ID: "second", WorkArea: geom.Rect{X: 1920, W: 1920, H: 1080}},
	})

	res, err := e.Execute(command.Command{Kind: command.KindMoveMonitor, Name: "second"})
	require.NoError(t, err)
	assert.True(t, res.HasFocus)
	assert.Equal(t, 1, w.FocusedMonitor)
	second, _, ok := w.FindMonitorByName("second")
	require.True(t, ok)
	assert.Len(t, w.Arena.Leaves(second.Active().Root), 1)
}

func TestExecReturnsSideEffect(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	res, err := e.Execute(command.Command{Kind: command.KindExec, Argv: []string{"true"}})
	require.NoError(t, err)
	require.Len(t, res.SideEffects, 1)
	assert.Equal(t, SideEffectExec, res.SideEffects[0].Kind)
}

func TestExitReturnsSideEffect(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	res, err := e.Execute(command.Command{Kind: command.KindExit})
	require.NoError(t, err)
	require.Len(t, res.SideEffects, 1)
	assert.Equal(t, SideEffectExit, res.SideEffects[0].Kind)
}

func TestDispatcherOnlyCommandIsRejected(t *testing.T) {
	w := newTestWorld()
	e := New(w)
	_, err := e.Execute(command.Command{Kind: command.KindStatus})
	assert.Error(t, err)
}
