// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

func newTestWorld() *World {
	return New("built-in", geom.Rect{W: 1920, H: 1080})
}

func TestNewWorldHasTenDigitWorkspaces(t *testing.T) {
	w := newTestWorld()
	require.Len(t, w.Monitors, 1)
	m := w.Monitors[0]
	require.Len(t, m.Workspaces, 10)
	assert.Equal(t, "0", m.Active().Name)
}

func addWindow(t *testing.T, w *World, window tree.WindowId) tree.NodeId {
	t.Helper()
	ws := w.FocusedMon().Active()
	leafID, err := w.Arena.Insert(ws.Root, tree.PosInto, tree.HintAuto, w.SpawnDirection, tree.Leaf{Window: window})
	require.NoError(t, err)
	ws.FocusedLeaf = leafID
	w.FocusedLeaf = leafID
	return leafID
}

func TestFocusWorkspaceSwitchesActiveAndHidesShows(t *testing.T) {
	w := newTestWorld()
	addWindow(t, w, 1)

	hs, err := w.FocusWorkspace("1")
	require.NoError(t, err)
	assert.Equal(t, []tree.WindowId{1}, hs.Hide)
	assert.Empty(t, hs.Show)
	assert.Equal(t, "1", w.FocusedMon().Active().Name)
	assert.Equal(t, tree.NoNode, w.FocusedLeaf)

	addWindow(t, w, 2)
	hs, err = w.FocusWorkspace("0")
	require.NoError(t, err)
	assert.Equal(t, []tree.WindowId{2}, hs.Hide)
	assert.Equal(t, []tree.WindowId{1}, hs.Show)
}

func TestFocusWorkspaceNoopWhenAlreadyActive(t *testing.T) {
	w := newTestWorld()
	hs, err := w.FocusWorkspace("0")
	require.NoError(t, err)
	assert.Empty(t, hs.Hide)
	assert.Empty(t, hs.Show)
}

func TestMoveWorkspaceMovesFocusedLeaf(t *testing.T) {
	w := newTestWorld()
	addWindow(t, w, 1)

	hs, err := w.MoveWorkspace("1")
	require.NoError(t, err)
	_ = hs

	ws0, _, _ := w.FocusedMon().WorkspaceByName("0")
	ws1, _, _ := w.FocusedMon().WorkspaceByName("1")
	assert.Empty(t, w.Arena.Leaves(ws0.Root))
	assert.Len(t, w.Arena.Leaves(ws1.Root), 1)
	// Focus fell back since workspace "1" is not the active one.
	assert.Equal(t, tree.NoNode, w.FocusedLeaf)
}

func TestMoveWorkspaceNoFocusedWindowErrors(t *testing.T) {
	w := newTestWorld()
	_, err := w.MoveWorkspace("1")
	assert.Error(t, err)
}

func TestFocusMonitorByDirection(t *testing.T) {
	w := newTestWorld()
	w.Monitors = append(w.Monitors, newMonitor(w.Arena, "right-mon", geom.Rect{X: 1920, W: 1920, H: 1080}))

	require.NoError(t, w.FocusMonitor("right"))
	assert.Equal(t, 1, w.FocusedMonitor)

	require.NoError(t, w.FocusMonitor("left"))
	assert.Equal(t, 0, w.FocusedMonitor)
}

func TestFocusMonitorByName(t *testing.T) {
	w := newTestWorld()
	w.Monitors = append(w.Monitors, newMonitor(w.Arena, "second", geom.Rect{X: 1920, W: 1920, H: 1080}))
	require.NoError(t, w.FocusMonitor("second"))
	assert.Equal(t, 1, w.FocusedMonitor)
}

func TestFocusMonitorUnknownTargetErrors(t *testing.T) {
	w := newTestWorld()
	err := w.FocusMonitor("nowhere")
	assert.Error(t, err)
}

func TestHandleMonitorsChangedMigratesWindows(t *testing.T) {
	w := newTestWorld()
	w.Monitors = append(w.Monitors, newMonitor(w.Arena, "second", geom.Rect{X: 1920, W: 1920, H: 1080}))
	require.NoError(t, w.FocusMonitor("second"))
	secondLeaf := addWindow(t, w, 42)
	require.NoError(t, w.FocusMonitor("built-in"))

	w.HandleMonitorsChanged([]struct {
		ID       MonitorId
		WorkArea geom.Rect
	}{
		{ID: "built-in", WorkArea: geom.Rect{W: 1920, H: 1080}},
	})

	require.Len(t, w.Monitors, 1)
	ws := w.FocusedMon().Active()
	leaves := w.Arena.Leaves(ws.Root)
	require.Len(t, leaves, 1)
	container := w.Arena.MustGet(leaves[0]).Parent
	assert.Equal(t, tree.KindTabbed, w.Arena.MustGet(container).Kind)
	_, ok := w.Arena.FindLeafByWindow(ws.Root, 42)
	assert.True(t, ok)
	_ = secondLeaf
}
