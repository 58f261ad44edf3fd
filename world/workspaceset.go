// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"math"

	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

// HiddenSet collects the WindowIds a caller must ask the backend to
// hide or show as the result of a workspace-set operation, since
// world itself never talks to PlatformBackend (spec.md §4.3: "hides
// previously-visible managed windows ... (backend call)").
type HiddenSet struct {
	Hide []tree.WindowId
	Show []tree.WindowId
}

// WindowsOf returns every WindowId reachable from ws (tiled tree plus
// floats), used to build HiddenSet Hide/Show lists.
func (w *World) WindowsOf(ws *Workspace) []tree.WindowId {
	var out []tree.WindowId
	for _, leaf := range w.Arena.Leaves(ws.Root) {
		out = append(out, w.Arena.MustGet(leaf).Leaf.Window)
	}
	for id := range ws.Floats {
		out = append(out, w.Arena.MustGet(id).Leaf.Window)
	}
	return out
}

// FocusWorkspace switches the focused monitor's active workspace to
// name, creating it if it does not already exist (spec.md §4.3).
func (w *World) FocusWorkspace(name string) (HiddenSet, error) {
	m := w.FocusedMon()
	prev := m.Active()
	ws, idx := w.FindWorkspaceOrCreate(m, name)
	if ws == prev {
		return HiddenSet{}, nil
	}
	hs := HiddenSet{Hide: w.WindowsOf(prev), Show: w.WindowsOf(ws)}
	m.ActiveWorkspace = idx
	if ws.FocusedLeaf != tree.NoNode {
		w.FocusedLeaf = ws.FocusedLeaf
	} else if leaf, ok := w.LeftmostDeepestLeaf(ws.Root); ok {
		w.FocusedLeaf = leaf
	} else {
		w.FocusedLeaf = tree.NoNode
	}
	return hs, nil
}

// MoveWorkspace removes the focused leaf from its container and
// appends it to the root of the workspace called name on the focused
// monitor, creating that workspace if it does not exist (spec.md
// §4.3: "move workspace <name>"). Focus stays on the moved window only
// if the target workspace is also the currently focused one; otherwise
// it falls back to the moved leaf's next sibling, then previous.
func (w *World) MoveWorkspace(name string) (HiddenSet, error) {
	if w.FocusedLeaf == tree.NoNode {
		return HiddenSet{}, domeerrors.Newf(domeerrors.NoFocusedWindow, "no focused window to move")
	}
	srcMon := w.FocusedMon()
	srcWs := srcMon.Active()
	leaf := w.FocusedLeaf

	parent := w.Arena.MustGet(leaf).Parent
	fallback := w.SiblingFallback(parent, leaf)

	dstMon := srcMon
	dstWs, _ := w.FindWorkspaceOrCreate(dstMon, name)
	if dstWs == srcWs {
		return HiddenSet{}, nil
	}

	node := w.Arena.MustGet(leaf)
	moved := node.Leaf
	isRoot := tree.IsWorkspaceRootFunc(w.IsWorkspaceRoot)
	if err := w.Arena.Remove(leaf, isRoot); err != nil {
		return HiddenSet{}, err
	}

	newLeaf, err := w.Arena.Insert(dstWs.Root, tree.PosInto, tree.HintAuto, w.SpawnDirection, moved)
	if err != nil {
		return HiddenSet{}, err
	}

	hs := HiddenSet{}
	if dstMon == w.FocusedMon() && dstWs == dstMon.Active() {
		w.FocusedLeaf = newLeaf
		dstWs.FocusedLeaf = newLeaf
		hs.Hide = append(hs.Hide, w.WindowsOf(srcWs)...)
		// dstWs is already visible (same monitor, same active index
		// unless dst just became active above); nothing further to show.
	} else {
		if fallback != tree.NoNode {
			w.FocusedLeaf = fallback
			srcWs.FocusedLeaf = fallback
		} else {
			w.FocusedLeaf = tree.NoNode
			srcWs.FocusedLeaf = tree.NoNode
		}
	}
	return hs, nil
}

// SiblingFallback returns a sibling of leaf under parent to fall back
// focus to: the next sibling preferred, the previous as fallback
// (spec.md §4.3).
func (w *World) SiblingFallback(parent, leaf tree.NodeId) tree.NodeId {
	if parent == tree.NoNode {
		return tree.NoNode
	}
	p, ok := w.Arena.Get(parent)
	if !ok {
		return tree.NoNode
	}
	idx := -1
	for i, c := range p.Children {
		if c == leaf {
			idx = i
			break
		}
	}
	if idx < 0 {
		return tree.NoNode
	}
	if idx+1 < len(p.Children) {
		return w.Arena.ActiveLeafPath(p.Children[idx+1])
	}
	if idx > 0 {
		return w.Arena.ActiveLeafPath(p.Children[idx-1])
	}
	return tree.NoNode
}

// FocusMonitor resolves target by Monitor name or by direction token,
// and moves World.FocusedMonitor to it (spec.md §4.3). A direction
// picks the monitor whose work-area center is nearest the focused
// monitor's center among those whose center lies in that direction;
// monitor edges are not compared.
func (w *World) FocusMonitor(dirOrName string) error {
	idx, err := w.resolveMonitorIndex(dirOrName)
	if err != nil {
		return err
	}
	w.focusMonitorIndex(idx, w.Monitors[idx])
	return nil
}

// resolveMonitorIndex resolves a "focus monitor"/"move monitor"
// target, shared by FocusMonitor and MoveMonitor: a Monitor name takes
// priority over a direction token, per spec.md §4.3.
func (w *World) resolveMonitorIndex(dirOrName string) (int, error) {
	if _, idx, ok := w.FindMonitorByName(dirOrName); ok {
		return idx, nil
	}
	dir, ok := geom.ParseDirection(dirOrName)
	if !ok {
		return -1, domeerrors.Newf(domeerrors.ParseError, "unknown monitor target %q", dirOrName)
	}
	idx, ok := w.nearestMonitorInDirection(dir)
	if !ok {
		return -1, domeerrors.Newf(domeerrors.BackendError, "no monitor in direction %s", dir)
	}
	return idx, nil
}

// MoveMonitor relocates the focused leaf onto the target monitor's
// active workspace, appended at its root (spec.md §4.5 "move
// monitor"). Unlike MoveWorkspace, focus follows the moved window to
// its new monitor unconditionally: relocating a window across
// monitors is read as "take this window with me", whereas
// MoveWorkspace's "stay put unless the destination is already active"
// rule models sending a window to a workspace you are not looking at.
func (w *World) MoveMonitor(dirOrName string) (HiddenSet, error) {
	if w.FocusedLeaf == tree.NoNode {
		return HiddenSet{}, domeerrors.Newf(domeerrors.NoFocusedWindow, "no focused window to move")
	}
	idx, err := w.resolveMonitorIndex(dirOrName)
	if err != nil {
		return HiddenSet{}, err
	}
	dstMon := w.Monitors[idx]
	if dstMon == w.FocusedMon() {
		return HiddenSet{}, nil
	}

	srcMon := w.FocusedMon()
	srcWs := srcMon.Active()
	leaf := w.FocusedLeaf
	parent := w.Arena.MustGet(leaf).Parent
	fallback := w.SiblingFallback(parent, leaf)

	node := w.Arena.MustGet(leaf)
	moved := node.Leaf
	isRoot := tree.IsWorkspaceRootFunc(w.IsWorkspaceRoot)
	if err := w.Arena.Remove(leaf, isRoot); err != nil {
		return HiddenSet{}, err
	}

	dstWs := dstMon.Active()
	newLeaf, err := w.Arena.Insert(dstWs.Root, tree.PosInto, tree.HintAuto, w.SpawnDirection, moved)
	if err != nil {
		return HiddenSet{}, err
	}
	dstWs.FocusedLeaf = newLeaf

	if fallback != tree.NoNode {
		srcWs.FocusedLeaf = fallback
	} else {
		srcWs.FocusedLeaf = tree.NoNode
	}

	// Both monitors' active workspaces stay visible throughout; only the
	// window's geometry changes (recomputed by the next layout pass for
	// both touched workspaces), so no Hide/Show is needed here.
	w.FocusedMonitor = idx
	w.FocusedLeaf = newLeaf
	return HiddenSet{}, nil
}

func (w *World) focusMonitorIndex(idx int, m *Monitor) {
	w.FocusedMonitor = idx
	ws := m.Active()
	if ws.FocusedLeaf != tree.NoNode {
		w.FocusedLeaf = ws.FocusedLeaf
		return
	}
	if leaf, ok := w.LeftmostDeepestLeaf(ws.Root); ok {
		w.FocusedLeaf = leaf
		return
	}
	w.FocusedLeaf = tree.NoNode
}

// nearestMonitorInDirection finds the monitor whose work-area center
// is closest to the focused monitor's center among those strictly
// positioned in dir.
func (w *World) nearestMonitorInDirection(dir geom.Direction) (int, bool) {
	from := w.FocusedMon().WorkArea.Center()
	best := -1
	bestDist := math.Inf(1)
	for i, m := range w.Monitors {
		if i == w.FocusedMonitor {
			continue
		}
		c := m.WorkArea.Center()
		switch dir {
		case geom.DirLeft:
			if c.X >= from.X {
				continue
			}
		case geom.DirRight:
			if c.X <= from.X {
				continue
			}
		case geom.DirUp:
			if c.Y >= from.Y {
				continue
			}
		case geom.DirDown:
			if c.Y <= from.Y {
				continue
			}
		}
		d := math.Hypot(c.X-from.X, c.Y-from.Y)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, best >= 0
}

// HandleMonitorsChanged reconciles World.Monitors against the backend's
// current monitor list: new monitors are added with a fresh default
// workspace set, and monitors no longer present are removed with their
// windows migrated onto the focused monitor's active workspace as a
// single new Tabbed container, preserving relative focus order
// (spec.md §4.3, "Lifecycles").
func (w *World) HandleMonitorsChanged(current []struct {
	ID       MonitorId
	WorkArea geom.Rect
}) {
	seen := make(map[MonitorId]bool, len(current))
	for _, c := range current {
		seen[c.ID] = true
		if m, _, ok := w.FindMonitorByID(c.ID); ok {
			m.WorkArea = c.WorkArea
			continue
		}
		w.Monitors = append(w.Monitors, newMonitor(w.Arena, c.ID, c.WorkArea))
	}

	var kept []*Monitor
	var removed []*Monitor
	for _, m := range w.Monitors {
		if seen[m.ID] {
			kept = append(kept, m)
		} else {
			removed = append(removed, m)
		}
	}
	if len(removed) == 0 {
		w.Monitors = kept
		return
	}

	focusedID := w.FocusedMon().ID
	w.Monitors = kept
	w.FocusedMonitor = 0
	for i, m := range w.Monitors {
		if m.ID == focusedID {
			w.FocusedMonitor = i
			break
		}
	}

	if len(w.Monitors) == 0 {
		return
	}
	dstWs := w.FocusedMon().Active()
	w.migrateRemovedMonitors(removed, dstWs)
}

// migrateRemovedMonitors re-roots every leaf from removed monitors'
// workspaces onto dstWs, appended as a single new Tabbed container
// (spec.md §4.3), preserving whichever leaf was focused among them.
func (w *World) migrateRemovedMonitors(removed []*Monitor, dstWs *Workspace) {
	var leaves []tree.Leaf
	var focusedWindow tree.WindowId
	haveFocused := false
	for _, m := range removed {
		for _, ws := range m.Workspaces {
			for _, id := range w.Arena.Leaves(ws.Root) {
				n := w.Arena.MustGet(id)
				leaves = append(leaves, n.Leaf)
				if id == ws.FocusedLeaf {
					focusedWindow = n.Leaf.Window
					haveFocused = true
				}
			}
			for id := range ws.Floats {
				l := w.Arena.MustGet(id).Leaf
				l.Floating = false
				leaves = append(leaves, l)
				if id == ws.FocusedLeaf {
					focusedWindow = l.Window
					haveFocused = true
				}
			}
		}
	}
	if len(leaves) == 0 {
		return
	}

	tab := w.Arena.NewContainer(tree.KindTabbed)
	for _, l := range leaves {
		leafID := w.Arena.NewLeaf(l.Window)
		w.Arena.MustGet(leafID).Leaf = l
		if err := w.Arena.AppendChild(tab, leafID); err != nil {
			panic(err) // tab was just created empty; this cannot fail
		}
		if haveFocused && l.Window == focusedWindow {
			dstWs.FocusedLeaf = leafID
			w.FocusedLeaf = leafID
			haveFocused = false // keep only the first match
		}
	}

	if err := w.Arena.AppendChild(dstWs.Root, tab); err != nil {
		panic(err) // dstWs.Root is always a live container
	}
}
