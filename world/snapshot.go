// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import "github.com/l0ngvh/Dome/tree"

// Snapshot is a point-in-time copy of everything a [World] mutates
// while executing one command: the arena plus the focus/workspace
// bookkeeping layered on top of it. The executor's copy-on-write
// rollback (spec.md §4.5) needs both halves, since a command like
// `move workspace` changes ActiveWorkspace/FocusedLeaf alongside the
// tree shape — rolling back the arena alone would leave focus state
// pointing at nodes a tree-only restore just resurrected or deleted
// inconsistently.
type Snapshot struct {
	arena          *tree.Arena
	monitors       []*Monitor
	focusedMonitor int
	spawnDirection tree.SpawnDirection
	focusedLeaf    tree.NodeId
	focusLevel     tree.NodeId
	ignored        map[tree.WindowId]bool
}

// Snapshot captures w's current state. See [World.Restore].
func (w *World) Snapshot() *Snapshot {
	mons := make([]*Monitor, len(w.Monitors))
	for i, m := range w.Monitors {
		wss := make([]*Workspace, len(m.Workspaces))
		for j, ws := range m.Workspaces {
			floats := make(map[tree.NodeId]bool, len(ws.Floats))
			for id, v := range ws.Floats {
				floats[id] = v
			}
			wss[j] = &Workspace{Name: ws.Name, Root: ws.Root, Floats: floats, FocusedLeaf: ws.FocusedLeaf}
		}
		mons[i] = &Monitor{ID: m.ID, WorkArea: m.WorkArea, Workspaces: wss, ActiveWorkspace: m.ActiveWorkspace}
	}
	ignored := make(map[tree.WindowId]bool, len(w.Ignored))
	for id, v := range w.Ignored {
		ignored[id] = v
	}
	return &Snapshot{
		arena:          w.Arena.Snapshot(),
		monitors:       mons,
		focusedMonitor: w.FocusedMonitor,
		spawnDirection: w.SpawnDirection,
		focusedLeaf:    w.FocusedLeaf,
		focusLevel:     w.FocusLevel,
		ignored:        ignored,
	}
}

// Restore replaces w's state with snap's, in place, mirroring
// [tree.Arena.Restore] so existing *World pointers held elsewhere keep
// working after a rollback.
func (w *World) Restore(snap *Snapshot) {
	w.Arena.Restore(snap.arena)
	w.Monitors = snap.monitors
	w.FocusedMonitor = snap.focusedMonitor
	w.SpawnDirection = snap.spawnDirection
	w.FocusedLeaf = snap.focusedLeaf
	w.FocusLevel = snap.focusLevel
	w.Ignored = snap.ignored
}
