// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package world implements the WorkspaceSet (C4): Monitor and Workspace
// entities layered over a single shared [tree.Arena], plus the
// monitor/workspace focus-and-placement policies of spec.md §4.3.
package world

import (
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

// MonitorId is the backend-assigned identifier for a physical display,
// reported on PlatformBackend's MonitorsChanged event (spec.md §6).
type MonitorId string

// DefaultWorkspaceNames are the 10 digit-named workspaces every monitor
// starts with (spec.md "Lifecycles": "A Workspace exists for the 10
// slots 0-9").
var DefaultWorkspaceNames = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Workspace is a named, independently displayable container-tree root
// on a monitor (spec.md §3 Entities).
type Workspace struct {
	Name string
	// Root is always a Container, created fresh even when empty
	// (invariant 2: "a workspace root is always retained").
	Root tree.NodeId
	// Floats holds the NodeIds of floating leaves belonging to this
	// workspace; they are not reachable by walking Root.
	Floats      map[tree.NodeId]bool
	FocusedLeaf tree.NodeId // tree.NoNode if the workspace has no leaves
}

// newWorkspace allocates a fresh, empty workspace root in a.
func newWorkspace(a *tree.Arena, name string) *Workspace {
	return &Workspace{
		Name:        name,
		Root:        a.NewContainer(tree.KindSplitH),
		Floats:      make(map[tree.NodeId]bool),
		FocusedLeaf: tree.NoNode,
	}
}

// Monitor is a physical display with a work-area rectangle (screen
// minus reserved struts/bars) and its own ordered workspace list.
type Monitor struct {
	ID              MonitorId
	WorkArea        geom.Rect
	Workspaces      []*Workspace
	ActiveWorkspace int
}

// Active returns m's currently displayed workspace.
func (m *Monitor) Active() *Workspace { return m.Workspaces[m.ActiveWorkspace] }

// WorkspaceByName returns m's workspace named name, if any.
func (m *Monitor) WorkspaceByName(name string) (*Workspace, int, bool) {
	for i, w := range m.Workspaces {
		if w.Name == name {
			return w, i, true
		}
	}
	return nil, -1, false
}

// World is the whole-desktop state: every monitor, the single shared
// container arena, and global focus/spawn state (spec.md §3 Entities).
type World struct {
	Arena          *tree.Arena
	Monitors       []*Monitor
	FocusedMonitor int
	SpawnDirection tree.SpawnDirection
	FocusedLeaf    tree.NodeId
	// FocusLevel is the "focus level" pointer of spec.md §4.1: set by
	// `focus parent` to an ancestor container, it redirects the next
	// focus/move/toggle command to operate on that container as a
	// unit. tree.NoNode means no override is active (the common case),
	// in which case commands operate on FocusedLeaf directly.
	FocusLevel tree.NodeId
	// Ignored records WindowIds a RuleEngine ignore rule matched, so
	// later events for the same window (e.g. its eventual destroy) are
	// dropped rather than mistaken for an unmanaged window (spec.md
	// §4.4: "its WindowId is recorded in an 'ignored' set").
	Ignored map[tree.WindowId]bool
}

// New creates a World with a single monitor of the given work area,
// pre-populated with the 10 digit-named default workspaces (spec.md
// "Lifecycles"), workspace "0" active.
func New(firstMonitor MonitorId, workArea geom.Rect) *World {
	a := tree.NewArena()
	w := &World{Arena: a, FocusedLeaf: tree.NoNode, FocusLevel: tree.NoNode, Ignored: make(map[tree.WindowId]bool)}
	w.Monitors = []*Monitor{newMonitor(a, firstMonitor, workArea)}
	return w
}

func newMonitor(a *tree.Arena, id MonitorId, workArea geom.Rect) *Monitor {
	m := &Monitor{ID: id, WorkArea: workArea}
	for _, name := range DefaultWorkspaceNames {
		m.Workspaces = append(m.Workspaces, newWorkspace(a, name))
	}
	return m
}

// FocusedMon returns the currently focused Monitor.
func (w *World) FocusedMon() *Monitor { return w.Monitors[w.FocusedMonitor] }

// IsWorkspaceRoot adapts a Workspace lookup into a
// [tree.IsWorkspaceRootFunc], so tree mutations never prune past a
// workspace's root container (invariant 2).
func (w *World) IsWorkspaceRoot(id tree.NodeId) bool {
	for _, m := range w.Monitors {
		for _, ws := range m.Workspaces {
			if ws.Root == id {
				return true
			}
		}
	}
	return false
}

// FindMonitorByID returns the monitor with the given id.
func (w *World) FindMonitorByID(id MonitorId) (*Monitor, int, bool) {
	for i, m := range w.Monitors {
		if m.ID == id {
			return m, i, true
		}
	}
	return nil, -1, false
}

// FindMonitorByName resolves "focus monitor <name>" against Monitor
// IDs (spec.md §4.3: "resolves target monitor by ... name").
func (w *World) FindMonitorByName(name string) (*Monitor, int, bool) {
	return w.FindMonitorByID(MonitorId(name))
}

// FindWorkspaceOrCreate returns monitor m's workspace named name,
// creating it on demand (spec.md §9's extended model / SPEC_FULL.md
// "Workspace auto-creation beyond 0-9").
func (w *World) FindWorkspaceOrCreate(m *Monitor, name string) (*Workspace, int) {
	if ws, idx, ok := m.WorkspaceByName(name); ok {
		return ws, idx
	}
	ws := newWorkspace(w.Arena, name)
	m.Workspaces = append(m.Workspaces, ws)
	return ws, len(m.Workspaces) - 1
}

// LeftmostDeepestLeaf walks root always taking the first child,
// returning the first leaf found. Used by "focus monitor" when the
// target workspace has no focused_leaf (spec.md §4.3).
func (w *World) LeftmostDeepestLeaf(root tree.NodeId) (tree.NodeId, bool) {
	id := root
	for {
		n := w.Arena.MustGet(id)
		if n.IsLeaf() {
			return id, true
		}
		if len(n.Children) == 0 {
			return tree.NoNode, false
		}
		id = n.Children[0]
	}
}
