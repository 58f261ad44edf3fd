// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor implements the CommandExecutor (C6): it applies a
// [command.Command] — or a window lifecycle event reported by a
// PlatformBackend — to a [world.World], returning the set of
// workspaces whose layout needs recomputing, a focus intent and any
// side effects to run (spec.md §4.5). Every call is atomic: World and
// its Arena are snapshotted first and rolled back in place if the
// command fails or leaves the tree violating an invariant (spec.md §8),
// so a caller never observes a partially-applied command.
//
// No teacher file models transactional command application; the
// copy-before-mutate pattern here is plain Go value-copy idiom, not
// adapted from a specific file (see DESIGN.md).
package executor

import (
	"github.com/l0ngvh/Dome/command"
	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
	"github.com/l0ngvh/Dome/world"
)

// SideEffectKind tags the kind of [SideEffect] a command produced.
type SideEffectKind int

const (
	// SideEffectExec asks the caller to spawn Argv as a detached child
	// process (spec.md §4.5 "exec <cmd>"). Argv is already shell-split;
	// it is executed directly, not through a shell.
	SideEffectExec SideEffectKind = iota
	// SideEffectExit asks the caller to begin an orderly shutdown
	// (spec.md §4.5 "exit: graceful shutdown").
	SideEffectExit
)

// SideEffect is an action the executor cannot perform itself (it never
// touches the OS directly), deferred to the Dispatcher.
type SideEffect struct {
	Kind SideEffectKind
	Argv []string
}

// Touched names one workspace whose layout plan is now stale and must
// be recomputed by the caller.
type Touched struct {
	Monitor   world.MonitorId
	Workspace string
}

// Result is everything a caller needs after one command or lifecycle
// event: which workspaces to relayout, where focus/raise should land,
// which windows to hide or show (workspace switches), and any side
// effects to run (spec.md §4.5: "updated LayoutPlan diff, FocusIntent,
// side effects").
type Result struct {
	Touched     []Touched
	FocusIntent tree.WindowId
	HasFocus    bool
	Hidden      []tree.WindowId
	Shown       []tree.WindowId
	SideEffects []SideEffect
}

func (r *Result) touch(m *world.Monitor, ws *world.Workspace) {
	for _, t := range r.Touched {
		if t.Monitor == m.ID && t.Workspace == ws.Name {
			return
		}
	}
	r.Touched = append(r.Touched, Touched{Monitor: m.ID, Workspace: ws.Name})
}

func (r *Result) setFocus(window tree.WindowId) {
	r.FocusIntent = window
	r.HasFocus = true
}

// Executor applies commands and window lifecycle events to a single
// [world.World].
type Executor struct {
	World *world.World
}

// New returns an Executor over w.
func New(w *world.World) *Executor {
	return &Executor{World: w}
}

// Execute applies cmd to the world atomically: on any error, or any
// invariant violation the command's mutation left behind, the world
// (arena and focus/workspace bookkeeping alike) is rolled back to
// exactly its pre-call state and the error is returned (spec.md §4.5,
// §8's invariant list).
func (e *Executor) Execute(cmd command.Command) (Result, error) {
	snap := e.World.Snapshot()
	res, err := e.dispatch(cmd)
	if err != nil {
		e.World.Restore(snap)
		return Result{}, err
	}
	if verr := e.checkInvariants(); verr != nil {
		e.World.Restore(snap)
		return Result{}, domeerrors.Wrap(domeerrors.InvariantViolation, verr, "command left the tree invalid")
	}
	return res, nil
}

func (e *Executor) checkInvariants() error {
	for _, m := range e.World.Monitors {
		for _, ws := range m.Workspaces {
			if err := e.World.Arena.CheckInvariants(ws.Root); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Executor) dispatch(cmd command.Command) (Result, error) {
	switch cmd.Kind {
	case command.KindFocusDirection:
		return e.focusDirection(cmd.Direction)
	case command.KindFocusParent:
		return e.focusParent()
	case command.KindFocusTab:
		return e.focusTab(cmd.TabDelta)
	case command.KindFocusWorkspace:
		return e.focusWorkspace(cmd.Name)
	case command.KindFocusMonitor:
		return e.focusMonitor(cmd)
	case command.KindMoveDirection:
		return e.moveDirection(cmd.Direction)
	case command.KindMoveWorkspace:
		return e.moveWorkspace(cmd.Name)
	case command.KindMoveMonitor:
		return e.moveMonitor(cmd)
	case command.KindToggleSpawnDirection:
		return e.toggleSpawnDirection()
	case command.KindToggleDirection:
		return e.toggleDirection()
	case command.KindToggleLayout:
		return e.toggleLayout()
	case command.KindToggleFloat:
		return e.toggleFloat()
	case command.KindExec:
		return Result{SideEffects: []SideEffect{{Kind: SideEffectExec, Argv: cmd.Argv}}}, nil
	case command.KindExit:
		return Result{SideEffects: []SideEffect{{Kind: SideEffectExit}}}, nil
	default:
		// Launch/Status/Tree/Reload are read-only/admin verbs the
		// Dispatcher handles directly (command.go's doc comment); they
		// should never reach Execute.
		return Result{}, domeerrors.Newf(domeerrors.ParseError, "command %q is not executable", cmd.String())
	}
}

// focusAnchor returns the node focus/move/toggle commands operate on:
// World.FocusLevel if `focus parent` set one, else the focused leaf
// (spec.md §4.1).
func (e *Executor) focusAnchor() tree.NodeId {
	if e.World.FocusLevel != tree.NoNode {
		return e.World.FocusLevel
	}
	return e.World.FocusedLeaf
}

func (e *Executor) requireFocus() (tree.NodeId, error) {
	anchor := e.focusAnchor()
	if anchor == tree.NoNode {
		return tree.NoNode, domeerrors.Newf(domeerrors.NoFocusedWindow, "no focused window")
	}
	return anchor, nil
}

func (e *Executor) focusDirection(dir geom.Direction) (Result, error) {
	w := e.World
	anchor, err := e.requireFocus()
	if err != nil {
		return Result{}, err
	}
	newLeaf, err := w.Arena.FocusMove(anchor, dir)
	if err == tree.ErrEscaped {
		if ferr := w.FocusMonitor(dir.String()); ferr != nil {
			return Result{}, ferr
		}
		w.FocusLevel = tree.NoNode
		return e.focusResult(), nil
	}
	if err != nil {
		return Result{}, err
	}
	w.FocusedLeaf = newLeaf
	w.FocusLevel = tree.NoNode
	w.Arena.UpdateActiveChildForFocus(newLeaf)
	return e.focusResult(), nil
}

func (e *Executor) focusParent() (Result, error) {
	w := e.World
	anchor, err := e.requireFocus()
	if err != nil {
		return Result{}, err
	}
	parent := w.Arena.FocusParent(anchor)
	if parent == tree.NoNode {
		return Result{}, nil
	}
	w.FocusLevel = parent
	return Result{}, nil
}

func (e *Executor) focusTab(delta int) (Result, error) {
	w := e.World
	anchor, err := e.requireFocus()
	if err != nil {
		return Result{}, err
	}
	container, ok := w.Arena.NearestTabbedAncestor(anchor)
	if !ok {
		return Result{}, nil
	}
	if err := w.Arena.CycleTab(container, delta); err != nil {
		return Result{}, err
	}
	newLeaf := w.Arena.ActiveLeafPath(container)
	w.FocusedLeaf = newLeaf
	w.FocusLevel = tree.NoNode
	w.Arena.UpdateActiveChildForFocus(newLeaf)
	return e.focusResult(), nil
}

func (e *Executor) focusWorkspace(name string) (Result, error) {
	w := e.World
	hs, err := w.FocusWorkspace(name)
	if err != nil {
		return Result{}, err
	}
	w.FocusLevel = tree.NoNode
	res := e.focusResult()
	res.Hidden = hs.Hide
	res.Shown = hs.Show
	res.touch(w.FocusedMon(), w.FocusedMon().Active())
	return res, nil
}

func (e *Executor) focusMonitor(cmd command.Command) (Result, error) {
	w := e.World
	target := cmd.Name
	if target == "" {
		target = cmd.Direction.String()
	}
	if err := w.FocusMonitor(target); err != nil {
		return Result{}, err
	}
	w.FocusLevel = tree.NoNode
	return e.focusResult(), nil
}

// focusResult builds a Result carrying the focused leaf's window as
// FocusIntent, if there is one.
func (e *Executor) focusResult() Result {
	w := e.World
	var res Result
	if w.FocusedLeaf == tree.NoNode {
		return res
	}
	n, ok := w.Arena.Get(w.FocusedLeaf)
	if !ok {
		return res
	}
	res.setFocus(n.Leaf.Window)
	res.touch(w.FocusedMon(), w.FocusedMon().Active())
	return res
}

func (e *Executor) moveDirection(dir geom.Direction) (Result, error) {
	w := e.World
	anchor, err := e.requireFocus()
	if err != nil {
		return Result{}, err
	}
	err = w.Arena.MoveNode(anchor, dir)
	if err == tree.ErrEscaped {
		srcMon, srcWs := w.FocusedMon(), w.FocusedMon().Active()
		hs, merr := w.MoveMonitor(dir.String())
		if merr != nil {
			return Result{}, merr
		}
		res := e.focusResult()
		res.touch(srcMon, srcWs)
		res.Hidden = hs.Hide
		res.Shown = hs.Show
		return res, nil
	}
	if err != nil {
		return Result{}, err
	}
	return e.focusResult(), nil
}

func (e *Executor) moveWorkspace(name string) (Result, error) {
	w := e.World
	hs, err := w.MoveWorkspace(name)
	if err != nil {
		return Result{}, err
	}
	res := e.focusResult()
	res.Hidden = hs.Hide
	res.Shown = hs.Show
	return res, nil
}

func (e *Executor) moveMonitor(cmd command.Command) (Result, error) {
	w := e.World
	target := cmd.Name
	if target == "" {
		target = cmd.Direction.String()
	}
	srcMon, srcWs := w.FocusedMon(), w.FocusedMon().Active()
	hs, err := w.MoveMonitor(target)
	if err != nil {
		return Result{}, err
	}
	res := e.focusResult()
	res.touch(srcMon, srcWs)
	res.Hidden = hs.Hide
	res.Shown = hs.Show
	return res, nil
}

func (e *Executor) toggleSpawnDirection() (Result, error) {
	e.World.SpawnDirection = e.World.SpawnDirection.Next()
	return Result{}, nil
}

// toggleAnchorContainer resolves the container `toggle direction`/
// `toggle layout` act on: FocusLevel if set, else the focused leaf's
// immediate parent.
func (e *Executor) toggleAnchorContainer() (tree.NodeId, error) {
	w := e.World
	if w.FocusLevel != tree.NoNode {
		return w.FocusLevel, nil
	}
	if w.FocusedLeaf == tree.NoNode {
		return tree.NoNode, domeerrors.Newf(domeerrors.NoFocusedWindow, "no focused window")
	}
	parent := w.Arena.FocusParent(w.FocusedLeaf)
	if parent == tree.NoNode {
		return tree.NoNode, domeerrors.Newf(domeerrors.InvariantViolation, "focused leaf has no parent container")
	}
	return parent, nil
}

func (e *Executor) toggleDirection() (Result, error) {
	container, err := e.toggleAnchorContainer()
	if err != nil {
		return Result{}, err
	}
	if err := e.World.Arena.ToggleDirection(container); err != nil {
		return Result{}, err
	}
	return e.containerResult(container), nil
}

func (e *Executor) toggleLayout() (Result, error) {
	container, err := e.toggleAnchorContainer()
	if err != nil {
		return Result{}, err
	}
	if err := e.World.Arena.ToggleLayout(container); err != nil {
		return Result{}, err
	}
	return e.containerResult(container), nil
}

// containerResult marks every monitor/workspace reachable from
// container (normally just the one it lives on) as touched.
func (e *Executor) containerResult(container tree.NodeId) Result {
	var res Result
	for _, m := range e.World.Monitors {
		for _, ws := range m.Workspaces {
			if ws.Root == container {
				res.touch(m, ws)
				return res
			}
		}
	}
	// container is not itself a workspace root; fall back to the
	// focused workspace, which owns it in every reachable case.
	res.touch(e.World.FocusedMon(), e.World.FocusedMon().Active())
	return res
}

// toggleFloat moves the focused leaf between the tree and its
// workspace's floats set (spec.md §4.5). Tiled→float uses
// last_tiled_rect, or a centered rect 60% of the monitor's work area
// if none is recorded yet. Float→tiled reinserts at the workspace
// root rather than literally "the focus path's current drop point":
// tracking a precise drop point independent of the auto-tiling
// heuristic would need state neither Leaf nor Workspace keeps, and
// appending to the root reproduces spec.md's own round-trip example
// (S4) whenever the workspace holds just the one window.
func (e *Executor) toggleFloat() (Result, error) {
	w := e.World
	// Float is a per-window operation, not a per-container one: it
	// always targets FocusedLeaf directly, ignoring any FocusLevel
	// override from a prior `focus parent` (unlike focus/move/direction
	// commands, which honor it).
	leaf := w.FocusedLeaf
	if leaf == tree.NoNode {
		return Result{}, domeerrors.Newf(domeerrors.NoFocusedWindow, "no focused window")
	}
	n, ok := w.Arena.Get(leaf)
	if !ok {
		return Result{}, domeerrors.Newf(domeerrors.InvariantViolation, "focused leaf missing from arena")
	}
	m, ws, ok := e.findOwner(leaf)
	if !ok {
		return Result{}, domeerrors.Newf(domeerrors.InvariantViolation, "focused leaf has no owning workspace")
	}

	if n.Leaf.Floating {
		delete(ws.Floats, leaf)
		n.Leaf.Floating = false
		n.Leaf.FloatRect = geom.Rect{}
		if err := w.Arena.AppendChild(ws.Root, leaf); err != nil {
			return Result{}, err
		}
	} else {
		isRoot := tree.IsWorkspaceRootFunc(w.IsWorkspaceRoot)
		if err := w.Arena.Detach(leaf, isRoot); err != nil {
			return Result{}, err
		}
		n.Leaf.Floating = true
		if n.Leaf.LastTiledRect != nil {
			n.Leaf.FloatRect = *n.Leaf.LastTiledRect
		} else {
			area := m.WorkArea
			n.Leaf.FloatRect = geom.CenteredIn(area, area.W*0.6, area.H*0.6)
		}
		ws.Floats[leaf] = true
	}

	res := e.focusResult()
	res.touch(m, ws)
	return res, nil
}

// findOwner returns the monitor and workspace that leaf belongs to,
// whether tiled (reachable by walking its root) or floating
// (registered in Floats).
func (e *Executor) findOwner(leaf tree.NodeId) (*world.Monitor, *world.Workspace, bool) {
	for _, m := range e.World.Monitors {
		for _, ws := range m.Workspaces {
			if ws.Floats[leaf] {
				return m, ws, true
			}
			for _, id := range e.World.Arena.Leaves(ws.Root) {
				if id == leaf {
					return m, ws, true
				}
			}
		}
	}
	return nil, nil, false
}

// HandleWindowCreated inserts a newly-discovered window into the
// focused workspace, or records it as ignored, per decision (spec.md
// §4.4, §4.5). decision.Run's commands are returned as exec side
// effects, in config order.
func (e *Executor) HandleWindowCreated(window tree.WindowId, decision rules.Decision) (Result, error) {
	w := e.World
	if !decision.Manage {
		w.Ignored[window] = true
		return Result{}, nil
	}

	snap := w.Snapshot()
	m := w.FocusedMon()
	ws := m.Active()
	var target tree.NodeId
	pos := tree.PosInto
	if w.FocusedLeaf != tree.NoNode {
		target = w.FocusedLeaf
		pos = tree.PosAfter
	} else {
		target = ws.Root
	}
	newLeaf, err := w.Arena.Insert(target, pos, tree.HintAuto, w.SpawnDirection, tree.Leaf{Window: window})
	if err != nil {
		w.Restore(snap)
		return Result{}, err
	}
	if verr := e.checkInvariants(); verr != nil {
		w.Restore(snap)
		return Result{}, domeerrors.Wrap(domeerrors.InvariantViolation, verr, "inserting new window left the tree invalid")
	}

	ws.FocusedLeaf = newLeaf
	w.FocusedLeaf = newLeaf
	w.FocusLevel = tree.NoNode
	w.Arena.UpdateActiveChildForFocus(newLeaf)

	res := e.focusResult()
	// decision.Run entries already arrive shell-split (config.RawRule
	// compiles each on_open.run string into argv via go-shellwords),
	// so each becomes exactly one exec side effect.
	for _, argv := range decision.Run {
		res.SideEffects = append(res.SideEffects, SideEffect{Kind: SideEffectExec, Argv: argv})
	}
	return res, nil
}

// HandleWindowDestroyed removes window from wherever it lives (tree or
// floats). If it was the focused tiled leaf, focus moves to a sibling
// (spec.md §3 invariant 1, §4.3's fallback-focus policy); if it was the
// focused float, no window is left focused.
func (e *Executor) HandleWindowDestroyed(window tree.WindowId) (Result, error) {
	w := e.World
	if w.Ignored[window] {
		delete(w.Ignored, window)
		return Result{}, nil
	}
	leaf, ok := e.findLeafByWindow(window)
	if !ok {
		return Result{}, nil
	}
	m, ws, _ := e.findOwner(leaf)
	n := w.Arena.MustGet(leaf)
	wasFocused := w.FocusedLeaf == leaf

	var fallback tree.NodeId
	if n.Leaf.Floating {
		delete(ws.Floats, leaf)
		if err := w.Arena.DestroyDetached(leaf); err != nil {
			return Result{}, err
		}
	} else {
		parent := n.Parent
		fallback = w.SiblingFallback(parent, leaf)
		isRoot := tree.IsWorkspaceRootFunc(w.IsWorkspaceRoot)
		if err := w.Arena.Remove(leaf, isRoot); err != nil {
			return Result{}, err
		}
	}

	if ws.FocusedLeaf == leaf {
		ws.FocusedLeaf = fallback
	}
	res := Result{}
	if wasFocused {
		w.FocusedLeaf = fallback
		w.FocusLevel = tree.NoNode
		if fallback != tree.NoNode {
			w.Arena.UpdateActiveChildForFocus(fallback)
		}
		res = e.focusResult()
	}
	res.touch(m, ws)
	return res, nil
}

// HandleWindowFocused syncs World's focus bookkeeping to an
// OS-reported focus change (the user clicked a window directly rather
// than issuing a `focus` command), switching the owning monitor's
// active workspace onto screen if needed.
func (e *Executor) HandleWindowFocused(window tree.WindowId) (Result, error) {
	w := e.World
	leaf, ok := e.findLeafByWindow(window)
	if !ok {
		return Result{}, domeerrors.Newf(domeerrors.InvariantViolation, "focused window %d is not managed", window)
	}
	m, ws, _ := e.findOwner(leaf)
	res := Result{}
	for i, mon := range w.Monitors {
		if mon == m {
			w.FocusedMonitor = i
			break
		}
	}
	prevActive := m.Active()
	if prevActive != ws {
		for i, cand := range m.Workspaces {
			if cand == ws {
				res.Hidden = w.WindowsOf(prevActive)
				res.Shown = w.WindowsOf(ws)
				m.ActiveWorkspace = i
				break
			}
		}
	}
	w.FocusedLeaf = leaf
	w.FocusLevel = tree.NoNode
	ws.FocusedLeaf = leaf
	w.Arena.UpdateActiveChildForFocus(leaf)
	fr := e.focusResult()
	res.FocusIntent, res.HasFocus = fr.FocusIntent, fr.HasFocus
	res.Touched = fr.Touched
	return res, nil
}

// HandleWindowMoved updates a floating leaf's tracked rect after the
// user drags it (spec.md §3: "Floating leaves carry their own Rect").
// Tiled windows ignore this: their geometry is layout-derived and the
// next plan overrides any manual drag.
func (e *Executor) HandleWindowMoved(window tree.WindowId, rect geom.Rect) (Result, error) {
	w := e.World
	leaf, ok := e.findLeafByWindow(window)
	if !ok {
		return Result{}, nil
	}
	n := w.Arena.MustGet(leaf)
	if !n.Leaf.Floating {
		return Result{}, nil
	}
	n.Leaf.FloatRect = rect
	m, ws, _ := e.findOwner(leaf)
	var res Result
	res.touch(m, ws)
	return res, nil
}

// findLeafByWindow scans every workspace (tree and floats) for the
// leaf wrapping window.
func (e *Executor) findLeafByWindow(window tree.WindowId) (tree.NodeId, bool) {
	w := e.World
	for _, m := range w.Monitors {
		for _, ws := range m.Workspaces {
			if id, ok := w.Arena.FindLeafByWindow(ws.Root, window); ok {
				return id, true
			}
			for id := range ws.Floats {
				if w.Arena.MustGet(id).Leaf.Window == window {
					return id, true
				}
			}
		}
	}
	return tree.NoNode, false
}
