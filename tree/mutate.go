// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"errors"
	"fmt"

	"github.com/l0ngvh/Dome/geom"
)

// Position is where Insert places the new leaf relative to target
// (spec.md §4.1).
type Position int

const (
	PosBefore Position = iota
	PosAfter
	PosInto
)

// InsertHint is the kind_hint parameter of Insert: either a concrete
// container kind, or Auto to resolve via the auto-tiling rule (§4.2).
type InsertHint int

const (
	HintSplitH InsertHint = iota
	HintSplitV
	HintTabbed
	HintAuto
)

// SpawnDirection is World.spawn_direction (spec.md §3), including the
// implicit initial "no override yet" state that lets the auto-tiling
// heuristic run; [SpawnDirection.Next] only cycles the three
// concrete overrides, per spec.md §4.5 ("toggle spawn_direction:
// cycles ... through Horizontal→Vertical→Tabbed").
type SpawnDirection int

const (
	SpawnAuto SpawnDirection = iota
	SpawnHorizontal
	SpawnVertical
	SpawnTabbed
)

// Next cycles the three concrete overrides; Auto advances to
// Horizontal, the start of the cycle.
func (s SpawnDirection) Next() SpawnDirection {
	switch s {
	case SpawnHorizontal:
		return SpawnVertical
	case SpawnVertical:
		return SpawnTabbed
	default:
		return SpawnHorizontal
	}
}

func (s SpawnDirection) String() string {
	switch s {
	case SpawnHorizontal:
		return "horizontal"
	case SpawnVertical:
		return "vertical"
	case SpawnTabbed:
		return "tabbed"
	default:
		return "auto"
	}
}

// ResolveHint turns an InsertHint into a concrete container Kind,
// applying the auto-tiling rule from spec.md §4.2: a HintAuto under a
// leaf whose last tiled rect is wider than it is tall splits
// horizontally, else vertically — unless spawn overrides it.
func ResolveHint(hint InsertHint, spawn SpawnDirection, target *Node) Kind {
	switch hint {
	case HintSplitH:
		return KindSplitH
	case HintSplitV:
		return KindSplitV
	case HintTabbed:
		return KindTabbed
	}
	switch spawn {
	case SpawnHorizontal:
		return KindSplitH
	case SpawnVertical:
		return KindSplitV
	case SpawnTabbed:
		return KindTabbed
	}
	if target != nil && target.IsLeaf() && target.Leaf.LastTiledRect != nil {
		r := target.Leaf.LastTiledRect
		axis := geom.AxisVertical
		if r.W > r.H {
			axis = geom.AxisHorizontal
		}
		return SplitKindForAxis(axis)
	}
	return KindSplitH
}

// ErrEscaped is returned by MoveNode/FocusMove when the movement
// cannot be resolved inside the workspace root's subtree and must be
// escalated to a workspace/monitor-level move by the caller (spec.md
// §4.1 "at a boundary the move escapes to the ancestor's sibling
// (possibly crossing into another workspace/monitor — delegated to
// C6)").
var ErrEscaped = errors.New("tree: move escaped workspace boundary")

// ErrNotFound is returned when a NodeId does not exist in the arena.
var ErrNotFound = errors.New("tree: node not found")

// IsWorkspaceRootFunc reports whether a NodeId is a workspace root,
// which invariant 2 exempts from cascading removal.
type IsWorkspaceRootFunc func(NodeId) bool

// Insert adds leaf to the tree relative to target, per spec.md §4.1.
func (a *Arena) Insert(target NodeId, pos Position, hint InsertHint, spawn SpawnDirection, leaf Leaf) (NodeId, error) {
	tgt, ok := a.Get(target)
	if !ok {
		return NoNode, ErrNotFound
	}
	kind := ResolveHint(hint, spawn, tgt)
	leafID := a.NewLeaf(leaf.Window)
	a.MustGet(leafID).Leaf = leaf

	if pos == PosInto {
		if tgt.IsLeaf() {
			return NoNode, errors.New("tree: Into requires a container target")
		}
		neighborOldIdx := -1
		if len(tgt.Children) > 0 {
			neighborOldIdx = tgt.ActiveChild
		}
		insertIdx := len(tgt.Children)
		a.insertChildAt(target, insertIdx, leafID, neighborOldIdx)
		tgt.ActiveChild = insertIdx
		return leafID, nil
	}

	parentID := tgt.Parent
	if parentID != NoNode {
		parent := a.MustGet(parentID)
		if parent.Kind == kind {
			targetIdx := a.childIndex(parent, target)
			idx := targetIdx
			if pos == PosAfter {
				idx = targetIdx + 1
			}
			a.insertChildAt(parentID, idx, leafID, targetIdx)
			parent.ActiveChild = idx
			return leafID, nil
		}
	}

	if parentID == NoNode {
		return NoNode, errors.New("tree: cannot wrap the tree root directly; use Into")
	}

	parent := a.MustGet(parentID)
	newContainer := a.NewContainer(kind)
	nc := a.MustGet(newContainer)
	if pos == PosBefore {
		nc.Children = []NodeId{leafID, target}
		nc.ActiveChild = 0
	} else {
		nc.Children = []NodeId{target, leafID}
		nc.ActiveChild = 1
	}
	if kind.IsSplit() {
		nc.Ratios = equalRatios(2)
	}
	a.setParent(target, newContainer)
	a.setParent(leafID, newContainer)

	idx := a.childIndex(parent, target)
	parent.Children[idx] = newContainer
	nc.Parent = parentID
	return leafID, nil
}

// Remove deletes node's subtree and applies invariants 2 and 4
// upward from its former parent.
func (a *Arena) Remove(node NodeId, isRoot IsWorkspaceRootFunc) error {
	n, ok := a.Get(node)
	if !ok {
		return ErrNotFound
	}
	parent := n.Parent
	a.deleteSubtree(node)
	if parent != NoNode {
		pn := a.MustGet(parent)
		idx := a.childIndex(pn, node)
		if idx >= 0 {
			a.removeChildAt(parent, idx)
		}
		a.pruneAndCollapse(parent, isRoot)
	}
	return nil
}

func (a *Arena) deleteSubtree(node NodeId) {
	n, ok := a.Get(node)
	if !ok {
		return
	}
	for _, c := range n.Children {
		a.deleteSubtree(c)
	}
	a.delete(node)
}

// Detach unlinks node from its parent's children, applying invariants
// 2 and 4 upward like Remove, but — unlike Remove — keeps node itself
// alive in the arena with Parent set to NoNode. This is the primitive
// `toggle float`'s tiled→float transition needs (spec.md §4.5): the
// leaf must survive detachment so it can be tracked in the
// workspace's floats set and reattached later by the same NodeId, not
// destroyed and recreated as Remove's cascading delete would do. A
// no-op if node is already unparented.
func (a *Arena) Detach(node NodeId, isRoot IsWorkspaceRootFunc) error {
	n, ok := a.Get(node)
	if !ok {
		return ErrNotFound
	}
	parent := n.Parent
	if parent == NoNode {
		return nil
	}
	pn := a.MustGet(parent)
	idx := a.childIndex(pn, node)
	if idx >= 0 {
		a.removeChildAt(parent, idx)
	}
	n.Parent = NoNode
	a.pruneAndCollapse(parent, isRoot)
	return nil
}

// DestroyDetached permanently deletes an unparented leaf — a floating
// leaf whose window has closed — from the arena. node must already
// have no parent (e.g. a floating leaf, or one just Detach'd); a
// structurally live leaf must go through Remove instead, so its
// parent's invariants get re-checked.
func (a *Arena) DestroyDetached(node NodeId) error {
	n, ok := a.Get(node)
	if !ok {
		return ErrNotFound
	}
	if n.Parent != NoNode {
		return fmt.Errorf("tree: DestroyDetached called on parented node %d", node)
	}
	a.delete(node)
	return nil
}

// MoveNode structurally relocates node one step in dir, per spec.md
// §4.1/§4.5: it ascends ancestors for the nearest split along dir's
// axis where node's containing child is not extremal in dir, and
// swaps it with its neighbor there. Tabbed containers and
// wrong-axis splits are transparent to the search (absorbed only by
// next_tab/prev_tab). Returns ErrEscaped if no such ancestor exists
// before the workspace root, meaning the caller must hoist the node
// across a workspace/monitor boundary instead.
func (a *Arena) MoveNode(node NodeId, dir geom.Direction) error {
	parent, neighborIdx, ownIdx, err := a.findSwapTarget(node, dir)
	if err != nil {
		return err
	}
	pn := a.MustGet(parent)
	pn.Children[ownIdx], pn.Children[neighborIdx] = pn.Children[neighborIdx], pn.Children[ownIdx]
	if pn.ActiveChild == ownIdx {
		pn.ActiveChild = neighborIdx
	} else if pn.ActiveChild == neighborIdx {
		pn.ActiveChild = ownIdx
	}
	return nil
}

// findSwapTarget implements the ancestor search shared by MoveNode
// and FocusMove.
func (a *Arena) findSwapTarget(node NodeId, dir geom.Direction) (parent NodeId, neighborIdx, ownIdx int, err error) {
	cur := node
	for {
		n, ok := a.Get(cur)
		if !ok {
			return NoNode, 0, 0, ErrNotFound
		}
		p := n.Parent
		if p == NoNode {
			return NoNode, 0, 0, ErrEscaped
		}
		pn := a.MustGet(p)
		if pn.Kind.IsSplit() && pn.Kind.Axis() == dir.Axis() {
			idx := a.childIndex(pn, cur)
			next := idx + 1
			if !dir.Forward() {
				next = idx - 1
			}
			if next >= 0 && next < len(pn.Children) {
				return p, next, idx, nil
			}
		}
		cur = p
	}
}

// FocusMove mirrors MoveNode but only resolves which leaf focus
// should move to, by descending the neighbor subtree's active-child
// path. Returns ErrEscaped when the search reaches the workspace
// root, meaning the caller should escalate to a monitor-level focus
// move.
func (a *Arena) FocusMove(node NodeId, dir geom.Direction) (NodeId, error) {
	parent, neighborIdx, _, err := a.findSwapTarget(node, dir)
	if err != nil {
		return NoNode, err
	}
	pn := a.MustGet(parent)
	return a.ActiveLeafPath(pn.Children[neighborIdx]), nil
}

// ActiveLeafPath descends from start via each container's
// ActiveChild until it reaches a leaf, and returns that leaf's id.
// If start is already a leaf it is returned unchanged.
func (a *Arena) ActiveLeafPath(start NodeId) NodeId {
	cur := start
	for {
		n, ok := a.Get(cur)
		if !ok || n.IsLeaf() {
			return cur
		}
		if len(n.Children) == 0 {
			return cur
		}
		cur = n.Children[n.ActiveChild]
	}
}

// FocusParent returns the nearest ancestor container of node, or
// NoNode if node is already the workspace root. Callers hold the
// result as a separate "focus level" pointer (spec.md §4.1).
func (a *Arena) FocusParent(node NodeId) NodeId {
	n, ok := a.Get(node)
	if !ok {
		return NoNode
	}
	return n.Parent
}

// ToggleLayout flips container between its current Split axis and
// Tabbed, preserving child order and ActiveChild (spec.md §4.1).
// Tabbed→Split defaults to KindSplitH, since the prior axis is not
// retained across the round trip (an explicit simplification: the
// spec does not say which axis a bare Tabbed container reverts to).
func (a *Arena) ToggleLayout(container NodeId) error {
	n, ok := a.Get(container)
	if !ok {
		return ErrNotFound
	}
	if n.IsLeaf() {
		return errors.New("tree: ToggleLayout requires a container")
	}
	if n.Kind == KindTabbed {
		n.Kind = KindSplitH
		n.Ratios = equalRatios(len(n.Children))
	} else {
		n.Kind = KindTabbed
		n.Ratios = nil
	}
	return nil
}

// ToggleDirection flips a split container's axis in place
// (SplitH↔SplitV), keeping ratios and child order (spec.md §4.5
// "toggle direction"). No-op on a Tabbed container.
func (a *Arena) ToggleDirection(container NodeId) error {
	n, ok := a.Get(container)
	if !ok {
		return ErrNotFound
	}
	switch n.Kind {
	case KindSplitH:
		n.Kind = KindSplitV
	case KindSplitV:
		n.Kind = KindSplitH
	}
	return nil
}

// Promote hoists node one level: it is removed from its parent P and
// reinserted as a sibling of P, in P's old parent (spec.md §4.1).
func (a *Arena) Promote(node NodeId, isRoot IsWorkspaceRootFunc) error {
	n, ok := a.Get(node)
	if !ok {
		return ErrNotFound
	}
	p := n.Parent
	if p == NoNode {
		return errors.New("tree: cannot promote the workspace root")
	}
	pn := a.MustGet(p)
	gp := pn.Parent
	if gp == NoNode {
		return errors.New("tree: cannot promote a child of the workspace root")
	}
	ownIdx := a.childIndex(pn, node)
	a.removeChildAt(p, ownIdx)

	gpn := a.MustGet(gp)
	pIdx := a.childIndex(gpn, p)
	a.insertChildAt(gp, pIdx+1, node, pIdx)
	gpn.ActiveChild = pIdx + 1

	a.pruneAndCollapse(p, isRoot)
	return nil
}
