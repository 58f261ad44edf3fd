// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"math"
)

// ratioEpsilon is the tolerance invariant 3 and §8 property 2 allow
// for the sum of a split container's ratios.
const ratioEpsilon = 1e-6

// Arena owns every Node ever created during a run, keyed by NodeId.
// It is the sole mutator of tree structure; Workspace/Monitor/World
// hold only NodeIds into an Arena (spec.md §9: "a hash-map
// NodeId→parent-NodeId is rebuilt on mutation" — here the parent
// pointer lives directly on Node and is kept consistent by every
// mutating method below, which is equivalent and simpler to maintain).
type Arena struct {
	nodes map[NodeId]*Node
	next  NodeId
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make(map[NodeId]*Node)}
}

func (a *Arena) allocID() NodeId {
	a.next++
	return a.next
}

// NewContainer creates an unparented container node of the given kind
// and returns its id. kind must not be KindLeaf.
func (a *Arena) NewContainer(kind Kind) NodeId {
	if kind == KindLeaf {
		panic("tree: NewContainer called with KindLeaf")
	}
	id := a.allocID()
	a.nodes[id] = &Node{ID: id, Kind: kind}
	return id
}

// NewLeaf creates an unparented leaf node wrapping window and returns
// its id.
func (a *Arena) NewLeaf(window WindowId) NodeId {
	id := a.allocID()
	a.nodes[id] = &Node{ID: id, Kind: KindLeaf, Leaf: Leaf{Window: window}}
	return id
}

// Get returns the node for id, or (nil, false) if it does not exist.
func (a *Arena) Get(id NodeId) (*Node, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

// MustGet returns the node for id and panics if it does not exist;
// reserved for call sites where a missing node is a Dome bug, not
// user-triggerable (e.g. a NodeId just returned by Insert).
func (a *Arena) MustGet(id NodeId) *Node {
	n, ok := a.nodes[id]
	if !ok {
		panic(fmt.Sprintf("tree: node %d does not exist", id))
	}
	return n
}

// delete removes a node's bookkeeping entry. Callers must have
// already unlinked it from its parent's Children.
func (a *Arena) delete(id NodeId) {
	delete(a.nodes, id)
}

// Snapshot returns a deep copy of the whole arena, used by the
// executor to implement copy-on-write rollback (spec.md §4.5). A
// real deployment could scope this to just the touched workspace's
// subtree; snapshotting the whole arena is simpler and, for the
// window counts a desktop WM manages (tens, not millions), cheap
// enough not to matter.
func (a *Arena) Snapshot() *Arena {
	cp := &Arena{nodes: make(map[NodeId]*Node, len(a.nodes)), next: a.next}
	for id, n := range a.nodes {
		cp.nodes[id] = n.Clone()
	}
	return cp
}

// Restore replaces a's contents with snap's, in place, so that
// existing *Arena pointers held elsewhere keep working after a
// rollback.
func (a *Arena) Restore(snap *Arena) {
	a.nodes = snap.nodes
	a.next = snap.next
}

// childIndex returns the index of child within parent's Children, or
// -1 if not present.
func (a *Arena) childIndex(parent *Node, child NodeId) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// setParent updates child's Parent field.
func (a *Arena) setParent(child, parent NodeId) {
	a.MustGet(child).Parent = parent
}

// insertChildAt inserts child into parent.Children at index. When
// parent is a split container, neighborOldIdx names the index (into
// parent.Ratios as it stood *before* this insertion) of the sibling
// whose share should be split in half between it and the new child
// (invariant 3: "preserved across insertions by splitting the
// neighbor's share"); pass -1 to fall back to equal redistribution
// when there is no specific adjacent target. Insert's Into and
// AppendChild pass the parent's ActiveChild when it has children.
func (a *Arena) insertChildAt(parentID NodeId, index int, child NodeId, neighborOldIdx int) {
	parent := a.MustGet(parentID)
	children := make([]NodeId, 0, len(parent.Children)+1)
	children = append(children, parent.Children[:index]...)
	children = append(children, child)
	children = append(children, parent.Children[index:]...)
	parent.Children = children
	a.setParent(child, parentID)

	if parent.Kind.IsSplit() {
		old := parent.Ratios
		switch {
		case len(old) == 0:
			parent.Ratios = []float64{1.0}
		case neighborOldIdx < 0 || neighborOldIdx >= len(old):
			parent.Ratios = equalRatios(len(children))
		default:
			half := old[neighborOldIdx] / 2
			ratios := make([]float64, 0, len(old)+1)
			ratios = append(ratios, old[:neighborOldIdx]...)
			ratios = append(ratios, half)
			ratios = append(ratios, half)
			ratios = append(ratios, old[neighborOldIdx+1:]...)
			parent.Ratios = ratios
		}
	}

	if index <= parent.ActiveChild {
		parent.ActiveChild++
	}
	a.fixActiveChildBounds(parent)
}

// AppendChild splices an already-built node (itself possibly a
// subtree root, e.g. the Tabbed container built during monitor-removal
// migration, spec.md §4.3) onto the end of parent's children. Unlike
// Insert, it does not allocate a new leaf: child must already exist in
// this arena and be unparented.
func (a *Arena) AppendChild(parentID, child NodeId) error {
	parent, ok := a.Get(parentID)
	if !ok {
		return ErrNotFound
	}
	if parent.IsLeaf() {
		return fmt.Errorf("tree: AppendChild target %d is a leaf", parentID)
	}
	if _, ok := a.Get(child); !ok {
		return ErrNotFound
	}
	neighborOldIdx := -1
	if len(parent.Children) > 0 {
		neighborOldIdx = parent.ActiveChild
	}
	a.insertChildAt(parentID, len(parent.Children), child, neighborOldIdx)
	return nil
}

// normalizeRatios rescales ratios so they sum to 1.0.
func normalizeRatios(ratios []float64) []float64 {
	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	if sum <= 0 {
		if len(ratios) == 0 {
			return ratios
		}
		equal := 1.0 / float64(len(ratios))
		out := make([]float64, len(ratios))
		for i := range out {
			out[i] = equal
		}
		return out
	}
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = r / sum
	}
	return out
}

// equalRatios returns n equal ratios summing to 1.0.
func equalRatios(n int) []float64 {
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0 / float64(n)
	}
	return out
}

func (a *Arena) fixActiveChildBounds(n *Node) {
	if len(n.Children) == 0 {
		n.ActiveChild = 0
		return
	}
	if n.ActiveChild < 0 {
		n.ActiveChild = 0
	}
	if n.ActiveChild >= len(n.Children) {
		n.ActiveChild = len(n.Children) - 1
	}
}

// removeChildAt removes the child at index from parent, renormalizing
// ratios (invariant 3: "across removals by renormalising").
func (a *Arena) removeChildAt(parentID NodeId, index int) {
	parent := a.MustGet(parentID)
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	if parent.Kind.IsSplit() && index < len(parent.Ratios) {
		parent.Ratios = append(parent.Ratios[:index], parent.Ratios[index+1:]...)
		parent.Ratios = normalizeRatios(parent.Ratios)
	}
	if index < parent.ActiveChild || (index == parent.ActiveChild && parent.ActiveChild == len(parent.Children)) {
		if parent.ActiveChild > 0 {
			parent.ActiveChild--
		}
	}
	a.fixActiveChildBounds(parent)
}

// pruneAndCollapse restores invariants 2 and 4 upward from node,
// which has just lost a child or had its kind/children change under
// it. It cascades: removing an empty container from its own parent
// can empty that parent in turn.
//
// isWorkspaceRoot reports whether a NodeId is a workspace root, which
// invariant 2 exempts from removal ("a workspace root is always
// retained and may be an empty Container").
func (a *Arena) pruneAndCollapse(node NodeId, isWorkspaceRoot func(NodeId) bool) {
	for node != NoNode {
		n, ok := a.Get(node)
		if !ok {
			return
		}
		if n.IsLeaf() {
			return
		}

		if len(n.Children) == 0 {
			if isWorkspaceRoot(node) {
				return
			}
			parent := n.Parent
			if parent == NoNode {
				return
			}
			pn := a.MustGet(parent)
			idx := a.childIndex(pn, node)
			if idx >= 0 {
				a.removeChildAt(parent, idx)
			}
			a.delete(node)
			node = parent
			continue
		}

		if len(n.Children) == 1 && n.Kind.IsSplit() {
			only, ok := a.Get(n.Children[0])
			if ok && only.Kind == n.Kind && !isWorkspaceRoot(node) {
				a.hoistOnlyChild(node, n)
				node = n.Parent
				continue
			}
		}

		return
	}
}

// hoistOnlyChild collapses node (whose single child is a split of the
// same kind) by replacing node with that child, merging ratios
// proportionally (invariant 4).
func (a *Arena) hoistOnlyChild(nodeID NodeId, node *Node) {
	childID := node.Children[0]
	child := a.MustGet(childID)

	parentID := node.Parent
	if parentID == NoNode {
		// node is itself a root; just absorb the child's contents in place.
		node.Children = child.Children
		node.Ratios = child.Ratios
		node.ActiveChild = child.ActiveChild
		for _, gc := range child.Children {
			a.setParent(gc, nodeID)
		}
		a.delete(childID)
		return
	}

	parent := a.MustGet(parentID)
	idx := a.childIndex(parent, nodeID)
	if idx < 0 {
		return
	}
	nodeShare := 1.0
	if parent.Kind.IsSplit() && idx < len(parent.Ratios) {
		nodeShare = parent.Ratios[idx]
	}

	parent.Children[idx] = childID
	a.setParent(childID, parentID)
	if parent.Kind.IsSplit() && idx < len(parent.Ratios) {
		parent.Ratios[idx] = nodeShare
	}
	a.delete(nodeID)
}

// CheckInvariants validates invariants 2, 3 and 4 over every
// container reachable from root, used by tests (spec.md §8).
func (a *Arena) CheckInvariants(root NodeId) error {
	n, ok := a.Get(root)
	if !ok {
		return fmt.Errorf("tree: root %d missing", root)
	}
	if n.IsLeaf() {
		return nil
	}
	if len(n.Children) == 0 {
		// Empty is only valid for a workspace root; callers check that
		// separately. Still recurse-safe here.
		return nil
	}
	if n.Kind.IsSplit() {
		if len(n.Ratios) != len(n.Children) {
			return fmt.Errorf("tree: node %d has %d ratios for %d children", n.ID, len(n.Ratios), len(n.Children))
		}
		sum := 0.0
		for _, r := range n.Ratios {
			sum += r
		}
		if math.Abs(sum-1.0) > ratioEpsilon {
			return fmt.Errorf("tree: node %d ratios sum to %f", n.ID, sum)
		}
	}
	if len(n.Children) == 1 && n.Kind.IsSplit() {
		only, ok := a.Get(n.Children[0])
		if ok && only.Kind == n.Kind {
			return fmt.Errorf("tree: node %d has unary same-kind child %d", n.ID, only.ID)
		}
	}
	for _, c := range n.Children {
		if err := a.CheckInvariants(c); err != nil {
			return err
		}
	}
	return nil
}
