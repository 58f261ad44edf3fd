// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// Walk calls fn for every node reachable from root, in a pre-order
// traversal (root first, then children left to right).
func (a *Arena) Walk(root NodeId, fn func(*Node)) {
	n, ok := a.Get(root)
	if !ok {
		return
	}
	fn(n)
	for _, c := range n.Children {
		a.Walk(c, fn)
	}
}

// Leaves returns every leaf reachable from root, in tree order.
func (a *Arena) Leaves(root NodeId) []NodeId {
	var out []NodeId
	a.Walk(root, func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n.ID)
		}
	})
	return out
}

// FindLeafByWindow returns the leaf wrapping window within root's
// subtree, or (NoNode, false) if not present.
func (a *Arena) FindLeafByWindow(root NodeId, window WindowId) (NodeId, bool) {
	var found NodeId = NoNode
	a.Walk(root, func(n *Node) {
		if found != NoNode {
			return
		}
		if n.IsLeaf() && n.Leaf.Window == window {
			found = n.ID
		}
	})
	return found, found != NoNode
}

// NearestTabbedAncestor walks up from node to the nearest Tabbed
// container, or returns (NoNode, false) if none exists before the
// workspace root (spec.md §4.5 "focus next_tab|prev_tab ... With none
// found, no-op").
func (a *Arena) NearestTabbedAncestor(node NodeId) (NodeId, bool) {
	for _, cur := range a.Ancestors(node) {
		if a.MustGet(cur).Kind == KindTabbed {
			return cur, true
		}
	}
	return NoNode, false
}

// CycleTab advances (delta=+1) or retreats (delta=-1) a Tabbed
// container's ActiveChild, wrapping around.
func (a *Arena) CycleTab(container NodeId, delta int) error {
	n, ok := a.Get(container)
	if !ok {
		return ErrNotFound
	}
	if n.Kind != KindTabbed || len(n.Children) == 0 {
		return nil
	}
	count := len(n.Children)
	next := ((n.ActiveChild+delta)%count + count) % count
	n.ActiveChild = next
	return nil
}

// UpdateActiveChildForFocus walks up from leaf to root, setting every
// ancestor container's ActiveChild (split and Tabbed alike) to the
// branch containing leaf (invariant 6: "active_child of any Tabbed container points to the
// descendant that contains focused_leaf when that leaf is in its
// subtree").
func (a *Arena) UpdateActiveChildForFocus(leaf NodeId) {
	cur := leaf
	for {
		n, ok := a.Get(cur)
		if !ok {
			return
		}
		parent := n.Parent
		if parent == NoNode {
			return
		}
		pn := a.MustGet(parent)
		idx := a.childIndex(pn, cur)
		if idx >= 0 {
			pn.ActiveChild = idx
		}
		cur = parent
	}
}

// Ancestors returns the chain of ancestor NodeIds from node's parent
// up to (and including) root, in that order.
func (a *Arena) Ancestors(node NodeId) []NodeId {
	var out []NodeId
	n, ok := a.Get(node)
	if !ok {
		return out
	}
	cur := n.Parent
	for cur != NoNode {
		out = append(out, cur)
		cn := a.MustGet(cur)
		cur = cn.Parent
	}
	return out
}
