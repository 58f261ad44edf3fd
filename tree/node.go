// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree owns the recursive container tree (C2 of the design):
// leaves wrapping managed windows, and Split/Tabbed containers, keyed
// by an arena-assigned NodeId rather than parent/child pointers (see
// the "cyclic references" design note in spec.md §9). Each Node records
// its parent's NodeId in its Parent field, which the arena's mutating
// methods keep consistent; no separate parent map is kept.
package tree

import "github.com/l0ngvh/Dome/geom"

// WindowId is the opaque, stable identifier a PlatformBackend assigns
// to a managed OS window for its lifetime (spec.md §3).
type WindowId uint64

// NodeId identifies a Node within a single Arena. NodeIds are never
// reused within a run (invariant 8).
type NodeId uint64

// NoNode is the zero NodeId, used to mean "no parent" / "not found".
const NoNode NodeId = 0

// Kind tags a Node as a Leaf or one of the two Container variants.
type Kind int

const (
	KindLeaf Kind = iota
	KindSplitH
	KindSplitV
	KindTabbed
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSplitH:
		return "split-h"
	case KindSplitV:
		return "split-v"
	case KindTabbed:
		return "tabbed"
	default:
		return "unknown"
	}
}

// IsSplit reports whether k is one of the two split variants.
func (k Kind) IsSplit() bool { return k == KindSplitH || k == KindSplitV }

// Axis returns the split axis for a split Kind. Tabbed/Leaf have no
// meaningful axis and return AxisHorizontal.
func (k Kind) Axis() geom.Axis {
	if k == KindSplitV {
		return geom.AxisVertical
	}
	return geom.AxisHorizontal
}

// SplitKindForAxis returns the split Kind for the given axis.
func SplitKindForAxis(a geom.Axis) Kind {
	if a == geom.AxisVertical {
		return KindSplitV
	}
	return KindSplitH
}

// Leaf wraps exactly one managed window (spec.md §3).
type Leaf struct {
	Window        WindowId
	Floating      bool
	DesiredSize   *geom.Size
	LastTiledRect *geom.Rect
	FloatRect     geom.Rect // valid only while Floating
}

// Node is a single element of the tree: either a Leaf or a Container.
// Container is only meaningful when Kind != KindLeaf.
type Node struct {
	ID     NodeId
	Parent NodeId
	Kind   Kind

	Leaf Leaf // valid iff Kind == KindLeaf

	Children    []NodeId  // valid iff Kind != KindLeaf
	ActiveChild int       // index into Children, valid iff Kind != KindLeaf
	Ratios      []float64 // valid iff Kind.IsSplit(); len == len(Children)
}

// IsLeaf reports whether n wraps a window.
func (n *Node) IsLeaf() bool { return n.Kind == KindLeaf }

// Clone returns a deep copy of n, used by the executor's
// copy-on-write rollback (spec.md §4.5).
func (n *Node) Clone() *Node {
	cp := *n
	if n.Leaf.DesiredSize != nil {
		sz := *n.Leaf.DesiredSize
		cp.Leaf.DesiredSize = &sz
	}
	if n.Leaf.LastTiledRect != nil {
		r := *n.Leaf.LastTiledRect
		cp.Leaf.LastTiledRect = &r
	}
	if n.Children != nil {
		cp.Children = append([]NodeId(nil), n.Children...)
	}
	if n.Ratios != nil {
		cp.Ratios = append([]float64(nil), n.Ratios...)
	}
	return &cp
}
