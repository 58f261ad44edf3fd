// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the layout engine (C3): a recursive
// descent over a workspace's container tree that produces a
// [Plan] mapping every window to its rect, visibility and z-order
// (spec.md §4.2). It reads a [tree.Arena] and a [config.Config] and
// never changes the tree's structure or the config; its one write is
// each visibly laid-out tiled leaf's LastTiledRect. It is grounded on
// the recursive proportional subdivision in
// `core/splits.go` (SplitH/SplitV) and the reserved tab-strip in
// `core/tabs.go` (Tabbed).
package layout

import (
	"sort"

	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

// WindowPlacement is one window's entry in a [Plan] (spec.md §3
// LayoutPlan: "mapping WindowId -> { rect, visible, z_order }").
type WindowPlacement struct {
	Rect    geom.Rect
	Visible bool
	ZOrder  int
}

// Plan is the layout engine's output for a single workspace.
type Plan struct {
	Windows map[tree.WindowId]WindowPlacement
}

func newPlan() *Plan {
	return &Plan{Windows: make(map[tree.WindowId]WindowPlacement)}
}

func (p *Plan) set(window tree.WindowId, rect geom.Rect, visible bool, z int) {
	p.Windows[window] = WindowPlacement{Rect: rect, Visible: visible, ZOrder: z}
}

// Compute lays out every window of the workspace rooted at root,
// within area (the monitor's work area), plus the workspace's
// floating leaves (floats is the NodeId set a [world.Workspace] keeps
// alongside root). Tiled leaves get z-order 0, every non-focused float
// gets 1 and the focused float gets 2 (spec.md §4.2 "Z-order"); the
// plan records no order among floats that share z-order 1.
func Compute(a *tree.Arena, root tree.NodeId, floats map[tree.NodeId]bool, focused tree.NodeId, area geom.Rect, cfg *config.Config) *Plan {
	p := newPlan()
	layoutNode(a, root, area, cfg, p, true)
	layoutFloats(a, floats, focused, area, cfg, p)
	return p
}

// layoutNode recurses over id's subtree, writing into p. visible is
// false for an entire branch hidden under an inactive Tabbed child;
// inactive leaves still get an entry (so the caller can tell the
// backend to hide or off-screen them) using their last known rect.
func layoutNode(a *tree.Arena, id tree.NodeId, area geom.Rect, cfg *config.Config, p *Plan, visible bool) {
	n, ok := a.Get(id)
	if !ok {
		return
	}
	if n.IsLeaf() {
		layoutLeaf(n, area, cfg, p, visible)
		return
	}
	switch n.Kind {
	case tree.KindSplitH, tree.KindSplitV:
		layoutSplit(a, n, area, cfg, p, visible)
	case tree.KindTabbed:
		layoutTabbed(a, n, area, cfg, p, visible)
	}
}

// layoutLeaf resolves a single leaf's rect against min/max config
// limits and desired_size, and records its last tiled rect for later
// Tabbed-inactive/pressure calculations.
func layoutLeaf(n *tree.Node, cell geom.Rect, cfg *config.Config, p *Plan, visible bool) {
	rect := cell
	if visible {
		rect = resolveLeafRect(n, cell, cfg)
		r := rect
		n.Leaf.LastTiledRect = &r
	} else if n.Leaf.LastTiledRect != nil {
		rect = *n.Leaf.LastTiledRect
	}
	p.set(n.Leaf.Window, rect, visible, 0)
}

// resolveLeafRect applies min/max width/height (spec.md §4.2: "apply
// min_{w,h} (expanding if the cell is smaller ...) and max_{w,h}
// (centering within the cell)"), and honors desired_size only when it
// fits between min/max and automatic_tiling is disabled.
//
// Full sibling "pressure" redistribution -- where a leaf expanded past
// its cell's min size is supposed to shrink its neighbors
// proportionally -- is not implemented: each leaf's min/max is
// resolved against its own cell only, which can overlap an adjacent
// cell when the workspace is tiled tighter than the configured
// minimums. This matches the common case (min/max rarely binds) while
// avoiding a second, whole-subtree relayout pass.
func resolveLeafRect(n *tree.Node, cell geom.Rect, cfg *config.Config) geom.Rect {
	w, h := cell.W, cell.H
	if !cfg.AutomaticTiling && n.Leaf.DesiredSize != nil {
		dw := n.Leaf.DesiredSize.Resolve(cell.W)
		if within(dw, cfg.MinWidth.Resolve(cell.W), cfg.MaxWidth.Resolve(cell.W)) {
			w = dw
		}
	}
	minW := cfg.MinWidth.Resolve(cell.W)
	if !cfg.MinWidth.IsZero() && w < minW {
		w = minW
	}
	maxW := cfg.MaxWidth.Resolve(cell.W)
	if !cfg.MaxWidth.IsZero() && w > maxW {
		w = maxW
	}
	minH := cfg.MinHeight.Resolve(cell.H)
	if !cfg.MinHeight.IsZero() && h < minH {
		h = minH
	}
	maxH := cfg.MaxHeight.Resolve(cell.H)
	if !cfg.MaxHeight.IsZero() && h > maxH {
		h = maxH
	}
	if w == cell.W && h == cell.H {
		return cell
	}
	return geom.CenteredIn(cell, w, h)
}

func within(v, lo, hi float64) bool {
	if hi > 0 && v > hi {
		return false
	}
	return v >= lo
}

// layoutSplit subdivides area along n.Kind's axis proportional to
// n.Ratios, subtracting border gutters between children (spec.md
// §4.2, grounded on `core/splits.go`'s proportional Splits factors).
func layoutSplit(a *tree.Arena, n *tree.Node, area geom.Rect, cfg *config.Config, p *Plan, visible bool) {
	count := len(n.Children)
	if count == 0 {
		return
	}
	gutters := float64(count-1) * cfg.BorderSize
	axis := n.Kind.Axis()
	var avail float64
	if axis == geom.AxisHorizontal {
		avail = area.W - gutters
	} else {
		avail = area.H - gutters
	}
	if avail < 0 {
		avail = 0
	}
	pos := 0.0
	if axis == geom.AxisHorizontal {
		pos = area.X
	} else {
		pos = area.Y
	}
	for i, child := range n.Children {
		ratio := 1.0 / float64(count)
		if i < len(n.Ratios) {
			ratio = n.Ratios[i]
		}
		extent := avail * ratio
		var cell geom.Rect
		if axis == geom.AxisHorizontal {
			cell = geom.Rect{X: pos, Y: area.Y, W: extent, H: area.H}
		} else {
			cell = geom.Rect{X: area.X, Y: pos, W: area.W, H: extent}
		}
		layoutNode(a, child, cell, cfg, p, visible)
		pos += extent + cfg.BorderSize
	}
}

// layoutTabbed reserves tab_bar_height from the top of area, lays out
// only the active child in the remainder, and emits visible=false
// entries (preserving last rect) for every leaf under the other
// children (spec.md §4.2, grounded on `core/tabs.go`'s reserved
// tab-strip + single-visible-child model).
func layoutTabbed(a *tree.Arena, n *tree.Node, area geom.Rect, cfg *config.Config, p *Plan, visible bool) {
	remainder := area
	remainder.Y += cfg.TabBarHeight
	remainder.H -= cfg.TabBarHeight
	if remainder.H < 0 {
		remainder.H = 0
	}
	for i, child := range n.Children {
		if i == n.ActiveChild {
			layoutNode(a, child, remainder, cfg, p, visible)
		} else {
			layoutNode(a, child, remainder, cfg, p, false)
		}
	}
}

// layoutFloats clamps every floating leaf to area. Non-focused floats
// all get z-order 1, with no order among them recorded in the plan;
// the focused float is always promoted to z-order 2, above every other
// float (spec.md §4.2
// "Z-order": "Floats: 1 per creation order, focused float: 2").
func layoutFloats(a *tree.Arena, floats map[tree.NodeId]bool, focused tree.NodeId, area geom.Rect, cfg *config.Config, p *Plan) {
	ids := make([]tree.NodeId, 0, len(floats))
	for id := range floats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		n, ok := a.Get(id)
		if !ok || !n.IsLeaf() {
			continue
		}
		rect := n.Leaf.FloatRect.Clamp(area)
		z := 1
		if id == focused {
			z = 2
		}
		p.set(n.Leaf.Window, rect, true, z)
	}
}
