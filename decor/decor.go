// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decor defines the Decorator seam: an abstract sink for the
// focus border and tab-bar decorations the Dispatcher recomputes after
// every command (spec.md §4.6 "submit decoration updates to
// Decorator"). Pixel rendering is out of scope (spec.md §1 Non-goals),
// so this package carries only the interface plus a no-op and a
// logging stand-in; a real renderer would sit where the teacher's own
// `core.Scene`/paint stack does, which is why none of its GPU/image
// dependencies (`golang.org/x/image`, `cogentcore/webgpu`,
// `anthonynsimon/bild`) are wired here — see SPEC_FULL.md's
// dropped-dependency table.
package decor

import (
	"log/slog"

	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

// Tab is one entry of a Tabbed container's rendered tab strip.
type Tab struct {
	Window tree.WindowId
	Title  string
	Active bool
}

// Border is the focus/unfocus border decoration for a single tiled
// leaf (spec.md §6 config: `border_size`, `focused_color`,
// `border_color`).
type Border struct {
	Window  tree.WindowId
	Rect    geom.Rect
	Width   float64
	Color   config.HexColor
	Focused bool
}

// TabBar is the decoration for one Tabbed container's reserved strip
// (spec.md §4.2 "reserve tab_bar_height from the top of R").
type TabBar struct {
	Container  tree.NodeId
	Rect       geom.Rect
	Tabs       []Tab
	Background config.HexColor
	ActiveTab  config.HexColor
}

// Decorator receives decoration updates computed from a [layout.Plan]
// and the tree shape; it never sees Command or World directly.
type Decorator interface {
	// UpdateBorder (re)draws or clears a leaf's focus border.
	UpdateBorder(b Border) error
	// UpdateTabBar (re)draws a Tabbed container's tab strip.
	UpdateTabBar(t TabBar) error
	// Clear removes every decoration associated with window. The
	// Dispatcher calls it when the window is destroyed, not when a
	// workspace switch hides it.
	Clear(window tree.WindowId) error
}

// NoOp discards every decoration update; the default for headless runs
// and for the `--backend=fake` test harness.
type NoOp struct{}

func (NoOp) UpdateBorder(Border) error { return nil }
func (NoOp) UpdateTabBar(TabBar) error { return nil }
func (NoOp) Clear(tree.WindowId) error { return nil }

// Logging discards every decoration update like [NoOp], but logs each
// call at Debug level through slog, useful
// when developing a new PlatformBackend without a real renderer wired
// up yet.
type Logging struct {
	Log *slog.Logger
}

func (l Logging) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

func (l Logging) UpdateBorder(b Border) error {
	l.logger().Debug("decor border", "window", b.Window, "rect", b.Rect.String(), "focused", b.Focused)
	return nil
}

func (l Logging) UpdateTabBar(t TabBar) error {
	l.logger().Debug("decor tab bar", "container", t.Container, "rect", t.Rect.String(), "tabs", len(t.Tabs))
	return nil
}

func (l Logging) Clear(window tree.WindowId) error {
	l.logger().Debug("decor clear", "window", window)
	return nil
}
