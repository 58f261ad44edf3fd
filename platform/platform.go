// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform defines the PlatformBackend seam (spec.md §6): the
// boundary between Dome's core (C1-C8) and the host OS's window and
// display APIs. A real backend (Cocoa, X11/Wayland, Win32) is out of
// scope (spec.md §1 Non-goals); this package only carries the
// interface and an in-memory [Fake] implementation exercised by tests
// and by cmd/domed's `--backend=fake` escape hatch. The capability-set
// shape mirrors the teacher's own `system.App` seam (an abstract
// backend behind a single interface, platform code left out of the
// portable core), reconstructed here from spec.md §6's inbound/outbound
// list rather than copied code, since only `system`'s go.mod entries
// were retrievable into the reference pack.
package platform

import (
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
)

// MonitorInfo is one entry of EnumerateMonitors / MonitorsChanged. ID
// is the backend's opaque display identifier; dispatch converts it to
// a [world.MonitorId] (a plain string-based type) when applying a
// MonitorsChanged event to World, keeping this package independent of
// world's entity model.
type MonitorInfo struct {
	ID       string
	WorkArea geom.Rect
}

// EventKind tags an inbound Event's variant.
type EventKind int

const (
	EventWindowCreated EventKind = iota
	EventWindowDestroyed
	EventWindowFocused
	EventWindowMoved
	EventMonitorsChanged
	EventKeyChord
)

// Event is one inbound PlatformBackend notification (spec.md §6
// "Inbound events").
type Event struct {
	Kind EventKind

	Window tree.WindowId
	Meta   rules.WindowMeta // WindowCreated
	Rect   geom.Rect        // WindowMoved

	Monitors []MonitorInfo // MonitorsChanged

	ChordString string // KeyChord
}

// Backend is the outbound half of the seam (spec.md §6 "Outbound
// calls"), called synchronously from the Dispatcher loop and required
// to be non-blocking-bounded (spec.md §5: "<16 ms").
type Backend interface {
	// ApplyGeometry moves/resizes/shows-or-hides window id.
	ApplyGeometry(id tree.WindowId, rect geom.Rect, visible bool) error
	// Raise brings window id to the top of its z-order group.
	Raise(id tree.WindowId) error
	// Focus gives input focus to window id.
	Focus(id tree.WindowId) error
	// RegisterKeyChord asks the OS to deliver KeyChord events for chord.
	RegisterKeyChord(chord string) error
	// UnregisterKeyChord undoes a prior RegisterKeyChord.
	UnregisterKeyChord(chord string) error
	// EnumerateMonitors returns the current monitor list.
	EnumerateMonitors() ([]MonitorInfo, error)
	// QueryMeta re-fetches a window's metadata (app/bundle/process/title).
	QueryMeta(id tree.WindowId) (rules.WindowMeta, error)
	// Events returns the channel of inbound events the Dispatcher
	// drains every tick (spec.md §4.6).
	Events() <-chan Event
	// Close releases backend resources.
	Close() error
}
