// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"sync"

	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
)

// GeometryCall records one ApplyGeometry invocation, for test
// assertions against [Fake].
type GeometryCall struct {
	Window  tree.WindowId
	Rect    geom.Rect
	Visible bool
}

// Fake is an in-memory [Backend] used by tests and by cmd/domed's
// `--backend=fake` escape hatch (spec.md §9's "capability set + test
// double" note): it records every outbound call and lets a test inject
// inbound [Event]s directly, with no real OS dependency.
type Fake struct {
	mu sync.Mutex

	meta      map[tree.WindowId]rules.WindowMeta
	monitors  []MonitorInfo
	chords    map[string]bool
	geometry  []GeometryCall
	raised    []tree.WindowId
	focused   []tree.WindowId
	closed    bool
	events    chan Event
}

// NewFake returns a Fake with no windows and a single 1920x1080
// monitor.
func NewFake() *Fake {
	return &Fake{
		meta:     make(map[tree.WindowId]rules.WindowMeta),
		chords:   make(map[string]bool),
		monitors: []MonitorInfo{{ID: "fake-0", WorkArea: geom.Rect{W: 1920, H: 1080}}},
		events:   make(chan Event, 64),
	}
}

func (f *Fake) ApplyGeometry(id tree.WindowId, rect geom.Rect, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geometry = append(f.geometry, GeometryCall{Window: id, Rect: rect, Visible: visible})
	return nil
}

func (f *Fake) Raise(id tree.WindowId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raised = append(f.raised, id)
	return nil
}

func (f *Fake) Focus(id tree.WindowId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, id)
	return nil
}

func (f *Fake) RegisterKeyChord(chord string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chords[chord] = true
	return nil
}

func (f *Fake) UnregisterKeyChord(chord string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chords, chord)
	return nil
}

func (f *Fake) EnumerateMonitors() ([]MonitorInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]MonitorInfo, len(f.monitors))
	copy(out, f.monitors)
	return out, nil
}

func (f *Fake) QueryMeta(id tree.WindowId) (rules.WindowMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meta[id], nil
}

func (f *Fake) Events() <-chan Event { return f.events }

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

// Inject pushes ev onto the backend's event channel, as a test harness
// simulating an OS notification would.
func (f *Fake) Inject(ev Event) {
	f.mu.Lock()
	if ev.Kind == EventWindowCreated {
		f.meta[ev.Window] = ev.Meta
	}
	f.mu.Unlock()
	f.events <- ev
}

// SetMonitors replaces the monitor list Fake reports, for exercising
// MonitorsChanged migration paths in tests.
func (f *Fake) SetMonitors(monitors []MonitorInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monitors = monitors
}

// GeometryCalls returns a copy of every ApplyGeometry call recorded so
// far, for test assertions.
func (f *Fake) GeometryCalls() []GeometryCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GeometryCall, len(f.geometry))
	copy(out, f.geometry)
	return out
}

// RegisteredChords returns the chord strings currently registered.
func (f *Fake) RegisteredChords() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.chords))
	for c := range f.chords {
		out = append(out, c)
	}
	return out
}
