// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/command"
	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/decor"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/platform"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
	"github.com/l0ngvh/Dome/world"
)

func newTestDispatcher() (*Dispatcher, *platform.Fake) {
	fake := platform.NewFake()
	w := world.New("fake-0", geom.Rect{W: 1920, H: 1080})
	d := New(w, fake, decor.NoOp{}, config.Default())
	return d, fake
}

func TestWindowCreatedAppliesGeometryAndFocus(t *testing.T) {
	d, fake := newTestDispatcher()

	d.handleBackendEvent(platform.Event{
		Kind:   platform.EventWindowCreated,
		Window: 1,
		Meta:   rules.WindowMeta{App: "Terminal"},
	})

	calls := fake.GeometryCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, geom.Rect{W: 1920, H: 1080}, calls[0].Rect)
	assert.True(t, calls[0].Visible)
}

func TestIgnoreRuleDropsWindowSilently(t *testing.T) {
	d, fake := newTestDispatcher()
	cfg, err := config.Parse([]byte(`
[macos]
[[macos.ignore]]
app = "ignoreme"
[windows]
[[windows.ignore]]
app = "ignoreme"
[linux]
[[linux.ignore]]
app = "ignoreme"
`))
	require.NoError(t, err)
	d.Config = cfg

	d.handleBackendEvent(platform.Event{
		Kind:   platform.EventWindowCreated,
		Window: 9,
		Meta:   rules.WindowMeta{App: "ignoreme"},
	})

	assert.Empty(t, fake.GeometryCalls())
	assert.True(t, d.World.Ignored[9])
}

func TestStatusIPCVerb(t *testing.T) {
	d, _ := newTestDispatcher()
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 1})

	reply := d.handleIPCLine("status")
	assert.Contains(t, reply, "OK:")
	assert.Contains(t, reply, "focused window 1")
}

func TestTreeIPCVerbEscapesNewlines(t *testing.T) {
	d, _ := newTestDispatcher()
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 1})
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 2})

	reply := d.handleIPCLine("tree")
	require.True(t, len(reply) > 3)
	assert.NotContains(t, reply, "\n")
	assert.Contains(t, reply, `\n`)
}

func TestUnknownCommandReturnsParseError(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.handleIPCLine("bogus")
	assert.Contains(t, reply, "ERR:")
}

func TestFocusDirectionIPCMovesFocus(t *testing.T) {
	d, _ := newTestDispatcher()
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 1})
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 2})

	reply := d.handleIPCLine("focus left")
	assert.Equal(t, "OK", reply)
}

func TestExecSideEffectDoesNotBlock(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.handleIPCLine("exec true")
	assert.Equal(t, "OK", reply)
}

func TestExitSetsExitingFlag(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.handleIPCLine("exit")
	assert.Equal(t, "OK", reply)
	assert.True(t, d.exiting)
}

func TestWindowDestroyedClearsQuarantineBookkeeping(t *testing.T) {
	d, _ := newTestDispatcher()
	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowCreated, Window: 1})
	d.failures[1] = 2
	d.quarantined[1] = false

	d.handleBackendEvent(platform.Event{Kind: platform.EventWindowDestroyed, Window: 1})

	_, stillTracked := d.failures[1]
	assert.False(t, stillTracked)
}

func TestCommandParseErrorDoesNotTouchWorld(t *testing.T) {
	d, _ := newTestDispatcher()
	_, err := command.Parse("not a real command")
	require.Error(t, err)
	reply := d.handleIPCLine("not a real command")
	assert.Contains(t, reply, "ERR:")
	assert.Equal(t, tree.NoNode, d.World.FocusedLeaf)
}
