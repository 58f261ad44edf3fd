// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/tree"
)

func TestFakeRecordsApplyGeometry(t *testing.T) {
	f := NewFake()
	require.NoError(t, f.ApplyGeometry(1, geom.Rect{W: 100, H: 100}, true))
	calls := f.GeometryCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tree.WindowId(1), calls[0].Window)
}

func TestFakeInjectDeliversEvent(t *testing.T) {
	f := NewFake()
	f.Inject(Event{Kind: EventWindowFocused, Window: 7})
	ev := <-f.Events()
	assert.Equal(t, EventWindowFocused, ev.Kind)
}

func TestFakeRegisterUnregisterChord(t *testing.T) {
	f := NewFake()
	require.NoError(t, f.RegisterKeyChord("cmd+h"))
	assert.Contains(t, f.RegisteredChords(), "cmd+h")
	require.NoError(t, f.UnregisterKeyChord("cmd+h"))
	assert.NotContains(t, f.RegisteredChords(), "cmd+h")
}

func TestFakeSetMonitors(t *testing.T) {
	f := NewFake()
	f.SetMonitors([]MonitorInfo{{ID: "a"}, {ID: "b"}})
	got, err := f.EnumerateMonitors()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
