// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/geom"
)

func TestParseFocusDirection(t *testing.T) {
	c, err := Parse("focus left")
	require.NoError(t, err)
	assert.Equal(t, KindFocusDirection, c.Kind)
	assert.Equal(t, geom.DirLeft, c.Direction)
}

func TestParseFocusWorkspace(t *testing.T) {
	c, err := Parse("focus workspace 3")
	require.NoError(t, err)
	assert.Equal(t, KindFocusWorkspace, c.Kind)
	assert.Equal(t, "3", c.Name)
}

func TestParseFocusMonitorByDirectionAndName(t *testing.T) {
	c, err := Parse("focus monitor right")
	require.NoError(t, err)
	assert.Equal(t, geom.DirRight, c.Direction)

	c, err = Parse("focus monitor DP-1")
	require.NoError(t, err)
	assert.Equal(t, "DP-1", c.Name)
}

func TestParseFocusTabs(t *testing.T) {
	c, err := Parse("focus next_tab")
	require.NoError(t, err)
	assert.Equal(t, 1, c.TabDelta)

	c, err = Parse("focus prev_tab")
	require.NoError(t, err)
	assert.Equal(t, -1, c.TabDelta)
}

func TestParseMoveWorkspaceAndMonitor(t *testing.T) {
	c, err := Parse("move workspace 5")
	require.NoError(t, err)
	assert.Equal(t, KindMoveWorkspace, c.Kind)

	c, err = Parse("move monitor up")
	require.NoError(t, err)
	assert.Equal(t, KindMoveMonitor, c.Kind)
	assert.Equal(t, geom.DirUp, c.Direction)
}

func TestParseToggleVariants(t *testing.T) {
	for _, tc := range []struct {
		line string
		kind Kind
	}{
		{"toggle spawn_direction", KindToggleSpawnDirection},
		{"toggle direction", KindToggleDirection},
		{"toggle layout", KindToggleLayout},
		{"toggle float", KindToggleFloat},
	} {
		c, err := Parse(tc.line)
		require.NoError(t, err)
		assert.Equal(t, tc.kind, c.Kind)
	}
}

func TestParseExecSplitsArgv(t *testing.T) {
	c, err := Parse(`exec firefox --new-window "https://example.com"`)
	require.NoError(t, err)
	assert.Equal(t, KindExec, c.Kind)
	assert.Equal(t, []string{"firefox", "--new-window", "https://example.com"}, c.Argv)
}

func TestParseLaunchWithConfig(t *testing.T) {
	c, err := Parse("launch --config /tmp/dome.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dome.toml", c.ConfigPath)
}

func TestParseUnknownVerbIsParseError(t *testing.T) {
	_, err := Parse("frobnicate")
	assert.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestParseEmptyLineIsParseError(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
}

func TestStringRoundTripsSimpleCommands(t *testing.T) {
	for _, line := range []string{"focus left", "focus parent", "exit", "status", "tree", "reload"} {
		c, err := Parse(line)
		require.NoError(t, err)
		assert.Equal(t, line, c.String())
	}
}
