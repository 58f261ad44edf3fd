// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/config"
)

func TestParseChordModifierOrderInsensitive(t *testing.T) {
	a, err := ParseChord("cmd+shift+h")
	require.NoError(t, err)
	b, err := ParseChord("shift+cmd+h")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseChordSynonyms(t *testing.T) {
	a, err := ParseChord("win+ctrl+return")
	require.NoError(t, err)
	b, err := ParseChord("super+ctrl+return")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseChordUnknownModifier(t *testing.T) {
	_, err := ParseChord("meta+h")
	assert.Error(t, err)
}

func TestChordStringCanonicalOrder(t *testing.T) {
	c, err := ParseChord("shift+alt+ctrl+cmd+h")
	require.NoError(t, err)
	assert.Equal(t, "cmd+ctrl+alt+shift+h", c.String())
}

func TestLoadAndLookup(t *testing.T) {
	cfg := config.Default()
	cfg.Keymaps = map[string][]string{
		"cmd+shift+h": {"focus left", "toggle layout"},
	}
	reg, err := Load(cfg)
	require.NoError(t, err)

	cmds, ok := reg.Lookup("shift+cmd+h")
	require.True(t, ok)
	require.Len(t, cmds, 2)
	assert.Equal(t, "focus left", cmds[0].String())
	assert.Equal(t, "toggle layout", cmds[1].String())
}

func TestLoadRejectsMalformedCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Keymaps = map[string][]string{
		"cmd+h": {"frobnicate"},
	}
	_, err := Load(cfg)
	assert.Error(t, err)
}
