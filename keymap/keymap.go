// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keymap parses the chord grammar of spec.md §6 ("modifiers
// from {cmd/win/super, ctrl, alt/opt, shift} joined by '+', followed
// by one key token") and binds chords to ordered command lists loaded
// from [config.Config.Keymaps]. The chord representation and
// normalize-then-join approach is grounded on
// `events/key/chord.go`'s `NewChord`/`PlatformChord`/`Decode`, adapted
// from a rune+keycode pair to the already-decoded `chord_string` a
// PlatformBackend reports (spec.md §6 PlatformBackend.KeyChord), so
// this package only needs the chord grammar's parse/format half, not
// `events/key/modifiers.go`'s bitflag keycode decode table.
package keymap

import (
	"strings"

	"github.com/l0ngvh/Dome/command"
	"github.com/l0ngvh/Dome/config"
	domeerrors "github.com/l0ngvh/Dome/errors"
)

// Modifier is a bitflag set of chord modifiers.
type Modifier int

const (
	ModSuper Modifier = 1 << iota // cmd, win or super
	ModCtrl
	ModAlt // alt or opt
	ModShift
)

// Chord is a fully parsed key chord: a modifier set plus one key
// token (spec.md §6).
type Chord struct {
	Mods Modifier
	Key  string
}

// synonyms maps every modifier spelling accepted by the grammar to its
// canonical [Modifier] bit.
var synonyms = map[string]Modifier{
	"cmd":   ModSuper,
	"win":   ModSuper,
	"super": ModSuper,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"opt":   ModAlt,
	"shift": ModShift,
}

// ParseChord parses a chord string like "cmd+shift+h". Modifier order
// in the input does not matter; two chord strings naming the same
// modifier set and key token parse to the same Chord.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Chord{}, domeerrors.Newf(domeerrors.ParseError, "empty chord %q", s)
	}
	key := parts[len(parts)-1]
	var mods Modifier
	for _, tok := range parts[:len(parts)-1] {
		bit, ok := synonyms[tok]
		if !ok {
			return Chord{}, domeerrors.Newf(domeerrors.ParseError, "unknown modifier %q in chord %q", tok, s)
		}
		mods |= bit
	}
	return Chord{Mods: mods, Key: key}, nil
}

// String renders c back to canonical grammar text, in a fixed
// modifier order (matching `events/key/chord.go`'s own fixed-order
// ModifiersString join).
func (c Chord) String() string {
	var parts []string
	if c.Mods&ModSuper != 0 {
		parts = append(parts, "cmd")
	}
	if c.Mods&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Registry binds chords to the ordered command lists they run, in
// config order, aborting on first failure (spec.md §6: "One chord maps
// to an ordered list of commands executed in order, aborting on first
// failure").
type Registry struct {
	bindings map[Chord][]command.Command
}

// Load parses every chord string in cfg.Keymaps, returning a
// CommandError on the first malformed chord or command line.
func Load(cfg *config.Config) (*Registry, error) {
	r := &Registry{bindings: make(map[Chord][]command.Command, len(cfg.Keymaps))}
	for chordStr, lines := range cfg.Keymaps {
		chord, err := ParseChord(chordStr)
		if err != nil {
			return nil, err
		}
		cmds := make([]command.Command, 0, len(lines))
		for _, line := range lines {
			c, err := command.Parse(line)
			if err != nil {
				return nil, domeerrors.Wrap(domeerrors.ParseError, err, "keymap "+chordStr)
			}
			cmds = append(cmds, c)
		}
		r.bindings[chord] = cmds
	}
	return r, nil
}

// Lookup returns the command list bound to chordString, if any.
func (r *Registry) Lookup(chordString string) ([]command.Command, bool) {
	chord, err := ParseChord(chordString)
	if err != nil {
		return nil, false
	}
	cmds, ok := r.bindings[chord]
	return cmds, ok
}

// Chords returns every chord string this registry should ask the
// PlatformBackend to register (spec.md §6: "register_key_chord").
func (r *Registry) Chords() []string {
	out := make([]string, 0, len(r.bindings))
	for c := range r.bindings {
		out = append(out, c.String())
	}
	return out
}
