// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses Dome's keyed-text configuration file (TOML,
// via github.com/pelletier/go-toml/v2 — the teacher's own dependency
// for its `goki.toml`/`core.toml` config, per `_teacher/cmd/root.go`)
// into a typed [Config], and watches it for changes via
// github.com/fsnotify/fsnotify, re-emitting a parsed [Config] on
// write (spec.md §6, §9).
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/rules"
)

// Config is the typed form of config.toml (spec.md §6 "Recognized
// options").
type Config struct {
	BorderSize      float64 `toml:"border_size"`
	AutomaticTiling bool    `toml:"automatic_tiling"`

	MinWidth  geom.Size `toml:"min_width"`
	MinHeight geom.Size `toml:"min_height"`
	MaxWidth  geom.Size `toml:"max_width"`
	MaxHeight geom.Size `toml:"max_height"`

	// TabBarHeight is used by the layout engine (spec.md §4.2) even
	// though it is not named in §6's "Recognized options" list.
	TabBarHeight float64 `toml:"tab_bar_height"`

	FocusedColor             HexColor `toml:"focused_color"`
	BorderColor              HexColor `toml:"border_color"`
	TabBarBackgroundColor    HexColor `toml:"tab_bar_background_color"`
	ActiveTabBackgroundColor HexColor `toml:"active_tab_background_color"`

	// Keymaps maps a chord string, e.g. "cmd+shift+h", to an ordered
	// list of command grammar lines (spec.md §6).
	Keymaps map[string][]string `toml:"keymaps"`

	MacOS   PlatformConfig `toml:"macos"`
	Windows PlatformConfig `toml:"windows"`
	Linux   PlatformConfig `toml:"linux"`

	// rulesByPlatform holds the compiled form of MacOS/Windows/Linux,
	// built by compileRules at load time.
	rulesByPlatform map[string]*rules.RuleSet
}

// Default returns the configuration Dome starts with before any
// config.toml is found, matching the scenario defaults in spec.md §8
// (S1/S6 use border_size=2).
func Default() *Config {
	cfg := &Config{
		BorderSize:   2,
		TabBarHeight: 24,
		MinWidth:     geom.Size{Value: 20},
		MinHeight:    geom.Size{Value: 20},
		FocusedColor: HexColor{R: 0x5e, G: 0x81, B: 0xac},
		BorderColor:  HexColor{R: 0x3b, G: 0x42, B: 0x52},
	}
	cfg.compileRules()
	return cfg
}

// Parse decodes raw TOML bytes into a Config seeded with [Default]'s
// values (so an incomplete config.toml still has sane fallbacks), and
// compiles its rule tables.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.rulesByPlatform = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, domeerrors.Wrap(domeerrors.ParseError, err, "parsing config")
	}
	if err := cfg.compileRules(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domeerrors.Wrap(domeerrors.IoError, err, "reading config "+path)
	}
	return Parse(data)
}

// RuleSet returns the compiled ignore/on_open rules for platform
// ("macos", "windows" or "linux"), or an empty RuleSet if none are
// configured.
func (c *Config) RuleSet(platform string) *rules.RuleSet {
	if rs, ok := c.rulesByPlatform[platform]; ok {
		return rs
	}
	return &rules.RuleSet{}
}

// DefaultConfigPath returns the default config file location,
// "~/.config/dome/config.toml" (spec.md §6), honoring $HOME.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", domeerrors.Wrap(domeerrors.IoError, err, "resolving home directory")
	}
	return home + "/.config/dome/config.toml", nil
}
