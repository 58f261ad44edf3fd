// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/mattn/go-shellwords"

	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/rules"
)

// RawRule is one [[<platform>.ignore]] / [[<platform>.on_open]] /
// [[<platform>.window_rules]] table entry. Fields are deliberately
// permissive across platforms (macOS uses app/bundle_id/title,
// Windows uses process/title per spec.md §6) rather than a field set
// keyed by platform, so one Go struct decodes every platform's table
// without reflection-driven platform dispatch.
type RawRule struct {
	App      string `toml:"app"`
	BundleID string `toml:"bundle_id"`
	Process  string `toml:"process"`
	Title    string `toml:"title"`

	// Manage is only set on window_rules entries (SPEC_FULL.md §4.a
	// compatibility fold-in); nil on ignore/on_open entries, where it
	// is implied by which table the entry lives in.
	Manage *bool    `toml:"manage"`
	Run    []string `toml:"run"`
}

func (r RawRule) compile() (rules.Rule, error) {
	var out rules.Rule
	var err error
	if out.App, err = rules.ParseField(r.App); err != nil {
		return out, err
	}
	if out.BundleID, err = rules.ParseField(r.BundleID); err != nil {
		return out, err
	}
	if out.Process, err = rules.ParseField(r.Process); err != nil {
		return out, err
	}
	if out.Title, err = rules.ParseField(r.Title); err != nil {
		return out, err
	}
	if out.Run, err = compileRun(r.Run); err != nil {
		return out, err
	}
	return out, nil
}

// compileRun splits each raw on_open.run entry (a full shell command,
// e.g. "open -a Mail") into argv via github.com/mattn/go-shellwords,
// the same quoting rules the `exec` grammar verb uses
// (command/command.go's parseExec), so a rule's run list becomes a
// list of ready-to-exec argv slices rather than raw strings a caller
// would have to re-split (spec.md §6 "`run: [commands]` for on_open").
func compileRun(raw []string) ([][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([][]string, 0, len(raw))
	for _, cmdStr := range raw {
		argv, err := shellwords.Parse(cmdStr)
		if err != nil {
			return nil, domeerrors.Wrap(domeerrors.ParseError, err, "parsing on_open run command "+cmdStr)
		}
		if len(argv) == 0 {
			continue
		}
		out = append(out, argv)
	}
	return out, nil
}

// PlatformConfig is one platform's rule tables.
type PlatformConfig struct {
	Ignore      []RawRule `toml:"ignore"`
	OnOpen      []RawRule `toml:"on_open"`
	WindowRules []RawRule `toml:"window_rules"`
}

// compile builds a [rules.RuleSet] from pc, folding any window_rules
// entries into ignore/on_open per SPEC_FULL.md §4.a: manage=false
// becomes an ignore rule, manage=true (or unset) becomes an on_open
// rule when it carries a run list.
func (pc PlatformConfig) compile() (*rules.RuleSet, error) {
	rs := &rules.RuleSet{}
	for _, raw := range pc.Ignore {
		r, err := raw.compile()
		if err != nil {
			return nil, err
		}
		rs.Ignore = append(rs.Ignore, r)
	}
	for _, raw := range pc.OnOpen {
		r, err := raw.compile()
		if err != nil {
			return nil, err
		}
		rs.OnOpen = append(rs.OnOpen, r)
	}
	for _, raw := range pc.WindowRules {
		r, err := raw.compile()
		if err != nil {
			return nil, err
		}
		if raw.Manage != nil && !*raw.Manage {
			rs.Ignore = append(rs.Ignore, r)
		} else if len(r.Run) > 0 {
			rs.OnOpen = append(rs.OnOpen, r)
		}
	}
	return rs, nil
}

// compileRules builds c.rulesByPlatform from MacOS/Windows/Linux.
func (c *Config) compileRules() error {
	c.rulesByPlatform = make(map[string]*rules.RuleSet, 3)
	for name, pc := range map[string]PlatformConfig{
		"macos":   c.MacOS,
		"windows": c.Windows,
		"linux":   c.Linux,
	} {
		rs, err := pc.compile()
		if err != nil {
			return err
		}
		c.rulesByPlatform[name] = rs
	}
	return nil
}
