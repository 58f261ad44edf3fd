// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules implements the RuleEngine (C5): matching
// newly-discovered windows against config-driven ignore/on_open rules
// (spec.md §4.4). It is stateless with respect to the tree — it only
// classifies a [WindowMeta] against a [RuleSet] and returns a
// [Decision]; tracking which WindowIds are currently ignored is the
// caller's job (spec.md: "its WindowId is recorded in an 'ignored'
// set", held by the dispatcher/world layer).
package rules

import (
	"regexp"
	"strings"

	domeerrors "github.com/l0ngvh/Dome/errors"
)

// WindowMeta is the window metadata reported by PlatformBackend on
// WindowCreated (spec.md §6), used as the matching input.
type WindowMeta struct {
	App      string
	BundleID string
	Process  string
	Title    string
}

// Field is a single rule field: a literal exact match, or (if the
// config value was wrapped in /…/) a compiled regex (spec.md §4.4).
type Field struct {
	literal string
	re      *regexp.Regexp
}

// ParseField builds a Field from a raw config string. A value wrapped
// in slashes, e.g. "/Chrome.*/", compiles as a regex; anything else is
// a case-sensitive exact match.
func ParseField(raw string) (Field, error) {
	if len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		pattern := raw[1 : len(raw)-1]
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Field{}, domeerrors.Wrap(domeerrors.RuleMatchError, err, "invalid rule regex "+raw)
		}
		return Field{re: re}, nil
	}
	return Field{literal: raw}, nil
}

// Match reports whether value satisfies f. An empty Field is
// considered a wildcard (unset field in a rule table matches
// anything).
func (f Field) Match(value string) bool {
	if f.re != nil {
		return f.re.MatchString(value)
	}
	if f.literal == "" {
		return true
	}
	return f.literal == value
}

func (f Field) isSet() bool { return f.re != nil || f.literal != "" }

// Rule is one [[<platform>.ignore]] or [[<platform>.on_open]] entry.
// Every field is compiled from whatever the config entry sets, on any
// platform; spec.md §6 documents macOS = {app, bundle_id, title} and
// Windows = {process, title}.
type Rule struct {
	App      Field
	BundleID Field
	Process  Field
	Title    Field

	// Run is this rule's on_open commands, in config order: each
	// entry is one command's argv, already shell-split by
	// config.RawRule.compile (spec.md §6 "`run: [commands]` for
	// on_open"). Unused on ignore rules.
	Run [][]string
}

// Matches reports whether every set field of r matches meta. An
// unset field matches anything.
func (r Rule) Matches(meta WindowMeta) bool {
	return r.App.Match(meta.App) &&
		r.BundleID.Match(meta.BundleID) &&
		r.Process.Match(meta.Process) &&
		r.Title.Match(meta.Title)
}

// RuleSet is one platform's compiled ignore/on_open rule lists, in
// config order.
type RuleSet struct {
	Ignore []Rule
	OnOpen []Rule
}

// Decision is the RuleEngine's verdict for a newly-discovered window.
type Decision struct {
	Manage bool
	// Run collects, in config order, every on_open rule's commands
	// for rules that matched (spec.md §4.4: "all matching on_open
	// rules run in config order"); each entry is one command's argv.
	Run [][]string
}

// Evaluate matches meta against rs per spec.md §4.4: first-match for
// ignore, then every matching on_open rule in order.
func (rs RuleSet) Evaluate(meta WindowMeta) Decision {
	for _, r := range rs.Ignore {
		if r.Matches(meta) {
			return Decision{Manage: false}
		}
	}
	d := Decision{Manage: true}
	for _, r := range rs.OnOpen {
		if r.Matches(meta) && len(r.Run) > 0 {
			d.Run = append(d.Run, r.Run...)
		}
	}
	return d
}
