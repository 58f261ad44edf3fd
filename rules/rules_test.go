// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l0ngvh/Dome/rules"
)

func field(t *testing.T, raw string) rules.Field {
	t.Helper()
	f, err := rules.ParseField(raw)
	require.NoError(t, err)
	return f
}

func TestRuleSetIgnoreFirstMatchWins(t *testing.T) {
	rs := rules.RuleSet{
		Ignore: []rules.Rule{
			{App: field(t, "System Preferences")},
		},
	}
	d := rs.Evaluate(rules.WindowMeta{App: "System Preferences"})
	assert.False(t, d.Manage)
}

func TestRuleSetOnOpenRunsAllMatchesInOrder(t *testing.T) {
	rs := rules.RuleSet{
		OnOpen: []rules.Rule{
			{App: field(t, "/Chrome.*/"), Run: [][]string{{"echo", "first"}}},
			{Title: field(t, ""), Run: [][]string{{"echo", "second"}}}, // empty field = wildcard
		},
	}
	d := rs.Evaluate(rules.WindowMeta{App: "Chrome Beta", Title: "tab"})
	assert.True(t, d.Manage)
	require.Len(t, d.Run, 2)
	assert.Equal(t, []string{"echo", "first"}, d.Run[0])
	assert.Equal(t, []string{"echo", "second"}, d.Run[1])
}

func TestRuleNoMatchManages(t *testing.T) {
	rs := rules.RuleSet{Ignore: []rules.Rule{{App: field(t, "Finder")}}}
	d := rs.Evaluate(rules.WindowMeta{App: "Terminal"})
	assert.True(t, d.Manage)
	assert.Empty(t, d.Run)
}

func TestParseFieldRegexVsLiteral(t *testing.T) {
	re := field(t, "/^Te.*/")
	assert.True(t, re.Match("Terminal"))
	assert.False(t, re.Match("xTerminal"))

	lit := field(t, "Terminal")
	assert.True(t, lit.Match("Terminal"))
	assert.False(t, lit.Match("terminal"))
}

func TestParseFieldInvalidRegex(t *testing.T) {
	_, err := rules.ParseField("/([/")
	assert.Error(t, err)
}
