// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements Dome's tagged Command union and the
// shared CLI/IPC line grammar (spec.md §6), reused by cmd/dome,
// cmd/domed's keymap dispatch and the ipc server ("Parsing reuses the
// CLI grammar", spec.md §4.7). Shell-style tokenization for exec's
// argument and for future multi-word extensions is delegated to
// github.com/mattn/go-shellwords, the same quoting rules a user
// expects from a shell-facing config value.
package command

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/geom"
)

// Kind tags which variant of Command a value holds.
type Kind int

const (
	KindFocusDirection Kind = iota
	KindFocusParent
	KindFocusTab // Next or Prev, see Command.TabDelta
	KindFocusWorkspace
	KindFocusMonitor
	KindMoveDirection
	KindMoveWorkspace
	KindMoveMonitor
	KindToggleSpawnDirection
	KindToggleDirection
	KindToggleLayout
	KindToggleFloat
	KindExec
	KindExit
	KindLaunch
	// KindStatus, KindTree and KindReload are SPEC_FULL.md §4.a's
	// read-only introspection/admin verbs, dispatched directly by the
	// Dispatcher rather than through CommandExecutor.
	KindStatus
	KindTree
	KindReload
)

// Command is the tagged union parsed from one CLI/IPC grammar line
// (spec.md §3 Entities, §6 grammar).
type Command struct {
	Kind Kind

	Direction geom.Direction // Focus/MoveDirection, FocusMonitor/MoveMonitor by direction
	TabDelta  int            // FocusTab: +1 next_tab, -1 prev_tab

	Name string // FocusWorkspace/MoveWorkspace, FocusMonitor/MoveMonitor by name

	Argv []string // Exec's argv, already shell-split

	ConfigPath string // Launch's --config override, "" if unset
}

// String renders c back to grammar text, used for logging and for the
// config keymap's per-chord command list.
func (c Command) String() string {
	switch c.Kind {
	case KindFocusDirection:
		return "focus " + c.Direction.String()
	case KindFocusParent:
		return "focus parent"
	case KindFocusTab:
		if c.TabDelta < 0 {
			return "focus prev_tab"
		}
		return "focus next_tab"
	case KindFocusWorkspace:
		return "focus workspace " + c.Name
	case KindFocusMonitor:
		return "focus monitor " + c.monitorTarget()
	case KindMoveDirection:
		return "move " + c.Direction.String()
	case KindMoveWorkspace:
		return "move workspace " + c.Name
	case KindMoveMonitor:
		return "move monitor " + c.monitorTarget()
	case KindToggleSpawnDirection:
		return "toggle spawn_direction"
	case KindToggleDirection:
		return "toggle direction"
	case KindToggleLayout:
		return "toggle layout"
	case KindToggleFloat:
		return "toggle float"
	case KindExec:
		return "exec " + strings.Join(c.Argv, " ")
	case KindExit:
		return "exit"
	case KindLaunch:
		if c.ConfigPath != "" {
			return "launch --config " + c.ConfigPath
		}
		return "launch"
	case KindStatus:
		return "status"
	case KindTree:
		return "tree"
	case KindReload:
		return "reload"
	default:
		return "unknown"
	}
}

func (c Command) monitorTarget() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Direction.String()
}

// Parse parses one grammar line (spec.md §6 "CLI / IPC command
// grammar"). Leading/trailing whitespace is ignored; an empty line is
// a ParseError.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "empty command")
	}
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "focus":
		return parseFocus(args)
	case "move":
		return parseMove(args)
	case "toggle":
		return parseToggle(args)
	case "exec":
		return parseExec(line)
	case "exit":
		return requireNoArgs(Command{Kind: KindExit}, args)
	case "launch":
		return parseLaunch(args)
	case "status":
		return requireNoArgs(Command{Kind: KindStatus}, args)
	case "tree":
		return requireNoArgs(Command{Kind: KindTree}, args)
	case "reload":
		return requireNoArgs(Command{Kind: KindReload}, args)
	default:
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "unknown command %q", verb)
	}
}

func requireNoArgs(c Command, args []string) (Command, error) {
	if len(args) != 0 {
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "%s takes no arguments", c.Kind.verb())
	}
	return c, nil
}

func (k Kind) verb() string {
	switch k {
	case KindExit:
		return "exit"
	case KindStatus:
		return "status"
	case KindTree:
		return "tree"
	case KindReload:
		return "reload"
	default:
		return "command"
	}
}

func parseFocus(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "focus requires an argument")
	}
	switch args[0] {
	case "parent":
		return requireNoArgs(Command{Kind: KindFocusParent}, args[1:])
	case "next_tab":
		return requireNoArgs(Command{Kind: KindFocusTab, TabDelta: 1}, args[1:])
	case "prev_tab":
		return requireNoArgs(Command{Kind: KindFocusTab, TabDelta: -1}, args[1:])
	case "workspace":
		name, err := requireOneArg("focus workspace", args[1:])
		return Command{Kind: KindFocusWorkspace, Name: name}, err
	case "monitor":
		return parseMonitorTarget(KindFocusMonitor, args[1:])
	default:
		if dir, ok := geom.ParseDirection(args[0]); ok {
			return requireNoArgs(Command{Kind: KindFocusDirection, Direction: dir}, args[1:])
		}
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "unknown focus target %q", args[0])
	}
}

func parseMove(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "move requires an argument")
	}
	switch args[0] {
	case "workspace":
		name, err := requireOneArg("move workspace", args[1:])
		return Command{Kind: KindMoveWorkspace, Name: name}, err
	case "monitor":
		return parseMonitorTarget(KindMoveMonitor, args[1:])
	default:
		if dir, ok := geom.ParseDirection(args[0]); ok {
			return requireNoArgs(Command{Kind: KindMoveDirection, Direction: dir}, args[1:])
		}
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "unknown move target %q", args[0])
	}
}

func parseMonitorTarget(kind Kind, args []string) (Command, error) {
	target, err := requireOneArg("monitor target", args)
	if err != nil {
		return Command{}, err
	}
	if dir, ok := geom.ParseDirection(target); ok {
		return Command{Kind: kind, Direction: dir}, nil
	}
	return Command{Kind: kind, Name: target}, nil
}

func parseToggle(args []string) (Command, error) {
	target, err := requireOneArg("toggle", args)
	if err != nil {
		return Command{}, err
	}
	switch target {
	case "spawn_direction":
		return Command{Kind: KindToggleSpawnDirection}, nil
	case "direction":
		return Command{Kind: KindToggleDirection}, nil
	case "layout":
		return Command{Kind: KindToggleLayout}, nil
	case "float":
		return Command{Kind: KindToggleFloat}, nil
	default:
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "unknown toggle target %q", target)
	}
}

func parseExec(line string) (Command, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "exec"))
	if rest == "" {
		return Command{}, domeerrors.Newf(domeerrors.ParseError, "exec requires a command")
	}
	argv, err := shellwords.Parse(rest)
	if err != nil {
		return Command{}, domeerrors.Wrap(domeerrors.ParseError, err, "parsing exec arguments")
	}
	return Command{Kind: KindExec, Argv: argv}, nil
}

func parseLaunch(args []string) (Command, error) {
	c := Command{Kind: KindLaunch}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 >= len(args) {
				return Command{}, domeerrors.Newf(domeerrors.ParseError, "--config requires a path")
			}
			c.ConfigPath = args[i+1]
			i++
		default:
			return Command{}, domeerrors.Newf(domeerrors.ParseError, "unknown launch flag %q", args[i])
		}
	}
	return c, nil
}

func requireOneArg(what string, args []string) (string, error) {
	if len(args) != 1 {
		return "", domeerrors.Newf(domeerrors.ParseError, "%s requires exactly one argument", what)
	}
	return args[0], nil
}

// ExitCode maps a parse/execution result to the process exit codes of
// spec.md §6: 0 success, 2 parse error, 3 no running server, 4 server
// rejected command.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *domeerrors.CommandError
	if domeerrors.As(err, &ce) && ce.Kind == domeerrors.ParseError {
		return 2
	}
	return 4
}

// FormatIPCError renders err as the wire-level "ERR: <msg>" reply
// (spec.md §6 "IPC transport").
func FormatIPCError(err error) string {
	return fmt.Sprintf("ERR: %s", err)
}
