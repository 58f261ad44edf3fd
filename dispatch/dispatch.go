// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch implements the Dispatcher (C7): Dome's single
// event loop. It drains PlatformBackend events, IpcServer commands and
// ConfigReload notifications in FIFO order, applies each to World via
// the CommandExecutor, recomputes LayoutPlan diffs for touched
// workspaces, and submits the result to PlatformBackend/Decorator
// (spec.md §4.6). The Dispatcher is the sole mutator of World (spec.md
// §4.6: "Other components see only snapshots passed by value"),
// mirroring the single-goroutine-owns-shared-state role the teacher's
// render-window event loop plays for one OS window's event deque,
// generalized here to one desktop's worth of windows.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/l0ngvh/Dome/command"
	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/decor"
	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/executor"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/ipc"
	"github.com/l0ngvh/Dome/keymap"
	"github.com/l0ngvh/Dome/layout"
	"github.com/l0ngvh/Dome/platform"
	"github.com/l0ngvh/Dome/rules"
	"github.com/l0ngvh/Dome/tree"
	"github.com/l0ngvh/Dome/world"
)

// maxGeometryFailures is the consecutive-failure threshold before a
// window is quarantined (spec.md §7: "Three consecutive backend
// failures on the same window mark it quarantined").
const maxGeometryFailures = 3

// Dispatcher owns World and every other live component, and is the
// only goroutine that ever mutates World (spec.md §5 "Scheduling").
type Dispatcher struct {
	World    *world.World
	Executor *executor.Executor
	Backend  platform.Backend
	Decor    decor.Decorator
	Config   *config.Config

	keymap  *keymap.Registry
	ipc     *ipc.Server
	watcher *config.Watcher

	platformKey string
	meta        map[tree.WindowId]rules.WindowMeta
	failures    map[tree.WindowId]int
	quarantined map[tree.WindowId]bool

	exiting bool
}

// New returns a Dispatcher over w, reachable through backend and
// decorator, starting from cfg.
func New(w *world.World, backend platform.Backend, decorator decor.Decorator, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		World:       w,
		Executor:    executor.New(w),
		Backend:     backend,
		Decor:       decorator,
		Config:      cfg,
		platformKey: platformKey(),
		meta:        make(map[tree.WindowId]rules.WindowMeta),
		failures:    make(map[tree.WindowId]int),
		quarantined: make(map[tree.WindowId]bool),
	}
}

// platformKey maps runtime.GOOS to the config platform table name
// spec.md §6 uses ("macos"/"windows"/"linux").
func platformKey() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

// AttachIPC wires an [ipc.Server]'s request channel into the loop.
func (d *Dispatcher) AttachIPC(s *ipc.Server) { d.ipc = s }

// AttachConfigWatcher wires a [config.Watcher]'s reload channel into
// the loop.
func (d *Dispatcher) AttachConfigWatcher(w *config.Watcher) { d.watcher = w }

// AttachKeymap registers reg's chords with the backend and uses it for
// subsequent KeyChord events.
func (d *Dispatcher) AttachKeymap(reg *keymap.Registry) error {
	for _, c := range reg.Chords() {
		if err := d.Backend.RegisterKeyChord(c); err != nil {
			return domeerrors.Wrap(domeerrors.BackendError, err, "registering chord "+c)
		}
	}
	d.keymap = reg
	return nil
}

// Run drains every attached source until ctx is cancelled, the
// backend's event channel closes, or an `exit` command runs (spec.md
// §4.6, §5 "Scheduling"). Sources with nothing attached contribute a
// nil channel, which never fires in the select below.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		var ipcCh <-chan ipc.Request
		if d.ipc != nil {
			ipcCh = d.ipc.Requests()
		}
		var cfgCh <-chan config.ReloadEvent
		if d.watcher != nil {
			cfgCh = d.watcher.Events()
		}

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-d.Backend.Events():
			if !ok {
				return nil
			}
			d.handleBackendEvent(ev)
		case req, ok := <-ipcCh:
			if ok {
				req.Reply <- d.handleIPCLine(req.Line)
			}
		case ev, ok := <-cfgCh:
			if ok {
				d.handleConfigReload(ev)
			}
		}
		if d.exiting {
			return nil
		}
	}
}

func (d *Dispatcher) handleBackendEvent(ev platform.Event) {
	switch ev.Kind {
	case platform.EventWindowCreated:
		d.meta[ev.Window] = ev.Meta
		decision := d.Config.RuleSet(d.platformKey).Evaluate(ev.Meta)
		res, err := d.Executor.HandleWindowCreated(ev.Window, decision)
		d.finish(res, err)
	case platform.EventWindowDestroyed:
		delete(d.meta, ev.Window)
		delete(d.failures, ev.Window)
		delete(d.quarantined, ev.Window)
		res, err := d.Executor.HandleWindowDestroyed(ev.Window)
		d.finish(res, err)
		if err := d.Decor.Clear(ev.Window); err != nil {
			slog.Error("clearing decorations", "window", ev.Window, "error", err)
		}
	case platform.EventWindowFocused:
		res, err := d.Executor.HandleWindowFocused(ev.Window)
		d.finish(res, err)
	case platform.EventWindowMoved:
		res, err := d.Executor.HandleWindowMoved(ev.Window, ev.Rect)
		d.finish(res, err)
	case platform.EventMonitorsChanged:
		d.World.HandleMonitorsChanged(toMonitorList(ev.Monitors))
		d.relayoutEverything()
	case platform.EventKeyChord:
		d.runChord(ev.ChordString)
	}
}

func toMonitorList(infos []platform.MonitorInfo) []struct {
	ID       world.MonitorId
	WorkArea geom.Rect
} {
	out := make([]struct {
		ID       world.MonitorId
		WorkArea geom.Rect
	}, len(infos))
	for i, m := range infos {
		out[i].ID = world.MonitorId(m.ID)
		out[i].WorkArea = m.WorkArea
	}
	return out
}

// runChord executes chordString's bound command list in order,
// aborting on first failure (spec.md §6 "aborting on first failure").
func (d *Dispatcher) runChord(chordString string) {
	if d.keymap == nil {
		return
	}
	cmds, ok := d.keymap.Lookup(chordString)
	if !ok {
		return
	}
	for _, cmd := range cmds {
		res, err := d.Executor.Execute(cmd)
		if err != nil {
			slog.Warn("chord command failed", "chord", chordString, "command", cmd.String(), "error", err)
			return
		}
		d.apply(res)
		if d.exiting {
			return
		}
	}
}

// handleIPCLine parses and runs one command line, returning the reply
// text (spec.md §6 "reply is OK or ERR: <msg>").
func (d *Dispatcher) handleIPCLine(line string) string {
	cmd, err := command.Parse(line)
	if err != nil {
		return command.FormatIPCError(err)
	}
	switch cmd.Kind {
	case command.KindStatus:
		return "OK: " + d.status()
	case command.KindTree:
		return "OK: " + escapeNewlines(d.treeDump())
	case command.KindReload:
		return d.reload()
	case command.KindLaunch:
		return command.FormatIPCError(domeerrors.Newf(domeerrors.ParseError, "launch must be run before a server is listening"))
	default:
		res, err := d.Executor.Execute(cmd)
		if err != nil {
			return command.FormatIPCError(err)
		}
		d.apply(res)
		return "OK"
	}
}

func (d *Dispatcher) handleConfigReload(ev config.ReloadEvent) {
	if ev.Err != nil {
		slog.Error("config reload failed, keeping previous config", "error", ev.Err)
		return
	}
	d.applyConfig(ev.Config)
}

func (d *Dispatcher) reload() string {
	if d.watcher == nil {
		return command.FormatIPCError(domeerrors.Newf(domeerrors.IoError, "no config file to reload"))
	}
	cfg, err := config.Load(d.watcher.Path())
	if err != nil {
		return command.FormatIPCError(err)
	}
	d.applyConfig(cfg)
	return "OK"
}

func (d *Dispatcher) applyConfig(cfg *config.Config) {
	d.Config = cfg
	d.relayoutEverything()
}

// finish logs a lifecycle handler's error (these never come from user
// input, so there is no IPC caller to report to) and applies its
// result.
func (d *Dispatcher) finish(res executor.Result, err error) {
	if err != nil {
		slog.Error("applying window event", "error", err)
		return
	}
	d.apply(res)
}

// apply submits res to the backend and decorator: relayout for every
// touched workspace, hide/show bookkeeping, focus intent, and side
// effects (spec.md §4.6 steps 2-3).
func (d *Dispatcher) apply(res executor.Result) {
	for _, t := range res.Touched {
		d.relayout(t)
	}
	for _, w := range res.Hidden {
		if err := d.Backend.ApplyGeometry(w, geom.Rect{}, false); err != nil {
			slog.Error("hiding window", "window", w, "error", err)
		}
	}
	if res.HasFocus {
		if err := d.Backend.Raise(res.FocusIntent); err != nil {
			slog.Error("raising window", "window", res.FocusIntent, "error", err)
		}
		if err := d.Backend.Focus(res.FocusIntent); err != nil {
			slog.Error("focusing window", "window", res.FocusIntent, "error", err)
		}
	}
	for _, se := range res.SideEffects {
		d.runSideEffect(se)
	}
}

func (d *Dispatcher) runSideEffect(se executor.SideEffect) {
	switch se.Kind {
	case executor.SideEffectExec:
		if len(se.Argv) == 0 {
			return
		}
		// Spawned detached: spec.md §5 "long operations (exec) are
		// spawned detached", so a slow or hung child never blocks the
		// loop thread.
		cmd := exec.Command(se.Argv[0], se.Argv[1:]...)
		if err := cmd.Start(); err != nil {
			slog.Error("exec failed", "argv", se.Argv, "error", err)
			return
		}
		go func() { _ = cmd.Wait() }()
	case executor.SideEffectExit:
		d.exiting = true
	}
}

// relayout recomputes t's LayoutPlan and submits geometry/decoration
// updates for every window in it.
func (d *Dispatcher) relayout(t executor.Touched) {
	m, _, ok := d.World.FindMonitorByID(t.Monitor)
	if !ok {
		return
	}
	ws, _, ok := m.WorkspaceByName(t.Workspace)
	if !ok {
		return
	}
	plan := layout.Compute(d.World.Arena, ws.Root, ws.Floats, d.World.FocusedLeaf, m.WorkArea, d.Config)
	d.submitPlan(plan, ws)
}

// relayoutEverything recomputes every monitor's active workspace,
// used after a MonitorsChanged or config reload since either can
// change every workspace's decorations or geometry bounds at once.
func (d *Dispatcher) relayoutEverything() {
	for _, m := range d.World.Monitors {
		ws := m.Active()
		plan := layout.Compute(d.World.Arena, ws.Root, ws.Floats, d.World.FocusedLeaf, m.WorkArea, d.Config)
		d.submitPlan(plan, ws)
	}
}

func (d *Dispatcher) submitPlan(plan *layout.Plan, ws *world.Workspace) {
	for window, placement := range plan.Windows {
		if d.quarantined[window] {
			continue
		}
		if err := d.Backend.ApplyGeometry(window, placement.Rect, placement.Visible); err != nil {
			d.recordFailure(window, err)
			continue
		}
		d.failures[window] = 0
	}
	d.submitDecor(plan, ws)
}

func (d *Dispatcher) recordFailure(window tree.WindowId, err error) {
	slog.Error("apply_geometry failed", "window", window, "error", err)
	d.failures[window]++
	if d.failures[window] >= maxGeometryFailures {
		d.quarantined[window] = true
		slog.Warn("window quarantined after repeated backend failures", "window", window)
	}
}

// submitDecor derives focus-border and tab-bar decorations from plan
// and the live tree shape for ws (spec.md §4.6 "submit decoration
// updates to Decorator").
func (d *Dispatcher) submitDecor(plan *layout.Plan, ws *world.Workspace) {
	a := d.World.Arena
	focusedWindow := tree.WindowId(0)
	hasFocus := false
	if d.World.FocusedLeaf != tree.NoNode {
		if n, ok := a.Get(d.World.FocusedLeaf); ok && n.IsLeaf() {
			focusedWindow, hasFocus = n.Leaf.Window, true
		}
	}

	for _, leaf := range a.Leaves(ws.Root) {
		n := a.MustGet(leaf)
		placement, ok := plan.Windows[n.Leaf.Window]
		if !ok || !placement.Visible {
			continue
		}
		focused := hasFocus && n.Leaf.Window == focusedWindow
		color := d.Config.BorderColor
		if focused {
			color = d.Config.FocusedColor
		}
		b := decor.Border{Window: n.Leaf.Window, Rect: placement.Rect, Width: d.Config.BorderSize, Color: color, Focused: focused}
		if err := d.Decor.UpdateBorder(b); err != nil {
			slog.Error("updating border", "window", n.Leaf.Window, "error", err)
		}
	}

	a.Walk(ws.Root, func(n *tree.Node) {
		if n.Kind != tree.KindTabbed {
			return
		}
		d.submitTabBar(n, plan)
	})
}

func (d *Dispatcher) submitTabBar(n *tree.Node, plan *layout.Plan) {
	a := d.World.Arena
	activeRect, ok := firstWindowRect(a, n.Children[n.ActiveChild], plan)
	if !ok {
		return
	}
	rect := geom.Rect{X: activeRect.X, Y: activeRect.Y - d.Config.TabBarHeight, W: activeRect.W, H: d.Config.TabBarHeight}

	tabs := make([]decor.Tab, 0, len(n.Children))
	for i, child := range n.Children {
		leaf, ok := firstLeaf(a, child)
		if !ok {
			continue
		}
		window := a.MustGet(leaf).Leaf.Window
		tabs = append(tabs, decor.Tab{Window: window, Title: d.meta[window].Title, Active: i == n.ActiveChild})
	}

	t := decor.TabBar{Container: n.ID, Rect: rect, Tabs: tabs, Background: d.Config.TabBarBackgroundColor, ActiveTab: d.Config.ActiveTabBackgroundColor}
	if err := d.Decor.UpdateTabBar(t); err != nil {
		slog.Error("updating tab bar", "container", n.ID, "error", err)
	}
}

// firstLeaf returns the first leaf reachable from root.
func firstLeaf(a *tree.Arena, root tree.NodeId) (tree.NodeId, bool) {
	leaves := a.Leaves(root)
	if len(leaves) == 0 {
		return tree.NoNode, false
	}
	return leaves[0], true
}

// firstWindowRect returns the plan rect of the first leaf reachable
// from root, used to approximate a Tabbed container's own on-screen
// rect (layout.Plan only tracks per-window placements, not
// per-container ones, since no consumer other than the tab bar needed
// container rects).
func firstWindowRect(a *tree.Arena, root tree.NodeId, plan *layout.Plan) (geom.Rect, bool) {
	leaf, ok := firstLeaf(a, root)
	if !ok {
		return geom.Rect{}, false
	}
	window := a.MustGet(leaf).Leaf.Window
	placement, ok := plan.Windows[window]
	if !ok {
		return geom.Rect{}, false
	}
	return placement.Rect, true
}

// status renders spec.md §4.a's one-line `status` reply.
func (d *Dispatcher) status() string {
	m := d.World.FocusedMon()
	ws := m.Active()
	focusedWindow := "none"
	if d.World.FocusedLeaf != tree.NoNode {
		if n, ok := d.World.Arena.Get(d.World.FocusedLeaf); ok && n.IsLeaf() {
			focusedWindow = fmt.Sprintf("%d", n.Leaf.Window)
		}
	}
	return fmt.Sprintf("%d monitor(s), focused workspace %q, focused window %s", len(d.World.Monitors), ws.Name, focusedWindow)
}

// treeDump renders an indented text dump of the focused workspace's
// container tree (spec.md §4.a "tree").
func (d *Dispatcher) treeDump() string {
	ws := d.World.FocusedMon().Active()
	var b strings.Builder
	dumpNode(&b, d.World.Arena, ws.Root, 0)
	return strings.TrimRight(b.String(), "\n")
}

func dumpNode(b *strings.Builder, a *tree.Arena, id tree.NodeId, depth int) {
	n, ok := a.Get(id)
	if !ok {
		return
	}
	fmt.Fprint(b, strings.Repeat("  ", depth))
	if n.IsLeaf() {
		fmt.Fprintf(b, "leaf window=%d floating=%v\n", n.Leaf.Window, n.Leaf.Floating)
		return
	}
	fmt.Fprintf(b, "%s\n", n.Kind.String())
	for _, c := range n.Children {
		dumpNode(b, a, c, depth+1)
	}
}

// escapeNewlines folds a multi-line dump into a single wire-level IPC
// reply line, as DESIGN.md's "IPC transport line protocol" note
// describes for the `tree` verb (SPEC_FULL.md §4.a); the CLI client
// reverses this before display.
func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// UnescapeNewlines reverses [escapeNewlines] for display, used by the
// CLI client.
func UnescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
