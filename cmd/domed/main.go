// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command domed is Dome's daemon: it wires a PlatformBackend, a
// Decorator, the parsed config.toml and an IpcServer into a
// [dispatch.Dispatcher] and runs its event loop until asked to exit or
// the process receives SIGINT/SIGTERM. Startup sequencing is grounded
// on `_teacher/cmd/root.go`'s cobra rootCmd/RunE shape, generalized
// from one GUI app's `cli.Run` bootstrap to Dome's own
// backend/decorator/config/IPC wiring (spec.md §4.6, §9).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/l0ngvh/Dome/config"
	"github.com/l0ngvh/Dome/decor"
	"github.com/l0ngvh/Dome/dispatch"
	"github.com/l0ngvh/Dome/geom"
	"github.com/l0ngvh/Dome/ipc"
	"github.com/l0ngvh/Dome/keymap"
	"github.com/l0ngvh/Dome/platform"
	"github.com/l0ngvh/Dome/world"
)

var (
	configPath string
	socketPath string
	backend    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "domed",
	Short:         "domed is Dome's tiling window manager daemon",
	Long:          "domed owns the window tree, lays out every workspace and exposes a local socket for the dome CLI client.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config.toml path (default ~/.config/dome/config.toml)")
	rootCmd.Flags().StringVar(&socketPath, "socket", "", "override the IPC socket path")
	rootCmd.Flags().StringVar(&backend, "backend", "fake", "PlatformBackend to use (only \"fake\" is built in; spec.md §1 Non-goals excludes a real OS backend)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "log every decoration update in addition to lifecycle events")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	be, err := newBackend(backend)
	if err != nil {
		return err
	}
	defer be.Close()

	decorator := decor.Decorator(decor.NoOp{})
	if verbose {
		decorator = decor.Logging{}
		// decor.Logging logs at Debug, below the default handler's level.
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	w, err := newWorld(be)
	if err != nil {
		return err
	}

	d := dispatch.New(w, be, decorator, cfg)

	reg, err := keymap.Load(cfg)
	if err != nil {
		return err
	}
	if err := d.AttachKeymap(reg); err != nil {
		return err
	}

	sockPath := socketPath
	if sockPath == "" {
		sockPath = ipc.DefaultSocketPath()
	}
	server, err := ipc.Listen(sockPath)
	if err != nil {
		return err
	}
	defer server.Close()
	d.AttachIPC(server)
	slog.Info("listening for dome commands", "socket", sockPath)

	if path != "" {
		watcher, err := config.NewWatcher(path)
		if err != nil {
			slog.Warn("config hot-reload disabled", "path", path, "error", err)
		} else {
			defer watcher.Close()
			d.AttachConfigWatcher(watcher)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	slog.Info("domed started")
	return d.Run(ctx)
}

// loadConfig resolves --config (or spec.md §6's default path), falls
// back to [config.Default] when no file exists yet (a fresh install has
// no config.toml, not an error), and returns the path actually used so
// run can decide whether to start a [config.Watcher] on it.
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = defaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(errRootCause(err)) {
			slog.Info("no config file found, using defaults", "path", path)
			return config.Default(), "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

// errRootCause unwraps to the underlying *os.PathError config.Load
// wraps, so loadConfig can distinguish "file missing" from "file
// unreadable or malformed".
func errRootCause(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

// newBackend constructs the requested PlatformBackend. Only "fake" is
// built in (spec.md §1 Non-goals excludes a real Cocoa/X11/Win32
// backend); a real backend would be selected here too, the same seam
// the teacher's own per-OS `system.App` construction uses.
func newBackend(name string) (platform.Backend, error) {
	switch name {
	case "fake", "":
		return platform.NewFake(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (only \"fake\" is built in)", name)
	}
}

// newWorld seeds a [world.World] from the backend's current monitor
// list: the first monitor seeds [world.New], and any remaining
// monitors are added through the same HandleMonitorsChanged path a
// live MonitorsChanged event would use.
func newWorld(be platform.Backend) (*world.World, error) {
	monitors, err := be.EnumerateMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return world.New("primary", geom.Rect{W: 1920, H: 1080}), nil
	}
	w := world.New(world.MonitorId(monitors[0].ID), monitors[0].WorkArea)
	if len(monitors) > 1 {
		list := make([]struct {
			ID       world.MonitorId
			WorkArea geom.Rect
		}, len(monitors))
		for i, m := range monitors {
			list[i].ID = world.MonitorId(m.ID)
			list[i].WorkArea = m.WorkArea
		}
		w.HandleMonitorsChanged(list)
	}
	return w, nil
}
