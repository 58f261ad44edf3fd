// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dome is the CLI client half of spec.md §6: it renders its
// arguments back to one grammar line, sends it to the running domed
// over the IpcServer socket, and maps the reply to a process exit code
// (spec.md §6 "Exit codes": 0 success, 2 parse error, 3 no running
// server, 4 server rejected command). Subcommand layout is grounded on
// `_teacher/cmd/root.go`'s cobra rootCmd/Execute split, generalized
// from one command to one subcommand per grammar verb.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domecmd "github.com/l0ngvh/Dome/command"
	"github.com/l0ngvh/Dome/dispatch"
	domeerrors "github.com/l0ngvh/Dome/errors"
	"github.com/l0ngvh/Dome/ipc"
)

var (
	socketPath string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "dome",
	Short:         "dome controls a running domed tiling window manager",
	Long:          "dome sends one command to a running domed instance over its local socket and prints the reply.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "override the domed socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Second, "how long to wait for a reply")

	rootCmd.AddCommand(
		focusCmd(),
		moveCmd(),
		toggleCmd(),
		execCmd(),
		exitCmd(),
		launchCmd(),
		statusCmd(),
		treeCmd(),
		reloadCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeForCLIError(err))
	}
}

// sendLine runs grammar line through [domecmd.Parse] to surface a
// local parse error without a round trip, then forwards it to domed
// and prints the reply, returning an error carrying the right exit
// code for [exitCodeForCLIError].
func sendLine(line string) error {
	if _, err := domecmd.Parse(line); err != nil {
		return err
	}
	path := socketPath
	if path == "" {
		path = ipc.DefaultSocketPath()
	}
	reply, err := ipc.Send(path, line, timeout)
	if err != nil {
		return domeerrors.Wrap(domeerrors.IoError, err, "no running domed server")
	}
	fmt.Println(renderReply(reply))
	if strings.HasPrefix(reply, "ERR:") {
		return domeerrors.Newf(domeerrors.BackendError, "%s", strings.TrimSpace(strings.TrimPrefix(reply, "ERR:")))
	}
	return nil
}

// renderReply strips the "OK: "/"OK" envelope for display and
// reverses the dispatcher's tree-dump newline escaping.
func renderReply(reply string) string {
	reply = strings.TrimPrefix(reply, "OK: ")
	reply = strings.TrimPrefix(reply, "OK")
	return dispatch.UnescapeNewlines(strings.TrimSpace(reply))
}

// exitCodeForCLIError maps sendLine's returned error to spec.md §6's
// exit codes: 2 for a local parse error, 3 when no domed is reachable,
// 4 when domed itself rejected the command.
func exitCodeForCLIError(err error) int {
	var ce *domeerrors.CommandError
	if domeerrors.As(err, &ce) && ce.Kind == domeerrors.IoError {
		return 3
	}
	return domecmd.ExitCode(err)
}

func focusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "focus [left|right|up|down|parent|next_tab|prev_tab|workspace NAME|monitor NAME]",
		Short: "move input focus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("focus " + strings.Join(args, " "))
		},
	}
}

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [left|right|up|down|workspace NAME|monitor NAME]",
		Short: "move the focused window",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("move " + strings.Join(args, " "))
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [spawn_direction|direction|layout|float]",
		Short: "toggle a container or window setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("toggle " + args[0])
		},
	}
}

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "exec -- PROGRAM [ARGS...]",
		Short:              "launch a program, opened into the focused workspace",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("exec " + strings.Join(args, " "))
		},
	}
}

func exitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "ask the running domed to shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("exit")
		},
	}
}

func launchCmd() *cobra.Command {
	var configPath string
	var binary string
	c := &cobra.Command{
		Use:   "launch",
		Short: "start domed if it is not already running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launch(configPath, binary)
		},
	}
	c.Flags().StringVar(&configPath, "config", "", "config.toml path to pass to domed")
	c.Flags().StringVar(&binary, "domed", "domed", "domed binary name or path to spawn")
	return c
}

// launch implements spec.md §6's "launch" verb client-side: if a
// domed is already listening, `status` succeeds and launch is a
// no-op; otherwise it spawns domed detached (like the Dispatcher's
// `exec` side effect, never blocking on the child) and polls briefly
// for the socket to come up.
func launch(configPath, binary string) error {
	path := socketPath
	if path == "" {
		path = ipc.DefaultSocketPath()
	}
	if _, err := ipc.Send(path, "status", timeout); err == nil {
		fmt.Println("domed is already running")
		return nil
	}

	binPath, err := exec.LookPath(binary)
	if err != nil {
		return domeerrors.Wrap(domeerrors.IoError, err, "locating domed binary")
	}
	args := []string{}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	cmd := exec.Command(binPath, args...)
	if err := cmd.Start(); err != nil {
		return domeerrors.Wrap(domeerrors.IoError, err, "starting domed")
	}
	go func() { _ = cmd.Wait() }()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := ipc.Send(path, "status", 200*time.Millisecond); err == nil {
			fmt.Println("domed started, pid " + strconv.Itoa(cmd.Process.Pid))
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return domeerrors.Newf(domeerrors.IoError, "domed did not come up within 3s")
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "print a one-line summary of the running dome session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("status")
		},
	}
}

func treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "print the focused workspace's container tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("tree")
		},
	}
}

func reloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "force domed to re-read its config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendLine("reload")
		},
	}
}
