// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors extends the standard library errors package with
// logging helpers and the command-facing error kinds from §7.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

// New, Is, As and Unwrap are re-exported so callers only need one
// errors import.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// CallerInfo returns the file:line of the caller of the function that
// called CallerInfo, for attaching to log lines.
func CallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return file + ":" + strconv.Itoa(line)
}

// Log logs err if non-nil and returns it unchanged. Intended usage:
//
//	return errors.Log(doThing())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs err if non-nil and returns v regardless. Intended usage:
//
//	v := errors.Log1(doThing())
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if err is non-nil. Reserved for invariants that would
// indicate a Dome bug, never for user input.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Kind classifies a [CommandError] per spec.md §7.
type Kind int

const (
	ParseError Kind = iota
	NoFocusedWindow
	InvariantViolation
	BackendError
	RuleMatchError
	IoError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case NoFocusedWindow:
		return "NoFocusedWindow"
	case InvariantViolation:
		return "InvariantViolation"
	case BackendError:
		return "BackendError"
	case RuleMatchError:
		return "RuleMatchError"
	case IoError:
		return "IoError"
	default:
		return "UnknownError"
	}
}

// CommandError is returned by the executor, IPC layer and config
// loader for any user- or backend-triggered failure.
type CommandError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CommandError) Unwrap() error { return e.Cause }

// Newf builds a [CommandError] of the given kind.
func Newf(kind Kind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a [CommandError] of the given kind around cause.
func Wrap(kind Kind, cause error, message string) *CommandError {
	return &CommandError{Kind: kind, Message: message, Cause: cause}
}
