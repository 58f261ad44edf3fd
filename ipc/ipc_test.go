// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ipc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendReceivesReply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dome.sock")
	s, err := Listen(path)
	require.NoError(t, err)
	defer s.Close()

	go func() {
		req := <-s.Requests()
		assert.Equal(t, "status", req.Line)
		req.Reply <- "OK: 1 monitor"
	}()

	reply, err := Send(path, "status", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "OK: 1 monitor", reply)
}

func TestSendTimesOutWhenNoOneReplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dome.sock")
	s, err := Listen(path)
	require.NoError(t, err)
	defer s.Close()

	go func() {
		<-s.Requests() // read but never reply
	}()

	_, err = Send(path, "status", 50*time.Millisecond)
	assert.Error(t, err)
}

func TestSendFailsWithNoServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dome.sock")
	_, err := Send(path, "status", 100*time.Millisecond)
	assert.Error(t, err)
}

func TestConcurrentConnectionsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dome.sock")
	s, err := Listen(path)
	require.NoError(t, err)
	defer s.Close()

	go func() {
		for i := 0; i < 3; i++ {
			req := <-s.Requests()
			req.Reply <- "OK"
		}
	}()

	results := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := Send(path, "status", time.Second)
			results <- err
		}()
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, <-results)
	}
}
