// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpNeverErrors(t *testing.T) {
	var d Decorator = NoOp{}
	assert.NoError(t, d.UpdateBorder(Border{Window: 1}))
	assert.NoError(t, d.UpdateTabBar(TabBar{Container: 1}))
	assert.NoError(t, d.Clear(1))
}

func TestLoggingNeverErrors(t *testing.T) {
	var d Decorator = Logging{}
	assert.NoError(t, d.UpdateBorder(Border{Window: 1}))
	assert.NoError(t, d.UpdateTabBar(TabBar{Container: 1}))
	assert.NoError(t, d.Clear(1))
}
