// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/restcore/request"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	t.Run("Decider", func(t *testing.T) {
		assert.True(t, DefaultPolicy.Decide(&request.Execution{Err: syscall.ECONNRESET}))
		assert.True(t, DefaultPolicy.Decide(&request.Execution{Err: errors.New("placeholder image")}))
		assert.False(t, DefaultPolicy.Decide(&request.Execution{}))
	})
	t.Run("Waiter", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			assert.Equal(t, time.Duration(0), DefaultPolicy.Wait(&request.Execution{Attempt: i}))
		}
	})
}

func TestNever(t *testing.T) {
	assert.False(t, Never.Decide(&request.Execution{Err: syscall.ECONNRESET}))
	assert.False(t, Never.Decide(&request.Execution{Attempt: 1}))
}

func TestNewPolicy(t *testing.T) {
	p := &testPolicy{}
	t.Run("Bad Args", func(t *testing.T) {
		assert.PanicsWithValue(t, "restcore/retry: nil decider", func() { NewPolicy(nil, p) })
		assert.PanicsWithValue(t, "restcore/retry: nil waiter", func() { NewPolicy(p, nil) })
	})
	t.Run("Normal", func(t *testing.T) {
		P := NewPolicy(p, p)
		assert.True(t, P.Decide(&request.Execution{}))
		assert.Equal(t, 1, p.d)
		assert.Equal(t, time.Second, P.Wait(&request.Execution{}))
		assert.Equal(t, 1, p.w)
	})
}

type testPolicy struct {
	d int
	w int
}

func (p *testPolicy) Decide(_ *request.Execution) bool {
	p.d++
	return true
}

func (p *testPolicy) Wait(_ *request.Execution) time.Duration {
	p.w++
	return time.Second
}
