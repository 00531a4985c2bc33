// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/restcore/request"
)

// A Policy decides the timeout of the next exchange of a call.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next exchange, given
	// the current state of the call.
	Timeout(e *request.Execution) time.Duration
}

// Infinite is a timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// DefaultPolicy is the default timeout policy, Infinite: timing out is
// left to the HTTPDoer.
var DefaultPolicy = Infinite

// Fixed constructs a timeout policy that gives every exchange the
// timeout d.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a timeout policy that lengthens the timeout after
// an exchange timed out.
//
// Parameter usual is the timeout for the first exchange and for any
// exchange whose predecessor did not time out. Parameter after holds
// the timeouts used after the first, second, ... timeout of the call;
// its last element is reused once the call has timed out more often
// than after has elements.
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// An image fetch using p gives its first exchange 200ms; if that times
// out, the retry gets 1s, and any later retry following a timeout 10s.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return p[0]
	}

	i := e.AttemptTimeouts
	if i > len(p)-1 {
		i = len(p) - 1
	}

	return p[i]
}
