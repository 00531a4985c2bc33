// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/restcore/request"
)

// A Waiter specifies how long to wait before the next exchange of a
// retrying operation.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines. A Waiter is not consulted if the Decider returned false.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// Immediate is a Waiter that never waits: the next exchange starts as
// soon as the previous one has been released.
var Immediate = NewFixedWaiter(0)

// DefaultWaiter is the default retry wait policy, Immediate.
var DefaultWaiter = Immediate

// NewFixedWaiter constructs a Waiter that always returns d.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing exponential backoff
// with optional "Full Jitter", as described in
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// The ceiling for attempt n is min(base * 2**n, max). Base must be
// positive and max must be at least base.
//
// Parameter jitter is nil for no jitter (the ceiling itself is
// returned), or a seed (time.Time, int or int64), a rand.Source or a
// *rand.Rand used to draw a wait between 0 and the ceiling.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("restcore/retry: base must be positive")
	}
	if max < base {
		panic("restcore/retry: max must be at least base")
	}
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: jitterToRand(jitter),
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(e *request.Execution) time.Duration {
	exp := int64(1) << uint(e.Attempt)
	if exp < 1 {
		exp = 1<<63 - 1
	}

	ceil := int64(w.base) * exp
	if ceil < int64(w.base) || int64(w.max) < ceil {
		ceil = int64(w.max)
	}

	duration := ceil
	if ceil > 0 && w.rand != nil {
		w.lock.Lock()
		defer w.lock.Unlock()
		duration = w.rand.Int63n(ceil)
	}

	return time.Duration(duration)
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("restcore/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("restcore/retry: invalid jitter type")
	}
	return rand.New(s)
}
