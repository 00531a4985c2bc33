// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/transient"
)

// A Decider decides if another exchange should be made after the
// current one.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It also provides the logical
// composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *request.Execution) bool

// DefaultDecider retries whenever the most recent exchange failed,
// whatever the reason: a transport fault, a non-2xx status, or a
// payload that failed its content check. The attempt budget is not part
// of the decider; the retrying operation applies it separately.
var DefaultDecider = Failed

// Failed is a decider that indicates a retry whenever the most recent
// exchange ended with an error.
var Failed DeciderFunc = failed

// TransientErr is a decider that indicates a retry if the current
// error is transient according to transient.Categorize.
var TransientErr DeciderFunc = transientErr

// Decide returns true if another exchange should be made.
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into one which returns true only if both
// return true. g is not evaluated if f returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into one which returns true if either
// returns true. g is not evaluated if f returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times constructs a decider which allows up to n retries, that is up
// to n+1 exchanges in total. It returns true while e.Attempt is less
// than n.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Attempts constructs a decider which allows up to n exchanges in
// total, the first one included. Attempts(n) is Times(n-1); an n below
// one is treated as one.
func Attempts(n int) DeciderFunc {
	if n < 1 {
		n = 1
	}
	return Times(n - 1)
}

// Budget is a decider that respects the attempt budget recorded in the
// execution itself (e.MaxAttempts).
var Budget DeciderFunc = budget

// Before constructs a decider allowing retries until d has elapsed
// since the start of the call.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode constructs a decider which returns true if the most recent
// exchange received a response whose status code is in ss.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(e *request.Execution) bool {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return true
			}
		}
		return false
	}
}

func failed(e *request.Execution) bool {
	return e.Err != nil
}

func budget(e *request.Execution) bool {
	return !e.Final()
}

func transientErr(e *request.Execution) bool {
	return transient.Categorize(e.Err) != transient.Not
}
