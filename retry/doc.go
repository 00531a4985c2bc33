// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides the policies a retrying operation consults
// after a failed exchange: whether to make another exchange, and how
// long to wait before making it.
//
// A Policy is a Decider plus a Waiter. Deciders compose with And and
// Or, so a useful policy can be assembled from the built-in pieces:
//
//	decider := retry.Attempts(4).And(retry.StatusCode(503).Or(retry.TransientErr))
//	waiter := retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now())
//	policy := retry.NewPolicy(decider, waiter)
//
// Retries are strictly sequential: the next exchange starts only after
// the previous one has finished and released its resources.
package retry
