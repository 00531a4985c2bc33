// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"context"
	"fmt"

	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/response"
)

// A Pending holds the eventual result of a call running on its own
// goroutine. Any number of goroutines may await it.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func goPending[T any](f func() (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("restcore: panic in pending call: %v", r)
			}
		}()
		p.val, p.err = f()
	}()
	return p
}

// Done returns a channel that is closed when the call has completed.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Await waits for the call to complete and returns its result. If ctx
// is done first, Await returns a *ContextInactiveError. Abandoning the
// wait does not stop the call: cancel the call's own context for that.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, &ContextInactiveError{Err: ctx.Err()}
	}
}

// Go runs Do(d) on a new goroutine and returns its pending result.
func (c *Client) Go(d *request.Descriptor) *Pending[*response.Envelope] {
	return goPending(func() (*response.Envelope, error) {
		return c.Do(d)
	})
}

// GoFetchImage runs FetchImage on a new goroutine and returns its
// pending result.
func (c *Client) GoFetchImage(ctx context.Context, url string, maxAttempts int) *Pending[*Image] {
	return goPending(func() (*Image, error) {
		return c.FetchImage(ctx, url, maxAttempts)
	})
}
