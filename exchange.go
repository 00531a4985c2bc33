// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/response"
	"github.com/gogama/restcore/transient"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxTimeout is the timeout.Infinite duration. An exchange given this
// timeout gets a cancellable context with no deadline.
const maxTimeout = time.Duration(1<<63 - 1)

// exchange runs one exchange of execution e: it builds the HTTP request
// with a per-exchange context, sends it, reads and closes the body, and
// classifies the result. The execution's Request, Response, Body and
// Err fields are updated along the way.
func (c *Client) exchange(e *request.Execution, h *HandlerGroup) (*response.Envelope, error) {
	d := e.Descriptor
	ctx, cancel := attemptContext(d.Context(), c.timeoutPolicy().Timeout(e))
	defer cancel()

	req, err := d.ToRequest(ctx)
	if err != nil {
		e.Err = err
		return nil, newTransportError(e, response.TransportError, err)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	e.Request = req
	e.Response = nil
	e.Body = nil
	e.Err = nil

	h.run(BeforeAttempt, e)

	c.logger().Debug().
		Str("method", d.Method).
		Str("url", d.URL).
		Str("request_id", e.Request.Header.Get(HeaderRequestID)).
		Int("attempt", e.Attempt).
		Msg("sending request")

	start := time.Now()
	resp, err := c.doer().Do(e.Request)
	e.Response = resp
	env, err := c.interpret(e, h, resp, err)
	c.logExchange(e, env, err, time.Since(start))
	return env, err
}

// interpret reads and classifies the outcome of a completed exchange.
// The body received from the HTTPDoer, if any, is closed on every
// path, and a panic is contained and turned into an *InterpretError.
func (c *Client) interpret(e *request.Execution, h *HandlerGroup, resp *http.Response, doErr error) (env *response.Envelope, err error) {
	d := e.Descriptor
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if r := recover(); r != nil {
			ierr := &InterpretError{Method: d.Method, URL: d.URL, Value: r}
			c.logger().Error().
				Str("method", d.Method).
				Str("url", d.URL).
				Int("attempt", e.Attempt).
				Interface("panic", r).
				Msg("recovered panic while interpreting response")
			e.Err = ierr
			env, err = nil, ierr
		}
	}()

	cause := doErr
	if doErr == nil {
		h.run(BeforeReadBody, e)
		e.Body, cause = readBody(e.Response)
	}

	cancelled := cause != nil && errors.Is(d.Context().Err(), context.Canceled)
	outcome := response.Classify(e.StatusCode(), cause, cancelled)
	if outcome == response.Success {
		e.Err = nil
	} else {
		e.Err = newTransportError(e, outcome, cause)
	}

	if e.Timeout() {
		e.AttemptTimeouts++
		h.run(AfterAttemptTimeout, e)
	}

	h.run(AfterAttempt, e)

	if e.Err != nil {
		return nil, e.Err
	}
	return response.New(outcome, e.StatusCode(), e.Header(), e.Body), nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return []byte{}, nil
	}
	b, err := io.ReadAll(resp.Body)
	if b == nil {
		b = []byte{}
	}
	return b, err
}

func newTransportError(e *request.Execution, outcome response.Outcome, cause error) *TransportError {
	return &TransportError{
		Outcome:      outcome,
		Method:       e.Descriptor.Method,
		URL:          e.Descriptor.URL,
		Status:       e.StatusCode(),
		RequestBody:  e.Descriptor.Body,
		ResponseBody: e.Body,
		Err:          cause,
	}
}

func attemptContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 || d >= maxTimeout {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

func (c *Client) logExchange(e *request.Execution, env *response.Envelope, err error, elapsed time.Duration) {
	l := c.logger()
	var evt *zerolog.Event
	if err == nil {
		evt = l.Debug().Stringer("outcome", env.Outcome)
	} else {
		evt = l.Debug().Err(err).Stringer("transient", transient.Categorize(err))
	}
	evt.Str("method", e.Descriptor.Method).
		Str("url", e.Descriptor.URL).
		Int("status", e.StatusCode()).
		Int("attempt", e.Attempt).
		Dur("elapsed", elapsed).
		Msg("exchange complete")
}
