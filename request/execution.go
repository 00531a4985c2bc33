// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/restcore/transient"
)

// An Execution represents the state of a single logical call: one
// Descriptor run through one or more exchanges.
//
// The client creates an Execution for every call and updates it as the
// call progresses. Policies and event handlers may attach their own
// data with SetValue and read it back with Value, but should treat the
// exported fields as read-only. BeforeAttempt handlers may make
// reasonable changes to Request before it is sent (for example to sign
// it).
//
// An Execution lives only as long as the call it describes. Nothing in
// it is shared with any other call.
type Execution struct {
	// Descriptor is the request being executed. It is never nil.
	Descriptor *Descriptor

	// Start is the time the call started. It is zero until then and
	// constant afterward.
	Start time.Time

	// End is the time the call ended. It is zero until then.
	End time.Time

	// Attempt is the zero-based index of the current exchange. It is
	// zero on the first exchange, one on the first retry, and so on.
	// When the call has ended it holds the index of the last exchange.
	Attempt int

	// MaxAttempts is the attempt budget of the call: the greatest
	// number of exchanges it may make. It is one for the plain verb
	// methods, which never retry.
	MaxAttempts int

	// AttemptTimeouts counts the exchanges that ended in a timeout.
	AttemptTimeouts int

	// Request is the HTTP request for the current exchange, or the one
	// already sent in the last exchange.
	Request *http.Request

	// Response is the HTTP response received in the most recent
	// exchange. It is nil if the exchange failed before a response was
	// received, or while an exchange is underway.
	Response *http.Response

	// Err is the error from the most recent exchange, or nil if it
	// succeeded. A response with a status code outside the 2xx class is
	// an error. For image fetches a payload that fails the content check
	// is an error too.
	Err error

	// Body is the complete response body read in the most recent
	// exchange. It is never nil once a response has been read, but may
	// be empty.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the response from the most
// recent exchange, or 0 if there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the response headers from the most recent exchange,
// or a nil header if there is no response. A nil header is safe for
// read-only use.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the call. It is zero before the call
// starts, grows while it runs and is fixed at End minus Start once it
// has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the call has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the call has ended. Once it has, the
// Execution does not change any more.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Final indicates whether the current exchange is the last one the
// attempt budget allows.
func (e *Execution) Final() bool {
	budget := e.MaxAttempts
	if budget < 1 {
		budget = 1
	}
	return e.Attempt+1 >= budget
}

// Timeout indicates whether Err currently holds a timeout error.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue stores arbitrary data in the execution. The key follows the
// same rules as the key parameter of context.WithValue: it must not be
// nil, it must be comparable, and it should not be a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data associated with key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
