// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"context"
	"image"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gogama/restcore/config"
	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/response"
	"github.com/gogama/restcore/retry"
	"github.com/gogama/restcore/timeout"
	"github.com/rs/zerolog"
)

// A Client makes HTTP requests against a base endpoint, merging its
// default headers into every request, and fetches images with retry.
//
// A Client's zero value is usable: Endpoint is empty, so only absolute
// URLs work, the HTTPDoer is http.DefaultClient, nothing times out
// unless the HTTPDoer does, and nothing is logged.
//
// A Client is safe for concurrent use by multiple goroutines once its
// exported fields have been set. Default headers may be changed at any
// time; each request takes a snapshot of them when it is built. A
// Client must not be copied after first use.
type Client struct {
	// Endpoint is the base URL relative paths are appended to.
	Endpoint string

	// HTTPDoer specifies the mechanism for sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer

	// TimeoutPolicy specifies how to set the timeout of each exchange.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used, which
	// leaves timing out to the HTTPDoer.
	TimeoutPolicy timeout.Policy

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// Logger receives structured logs about calls. If Logger is nil,
	// nothing is logged.
	Logger *zerolog.Logger

	// ImageAttempts is the attempt budget of FetchImage when the caller
	// passes a non-positive budget. If it is not positive either,
	// DefaultImageAttempts is used.
	ImageAttempts int

	// ImageRetryPolicy, if set, decides whether and when FetchImage
	// retries, in place of ImageRetryDecider and ImageRetryWaiter. The
	// attempt budget still applies: retry.DefaultPolicy retries every
	// failure up to the budget, retry.Never makes a single attempt.
	ImageRetryPolicy retry.Policy

	// ImageRetryDecider further restricts retries of FetchImage: a
	// failed attempt is retried only if budget remains AND the decider
	// agrees. If ImageRetryDecider is nil, retry.DefaultDecider is used,
	// which retries every failure.
	ImageRetryDecider retry.Decider

	// ImageRetryWaiter decides how long FetchImage waits before a
	// retry. If ImageRetryWaiter is nil, retry.Immediate is used.
	ImageRetryWaiter retry.Waiter

	// Placeholder reports whether a decoded image is a placeholder
	// rather than real content. If Placeholder is nil, IsPlaceholder is
	// used.
	Placeholder func(image.Image) bool

	headerLock sync.RWMutex
	headers    http.Header
}

// An HTTPDoer implements a Do method in the same manner as the
// standard library's http.Client from the net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

var nopLogger = zerolog.Nop()

// New returns a Client configured from cfg: its endpoint, default
// headers, per-exchange timeout, image attempt budget, image retry
// backoff and logger. A nil cfg yields a zero-value Client.
func New(cfg *config.Config) *Client {
	c := &Client{}
	if cfg == nil {
		return c
	}

	c.Endpoint = cfg.Endpoint
	for name, value := range cfg.Headers {
		c.SetHeader(name, value)
	}
	if cfg.Authorization != "" {
		c.SetAuthorization(cfg.Authorization)
	}
	if cfg.Authentication != "" {
		c.SetAuthenticationHeader(cfg.Authentication)
	}
	if cfg.Timeout > 0 {
		c.TimeoutPolicy = timeout.Fixed(cfg.Timeout)
	}
	c.ImageAttempts = cfg.Image.MaxAttempts
	if b := cfg.Image.Backoff; b.Base > 0 {
		ceiling := b.Max
		if ceiling < b.Base {
			ceiling = b.Base
		}
		c.ImageRetryWaiter = retry.NewExpWaiter(b.Base, ceiling, time.Now())
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	c.Logger = &logger
	return c
}

// Get sends a GET request for path and returns the response envelope.
//
// Path is resolved with BuildURL. The request carries the merged
// default headers. Get makes exactly one exchange and never retries.
func (c *Client) Get(ctx context.Context, path string) (*response.Envelope, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

// Post sends a POST request for path with the given body, which may be
// nil, a string, a []byte or an io.Reader. A non-empty body is sent
// with Content-Type: application/json unless a default header sets
// another content type.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*response.Envelope, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put sends a PUT request for path with the given body. See Post for
// how the body is sent.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*response.Envelope, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

// Patch sends a PATCH request for path with the given body. See Post
// for how the body is sent.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*response.Envelope, error) {
	return c.send(ctx, http.MethodPatch, path, body)
}

// Delete sends a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) (*response.Envelope, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*response.Envelope, error) {
	if ctx == nil {
		panic("restcore: nil context")
	}
	url := c.BuildURL(path)
	if err := ctx.Err(); err != nil {
		return nil, &ContextInactiveError{Method: method, URL: url, Err: err}
	}
	d, err := c.NewDescriptor(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.Do(d)
}

// NewDescriptor builds the descriptor of a request for path: the URL
// is resolved with BuildURL, the header is a snapshot of
// MergedHeaders, and a non-empty body gets the default content type
// unless the merged headers already name one.
func (c *Client) NewDescriptor(ctx context.Context, method, path string, body interface{}) (*request.Descriptor, error) {
	d, err := request.NewDescriptor(ctx, method, c.BuildURL(path), body)
	if err != nil {
		return nil, err
	}
	d.Header = c.MergedHeaders()
	if len(d.Body) > 0 && d.Header.Get(HeaderContentType) == "" {
		d.ContentType = DefaultContentType
	}
	return d, nil
}

// Do executes a request descriptor and returns the response envelope.
//
// Do makes exactly one exchange. If the descriptor's context is
// already done, Do returns a *ContextInactiveError without calling the
// HTTPDoer. If the exchange fails, whether in the transport or because
// the status code is outside the 2xx class, Do returns a
// *TransportError describing it. A panic while the completed exchange
// is interpreted is returned as an *InterpretError.
//
// On success the envelope's outcome is response.Success.
func (c *Client) Do(d *request.Descriptor) (*response.Envelope, error) {
	if err := d.Context().Err(); err != nil {
		return nil, &ContextInactiveError{Method: d.Method, URL: d.URL, Err: err}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	e := &request.Execution{
		Descriptor:  d,
		MaxAttempts: 1,
	}

	h := c.Handlers
	h.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	env, err := c.exchange(e, h)

	e.End = time.Now()
	h.run(AfterExecutionEnd, e)
	return env, err
}

// CloseIdleConnections closes idle keep-alive connections of the
// HTTPDoer, if it supports doing so.
func (c *Client) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if ci, ok := c.doer().(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer != nil {
		return c.HTTPDoer
	}
	return http.DefaultClient
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy != nil {
		return c.TimeoutPolicy
	}
	return timeout.DefaultPolicy
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return &nopLogger
}
