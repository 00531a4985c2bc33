// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package restcore provides a reusable client-side HTTP request core: GET,
POST, PUT, PATCH and DELETE calls against a configurable base endpoint,
default headers merged into every request, lenient response decoding,
and a retrying image fetch that validates the downloaded payload.

Create a Client to begin making requests. Its zero value is usable.

	client := &restcore.Client{Endpoint: "https://api.example.com/v1"}
	client.SetAuthorization("Bearer abc123")
	env, err := client.Get(ctx, "/items")
	...
	items := env.JSONArray()
	...
	env, err = client.Post(ctx, "/items", `{"name":"ham"}`)

Relative paths are appended to Endpoint as they are; a path beginning
with "http" is used unchanged. Every request carries Accept:
application/json unless a default header overrides it.

A failed exchange is reported as a *TransportError carrying the method,
URL, status code and both bodies. The verb methods never retry. The
image fetch repeats the whole exchange, up to its attempt budget, when
the transport fails or when the payload cannot be decoded or turns out
to be a placeholder image:

	img, err := client.FetchImage(ctx, "https://cdn.example.com/a.png", 3)

The context passed to every call is its liveness token. A call whose
context is already done fails with *ContextInactiveError without any
network traffic, and the image fetch checks the context again before
every retry.

Calls block the calling goroutine. To hold a call as a value and await
it later, use Go or GoFetchImage:

	p := client.GoFetchImage(ctx, url, 0)
	...
	img, err := p.Await(ctx)

A Client can also be built from configuration loaded by package config:

	cfg, err := config.Load(config.WithFile("restcore.yaml"))
	...
	client := restcore.New(cfg)

To hook into the details of request execution, install a handler into
the appropriate handler chain:

	handlers := &restcore.HandlerGroup{}
	handlers.PushBack(restcore.BeforeAttempt, restcore.HandlerFunc(
		func(_ restcore.Event, e *request.Execution) {
			e.Request.Header.Set("X-Signature", sign(e.Request))
		}))
	client.Handlers = handlers
*/
package restcore
