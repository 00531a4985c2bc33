// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Descriptor (describes one
logical HTTP request) and Execution (describes the state of running a
Descriptor). Both are used by the restcore client and by the policies
and event handlers plugged into it.

A Descriptor looks like a stripped-down http.Request: server-side fields
are gone and the body is a pre-buffered []byte, so the same Descriptor
can be turned into a fresh http.Request for every exchange. The client
treats a Descriptor as immutable once it has been handed over.

	d, err := request.NewDescriptor(ctx, "POST", "https://example.com/items", `{"a":1}`)
	...
	d.ContentType = "application/json"
	env, err := client.Do(d)
	...

The Descriptor context is the liveness token for the request. If it is
cancelled before the request starts, no exchange is made; if it is
cancelled while the exchange is in flight, the exchange is abandoned.

An Execution is created by the client for every call. It is the input
type for timeout policies, retry policies and event handlers, and it
carries the attempt counter used by retrying operations. You will not
usually allocate one yourself.
*/
package request
