// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for the timeout the transport
// adapter places on each individual exchange, including the exchanges
// made by a retrying operation.
//
// The request core itself imposes no timeout: DefaultPolicy is Infinite
// and leaves timing out to the HTTPDoer (for example the Timeout field
// of an http.Client). Install Fixed or Adaptive to have each exchange
// bounded by the core.
package timeout
