// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"net/http"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a repeat of the same exchange is very unlikely to succeed.
// Every other category means a repeat has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, including a nil error and
	// a cancelled context.
	Not Category = iota
	// Timeout indicates a client-side timeout: the error, or one of its
	// wrapped causes, has a Timeout method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED). The remote service may be restarting.
	ConnRefused
	// ConnReset indicates the remote host reset an established
	// connection (syscall.ECONNRESET).
	ConnReset
	// Status indicates the exchange completed but the server answered
	// with a status code that usually clears up on its own: 408, 429,
	// 500, 502, 503 or 504. The error, or one of its wrapped causes,
	// must have a StatusCode method.
	Status
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Status",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err.
//
// Categorize looks through wrapped causes, not just err itself. A
// cancelled context is never transient: it means the caller gave up,
// so there is nobody left to retry for. A deadline that expired is a
// Timeout because context.DeadlineExceeded has a Timeout method.
func Categorize(err error) Category {
	if err == nil || errors.Is(err, context.Canceled) {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	var hasStatus hasStatusCode
	if errors.As(err, &hasStatus) && transientStatus(hasStatus.StatusCode()) {
		return Status
	}

	return Not
}

func transientStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

type hasTimeout interface {
	Timeout() bool
}

type hasStatusCode interface {
	StatusCode() int
}
