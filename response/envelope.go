// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"encoding/json"
	"net/http"
	"sync"
)

// An Outcome classifies how an exchange ended.
type Outcome int

const (
	// Success means the exchange completed with a 2xx status code and
	// no transport-level fault.
	Success Outcome = iota
	// TransportError means the exchange did not complete successfully:
	// a network fault, a timeout, a body read failure or a status code
	// outside the 2xx class.
	TransportError
	// Cancelled means the request context was cancelled while the
	// exchange was in flight.
	Cancelled
)

var outcomeNames = []string{
	"Success",
	"TransportError",
	"Cancelled",
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "Unknown"
	}
	return outcomeNames[o]
}

// Classify returns the outcome of an exchange that ended with status
// code and transport error err. The outcome is Success if and only if
// err is nil and status is in the 2xx class.
func Classify(status int, err error, cancelled bool) Outcome {
	switch {
	case cancelled:
		return Cancelled
	case err == nil && status >= 200 && status <= 299:
		return Success
	default:
		return TransportError
	}
}

// An Envelope is the immutable snapshot of a completed exchange.
//
// An Envelope is owned by the caller that received it. The byte slice
// returned by Bytes must not be modified.
type Envelope struct {
	// Outcome classifies the exchange.
	Outcome Outcome

	// StatusCode is the HTTP status code of the response, or 0 if no
	// response was received.
	StatusCode int

	// Header holds the response headers. It may be nil.
	Header http.Header

	body []byte

	textOnce sync.Once
	text     string
}

// New returns an Envelope for a completed exchange. A nil body is
// stored as an empty slice.
func New(outcome Outcome, status int, header http.Header, body []byte) *Envelope {
	if body == nil {
		body = []byte{}
	}
	return &Envelope{
		Outcome:    outcome,
		StatusCode: status,
		Header:     header,
		body:       body,
	}
}

// OK reports whether the outcome is Success.
func (env *Envelope) OK() bool {
	return env.Outcome == Success
}

// Bytes returns the raw response body. It is never nil.
func (env *Envelope) Bytes() []byte {
	if env.body == nil {
		return []byte{}
	}
	return env.body
}

// Text returns the body decoded as UTF-8. Invalid sequences are kept as
// they are; Text never fails. The string is built on first use.
func (env *Envelope) Text() string {
	env.textOnce.Do(func() {
		env.text = string(env.body)
	})
	return env.text
}

// JSON parses Text as a JSON object. If the body is not a JSON object
// the result is an empty, non-nil map.
func (env *Envelope) JSON() map[string]interface{} {
	var v map[string]interface{}
	if err := json.Unmarshal(env.Bytes(), &v); err != nil || v == nil {
		return map[string]interface{}{}
	}
	return v
}

// JSONArray parses Text as a JSON array. If the body is not a JSON
// array the result is an empty, non-nil slice.
func (env *Envelope) JSONArray() []interface{} {
	var v []interface{}
	if err := json.Unmarshal(env.Bytes(), &v); err != nil || v == nil {
		return []interface{}{}
	}
	return v
}

// Decode unmarshals the body into v, which must be a pointer. Unlike
// JSON and JSONArray, Decode reports parse errors.
func (env *Envelope) Decode(v interface{}) error {
	return json.Unmarshal(env.Bytes(), v)
}
