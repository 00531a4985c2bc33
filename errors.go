// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gogama/restcore/response"
	"github.com/gogama/restcore/transient"
)

// maxBodyInError is the largest number of body bytes rendered into an
// error message.
const maxBodyInError = 512

const (
	noUploadedData   = "no uploaded data"
	noDownloadedData = "no downloaded data"
)

// A TransportError reports an exchange that did not complete
// successfully: a network fault, a timeout, a failed body read, a
// cancelled request, or a response whose status code is outside the
// 2xx class.
//
// The error carries everything needed to diagnose the failure. Its
// message always contains the method, the URL and the status code.
type TransportError struct {
	// Outcome is response.TransportError or response.Cancelled.
	Outcome response.Outcome

	Method string
	URL    string

	// Status is the response status code, or zero if no response was
	// received.
	Status int

	// RequestBody is the body that was sent, if any.
	RequestBody []byte

	// ResponseBody is the body that was received, if any.
	ResponseBody []byte

	// Err is the underlying transport error. It is nil when the
	// exchange failed only because of its status code.
	Err error
}

func (err *TransportError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "restcore: %s %s failed (%s): status %d", err.Method, err.URL, err.Outcome, err.Status)
	if err.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(err.Err.Error())
	} else if text := http.StatusText(err.Status); text != "" {
		sb.WriteByte(' ')
		sb.WriteString(text)
	}
	sb.WriteString("; uploaded: ")
	sb.WriteString(renderBody(err.RequestBody, noUploadedData))
	sb.WriteString("; downloaded: ")
	sb.WriteString(renderBody(err.ResponseBody, noDownloadedData))
	return sb.String()
}

// Unwrap returns the underlying transport error, if any.
func (err *TransportError) Unwrap() error {
	return err.Err
}

// StatusCode returns the response status code, or zero if no response
// was received.
func (err *TransportError) StatusCode() int {
	return err.Status
}

// Timeout indicates whether the exchange failed because it timed out.
func (err *TransportError) Timeout() bool {
	return err.Err != nil && transient.Categorize(err.Err) == transient.Timeout
}

func renderBody(b []byte, marker string) string {
	if len(b) == 0 {
		return marker
	}
	if len(b) <= maxBodyInError {
		return string(b)
	}
	return fmt.Sprintf("%s... (%d bytes)", b[:maxBodyInError], len(b))
}

// A ContentValidationError reports an image payload that was
// downloaded successfully but is not acceptable: it cannot be decoded,
// or it is a placeholder image.
type ContentValidationError struct {
	URL string

	// Reason describes why the payload was rejected.
	Reason string

	// Err is the decoding error, if the payload could not be decoded.
	Err error
}

func (err *ContentValidationError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("restcore: invalid content from %s: %s: %v", err.URL, err.Reason, err.Err)
	}
	return fmt.Sprintf("restcore: invalid content from %s: %s", err.URL, err.Reason)
}

// Unwrap returns the decoding error, if any.
func (err *ContentValidationError) Unwrap() error {
	return err.Err
}

// A FetchError reports an image fetch that used up its attempt budget,
// or was told by its retry decider to stop, without obtaining an
// acceptable image.
type FetchError struct {
	URL string

	// Attempts is the number of exchanges made.
	Attempts int

	// Err is the failure of the last exchange: a *TransportError, a
	// *ContentValidationError or an *InterpretError.
	Err error
}

func (err *FetchError) Error() string {
	return fmt.Sprintf("restcore: fetch of %s failed after %d attempts: %v", err.URL, err.Attempts, err.Err)
}

// Unwrap returns the failure of the last exchange.
func (err *FetchError) Unwrap() error {
	return err.Err
}

// A ContextInactiveError reports a call abandoned because its context
// was done: before the first exchange, between retries, or while
// awaiting a Pending result.
type ContextInactiveError struct {
	Method string
	URL    string

	// Attempts is the number of exchanges made before the call was
	// abandoned.
	Attempts int

	// Err is the context error.
	Err error
}

func (err *ContextInactiveError) Error() string {
	if err.URL == "" {
		return fmt.Sprintf("restcore: context inactive: %v", err.Err)
	}
	return fmt.Sprintf("restcore: context inactive: %s %s after %d attempts: %v", err.Method, err.URL, err.Attempts, err.Err)
}

// Unwrap returns the context error.
func (err *ContextInactiveError) Unwrap() error {
	return err.Err
}

// An InterpretError reports a panic raised while a completed exchange
// was being interpreted: while its body was read, classified or handed
// to event handlers. The panic is contained and the call fails with
// this error instead.
type InterpretError struct {
	Method string
	URL    string

	// Value is the value passed to panic.
	Value interface{}
}

func (err *InterpretError) Error() string {
	return fmt.Sprintf("restcore: panic interpreting response to %s %s: %v", err.Method, err.URL, err.Value)
}

// Unwrap returns the panic value if it is an error.
func (err *InterpretError) Unwrap() error {
	if e, ok := err.Value.(error); ok {
		return e
	}
	return nil
}
