// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality such as request signing or metrics.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before a
	// call starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but the only fields that have been set are the descriptor
	// and the attempt budget.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// exchange of the call.
	//
	// When Client fires BeforeAttempt, the execution's request field is
	// set to the HTTP request that WILL BE sent after all BeforeAttempt
	// handlers have finished. Its header is a private clone, so
	// handlers may change it freely.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after an
	// exchange has produced an HTTP response (as opposed to an error)
	// but before the response body is read.
	//
	// BeforeReadBody never fires if the exchange ended in error, but
	// always fires if an HTTP response is received, whatever its status
	// code.
	BeforeReadBody
	// AfterAttemptTimeout identifies the event that occurs after an
	// exchange failed because of a timeout.
	//
	// When Client fires AfterAttemptTimeout, the execution's error
	// field is set to the timeout error, and its attempt timeout counter
	// has been incremented.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after an exchange
	// concluded, successfully or not.
	//
	// When Client fires AfterAttempt, the body has been read and the
	// error field holds the classification of the exchange: nil for a
	// 2xx response, non-nil otherwise. A panic in an AfterAttempt
	// handler is contained and reported as an *InterpretError.
	AfterAttempt
	// AfterContentCheck identifies the event that occurs after the
	// payload of a successful image exchange has been decoded and
	// checked.
	//
	// When Client fires AfterContentCheck, the execution's error field
	// is nil if the payload passed, or a *ContentValidationError if it
	// did not. The event never fires for the plain verb methods.
	AfterContentCheck
	// AfterExecutionEnd identifies the event that occurs after the call
	// ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in the
	// same state it was in after the final exchange EXCEPT that the end
	// time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterContentCheck",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur during
// a call made by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttemptTimeout,
		AfterAttempt,
		AfterContentCheck,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
