// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors produced by a request exchange as
// transient or non-transient. Retry deciders use it to tell a failure
// worth repeating from one that will fail the same way again, and the
// request executor uses it to label failures in its logs.
//
// Package transient depends only on the standard library, so importing
// it on its own brings no extra dependencies.
package transient
