// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package response contains Envelope, the immutable result of one
// completed HTTP exchange, and Outcome, its success classification.
//
// Envelope decoding is lenient on purpose: JSON and JSONArray return an
// empty value instead of an error when the body is not the expected
// JSON shape, so calling code checks for emptiness rather than handling
// parse errors.
package response
