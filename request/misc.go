// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"io"
)

const badBodyTypeMsg = "restcore/request: invalid type (for body use nil, " +
	"string, []byte, json.RawMessage, io.Reader or io.ReadCloser)"

// BodyBytes buffers the body argument of Post, Put, Patch or
// NewDescriptor into the byte slice a Descriptor sends on every
// exchange. A request body is read exactly once, here, so a retried
// exchange never finds a half-consumed reader.
//
// JSON documents are typically passed as a string or a
// json.RawMessage and are taken as is: BodyBytes never encodes or
// validates them. A nil body means the request has no body, and no
// Content-Type is sent for it.
//
// A reader is drained and, if it is also an io.Closer, closed; a read
// or close failure is returned with a nil slice. Any other type is an
// error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case json.RawMessage:
		return []byte(x), nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
