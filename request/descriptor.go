// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "restcore/request: nil context"
)

// Methods lists the HTTP methods a Descriptor may carry.
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// A Descriptor describes one logical HTTP request: the method, the
// absolute URL, the headers and the optional body.
//
// Once a Descriptor has been passed to the client it must not be
// changed. Each exchange clones Header before adding per-exchange
// headers, so the Descriptor itself is never written to.
type Descriptor struct {
	// Method is one of GET, POST, PUT, PATCH or DELETE.
	Method string

	// URL is the absolute URL to access.
	URL string

	// Header contains the request header fields. Keys are canonical
	// and unique: setting a key twice keeps the last value.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no body is sent.
	Body []byte

	// ContentType, if not empty, is sent as the Content-Type header
	// whenever Body is non-empty. It takes precedence over a
	// Content-Type entry in Header.
	ContentType string

	// ctx is the liveness token of the request. It is only changed by
	// copying the whole Descriptor with WithContext.
	ctx context.Context
}

// NewDescriptor returns a new Descriptor given a context, a method, an
// absolute URL and an optional body.
//
// An empty method means GET. Parameter body may be nil (empty body), or
// a string, []byte, io.Reader or io.ReadCloser; readers are read to the
// end and buffered, and an io.ReadCloser is closed afterward.
func NewDescriptor(ctx context.Context, method, url string, body interface{}) (*Descriptor, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("restcore/request: unsupported method %q", method)
	}
	if url == "" {
		return nil, errors.New("restcore/request: empty URL")
	}
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Descriptor{
		ctx:    ctx,
		Method: method,
		URL:    url,
		Header: make(http.Header),
		Body:   b,
	}, nil
}

// Context returns the descriptor's context, which is never nil: it
// defaults to the background context.
func (d *Descriptor) Context() context.Context {
	if d.ctx != nil {
		return d.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of d with its context changed to
// ctx, which must be non-nil.
func (d *Descriptor) WithContext(ctx context.Context) *Descriptor {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	d2 := new(Descriptor)
	*d2 = *d
	d2.ctx = ctx
	return d2
}

// Validate reports whether the descriptor can be sent as is: the
// method must be supported and every header field name and value must
// be well formed.
func (d *Descriptor) Validate() error {
	if !validMethod(d.Method) {
		return fmt.Errorf("restcore/request: unsupported method %q", d.Method)
	}
	for name, values := range d.Header {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("restcore/request: invalid header name %q", name)
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("restcore/request: invalid value for header %q", name)
			}
		}
	}
	if d.ContentType != "" && !httpguts.ValidHeaderFieldValue(d.ContentType) {
		return errors.New("restcore/request: invalid content type")
	}
	return nil
}

// ToRequest creates the http.Request for one exchange of the
// descriptor. The context of the new request is set to ctx, which may
// not be nil. The header map is a clone, so callers may add
// per-exchange headers to the result.
func (d *Descriptor) ToRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if len(d.Body) > 0 {
		body = bytes.NewReader(d.Body)
	}
	r, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return nil, err
	}
	r.Header = d.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(d.Body) > 0 && d.ContentType != "" {
		r.Header.Set("Content-Type", d.ContentType)
	}
	return r, nil
}

func validMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}
