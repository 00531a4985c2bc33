// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"net/http"
	"strings"
)

// Header names and values the client sets itself.
const (
	HeaderAccept         = "Accept"
	HeaderAuthorization  = "Authorization"
	HeaderAuthentication = "Authentication"
	HeaderContentType    = "Content-Type"
	HeaderRequestID      = "X-Request-ID"

	// DefaultAccept is the Accept header of every request unless a
	// default header overrides it.
	DefaultAccept = "application/json"

	// DefaultContentType is the content type of request bodies sent by
	// Post, Put and Patch.
	DefaultContentType = "application/json"

	// ImageAccept is the Accept header of image fetches.
	ImageAccept = "image/*"
)

// BuildURL turns path into the absolute URL of a request. A path that
// begins with "http" is returned unchanged. Anything else is appended
// to Endpoint as is, without inserting or removing slashes.
func (c *Client) BuildURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.Endpoint + path
}

// SetHeader sets a default header sent with every later request. It
// replaces any earlier value of the same header, including the
// built-in Accept header. Header names are case-insensitive.
func (c *Client) SetHeader(name, value string) {
	c.headerLock.Lock()
	defer c.headerLock.Unlock()
	if c.headers == nil {
		c.headers = make(http.Header)
	}
	c.headers.Set(name, value)
}

// DeleteHeader removes a default header set with SetHeader. It cannot
// remove the built-in Accept header, only override it.
func (c *Client) DeleteHeader(name string) {
	c.headerLock.Lock()
	defer c.headerLock.Unlock()
	c.headers.Del(name)
}

// SetAuthorization sets the Authorization header sent with every later
// request. The token is sent as given, so include any scheme prefix
// such as "Bearer ".
func (c *Client) SetAuthorization(token string) {
	c.SetHeader(HeaderAuthorization, token)
}

// SetAuthenticationHeader sets the header named "Authentication" (not
// "Authorization") sent with every later request. Some services expect
// this non-standard header.
func (c *Client) SetAuthenticationHeader(token string) {
	c.SetHeader(HeaderAuthentication, token)
}

// MergedHeaders returns the headers a request built now would carry:
// Accept: application/json overlaid with the default headers. The
// result is a snapshot owned by the caller.
func (c *Client) MergedHeaders() http.Header {
	h := http.Header{HeaderAccept: []string{DefaultAccept}}
	c.headerLock.RLock()
	defer c.headerLock.RUnlock()
	for name, values := range c.headers {
		h[name] = append([]string(nil), values...)
	}
	return h
}
