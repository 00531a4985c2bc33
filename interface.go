// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"context"

	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/response"
)

// A Doer executes a request descriptor.
type Doer interface {
	Do(d *request.Descriptor) (*response.Envelope, error)
}

// A Getter sends GET requests.
type Getter interface {
	Get(ctx context.Context, path string) (*response.Envelope, error)
}

// A Poster sends POST requests.
type Poster interface {
	Post(ctx context.Context, path string, body interface{}) (*response.Envelope, error)
}

// A Putter sends PUT requests.
type Putter interface {
	Put(ctx context.Context, path string, body interface{}) (*response.Envelope, error)
}

// A Patcher sends PATCH requests.
type Patcher interface {
	Patch(ctx context.Context, path string, body interface{}) (*response.Envelope, error)
}

// A Deleter sends DELETE requests.
type Deleter interface {
	Delete(ctx context.Context, path string) (*response.Envelope, error)
}

// An ImageFetcher downloads images with retry.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string, maxAttempts int) (*Image, error)
}

// An IdleCloser closes idle connections.
type IdleCloser interface {
	CloseIdleConnections()
}

// An Executor is the full request surface of a Client. Code that only
// sends requests should depend on Executor, or on one of its parts,
// rather than on *Client.
type Executor interface {
	Doer
	Getter
	Poster
	Putter
	Patcher
	Deleter
	ImageFetcher
	IdleCloser
}

var _ Executor = (*Client)(nil)
