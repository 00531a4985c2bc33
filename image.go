// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	// Image formats accepted by FetchImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogama/restcore/config"
	"github.com/gogama/restcore/request"
	"github.com/gogama/restcore/response"
	"github.com/gogama/restcore/retry"
	"github.com/gogama/restcore/transient"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultImageAttempts is the attempt budget of FetchImage when neither
// the caller nor the Client sets one.
const DefaultImageAttempts = config.DefaultImageAttempts

// The dimensions of the placeholder image some servers send in place
// of real content.
const (
	PlaceholderWidth  = 8
	PlaceholderHeight = 8
)

// An Image is an image downloaded and decoded by FetchImage.
type Image struct {
	// Image is the decoded image.
	Image image.Image

	// Format is the format name reported by the decoder, such as "png"
	// or "webp".
	Format string

	// Bytes is the raw downloaded payload.
	Bytes []byte

	// Attempts is the number of exchanges it took to obtain the image.
	Attempts int
}

// IsPlaceholder reports whether img has the dimensions of the
// placeholder image, PlaceholderWidth by PlaceholderHeight pixels.
func IsPlaceholder(img image.Image) bool {
	b := img.Bounds()
	return b.Dx() == PlaceholderWidth && b.Dy() == PlaceholderHeight
}

// FetchImage downloads the image at url, retrying until it obtains an
// acceptable image or the attempt budget is spent.
//
// Parameter maxAttempts is the total number of exchanges allowed, the
// first one included. If it is not positive, the Client's
// ImageAttempts is used, and if that is not positive either,
// DefaultImageAttempts.
//
// An attempt fails if the exchange fails (see Do), if the payload
// cannot be decoded as an image, or if the decoded image is a
// placeholder. Every failure consumes one attempt from the same
// budget. Once the budget is spent, or the ImageRetryDecider declines
// a retry, FetchImage returns a *FetchError wrapping the last failure.
//
// The context is checked before every attempt, after every failed
// attempt and while waiting between attempts; once it is done
// FetchImage returns a *ContextInactiveError and makes no further
// exchanges, whatever budget remains. Relative urls
// are resolved with BuildURL.
func (c *Client) FetchImage(ctx context.Context, url string, maxAttempts int) (*Image, error) {
	if ctx == nil {
		panic("restcore: nil context")
	}
	if err := ctx.Err(); err != nil {
		return nil, &ContextInactiveError{Method: http.MethodGet, URL: c.BuildURL(url), Err: err}
	}

	d, err := c.NewDescriptor(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	d.Header.Set(HeaderAccept, ImageAccept)
	if err = d.Validate(); err != nil {
		return nil, err
	}

	e := &request.Execution{
		Descriptor:  d,
		MaxAttempts: c.imageAttempts(maxAttempts),
	}

	h := c.Handlers
	h.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	img, err := c.fetchLoop(e, h)

	e.End = time.Now()
	h.run(AfterExecutionEnd, e)
	return img, err
}

func (c *Client) fetchLoop(e *request.Execution, h *HandlerGroup) (*Image, error) {
	d := e.Descriptor
	ctx := d.Context()
	policy := c.imagePolicy()
	for {
		if err := ctx.Err(); err != nil {
			return nil, &ContextInactiveError{Method: d.Method, URL: d.URL, Attempts: e.Attempt, Err: err}
		}

		env, err := c.exchange(e, h)
		if err == nil {
			var img *Image
			img, err = c.checkContent(e, env)
			h.run(AfterContentCheck, e)
			if err == nil {
				img.Attempts = e.Attempt + 1
				return img, nil
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &ContextInactiveError{Method: d.Method, URL: d.URL, Attempts: e.Attempt + 1, Err: ctxErr}
		}

		if !policy.Decide(e) {
			return nil, &FetchError{URL: d.URL, Attempts: e.Attempt + 1, Err: err}
		}

		wait := policy.Wait(e)
		c.logger().Warn().
			Err(err).
			Str("url", d.URL).
			Int("attempt", e.Attempt).
			Int("max_attempts", e.MaxAttempts).
			Stringer("transient", transient.Categorize(err)).
			Dur("wait", wait).
			Msg("image fetch attempt failed, retrying")

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, &ContextInactiveError{Method: d.Method, URL: d.URL, Attempts: e.Attempt + 1, Err: ctx.Err()}
			}
		}

		e.Attempt++
	}
}

// checkContent decodes the payload of a successful exchange and
// rejects it if it is not an image or is a placeholder. On rejection
// the execution's Err is set to the *ContentValidationError returned.
func (c *Client) checkContent(e *request.Execution, env *response.Envelope) (*Image, error) {
	url := e.Descriptor.URL
	b := env.Bytes()
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		e.Err = &ContentValidationError{URL: url, Reason: "undecodable payload", Err: err}
		return nil, e.Err
	}
	if c.placeholder()(img) {
		e.Err = &ContentValidationError{URL: url, Reason: "placeholder image"}
		return nil, e.Err
	}
	return &Image{Image: img, Format: format, Bytes: b}, nil
}

// FetchImages fetches several images concurrently, each with its own
// attempt budget of maxAttempts and its own retry state, and returns
// them in the order of urls. Concurrent fetches of a repeated url share
// one result.
//
// If any fetch fails, the contexts of the others are cancelled and
// FetchImages returns the first error.
func (c *Client) FetchImages(ctx context.Context, urls []string, maxAttempts int) ([]*Image, error) {
	g, gctx := errgroup.WithContext(ctx)
	var sf singleflight.Group
	imgs := make([]*Image, len(urls))
	for i, url := range urls {
		g.Go(func() error {
			v, err, _ := sf.Do(c.BuildURL(url), func() (interface{}, error) {
				return c.FetchImage(gctx, url, maxAttempts)
			})
			if err != nil {
				return err
			}
			imgs[i] = v.(*Image)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return imgs, nil
}

func (c *Client) imageAttempts(n int) int {
	if n > 0 {
		return n
	}
	if c.ImageAttempts > 0 {
		return c.ImageAttempts
	}
	return DefaultImageAttempts
}

// imagePolicy combines the attempt budget with the ImageRetryPolicy,
// or failing that the ImageRetryDecider and ImageRetryWaiter, into the
// retry policy of one image fetch.
func (c *Client) imagePolicy() retry.Policy {
	if p := c.ImageRetryPolicy; p != nil {
		return retry.NewPolicy(retry.Budget.And(p.Decide), p)
	}
	return retry.NewPolicy(retry.Budget.And(c.imageDecider()), c.imageWaiter())
}

func (c *Client) imageDecider() retry.DeciderFunc {
	if c.ImageRetryDecider != nil {
		return c.ImageRetryDecider.Decide
	}
	return retry.DefaultDecider
}

func (c *Client) imageWaiter() retry.Waiter {
	if c.ImageRetryWaiter != nil {
		return c.ImageRetryWaiter
	}
	return retry.Immediate
}

func (c *Client) placeholder() func(image.Image) bool {
	if c.Placeholder != nil {
		return c.Placeholder
	}
	return IsPlaceholder
}
