// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restcore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gogama/restcore/timeout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer answers under a few fixed paths:
//
//	/echo         echoes method, headers and body as JSON
//	/list         a JSON array
//	/status/500   a 500 with a text body
//	/slow         waits for the client to give up
//	/flaky.png    fails twice with 503, then serves a real image
//	/tiny.png     always serves a placeholder image
type testServer struct {
	*httptest.Server
	t *testing.T

	lock  sync.Mutex
	flaky int
	tiny  int
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{t: t}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *testServer) handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/echo":
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"method":         r.Method,
			"accept":         r.Header.Get("Accept"),
			"authorization":  r.Header.Get("Authorization"),
			"authentication": r.Header.Get("Authentication"),
			"contentType":    r.Header.Get("Content-Type"),
			"requestID":      r.Header.Get("X-Request-ID"),
			"body":           string(body),
		})
	case "/list":
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1},{"id":2}]`)
	case "/status/500":
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "internal kaboom")
	case "/slow":
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	case "/flaky.png":
		s.lock.Lock()
		s.flaky++
		n := s.flaky
		s.lock.Unlock()
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(s.t, 24, 24))
	case "/tiny.png":
		s.lock.Lock()
		s.tiny++
		s.lock.Unlock()
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes(s.t, PlaceholderWidth, PlaceholderHeight))
	default:
		http.NotFound(w, r)
	}
}

func (s *testServer) count(path string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	switch path {
	case "/flaky.png":
		return s.flaky
	case "/tiny.png":
		return s.tiny
	}
	return 0
}

func TestServer(t *testing.T) {
	s := newTestServer(t)
	newClient := func() *Client {
		cl := &Client{Endpoint: s.URL, HTTPDoer: s.Client()}
		cl.SetAuthorization("Bearer abc")
		cl.SetAuthenticationHeader("tok")
		return cl
	}

	t.Run("echo", func(t *testing.T) {
		cl := newClient()
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			t.Run(method, func(t *testing.T) {
				d, err := cl.NewDescriptor(context.Background(), method, "/echo", nil)
				require.NoError(t, err)
				if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
					d, err = cl.NewDescriptor(context.Background(), method, "/echo", `{"k":"v"}`)
					require.NoError(t, err)
				}

				env, err := cl.Do(d)

				require.NoError(t, err)
				m := env.JSON()
				assert.Equal(t, method, m["method"])
				assert.Equal(t, "application/json", m["accept"])
				assert.Equal(t, "Bearer abc", m["authorization"])
				assert.Equal(t, "tok", m["authentication"])
				assert.NotEmpty(t, m["requestID"])
				if len(d.Body) > 0 {
					assert.Equal(t, `{"k":"v"}`, m["body"])
					assert.Equal(t, "application/json", m["contentType"])
				}
			})
		}
	})
	t.Run("list", func(t *testing.T) {
		env, err := newClient().Get(context.Background(), "/list")
		require.NoError(t, err)
		assert.Len(t, env.JSONArray(), 2)
		assert.Empty(t, env.JSON())
		assert.Equal(t, `[{"id":1},{"id":2}]`, env.Text())
	})
	t.Run("500", func(t *testing.T) {
		_, err := newClient().Post(context.Background(), "/status/500", `{"x":1}`)
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, 500, terr.StatusCode())
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "POST")
		assert.Contains(t, err.Error(), s.URL+"/status/500")
		assert.Contains(t, err.Error(), "internal kaboom")
	})
	t.Run("timeout", func(t *testing.T) {
		cl := newClient()
		cl.TimeoutPolicy = timeout.Fixed(50 * time.Millisecond)
		_, err := cl.Get(context.Background(), "/slow")
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.True(t, terr.Timeout())
	})
	t.Run("flaky image", func(t *testing.T) {
		img, err := newClient().FetchImage(context.Background(), "/flaky.png", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, img.Attempts)
		assert.Equal(t, 3, s.count("/flaky.png"))
	})
	t.Run("placeholder image", func(t *testing.T) {
		_, err := newClient().FetchImage(context.Background(), "/tiny.png", 3)
		var cerr *ContentValidationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 3, s.count("/tiny.png"))
	})
}
