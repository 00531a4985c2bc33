// Copyright 2026 The restcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "TransportError", TransportError.String())
	assert.Equal(t, "Cancelled", Cancelled.String())
	assert.Equal(t, "Unknown", Outcome(-1).String())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Success, Classify(200, nil, false))
	assert.Equal(t, Success, Classify(204, nil, false))
	assert.Equal(t, Success, Classify(299, nil, false))
	assert.Equal(t, TransportError, Classify(199, nil, false))
	assert.Equal(t, TransportError, Classify(300, nil, false))
	assert.Equal(t, TransportError, Classify(404, nil, false))
	assert.Equal(t, TransportError, Classify(500, nil, false))
	assert.Equal(t, TransportError, Classify(200, errors.New("body read failed"), false))
	assert.Equal(t, TransportError, Classify(0, errors.New("connection refused"), false))
	assert.Equal(t, Cancelled, Classify(0, errors.New("context canceled"), true))
}

func TestEnvelope_Bytes(t *testing.T) {
	t.Run("nil body", func(t *testing.T) {
		env := New(Success, 204, nil, nil)
		require.NotNil(t, env.Bytes())
		assert.Len(t, env.Bytes(), 0)
		assert.Equal(t, "", env.Text())
	})
	t.Run("zero value", func(t *testing.T) {
		env := &Envelope{}
		assert.NotNil(t, env.Bytes())
	})
	t.Run("unchanged", func(t *testing.T) {
		b := []byte{0x89, 'P', 'N', 'G'}
		env := New(Success, 200, http.Header{"Content-Type": {"image/png"}}, b)
		assert.Equal(t, b, env.Bytes())
		assert.True(t, env.OK())
		assert.Equal(t, "image/png", env.Header.Get("Content-Type"))
	})
}

func TestEnvelope_Text(t *testing.T) {
	env := New(Success, 200, nil, []byte("héllo"))
	assert.Equal(t, "héllo", env.Text())
	assert.Equal(t, "héllo", env.Text())
	bad := New(Success, 200, nil, []byte{0xff, 'a'})
	assert.Equal(t, "\xffa", bad.Text())
}

func TestEnvelope_JSON(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want map[string]interface{}
	}{
		{name: "object", body: `{"a":1}`, want: map[string]interface{}{"a": float64(1)}},
		{name: "nested", body: `{"a":{"b":[true,null]}}`, want: map[string]interface{}{"a": map[string]interface{}{"b": []interface{}{true, nil}}}},
		{name: "not valid json", body: "not valid json", want: map[string]interface{}{}},
		{name: "array", body: `[1,2]`, want: map[string]interface{}{}},
		{name: "null", body: `null`, want: map[string]interface{}{}},
		{name: "empty", body: ``, want: map[string]interface{}{}},
		{name: "truncated", body: `{"a":`, want: map[string]interface{}{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			env := New(Success, 200, nil, []byte(testCase.body))
			var got map[string]interface{}
			require.NotPanics(t, func() { got = env.JSON() })
			require.NotNil(t, got)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestEnvelope_JSONArray(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want []interface{}
	}{
		{name: "array", body: `[1,"two",{"three":3}]`, want: []interface{}{float64(1), "two", map[string]interface{}{"three": float64(3)}}},
		{name: "not valid json", body: "not valid json", want: []interface{}{}},
		{name: "object", body: `{"a":1}`, want: []interface{}{}},
		{name: "null", body: `null`, want: []interface{}{}},
		{name: "empty", body: ``, want: []interface{}{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			env := New(Success, 200, nil, []byte(testCase.body))
			got := env.JSONArray()
			require.NotNil(t, got)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestEnvelope_Decode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	env := New(Success, 200, nil, []byte(`{"name":"ham"}`))
	require.NoError(t, env.Decode(&v))
	assert.Equal(t, "ham", v.Name)
	assert.Error(t, New(Success, 200, nil, []byte("eggs")).Decode(&v))
}
