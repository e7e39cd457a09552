// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()

	zr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer zr.Close()

	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

// echo answers with the request body prefixed by "echo: ".
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Length", "999")
	w.WriteHeader(http.StatusOK)
	w.Write(append([]byte("echo: "), body...))
})

// ---- Table test ----

func TestGZip(t *testing.T) {
	patch := `{"cookie":{"order":7},"patch":[` + strings.Repeat(`{"op":"put","key":"todo/l1/t1","value":{}},`, 200) + `]}`

	tests := []struct {
		name            string
		acceptEncoding  string
		contentEncoding string
		gzipRequest     bool
		body            string
		wantStatus      int
		wantGzipped     bool
		wantBody        string
	}{
		{
			name:       "plain request and response",
			body:       "pull",
			wantStatus: http.StatusOK,
			wantBody:   "echo: pull",
		},
		{
			name:           "response compressed when accepted",
			acceptEncoding: "deflate, gzip;q=1.0",
			body:           patch,
			wantStatus:     http.StatusOK,
			wantGzipped:    true,
			wantBody:       "echo: " + patch,
		},
		{
			name:            "request body decompressed",
			contentEncoding: "gzip",
			gzipRequest:     true,
			body:            `{"pullVersion":1}`,
			wantStatus:      http.StatusOK,
			wantBody:        `echo: {"pullVersion":1}`,
		},
		{
			name:            "both directions",
			acceptEncoding:  "gzip",
			contentEncoding: "gzip",
			gzipRequest:     true,
			body:            "push",
			wantStatus:      http.StatusOK,
			wantGzipped:     true,
			wantBody:        "echo: push",
		},
		{
			name:            "invalid gzip request body",
			contentEncoding: "gzip",
			body:            "not gzipped data",
			wantStatus:      http.StatusBadRequest,
			wantBody:        `{"error":"invalid gzip data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader = strings.NewReader(tt.body)
			if tt.gzipRequest {
				body = gzipBytes(t, []byte(tt.body))
			}

			req := httptest.NewRequest(http.MethodPost, "/test", body)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			if tt.contentEncoding != "" {
				req.Header.Set("Content-Encoding", tt.contentEncoding)
			}

			rr := httptest.NewRecorder()
			withGZip(echo).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))

			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Empty(t, rr.Header().Get("Content-Length"), "stale Content-Length must be dropped")
				assert.Equal(t, tt.wantBody, gunzip(t, rr.Body))
				return
			}

			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestGZip_CompressesPatches(t *testing.T) {
	payload := strings.Repeat(`{"op":"put","key":"todo/l1/t1","value":{"text":"milk"}},`, 500)

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(payload))
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(echo).ServeHTTP(rr, req)

	assert.Less(t, rr.Body.Len(), len(payload)/10)
}

func TestGZip_PoolReuse(t *testing.T) {
	handler := withGZip(echo)

	for i := 0; i < 10; i++ {
		data := strings.Repeat("x", i+1)
		req := httptest.NewRequest(http.MethodPost, "/test", gzipBytes(t, []byte(data)))
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, "request %d", i)
		assert.Equal(t, "echo: "+data, gunzip(t, rr.Body), "request %d", i)
	}
}

func TestGZip_KeepsStatusCode(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"nope"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, `{"error":"nope"}`, gunzip(t, rr.Body))
}

func TestWrappedReadCloser_Close(t *testing.T) {
	var closed bool
	wrapped := &wrappedReadCloser{Reader: strings.NewReader("test"), OnClose: func() { closed = true }}

	assert.NoError(t, wrapped.Close())
	assert.True(t, closed)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("test")}).Close())
}
