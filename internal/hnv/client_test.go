// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hnv

import (
	"context"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnvctl/hnvctl/internal/config"
)

func testController(url string) config.Controller {
	return config.Controller{
		URL:           url,
		Username:      "admin",
		Password:      "s3cret",
		RetryCount:    2,
		RetryInterval: time.Millisecond,
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(testController(srv.URL))
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient(config.Controller{URL: "/networking"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetResource_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/networking/v1/logicalNetworks/ln1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "hnvctl/")
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "s3cret", pass)
		_, _ = io.WriteString(w, `{"resourceId":"ln1"}`)
	}))
	defer srv.Close()

	data, err := newTestClient(t, srv).GetResource(context.Background(), "/networking/v1/logicalNetworks/ln1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"resourceId":"ln1"}`, string(data))
}

func TestGetResource_NoAuthWithoutUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c, err := NewClient(config.Controller{URL: srv.URL})
	require.NoError(t, err)
	_, err = c.GetResource(context.Background(), "/networking/v1/virtualNetworks/")
	assert.NoError(t, err)
}

func TestUpdateResource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json; charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Equal(t, `W/"42"`, r.Header.Get("If-Match"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"resourceId":"vn1"}`, string(body))
		_, _ = io.WriteString(w, `{"resourceId":"vn1","etag":"W/\"43\""}`)
	}))
	defer srv.Close()

	data, err := newTestClient(t, srv).UpdateResource(context.Background(),
		"/networking/v1/virtualNetworks/vn1", []byte(`{"resourceId":"vn1"}`), `W/"42"`)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"etag"`)
}

func TestUpdateResource_NoEtag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("If-Match"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	data, err := newTestClient(t, srv).UpdateResource(context.Background(), "/x", []byte(`{}`), "")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRemoveResource(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(t, srv).RemoveResource(context.Background(), "/networking/v1/routeTables/rt1"))
	assert.Equal(t, http.MethodDelete, method)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
		attempts int32
	}{
		{"not found", http.StatusNotFound, `{"error":{"message":"Resource not found."}}`, ErrNotFound, "Resource not found.", 1},
		{"bad request not retried", http.StatusBadRequest, `{"message":"bad vlan"}`, ErrService, "bad vlan", 1},
		{"server error retried", http.StatusInternalServerError, `oops`, ErrService, "oops", 3},
		{"unauthorized", http.StatusUnauthorized, ``, ErrService, "", 1},
		{"too many requests not retried", http.StatusTooManyRequests, `{"message":"slow down"}`, ErrService, "slow down", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).GetResource(context.Background(), "/networking/v1/logicalNetworks/ln1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.message, se.Message)
			assert.Equal(t, tt.attempts, attempts.Load())
		})
	}
}

func TestGetResource_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>proxy</html>`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).GetResource(context.Background(), "/x")
	assert.ErrorIs(t, err, ErrDataProcessing)
}

func TestGetResource_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv).GetResource(ctx, "/x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	t.Run("untrusted", func(t *testing.T) {
		cfg := testController(srv.URL)
		cfg.RetryCount = 0
		c, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = c.GetResource(context.Background(), "/x")
		assert.ErrorIs(t, err, ErrCertificateVerify)
	})

	t.Run("insecure", func(t *testing.T) {
		cfg := testController(srv.URL)
		cfg.AllowInsecure = true
		c, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = c.GetResource(context.Background(), "/x")
		assert.NoError(t, err)
	})

	t.Run("ca bundle", func(t *testing.T) {
		bundle := filepath.Join(t.TempDir(), "ca.pem")
		block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
		require.NoError(t, os.WriteFile(bundle, block, 0o600))

		cfg := testController(srv.URL)
		cfg.CABundle = bundle
		c, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = c.GetResource(context.Background(), "/x")
		assert.NoError(t, err)
	})

	t.Run("empty ca bundle", func(t *testing.T) {
		bundle := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(bundle, []byte("not a cert"), 0o600))

		cfg := testController(srv.URL)
		cfg.CABundle = bundle
		_, err := NewClient(cfg)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCached(t *testing.T) {
	t.Setenv("HNVCTL_CACHE", "1")
	t.Setenv("HNVCTL_CACHE_DIR", t.TempDir())

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{"value":[]}`)
	}))
	defer srv.Close()

	cached := NewCached(newTestClient(t, srv), time.Hour)
	for i := 0; i < 3; i++ {
		data, err := cached.GetResource(context.Background(), "/networking/v1/logicalNetworks/")
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":[]}`, string(data))
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestCached_ScopedByBaseURL(t *testing.T) {
	t.Setenv("HNVCTL_CACHE", "1")
	t.Setenv("HNVCTL_CACHE_DIR", t.TempDir())

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{"value":[]}`)
	}))
	defer srv.Close()

	for _, base := range []string{srv.URL, srv.URL + "/tenant-a", srv.URL + "/tenant-b", srv.URL} {
		c, err := NewClient(testController(base))
		require.NoError(t, err)
		_, err = NewCached(c, time.Hour).GetResource(context.Background(), "/networking/v1/logicalNetworks/")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestCached_Scope(t *testing.T) {
	scope := func(raw string) []string {
		c, err := NewClient(testController(raw))
		require.NoError(t, err)
		return NewCached(c, 0).scope()
	}

	assert.Equal(t, []string{"https", "nc.example.com:8443", "", "admin"}, scope("https://nc.example.com:8443/"))
	assert.NotEqual(t, scope("https://nc.example.com/"), scope("http://nc.example.com/"))
	assert.NotEqual(t, scope("https://nc.example.com/a/b"), scope("https://nc.example.com/a_b"))
	assert.Equal(t, scope("https://nc.example.com"), scope("https://nc.example.com/"))
}

func TestCached_Disabled(t *testing.T) {
	t.Setenv("HNVCTL_CACHE", "")
	t.Setenv("HNVCTL_CACHE_DIR", t.TempDir())

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	cached := NewCached(newTestClient(t, srv), time.Hour)
	_, _ = cached.GetResource(context.Background(), "/x")
	_, _ = cached.GetResource(context.Background(), "/x")
	assert.Equal(t, int32(2), hits.Load())
}
