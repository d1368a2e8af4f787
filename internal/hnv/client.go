// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hnv

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/hnvctl/hnvctl/internal/config"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/version"
)

// RequestIDHeader is echoed back by the controller as the operation id.
const RequestIDHeader = "X-Ms-Client-Request-Id"

// maxMessageLen bounds how much of an unstructured error body ends up in a
// ServiceError.
const maxMessageLen = 256

// Client talks to one network controller.
type Client struct {
	base     *url.URL
	username string
	password string
	http     *retryablehttp.Client
}

// NewClient builds a Client from controller settings. Connection failures and
// 5xx answers are retried RetryCount times, RetryInterval apart.
func NewClient(c config.Controller) (*Client, error) {
	base, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse controller url %q: %w", c.URL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("controller url %q must be absolute: %w", c.URL, ErrValidation)
	}

	tlsCfg, err := tlsConfig(c)
	if err != nil {
		return nil, err
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = tlsCfg

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   c.RequestTimeout,
	}
	rc.RetryMax = c.RetryCount
	rc.RetryWaitMin = c.RetryInterval
	rc.RetryWaitMax = c.RetryInterval
	rc.Backoff = constantBackoff
	rc.CheckRetry = retryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{}

	log.Debugf("hnv client: url=%s user=%s insecure=%v retries=%d interval=%s",
		base.Redacted(), c.Username, c.AllowInsecure, c.RetryCount, c.RetryInterval)

	return &Client{
		base:     base,
		username: c.Username,
		password: c.Password,
		http:     rc,
	}, nil
}

// URL returns the controller base URL.
func (c *Client) URL() string {
	return c.base.Redacted()
}

// Username returns the configured user, if any.
func (c *Client) Username() string {
	return c.username
}

// GetResource fetches the document at path.
func (c *Client) GetResource(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// UpdateResource PUTs body at path. A non-empty etag is sent as If-Match so
// concurrent modifications are rejected by the controller.
func (c *Client) UpdateResource(ctx context.Context, path string, body []byte, etag string) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body, etag)
}

// RemoveResource DELETEs the resource at path.
func (c *Client) RemoveResource(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, etag string) ([]byte, error) {
	u := c.base.ResolveReference(&url.URL{Path: path})

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	if etag != "" {
		req.Header.Set("If-Match", etag)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	log.Debugf("%s %s request-id=%s", method, u.Path, requestID)
	log.Tracef("request body: %s", body)

	resp, err := c.http.Do(req)
	if err != nil {
		if isCertificateError(err) {
			return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrCertificateVerify, err)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}
	log.Debugf("%s %s -> %d (%d bytes)", method, u.Path, resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, fmt.Errorf("%s %s: %w: response is not JSON", method, path, ErrDataProcessing)
	}

	return data, nil
}

// errorMessage digs the human readable part out of an error body.
func errorMessage(data []byte) string {
	for _, path := range []string{"error.message", "message", "Message"} {
		if m := gjson.GetBytes(data, path); m.Exists() && m.String() != "" {
			return m.String()
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen] + "..."
	}
	return msg
}

func tlsConfig(c config.Controller) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.AllowInsecure, //nolint:gosec
	}

	if c.CABundle == "" {
		return cfg, nil
	}

	pem, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in CA bundle %s: %w", c.CABundle, ErrValidation)
	}
	cfg.RootCAs = pool

	return cfg, nil
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		invalid          x509.CertificateInvalidError
		hostname         x509.HostnameError
		verification     *tls.CertificateVerificationError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &invalid) ||
		errors.As(err, &hostname) ||
		errors.As(err, &verification)
}

// retryPolicy is retryablehttp's default policy without retries for any 4xx,
// 429 included.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp != nil && resp.StatusCode < http.StatusInternalServerError {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func constantBackoff(minWait, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return minWait
}

// leveledLogger routes retryablehttp's chatter through apex.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { log.Errorf("%s%s", msg, pairs(kv)) }
func (leveledLogger) Info(msg string, kv ...interface{})  { log.Debugf("%s%s", msg, pairs(kv)) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { log.Tracef("%s%s", msg, pairs(kv)) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { log.Warnf("%s%s", msg, pairs(kv)) }

func pairs(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
