// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hnv

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/hnvctl/hnvctl/internal/cacheutil"
	"github.com/hnvctl/hnvctl/internal/log"
)

// Cached serves GETs from the on-disk cache when HNVCTL_CACHE is enabled.
// Mutations pass straight through. Only read-only query paths should use it;
// polling loops need live answers.
type Cached struct {
	*Client
	MaxAge time.Duration
}

// NewCached wraps c, dropping cache entries older than maxAge first.
func NewCached(c *Client, maxAge time.Duration) *Cached {
	if cacheutil.Enabled() {
		if err := cacheutil.Purge(maxAge); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
	}
	return &Cached{Client: c, MaxAge: maxAge}
}

// GetResource returns the cached document for path, fetching and storing it
// on a miss.
func (c *Cached) GetResource(ctx context.Context, path string) ([]byte, error) {
	scope := c.scope()

	if entry, ok := cacheutil.Read(scope, path, c.MaxAge); ok {
		log.Debugf("cache hit: %s", entry.Path)
		return entry.Data, nil
	}

	data, err := c.Client.GetResource(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := cacheutil.Write(scope, path, data); err != nil {
		log.WithError(err).Warn("failed to write response to cache")
	}

	return data, nil
}

// scope keys the cache by controller base URL (scheme, host and path prefix)
// and then by user, so two controllers or two identities never share answers.
func (c *Cached) scope() []string {
	user := c.username
	if user == "" {
		user = "anonymous"
	}
	prefix := url.PathEscape(strings.Trim(c.base.Path, "/"))
	return []string{c.base.Scheme, c.base.Host, prefix, user}
}
