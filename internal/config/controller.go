// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Defaults for the hnv: section.
const (
	DefaultURL           = "http://127.0.0.1/"
	DefaultRetryCount    = 5
	DefaultRetryInterval = time.Second
)

// Controller describes how to reach and authenticate against the network
// controller REST API.
type Controller struct {
	URL            string
	Username       string
	Password       string
	AllowInsecure  bool
	CABundle       string
	RetryCount     int
	RetryInterval  time.Duration
	RequestTimeout time.Duration
}

// LoadController reads the hnv: section, filling in defaults for anything
// missing. The result is not validated; callers apply flag overrides first and
// then call Validate.
func LoadController() (Controller, error) {
	var (
		c   Controller
		err error
	)

	if c.URL, err = GetString("hnv.url", DefaultURL); err != nil {
		return c, fmt.Errorf("hnv.url: %w", err)
	}
	if c.Username, err = GetString("hnv.username", ""); err != nil {
		return c, fmt.Errorf("hnv.username: %w", err)
	}
	if c.Password, err = GetString("hnv.password", ""); err != nil {
		return c, fmt.Errorf("hnv.password: %w", err)
	}
	if c.AllowInsecure, err = GetBool("hnv.https_allow_insecure", false); err != nil {
		return c, fmt.Errorf("hnv.https_allow_insecure: %w", err)
	}
	if c.CABundle, err = GetString("hnv.https_ca_bundle", ""); err != nil {
		return c, fmt.Errorf("hnv.https_ca_bundle: %w", err)
	}
	if c.RetryCount, err = GetInt("hnv.retry_count", DefaultRetryCount); err != nil {
		return c, fmt.Errorf("hnv.retry_count: %w", err)
	}
	if c.RetryInterval, err = GetDuration("hnv.retry_interval", DefaultRetryInterval); err != nil {
		return c, fmt.Errorf("hnv.retry_interval: %w", err)
	}
	if c.RequestTimeout, err = GetDuration("hnv.http_request_timeout", 0); err != nil {
		return c, fmt.Errorf("hnv.http_request_timeout: %w", err)
	}

	return c, nil
}

// Validate checks the controller settings.
func (c *Controller) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL,
			validation.Required,
			is.URL,
			validation.By(httpScheme),
		),
		validation.Field(&c.RetryCount, validation.Min(0)),
		validation.Field(&c.RetryInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.CABundle, validation.By(fileExists)),
	)
}

func httpScheme(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_url_invalid", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_url_scheme", "must use http or https")
	}
	return nil
}

func fileExists(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil || info.IsDir() {
		return validation.NewError("validation_file_missing", "must be an existing file")
	}
	return nil
}
