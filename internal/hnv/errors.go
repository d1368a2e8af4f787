// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hnv

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Every error returned by this package and by package model
// wraps one of these so callers can branch with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrTimeout           = errors.New("the request timed out")
	ErrService           = errors.New("service error")
	ErrCertificateVerify = errors.New("certificate verification failed")
	ErrDataProcessing    = errors.New("invalid response data")
	ErrValidation        = errors.New("validation failed")
)

// ServiceError is a non-2xx answer from the controller.
type ServiceError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Unwrap maps 404 onto ErrNotFound and everything else onto ErrService.
func (e *ServiceError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrService
}

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	URL       string
	Operation string // e.g., "list", "commit"
	Kind      string // e.g., "LogicalNetwork"
	ID        string
}

// Friendly wraps an error with a contextual, user-friendly message while
// preserving the original sentinel for errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	op := nonEmpty(ctx.Operation, "request")
	url := nonEmpty(ctx.URL, "<unknown>")
	what := nonEmpty(ctx.Kind, "resource")
	if ctx.ID != "" {
		what = fmt.Sprintf("%s %q", what, ctx.ID)
	}

	var se *ServiceError
	switch {
	case errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s on %s: authentication failed (401). Set --username/--password or HNVCTL_USERNAME/HNVCTL_PASSWORD: %w",
			op, url, ErrService)

	case errors.As(err, &se) && se.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s on %s: access denied (403): %w", op, what, url, ErrService)

	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%s: %s on %s: %w (404)", op, what, url, ErrNotFound)

	case errors.Is(err, ErrCertificateVerify):
		return fmt.Errorf("%s on %s: %w. Set --ca-bundle or --insecure", op, url, ErrCertificateVerify)

	case errors.Is(err, ErrTimeout):
		return fmt.Errorf("%s: %s on %s did not settle: %w", op, what, url, ErrTimeout)

	case errors.Is(err, ErrValidation):
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s %s on %s: %w", op, what, url, err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
