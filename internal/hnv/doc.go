// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package hnv is the HTTP transport for the network controller's northbound
// REST API (/networking/v1). It owns authentication, TLS, retries and the
// mapping of HTTP failures onto the package's sentinel errors. It knows
// nothing about resource shapes; see package model for those.
package hnv
