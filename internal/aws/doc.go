// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS configuration from the usual credential chain and
// uploads exported snapshots to S3 or an S3-compatible store.
package aws
