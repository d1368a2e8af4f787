// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot exports every top-level resource on a controller into one
// JSON document and stores it on stdout, a local file or S3. The document is
// also a manifest, so apply can replay it.
package snapshot
