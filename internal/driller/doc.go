// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller digs values out of controller documents by dot path so
// --attrs and --filter can reach nested properties.
package driller
