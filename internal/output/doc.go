// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns query results into what the user sees: filtered,
// transformed and sorted rows rendered as a text table, json, yaml or the raw
// controller payload. It also prints the attribute schema of a resource kind
// for --schema.
package output
