// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ shows how two resources of the same kind differ, ignoring
// what the controller owns, and offers a terminal picker for choosing the two.
package differ
