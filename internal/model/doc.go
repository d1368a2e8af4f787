// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package model holds the typed network controller resources (logical
// networks, virtual networks, interfaces, ACLs, route tables and their
// children), their endpoints and validation rules, and a Manager that gets,
// lists, commits and removes them over an hnv transport.
package model
