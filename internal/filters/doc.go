// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows query results with --filter expressions.
//
// An expression is key, operand and target. The key is the OutputKey of one
// of the query's attrs (see package attrs), so filtering on a column that is
// not displayed needs a !-excluded attr. Expressions are separated by commas,
// or by $HNVCTL_FILTER_DELIM when values contain commas.
//
// Operands, each negatable with a leading !:
//
//   - = : equal
//   - ~ : equal, ignoring case
//   - ^ : prefix
//   - @ : substring, or membership for list and map values
//   - / : regular expression
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//
// Examples:
//
//   - "provisioningState!=Succeeded"
//   - "vlanID>100"
//   - "resourceId^tenant-"
//   - "dnsServers@10.0.0.1"
//
// A row whose value for a filter key is missing never matches.
package filters
