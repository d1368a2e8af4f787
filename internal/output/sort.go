// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"net/netip"
	"sort"
	"strings"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec splits a --sort value such as "-vlanID,!resourceId". A
// leading - sorts descending, a leading ! compares strings case-sensitively.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		var k sortKey
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			k.descending = true
		}
		if strings.HasPrefix(field, "!") {
			field = strings.TrimPrefix(field, "!")
			k.caseSensitive = true
		}
		if field == "" {
			continue
		}
		k.field = field
		keys = append(keys, k)
	}
	return keys
}

// SortDataset orders resultSet in place by spec. Numbers compare
// numerically and addresses or prefixes such as 10.0.2.0/24 compare by
// address. Rows missing a field sort after rows that have it, whatever the
// direction.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, k := range keys {
			oneValue, twoValue := resultSet[one][k.field], resultSet[two][k.field]

			switch {
			case oneValue == nil && twoValue == nil:
				continue
			case oneValue == nil:
				return false
			case twoValue == nil:
				return true
			}

			c := compareValues(oneValue, twoValue, k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(one, two interface{}, caseSensitive bool) int {
	if a, ok := one.(float64); ok {
		if b, ok := two.(float64); ok {
			return cmp.Compare(a, b)
		}
	}

	oneStr, twoStr := InterfaceToString(one), InterfaceToString(two)

	if a, ok := parseAddr(oneStr); ok {
		if b, ok := parseAddr(twoStr); ok {
			if c := a.Addr().Compare(b.Addr()); c != 0 {
				return c
			}
			return cmp.Compare(a.Bits(), b.Bits())
		}
	}

	if !caseSensitive {
		oneStr, twoStr = strings.ToLower(oneStr), strings.ToLower(twoStr)
	}
	return strings.Compare(oneStr, twoStr)
}

// parseAddr reads s as a prefix, or as a bare address with a full-length
// prefix.
func parseAddr(s string) (netip.Prefix, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p, true
	}
	if a, err := netip.ParseAddr(s); err == nil {
		return netip.PrefixFrom(a, a.BitLen()), true
	}
	return netip.Prefix{}, false
}
