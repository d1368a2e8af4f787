// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key optionally followed by [],
// [n] or [*].
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Driller walks jsonData along a dot path such as
// properties.subnets[0].properties.addressPrefix.
//
// An array reached without an index collapses to its only element when it
// has exactly one, and is returned whole otherwise. [*] always returns the
// whole array. An out of range index or malformed segment yields an empty
// result.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)
	if path == "" {
		return current
	}

	for _, seg := range strings.Split(path, ".") {
		m := segmentRegex.FindStringSubmatch(seg)
		if m == nil {
			return gjson.Result{}
		}

		val := current.Get(m[1])
		if val.IsArray() {
			arr := val.Array()
			switch m[3] {
			case "*":
			case "":
				if len(arr) == 1 {
					val = arr[0]
				}
			default:
				i, err := strconv.Atoi(m[3])
				if err != nil || i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			}
		}

		current = val
	}

	return current
}
