// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hnvctl/hnvctl/internal/log"
)

// PropertiesPrefix is where keys without a leading dot are looked up.
const PropertiesPrefix = "properties."

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one column of query output.
type Attr struct {
	// Key is the dot path into the resource document.
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs that only exist to filter or sort on.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey names the value in json/yaml output and titles the text
	// column.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is applied to string values before rendering.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attr's TransformSpec to value. Only strings are
// transformed; anything else is returned untouched.
//
//	t  RFC3339 timestamp to local time
//	T  RFC3339 timestamp to "3 hours ago"
//	l  lower case
//	u  upper case
//	n  truncate to n runes; -n keeps both ends around ".."
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		log.Tracef("not transforming %T", value)
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = transformTime(result, strings.Contains(a.TransformSpec, "T"))
	}

	// The right-most case letter wins so an attr's own spec beats a global
	// one prepended to it.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	switch {
	case lastL > lastU:
		result = strings.ToLower(result)
	case lastU > lastL:
		result = strings.ToUpper(result)
	}

	// Same rule for lengths: the last number given wins.
	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) > 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = truncate(result, l)
	}

	return result
}

func transformTime(value string, ago bool) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	local := t.In(time.Local)
	if ago {
		return humanize.Time(local)
	}
	return local.Format("2006-01-02T15:04:05MST")
}

func truncate(s string, l int) string {
	abs := int(math.Abs(float64(l)))
	if abs == 0 || len(s) <= abs {
		return s
	}
	if l > 0 {
		return s[:l]
	}
	half := abs/2 - 1
	if half < 1 {
		return s[:abs]
	}
	return s[:half] + ".." + s[len(s)-half:]
}

// AttrList is the ordered set of columns for a query.
type AttrList []Attr

// Set parses a comma separated --attrs value and merges it into the list.
// Each spec is key[:outputKey[:transform]]. A leading ! keeps the attr out
// of the output. Keys starting with . are read from the document root, the
// rest from under properties. The key * carries a transform applied to
// every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")

		attr := Attr{Include: true, Key: strings.TrimSpace(fields[0])}
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute key in %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[1]) != "":
			attr.OutputKey = strings.TrimSpace(fields[1])
		default:
			attr.OutputKey = attr.Key
		}

		if len(fields) > 2 {
			attr.TransformSpec = strings.TrimSpace(fields[2])
		}

		// A spec naming an existing attr (a command default, say) updates it in
		// place.
		for i := range *a {
			existing := &(*a)[i]
			if existing.OutputKey == attr.Key || existing.Key == resolveKey(attr.Key) {
				existing.Include = attr.Include
				existing.OutputKey = attr.OutputKey
				existing.TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		attr.Key = resolveKey(attr.Key)
		*a = append(*a, attr)
		log.Tracef("attr added: %+v", attr)
	}

	return nil
}

func resolveKey(key string) string {
	switch {
	case key == "*":
		return key
	case strings.HasPrefix(key, "."):
		return key[1:]
	default:
		return PropertiesPrefix + key
	}
}

// SetGlobalTransformSpec prepends the transform of the first * attr to
// every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global transform applied: spec=%s", spec)

	return nil
}

// String renders the list in --attrs syntax with resolved keys.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
