// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hnvctl/hnvctl/internal/attrs"
	"github.com/hnvctl/hnvctl/internal/driller"
	"github.com/hnvctl/hnvctl/internal/log"
)

// DelimiterEnv overrides the "," between filter expressions, for values that
// contain commas.
const DelimiterEnv = "HNVCTL_FILTER_DELIM"

// filterRegex splits an expression into key, optional !-negated operand and
// target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses spec. Expressions with an empty key are logged and
// dropped.
func BuildFilters(spec string) []Filter {
	var filters []Filter
	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimiterEnv); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(expr)
		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter, empty key: %s", expr)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: strings.TrimPrefix(operand, "!"),
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the candidates matching every filter in spec and
// projects each onto the attrs, keyed by OutputKey. Transforms are left to
// the caller.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	var out []map[string]interface{}
	for _, candidate := range candidates.Array() {
		if !matches(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		out = append(out, row)
	}

	return out
}

// matches reports whether candidate satisfies every filter. A filter naming
// no known attr is reported once on stderr and otherwise ignored.
func matches(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := keyFor(al, filter.Key)
		if key == "" {
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Errorf("%s", msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			ok = checkNumericOperand(v, filter)
		default:
			ok = filter.Operand == "@" && checkContainsOperand(value, filter)
		}
		if !ok {
			return false
		}
	}

	return true
}

func keyFor(al attrs.AttrList, outputKey string) string {
	for _, attr := range al {
		if attr.OutputKey == outputKey {
			return attr.Key
		}
	}
	return ""
}

// checkContainsOperand tests membership of filter.Value in a list or map.
func checkContainsOperand(value interface{}, filter Filter) bool {
	var found bool
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if fmt.Sprint(item) == filter.Value {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = v[filter.Value]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

// checkNumericOperand supports =, < and >.
func checkNumericOperand(value float64, filter Filter) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	var result bool
	switch filter.Operand {
	case "=":
		result = value == target
	case ">":
		result = value > target
	case "<":
		result = value < target
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
	return result != filter.Negate
}

// checkStringOperand supports = (equal), ~ (equal ignoring case), ^ (prefix),
// < and > (lexical), @ (substring) and / (regex).
func checkStringOperand(value string, filter Filter) bool {
	var result bool
	switch filter.Operand {
	case "=":
		result = value == filter.Value
	case "~":
		result = strings.EqualFold(value, filter.Value)
	case "^":
		result = strings.HasPrefix(value, filter.Value)
	case ">":
		result = value > filter.Value
	case "<":
		result = value < filter.Value
	case "@":
		result = strings.Contains(value, filter.Value)
	case "/":
		re, err := regexp.Compile(filter.Value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		result = re.MatchString(value)
	default:
		log.Errorf("unsupported filtering operand: %q", filter.Operand)
		return false
	}
	return result != filter.Negate
}
