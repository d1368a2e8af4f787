// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/hnvctl/hnvctl/internal/attrs"
	"github.com/hnvctl/hnvctl/internal/log"
)

const (
	envelopeTag = "envelope"
	propertyTag = "property"
)

// schemaTag is one attribute discovered from a resource type's json tags.
type schemaTag struct {
	Kind string
	// Name is the full dot path in the resource document.
	Name string
}

// print renders the tag in --attrs syntax.
func (t schemaTag) print() string {
	if strings.HasPrefix(t.Name, attrs.PropertiesPrefix) {
		return strings.TrimPrefix(t.Name, attrs.PropertiesPrefix)
	}
	return "." + t.Name
}

// maxSchemaDepth stops the walk below properties.x.y.
const maxSchemaDepth = 2

// DumpSchema writes the attrs available for typ, a resource struct type, to
// w. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Attributes available to the --attrs flag. Envelope attributes start with a
dot, the rest are read from properties. Collections of nested resources are
not expanded; use --output=raw to see them.`)
	fmt.Fprintln(w, "")

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	tags := dumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kind == tags[j].Kind {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].Kind < tags[j].Kind
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker walks typ's json tags. Embedded structs are flattened into
// holder.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]

		fieldType := field.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		if field.Anonymous && name == "" {
			if fieldType.Kind() == reflect.Struct {
				tags = append(tags, dumpSchemaWalker(holder, fieldType, depth)...)
			}
			continue
		}
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}

		path := name
		if holder != "" {
			path = holder + "." + name
		}

		// The properties object is a container, not an attribute.
		if depth == 0 && name == "properties" {
			tags = append(tags, dumpSchemaWalker(path, fieldType, depth+1)...)
			continue
		}

		kind := envelopeTag
		if strings.HasPrefix(path, attrs.PropertiesPrefix) {
			kind = propertyTag
		}
		tags = append(tags, schemaTag{Kind: kind, Name: path})

		if depth < maxSchemaDepth && fieldType.Kind() == reflect.Struct {
			log.Debugf("descending into %s (%s)", path, fieldType)
			tags = append(tags, dumpSchemaWalker(path, fieldType, depth+1)...)
		}
	}

	return tags
}
