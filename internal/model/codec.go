// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/hnvctl/hnvctl/internal/hnv"
)

// Decode parses one API document as a resource of kind k. Ids present in p
// fill in the client-side parent ids the controller does not return, and
// are then pushed down into nested children.
func Decode(k *Kind, raw []byte, p Path) (Resource, error) {
	r := k.New()

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(r); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w: %v", k.Name, hnv.ErrDataProcessing, err)
	}

	b := r.Envelope()
	if p.ParentID != "" {
		b.ParentID = p.ParentID
	}
	if p.GrandParentID != "" {
		b.GrandParentID = p.GrandParentID
	}
	if b.ResourceID == "" {
		b.ResourceID = p.ResourceID
	}
	r.link()

	return r, nil
}

// Dump renders r as a generic JSON document. Unless includeReadOnly is set,
// envelope keys the controller owns, provisioningState and the kind's
// read-only properties are dropped, recursively for nested children.
func Dump(r Resource, includeReadOnly bool) (map[string]any, error) {
	r.link()

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Kind().Name, err)
	}

	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Kind().Name, err)
	}

	if !includeReadOnly {
		stripReadOnly(doc, r.Kind())
	}
	return doc, nil
}

// DumpJSON is Dump followed by json.Marshal.
func DumpJSON(r Resource, includeReadOnly bool) ([]byte, error) {
	doc, err := Dump(r, includeReadOnly)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// DumpYAML is Dump rendered as YAML. Numbers come out as YAML numbers so the
// result reads back as a manifest.
func DumpYAML(r Resource, includeReadOnly bool) ([]byte, error) {
	doc, err := Dump(r, includeReadOnly)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(plainNumbers(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Kind().Name, err)
	}
	return out, nil
}

// plainNumbers replaces the json.Number leaves of v with int64 or float64.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = plainNumbers(item)
		}
	case []any:
		for i, item := range t {
			t[i] = plainNumbers(item)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}

// ProvisioningState returns r's last reported provisioning state, or "" if
// it has none.
func ProvisioningState(r Resource) string {
	data, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return gjson.GetBytes(data, "properties.provisioningState").String()
}

// StripEnvelope deletes keys from the envelope of doc, a document of kind k,
// and from the envelopes of its nested children. Keys inside properties, such
// as the resourceRef of a reference, are left alone.
func StripEnvelope(doc map[string]any, k *Kind, keys ...string) {
	for _, key := range keys {
		delete(doc, key)
	}

	props, ok := doc["properties"].(map[string]any)
	if !ok {
		return
	}
	for key, child := range k.Children {
		items, _ := props[key].([]any)
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				StripEnvelope(m, child, keys...)
			}
		}
	}
}

func stripReadOnly(doc map[string]any, k *Kind) {
	for _, key := range readOnlyEnvelope {
		delete(doc, key)
	}

	props, ok := doc["properties"].(map[string]any)
	if !ok {
		return
	}
	delete(props, "provisioningState")
	for _, key := range k.ReadOnly {
		delete(props, key)
	}

	for key, child := range k.Children {
		items, _ := props[key].([]any)
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				stripReadOnly(m, child)
			}
		}
	}
}
