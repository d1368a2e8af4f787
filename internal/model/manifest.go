// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/hnvctl/hnvctl/internal/hnv"
)

// Manifest formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatOf picks a manifest format from a file name. Anything unrecognized,
// stdin included, is read as YAML, which also accepts JSON.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return FormatYAML
}

// DecodeManifest reads resources from a manifest. A document is either one
// resource carrying a kind key, or a map with a resources list of such
// resources. YAML input may hold several documents.
func DecodeManifest(data []byte, format string) ([]Resource, error) {
	docs, err := manifestDocs(data, format)
	if err != nil {
		return nil, err
	}

	var out []Resource
	for _, doc := range docs {
		items := []gjson.Result{gjson.ParseBytes(doc)}
		if list := gjson.GetBytes(doc, "resources"); list.IsArray() {
			items = list.Array()
		}

		for i, item := range items {
			name := item.Get("kind").String()
			if name == "" {
				return nil, fmt.Errorf("manifest entry %d has no kind: %w", i, hnv.ErrValidation)
			}
			k, err := Lookup(name)
			if err != nil {
				return nil, err
			}
			r, err := Decode(k, []byte(item.Raw), Path{})
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("manifest holds no resources: %w", hnv.ErrValidation)
	}
	return out, nil
}

// manifestDocs normalizes every document in data to JSON.
func manifestDocs(data []byte, format string) ([][]byte, error) {
	var raw []any

	switch format {
	case FormatJSON:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse JSON manifest: %w", err)
		}
		raw = append(raw, v)

	case FormatTOML:
		var v map[string]any
		if _, err := toml.Decode(string(data), &v); err != nil {
			return nil, fmt.Errorf("failed to parse TOML manifest: %w", err)
		}
		raw = append(raw, v)

	case FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			var v any
			err := dec.Decode(&v)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to parse YAML manifest: %w", err)
			}
			if v != nil {
				raw = append(raw, v)
			}
		}

	default:
		return nil, fmt.Errorf("unsupported manifest format %q: %w", format, hnv.ErrValidation)
	}

	docs := make([][]byte, 0, len(raw))
	for _, v := range raw {
		doc, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize manifest: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
