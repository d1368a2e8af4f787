// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/model"
)

// Identical is printed when two resources have no differences.
const Identical = "The resources are identical."

// Volatile are envelope keys that change on every write and say nothing
// about configuration.
var Volatile = []string{"etag", "instanceId", "resourceRef"}

// Options tune the rendering of a diff.
type Options struct {
	// Color turns on ANSI coloring of added and removed lines.
	Color bool
	// Ignore lists additional top-level keys to drop before comparing.
	Ignore []string
}

// Diff writes the delta that turns left into right to w and reports whether
// anything differs. Both resources are compared without read-only and
// Volatile fields.
func Diff(w io.Writer, left, right model.Resource, opts Options) (bool, error) {
	log.Debugf("diffing %s %q against %q", left.Kind().Name,
		left.Envelope().ResourceID, right.Envelope().ResourceID)

	leftDoc, err := normalize(left, opts.Ignore)
	if err != nil {
		return false, err
	}
	rightDoc, err := normalize(right, opts.Ignore)
	if err != nil {
		return false, err
	}

	delta, err := gojsondiff.New().Compare(leftDoc, rightDoc)
	if err != nil {
		return false, fmt.Errorf("failed to compare resources: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(leftDoc, &jdoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal resource: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	}
	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return false, fmt.Errorf("failed to format diff: %w", err)
	}

	fmt.Fprintln(w, diffString)
	return true, nil
}

// normalize renders r as JSON with everything the controller owns removed.
func normalize(r model.Resource, ignore []string) ([]byte, error) {
	doc, err := model.Dump(r, false)
	if err != nil {
		return nil, err
	}

	model.StripEnvelope(doc, r.Kind(), Volatile...)
	for _, key := range ignore {
		delete(doc, key)
	}

	return json.Marshal(doc)
}
