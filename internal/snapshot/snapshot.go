// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hnvctl/hnvctl/internal/aws"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/model"
	"github.com/hnvctl/hnvctl/internal/version"
)

// Order is the sequence top-level kinds are exported in. A kind only refers
// to kinds ahead of it, so applying a snapshot recreates references in a
// valid order.
var Order = []*model.Kind{
	model.LogicalNetworkKind,
	model.AccessControlListKind,
	model.RouteTableKind,
	model.VirtualNetworkKind,
	model.NetworkInterfaceKind,
}

// volatile envelope keys are dropped so a snapshot can be applied to a
// controller that has never seen these resources.
var volatile = []string{"etag", "instanceId"}

// Lister lists the resources of a kind. *model.Manager satisfies it.
type Lister interface {
	List(ctx context.Context, k *model.Kind, p model.Path) ([]model.Resource, error)
}

// Document is an exported controller. Its resources list is a valid
// manifest for apply.
type Document struct {
	Controller string           `json:"controller,omitempty"`
	ExportedAt time.Time        `json:"exportedAt"`
	Version    string           `json:"version"`
	Counts     map[string]int   `json:"counts"`
	Resources  []map[string]any `json:"resources"`
}

// Take lists every kind in Order and collects the results, children
// embedded, into a Document.
func Take(ctx context.Context, l Lister, controller string) (*Document, error) {
	doc := &Document{
		Controller: controller,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Version:    version.Version,
		Counts:     make(map[string]int, len(Order)),
		Resources:  []map[string]any{},
	}

	for _, k := range Order {
		resources, err := l.List(ctx, k, model.Path{})
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", k.Collection, err)
		}
		log.Debugf("exporting %d %s", len(resources), k.Collection)

		for _, r := range resources {
			item, err := model.Dump(r, false)
			if err != nil {
				return nil, err
			}
			model.StripEnvelope(item, k, volatile...)
			item["kind"] = k.Name
			doc.Resources = append(doc.Resources, item)
		}
		doc.Counts[k.Collection] = len(resources)
	}

	return doc, nil
}

// JSON renders d indented.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Sink decides where an exported document goes.
type Sink struct {
	// Stdout receives the document when no destination is given.
	Stdout io.Writer
	// NewS3 builds the client for s3:// destinations on first use.
	NewS3 func(ctx context.Context) (aws.ObjectPutter, error)
}

// Write stores data at dest: stdout for "" or "-", an S3 object for
// s3://bucket/key, a local file otherwise.
func (s Sink) Write(ctx context.Context, dest string, data []byte) error {
	if dest == "" || dest == "-" {
		w := s.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}

	loc, isS3, err := aws.ParseLocation(dest)
	if err != nil {
		return err
	}
	if isS3 {
		if s.NewS3 == nil {
			return fmt.Errorf("no s3 client for %s", loc)
		}
		client, err := s.NewS3(ctx)
		if err != nil {
			return err
		}
		return aws.Upload(ctx, client, loc, data, "application/json")
	}

	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Debugf("snapshot written to %s", dest)
	return nil
}
