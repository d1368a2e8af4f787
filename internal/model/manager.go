// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/hnvctl/hnvctl/internal/hnv"
	"github.com/hnvctl/hnvctl/internal/log"
)

// Transport moves raw documents to and from the controller. *hnv.Client and
// *hnv.Cached satisfy it.
type Transport interface {
	GetResource(ctx context.Context, path string) ([]byte, error)
	UpdateResource(ctx context.Context, path string, body []byte, etag string) ([]byte, error)
	RemoveResource(ctx context.Context, path string) error
}

// WaitOptions controls whether mutations block until the controller has
// settled. A zero Timeout waits forever.
type WaitOptions struct {
	Wait    bool
	Timeout time.Duration
}

// Manager runs resource operations against a Transport.
type Manager struct {
	Transport Transport
	// RetryInterval spaces polls while waiting. Defaults to one second.
	RetryInterval time.Duration
}

func NewManager(t Transport, retryInterval time.Duration) *Manager {
	return &Manager{Transport: t, RetryInterval: retryInterval}
}

// Get fetches the single resource addressed by p.
func (m *Manager) Get(ctx context.Context, k *Kind, p Path) (Resource, error) {
	if p.ResourceID == "" {
		return nil, fmt.Errorf("%s get requires a resource id: %w", k.Name, hnv.ErrValidation)
	}
	uri, err := k.URI(p)
	if err != nil {
		return nil, err
	}

	data, err := m.Transport.GetResource(ctx, uri)
	if err != nil {
		return nil, err
	}
	return Decode(k, data, p)
}

// List fetches every resource in the collection addressed by p. Any
// ResourceID in p is ignored.
func (m *Manager) List(ctx context.Context, k *Kind, p Path) ([]Resource, error) {
	p.ResourceID = ""
	uri, err := k.URI(p)
	if err != nil {
		return nil, err
	}

	data, err := m.Transport.GetResource(ctx, uri)
	if err != nil {
		return nil, err
	}

	value := gjson.GetBytes(data, "value")
	if !value.Exists() {
		return nil, fmt.Errorf("%s: %w: collection has no value array", uri, hnv.ErrDataProcessing)
	}

	var out []Resource
	for _, item := range value.Array() {
		r, err := Decode(k, []byte(item.Raw), p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	log.Debugf("listed %d %s", len(out), k.Collection)

	return out, nil
}

// Remove deletes the resource addressed by p. With opts.Wait it polls until
// the controller answers NotFound.
func (m *Manager) Remove(ctx context.Context, k *Kind, p Path, opts WaitOptions) error {
	if p.ResourceID == "" {
		return fmt.Errorf("%s remove requires a resource id: %w", k.Name, hnv.ErrValidation)
	}
	uri, err := k.URI(p)
	if err != nil {
		return err
	}

	if err := m.Transport.RemoveResource(ctx, uri); err != nil {
		return err
	}

	var elapsed time.Duration
	for opts.Wait {
		_, err := m.Transport.GetResource(ctx, uri)
		if errors.Is(err, hnv.ErrNotFound) {
			break
		}
		if err != nil {
			return err
		}
		if err := m.pause(ctx, &elapsed, opts.Timeout); err != nil {
			return err
		}
	}

	log.Debugf("removed %s", uri)
	return nil
}

// pendingID names a resource in validation errors before it has an id.
const pendingID = "<new>"

// Commit creates or replaces r. A missing resource id is filled with a new
// time-based UUID. With opts.Wait it polls until provisioningState is
// Succeeded. On success r is refreshed from the controller's answer.
func (m *Manager) Commit(ctx context.Context, r Resource, opts WaitOptions) error {
	k, b := r.Kind(), r.Envelope()

	// Nested children validate against a stand-in id until one is generated.
	assign := b.ResourceID == ""
	if assign {
		b.ResourceID = pendingID
	}
	r.link()

	if err := r.Validate(); err != nil {
		if assign {
			b.ResourceID = ""
			r.link()
		}
		return err
	}

	if assign {
		id, err := uuid.NewUUID()
		if err != nil {
			b.ResourceID = ""
			r.link()
			return fmt.Errorf("failed to generate resource id: %w", err)
		}
		b.ResourceID = id.String()
		r.link()
	}

	p := PathOf(r)
	uri, err := k.URI(p)
	if err != nil {
		return err
	}

	body, err := DumpJSON(r, false)
	if err != nil {
		return err
	}

	data, err := m.Transport.UpdateResource(ctx, uri, body, b.Etag)
	if err != nil {
		return err
	}

	if opts.Wait {
		if data, err = m.waitProvisioned(ctx, uri, opts.Timeout); err != nil {
			return err
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return refresh(r, data, p)
}

func (m *Manager) waitProvisioned(ctx context.Context, uri string, timeout time.Duration) ([]byte, error) {
	var elapsed time.Duration
	for {
		data, err := m.Transport.GetResource(ctx, uri)
		if err != nil {
			return nil, err
		}

		state := gjson.GetBytes(data, "properties.provisioningState").String()
		log.Debugf("%s provisioningState=%q", uri, state)

		switch state {
		case "":
			return nil, fmt.Errorf("%s: %w: the object doesn't contain provisioningState", uri, hnv.ErrService)
		case Failed:
			return nil, fmt.Errorf("%s: %w: failed to complete the required operation", uri, hnv.ErrService)
		case Succeeded:
			return data, nil
		}

		if err := m.pause(ctx, &elapsed, timeout); err != nil {
			return nil, err
		}
	}
}

// pause accounts one retry interval against timeout and sleeps it.
func (m *Manager) pause(ctx context.Context, elapsed *time.Duration, timeout time.Duration) error {
	interval := m.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}

	*elapsed += interval
	if timeout > 0 && *elapsed > timeout {
		return fmt.Errorf("gave up after %s: %w", *elapsed, hnv.ErrTimeout)
	}

	t := time.NewTimer(interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// refresh replaces r in place with the decoded data, keeping p's ids.
func refresh(r Resource, data []byte, p Path) error {
	fresh, err := Decode(r.Kind(), data, p)
	if err != nil {
		return err
	}
	reflect.ValueOf(r).Elem().Set(reflect.ValueOf(fresh).Elem())
	return nil
}
