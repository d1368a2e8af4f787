// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"net"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hnvctl/hnvctl/internal/hnv"
)

// Resource is implemented by every addressable resource type.
type Resource interface {
	Kind() *Kind
	Envelope() *Base
	// Validate checks required fields and value ranges, including those of
	// nested children.
	Validate() error
	// link pushes this resource's ids down into its nested children.
	link()
}

// Base is the envelope shared by every resource.
type Base struct {
	ResourceRef      string            `json:"resourceRef,omitempty"`
	ResourceID       string            `json:"resourceId,omitempty"`
	ParentID         string            `json:"parentResourceID,omitempty"`
	GrandParentID    string            `json:"grandParentResourceID,omitempty"`
	OperationID      string            `json:"operation-id,omitempty"`
	InstanceID       string            `json:"instanceId,omitempty"`
	ResourceMetadata *ResourceMetadata `json:"resourceMetadata,omitempty"`
	Etag             string            `json:"etag,omitempty"`
	Tags             map[string]any    `json:"tags,omitempty"`
}

// Envelope returns b. Embedding Base makes a struct satisfy this half of
// Resource.
func (b *Base) Envelope() *Base {
	return b
}

// readOnlyEnvelope are Base keys the controller never accepts.
var readOnlyEnvelope = []string{"parentResourceID", "grandParentResourceID", "operation-id"}

// State carries the provisioning state every resource reports.
type State struct {
	ProvisioningState string `json:"provisioningState,omitempty"`
}

// ResourceMetadata is free-form bookkeeping a client may attach.
type ResourceMetadata struct {
	Client       string `json:"client,omitempty"`
	TenantID     string `json:"tenantId,omitempty"`
	GroupID      string `json:"groupId,omitempty"`
	Name         string `json:"name,omitempty"`
	OriginalHref string `json:"originalHref,omitempty"`
}

// Reference points at another resource.
type Reference struct {
	ResourceRef string `json:"resourceRef"`
}

func (r Reference) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResourceRef, validation.Required),
	)
}

// Ref is shorthand for a Reference pointer.
func Ref(ref string) *Reference {
	return &Reference{ResourceRef: ref}
}

// ConfigurationState is the last known running state of a resource.
type ConfigurationState struct {
	ID                            string           `json:"id,omitempty"`
	Status                        string           `json:"status,omitempty"`
	LastUpdatedTime               string           `json:"lastUpdatedTime,omitempty"`
	DetailedInfo                  []map[string]any `json:"detailedInfo,omitempty"`
	VirtualNetworkInterfaceErrors []map[string]any `json:"virtualNetworkInterfaceErrors,omitempty"`
	HostErrors                    []map[string]any `json:"hostErrors,omitempty"`
}

// check merges ancestor checks for r with the result of validating its
// properties and wraps any failure in hnv.ErrValidation.
func check(r Resource, propErr error) error {
	k, b := r.Kind(), r.Envelope()

	errs := validation.Errors{}
	if k.Depth >= 1 && b.ParentID == "" {
		errs["parentResourceID"] = validation.ErrRequired
	}
	if k.Depth >= 2 && b.GrandParentID == "" {
		errs["grandParentResourceID"] = validation.ErrRequired
	}

	if propErr != nil {
		var fieldErrs validation.Errors
		if !errors.As(propErr, &fieldErrs) {
			return fmt.Errorf("%s %q: %w", k.Name, b.ResourceID, propErr)
		}
		for field, err := range fieldErrs {
			errs["properties."+field] = err
		}
	}

	if err := errs.Filter(); err != nil {
		return fmt.Errorf("%w: %s %q: %w", hnv.ErrValidation, k.Name, b.ResourceID, err)
	}
	return nil
}

func isCIDR(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, _, err := net.ParseCIDR(s); err != nil {
		return validation.NewError("validation_is_cidr", "must be a valid CIDR prefix")
	}
	return nil
}

func eachCIDR(value interface{}) error {
	prefixes, _ := value.([]string)
	for _, p := range prefixes {
		if err := isCIDR(p); err != nil {
			return validation.NewError("validation_is_cidr", fmt.Sprintf("%q must be a valid CIDR prefix", p))
		}
	}
	return nil
}

// compact drops nil entries a null in the JSON array would leave behind.
func compact[T any](items []*T) []*T {
	out := items[:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
