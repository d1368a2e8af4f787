// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"

	"github.com/hnvctl/hnvctl/internal/hnv"
)

// Kind describes one addressable resource type.
type Kind struct {
	// Name is the canonical kind name used in manifests, e.g. LogicalNetwork.
	Name string
	// Alias is the short CLI name, e.g. ln.
	Alias string
	// Collection is the last path segment of the endpoint, e.g. logicalNetworks.
	Collection string
	// Endpoint holds {grandparent_id}, {parent_id} and {resource_id}
	// placeholders.
	Endpoint string
	// Depth is 0 for top-level kinds, 1 for children and 2 for grandchildren.
	Depth int
	// ReadOnly lists property keys the controller owns.
	ReadOnly []string
	// Children maps a property key to the kind of the resources nested there.
	Children map[string]*Kind
}

var (
	IPPoolKind = &Kind{
		Name:       "IPPool",
		Alias:      "ip",
		Collection: "ipPools",
		Endpoint:   "/networking/v1/logicalNetworks/{grandparent_id}/logicalSubnets/{parent_id}/ipPools/{resource_id}",
		Depth:      2,
		ReadOnly:   []string{"usage"},
	}

	LogicalSubnetKind = &Kind{
		Name:       "LogicalSubnet",
		Alias:      "ls",
		Collection: "logicalSubnets",
		Endpoint:   "/networking/v1/logicalNetworks/{parent_id}/logicalSubnets/{resource_id}",
		Depth:      1,
		ReadOnly:   []string{"networkInterfaces", "gatewayPools"},
		Children:   map[string]*Kind{"ipPools": IPPoolKind},
	}

	LogicalNetworkKind = &Kind{
		Name:       "LogicalNetwork",
		Alias:      "ln",
		Collection: "logicalNetworks",
		Endpoint:   "/networking/v1/logicalNetworks/{resource_id}",
		ReadOnly:   []string{"virtualNetworks"},
		Children:   map[string]*Kind{"subnets": LogicalSubnetKind},
	}

	IPConfigurationKind = &Kind{
		Name:       "IPConfiguration",
		Alias:      "ic",
		Collection: "ipConfigurations",
		Endpoint:   "/networking/v1/networkInterfaces/{parent_id}/ipConfigurations/{resource_id}",
		Depth:      1,
		ReadOnly:   []string{"loadBalancerBackendAddressPools"},
	}

	NetworkInterfaceKind = &Kind{
		Name:       "NetworkInterface",
		Alias:      "ni",
		Collection: "networkInterfaces",
		Endpoint:   "/networking/v1/networkInterfaces/{resource_id}",
		ReadOnly:   []string{"configurationState", "server", "serviceInsertionElements"},
		Children:   map[string]*Kind{"ipConfigurations": IPConfigurationKind},
	}

	SubnetKind = &Kind{
		Name:       "Subnet",
		Alias:      "sn",
		Collection: "subnets",
		Endpoint:   "/networking/v1/virtualNetworks/{parent_id}/subnets/{resource_id}",
		Depth:      1,
	}

	VirtualNetworkKind = &Kind{
		Name:       "VirtualNetwork",
		Alias:      "vn",
		Collection: "virtualNetworks",
		Endpoint:   "/networking/v1/virtualNetworks/{resource_id}",
		ReadOnly:   []string{"configurationState"},
		Children:   map[string]*Kind{"subnets": SubnetKind},
	}

	ACLRuleKind = &Kind{
		Name:       "ACLRule",
		Alias:      "ar",
		Collection: "aclRules",
		Endpoint:   "/networking/v1/accessControlLists/{parent_id}/aclRules/{resource_id}",
		Depth:      1,
	}

	AccessControlListKind = &Kind{
		Name:       "AccessControlList",
		Alias:      "acl",
		Collection: "accessControlLists",
		Endpoint:   "/networking/v1/accessControlLists/{resource_id}",
		ReadOnly:   []string{"configurationState", "ipConfigurations", "subnets"},
		Children:   map[string]*Kind{"aclRules": ACLRuleKind},
	}

	RouteKind = &Kind{
		Name:       "Route",
		Alias:      "ro",
		Collection: "routes",
		Endpoint:   "/networking/v1/routeTables/{parent_id}/routes/{resource_id}",
		Depth:      1,
	}

	RouteTableKind = &Kind{
		Name:       "RouteTable",
		Alias:      "rt",
		Collection: "routeTables",
		Endpoint:   "/networking/v1/routeTables/{resource_id}",
		ReadOnly:   []string{"configurationState", "subnets"},
		Children:   map[string]*Kind{"routes": RouteKind},
	}
)

// Kinds lists every kind in display order.
var Kinds = []*Kind{
	LogicalNetworkKind,
	LogicalSubnetKind,
	IPPoolKind,
	NetworkInterfaceKind,
	IPConfigurationKind,
	VirtualNetworkKind,
	SubnetKind,
	AccessControlListKind,
	ACLRuleKind,
	RouteTableKind,
	RouteKind,
}

// Lookup finds a kind by name, alias or collection name, ignoring case.
func Lookup(name string) (*Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(name, k.Name) ||
			strings.EqualFold(name, k.Alias) ||
			strings.EqualFold(name, k.Collection) {
			return k, nil
		}
	}
	return nil, fmt.Errorf("unknown resource kind %q: %w", name, hnv.ErrValidation)
}

func (k *Kind) String() string {
	return k.Name
}

// TopLevel reports whether the kind is addressed without ancestors.
func (k *Kind) TopLevel() bool {
	return k.Depth == 0
}

// New returns an empty resource of this kind with its defaults applied.
func (k *Kind) New() Resource {
	switch k {
	case LogicalNetworkKind:
		return NewLogicalNetwork()
	case LogicalSubnetKind:
		return NewLogicalSubnet()
	case IPPoolKind:
		return &IPPool{}
	case NetworkInterfaceKind:
		return NewNetworkInterface()
	case IPConfigurationKind:
		return &IPConfiguration{}
	case VirtualNetworkKind:
		return &VirtualNetwork{}
	case SubnetKind:
		return &Subnet{}
	case AccessControlListKind:
		return &AccessControlList{}
	case ACLRuleKind:
		return &ACLRule{}
	case RouteTableKind:
		return &RouteTable{}
	case RouteKind:
		return &Route{}
	}
	panic("model: kind without a constructor: " + k.Name)
}

// Path addresses a resource or collection. An empty ResourceID addresses the
// collection.
type Path struct {
	GrandParentID string
	ParentID      string
	ResourceID    string
}

// URI formats the endpoint for p. Every placeholder is substituted, absent ids
// become empty strings.
func (k *Kind) URI(p Path) (string, error) {
	if err := k.checkAncestors(p); err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		"{grandparent_id}", p.GrandParentID,
		"{parent_id}", p.ParentID,
		"{resource_id}", p.ResourceID,
	)
	return r.Replace(k.Endpoint), nil
}

func (k *Kind) checkAncestors(p Path) error {
	if k.Depth >= 1 && p.ParentID == "" {
		return fmt.Errorf("%s requires a parent id: %w", k.Name, hnv.ErrValidation)
	}
	if k.Depth >= 2 && p.GrandParentID == "" {
		return fmt.Errorf("%s requires a grandparent id: %w", k.Name, hnv.ErrValidation)
	}
	return nil
}

// ParseRef derives a Path from a resourceRef such as
// /logicalNetworks/ln1/logicalSubnets/ls1. A leading /networking/v1 is
// accepted.
func (k *Kind) ParseRef(ref string) (Path, error) {
	ref = strings.TrimPrefix(ref, "/networking/v1")
	tmpl := strings.Split(strings.Trim(strings.TrimPrefix(k.Endpoint, "/networking/v1"), "/"), "/")
	segs := strings.Split(strings.Trim(ref, "/"), "/")
	if len(segs) != len(tmpl) {
		return Path{}, fmt.Errorf("%q is not a %s reference: %w", ref, k.Name, hnv.ErrValidation)
	}

	var p Path
	for i, t := range tmpl {
		switch t {
		case "{grandparent_id}":
			p.GrandParentID = segs[i]
		case "{parent_id}":
			p.ParentID = segs[i]
		case "{resource_id}":
			p.ResourceID = segs[i]
		default:
			if !strings.EqualFold(t, segs[i]) {
				return Path{}, fmt.Errorf("%q is not a %s reference: %w", ref, k.Name, hnv.ErrValidation)
			}
		}
	}
	return p, nil
}

// PathOf returns the address of r from its envelope.
func PathOf(r Resource) Path {
	b := r.Envelope()
	return Path{
		GrandParentID: b.GrandParentID,
		ParentID:      b.ParentID,
		ResourceID:    b.ResourceID,
	}
}
