// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// VirtualNetwork is a tenant overlay running on a logical network.
type VirtualNetwork struct {
	Base
	Properties VirtualNetworkProperties `json:"properties"`
}

type VirtualNetworkProperties struct {
	State
	ConfigurationState *ConfigurationState `json:"configurationState,omitempty"`
	AddressSpace       AddressSpace        `json:"addressSpace"`
	DHCPOptions        *DHCPOptions        `json:"dhcpOptions,omitempty"`
	Subnets            []*Subnet           `json:"subnets,omitempty"`
	LogicalNetwork     *Reference          `json:"logicalNetwork,omitempty"`
}

// AddressSpace lists the prefixes a virtual network may use.
type AddressSpace struct {
	AddressPrefixes []string `json:"addressPrefixes"`
}

func (a AddressSpace) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AddressPrefixes, validation.Required, validation.By(eachCIDR)),
	)
}

// DHCPOptions are handed to guests on the virtual network.
type DHCPOptions struct {
	DNSServers []string `json:"dnsServers,omitempty"`
}

func (d DHCPOptions) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DNSServers, validation.Each(is.IP)),
	)
}

func (n *VirtualNetwork) Kind() *Kind { return VirtualNetworkKind }

func (n *VirtualNetwork) Validate() error {
	p := &n.Properties
	return check(n, validation.ValidateStruct(p,
		validation.Field(&p.AddressSpace),
		validation.Field(&p.DHCPOptions),
		validation.Field(&p.Subnets),
		validation.Field(&p.LogicalNetwork, validation.Required),
	))
}

func (n *VirtualNetwork) link() {
	n.Properties.Subnets = compact(n.Properties.Subnets)
	for _, s := range n.Properties.Subnets {
		s.ParentID = n.ResourceID
	}
}

// Subnet is a virtual subnet (VSID) of a virtual network.
type Subnet struct {
	Base
	Properties SubnetProperties `json:"properties"`
}

type SubnetProperties struct {
	State
	AddressPrefix     string      `json:"addressPrefix"`
	AccessControlList *Reference  `json:"accessControlList,omitempty"`
	ServiceInsertion  *Reference  `json:"serviceInsertion,omitempty"`
	RouteTable        *Reference  `json:"routeTable,omitempty"`
	IPConfigurations  []Reference `json:"ipConfigurations,omitempty"`
}

func (s *Subnet) Kind() *Kind { return SubnetKind }

func (s *Subnet) Validate() error {
	p := &s.Properties
	return check(s, validation.ValidateStruct(p,
		validation.Field(&p.AddressPrefix, validation.Required, validation.By(isCIDR)),
		validation.Field(&p.AccessControlList),
		validation.Field(&p.RouteTable),
	))
}

func (s *Subnet) link() {}
