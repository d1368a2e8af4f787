// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LogicalNetwork is a partition of the physical network dedicated to one
// purpose. It is made of logical subnets.
type LogicalNetwork struct {
	Base
	Properties LogicalNetworkProperties `json:"properties"`
}

type LogicalNetworkProperties struct {
	State
	Subnets                      []*LogicalSubnet `json:"subnets,omitempty"`
	NetworkVirtualizationEnabled bool             `json:"networkVirtualizationEnabled"`
	VirtualNetworks              []Reference      `json:"virtualNetworks,omitempty"`
}

func NewLogicalNetwork() *LogicalNetwork {
	return &LogicalNetwork{}
}

func (n *LogicalNetwork) Kind() *Kind { return LogicalNetworkKind }

func (n *LogicalNetwork) Validate() error {
	p := &n.Properties
	return check(n, validation.ValidateStruct(p,
		validation.Field(&p.Subnets),
	))
}

func (n *LogicalNetwork) link() {
	n.Properties.Subnets = compact(n.Properties.Subnets)
	for _, s := range n.Properties.Subnets {
		s.ParentID = n.ResourceID
		s.link()
	}
}

// LogicalSubnet is a VLAN-scoped slice of a logical network.
type LogicalSubnet struct {
	Base
	Properties LogicalSubnetProperties `json:"properties"`
}

type LogicalSubnetProperties struct {
	State
	AddressPrefix     string           `json:"addressPrefix,omitempty"`
	VlanID            int              `json:"vlanID"`
	Routes            []map[string]any `json:"routes,omitempty"`
	IPPools           []*IPPool        `json:"ipPools,omitempty"`
	DNSServers        []string         `json:"dnsServers,omitempty"`
	IPConfigurations  []Reference      `json:"ipConfigurations,omitempty"`
	NetworkInterfaces []Reference      `json:"networkInterfaces,omitempty"`
	IsPublic          bool             `json:"isPublic"`
	DefaultGateways   []string         `json:"defaultGateways,omitempty"`
	GatewayPools      []Reference      `json:"gatewayPools,omitempty"`
}

func NewLogicalSubnet() *LogicalSubnet {
	return &LogicalSubnet{}
}

func (s *LogicalSubnet) Kind() *Kind { return LogicalSubnetKind }

func (s *LogicalSubnet) Validate() error {
	p := &s.Properties
	return check(s, validation.ValidateStruct(p,
		validation.Field(&p.AddressPrefix, validation.By(isCIDR)),
		validation.Field(&p.VlanID, validation.Min(0), validation.Max(MaxVlanID)),
		validation.Field(&p.IPPools),
		validation.Field(&p.DNSServers, validation.Each(is.IP)),
		validation.Field(&p.DefaultGateways, validation.Each(is.IP)),
		validation.Field(&p.IPConfigurations),
	))
}

func (s *LogicalSubnet) link() {
	s.Properties.IPPools = compact(s.Properties.IPPools)
	for _, pool := range s.Properties.IPPools {
		pool.ParentID = s.ResourceID
		pool.GrandParentID = s.ParentID
	}
}

// IPPool is a range of addresses handed out from a logical subnet.
type IPPool struct {
	Base
	Properties IPPoolProperties `json:"properties"`
}

type IPPoolProperties struct {
	State
	StartIPAddress string         `json:"startIpAddress"`
	EndIPAddress   string         `json:"endIpAddress"`
	Usage          map[string]any `json:"usage,omitempty"`
}

func (p *IPPool) Kind() *Kind { return IPPoolKind }

func (p *IPPool) Validate() error {
	props := &p.Properties
	return check(p, validation.ValidateStruct(props,
		validation.Field(&props.StartIPAddress, validation.Required, is.IP),
		validation.Field(&props.EndIPAddress, validation.Required, is.IP),
	))
}

func (p *IPPool) link() {}
