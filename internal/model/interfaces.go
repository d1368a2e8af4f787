// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// NetworkInterface is a virtual NIC managed by the controller.
type NetworkInterface struct {
	Base
	Properties NetworkInterfaceProperties `json:"properties"`
}

type NetworkInterfaceProperties struct {
	State
	ConfigurationState         ConfigurationState `json:"configurationState"`
	DNSSettings                DNSSettings        `json:"dnsSettings"`
	IPConfigurations           []*IPConfiguration `json:"ipConfigurations,omitempty"`
	IsHost                     bool               `json:"isHostVirtualNetworkInterface"`
	IsPrimary                  bool               `json:"isPrimary"`
	IsMultitenantStack         bool               `json:"isMultitenantStack"`
	InternalDNSNameLabel       string             `json:"internalDnsNameLabel,omitempty"`
	Server                     *Reference         `json:"server,omitempty"`
	PortSettings               PortSettings       `json:"portSettings"`
	PrivateMacAddress          string             `json:"privateMacAddress,omitempty"`
	PrivateMacAllocationMethod string             `json:"privateMacAllocationMethod,omitempty"`
	ServiceInsertionElements   []Reference        `json:"serviceInsertionElements,omitempty"`
}

// NewNetworkInterface returns an interface with isPrimary set.
func NewNetworkInterface() *NetworkInterface {
	return &NetworkInterface{
		Properties: NetworkInterfaceProperties{IsPrimary: true},
	}
}

func (n *NetworkInterface) Kind() *Kind { return NetworkInterfaceKind }

func (n *NetworkInterface) Validate() error {
	p := &n.Properties
	return check(n, validation.ValidateStruct(p,
		validation.Field(&p.DNSSettings),
		validation.Field(&p.IPConfigurations),
		validation.Field(&p.PortSettings),
		validation.Field(&p.PrivateMacAllocationMethod, validation.In(Static, Dynamic)),
	))
}

func (n *NetworkInterface) link() {
	n.Properties.IPConfigurations = compact(n.Properties.IPConfigurations)
	for _, c := range n.Properties.IPConfigurations {
		c.ParentID = n.ResourceID
	}
}

// IPConfiguration binds an address to a network interface.
type IPConfiguration struct {
	Base
	Properties IPConfigurationProperties `json:"properties"`
}

type IPConfigurationProperties struct {
	State
	AccessControlList               *Reference  `json:"accessControlList,omitempty"`
	LoadBalancerBackendAddressPools []Reference `json:"loadBalancerBackendAddressPools,omitempty"`
	LoadBalancerInboundNatRules     []Reference `json:"loadBalancerInboundNatRules,omitempty"`
	PrivateIPAddress                string      `json:"privateIPAddress,omitempty"`
	PrivateIPAllocationMethod       string      `json:"privateIPAllocationMethod,omitempty"`
	PublicIPAddress                 *Reference  `json:"publicIPAddress,omitempty"`
	ServiceInsertion                *Reference  `json:"serviceInsertion,omitempty"`
	Subnet                          *Reference  `json:"subnet,omitempty"`
}

func (c *IPConfiguration) Kind() *Kind { return IPConfigurationKind }

func (c *IPConfiguration) Validate() error {
	p := &c.Properties
	return check(c, validation.ValidateStruct(p,
		validation.Field(&p.AccessControlList),
		validation.Field(&p.PrivateIPAddress, is.IP),
		validation.Field(&p.PrivateIPAllocationMethod, validation.In(Static, Dynamic)),
		validation.Field(&p.PublicIPAddress),
		validation.Field(&p.Subnet),
	))
}

func (c *IPConfiguration) link() {}

// DNSSettings lists the DNS servers an interface uses.
type DNSSettings struct {
	DNSServers []string `json:"dnsServers,omitempty"`
}

func (d DNSSettings) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DNSServers, validation.Each(is.IP)),
	)
}

// PortSettings are the switch port knobs of an interface.
type PortSettings struct {
	MacSpoofing            string       `json:"macSpoofingEnabled,omitempty"`
	ArpGuard               string       `json:"arpGuardEnabled,omitempty"`
	DHCPGuard              string       `json:"dhcpGuardEnabled,omitempty"`
	StormLimit             int          `json:"stormLimit,omitempty"`
	PortFlowLimit          int          `json:"portFlowLimit,omitempty"`
	VmqWeight              int          `json:"vmqWeight,omitempty"`
	IovWeight              int          `json:"iovWeight,omitempty"`
	IovInterruptModeration string       `json:"iovInterruptModeration,omitempty"`
	IovQueuePairsRequested int          `json:"iovQueuePairsRequested,omitempty"`
	QosSettings            *QosSettings `json:"qosSettings,omitempty"`
}

func (s PortSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.MacSpoofing, validation.In(Enabled, Disabled)),
		validation.Field(&s.ArpGuard, validation.In(Enabled, Disabled)),
		validation.Field(&s.DHCPGuard, validation.In(Enabled, Disabled)),
		validation.Field(&s.StormLimit, validation.Min(0)),
		validation.Field(&s.PortFlowLimit, validation.Min(0)),
		validation.Field(&s.VmqWeight, validation.Min(0), validation.Max(100)),
		validation.Field(&s.IovWeight, validation.Min(0), validation.Max(100)),
		validation.Field(&s.QosSettings),
	)
}

// QosSettings caps and reserves bandwidth on a port.
type QosSettings struct {
	OutboundReservedMode  string `json:"outboundReservedMode,omitempty"`
	OutboundReservedValue int    `json:"outboundReservedValue,omitempty"`
	OutboundMaximumMbps   int    `json:"outboundMaximumMbps,omitempty"`
	InboundMaximumMbps    int    `json:"inboundMaximumMbps,omitempty"`
}

func (q QosSettings) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.OutboundReservedMode, validation.In(Absolute, Weight)),
		validation.Field(&q.OutboundReservedValue, validation.Min(0)),
		validation.Field(&q.OutboundMaximumMbps, validation.Min(0)),
		validation.Field(&q.InboundMaximumMbps, validation.Min(0)),
	)
}
