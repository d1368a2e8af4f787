// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AccessControlList groups ACL rules applied to subnets and ip
// configurations.
type AccessControlList struct {
	Base
	Properties AccessControlListProperties `json:"properties"`
}

type AccessControlListProperties struct {
	State
	ACLRules           []*ACLRule          `json:"aclRules,omitempty"`
	ConfigurationState *ConfigurationState `json:"configurationState,omitempty"`
	IPConfigurations   []Reference         `json:"ipConfigurations,omitempty"`
	Subnets            []Reference         `json:"subnets,omitempty"`
}

func (a *AccessControlList) Kind() *Kind { return AccessControlListKind }

func (a *AccessControlList) Validate() error {
	p := &a.Properties
	return check(a, validation.ValidateStruct(p,
		validation.Field(&p.ACLRules),
	))
}

func (a *AccessControlList) link() {
	a.Properties.ACLRules = compact(a.Properties.ACLRules)
	for _, r := range a.Properties.ACLRules {
		r.ParentID = a.ResourceID
	}
}

// ACLRule allows or denies one class of traffic.
type ACLRule struct {
	Base
	Properties ACLRuleProperties `json:"properties"`
}

type ACLRuleProperties struct {
	State
	Protocol                 string `json:"protocol"`
	SourcePortRange          string `json:"sourcePortRange,omitempty"`
	DestinationPortRange     string `json:"destinationPortRange,omitempty"`
	Action                   string `json:"action"`
	SourceAddressPrefix      string `json:"sourceAddressPrefix,omitempty"`
	DestinationAddressPrefix string `json:"destinationAddressPrefix,omitempty"`
	Priority                 int    `json:"priority"`
	Description              string `json:"description,omitempty"`
	Type                     string `json:"type"`
	Logging                  string `json:"logging,omitempty"`
}

func (r *ACLRule) Kind() *Kind { return ACLRuleKind }

func (r *ACLRule) Validate() error {
	p := &r.Properties
	return check(r, validation.ValidateStruct(p,
		validation.Field(&p.Protocol, validation.Required, validation.In(TCP, UDP, All)),
		validation.Field(&p.Action, validation.Required, validation.In(Allow, Deny)),
		validation.Field(&p.Priority, validation.Required, validation.Min(MinACLPriority), validation.Max(MaxACLPriority)),
		validation.Field(&p.Type, validation.Required, validation.In(Inbound, Outbound)),
		validation.Field(&p.Logging, validation.In(Enabled, Disabled)),
	))
}

func (r *ACLRule) link() {}

// RouteTable groups user defined routes applied to subnets.
type RouteTable struct {
	Base
	Properties RouteTableProperties `json:"properties"`
}

type RouteTableProperties struct {
	State
	Routes             []*Route            `json:"routes,omitempty"`
	ConfigurationState *ConfigurationState `json:"configurationState,omitempty"`
	Subnets            []Reference         `json:"subnets,omitempty"`
}

func (t *RouteTable) Kind() *Kind { return RouteTableKind }

func (t *RouteTable) Validate() error {
	p := &t.Properties
	return check(t, validation.ValidateStruct(p,
		validation.Field(&p.Routes),
	))
}

func (t *RouteTable) link() {
	t.Properties.Routes = compact(t.Properties.Routes)
	for _, r := range t.Properties.Routes {
		r.ParentID = t.ResourceID
	}
}

// Route sends an address prefix to a next hop.
type Route struct {
	Base
	Properties RouteProperties `json:"properties"`
}

type RouteProperties struct {
	State
	AddressPrefix    string `json:"addressPrefix"`
	NextHopType      string `json:"nextHopType"`
	NextHopIPAddress string `json:"nextHopIpAddress,omitempty"`
}

func (r *Route) Kind() *Kind { return RouteKind }

func (r *Route) Validate() error {
	p := &r.Properties
	return check(r, validation.ValidateStruct(p,
		validation.Field(&p.AddressPrefix, validation.Required, validation.By(isCIDR)),
		validation.Field(&p.NextHopType, validation.Required,
			validation.In(VirtualAppliance, VnetLocal, VirtualNetworkGateway, Internet)),
		validation.Field(&p.NextHopIPAddress,
			validation.When(p.NextHopType == VirtualAppliance, validation.Required),
			is.IP),
	))
}

func (r *Route) link() {}
