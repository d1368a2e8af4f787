// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

// Provisioning states reported under properties.provisioningState.
const (
	Deleting  = "Deleting"
	Failed    = "Failed"
	Succeeded = "Succeeded"
	Updating  = "Updating"
)

// QoS outbound reservation modes.
const (
	Absolute = "absolute"
	Weight   = "weight"
)

// Route next hop types.
const (
	VirtualAppliance      = "VirtualAppliance"
	VnetLocal             = "VnetLocal"
	VirtualNetworkGateway = "VirtualNetworkGateway"
	Internet              = "Internet"
)

// IP and MAC allocation methods.
const (
	Static  = "Static"
	Dynamic = "Dynamic"
)

// ACL rule values.
const (
	Allow    = "Allow"
	Deny     = "Deny"
	Inbound  = "Inbound"
	Outbound = "Outbound"
	TCP      = "TCP"
	UDP      = "UDP"
	All      = "All"
	Enabled  = "Enabled"
	Disabled = "Disabled"
)

const (
	// MaxVlanID is the largest vlanID a logical subnet accepts. 0 means
	// untagged.
	MaxVlanID = 4094

	MinACLPriority = 1
	MaxACLPriority = 65500
)
