// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/model"
)

// queryKind holds what differs between the per-kind query commands.
type queryKind struct {
	kind         *model.Kind
	usage        string
	defaultAttrs []string
}

var queryKinds = []queryKind{
	{model.LogicalNetworkKind, "logical network query",
		[]string{".resourceId", "networkVirtualizationEnabled", "provisioningState"}},
	{model.LogicalSubnetKind, "logical subnet query",
		[]string{".resourceId", "addressPrefix", "vlanID", "isPublic", "provisioningState"}},
	{model.IPPoolKind, "ip pool query",
		[]string{".resourceId", "startIpAddress", "endIpAddress", "provisioningState"}},
	{model.NetworkInterfaceKind, "network interface query",
		[]string{".resourceId", "privateMacAddress", "isPrimary", "provisioningState"}},
	{model.IPConfigurationKind, "ip configuration query",
		[]string{".resourceId", "privateIPAddress", "privateIPAllocationMethod", "subnet.resourceRef:subnet", "provisioningState"}},
	{model.VirtualNetworkKind, "virtual network query",
		[]string{".resourceId", "addressSpace.addressPrefixes:addressPrefixes", "logicalNetwork.resourceRef:logicalNetwork", "provisioningState"}},
	{model.SubnetKind, "virtual subnet query",
		[]string{".resourceId", "addressPrefix", "provisioningState"}},
	{model.AccessControlListKind, "access control list query",
		[]string{".resourceId", "provisioningState"}},
	{model.ACLRuleKind, "acl rule query",
		[]string{".resourceId", "type", "priority", "action", "protocol", "provisioningState"}},
	{model.RouteTableKind, "route table query",
		[]string{".resourceId", "provisioningState"}},
	{model.RouteKind, "route query",
		[]string{".resourceId", "addressPrefix", "nextHopType", "nextHopIpAddress", "provisioningState"}},
}

// queryCommandName is the subcommand that lists k, e.g. lnq.
func queryCommandName(k *model.Kind) string {
	return k.Alias + "q"
}

// queryCommandAction lists the resources of q's kind under --parent and
// --grandparent.
func queryCommandAction(q queryKind) func(context.Context, *cli.Command) error {
	name := queryCommandName(q.kind)

	return func(ctx context.Context, cmd *cli.Command) error {
		fetch := func(ctx context.Context, cmd *cli.Command) ([]model.Resource, error) {
			s, err := openSession(cmd, true)
			if err != nil {
				return nil, err
			}

			results, err := s.List(ctx, q.kind, pathFromFlags(cmd, ""))
			if err != nil {
				return nil, s.friendly(err, "list", q.kind, "")
			}
			return results, nil
		}

		return NewQueryActionRunner(name, q.kind, q.defaultAttrs, fetch).Run(ctx, cmd)
	}
}

// queryCommandBuilder constructs the query cli.Command for q.
func queryCommandBuilder(q queryKind, meta meta.Meta) *cli.Command {
	name := queryCommandName(q.kind)

	usageText := fmt.Sprintf("hnvctl %s [options]", name)
	switch q.kind.Depth {
	case 1:
		usageText = fmt.Sprintf("hnvctl %s --parent ID [options]", name)
	case 2:
		usageText = fmt.Sprintf("hnvctl %s --grandparent ID --parent ID [options]", name)
	}

	return (&QueryCommandBuilder{
		Name:      name,
		Usage:     q.usage,
		UsageText: usageText,
		Action:    queryCommandAction(q),
		Meta:      meta,
	}).Build()
}
