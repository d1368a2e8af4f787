// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnvctl/hnvctl/internal/hnv"
)

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"net.yaml":      FormatYAML,
		"net.YML":       FormatYAML,
		"net.json":      FormatJSON,
		"dir/net.toml":  FormatTOML,
		"-":             FormatYAML,
		"no-extension":  FormatYAML,
		"weird.tf.json": FormatJSON,
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatOf(in), in)
	}
}

func TestDecodeManifest(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		kinds  []*Kind
		ids    []string
	}{
		{
			name:   "yaml single",
			format: FormatYAML,
			data: `
kind: VirtualNetwork
resourceId: vn1
properties:
  addressSpace:
    addressPrefixes: [192.168.0.0/16]
  logicalNetwork:
    resourceRef: /logicalNetworks/ln1
`,
			kinds: []*Kind{VirtualNetworkKind},
			ids:   []string{"vn1"},
		},
		{
			name:   "yaml list",
			format: FormatYAML,
			data: `
resources:
  - kind: ln
    resourceId: ln1
  - kind: LogicalSubnet
    resourceId: ls1
    parentResourceID: ln1
    properties:
      vlanID: 10
`,
			kinds: []*Kind{LogicalNetworkKind, LogicalSubnetKind},
			ids:   []string{"ln1", "ls1"},
		},
		{
			name:   "yaml multi document",
			format: FormatYAML,
			data: `kind: rt
resourceId: rt1
---
kind: ro
resourceId: r1
parentResourceID: rt1
properties:
  addressPrefix: 0.0.0.0/0
  nextHopType: Internet
`,
			kinds: []*Kind{RouteTableKind, RouteKind},
			ids:   []string{"rt1", "r1"},
		},
		{
			name:   "json",
			format: FormatJSON,
			data:   `{"resources":[{"kind":"acl","resourceId":"a1","properties":{"aclRules":[{"resourceId":"r1"}]}}]}`,
			kinds:  []*Kind{AccessControlListKind},
			ids:    []string{"a1"},
		},
		{
			name:   "toml",
			format: FormatTOML,
			data: `
[[resources]]
kind = "NetworkInterface"
resourceId = "n1"

[[resources]]
kind = "ic"
resourceId = "c1"
parentResourceID = "n1"
[resources.properties]
privateIPAddress = "10.0.0.4"
`,
			kinds: []*Kind{NetworkInterfaceKind, IPConfigurationKind},
			ids:   []string{"n1", "c1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeManifest([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, got, len(tt.kinds))
			for i := range got {
				assert.Same(t, tt.kinds[i], got[i].Kind())
				assert.Equal(t, tt.ids[i], got[i].Envelope().ResourceID)
			}
		})
	}
}

func TestDecodeManifest_Details(t *testing.T) {
	got, err := DecodeManifest([]byte(`
resources:
  - kind: acl
    resourceId: a1
    properties:
      aclRules:
        - resourceId: r1
          properties: {protocol: TCP, action: Allow, type: Inbound, priority: 200}
  - kind: ic
    resourceId: c1
    parentResourceID: n1
    properties:
      privateIPAddress: 10.0.0.4
`), FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 2)

	acl := got[0].(*AccessControlList)
	require.Len(t, acl.Properties.ACLRules, 1)
	assert.Equal(t, "a1", acl.Properties.ACLRules[0].ParentID)
	assert.Equal(t, 200, acl.Properties.ACLRules[0].Properties.Priority)

	ic := got[1].(*IPConfiguration)
	assert.Equal(t, "n1", ic.ParentID)
	assert.Equal(t, "10.0.0.4", ic.Properties.PrivateIPAddress)
}

func TestDecodeManifest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"no kind", FormatYAML, "resourceId: x\n"},
		{"unknown kind", FormatYAML, "kind: loadBalancer\n"},
		{"empty", FormatYAML, ""},
		{"empty list", FormatJSON, `{"resources":[]}`},
		{"bad format", "xml", "<x/>"},
		{"bad json", FormatJSON, "{"},
		{"bad yaml", FormatYAML, "kind: [\n"},
		{"bad toml", FormatTOML, "kind = \n"},
		{"bad field", FormatYAML, "kind: ls\nproperties:\n  vlanID: ten\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeManifest([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}

	_, err := DecodeManifest([]byte("resourceId: x\n"), FormatYAML)
	assert.ErrorIs(t, err, hnv.ErrValidation)
}
