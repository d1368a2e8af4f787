// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/attrs"
	"github.com/hnvctl/hnvctl/internal/model"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"resourceId": "zebra", "vlanID": 300.0, "state": "Succeeded"},
		{"resourceId": "Alpha", "vlanID": 100.0, "state": "Failed"},
		{"resourceId": "beta", "vlanID": 200.0, "state": "Succeeded"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"ascending by id", "resourceId", []string{"Alpha", "beta", "zebra"}},
		{"descending by id", "-resourceId", []string{"zebra", "beta", "Alpha"}},
		{"ascending by vlan", "vlanID", []string{"Alpha", "beta", "zebra"}},
		{"descending by vlan", "-vlanID", []string{"zebra", "beta", "Alpha"}},
		{"case sensitive", "!resourceId", []string{"Alpha", "beta", "zebra"}},
		{"multiple fields", "-state,vlanID", []string{"beta", "zebra", "Alpha"}},
		{"empty spec", "", []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, data[i]["resourceId"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_Addresses(t *testing.T) {
	data := []map[string]interface{}{
		{"resourceId": "a", "addressPrefix": "10.0.10.0/24", "nextHop": "10.0.0.9"},
		{"resourceId": "b", "addressPrefix": "10.0.2.0/24"},
		{"resourceId": "c", "addressPrefix": "10.0.2.0/23", "nextHop": "10.0.0.10"},
	}

	SortDataset(data, "addressPrefix")
	assert.Equal(t, "c", data[0]["resourceId"])
	assert.Equal(t, "b", data[1]["resourceId"])
	assert.Equal(t, "a", data[2]["resourceId"])

	// Missing values stay last in both directions.
	for _, spec := range []string{"nextHop", "-nextHop"} {
		SortDataset(data, spec)
		assert.Equal(t, "b", data[2]["resourceId"], spec)
	}
	assert.Equal(t, "c", data[0]["resourceId"])
}

func TestParseSortSpec(t *testing.T) {
	assert.Equal(t, []sortKey{
		{field: "vlanID", descending: true},
		{field: "resourceId", caseSensitive: true},
		{field: "x", descending: true, caseSensitive: true},
	}, parseSortSpec("-vlanID, !resourceId,,-!x"))
	assert.Empty(t, parseSortSpec(""))
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "ln1", want: "ln1"},
		{name: "empty string", value: "", emptyVal: "-", want: "-"},
		{name: "int", value: 42, want: "42"},
		{name: "integral float", value: 4094.0, want: "4094"},
		{name: "fraction", value: 1.5, want: "1.5"},
		{name: "zero float", value: 0.0, emptyVal: "-", want: "0"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false", value: false, emptyVal: "-", want: "false"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []interface{}{"10.0.0.1", "10.0.0.2"}, want: `["10.0.0.1","10.0.0.2"]`},
		{name: "empty slice", value: []interface{}{}, emptyVal: "-", want: "-"},
		{name: "map", value: map[string]interface{}{"resourceRef": "/x"}, want: `{"resourceRef":"/x"}`},
		{name: "empty map", value: map[string]interface{}{}, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

const subnets = `{"value":[
  {"resourceId":"ls2","properties":{"provisioningState":"Failed","vlanID":200,"addressPrefix":"10.0.2.0/24"}},
  {"resourceId":"ls1","properties":{"provisioningState":"Succeeded","vlanID":10,"addressPrefix":"10.0.1.0/24"}},
  {"resourceId":"ls3","properties":{"provisioningState":"Succeeded","vlanID":300,"addressPrefix":"10.0.3.0/24"}}
]}`

// spit runs SliceDiceSpit inside a real command so that flags are parsed
// the way they are for hnvctl.
func spit(t *testing.T, attrSpec string, args ...string) string {
	t.Helper()

	var al attrs.AttrList
	require.NoError(t, al.Set(attrSpec))

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "lsq",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return SliceDiceSpit(*bytes.NewBufferString(subnets), al, cmd, "value", &buf, nil)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"lsq"}, args...)))

	return buf.String()
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	out := spit(t, ".resourceId:id,vlanID:vlan,!provisioningState",
		"--output", "json", "--filter", "provisioningState=Succeeded", "--sort", "-vlan")

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]interface{}{
		{"id": "ls3", "vlan": float64(300)},
		{"id": "ls1", "vlan": float64(10)},
	}, got)
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	out := spit(t, ".resourceId:id:U,vlanID:vlan", "--output", "yaml", "--sort", "vlan")

	assert.Equal(t, "- id: LS1\n  vlan: 10\n- id: LS2\n  vlan: 200\n- id: LS3\n  vlan: 300\n", out)
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	out := spit(t, ".resourceId", "--output", "raw")
	assert.Equal(t, subnets, out)
}

func TestSliceDiceSpit_Text(t *testing.T) {
	out := spit(t, ".resourceId:id,addressPrefix,provisioningState:state:l",
		"--titles", "--sort", "id")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "id")
	assert.Contains(t, lines[0], "addressPrefix")
	assert.Contains(t, lines[0], "state")
	assert.Contains(t, lines[1], "ls1")
	assert.Contains(t, lines[1], "10.0.1.0/24")
	assert.Contains(t, lines[2], "failed")
	assert.Contains(t, lines[3], "succeeded")
}

func TestSliceDiceSpit_PostProcess(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set(".resourceId"))

	var seen int
	cmd := &cli.Command{
		Name:  "lsq",
		Flags: []cli.Flag{&cli.StringFlag{Name: "output"}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return SliceDiceSpit(*bytes.NewBufferString(subnets), al, cmd, "value", &bytes.Buffer{},
				func(rows []map[string]interface{}) error {
					seen = len(rows)
					return nil
				})
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"lsq"}))
	assert.Equal(t, 3, seen)
}

func TestTableWriter(t *testing.T) {
	al := attrs.AttrList{
		{Key: "resourceId", OutputKey: "resourceId", Include: true},
		{Key: "properties.secret", OutputKey: "secret", Include: false},
		{Key: "properties.vlanID", OutputKey: "vlanID", Include: true},
	}

	t.Run("empty result set writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(nil, al, &cli.Command{}, &buf)
		assert.Empty(t, buf.String())
	})

	t.Run("excluded attrs and header", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := &cli.Command{
			Name:  "lnq",
			Flags: []cli.Flag{&cli.IntFlag{Name: "padding", Value: 1}},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cmd.Metadata = map[string]interface{}{"header": "Logical networks"}
				TableWriter([]map[string]interface{}{
					{"resourceId": "ln1", "secret": "hidden", "vlanID": nil},
				}, al, cmd, &buf)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), []string{"lnq"}))

		out := buf.String()
		assert.Contains(t, out, "Logical networks")
		assert.Contains(t, out, "ln1")
		assert.Contains(t, out, "-")
		assert.NotContains(t, out, "hidden")
	})
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(&model.VirtualNetwork{}), &buf)

	lines := strings.Split(buf.String(), "\n")
	for _, want := range []string{
		".resourceId",
		".etag",
		".resourceMetadata.tenantId",
		"provisioningState",
		"addressSpace.addressPrefixes",
		"logicalNetwork.resourceRef",
		"subnets",
	} {
		assert.Contains(t, lines, want)
	}
	assert.NotContains(t, lines, "properties")
	assert.NotContains(t, lines, ".properties")

	// Envelope attributes sort ahead of properties.
	assert.Less(t, indexOf(lines, ".resourceId"), indexOf(lines, "addressSpace"))
}

func TestDumpSchemaWalker_Depth(t *testing.T) {
	type leaf struct {
		Deep string `json:"deep"`
	}
	type inner struct {
		Leaf leaf `json:"leaf"`
	}
	type props struct {
		Inner   inner  `json:"inner"`
		Ignored string `json:"-"`
		NoTag   string
	}
	type resource struct {
		ID         string `json:"resourceId"`
		Properties props  `json:"properties"`
	}

	var names []string
	for _, tag := range dumpSchemaWalker("", reflect.TypeOf(resource{}), 0) {
		names = append(names, tag.print())
	}
	assert.ElementsMatch(t, []string{".resourceId", "inner", "inner.leaf"}, names)
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
