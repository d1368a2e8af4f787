// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/hnv"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/model"
)

// kindAndIDs reads the KIND [ID...] positional arguments.
func kindAndIDs(cmd *cli.Command, minIDs, maxIDs int) (*model.Kind, []string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("missing resource kind: %w", hnv.ErrValidation)
	}

	k, err := model.Lookup(args[0])
	if err != nil {
		return nil, nil, err
	}

	ids := args[1:]
	switch {
	case len(ids) < minIDs:
		return nil, nil, fmt.Errorf("%s: expected at least %d resource id(s): %w", k.Name, minIDs, hnv.ErrValidation)
	case maxIDs >= 0 && len(ids) > maxIDs:
		return nil, nil, fmt.Errorf("%s: expected at most %d resource id(s): %w", k.Name, maxIDs, hnv.ErrValidation)
	}

	return k, ids, nil
}

// getCommandAction prints a single resource document, read-only fields
// included.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	k, ids, err := kindAndIDs(cmd, 1, 1)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	r, err := s.Get(ctx, k, pathFromFlags(cmd, ids[0]))
	if err != nil {
		return s.friendly(err, "get", k, ids[0])
	}

	var out []byte
	switch cmd.String("output") {
	case "yaml":
		out, err = model.DumpYAML(r, true)
	default:
		var doc map[string]any
		if doc, err = model.Dump(r, true); err == nil {
			out, err = json.MarshalIndent(doc, "", "  ")
			out = append(out, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", k.Name, err)
	}

	_, err = writer(cmd).Write(out)
	return err
}

func getCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (json or yaml)",
			Value:   "json",
			Validator: func(value string) error {
				if !slices.Contains([]string{"json", "yaml"}, value) {
					return fmt.Errorf("must be one of [json yaml]")
				}
				return nil
			},
		},
	}
	flags = append(flags, NewParentFlags()...)
	flags = append(flags, NewControllerFlags("get", meta.Config.Source)...)

	return &cli.Command{
		Name:      "get",
		Usage:     "show one resource",
		UsageText: "hnvctl get KIND ID [--parent ID] [--grandparent ID] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: getCommandAction,
	}
}
