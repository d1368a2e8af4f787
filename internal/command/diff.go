// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/differ"
	"github.com/hnvctl/hnvctl/internal/hnv"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/model"
)

// selectResources picks two resources interactively. Replaced in tests.
var selectResources = differ.SelectResources

func diffOptions(cmd *cli.Command) differ.Options {
	return differ.Options{
		Color:  cmd.Bool("color"),
		Ignore: cmd.StringSlice("ignore"),
	}
}

// diffCommandAction compares a manifest against the controller, or two
// resources of one kind on the controller.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	if path := cmd.String("file"); path != "" {
		if cmd.Args().Len() > 0 {
			return fmt.Errorf("--file and KIND are mutually exclusive: %w", hnv.ErrValidation)
		}
		return diffManifest(ctx, cmd, path)
	}

	k, ids, err := kindAndIDs(cmd, 0, 2)
	if err != nil {
		return err
	}
	if len(ids) == 1 {
		return fmt.Errorf("%s: give two resource ids, or none to pick interactively: %w", k.Name, hnv.ErrValidation)
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	var pair []model.Resource
	if len(ids) == 2 {
		for _, id := range ids {
			r, err := s.Get(ctx, k, pathFromFlags(cmd, id))
			if err != nil {
				return s.friendly(err, "get", k, id)
			}
			pair = append(pair, r)
		}
	} else {
		if !stdinIsTerminal() {
			return fmt.Errorf("%s: two resource ids are required without a terminal: %w", k.Name, hnv.ErrValidation)
		}
		items, err := s.List(ctx, k, pathFromFlags(cmd, ""))
		if err != nil {
			return s.friendly(err, "list", k, "")
		}
		if len(items) < 2 {
			return fmt.Errorf("%s: need at least two resources to compare, found %d: %w", k.Name, len(items), hnv.ErrValidation)
		}
		if pair, err = selectResources(ctx, items); err != nil {
			return err
		}
		if len(pair) != 2 {
			log.Debug("nothing selected")
			return nil
		}
	}

	_, err = differ.Diff(writer(cmd), pair[0], pair[1], diffOptions(cmd))
	return err
}

// diffManifest shows, per resource in path, what applying it would change.
func diffManifest(ctx context.Context, cmd *cli.Command, path string) error {
	resources, err := readManifest(cmd, path)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	w := writer(cmd)
	opts := diffOptions(cmd)
	for _, local := range resources {
		k, p := local.Kind(), model.PathOf(local)
		if p.ResourceID == "" {
			return fmt.Errorf("%s in %s has no resourceId: %w", k.Name, path, hnv.ErrValidation)
		}

		fmt.Fprintf(w, "%s %s\n", k.Name, p.ResourceID)

		remote, err := s.Get(ctx, k, p)
		if errors.Is(err, hnv.ErrNotFound) {
			fmt.Fprintln(w, "Not present on the controller.")
			continue
		}
		if err != nil {
			return s.friendly(err, "get", k, p.ResourceID)
		}

		if _, err := differ.Diff(w, remote, local, opts); err != nil {
			return err
		}
	}

	return nil
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:      "file",
			Aliases:   []string{"f"},
			Usage:     "manifest to compare against the controller",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored diff output",
		},
		&cli.StringSliceFlag{
			Name:  "ignore",
			Usage: "top-level keys to leave out of the comparison",
		},
	}
	flags = append(flags, NewParentFlags()...)
	flags = append(flags, NewControllerFlags("diff", meta.Config.Source)...)

	return &cli.Command{
		Name:  "diff",
		Usage: "compare resources",
		UsageText: "hnvctl diff -f FILE [options]\n" +
			"hnvctl diff KIND [ID1 ID2] [--parent ID] [--grandparent ID] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: diffCommandAction,
	}
}
