// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
)

// rmCommandAction deletes one or more resources of a kind, waiting for each
// to disappear unless --no-wait.
func rmCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	k, ids, err := kindAndIDs(cmd, 1, -1)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	opts := waitOptions(cmd)
	for _, id := range ids {
		if err := s.Remove(ctx, k, pathFromFlags(cmd, id), opts); err != nil {
			return s.friendly(err, "remove", k, id)
		}
		fmt.Fprintf(writer(cmd), "%s %s removed\n", k.Name, id)
	}

	return nil
}

func rmCommandBuilder(meta meta.Meta) *cli.Command {
	flags := NewParentFlags()
	flags = append(flags, NewWaitFlags()...)
	flags = append(flags, NewControllerFlags("rm", meta.Config.Source)...)

	return &cli.Command{
		Name:      "rm",
		Usage:     "remove resources",
		UsageText: "hnvctl rm KIND ID [ID...] [--parent ID] [--grandparent ID] [--no-wait] [--timeout D]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: rmCommandAction,
	}
}
