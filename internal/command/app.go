// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/config"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the hnvctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine; everything has a default.
	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}
	meta := meta.Meta{
		Args:      args,
		Config:    cfg,
		Context:   ctx,
		Namespace: ns,
	}

	app := &cli.Command{
		Name:  "hnvctl",
		Usage: "Hyper-V Network Virtualization controller client",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "hnvctl version info",
				HideDefault: true,
			},
		},
	}

	for _, q := range queryKinds {
		app.Commands = append(app.Commands, queryCommandBuilder(q, meta))
	}

	app.Commands = append(app.Commands,
		getCommandBuilder(meta),
		applyCommandBuilder(meta),
		rmCommandBuilder(meta),
		diffCommandBuilder(meta),
		exportCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
