// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/hnv"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/model"
)

// readManifest loads the resources in path. "-" reads YAML or JSON from
// stdin.
func readManifest(cmd *cli.Command, path string) ([]model.Resource, error) {
	if path == "" {
		return nil, fmt.Errorf("missing manifest, set --file: %w", hnv.ErrValidation)
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		in := io.Reader(os.Stdin)
		if root := cmd.Root(); root != nil && root.Reader != nil {
			in = root.Reader
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	resources, err := model.DecodeManifest(data, model.FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("read %d resources from %s", len(resources), path)

	return resources, nil
}

// applyCommandAction creates or replaces every resource in the manifest, in
// the order given.
func applyCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	resources, err := readManifest(cmd, cmd.String("file"))
	if err != nil {
		return err
	}

	w := writer(cmd)

	if cmd.Bool("dry-run") {
		for _, r := range resources {
			if err := r.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s %s valid\n", r.Kind().Name, r.Envelope().ResourceID)
		}
		return nil
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	opts := waitOptions(cmd)
	for _, r := range resources {
		if err := s.Commit(ctx, r, opts); err != nil {
			return s.friendly(err, "commit", r.Kind(), r.Envelope().ResourceID)
		}

		line := fmt.Sprintf("%s %s committed", r.Kind().Name, r.Envelope().ResourceID)
		if state := model.ProvisioningState(r); state != "" {
			line += " (" + state + ")"
		}
		fmt.Fprintln(w, line)
	}

	return nil
}

func applyCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:      "file",
			Aliases:   []string{"f"},
			Usage:     "manifest to apply (yaml, json or toml). - reads stdin",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "validate the manifest without contacting the controller",
		},
	}
	flags = append(flags, NewWaitFlags()...)
	flags = append(flags, NewControllerFlags("apply", meta.Config.Source)...)

	return &cli.Command{
		Name:      "apply",
		Usage:     "create or replace resources from a manifest",
		UsageText: "hnvctl apply -f FILE [--no-wait] [--timeout D] [--dry-run]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: applyCommandAction,
	}
}
