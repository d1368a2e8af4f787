// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/aws"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/snapshot"
)

// s3Factory builds the S3 client for s3:// destinations from the
// --profile, --region and --endpoint flags.
func s3Factory(cmd *cli.Command) func(context.Context) (aws.ObjectPutter, error) {
	return func(ctx context.Context) (aws.ObjectPutter, error) {
		cfg, err := aws.LoadAWSConfig(ctx,
			aws.WithProfile(cmd.String("profile")),
			aws.WithRegion(cmd.String("region")),
		)
		if err != nil {
			return nil, err
		}
		return aws.NewS3(cfg, aws.WithEndpoint(cmd.String("endpoint"))), nil
	}
}

// exportCommandAction snapshots every top-level resource on the controller
// into a manifest that apply accepts.
func exportCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", GetMeta(cmd).Args)

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	doc, err := snapshot.Take(ctx, s, s.url)
	if err != nil {
		return s.friendly(err, "export", nil, "")
	}

	data, err := doc.JSON()
	if err != nil {
		return err
	}

	dest := cmd.String("to")
	sink := snapshot.Sink{Stdout: writer(cmd), NewS3: s3Factory(cmd)}
	if err := sink.Write(ctx, dest, data); err != nil {
		return err
	}

	if dest != "" && dest != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d resources to %s\n", len(doc.Resources), dest)
	}
	return nil
}

func exportCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:      "to",
			Usage:     "destination file or s3://bucket/key. Defaults to stdout",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// destinations",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// destinations",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3-compatible endpoint url, e.g. a MinIO server",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HNVCTL_S3_ENDPOINT")),
		},
	}
	flags[0] = NameSpacedValueChainFlagFromConfigFile("export", meta.Config.Source, flags[0].(*cli.StringFlag))
	flags = append(flags, NewControllerFlags("export", meta.Config.Source)...)

	return &cli.Command{
		Name:      "export",
		Usage:     "snapshot the controller into a manifest",
		UsageText: "hnvctl export [--to PATH|s3://bucket/key] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: exportCommandAction,
	}
}
