// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/model"
)

// QueryActionRunner encapsulates the common query action pattern for all
// query subcommands. It handles GetMeta, the schema short-circuit, BuildAttrs
// and output emission, with data fetching provided by FetchFn.
type QueryActionRunner struct {
	CommandName  string
	Kind         *model.Kind
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]model.Resource, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing %s action for %v", qar.CommandName, m.Args)

	// --schema needs no controller.
	if DumpSchemaIfRequested(cmd, qar.Kind) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return fmt.Errorf("%s: %w", qar.CommandName, err)
	}
	log.Debugf("attrs: %v", attrs)

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	return EmitResources(results, attrs, cmd)
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration.
func NewQueryActionRunner(
	commandName string,
	kind *model.Kind,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]model.Resource, error),
) *QueryActionRunner {
	return &QueryActionRunner{
		CommandName:  commandName,
		Kind:         kind,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
