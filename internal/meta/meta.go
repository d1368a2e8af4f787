// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/hnvctl/hnvctl/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// the configuration loaded for the invoked command and the context.
// Namespace is the subcommand name and doubles as the config file namespace;
// it is kept apart from Config because no config file may exist.
type Meta struct {
	Args      []string
	Config    config.Type
	Context   context.Context
	Namespace string
}
