// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hnvctl/hnvctl/internal/attrs"
	"github.com/hnvctl/hnvctl/internal/config"
	"github.com/hnvctl/hnvctl/internal/hnv"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/meta"
	"github.com/hnvctl/hnvctl/internal/model"
	"github.com/hnvctl/hnvctl/internal/output"
)

// DefaultCacheMaxAge bounds how long a cached GET answer is served when
// cache.max_age is not configured.
const DefaultCacheMaxAge = time.Minute

// Terminal hooks, replaced in tests.
var (
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readPassword    = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w: %w", hnv.ErrValidation, err)
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// DumpSchemaIfRequested writes the attribute keys of k to the command's
// writer when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, k *model.Kind) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(reflect.TypeOf(k.New()), writer(cmd))
		return true
	}
	return false
}

// EmitResources renders resources, read-only fields included, through the
// common output routine.
func EmitResources(resources []model.Resource, al attrs.AttrList, cmd *cli.Command) error {
	docs := make([]map[string]any, 0, len(resources))
	for _, r := range resources {
		doc, err := model.Dump(r, true)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(map[string]any{"value": docs}); err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}
	return output.SliceDiceSpit(raw, al, cmd, "value", writer(cmd), nil)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ControllerSettings resolves the controller settings for cmd. Flags (and the
// env vars and config keys chained behind them) override the hnv: section.
// A missing password is prompted for when a user is set and stdin is a
// terminal.
func ControllerSettings(cmd *cli.Command) (config.Controller, error) {
	c, err := config.LoadController()
	if err != nil {
		return c, fmt.Errorf("failed to load controller settings: %w", err)
	}

	if cmd.IsSet("url") {
		c.URL = cmd.String("url")
	}
	if cmd.IsSet("username") {
		c.Username = cmd.String("username")
	}
	if cmd.IsSet("password") {
		c.Password = cmd.String("password")
	}
	if cmd.IsSet("ca-bundle") {
		c.CABundle = cmd.String("ca-bundle")
	}
	if cmd.IsSet("insecure") {
		c.AllowInsecure = cmd.Bool("insecure")
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid controller settings: %w: %v", hnv.ErrValidation, err)
	}

	if c.Username != "" && c.Password == "" && stdinIsTerminal() {
		fmt.Fprintf(os.Stderr, "Password for %s@%s: ", c.Username, c.URL)
		pw, err := readPassword()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return c, fmt.Errorf("failed to read password: %w", err)
		}
		c.Password = string(pw)
	}

	return c, nil
}

// session is a Manager bound to one controller.
type session struct {
	*model.Manager
	url string
}

// openSession connects cmd to its controller. Query commands pass cached so
// that GETs may be served from the on-disk cache. Mutations and anything that
// polls must not.
func openSession(cmd *cli.Command, cached bool) (*session, error) {
	c, err := ControllerSettings(cmd)
	if err != nil {
		return nil, err
	}

	client, err := hnv.NewClient(c)
	if err != nil {
		return nil, err
	}

	var t model.Transport = client
	if cached {
		maxAge, err := config.GetDuration("cache.max_age", DefaultCacheMaxAge)
		if err != nil {
			log.WithError(err).Warn("ignoring cache.max_age")
			maxAge = DefaultCacheMaxAge
		}
		t = hnv.NewCached(client, maxAge)
	}

	return &session{Manager: model.NewManager(t, c.RetryInterval), url: client.URL()}, nil
}

// friendly decorates err with the controller, operation and resource.
func (s *session) friendly(err error, op string, k *model.Kind, id string) error {
	ctx := hnv.ErrorContext{URL: s.url, Operation: op, ID: id}
	if k != nil {
		ctx.Kind = k.Name
	}
	return hnv.Friendly(err, ctx)
}

// pathFromFlags addresses id under the --parent and --grandparent flags.
func pathFromFlags(cmd *cli.Command, id string) model.Path {
	return model.Path{
		GrandParentID: cmd.String("grandparent"),
		ParentID:      cmd.String("parent"),
		ResourceID:    id,
	}
}

// waitOptions reads --no-wait and --timeout.
func waitOptions(cmd *cli.Command) model.WaitOptions {
	return model.WaitOptions{
		Wait:    !cmd.Bool("no-wait"),
		Timeout: cmd.Duration("timeout"),
	}
}

// writer is where a command prints its results.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
