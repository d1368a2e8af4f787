// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders Markdown and man pages for every hnvctl subcommand from the
// live command tree. Examples and notes, which the tree does not carry, are
// merged in from templates/examples.yaml when present.
//
//	go run ./tools/docsgen docs
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hnvctl/hnvctl/internal/command"
	"github.com/hnvctl/hnvctl/internal/version"
)

// Extras holds the hand-written parts of each page, keyed by subcommand.
type Extras map[string]struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Subcommand struct {
	ID          string
	Short       string
	Description string
	Usage       string
	Flags       []Flag
	Examples    []Example
	Notes       []string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTemplate = `# hnvctl {{.ID}}

{{.Short}}

## Usage

` + "```" + `
{{.Usage}}
` + "```" + `
{{- if .Description}}

{{.Description}}
{{- end}}

## Options

| Flag | Description | Default | Env |
|------|-------------|---------|-----|
{{- range .Flags}}
| ` + "`{{.Syntax}}`" + ` | {{.Description}} | {{.Default}} | {{.Env}} |
{{- end}}
{{- if .Examples}}

## Examples
{{range .Examples}}
{{.Description}}

` + "```" + `
{{.Command}}
` + "```" + `
{{end}}
{{- end}}
{{- range .Notes}}

> {{.}}
{{- end}}

_hnvctl {{.Version}}, {{.Date}}_
`

const manTemplate = `.TH HNVCTL-{{.IDUpper}} 1 "{{.Date}}" "hnvctl {{.Version}}" "hnvctl manual"
.SH NAME
hnvctl-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
.nf
{{.Usage}}
.fi
{{- if .Description}}
.SH DESCRIPTION
{{.Description}}
{{- end}}
.SH OPTIONS
{{- range .Flags}}
.TP
.B {{.Syntax}}
{{.Description}}{{if .Default}} (default {{.Default}}){{end}}{{if .Env}} [{{.Env}}]{{end}}
{{- end}}
{{- if .Examples}}
.SH EXAMPLES
{{- range .Examples}}
.TP
{{.Description}}
.B {{.Command}}
{{- end}}
{{- end}}
`

// docFlag is the part of a cli flag the pages describe.
type docFlag interface {
	cli.Flag
	GetUsage() string
	GetEnvVars() []string
	TakesValue() bool
	GetDefaultText() string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(docs string, progress io.Writer) error {
	extras, err := loadExtras(filepath.Join(docs, "templates", "examples.yaml"))
	if err != nil {
		return err
	}

	app, err := command.InitApp(context.Background(), []string{"hnvctl"})
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: markdownTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "hnvctl-", Suffix: ".1"},
	}

	for _, sub := range subcommands(app, extras) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Fprintln(progress, "Generating", path)
			if err := render(t, path, metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func render(t Outputs, path string, data TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil {
		return err
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(t.Template)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

func loadExtras(path string) (Extras, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Extras{}, nil
	}
	if err != nil {
		return nil, err
	}

	var extras Extras
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return extras, nil
}

// subcommands describes every command of app, flags sorted by name.
func subcommands(app *cli.Command, extras Extras) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		sub := Subcommand{
			ID:    cmd.Name,
			Short: cmd.Usage,
			Usage: cmd.UsageText,
		}
		if sub.Usage == "" {
			sub.Usage = "hnvctl " + cmd.Name + " [options]"
		}
		if x, ok := extras[cmd.Name]; ok {
			sub.Description = x.Description
			sub.Examples = x.Examples
			sub.Notes = x.Notes
		}

		for _, f := range cmd.Flags {
			if df, ok := f.(docFlag); ok {
				sub.Flags = append(sub.Flags, describeFlag(df))
			}
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})

		subs = append(subs, sub)
	}
	return subs
}

func describeFlag(f docFlag) Flag {
	names := f.Names()

	var syntax []string
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}
	s := strings.Join(syntax, ", ")
	if f.TakesValue() {
		s += " VALUE"
	}

	return Flag{
		ID:          names[0],
		Syntax:      s,
		Description: f.GetUsage(),
		Default:     f.GetDefaultText(),
		Env:         strings.Join(f.GetEnvVars(), ", "),
	}
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to the build version if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return version.Version
	}

	v := strings.TrimSpace(string(out))
	return strings.TrimPrefix(v, "v")
}
