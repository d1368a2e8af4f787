// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hnvctl/hnvctl/internal/cacheutil"
	"github.com/hnvctl/hnvctl/internal/command"
	"github.com/hnvctl/hnvctl/internal/config"
	"github.com/hnvctl/hnvctl/internal/log"
	"github.com/hnvctl/hnvctl/internal/version"
)

var ctx = context.Background()

// repeatableFlags may legitimately appear more than once.
var repeatableFlags = []string{"--ignore"}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set and drops repeated flags. completion args
// pass through untouched.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args, valueFlags(args))
}

// valueFlags returns every spelling (--name, -n) of the flags of the args[1]
// subcommand that take a value.
func valueFlags(args []string) map[string]bool {
	if len(args) < 2 {
		return nil
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		log.Debugf("flag lookup failed: err=%v", err)
		return nil
	}

	out := map[string]bool{}
	for _, cmd := range app.Commands {
		if cmd.Name != args[1] {
			continue
		}
		for _, f := range cmd.Flags {
			tv, ok := f.(interface{ TakesValue() bool })
			if !ok || !tv.TakesValue() {
				continue
			}
			for _, n := range f.Names() {
				if len(n) == 1 {
					out["-"+n] = true
				} else {
					out["--"+n] = true
				}
			}
		}
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, _, err := cacheutil.EnsureBaseDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !slices.ContainsFunc(args, func(a string) bool { return a == "--help" || a == "-h" }) {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. The entries come from the <command>.<set>
// config key, e.g. lsq.lab for "hnvctl lsq @lab".
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("set %s not expanded: %v", set, err)
	}

	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := make([]string, 0, len(args)+len(expanded)-1)
	out = append(out, args[:removeIdx]...)
	out = append(out, expanded...)
	return append(out, args[removeIdx+1:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, so a value
// from an @set can be overridden further along the command line. A flag in
// takesValue owns the token after it; any other flag stands alone, so the
// positional arguments around it are kept in place.
func deduplicateFlags(args []string, takesValue map[string]bool) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		key    string
		tokens []string
	}

	var groups []group
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if a == "--" {
			groups = append(groups, group{tokens: rest[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(a, "=")
		g := group{key: key, tokens: []string{a}}
		if !hasValue && takesValue[key] && i+1 < len(rest) &&
			(rest[i+1] == "-" || !strings.HasPrefix(rest[i+1], "-")) {
			g.tokens = append(g.tokens, rest[i+1])
			i++
		}
		if slices.Contains(repeatableFlags, key) {
			g.key = ""
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.key != "" {
			last[g.key] = i
		}
	}

	out := slices.Clone(args[:2])
	for i, g := range groups {
		if g.key == "" || last[g.key] == i {
			out = append(out, g.tokens...)
		}
	}
	return out
}
