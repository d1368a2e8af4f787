// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hnvctl/hnvctl/internal/meta"
)

const bashCompletionScript = `# bash completion for hnvctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_hnvctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "lnq lsq ipq niq icq vnq snq aclq arq rtq roq get apply rm diff export completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local controller="--url -u --username --password --ca-bundle --insecure -k"
    local parents="--parent -p --grandparent -g"
    local common="--attrs -a --color -c --filter -f --local -l --output -o --padding --sort -s --titles -t --schema $parents $controller"
    local kinds="ln ls ip ni ic vn sn acl ar rt ro"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --file|-f|--to|--ca-bundle)
            if [[ "$cmd" == apply || "$cmd" == diff || "$prev" != -f ]]; then
                COMPREPLY=( $(compgen -f -- "$cur") )
                return 0
            fi
            ;;
    esac

    local opts
    case "$cmd" in
        lnq|lsq|ipq|niq|icq|vnq|snq|aclq|arq|rtq|roq)
            opts="$common"
            ;;
        get)
            opts="--output -o $parents $controller"
            ;;
        apply)
            opts="--file -f --dry-run --no-wait --timeout $controller"
            ;;
        rm)
            opts="--no-wait --timeout $parents $controller"
            ;;
        diff)
            opts="--file -f --color -c --ignore $parents $controller"
            ;;
        export)
            opts="--to --profile --region --endpoint $controller"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    # KIND is the first positional of get, rm and diff.
    if [[ "$cur" != -* && ${COMP_CWORD} -eq 2 ]]; then
        case "$cmd" in
            get|rm|diff)
                COMPREPLY=( $(compgen -W "$kinds" -- "$cur") )
                return 0
                ;;
        esac
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _hnvctl hnvctl
`

const zshCompletionScript = `#compdef hnvctl

_hnvctl() {
  local -a cmds
  cmds=(
    'lnq:logical network query'
    'lsq:logical subnet query'
    'ipq:ip pool query'
    'niq:network interface query'
    'icq:ip configuration query'
    'vnq:virtual network query'
    'snq:virtual subnet query'
    'aclq:access control list query'
    'arq:acl rule query'
    'rtq:route table query'
    'roq:route query'
    'get:show one resource'
    'apply:create or replace resources from a manifest'
    'rm:remove resources'
    'diff:compare resources'
    'export:snapshot the controller into a manifest'
    'completion:generate shell completion script'
  )

  local -a kinds
  kinds=(ln ls ip ni ic vn sn acl ar rt ro)

  local -a controller
  controller=(
  '(-u --url)'{-u,--url}'[network controller url]:url'
  '--username[basic auth user]:user'
  '--password[basic auth password]:password'
  '--ca-bundle[CA bundle]:file:_files'
  '(-k --insecure)'{-k,--insecure}'[skip TLS verification]'
  )

  local -a parents
  parents=(
  '(-p --parent)'{-p,--parent}'[parent resource id]:id'
  '(-g --grandparent)'{-g,--grandparent}'[grandparent resource id]:id'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-l --local)'{-l,--local}'[local timestamps]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  )

  local -a wait
  wait=(
  '--no-wait[do not wait for the controller]'
  '--timeout[give up waiting after]:duration'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'hnvctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    lnq|lsq|ipq|niq|icq|vnq|snq|aclq|arq|rtq|roq)
      _arguments -C $common $parents $controller
      ;;
    get)
      _arguments -C \
        '(-o --output)'{-o,--output}'[output format]:format:(json yaml)' \
        $parents $controller \
        "1:kind:($kinds)" '2:id'
      ;;
    apply)
      _arguments -C \
        '(-f --file)'{-f,--file}'[manifest]:file:_files' \
        '--dry-run[validate only]' \
        $wait $controller
      ;;
    rm)
      _arguments -C $wait $parents $controller "1:kind:($kinds)" '*:id'
      ;;
    diff)
      _arguments -C \
        '(-f --file)'{-f,--file}'[manifest]:file:_files' \
        '(-c --color)'{-c,--color}'[colored diff]' \
        '--ignore[keys to ignore]:key' \
        $parents $controller \
        "1:kind:($kinds)" '2:id' '3:id'
      ;;
    export)
      _arguments -C \
        '--to[destination]:file:_files' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--endpoint[S3 endpoint]:url' \
        $controller
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _hnvctl hnvctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: hnvctl completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q, use bash or zsh", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "hnvctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
