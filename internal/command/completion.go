// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/csvctl/csvctl/internal/meta"
)

const bashCompletionScript = `# bash completion for csvctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_csvctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "filter sniff completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color --format -F --titles -t --delimiter -d --encoding -e"

    case "$cmd" in
        filter)
            local opts="$common --all-words -a --columns -c --ignore-cases -i --index-tolerance --invert -v --maximum -M --minimum -m --no-header --output -o --quoting -q --strings -s --whole-words -w"
            ;;
        sniff)
            local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--format" || "$prev" == "-F" ]]; then
        COMPREPLY=( $(compgen -W "csv table json yaml" -- "$cur") )
        return 0
    fi

    # If current token starts with '-', offer flags
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the INPUT positional - complete file names
    COMPREPLY=( $(compgen -o filenames -f -- "$cur") )
    return 0
}

complete -F _csvctl csvctl
`

const zshCompletionScript = `#compdef csvctl

_csvctl() {
  local -a cmds
  cmds=(
    'filter:filter rows and columns by strings or interval'
    'sniff:report the detected dialect and header layout'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--color[enable colored table output]'
  '(-F --format)'{-F,--format}'[output format]:format:(csv table json yaml)'
  '(-t --titles)'{-t,--titles}'[show column titles]'
  '(-d --delimiter)'{-d,--delimiter}'[field delimiter]:delimiter'
  '(-e --encoding)'{-e,--encoding}'[input/output charset]:encoding'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'csvctl commands' cmds
    return
  fi

  case $words[2] in
    filter)
      _arguments -C \
        $common \
        '(-a --all-words)'{-a,--all-words}'[match only rows containing all strings]' \
        '(-c --columns)'{-c,--columns}'[column indexes or titles]:columns' \
        '(-i --ignore-cases)'{-i,--ignore-cases}'[ignore letter cases]' \
        '--index-tolerance[skip unresolvable column references]' \
        '(-v --invert)'{-v,--invert}'[invert row matching rules]' \
        '(-M --maximum)'{-M,--maximum}'[upper bound]:maximum' \
        '(-m --minimum)'{-m,--minimum}'[lower bound]:minimum' \
        '--no-header[input has no header row]' \
        '(-o --output)'{-o,--output}'[output file name]:output:_files' \
        '(-q --quoting)'{-q,--quoting}'[text quoting mode]:quoting:((0 1 2 3))' \
        '(-s --strings)'{-s,--strings}'[words to match or term file]:strings' \
        '(-w --whole-words)'{-w,--whole-words}'[match only whole strings]' \
        '::INPUT:_files'
      ;;
    sniff)
      _arguments -C $common '::INPUT:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:INPUT:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _csvctl csvctl csvctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: csvctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "csvctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
