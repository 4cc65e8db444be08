// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags shared by every subcommand that renders
// results.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "color",
			Usage: "enable colored table output",
			Value: false,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"F"},
			Usage:   "output format",
			Value:   "csv",
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show column titles with table output",
			Value:   false,
		},
	}

	return
}

// NewDelimiterFlag constructs the "delimiter" flag, optionally namespaced to
// a command and config file. params[1] is the config file. An unset value
// means the delimiter is sniffed from the first input line.
func NewDelimiterFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "delimiter",
		Aliases: []string{"d"},
		Usage:   "field delimiter (default: sniffed from the header line)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVCTL_DELIMITER"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewEncodingFlag constructs the "encoding" flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewEncodingFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "input/output charset by IANA name",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CSVCTL_ENCODING"),
		),
		Value: "utf-8",
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
