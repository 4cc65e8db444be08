// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/csvctl/csvctl/internal/columns"
	"github.com/csvctl/csvctl/internal/config"
	"github.com/csvctl/csvctl/internal/csvio"
	"github.com/csvctl/csvctl/internal/filters"
	"github.com/csvctl/csvctl/internal/meta"
	"github.com/csvctl/csvctl/internal/output"
	"github.com/csvctl/csvctl/internal/pipeline"
	"github.com/csvctl/csvctl/internal/util"
)

// filterCommandAction is the action handler for the "filter" subcommand. It
// resolves the criteria and dialect, runs the row pipeline over the input,
// and emits results per common flags.
func filterCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "filter"

	input := cmd.Args().First()
	if input == "" {
		return errors.New("missing required INPUT argument")
	}

	// Criteria are resolved up front so configuration mistakes abort before
	// the input is opened.
	strs, err := filters.NewStringCriteria(
		cmd.String("strings"),
		cmd.Bool("all-words"),
		cmd.Bool("whole-words"),
		cmd.Bool("ignore-cases"))
	if err != nil {
		return err
	}

	interval, err := filters.NewIntervalCriteria(cmd.String("minimum"), cmd.String("maximum"))
	if err != nil {
		return err
	}

	colSpec := columns.Split(cmd.String("columns"))

	if strs == nil && interval == nil && len(colSpec) == 0 {
		return errors.New("missing required filter arguments: provide --strings, --columns, --minimum or --maximum")
	}

	policy := columns.Strict
	if cmd.Bool("index-tolerance") {
		policy = columns.Bypass
	}

	dialect, err := BuildDialect(cmd)
	if err != nil {
		return err
	}

	in, closeInput, err := OpenInput(input, &dialect)
	if err != nil {
		return err
	}
	defer closeInput()

	reader, err := csvio.NewReader(in, dialect)
	if err != nil {
		return err
	}

	p, err := pipeline.New(reader, pipeline.Config{
		Strings:  strs,
		Interval: interval,
		Columns:  colSpec,
		Invert:   cmd.Bool("invert"),
		Policy:   policy,
		NoHeader: cmd.Bool("no-header"),
	})
	if err != nil {
		return err
	}

	if cmd.String("format") == "csv" {
		err = spitCSV(cmd, input, dialect, p)
	} else {
		err = spitBuffered(cmd, p)
	}
	if err != nil {
		return err
	}

	total, matched := p.RowsRead(), p.RowsMatched()
	fmt.Fprintf(os.Stderr, "Read %s total rows, %s unmatching, %s after filtering.\n",
		humanize.Comma(total), humanize.Comma(total-matched), humanize.Comma(matched))

	return nil
}

// spitBuffered drains the pipeline and hands the result set to the common
// format emitter. The buffered formats default to stdout; --output redirects
// them to a file just like the csv path.
func spitBuffered(cmd *cli.Command, p *pipeline.Pipeline) error {
	var dst io.Writer = os.Stdout
	if outName := cmd.String("output"); outName != "" && outName != "-" {
		f, err := os.Create(outName)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		dst = f
		log.Debugf("writing to %s", outName)
	}

	rows, err := p.All()
	if err != nil {
		return err
	}
	return output.Spit(p.Header(), rows, cmd, dst)
}

// spitCSV streams pipeline rows straight to the CSV writer so large inputs
// never have to fit in memory.
func spitCSV(cmd *cli.Command, input string, dialect csvio.Dialect, p *pipeline.Pipeline) error {
	outName := cmd.String("output")
	if outName == "" {
		outName = "-"
		if input != "-" {
			outName = util.DefaultOutputName(input)
		}
	}

	var dst io.Writer = os.Stdout
	if outName != "-" {
		f, err := os.Create(outName)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		dst = f
		log.Debugf("writing to %s", outName)
	}

	w, err := csvio.NewWriter(dst, dialect)
	if err != nil {
		return err
	}

	if header := p.Header(); len(header) > 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for {
		row, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Flush()
}

// filterCommandBuilder constructs the cli.Command for "filter", wiring
// metadata, flags, and action/validator handlers.
func filterCommandBuilder(meta meta.Meta) *cli.Command {
	params := []string{"filter"}
	if meta.Config.Source != "" {
		params = append(params, meta.Config.Source)
	}

	return &cli.Command{
		Name:      "filter",
		Usage:     "filter rows and columns by strings or interval",
		UsageText: "csvctl filter INPUT [options]",
		ArgsUsage: "INPUT",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "all-words",
				Aliases: []string{"a"},
				Usage:   "match only rows containing all strings",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "columns",
				Aliases: []string{"c"},
				Usage:   "comma-separated column indexes or titles",
			},
			&cli.BoolFlag{
				Name:    "ignore-cases",
				Aliases: []string{"i"},
				Usage:   "ignore letter cases such as AaBbCc",
				Value:   false,
			},
			&cli.BoolFlag{
				Name:  "index-tolerance",
				Usage: "skip unknown or out-of-range column references",
				Value: false,
			},
			&cli.BoolFlag{
				Name:    "invert",
				Aliases: []string{"v"},
				Usage:   "invert row matching rules",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "maximum",
				Aliases: []string{"M"},
				Usage:   "value or date (YYYY-MM-DD hh:mm:ss) upper bound",
			},
			&cli.StringFlag{
				Name:    "minimum",
				Aliases: []string{"m"},
				Usage:   "value or date (YYYY-MM-DD hh:mm:ss) lower bound",
			},
			&cli.BoolFlag{
				Name:  "no-header",
				Usage: "input has no header row",
				Value: false,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file name (default: INPUT_FILTERED, - for stdout)",
			},
			&cli.IntFlag{
				Name:    "quoting",
				Aliases: []string{"q"},
				Usage:   "text quoting (0 minimal, 1 all, 2 non-numeric, 3 none)",
				Value:   0,
				Validator: func(value int) error {
					return FlagValidators(value, QuotingValidator)
				},
			},
			&cli.StringFlag{
				Name:    "strings",
				Aliases: []string{"s"},
				Usage:   "words to match, or a file containing one per line",
			},
			&cli.BoolFlag{
				Name:    "whole-words",
				Aliases: []string{"w"},
				Usage:   "match only rows with whole strings",
				Value:   false,
			},
			NewDelimiterFlag(params...),
			NewEncodingFlag(params...),
		}, NewGlobalFlags("filter")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: filterCommandAction,
	}
}
