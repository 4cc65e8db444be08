// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/csvctl/csvctl/internal/config"
	"github.com/csvctl/csvctl/internal/csvio"
	"github.com/csvctl/csvctl/internal/meta"
	"github.com/csvctl/csvctl/internal/output"
)

// sniffCommandAction is the action handler for the "sniff" subcommand. It
// detects the input dialect and reports the header layout so column specs
// can be written without opening the file elsewhere.
func sniffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "sniff"

	input := cmd.Args().First()
	if input == "" {
		return errors.New("missing required INPUT argument")
	}

	// Sniff has no quoting flag; only delimiter and encoding shape reading.
	dialect := csvio.Dialect{Encoding: cmd.String("encoding")}
	if spec := cmd.String("delimiter"); spec != "" {
		delim, err := ParseDelimiter(spec)
		if err != nil {
			return err
		}
		dialect.Delimiter = delim
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

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(os.Stderr, "empty input")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "delimiter: %s\n", printableDelimiter(dialect.Delimiter))
	fmt.Fprintf(os.Stderr, "columns: %d\n", len(header))

	rows := make([][]string, 0, len(header))
	for i, title := range header {
		rows = append(rows, []string{strconv.Itoa(i), title})
	}

	return output.Spit([]string{"index", "title"}, rows, cmd, os.Stdout)
}

func printableDelimiter(d byte) string {
	switch d {
	case '\t':
		return `\t`
	default:
		return string(d)
	}
}

// sniffCommandBuilder constructs the cli.Command for "sniff".
func sniffCommandBuilder(meta meta.Meta) *cli.Command {
	params := []string{"sniff"}
	if meta.Config.Source != "" {
		params = append(params, meta.Config.Source)
	}

	return &cli.Command{
		Name:      "sniff",
		Usage:     "report the detected dialect and header layout",
		UsageText: "csvctl sniff INPUT [options]",
		ArgsUsage: "INPUT",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewDelimiterFlag(params...),
			NewEncodingFlag(params...),
		}, NewGlobalFlags("sniff")...),
		Action: sniffCommandAction,
	}
}
