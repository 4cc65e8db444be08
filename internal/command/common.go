// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/csvctl/csvctl/internal/csvio"
	"github.com/csvctl/csvctl/internal/meta"
)

// sniffSize is how many leading bytes are peeked for delimiter detection.
const sniffSize = 4096

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

// BuildDialect assembles the CSV dialect from the common flags. A zero
// delimiter is left for sniffing at open time. Flag-level mistakes surface
// here, before the input is opened.
func BuildDialect(cmd *cli.Command) (csvio.Dialect, error) {
	quoting, err := csvio.ParseQuoting(cmd.Int("quoting"))
	if err != nil {
		return csvio.Dialect{}, err
	}

	d := csvio.Dialect{
		Quoting:  quoting,
		Encoding: cmd.String("encoding"),
	}

	if spec := cmd.String("delimiter"); spec != "" {
		delim, err := ParseDelimiter(spec)
		if err != nil {
			return csvio.Dialect{}, err
		}
		d.Delimiter = delim
	}

	return d, nil
}

// ParseDelimiter resolves a delimiter flag value to a single byte. Shells
// pass tabs more easily as the escape sequence.
func ParseDelimiter(spec string) (byte, error) {
	if spec == `\t` {
		spec = "\t"
	}
	if len(spec) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", spec)
	}
	return spec[0], nil
}

// OpenInput opens the input file ("-" means stdin) and, when the dialect has
// no delimiter yet, sniffs one from the leading bytes without consuming
// them. The returned closer must be called when reading is done.
func OpenInput(input string, dialect *csvio.Dialect) (io.Reader, func(), error) {
	var src io.Reader
	closer := func() {}

	if input == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, nil, err
		}
		src = f
		closer = func() { _ = f.Close() }
	}

	br := bufio.NewReaderSize(src, sniffSize)
	if dialect.Delimiter == 0 {
		peeked, err := br.Peek(sniffSize)
		if err != nil && err != io.EOF {
			closer()
			return nil, nil, err
		}
		decoded, err := csvio.DecodeReader(bytes.NewReader(peeked), dialect.Encoding)
		if err != nil {
			closer()
			return nil, nil, err
		}
		dialect.Delimiter = csvio.DetectDelimiter(decoded)
		log.Debugf("delimiter sniffed as %q", string(dialect.Delimiter))
	}

	return br, closer, nil
}
