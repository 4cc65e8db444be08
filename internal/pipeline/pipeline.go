// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"

	"github.com/csvctl/csvctl/internal/columns"
	"github.com/csvctl/csvctl/internal/filters"
)

// progressEvery is the row interval for debug progress reporting.
const progressEvery = 10000

// RowReader supplies parsed rows one at a time, io.EOF terminated. The
// csvio reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// Config is the immutable aggregate of filtering criteria consumed by the
// pipeline. Build it once per run; the zero value filters nothing.
type Config struct {
	Strings  *filters.StringCriteria
	Interval *filters.IntervalCriteria
	Columns  []string
	Invert   bool
	Policy   columns.Policy
	NoHeader bool
}

// Pipeline filters and projects rows from a single-pass source. It consumes
// the source exactly once, in order, and yields matching rows projected onto
// the resolved column selection. Stop consuming at any row boundary to
// terminate early; there is no other cancellation.
type Pipeline struct {
	r   RowReader
	cfg Config

	header    []string
	selection []int // nil means all columns, empty means none survived Bypass
	eof       bool

	// columnsOnly is the pure projection mode: columns configured but no
	// string or interval criteria, so every row passes.
	columnsOnly bool

	rowsRead    int64
	rowsMatched int64
}

// New reads the header row (unless cfg.NoHeader), resolves the column
// selection against it, and returns a pipeline ready to yield data rows.
// Column resolution failures surface here, after the header is read and
// before any data row is processed, unless the policy is Bypass.
func New(r RowReader, cfg Config) (*Pipeline, error) {
	p := &Pipeline{r: r, cfg: cfg}

	if !cfg.NoHeader {
		header, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.eof = true
				return p, nil
			}
			return nil, fmt.Errorf("reading header: %w", err)
		}
		p.header = header
	}

	selection, err := columns.Resolve(cfg.Columns, p.header, cfg.Policy)
	if err != nil {
		return nil, err
	}
	p.selection = selection

	p.columnsOnly = len(cfg.Columns) > 0 && cfg.Strings == nil && cfg.Interval == nil

	// Inverting a pure column selection means emitting the complement
	// columns rather than negating a predicate that would reject every row.
	if p.columnsOnly && cfg.Invert {
		if p.header == nil {
			return nil, errors.New("invert with a bare column selection requires a header")
		}
		p.selection = columns.Complement(p.selection, len(p.header))
	}

	log.Debugf("resolved column selection: %v", p.selection)

	return p, nil
}

// Header returns the header row projected onto the column selection, or nil
// when the input has none. The header always passes through unfiltered.
func (p *Pipeline) Header() []string {
	if p.header == nil {
		return nil
	}
	projected, _ := p.project(p.header)
	return projected
}

// Next yields the next matching row, projected onto the column selection,
// or io.EOF when the source is exhausted. Row order is preserved and each
// source row is visited exactly once.
func (p *Pipeline) Next() ([]string, error) {
	if p.eof {
		return nil, io.EOF
	}

	tolerant := p.cfg.Policy == columns.Bypass

	for {
		row, err := p.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.eof = true
			}
			return nil, err
		}

		p.rowsRead++
		if p.rowsRead%progressEvery == 0 {
			log.Debugf("read %d rows", p.rowsRead)
		}

		if !p.columnsOnly {
			ok, err := filters.Matches(row, p.selection, p.cfg.Strings, p.cfg.Interval, tolerant)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", p.rowsRead, err)
			}
			if ok == p.cfg.Invert {
				continue
			}
		}

		projected, err := p.project(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", p.rowsRead, err)
		}

		// A projection emptied by Bypass, whether the selection resolved to
		// nothing or every selected position fell past the row's end, yields
		// nothing worth emitting for this row.
		if p.selection != nil && len(projected) == 0 {
			continue
		}

		p.rowsMatched++
		return projected, nil
	}
}

// RowsRead returns the number of data rows consumed so far, header excluded.
func (p *Pipeline) RowsRead() int64 { return p.rowsRead }

// RowsMatched returns the number of rows yielded so far.
func (p *Pipeline) RowsMatched() int64 { return p.rowsMatched }

// All drains the pipeline into a slice. Intended for output formats that
// need the whole result set in memory; the csv path streams Next directly.
func (p *Pipeline) All() ([][]string, error) {
	//nolint:prealloc
	var rows [][]string
	for {
		row, err := p.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// project maps a row onto the selection, preserving selection order. Under
// the Strict policy an out-of-range position is an error; under Bypass it
// is omitted.
func (p *Pipeline) project(row []string) ([]string, error) {
	if p.selection == nil {
		return row, nil
	}

	projected := make([]string, 0, len(p.selection))
	for _, i := range p.selection {
		if i >= len(row) {
			if p.cfg.Policy == columns.Bypass {
				continue
			}
			return nil, fmt.Errorf("column index %d out of range for row with %d fields", i, len(row))
		}
		projected = append(projected, row[i])
	}
	return projected, nil
}
