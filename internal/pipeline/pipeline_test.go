// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pipeline

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvctl/csvctl/internal/columns"
	"github.com/csvctl/csvctl/internal/filters"
)

// sliceReader feeds canned rows to the pipeline.
type sliceReader struct {
	rows [][]string
	pos  int
}

func (r *sliceReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func strCriteria(t *testing.T, spec string) *filters.StringCriteria {
	t.Helper()
	c, err := filters.NewStringCriteria(spec, false, false, false)
	require.NoError(t, err)
	return c
}

func intervalCriteria(t *testing.T, minSpec, maxSpec string) *filters.IntervalCriteria {
	t.Helper()
	c, err := filters.NewIntervalCriteria(minSpec, maxSpec)
	require.NoError(t, err)
	return c
}

func run(t *testing.T, rows [][]string, cfg Config) ([]string, [][]string, *Pipeline) {
	t.Helper()
	p, err := New(&sliceReader{rows: rows}, cfg)
	require.NoError(t, err)
	got, err := p.All()
	require.NoError(t, err)
	return p.Header(), got, p
}

func TestEmptyCriteriaPassEverything(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "a"},
		{"2", "b"},
	}

	header, got, p := run(t, rows, Config{})
	assert.Equal(t, []string{"id", "val"}, header)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", "b"}}, got)
	assert.Equal(t, int64(2), p.RowsRead())
	assert.Equal(t, int64(2), p.RowsMatched())
}

func TestStringFiltering(t *testing.T) {
	rows := [][]string{
		{"id", "animal"},
		{"1", "cat"},
		{"2", "dog"},
		{"3", "concatenate"},
	}

	_, got, _ := run(t, rows, Config{Strings: strCriteria(t, "cat")})
	assert.Equal(t, [][]string{{"1", "cat"}, {"3", "concatenate"}}, got)
}

func TestWholeWordFiltering(t *testing.T) {
	rows := [][]string{
		{"id", "animal"},
		{"1", "cat"},
		{"2", "ca"},
		{"3", "concatenate"},
	}

	c, err := filters.NewStringCriteria("cat", false, true, false)
	require.NoError(t, err)

	_, got, _ := run(t, rows, Config{Strings: c})
	assert.Equal(t, [][]string{{"1", "cat"}}, got)
}

func TestIntervalFiltering(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "5"},
		{"2", "10"},
		{"3", "15"},
		{"4", "20"},
		{"5", "25"},
		{"6", "oops"},
	}

	_, got, _ := run(t, rows, Config{Interval: intervalCriteria(t, "10", "20")})
	assert.Equal(t, [][]string{{"2", "10"}, {"3", "15"}, {"4", "20"}}, got)
}

func TestDateIntervalFiltering(t *testing.T) {
	rows := [][]string{
		{"id", "when"},
		{"1", "2024-01-10"},
		{"2", "2024-01-15 08:30:00"},
		{"3", "2024-02-01"},
	}

	cfg := Config{
		Interval: intervalCriteria(t, "2024-01-12", "2024-01-20"),
		Columns:  []string{"when"},
	}
	_, got, _ := run(t, rows, cfg)
	assert.Equal(t, [][]string{{"2024-01-15 08:30:00"}}, got)
}

func TestInvertPartitionsRows(t *testing.T) {
	rows := [][]string{
		{"id", "animal"},
		{"1", "cat"},
		{"2", "dog"},
		{"3", "catfish"},
	}

	_, matched, _ := run(t, rows, Config{Strings: strCriteria(t, "cat")})
	_, inverted, _ := run(t, rows, Config{Strings: strCriteria(t, "cat"), Invert: true})

	// Together the two runs partition the input.
	assert.Len(t, matched, 2)
	assert.Len(t, inverted, 1)
	assert.Equal(t, [][]string{{"2", "dog"}}, inverted)
}

func TestColumnProjection(t *testing.T) {
	rows := [][]string{
		{"id", "name", "val"},
		{"1", "a", "x"},
		{"2", "b", "y"},
	}

	header, got, _ := run(t, rows, Config{Columns: []string{"val", "id"}})
	assert.Equal(t, []string{"val", "id"}, header)
	assert.Equal(t, [][]string{{"x", "1"}, {"y", "2"}}, got)
}

func TestColumnsOnlyInvertSelectsComplement(t *testing.T) {
	rows := [][]string{
		{"id", "name", "val"},
		{"1", "a", "x"},
	}

	header, got, _ := run(t, rows, Config{Columns: []string{"name"}, Invert: true})
	assert.Equal(t, []string{"id", "val"}, header)
	assert.Equal(t, [][]string{{"1", "x"}}, got)
}

func TestColumnsOnlyInvertWithoutHeaderFails(t *testing.T) {
	_, err := New(&sliceReader{rows: [][]string{{"1", "2"}}}, Config{
		Columns:  []string{"0"},
		Invert:   true,
		NoHeader: true,
	})
	assert.Error(t, err)
}

func TestCriteriaInvertKeepsProjection(t *testing.T) {
	rows := [][]string{
		{"id", "animal"},
		{"1", "cat"},
		{"2", "dog"},
	}

	// With criteria present, invert negates the predicate and the column
	// selection still projects normally.
	cfg := Config{
		Strings: strCriteria(t, "cat"),
		Columns: []string{"animal"},
		Invert:  true,
	}
	header, got, _ := run(t, rows, cfg)
	assert.Equal(t, []string{"animal"}, header)
	assert.Equal(t, [][]string{{"dog"}}, got)
}

func TestCriteriaScopedToSelectedColumns(t *testing.T) {
	rows := [][]string{
		{"id", "note", "val"},
		{"15", "x", "1"},
		{"1", "y", "15"},
	}

	// The interval applies only to the selected column, so the id column
	// never matches on its own.
	cfg := Config{
		Interval: intervalCriteria(t, "10", "20"),
		Columns:  []string{"val"},
	}
	_, got, _ := run(t, rows, cfg)
	assert.Equal(t, [][]string{{"15"}}, got)
}

func TestNoHeaderIndexesOnly(t *testing.T) {
	rows := [][]string{
		{"1", "cat"},
		{"2", "dog"},
	}

	p, err := New(&sliceReader{rows: rows}, Config{
		Strings:  strCriteria(t, "cat"),
		Columns:  []string{"1"},
		NoHeader: true,
	})
	require.NoError(t, err)
	assert.Nil(t, p.Header())

	got, err := p.All()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"cat"}}, got)
}

func TestUnknownColumnStrictFailsBeforeRows(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "a"},
	}

	_, err := New(&sliceReader{rows: rows}, Config{Columns: []string{"nope"}})
	assert.Error(t, err)
}

func TestShortRowStrictIsAnError(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "a"},
		{"2"},
	}

	p, err := New(&sliceReader{rows: rows}, Config{
		Strings: strCriteria(t, "a"),
		Columns: []string{"val"},
	})
	require.NoError(t, err)

	_, err = p.All()
	assert.Error(t, err)
}

func TestShortRowBypassedSkipsField(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "a"},
		{"2"},
		{"3", "a"},
	}

	p, err := New(&sliceReader{rows: rows}, Config{
		Strings: strCriteria(t, "a"),
		Columns: []string{"val"},
		Policy:  columns.Bypass,
	})
	require.NoError(t, err)

	got, err := p.All()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"a"}}, got)
}

func TestAllColumnsBypassedEmitsNothing(t *testing.T) {
	rows := [][]string{
		{"id", "val"},
		{"1", "a"},
	}

	p, err := New(&sliceReader{rows: rows}, Config{
		Columns: []string{"nope"},
		Policy:  columns.Bypass,
	})
	require.NoError(t, err)

	// The selection is configured but empty, not absent, so nothing falls
	// back to all columns.
	assert.Empty(t, p.Header())

	got, err := p.All()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int64(1), p.RowsRead())
	assert.Equal(t, int64(0), p.RowsMatched())
}

func TestEmptyInput(t *testing.T) {
	p, err := New(&sliceReader{}, Config{})
	require.NoError(t, err)
	assert.Nil(t, p.Header())

	got, err := p.All()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int64(0), p.RowsRead())
}

func TestHeaderOnlyInput(t *testing.T) {
	p, err := New(&sliceReader{rows: [][]string{{"id", "val"}}}, Config{
		Strings: strCriteria(t, "cat"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "val"}, p.Header())

	got, err := p.All()
	require.NoError(t, err)
	assert.Empty(t, got)
}
