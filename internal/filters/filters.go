// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/apex/log"

	"github.com/csvctl/csvctl/internal/normalize"
)

// StringCriteria is the parsed --strings specification: the set of terms to
// look for plus the flags that shape how they match. Construct it once with
// NewStringCriteria; it is immutable for the run.
type StringCriteria struct {
	Terms       []string
	AllWords    bool
	WholeWords  bool
	IgnoreCases bool

	// patterns holds one compiled word-boundary regex per term when
	// WholeWords is set. Compiled once so per-row matching stays cheap.
	patterns []*regexp.Regexp
}

// IntervalCriteria is the parsed --minimum/--maximum specification. Bounds
// are inclusive and either side may be open (nil). Dates records that at
// least one bound was supplied as a date, which switches per-field
// normalization into date mode.
type IntervalCriteria struct {
	Min   *float64
	Max   *float64
	Dates bool
}

// NewStringCriteria builds a StringCriteria from a spec that is either a
// literal comma/space-separated term list or the path of a file containing
// one term per line. The file is loaded once up front. An empty spec yields
// nil, meaning the string condition never filters.
func NewStringCriteria(spec string, allWords, wholeWords, ignoreCases bool) (*StringCriteria, error) {
	if spec == "" {
		return nil, nil
	}

	var terms []string
	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		loaded, err := loadTermFile(spec)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %d terms from %s", len(loaded), spec)
		terms = loaded
	} else {
		terms = splitTerms(spec)
	}

	c := &StringCriteria{
		AllWords:    allWords,
		WholeWords:  wholeWords,
		IgnoreCases: ignoreCases,
	}

	// Collapse duplicates, first occurrence wins.
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = normalize.Fold(term, ignoreCases)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		c.Terms = append(c.Terms, term)
	}

	if len(c.Terms) == 0 {
		return nil, errors.New("strings criteria resolved to no terms")
	}

	if wholeWords {
		c.patterns = make([]*regexp.Regexp, len(c.Terms))
		for i, term := range c.Terms {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("term %q: %w", term, err)
			}
			c.patterns[i] = re
		}
	}

	return c, nil
}

// NewIntervalCriteria resolves the minimum/maximum bound specs. Either spec
// may be empty (open bound); both empty yields nil, meaning the interval
// condition never filters. Malformed bounds are configuration errors and
// must abort the run before any row is processed.
func NewIntervalCriteria(minSpec, maxSpec string) (*IntervalCriteria, error) {
	if minSpec == "" && maxSpec == "" {
		return nil, nil
	}

	c := &IntervalCriteria{}

	if minSpec != "" {
		v, isDate, err := normalize.ParseBound(minSpec, false)
		if err != nil {
			return nil, fmt.Errorf("minimum: %w", err)
		}
		if isDate {
			log.Debugf("minimum timestamp set as %d", int64(v))
		}
		c.Min = &v
		c.Dates = c.Dates || isDate
	}

	if maxSpec != "" {
		v, isDate, err := normalize.ParseBound(maxSpec, true)
		if err != nil {
			return nil, fmt.Errorf("maximum: %w", err)
		}
		if isDate {
			log.Debugf("maximum timestamp set as %d", int64(v))
		}
		c.Max = &v
		c.Dates = c.Dates || isDate
	}

	// Min > max is allowed. The result is simply empty, which is a valid
	// outcome for the caller to interpret.
	return c, nil
}

// Match reports whether the fields satisfy the string criteria: every term
// found somewhere among the fields for all-words, at least one term for
// any-words. Each field is considered independently so word boundaries never
// span fields. A nil criteria always matches.
func (c *StringCriteria) Match(fields []string) bool {
	if c == nil || len(c.Terms) == 0 {
		return true
	}

	for i, term := range c.Terms {
		found := false
		for _, field := range fields {
			field = normalize.Fold(field, c.IgnoreCases)
			if c.WholeWords {
				found = c.patterns[i].MatchString(field)
			} else {
				found = strings.Contains(field, term)
			}
			if found {
				break
			}
		}

		if c.AllWords && !found {
			return false
		}
		if !c.AllWords && found {
			return true
		}
	}

	// any-words fell through without a hit; all-words never bailed.
	return c.AllWords
}

// Match reports whether at least one field normalizes successfully and falls
// within the interval. Fields that fail normalization are skipped, never
// fatal. A nil criteria always matches.
func (c *IntervalCriteria) Match(fields []string) bool {
	if c == nil {
		return true
	}

	for _, field := range fields {
		v, err := normalize.Normalize(field, c.Dates)
		if err != nil {
			continue
		}
		if c.Contains(v) {
			return true
		}
	}

	return false
}

// Contains reports whether v lies within the inclusive interval, treating a
// nil bound as open.
func (c *IntervalCriteria) Contains(v float64) bool {
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

// Matches evaluates the full row predicate: the string condition AND the
// interval condition, each trivially true when its criteria are nil. When
// targets is non-nil only those column positions contribute candidate
// values. A target beyond the row's width is skipped when tolerant,
// otherwise it is an error.
func Matches(row []string, targets []int, strs *StringCriteria, interval *IntervalCriteria, tolerant bool) (bool, error) {
	fields := row
	if targets != nil {
		fields = make([]string, 0, len(targets))
		for _, i := range targets {
			if i >= len(row) {
				if tolerant {
					continue
				}
				return false, fmt.Errorf("column index %d out of range for row with %d fields", i, len(row))
			}
			fields = append(fields, row[i])
		}
	}

	return strs.Match(fields) && interval.Match(fields), nil
}

// loadTermFile reads one term per line, skipping blank lines.
func loadTermFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	//nolint:prealloc
	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		term := strings.TrimRight(scanner.Text(), "\r\n")
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// splitTerms splits a literal spec on commas and whitespace. The delimiter
// set can be overridden for term values that contain commas, same idea as
// a custom IFS.
func splitTerms(spec string) []string {
	if delim, ok := os.LookupEnv("CSVCTL_STRINGS_DELIM"); ok && delim != "" {
		parts := strings.Split(spec, delim)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
