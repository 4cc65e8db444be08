// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// canonicalLayout is the reference date format advertised in the CLI help.
// The remaining layouts are accepted supersets seen in real-world exports.
var dateLayouts = []string{
	canonicalLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

const canonicalLayout = "2006-01-02 15:04:05"

// ConversionError reports a field value that could not be normalized to a
// number or timestamp. It is recoverable: the matcher treats the field as a
// non-match and moves on.
type ConversionError struct {
	Field  string
	AsDate bool
}

func (e *ConversionError) Error() string {
	kind := "number"
	if e.AsDate {
		kind = "date"
	}
	return fmt.Sprintf("cannot convert %q to %s", e.Field, kind)
}

// Normalize converts a field string to a comparable float64. When asDate is
// set the field is parsed against the recognized date layouts and converted
// to UTC epoch seconds; otherwise it is parsed as a floating-point number.
func Normalize(field string, asDate bool) (float64, error) {
	field = strings.TrimSpace(field)

	if asDate {
		if ts, ok := parseDate(field); ok {
			return ts, nil
		}
		// A numeric field is already a timestamp; accept it so date and
		// epoch columns can be compared against the same bounds.
		if n, err := strconv.ParseFloat(field, 64); err == nil {
			return n, nil
		}
		return 0, &ConversionError{Field: field, AsDate: true}
	}

	n, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, &ConversionError{Field: field}
	}
	return n, nil
}

// Fold lower-cases s when ignoreCases is set. Matching is only symmetric if
// the same folding is applied to both criteria terms and field values, so
// every comparison site funnels through here.
func Fold(s string, ignoreCases bool) string {
	if ignoreCases {
		return strings.ToLower(s)
	}
	return s
}

// ParseBound resolves a configuration-supplied minimum or maximum bound. A
// bound is either a number or a date string. Date-only bounds get a default
// time component: start of day for a minimum, end of day for a maximum, so
// that "2020-01-01" behaves intuitively on both sides of an interval.
// Returns the normalized value and whether the bound was a date.
func ParseBound(value string, isMax bool) (float64, bool, error) {
	value = strings.TrimSpace(value)

	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n, false, nil
	}

	candidate := value
	if len(candidate) == len("2006-01-02") {
		if isMax {
			candidate += " 23:59:59"
		} else {
			candidate += " 00:00:00"
		}
	}

	if ts, ok := parseDate(candidate); ok {
		return ts, true, nil
	}

	return 0, false, fmt.Errorf("invalid bound %q: not a number or %s date", value, canonicalLayout)
}

// parseDate tries each recognized layout in order, interpreting bare
// timestamps as UTC.
func parseDate(s string) (float64, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			sec := float64(t.Unix())
			sec += float64(t.Nanosecond()) / float64(time.Second)
			return sec, true
		}
	}
	return 0, false
}
