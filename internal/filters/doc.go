// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters evaluates the row-matching predicate for csvctl.
//
// Two independent conditions are supported and combined with a logical AND:
//
// String criteria select rows containing terms from the --strings
// specification. The spec is either a literal comma/space-separated list or
// a path to a file holding one term per line. Flags shape the match:
//
//   - all-words: every term must be found (default: any term suffices)
//   - whole-words: terms match only at word boundaries (default: substring)
//   - ignore-cases: terms and fields are lower-cased before comparison
//
// Interval criteria select rows with at least one field value inside the
// inclusive [minimum, maximum] range. Bounds are numbers or date strings
// (converted to UTC epoch seconds); either side may be left open. When a
// bound is a date, field values are parsed as dates too. A field that
// cannot be normalized simply does not satisfy the interval; it never
// aborts the run.
//
// Empty criteria never filter: a row predicate with no terms and no bounds
// accepts every row. The caller applies invert semantics on top of the
// predicate result.
//
// Criteria are constructed once per run from the resolved configuration and
// are immutable afterwards, so per-row evaluation does no parsing or
// compilation.
package filters
