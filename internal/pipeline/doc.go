// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pipeline orchestrates row filtering: it reads rows from a
// single-pass source, resolves the column selection against the header,
// evaluates the match criteria per row, applies invert semantics, and
// yields matching rows projected onto the selected columns in input order.
package pipeline
