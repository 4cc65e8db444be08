// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders filtered result sets in the non-CSV formats
// (table, json, yaml). The default csv format streams straight from the
// pipeline to the csvio writer and never passes through here.
package output
