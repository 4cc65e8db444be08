// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// outputSuffix is appended to the input base name when no explicit output
// file is given.
const outputSuffix = "_FILTERED"

// DefaultOutputName derives the output file name from the input file name:
// the input's base name with a suffix spliced in before the extension, in
// the current directory. "data.csv" becomes "data_FILTERED.csv".
func DefaultOutputName(inputName string) string {
	base := filepath.Base(inputName)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return name + outputSuffix + ext
}

// IsExistingFile checks if the given path exists and is a regular file.
func IsExistingFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
