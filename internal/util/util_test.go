// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple csv",
			input: "data.csv",
			want:  "data_FILTERED.csv",
		},
		{
			name:  "path stripped",
			input: "/var/exports/data.csv",
			want:  "data_FILTERED.csv",
		},
		{
			name:  "no extension",
			input: "data",
			want:  "data_FILTERED",
		},
		{
			name:  "multiple dots",
			input: "data.2020.tsv",
			want:  "data.2020_FILTERED.tsv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultOutputName(tt.input))
		})
	}
}

func TestIsExistingFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "present.csv")
	assert.NoError(t, os.WriteFile(file, []byte("a,b\n"), 0o600))

	assert.True(t, IsExistingFile(file))
	assert.False(t, IsExistingFile(filepath.Join(dir, "absent.csv")))
	assert.False(t, IsExistingFile(dir), "directories are not files")
}
