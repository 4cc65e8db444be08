// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestProcessCommandArgs(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(existing, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "binary only",
			args:     []string{"csvctl"},
			expected: []string{"csvctl"},
		},
		{
			name:     "explicit filter untouched",
			args:     []string{"csvctl", "filter", existing},
			expected: []string{"csvctl", "filter", existing},
		},
		{
			name:     "explicit sniff untouched",
			args:     []string{"csvctl", "sniff", existing},
			expected: []string{"csvctl", "sniff", existing},
		},
		{
			name:     "completion untouched",
			args:     []string{"csvctl", "completion", "bash"},
			expected: []string{"csvctl", "completion", "bash"},
		},
		{
			name:     "existing file rewritten to filter",
			args:     []string{"csvctl", existing, "-s", "cat"},
			expected: []string{"csvctl", "filter", existing, "-s", "cat"},
		},
		{
			name:     "stdin dash rewritten to filter",
			args:     []string{"csvctl", "-", "-s", "cat"},
			expected: []string{"csvctl", "filter", "-", "-s", "cat"},
		},
		{
			name:     "missing file left alone",
			args:     []string{"csvctl", "nosuch.csv"},
			expected: []string{"csvctl", "nosuch.csv"},
		},
		{
			name:     "flag first left alone",
			args:     []string{"csvctl", "--version"},
			expected: []string{"csvctl", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processCommandArgs(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("processCommandArgs(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no command appends help",
			args:     []string{"csvctl"},
			expected: []string{"csvctl", "--help"},
		},
		{
			name:     "command present untouched",
			args:     []string{"csvctl", "filter"},
			expected: []string{"csvctl", "filter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleVersionOnlyFirstArg(t *testing.T) {
	// -v after a subcommand means --invert, not --version.
	if handleVersion([]string{"csvctl", "filter", "data.csv", "-v"}) {
		t.Error("handleVersion matched -v past args[1]")
	}
	if !handleVersion([]string{"csvctl", "--version"}) {
		t.Error("handleVersion did not match --version at args[1]")
	}
}
