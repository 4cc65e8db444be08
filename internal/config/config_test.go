// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets CSVCTL_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("CSVCTL_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

// withConfig is a helper that sets up a test config and executes a test function.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	cleanup := setupTestConfig(t, testFile)
	defer cleanup()
	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Contains(t, cfg.Data, "delimiter")
				assert.Equal(t, ";", cfg.Data["delimiter"])
				assert.Equal(t, "latin1", cfg.Data["encoding"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				filter, ok := cfg.Data["filter"].(map[string]interface{})
				assert.True(t, ok, "filter should be a map")
				assert.Equal(t, "|", filter["delimiter"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CSVCTL_CFG_FILE", "/nonexistent/path/csvctl.yaml")
	Config = Type{}
	defer func() { Config = Type{} }()

	_, err := Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "top-level key",
			testFile: "simple.yaml",
			key:      "delimiter",
			want:     ";",
		},
		{
			name:     "nested dotted key",
			testFile: "nested.yaml",
			key:      "filter.delimiter",
			want:     "|",
		},
		{
			name:     "nested color key",
			testFile: "nested.yaml",
			key:      "colors.title",
			want:     "#f6be00",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "nope",
			defaultValue: []string{"fallback"},
			want:         "fallback",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "nope",
			wantErr:  true,
		},
		{
			name:     "value is not a string",
			testFile: "simple.yaml",
			key:      "limit",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.testFile, func(t *testing.T) {
				got, err := GetString(tt.key, tt.defaultValue...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		})
	}
}

func TestGetInt(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		got, err := GetInt("limit")
		assert.NoError(t, err)
		assert.Equal(t, 500, got)

		got, err = GetInt("nope", 42)
		assert.NoError(t, err)
		assert.Equal(t, 42, got)

		_, err = GetInt("delimiter")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "namespace.yaml", func(t *testing.T) {
		got, err := GetStringSlice("filter.defaults")
		assert.NoError(t, err)
		assert.Equal(t, []string{"--ignore-cases --whole-words"}, got)

		got, err = GetStringSlice("nope", []string{"a", "b"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})
}

func TestNamespacedLookup(t *testing.T) {
	withConfig(t, "namespace.yaml", func(t *testing.T) {
		// Namespaced key wins over the top-level key.
		Config.Namespace = "sniff"
		defer func() { Config.Namespace = "" }()

		got, err := GetString("encoding")
		assert.NoError(t, err)
		assert.Equal(t, "ascii", got, "namespaced candidate is tried first")

		Config.Namespace = "filter"
		got, err = GetString("encoding")
		assert.NoError(t, err)
		assert.Equal(t, "cp1252", got)
	})
}
