// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, s *Settings)
	}{
		{
			name:     "yaml_settings",
			filename: "settings.yaml",
			content: `
debug: true
dry_run: true
show_diff: true
protected:
  - "**/.git/**"
  - "*.lock"
`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.Debug, "debug should be set")
				assert.True(t, s.DryRun, "dry_run should be set")
				assert.True(t, s.ShowDiff, "show_diff should be set")
				assert.Len(t, s.Protected, 2, "should have 2 protected patterns")
			},
		},
		{
			name:     "json_settings",
			filename: "settings.json",
			content:  `{"debug": true, "protected": ["*.lock"]}`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.Debug)
				assert.Equal(t, []string{"*.lock"}, s.Protected)
			},
		},
		{
			name:     "hcl_settings",
			filename: "settings.hcl",
			content: `
debug     = true
dry_run   = false
protected = ["**/.git/**"]
`,
			check: func(t *testing.T, s *Settings) {
				assert.True(t, s.Debug)
				assert.False(t, s.DryRun)
				assert.Equal(t, []string{"**/.git/**"}, s.Protected)
			},
		},
		{
			name:        "yaml_unknown_field_rejected",
			filename:    "settings.yaml",
			content:     `unexpected: true`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field_rejected",
			filename:    "settings.json",
			content:     `{"unexpected": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unsupported_extension",
			filename:    "settings.toml",
			content:     `debug = true`,
			wantErr:     true,
			errContains: "unsupported file extension",
		},
		{
			name:        "invalid_protected_pattern",
			filename:    "settings.yaml",
			content:     "protected:\n  - \"[\"\n",
			wantErr:     true,
			errContains: "invalid protected pattern",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, s)
			tt.check(t, s)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading settings file")
}

func TestIsProtected(t *testing.T) {
	tests := []struct {
		name        string
		protected   []string
		target      string
		wantMatch   bool
		wantPattern string
	}{
		{
			name:        "git_internals",
			protected:   []string{"**/.git/**"},
			target:      "repo/.git/config",
			wantMatch:   true,
			wantPattern: "**/.git/**",
		},
		{
			name:      "no_patterns",
			protected: nil,
			target:    "anything.txt",
			wantMatch: false,
		},
		{
			name:        "lock_files",
			protected:   []string{"*.lock"},
			target:      "./deps.lock",
			wantMatch:   true,
			wantPattern: "*.lock",
		},
		{
			name:      "non_matching",
			protected: []string{"*.lock"},
			target:    "notes.txt",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{Protected: tt.protected}
			matched, pattern := s.IsProtected(tt.target)
			assert.Equal(t, tt.wantMatch, matched, "match should agree")
			assert.Equal(t, tt.wantPattern, pattern, "pattern should agree")
		})
	}
}
