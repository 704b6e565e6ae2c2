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

// Package config loads optional subrc settings files. Settings add knobs
// around the core invocation (logging, dry-run, protected paths); they
// never change the CLI contract itself.
package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📚 Settings is the complete optional configuration.
type Settings struct {
	// Debug enables debug logging, same as the --debug flag.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`

	// DryRun previews substitutions without touching any file.
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`

	// ShowDiff prints a diff preview of the substitution pass.
	ShowDiff bool `json:"show_diff,omitempty" yaml:"show_diff,omitempty" hcl:"show_diff,optional"`

	// Protected lists glob patterns (doublestar syntax) of paths this tool
	// must refuse to rewrite, e.g. "**/.git/**".
	Protected []string `json:"protected,omitempty" yaml:"protected,omitempty" hcl:"protected,optional"`
}

// 🔍 Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	for _, pattern := range s.Protected {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid protected pattern %q", pattern)
		}
	}
	return nil
}

// 🛡️ IsProtected reports whether target matches a protected pattern, and
// which one. Matching is against the cleaned slash path.
func (s *Settings) IsProtected(target string) (bool, string) {
	path := filepath.ToSlash(filepath.Clean(target))
	for _, pattern := range s.Protected {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue // pattern validated at load time
		}
		if matched {
			return true, pattern
		}
	}
	return false, ""
}
