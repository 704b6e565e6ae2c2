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

// Package engine applies compiled substitution rules to file contents.
package engine

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/subrc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 📊 RuleCount records how many occurrences a single rule replaced.
type RuleCount struct {
	Rule  rules.Rule
	Count int
}

// 📦 Result contains the outcome of a full substitution pass.
type Result struct {
	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the total number of replacements made
	ReplacementCount int

	// RuleCounts holds per-rule replacement counts, in rule order
	RuleCounts []RuleCount
}

// Diff renders a human-readable diff of the pass, for dry-run previews.
func (r *Result) Diff() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(r.OriginalContent), string(r.ModifiedContent), false)
	return dmp.DiffPrettyText(diffs)
}

// 🏃 Apply runs every rule, in order, over content. Rule i operates on the
// output of rule i-1, so a later rule may match text introduced by an
// earlier replacement. That is the intended semantics; this must never be
// collapsed into a single simultaneous multi-pattern pass.
func Apply(ctx context.Context, content []byte, rs []rules.Rule) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
		RuleCounts:      make([]RuleCount, 0, len(rs)),
	}

	current := string(content)
	for i := range rs {
		next, count := rs[i].Apply(current)
		result.RuleCounts = append(result.RuleCounts, RuleCount{Rule: rs[i], Count: count})
		if count > 0 {
			result.WasModified = true
			result.ReplacementCount += count
			logger.Debug().
				Int("line", rs[i].Line).
				Str("pattern", rs[i].Pattern).
				Int("count", count).
				Msg("rule applied")
		}
		current = next
	}

	result.ModifiedContent = []byte(current)
	return result
}

// 📄 ApplyToFile applies the rules to the file at path. The result is
// written to a staging sibling first and renamed over the original only
// when the whole pass succeeds, so the target is never left partially
// modified. The staging file is removed on every exit path.
func ApplyToFile(ctx context.Context, path string, rs []rules.Rule) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading target file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stating target file: %w", err)
	}

	result := Apply(ctx, content, rs)

	tempPath := path + ".tmp"
	defer os.Remove(tempPath) // no-op after a successful rename

	if err := os.WriteFile(tempPath, result.ModifiedContent, info.Mode().Perm()); err != nil {
		return nil, errors.Errorf("writing staging file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return nil, errors.Errorf("replacing target file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("replacements", result.ReplacementCount).
		Msg("target replaced")

	return result, nil
}
