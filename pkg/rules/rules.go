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

// Package rules compiles "old,new" rule files into ordered literal
// substitution rules.
package rules

import (
	"bufio"
	"context"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single literal substitution: every occurrence of Pattern is
// replaced by Replacement. Rules are applied in file order, each one over
// the output of the previous.
type Rule struct {
	Pattern     string // literal text to search for (trimmed, non-empty)
	Replacement string // literal text to insert (trimmed, may be empty)
	Line        int    // 1-based line number in the rules file

	re       *regexp.Regexp
	template string
}

// 🏃 Apply replaces every occurrence of the rule's pattern in s, returning
// the new text and the number of occurrences replaced.
func (r *Rule) Apply(s string) (string, int) {
	matches := r.re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s, 0
	}
	return r.re.ReplaceAllString(s, r.template), len(matches)
}

// 📊 LineOutcome says what a single rules-file line produced.
type LineOutcome int

const (
	OutcomeEmit         LineOutcome = iota // a rule was produced
	OutcomeBlank                           // fully empty line, skipped
	OutcomeEmptyPattern                    // old field empty after trimming, skipped
)

// String returns a string representation of LineOutcome
func (o LineOutcome) String() string {
	switch o {
	case OutcomeEmit:
		return "emit"
	case OutcomeBlank:
		return "blank"
	case OutcomeEmptyPattern:
		return "empty_pattern"
	default:
		return "unknown"
	}
}

// 📄 LineResult is the tagged result of parsing one rules-file line.
type LineResult struct {
	Outcome LineOutcome
	Rule    *Rule // nil unless Outcome == OutcomeEmit
}

// 📝 ParseLine parses a single rules-file line into a tagged result. The
// line is split at the FIRST comma only; there is no quoting convention, so
// an old value containing a comma cannot be represented. Both fields are
// trimmed of surrounding whitespace. Blank lines and lines whose trimmed
// old field is empty are skipped without error.
func ParseLine(line string, num int) (LineResult, error) {
	if line == "" {
		return LineResult{Outcome: OutcomeBlank}, nil
	}

	oldText, newText := line, ""
	if idx := strings.IndexByte(line, ','); idx >= 0 {
		oldText, newText = line[:idx], line[idx+1:]
	}
	oldText = strings.TrimSpace(oldText)
	newText = strings.TrimSpace(newText)

	if oldText == "" {
		return LineResult{Outcome: OutcomeEmptyPattern}, nil
	}

	re, err := regexp.Compile(EscapePattern(oldText))
	if err != nil {
		return LineResult{}, errors.Errorf("line %d: compiling pattern %q: %w", num, oldText, err)
	}

	return LineResult{
		Outcome: OutcomeEmit,
		Rule: &Rule{
			Pattern:     oldText,
			Replacement: newText,
			Line:        num,
			re:          re,
			template:    EscapeReplacement(newText),
		},
	}, nil
}

// 🎯 Compile reads rule lines from r and returns the ordered rule list.
// Skipped lines are logged at debug level and produce no rule. A nil or
// empty result is a valid outcome (nothing to do), not an error.
func Compile(ctx context.Context, r io.Reader) ([]Rule, error) {
	logger := zerolog.Ctx(ctx)

	var out []Rule
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		res, err := ParseLine(scanner.Text(), num)
		if err != nil {
			return nil, err
		}
		switch res.Outcome {
		case OutcomeEmit:
			out = append(out, *res.Rule)
		default:
			logger.Debug().
				Int("line", num).
				Str("outcome", res.Outcome.String()).
				Msg("skipping rule line")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading rules: %w", err)
	}

	logger.Debug().Int("rules", len(out)).Int("lines", num).Msg("compiled rules")
	return out, nil
}

// 📂 CompileFile compiles the rules file at path.
func CompileFile(ctx context.Context, path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening rules file: %w", err)
	}
	defer f.Close()

	return Compile(ctx, f)
}
