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

package operation

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/subrc/pkg/backup"
	"github.com/walteh/subrc/pkg/config"
	"github.com/walteh/subrc/pkg/engine"
	"github.com/walteh/subrc/pkg/rules"
	"github.com/walteh/subrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for a run
type Options struct {
	// RulesFile is the path to the "old,new" rules file
	RulesFile string
	// TargetFile is the path of the file to rewrite
	TargetFile string
	// Settings are the loaded optional settings
	Settings *config.Settings
	// Backups creates the pre-mutation backup
	Backups *backup.Manager
	// UserLogger renders user-facing feedback
	UserLogger *status.UserLogger
	// DryRun previews the pass without touching any file
	DryRun bool
	// ShowDiff prints a diff preview of the pass
	ShowDiff bool
}

// 🎮 Operation is a single validated run
type Operation struct {
	opts Options
}

// 🏭 New creates a new operation with the given options
func New(opts Options) (*Operation, error) {
	if opts.RulesFile == "" {
		return nil, errors.New("rules file is required")
	}
	if opts.TargetFile == "" {
		return nil, errors.New("target file is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("settings are required")
	}
	if opts.Backups == nil {
		return nil, errors.New("backup manager is required")
	}
	if opts.UserLogger == nil {
		return nil, errors.New("user logger is required")
	}
	return &Operation{opts: opts}, nil
}

// 🏃 Execute runs the pipeline. The target file is mutated only when the
// full substitution pass succeeds; every failure before that leaves it
// byte-for-byte untouched.
func (op *Operation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	// Validate both paths before any side effect
	if err := validateFile(op.opts.RulesFile); err != nil {
		return errors.Errorf("rules file: %w", err)
	}
	if err := validateFile(op.opts.TargetFile); err != nil {
		return errors.Errorf("target file: %w", err)
	}
	if protected, pattern := op.opts.Settings.IsProtected(op.opts.TargetFile); protected {
		return errors.Errorf("target file %s is protected by pattern %q", op.opts.TargetFile, pattern)
	}
	logger.Debug().Str("state", "validated").Msg("pipeline")

	// Dry run: compile and preview, no backup, no writes
	if op.opts.DryRun {
		return op.executeDryRun(ctx)
	}

	// Back up before any mutation; a failed copy aborts the whole run
	backupPath, err := op.opts.Backups.Create(ctx, op.opts.TargetFile)
	if err != nil {
		return errors.Errorf("backing up target: %w", err)
	}
	op.opts.UserLogger.LogBackup(backupPath)
	logger.Debug().Str("state", "backed_up").Msg("pipeline")

	// Compile rules
	ruleList, err := rules.CompileFile(ctx, op.opts.RulesFile)
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}
	logger.Debug().Str("state", "rules_compiled").Int("rules", len(ruleList)).Msg("pipeline")

	// Zero rules is a harmless no-op, not an error. The backup stays.
	if len(ruleList) == 0 {
		op.opts.UserLogger.LogNothingToDo(op.opts.RulesFile)
		return nil
	}

	// Substitute and atomically replace
	result, err := engine.ApplyToFile(ctx, op.opts.TargetFile, ruleList)
	if err != nil {
		op.opts.UserLogger.LogFailure(backupPath, err)
		return errors.Errorf("substituting (backup at %s): %w", backupPath, err)
	}
	logger.Debug().Str("state", "replaced").Msg("pipeline")

	op.opts.UserLogger.LogSummary(result)
	if op.opts.ShowDiff && result.WasModified {
		op.opts.UserLogger.LogDiff(result.Diff())
	}
	op.opts.UserLogger.LogSuccess(op.opts.TargetFile)

	return nil
}

// 🔍 executeDryRun runs the full pass in memory and prints the preview.
func (op *Operation) executeDryRun(ctx context.Context) error {
	op.opts.UserLogger.LogDryRun(op.opts.TargetFile)

	ruleList, err := rules.CompileFile(ctx, op.opts.RulesFile)
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}
	if len(ruleList) == 0 {
		op.opts.UserLogger.LogNothingToDo(op.opts.RulesFile)
		return nil
	}

	content, err := os.ReadFile(op.opts.TargetFile)
	if err != nil {
		return errors.Errorf("reading target file: %w", err)
	}

	result := engine.Apply(ctx, content, ruleList)
	op.opts.UserLogger.LogSummary(result)
	if result.WasModified {
		op.opts.UserLogger.LogDiff(result.Diff())
	}

	return nil
}

// validateFile checks that path exists and is a regular file.
func validateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.Errorf("not found: %s", path)
	}
	if err != nil {
		return errors.Errorf("stating %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("not a regular file: %s", path)
	}
	return nil
}
