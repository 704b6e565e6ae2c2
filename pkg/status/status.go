// Package status renders user-facing feedback for a subrc run. Diagnostic
// logging goes through zerolog; everything here is what a human at the
// terminal is meant to read.
package status

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/subrc/pkg/engine"
)

// Display configuration
const (
	patternWidth = 30 // base width for the pattern column
)

// 📢 UserLogger provides user-friendly feedback about the run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 💾 LogBackup reports the created backup path
func (u *UserLogger) LogBackup(path string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "💾"}).Printf("Backup created: %s\n", path)
	u.log.Info().Str("backup", path).Msg("backup created")
}

// 📝 formatRuleLine formats one summary line: pattern, replacement, count
func formatRuleLine(rc engine.RuleCount) string {
	var symbol string
	var symbolColor color.Attribute
	switch {
	case rc.Count > 0:
		symbol = "⟳"
		symbolColor = color.FgBlue
	default:
		symbol = "-"
		symbolColor = color.FgYellow
	}

	replacement := rc.Rule.Replacement
	if replacement == "" {
		replacement = color.New(color.Faint).Sprint("(deleted)")
	}

	return fmt.Sprintf("    %s %s → %s %s",
		color.New(symbolColor).Sprint(symbol),
		fmt.Sprintf("%-*s", patternWidth, rc.Rule.Pattern),
		replacement,
		color.New(color.Faint).Sprintf("(%d)", rc.Count))
}

// 📝 LogRule prints one summary line per rule
func (u *UserLogger) LogRule(rc engine.RuleCount) {
	fmt.Println(formatRuleLine(rc))

	u.log.Debug().
		Str("pattern", rc.Rule.Pattern).
		Str("replacement", rc.Rule.Replacement).
		Int("count", rc.Count).
		Msg("rule summary")
}

// 📊 LogSummary prints per-rule lines followed by the total
func (u *UserLogger) LogSummary(result *engine.Result) {
	for _, rc := range result.RuleCounts {
		u.LogRule(rc)
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📊"}).
		Printf("%d replacement(s) across %d rule(s)\n", result.ReplacementCount, len(result.RuleCounts))
}

// ✅ LogSuccess reports a completed run
func (u *UserLogger) LogSuccess(target string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Printf("Updated %s\n", target)
	u.log.Info().Str("target", target).Msg("target updated")
}

// ⏭️ LogNothingToDo reports a no-rules run
func (u *UserLogger) LogNothingToDo(rulesFile string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⏭️"}).Printf("No rules found in %s, nothing to do\n", rulesFile)
	u.log.Info().Str("rules_file", rulesFile).Msg("no rules found")
}

// 🔍 LogDryRun reports a dry-run preview header
func (u *UserLogger) LogDryRun(target string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"}).Printf("Dry run, %s will not be modified\n", target)
	u.log.Info().Str("target", target).Msg("dry run")
}

// 📄 LogDiff prints a diff preview of the substitution pass
func (u *UserLogger) LogDiff(diff string) {
	fmt.Println(diff)
}

// ❌ LogFailure reports a failed substitution pass, naming the backup for
// manual recovery
func (u *UserLogger) LogFailure(backupPath string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(os.Stderr).
		Printf("Substitution failed, target untouched; backup at %s\n", backupPath)
	pterm.Error.WithWriter(os.Stderr).Println(err)
	u.log.Error().Err(err).Str("backup", backupPath).Msg("substitution failed")
}

// ❌ LogRunError reports a failed run on the error stream
func (u *UserLogger) LogRunError(err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(os.Stderr).Println(err)
	u.log.Error().Err(err).Msg("run failed")
}
