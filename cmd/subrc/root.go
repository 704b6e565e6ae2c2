package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/subrc/pkg/backup"
	"github.com/walteh/subrc/pkg/config"
	"github.com/walteh/subrc/pkg/operation"
	"github.com/walteh/subrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	dryRun     bool
	showDiff   bool
)

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subrc RULES_FILE TARGET_FILE",
		Short: "Apply literal find/replace rules to a file, with a timestamped backup",
		Long: `subrc rewrites TARGET_FILE using rules from RULES_FILE, one rule per
line in "old,new" form. Rules are literal text (not regular expressions)
and are applied in order, each over the output of the one before it.
A backup of the target is written to TARGET_FILE.bak.<timestamp> before
anything is modified. Blank lines and lines with an empty old field are
skipped.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			if debug || settings.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			ctx = zerolog.Ctx(ctx).With().Str("command", "subrc").Logger().WithContext(ctx)

			op, err := operation.New(operation.Options{
				RulesFile:  args[0],
				TargetFile: args[1],
				Settings:   settings,
				Backups:    backup.New(),
				UserLogger: status.NewUserLogger(ctx),
				DryRun:     dryRun || settings.DryRun,
				ShowDiff:   showDiff || settings.ShowDiff,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			return op.Execute(ctx)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "settings file path (default: probe .subrc.{yaml,yml,json,hcl})")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview substitutions without modifying anything")
	cmd.Flags().BoolVar(&showDiff, "show-diff", false, "print a diff of the substitution pass")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadSettings loads the optional settings file. An explicit --config path
// must exist; the default probe tolerates absence.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	ctx := cmd.Context()
	if configFile != "" {
		settings, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading settings: %w", err)
		}
		return settings, nil
	}
	return config.LoadDefault(ctx)
}
