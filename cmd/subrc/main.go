package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/subrc/pkg/status"
)

func main() {
	setupLogging()
	ctx := zerolog.DefaultContextLogger.WithContext(context.Background())

	userLogger := status.NewUserLogger(ctx)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogRunError(err)
		os.Exit(1)
	}
}

// setupLogging configures zerolog. The level is raised to debug later once
// flags and settings are known.
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
