package cmd

import (
	"fmt"
	"os"

	"campaign-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "campaign-sync",
	Short: "Campaign Sync Engine",
	Long: `Campaign Sync keeps a local world store and a remote campaign service
aligned. It reconciles both stores for a guided first-time setup and runs an
opportunistic fingerprint-based import for everyday syncs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level so CLI users get readable
		// ISO8601 timestamps instead of production epoch encoding.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
