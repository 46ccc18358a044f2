package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/diskprovider/internal/logger"
	"github.com/marmos91/diskprovider/pkg/config"
	"github.com/marmos91/diskprovider/pkg/diskprovider"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "diskfsctl",
	Short: "Exercise the local disk filesystem provider from the command line",
	Long: `diskfsctl drives the diskprovider package directly: stat, readdir,
read, write, and recursive-watch a real directory tree without going
through a higher-level virtual file service.`,
}

// Execute runs the root command, whose subcommands are registered in init.
// Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/diskprovider/config.yaml)")

	rootCmd.AddCommand(newStatCommand())
	rootCmd.AddCommand(newReaddirCommand())
	rootCmd.AddCommand(newReadCommand())
	rootCmd.AddCommand(newWriteCommand())
	rootCmd.AddCommand(newWatchCommand())
}

// newDiskProvider loads configuration and constructs a Provider wired to
// its settings, shared by every subcommand.
func newDiskProvider() (*diskprovider.Provider, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.Logging.Level))

	return diskprovider.NewProvider(diskprovider.Options{
		BufferSize:      cfg.BufferSize,
		UsePolling:      cfg.Watcher.UsePolling,
		PollingInterval: cfg.Watcher.PollingInterval,
		LegacyWatcher:   cfg.LegacyWatcher,
		ProductChannel:  cfg.Server.Channel,
		Logger:          log,
	}), nil
}
