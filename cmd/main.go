// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	logger  *slog.Logger
	verbose bool
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:              "skynet",
		Short:            "Mutually authenticated, encrypted drone telemetry",
		PersistentPreRun: setupLogging,
		SilenceUsage:     true,
	}

	genKeysCmd := &cobra.Command{
		Use:   "gen-keys config-file",
		Short: "Generate the encryption key and authentication secret",
		Long:  "Both secrets are written to the paths named in the configuration file. Existing key files are never overwritten: losing either secret invalidates all previously issued tokens and ciphertexts.",
		Args:  cobra.ExactArgs(1),
		RunE:  genKeys,
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard config-file",
		Short: "Run the dashboard: accept drone connections and serve the web API",
		Args:  cobra.ExactArgs(1),
		RunE:  dashboard,
	}

	droneCmd := &cobra.Command{
		Use:   "drone config-file",
		Short: "Run the simulated drone against a dashboard",
		Args:  cobra.ExactArgs(1),
		RunE:  drone,
	}

	validateCmd := &cobra.Command{
		Use:   "validate config-file",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE:  validate,
	}

	f := rootCmd.PersistentFlags()
	f.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(genKeysCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(droneCmd)
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Error", slog.Any("error", err))
		os.Exit(1)
	}
}

func setupLogging(_ *cobra.Command, _ []string) {
	opts := &slog.HandlerOptions{}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}
