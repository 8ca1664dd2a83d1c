// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mosiahvb/skynet-secure/config"
)

func validate(_ *cobra.Command, args []string) error {
	var cfgFile config.File
	if err := cfgFile.LoadFile(args[0]); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfgFile.Check(); err != nil {
		return err
	}

	logger.Info("Configuration is valid", "file", args[0])

	return nil
}
