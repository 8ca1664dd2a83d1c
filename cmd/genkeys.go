// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	skynet "github.com/mosiahvb/skynet-secure"
	"github.com/mosiahvb/skynet-secure/config"
)

func genKeys(_ *cobra.Command, args []string) error {
	var cfgFile config.File
	if err := cfgFile.LoadFile(args[0]); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfgFile.Check(); err != nil {
		return err
	}

	for _, key := range []struct {
		path   string
		length int
	}{
		{cfgFile.EncryptionKeyFile, skynet.KeySize},
		{cfgFile.AuthSecretFile, skynet.AuthSecretSize},
	} {
		if _, err := os.Stat(key.path); err == nil {
			return fmt.Errorf("key file %q exists, refusing to overwrite it", key.path)
		}

		if _, err := skynet.LoadOrGenerateKey(key.path, key.length); err != nil {
			return err
		}

		logger.Info("Generated key", "path", key.path)
	}

	return nil
}
