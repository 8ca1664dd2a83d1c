// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	skynet "github.com/mosiahvb/skynet-secure"
	"github.com/mosiahvb/skynet-secure/config"
	"github.com/mosiahvb/skynet-secure/internal/sim"
)

func drone(_ *cobra.Command, args []string) error {
	var cfgFile config.File
	if err := cfgFile.LoadFile(args[0]); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err := cfgFile.ToDroneConfig()
	if err != nil {
		return err
	}

	sd := sim.New(logger)

	cfg.Source = sd
	cfg.OnCommand = sd.Apply
	cfg.Logger = logger

	d, err := skynet.NewDrone(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Drone starting", "endpoint", cfg.Endpoint)

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
