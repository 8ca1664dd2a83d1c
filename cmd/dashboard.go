// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	skynet "github.com/mosiahvb/skynet-secure"
	"github.com/mosiahvb/skynet-secure/config"
)

const (
	defaultListen     = "localhost:6000"
	defaultHTTPListen = "localhost:8000"
)

func dashboard(_ *cobra.Command, args []string) error {
	var cfgFile config.File
	if err := cfgFile.LoadFile(args[0]); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err := cfgFile.ToServerConfig()
	if err != nil {
		return err
	}

	cfg.Logger = logger

	svr, err := skynet.NewServer(cfg)
	if err != nil {
		return err
	}

	listen := cfgFile.Listen
	if listen == "" {
		listen = defaultListen
	}

	httpListen := cfgFile.HTTPListen
	if httpListen == "" {
		httpListen = defaultHTTPListen
	}

	l, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	web := &http.Server{
		Addr:              httpListen,
		Handler:           svr.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 2)

	go func() {
		errs <- svr.Serve(l)
	}()

	go func() {
		if err := web.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	logger.Info("Dashboard running", "listen", listen, "http", httpListen)

	select {
	case <-ctx.Done():
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	web.Shutdown(shutdownCtx) //nolint:errcheck

	if cerr := svr.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}
