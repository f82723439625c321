// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Vending-server serves the storefront operations of one vendor session
// as a JSON HTTP API. The session is bootstrapped once at startup,
// signing in interactively (or from --token-file) when no stored
// credential applies.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vending/lib/bootstrap"
	"github.com/bureau-foundation/vending/lib/cli"
	"github.com/bureau-foundation/vending/lib/config"
	"github.com/bureau-foundation/vending/lib/login"
	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/storefront"
	"github.com/bureau-foundation/vending/lib/version"
	"github.com/bureau-foundation/vending/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stderr, nil)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx ends. ready, when non-nil, receives the bound
// address once the server is listening.
func run(ctx context.Context, args []string, in io.Reader, errOut io.Writer, ready chan<- net.Addr) error {
	var (
		configPath  string
		user        string
		listen      string
		tokenFile   string
		verbose     bool
		showVersion bool
	)
	flagSet := pflag.NewFlagSet("vending-server", pflag.ContinueOnError)
	flagSet.SetOutput(errOut)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $VENDING_CONFIG)")
	flagSet.StringVarP(&user, "user", "u", "", "account email (default: credentials.user)")
	flagSet.StringVar(&listen, "listen", "", "TCP address to serve on (default: server.listen_address)")
	flagSet.StringVar(&tokenFile, "token-file", "", "read the bootstrap credential from this file instead of prompting")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	if showVersion {
		fmt.Fprintf(errOut, "vending-server %s\n", version.Info())
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listen != "" {
		cfg.Server.ListenAddress = listen
	}

	logger, err := cli.NewLogger(cfg.Log, verbose, errOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Info("starting vending-server", "version", version.Info())

	var provider session.LoginProvider = login.Prompt{In: in, Out: errOut}
	if tokenFile != "" {
		provider = login.File(tokenFile)
	}
	opened, err := bootstrap.Open(ctx, bootstrap.Options{
		Config: cfg,
		Login:  provider,
		User:   user,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	logger.Info("session ready", "device_id", opened.DeviceID(), "device_profile", opened.Device().Name())

	apiServer, err := server.New(server.Config{
		Storefront:    storefront.New(opened, logger),
		ListenAddress: cfg.Server.ListenAddress,
		ReadTimeout:   cfg.Server.ReadTimeout.Std(),
		WriteTimeout:  cfg.Server.WriteTimeout.Std(),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	if ready != nil {
		ready <- apiServer.Addr()
	}

	<-ctx.Done()
	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
