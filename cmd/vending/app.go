// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vending/lib/bootstrap"
	"github.com/bureau-foundation/vending/lib/cli"
	"github.com/bureau-foundation/vending/lib/config"
	"github.com/bureau-foundation/vending/lib/login"
	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/storefront"
)

// addCommonFlags registers the flags every subcommand accepts.
func (application *app) addCommonFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&application.configPath, "config", "", "path to config file (default: $VENDING_CONFIG, else built-in defaults)")
	flagSet.StringVarP(&application.user, "user", "u", "", "account email (default: credentials.user)")
	flagSet.StringVar(&application.tokenFile, "token-file", "", "read the bootstrap credential from this file instead of prompting")
	flagSet.BoolVarP(&application.verbose, "verbose", "v", false, "log at debug level")
}

// loadConfig loads --config, then $VENDING_CONFIG, then the defaults.
func (application *app) loadConfig() (*config.Config, error) {
	switch {
	case application.configPath != "":
		return config.LoadFile(application.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		return config.Load()
	default:
		cfg := config.Default()
		if err := cfg.Resolve(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
}

func (application *app) logger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := cli.NewLogger(cfg.Log, application.verbose, application.errOut)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// loginProvider returns the source of the bootstrap credential.
func (application *app) loginProvider() session.LoginProvider {
	if application.tokenFile != "" {
		return login.File(application.tokenFile)
	}
	return login.Prompt{In: application.in, Out: application.errOut}
}

// open returns a Ready session. relogin forces a fresh credential
// exchange.
func (application *app) open(relogin bool) (*session.Session, *config.Config, *slog.Logger, error) {
	cfg, err := application.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := application.logger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	opened, err := bootstrap.Open(application.ctx, bootstrap.Options{
		Config:     cfg,
		Login:      application.loginProvider(),
		User:       application.user,
		Relogin:    relogin,
		HTTPClient: application.httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening session: %w", err)
	}
	return opened, cfg, logger, nil
}

// storefront opens a session and wraps it in a storefront client.
func (application *app) storefront() (*storefront.Client, error) {
	opened, _, logger, err := application.open(false)
	if err != nil {
		return nil, err
	}
	return storefront.New(opened, logger), nil
}
