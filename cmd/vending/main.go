// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Vending is the command-line client for the vendor storefront. It
// bootstraps an emulated-device session (reusing the stored account
// credential when one exists) and prints storefront results as JSON.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, application *app) error {
	application.ctx = ctx
	return newRootCommand(application).Execute(args)
}

// app carries the process streams and the flags shared by every
// subcommand.
type app struct {
	ctx    context.Context
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// httpClient overrides the upstream client. Nil uses one built from
	// the configuration.
	httpClient *http.Client

	configPath string
	user       string
	tokenFile  string
	verbose    bool
}
