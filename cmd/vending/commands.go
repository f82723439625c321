// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vending/lib/bootstrap"
	"github.com/bureau-foundation/vending/lib/cli"
	"github.com/bureau-foundation/vending/lib/sealed"
	"github.com/bureau-foundation/vending/lib/version"
	"github.com/bureau-foundation/vending/lib/wire"
)

func newRootCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:        "vending",
		Description: "Query the vendor storefront as an emulated Android device.",
		Output:      application.errOut,
		Subcommands: []*cli.Command{
			loginCommand(application),
			logoutCommand(application),
			profileCommand(application),
			detailsCommand(application),
			searchCommand(application),
			downloadCommand(application),
			reviewsCommand(application),
			keygenCommand(application),
			versionCommand(application),
		},
	}
}

// commonFlags returns a flag set with the shared flags registered.
func commonFlags(application *app, name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	application.addCommonFlags(flagSet)
	return flagSet
}

func loginCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and store the account credential",
		Description: `Run the full bootstrap with a fresh sign-in, replacing any stored
credential. The bootstrap credential is the oauth_token cookie issued
at the end of the vendor's embedded sign-in flow; it is read from
--token-file or prompted for.`,
		Usage: "vending login [flags]",
		Examples: []cli.Example{
			{Description: "Sign in interactively", Command: "vending login --user someone@example.com"},
		},
		Flags: func() *pflag.FlagSet { return commonFlags(application, "login") },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("login takes no arguments")
			}
			opened, cfg, _, err := application.open(true)
			if err != nil {
				return err
			}
			credentials := opened.Credentials()
			return cli.WriteJSON(application.out, map[string]string{
				"user":            credentials.User,
				"device_id":       opened.DeviceID(),
				"device_profile":  opened.Device().Name(),
				"credential_file": cfg.Credentials.Path,
			})
		},
	}
}

func logoutCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Delete the stored account credential",
		Usage:   "vending logout [flags]",
		Flags:   func() *pflag.FlagSet { return commonFlags(application, "logout") },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("logout takes no arguments")
			}
			cfg, err := application.loadConfig()
			if err != nil {
				return err
			}
			store, err := bootstrap.CredentialStore(cfg)
			if err != nil {
				return err
			}
			return store.Remove()
		},
	}
}

func profileCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Print the signed-in user's profile",
		Usage:   "vending profile [flags]",
		Flags:   func() *pflag.FlagSet { return commonFlags(application, "profile") },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("profile takes no arguments")
			}
			opened, _, _, err := application.open(false)
			if err != nil {
				return err
			}
			rendered, err := wire.JSON(opened.Profile())
			if err != nil {
				return err
			}
			return cli.WriteJSON(application.out, rendered)
		},
	}
}

func detailsCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "details",
		Summary: "Print an application's details",
		Usage:   "vending details [flags] PACKAGE",
		Flags:   func() *pflag.FlagSet { return commonFlags(application, "details") },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Usagef("details takes exactly one package name")
			}
			client, err := application.storefront()
			if err != nil {
				return err
			}
			document, err := client.Details(application.ctx, args[0])
			if err != nil {
				return err
			}
			rendered, err := wire.JSON(document)
			if err != nil {
				return err
			}
			return cli.WriteJSON(application.out, rendered)
		},
	}
}

func searchCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Summary: "Search for applications",
		Usage:   "vending search [flags] QUERY...",
		Examples: []cli.Example{
			{Command: "vending search offline maps"},
		},
		Flags: func() *pflag.FlagSet { return commonFlags(application, "search") },
		Run: func(args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return cli.Usagef("search needs a query")
			}
			client, err := application.storefront()
			if err != nil {
				return err
			}
			documents, err := client.Search(application.ctx, query)
			if err != nil {
				return err
			}
			rendered, err := wire.JSONList(documents)
			if err != nil {
				return err
			}
			return cli.WriteJSON(application.out, rendered)
		},
	}
}

func downloadCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Summary: "Print delivery data for an application, acquiring it if needed",
		Description: `Request delivery of the current version of PACKAGE. When the account
does not own it yet, a free purchase is made first and delivery is
requested again with the resulting download token.`,
		Usage: "vending download [flags] PACKAGE",
		Flags: func() *pflag.FlagSet { return commonFlags(application, "download") },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Usagef("download takes exactly one package name")
			}
			client, err := application.storefront()
			if err != nil {
				return err
			}
			delivery, err := client.Download(application.ctx, args[0])
			if err != nil {
				return err
			}
			rendered, err := wire.JSON(delivery)
			if err != nil {
				return err
			}
			return cli.WriteJSON(application.out, rendered)
		},
	}
}

func reviewsCommand(application *app) *cli.Command {
	var count int
	return &cli.Command{
		Name:    "reviews",
		Summary: "Print an application's reviews",
		Usage:   "vending reviews [flags] PACKAGE",
		Flags: func() *pflag.FlagSet {
			flagSet := commonFlags(application, "reviews")
			flagSet.IntVarP(&count, "count", "n", 0, "number of reviews (0: server default)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Usagef("reviews takes exactly one package name")
			}
			if count < 0 {
				return cli.Usagef("--count must not be negative")
			}
			client, err := application.storefront()
			if err != nil {
				return err
			}
			reviews, err := client.Reviews(application.ctx, args[0], count)
			if err != nil {
				return err
			}
			rendered, err := wire.JSONList(reviews)
			if err != nil {
				return err
			}
			return cli.WriteJSON(application.out, rendered)
		},
	}
}

func keygenCommand(application *app) *cli.Command {
	var output string
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity for sealing the credential file",
		Description: `Write a new age identity to --output (mode 0600) and print its
recipient. Set credentials.age_recipient to the recipient and
credentials.age_identity_file to the identity path.`,
		Usage: "vending keygen --output PATH",
		Flags: func() *pflag.FlagSet {
			flagSet := commonFlags(application, "keygen")
			flagSet.StringVarP(&output, "output", "o", "", "identity file to create (required)")
			return flagSet
		},
		Run: func(args []string) error {
			if output == "" || len(args) > 0 {
				return cli.Usagef("keygen needs --output and no arguments")
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			defer keypair.Close()

			if err := os.MkdirAll(filepath.Dir(output), 0o700); err != nil {
				return fmt.Errorf("creating identity directory: %w", err)
			}
			file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err != nil {
				return fmt.Errorf("creating identity file: %w", err)
			}
			if _, err := fmt.Fprintf(file, "%s\n", keypair.PrivateKey.String()); err != nil {
				file.Close()
				return fmt.Errorf("writing identity file: %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing identity file: %w", err)
			}
			return cli.WriteJSON(application.out, map[string]string{
				"recipient":     keypair.PublicKey,
				"identity_file": output,
			})
		},
	}
}

func versionCommand(application *app) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func([]string) error {
			return cli.WriteJSON(application.out, version.Current())
		},
	}
}
