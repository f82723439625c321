// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap assembles a Ready vendor session from the vending
// configuration: it loads the device profile, consults the credential
// store, runs the session bootstrap, and persists the account
// credential a fresh login produced.
//
// Both binaries open their session through [Open]; the individual
// pieces ([LoadDevice], [CredentialStore]) are exported for commands
// that need only one of them.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bureau-foundation/vending/lib/clock"
	"github.com/bureau-foundation/vending/lib/config"
	"github.com/bureau-foundation/vending/lib/credential"
	"github.com/bureau-foundation/vending/lib/device"
	"github.com/bureau-foundation/vending/lib/sealed"
	"github.com/bureau-foundation/vending/lib/session"
)

// ErrNoUser is returned when neither Options.User nor the configuration
// names an account.
var ErrNoUser = errors.New("no user: pass --user or set credentials.user")

// Options are the parameters of Open.
type Options struct {
	// Config is the loaded configuration. Required.
	Config *config.Config

	// Login supplies the bootstrap credential when no stored
	// credential applies. May be nil, in which case a missing or
	// rejected stored credential is an error.
	Login session.LoginProvider

	// User overrides Config.Credentials.User.
	User string

	// Relogin ignores any stored credential and runs the full
	// credential exchange.
	Relogin bool

	// HTTPClient overrides the client built from
	// Config.Upstream.RequestTimeout.
	HTTPClient *http.Client

	// Clock stamps checkin and the saved record. Default: clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Open returns a Ready session for the configured user.
//
// A stored credential for the same user and device profile skips the
// login and both credential exchanges. When the vendor rejects a stored
// credential as unauthorized and a login provider is available, Open
// logs in again once. A credential obtained by login is saved before
// Open returns; failing to save it is logged, not returned, since the
// session itself is usable.
func Open(ctx context.Context, options Options) (*session.Session, error) {
	if options.Config == nil {
		return nil, errors.New("bootstrap: config is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := clock.Or(options.Clock)
	cfg := options.Config

	user := options.User
	if user == "" {
		user = cfg.Credentials.User
	}
	if user == "" {
		return nil, ErrNoUser
	}

	profile, err := LoadDevice(cfg)
	if err != nil {
		return nil, err
	}
	store, err := CredentialStore(cfg)
	if err != nil {
		return nil, err
	}

	var stored string
	if !options.Relogin {
		record, found, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		switch {
		case !found:
			logger.Debug("no stored credential", "path", store.Path)
		case record.Matches(user, profile.Name(), profile.Fingerprint()):
			stored = record.AccountCredential
		default:
			logger.Info("stored credential belongs to another account or device",
				"path", store.Path,
				"stored_user", record.User,
				"stored_device", record.DeviceProfile,
				"stored_fingerprint", record.DeviceFingerprint,
			)
		}
	}
	if stored == "" && options.Login == nil {
		return nil, fmt.Errorf("bootstrap: no stored credential for %s and no login provider", user)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Upstream.RequestTimeout.Std()}
	}
	sessionConfig := session.Config{
		BaseURL:           cfg.Upstream.BaseURL,
		HTTPClient:        httpClient,
		Device:            profile,
		User:              user,
		AccountCredential: stored,
		Login:             options.Login,
		LoginTimeout:      cfg.Upstream.LoginTimeout.Std(),
		Locale:            cfg.Device.Locale,
		Clock:             now,
		Logger:            logger,
	}

	opened, err := session.New(ctx, sessionConfig)
	if err != nil && stored != "" && options.Login != nil && unauthorized(err) {
		logger.Warn("stored credential rejected, logging in again", "user", user)
		sessionConfig.AccountCredential = ""
		stored = ""
		opened, err = session.New(ctx, sessionConfig)
	}
	if err != nil {
		return nil, err
	}

	if stored == "" {
		credentials := opened.Credentials()
		record := credential.Record{
			User:              credentials.User,
			AccountCredential: credentials.AccountCredential,
			DeviceProfile:     profile.Name(),
			DeviceFingerprint: profile.Fingerprint(),
			SavedAt:           now.Now().UTC(),
		}
		if err := store.Save(record); err != nil {
			logger.Error("saving account credential failed", "path", store.Path, "error", err)
		} else {
			logger.Info("account credential saved", "path", store.Path, "user", user)
		}
	}
	return opened, nil
}

// unauthorized reports whether err is the vendor refusing the account
// credential.
func unauthorized(err error) bool {
	var status *session.StatusError
	if !errors.As(err, &status) {
		return false
	}
	return status.StatusCode == http.StatusUnauthorized || status.StatusCode == http.StatusForbidden
}

// LoadDevice loads the configured device profile from the profiles file
// or the embedded set, applying the timezone override.
func LoadDevice(cfg *config.Config) (*device.Profile, error) {
	var (
		profile *device.Profile
		err     error
	)
	if cfg.Device.ProfilesFile != "" {
		profile, err = device.Load(cfg.Device.ProfilesFile, cfg.Device.Profile)
	} else {
		profile, err = device.LoadEmbedded(cfg.Device.Profile)
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap: loading device profile: %w", err)
	}
	if cfg.Device.TimeZone != "" {
		profile, err = profile.With(map[string]string{"timezone": cfg.Device.TimeZone})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: applying timezone: %w", err)
		}
	}
	return profile, nil
}

// CredentialStore returns the store described by the credentials
// section. The passphrase, when configured, is read from the named
// environment variable now.
func CredentialStore(cfg *config.Config) (*credential.Store, error) {
	store := &credential.Store{Path: cfg.Credentials.Path, Sealer: credential.Plain{}}
	switch {
	case cfg.Credentials.AgeRecipient != "":
		if err := sealed.ParseRecipient(cfg.Credentials.AgeRecipient); err != nil {
			return nil, fmt.Errorf("bootstrap: credentials.age_recipient: %w", err)
		}
		store.Sealer = credential.AgeSealer{
			Recipient:    cfg.Credentials.AgeRecipient,
			IdentityPath: cfg.Credentials.AgeIdentityFile,
		}
	case cfg.Credentials.PassphraseEnv != "":
		passphrase := os.Getenv(cfg.Credentials.PassphraseEnv)
		if passphrase == "" {
			return nil, fmt.Errorf("bootstrap: %s is empty; it must hold the credential passphrase", cfg.Credentials.PassphraseEnv)
		}
		store.Sealer = credential.PassphraseSealer{Passphrase: passphrase}
	}
	return store, nil
}
