// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	authEndpoint    = "/auth"
	storefrontScope = "oauth2:https://www.googleapis.com/auth/googleplay"
)

// LoginProvider obtains the one-time bootstrap credential for user,
// typically by walking them through the vendor's embedded sign-in page
// and capturing the oauth_token cookie it sets. It blocks until the
// credential is available or ctx is done.
type LoginProvider interface {
	BootstrapToken(ctx context.Context, user string) (string, error)
}

// LoginFunc adapts a function to LoginProvider.
type LoginFunc func(ctx context.Context, user string) (string, error)

func (function LoginFunc) BootstrapToken(ctx context.Context, user string) (string, error) {
	return function(ctx, user)
}

// bootstrapToken asks the login provider for a credential, bounded by
// LoginTimeout when one is configured.
func (session *Session) bootstrapToken(ctx context.Context) (string, error) {
	if session.loginTimeout <= 0 {
		return session.login.BootstrapToken(ctx, session.user)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		token string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		token, err := session.login.BootstrapToken(ctx, session.user)
		done <- result{token, err}
	}()

	select {
	case outcome := <-done:
		return outcome.token, outcome.err
	case <-session.clock.After(session.loginTimeout):
		return "", fmt.Errorf("%w: %w after %s", ErrCredentialExchangeFailed, ErrLoginTimeout, session.loginTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// exchangeBootstrap trades the bootstrap credential for the
// intermediate (aas) token, using identity headers.
func (session *Session) exchangeBootstrap(ctx context.Context, bootstrapCredential string) (string, error) {
	form := url.Values{
		"lang":                         {"en"},
		"google_play_services_version": {session.device.Get("gsf.version")},
		"sdk_version":                  {session.device.Get("build.version.sdk_int")},
		"device_country":               {"us"},
		"Email":                        {session.user},
		"service":                      {"ac2dm"},
		"get_accountid":                {"1"},
		"ACCESS_TOKEN":                 {"1"},
		"callerPkg":                    {servicesPackage},
		"add_account":                  {"1"},
		"Token":                        {bootstrapCredential},
		"callerSig":                    {callerSignature},
	}
	return session.authExchange(ctx, IdentityHeaders(session.state, session.device), form, "Token")
}

// exchangeIntermediate trades the intermediate token for the account
// credential scoped to the storefront. It needs the device id.
func (session *Session) exchangeIntermediate(ctx context.Context, intermediate string) (string, error) {
	if err := session.state.Require(FieldDeviceID); err != nil {
		return "", err
	}
	form := url.Values{
		"androidId":                    {session.state.DeviceID},
		"app":                          {storePackage},
		"lang":                         {"en"},
		"google_play_services_version": {session.device.Get("gsf.version")},
		"sdk_version":                  {session.device.Get("build.version.sdk_int")},
		"device_country":               {"us"},
		"Email":                        {session.user},
		"callerPkg":                    {servicesPackage},
		"service":                      {storefrontScope},
		"Token":                        {intermediate},
		"callerSig":                    {callerSignature},
		"client_sig":                   {callerSignature},
		"oauth2_foreground":            {"1"},
		"token_request_options":        {"CAA4AVAB"},
		"check_email":                  {"1"},
		"system_partition":             {"1"},
	}
	header := StorefrontHeaders(session.state, session.device)
	header.Set("app", servicesPackage)
	return session.authExchange(ctx, header, form, "Auth")
}

// authExchange posts form to the auth endpoint and returns the value
// of field from the key=value response.
func (session *Session) authExchange(ctx context.Context, header http.Header, form url.Values, field string) (string, error) {
	data, err := session.postForm(ctx, authEndpoint, header, form)
	if err != nil {
		var statusError *StatusError
		if errors.As(err, &statusError) {
			return "", fmt.Errorf("%w: %w", ErrCredentialExchangeFailed, statusError)
		}
		return "", err
	}

	values := parseKeyValues(data)
	if reason := values["Error"]; reason != "" {
		return "", fmt.Errorf("%w: server error %q", ErrCredentialExchangeFailed, reason)
	}
	value := values[field]
	if value == "" {
		return "", fmt.Errorf("%w: response has no %s", ErrCredentialExchangeFailed, field)
	}
	return value, nil
}
