// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/vending/lib/clock"
	"github.com/bureau-foundation/vending/lib/device"
	"github.com/bureau-foundation/vending/lib/wire"
)

// DefaultBaseURL is the vendor host serving checkin, auth and the
// storefront API.
const DefaultBaseURL = "https://android.clients.google.com"

// DefaultLocale is the checkin locale when Config.Locale is empty.
const DefaultLocale = "en_US"

// Config holds the parameters of New.
type Config struct {
	// BaseURL is the vendor host. Default: DefaultBaseURL.
	BaseURL string

	// HTTPClient sends every request. Default: a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Device is the emulated handset. Required.
	Device *device.Profile

	// User is the account identifier (an email address). Required
	// unless AccountCredential is set.
	User string

	// AccountCredential is a durable credential from a previous run.
	// When set, the login provider is never called and both credential
	// exchanges are skipped.
	AccountCredential string

	// Login supplies the bootstrap credential. Required unless
	// AccountCredential is set.
	Login LoginProvider

	// LoginTimeout bounds the wait for Login. Zero waits until ctx
	// ends.
	LoginTimeout time.Duration

	// Locale is sent at checkin. Default: DefaultLocale.
	Locale string

	// Clock stamps the checkin build descriptor and times LoginTimeout.
	// Default: clock.Real().
	Clock clock.Clock

	// Logger receives one Info record per bootstrap transition.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Session is an authenticated vendor session. See the package
// documentation for its lifecycle.
type Session struct {
	baseURL      string
	httpClient   *http.Client
	device       *device.Profile
	user         string
	login        LoginProvider
	loginTimeout time.Duration
	locale       string
	clock        clock.Clock
	logger       *slog.Logger

	state State
}

// Credentials are the values worth persisting across runs.
type Credentials struct {
	User              string
	AccountCredential string
}

// step is one bootstrap transition. run may only be invoked when the
// session is in phase from and every field in requires is set.
type step struct {
	name     string
	from     Phase
	requires []Field
	run      func(*Session, context.Context) (State, error)
}

var steps = []step{
	{name: "checkin", from: PhaseUninitialized, run: (*Session).checkin},
	{name: "upload-config", from: PhaseCheckedIn, requires: []Field{FieldDeviceID}, run: (*Session).uploadConfig},
	{name: "credentials", from: PhaseConfigUploaded, requires: []Field{FieldDeviceID}, run: (*Session).authenticate},
	{name: "terms", from: PhaseAuthenticated, requires: []Field{FieldDeviceID, FieldAccountCredential}, run: (*Session).acceptTerms},
	{name: "profile", from: PhaseTermsAccepted, requires: []Field{FieldDeviceID, FieldAccountCredential}, run: (*Session).fetchProfile},
}

// New runs the bootstrap sequence and returns a Ready session. On any
// failure it returns nil and the error of the failing step.
func New(ctx context.Context, config Config) (*Session, error) {
	if config.Device == nil {
		return nil, errors.New("session: device profile is required")
	}
	if config.AccountCredential == "" {
		if config.User == "" {
			return nil, errors.New("session: user is required when no account credential is supplied")
		}
		if config.Login == nil {
			return nil, errors.New("session: login provider is required when no account credential is supplied")
		}
	}

	session := &Session{
		baseURL:      strings.TrimRight(config.BaseURL, "/"),
		httpClient:   config.HTTPClient,
		device:       config.Device,
		user:         config.User,
		login:        config.Login,
		loginTimeout: config.LoginTimeout,
		locale:       config.Locale,
		clock:        clock.Or(config.Clock),
		logger:       config.Logger,
		state:        State{AccountCredential: config.AccountCredential},
	}
	if session.baseURL == "" {
		session.baseURL = DefaultBaseURL
	}
	if session.httpClient == nil {
		session.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if session.locale == "" {
		session.locale = DefaultLocale
	}
	if session.logger == nil {
		session.logger = slog.Default()
	}

	for _, current := range steps {
		if session.state.Phase != current.from {
			return nil, fmt.Errorf("session: step %s expects phase %s, session is in %s", current.name, current.from, session.state.Phase)
		}
		if err := session.state.Require(current.requires...); err != nil {
			return nil, fmt.Errorf("session: %s: %w", current.name, err)
		}
		next, err := current.run(session, ctx)
		if err != nil {
			return nil, fmt.Errorf("session: %s: %w", current.name, err)
		}
		session.state = next
		session.logger.Info("bootstrap step complete",
			"step", current.name,
			"phase", next.Phase.String(),
			"device_id", next.DeviceID,
		)
	}
	return session, nil
}

// checkin registers the device and obtains its id. The response is
// not enveloped.
func (session *Session) checkin(ctx context.Context) (State, error) {
	body, err := wire.Encode(session.device.CheckinRequest(session.locale, session.clock.Now()))
	if err != nil {
		return session.state, err
	}
	header := IdentityHeaders(session.state, session.device)
	header.Set("Content-Type", contentTypeProtobuf)

	data, err := session.roundTrip(ctx, http.MethodPost, "/checkin", nil, header, body)
	if err != nil {
		var statusError *StatusError
		if errors.As(err, &statusError) {
			return session.state, fmt.Errorf("%w: %w", ErrCheckinRejected, statusError)
		}
		return session.state, err
	}
	response, err := wire.DecodeCheckin(data)
	if err != nil {
		return session.state, err
	}

	var deviceID string
	if androidID := response.GetAndroidId(); androidID != 0 {
		deviceID = strconv.FormatUint(androidID, 16)
	}
	return session.state.checkedIn(deviceID, response.GetDeviceCheckinConsistencyToken())
}

func (session *Session) uploadConfig(ctx context.Context) (State, error) {
	payload, err := session.call(ctx, Request{
		Endpoint: "/fdfe/uploadDeviceConfig",
		Body:     session.device.UploadConfigRequest(),
	}, FieldDeviceID)
	if err != nil {
		return session.state, err
	}
	return session.state.configUploaded(payload.GetUploadDeviceConfigResponse().GetUploadDeviceConfigToken())
}

// authenticate obtains the account credential unless one was supplied.
func (session *Session) authenticate(ctx context.Context) (State, error) {
	if session.state.Has(FieldAccountCredential) {
		session.logger.Info("using supplied account credential; skipping login")
		return session.state.authenticated("", "")
	}

	bootstrapCredential, err := session.bootstrapToken(ctx)
	if err != nil {
		if errors.Is(err, ErrCredentialExchangeFailed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return session.state, err
		}
		return session.state, fmt.Errorf("%w: login: %w", ErrCredentialExchangeFailed, err)
	}
	if bootstrapCredential == "" {
		return session.state, fmt.Errorf("%w: login returned no bootstrap credential", ErrCredentialExchangeFailed)
	}

	intermediate, err := session.exchangeBootstrap(ctx, bootstrapCredential)
	if err != nil {
		return session.state, err
	}
	accountCredential, err := session.exchangeIntermediate(ctx, intermediate)
	if err != nil {
		return session.state, err
	}
	return session.state.authenticated(bootstrapCredential, accountCredential)
}

// acceptTerms fetches the terms status and accepts pending terms. The
// acceptance is sent on every run in which the server offers terms. A
// non-2xx answer to the acceptance is logged, not fatal; transport
// failures still abort.
func (session *Session) acceptTerms(ctx context.Context) (State, error) {
	payload, err := session.call(ctx, Request{Endpoint: "/fdfe/api/toc"}, readyFields...)
	if err != nil {
		return session.state, err
	}
	// An absent tocResponse reads as no pending terms and no cookie.
	toc := payload.GetTocResponse()

	if toc.GetTosContent() != "" && toc.GetTosToken() != "" {
		form := url.Values{
			"tost":   {toc.GetTosToken()},
			"toscme": {"false"},
		}
		header := StorefrontHeaders(session.state, session.device)
		_, err := session.postForm(ctx, "/fdfe/api/acceptTos", header, form)
		var statusError *StatusError
		switch {
		case errors.As(err, &statusError):
			// Acceptance is fire-and-forget.
			session.logger.Warn("terms of service acceptance rejected",
				"status", statusError.StatusCode,
				"server_message", statusError.Message,
			)
		case err != nil:
			return session.state, fmt.Errorf("accepting terms: %w", err)
		default:
			session.logger.Info("accepted terms of service")
		}
	}
	return session.state.termsAccepted(toc.GetCookie())
}

func (session *Session) fetchProfile(ctx context.Context) (State, error) {
	data, err := session.send(ctx, Request{Endpoint: "/fdfe/api/userProfile"}, readyFields...)
	if err != nil {
		return session.state, err
	}
	payload, err := wire.DecodeAPI(data)
	if err != nil {
		return session.state, fmt.Errorf("/fdfe/api/userProfile: %w", err)
	}
	return session.state.ready(payload.GetUserProfileResponse())
}

// Phase returns the bootstrap phase. A session returned by New is
// always PhaseReady.
func (session *Session) Phase() Phase { return session.state.Phase }

// DeviceID returns the checkin-assigned device id.
func (session *Session) DeviceID() string { return session.state.DeviceID }

// Profile returns the signed-in user's profile.
func (session *Session) Profile() *wire.UserProfileResponse { return session.state.Profile }

// Device returns the emulated device profile.
func (session *Session) Device() *device.Profile { return session.device }

// State returns a copy of the session state. It contains credentials.
func (session *Session) State() State { return session.state }

// Credentials returns the user and account credential for persistence.
func (session *Session) Credentials() Credentials {
	return Credentials{User: session.user, AccountCredential: session.state.AccountCredential}
}
