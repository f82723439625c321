// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/vending/lib/wire"
)

// Phase is the bootstrap progress of a session. Phases are totally
// ordered and a session only ever moves to the next one.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseCheckedIn
	PhaseConfigUploaded
	PhaseAuthenticated
	PhaseTermsAccepted
	PhaseReady
)

func (phase Phase) String() string {
	switch phase {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseCheckedIn:
		return "checked-in"
	case PhaseConfigUploaded:
		return "config-uploaded"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseTermsAccepted:
		return "terms-accepted"
	case PhaseReady:
		return "ready"
	}
	return fmt.Sprintf("phase(%d)", int(phase))
}

// Field names one of the tokens a session accumulates. Steps and
// requests declare the fields they need; [State.Require] checks them.
type Field int

const (
	FieldDeviceID Field = iota
	FieldCheckinConsistencyToken
	FieldDeviceConfigToken
	FieldBootstrapCredential
	FieldAccountCredential
	FieldSessionCookie
	FieldProfile
)

func (field Field) String() string {
	switch field {
	case FieldDeviceID:
		return "device id"
	case FieldCheckinConsistencyToken:
		return "checkin consistency token"
	case FieldDeviceConfigToken:
		return "device config token"
	case FieldBootstrapCredential:
		return "bootstrap credential"
	case FieldAccountCredential:
		return "account credential"
	case FieldSessionCookie:
		return "session cookie"
	case FieldProfile:
		return "profile"
	}
	return fmt.Sprintf("field(%d)", int(field))
}

// State is the value object a bootstrap run builds up. The zero value
// is an uninitialized session with nothing set.
//
// Fields are set by the transition that produces them and never
// cleared. AccountCredential may also be present from the start when a
// durable credential was supplied.
type State struct {
	Phase Phase

	// DeviceID is the checkin-assigned android id, lowercase hex
	// without a 0x prefix.
	DeviceID string

	CheckinConsistencyToken string
	DeviceConfigToken       string

	// BootstrapCredential is the one-time token from the interactive
	// login. Empty when a durable account credential was supplied.
	BootstrapCredential string

	// AccountCredential is the bearer token for storefront requests
	// and the only value worth persisting.
	AccountCredential string

	// SessionCookie is set when the terms response carried a cookie.
	SessionCookie string

	Profile *wire.UserProfileResponse
}

// Has reports whether field is set.
func (state State) Has(field Field) bool {
	switch field {
	case FieldDeviceID:
		return state.DeviceID != ""
	case FieldCheckinConsistencyToken:
		return state.CheckinConsistencyToken != ""
	case FieldDeviceConfigToken:
		return state.DeviceConfigToken != ""
	case FieldBootstrapCredential:
		return state.BootstrapCredential != ""
	case FieldAccountCredential:
		return state.AccountCredential != ""
	case FieldSessionCookie:
		return state.SessionCookie != ""
	case FieldProfile:
		return state.Profile != nil
	}
	return false
}

// Require returns an ErrNotReady error listing every field that is not
// set, or nil when all are.
func (state State) Require(fields ...Field) error {
	var missing []string
	for _, field := range fields {
		if !state.Has(field) {
			missing = append(missing, field.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s unset (phase %s)", ErrNotReady, strings.Join(missing, ", "), state.Phase)
	}
	return nil
}

// advance returns state moved from phase from to the following phase.
func (state State) advance(from Phase) (State, error) {
	if state.Phase != from {
		return state, fmt.Errorf("cannot leave phase %s: session is in phase %s", from, state.Phase)
	}
	state.Phase = from + 1
	return state, nil
}

func (state State) checkedIn(deviceID, consistencyToken string) (State, error) {
	if deviceID == "" {
		return state, fmt.Errorf("%w: no device id assigned", ErrCheckinRejected)
	}
	next, err := state.advance(PhaseUninitialized)
	if err != nil {
		return state, err
	}
	next.DeviceID = deviceID
	next.CheckinConsistencyToken = consistencyToken
	return next, nil
}

func (state State) configUploaded(configToken string) (State, error) {
	if configToken == "" {
		return state, Empty("uploadDeviceConfigResponse.uploadDeviceConfigToken")
	}
	next, err := state.advance(PhaseCheckedIn)
	if err != nil {
		return state, err
	}
	next.DeviceConfigToken = configToken
	return next, nil
}

// authenticated records the credentials of step 3. Both arguments are
// empty when a durable account credential was already present.
func (state State) authenticated(bootstrapCredential, accountCredential string) (State, error) {
	next, err := state.advance(PhaseConfigUploaded)
	if err != nil {
		return state, err
	}
	if bootstrapCredential != "" {
		next.BootstrapCredential = bootstrapCredential
	}
	if accountCredential != "" {
		next.AccountCredential = accountCredential
	}
	if next.AccountCredential == "" {
		return state, fmt.Errorf("%w: no account credential", ErrCredentialExchangeFailed)
	}
	return next, nil
}

func (state State) termsAccepted(sessionCookie string) (State, error) {
	next, err := state.advance(PhaseAuthenticated)
	if err != nil {
		return state, err
	}
	if sessionCookie != "" {
		next.SessionCookie = sessionCookie
	}
	return next, nil
}

func (state State) ready(profile *wire.UserProfileResponse) (State, error) {
	if profile == nil {
		return state, Empty("userProfileResponse")
	}
	next, err := state.advance(PhaseTermsAccepted)
	if err != nil {
		return state, err
	}
	next.Profile = profile
	return next, nil
}
