// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/vending/lib/wire"
)

var (
	// ErrTransport wraps network and response-read failures.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedEnvelope is returned when a response does not decode.
	ErrMalformedEnvelope = wire.ErrMalformedEnvelope

	// ErrCheckinRejected is returned when checkin yields no device id.
	ErrCheckinRejected = errors.New("checkin rejected")

	// ErrCredentialExchangeFailed is returned when the login provider
	// or either token exchange does not produce its token.
	ErrCredentialExchangeFailed = errors.New("credential exchange failed")

	// ErrEmptyPayload is returned when a well-formed response lacks the
	// sub-response the caller expected. Storefront callers decide
	// whether that is meaningful; see [Empty].
	ErrEmptyPayload = errors.New("empty payload")

	// ErrNotReady is returned, without sending anything, when a request
	// is attempted before its prerequisites are established.
	ErrNotReady = errors.New("session not ready")

	// ErrLoginTimeout is returned together with
	// ErrCredentialExchangeFailed when the login provider does not
	// answer within Config.LoginTimeout.
	ErrLoginTimeout = errors.New("interactive login timed out")
)

// Empty returns an ErrEmptyPayload error naming the missing sub-field.
func Empty(subfield string) error {
	return fmt.Errorf("%w: response has no %s", ErrEmptyPayload, subfield)
}

// StatusError is returned for a non-2xx vendor response.
type StatusError struct {
	// Endpoint is the request path, without the base URL.
	Endpoint string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the server's explanation: the display message of a
	// storefront envelope or the Error value of an auth response.
	// Empty when the body carried neither.
	Message string
}

func (err *StatusError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", err.Endpoint, err.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", err.Endpoint, err.StatusCode, err.Message)
}
