// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang/protobuf/proto"

	"github.com/bureau-foundation/vending/lib/wire"
)

// Request is one authenticated storefront call.
//
// The HTTP method follows from Body and Method: a non-nil Body is
// encoded and POSTed; a nil Body with Method POST sends a parameterized
// POST with no body; anything else is a GET.
type Request struct {
	// Endpoint is the path below the base URL, e.g. "/fdfe/details".
	Endpoint string

	// Params is the query string.
	Params url.Values

	// Body is an optional request message.
	Body proto.Message

	// Method is http.MethodPost or empty (GET). Ignored when Body is
	// set.
	Method string
}

// readyFields are the fields every storefront call after bootstrap
// depends on.
var readyFields = []Field{FieldDeviceID, FieldAccountCredential}

// Call sends request with headers derived from the current state and
// returns the response payload. It fails with ErrNotReady, without
// sending anything, unless bootstrap has completed.
//
// Callers check for the sub-response they expect and return
// [Empty] when it is absent.
func (session *Session) Call(ctx context.Context, request Request) (*wire.Payload, error) {
	if session.state.Phase != PhaseReady {
		return nil, fmt.Errorf("%s: %w: bootstrap is in phase %s", request.Endpoint, ErrNotReady, session.state.Phase)
	}
	return session.call(ctx, request, readyFields...)
}

// call is the gateway primitive shared by bootstrap steps and Call.
func (session *Session) call(ctx context.Context, request Request, prerequisites ...Field) (*wire.Payload, error) {
	data, err := session.send(ctx, request, prerequisites...)
	if err != nil {
		return nil, err
	}
	wrapper, err := wire.DecodeWrapper(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", request.Endpoint, err)
	}
	if wrapper.Payload == nil {
		// The caller reports the missing sub-response; keep the
		// server's explanation, if any, in the log.
		if message := wrapper.GetCommands().GetDisplayErrorMessage(); message != "" {
			session.logger.Warn("response without payload",
				"endpoint", request.Endpoint,
				"server_message", message,
			)
		}
		return &wire.Payload{}, nil
	}
	return wrapper.Payload, nil
}

// send checks prerequisites, frames the request and returns the raw
// response body.
func (session *Session) send(ctx context.Context, request Request, prerequisites ...Field) ([]byte, error) {
	if err := session.state.Require(prerequisites...); err != nil {
		return nil, fmt.Errorf("%s: %w", request.Endpoint, err)
	}

	header := StorefrontHeaders(session.state, session.device)
	method := http.MethodGet
	var body []byte
	switch {
	case request.Body != nil:
		encoded, err := wire.Encode(request.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", request.Endpoint, err)
		}
		method = http.MethodPost
		body = encoded
		header.Set("Content-Type", contentTypeProtobuf)
	case request.Method == http.MethodPost:
		method = http.MethodPost
	}

	return session.roundTrip(ctx, method, request.Endpoint, request.Params, header, body)
}
