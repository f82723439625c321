// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Upstream] is an httptest fake of the vendor endpoints. It answers
// every bootstrap request with a successful default response, records
// each request it receives, and lets a test replace the response for
// any path:
//
//	upstream := testutil.NewUpstream(t)
//	upstream.RespondPayload("/fdfe/details", &wire.Payload{...})
//	s, err := session.New(ctx, session.Config{BaseURL: upstream.URL(), ...})
//	requests := upstream.RequestsTo("/fdfe/details")
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern so tests never block forever on a channel.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
