// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session establishes an authenticated session against the
// vendor's device registration and storefront endpoints and sends
// authenticated requests over it.
//
// A session is built by [New], which runs five bootstrap steps in a
// fixed order. Each step consumes tokens produced by earlier steps and
// produces a token later steps (and every later request) need:
//
//	checkin        -> device id, checkin consistency token
//	upload-config  -> device config token
//	credentials    -> account credential (skipped when supplied)
//	terms          -> session cookie (optional)
//	profile        -> user profile
//
// Progress is tracked by a [State] value whose [Phase] only moves
// forward. Any failure aborts construction: New returns an error and no
// Session. A returned Session is always in [PhaseReady].
//
// Every storefront request goes through [Session.Call], which derives
// headers from the current state ([StorefrontHeaders]), frames the
// body with the wire codec, and unwraps the response payload. Bootstrap
// steps use the same path with their own declared prerequisites; an
// unset prerequisite fails fast with [ErrNotReady] before any request
// is sent.
//
// The interactive login that yields the one-time bootstrap credential
// is not performed here. Callers inject a [LoginProvider]. Supplying a
// durable account credential in [Config] skips the login and both
// credential exchanges.
//
// A Session is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access.
package session
