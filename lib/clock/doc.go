// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The device checkin carries a build timestamp and the bootstrap
// bounds how long it waits for an interactive login. Both read time
// through a Clock so tests can pin the timestamp and fire the login
// deadline without sleeping:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go func() { result <- waitWithDeadline(fake) }()
//	fake.WaitForTimers(1) // the goroutine has called After
//	fake.Advance(time.Minute)
package clock
