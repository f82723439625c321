// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for code that stamps wire messages or
// enforces deadlines. Production code injects Real(); tests inject
// Fake() and move time explicitly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Or returns c, or Real() when c is nil. Config structs use it to
// default an unset Clock field.
func Or(c Clock) Clock {
	if c == nil {
		return Real()
	}
	return c
}
