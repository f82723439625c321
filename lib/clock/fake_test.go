// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(90 * time.Second)
	want := epoch.Add(90 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfter(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(time.Minute)

	clock.Advance(30 * time.Second)
	select {
	case <-channel:
		t.Fatal("After fired before its deadline")
	default:
	}
	if clock.PendingCount() != 1 {
		t.Fatalf("PendingCount = %d, want 1", clock.PendingCount())
	}

	clock.Advance(30 * time.Second)
	select {
	case fired := <-channel:
		if want := epoch.Add(time.Minute); !fired.Equal(want) {
			t.Errorf("fired at %v, want %v", fired, want)
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount after firing = %d, want 0", clock.PendingCount())
	}
}

func TestFakeClockAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case <-clock.After(d):
		default:
			t.Errorf("After(%v) should be ready immediately", d)
		}
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", clock.PendingCount())
	}
}

func TestFakeClockWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})

	go func() {
		<-clock.After(5 * time.Second)
		close(done)
	}()

	clock.WaitForTimers(1)
	clock.Advance(5 * time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("goroutine did not observe the advanced clock")
	}
}

func TestOr(t *testing.T) {
	fake := Fake(epoch)
	if Or(fake) != Clock(fake) {
		t.Error("Or should return a non-nil clock unchanged")
	}
	if _, ok := Or(nil).(realClock); !ok {
		t.Error("Or(nil) should return the real clock")
	}
}
