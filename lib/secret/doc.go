// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds key material and decrypted credentials outside
// the Go heap.
//
// A [Buffer] is an anonymous mmap region locked into RAM and excluded
// from core dumps. The garbage collector never copies it, and Close
// zeroes it before unmapping. Age identities read from disk and
// decrypted credential files pass through a Buffer so that the only
// heap copies are the short-lived strings handed to library calls that
// demand them.
package secret
