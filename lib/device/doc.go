// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package device describes the emulated handset a session presents to
// the vendor.
//
// A [Profile] is a named, immutable set of string properties using the
// vendor's dotted key names (build.fingerprint, screen.density,
// gl.extensions, ...). Profiles are stored as a YAML map of profile
// name to properties:
//
//	px_3a:
//	  build.device: sargo
//	  build.version.sdk_int: 30
//	  platforms: arm64-v8a,armeabi-v7a,armeabi
//
// A default set is compiled into the binary ([LoadEmbedded]); [Load]
// reads an operator-supplied file. Both validate the profile before
// returning it, so the typed accessors never see a missing or
// unparseable required key.
//
// The descriptor builders turn a profile into the wire messages sent
// during checkin and configuration upload. They are pure functions of
// the profile and the supplied time.
package device
