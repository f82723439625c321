// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"errors"
	"time"
)

// Record is the persisted state of one account.
type Record struct {
	// User is the account identifier the credential belongs to.
	User string `cbor:"user"`

	// AccountCredential is the storefront bearer token.
	AccountCredential string `cbor:"account_credential"`

	// DeviceProfile names the device profile the credential was issued
	// to. The vendor ties credentials to the checkin identity, so a
	// different profile needs a fresh login.
	DeviceProfile string `cbor:"device_profile,omitempty"`

	// DeviceFingerprint is the fingerprint of that profile's
	// properties, so that editing a profile in place also requires a
	// fresh login.
	DeviceFingerprint string `cbor:"device_fingerprint,omitempty"`

	// SavedAt is when the record was written.
	SavedAt time.Time `cbor:"saved_at"`
}

// Validate reports whether the record is usable.
func (record Record) Validate() error {
	var errs []error
	if record.User == "" {
		errs = append(errs, errors.New("user is required"))
	}
	if record.AccountCredential == "" {
		errs = append(errs, errors.New("account credential is required"))
	}
	return errors.Join(errs...)
}

// Matches reports whether the record can stand in for a login of user
// on the given device. Device fields the record leaves empty match
// anything.
func (record Record) Matches(user, deviceProfile, deviceFingerprint string) bool {
	if record.User != user {
		return false
	}
	if record.DeviceProfile != "" && record.DeviceProfile != deviceProfile {
		return false
	}
	return record.DeviceFingerprint == "" || record.DeviceFingerprint == deviceFingerprint
}
