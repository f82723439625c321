// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"encoding/hex"
	"maps"
	"slices"

	"github.com/zeebo/blake3"
)

// fingerprintKey separates profile fingerprints from any other BLAKE3
// keyed hash. Changing it changes every fingerprint.
var fingerprintKey = [32]byte{
	'v', 'e', 'n', 'd', 'i', 'n', 'g', '.', 'd', 'e', 'v', 'i', 'c', 'e', '.',
	'p', 'r', 'o', 'f', 'i', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint returns a hex digest of the profile's properties. Two
// profiles have the same fingerprint iff they present the same handset
// to the vendor; the profile name is not part of it.
func (profile *Profile) Fingerprint() string {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		// NewKeyed fails only for keys that are not 32 bytes.
		panic("device: fingerprint key: " + err.Error())
	}
	for _, key := range slices.Sorted(maps.Keys(profile.properties)) {
		value := profile.properties[key]
		// Length prefixes keep "a=bc" distinct from "ab=c".
		hasher.Write([]byte{byte(len(key) >> 8), byte(len(key))})
		hasher.Write([]byte(key))
		hasher.Write([]byte{byte(len(value) >> 24), byte(len(value) >> 16), byte(len(value) >> 8), byte(len(value))})
		hasher.Write([]byte(value))
	}
	return hex.EncodeToString(hasher.Sum(nil)[:16])
}
