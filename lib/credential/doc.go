// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential persists the durable account credential between
// runs so that later sessions skip the interactive login and both
// credential exchanges.
//
// A [Store] holds one [Record] in one file. The record is CBOR encoded
// with lib/codec and then sealed by the store's [Sealer]:
//
//   - [Plain] writes the encoding unprotected, relying on the 0600
//     file mode alone.
//   - [AgeSealer] encrypts to an age recipient. Loading needs the
//     matching identity file.
//   - [PassphraseSealer] derives a key from a passphrase with scrypt
//     and seals with ChaCha20-Poly1305.
//
// The file starts with a small CBOR header naming the sealing, so a
// store configured with the wrong sealer fails with a clear error
// instead of a decryption failure. Writes replace the file atomically.
package credential
