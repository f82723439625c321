// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/bureau-foundation/vending/lib/codec"
	"github.com/bureau-foundation/vending/lib/sealed"
	"github.com/bureau-foundation/vending/lib/secret"
)

// ErrWrongPassphrase is returned when a passphrase-sealed file does not
// open, either because the passphrase differs or the file was altered.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted credential file")

// Sealer protects the encoded record at rest.
type Sealer interface {
	// Name identifies the sealing in the file header.
	Name() string

	// Seal returns the protected form of plaintext.
	Seal(plaintext []byte) ([]byte, error)

	// Open reverses Seal. The caller closes the returned buffer.
	Open(sealedData []byte) (*secret.Buffer, error)
}

// Plain stores the record unencrypted.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (Plain) Seal(plaintext []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (Plain) Open(sealedData []byte) (*secret.Buffer, error) {
	return secret.NewFromBytes(append([]byte(nil), sealedData...))
}

// AgeSealer encrypts to an age recipient.
type AgeSealer struct {
	// Recipient is the age1... public key records are sealed to.
	Recipient string

	// IdentityPath is the file holding the matching
	// AGE-SECRET-KEY-1... identity. Needed only to load.
	IdentityPath string
}

func (AgeSealer) Name() string { return "age" }

func (sealer AgeSealer) Seal(plaintext []byte) ([]byte, error) {
	return sealed.Encrypt(plaintext, sealer.Recipient)
}

func (sealer AgeSealer) Open(sealedData []byte) (*secret.Buffer, error) {
	if sealer.IdentityPath == "" {
		return nil, errors.New("age identity path is required to open the credential file")
	}
	identity, err := secret.ReadFile(sealer.IdentityPath)
	if err != nil {
		return nil, fmt.Errorf("loading age identity: %w", err)
	}
	defer identity.Close()
	return sealed.Decrypt(sealedData, identity)
}

// Scrypt cost parameters for new passphrase-sealed files. Files record
// their own parameters, so these can rise without breaking old files.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// passphraseEnvelope is the sealed form written by PassphraseSealer.
// Each seal draws a fresh salt and so a fresh key, which makes the
// fixed nonce safe.
type passphraseEnvelope struct {
	Salt       []byte `cbor:"salt"`
	N          int    `cbor:"n"`
	R          int    `cbor:"r"`
	P          int    `cbor:"p"`
	Ciphertext []byte `cbor:"ciphertext"`
}

// PassphraseSealer derives the sealing key from a passphrase.
type PassphraseSealer struct {
	Passphrase string
}

func (PassphraseSealer) Name() string { return "passphrase" }

func (sealer PassphraseSealer) Seal(plaintext []byte) ([]byte, error) {
	if sealer.Passphrase == "" {
		return nil, errors.New("passphrase is empty")
	}
	envelope := passphraseEnvelope{Salt: make([]byte, 16), N: scryptN, R: scryptR, P: scryptP}
	if _, err := rand.Read(envelope.Salt); err != nil {
		return nil, fmt.Errorf("drawing salt: %w", err)
	}
	aead, err := sealer.cipher(envelope)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	envelope.Ciphertext = aead.Seal(nil, nonce, plaintext, envelope.Salt)
	return codec.Marshal(envelope)
}

func (sealer PassphraseSealer) Open(sealedData []byte) (*secret.Buffer, error) {
	var envelope passphraseEnvelope
	if err := codec.Unmarshal(sealedData, &envelope); err != nil {
		return nil, fmt.Errorf("decoding passphrase envelope: %w", err)
	}
	aead, err := sealer.cipher(envelope)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	plaintext, err := aead.Open(nil, nonce, envelope.Ciphertext, envelope.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return secret.NewFromBytes(plaintext)
}

func (sealer PassphraseSealer) cipher(envelope passphraseEnvelope) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(sealer.Passphrase), envelope.Salt, envelope.N, envelope.R, envelope.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	defer secret.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	return aead, nil
}
