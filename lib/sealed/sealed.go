// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts credential files to age X25519 recipients.
//
// Ciphertext is the binary age format, written to disk as is. Private
// keys and decrypted plaintext only ever live in [secret.Buffer]
// values; callers close them when done.
package sealed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/bureau-foundation/vending/lib/secret"
)

// Keypair is an age X25519 identity and its public recipient.
type Keypair struct {
	// PrivateKey is the AGE-SECRET-KEY-1... identity.
	PrivateKey *secret.Buffer

	// PublicKey is the age1... recipient. Safe to share.
	PublicKey string
}

// Close releases the private key.
func (keypair *Keypair) Close() error {
	if keypair.PrivateKey == nil {
		return nil
	}
	return keypair.PrivateKey.Close()
}

// GenerateKeypair returns a fresh identity. The caller closes it.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age identity: %w", err)
	}
	privateKey, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("protecting age identity: %w", err)
	}
	return &Keypair{PrivateKey: privateKey, PublicKey: identity.Recipient().String()}, nil
}

// ParseRecipient validates an age1... public key.
func ParseRecipient(publicKey string) error {
	if _, err := age.ParseX25519Recipient(publicKey); err != nil {
		return fmt.Errorf("invalid age recipient: %w", err)
	}
	return nil
}

// Encrypt seals plaintext to every recipient in publicKeys.
func Encrypt(plaintext []byte, publicKeys ...string) ([]byte, error) {
	if len(publicKeys) == 0 {
		return nil, errors.New("sealed: no recipients")
	}
	recipients := make([]age.Recipient, 0, len(publicKeys))
	for _, publicKey := range publicKeys {
		recipient, err := age.ParseX25519Recipient(publicKey)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", publicKey, err)
		}
		recipients = append(recipients, recipient)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return nil, fmt.Errorf("starting age encryption: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finishing age encryption: %w", err)
	}
	return ciphertext.Bytes(), nil
}

// Decrypt opens ciphertext with privateKey, which stays open. Empty
// plaintext is an error; credential files are never empty.
func Decrypt(ciphertext []byte, privateKey *secret.Buffer) (*secret.Buffer, error) {
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return nil, fmt.Errorf("parsing age identity: %w", err)
	}
	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		secret.Zero(plaintext)
		return nil, fmt.Errorf("reading plaintext: %w", err)
	}
	buffer, err := secret.NewFromBytes(plaintext)
	if err != nil {
		return nil, fmt.Errorf("protecting plaintext: %w", err)
	}
	return buffer, nil
}
