// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/vending/lib/codec"
)

// fileVersion is the current credential file layout.
const fileVersion = 1

// ErrSealingMismatch is returned when a file was written with a
// different sealing than the store is configured for.
var ErrSealingMismatch = errors.New("credential file sealing does not match configuration")

// file is the on-disk layout: a header naming the sealing, then the
// sealed CBOR encoding of a Record.
type file struct {
	Version int    `cbor:"version"`
	Sealing string `cbor:"sealing"`
	Data    []byte `cbor:"data"`
}

// Store persists one Record at Path.
type Store struct {
	Path string

	// Sealer protects the record at rest. Default: Plain.
	Sealer Sealer
}

func (store *Store) sealer() Sealer {
	if store.Sealer == nil {
		return Plain{}
	}
	return store.Sealer
}

// Load reads the record. A missing file is not an error: Load returns
// false and a zero Record.
func (store *Store) Load() (Record, bool, error) {
	data, err := os.ReadFile(store.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading credential file: %w", err)
	}

	var header file
	if err := codec.Unmarshal(data, &header); err != nil {
		return Record{}, false, fmt.Errorf("decoding credential file %s: %w", store.Path, err)
	}
	if header.Version != fileVersion {
		return Record{}, false, fmt.Errorf("credential file %s has version %d, want %d", store.Path, header.Version, fileVersion)
	}
	sealer := store.sealer()
	if header.Sealing != sealer.Name() {
		return Record{}, false, fmt.Errorf("%w: %s is sealed with %q, configured for %q",
			ErrSealingMismatch, store.Path, header.Sealing, sealer.Name())
	}

	plaintext, err := sealer.Open(header.Data)
	if err != nil {
		return Record{}, false, fmt.Errorf("opening credential file %s: %w", store.Path, err)
	}
	defer plaintext.Close()

	var record Record
	if err := codec.Unmarshal(plaintext.Bytes(), &record); err != nil {
		return Record{}, false, fmt.Errorf("decoding credential record: %w", err)
	}
	if err := record.Validate(); err != nil {
		return Record{}, false, fmt.Errorf("credential file %s: %w", store.Path, err)
	}
	return record, true, nil
}

// Save replaces the stored record. The file is written to a temporary
// path in the same directory with mode 0600, synced, and renamed into
// place, so readers never see a partial write. Missing parent
// directories are created with mode 0700.
func (store *Store) Save(record Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	encoded, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding credential record: %w", err)
	}
	sealer := store.sealer()
	sealedData, err := sealer.Seal(encoded)
	if err != nil {
		return fmt.Errorf("sealing credential record: %w", err)
	}
	data, err := codec.Marshal(file{Version: fileVersion, Sealing: sealer.Name(), Data: sealedData})
	if err != nil {
		return fmt.Errorf("encoding credential file: %w", err)
	}

	directory := filepath.Dir(store.Path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}

	temporaryPath := store.Path + ".tmp"
	output, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating temporary credential file: %w", err)
	}
	if _, err := output.Write(data); err != nil {
		output.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary credential file: %w", err)
	}
	if err := output.Sync(); err != nil {
		output.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary credential file: %w", err)
	}
	if err := output.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary credential file: %w", err)
	}
	if err := os.Rename(temporaryPath, store.Path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming credential file into place: %w", err)
	}

	// The rename is durable only once the directory entry is flushed.
	if parent, err := os.Open(directory); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}

// Remove deletes the stored record. Removing a missing file succeeds.
func (store *Store) Remove() error {
	if err := os.Remove(store.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}
