// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrEmpty is returned when a secret would have no content.
var ErrEmpty = errors.New("secret: empty")

// Buffer is protected memory holding one secret. It must not be copied.
// Reading a closed Buffer panics.
type Buffer struct {
	mu     sync.Mutex
	region []byte
	closed bool
}

// New returns a zero-filled Buffer of size bytes.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: size must be positive, got %d", size)
	}
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}
	return &Buffer{region: region}, nil
}

// NewFromBytes moves source into a new Buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, ErrEmpty
	}
	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}
	copy(buffer.region, source)
	Zero(source)
	return buffer, nil
}

// Bytes returns the protected region itself. The slice is invalid after
// Close.
func (buffer *Buffer) Bytes() []byte {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.closed {
		panic("secret: read from closed buffer")
	}
	return buffer.region
}

// String returns a heap copy of the secret, for APIs that only accept
// strings.
func (buffer *Buffer) String() string {
	return string(buffer.Bytes())
}

// Len returns the secret's length, or 0 after Close.
func (buffer *Buffer) Len() int {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return len(buffer.region)
}

// Close zeroes and releases the memory. It is idempotent.
func (buffer *Buffer) Close() error {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	if buffer.closed {
		return nil
	}
	buffer.closed = true

	Zero(buffer.region)
	unlockErr := unix.Munlock(buffer.region)
	unmapErr := unix.Munmap(buffer.region)
	buffer.region = nil
	if unlockErr != nil {
		return fmt.Errorf("secret: munlock: %w", unlockErr)
	}
	if unmapErr != nil {
		return fmt.Errorf("secret: munmap: %w", unmapErr)
	}
	return nil
}

// Zero overwrites data with zeroes.
func Zero(data []byte) {
	clear(data)
}
