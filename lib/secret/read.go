// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"os"
)

// ReadFile reads the secret stored at path, trimming surrounding
// whitespace. The heap copy made while reading is zeroed. The file
// holding nothing but whitespace is an ErrEmpty error.
func ReadFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	defer Zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return NewFromBytes(trimmed)
}
