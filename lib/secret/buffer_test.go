// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewIsZeroFilled(t *testing.T) {
	buffer, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 32 {
		t.Errorf("Len = %d, want 32", buffer.Len())
	}
	for index, value := range buffer.Bytes() {
		if value != 0 {
			t.Fatalf("byte %d = %d, want 0", index, value)
		}
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
}

func TestNewFromBytesZeroesSource(t *testing.T) {
	source := []byte("ya29.account-credential")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "ya29.account-credential" {
		t.Errorf("String = %q", got)
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d = %d after NewFromBytes, want 0", index, value)
		}
	}

	if _, err := NewFromBytes(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("NewFromBytes(nil): err = %v, want ErrEmpty", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	buffer, err := NewFromBytes([]byte("secret"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("Len after Close = %d, want 0", buffer.Len())
	}

	defer func() {
		if recover() == nil {
			t.Error("Bytes after Close did not panic")
		}
	}()
	buffer.Bytes()
}

func TestReadFile(t *testing.T) {
	directory := t.TempDir()

	for _, test := range []struct {
		name    string
		content string
	}{
		{"bare", "AGE-SECRET-KEY-1EXAMPLE"},
		{"trailing newline", "AGE-SECRET-KEY-1EXAMPLE\n"},
		{"surrounding whitespace", "  AGE-SECRET-KEY-1EXAMPLE \r\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(directory, test.name)
			if err := os.WriteFile(path, []byte(test.content), 0o600); err != nil {
				t.Fatal(err)
			}
			buffer, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			defer buffer.Close()
			if got := buffer.String(); got != "AGE-SECRET-KEY-1EXAMPLE" {
				t.Errorf("secret = %q, want AGE-SECRET-KEY-1EXAMPLE", got)
			}
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	directory := t.TempDir()

	blank := filepath.Join(directory, "blank")
	if err := os.WriteFile(blank, []byte(" \n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(blank); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank file: err = %v, want ErrEmpty", err)
	}

	if _, err := ReadFile(filepath.Join(directory, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
}
