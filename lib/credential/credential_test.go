// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/vending/lib/sealed"
)

func testRecord() Record {
	return Record{
		User:              "user@example.com",
		AccountCredential: "ya29.account-credential",
		DeviceProfile:     "px_3a",
		SavedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func ageSealer(t *testing.T) AgeSealer {
	t.Helper()
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	t.Cleanup(func() { keypair.Close() })
	identityPath := filepath.Join(t.TempDir(), "identity")
	if err := os.WriteFile(identityPath, append(append([]byte(nil), keypair.PrivateKey.Bytes()...), '\n'), 0o600); err != nil {
		t.Fatal(err)
	}
	return AgeSealer{Recipient: keypair.PublicKey, IdentityPath: identityPath}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	sealers := map[string]func(*testing.T) Sealer{
		"default":    func(*testing.T) Sealer { return nil },
		"plain":      func(*testing.T) Sealer { return Plain{} },
		"age":        func(t *testing.T) Sealer { return ageSealer(t) },
		"passphrase": func(*testing.T) Sealer { return PassphraseSealer{Passphrase: "correct horse"} },
	}
	for name, makeSealer := range sealers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := &Store{Path: filepath.Join(t.TempDir(), "nested", "credential"), Sealer: makeSealer(t)}
			if err := store.Save(testRecord()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			record, found, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !found {
				t.Fatal("Load found no record after Save")
			}
			want := testRecord()
			if record.User != want.User || record.AccountCredential != want.AccountCredential || record.DeviceProfile != want.DeviceProfile {
				t.Errorf("record = %+v, want %+v", record, want)
			}
			if !record.SavedAt.Equal(want.SavedAt) {
				t.Errorf("SavedAt = %v, want %v", record.SavedAt, want.SavedAt)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := &Store{Path: filepath.Join(t.TempDir(), "credential")}
	record, found, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Errorf("found = true, record = %+v", record)
	}
}

func TestSaveFileMode(t *testing.T) {
	t.Parallel()

	store := &Store{Path: filepath.Join(t.TempDir(), "credential")}
	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("mode = %o, want 600", mode)
	}
	if _, err := os.Stat(store.Path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestSaveReplaces(t *testing.T) {
	t.Parallel()

	store := &Store{Path: filepath.Join(t.TempDir(), "credential")}
	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	updated := testRecord()
	updated.AccountCredential = "ya29.rotated"
	if err := store.Save(updated); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	record, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.AccountCredential != "ya29.rotated" {
		t.Errorf("AccountCredential = %q, want ya29.rotated", record.AccountCredential)
	}
}

func TestSaveRejectsIncompleteRecord(t *testing.T) {
	t.Parallel()

	store := &Store{Path: filepath.Join(t.TempDir(), "credential")}
	if err := store.Save(Record{User: "user@example.com"}); err == nil {
		t.Fatal("Save accepted a record without a credential")
	}
	if _, err := os.Stat(store.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("incomplete record was written: %v", err)
	}
}

func TestSealedFilesHideTheCredential(t *testing.T) {
	t.Parallel()

	for name, sealer := range map[string]Sealer{
		"age":        ageSealer(t),
		"passphrase": PassphraseSealer{Passphrase: "correct horse"},
	} {
		store := &Store{Path: filepath.Join(t.TempDir(), "credential"), Sealer: sealer}
		if err := store.Save(testRecord()); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		data, err := os.ReadFile(store.Path)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Contains(data, []byte(testRecord().AccountCredential)) {
			t.Errorf("%s: credential appears in the file in the clear", name)
		}
	}
}

func TestSealingMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential")
	if err := (&Store{Path: path, Sealer: PassphraseSealer{Passphrase: "secret"}}).Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, _, err := (&Store{Path: path}).Load()
	if !errors.Is(err, ErrSealingMismatch) {
		t.Errorf("err = %v, want ErrSealingMismatch", err)
	}
}

func TestWrongPassphrase(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential")
	if err := (&Store{Path: path, Sealer: PassphraseSealer{Passphrase: "right"}}).Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, _, err := (&Store{Path: path, Sealer: PassphraseSealer{Passphrase: "wrong"}}).Load()
	if !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestPassphraseSealsAreSalted(t *testing.T) {
	t.Parallel()

	sealer := PassphraseSealer{Passphrase: "secret"}
	first, err := sealer.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	second, err := sealer.Seal([]byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two seals of the same plaintext are identical")
	}

	if _, err := (PassphraseSealer{}).Seal([]byte("payload")); err == nil {
		t.Error("empty passphrase accepted")
	}
}

func TestAgeSealerWithoutIdentity(t *testing.T) {
	t.Parallel()

	sealer := ageSealer(t)
	path := filepath.Join(t.TempDir(), "credential")
	if err := (&Store{Path: path, Sealer: sealer}).Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sealer.IdentityPath = ""
	if _, _, err := (&Store{Path: path, Sealer: sealer}).Load(); err == nil {
		t.Error("Load succeeded without an identity")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credential")
	if err := os.WriteFile(path, []byte("not cbor at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, found, err := (&Store{Path: path}).Load(); err == nil || found {
		t.Errorf("Load = found %v, err %v; want an error", found, err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := &Store{Path: filepath.Join(t.TempDir(), "credential")}
	if err := store.Remove(); err != nil {
		t.Errorf("Remove of missing file: %v", err)
	}
	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, found, _ := store.Load(); found {
		t.Error("record still present after Remove")
	}
}

func TestRecordMatches(t *testing.T) {
	t.Parallel()

	record := testRecord()
	record.DeviceFingerprint = "f1"
	tests := []struct {
		user, profile, fingerprint string
		want                       bool
	}{
		{"user@example.com", "px_3a", "f1", true},
		{"user@example.com", "px_3a", "f2", false},
		{"user@example.com", "other", "f1", false},
		{"someone@example.com", "px_3a", "f1", false},
	}
	for _, test := range tests {
		if got := record.Matches(test.user, test.profile, test.fingerprint); got != test.want {
			t.Errorf("Matches(%q, %q, %q) = %v, want %v", test.user, test.profile, test.fingerprint, got, test.want)
		}
	}
	record.DeviceProfile = ""
	record.DeviceFingerprint = ""
	if !record.Matches("user@example.com", "anything", "any") {
		t.Error("record without device fields should match any device")
	}
}
