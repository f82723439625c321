// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/protobuf/proto"

	"github.com/bureau-foundation/vending/lib/cli"
	"github.com/bureau-foundation/vending/lib/testutil"
	"github.com/bureau-foundation/vending/lib/wire"
)

// workspace is a config file and token file pointing at a fake
// upstream.
type workspace struct {
	upstream   *testutil.Upstream
	directory  string
	configPath string
	tokenPath  string
}

func newWorkspace(t *testing.T, extraConfig string) *workspace {
	t.Helper()
	upstream := testutil.NewUpstream(t)
	directory := t.TempDir()
	configPath := filepath.Join(directory, "vending.yaml")
	content := fmt.Sprintf(`home: %s
credentials:
  path: %s
  user: user@example.com
%s
upstream:
  base_url: %s
log:
  level: error
`, directory, filepath.Join(directory, "credential"), extraConfig, upstream.URL())
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	tokenPath := filepath.Join(directory, "token")
	if err := os.WriteFile(tokenPath, []byte("oauth2_4/bootstrap\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return &workspace{upstream: upstream, directory: directory, configPath: configPath, tokenPath: tokenPath}
}

// run executes the CLI with --config and --token-file appended and
// returns stdout.
func (w *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	application := &app{in: strings.NewReader(""), out: &out, errOut: io.Discard}
	args = append(args, "--config", w.configPath, "--token-file", w.tokenPath)
	err := run(context.Background(), args, application)
	return out.String(), err
}

func (w *workspace) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := w.run(t, args...)
	if err != nil {
		t.Fatalf("vending %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestLoginThenStoredCredential(t *testing.T) {
	w := newWorkspace(t, "")

	var loggedIn map[string]string
	if err := json.Unmarshal([]byte(w.mustRun(t, "login")), &loggedIn); err != nil {
		t.Fatalf("decoding login output: %v", err)
	}
	if loggedIn["device_id"] != testutil.DeviceID || loggedIn["user"] != "user@example.com" {
		t.Errorf("login output = %v", loggedIn)
	}
	if got := len(w.upstream.RequestsTo("/auth")); got != 2 {
		t.Fatalf("auth requests after login = %d, want 2", got)
	}

	w.upstream.RespondPayload("/fdfe/details", &wire.Payload{DetailsResponse: &wire.DetailsResponse{
		DocV2: &wire.DocV2{Docid: proto.String("org.example.app"), Title: proto.String("Example")},
	}})
	out := w.mustRun(t, "details", "org.example.app")
	if !strings.Contains(out, `"docid": "org.example.app"`) {
		t.Errorf("details output = %s", out)
	}
	if got := len(w.upstream.RequestsTo("/auth")); got != 2 {
		t.Errorf("auth requests after details = %d, want 2 (stored credential reused)", got)
	}

	out = w.mustRun(t, "profile")
	if !strings.Contains(out, testutil.ProfileName) {
		t.Errorf("profile output = %s", out)
	}
}

func TestSearchAndReviews(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	w.upstream.RespondPayload("/fdfe/searchList", &wire.Payload{ListResponse: &wire.ListResponse{
		Doc: []*wire.DocV2{{
			Child: []*wire.DocV2{{
				DocType: proto.Int32(wire.DocTypeCluster),
				Child: []*wire.DocV2{
					{Docid: proto.String("org.example.maps"), DocType: proto.Int32(wire.DocTypeApp)},
				},
			}},
		}},
	}})
	w.upstream.RespondPayload("/fdfe/rev", &wire.Payload{ReviewResponse: &wire.ReviewResponse{
		GetResponse: &wire.GetReviewsResponse{Review: []*wire.Review{{AuthorName: proto.String("A"), StarRating: proto.Int32(5)}}},
	}})

	var results []map[string]any
	if err := json.Unmarshal([]byte(w.mustRun(t, "search", "offline", "maps")), &results); err != nil {
		t.Fatalf("decoding search output: %v", err)
	}
	if len(results) != 1 || results[0]["docid"] != "org.example.maps" {
		t.Errorf("search results = %v", results)
	}
	searches := w.upstream.RequestsTo("/fdfe/searchList")
	if len(searches) != 1 || searches[0].Query.Get("q") != "offline maps" {
		t.Errorf("search requests = %+v", searches)
	}

	out := w.mustRun(t, "reviews", "-n", "3", "org.example.maps")
	if !strings.Contains(out, `"authorName": "A"`) {
		t.Errorf("reviews output = %s", out)
	}
	reviews := w.upstream.RequestsTo("/fdfe/rev")
	if len(reviews) != 1 || reviews[0].Query.Get("n") != "3" || reviews[0].Query.Get("doc") != "org.example.maps" {
		t.Errorf("review requests = %+v", reviews)
	}
}

func TestUsageErrorsSendNothing(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	for _, args := range [][]string{
		{"details"},
		{"details", "a", "b"},
		{"search"},
		{"download"},
		{"reviews", "--count", "-1", "org.example.app"},
		{"frobnicate"},
	} {
		_, err := w.run(t, args...)
		var usage *cli.UsageError
		if !errors.As(err, &usage) {
			t.Errorf("vending %s: err = %v, want a usage error", strings.Join(args, " "), err)
		}
	}
	if got := len(w.upstream.Requests()); got != 0 {
		t.Errorf("%d requests sent for invalid command lines", got)
	}
}

func TestStorefrontErrorIsReturned(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	w.upstream.RespondPayload("/fdfe/details", &wire.Payload{})
	if _, err := w.run(t, "details", "org.example.missing"); err == nil || !strings.Contains(err.Error(), "detailsResponse") {
		t.Errorf("err = %v, want the missing sub-response named", err)
	}
}

func TestKeygenSealsCredentialFile(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	identityPath := filepath.Join(w.directory, "keys", "identity")
	var generated map[string]string
	if err := json.Unmarshal([]byte(w.mustRun(t, "keygen", "--output", identityPath)), &generated); err != nil {
		t.Fatalf("decoding keygen output: %v", err)
	}
	if !strings.HasPrefix(generated["recipient"], "age1") {
		t.Fatalf("recipient = %q", generated["recipient"])
	}
	info, err := os.Stat(identityPath)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("identity mode = %o, want 600", mode)
	}
	if _, err := w.run(t, "keygen", "--output", identityPath); err == nil {
		t.Error("keygen overwrote an existing identity")
	}

	sealedWorkspace := newWorkspace(t, fmt.Sprintf("  age_recipient: %s\n  age_identity_file: %s", generated["recipient"], identityPath))
	sealedWorkspace.mustRun(t, "login")
	data, err := os.ReadFile(filepath.Join(sealedWorkspace.directory, "credential"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(testutil.AccountCredential)) {
		t.Error("credential file holds the account credential in the clear")
	}
	sealedWorkspace.mustRun(t, "profile")
	if got := len(sealedWorkspace.upstream.RequestsTo("/auth")); got != 2 {
		t.Errorf("auth requests = %d, want 2 (sealed credential reused)", got)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t, "")
	w.mustRun(t, "login")
	w.mustRun(t, "logout")
	if _, err := os.Stat(filepath.Join(w.directory, "credential")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("credential file still present: %v", err)
	}
	w.mustRun(t, "profile")
	if got := len(w.upstream.RequestsTo("/auth")); got != 4 {
		t.Errorf("auth requests = %d, want 4 (signed in again after logout)", got)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(context.Background(), []string{"version"}, &app{out: &out, errOut: io.Discard}); err != nil {
		t.Fatalf("version: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("decoding %s: %v", out.String(), err)
	}
	if info["version"] == "" || info["go"] == "" {
		t.Errorf("version output = %v", info)
	}
}
