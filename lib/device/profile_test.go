// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbedded(t *testing.T) {
	profile, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded(%q): %v", DefaultName, err)
	}
	if profile.Name() != DefaultName {
		t.Errorf("Name() = %q, want %q", profile.Name(), DefaultName)
	}
	if got := profile.Get("build.device"); got != "sargo" {
		t.Errorf("build.device = %q, want %q", got, "sargo")
	}
	if got := profile.Int("build.version.sdk_int"); got != 30 {
		t.Errorf("build.version.sdk_int = %d, want 30", got)
	}
	if profile.Bool("hashardkeyboard") {
		t.Error("hashardkeyboard = true, want false")
	}
	platforms := profile.List("platforms")
	if !slices.Equal(platforms, []string{"arm64-v8a", "armeabi-v7a", "armeabi"}) {
		t.Errorf("platforms = %v", platforms)
	}
}

func TestLoadEmbeddedUnknownName(t *testing.T) {
	_, err := LoadEmbedded("no_such_phone")
	if err == nil {
		t.Fatal("expected error for unknown profile name")
	}
	if !strings.Contains(err.Error(), DefaultName) {
		t.Errorf("error %q should list the available profiles", err)
	}
}

// requiredProperties returns the embedded profile's required
// properties with overrides applied.
func requiredProperties(t *testing.T, overrides map[string]string) map[string]string {
	t.Helper()
	embedded, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	properties := map[string]string{}
	for _, required := range requiredKeys {
		properties[required.key] = embedded.Get(required.key)
	}
	maps.Copy(properties, overrides)
	return properties
}

func TestLoadFile(t *testing.T) {
	properties := requiredProperties(t, map[string]string{"simoperator": "None"})
	data, err := yaml.Marshal(map[string]map[string]string{"tablet": properties})
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing profiles: %v", err)
	}

	profile, err := Load(path, "tablet")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := profile.SimOperator(); ok {
		t.Error("SimOperator should be absent when the profile says None")
	}
	if got := profile.TimeZone(); got != DefaultTimeZone {
		t.Errorf("TimeZone() = %q, want %q", got, DefaultTimeZone)
	}
	if got := profile.GetDefault("vending.versionstring", DefaultVersionString); got != DefaultVersionString {
		t.Errorf("versionstring = %q, want default", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), DefaultName); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	_, err := New("broken", map[string]string{
		"build.version.sdk_int": "thirty",
		"hashardkeyboard":       "maybe",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	message := err.Error()
	for _, want := range []string{
		"build.fingerprint is required",
		"gl.extensions is required",
		"build.version.sdk_int: not an integer",
		"hashardkeyboard: not a boolean",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("error missing %q:\n%s", want, message)
		}
	}
}

func TestNewCopiesProperties(t *testing.T) {
	embedded, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	properties := map[string]string{}
	for _, required := range requiredKeys {
		properties[required.key] = embedded.Get(required.key)
	}

	profile, err := New("copy", properties)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	properties["build.device"] = "mutated"
	if got := profile.Get("build.device"); got != "sargo" {
		t.Errorf("profile changed after caller mutated its map: build.device = %q", got)
	}
}

func TestBoolSpellings(t *testing.T) {
	for _, test := range []struct {
		value string
		want  bool
	}{
		{"true", true}, {"Yes", true}, {"on", true}, {"1", true},
		{"false", false}, {"NO", false}, {"off", false}, {"0", false},
	} {
		got, err := parseBool(test.value)
		if err != nil {
			t.Errorf("parseBool(%q): %v", test.value, err)
			continue
		}
		if got != test.want {
			t.Errorf("parseBool(%q) = %v, want %v", test.value, got, test.want)
		}
	}
}

func TestSimOperator(t *testing.T) {
	profile := &Profile{name: "t", properties: map[string]string{"simoperator": "310260"}}
	if code, ok := profile.SimOperator(); !ok || code != "310260" {
		t.Errorf("SimOperator() = %q, %v; want 310260, true", code, ok)
	}
	empty := &Profile{name: "t", properties: map[string]string{}}
	if _, ok := empty.SimOperator(); ok {
		t.Error("SimOperator should be absent when unset")
	}
}

func TestWith(t *testing.T) {
	embedded, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	derived, err := embedded.With(map[string]string{"simoperator": "None", "timezone": ""})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if _, ok := derived.SimOperator(); ok {
		t.Error("derived profile still has a SIM operator")
	}
	if got := derived.TimeZone(); got != DefaultTimeZone {
		t.Errorf("TimeZone = %q, want %q after removing the key", got, DefaultTimeZone)
	}
	if got := embedded.TimeZone(); got != "America/New_York" {
		t.Errorf("original TimeZone = %q; With modified its receiver", got)
	}

	if _, err := embedded.With(map[string]string{"screen.density": "dense"}); err == nil {
		t.Error("With accepted an invalid override")
	}
	if _, err := embedded.With(map[string]string{"build.device": ""}); err == nil {
		t.Error("With accepted removal of a required key")
	}
}

func TestLoadJSONWithComments(t *testing.T) {
	properties := requiredProperties(t, nil)
	delete(properties, "simoperator")
	delete(properties, "screen.width")

	var builder strings.Builder
	builder.WriteString("{\n  // lab handset\n  \"lab\": {\n")
	for _, key := range slices.Sorted(maps.Keys(properties)) {
		quoted, err := json.Marshal(properties[key])
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		builder.WriteString("    \"" + key + "\": " + string(quoted) + ",\n")
	}
	builder.WriteString("    \"screen.width\": 1080,\n")
	builder.WriteString("    /* no SIM */ \"simoperator\": \"None\",\n  },\n}\n")

	path := filepath.Join(t.TempDir(), "profiles.jsonc")
	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		t.Fatalf("writing profiles: %v", err)
	}
	profile, err := Load(path, "lab")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := profile.Get("build.device"), properties["build.device"]; got != want {
		t.Errorf("build.device = %q, want %q", got, want)
	}
	if got := profile.Get("screen.width"); got != "1080" {
		t.Errorf("screen.width = %q, want 1080", got)
	}
	if _, ok := profile.SimOperator(); ok {
		t.Error("SimOperator should be absent when the profile says None")
	}
}

func TestLoadParseErrorNamesFormat(t *testing.T) {
	directory := t.TempDir()
	for name, want := range map[string]string{
		"profiles.jsonc": "parsing JSON",
		"profiles.json":  "parsing JSON",
		"profiles.yaml":  "parsing YAML",
	} {
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, []byte("{ lab: [\n"), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		_, err := Load(path, "lab")
		if err == nil {
			t.Errorf("Load(%s) accepted a truncated file", name)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load(%s) error = %q, want it to mention %q", name, err, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	embedded, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	fingerprint := embedded.Fingerprint()
	if len(fingerprint) != 32 {
		t.Errorf("Fingerprint() = %q, want 32 hex digits", fingerprint)
	}
	if again := embedded.Fingerprint(); again != fingerprint {
		t.Errorf("Fingerprint() changed between calls: %q then %q", fingerprint, again)
	}

	renamed, err := New("copy", embedded.Properties())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if renamed.Fingerprint() != fingerprint {
		t.Error("Fingerprint depends on the profile name")
	}

	changed, err := embedded.With(map[string]string{"timezone": "Asia/Tokyo"})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if changed.Fingerprint() == fingerprint {
		t.Error("Fingerprint unchanged after changing a property")
	}
}
