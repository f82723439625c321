// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var embeddedProfiles []byte

// DefaultName is the embedded profile used when configuration names
// none.
const DefaultName = "px_3a"

// DefaultTimeZone is sent during checkin when the profile has no
// timezone key.
const DefaultTimeZone = "Europe/Stockholm"

// DefaultVersionString is the storefront client version reported when
// the profile has no vending.versionstring key.
const DefaultVersionString = "8.4.19.V-all [0] [FP] 175058788"

type kind int

const (
	kindText kind = iota
	kindInt
	kindBool
	kindList
)

// requiredKeys lists every property the descriptor builders and the
// header builder read unconditionally.
var requiredKeys = []struct {
	key  string
	kind kind
}{
	{"build.fingerprint", kindText},
	{"build.hardware", kindText},
	{"build.brand", kindText},
	{"build.radio", kindText},
	{"build.bootloader", kindText},
	{"build.device", kindText},
	{"build.model", kindText},
	{"build.manufacturer", kindText},
	{"build.product", kindText},
	{"build.id", kindText},
	{"build.version.sdk_int", kindInt},
	{"build.version.release", kindText},
	{"client", kindText},
	{"gsf.version", kindInt},
	{"vending.version", kindText},
	{"celloperator", kindText},
	{"simoperator", kindText},
	{"roaming", kindText},
	{"touchscreen", kindInt},
	{"keyboard", kindInt},
	{"navigation", kindInt},
	{"screenlayout", kindInt},
	{"hashardkeyboard", kindBool},
	{"hasfivewaynavigation", kindBool},
	{"screen.density", kindInt},
	{"screen.width", kindInt},
	{"screen.height", kindInt},
	{"gl.version", kindInt},
	{"platforms", kindList},
	{"sharedlibraries", kindList},
	{"features", kindList},
	{"locales", kindList},
	{"gl.extensions", kindList},
}

// Profile is an immutable named set of device properties.
type Profile struct {
	name       string
	properties map[string]string
}

// New returns a validated profile holding a copy of properties.
func New(name string, properties map[string]string) (*Profile, error) {
	profile := &Profile{name: name, properties: maps.Clone(properties)}
	if profile.properties == nil {
		profile.properties = map[string]string{}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Load reads the profile set at path and returns the named profile.
// Files ending in .json or .jsonc are JSON, optionally with comments and
// trailing commas; anything else is YAML.
func Load(path, name string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading device profiles: %w", err)
	}
	var set map[string]map[string]string
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		set, err = parseJSON(jsonc.ToJSON(data))
		if err != nil {
			return nil, fmt.Errorf("device profiles %s: parsing JSON: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("device profiles %s: parsing YAML: %w", path, err)
		}
	}
	profile, err := selectProfile(set, name)
	if err != nil {
		return nil, fmt.Errorf("device profiles %s: %w", path, err)
	}
	return profile, nil
}

// LoadEmbedded returns the named profile from the compiled-in set.
func LoadEmbedded(name string) (*Profile, error) {
	var set map[string]map[string]string
	if err := yaml.Unmarshal(embeddedProfiles, &set); err != nil {
		return nil, fmt.Errorf("embedded device profiles: parsing YAML: %w", err)
	}
	profile, err := selectProfile(set, name)
	if err != nil {
		return nil, fmt.Errorf("embedded device profiles: %w", err)
	}
	return profile, nil
}

// parseJSON decodes a JSON profile set. Numbers and booleans are
// accepted as values and kept in their JSON spelling, as YAML scalars
// are.
func parseJSON(data []byte) (map[string]map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw map[string]map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	set := make(map[string]map[string]string, len(raw))
	for name, values := range raw {
		properties := make(map[string]string, len(values))
		for key, value := range values {
			switch value := value.(type) {
			case string:
				properties[key] = value
			case json.Number:
				properties[key] = value.String()
			case bool:
				properties[key] = strconv.FormatBool(value)
			default:
				return nil, fmt.Errorf("profile %q: %s must be a string, number or boolean", name, key)
			}
		}
		set[name] = properties
	}
	return set, nil
}

func selectProfile(set map[string]map[string]string, name string) (*Profile, error) {
	properties, ok := set[name]
	if !ok {
		return nil, fmt.Errorf("no profile named %q (have %s)", name, strings.Join(slices.Sorted(maps.Keys(set)), ", "))
	}
	return New(name, properties)
}

// Validate reports every required key that is missing or does not
// parse as its expected type.
func (profile *Profile) Validate() error {
	var errs []error
	for _, required := range requiredKeys {
		value, ok := profile.properties[required.key]
		if !ok {
			errs = append(errs, fmt.Errorf("%s is required", required.key))
			continue
		}
		switch required.kind {
		case kindInt:
			if _, err := parseInt(value); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", required.key, err))
			}
		case kindBool:
			if _, err := parseBool(value); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", required.key, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("profile %q: %w", profile.name, errors.Join(errs...))
	}
	return nil
}

// Name returns the profile name.
func (profile *Profile) Name() string { return profile.name }

// Properties returns a copy of every property.
func (profile *Profile) Properties() map[string]string { return maps.Clone(profile.properties) }

// With returns a validated copy of the profile with overrides applied.
// An override with an empty value removes the key.
func (profile *Profile) With(overrides map[string]string) (*Profile, error) {
	properties := maps.Clone(profile.properties)
	for key, value := range overrides {
		if value == "" {
			delete(properties, key)
			continue
		}
		properties[key] = value
	}
	return New(profile.name, properties)
}

// Get returns the value of key, or "" when unset.
func (profile *Profile) Get(key string) string { return profile.properties[key] }

// GetDefault returns the value of key, or fallback when unset.
func (profile *Profile) GetDefault(key, fallback string) string {
	if value, ok := profile.properties[key]; ok {
		return value
	}
	return fallback
}

// Int returns key parsed as an integer, or 0 when unset or invalid.
func (profile *Profile) Int(key string) int32 {
	value, _ := parseInt(profile.properties[key])
	return value
}

// Bool returns key parsed as a boolean. Accepted spellings are
// 1/yes/true/on and 0/no/false/off in any case.
func (profile *Profile) Bool(key string) bool {
	value, _ := parseBool(profile.properties[key])
	return value
}

// List returns key split on commas. An unset or empty value yields nil.
func (profile *Profile) List(key string) []string {
	value := profile.properties[key]
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// SimOperator returns the SIM operator code (MCC+MNC) and whether the
// profile declares one. The literal "None" means no SIM.
func (profile *Profile) SimOperator() (string, bool) {
	value := strings.TrimSpace(profile.properties["simoperator"])
	if value == "" || value == "None" {
		return "", false
	}
	return value, true
}

// TimeZone returns the profile's timezone or DefaultTimeZone.
func (profile *Profile) TimeZone() string {
	return profile.GetDefault("timezone", DefaultTimeZone)
}

func parseInt(value string) (int32, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	return int32(parsed), nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", value)
}
