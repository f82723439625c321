// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"slices"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/bureau-foundation/vending/lib/wire"
)

func TestCheckinRequest(t *testing.T) {
	profile, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	request := profile.CheckinRequest("en_US", now)

	if request.GetVersion() != CheckinVersion {
		t.Errorf("version = %d, want %d", request.GetVersion(), CheckinVersion)
	}
	if request.GetId() != 0 || request.GetFragment() != 0 {
		t.Errorf("id/fragment = %d/%d, want 0/0", request.GetId(), request.GetFragment())
	}
	if request.GetLocale() != "en_US" {
		t.Errorf("locale = %q, want en_US", request.GetLocale())
	}
	if request.GetTimeZone() != "America/New_York" {
		t.Errorf("timeZone = %q, want America/New_York", request.GetTimeZone())
	}

	build := request.GetCheckin().GetBuild()
	if build.GetId() != profile.Get("build.fingerprint") {
		t.Errorf("build id = %q, want the fingerprint", build.GetId())
	}
	if build.GetTimestamp() != now.Unix() {
		t.Errorf("timestamp = %d, want %d", build.GetTimestamp(), now.Unix())
	}
	if build.GetOtaInstalled() {
		t.Error("otaInstalled should be false")
	}
	if request.GetCheckin().GetRoaming() != "mobile-notroaming" {
		t.Errorf("roaming = %q", request.GetCheckin().GetRoaming())
	}

	configuration := request.GetDeviceConfiguration()
	if configuration.GetScreenDensity() != 440 {
		t.Errorf("screenDensity = %d, want 440", configuration.GetScreenDensity())
	}
	if !slices.Contains(configuration.GetSystemSupportedLocale(), "en_US") {
		t.Error("supported locales should include en_US")
	}
}

func TestDescriptorsArePure(t *testing.T) {
	profile, err := LoadEmbedded(DefaultName)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	now := time.Unix(1767225600, 0)

	first, err := wire.Encode(profile.CheckinRequest("en_US", now))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := wire.Encode(profile.CheckinRequest("en_US", now))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Error("identical inputs produced different checkin bodies")
	}

	upload := profile.UploadConfigRequest()
	if !proto.Equal(upload.GetDeviceConfiguration(), profile.Configuration()) {
		t.Error("upload config descriptor differs from the checkin descriptor")
	}
}
