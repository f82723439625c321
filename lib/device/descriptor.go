// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package device

import (
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/bureau-foundation/vending/lib/wire"
)

// CheckinVersion is the checkin protocol version this client speaks.
const CheckinVersion = 3

// BuildDescriptor returns the build section of a checkin request,
// stamped with now.
func (profile *Profile) BuildDescriptor(now time.Time) *wire.AndroidBuildProto {
	return &wire.AndroidBuildProto{
		Id:             proto.String(profile.Get("build.fingerprint")),
		Product:        proto.String(profile.Get("build.hardware")),
		Carrier:        proto.String(profile.Get("build.brand")),
		Radio:          proto.String(profile.Get("build.radio")),
		Bootloader:     proto.String(profile.Get("build.bootloader")),
		Client:         proto.String(profile.Get("client")),
		Timestamp:      proto.Int64(now.Unix()),
		GoogleServices: proto.Int32(profile.Int("gsf.version")),
		Device:         proto.String(profile.Get("build.device")),
		SdkVersion:     proto.Int32(profile.Int("build.version.sdk_int")),
		Model:          proto.String(profile.Get("build.model")),
		Manufacturer:   proto.String(profile.Get("build.manufacturer")),
		BuildProduct:   proto.String(profile.Get("build.product")),
		OtaInstalled:   proto.Bool(false),
	}
}

// Configuration returns the hardware and software capability
// descriptor. The same descriptor is sent at checkin and again at
// configuration upload.
func (profile *Profile) Configuration() *wire.DeviceConfigurationProto {
	return &wire.DeviceConfigurationProto{
		TouchScreen:            proto.Int32(profile.Int("touchscreen")),
		Keyboard:               proto.Int32(profile.Int("keyboard")),
		Navigation:             proto.Int32(profile.Int("navigation")),
		ScreenLayout:           proto.Int32(profile.Int("screenlayout")),
		HasHardKeyboard:        proto.Bool(profile.Bool("hashardkeyboard")),
		HasFiveWayNavigation:   proto.Bool(profile.Bool("hasfivewaynavigation")),
		ScreenDensity:          proto.Int32(profile.Int("screen.density")),
		GlEsVersion:            proto.Int32(profile.Int("gl.version")),
		SystemSharedLibrary:    profile.List("sharedlibraries"),
		SystemAvailableFeature: profile.List("features"),
		NativePlatform:         profile.List("platforms"),
		ScreenWidth:            proto.Int32(profile.Int("screen.width")),
		ScreenHeight:           proto.Int32(profile.Int("screen.height")),
		SystemSupportedLocale:  profile.List("locales"),
		GlExtension:            profile.List("gl.extensions"),
	}
}

// CheckinRequest assembles the body of a first-time device checkin:
// request id 0, no previous checkin, user 0.
func (profile *Profile) CheckinRequest(locale string, now time.Time) *wire.AndroidCheckinRequest {
	return &wire.AndroidCheckinRequest{
		Id: proto.Int64(0),
		Checkin: &wire.AndroidCheckinProto{
			Build:           profile.BuildDescriptor(now),
			LastCheckinMsec: proto.Int64(0),
			CellOperator:    proto.String(profile.Get("celloperator")),
			SimOperator:     proto.String(profile.Get("simoperator")),
			Roaming:         proto.String(profile.Get("roaming")),
			UserNumber:      proto.Int32(0),
		},
		Locale:              proto.String(locale),
		TimeZone:            proto.String(profile.TimeZone()),
		Version:             proto.Int32(CheckinVersion),
		DeviceConfiguration: profile.Configuration(),
		Fragment:            proto.Int32(0),
	}
}

// UploadConfigRequest returns the body of /fdfe/uploadDeviceConfig.
func (profile *Profile) UploadConfigRequest() *wire.UploadDeviceConfigRequest {
	return &wire.UploadDeviceConfigRequest{
		DeviceConfiguration: profile.Configuration(),
	}
}
