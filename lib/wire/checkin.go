// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "github.com/golang/protobuf/proto"

// AndroidBuildProto describes the emulated build: fingerprint, radio,
// bootloader and the vendor-services version.
type AndroidBuildProto struct {
	Id             *string `protobuf:"bytes,1,opt,name=id" json:"id,omitempty"`
	Product        *string `protobuf:"bytes,2,opt,name=product" json:"product,omitempty"`
	Carrier        *string `protobuf:"bytes,3,opt,name=carrier" json:"carrier,omitempty"`
	Radio          *string `protobuf:"bytes,4,opt,name=radio" json:"radio,omitempty"`
	Bootloader     *string `protobuf:"bytes,5,opt,name=bootloader" json:"bootloader,omitempty"`
	Client         *string `protobuf:"bytes,6,opt,name=client" json:"client,omitempty"`
	Timestamp      *int64  `protobuf:"varint,7,opt,name=timestamp" json:"timestamp,omitempty"`
	GoogleServices *int32  `protobuf:"varint,8,opt,name=googleServices" json:"googleServices,omitempty"`
	Device         *string `protobuf:"bytes,9,opt,name=device" json:"device,omitempty"`
	SdkVersion     *int32  `protobuf:"varint,10,opt,name=sdkVersion" json:"sdkVersion,omitempty"`
	Model          *string `protobuf:"bytes,11,opt,name=model" json:"model,omitempty"`
	Manufacturer   *string `protobuf:"bytes,12,opt,name=manufacturer" json:"manufacturer,omitempty"`
	BuildProduct   *string `protobuf:"bytes,13,opt,name=buildProduct" json:"buildProduct,omitempty"`
	OtaInstalled   *bool   `protobuf:"varint,14,opt,name=otaInstalled" json:"otaInstalled,omitempty"`
}

func (m *AndroidBuildProto) Reset()         { *m = AndroidBuildProto{} }
func (m *AndroidBuildProto) String() string { return proto.CompactTextString(m) }
func (*AndroidBuildProto) ProtoMessage()    {}

func (m *AndroidBuildProto) GetId() string {
	if m != nil && m.Id != nil {
		return *m.Id
	}
	return ""
}

func (m *AndroidBuildProto) GetTimestamp() int64 {
	if m != nil && m.Timestamp != nil {
		return *m.Timestamp
	}
	return 0
}

func (m *AndroidBuildProto) GetOtaInstalled() bool {
	if m != nil && m.OtaInstalled != nil {
		return *m.OtaInstalled
	}
	return false
}

// AndroidCheckinProto is the checkin body proper: build, operator and
// roaming state.
type AndroidCheckinProto struct {
	Build           *AndroidBuildProto `protobuf:"bytes,1,opt,name=build" json:"build,omitempty"`
	LastCheckinMsec *int64             `protobuf:"varint,2,opt,name=lastCheckinMsec" json:"lastCheckinMsec,omitempty"`
	CellOperator    *string            `protobuf:"bytes,6,opt,name=cellOperator" json:"cellOperator,omitempty"`
	SimOperator     *string            `protobuf:"bytes,7,opt,name=simOperator" json:"simOperator,omitempty"`
	Roaming         *string            `protobuf:"bytes,8,opt,name=roaming" json:"roaming,omitempty"`
	UserNumber      *int32             `protobuf:"varint,9,opt,name=userNumber" json:"userNumber,omitempty"`
}

func (m *AndroidCheckinProto) Reset()         { *m = AndroidCheckinProto{} }
func (m *AndroidCheckinProto) String() string { return proto.CompactTextString(m) }
func (*AndroidCheckinProto) ProtoMessage()    {}

func (m *AndroidCheckinProto) GetBuild() *AndroidBuildProto {
	if m != nil {
		return m.Build
	}
	return nil
}

func (m *AndroidCheckinProto) GetRoaming() string {
	if m != nil && m.Roaming != nil {
		return *m.Roaming
	}
	return ""
}

// DeviceConfigurationProto is the hardware and software capability
// descriptor. It is sent twice during bootstrap: inside the checkin
// request and again on its own to /fdfe/uploadDeviceConfig.
type DeviceConfigurationProto struct {
	TouchScreen            *int32   `protobuf:"varint,1,opt,name=touchScreen" json:"touchScreen,omitempty"`
	Keyboard               *int32   `protobuf:"varint,2,opt,name=keyboard" json:"keyboard,omitempty"`
	Navigation             *int32   `protobuf:"varint,3,opt,name=navigation" json:"navigation,omitempty"`
	ScreenLayout           *int32   `protobuf:"varint,4,opt,name=screenLayout" json:"screenLayout,omitempty"`
	HasHardKeyboard        *bool    `protobuf:"varint,5,opt,name=hasHardKeyboard" json:"hasHardKeyboard,omitempty"`
	HasFiveWayNavigation   *bool    `protobuf:"varint,6,opt,name=hasFiveWayNavigation" json:"hasFiveWayNavigation,omitempty"`
	ScreenDensity          *int32   `protobuf:"varint,7,opt,name=screenDensity" json:"screenDensity,omitempty"`
	GlEsVersion            *int32   `protobuf:"varint,8,opt,name=glEsVersion" json:"glEsVersion,omitempty"`
	SystemSharedLibrary    []string `protobuf:"bytes,9,rep,name=systemSharedLibrary" json:"systemSharedLibrary,omitempty"`
	SystemAvailableFeature []string `protobuf:"bytes,10,rep,name=systemAvailableFeature" json:"systemAvailableFeature,omitempty"`
	NativePlatform         []string `protobuf:"bytes,11,rep,name=nativePlatform" json:"nativePlatform,omitempty"`
	ScreenWidth            *int32   `protobuf:"varint,12,opt,name=screenWidth" json:"screenWidth,omitempty"`
	ScreenHeight           *int32   `protobuf:"varint,13,opt,name=screenHeight" json:"screenHeight,omitempty"`
	SystemSupportedLocale  []string `protobuf:"bytes,14,rep,name=systemSupportedLocale" json:"systemSupportedLocale,omitempty"`
	GlExtension            []string `protobuf:"bytes,15,rep,name=glExtension" json:"glExtension,omitempty"`
}

func (m *DeviceConfigurationProto) Reset()         { *m = DeviceConfigurationProto{} }
func (m *DeviceConfigurationProto) String() string { return proto.CompactTextString(m) }
func (*DeviceConfigurationProto) ProtoMessage()    {}

func (m *DeviceConfigurationProto) GetScreenDensity() int32 {
	if m != nil && m.ScreenDensity != nil {
		return *m.ScreenDensity
	}
	return 0
}

func (m *DeviceConfigurationProto) GetSystemSupportedLocale() []string {
	if m != nil {
		return m.SystemSupportedLocale
	}
	return nil
}

// AndroidCheckinRequest is the body POSTed to /checkin.
type AndroidCheckinRequest struct {
	Id                  *int64                    `protobuf:"varint,2,opt,name=id" json:"id,omitempty"`
	Checkin             *AndroidCheckinProto      `protobuf:"bytes,4,opt,name=checkin" json:"checkin,omitempty"`
	Locale              *string                   `protobuf:"bytes,6,opt,name=locale" json:"locale,omitempty"`
	TimeZone            *string                   `protobuf:"bytes,12,opt,name=timeZone" json:"timeZone,omitempty"`
	Version             *int32                    `protobuf:"varint,14,opt,name=version" json:"version,omitempty"`
	DeviceConfiguration *DeviceConfigurationProto `protobuf:"bytes,18,opt,name=deviceConfiguration" json:"deviceConfiguration,omitempty"`
	Fragment            *int32                    `protobuf:"varint,20,opt,name=fragment" json:"fragment,omitempty"`
}

func (m *AndroidCheckinRequest) Reset()         { *m = AndroidCheckinRequest{} }
func (m *AndroidCheckinRequest) String() string { return proto.CompactTextString(m) }
func (*AndroidCheckinRequest) ProtoMessage()    {}

func (m *AndroidCheckinRequest) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}
	return 0
}

func (m *AndroidCheckinRequest) GetCheckin() *AndroidCheckinProto {
	if m != nil {
		return m.Checkin
	}
	return nil
}

func (m *AndroidCheckinRequest) GetLocale() string {
	if m != nil && m.Locale != nil {
		return *m.Locale
	}
	return ""
}

func (m *AndroidCheckinRequest) GetTimeZone() string {
	if m != nil && m.TimeZone != nil {
		return *m.TimeZone
	}
	return ""
}

func (m *AndroidCheckinRequest) GetVersion() int32 {
	if m != nil && m.Version != nil {
		return *m.Version
	}
	return 0
}

func (m *AndroidCheckinRequest) GetDeviceConfiguration() *DeviceConfigurationProto {
	if m != nil {
		return m.DeviceConfiguration
	}
	return nil
}

func (m *AndroidCheckinRequest) GetFragment() int32 {
	if m != nil && m.Fragment != nil {
		return *m.Fragment
	}
	return 0
}

// AndroidCheckinResponse carries the server-assigned device identity.
// AndroidId is zero or absent when the server refused the checkin.
type AndroidCheckinResponse struct {
	StatsOk                       *bool   `protobuf:"varint,1,opt,name=statsOk" json:"statsOk,omitempty"`
	TimeMsec                      *int64  `protobuf:"varint,3,opt,name=timeMsec" json:"timeMsec,omitempty"`
	Digest                        *string `protobuf:"bytes,4,opt,name=digest" json:"digest,omitempty"`
	MarketOk                      *bool   `protobuf:"varint,6,opt,name=marketOk" json:"marketOk,omitempty"`
	AndroidId                     *uint64 `protobuf:"fixed64,7,opt,name=androidId" json:"androidId,omitempty"`
	SecurityToken                 *uint64 `protobuf:"fixed64,8,opt,name=securityToken" json:"securityToken,omitempty"`
	DeviceCheckinConsistencyToken *string `protobuf:"bytes,12,opt,name=deviceCheckinConsistencyToken" json:"deviceCheckinConsistencyToken,omitempty"`
}

func (m *AndroidCheckinResponse) Reset()         { *m = AndroidCheckinResponse{} }
func (m *AndroidCheckinResponse) String() string { return proto.CompactTextString(m) }
func (*AndroidCheckinResponse) ProtoMessage()    {}

func (m *AndroidCheckinResponse) GetAndroidId() uint64 {
	if m != nil && m.AndroidId != nil {
		return *m.AndroidId
	}
	return 0
}

func (m *AndroidCheckinResponse) GetDeviceCheckinConsistencyToken() string {
	if m != nil && m.DeviceCheckinConsistencyToken != nil {
		return *m.DeviceCheckinConsistencyToken
	}
	return ""
}

// UploadDeviceConfigRequest is the body POSTed to
// /fdfe/uploadDeviceConfig.
type UploadDeviceConfigRequest struct {
	DeviceConfiguration *DeviceConfigurationProto `protobuf:"bytes,1,opt,name=deviceConfiguration" json:"deviceConfiguration,omitempty"`
	Manufacturer        *string                   `protobuf:"bytes,2,opt,name=manufacturer" json:"manufacturer,omitempty"`
}

func (m *UploadDeviceConfigRequest) Reset()         { *m = UploadDeviceConfigRequest{} }
func (m *UploadDeviceConfigRequest) String() string { return proto.CompactTextString(m) }
func (*UploadDeviceConfigRequest) ProtoMessage()    {}

func (m *UploadDeviceConfigRequest) GetDeviceConfiguration() *DeviceConfigurationProto {
	if m != nil {
		return m.DeviceConfiguration
	}
	return nil
}

type UploadDeviceConfigResponse struct {
	UploadDeviceConfigToken *string `protobuf:"bytes,1,opt,name=uploadDeviceConfigToken" json:"uploadDeviceConfigToken,omitempty"`
}

func (m *UploadDeviceConfigResponse) Reset()         { *m = UploadDeviceConfigResponse{} }
func (m *UploadDeviceConfigResponse) String() string { return proto.CompactTextString(m) }
func (*UploadDeviceConfigResponse) ProtoMessage()    {}

func (m *UploadDeviceConfigResponse) GetUploadDeviceConfigToken() string {
	if m != nil && m.UploadDeviceConfigToken != nil {
		return *m.UploadDeviceConfigToken
	}
	return ""
}

// TocResponse is the terms-of-service and account-status response of
// /fdfe/api/toc.
type TocResponse struct {
	TosVersionDeprecated *int32  `protobuf:"varint,2,opt,name=tosVersionDeprecated" json:"tosVersionDeprecated,omitempty"`
	TosContent           *string `protobuf:"bytes,3,opt,name=tosContent" json:"tosContent,omitempty"`
	HomeUrl              *string `protobuf:"bytes,4,opt,name=homeUrl" json:"homeUrl,omitempty"`
	TosToken             *string `protobuf:"bytes,7,opt,name=tosToken" json:"tosToken,omitempty"`
	RequiresUploadConfig *bool   `protobuf:"varint,11,opt,name=requiresUploadDeviceConfig" json:"requiresUploadDeviceConfig,omitempty"`
	Cookie               *string `protobuf:"bytes,22,opt,name=cookie" json:"cookie,omitempty"`
}

func (m *TocResponse) Reset()         { *m = TocResponse{} }
func (m *TocResponse) String() string { return proto.CompactTextString(m) }
func (*TocResponse) ProtoMessage()    {}

func (m *TocResponse) GetTosContent() string {
	if m != nil && m.TosContent != nil {
		return *m.TosContent
	}
	return ""
}

func (m *TocResponse) GetTosToken() string {
	if m != nil && m.TosToken != nil {
		return *m.TosToken
	}
	return ""
}

func (m *TocResponse) GetCookie() string {
	if m != nil && m.Cookie != nil {
		return *m.Cookie
	}
	return ""
}

// UserProfile is the signed-in account's public profile.
type UserProfile struct {
	PersonIdString *string  `protobuf:"bytes,1,opt,name=personIdString" json:"personIdString,omitempty"`
	PersonId       *string  `protobuf:"bytes,2,opt,name=personId" json:"personId,omitempty"`
	Name           *string  `protobuf:"bytes,5,opt,name=name" json:"name,omitempty"`
	Image          []*Image `protobuf:"bytes,10,rep,name=image" json:"image,omitempty"`
	GooglePlusUrl  *string  `protobuf:"bytes,19,opt,name=googlePlusUrl" json:"googlePlusUrl,omitempty"`
}

func (m *UserProfile) Reset()         { *m = UserProfile{} }
func (m *UserProfile) String() string { return proto.CompactTextString(m) }
func (*UserProfile) ProtoMessage()    {}

func (m *UserProfile) GetName() string {
	if m != nil && m.Name != nil {
		return *m.Name
	}
	return ""
}

type UserProfileResponse struct {
	UserProfile *UserProfile `protobuf:"bytes,1,opt,name=userProfile" json:"userProfile,omitempty"`
}

func (m *UserProfileResponse) Reset()         { *m = UserProfileResponse{} }
func (m *UserProfileResponse) String() string { return proto.CompactTextString(m) }
func (*UserProfileResponse) ProtoMessage()    {}

func (m *UserProfileResponse) GetUserProfile() *UserProfile {
	if m != nil {
		return m.UserProfile
	}
	return nil
}
