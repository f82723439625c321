// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"net/http"
	"strings"

	"github.com/bureau-foundation/vending/lib/device"
)

// Vendor protocol constants sent on every request.
const (
	servicesPackage = "com.google.android.gms"
	storePackage    = "com.android.vending"
	callerSignature = "38918a453d07199354f8b19af05ec6562ced5788"

	encodedTargets = "CAESN/qigQYC2AMBFfUbyA7SM5Ij/CvfBoIDgxHqGP8R3xzIBvoQtBKFDZ4HAY4FrwSVMasHBO0O2Q8akgYRAQECAQO7AQEpKZ0CnwECAwRrAQYBr9PPAoK7sQMBAQMCBAkIDAgBAwEDBAICBAUZEgMEBAMLAQEBBQEBAcYBARYED+cBfS8CHQEKkAEMMxcBIQoUDwYHIjd3DQ4MFk0JWGYZEREYAQOLAYEBFDMIEYMBAgICAgICOxkCD18LGQKEAcgDBIQBAgGLARkYCy8oBTJlBCUocxQn0QUBDkkGxgNZQq0BZSbeAmIDgAEBOgGtAaMCDAOQAZ4BBIEBKUtQUYYBQscDDxPSARA1oAEHAWmnAsMB2wFyywGLAxol+wImlwOOA80CtwN26A0WjwJVbQEJPAH+BRDeAfkHK/ABASEBCSAaHQemAzkaRiu2Ad8BdXeiAwEBGBUBBN4LEIABK4gB2AFLfwECAdoENq0CkQGMBsIBiQEtiwGgA1zyAUQ4uwS8AwhsvgPyAcEDF27vApsBHaICGhl3GSKxAR8MC6cBAgItmQYG9QIeywLvAeYBDArLAh8HASI4ELICDVmVBgsY/gHWARtcAsMBpALiAdsBA7QBpAJmIArpByn0AyAKBwHTARIHAX8D+AMBcRIBBbEDmwUBMacCHAciNp0BAQF0OgQLJDuSAh54kwFSP0eeAQQ4M5EBQgMEmwFXywFo0gFyWwMcapQBBugBPUW2AVgBKmy3AR6PAbMBGQxrUJECvQR+8gFoWDsYgQNwRSczBRXQAgtRswEW0ALMAREYAUEBIG6yATYCRE8OxgER8gMBvQEDRkwLc8MBTwHZAUOnAXiiBakDIbYBNNcCIUmuArIBSakBrgFHKs0EgwV/G3AD0wE6LgECtQJ4xQFwFbUCjQPkBS6vAQqEAUZF3QIM9wEhCoYCQhXsBCyZArQDugIziALWAdIBlQHwBdUErQE6qQaSA4EEIvYBHir9AQVLmgMCApsCKAwHuwgrENsBAjNYswEVmgIt7QJnN4wDEnta+wGfAcUBxgEtEFXQAQWdAUAeBcwBAQM7rAEJATJ0LENrdh73A6UBhAE+qwEeASxLZUMhDREuH0CGARbd7K0GlQo"
	phenotype      = "H4sIAAAAAAAAAB3OO3KjMAAA0KRNuWXukBkBQkAJ2MhgAZb5u2GCwQZbCH_EJ77QHmgvtDtbv-Z9_H63zXXU0NVPB1odlyGy7751Q3CitlPDvFd8lxhz3tpNmz7P92CFw73zdHU2Ie0Ad2kmR8lxhiErTFLt3RPGfJQHSDy7Clw10bg8kqf2owLokN4SecJTLoSwBnzQSd652_MOf2d1vKBNVedzg4ciPoLz2mQ8efGAgYeLou-l-PXn_7Sna1MfhHuySxt-4esulEDp8Sbq54CPPKjpANW-lkU2IZ0F92LBI-ukCKSptqeq1eXU96LD9nZfhKHdtjSWwJqUm_2r6pMHOxk01saVanmNopjX3YxQafC4iC6T55aRbC8nTI98AF_kItIQAJb5EQxnKTO7TZDWnr01HVPxelb9A2OWX6poidMWl16K54kcu_jhXw-JSBQkVcD_fPsLSZu6joIBAAA"
)

// fixedStorefrontHeaders are sent on every storefront request
// regardless of session state.
var fixedStorefrontHeaders = []struct{ name, value string }{
	{"Accept-Language", "en-US"},
	{"X-DFE-Encoded-Targets", encodedTargets},
	{"X-DFE-Phenotype", phenotype},
	{"X-DFE-Client-Id", "am-android-google"},
	{"X-DFE-Network-Type", "4"},
	{"X-DFE-Content-Filters", ""},
	{"X-Limit-Ad-Tracking-Enabled", "false"},
	{"X-Ad-Id", "GooglePlay"},
	{"X-DFE-UserLanguages", "en-US"},
	{"X-DFE-Request-Params", "timeoutMs=4000"},
}

// conditionalHeaders are present iff their value function reports a
// value. Each entry is backed by one session field or profile key.
var conditionalHeaders = []struct {
	name  string
	value func(State, *device.Profile) (string, bool)
}{
	{"Authorization", func(state State, _ *device.Profile) (string, bool) {
		return "Bearer " + state.AccountCredential, state.Has(FieldAccountCredential)
	}},
	{"X-DFE-Device-Id", func(state State, _ *device.Profile) (string, bool) {
		return state.DeviceID, state.Has(FieldDeviceID)
	}},
	{"X-DFE-Device-Checkin-Consistency-Token", func(state State, _ *device.Profile) (string, bool) {
		return state.CheckinConsistencyToken, state.Has(FieldCheckinConsistencyToken)
	}},
	{"X-DFE-Device-Config-Token", func(state State, _ *device.Profile) (string, bool) {
		return state.DeviceConfigToken, state.Has(FieldDeviceConfigToken)
	}},
	{"X-DFE-Cookie", func(state State, _ *device.Profile) (string, bool) {
		return state.SessionCookie, state.Has(FieldSessionCookie)
	}},
	{"X-DFE-MCCMNC", func(_ State, profile *device.Profile) (string, bool) {
		return profile.SimOperator()
	}},
}

// IdentityHeaders returns the headers for checkin and the first
// credential exchange: the services user agent, plus the device id
// once checkin has assigned one.
func IdentityHeaders(state State, profile *device.Profile) http.Header {
	header := make(http.Header)
	header.Set("app", servicesPackage)
	header.Set("User-Agent", "GoogleAuth/1.4 ("+profile.Get("build.device")+") "+profile.Get("build.id"))
	if state.Has(FieldDeviceID) {
		header.Set("device", state.DeviceID)
	}
	return header
}

// StorefrontHeaders returns the full header set for a storefront
// request made in state. It is a pure function of its arguments.
func StorefrontHeaders(state State, profile *device.Profile) http.Header {
	header := make(http.Header)
	header.Set("User-Agent", StorefrontUserAgent(profile))
	for _, fixed := range fixedStorefrontHeaders {
		header.Set(fixed.name, fixed.value)
	}
	for _, conditional := range conditionalHeaders {
		if value, ok := conditional.value(state, profile); ok {
			header.Set(conditional.name, value)
		}
	}
	return header
}

// StorefrontUserAgent returns the store client user agent for profile,
// for example:
//
//	Android-Finsky/8.4.19.V-all [0] [FP] 175058788 (api=3,versionCode=...,supportedAbis=arm64-v8a;armeabi-v7a)
func StorefrontUserAgent(profile *device.Profile) string {
	params := []string{
		"api=3",
		"versionCode=" + profile.Get("vending.version"),
		"sdk=" + profile.Get("build.version.sdk_int"),
		"device=" + profile.Get("build.device"),
		"hardware=" + profile.Get("build.hardware"),
		"product=" + profile.Get("build.product"),
		"platformVersionRelease=" + profile.Get("build.version.release"),
		"model=" + profile.Get("build.model"),
		"buildId=" + profile.Get("build.id"),
		"isWideScreen=0",
		"supportedAbis=" + strings.ReplaceAll(profile.Get("platforms"), ",", ";"),
	}
	versionString := profile.GetDefault("vending.versionstring", device.DefaultVersionString)
	return "Android-Finsky/" + versionString + " (" + strings.Join(params, ",") + ")"
}
