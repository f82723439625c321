// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"testing"

	"github.com/golang/protobuf/proto"
)

func TestJSONUsesSchemaNames(t *testing.T) {
	t.Parallel()

	document := &DocV2{
		Docid:   proto.String("org.example.app"),
		DocType: proto.Int32(DocTypeApp),
		Details: &DocumentDetails{AppDetails: &AppDetails{
			VersionCode:      proto.Int32(42),
			InstallationSize: proto.Int64(1048576),
		}},
	}
	data, err := JSON(document)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded struct {
		Docid   string `json:"docid"`
		DocType int    `json:"docType"`
		Details struct {
			AppDetails struct {
				VersionCode      int    `json:"versionCode"`
				InstallationSize string `json:"installationSize"`
			} `json:"appDetails"`
		} `json:"details"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	if decoded.Docid != "org.example.app" || decoded.DocType != 1 {
		t.Errorf("decoded = %+v from %s", decoded, data)
	}
	if decoded.Details.AppDetails.VersionCode != 42 {
		t.Errorf("versionCode = %d, want 42", decoded.Details.AppDetails.VersionCode)
	}
	if decoded.Details.AppDetails.InstallationSize != "1048576" {
		t.Errorf("installationSize = %q, want the 64-bit value as a string", decoded.Details.AppDetails.InstallationSize)
	}
}

func TestJSONList(t *testing.T) {
	t.Parallel()

	data, err := JSONList([]*Review{
		{AuthorName: proto.String("A"), StarRating: proto.Int32(5)},
		{AuthorName: proto.String("B")},
	})
	if err != nil {
		t.Fatalf("JSONList: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
	if len(decoded) != 2 || decoded[0]["authorName"] != "A" || decoded[1]["authorName"] != "B" {
		t.Errorf("decoded = %v", decoded)
	}

	empty, err := JSONList([]*Review(nil))
	if err != nil {
		t.Fatalf("JSONList(nil): %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("JSONList(nil) = %s, want []", empty)
	}
}
