// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR configuration shared by every file this
// module writes.
//
// Encoding is Core Deterministic (RFC 8949 §4.2): sorted map keys and
// shortest integer forms, so equal values always produce equal bytes.
// Times are RFC 3339 text with nanoseconds. Decoding ignores unknown
// fields, so files written by a newer release stay readable.
//
// Types persisted through this package use `cbor` struct tags.
package codec

import (
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	options := cbor.CoreDetEncOptions()
	options.Time = cbor.TimeRFC3339Nano

	var err error
	encMode, err = options.EncMode()
	if err != nil {
		panic("codec: building CBOR encoder: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: building CBOR decoder: " + err.Error())
	}
}

// Marshal encodes value.
func Marshal(value any) ([]byte, error) {
	return encMode.Marshal(value)
}

// Unmarshal decodes data into value. Data with trailing bytes or a
// duplicated map key is rejected.
func Unmarshal(data []byte, value any) error {
	return decMode.Unmarshal(data, value)
}
