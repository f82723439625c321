// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the binary request and response messages of the
// vendor storefront protocol and the envelope codec that frames them.
//
// The vendor schema is proto2. Only the subset of messages and fields
// this module reads or writes is declared here, as hand-written structs
// carrying protobuf struct tags; github.com/golang/protobuf derives the
// message descriptors from the tags at first use, so no protoc step is
// needed. Fields absent from these declarations are skipped on decode.
// Field numbers follow the vendor schema and must not be renumbered.
//
// Three framings exist:
//
//   - Device checkin (/checkin) sends an [AndroidCheckinRequest] and
//     receives a bare [AndroidCheckinResponse]. See [DecodeCheckin].
//   - Every storefront endpoint (/fdfe/...) responds with a
//     [ResponseWrapper] whose [Payload] holds exactly the sub-response
//     for the invoked operation. See [Decode].
//   - The user profile endpoint (/fdfe/api/userProfile) responds with
//     an [APIResponseWrapper] numbered differently. See [DecodeAPI].
//
// Requests are serialized with [Encode]. The codec holds no state.
//
// [JSON] and [JSONList] render decoded messages in the canonical
// protobuf JSON mapping, with the vendor's camelCase field names, for
// the HTTP API and the command line.
package wire
