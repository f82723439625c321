// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package storefront implements the catalog operations of the vendor
// storefront: document details, search, delivery grants, free
// purchases, and reviews.
//
// Every operation is one authenticated request through a [Caller],
// normally a Ready [session.Session]. The package owns the endpoint
// paths, query parameters and response unwrapping; headers, framing
// and transport belong to the session. An operation whose expected
// sub-response is absent fails with [session.ErrEmptyPayload].
//
// [Client.Download] composes the others into the flow a user needs to
// fetch an application: look up the current version, ask for a
// delivery grant, and acquire the application first when the store
// has not granted one yet.
package storefront
