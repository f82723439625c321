// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/wire"
)

// Storefront endpoints, relative to the session base URL.
const (
	detailsEndpoint  = "/fdfe/details"
	searchEndpoint   = "/fdfe/searchList"
	deliveryEndpoint = "/fdfe/delivery"
	purchaseEndpoint = "/fdfe/purchase"
	reviewsEndpoint  = "/fdfe/rev"
)

// DefaultOfferType is the offer type of a free application.
const DefaultOfferType int32 = 1

// Caller sends one authenticated storefront request. *session.Session
// implements it.
type Caller interface {
	Call(ctx context.Context, request session.Request) (*wire.Payload, error)
}

// Client issues storefront operations over a Caller. It adds no
// synchronization; it is as safe for concurrent use as its Caller.
type Client struct {
	caller Caller
	logger *slog.Logger
}

// New returns a Client that sends requests through caller. A nil
// logger means slog.Default().
func New(caller Caller, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{caller: caller, logger: logger}
}
