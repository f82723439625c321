// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/wire"
)

// DeliveryOptions controls a delivery request.
type DeliveryOptions struct {
	// OfferType selects the offer. Zero means DefaultOfferType.
	OfferType int32

	// DownloadToken is the token from a purchase. Optional; the store
	// grants delivery of an already acquired application without one.
	DownloadToken string
}

func offerParam(offerType int32) string {
	if offerType == 0 {
		offerType = DefaultOfferType
	}
	return strconv.FormatInt(int64(offerType), 10)
}

// Delivery asks for a delivery grant for version versionCode of pkg. It
// fails with session.ErrEmptyPayload when the store grants nothing,
// which for a free application means it has not been acquired yet.
func (client *Client) Delivery(ctx context.Context, pkg string, versionCode int32, options DeliveryOptions) (*wire.AndroidAppDeliveryData, error) {
	params := url.Values{
		"ot":  {offerParam(options.OfferType)},
		"doc": {pkg},
		"vc":  {strconv.FormatInt(int64(versionCode), 10)},
	}
	if options.DownloadToken != "" {
		params.Set("dtok", options.DownloadToken)
	}

	payload, err := client.caller.Call(ctx, session.Request{Endpoint: deliveryEndpoint, Params: params})
	if err != nil {
		return nil, fmt.Errorf("delivery of %s@%d: %w", pkg, versionCode, err)
	}
	grant := payload.GetDeliveryResponse().GetAppDeliveryData()
	if grant == nil {
		return nil, fmt.Errorf("delivery of %s@%d: %w", pkg, versionCode, session.Empty("deliveryResponse.appDeliveryData"))
	}
	return grant, nil
}

// Purchase acquires version versionCode of pkg and returns the download
// token authorizing its delivery. Only free offers complete without
// further interaction.
func (client *Client) Purchase(ctx context.Context, pkg string, versionCode int32, offerType int32) (string, error) {
	payload, err := client.caller.Call(ctx, session.Request{
		Endpoint: purchaseEndpoint,
		Params: url.Values{
			"ot":  {offerParam(offerType)},
			"doc": {pkg},
			"vc":  {strconv.FormatInt(int64(versionCode), 10)},
		},
		Method: http.MethodPost,
	})
	if err != nil {
		return "", fmt.Errorf("purchase of %s@%d: %w", pkg, versionCode, err)
	}
	token := payload.GetBuyResponse().GetDownloadToken()
	if token == "" {
		return "", fmt.Errorf("purchase of %s@%d: %w", pkg, versionCode, session.Empty("buyResponse.downloadToken"))
	}
	return token, nil
}

// Download returns a delivery grant for the current version of pkg,
// purchasing the application first when the store has none to give.
func (client *Client) Download(ctx context.Context, pkg string) (*wire.AndroidAppDeliveryData, error) {
	document, err := client.Details(ctx, pkg)
	if err != nil {
		return nil, err
	}
	versionCode := document.GetDetails().GetAppDetails().GetVersionCode()
	if versionCode == 0 {
		return nil, fmt.Errorf("download of %s: %w", pkg, session.Empty("docV2.details.appDetails.versionCode"))
	}

	grant, err := client.Delivery(ctx, pkg, versionCode, DeliveryOptions{})
	if err == nil {
		return grant, nil
	}
	if !errors.Is(err, session.ErrEmptyPayload) {
		return nil, err
	}

	client.logger.Info("no delivery grant; acquiring application",
		"package", pkg,
		"version_code", versionCode,
	)
	token, err := client.Purchase(ctx, pkg, versionCode, DefaultOfferType)
	if err != nil {
		return nil, err
	}
	return client.Delivery(ctx, pkg, versionCode, DeliveryOptions{DownloadToken: token})
}
