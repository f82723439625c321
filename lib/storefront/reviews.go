// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/wire"
)

// reviewSortHelpful orders reviews by helpfulness.
const reviewSortHelpful = "2"

// Reviews returns user reviews of pkg, most helpful first. A positive
// count limits the number requested; zero leaves the page size to the
// store. No reviews is an empty slice, not an error.
func (client *Client) Reviews(ctx context.Context, pkg string, count int) ([]*wire.Review, error) {
	params := url.Values{"doc": {pkg}, "sort": {reviewSortHelpful}}
	if count > 0 {
		params.Set("n", strconv.Itoa(count))
	}

	payload, err := client.caller.Call(ctx, session.Request{Endpoint: reviewsEndpoint, Params: params})
	if err != nil {
		return nil, fmt.Errorf("reviews of %s: %w", pkg, err)
	}
	// A document nobody has reviewed answers without a reviewResponse.
	reviews := payload.GetReviewResponse().GetGetResponse().GetReview()
	if reviews == nil {
		reviews = []*wire.Review{}
	}
	return reviews, nil
}
