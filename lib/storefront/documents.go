// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/wire"
)

// searchCorpus restricts search to applications.
const searchCorpus = "3"

// Details returns the catalog document for the package name pkg.
func (client *Client) Details(ctx context.Context, pkg string) (*wire.DocV2, error) {
	payload, err := client.caller.Call(ctx, session.Request{
		Endpoint: detailsEndpoint,
		Params:   url.Values{"doc": {pkg}},
	})
	if err != nil {
		return nil, fmt.Errorf("details of %s: %w", pkg, err)
	}
	document := payload.GetDetailsResponse().GetDocV2()
	if document == nil {
		return nil, fmt.Errorf("details of %s: %w", pkg, session.Empty("detailsResponse.docV2"))
	}
	return document, nil
}

// Search returns the applications matching query.
//
// The store answers with a list of top-level documents whose children
// mix clusters with other shelves. Only cluster children are walked,
// and of their children only applications are kept. Source order is
// preserved.
func (client *Client) Search(ctx context.Context, query string) ([]*wire.DocV2, error) {
	payload, err := client.caller.Call(ctx, session.Request{
		Endpoint: searchEndpoint,
		Params:   url.Values{"q": {query}, "c": {searchCorpus}},
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	list := payload.GetListResponse()
	if list == nil {
		return nil, fmt.Errorf("searching %q: %w", query, session.Empty("listResponse"))
	}
	return applications(list), nil
}

func applications(list *wire.ListResponse) []*wire.DocV2 {
	results := []*wire.DocV2{}
	for _, top := range list.GetDoc() {
		for _, cluster := range top.GetChild() {
			if cluster.GetDocType() != wire.DocTypeCluster {
				continue
			}
			for _, item := range cluster.GetChild() {
				if item.GetDocType() == wire.DocTypeApp {
					results = append(results, item)
				}
			}
		}
	}
	return results
}
