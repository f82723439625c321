// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/vending/lib/netutil"
	"github.com/bureau-foundation/vending/lib/wire"
)

const (
	contentTypeProtobuf = "application/x-protobuffer"
	contentTypeForm     = "application/x-www-form-urlencoded"
)

// roundTrip sends one request and returns the decoded body of a 2xx
// response. header is used as given; the caller builds it fresh.
func (session *Session) roundTrip(ctx context.Context, method, endpoint string, query url.Values, header http.Header, body []byte) ([]byte, error) {
	target := session.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", endpoint, err)
	}
	request.Header = header
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := session.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer response.Body.Close()

	data, err := netutil.ReadBody(response)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", ErrTransport, endpoint, err)
	}

	session.logger.Debug("vendor response",
		"method", method,
		"endpoint", endpoint,
		"status", response.StatusCode,
		"bytes", len(data),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: response.StatusCode,
			Message:    statusMessage(data),
		}
	}
	return data, nil
}

// postForm sends a form-encoded POST.
func (session *Session) postForm(ctx context.Context, endpoint string, header http.Header, form url.Values) ([]byte, error) {
	header.Set("Content-Type", contentTypeForm)
	return session.roundTrip(ctx, http.MethodPost, endpoint, nil, header, []byte(form.Encode()))
}

// statusMessage extracts the server's explanation from an error body.
// Storefront endpoints put it in the envelope's server commands; the
// auth endpoint answers with key=value lines including Error.
func statusMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if wrapper, err := wire.DecodeWrapper(data); err == nil {
		if message := wrapper.GetCommands().GetDisplayErrorMessage(); message != "" {
			return message
		}
	}
	if value := parseKeyValues(data)["Error"]; value != "" {
		return value
	}
	return ""
}

// parseKeyValues parses the key=value line format of the auth
// endpoint. Lines without '=' are ignored; values may contain '='.
func parseKeyValues(data []byte) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(strings.TrimRight(line, "\r"), "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}
