// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O helpers shared by the vendor client
// and the local API server.
//
// Every response body read is bounded at MaxResponseSize so a
// misbehaving upstream cannot exhaust memory. The vendor endpoints
// answer in gzip when asked; ReadBody undoes the content encoding
// before applying the bound, so the bound limits decoded bytes.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// MaxResponseSize bounds every response body read: 64 MB. Storefront
// envelopes are a few hundred kilobytes at most; APK downloads are
// streamed elsewhere and never pass through these helpers.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ReadBody reads the body of response, decoding a gzip
// Content-Encoding first. net/http only decodes gzip transparently
// when it added the Accept-Encoding header itself; a client that sets
// the header explicitly receives the encoded bytes and must call this.
func ReadBody(response *http.Response) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(response.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return ReadResponse(response.Body)
	case "gzip":
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip body: %w", err)
		}
		defer reader.Close()
		data, err := ReadResponse(reader)
		if err != nil {
			return nil, fmt.Errorf("reading gzip body: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// DecodeResponse reads a JSON response body (up to MaxResponseSize
// bytes) and decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an error response body and returns it as a string
// for diagnostics. Read errors are ignored; a partial body is still
// useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := ReadResponse(body)
	return string(data)
}
