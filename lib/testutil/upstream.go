// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/klauspost/compress/gzip"

	"github.com/bureau-foundation/vending/lib/wire"
)

// Values returned by the default Upstream handlers.
const (
	AndroidID               uint64 = 0x3a1f00c0ffee12
	DeviceID                       = "3a1f00c0ffee12"
	CheckinConsistencyToken        = "checkin-consistency-token"
	DeviceConfigToken              = "device-config-token"
	IntermediateToken              = "aas_et/intermediate-token"
	AccountCredential              = "ya29.account-credential"
	SessionCookie                  = "dfe-session-cookie"
	ProfileName                    = "Test User"
)

// RecordedRequest is one request received by Upstream.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Form holds the parsed body of form-encoded requests.
	Form url.Values

	// Body is the raw request body.
	Body []byte
}

// Upstream is a fake vendor server. The zero value is not usable; call
// NewUpstream.
type Upstream struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []RecordedRequest
	gzip     bool
}

// NewUpstream starts a fake vendor server with default handlers for
// every bootstrap endpoint. The server is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	upstream := &Upstream{handlers: make(map[string]http.HandlerFunc)}
	upstream.server = httptest.NewServer(http.HandlerFunc(upstream.serveHTTP))
	t.Cleanup(upstream.server.Close)

	upstream.RespondProto("/checkin", &wire.AndroidCheckinResponse{
		StatsOk:                       proto.Bool(true),
		AndroidId:                     proto.Uint64(AndroidID),
		DeviceCheckinConsistencyToken: proto.String(CheckinConsistencyToken),
	})
	upstream.RespondPayload("/fdfe/uploadDeviceConfig", &wire.Payload{
		UploadDeviceConfigResponse: &wire.UploadDeviceConfigResponse{
			UploadDeviceConfigToken: proto.String(DeviceConfigToken),
		},
	})
	upstream.Handle("/auth", defaultAuth)
	upstream.RespondPayload("/fdfe/api/toc", &wire.Payload{
		TocResponse: &wire.TocResponse{Cookie: proto.String(SessionCookie)},
	})
	upstream.RespondPayload("/fdfe/api/acceptTos", &wire.Payload{})
	upstream.RespondProto("/fdfe/api/userProfile", &wire.APIResponseWrapper{
		Payload: &wire.APIPayload{
			UserProfileResponse: &wire.UserProfileResponse{
				UserProfile: &wire.UserProfile{Name: proto.String(ProfileName)},
			},
		},
	})
	return upstream
}

// defaultAuth answers the bootstrap exchange with the intermediate
// token and the storefront exchange with the account credential.
func defaultAuth(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "text/plain")
	if request.PostForm.Get("service") == "ac2dm" {
		io.WriteString(writer, "SID=BAD_COOKIE\nLSID=BAD_COOKIE\nToken="+IntermediateToken+"\nservices=android\n")
		return
	}
	io.WriteString(writer, "issueAdvice=auto\nExpiry=1767225600\nAuth="+AccountCredential+"\n")
}

// URL returns the base URL of the fake server.
func (upstream *Upstream) URL() string { return upstream.server.URL }

// Client returns an HTTP client for the fake server.
func (upstream *Upstream) Client() *http.Client { return upstream.server.Client() }

// Handle replaces the handler for path. The request form is parsed
// before handler runs.
func (upstream *Upstream) Handle(path string, handler http.HandlerFunc) {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	upstream.handlers[path] = handler
}

// RespondProto answers path with the encoding of message.
func (upstream *Upstream) RespondProto(path string, message proto.Message) {
	data, err := proto.Marshal(message)
	if err != nil {
		panic("testutil: encoding response for " + path + ": " + err.Error())
	}
	upstream.RespondBytes(path, http.StatusOK, data)
}

// RespondPayload answers path with payload framed in a ResponseWrapper.
func (upstream *Upstream) RespondPayload(path string, payload *wire.Payload) {
	upstream.RespondProto(path, &wire.ResponseWrapper{Payload: payload})
}

// RespondBytes answers path with status and a fixed body.
func (upstream *Upstream) RespondBytes(path string, status int, body []byte) {
	upstream.Handle(path, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(status)
		writer.Write(body)
	})
}

// SetGzip makes the server gzip every response body for clients that
// accept it.
func (upstream *Upstream) SetGzip(enabled bool) {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	upstream.gzip = enabled
}

// Requests returns every request received so far, in arrival order.
func (upstream *Upstream) Requests() []RecordedRequest {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	return append([]RecordedRequest(nil), upstream.requests...)
}

// RequestsTo returns the requests received for path.
func (upstream *Upstream) RequestsTo(path string) []RecordedRequest {
	var matching []RecordedRequest
	for _, request := range upstream.Requests() {
		if request.Path == path {
			matching = append(matching, request)
		}
	}
	return matching
}

// Paths returns the path of every request received so far.
func (upstream *Upstream) Paths() []string {
	var paths []string
	for _, request := range upstream.Requests() {
		paths = append(paths, request.Path)
	}
	return paths
}

func (upstream *Upstream) serveHTTP(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	recorded := RecordedRequest{
		Method: request.Method,
		Path:   request.URL.Path,
		Query:  request.URL.Query(),
		Header: request.Header.Clone(),
		Body:   body,
	}
	if strings.HasPrefix(request.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		recorded.Form, _ = url.ParseQuery(string(body))
		request.PostForm = recorded.Form
	}

	upstream.mu.Lock()
	upstream.requests = append(upstream.requests, recorded)
	handler := upstream.handlers[request.URL.Path]
	compress := upstream.gzip && strings.Contains(request.Header.Get("Accept-Encoding"), "gzip")
	upstream.mu.Unlock()

	if handler == nil {
		http.NotFound(writer, request)
		return
	}
	if !compress {
		handler(writer, request)
		return
	}

	recorder := httptest.NewRecorder()
	handler(recorder, request)
	var compressed bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressed)
	gzipWriter.Write(recorder.Body.Bytes())
	gzipWriter.Close()

	for key, values := range recorder.Header() {
		writer.Header()[key] = values
	}
	writer.Header().Set("Content-Encoding", "gzip")
	writer.WriteHeader(recorder.Code)
	writer.Write(compressed.Bytes())
}
