// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/wire"
)

// fakeStorefront answers from fixed data and records its calls.
type fakeStorefront struct {
	mu    sync.Mutex
	calls []string

	// active counts concurrent calls; peak is the highest it reached.
	active atomic.Int32
	peak   atomic.Int32
	delay  time.Duration

	err error
}

func (fake *fakeStorefront) enter(call string) func() {
	fake.mu.Lock()
	fake.calls = append(fake.calls, call)
	fake.mu.Unlock()
	current := fake.active.Add(1)
	for {
		peak := fake.peak.Load()
		if current <= peak || fake.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	time.Sleep(fake.delay)
	return func() { fake.active.Add(-1) }
}

func (fake *fakeStorefront) Details(_ context.Context, pkg string) (*wire.DocV2, error) {
	defer fake.enter("details " + pkg)()
	if fake.err != nil {
		return nil, fake.err
	}
	return &wire.DocV2{Docid: proto.String(pkg), Title: proto.String("Example")}, nil
}

func (fake *fakeStorefront) Search(_ context.Context, query string) ([]*wire.DocV2, error) {
	defer fake.enter("search " + query)()
	if fake.err != nil {
		return nil, fake.err
	}
	if query == "nothing" {
		return []*wire.DocV2{}, nil
	}
	return []*wire.DocV2{
		{Docid: proto.String("org.example.one")},
		{Docid: proto.String("org.example.two")},
	}, nil
}

func (fake *fakeStorefront) Download(_ context.Context, pkg string) (*wire.AndroidAppDeliveryData, error) {
	defer fake.enter("download " + pkg)()
	if fake.err != nil {
		return nil, fake.err
	}
	return &wire.AndroidAppDeliveryData{
		DownloadSize: proto.Int64(1 << 20),
		DownloadUrl:  proto.String("https://cdn.example/" + pkg + ".apk"),
	}, nil
}

func (fake *fakeStorefront) Reviews(_ context.Context, pkg string, count int) ([]*wire.Review, error) {
	defer fake.enter(fmt.Sprintf("reviews %s %d", pkg, count))()
	if fake.err != nil {
		return nil, fake.err
	}
	return []*wire.Review{{AuthorName: proto.String("A"), StarRating: proto.Int32(4)}}, nil
}

func (fake *fakeStorefront) recorded() []string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]string(nil), fake.calls...)
}

func newTestServer(t *testing.T, storefront Storefront) *httptest.Server {
	t.Helper()
	server, err := New(Config{
		Storefront: storefront,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return httpServer
}

func get(t *testing.T, httpServer *httptest.Server, path string) (int, []byte) {
	t.Helper()
	response, err := httpServer.Client().Get(httpServer.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if contentType := response.Header.Get("Content-Type"); contentType != "application/json" {
		t.Errorf("GET %s: Content-Type = %q, want application/json", path, contentType)
	}
	return response.StatusCode, body
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	fake := &fakeStorefront{}
	httpServer := newTestServer(t, fake)

	tests := []struct {
		path     string
		call     string
		contains []string
	}{
		{"/api/details?id=org.example.app", "details org.example.app", []string{`"docid": "org.example.app"`, `"title": "Example"`}},
		{"/api/search?q=maps", "search maps", []string{`"org.example.one"`, `"org.example.two"`}},
		{"/api/downloads?id=org.example.app", "download org.example.app", []string{`"downloadUrl": "https://cdn.example/org.example.app.apk"`, `"downloadSize": "1048576"`}},
		{"/api/reviews?id=org.example.app", "reviews org.example.app 0", []string{`"authorName": "A"`}},
		{"/api/reviews?id=org.example.app&n=20", "reviews org.example.app 20", []string{`"starRating": 4`}},
	}
	for _, test := range tests {
		status, body := get(t, httpServer, test.path)
		if status != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200; body %s", test.path, status, body)
			continue
		}
		for _, want := range test.contains {
			if !strings.Contains(string(body), want) {
				t.Errorf("GET %s: body does not contain %s:\n%s", test.path, want, body)
			}
		}
	}

	calls := fake.recorded()
	if len(calls) != len(tests) {
		t.Fatalf("calls = %q, want %d", calls, len(tests))
	}
	for i, test := range tests {
		if calls[i] != test.call {
			t.Errorf("call %d = %q, want %q", i, calls[i], test.call)
		}
	}
}

func TestSearchWithoutResults(t *testing.T) {
	t.Parallel()

	httpServer := newTestServer(t, &fakeStorefront{})
	status, body := get(t, httpServer, "/api/search?q=nothing")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestMissingParameters(t *testing.T) {
	t.Parallel()

	fake := &fakeStorefront{}
	httpServer := newTestServer(t, fake)
	for _, path := range []string{
		"/api/details",
		"/api/search",
		"/api/search?q=",
		"/api/downloads",
		"/api/reviews",
		"/api/reviews?id=org.example.app&n=many",
		"/api/reviews?id=org.example.app&n=-1",
	} {
		status, body := get(t, httpServer, path)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s: status = %d, want 400", path, status)
		}
		var decoded errorResponse
		if err := json.Unmarshal(body, &decoded); err != nil || decoded.Error == "" {
			t.Errorf("GET %s: body %s is not an error response", path, body)
		}
	}
	if calls := fake.recorded(); len(calls) != 0 {
		t.Errorf("storefront called for invalid requests: %q", calls)
	}
}

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty payload", session.Empty("detailsResponse.docV2"), http.StatusNotFound},
		{"vendor status", fmt.Errorf("details: %w", &session.StatusError{Endpoint: "/fdfe/details", StatusCode: 401}), http.StatusBadGateway},
		{"transport", fmt.Errorf("%w: connection refused", session.ErrTransport), http.StatusBadGateway},
		{"malformed", session.ErrMalformedEnvelope, http.StatusBadGateway},
		{"not ready", session.ErrNotReady, http.StatusServiceUnavailable},
		{"other", fmt.Errorf("something else"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			httpServer := newTestServer(t, &fakeStorefront{err: test.err})
			status, body := get(t, httpServer, "/api/details?id=org.example.app")
			if status != test.want {
				t.Errorf("status = %d, want %d", status, test.want)
			}
			var decoded errorResponse
			if err := json.Unmarshal(body, &decoded); err != nil {
				t.Fatalf("decoding %s: %v", body, err)
			}
			if decoded.Error != test.err.Error() {
				t.Errorf("error = %q, want %q", decoded.Error, test.err.Error())
			}
		})
	}
}

func TestStorefrontCallsAreSerialized(t *testing.T) {
	t.Parallel()

	fake := &fakeStorefront{delay: 20 * time.Millisecond}
	httpServer := newTestServer(t, fake)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response, err := httpServer.Client().Get(fmt.Sprintf("%s/api/details?id=app.%d", httpServer.URL, i))
			if err != nil {
				t.Errorf("GET: %v", err)
				return
			}
			io.Copy(io.Discard, response.Body)
			response.Body.Close()
		}()
	}
	wg.Wait()

	if peak := fake.peak.Load(); peak != 1 {
		t.Errorf("peak concurrent storefront calls = %d, want 1", peak)
	}
	if calls := fake.recorded(); len(calls) != 8 {
		t.Errorf("calls = %d, want 8", len(calls))
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	httpServer := newTestServer(t, &fakeStorefront{})
	status, body := get(t, httpServer, "/health")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var decoded struct {
		Status  string `json:"status"`
		Version struct {
			Version string `json:"version"`
		} `json:"version"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decoding %s: %v", body, err)
	}
	if decoded.Status != "ok" || decoded.Version.Version == "" {
		t.Errorf("health = %+v", decoded)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	httpServer := newTestServer(t, &fakeStorefront{})
	response, err := httpServer.Client().Post(httpServer.URL+"/api/details?id=x", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", response.StatusCode)
	}
}

func TestStartShutdown(t *testing.T) {
	t.Parallel()

	server, err := New(Config{
		Storefront:    &fakeStorefront{},
		ListenAddress: "127.0.0.1:0",
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	response, err := http.Get("http://" + server.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", response.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := http.Get("http://" + server.Addr().String() + "/health"); err == nil {
		t.Error("server still answering after Shutdown")
	}
}

func TestNewRequiresStorefront(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); err == nil {
		t.Error("New accepted a config without a storefront")
	}
}
