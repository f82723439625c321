// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the storefront operations of one vendor
// session as a JSON HTTP API.
//
// Routes:
//
//	GET /api/details?id=PACKAGE        document details
//	GET /api/search?q=QUERY            matching applications
//	GET /api/downloads?id=PACKAGE      delivery data, purchasing if needed
//	GET /api/reviews?id=PACKAGE[&n=N]  reviews, most helpful first
//	GET /health                        liveness and build version
//
// Responses are indented JSON in the canonical protobuf mapping. A
// session carries mutable state and is not safe for concurrent use, so
// the server serializes storefront calls.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bureau-foundation/vending/lib/wire"
)

// Storefront is the set of operations the server exposes. It is
// satisfied by *storefront.Client.
type Storefront interface {
	Details(ctx context.Context, pkg string) (*wire.DocV2, error)
	Search(ctx context.Context, query string) ([]*wire.DocV2, error)
	Download(ctx context.Context, pkg string) (*wire.AndroidAppDeliveryData, error)
	Reviews(ctx context.Context, pkg string, count int) ([]*wire.Review, error)
}

// Config holds the parameters of New.
type Config struct {
	// Storefront serves every API request. Required. The server owns
	// it for its lifetime.
	Storefront Storefront

	// ListenAddress is the TCP address Start listens on. Required for
	// Start; Handler works without it.
	ListenAddress string

	// ReadTimeout defaults to 30 seconds. WriteTimeout defaults to 5
	// minutes because a download may wait on a purchase.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	listenAddress string
	logger        *slog.Logger

	// mu serializes storefront calls.
	mu         sync.Mutex
	storefront Storefront

	httpServer *http.Server
	listener   net.Listener
}

// New creates a server. It does not listen until Start.
func New(config Config) (*Server, error) {
	if config.Storefront == nil {
		return nil, errors.New("storefront is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	readTimeout := config.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := config.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 5 * time.Minute
	}

	server := &Server{
		listenAddress: config.ListenAddress,
		logger:        logger,
		storefront:    config.Storefront,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/details", server.handleDetails)
	mux.HandleFunc("GET /api/search", server.handleSearch)
	mux.HandleFunc("GET /api/downloads", server.handleDownload)
	mux.HandleFunc("GET /api/reviews", server.handleReviews)
	mux.HandleFunc("GET /health", server.handleHealth)

	server.httpServer = &http.Server{
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return server, nil
}

// Handler returns the API handler, for embedding or tests.
func (server *Server) Handler() http.Handler { return server.httpServer.Handler }

// Start listens on the configured address and serves in the
// background.
func (server *Server) Start() error {
	if server.listenAddress == "" {
		return errors.New("listen address is required")
	}
	listener, err := net.Listen("tcp", server.listenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on TCP %s: %w", server.listenAddress, err)
	}
	server.listener = listener
	server.logger.Info("vending server started", "address", listener.Addr().String())

	go func() {
		if err := server.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			server.logger.Error("http server error", "error", err)
		}
	}()

	notifySystemd("READY=1")
	return nil
}

// Addr returns the bound address after Start, or nil.
func (server *Server) Addr() net.Addr {
	if server.listener == nil {
		return nil
	}
	return server.listener.Addr()
}

// Shutdown stops accepting connections and waits for in-flight
// requests until ctx ends.
func (server *Server) Shutdown(ctx context.Context) error {
	server.logger.Info("shutting down vending server")
	notifySystemd("STOPPING=1")
	return server.httpServer.Shutdown(ctx)
}

// notifySystemd sends a notification to systemd's sd_notify socket.
// Does nothing if NOTIFY_SOCKET is not set.
func notifySystemd(state string) {
	socketPath := os.Getenv("NOTIFY_SOCKET")
	if socketPath == "" {
		return
	}
	conn, err := net.Dial("unixgram", socketPath)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.Write([]byte(state))
}
