// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bureau-foundation/vending/lib/session"
	"github.com/bureau-foundation/vending/lib/version"
	"github.com/bureau-foundation/vending/lib/wire"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func (server *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	pkg, ok := server.requireParam(w, r, "id")
	if !ok {
		return
	}
	server.mu.Lock()
	document, err := server.storefront.Details(r.Context(), pkg)
	server.mu.Unlock()
	server.respond(w, r, err, func() (json.RawMessage, error) { return wire.JSON(document) })
}

func (server *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := server.requireParam(w, r, "q")
	if !ok {
		return
	}
	server.mu.Lock()
	documents, err := server.storefront.Search(r.Context(), query)
	server.mu.Unlock()
	server.respond(w, r, err, func() (json.RawMessage, error) { return wire.JSONList(documents) })
}

func (server *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	pkg, ok := server.requireParam(w, r, "id")
	if !ok {
		return
	}
	server.mu.Lock()
	delivery, err := server.storefront.Download(r.Context(), pkg)
	server.mu.Unlock()
	server.respond(w, r, err, func() (json.RawMessage, error) { return wire.JSON(delivery) })
}

func (server *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	pkg, ok := server.requireParam(w, r, "id")
	if !ok {
		return
	}
	count := 0
	if value := r.URL.Query().Get("n"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			server.sendError(w, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		count = parsed
	}
	server.mu.Lock()
	reviews, err := server.storefront.Reviews(r.Context(), pkg, count)
	server.mu.Unlock()
	server.respond(w, r, err, func() (json.RawMessage, error) { return wire.JSONList(reviews) })
}

func (server *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	server.writeJSON(w, http.StatusOK, struct {
		Status  string            `json:"status"`
		Version version.BuildInfo `json:"version"`
	}{"ok", version.Current()})
}

func (server *Server) requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		server.sendError(w, http.StatusBadRequest, "missing query parameter "+strconv.Quote(name))
		return "", false
	}
	return value, true
}

// respond writes the rendered result of a storefront call, or the error
// it returned.
func (server *Server) respond(w http.ResponseWriter, r *http.Request, err error, render func() (json.RawMessage, error)) {
	if err != nil {
		status := statusFor(err)
		level := server.logger.Warn
		if status >= http.StatusInternalServerError {
			level = server.logger.Error
		}
		level("storefront request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
		server.sendError(w, status, err.Error())
		return
	}
	body, err := render()
	if err != nil {
		server.logger.Error("rendering response", "path", r.URL.Path, "error", err)
		server.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	server.writeJSON(w, http.StatusOK, body)
	server.logger.Debug("storefront request served", "path", r.URL.Path)
}

// statusFor maps a storefront error to an HTTP status.
func statusFor(err error) int {
	var statusError *session.StatusError
	switch {
	case errors.Is(err, session.ErrEmptyPayload):
		return http.StatusNotFound
	case errors.As(err, &statusError), errors.Is(err, session.ErrTransport), errors.Is(err, session.ErrMalformedEnvelope):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (server *Server) sendError(w http.ResponseWriter, status int, message string) {
	server.writeJSON(w, status, errorResponse{Error: message})
}

// writeJSON writes value as indented JSON. Encoding failures after the
// header is sent are logged; the client cannot be told.
func (server *Server) writeJSON(w http.ResponseWriter, status int, value any) {
	compact, err := json.Marshal(value)
	if err != nil {
		server.logger.Error("encoding JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, compact, "", "  "); err != nil {
		server.logger.Error("indenting JSON response", "error", err)
		indented.Reset()
		indented.Write(compact)
	}
	indented.WriteByte('\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(indented.Bytes()); err != nil {
		server.logger.Warn("writing JSON response", "error", err, "status", status)
	}
}
