// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
)

// pagedResponse is the envelope for paginated list endpoints.
type pagedResponse struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

// writeError sends a JSON error body: {"error": "<message>"}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSONBody decodes a JSON request body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// isJSONRequest reports whether the request body is JSON. The API
// accepts both JSON bodies and form submissions from the HTMX admin UI.
func isJSONRequest(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/json"
}

// isHTMXRequest reports whether the request came from the HTMX admin UI.
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// created finishes a successful mutation. HTMX clients get a redirect
// instruction so the page reloads with fresh data; API clients get the
// created resource as JSON.
func created(w http.ResponseWriter, r *http.Request, redirect string, v any) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// deleted finishes a successful deletion. HTMX delete buttons swap the
// table row with the (empty) response body.
func deleted(w http.ResponseWriter, r *http.Request) {
	if isHTMXRequest(r) {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
