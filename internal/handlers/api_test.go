// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusNotFound, "Không tìm thấy khách hàng")

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"] != "Không tìm thấy khách hàng" {
		t.Errorf("error message: got %q", body["error"])
	}
}

func TestIsJSONRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{"json", "application/json", true},
		{"json with charset", "application/json; charset=utf-8", true},
		{"form", "application/x-www-form-urlencoded", false},
		{"multipart", "multipart/form-data; boundary=x", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/customers", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			if got := isJSONRequest(req); got != tt.expected {
				t.Errorf("isJSONRequest: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCreatedHTMXRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/customers", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	created(rr, req, "/admin/customers", map[string]string{"id": "x"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/admin/customers" {
		t.Errorf("HX-Redirect: got %q, want /admin/customers", got)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("HTMX response body should be empty, got %q", rr.Body.String())
	}
}

func TestCreatedJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/customers", nil)
	rr := httptest.NewRecorder()

	created(rr, req, "/admin/customers", map[string]string{"id": "abc"})

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"abc"`) {
		t.Errorf("body should contain the created resource: %q", rr.Body.String())
	}
}

func TestDeleted(t *testing.T) {
	t.Run("htmx gets empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/customers/x", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()

		deleted(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if rr.Body.Len() != 0 {
			t.Errorf("body should be empty, got %q", rr.Body.String())
		}
	})

	t.Run("api gets success envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/customers/x", nil)
		rr := httptest.NewRecorder()

		deleted(rr, req)

		if !strings.Contains(rr.Body.String(), `"success":true`) {
			t.Errorf("body: got %q, want success envelope", rr.Body.String())
		}
	})
}

func TestGrowthString(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		expected string
	}{
		{"growth from zero", 5, 0, "+100%"},
		{"both zero", 0, 0, "0%"},
		{"doubled", 10, 5, "+100%"},
		{"unchanged", 5, 5, "+0%"},
		{"halved", 5, 10, "-50%"},
		{"dropped to zero", 0, 4, "-100%"},
		{"partial growth", 12, 10, "+20%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := growthString(tt.current, tt.previous); got != tt.expected {
				t.Errorf("growthString(%d, %d): got %q, want %q", tt.current, tt.previous, got, tt.expected)
			}
		})
	}
}
