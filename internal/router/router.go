// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// ICB CRM admin server. Routes are organized into the server-rendered
// admin area and the JSON API, each with its own middleware stack.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"icbcrm/internal/handlers"
	"icbcrm/internal/middleware"
	"icbcrm/internal/session"
	"icbcrm/web"
)

// loginRateLimit allows this many login attempts per IP per window.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (compiled CSS, vendored HTMX).
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Admin pages: CSRF-protected, server-rendered.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages, accessible without a session. Login submissions
		// are rate-limited per IP.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA: requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFASetupSubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated, 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)
			r.Get("/customers", admin.CustomersPage)

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", admin.TemplatesPage)
				r.Get("/{id}/preview", admin.TemplatePreview)
				r.Get("/{id}/generate", admin.GeneratePanel)
			})

			// Staff management is admin-only.
			r.With(middleware.RequireAdmin).Get("/staff", admin.StaffPage)
		})
	})

	// JSON API: same session+CSRF protections, JSON error responses.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", api.CustomersList)
			r.Post("/", api.CustomerCreate)
			r.Get("/export", api.CustomersExport)
			r.Get("/{id}", api.CustomerGet)
			r.Put("/{id}", api.CustomerUpdate)
			r.Delete("/{id}", api.CustomerDelete)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", api.StaffList)
			r.Post("/", api.StaffCreate)
			r.Get("/{id}", api.StaffGet)
			r.Put("/{id}", api.StaffUpdate)
			r.Delete("/{id}", api.StaffDelete)
			r.Post("/{id}/reset-2fa", api.StaffReset2FA)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplatesList)
			r.Post("/", api.TemplateCreate)
			r.Get("/{id}", api.TemplateGet)
			r.Put("/{id}", api.TemplateUpdate)
			r.Delete("/{id}", api.TemplateDelete)
			r.Get("/{id}/preview", api.TemplatePreview)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/generate", api.DocumentGenerate)
			r.Post("/generate-from-template", api.DocumentGenerateFromTemplate)
		})

		r.Get("/stats/dashboard", api.StatsDashboard)
	})

	// The root redirects into the admin area.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
