// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the ICB CRM admin
// application. Handlers are grouped by concern (admin pages, JSON API,
// auth) and receive their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"icbcrm/internal/docgen"
	"icbcrm/internal/models"
	"icbcrm/internal/preview"
	"icbcrm/internal/render"
	"icbcrm/internal/session"
	"icbcrm/internal/store"
)

// Admin groups the server-rendered admin page handlers.
type Admin struct {
	renderer      *render.Renderer
	sessions      *session.Store
	customerStore *store.CustomerStore
	staffStore    *store.StaffStore
	templateStore *store.TemplateStore
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, customerStore *store.CustomerStore, staffStore *store.StaffStore, templateStore *store.TemplateStore) *Admin {
	return &Admin{
		renderer:      renderer,
		sessions:      sessions,
		customerStore: customerStore,
		staffStore:    staffStore,
		templateStore: templateStore,
	}
}

// Dashboard renders the admin dashboard with live stats.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	customerCount, _ := a.customerStore.Count()
	staffCount, _ := a.staffStore.Count()
	templateCount, _ := a.templateStore.Count()
	byCategory, _ := a.customerStore.CountByCategory()

	thisMonth, lastMonth := monthWindows(a.customerStore)

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Tổng quan",
		Section: "dashboard",
		Data: map[string]any{
			"customerCount":  customerCount,
			"customerGrowth": growthString(thisMonth, lastMonth),
			"staffCount":     staffCount,
			"templateCount":  templateCount,
			"byCategory":     byCategory,
		},
	})
}

// CustomersPage renders the customer management page with search,
// category filter and pagination taken from the query string.
func (a *Admin) CustomersPage(w http.ResponseWriter, r *http.Request) {
	filter := customerFilterFromQuery(r)
	customers, total, err := a.customerStore.List(filter)
	if err != nil {
		slog.Error("list customers failed", "error", err)
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	a.renderer.Page(w, r, "customers", &render.PageData{
		Title:   "Khách hàng",
		Section: "customers",
		Data: map[string]any{
			"customers":  customers,
			"total":      total,
			"page":       filter.Page,
			"prevPage":   filter.Page - 1,
			"nextPage":   filter.Page + 1,
			"totalPages": totalPages,
			"search":     filter.Search,
			"category":   string(filter.Category),
		},
	})
}

// StaffPage renders the staff management page (admin only).
func (a *Admin) StaffPage(w http.ResponseWriter, r *http.Request) {
	staff, err := a.staffStore.List()
	if err != nil {
		slog.Error("list staff failed", "error", err)
	}

	a.renderer.Page(w, r, "staff", &render.PageData{
		Title:   "Nhân viên",
		Section: "staff",
		Data:    map[string]any{"staff": staff},
	})
}

// TemplatesPage renders the document template management page.
func (a *Admin) TemplatesPage(w http.ResponseWriter, r *http.Request) {
	templates, err := a.templateStore.List()
	if err != nil {
		slog.Error("list templates failed", "error", err)
	}

	a.renderer.Page(w, r, "templates", &render.PageData{
		Title:   "Mẫu tài liệu",
		Section: "templates",
		Data:    map[string]any{"templates": templates},
	})
}

// GeneratePanel renders the document generation form for one template.
// Loaded into the templates page as an HTMX fragment.
func (a *Admin) GeneratePanel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tmpl, err := a.templateStore.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		http.NotFound(w, r)
		return
	}

	customers, err := a.customerStore.ListAll()
	if err != nil {
		slog.Error("list customers failed", "error", err)
	}

	a.renderer.Page(w, r, "generate", &render.PageData{
		Title:   "Tạo tài liệu",
		Section: "templates",
		Data: map[string]any{
			"template":  tmpl,
			"customers": customers,
		},
	})
}

// TemplatePreview serves an approximate HTML rendering of a stored
// template, opened in a new tab from the templates page.
func (a *Admin) TemplatePreview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tmpl, err := a.templateStore.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		http.NotFound(w, r)
		return
	}

	page, err := previewHTML(tmpl)
	if err != nil {
		slog.Error("template preview failed", "error", err, "template", tmpl.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// previewHTML renders a template for on-screen preview. Templates with a
// stored binary go through the DOCX preview adapter; text-only templates
// reuse the print renderer with tokens left in place.
func previewHTML(tmpl *models.Template) (string, error) {
	if tmpl.HasOriginalFile() {
		return preview.HTML(tmpl.FileData)
	}
	return docgen.PrintDocument(tmpl.Content, nil), nil
}

// customerFilterFromQuery builds a store filter from list query params.
func customerFilterFromQuery(r *http.Request) store.CustomerFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return store.CustomerFilter{
		Search:   q.Get("search"),
		Category: models.CustomerCategory(q.Get("category")),
		Page:     page,
		PageSize: pageSize,
	}
}
