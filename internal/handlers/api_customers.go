// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"icbcrm/internal/cache"
	"icbcrm/internal/docgen"
	"icbcrm/internal/export"
	"icbcrm/internal/middleware"
	"icbcrm/internal/models"
	"icbcrm/internal/storage"
	"icbcrm/internal/store"
)

// API groups the JSON API handlers and their dependencies.
// storageClient may be nil when S3 is not configured.
type API struct {
	customerStore *store.CustomerStore
	staffStore    *store.StaffStore
	templateStore *store.TemplateStore
	storageClient *storage.Client
	generator     *docgen.Generator
	statsCache    *cache.StatsCache
}

// NewAPI creates a new API handler group with the given dependencies.
func NewAPI(customerStore *store.CustomerStore, staffStore *store.StaffStore, templateStore *store.TemplateStore, storageClient *storage.Client, generator *docgen.Generator, statsCache *cache.StatsCache) *API {
	return &API{
		customerStore: customerStore,
		staffStore:    staffStore,
		templateStore: templateStore,
		storageClient: storageClient,
		generator:     generator,
		statsCache:    statsCache,
	}
}

// customerPayload is the create/update request body for customers.
type customerPayload struct {
	CustomerCode        string `json:"customerCode"`
	Name                string `json:"name"`
	TaxCode             string `json:"taxCode"`
	BusinessLicenseDate string `json:"businessLicenseDate"`
	Representative      string `json:"representative"`
	Position            string `json:"position"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	Category            string `json:"category"`
	Notes               string `json:"notes"`
}

// customerFromRequest decodes a customer payload from a JSON body or an
// HTMX form submission.
func customerFromRequest(r *http.Request) (*customerPayload, error) {
	if isJSONRequest(r) {
		var p customerPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return nil, err
		}
		return &p, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &customerPayload{
		CustomerCode:        r.FormValue("customerCode"),
		Name:                r.FormValue("name"),
		TaxCode:             r.FormValue("taxCode"),
		BusinessLicenseDate: r.FormValue("businessLicenseDate"),
		Representative:      r.FormValue("representative"),
		Position:            r.FormValue("position"),
		Email:               r.FormValue("email"),
		Phone:               r.FormValue("phone"),
		Address:             r.FormValue("address"),
		Category:            r.FormValue("category"),
		Notes:               r.FormValue("notes"),
	}, nil
}

// apply copies payload fields onto a customer record.
func (p *customerPayload) apply(c *models.Customer) {
	c.CustomerCode = p.CustomerCode
	c.Name = p.Name
	c.TaxCode = p.TaxCode
	c.BusinessLicenseDate = p.BusinessLicenseDate
	c.Representative = p.Representative
	c.Position = p.Position
	c.Email = p.Email
	c.Phone = p.Phone
	c.Address = p.Address
	c.Notes = p.Notes
	c.Category = models.CustomerCategory(p.Category)
	if c.Category == "" {
		c.Category = models.CategoryPotential
	}
}

// CustomersList handles GET /api/customers with search, category filter
// and pagination.
func (a *API) CustomersList(w http.ResponseWriter, r *http.Request) {
	filter := customerFilterFromQuery(r)
	customers, total, err := a.customerStore.List(filter)
	if err != nil {
		slog.Error("list customers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải danh sách khách hàng")
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}

	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:       customers,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// CustomerGet handles GET /api/customers/{id}.
func (a *API) CustomerGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID khách hàng không hợp lệ")
		return
	}

	customer, err := a.customerStore.FindByID(id)
	if err != nil {
		slog.Error("find customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải khách hàng")
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy khách hàng")
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// CustomerCreate handles POST /api/customers.
func (a *API) CustomerCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := customerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if msg := validateCustomer(payload); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.customerStore.FindByCode(payload.CustomerCode)
	if err != nil {
		slog.Error("check customer code failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo khách hàng")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Mã khách hàng đã tồn tại")
		return
	}

	c := &models.Customer{}
	payload.apply(c)
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		c.CreatedBy = sess.Name
		c.AssignedTo = &sess.StaffID
	}

	createdCustomer, err := a.customerStore.Create(c)
	if err != nil {
		slog.Error("create customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo khách hàng")
		return
	}

	a.statsCache.Invalidate(r.Context())
	created(w, r, "/admin/customers", createdCustomer)
}

// CustomerUpdate handles PUT /api/customers/{id}.
func (a *API) CustomerUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID khách hàng không hợp lệ")
		return
	}

	payload, err := customerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if msg := validateCustomer(payload); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	customer, err := a.customerStore.FindByID(id)
	if err != nil {
		slog.Error("find customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể cập nhật khách hàng")
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy khách hàng")
		return
	}

	// The code must stay unique if it changed.
	if payload.CustomerCode != customer.CustomerCode {
		existing, err := a.customerStore.FindByCode(payload.CustomerCode)
		if err != nil {
			slog.Error("check customer code failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Không thể cập nhật khách hàng")
			return
		}
		if existing != nil {
			writeError(w, http.StatusConflict, "Mã khách hàng đã tồn tại")
			return
		}
	}

	payload.apply(customer)
	updated, err := a.customerStore.Update(customer)
	if err != nil {
		slog.Error("update customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể cập nhật khách hàng")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy khách hàng")
		return
	}

	a.statsCache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

// CustomerDelete handles DELETE /api/customers/{id}.
func (a *API) CustomerDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID khách hàng không hợp lệ")
		return
	}

	if err := a.customerStore.Delete(id); err != nil {
		slog.Error("delete customer failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể xóa khách hàng")
		return
	}

	a.statsCache.Invalidate(r.Context())
	deleted(w, r)
}

// CustomersExport handles GET /api/customers/export, streaming the full
// customer list as an Excel workbook.
func (a *API) CustomersExport(w http.ResponseWriter, r *http.Request) {
	customers, err := a.customerStore.ListAll()
	if err != nil {
		slog.Error("list customers for export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể xuất danh sách khách hàng")
		return
	}

	workbook, err := export.Customers(customers)
	if err != nil {
		slog.Error("build customer workbook failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể xuất danh sách khách hàng")
		return
	}

	fileName := "khach-hang-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Write(workbook)
}
