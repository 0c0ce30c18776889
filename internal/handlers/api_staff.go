// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"icbcrm/internal/middleware"
	"icbcrm/internal/models"
)

// staffPayload is the create/update request body for staff accounts.
type staffPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// staffFromRequest decodes a staff payload from a JSON body or an HTMX
// form submission. An empty role defaults to "staff".
func staffFromRequest(r *http.Request) (*staffPayload, error) {
	var p staffPayload
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		p = staffPayload{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}
	}
	if p.Role == "" {
		p.Role = "staff"
	}
	return &p, nil
}

// StaffList handles GET /api/staff.
func (a *API) StaffList(w http.ResponseWriter, r *http.Request) {
	staff, err := a.staffStore.List()
	if err != nil {
		slog.Error("list staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải danh sách nhân viên")
		return
	}
	if staff == nil {
		staff = []models.Staff{}
	}
	writeJSON(w, http.StatusOK, staff)
}

// StaffGet handles GET /api/staff/{id}.
func (a *API) StaffGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID nhân viên không hợp lệ")
		return
	}

	staff, err := a.staffStore.FindByID(id)
	if err != nil {
		slog.Error("find staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải nhân viên")
		return
	}
	if staff == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy nhân viên")
		return
	}

	writeJSON(w, http.StatusOK, staff)
}

// StaffCreate handles POST /api/staff.
func (a *API) StaffCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := staffFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if msg := validateStaff(payload, true); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.staffStore.FindByEmail(payload.Email)
	if err != nil {
		slog.Error("check staff email failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo nhân viên")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Email đã tồn tại")
		return
	}

	staff, err := a.staffStore.Create(payload.Name, payload.Email, payload.Password, payload.Role)
	if err != nil {
		slog.Error("create staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo nhân viên")
		return
	}

	a.statsCache.Invalidate(r.Context())
	created(w, r, "/admin/staff", staff)
}

// StaffUpdate handles PUT /api/staff/{id}. A non-empty password in the
// payload also resets the account password.
func (a *API) StaffUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID nhân viên không hợp lệ")
		return
	}

	payload, err := staffFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if msg := validateStaff(payload, false); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := a.staffStore.FindByID(id)
	if err != nil {
		slog.Error("find staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể cập nhật nhân viên")
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy nhân viên")
		return
	}

	if payload.Email != current.Email {
		existing, err := a.staffStore.FindByEmail(payload.Email)
		if err != nil {
			slog.Error("check staff email failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Không thể cập nhật nhân viên")
			return
		}
		if existing != nil {
			writeError(w, http.StatusConflict, "Email đã tồn tại")
			return
		}
	}

	staff, err := a.staffStore.Update(id, payload.Name, payload.Email, payload.Role)
	if err != nil {
		slog.Error("update staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể cập nhật nhân viên")
		return
	}
	if staff == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy nhân viên")
		return
	}

	if payload.Password != "" {
		if err := a.staffStore.SetPassword(id, payload.Password); err != nil {
			slog.Error("set staff password failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Không thể đổi mật khẩu")
			return
		}
	}

	writeJSON(w, http.StatusOK, staff)
}

// StaffDelete handles DELETE /api/staff/{id}. Staff cannot delete
// their own account.
func (a *API) StaffDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID nhân viên không hợp lệ")
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.StaffID == id {
		writeError(w, http.StatusBadRequest, "Không thể tự xóa tài khoản của chính mình")
		return
	}

	if err := a.staffStore.Delete(id); err != nil {
		slog.Error("delete staff failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể xóa nhân viên")
		return
	}

	a.statsCache.Invalidate(r.Context())
	deleted(w, r)
}

// StaffReset2FA handles POST /api/staff/{id}/reset-2fa. The staff
// member must re-run TOTP setup at next sign-in.
func (a *API) StaffReset2FA(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID nhân viên không hợp lệ")
		return
	}

	if err := a.staffStore.ResetTOTP(id); err != nil {
		slog.Error("reset totp failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể đặt lại 2FA")
		return
	}

	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", "/admin/staff")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
