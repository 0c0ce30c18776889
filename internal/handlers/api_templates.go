// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"icbcrm/internal/docgen"
	"icbcrm/internal/models"
	"icbcrm/internal/placeholder"
)

// templateResponse augments a template with the derived hasFile flag
// for API consumers (the binary itself is never serialized).
type templateResponse struct {
	models.Template
	HasFile bool `json:"hasFile"`
}

func toTemplateResponse(t models.Template) templateResponse {
	return templateResponse{Template: t, HasFile: t.HasOriginalFile()}
}

// TemplatesList handles GET /api/templates.
func (a *API) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.templateStore.List()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải danh sách mẫu")
		return
	}

	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// TemplateGet handles GET /api/templates/{id}.
func (a *API) TemplateGet(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := a.findTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(*tmpl))
}

// TemplateCreate handles POST /api/templates. Accepts a multipart form
// with an optional .docx file: when present, plain text is extracted and
// placeholders are detected from it; without a file the "content" field
// supplies a text-only template.
func (a *API) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	if msg := validateTemplateMeta(name, description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	name = strings.TrimSpace(name)

	existing, err := a.templateStore.FindByName(name)
	if err != nil {
		slog.Error("check template name failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo mẫu")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Tên mẫu đã tồn tại")
		return
	}

	tmpl := &models.Template{Name: name, Description: description}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".docx") {
			writeError(w, http.StatusBadRequest, "Chỉ chấp nhận tệp .docx")
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			slog.Error("read template upload failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Không thể đọc tệp tải lên")
			return
		}
		if len(data) > maxUploadBytes {
			writeError(w, http.StatusBadRequest, "Tệp quá lớn (tối đa 10 MB)")
			return
		}

		content, err := docgen.ExtractText(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Tệp không phải định dạng .docx hợp lệ")
			return
		}
		tmpl.FileName = header.Filename
		tmpl.FileData = data
		tmpl.Content = content

	case errors.Is(err, http.ErrMissingFile):
		tmpl.Content = r.FormValue("content")
		if strings.TrimSpace(tmpl.Content) == "" {
			writeError(w, http.StatusBadRequest, "Cần tải lên tệp .docx hoặc nhập nội dung mẫu")
			return
		}

	default:
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	tmpl.Placeholders = placeholder.Detect(tmpl.Content)

	createdTmpl, err := a.templateStore.Create(tmpl)
	if err != nil {
		slog.Error("create template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tạo mẫu")
		return
	}

	// Best effort: archive the original binary off-site.
	if a.storageClient != nil && createdTmpl.HasOriginalFile() {
		if err := a.storageClient.ArchiveTemplate(r.Context(), createdTmpl.ID.String(), createdTmpl.FileData); err != nil {
			slog.Error("archive template to s3 failed", "error", err, "template", createdTmpl.ID)
		}
	}

	a.statsCache.Invalidate(r.Context())
	created(w, r, "/admin/templates", toTemplateResponse(*createdTmpl))
}

// TemplateUpdate handles PUT /api/templates/{id}: name and description
// only, the uploaded binary is immutable.
func (a *API) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID mẫu không hợp lệ")
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if isJSONRequest(r) {
		if err := decodeJSONBody(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
			return
		}
		payload.Name = r.FormValue("name")
		payload.Description = r.FormValue("description")
	}

	if msg := validateTemplateMeta(payload.Name, payload.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tmpl, err := a.templateStore.UpdateMeta(id, strings.TrimSpace(payload.Name), payload.Description)
	if err != nil {
		slog.Error("update template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể cập nhật mẫu")
		return
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy mẫu tài liệu")
		return
	}

	writeJSON(w, http.StatusOK, toTemplateResponse(*tmpl))
}

// TemplateDelete handles DELETE /api/templates/{id}.
func (a *API) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID mẫu không hợp lệ")
		return
	}

	if err := a.templateStore.Delete(id); err != nil {
		slog.Error("delete template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể xóa mẫu")
		return
	}

	if a.storageClient != nil {
		if err := a.storageClient.DeleteTemplate(r.Context(), id.String()); err != nil {
			slog.Error("delete template from s3 failed", "error", err, "template", id)
		}
	}

	a.statsCache.Invalidate(r.Context())
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", "/admin/templates")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TemplatePreview handles GET /api/templates/{id}/preview, returning an
// approximate HTML rendering of the stored template.
func (a *API) TemplatePreview(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := a.findTemplate(w, r)
	if !ok {
		return
	}

	// A row migrated without its binary can still be previewed from the
	// S3 archive.
	if !tmpl.HasOriginalFile() && tmpl.FileName != "" && a.storageClient != nil {
		if data, err := a.storageClient.FetchTemplate(r.Context(), tmpl.ID.String()); err == nil {
			tmpl.FileData = data
		}
	}

	page, err := previewHTML(tmpl)
	if err != nil {
		slog.Error("template preview failed", "error", err, "template", tmpl.ID)
		writeError(w, http.StatusInternalServerError, "Không thể tạo bản xem trước")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"html": page})
}

// findTemplate resolves the {id} URL param to a stored template, writing
// the error response itself when that fails.
func (a *API) findTemplate(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID mẫu không hợp lệ")
		return nil, false
	}

	tmpl, err := a.templateStore.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải mẫu")
		return nil, false
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, "Không tìm thấy mẫu tài liệu")
		return nil, false
	}
	return tmpl, true
}
