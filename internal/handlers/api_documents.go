// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"icbcrm/internal/codec"
	"icbcrm/internal/docgen"
	"icbcrm/internal/models"
)

// docxMediaType is the OOXML media type for generated .docx attachments.
const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// generatePayload is the request body for document generation.
type generatePayload struct {
	TemplateID   string `json:"templateId"`
	CustomerID   string `json:"customerId"`
	OutputFormat string `json:"outputFormat"`
}

// generateFromRequest decodes a generation payload from a JSON body or
// a form submission (the admin generate panel posts a plain form).
func generateFromRequest(r *http.Request) (*generatePayload, error) {
	if isJSONRequest(r) {
		var p generatePayload
		if err := decodeJSONBody(r, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &generatePayload{
		TemplateID:   r.FormValue("templateId"),
		CustomerID:   r.FormValue("customerId"),
		OutputFormat: r.FormValue("outputFormat"),
	}, nil
}

// DocumentGenerate handles POST /api/documents/generate. The engine
// picks the output path from the stored template: DOCX when the original
// binary is present, print-ready HTML otherwise. Form submissions get
// the result streamed as a download; JSON clients get a JSON envelope
// with the content base64-encoded.
func (a *API) DocumentGenerate(w http.ResponseWriter, r *http.Request) {
	a.generate(w, r, false)
}

// DocumentGenerateFromTemplate handles POST
// /api/documents/generate-from-template. It requires a template with a
// stored original binary; outputFormat "docx" streams the attachment,
// anything else returns {success, docxBase64, fileName}.
func (a *API) DocumentGenerateFromTemplate(w http.ResponseWriter, r *http.Request) {
	a.generate(w, r, true)
}

func (a *API) generate(w http.ResponseWriter, r *http.Request, requireDocx bool) {
	payload, err := generateFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}
	if payload.TemplateID == "" || payload.CustomerID == "" {
		writeError(w, http.StatusBadRequest, "Thiếu templateId hoặc customerId")
		return
	}

	templateID, err := uuid.Parse(payload.TemplateID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "templateId không hợp lệ")
		return
	}
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "customerId không hợp lệ")
		return
	}

	doc, err := a.generator.Generate(templateID, customerID)
	if err != nil {
		a.generateError(w, err)
		return
	}

	if requireDocx && doc.Format != models.FormatDocx {
		writeError(w, http.StatusBadRequest, "Mẫu này không có tệp .docx gốc")
		return
	}

	// Plain form posts (the admin generate panel) and explicit
	// outputFormat=docx both stream a file download.
	if payload.OutputFormat == "docx" || !isJSONRequest(r) {
		streamDocument(w, doc)
		return
	}

	resp := map[string]any{
		"success":  true,
		"fileName": doc.FileName,
		"format":   string(doc.Format),
	}
	if doc.Format == models.FormatDocx {
		resp["docxBase64"] = codec.Encode(doc.Content)
	} else {
		resp["html"] = string(doc.Content)
	}
	writeJSON(w, http.StatusOK, resp)
}

// generateError maps generation failures to API responses: 404 names
// the missing entity, anything else is a short 500.
func (a *API) generateError(w http.ResponseWriter, err error) {
	var notFound *docgen.NotFoundError
	if errors.As(err, &notFound) {
		switch notFound.Entity {
		case "template":
			writeError(w, http.StatusNotFound, "Không tìm thấy mẫu tài liệu")
		default:
			writeError(w, http.StatusNotFound, "Không tìm thấy khách hàng")
		}
		return
	}
	if errors.Is(err, docgen.ErrTemplateCorrupt) {
		slog.Error("stored template corrupt", "error", err)
		writeError(w, http.StatusInternalServerError, "Tệp mẫu bị hỏng")
		return
	}
	slog.Error("generate document failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Không thể tạo tài liệu")
}

// streamDocument writes the generated document as a file download.
func streamDocument(w http.ResponseWriter, doc *models.GeneratedDocument) {
	contentType := "text/html; charset=utf-8"
	if doc.Format == models.FormatDocx {
		contentType = docxMediaType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.Write(doc.Content)
}
