// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"icbcrm/internal/models"
)

// Validation limits for form and API fields.
const (
	maxNameLen         = 300
	maxCodeLen         = 50
	maxContactFieldLen = 300
	maxNotesLen        = 5_000
	maxPasswordLen     = 128
	minPasswordLen     = 8
	maxTemplateDescLen = 2_000
	maxUploadBytes     = 10 << 20 // 10 MiB per .docx upload
)

// validateCustomer checks customer payload fields and returns the first
// error found, or "" when valid.
func validateCustomer(p *customerPayload) string {
	p.CustomerCode = strings.TrimSpace(p.CustomerCode)
	p.Name = strings.TrimSpace(p.Name)

	if p.CustomerCode == "" {
		return "Mã khách hàng là bắt buộc."
	}
	if utf8.RuneCountInString(p.CustomerCode) > maxCodeLen {
		return "Mã khách hàng quá dài (tối đa 50 ký tự)."
	}
	if p.Name == "" {
		return "Tên khách hàng là bắt buộc."
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "Tên khách hàng quá dài (tối đa 300 ký tự)."
	}
	for _, field := range []string{p.TaxCode, p.Representative, p.Position, p.Email, p.Phone, p.Address} {
		if utf8.RuneCountInString(field) > maxContactFieldLen {
			return "Thông tin liên hệ quá dài (tối đa 300 ký tự)."
		}
	}
	if utf8.RuneCountInString(p.Notes) > maxNotesLen {
		return "Ghi chú quá dài (tối đa 5.000 ký tự)."
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return "Email không hợp lệ."
	}
	if p.Category != "" && !models.CustomerCategory(p.Category).Valid() {
		return "Phân loại khách hàng không hợp lệ."
	}
	return ""
}

// validateStaff checks staff payload fields. When requirePassword is
// false (updates) an empty password means "keep the current one".
func validateStaff(p *staffPayload, requirePassword bool) string {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	if p.Name == "" {
		return "Họ tên là bắt buộc."
	}
	if utf8.RuneCountInString(p.Name) > maxNameLen {
		return "Họ tên quá dài (tối đa 300 ký tự)."
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return "Email không hợp lệ."
	}
	if p.Password == "" && requirePassword {
		return "Mật khẩu là bắt buộc."
	}
	if p.Password != "" {
		if utf8.RuneCountInString(p.Password) < minPasswordLen {
			return "Mật khẩu phải có ít nhất 8 ký tự."
		}
		if utf8.RuneCountInString(p.Password) > maxPasswordLen {
			return "Mật khẩu quá dài (tối đa 128 ký tự)."
		}
	}
	if p.Role != "staff" && p.Role != "admin" {
		return "Vai trò không hợp lệ."
	}
	return ""
}

// validateTemplateMeta checks template name and description.
func validateTemplateMeta(name, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Tên mẫu là bắt buộc."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Tên mẫu quá dài (tối đa 300 ký tự)."
	}
	if utf8.RuneCountInString(description) > maxTemplateDescLen {
		return "Mô tả quá dài (tối đa 2.000 ký tự)."
	}
	return ""
}
