// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package placeholder defines the fixed vocabulary of placeholder tokens
// recognized in document templates and the mapping from each token to a
// customer field or derived value.
//
// Tokens are literal delimited markers like "{Tên khách hàng}". The
// catalog is closed: adding a token requires extending both Catalog and
// FieldMap in lockstep.
package placeholder

import (
	"fmt"
	"time"

	"icbcrm/internal/models"
)

// Catalog is the ordered list of recognized placeholder tokens. Detection
// results and template placeholder lists always follow this order.
var Catalog = []string{
	"{Tên khách hàng}",
	"{Mã khách hàng}",
	"{Mã số thuế}",
	"{Ngày cấp GĐKKD}",
	"{Người đại diện}",
	"{Chức vụ}",
	"{Email}",
	"{Số điện thoại}",
	"{Địa chỉ}",
	"{Mã hợp đồng}",
	"{Ngày tạo hợp đồng}",
}

// aliasTokens are legacy ASCII spellings accepted in older templates.
// They are substituted during generation but not part of the detection
// catalog.
var aliasTokens = map[string]func(c *models.Customer) string{
	"{TenKhachHang}": func(c *models.Customer) string { return c.Name },
	"{MaKhachHang}":  func(c *models.Customer) string { return c.CustomerCode },
	"{MaSoThue}":     func(c *models.Customer) string { return c.TaxCode },
}

// FieldMap builds the complete token→value substitution map for one
// customer. Every catalog token gets a value; blank customer fields map
// to the empty string so no literal token ever survives generation.
// The contract code and creation date are derived from now.
func FieldMap(c *models.Customer, now time.Time) map[string]string {
	m := map[string]string{
		"{Tên khách hàng}":    c.Name,
		"{Mã khách hàng}":     c.CustomerCode,
		"{Mã số thuế}":        c.TaxCode,
		"{Ngày cấp GĐKKD}":    c.BusinessLicenseDate,
		"{Người đại diện}":    c.Representative,
		"{Chức vụ}":           c.Position,
		"{Email}":             c.Email,
		"{Số điện thoại}":     c.Phone,
		"{Địa chỉ}":           c.Address,
		"{Mã hợp đồng}":       ContractCode(c.CustomerCode, now),
		"{Ngày tạo hợp đồng}": FormatDate(now),
	}
	for token, get := range aliasTokens {
		m[token] = get(c)
	}
	return m
}

// ContractCode derives a contract code from the customer code and the
// last six digits of the unix-millisecond timestamp, e.g. "HD-KH001-123456".
func ContractCode(customerCode string, now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("HD-%s-%s", customerCode, millis)
}

// FormatDate renders a date in the Vietnamese DD/MM/YYYY convention used
// in generated contracts.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
