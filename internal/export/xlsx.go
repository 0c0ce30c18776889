// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package export builds spreadsheet exports of CRM data for staff who
// keep working in Excel.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"icbcrm/internal/models"
)

// customerHeaders are the column titles of a customer export, in sheet order.
var customerHeaders = []string{
	"Mã khách hàng",
	"Tên khách hàng",
	"Mã số thuế",
	"Ngày cấp GĐKKD",
	"Người đại diện",
	"Chức vụ",
	"Email",
	"Số điện thoại",
	"Địa chỉ",
	"Phân loại",
	"Ghi chú",
}

// Customers renders the given customers as an .xlsx workbook with a
// single sheet and returns the file bytes.
func Customers(customers []models.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Khách hàng"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range customerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(customerHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, c := range customers {
		row := []any{
			c.CustomerCode,
			c.Name,
			c.TaxCode,
			c.BusinessLicenseDate,
			c.Representative,
			c.Position,
			c.Email,
			c.Phone,
			c.Address,
			c.Category.Label(),
			c.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
