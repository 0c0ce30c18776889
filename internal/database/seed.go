// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account and a couple of customers to exercise the UI against.
// It is a no-op when any staff record already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff").Scan(&count); err != nil {
		return fmt.Errorf("seed check staff: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// 2FA is not enabled for the seeded admin; they must set it up on
	// first login.
	_, err = db.Exec(`
		INSERT INTO staff (name, email, password_hash, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "Quản trị viên", "admin@icb.vn", string(hash), "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	customers := []struct {
		code, name, taxCode, representative, position, email, phone, address, category string
	}{
		{
			code: "KH001", name: "Công ty TNHH Thương mại Minh Phát",
			taxCode: "0312456789", representative: "Nguyễn Văn Minh", position: "Giám đốc",
			email: "lienhe@minhphat.vn", phone: "0903123456",
			address: "123 Lê Lợi, Quận 1, TP.HCM", category: "regular",
		},
		{
			code: "KH002", name: "Công ty CP Xây dựng Hoà Bình An",
			taxCode: "0108765432", representative: "Trần Thị Hoà", position: "Tổng giám đốc",
			email: "info@hoabinhan.vn", phone: "0912345678",
			address: "45 Tràng Thi, Hoàn Kiếm, Hà Nội", category: "potential",
		},
	}
	for _, c := range customers {
		_, err = db.Exec(`
			INSERT INTO customers (customer_code, name, tax_code, representative,
			                       position, email, phone, address, category, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, c.code, c.name, c.taxCode, c.representative, c.position,
			c.email, c.phone, c.address, c.category, "seed")
		if err != nil {
			return fmt.Errorf("seed insert customer %s: %w", c.code, err)
		}
	}

	// A text-only template so generation works out of the box; it takes
	// the HTML fallback path until a real .docx is uploaded.
	_, err = db.Exec(`
		INSERT INTO templates (name, description, file_name, content, placeholders)
		VALUES ($1, $2, $3, $4, $5)
	`,
		"Hợp đồng dịch vụ mẫu",
		"Mẫu hợp đồng khởi tạo cho môi trường phát triển",
		"",
		"HỢP ĐỒNG DỊCH VỤ\n\nSố: {Mã hợp đồng}\n\nBên A: {Tên khách hàng}\nMã số thuế: {Mã số thuế}\nĐại diện: {Người đại diện} - {Chức vụ}\nĐịa chỉ: {Địa chỉ}\nĐiện thoại: {Số điện thoại}\nEmail: {Email}\n\nNgày lập: {Ngày tạo hợp đồng}",
		`["{Tên khách hàng}","{Mã số thuế}","{Người đại diện}","{Chức vụ}","{Email}","{Số điện thoại}","{Địa chỉ}","{Mã hợp đồng}","{Ngày tạo hợp đồng}"]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	slog.Info("database seeded with default admin account",
		"email", "admin@icb.vn",
		"password", "admin",
	)

	return nil
}
