// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"icbcrm/internal/middleware"
	"icbcrm/internal/render"
	"icbcrm/internal/session"
	"icbcrm/internal/store"
)

// totpIssuer is the issuer shown in authenticator apps.
const totpIssuer = "ICB CRM"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer   *render.Renderer
	sessions   *session.Store
	staffStore *store.StaffStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, staffStore *store.StaffStore) *Auth {
	return &Auth{
		renderer:   renderer,
		sessions:   sessions,
		staffStore: staffStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in with 2FA complete: go straight to the dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Đăng nhập",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	staff, err := a.staffStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.loginError(w, r, "Đã xảy ra lỗi, vui lòng thử lại.")
		return
	}

	if staff == nil || !a.staffStore.CheckPassword(staff, password) {
		a.loginError(w, r, "Email hoặc mật khẩu không đúng.")
		return
	}

	// TwoFADone starts false; the staff member must complete TOTP first.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		StaffID:   staff.ID,
		Email:     staff.Email,
		Name:      staff.Name,
		Role:      staff.Role,
		TwoFADone: false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if staff.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	}
}

func (a *Auth) loginError(w http.ResponseWriter, r *http.Request, msg string) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title:   "Đăng nhập",
		Flashes: []render.Flash{{Type: "error", Message: msg}},
	})
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.staffStore.SetTOTPSecret(sess.StaffID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Thiết lập xác thực hai bước",
		Data: map[string]any{
			"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
			"secret": key.Secret(),
		},
	})
}

// TwoFASetupSubmit validates the first TOTP code and enables 2FA.
func (a *Auth) TwoFASetupSubmit(w http.ResponseWriter, r *http.Request) {
	a.verifyCode(w, r, true)
}

// TwoFAVerifyPage renders the 2FA code entry form for staff who already
// completed setup.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Xác thực hai bước",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	a.verifyCode(w, r, false)
}

// verifyCode is the shared TOTP validation path for both first-time
// setup and recurring verification.
func (a *Auth) verifyCode(w http.ResponseWriter, r *http.Request, setup bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	staff, err := a.staffStore.FindByID(sess.StaffID)
	if err != nil || staff == nil {
		slog.Error("staff lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if staff.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *staff.TOTPSecret) {
		flash := []render.Flash{{Type: "error", Message: "Mã không đúng, vui lòng thử lại."}}
		if setup {
			// Re-render the setup page with the same secret so the staff
			// member doesn't have to re-scan.
			qrPNG, _ := qrcode.Encode(
				"otpauth://totp/"+totpIssuer+":"+staff.Email+"?secret="+*staff.TOTPSecret+"&issuer="+totpIssuer,
				qrcode.Medium, 256,
			)
			a.renderer.Page(w, r, "2fa_setup", &render.PageData{
				Title:   "Thiết lập xác thực hai bước",
				Flashes: flash,
				Data: map[string]any{
					"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
					"secret": *staff.TOTPSecret,
				},
			})
			return
		}
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title:   "Xác thực hai bước",
			Flashes: flash,
		})
		return
	}

	if !staff.TOTPEnabled {
		if err := a.staffStore.EnableTOTP(staff.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
