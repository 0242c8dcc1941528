package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// pesan sengaja sama dengan kasus password salah supaya endpoint
			// tidak bisa dipakai menebak email terdaftar
			h.errorResponse(w, r, "Email atau password salah")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "Email atau password salah")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil login", map[string]any{
		"token": tokenString,
		"user":  user,
	})
}

// InitSuperadmin membuat superadmin pertama. Hanya berjalan selama belum ada
// user sama sekali; setelah itu registrasi lewat endpoint /users oleh
// superadmin.
func (h *Handler) InitSuperadmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Nama     string `json:"nama" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	count, err := h.store.CountUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if count >= 1 {
		h.forbidden(w, r, "Inisialisasi superadmin gagal: sudah ada user di sistem")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Email:        req.Email,
		Nama:         req.Nama,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleSuperadmin,
	}

	if err := h.store.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.errorResponse(w, r, "Email sudah terdaftar")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Superadmin pertama berhasil dibuat", map[string]any{
		"token": tokenString,
		"user":  user,
	})
}
