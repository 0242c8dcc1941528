package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/token"
)

func (h *Handler) callerID(r *http.Request) (int64, error) {
	claims := r.Context().Value(ClaimsCtxKey).(*token.Claims)
	return claims.UserID()
}

func (h *Handler) targetUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	users, err := h.store.GetAllUsersExcept(callerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil mengambil daftar user", users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	targetID, err := h.targetUserID(r)
	if err != nil {
		h.errorResponse(w, r, "ID user tidak valid")
		return
	}

	// data sendiri diambil lewat endpoint profil, bukan endpoint ini
	if targetID == callerID {
		h.errorResponse(w, r, "Tidak dapat mengakses data diri sendiri melalui endpoint ini")
		return
	}

	user, err := h.store.GetUserByID(targetID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "User tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Berhasil mengambil data user", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	targetID, err := h.targetUserID(r)
	if err != nil {
		h.errorResponse(w, r, "ID user tidak valid")
		return
	}

	if targetID == callerID {
		h.errorResponse(w, r, "Tidak dapat menghapus akun sendiri")
		return
	}

	user, err := h.store.GetUserByID(targetID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "User tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	rows, err := h.store.DeleteUser(targetID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "User tidak ditemukan")
		return
	}

	h.successResponse(w, r, "Berhasil menghapus user", user)
}

// PromoteUser menaikkan target menjadi superadmin dan menurunkan caller
// menjadi admin dalam satu operasi. Token caller masih membawa role lama
// sampai kedaluwarsa atau diperbarui; respons menyertakan role efektif yang
// baru supaya klien bisa menyesuaikan diri.
func (h *Handler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	targetID, err := h.targetUserID(r)
	if err != nil {
		h.errorResponse(w, r, "ID user tidak valid")
		return
	}

	if targetID == callerID {
		h.errorResponse(w, r, "Tidak dapat mempromosikan diri sendiri")
		return
	}

	user, err := h.store.GetUserByID(targetID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "User tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if user.Role == domain.RoleSuperadmin {
		h.errorResponse(w, r, "User sudah memiliki role superadmin")
		return
	}

	if err := h.store.PromoteToSuperadmin(targetID, callerID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.Role = domain.RoleSuperadmin

	h.successResponse(w, r, "Berhasil mempromosikan user menjadi superadmin, Anda sekarang menjadi admin", map[string]any{
		"user":            user,
		"currentUserRole": domain.RoleAdmin,
	})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Nama     string `json:"nama" validate:"required"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// role selain admin/superadmin (termasuk kosong) jatuh ke admin
	role := domain.Role(req.Role)
	if role != domain.RoleAdmin && role != domain.RoleSuperadmin {
		role = domain.RoleAdmin
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
		Role:         role,
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

	h.successResponse(w, r, "Berhasil membuat user", user)
}
