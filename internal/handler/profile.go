package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetProfil(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user, err := h.store.GetUserByID(callerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "User tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Berhasil mengambil profil", user)
}

func (h *Handler) UpdateProfilNama(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nama string `json:"nama" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	rows, err := h.store.UpdateUserNama(callerID, req.Nama)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "User tidak ditemukan")
		return
	}

	user, err := h.store.GetUserByID(callerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil memperbarui nama", user)
}

func (h *Handler) UpdateProfilPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	callerID, err := h.callerID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user, err := h.store.GetUserByID(callerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "User tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "Password lama tidak cocok")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if _, err := h.store.UpdateUserPassword(callerID, string(passwordHash)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil memperbarui password", nil)
}
