package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

type listResponse struct {
	Count int64 `json:"count"`
	Data  any   `json:"data"`
}

// CreateAspirasi adalah kanal masukan publik, tanpa login, hanya dijaga rate
// limit.
func (h *Handler) CreateAspirasi(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Aspirasi string  `json:"aspirasi" validate:"required"`
		Penulis  *string `json:"penulis" validate:"omitempty,max=100"`
		Kategori *string `json:"kategori" validate:"omitempty,oneof=prodi hima"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	a := &domain.Aspirasi{
		Aspirasi:  strings.TrimSpace(req.Aspirasi),
		CreatedAt: time.Now().UTC(),
	}
	if a.Aspirasi == "" {
		h.errorResponse(w, r, "Field aspirasi harus diisi")
		return
	}
	if req.Penulis != nil {
		penulis := strings.TrimSpace(*req.Penulis)
		if penulis != "" {
			a.Penulis = &penulis
		}
	}
	if req.Kategori != nil {
		kategori := domain.Kategori(*req.Kategori)
		a.Kategori = &kategori
	}

	if err := h.store.InsertAspirasi(a); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Aspirasi berhasil ditambahkan", a)
}

func (h *Handler) GetAllAspirasi(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseListFilter(r.URL.Query().Get("param"))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	list, count, err := h.store.GetAllAspirasi(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil mengambil data aspirasi", listResponse{
		Count: count,
		Data:  list,
	})
}

func (h *Handler) GetAspirasi(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID aspirasi tidak valid")
		return
	}

	a, err := h.store.GetAspirasiByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "Aspirasi tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Berhasil mengambil data aspirasi", a)
}

func (h *Handler) DeleteAspirasi(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID aspirasi tidak valid")
		return
	}

	rows, err := h.store.DeleteAspirasi(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "Aspirasi tidak ditemukan")
		return
	}

	h.successResponse(w, r, "Aspirasi berhasil dihapus", nil)
}
