package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/storage"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/token"
)

// readIlustrasiFile membaca file ilustrasi dari form multipart. ok bernilai
// false jika field tidak dikirim.
func (h *Handler) readIlustrasiFile(r *http.Request) (data []byte, filename string, contentType string, ok bool, err error) {
	file, header, err := r.FormFile("ilustrasi")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", "", false, nil
		}
		return nil, "", "", false, err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", "", false, err
	}

	return data, header.Filename, header.Header.Get("Content-Type"), true, nil
}

// removeIlustrasi menghapus objek di blob store secara best-effort:
// kegagalan hanya dicatat, tidak pernah membatalkan perubahan database yang
// sudah terjadi.
func (h *Handler) removeIlustrasi(ctx context.Context, filename string) {
	if err := h.blob.Remove(ctx, filename); err != nil {
		slog.Error("gagal menghapus file ilustrasi", "file", filename, "error", err)
	}
}

// CreateDisplayAspirasi menyalin sebuah aspirasi menjadi record tampilan.
// Ilustrasi diunggah sebelum insert; jika insert gagal, objek yang sudah
// terunggah dihapus lagi supaya tidak ada blob yatim sebagai hasil normal
// satu panggilan.
func (h *Handler) CreateDisplayAspirasi(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.config.Upload.MaxSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req := struct {
		IDAspirasi string `validate:"required,number"`
		Kategori   string `validate:"required,oneof=prodi hima"`
		Status     string `validate:"required,oneof=displayed hidden"`
	}{
		IDAspirasi: r.FormValue("id_aspirasi"),
		Kategori:   r.FormValue("kategori"),
		Status:     r.FormValue("status"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	idAspirasi, err := strconv.ParseInt(req.IDAspirasi, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID aspirasi tidak valid")
		return
	}

	src, err := h.store.GetAspirasiByID(idAspirasi)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "Aspirasi tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	claims := r.Context().Value(ClaimsCtxKey).(*token.Claims)

	var ilustrasi *string
	fileData, fileName, fileType, hasFile, err := h.readIlustrasiFile(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if hasFile {
		key := storage.ObjectKey(fileName)
		if err := h.blob.Upload(r.Context(), key, fileData, fileType); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		ilustrasi = &key
	}

	penulis := ""
	if src.Penulis != nil {
		penulis = *src.Penulis
	}

	d := &domain.DisplayAspirasi{
		Aspirasi:    src.Aspirasi,
		Penulis:     penulis,
		Ilustrasi:   ilustrasi,
		Kategori:    domain.Kategori(req.Kategori),
		AddedBy:     claims.Email,
		LastUpdated: time.Now().UTC(),
		Status:      domain.DisplayStatus(req.Status),
	}

	if err := h.store.InsertDisplayAspirasi(d); err != nil {
		// aksi kompensasi: insert gagal, ilustrasi yang sudah terunggah
		// harus ikut dibuang
		if ilustrasi != nil {
			h.removeIlustrasi(r.Context(), *ilustrasi)
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil menambahkan display aspirasi", d)
}

func (h *Handler) GetAllDisplayAspirasi(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseListFilter(r.URL.Query().Get("param"))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	list, count, err := h.store.GetAllDisplayAspirasi(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Berhasil mengambil data display aspirasi", listResponse{
		Count: count,
		Data:  list,
	})
}

func (h *Handler) UpdateDisplayAspirasiStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID display aspirasi tidak valid")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=displayed hidden"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.store.UpdateDisplayAspirasiStatus(id, domain.DisplayStatus(req.Status))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		return
	}

	h.successResponse(w, r, "Berhasil memperbarui status", nil)
}

func (h *Handler) UpdateDisplayAspirasiKategori(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID display aspirasi tidak valid")
		return
	}

	var req struct {
		Kategori string `json:"kategori" validate:"required,oneof=prodi hima"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.store.UpdateDisplayAspirasiKategori(id, domain.Kategori(req.Kategori))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		return
	}

	h.successResponse(w, r, "Berhasil memperbarui kategori", nil)
}

// UpdateDisplayAspirasiText mengganti teks dan, bila ada file di form, ikut
// mengganti ilustrasi dengan disiplin unggah-lalu-tukar: ilustrasi lama baru
// dihapus setelah update database berhasil; kalau gagal, justru unggahan
// baru yang dibuang.
func (h *Handler) UpdateDisplayAspirasiText(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID display aspirasi tidak valid")
		return
	}

	if err := r.ParseMultipartForm(h.config.Upload.MaxSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	aspirasi := strings.TrimSpace(r.FormValue("aspirasi"))
	if aspirasi == "" {
		h.errorResponse(w, r, "Field aspirasi harus diisi")
		return
	}

	oldIlustrasi, err := h.store.GetDisplayAspirasiIlustrasi(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	fileData, fileName, fileType, hasFile, err := h.readIlustrasiFile(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !hasFile {
		rows, err := h.store.UpdateDisplayAspirasiText(id, aspirasi, nil)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if rows == 0 {
			h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
			return
		}
		h.respondUpdatedDisplayAspirasi(w, r, id)
		return
	}

	newIlustrasi := storage.ObjectKey(fileName)
	if err := h.blob.Upload(r.Context(), newIlustrasi, fileData, fileType); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	rows, err := h.store.UpdateDisplayAspirasiText(id, aspirasi, &newIlustrasi)
	if err != nil || rows == 0 {
		h.removeIlustrasi(r.Context(), newIlustrasi)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		return
	}

	if oldIlustrasi != nil {
		h.removeIlustrasi(r.Context(), *oldIlustrasi)
	}

	h.respondUpdatedDisplayAspirasi(w, r, id)
}

// respondUpdatedDisplayAspirasi membaca ulang record yang baru diperbarui
// supaya klien menerima keadaan terkini, termasuk last_updated dari database.
func (h *Handler) respondUpdatedDisplayAspirasi(w http.ResponseWriter, r *http.Request, id int64) {
	d, err := h.store.GetDisplayAspirasiByID(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "Berhasil memperbarui display aspirasi", d)
}

// ReplaceDisplayAspirasiIlustrasi mengganti ilustrasi saja. Urutannya
// kebalikan dari create: karena ada ilustrasi lama yang tidak boleh hilang
// kalau langkah database gagal, yang lama baru dihapus setelah update
// berhasil.
func (h *Handler) ReplaceDisplayAspirasiIlustrasi(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID display aspirasi tidak valid")
		return
	}

	if err := r.ParseMultipartForm(h.config.Upload.MaxSize); err != nil {
		h.badRequest(w, r, err)
		return
	}

	fileData, fileName, fileType, hasFile, err := h.readIlustrasiFile(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !hasFile {
		h.errorResponse(w, r, "File ilustrasi harus disediakan")
		return
	}

	oldIlustrasi, err := h.store.GetDisplayAspirasiIlustrasi(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	newIlustrasi := storage.ObjectKey(fileName)
	if err := h.blob.Upload(r.Context(), newIlustrasi, fileData, fileType); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	rows, err := h.store.UpdateDisplayAspirasiIlustrasi(id, newIlustrasi)
	if err != nil || rows == 0 {
		// rollback unggahan: referensi lama masih terpasang, jadi objek
		// baru yang harus dibuang
		h.removeIlustrasi(r.Context(), newIlustrasi)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		return
	}

	if oldIlustrasi != nil {
		h.removeIlustrasi(r.Context(), *oldIlustrasi)
	}

	h.successResponse(w, r, "Berhasil memperbarui ilustrasi", nil)
}

// DeleteDisplayAspirasi menghapus record beserta ilustrasinya. Objek blob
// baru dihapus setelah baris database benar-benar terhapus.
func (h *Handler) DeleteDisplayAspirasi(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID display aspirasi tidak valid")
		return
	}

	ilustrasi, err := h.store.GetDisplayAspirasiIlustrasi(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	rows, err := h.store.DeleteDisplayAspirasi(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rows == 0 {
		h.errorResponse(w, r, "Display aspirasi tidak ditemukan")
		return
	}

	if ilustrasi != nil {
		h.removeIlustrasi(r.Context(), *ilustrasi)
	}

	h.successResponse(w, r, "Berhasil menghapus display aspirasi", nil)
}

type landingItem struct {
	*domain.DisplayAspirasi
	IlustrasiURL *string `json:"ilustrasi_url"`
}

// GetLanding adalah endpoint publik landing page: hanya record berstatus
// displayed, id terbaru lebih dulu, dengan URL publik ilustrasi.
func (h *Handler) GetLanding(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.GetDisplayedAspirasi()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	items := make([]landingItem, 0, len(list))
	for _, d := range list {
		item := landingItem{DisplayAspirasi: d}
		if d.Ilustrasi != nil {
			url := h.blob.PublicURL(*d.Ilustrasi)
			item.IlustrasiURL = &url
		}
		items = append(items, item)
	}

	h.successResponse(w, r, "Berhasil mengambil data landing page", items)
}
